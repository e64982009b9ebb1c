//
// chesscore - a search core for a chess engine, written in Go for learning purposes
//
// MIT License
//
// Copyright (c) 2018-2020 Frank Kopp
//

package search

import "time"

// Limits describes when a search should stop, mirroring the subset of
// UCI "go" parameters the engine honors. A zero-value Limits means
// "search until Stop is called".
type Limits struct {
	Depth        int
	Nodes        int64
	MoveTime     time.Duration
	WhiteTime    time.Duration
	BlackTime    time.Duration
	WhiteInc     time.Duration
	BlackInc     time.Duration
	MovesToGo    int
	Infinite     bool
}

// timeBudget computes how long the current side may spend on this
// move, given the clock it is playing with. It does not itself decide
// which side is to move; callers pass the mover's own remaining time
// and increment.
func timeBudget(remaining, increment time.Duration, movesToGo int) time.Duration {
	if remaining <= 0 {
		return 0
	}
	if movesToGo <= 0 {
		movesToGo = 30
	}
	budget := remaining/time.Duration(movesToGo) + increment/2
	// never plan to use more than half of what's left, avoiding a
	// flag-fall from a single misjudged allocation
	if max := remaining / 2; budget > max {
		budget = max
	}
	return budget
}

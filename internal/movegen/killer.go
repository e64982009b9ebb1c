//
// chesscore - a search core for a chess engine, written in Go for learning purposes
//
// MIT License
//
// Copyright (c) 2018-2020 Frank Kopp
//

package movegen

import "github.com/brannigan/chesscore/internal/types"

// killersPerPly is the number of killer moves remembered at each ply.
// Two is the conventional choice: enough to catch both a recent quiet
// cutoff move and the one before it, without diluting move ordering.
const killersPerPly = 2

// KillerTable remembers, per search ply, the quiet moves that most
// recently caused a beta cutoff. Move ordering tries these right after
// the transposition table move and captures, on the theory that a move
// that refuted one line is likely to refute a similar sibling line.
type KillerTable struct {
	killers [types.MaxDepth + 1][killersPerPly]types.Move
}

// NewKillerTable returns an empty killer table.
func NewKillerTable() *KillerTable {
	return &KillerTable{}
}

// Clear resets all killer slots.
func (kt *KillerTable) Clear() {
	for i := range kt.killers {
		kt.killers[i] = [killersPerPly]types.Move{}
	}
}

// Store records m as a killer at ply, shifting the previous first
// killer down a slot. Storing a move already present as the first
// killer is a no-op, avoiding duplicate entries.
func (kt *KillerTable) Store(ply int, m types.Move) {
	if ply < 0 || ply > types.MaxDepth {
		return
	}
	slot := &kt.killers[ply]
	if slot[0].MoveOf() == m.MoveOf() {
		return
	}
	slot[1] = slot[0]
	slot[0] = m.MoveOf()
}

// IsKiller reports whether m is a stored killer at ply.
func (kt *KillerTable) IsKiller(ply int, m types.Move) bool {
	if ply < 0 || ply > types.MaxDepth {
		return false
	}
	slot := &kt.killers[ply]
	target := m.MoveOf()
	return slot[0] == target || slot[1] == target
}

// Get returns the killer moves stored at ply.
func (kt *KillerTable) Get(ply int) [killersPerPly]types.Move {
	if ply < 0 || ply > types.MaxDepth {
		return [killersPerPly]types.Move{}
	}
	return kt.killers[ply]
}

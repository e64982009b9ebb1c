//
// chesscore - a search core for a chess engine, written in Go for learning purposes
//
// MIT License
//
// Copyright (c) 2018-2020 Frank Kopp
//

package search

import (
	"context"
	"sync/atomic"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/brannigan/chesscore/internal/config"
	"github.com/brannigan/chesscore/internal/history"
	"github.com/brannigan/chesscore/internal/logging"
	"github.com/brannigan/chesscore/internal/movegen"
	"github.com/brannigan/chesscore/internal/moveslice"
	"github.com/brannigan/chesscore/internal/position"
	"github.com/brannigan/chesscore/internal/transpositiontable"
	"github.com/brannigan/chesscore/internal/types"
)

// Result is what a completed (or stopped mid-flight) search reports
// back to its caller.
type Result struct {
	BestMove   types.Move
	PonderMove types.Move
	Value      types.Value
	Depth      int
	Pv         moveslice.MoveSlice
	Stats      Statistics
}

// Search owns the long-lived state a sequence of searches shares: the
// transposition table, killer and history tables, and configuration.
// One Search value is created per engine instance and reused across
// moves; a Position is passed fresh into each StartSearch call.
//
// runSem gates StartSearch to one in-flight search at a time per
// Search instance. It is a semaphore rather than a plain mutex because
// the search also wants TryAcquire semantics when a caller asks
// whether a search is already running (see IsSearching).
type Search struct {
	cfg *config.SearchConfig
	tt  *transpositiontable.TtTable
	kt  *movegen.KillerTable
	ht  *history.HistoryTable

	runSem *semaphore.Weighted

	stopped   int32
	startTime time.Time
	deadline  time.Time
	limits    Limits
	nodes     int64
	stats     Statistics

	pvTable [types.MaxDepth + 2]moveslice.MoveSlice
}

// NewSearch creates a Search using cfg for its tunables, allocating a
// transposition table of the configured size.
func NewSearch(cfg *config.SearchConfig) *Search {
	return &Search{
		cfg:    cfg,
		tt:     transpositiontable.NewTtTable(cfg.TtSizeMb),
		kt:     movegen.NewKillerTable(),
		ht:     history.NewHistoryTable(),
		runSem: semaphore.NewWeighted(1),
	}
}

// IsSearching reports whether a search is currently in flight.
func (s *Search) IsSearching() bool {
	if s.runSem.TryAcquire(1) {
		s.runSem.Release(1)
		return false
	}
	return true
}

// Stop requests that an in-flight search return as soon as possible.
// It is safe to call from any goroutine.
func (s *Search) Stop() {
	atomic.StoreInt32(&s.stopped, 1)
}

func (s *Search) isStopped() bool {
	return atomic.LoadInt32(&s.stopped) == 1
}

// NewGame resets all state that must not leak between unrelated games:
// the transposition table, killer table and history heuristic. It does
// not need to be called between consecutive searches within the same
// game.
func (s *Search) NewGame() {
	s.tt.Clear()
	s.kt.Clear()
	s.ht.Clear()
}

// StartSearch runs iterative deepening on pos until the given limits
// are exhausted, ctx is cancelled, or Stop is called, and returns the
// best move found. It blocks the calling goroutine for the duration of
// the search.
func (s *Search) StartSearch(ctx context.Context, pos *position.Position, limits Limits) Result {
	if err := s.runSem.Acquire(ctx, 1); err != nil {
		return Result{}
	}
	defer s.runSem.Release(1)

	atomic.StoreInt32(&s.stopped, 0)
	s.startTime = time.Now()
	s.limits = limits
	s.nodes = 0
	s.stats = Statistics{}
	s.tt.AgeEntries()

	maxDepth := limits.Depth
	if maxDepth <= 0 || maxDepth > types.MaxDepth {
		maxDepth = types.MaxDepth
	}

	s.deadline = s.computeDeadline(pos, limits)
	if !s.deadline.IsZero() {
		var cancel context.CancelFunc
		ctx, cancel = context.WithDeadline(ctx, s.deadline)
		defer cancel()
		go s.watchContext(ctx)
	}

	var result Result
	alpha, beta := -types.ValueInf, types.ValueInf
	lastValue := types.ValueZero

	for depth := 1; depth <= maxDepth; depth++ {
		if s.isStopped() || ctx.Err() != nil {
			break
		}

		window := types.Value(s.cfg.AspirationWindowCp)
		if !s.cfg.UseAspirationWindow || depth < 2 {
			alpha, beta = -types.ValueInf, types.ValueInf
		} else {
			alpha = lastValue - window
			beta = lastValue + window
		}

		var value types.Value
		for {
			value = s.rootSearch(ctx, pos, depth, alpha, beta)
			if s.isStopped() || ctx.Err() != nil {
				break
			}
			if value <= alpha {
				s.stats.AspirationRetries++
				alpha = -types.ValueInf
				continue
			}
			if value >= beta {
				s.stats.AspirationRetries++
				beta = types.ValueInf
				continue
			}
			break
		}

		if s.isStopped() || ctx.Err() != nil {
			break
		}

		lastValue = value
		pv := s.pvTable[0]
		result = Result{
			BestMove: pvBestMove(pv),
			Value:    value,
			Depth:    depth,
			Pv:       pv,
			Stats:    s.stats,
		}
		if len(pv) > 1 {
			result.PonderMove = pv[1].MoveOf()
		}

		logging.GetSearchLog().Infof("%s", s.infoLine(depth, value, pv))

		if value.IsCheckMateValue() && depth >= value.MatePly() {
			break
		}
	}

	s.stats.Nodes = s.nodes
	result.Stats = s.stats
	return result
}

func (s *Search) watchContext(ctx context.Context) {
	<-ctx.Done()
	s.Stop()
}

func (s *Search) computeDeadline(pos *position.Position, limits Limits) time.Time {
	if limits.Infinite {
		return time.Time{}
	}
	if limits.MoveTime > 0 {
		return s.startTime.Add(limits.MoveTime)
	}
	var remaining, increment time.Duration
	if pos.NextPlayer() == types.White {
		remaining, increment = limits.WhiteTime, limits.WhiteInc
	} else {
		remaining, increment = limits.BlackTime, limits.BlackInc
	}
	if remaining <= 0 {
		return time.Time{}
	}
	budget := timeBudget(remaining, increment, limits.MovesToGo)
	if budget <= 0 {
		return time.Time{}
	}
	return s.startTime.Add(budget)
}

func pvBestMove(pv moveslice.MoveSlice) types.Move {
	if len(pv) == 0 {
		return types.MoveNone
	}
	return pv[0].MoveOf()
}

func maxValue(a, b types.Value) types.Value {
	if a > b {
		return a
	}
	return b
}

func minValue(a, b types.Value) types.Value {
	if a < b {
		return a
	}
	return b
}

//
// chesscore - a search core for a chess engine, written in Go for learning purposes
//
// MIT License
//
// Copyright (c) 2018-2020 Frank Kopp
//

package history

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/brannigan/chesscore/internal/types"
)

var out = message.NewPrinter(language.German)

// HistoryTable implements the history heuristic: quiet moves that
// caused a beta cutoff accumulate a score indexed by [color][from][to],
// independent of the position they occurred in. Move ordering in later
// searches prefers moves with a higher accumulated score.
type HistoryTable struct {
	scores [2][types.SqLength][types.SqLength]int32
	// counterMoves[color][from][to] records the quiet move that most
	// recently refuted the move ending on [from][to], one ply later.
	counterMoves [2][types.SqLength][types.SqLength]types.Move
}

// NewHistoryTable returns an empty history table.
func NewHistoryTable() *HistoryTable {
	return &HistoryTable{}
}

// Clear zeroes all counters, called between games so stale data
// from an unrelated game does not bias move ordering.
func (h *HistoryTable) Clear() {
	*h = HistoryTable{}
}

// Update records that a quiet move caused a cutoff at the given depth.
// The bonus grows with the square of depth, the conventional shape
// since deeper cutoffs are rarer and more informative.
func (h *HistoryTable) Update(c types.Color, m types.Move, depth int) {
	bonus := int32(depth * depth)
	from, to := m.From(), m.To()
	h.scores[c][from][to] += bonus
	const ceiling = 1 << 20
	if h.scores[c][from][to] > ceiling {
		h.age(c)
	}
}

// Penalize reduces the score of a quiet move that was tried and failed
// to cause a cutoff, so moves that are merely searched often without
// ever refuting anything sink relative to ones that do.
func (h *HistoryTable) Penalize(c types.Color, m types.Move, depth int) {
	penalty := int32(depth * depth)
	from, to := m.From(), m.To()
	h.scores[c][from][to] -= penalty
	if h.scores[c][from][to] < -(1 << 20) {
		h.scores[c][from][to] = -(1 << 20)
	}
}

// age halves every score for color c, keeping the table's magnitude
// bounded over a long search without discarding relative ordering.
func (h *HistoryTable) age(c types.Color) {
	for from := 0; from < types.SqLength; from++ {
		for to := 0; to < types.SqLength; to++ {
			h.scores[c][from][to] /= 2
		}
	}
}

// Score returns the accumulated history score for a quiet move.
func (h *HistoryTable) Score(c types.Color, m types.Move) int32 {
	return h.scores[c][m.From()][m.To()]
}

// StoreCounterMove records reply as the countermove to m.
func (h *HistoryTable) StoreCounterMove(c types.Color, m, reply types.Move) {
	if !m.IsValid() {
		return
	}
	h.counterMoves[c][m.From()][m.To()] = reply.MoveOf()
}

// CounterMove returns the recorded countermove to m, or MoveNone.
func (h *HistoryTable) CounterMove(c types.Color, m types.Move) types.Move {
	if !m.IsValid() {
		return types.MoveNone
	}
	return h.counterMoves[c][m.From()][m.To()]
}

func (h *HistoryTable) String() string {
	var nonZero int
	for c := 0; c < 2; c++ {
		for from := 0; from < types.SqLength; from++ {
			for to := 0; to < types.SqLength; to++ {
				if h.scores[c][from][to] != 0 {
					nonZero++
				}
			}
		}
	}
	return out.Sprintf("History: entries %d", nonZero)
}

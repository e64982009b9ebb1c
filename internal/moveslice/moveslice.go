//
// chesscore - a search core for a chess engine, written in Go for learning purposes
//
// MIT License
//
// Copyright (c) 2018-2020 Frank Kopp
//

package moveslice

import (
	"sort"
	"strings"

	"github.com/brannigan/chesscore/internal/types"
)

// MoveSlice is a thin wrapper around []types.Move offering the
// in-place operations move generation and ordering need: push, filter,
// sort by the value packed into each move, and a readable String.
type MoveSlice []types.Move

// New returns an empty MoveSlice with the given initial capacity.
func New(capacity int) MoveSlice {
	return make(MoveSlice, 0, capacity)
}

// PushBack appends m to the slice.
func (ms *MoveSlice) PushBack(m types.Move) {
	*ms = append(*ms, m)
}

// Len returns the number of moves in the slice.
func (ms MoveSlice) Len() int {
	return len(ms)
}

// Clear empties the slice while retaining its backing array.
func (ms *MoveSlice) Clear() {
	*ms = (*ms)[:0]
}

// Sort orders the slice by descending move value, the highest-value
// move first. Move generation packs a search-determined sort value
// into each move before calling this, so the same slice type serves
// both unordered pseudo-legal lists and ordered search move lists.
func (ms MoveSlice) Sort() {
	sort.SliceStable(ms, func(i, j int) bool {
		return ms[i].Value() > ms[j].Value()
	})
}

// Filter removes all moves for which keep returns false, compacting
// the slice in place.
func (ms *MoveSlice) Filter(keep func(types.Move) bool) {
	out := (*ms)[:0]
	for _, m := range *ms {
		if keep(m) {
			out = append(out, m)
		}
	}
	*ms = out
}

// Contains reports whether the slice holds m, comparing moves by their
// from/to/promotion/type bits and ignoring any attached sort value.
func (ms MoveSlice) Contains(m types.Move) bool {
	target := m.MoveOf()
	for _, x := range ms {
		if x.MoveOf() == target {
			return true
		}
	}
	return false
}

func (ms MoveSlice) String() string {
	parts := make([]string, len(ms))
	for i, m := range ms {
		parts[i] = m.String()
	}
	return strings.Join(parts, " ")
}

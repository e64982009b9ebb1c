//
// chesscore - a search core for a chess engine, written in Go for learning purposes
//
// MIT License
//
// Copyright (c) 2018-2020 Frank Kopp
//

package transpositiontable

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/brannigan/chesscore/internal/types"
)

var out = message.NewPrinter(language.German)

// entrySize is the approximate in-memory footprint of one TtEntry in
// bytes, used to translate a requested table size in megabytes into a
// slot count.
const entrySize = 24

// TtEntry is one slot of the transposition table: the position it was
// computed for, the best move found, the search depth the value is
// valid to, the value itself with its bound kind, and an age used to
// prefer fresher entries when two collide.
type TtEntry struct {
	Key        types.Key
	Move       types.Move
	Value      types.Value
	StaticEval types.Value
	Depth      int8
	Bound      types.Bound
	Age        uint8
}

// TtTable is a fixed-size, always-replace-unless-deeper transposition
// table indexed by the low bits of the position's Zobrist key.
type TtTable struct {
	entries    []TtEntry
	sizeMb     int
	numberOfTt uint64
	generation uint8

	hits, misses, collisions, puts int64
}

// NewTtTable creates a table sized to hold approximately sizeMb
// megabytes of entries.
func NewTtTable(sizeMb int) *TtTable {
	tt := &TtTable{}
	tt.Resize(sizeMb)
	return tt
}

// Resize reallocates the table to the given size in megabytes,
// discarding all existing entries.
func (tt *TtTable) Resize(sizeMb int) {
	if sizeMb < 1 {
		sizeMb = 1
	}
	n := (sizeMb * 1024 * 1024) / entrySize
	if n < 1 {
		n = 1
	}
	tt.numberOfTt = nextPowerOfTwo(uint64(n))
	tt.entries = make([]TtEntry, tt.numberOfTt)
	tt.sizeMb = sizeMb
	tt.Clear()
}

func nextPowerOfTwo(n uint64) uint64 {
	p := uint64(1)
	for p < n {
		p <<= 1
	}
	return p
}

// Clear empties the table without reallocating it.
func (tt *TtTable) Clear() {
	for i := range tt.entries {
		tt.entries[i] = TtEntry{}
	}
	tt.generation = 0
	tt.hits, tt.misses, tt.collisions, tt.puts = 0, 0, 0, 0
}

func (tt *TtTable) index(key types.Key) uint64 {
	return uint64(key) & (tt.numberOfTt - 1)
}

// Probe looks up key, returning the stored entry and true if found.
func (tt *TtTable) Probe(key types.Key) (TtEntry, bool) {
	e := tt.entries[tt.index(key)]
	if e.Key == key && e.Bound != types.BoundNone {
		tt.hits++
		return e, true
	}
	tt.misses++
	return TtEntry{}, false
}

// Put stores a search result in the table. An existing entry for the
// same key, written in the current search generation and searched
// deeper than the new result, is kept unless the new bound is Exact;
// only its move is refreshed when m is valid. In every other case,
// including an entry for a different key, the slot is overwritten.
func (tt *TtTable) Put(key types.Key, m types.Move, value types.Value, staticEval types.Value, depth int, bound types.Bound) {
	idx := tt.index(key)
	existing := &tt.entries[idx]
	tt.puts++

	if existing.Key != 0 && existing.Key != key {
		tt.collisions++
	}

	if existing.Key == key && existing.Age == tt.generation && int(existing.Depth) > depth && bound != types.Exact {
		if m.IsValid() {
			existing.Move = m
		}
		return
	}

	if m.IsValid() || existing.Key != key {
		existing.Move = m
	}
	existing.Key = key
	existing.Value = value
	existing.StaticEval = staticEval
	existing.Depth = int8(depth)
	existing.Bound = bound
	existing.Age = tt.generation
}

// AgeEntries advances the table's generation counter, called once per
// search so that Put prefers overwriting entries from prior searches
// over entries just written in the current one.
func (tt *TtTable) AgeEntries() {
	tt.generation++
}

// Hashfull estimates, in permille, how full the table is, sampling the
// first 1000 slots the way UCI's "hashfull" info field expects.
func (tt *TtTable) Hashfull() int {
	sample := 1000
	if uint64(sample) > tt.numberOfTt {
		sample = int(tt.numberOfTt)
	}
	used := 0
	for i := 0; i < sample; i++ {
		if tt.entries[i].Bound != types.BoundNone {
			used++
		}
	}
	if sample == 0 {
		return 0
	}
	return used * 1000 / sample
}

// SizeMb returns the table's configured size in megabytes.
func (tt *TtTable) SizeMb() int { return tt.sizeMb }

// ValueToTt adjusts a mate score for storage, encoding mate distance
// relative to the current search root (ply) as distance from the leaf
// so it remains meaningful when probed again from a different ply.
func ValueToTt(v types.Value, ply int) types.Value {
	if v >= types.ValueCheckMateThreshold {
		return v + types.Value(ply)
	}
	if v <= -types.ValueCheckMateThreshold {
		return v - types.Value(ply)
	}
	return v
}

// ValueFromTt reverses ValueToTt when reading a stored value back in
// at the current ply.
func ValueFromTt(v types.Value, ply int) types.Value {
	if v >= types.ValueCheckMateThreshold {
		return v - types.Value(ply)
	}
	if v <= -types.ValueCheckMateThreshold {
		return v + types.Value(ply)
	}
	return v
}

func (tt *TtTable) String() string {
	return out.Sprintf("TT: size %d MB slots %d hashfull %d hits %d misses %d collisions %d puts %d",
		tt.sizeMb, tt.numberOfTt, tt.Hashfull(), tt.hits, tt.misses, tt.collisions, tt.puts)
}

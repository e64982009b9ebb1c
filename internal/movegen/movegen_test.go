//
// chesscore - a search core for a chess engine, written in Go for learning purposes
//
// MIT License
//
// Copyright (c) 2018-2020 Frank Kopp
//

package movegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brannigan/chesscore/internal/position"
	"github.com/brannigan/chesscore/internal/types"
)

func TestStartPositionHas20LegalMoves(t *testing.T) {
	pos := position.NewPosition()
	legal := GenerateLegalMoves(pos)
	assert.Equal(t, 20, legal.Len())
}

func TestKiwipeteMoveCount(t *testing.T) {
	// the standard Kiwipete perft test position, exercising castling,
	// en passant and promotions all at once
	pos, err := position.NewPositionFen("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	require.NoError(t, err)
	legal := GenerateLegalMoves(pos)
	assert.Equal(t, 48, legal.Len())
}

func TestCheckmateHasNoLegalMoves(t *testing.T) {
	// fool's mate final position, white to move and checkmated
	pos, err := position.NewPositionFen("rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3")
	require.NoError(t, err)
	assert.True(t, pos.HasCheck())
	assert.False(t, HasLegalMove(pos))
}

func TestStalemateHasNoLegalMoves(t *testing.T) {
	pos, err := position.NewPositionFen("7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	require.NoError(t, err)
	assert.False(t, pos.HasCheck())
	assert.False(t, HasLegalMove(pos))
}

func TestSeeFavoursWinningCapture(t *testing.T) {
	// white rook takes an undefended black rook
	pos, err := position.NewPositionFen("4k3/8/8/8/8/8/8/R3r1K1 w - - 0 1")
	require.NoError(t, err)
	m := types.CreateMove(types.SqA1, types.SqE1)
	assert.Equal(t, types.Value(500), See(pos, m))
}

func TestSeeRejectsLosingCapture(t *testing.T) {
	// white queen takes a pawn defended by a rook: loses the queen for a pawn
	pos, err := position.NewPositionFen("4k3/8/8/8/8/3r4/3p4/3QK3 w - - 0 1")
	require.NoError(t, err)
	m := types.CreateMove(types.SqD1, types.SqD2)
	assert.Less(t, int(See(pos, m)), 0)
}

func TestKillerTableStoresMostRecentFirst(t *testing.T) {
	kt := NewKillerTable()
	m1 := types.CreateMove(types.SqE2, types.SqE4)
	m2 := types.CreateMove(types.SqD2, types.SqD4)
	kt.Store(3, m1)
	kt.Store(3, m2)
	assert.True(t, kt.IsKiller(3, m1))
	assert.True(t, kt.IsKiller(3, m2))
	assert.Equal(t, m2.MoveOf(), kt.Get(3)[0])
}

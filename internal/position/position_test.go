//
// chesscore - a search core for a chess engine, written in Go for learning purposes
//
// MIT License
//
// Copyright (c) 2018-2020 Frank Kopp
//

package position

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brannigan/chesscore/internal/types"
)

func TestNewPositionStartFen(t *testing.T) {
	p := NewPosition()
	assert.Equal(t, types.White, p.NextPlayer())
	assert.Equal(t, types.CastlingAny, p.CastlingRights())
	assert.Equal(t, types.SqNone, p.EnPassantSquare())
	assert.Equal(t, StartFen, p.StringFen())
}

func TestNewPositionFenRoundTrip(t *testing.T) {
	fen := "r1bqkbnr/pppp1ppp/2n5/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R w KQkq - 2 3"
	p, err := NewPositionFen(fen)
	require.NoError(t, err)
	assert.Equal(t, fen, p.StringFen())
}

func TestDoUndoMoveRestoresState(t *testing.T) {
	p := NewPosition()
	before := p.StringFen()
	beforeKey := p.ZobristKey()

	m := types.CreateMove(types.SqE2, types.SqE4)
	p.DoMove(m)
	assert.NotEqual(t, before, p.StringFen())
	assert.Equal(t, types.Black, p.NextPlayer())
	assert.Equal(t, types.SqE3, p.EnPassantSquare())

	p.UndoMove()
	assert.Equal(t, before, p.StringFen())
	assert.Equal(t, beforeKey, p.ZobristKey())
}

func TestDoNullMoveFlipsSideOnly(t *testing.T) {
	p := NewPosition()
	before := p.StringFen()
	p.DoNullMove()
	assert.Equal(t, types.Black, p.NextPlayer())
	p.UndoNullMove()
	assert.Equal(t, before, p.StringFen())
}

func TestCastlingMovesRookToo(t *testing.T) {
	fen := "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1"
	p, err := NewPositionFen(fen)
	require.NoError(t, err)

	m := types.CreateMoveType(types.SqE1, types.SqG1, types.Castling)
	p.DoMove(m)
	assert.Equal(t, types.WhiteKing, p.PieceAt(types.SqG1))
	assert.Equal(t, types.WhiteRook, p.PieceAt(types.SqF1))
	assert.Equal(t, types.PieceNone, p.PieceAt(types.SqH1))

	p.UndoMove()
	assert.Equal(t, types.WhiteKing, p.PieceAt(types.SqE1))
	assert.Equal(t, types.WhiteRook, p.PieceAt(types.SqH1))
}

func TestEnPassantCapture(t *testing.T) {
	fen := "4k3/8/8/3pP3/8/8/8/4K3 w - d6 0 1"
	p, err := NewPositionFen(fen)
	require.NoError(t, err)

	m := types.CreateMoveType(types.SqE5, types.SqD6, types.EnPassant)
	p.DoMove(m)
	assert.Equal(t, types.WhitePawn, p.PieceAt(types.SqD6))
	assert.Equal(t, types.PieceNone, p.PieceAt(types.SqD5))

	p.UndoMove()
	assert.Equal(t, types.BlackPawn, p.PieceAt(types.SqD5))
	assert.Equal(t, types.PieceNone, p.PieceAt(types.SqD6))
}

func TestInsufficientMaterial(t *testing.T) {
	p, err := NewPositionFen("8/8/4k3/8/8/4K3/8/8 w - - 0 1")
	require.NoError(t, err)
	assert.True(t, p.HasInsufficientMaterial())

	p2, err := NewPositionFen("8/8/4k3/8/8/4KQ2/8/8 w - - 0 1")
	require.NoError(t, err)
	assert.False(t, p2.HasInsufficientMaterial())
}

func TestFiftyMoveRule(t *testing.T) {
	p, err := NewPositionFen("4k3/8/8/8/8/8/8/4K3 w - - 99 60")
	require.NoError(t, err)
	assert.False(t, p.IsDrawByFiftyMoveRule())
	p.halfMoveClock = 100
	assert.True(t, p.IsDrawByFiftyMoveRule())
}

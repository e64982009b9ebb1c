//
// chesscore - a search core for a chess engine, written in Go for learning purposes
//
// MIT License
//
// Copyright (c) 2018-2020 Frank Kopp
//

package position

import (
	"math/rand"

	"github.com/brannigan/chesscore/internal/types"
)

// zobrist holds the random numbers used to incrementally hash a
// position. The seed is fixed so the key space is reproducible across
// runs, which matters for opening-book and test-suite determinism.
var zobrist struct {
	piece       [types.PieceLength][types.SqLength]types.Key
	castling    [16]types.Key
	enPassant   [types.FileLength + 1]types.Key
	sideToMove  types.Key
}

func init() {
	r := rand.New(rand.NewSource(20201220))
	for p := types.Piece(0); p < types.PieceLength; p++ {
		for sq := types.Square(0); sq < types.SqLength; sq++ {
			zobrist.piece[p][sq] = types.Key(r.Uint64())
		}
	}
	for i := range zobrist.castling {
		zobrist.castling[i] = types.Key(r.Uint64())
	}
	for i := range zobrist.enPassant {
		zobrist.enPassant[i] = types.Key(r.Uint64())
	}
	zobrist.sideToMove = types.Key(r.Uint64())
}

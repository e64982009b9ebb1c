//
// chesscore - a search core for a chess engine, written in Go for learning purposes
//
// MIT License
//
// Copyright (c) 2018-2020 Frank Kopp
//

package movegen

import (
	"github.com/brannigan/chesscore/internal/moveslice"
	"github.com/brannigan/chesscore/internal/position"
	"github.com/brannigan/chesscore/internal/types"
)

var rookDirs = [4]types.Direction{types.North, types.East, types.South, types.West}
var bishopDirs = [4]types.Direction{types.NorthEast, types.SouthEast, types.SouthWest, types.NorthWest}
var kingDirs = [8]types.Direction{types.North, types.East, types.South, types.West,
	types.NorthEast, types.SouthEast, types.SouthWest, types.NorthWest}
var knightOffsets = [8]int{17, 15, 10, 6, -6, -10, -15, -17}

func step(sq types.Square, d types.Direction) types.Square {
	to := types.Square(int(sq) + int(d))
	if !to.IsValid() {
		return types.SqNone
	}
	if sq.FileOf().Distance(to.FileOf()) > 2 {
		return types.SqNone
	}
	return to
}

// GeneratePseudoLegalMoves appends every pseudo-legal move for the side
// to move in pos to moves: legality of the resulting position (own
// king left in check) is not checked here, that is the caller's job via
// position.WasLegalMove after DoMove.
func GeneratePseudoLegalMoves(pos *position.Position, moves *moveslice.MoveSlice) {
	generatePawnMoves(pos, moves, false)
	generatePieceMoves(pos, moves, false)
	generateCastlingMoves(pos, moves)
}

// GeneratePseudoLegalCaptures appends only pseudo-legal captures and
// queen promotions, used by quiescence search.
func GeneratePseudoLegalCaptures(pos *position.Position, moves *moveslice.MoveSlice) {
	generatePawnMoves(pos, moves, true)
	generatePieceMoves(pos, moves, true)
}

// GenerateEvasions appends pseudo-legal moves when the side to move is
// in check. It is currently implemented as a thin wrapper over the full
// generator; the legality filter downstream removes moves that do not
// escape check, which is correct but not maximally efficient.
func GenerateEvasions(pos *position.Position, moves *moveslice.MoveSlice) {
	GeneratePseudoLegalMoves(pos, moves)
}

func generatePawnMoves(pos *position.Position, moves *moveslice.MoveSlice, capturesOnly bool) {
	us := pos.NextPlayer()
	them := us.Flip()
	var forward types.Direction
	var startRank, promoRank types.Rank
	if us == types.White {
		forward = types.North
		startRank = types.Rank2
		promoRank = types.Rank8
	} else {
		forward = types.South
		startRank = types.Rank7
		promoRank = types.Rank1
	}

	for from := types.Square(0); from < types.SqLength; from++ {
		pc := pos.PieceAt(from)
		if pc == types.PieceNone || pc.ColorOf() != us || pc.TypeOf() != types.Pawn {
			continue
		}

		one := step(from, forward)
		if one != types.SqNone && pos.PieceAt(one) == types.PieceNone {
			if !capturesOnly {
				addPawnMove(moves, from, one, promoRank)
			} else if one.RankOf() == promoRank {
				moves.PushBack(types.CreatePromotionMove(from, one, types.Queen))
			}
			if from.RankOf() == startRank {
				two := step(one, forward)
				if two != types.SqNone && pos.PieceAt(two) == types.PieceNone && !capturesOnly {
					moves.PushBack(types.CreateMove(from, two))
				}
			}
		}

		for _, d := range []types.Direction{forward + types.East, forward + types.West} {
			to := step(from, d)
			if to == types.SqNone {
				continue
			}
			if to == pos.EnPassantSquare() {
				moves.PushBack(types.CreateMoveType(from, to, types.EnPassant))
				continue
			}
			target := pos.PieceAt(to)
			if target != types.PieceNone && target.ColorOf() == them {
				addPawnMove(moves, from, to, promoRank)
			}
		}
	}
}

func addPawnMove(moves *moveslice.MoveSlice, from, to types.Square, promoRank types.Rank) {
	if to.RankOf() == promoRank {
		for _, pt := range []types.PieceType{types.Queen, types.Rook, types.Bishop, types.Knight} {
			moves.PushBack(types.CreatePromotionMove(from, to, pt))
		}
		return
	}
	moves.PushBack(types.CreateMove(from, to))
}

func generatePieceMoves(pos *position.Position, moves *moveslice.MoveSlice, capturesOnly bool) {
	us := pos.NextPlayer()
	them := us.Flip()

	for from := types.Square(0); from < types.SqLength; from++ {
		pc := pos.PieceAt(from)
		if pc == types.PieceNone || pc.ColorOf() != us {
			continue
		}
		switch pc.TypeOf() {
		case types.Knight:
			for _, off := range knightOffsets {
				to := types.Square(int(from) + off)
				if !to.IsValid() || from.FileOf().Distance(to.FileOf()) > 2 {
					continue
				}
				addIfLegalTarget(pos, moves, from, to, us, them, capturesOnly)
			}
		case types.Bishop:
			slide(pos, moves, from, bishopDirs[:], us, them, capturesOnly)
		case types.Rook:
			slide(pos, moves, from, rookDirs[:], us, them, capturesOnly)
		case types.Queen:
			slide(pos, moves, from, rookDirs[:], us, them, capturesOnly)
			slide(pos, moves, from, bishopDirs[:], us, them, capturesOnly)
		case types.King:
			for _, d := range kingDirs {
				to := step(from, d)
				if to == types.SqNone {
					continue
				}
				addIfLegalTarget(pos, moves, from, to, us, them, capturesOnly)
			}
		}
	}
}

func addIfLegalTarget(pos *position.Position, moves *moveslice.MoveSlice, from, to types.Square, us, them types.Color, capturesOnly bool) {
	target := pos.PieceAt(to)
	if target == types.PieceNone {
		if !capturesOnly {
			moves.PushBack(types.CreateMove(from, to))
		}
		return
	}
	if target.ColorOf() == them {
		moves.PushBack(types.CreateMove(from, to))
	}
}

func slide(pos *position.Position, moves *moveslice.MoveSlice, from types.Square, dirs []types.Direction, us, them types.Color, capturesOnly bool) {
	for _, d := range dirs {
		cur := from
		for {
			to := step(cur, d)
			if to == types.SqNone {
				break
			}
			target := pos.PieceAt(to)
			if target == types.PieceNone {
				if !capturesOnly {
					moves.PushBack(types.CreateMove(from, to))
				}
				cur = to
				continue
			}
			if target.ColorOf() == them {
				moves.PushBack(types.CreateMove(from, to))
			}
			break
		}
	}
}

func generateCastlingMoves(pos *position.Position, moves *moveslice.MoveSlice) {
	us := pos.NextPlayer()
	rights := pos.CastlingRights()
	them := us.Flip()

	if pos.IsAttacked(pos.KingSquare(us), them) {
		return
	}

	if us == types.White {
		if rights.Has(types.CastlingWhiteKing) &&
			pos.PieceAt(types.SqF1) == types.PieceNone && pos.PieceAt(types.SqG1) == types.PieceNone &&
			!pos.IsAttacked(types.SqF1, them) && !pos.IsAttacked(types.SqG1, them) {
			moves.PushBack(types.CreateMoveType(types.SqE1, types.SqG1, types.Castling))
		}
		if rights.Has(types.CastlingWhiteQueen) &&
			pos.PieceAt(types.SqD1) == types.PieceNone && pos.PieceAt(types.SqC1) == types.PieceNone && pos.PieceAt(types.SqB1) == types.PieceNone &&
			!pos.IsAttacked(types.SqD1, them) && !pos.IsAttacked(types.SqC1, them) {
			moves.PushBack(types.CreateMoveType(types.SqE1, types.SqC1, types.Castling))
		}
		return
	}

	if rights.Has(types.CastlingBlackKing) &&
		pos.PieceAt(types.SqF8) == types.PieceNone && pos.PieceAt(types.SqG8) == types.PieceNone &&
		!pos.IsAttacked(types.SqF8, them) && !pos.IsAttacked(types.SqG8, them) {
		moves.PushBack(types.CreateMoveType(types.SqE8, types.SqG8, types.Castling))
	}
	if rights.Has(types.CastlingBlackQueen) &&
		pos.PieceAt(types.SqD8) == types.PieceNone && pos.PieceAt(types.SqC8) == types.PieceNone && pos.PieceAt(types.SqB8) == types.PieceNone &&
		!pos.IsAttacked(types.SqD8, them) && !pos.IsAttacked(types.SqC8, them) {
		moves.PushBack(types.CreateMoveType(types.SqE8, types.SqC8, types.Castling))
	}
}

// GenerateLegalMoves returns only the moves from GeneratePseudoLegalMoves
// that do not leave the moving side's own king in check. It is more
// expensive than the staged in-search generation since it make/undoes
// every candidate, and is intended for perft, UCI "go" move validation
// and test fixtures rather than the hot search path.
func GenerateLegalMoves(pos *position.Position) moveslice.MoveSlice {
	pseudo := moveslice.New(64)
	GeneratePseudoLegalMoves(pos, &pseudo)
	legal := moveslice.New(pseudo.Len())
	for _, m := range pseudo {
		pos.DoMove(m)
		if pos.WasLegalMove() {
			legal.PushBack(m)
		}
		pos.UndoMove()
	}
	return legal
}

// HasLegalMove reports whether the side to move has at least one legal
// move, used to distinguish checkmate and stalemate once HasCheck has
// already been established or ruled out by the caller.
func HasLegalMove(pos *position.Position) bool {
	pseudo := moveslice.New(64)
	GeneratePseudoLegalMoves(pos, &pseudo)
	for _, m := range pseudo {
		pos.DoMove(m)
		legal := pos.WasLegalMove()
		pos.UndoMove()
		if legal {
			return true
		}
	}
	return false
}

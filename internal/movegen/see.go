//
// chesscore - a search core for a chess engine, written in Go for learning purposes
//
// MIT License
//
// Copyright (c) 2018-2020 Frank Kopp
//

package movegen

import (
	"github.com/brannigan/chesscore/internal/position"
	"github.com/brannigan/chesscore/internal/types"
)

// See performs a static exchange evaluation of a capture: it estimates
// the material balance after all profitable recaptures on the target
// square, without actually playing the moves out in the search tree.
// Quiescence search uses this to discard captures that lose material
// outright (e.g. QxP defended by a pawn) before they ever reach the
// slower DoMove/eval/UndoMove path.
func See(pos *position.Position, m types.Move) types.Value {
	to := m.To()
	from := m.From()
	us := pos.NextPlayer()

	var gains [32]types.Value
	depth := 0

	captured := pos.PieceAt(to)
	if m.MoveType() == types.EnPassant {
		captured = types.MakePiece(us.Flip(), types.Pawn)
	}
	gains[0] = captured.TypeOf().ValueOf()

	attackerValue := pos.PieceAt(from).TypeOf().ValueOf()
	occupied := occupiedMask(pos)
	occupied[from] = false

	side := us.Flip()
	for {
		attacker, attackerSq, found := leastValuableAttacker(pos, to, side, occupied)
		if !found {
			break
		}
		depth++
		gains[depth] = attackerValue - gains[depth-1]
		attackerValue = attacker.ValueOf()
		occupied[attackerSq] = false
		side = side.Flip()
		if depth >= len(gains)-1 {
			break
		}
	}

	for depth > 0 {
		if -gains[depth] < gains[depth-1] {
			gains[depth-1] = -gains[depth]
		}
		depth--
	}
	return gains[0]
}

func occupiedMask(pos *position.Position) [types.SqLength]bool {
	var mask [types.SqLength]bool
	for sq := types.Square(0); sq < types.SqLength; sq++ {
		mask[sq] = pos.PieceAt(sq) != types.PieceNone
	}
	return mask
}

// leastValuableAttacker finds the cheapest piece of color side that
// attacks sq, restricted to squares still marked occupied (earlier
// attackers removed from the exchange are excluded).
func leastValuableAttacker(pos *position.Position, sq types.Square, side types.Color, occupied [types.SqLength]bool) (types.PieceType, types.Square, bool) {
	order := []types.PieceType{types.Pawn, types.Knight, types.Bishop, types.Rook, types.Queen, types.King}
	for _, pt := range order {
		if s, ok := findAttackerOfType(pos, sq, side, pt, occupied); ok {
			return pt, s, true
		}
	}
	return types.PtNone, types.SqNone, false
}

func findAttackerOfType(pos *position.Position, sq types.Square, side types.Color, pt types.PieceType, occupied [types.SqLength]bool) (types.Square, bool) {
	switch pt {
	case types.Pawn:
		var d types.Direction
		if side == types.White {
			d = types.South
		} else {
			d = types.North
		}
		for _, off := range []types.Direction{d + types.East, d + types.West} {
			from := step(sq, off)
			if from == types.SqNone || !occupied[from] {
				continue
			}
			pc := pos.PieceAt(from)
			if pc.ColorOf() == side && pc.TypeOf() == types.Pawn {
				return from, true
			}
		}
	case types.Knight:
		for _, off := range knightOffsets {
			from := types.Square(int(sq) + off)
			if !from.IsValid() || sq.FileOf().Distance(from.FileOf()) > 2 || !occupied[from] {
				continue
			}
			pc := pos.PieceAt(from)
			if pc.ColorOf() == side && pc.TypeOf() == types.Knight {
				return from, true
			}
		}
	case types.Bishop:
		return findSliding(pos, sq, side, bishopDirs[:], pt, occupied)
	case types.Rook:
		return findSliding(pos, sq, side, rookDirs[:], pt, occupied)
	case types.Queen:
		if s, ok := findSliding(pos, sq, side, rookDirs[:], pt, occupied); ok {
			return s, true
		}
		return findSliding(pos, sq, side, bishopDirs[:], pt, occupied)
	case types.King:
		for _, d := range kingDirs {
			from := step(sq, d)
			if from == types.SqNone || !occupied[from] {
				continue
			}
			pc := pos.PieceAt(from)
			if pc.ColorOf() == side && pc.TypeOf() == types.King {
				return from, true
			}
		}
	}
	return types.SqNone, false
}

func findSliding(pos *position.Position, sq types.Square, side types.Color, dirs []types.Direction, pt types.PieceType, occupied [types.SqLength]bool) (types.Square, bool) {
	for _, d := range dirs {
		cur := sq
		for {
			next := step(cur, d)
			if next == types.SqNone {
				break
			}
			if !occupied[next] {
				cur = next
				continue
			}
			pc := pos.PieceAt(next)
			if pc.ColorOf() == side && pc.TypeOf() == pt {
				return next, true
			}
			break
		}
	}
	return types.SqNone, false
}

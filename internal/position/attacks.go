//
// chesscore - a search core for a chess engine, written in Go for learning purposes
//
// MIT License
//
// Copyright (c) 2018-2020 Frank Kopp
//

package position

import "github.com/brannigan/chesscore/internal/types"

// IsAttacked reports whether sq is attacked by any piece of color by,
// walking rays and jumps outward from sq on the mailbox board rather
// than precomputed attack tables.
func (p *Position) IsAttacked(sq types.Square, by types.Color) bool {
	if p.pawnAttacks(sq, by) {
		return true
	}
	if p.knightAttacks(sq, by) {
		return true
	}
	if p.slidingAttacks(sq, by, rookDirections(), types.Rook, types.Queen) {
		return true
	}
	if p.slidingAttacks(sq, by, bishopDirections(), types.Bishop, types.Queen) {
		return true
	}
	return p.kingAttacks(sq, by)
}

func rookDirections() []types.Direction {
	return []types.Direction{types.North, types.East, types.South, types.West}
}

func bishopDirections() []types.Direction {
	return []types.Direction{types.NorthEast, types.SouthEast, types.SouthWest, types.NorthWest}
}

func (p *Position) pawnAttacks(sq types.Square, by types.Color) bool {
	var fromRankDelta types.Direction
	if by == types.White {
		fromRankDelta = types.South
	} else {
		fromRankDelta = types.North
	}
	for _, d := range []types.Direction{fromRankDelta + types.East, fromRankDelta + types.West} {
		from := stepSquare(sq, d)
		if from == types.SqNone {
			continue
		}
		pc := p.board[from]
		if pc != types.PieceNone && pc.ColorOf() == by && pc.TypeOf() == types.Pawn {
			return true
		}
	}
	return false
}

func (p *Position) knightAttacks(sq types.Square, by types.Color) bool {
	for _, off := range knightOffsetsList() {
		from := types.Square(int(sq) + off)
		if !from.IsValid() {
			continue
		}
		if sq.FileOf().Distance(from.FileOf()) > 2 {
			continue
		}
		pc := p.board[from]
		if pc != types.PieceNone && pc.ColorOf() == by && pc.TypeOf() == types.Knight {
			return true
		}
	}
	return false
}

func knightOffsetsList() []int {
	return []int{17, 15, 10, 6, -6, -10, -15, -17}
}

func (p *Position) kingAttacks(sq types.Square, by types.Color) bool {
	for _, d := range []types.Direction{types.North, types.East, types.South, types.West,
		types.NorthEast, types.SouthEast, types.SouthWest, types.NorthWest} {
		from := stepSquare(sq, d)
		if from == types.SqNone {
			continue
		}
		pc := p.board[from]
		if pc != types.PieceNone && pc.ColorOf() == by && pc.TypeOf() == types.King {
			return true
		}
	}
	return false
}

func (p *Position) slidingAttacks(sq types.Square, by types.Color, dirs []types.Direction, types1, types2 types.PieceType) bool {
	for _, d := range dirs {
		cur := sq
		for {
			next := stepSquare(cur, d)
			if next == types.SqNone {
				break
			}
			pc := p.board[next]
			if pc == types.PieceNone {
				cur = next
				continue
			}
			if pc.ColorOf() == by && (pc.TypeOf() == types1 || pc.TypeOf() == types2) {
				return true
			}
			break
		}
	}
	return false
}

// stepSquare steps sq one square in direction d, returning SqNone if
// the step would wrap around a board edge.
func stepSquare(sq types.Square, d types.Direction) types.Square {
	to := types.Square(int(sq) + int(d))
	if !to.IsValid() {
		return types.SqNone
	}
	if sq.FileOf().Distance(to.FileOf()) > 2 {
		return types.SqNone
	}
	return to
}

// HasCheck reports whether the side to move's king is currently in
// check.
func (p *Position) HasCheck() bool {
	us := p.nextPlayer
	return p.IsAttacked(p.kingSquare[us], us.Flip())
}

// WasLegalMove reports whether the move last applied via DoMove left
// the moving side's own king safe from check. Called immediately after
// DoMove, before searching the resulting position.
func (p *Position) WasLegalMove() bool {
	moved := p.nextPlayer.Flip()
	return !p.IsAttacked(p.kingSquare[moved], p.nextPlayer)
}

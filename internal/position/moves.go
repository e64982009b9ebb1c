//
// chesscore - a search core for a chess engine, written in Go for learning purposes
//
// MIT License
//
// Copyright (c) 2018-2020 Frank Kopp
//

package position

import "github.com/brannigan/chesscore/internal/types"

// castlingRookMove describes the rook's companion move for each of the
// four castling moves, keyed by the king's destination square.
var castlingRookMove = map[types.Square][2]types.Square{
	types.SqG1: {types.SqH1, types.SqF1},
	types.SqC1: {types.SqA1, types.SqD1},
	types.SqG8: {types.SqH8, types.SqF8},
	types.SqC8: {types.SqA8, types.SqD8},
}

// castlingRightsLost maps a square to the castling rights forfeited
// when a piece leaves from, or a rook is captured on, that square.
var castlingRightsLost = map[types.Square]types.CastlingRights{
	types.SqE1: types.CastlingWhiteKing | types.CastlingWhiteQueen,
	types.SqA1: types.CastlingWhiteQueen,
	types.SqH1: types.CastlingWhiteKing,
	types.SqE8: types.CastlingBlackKing | types.CastlingBlackQueen,
	types.SqA8: types.CastlingBlackQueen,
	types.SqH8: types.CastlingBlackKing,
}

// DoMove applies m to the position. The caller is responsible for
// ensuring m is at least pseudo-legal; DoMove does not itself check
// whether the moving side's king ends up in check, that is the job of
// WasLegalMove.
func (p *Position) DoMove(m types.Move) {
	undo := undoInfo{
		move:            m,
		castlingRights:  p.castlingRights,
		enPassantSquare: p.enPassantSquare,
		halfMoveClock:   p.halfMoveClock,
		zobristKey:      p.zobristKey,
	}

	us := p.nextPlayer
	from, to := m.From(), m.To()
	moving := p.board[from]
	movingType := moving.TypeOf()

	p.zobristKey ^= zobrist.castling[p.castlingRights]
	if p.enPassantSquare.IsValid() {
		p.zobristKey ^= zobrist.enPassant[p.enPassantSquare.FileOf()]
	} else {
		p.zobristKey ^= zobrist.enPassant[types.FileLength]
	}

	capturedSquare := to
	if m.MoveType() == types.EnPassant {
		if us == types.White {
			capturedSquare = to - 8
		} else {
			capturedSquare = to + 8
		}
	}

	captured := types.PieceNone
	if m.MoveType() == types.EnPassant || p.board[to] != types.PieceNone {
		captured = p.removePiece(capturedSquare)
		p.zobristKey ^= zobrist.piece[captured][capturedSquare]
	}
	undo.capturedPiece = captured

	p.zobristKey ^= zobrist.piece[moving][from]
	p.removePieceQuiet(from)

	finalPiece := moving
	if m.MoveType() == types.Promotion {
		finalPiece = types.MakePiece(us, m.PromotionType())
	}
	p.putPiece(finalPiece, to)
	p.zobristKey ^= zobrist.piece[finalPiece][to]

	if m.MoveType() == types.Castling {
		rookSquares := castlingRookMove[to]
		rook := p.removePiece(rookSquares[0])
		p.zobristKey ^= zobrist.piece[rook][rookSquares[0]]
		p.putPiece(rook, rookSquares[1])
		p.zobristKey ^= zobrist.piece[rook][rookSquares[1]]
	}

	if r, ok := castlingRightsLost[from]; ok {
		p.castlingRights = p.castlingRights.Remove(r)
	}
	if r, ok := castlingRightsLost[to]; ok {
		p.castlingRights = p.castlingRights.Remove(r)
	}

	p.enPassantSquare = types.SqNone
	if movingType == types.Pawn {
		diff := int(to) - int(from)
		if diff == 16 || diff == -16 {
			p.enPassantSquare = types.Square((int(from) + int(to)) / 2)
		}
	}

	if movingType == types.Pawn || captured != types.PieceNone {
		p.halfMoveClock = 0
	} else {
		p.halfMoveClock++
	}

	p.zobristKey ^= zobrist.castling[p.castlingRights]
	if p.enPassantSquare.IsValid() {
		p.zobristKey ^= zobrist.enPassant[p.enPassantSquare.FileOf()]
	} else {
		p.zobristKey ^= zobrist.enPassant[types.FileLength]
	}
	p.zobristKey ^= zobrist.sideToMove

	p.nextPlayer = us.Flip()
	p.nextHalfMoveNo++

	p.history = append(p.history, undo)
	p.keyHistory = append(p.keyHistory, p.zobristKey)
}

// removePieceQuiet removes a piece without touching material counters
// twice; used for the moving piece's origin square since its value is
// re-added at the destination by putPiece.
func (p *Position) removePieceQuiet(sq types.Square) {
	pc := p.board[sq]
	p.board[sq] = types.PieceNone
	if pc.TypeOf() == types.King {
		return
	}
	c := pc.ColorOf()
	pt := pc.TypeOf()
	p.material[c] -= pt.ValueOf()
	if pt != types.Pawn {
		p.materialNonPawn[c] -= pt.ValueOf()
	}
}

// UndoMove reverts the most recently applied move. Panics if there is
// no move to undo, which would indicate a make/undo imbalance in the
// caller.
func (p *Position) UndoMove() {
	n := len(p.history)
	undo := p.history[n-1]
	p.history = p.history[:n-1]
	p.keyHistory = p.keyHistory[:len(p.keyHistory)-1]

	p.nextPlayer = p.nextPlayer.Flip()
	p.nextHalfMoveNo--
	us := p.nextPlayer

	m := undo.move
	from, to := m.From(), m.To()

	placed := p.board[to]
	if m.MoveType() == types.Promotion {
		p.removePiece(to)
		p.putPiece(types.MakePiece(us, types.Pawn), from)
	} else {
		p.removePiece(to)
		p.putPiece(placed, from)
	}

	if m.MoveType() == types.Castling {
		rookSquares := castlingRookMove[to]
		rook := p.removePiece(rookSquares[1])
		p.putPiece(rook, rookSquares[0])
	}

	if undo.capturedPiece != types.PieceNone {
		capturedSquare := to
		if m.MoveType() == types.EnPassant {
			if us == types.White {
				capturedSquare = to - 8
			} else {
				capturedSquare = to + 8
			}
		}
		p.putPiece(undo.capturedPiece, capturedSquare)
	}

	p.castlingRights = undo.castlingRights
	p.enPassantSquare = undo.enPassantSquare
	p.halfMoveClock = undo.halfMoveClock
	p.zobristKey = undo.zobristKey
}

// DoNullMove passes the turn without moving a piece, used by null move
// pruning. The en passant square is cleared, matching the rule that a
// null move forfeits any pending en passant capture.
func (p *Position) DoNullMove() {
	undo := undoInfo{
		move:            types.MoveNone,
		castlingRights:  p.castlingRights,
		enPassantSquare: p.enPassantSquare,
		halfMoveClock:   p.halfMoveClock,
		zobristKey:      p.zobristKey,
		wasNullMove:     true,
	}
	if p.enPassantSquare.IsValid() {
		p.zobristKey ^= zobrist.enPassant[p.enPassantSquare.FileOf()]
		p.zobristKey ^= zobrist.enPassant[types.FileLength]
	}
	p.enPassantSquare = types.SqNone
	p.zobristKey ^= zobrist.sideToMove
	p.nextPlayer = p.nextPlayer.Flip()
	p.nextHalfMoveNo++
	p.history = append(p.history, undo)
	p.keyHistory = append(p.keyHistory, p.zobristKey)
}

// UndoNullMove reverts DoNullMove. Panics if the top of the history
// stack is not a null move, guarding against a make/undo mismatch.
func (p *Position) UndoNullMove() {
	n := len(p.history)
	undo := p.history[n-1]
	if !undo.wasNullMove {
		panic("position: UndoNullMove called without a matching DoNullMove")
	}
	p.history = p.history[:n-1]
	p.keyHistory = p.keyHistory[:len(p.keyHistory)-1]
	p.nextPlayer = p.nextPlayer.Flip()
	p.nextHalfMoveNo--
	p.castlingRights = undo.castlingRights
	p.enPassantSquare = undo.enPassantSquare
	p.halfMoveClock = undo.halfMoveClock
	p.zobristKey = undo.zobristKey
}

// LastMove returns the most recently applied move, or MoveNone if the
// position has no history.
func (p *Position) LastMove() types.Move {
	if len(p.history) == 0 {
		return types.MoveNone
	}
	return p.history[len(p.history)-1].move
}

//
// chesscore - a search core for a chess engine, written in Go for learning purposes
//
// MIT License
//
// Copyright (c) 2018-2020 Frank Kopp
//

package position

import (
	"fmt"
	"strings"

	"github.com/brannigan/chesscore/internal/types"
)

// StartFen is the FEN of the standard chess starting position.
const StartFen = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// undoInfo captures everything a move mutates that DoMove cannot
// otherwise reconstruct on UndoMove: captured piece, rights, clocks and
// the hash key prior to the move.
type undoInfo struct {
	move            types.Move
	capturedPiece   types.Piece
	castlingRights  types.CastlingRights
	enPassantSquare types.Square
	halfMoveClock   int
	zobristKey      types.Key
	wasNullMove     bool
}

// Position is a mailbox representation of a chess position: an array of
// 64 squares plus the auxiliary state (side to move, castling rights,
// en passant target, move clocks) needed to make, unmake and evaluate
// moves.
//
// Moves are applied and reverted in strict LIFO order via DoMove /
// UndoMove, mirroring the make/undo contract a recursive search walks
// the game tree with.
type Position struct {
	board           [types.SqLength]types.Piece
	nextPlayer      types.Color
	castlingRights  types.CastlingRights
	enPassantSquare types.Square
	halfMoveClock   int
	nextHalfMoveNo  int
	kingSquare      [2]types.Square
	material        [2]types.Value
	materialNonPawn [2]types.Value
	gamePhase       int
	zobristKey      types.Key
	history         []undoInfo
	keyHistory      []types.Key
}

// NewPosition creates a Position from the standard starting FEN.
func NewPosition() *Position {
	p, err := NewPositionFen(StartFen)
	if err != nil {
		panic(err)
	}
	return p
}

// NewPositionFen creates a Position from a FEN string.
func NewPositionFen(fen string) (*Position, error) {
	p := &Position{enPassantSquare: types.SqNone}
	if err := p.setupFromFen(fen); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Position) setupFromFen(fen string) error {
	fields := strings.Fields(strings.TrimSpace(fen))
	if len(fields) < 4 {
		return fmt.Errorf("position: invalid fen %q: need at least 4 fields", fen)
	}

	for i := range p.board {
		p.board[i] = types.PieceNone
	}

	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return fmt.Errorf("position: invalid fen %q: need 8 ranks", fen)
	}
	for i, rankStr := range ranks {
		rank := types.Rank(7 - i)
		file := types.FileA
		for _, c := range rankStr {
			switch {
			case c >= '1' && c <= '8':
				file += types.File(c - '0')
			default:
				pc, err := pieceFromChar(c)
				if err != nil {
					return fmt.Errorf("position: invalid fen %q: %w", fen, err)
				}
				sq := types.SquareOf(file, rank)
				if sq == types.SqNone {
					return fmt.Errorf("position: invalid fen %q: rank overflow", fen)
				}
				p.putPiece(pc, sq)
				file++
			}
		}
	}

	switch fields[1] {
	case "w":
		p.nextPlayer = types.White
	case "b":
		p.nextPlayer = types.Black
	default:
		return fmt.Errorf("position: invalid fen %q: bad side to move", fen)
	}

	p.castlingRights = types.CastlingNone
	if fields[2] != "-" {
		for _, c := range fields[2] {
			switch c {
			case 'K':
				p.castlingRights |= types.CastlingWhiteKing
			case 'Q':
				p.castlingRights |= types.CastlingWhiteQueen
			case 'k':
				p.castlingRights |= types.CastlingBlackKing
			case 'q':
				p.castlingRights |= types.CastlingBlackQueen
			}
		}
	}

	p.enPassantSquare = types.SqNone
	if fields[3] != "-" {
		p.enPassantSquare = types.MakeSquare(fields[3])
	}

	p.halfMoveClock = 0
	p.nextHalfMoveNo = 1
	if len(fields) >= 5 {
		fmt.Sscanf(fields[4], "%d", &p.halfMoveClock)
	}
	if len(fields) >= 6 {
		var fullMove int
		fmt.Sscanf(fields[5], "%d", &fullMove)
		p.nextHalfMoveNo = fullMove*2 - 1
		if p.nextPlayer == types.Black {
			p.nextHalfMoveNo++
		}
	}

	p.zobristKey = p.computeZobristKey()
	p.keyHistory = append(p.keyHistory, p.zobristKey)
	return nil
}

func pieceFromChar(c rune) (types.Piece, error) {
	var color types.Color
	if c >= 'a' && c <= 'z' {
		color = types.Black
	} else {
		color = types.White
	}
	switch c {
	case 'k', 'K':
		return types.MakePiece(color, types.King), nil
	case 'p', 'P':
		return types.MakePiece(color, types.Pawn), nil
	case 'n', 'N':
		return types.MakePiece(color, types.Knight), nil
	case 'b', 'B':
		return types.MakePiece(color, types.Bishop), nil
	case 'r', 'R':
		return types.MakePiece(color, types.Rook), nil
	case 'q', 'Q':
		return types.MakePiece(color, types.Queen), nil
	default:
		return types.PieceNone, fmt.Errorf("unknown piece char %q", c)
	}
}

func (p *Position) putPiece(pc types.Piece, sq types.Square) {
	p.board[sq] = pc
	c := pc.ColorOf()
	pt := pc.TypeOf()
	if pt == types.King {
		p.kingSquare[c] = sq
	} else {
		p.material[c] += pt.ValueOf()
		if pt != types.Pawn {
			p.materialNonPawn[c] += pt.ValueOf()
		}
	}
}

func (p *Position) removePiece(sq types.Square) types.Piece {
	pc := p.board[sq]
	p.board[sq] = types.PieceNone
	if pc == types.PieceNone {
		return pc
	}
	c := pc.ColorOf()
	pt := pc.TypeOf()
	if pt != types.King {
		p.material[c] -= pt.ValueOf()
		if pt != types.Pawn {
			p.materialNonPawn[c] -= pt.ValueOf()
		}
	}
	return pc
}

// NextPlayer returns the color to move.
func (p *Position) NextPlayer() types.Color { return p.nextPlayer }

// PieceAt returns the piece occupying sq, or PieceNone if empty.
func (p *Position) PieceAt(sq types.Square) types.Piece { return p.board[sq] }

// CastlingRights returns the position's current castling rights.
func (p *Position) CastlingRights() types.CastlingRights { return p.castlingRights }

// EnPassantSquare returns the current en passant target square, or
// SqNone if none is set.
func (p *Position) EnPassantSquare() types.Square { return p.enPassantSquare }

// HalfMoveClock returns the number of half moves since the last
// capture or pawn move, for the fifty-move rule.
func (p *Position) HalfMoveClock() int { return p.halfMoveClock }

// NextHalfMoveNumber returns the half-move counter, starting at 1 for
// White's first move.
func (p *Position) NextHalfMoveNumber() int { return p.nextHalfMoveNo }

// ZobristKey returns the position's current Zobrist hash.
func (p *Position) ZobristKey() types.Key { return p.zobristKey }

// Material returns the non-king material value for the given color.
func (p *Position) Material(c types.Color) types.Value { return p.material[c] }

// MaterialNonPawn returns the non-king, non-pawn material value for
// the given color.
func (p *Position) MaterialNonPawn(c types.Color) types.Value { return p.materialNonPawn[c] }

// KingSquare returns the square the given color's king occupies.
func (p *Position) KingSquare(c types.Color) types.Square { return p.kingSquare[c] }

// computeZobristKey recomputes the hash from scratch, used only at
// setup; DoMove/UndoMove maintain it incrementally afterwards.
func (p *Position) computeZobristKey() types.Key {
	var key types.Key
	for sq := types.Square(0); sq < types.SqLength; sq++ {
		if pc := p.board[sq]; pc != types.PieceNone {
			key ^= zobrist.piece[pc][sq]
		}
	}
	key ^= zobrist.castling[p.castlingRights]
	if p.enPassantSquare.IsValid() {
		key ^= zobrist.enPassant[p.enPassantSquare.FileOf()]
	} else {
		key ^= zobrist.enPassant[types.FileLength]
	}
	if p.nextPlayer == types.Black {
		key ^= zobrist.sideToMove
	}
	return key
}

// StringFen renders the position back to FEN notation.
func (p *Position) StringFen() string {
	var sb strings.Builder
	for r := 7; r >= 0; r-- {
		empty := 0
		for f := 0; f < 8; f++ {
			sq := types.SquareOf(types.File(f), types.Rank(r))
			pc := p.board[sq]
			if pc == types.PieceNone {
				empty++
				continue
			}
			if empty > 0 {
				fmt.Fprintf(&sb, "%d", empty)
				empty = 0
			}
			sb.WriteString(pc.String())
		}
		if empty > 0 {
			fmt.Fprintf(&sb, "%d", empty)
		}
		if r > 0 {
			sb.WriteByte('/')
		}
	}
	sb.WriteByte(' ')
	sb.WriteString(p.nextPlayer.String())
	sb.WriteByte(' ')
	sb.WriteString(p.castlingRights.String())
	sb.WriteByte(' ')
	sb.WriteString(p.enPassantSquare.String())
	fmt.Fprintf(&sb, " %d %d", p.halfMoveClock, (p.nextHalfMoveNo+1)/2)
	return sb.String()
}

func (p *Position) String() string {
	return p.StringFen()
}

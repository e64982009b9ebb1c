//
// chesscore - a search core for a chess engine, written in Go for learning purposes
//
// MIT License
//
// Copyright (c) 2018-2020 Frank Kopp
//

package position

import "github.com/brannigan/chesscore/internal/types"

// CheckRepetitions counts how many times the current position's
// Zobrist key has occurred previously in the game's key history,
// including the current occurrence. A search treats a count of 3 or
// more as a draw by threefold repetition.
func (p *Position) CheckRepetitions() int {
	count := 0
	key := p.zobristKey
	// the fifty-move counter bounds how far back a repetition can
	// possibly reach: any move that resets it (capture or pawn push)
	// is irreversible
	limit := len(p.keyHistory) - p.halfMoveClock - 1
	if limit < 0 {
		limit = 0
	}
	for i := len(p.keyHistory) - 1; i >= limit; i -= 2 {
		if p.keyHistory[i] == key {
			count++
		}
	}
	return count
}

// IsDrawByRepetition reports whether the position is a draw by
// threefold repetition.
func (p *Position) IsDrawByRepetition() bool {
	return p.CheckRepetitions() >= 3
}

// IsDrawByFiftyMoveRule reports whether the fifty-move rule applies.
func (p *Position) IsDrawByFiftyMoveRule() bool {
	return p.halfMoveClock >= 100
}

// HasInsufficientMaterial reports whether neither side has enough
// material left to deliver checkmate, covering K vs K, K+N vs K and
// K+B vs K. Same-colored opposite bishops and other drawn-but-mating-
// material-present endings are intentionally not covered here.
func (p *Position) HasInsufficientMaterial() bool {
	var minorCount [2]int
	var hasMajorOrPawn bool
	for sq := types.Square(0); sq < types.SqLength; sq++ {
		pc := p.board[sq]
		if pc == types.PieceNone {
			continue
		}
		switch pc.TypeOf() {
		case types.King:
			// no material contribution
		case types.Knight, types.Bishop:
			minorCount[pc.ColorOf()]++
		default:
			hasMajorOrPawn = true
		}
	}
	if hasMajorOrPawn {
		return false
	}
	return minorCount[types.White] <= 1 && minorCount[types.Black] <= 1 &&
		minorCount[types.White]+minorCount[types.Black] <= 1
}

// IsDraw reports whether the position is a draw by any of the rules
// the search recognizes: repetition, the fifty-move rule, or
// insufficient material. Stalemate is detected separately by the
// search, since it requires generating legal moves.
func (p *Position) IsDraw() bool {
	return p.IsDrawByRepetition() || p.IsDrawByFiftyMoveRule() || p.HasInsufficientMaterial()
}

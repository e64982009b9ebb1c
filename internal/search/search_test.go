//
// chesscore - a search core for a chess engine, written in Go for learning purposes
//
// MIT License
//
// Copyright (c) 2018-2020 Frank Kopp
//

package search

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brannigan/chesscore/internal/config"
	"github.com/brannigan/chesscore/internal/position"
	"github.com/brannigan/chesscore/internal/types"
)

func newTestSearchConfig() *config.SearchConfig {
	cfg := config.Default().Search
	return &cfg
}

func TestFindsMateInOne(t *testing.T) {
	// classic scholar's mate setup, Qxf7 is mate since the queen is
	// defended by the bishop on c4
	pos, err := position.NewPositionFen("r1bqkb1r/pppp1ppp/2n2n2/4p2Q/2B1P3/8/PPPP1PPP/RNB1K1NR w KQkq - 4 4")
	require.NoError(t, err)

	s := NewSearch(newTestSearchConfig())
	result := s.StartSearch(context.Background(), pos, Limits{Depth: 5})

	assert.True(t, result.Value.IsCheckMateValue())
	assert.Equal(t, types.SqH5, result.BestMove.From())
	assert.Equal(t, types.SqF7, result.BestMove.To())
}

func TestAspirationWindowConvergesSameAsFullWidth(t *testing.T) {
	pos := position.NewPosition()

	cfg1 := newTestSearchConfig()
	cfg1.UseAspirationWindow = false
	s1 := NewSearch(cfg1)
	r1 := s1.StartSearch(context.Background(), pos, Limits{Depth: 4})

	cfg2 := newTestSearchConfig()
	s2 := NewSearch(cfg2)
	r2 := s2.StartSearch(context.Background(), pos, Limits{Depth: 4})

	assert.Equal(t, r1.Value, r2.Value)
}

func TestSearchRespectsMoveTime(t *testing.T) {
	pos := position.NewPosition()
	s := NewSearch(newTestSearchConfig())

	start := time.Now()
	s.StartSearch(context.Background(), pos, Limits{MoveTime: 50 * time.Millisecond})
	assert.Less(t, time.Since(start), 2*time.Second)
}

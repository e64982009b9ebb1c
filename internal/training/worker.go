//
// chesscore - a search core for a chess engine, written in Go for learning purposes
//
// MIT License
//
// Copyright (c) 2018-2020 Frank Kopp
//

package training

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/brannigan/chesscore/internal/config"
	"github.com/brannigan/chesscore/internal/logging"
	"github.com/brannigan/chesscore/internal/movegen"
	"github.com/brannigan/chesscore/internal/position"
	"github.com/brannigan/chesscore/internal/search"
	"github.com/brannigan/chesscore/internal/types"
)

// msPerMove is fixed by the training protocol: every worker plays at a
// constant time budget per move rather than the adaptive clock
// management a real game would use, so that recorded evaluations are
// comparable across the whole corpus.
const msPerMove = 125 * time.Millisecond

// worker plays self-play games to completion and writes labelled FEN
// positions to its own output file. One worker is never shared across
// goroutines; Session runs N of them concurrently, each with its own
// Search instance and random source.
type worker struct {
	id      int
	cfg     *config.TrainingConfig
	searchCfg *config.SearchConfig
	rng     *rand.Rand
	file    *os.File
	written int
}

func newWorker(id int, cfg *config.TrainingConfig, searchCfg *config.SearchConfig, outDir string) (*worker, error) {
	name := filepath.Join(outDir, fmt.Sprintf("%s%02d.txt", cfg.OutputFilePrefix, id))
	f, err := os.Create(name)
	if err != nil {
		return nil, fmt.Errorf("training: worker %d: %w", id, err)
	}
	return &worker{
		id:        id,
		cfg:       cfg,
		searchCfg: searchCfg,
		rng:       rand.New(rand.NewSource(int64(id)*9973 + 1)),
		file:      f,
	}, nil
}

// run plays games until ctx is cancelled, returning the path it wrote
// to so Session can merge it afterward.
func (w *worker) run(ctx context.Context) (string, error) {
	defer w.file.Close()
	eng := search.NewSearch(w.searchCfg)

	for ctx.Err() == nil {
		if err := w.playOneGame(ctx, eng); err != nil {
			return w.file.Name(), err
		}
	}
	return w.file.Name(), nil
}

func (w *worker) playOneGame(ctx context.Context, eng *search.Search) error {
	pos := position.NewPosition()
	eng.NewGame()

	openingPlies := w.cfg.MinOpeningPlies + w.rng.Intn(w.cfg.MaxOpeningPlies-w.cfg.MinOpeningPlies+1)

	var tail *GameData
	plies := 0
	const maxPlies = 400

	for plies < maxPlies {
		if ctx.Err() != nil {
			return nil
		}

		legal := movegen.GenerateLegalMoves(pos)
		if legal.Len() == 0 {
			if pos.HasCheck() {
				if pos.NextPlayer() == types.White {
					return w.finish(tail, outcomeBlackWin)
				}
				return w.finish(tail, outcomeWhiteWin)
			}
			return w.finish(tail, outcomeDraw)
		}
		if pos.IsDraw() {
			return w.finish(tail, outcomeDraw)
		}

		var mv types.Move
		var evalScore types.Value
		if plies < openingPlies {
			mv = legal[w.rng.Intn(legal.Len())].MoveOf()
		} else {
			moveCtx, cancel := context.WithTimeout(ctx, msPerMove)
			result := eng.StartSearch(moveCtx, pos, search.Limits{MoveTime: msPerMove})
			cancel()
			mv = result.BestMove
			evalScore = result.Value
			if !mv.IsValid() {
				mv = legal[0].MoveOf()
			}
		}

		// TODO: this only excludes in-check, mate, and insufficient-material
		// positions; a 50-move-rule or repetition draw still underway is not
		// filtered out of the recorded corpus, only the game outcome it
		// eventually produces is affected.
		if !pos.HasCheck() && !evalScore.IsCheckMateValue() && !pos.HasInsufficientMaterial() {
			whitePovEval := evalScore
			if pos.NextPlayer() == types.Black {
				whitePovEval = -evalScore
			}
			tail = &GameData{Fen: pos.StringFen(), WhitePovEval: whitePovEval, MovePlayed: mv, Prev: tail}
		}

		pos.DoMove(mv)
		plies++
	}

	return w.finish(tail, outcomeDraw)
}

func (w *worker) finish(tail *GameData, result outcome) error {
	if tail == nil {
		return nil
	}
	var writeErr error
	tail.label(result, func(fen string, whitePovEval types.Value, score float64) {
		if writeErr != nil {
			return
		}
		_, writeErr = fmt.Fprintf(w.file, "%s | %d | %.1f\n", fen, whitePovEval, score)
		w.written++
	})
	if writeErr != nil {
		return writeErr
	}
	logging.GetLog().Debugf("training worker %d: recorded game, %d positions so far", w.id, w.written)
	return nil
}

//
// chesscore - a search core for a chess engine, written in Go for learning purposes
//
// MIT License
//
// Copyright (c) 2018-2020 Frank Kopp
//

package training

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/brannigan/chesscore/internal/config"
	"github.com/brannigan/chesscore/internal/logging"
)

// Session runs a pool of self-play workers concurrently and merges
// their output into a single labelled-FEN corpus file once they stop.
type Session struct {
	trainingCfg *config.TrainingConfig
	searchCfg   *config.SearchConfig
}

// NewSession creates a training session from the given configuration.
func NewSession(trainingCfg *config.TrainingConfig, searchCfg *config.SearchConfig) *Session {
	return &Session{trainingCfg: trainingCfg, searchCfg: searchCfg}
}

// Run starts NumberOfWorkers self-play workers and blocks until ctx is
// cancelled, then merges every worker's output file into a single
// training_data.txt in the configured output directory and removes
// the per-worker intermediates.
func (s *Session) Run(ctx context.Context) error {
	if err := os.MkdirAll(s.trainingCfg.OutputDirectory, 0o755); err != nil {
		return fmt.Errorf("training: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	paths := make([]string, s.trainingCfg.NumberOfWorkers)

	for i := 0; i < s.trainingCfg.NumberOfWorkers; i++ {
		i := i
		w, err := newWorker(i, s.trainingCfg, s.searchCfg, s.trainingCfg.OutputDirectory)
		if err != nil {
			return err
		}
		g.Go(func() error {
			path, err := w.run(gctx)
			paths[i] = path
			return err
		})
	}

	logging.GetLog().Infof("training: started %d self-play workers", s.trainingCfg.NumberOfWorkers)
	err := g.Wait()

	if mergeErr := s.merge(paths); mergeErr != nil && err == nil {
		err = mergeErr
	}
	return err
}

// merge concatenates every worker's output file into training_data.txt
// and removes the per-worker files, leaving a single corpus behind.
func (s *Session) merge(paths []string) error {
	mergedPath := filepath.Join(s.trainingCfg.OutputDirectory, "training_data.txt")
	out, err := os.Create(mergedPath)
	if err != nil {
		return fmt.Errorf("training: merge: %w", err)
	}
	defer out.Close()

	writer := bufio.NewWriter(out)
	defer writer.Flush()

	total := 0
	for _, p := range paths {
		if p == "" {
			continue
		}
		if err := appendFile(writer, p); err != nil {
			logging.GetLog().Warningf("training: merge: skipping %s: %v", p, err)
			continue
		}
		total++
		os.Remove(p)
	}

	logging.GetLog().Infof("training: merged %d worker files into %s", total, mergedPath)
	return nil
}

func appendFile(dst *bufio.Writer, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = io.Copy(dst, f)
	return err
}

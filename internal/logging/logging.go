//
// chesscore - a search core for a chess engine, written in Go for learning purposes
//
// MIT License
//
// Copyright (c) 2018-2020 Frank Kopp
//

package logging

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	logging "github.com/op/go-logging"

	"github.com/brannigan/chesscore/internal/config"
)

var (
	once       sync.Once
	mainLog    = logging.MustGetLogger("chesscore")
	searchLog  = logging.MustGetLogger("search")
	logFormat  = logging.MustStringFormatter(
		`%{time:15:04:05.000} %{level:-7s} %{module}: %{message}`,
	)
)

// Setup wires both loggers' backends from cfg. It is idempotent: later
// calls are ignored so a training worker goroutine spawned after the
// main logger is configured does not reconfigure it out from under
// concurrent users.
func Setup(cfg *config.LogConfig) {
	once.Do(func() {
		backends := []logging.Backend{consoleBackend()}
		if cfg.LogToFile {
			if fb := fileBackend(cfg.LogDirectory); fb != nil {
				backends = append(backends, fb)
			}
		}
		logging.SetBackend(backends...)
		logging.SetLevel(levelOf(cfg.Level), "chesscore")
		logging.SetLevel(levelOf(cfg.SearchLevel), "search")
	})
}

func consoleBackend() logging.Backend {
	backend := logging.NewLogBackend(os.Stderr, "", 0)
	formatted := logging.NewBackendFormatter(backend, logFormat)
	return formatted
}

func fileBackend(dir string) logging.Backend {
	if dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil
	}
	name := filepath.Join(dir, "chesscore_"+time.Now().Format("20060102_150405")+".log")
	f, err := os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil
	}
	backend := logging.NewLogBackend(f, "", 0)
	return logging.NewBackendFormatter(backend, logFormat)
}

func levelOf(s string) logging.Level {
	lvl, err := logging.LogLevel(s)
	if err != nil {
		return logging.INFO
	}
	return lvl
}

// GetLog returns the engine's main logger, used for configuration,
// UCI command handling and lifecycle events.
func GetLog() *logging.Logger {
	return mainLog
}

// GetSearchLog returns the logger dedicated to search internals,
// typically run at a higher verbosity than the main logger during
// development and kept quiet in production.
func GetSearchLog() *logging.Logger {
	return searchLog
}

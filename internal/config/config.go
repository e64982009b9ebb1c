//
// chesscore - a search core for a chess engine, written in Go for learning purposes
//
// MIT License
//
// Copyright (c) 2018-2020 Frank Kopp
//

package config

import (
	"os"

	"github.com/BurntSushi/toml"
)

// SearchConfig holds the search tunables, kept as fields (not Go
// consts) so a config file can change them without a rebuild.
// UseKillerMoves, UseHistoryHeuristic, LateMoveReduction and
// LateMoveMinDepth are not read by the search: killers and history are
// always used, and the late-move reduction amount is fixed in the
// search. UseQuiescence only controls whether quiescence skips captures
// that lose material by SEE; quiescence itself always runs.
type SearchConfig struct {
	UseTranspositionTable bool `toml:"use_transposition_table"`
	UseQuiescence         bool `toml:"use_quiescence"`
	UseAspirationWindow   bool `toml:"use_aspiration_window"`
	AspirationWindowCp    int  `toml:"aspiration_window_cp"`
	UseNullMovePruning    bool `toml:"use_null_move_pruning"`
	NullMoveReduction     int  `toml:"null_move_reduction"`
	NullMoveMinDepth      int  `toml:"null_move_min_depth"`
	UseReverseFutility    bool `toml:"use_reverse_futility"`
	ReverseFutilityMargin int  `toml:"reverse_futility_margin"`
	UseFutilityPruning    bool `toml:"use_futility_pruning"`
	FutilityMaxDepth      int  `toml:"futility_max_depth"`
	UseLateMoveReduction  bool `toml:"use_late_move_reduction"`
	LateMoveReduction     int  `toml:"late_move_reduction"`
	LateMoveMinDepth      int  `toml:"late_move_min_depth"`
	UseKillerMoves        bool `toml:"use_killer_moves"`
	UseHistoryHeuristic   bool `toml:"use_history_heuristic"`
	TtSizeMb              int  `toml:"tt_size_mb"`
}

// EvalConfig holds static evaluation toggles. The evaluator does not
// read them: piece-square tables are always applied.
type EvalConfig struct {
	UsePieceSquareTables bool `toml:"use_piece_square_tables"`
	UseTaperedEval       bool `toml:"use_tapered_eval"`
}

// LogConfig controls the logging package's two independent loggers.
type LogConfig struct {
	Level        string `toml:"level"`
	SearchLevel  string `toml:"search_level"`
	LogToFile    bool   `toml:"log_to_file"`
	LogDirectory string `toml:"log_directory"`
}

// TrainingConfig controls the self-play training driver. MillisPerMove
// is not read: workers search each move for a fixed 125 ms.
type TrainingConfig struct {
	NumberOfWorkers  int    `toml:"number_of_workers"`
	MillisPerMove    int    `toml:"millis_per_move"`
	MinOpeningPlies  int    `toml:"min_opening_plies"`
	MaxOpeningPlies  int    `toml:"max_opening_plies"`
	OutputDirectory  string `toml:"output_directory"`
	OutputFilePrefix string `toml:"output_file_prefix"`
}

// Settings is the root configuration object, loaded from a TOML file
// and otherwise defaulted to values suitable for local development.
type Settings struct {
	Search   SearchConfig   `toml:"search"`
	Eval     EvalConfig     `toml:"eval"`
	Log      LogConfig      `toml:"log"`
	Training TrainingConfig `toml:"training"`
}

// Default returns the settings the engine runs with absent a config
// file, matching the fixed constants the search interface commits to.
func Default() *Settings {
	return &Settings{
		Search: SearchConfig{
			UseTranspositionTable: true,
			UseQuiescence:         true,
			UseAspirationWindow:   true,
			AspirationWindowCp:    25,
			UseNullMovePruning:    true,
			NullMoveReduction:     4,
			NullMoveMinDepth:      3,
			UseReverseFutility:    true,
			ReverseFutilityMargin: 150,
			UseFutilityPruning:    true,
			FutilityMaxDepth:      4,
			UseLateMoveReduction:  true,
			LateMoveReduction:     2,
			LateMoveMinDepth:      1,
			UseKillerMoves:        true,
			UseHistoryHeuristic:   true,
			TtSizeMb:              64,
		},
		Eval: EvalConfig{
			UsePieceSquareTables: true,
			UseTaperedEval:       true,
		},
		Log: LogConfig{
			Level:        "INFO",
			SearchLevel:  "INFO",
			LogToFile:    false,
			LogDirectory: "./logs",
		},
		Training: TrainingConfig{
			NumberOfWorkers:  4,
			MillisPerMove:    125,
			MinOpeningPlies:  5,
			MaxOpeningPlies:  10,
			OutputDirectory:  "./training_data",
			OutputFilePrefix: "training_data",
		},
	}
}

// Load reads settings from a TOML file at path, falling back silently
// to Default if the file does not exist, and returning an error only
// if the file exists but fails to parse.
func Load(path string) (*Settings, error) {
	settings := Default()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return settings, nil
	}
	if _, err := toml.DecodeFile(path, settings); err != nil {
		return nil, err
	}
	return settings, nil
}

package config

import (
	"log/slog"

	"gopkg.in/natefinch/lumberjack.v2"
)

// SetupLogging routes the default slog logger to a rotating log file under
// the data directory. Terminal output stays reserved for pterm.
func SetupLogging(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	w := &lumberjack.Logger{
		Filename:   LogFilePath(),
		MaxSize:    5, // megabytes
		MaxBackups: 3,
	}

	slog.SetDefault(
		slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})),
	)
}

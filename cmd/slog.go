package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/lmittmann/tint"
)

// setupLogger installs the process logger. Debug level gets coloured,
// source-annotated output for a terminal; anything else is JSON on stderr
// for the log collector.
func setupLogger(level slog.Level) {
	if level > slog.LevelDebug {
		slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		return
	}

	handler := tint.NewHandler(os.Stdout, &tint.Options{
		Level:       level,
		TimeFormat:  time.TimeOnly,
		AddSource:   true,
		ReplaceAttr: shortenDebugAttr,
	})
	slog.SetDefault(slog.New(handler))
	slog.Debug("debug logging enabled")
}

// shortenDebugAttr trims source paths to package/file.go and colours errors.
func shortenDebugAttr(_ []string, a slog.Attr) slog.Attr {
	if a.Key == slog.SourceKey {
		if source, ok := a.Value.Any().(*slog.Source); ok {
			source.File = filepath.Join(filepath.Base(filepath.Dir(source.File)), filepath.Base(source.File))
		}
		return a
	}

	if err, ok := a.Value.Any().(error); ok {
		colored := tint.Err(err)
		colored.Key = a.Key
		return colored
	}
	return a
}

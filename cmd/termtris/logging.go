package main

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/lixenwraith/termtris/parameter"
	"github.com/pkg/errors"
)

// setupLogging opens the debug log under dir, rotating it once it grows past parameter.MaxLogSize
// With debug off every record is discarded and the returned file is nil
// The terminal owns stdout and stderr while the game runs, so logs never go there
func setupLogging(debug bool, dir string) (*slog.Logger, *os.File, error) {
	if !debug {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), nil, nil
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, errors.Wrapf(err, "create log dir %s", dir)
	}

	path := filepath.Join(dir, parameter.LogFileName)
	if info, err := os.Stat(path); err == nil && info.Size() > parameter.MaxLogSize {
		rotated := filepath.Join(dir, "termtris-"+time.Now().Format("20060102-150405")+".log")
		if err := os.Rename(path, rotated); err != nil {
			return nil, nil, errors.Wrap(err, "rotate log")
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "open log %s", path)
	}

	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return logger, f, nil
}

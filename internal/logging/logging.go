// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logging builds the application logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/pdiddy/addnotespace/pkg/types"
)

// DefaultLevel is used when no level is configured.
const DefaultLevel = logrus.WarnLevel

// MaxFileSize is the size at which the log file is rotated.
const MaxFileSize = 5 << 20

// FileName is the default log file name.
const FileName = "addnotespace.log"

// New returns a logger writing text lines with full timestamps to stderr
// and, when cfg.File is set, to a rotating log file. Close the returned
// io.Closer on exit.
func New(cfg types.LogConfig, stderr io.Writer) (*logrus.Logger, io.Closer, error) {
	level := DefaultLevel
	if cfg.Level != "" {
		l, err := logrus.ParseLevel(strings.TrimSpace(cfg.Level))
		if err != nil {
			return nil, nil, fmt.Errorf("log level: %w", err)
		}
		level = l
	}

	logger := logrus.New()
	logger.SetLevel(level)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	logger.SetOutput(stderr)

	if cfg.File == "" {
		return logger, io.NopCloser(nil), nil
	}

	rf, err := OpenRotating(cfg.File, MaxFileSize)
	if err != nil {
		return nil, nil, err
	}
	logger.SetOutput(io.MultiWriter(stderr, rf))
	return logger, rf, nil
}

// RotatingFile is an append-only log file that is renamed to path + ".1"
// once it would grow beyond its size limit. A single backup is kept.
type RotatingFile struct {
	mu   sync.Mutex
	path string
	max  int64
	f    *os.File
	size int64
}

// OpenRotating opens (or creates) path for appending.
func OpenRotating(path string, max int64) (*RotatingFile, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}
	rf := &RotatingFile{path: path, max: max}
	if err := rf.open(); err != nil {
		return nil, err
	}
	return rf, nil
}

func (rf *RotatingFile) open() error {
	f, err := os.OpenFile(rf.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return fmt.Errorf("stat log file: %w", err)
	}
	rf.f, rf.size = f, info.Size()
	return nil
}

func (rf *RotatingFile) Write(p []byte) (int, error) {
	rf.mu.Lock()
	defer rf.mu.Unlock()

	if rf.size > 0 && rf.size+int64(len(p)) > rf.max {
		if err := rf.rotate(); err != nil {
			return 0, err
		}
	}
	n, err := rf.f.Write(p)
	rf.size += int64(n)
	return n, err
}

func (rf *RotatingFile) rotate() error {
	if err := rf.f.Close(); err != nil {
		return err
	}
	if err := os.Rename(rf.path, rf.path+".1"); err != nil {
		return fmt.Errorf("rotating log file: %w", err)
	}
	return rf.open()
}

// Close closes the current file.
func (rf *RotatingFile) Close() error {
	rf.mu.Lock()
	defer rf.mu.Unlock()
	return rf.f.Close()
}

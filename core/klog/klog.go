// Package klog is the logging backend used by the engine-layer packages
// (core/codec, core/wire, core/handler, core/task). It wraps
// gopkg.in/op/go-logging.v1, reconstructed from the *log.Backend /
// logBackend.GetLogger(name) shape threaded through the teacher's
// client/cborplugin and server/cborplugin packages and disk.go.
package klog

import (
	"fmt"
	"io"
	"os"

	logging "gopkg.in/op/go-logging.v1"
)

var fileFormat = logging.MustStringFormatter(
	`%{time:2006-01-02T15:04:05.000} %{level:.4s} %{module}: %{message}`,
)

// Backend installs one process-wide op/go-logging destination and level,
// then issues named *logging.Logger handles against it — op/go-logging
// itself has a single global backend, so Backend's job is just to set it
// up once and hand out module-tagged loggers afterward.
type Backend struct {
	leveled logging.LeveledBackend
}

// New builds a Backend writing to w at the given level ("DEBUG", "INFO",
// "NOTICE", "WARNING", "ERROR", "CRITICAL"). An empty level defaults to
// "NOTICE".
func New(w io.Writer, level string) (*Backend, error) {
	if level == "" {
		level = "NOTICE"
	}
	lvl, err := logging.LogLevel(level)
	if err != nil {
		return nil, fmt.Errorf("klog: invalid log level %q: %w", level, err)
	}

	fileBackend := logging.NewLogBackend(w, "", 0)
	formatted := logging.NewBackendFormatter(fileBackend, fileFormat)
	leveled := logging.AddModuleLevel(formatted)
	leveled.SetLevel(lvl, "")
	logging.SetBackend(leveled)

	return &Backend{leveled: leveled}, nil
}

// NewStderr is the common case: log to stderr at the given level.
func NewStderr(level string) (*Backend, error) {
	return New(os.Stderr, level)
}

// GetLogger returns a logger tagged with module, sharing this Backend's
// destination and level.
func (b *Backend) GetLogger(module string) *logging.Logger {
	return logging.MustGetLogger(module)
}

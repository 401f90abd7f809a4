package tds

import (
	"io"
	"log/slog"
	"sync"
)

var (
	// pkgLogger receives diagnostics from the decoder and from connections
	// that were not given their own logger.
	pkgLogger = slog.New(slog.NewTextHandler(io.Discard, nil))
	logMu     sync.RWMutex
)

// SetLogger installs the package-wide logger. Passing nil restores the
// default, which discards everything.
func SetLogger(l *slog.Logger) {
	logMu.Lock()
	defer logMu.Unlock()
	if l == nil {
		l = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	pkgLogger = l
}

func logger() *slog.Logger {
	logMu.RLock()
	l := pkgLogger
	logMu.RUnlock()
	return l
}

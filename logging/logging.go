// Package logging sets up the global zerolog logger. The TUI owns the
// terminal, so output goes to a file or nowhere.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Options select the log destination and level. An empty File discards all
// output.
type Options struct {
	Level string
	File  string
	MaxMB int
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Init installs the global logger. The returned closer flushes the log file.
func Init(opts Options) (io.Closer, error) {
	level := zerolog.InfoLevel
	if v := strings.TrimSpace(opts.Level); v != "" {
		if parsed, err := zerolog.ParseLevel(strings.ToLower(v)); err == nil {
			level = parsed
		}
	}
	zerolog.SetGlobalLevel(level)

	if opts.File == "" {
		log.Logger = zerolog.Nop()
		return nopCloser{}, nil
	}

	if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
		return nil, err
	}
	w, err := newSizeLimitedWriter(opts.File, opts.MaxMB)
	if err != nil {
		return nil, err
	}
	log.Logger = zerolog.New(w).With().Timestamp().Logger()
	return w, nil
}

package app

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/five82/weatherbar/internal/logtail"
)

// setupLogging points the standard logger at path. The UI owns the terminal,
// so nothing is written to stderr once this returns.
func setupLogging(path string) (io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	log.SetOutput(f)
	log.SetPrefix(logtail.Prefix)
	log.SetFlags(log.LstdFlags)
	return f, nil
}

package report

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// fileSink writes reports into a local directory.
type fileSink struct {
	dir    string
	logger zerolog.Logger
}

// NewFileSink creates a Sink that writes into dir.
func NewFileSink(dir string, logger zerolog.Logger) Sink {
	return &fileSink{
		dir:    dir,
		logger: logger.With().Str("component", "report-file-sink").Logger(),
	}
}

// Write stores data as dir/name.
func (s *fileSink) Write(_ context.Context, name string, data []byte) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		s.logger.Error().Err(err).Str("dir", s.dir).Msg("failed to create report directory")
		return "", fmt.Errorf("failed to create report directory %s: %w", s.dir, err)
	}

	path := filepath.Join(s.dir, filepath.Base(name))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		s.logger.Error().Err(err).Str("file", path).Msg("failed to write report")
		return "", fmt.Errorf("failed to write report %s: %w", path, err)
	}

	s.logger.Info().
		Str("file", path).
		Int("bytes", len(data)).
		Msg("report written to local file system")

	return path, nil
}

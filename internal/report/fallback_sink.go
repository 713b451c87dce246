package report

import (
	"context"

	"github.com/rs/zerolog"
)

// fallbackSink tries S3 first and falls back to the local file system.
type fallbackSink struct {
	s3Sink    Sink
	fileSink  Sink
	s3Enabled bool
	logger    zerolog.Logger
}

// NewFallbackSink creates a Sink that writes to S3 when enabled and falls
// back to fileSink when S3 is disabled, missing or failing.
func NewFallbackSink(s3Sink, fileSink Sink, s3Enabled bool, logger zerolog.Logger) Sink {
	return &fallbackSink{
		s3Sink:    s3Sink,
		fileSink:  fileSink,
		s3Enabled: s3Enabled,
		logger:    logger.With().Str("component", "report-fallback-sink").Logger(),
	}
}

func (s *fallbackSink) Write(ctx context.Context, name string, data []byte) (string, error) {
	if s.s3Enabled && s.s3Sink != nil {
		location, err := s.s3Sink.Write(ctx, name, data)
		if err == nil {
			return location, nil
		}

		s.logger.Warn().
			Err(err).
			Str("name", name).
			Msg("failed to write report to S3, falling back to local file system")
	} else {
		s.logger.Debug().
			Bool("s3_enabled", s.s3Enabled).
			Bool("has_s3_sink", s.s3Sink != nil).
			Msg("S3 disabled or not configured, using local file system")
	}

	return s.fileSink.Write(ctx, name, data)
}

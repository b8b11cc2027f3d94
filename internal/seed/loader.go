// Package seed populates an empty database from the sample restaurant and
// user datasets.
package seed

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
)

// Loader fetches a raw dataset file.
type Loader interface {
	// Load returns the file's contents.
	Load(ctx context.Context, path string) ([]byte, error)
}

// fileLoader implements Loader for the local file system.
type fileLoader struct {
	logger zerolog.Logger
}

// NewFileLoader creates a new file-based dataset loader.
func NewFileLoader(logger zerolog.Logger) Loader {
	return &fileLoader{
		logger: logger.With().Str("component", "seed-loader").Logger(),
	}
}

func (l *fileLoader) Load(ctx context.Context, path string) ([]byte, error) {
	l.logger.Info().Str("file", path).Msg("loading dataset file")

	data, err := os.ReadFile(path)
	if err != nil {
		l.logger.Error().Err(err).Str("file", path).Msg("failed to read dataset file")
		return nil, fmt.Errorf("failed to read dataset file %s: %w", path, err)
	}

	return data, nil
}

// fallbackLoader tries S3 first, then falls back to the local file system.
type fallbackLoader struct {
	s3Loader   Loader
	fileLoader Loader
	logger     zerolog.Logger
}

// NewFallbackLoader creates a loader that tries S3 first, then falls back to
// the local file system. If s3Loader is nil it only uses the file loader.
func NewFallbackLoader(s3Loader, fileLoader Loader, logger zerolog.Logger) Loader {
	return &fallbackLoader{
		s3Loader:   s3Loader,
		fileLoader: fileLoader,
		logger:     logger.With().Str("component", "seed-fallback-loader").Logger(),
	}
}

func (l *fallbackLoader) Load(ctx context.Context, path string) ([]byte, error) {
	if l.s3Loader != nil {
		data, err := l.s3Loader.Load(ctx, path)
		if err == nil {
			return data, nil
		}

		l.logger.Warn().
			Err(err).
			Str("key", path).
			Msg("failed to load from S3, falling back to local file system")
	}

	return l.fileLoader.Load(ctx, path)
}

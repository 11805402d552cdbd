// Package snapshot periodically writes the report workbook to a sink.
package snapshot

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/valeriaulyamaeva/daily-reports/internal/config"
)

// Sink stores one finished workbook under key.
type Sink interface {
	Put(ctx context.Context, key string, data []byte) error
}

// FSSink writes workbooks into a local directory.
type FSSink struct {
	dir string
}

func NewFSSink(dir string) (*FSSink, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create export dir %s: %w", dir, err)
	}
	return &FSSink{dir: dir}, nil
}

// Put writes data atomically: temp file then rename.
// Each call gets its own temp file so concurrent writers never share one.
func (s *FSSink) Put(_ context.Context, key string, data []byte) error {
	path := filepath.Join(s.dir, filepath.Base(key))
	tmp, err := os.CreateTemp(s.dir, filepath.Base(key)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp for %s: %w", path, err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write %s: %w", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("close %s: %w", tmpPath, err)
	}
	if err := os.Chmod(tmpPath, 0o640); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("chmod %s: %w", tmpPath, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename %s: %w", tmpPath, err)
	}
	return nil
}

// NewSink builds the sink selected by cfg.Sink.
func NewSink(ctx context.Context, cfg config.ExportConfig) (Sink, error) {
	switch cfg.Sink {
	case config.SinkFS:
		return NewFSSink(cfg.Dir)
	case config.SinkS3:
		return NewS3Sink(ctx, S3Config{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			PathStyle: cfg.S3PathStyle,
		})
	default:
		return nil, fmt.Errorf("unknown export sink %q", cfg.Sink)
	}
}

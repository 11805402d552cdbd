// Package config reads service settings from the environment and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Store drivers.
const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Export snapshot sinks.
const (
	SinkFS = "fs"
	SinkS3 = "s3"
)

// Config holds everything the server and the CLI need at startup.
type Config struct {
	Port        string
	Environment string
	LogLevel    string

	Driver          string
	MongoURI        string
	MongoDatabase   string
	MongoCollection string
	DatabaseURL     string
	SQLitePath      string

	Export ExportConfig
}

// ExportConfig configures scheduled workbook snapshots. An empty Schedule disables them.
type ExportConfig struct {
	Schedule string
	Sink     string
	Dir      string

	S3Bucket    string
	S3Region    string
	S3Endpoint  string
	S3PathStyle bool
}

// Load reads .env (if present) and the process environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("ошибка загрузки .env файла: %w", err)
	}
	return FromEnv(), nil
}

// FromEnv builds a Config from the process environment alone.
func FromEnv() Config {
	return Config{
		Port:        envOr("PORT", "5000"),
		Environment: envOr("APP_ENV", "production"),
		LogLevel:    envOr("LOG_LEVEL", "info"),

		Driver:          strings.ToLower(envOr("STORE_DRIVER", DriverMongo)),
		MongoURI:        os.Getenv("MONGO_URI"),
		MongoDatabase:   envOr("MONGO_DATABASE", "daily_reports"),
		MongoCollection: envOr("MONGO_COLLECTION", "reports"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		SQLitePath:      envOr("SQLITE_PATH", "daily_reports.db"),

		Export: ExportConfig{
			Schedule:    os.Getenv("EXPORT_SCHEDULE"),
			Sink:        strings.ToLower(envOr("EXPORT_SINK", SinkFS)),
			Dir:         envOr("EXPORT_DIR", "exports"),
			S3Bucket:    os.Getenv("EXPORT_S3_BUCKET"),
			S3Region:    envOr("EXPORT_S3_REGION", "us-east-1"),
			S3Endpoint:  os.Getenv("EXPORT_S3_ENDPOINT"),
			S3PathStyle: strings.EqualFold(os.Getenv("EXPORT_S3_PATH_STYLE"), "true"),
		},
	}
}

// Validate reports settings the selected driver and sink cannot run without.
func (c Config) Validate() error {
	var errs []error
	switch c.Driver {
	case DriverMongo:
		if c.MongoURI == "" {
			errs = append(errs, errors.New("MONGO_URI is required for the mongo driver"))
		}
	case DriverPostgres:
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required for the postgres driver"))
		}
	case DriverSQLite:
		if c.SQLitePath == "" {
			errs = append(errs, errors.New("SQLITE_PATH must not be empty"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown STORE_DRIVER %q", c.Driver))
	}

	if c.Export.Schedule != "" {
		switch c.Export.Sink {
		case SinkFS:
			if c.Export.Dir == "" {
				errs = append(errs, errors.New("EXPORT_DIR must not be empty"))
			}
		case SinkS3:
			if c.Export.S3Bucket == "" {
				errs = append(errs, errors.New("EXPORT_S3_BUCKET is required for the s3 sink"))
			}
		default:
			errs = append(errs, fmt.Errorf("unknown EXPORT_SINK %q", c.Export.Sink))
		}
	}
	return errors.Join(errs...)
}

// Development reports whether APP_ENV selects development mode.
func (c Config) Development() bool {
	return strings.EqualFold(c.Environment, "development")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Package slot stores encoded save documents under a name. Drivers cover the
// local filesystem, process memory, SQL databases and S3 compatible object
// stores; callers pick one through Open.
package slot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Driver identifies a concrete slot backend.
type Driver string

const (
	DriverFilesystem Driver = "fs"
	DriverMemory     Driver = "memory"
	DriverSQLite     Driver = "sqlite"
	DriverPostgres   Driver = "postgres"
	DriverS3         Driver = "s3"
)

// ErrNotFound is returned when no save exists under the requested name.
var ErrNotFound = errors.New("slot: save not found")

// Info describes a stored save.
type Info struct {
	Name     string
	Size     int64
	Modified time.Time
}

// Store persists save documents. Writing an existing name replaces it.
type Store interface {
	Write(ctx context.Context, name string, data []byte) error
	Read(ctx context.Context, name string) ([]byte, error)
	List(ctx context.Context) ([]Info, error)
	Delete(ctx context.Context, name string) (bool, error)
	Driver() Driver
}

// Config selects and configures a driver. Field tags are read by the
// application config under its own prefix.
type Config struct {
	Driver string `env:"DRIVER" envDefault:"fs"`
	Dir    string `env:"DIR" envDefault:"./saves"`
	// DSN is a file path for sqlite and a connection URL for postgres.
	DSN       string `env:"DSN"`
	Bucket    string `env:"S3_BUCKET"`
	Region    string `env:"S3_REGION" envDefault:"us-east-1"`
	Endpoint  string `env:"S3_ENDPOINT"`
	Prefix    string `env:"S3_PREFIX" envDefault:"saves/"`
	PathStyle bool   `env:"S3_PATH_STYLE"`
	AccessKey string `env:"S3_ACCESS_KEY_ID"`
	SecretKey string `env:"S3_SECRET_ACCESS_KEY"`
}

// Open constructs the store named by cfg.Driver.
func Open(ctx context.Context, cfg Config) (Store, error) {
	switch Driver(cfg.Driver) {
	case DriverFilesystem, "":
		return NewFilesystem(cfg.Dir)
	case DriverMemory:
		return NewMemory(), nil
	case DriverSQLite:
		return OpenSQLite(ctx, cfg.DSN)
	case DriverPostgres:
		return OpenPostgres(ctx, cfg.DSN)
	case DriverS3:
		return OpenS3(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown slot driver %q", cfg.Driver)
	}
}

// validName rejects names that could escape a directory or prefix.
func validName(name string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return fmt.Errorf("slot: empty save name")
	case strings.Contains(name, ".."):
		return fmt.Errorf("slot: invalid save name %q", name)
	case strings.ContainsAny(name, `/\`):
		return fmt.Errorf("slot: save name %q must not contain path separators", name)
	}
	return nil
}

// Package repo implements the Favorite Store: thin persistence operations over
// domain.Favorite with a uniqueness guarantee on (user id, date). Two backends
// satisfy the same contract: MongoStore (the default document database) and
// SQLStore (GORM over pure-Go SQLite). This file contains bootstrapping helpers
// and the shared contract.
package repo

import (
	"context"
	"errors"
	"fmt"
	stdlog "log"
	"os"
	"path/filepath"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/opentelemetry/tracing"

	"github.com/tbourn/nasa-image-explorer/internal/config"
	"github.com/tbourn/nasa-image-explorer/internal/domain"
)

var (
	// ErrNotFound is returned when a requested record does not exist.
	// It aliases gorm.ErrRecordNotFound so both backends share one sentinel.
	ErrNotFound = gorm.ErrRecordNotFound

	// ErrDuplicate indicates a unique constraint violation on (user id, date).
	ErrDuplicate = errors.New("duplicate")

	// ErrInvalidID is returned when an identifier is not a 24-char hex ObjectID.
	ErrInvalidID = errors.New("invalid id")
)

// Store is the Favorite Store contract. Implementations are safe for
// concurrent use; every call is a self-contained round trip.
type Store interface {
	// FindOne returns the favorite for (userID, date) or ErrNotFound.
	FindOne(ctx context.Context, userID, date string) (*domain.Favorite, error)
	// Insert assigns id and timestamps and persists f. It returns ErrDuplicate
	// when (userID, date) already exists.
	Insert(ctx context.Context, f domain.Favorite) (*domain.Favorite, error)
	// FindAllByUser returns the user's favorites, newest first.
	FindAllByUser(ctx context.Context, userID string) ([]domain.Favorite, error)
	// DeleteByID reports whether a record was removed.
	DeleteByID(ctx context.Context, id string) (bool, error)
	// Ping checks connectivity to the backing database.
	Ping(ctx context.Context) error
	// Close releases the underlying connection.
	Close(ctx context.Context) error
}

// OpenStore connects the backend selected by cfg.Driver and prepares its
// schema (tables or indexes) so the uniqueness constraint is in place before
// the first request is served.
func OpenStore(ctx context.Context, cfg config.DatabaseConfig) (Store, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		db, err := OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		if err := AutoMigrate(db); err != nil {
			return nil, fmt.Errorf("migrate sqlite: %w", err)
		}
		return NewSQLStore(db), nil
	case config.DriverMongo:
		return OpenMongo(ctx, cfg)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// OpenSQLite opens (or creates) a SQLite database, applies PRAGMAs, tunes the
// pool and registers the OpenTelemetry tracing plugin.
func OpenSQLite(path string) (*gorm.DB, error) {
	// Fail early if parent directory does not exist (instead of sqlite "out of memory (14)" on Windows).
	if dir := filepath.Dir(path); dir != "." {
		if _, err := os.Stat(dir); err != nil {
			return nil, err
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		TranslateError: true,
		Logger:         newGormLogger(),
	})
	if err != nil {
		return nil, err
	}

	// PRAGMAs
	db.Exec("PRAGMA journal_mode=WAL;")
	db.Exec("PRAGMA synchronous=NORMAL;")
	db.Exec("PRAGMA busy_timeout=5000;")

	// Pool
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(10)
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetConnMaxIdleTime(5 * time.Minute)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	}

	if err := db.Use(tracing.NewPlugin(tracing.WithoutMetrics())); err != nil {
		return nil, err
	}

	return db, nil
}

// newGormLogger sends GORM's warnings (slow queries, errors) into the global
// zerolog stream as plain text under component=gorm. Record-not-found is
// expected and never logged.
func newGormLogger() logger.Interface {
	w := log.Logger.With().Str("component", "gorm").Logger()
	return logger.New(stdlog.New(w, "", 0), logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  logger.Warn,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}

// AutoMigrate creates the favorites table and its indexes.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&domain.Favorite{})
}

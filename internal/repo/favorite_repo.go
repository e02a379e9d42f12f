// Package repo implements the data persistence layer for favorites. This file
// provides SQLStore, the GORM-backed Favorite Store.
//
// Error semantics:
//   - FindOne returns ErrNotFound when no row matches.
//   - Insert returns ErrDuplicate when the (user_id, date) unique index rejects
//     the row. The check is performed by the database, so two concurrent
//     inserts for the same pair cannot both succeed.
//   - Other DB errors (connectivity, schema) are propagated unchanged.
package repo

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/nasa-image-explorer/internal/domain"
)

// SQLStore persists favorites through GORM.
type SQLStore struct {
	// DB is the GORM handle used for all favorite operations.
	DB *gorm.DB
}

// NewSQLStore wraps an open GORM handle.
func NewSQLStore(db *gorm.DB) *SQLStore { return &SQLStore{DB: db} }

// FindOne fetches the favorite saved by userID for date.
func (s *SQLStore) FindOne(ctx context.Context, userID, date string) (*domain.Favorite, error) {
	// Find + Limit instead of First: a miss is the normal add path and must
	// not surface as a gorm error.
	var f domain.Favorite
	res := s.DB.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, date).
		Limit(1).
		Find(&f)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return &f, nil
}

// Insert persists f with a new ObjectID and UTC timestamps.
func (s *SQLStore) Insert(ctx context.Context, f domain.Favorite) (*domain.Favorite, error) {
	now := time.Now().UTC()
	f.ID = NewID()
	f.CreatedAt = now
	f.UpdatedAt = now
	if err := s.DB.WithContext(ctx).Create(&f).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return &f, nil
}

// FindAllByUser returns all favorites of userID ordered by creation time
// descending. Ties (same timestamp) fall back to id descending, which keeps
// insertion order because ObjectIDs grow monotonically within a process.
// It returns an empty, non-nil slice when the user has none.
func (s *SQLStore) FindAllByUser(ctx context.Context, userID string) ([]domain.Favorite, error) {
	out := []domain.Favorite{}
	err := s.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Order("id desc").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []domain.Favorite{}
	}
	return out, nil
}

// DeleteByID hard-deletes the favorite with the given id. It reports false
// when no row matched.
func (s *SQLStore) DeleteByID(ctx context.Context, id string) (bool, error) {
	res := s.DB.WithContext(ctx).Where("id = ?", id).Delete(&domain.Favorite{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// Ping checks that the underlying connection pool can reach the database.
func (s *SQLStore) Ping(ctx context.Context) error {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close closes the underlying connection pool.
func (s *SQLStore) Close(context.Context) error {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// isUniqueViolation detects unique-constraint violations across drivers that
// may not translate to gorm.ErrDuplicatedKey.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// SQLite: "UNIQUE constraint failed" / "constraint failed: UNIQUE"
	// Postgres: "duplicate key value violates unique constraint"
	low := strings.ToLower(err.Error())
	return strings.Contains(low, "unique constraint") ||
		strings.Contains(low, "constraint failed: unique") ||
		strings.Contains(low, "duplicate key")
}

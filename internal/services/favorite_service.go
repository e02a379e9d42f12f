// Package services – FavoriteService
//
// This file implements the FavoriteService, which governs how users save,
// list and remove favorite APOD entries. It validates input, performs the
// duplicate pre-check and maps store outcomes to the service errors in
// errors.go so handlers can translate them consistently.
package services

import (
	"context"
	"errors"
	"strings"

	"github.com/tbourn/nasa-image-explorer/internal/domain"
	"github.com/tbourn/nasa-image-explorer/internal/repo"
)

// AddFavoriteInput carries the fields of a new favorite as received from the
// client. MediaType is optional.
type AddFavoriteInput struct {
	UserID      string
	Title       string
	URL         string
	Date        string
	Explanation string
	MediaType   string
}

// FavoriteService implements the favorites use-cases on top of a repo.Store.
// The store is injected at construction; the service holds no other state.
type FavoriteService struct {
	Store repo.Store
}

// NewFavoriteService returns a FavoriteService backed by store.
func NewFavoriteService(store repo.Store) *FavoriteService {
	return &FavoriteService{Store: store}
}

// Add validates in and persists it as a new favorite.
//
// Semantics and validation:
//   - userId, title, url, date and explanation must be non-blank; otherwise
//     ErrMissingFields.
//   - mediaType defaults to "image"; values other than image|video yield
//     ErrInvalidMediaType.
//   - If (userId, date) is already saved, ErrAlreadyFavorited is returned
//     before any insert is attempted.
//
// Concurrency:
//   - The pre-check is a fast path only. Two concurrent adds for the same
//     (userId, date) can both pass it; the store's unique index rejects the
//     loser and that rejection is reported as ErrAlreadyFavorited too.
func (s *FavoriteService) Add(ctx context.Context, in AddFavoriteInput) (*domain.Favorite, error) {
	if blank(in.UserID) || blank(in.Title) || blank(in.URL) || blank(in.Date) || blank(in.Explanation) {
		return nil, ErrMissingFields
	}
	mt, err := normalizeMediaType(in.MediaType)
	if err != nil {
		return nil, err
	}

	if _, err := s.Store.FindOne(ctx, in.UserID, in.Date); err == nil {
		return nil, ErrAlreadyFavorited
	} else if !errors.Is(err, repo.ErrNotFound) {
		return nil, err
	}

	f, err := s.Store.Insert(ctx, domain.Favorite{
		UserID:      in.UserID,
		Title:       in.Title,
		URL:         in.URL,
		Date:        in.Date,
		Explanation: in.Explanation,
		MediaType:   mt,
	})
	if err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrAlreadyFavorited
		}
		return nil, err
	}
	return f, nil
}

// List returns the user's favorites, newest first. A user without favorites
// gets an empty slice.
func (s *FavoriteService) List(ctx context.Context, userID string) ([]domain.Favorite, error) {
	if blank(userID) {
		return nil, ErrMissingUserID
	}
	return s.Store.FindAllByUser(ctx, userID)
}

// Remove deletes the favorite identified by id. Malformed ids are rejected
// without touching the store.
func (s *FavoriteService) Remove(ctx context.Context, id string) error {
	if !repo.ValidID(id) {
		return ErrInvalidID
	}
	ok, err := s.Store.DeleteByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrInvalidID) {
			return ErrInvalidID
		}
		return err
	}
	if !ok {
		return ErrFavoriteNotFound
	}
	return nil
}

func blank(s string) bool { return strings.TrimSpace(s) == "" }

func normalizeMediaType(mt string) (string, error) {
	switch strings.TrimSpace(mt) {
	case "":
		return domain.MediaTypeImage, nil
	case domain.MediaTypeImage:
		return domain.MediaTypeImage, nil
	case domain.MediaTypeVideo:
		return domain.MediaTypeVideo, nil
	default:
		return "", ErrInvalidMediaType
	}
}

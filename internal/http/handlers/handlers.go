// Package handlers – wiring.
//
// Handlers are transport-thin: they parse input, call the services behind
// the interfaces below, and translate outcomes into HTTP responses.
package handlers

import (
	"context"
	"time"

	"github.com/tbourn/nasa-image-explorer/internal/apod"
	"github.com/tbourn/nasa-image-explorer/internal/domain"
	"github.com/tbourn/nasa-image-explorer/internal/quiz"
	"github.com/tbourn/nasa-image-explorer/internal/services"
)

// FavoriteService defines the favorites use-cases consumed by the handlers.
// Implementations must be safe for concurrent use and honor ctx.
type FavoriteService interface {
	Add(ctx context.Context, in services.AddFavoriteInput) (*domain.Favorite, error)
	List(ctx context.Context, userID string) ([]domain.Favorite, error)
	Remove(ctx context.Context, id string) error
}

// ApodFetcher returns the upstream APOD payload for q.
type ApodFetcher interface {
	Fetch(ctx context.Context, q apod.Query) ([]byte, error)
}

// StorePinger reports store connectivity for the health endpoint.
type StorePinger interface {
	Ping(ctx context.Context) error
}

// QuizCatalog serves the static quizzes.
type QuizCatalog interface {
	All() []quiz.Quiz
	Get(id string) (quiz.Quiz, error)
}

// Options tunes handler behavior.
type Options struct {
	// ExposeErrors includes internal error text in 5xx responses.
	ExposeErrors bool
	// PingTimeout bounds the health check's store ping. Defaults to 2s.
	PingTimeout time.Duration
}

// Handlers groups the HTTP endpoints.
type Handlers struct {
	favSvc  FavoriteService
	apod    ApodFetcher
	store   StorePinger
	quizzes QuizCatalog
	opt     Options
	now     func() time.Time
}

// New constructs a Handlers bound to the given collaborators.
func New(fav FavoriteService, ap ApodFetcher, store StorePinger, quizzes QuizCatalog, opt Options) *Handlers {
	if opt.PingTimeout <= 0 {
		opt.PingTimeout = 2 * time.Second
	}
	return &Handlers{
		favSvc:  fav,
		apod:    ap,
		store:   store,
		quizzes: quizzes,
		opt:     opt,
		now:     time.Now,
	}
}

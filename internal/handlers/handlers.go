package handlers

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/gatherly-dev/gatherly/internal/services"
	"github.com/gatherly-dev/gatherly/internal/store"
)

// Handler carries the store and its collaborators into the request
// handlers. The store is constructed once at startup and passed by
// reference; nothing here reaches for globals. Now is swappable so status
// derivation stays deterministic under test.
type Handler struct {
	store  *store.Store
	mailer *services.Mailer
	logger zerolog.Logger
	now    func() time.Time
}

func New(st *store.Store, mailer *services.Mailer, logger zerolog.Logger) *Handler {
	return &Handler{
		store:  st,
		mailer: mailer,
		logger: logger,
		now:    time.Now,
	}
}

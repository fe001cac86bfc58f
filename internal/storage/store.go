// Package storage holds the persistence boundary for the session
// collection. Every mutation returns the full refreshed collection, which
// is the authoritative snapshot the rest of the application works from.
package storage

import (
	"context"
	"errors"

	"github.com/KaladaranC/TutorTrack/internal/models"
)

// Store is the contract all backends satisfy. Update and Delete treat an
// unknown id as a no-op and return the collection unchanged.
type Store interface {
	List(ctx context.Context) ([]models.Session, error)
	Create(ctx context.Context, session models.Session) ([]models.Session, error)
	Update(ctx context.Context, session models.Session) ([]models.Session, error)
	Delete(ctx context.Context, id string) ([]models.Session, error)
}

// ErrUnavailable wraps transport failures so callers can surface them as a
// dismissible message without inspecting backend-specific errors.
var ErrUnavailable = errors.New("session store unavailable")

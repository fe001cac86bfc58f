package storage

import (
	"context"
	"fmt"

	"github.com/KaladaranC/TutorTrack/internal/models"
	"github.com/KaladaranC/TutorTrack/internal/repository"
)

// PostgresStore backs the collection with a sessions table, reusing the
// repository layer for data access.
type PostgresStore struct {
	repo *repository.SessionRepository
}

func NewPostgresStore(db repository.DBTX) *PostgresStore {
	return &PostgresStore{repo: repository.NewSessionRepository(db)}
}

func (s *PostgresStore) List(ctx context.Context) ([]models.Session, error) {
	sessions, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return sessions, nil
}

func (s *PostgresStore) Create(ctx context.Context, session models.Session) ([]models.Session, error) {
	if err := s.repo.Insert(ctx, session); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return s.List(ctx)
}

func (s *PostgresStore) Update(ctx context.Context, session models.Session) ([]models.Session, error) {
	if err := s.repo.Replace(ctx, session); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return s.List(ctx)
}

func (s *PostgresStore) Delete(ctx context.Context, id string) ([]models.Session, error) {
	if err := s.repo.Remove(ctx, id); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return s.List(ctx)
}

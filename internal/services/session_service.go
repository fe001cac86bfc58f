package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/KaladaranC/TutorTrack/internal/models"
	"github.com/KaladaranC/TutorTrack/internal/storage"
	sessionws "github.com/KaladaranC/TutorTrack/internal/websocket"
)

var (
	ErrInvalidInput           = errors.New("invalid input")
	ErrInvalidStateTransition = errors.New("invalid state transition")
	ErrSessionNotFound        = errors.New("session not found")
)

type changeNotifier interface {
	Notify(eventType, sessionID string, total int)
}

type SessionService struct {
	store    storage.Store
	notifier changeNotifier
}

func NewSessionService(store storage.Store, notifier changeNotifier) *SessionService {
	return &SessionService{store: store, notifier: notifier}
}

type CreateSessionInput struct {
	StudentName     string
	Subject         string
	StartTime       time.Time
	DurationMinutes int
	Rate            float64
	Notes           *string
}

func (s *SessionService) List(ctx context.Context) ([]models.Session, error) {
	return s.store.List(ctx)
}

// Add validates the input, assigns identity and creation time, and always
// starts the record as SCHEDULED regardless of anything the caller or a
// parser draft suggested.
func (s *SessionService) Add(ctx context.Context, input CreateSessionInput) ([]models.Session, error) {
	if strings.TrimSpace(input.StudentName) == "" || strings.TrimSpace(input.Subject) == "" {
		return nil, ErrInvalidInput
	}
	if input.StartTime.IsZero() {
		return nil, ErrInvalidInput
	}
	if input.DurationMinutes <= 0 || input.Rate < 0 {
		return nil, ErrInvalidInput
	}

	session := models.Session{
		ID:              uuid.NewString(),
		StudentName:     strings.TrimSpace(input.StudentName),
		Subject:         strings.TrimSpace(input.Subject),
		StartTime:       input.StartTime,
		DurationMinutes: input.DurationMinutes,
		Rate:            input.Rate,
		Status:          models.StatusScheduled,
		Notes:           input.Notes,
		CreatedAt:       time.Now().UTC(),
	}

	sessions, err := s.store.Create(ctx, session)
	if err != nil {
		return nil, err
	}

	s.notify(sessionws.EventCreated, session.ID, len(sessions))
	return sessions, nil
}

// Update replaces the whole record matched by id. An unknown id is
// absorbed and the current collection returned. A status carried by the
// update must be reachable from the stored one.
func (s *SessionService) Update(ctx context.Context, session models.Session) ([]models.Session, error) {
	if strings.TrimSpace(session.StudentName) == "" || strings.TrimSpace(session.Subject) == "" {
		return nil, ErrInvalidInput
	}
	if session.StartTime.IsZero() || session.DurationMinutes <= 0 || session.Rate < 0 {
		return nil, ErrInvalidInput
	}
	if _, ok := models.ParseStatus(string(session.Status)); !ok {
		return nil, ErrInvalidInput
	}

	sessions, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}

	current, found := findByID(sessions, session.ID)
	if !found {
		return sessions, nil
	}

	if !models.CanTransition(current.Status, session.Status) {
		return nil, ErrInvalidStateTransition
	}

	// Creation time is immutable.
	session.CreatedAt = current.CreatedAt

	updated, err := s.store.Update(ctx, session)
	if err != nil {
		return nil, err
	}

	s.notify(sessionws.EventUpdated, session.ID, len(updated))
	return updated, nil
}

// ChangeStatus moves a session one step through its lifecycle. Requesting
// the status it already has is an idempotent no-op.
func (s *SessionService) ChangeStatus(
	ctx context.Context,
	id string,
	next models.SessionStatus,
) ([]models.Session, error) {
	sessions, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}

	current, found := findByID(sessions, id)
	if !found {
		return nil, ErrSessionNotFound
	}

	if current.Status == next {
		return sessions, nil
	}
	if !models.CanTransition(current.Status, next) {
		return nil, ErrInvalidStateTransition
	}

	current.Status = next
	updated, err := s.store.Update(ctx, current)
	if err != nil {
		return nil, err
	}

	s.notify(sessionws.EventStatusChanged, id, len(updated))
	return updated, nil
}

// Delete removes the session if present; an unknown id is absorbed.
func (s *SessionService) Delete(ctx context.Context, id string) ([]models.Session, error) {
	sessions, err := s.store.Delete(ctx, id)
	if err != nil {
		return nil, err
	}

	s.notify(sessionws.EventDeleted, id, len(sessions))
	return sessions, nil
}

func (s *SessionService) notify(eventType, sessionID string, total int) {
	if s.notifier == nil {
		return
	}
	s.notifier.Notify(eventType, sessionID, total)
}

func findByID(sessions []models.Session, id string) (models.Session, bool) {
	for _, session := range sessions {
		if session.ID == id {
			return session, true
		}
	}
	return models.Session{}, false
}

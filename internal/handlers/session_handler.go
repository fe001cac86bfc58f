package handlers

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/KaladaranC/TutorTrack/internal/insights"
	"github.com/KaladaranC/TutorTrack/internal/models"
	"github.com/KaladaranC/TutorTrack/internal/services"
	"github.com/KaladaranC/TutorTrack/internal/storage"
)

type SessionHandler struct {
	service sessionLifecycleService
}

type sessionLifecycleService interface {
	List(ctx context.Context) ([]models.Session, error)
	Add(ctx context.Context, input services.CreateSessionInput) ([]models.Session, error)
	Update(ctx context.Context, session models.Session) ([]models.Session, error)
	ChangeStatus(ctx context.Context, id string, next models.SessionStatus) ([]models.Session, error)
	Delete(ctx context.Context, id string) ([]models.Session, error)
}

func NewSessionHandler(service *services.SessionService) *SessionHandler {
	return &SessionHandler{service: service}
}

type sessionRequest struct {
	StudentName     string  `json:"studentName"`
	Subject         string  `json:"subject"`
	StartTime       string  `json:"startTime"`
	DurationMinutes int     `json:"durationMinutes"`
	Rate            float64 `json:"rate"`
	Notes           *string `json:"notes"`
	Status          string  `json:"status"`
}

type changeStatusRequest struct {
	Status string `json:"status"`
}

// ListSessions serves the schedule view: the collection filtered by status
// and search text, most recent first.
func (h *SessionHandler) ListSessions(c *fiber.Ctx) error {
	statusFilter := strings.TrimSpace(c.Query("status", insights.FilterAll))
	if statusFilter != insights.FilterAll {
		if _, ok := models.ParseStatus(statusFilter); !ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "status must be ALL, SCHEDULED, COMPLETED or PAID"})
		}
	}

	sessions, err := h.service.List(c.Context())
	if err != nil {
		return mapSessionError(c, err)
	}

	return c.JSON(fiber.Map{
		"sessions": insights.Filter(sessions, statusFilter, c.Query("search")),
	})
}

func (h *SessionHandler) CreateSession(c *fiber.Ctx) error {
	var req sessionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	startTime, err := parseStartTime(req.StartTime)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "startTime must be a valid RFC3339 timestamp"})
	}

	sessions, err := h.service.Add(c.Context(), services.CreateSessionInput{
		StudentName:     req.StudentName,
		Subject:         req.Subject,
		StartTime:       startTime,
		DurationMinutes: req.DurationMinutes,
		Rate:            req.Rate,
		Notes:           normalizeNotes(req.Notes),
	})
	if err != nil {
		return mapSessionError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"sessions": sessions})
}

func (h *SessionHandler) UpdateSession(c *fiber.Ctx) error {
	id := strings.TrimSpace(c.Params("id"))
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid session id"})
	}

	var req sessionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	startTime, err := parseStartTime(req.StartTime)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "startTime must be a valid RFC3339 timestamp"})
	}

	status, ok := models.ParseStatus(strings.TrimSpace(req.Status))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "status must be SCHEDULED, COMPLETED or PAID"})
	}

	sessions, err := h.service.Update(c.Context(), models.Session{
		ID:              id,
		StudentName:     req.StudentName,
		Subject:         req.Subject,
		StartTime:       startTime,
		DurationMinutes: req.DurationMinutes,
		Rate:            req.Rate,
		Status:          status,
		Notes:           normalizeNotes(req.Notes),
	})
	if err != nil {
		return mapSessionError(c, err)
	}

	return c.JSON(fiber.Map{"sessions": sessions})
}

func (h *SessionHandler) ChangeStatus(c *fiber.Ctx) error {
	id := strings.TrimSpace(c.Params("id"))
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid session id"})
	}

	var req changeStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	status, ok := models.ParseStatus(strings.TrimSpace(req.Status))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "status must be SCHEDULED, COMPLETED or PAID"})
	}

	sessions, err := h.service.ChangeStatus(c.Context(), id, status)
	if err != nil {
		return mapSessionError(c, err)
	}

	return c.JSON(fiber.Map{"sessions": sessions})
}

func (h *SessionHandler) DeleteSession(c *fiber.Ctx) error {
	id := strings.TrimSpace(c.Params("id"))
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid session id"})
	}

	sessions, err := h.service.Delete(c.Context(), id)
	if err != nil {
		return mapSessionError(c, err)
	}

	return c.JSON(fiber.Map{"sessions": sessions})
}

func parseStartTime(raw string) (time.Time, error) {
	return time.Parse(time.RFC3339, strings.TrimSpace(raw))
}

func normalizeNotes(notes *string) *string {
	if notes == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*notes)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func mapSessionError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidStateTransition):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrSessionNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Session not found"})
	case errors.Is(err, storage.ErrUnavailable):
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Session store unavailable, please try again"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to process session request"})
	}
}

package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/KaladaranC/TutorTrack/internal/models"
	"github.com/KaladaranC/TutorTrack/internal/services"
)

type stubLifecycleService struct {
	listResult   []models.Session
	listErr      error
	addResult    []models.Session
	addErr       error
	updateResult []models.Session
	updateErr    error
	changeResult []models.Session
	changeErr    error
	deleteResult []models.Session
	deleteErr    error

	lastAddInput      services.CreateSessionInput
	lastUpdateSession models.Session
	lastID            string
	lastStatus        models.SessionStatus
}

func (s *stubLifecycleService) List(_ context.Context) ([]models.Session, error) {
	return s.listResult, s.listErr
}

func (s *stubLifecycleService) Add(_ context.Context, input services.CreateSessionInput) ([]models.Session, error) {
	s.lastAddInput = input
	return s.addResult, s.addErr
}

func (s *stubLifecycleService) Update(_ context.Context, session models.Session) ([]models.Session, error) {
	s.lastUpdateSession = session
	return s.updateResult, s.updateErr
}

func (s *stubLifecycleService) ChangeStatus(_ context.Context, id string, next models.SessionStatus) ([]models.Session, error) {
	s.lastID = id
	s.lastStatus = next
	return s.changeResult, s.changeErr
}

func (s *stubLifecycleService) Delete(_ context.Context, id string) ([]models.Session, error) {
	s.lastID = id
	return s.deleteResult, s.deleteErr
}

func sampleSession(id, student string, status models.SessionStatus, start time.Time) models.Session {
	return models.Session{
		ID:              id,
		StudentName:     student,
		Subject:         "Math",
		StartTime:       start,
		DurationMinutes: 60,
		Rate:            50,
		Status:          status,
		CreatedAt:       time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC),
	}
}

func newSessionApp(service *stubLifecycleService) *fiber.App {
	handler := &SessionHandler{service: service}

	app := fiber.New()
	app.Get("/api/v1/sessions", handler.ListSessions)
	app.Post("/api/v1/sessions", handler.CreateSession)
	app.Put("/api/v1/sessions/:id", handler.UpdateSession)
	app.Put("/api/v1/sessions/:id/status", handler.ChangeStatus)
	app.Delete("/api/v1/sessions/:id", handler.DeleteSession)
	return app
}

func decodeSessions(t *testing.T, resp *http.Response) []models.Session {
	t.Helper()
	var body struct {
		Sessions []models.Session `json:"sessions"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return body.Sessions
}

func TestListSessionsAppliesFilterAndOrdering(t *testing.T) {
	now := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)
	service := &stubLifecycleService{listResult: []models.Session{
		sampleSession("1", "Alice", models.StatusScheduled, now.Add(time.Hour)),
		sampleSession("2", "Bob", models.StatusPaid, now.Add(3*time.Hour)),
		sampleSession("3", "Alan", models.StatusScheduled, now.Add(2*time.Hour)),
	}}
	app := newSessionApp(service)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/sessions?status=SCHEDULED&search=al", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	sessions := decodeSessions(t, resp)
	if len(sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(sessions))
	}
	if sessions[0].ID != "3" || sessions[1].ID != "1" {
		t.Fatalf("expected descending start order [3 1], got [%s %s]", sessions[0].ID, sessions[1].ID)
	}
}

func TestListSessionsRejectsUnknownStatusFilter(t *testing.T) {
	app := newSessionApp(&stubLifecycleService{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/sessions?status=DONE", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestCreateSessionReturnsRefreshedCollection(t *testing.T) {
	now := time.Date(2026, time.March, 10, 15, 0, 0, 0, time.UTC)
	service := &stubLifecycleService{addResult: []models.Session{
		sampleSession("new-id", "Alice", models.StatusScheduled, now),
	}}
	app := newSessionApp(service)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions", strings.NewReader(`{
		"studentName": "Alice",
		"subject": "Math",
		"startTime": "2026-03-10T15:00:00Z",
		"durationMinutes": 60,
		"rate": 50,
		"notes": "chapter 4 revision"
	}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	if service.lastAddInput.StudentName != "Alice" {
		t.Fatalf("expected student Alice, got %q", service.lastAddInput.StudentName)
	}
	if !service.lastAddInput.StartTime.Equal(now) {
		t.Fatalf("expected start time %v, got %v", now, service.lastAddInput.StartTime)
	}
	if service.lastAddInput.Notes == nil || *service.lastAddInput.Notes != "chapter 4 revision" {
		t.Fatalf("expected notes to pass through, got %v", service.lastAddInput.Notes)
	}
}

func TestCreateSessionRejectsBadTimestamp(t *testing.T) {
	app := newSessionApp(&stubLifecycleService{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions", strings.NewReader(`{
		"studentName": "Alice",
		"subject": "Math",
		"startTime": "next tuesday",
		"durationMinutes": 60,
		"rate": 50
	}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestCreateSessionMapsValidationFailure(t *testing.T) {
	service := &stubLifecycleService{addErr: services.ErrInvalidInput}
	app := newSessionApp(service)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions", strings.NewReader(`{
		"studentName": "",
		"subject": "Math",
		"startTime": "2026-03-10T15:00:00Z",
		"durationMinutes": 60,
		"rate": 50
	}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestChangeStatusMapsInvalidTransition(t *testing.T) {
	service := &stubLifecycleService{changeErr: services.ErrInvalidStateTransition}
	app := newSessionApp(service)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/sessions/id-1/status", strings.NewReader(`{"status": "SCHEDULED"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.StatusCode)
	}
	if service.lastID != "id-1" || service.lastStatus != models.StatusScheduled {
		t.Fatalf("expected id-1/SCHEDULED, got %s/%s", service.lastID, service.lastStatus)
	}
}

func TestChangeStatusRejectsUnknownStatus(t *testing.T) {
	app := newSessionApp(&stubLifecycleService{})

	req := httptest.NewRequest(http.MethodPut, "/api/v1/sessions/id-1/status", strings.NewReader(`{"status": "DONE"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestChangeStatusMapsNotFound(t *testing.T) {
	service := &stubLifecycleService{changeErr: services.ErrSessionNotFound}
	app := newSessionApp(service)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/sessions/missing/status", strings.NewReader(`{"status": "COMPLETED"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestDeleteSessionReturnsRefreshedCollection(t *testing.T) {
	service := &stubLifecycleService{deleteResult: []models.Session{}}
	app := newSessionApp(service)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/sessions/id-1", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if service.lastID != "id-1" {
		t.Fatalf("expected delete id-1, got %s", service.lastID)
	}
	if sessions := decodeSessions(t, resp); len(sessions) != 0 {
		t.Fatalf("expected empty collection, got %d", len(sessions))
	}
}

func TestUpdateSessionPassesWholeRecord(t *testing.T) {
	now := time.Date(2026, time.March, 10, 15, 0, 0, 0, time.UTC)
	service := &stubLifecycleService{updateResult: []models.Session{
		sampleSession("id-1", "Alice", models.StatusCompleted, now),
	}}
	app := newSessionApp(service)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/sessions/id-1", strings.NewReader(`{
		"studentName": "Alice",
		"subject": "Physics",
		"startTime": "2026-03-10T15:00:00Z",
		"durationMinutes": 90,
		"rate": 55,
		"status": "COMPLETED"
	}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if service.lastUpdateSession.ID != "id-1" {
		t.Fatalf("expected id from path, got %q", service.lastUpdateSession.ID)
	}
	if service.lastUpdateSession.Subject != "Physics" || service.lastUpdateSession.Status != models.StatusCompleted {
		t.Fatalf("unexpected update payload %+v", service.lastUpdateSession)
	}
}

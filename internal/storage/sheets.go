package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/KaladaranC/TutorTrack/internal/models"
)

// SheetsStore talks to a spreadsheet-backed web endpoint. The endpoint
// serves the collection on GET and accepts mutations as POST bodies of the
// form {"action": ..., "payload": ...}, answering every call with the
// refreshed collection.
type SheetsStore struct {
	endpoint   string
	httpClient *http.Client
}

func NewSheetsStore(endpoint string) *SheetsStore {
	return &SheetsStore{
		endpoint:   strings.TrimSpace(endpoint),
		httpClient: http.DefaultClient,
	}
}

type sheetsRequest struct {
	Action  string `json:"action"`
	Payload any    `json:"payload"`
}

type deletePayload struct {
	ID string `json:"id"`
}

func (s *SheetsStore) List(ctx context.Context) ([]models.Session, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build list request: %v", ErrUnavailable, err)
	}
	return s.do(req)
}

func (s *SheetsStore) Create(ctx context.Context, session models.Session) ([]models.Session, error) {
	return s.send(ctx, "create", session)
}

func (s *SheetsStore) Update(ctx context.Context, session models.Session) ([]models.Session, error) {
	return s.send(ctx, "update", session)
}

func (s *SheetsStore) Delete(ctx context.Context, id string) ([]models.Session, error) {
	return s.send(ctx, "delete", deletePayload{ID: id})
}

func (s *SheetsStore) send(ctx context.Context, action string, payload any) ([]models.Session, error) {
	body, err := json.Marshal(sheetsRequest{Action: action, Payload: payload})
	if err != nil {
		return nil, fmt.Errorf("%w: encode %s request: %v", ErrUnavailable, action, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: build %s request: %v", ErrUnavailable, action, err)
	}
	// The Apps-Script transport only accepts plain-text POST bodies.
	req.Header.Set("Content-Type", "text/plain;charset=utf-8")

	return s.do(req)
}

func (s *SheetsStore) do(req *http.Request) ([]models.Session, error) {
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return nil, fmt.Errorf("%w: status %d: %s", ErrUnavailable, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var sessions []models.Session
	if err := json.NewDecoder(resp.Body).Decode(&sessions); err != nil {
		return nil, fmt.Errorf("%w: decode collection: %v", ErrUnavailable, err)
	}

	// Sheet rows persist absent notes as empty cells.
	for i := range sessions {
		if sessions[i].Notes != nil && *sessions[i].Notes == "" {
			sessions[i].Notes = nil
		}
	}
	return sessions, nil
}

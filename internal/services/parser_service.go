package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/KaladaranC/TutorTrack/internal/models"
)

// ScheduleParser turns free-text input into a best-effort session draft.
// Implementations are never authoritative; a failed parse degrades to
// manual entry and must not block session creation.
type ScheduleParser interface {
	Parse(ctx context.Context, text string, now time.Time) (*models.ParsedDraft, error)
}

const defaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// GeminiParser asks a Gemini model to extract the schedule fields as JSON
// constrained by a response schema.
type GeminiParser struct {
	baseURL    string
	model      string
	apiKey     string
	httpClient *http.Client
}

func NewGeminiParser(apiKey, model string) *GeminiParser {
	return &GeminiParser{
		baseURL:    defaultGeminiBaseURL,
		model:      model,
		apiKey:     apiKey,
		httpClient: http.DefaultClient,
	}
}

type geminiRequest struct {
	Contents         []geminiContent        `json:"contents"`
	GenerationConfig geminiGenerationConfig `json:"generationConfig"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenerationConfig struct {
	ResponseMimeType string          `json:"responseMimeType"`
	ResponseSchema   json.RawMessage `json:"responseSchema"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

var draftSchema = json.RawMessage(`{
	"type": "OBJECT",
	"properties": {
		"studentName": {"type": "STRING"},
		"subject": {"type": "STRING"},
		"startTime": {"type": "STRING", "description": "ISO 8601 date string"},
		"durationMinutes": {"type": "NUMBER"},
		"rate": {"type": "NUMBER"}
	},
	"required": ["studentName", "subject", "startTime", "durationMinutes", "rate"]
}`)

func (p *GeminiParser) Parse(
	ctx context.Context,
	text string,
	now time.Time,
) (*models.ParsedDraft, error) {
	if p.apiKey == "" {
		return nil, fmt.Errorf("schedule parser: api key not configured")
	}

	prompt := fmt.Sprintf(`Current date and time: %s
User input: %q

Extract the tutoring schedule details from the user input.
- If a date is mentioned (e.g. "tomorrow", "next friday"), calculate the ISO date string from the current date.
- If no duration is mentioned, assume 60 minutes.
- If no rate is mentioned, assume 0.
- If a field cannot be inferred, make a best guess or use the defaults.`,
		now.Format(time.RFC3339), text)

	body, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
		GenerationConfig: geminiGenerationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   draftSchema,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("schedule parser: encode request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", strings.TrimRight(p.baseURL, "/"), p.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("schedule parser: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", p.apiKey)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("schedule parser: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return nil, fmt.Errorf("schedule parser: status %d: %s", resp.StatusCode, strings.TrimSpace(string(detail)))
	}

	var decoded geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("schedule parser: decode response: %w", err)
	}
	if len(decoded.Candidates) == 0 || len(decoded.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("schedule parser: empty response")
	}

	raw := cleanJSONFences(decoded.Candidates[0].Content.Parts[0].Text)

	var parsed struct {
		StudentName     string  `json:"studentName"`
		Subject         string  `json:"subject"`
		StartTime       string  `json:"startTime"`
		DurationMinutes int     `json:"durationMinutes"`
		Rate            float64 `json:"rate"`
	}
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, fmt.Errorf("schedule parser: decode draft: %w", err)
	}

	startTime, err := time.Parse(time.RFC3339, strings.TrimSpace(parsed.StartTime))
	if err != nil {
		return nil, fmt.Errorf("schedule parser: invalid start time %q: %w", parsed.StartTime, err)
	}

	if parsed.DurationMinutes <= 0 {
		parsed.DurationMinutes = 60
	}
	if parsed.Rate < 0 {
		parsed.Rate = 0
	}

	return &models.ParsedDraft{
		StudentName:     strings.TrimSpace(parsed.StudentName),
		Subject:         strings.TrimSpace(parsed.Subject),
		StartTime:       startTime,
		DurationMinutes: parsed.DurationMinutes,
		Rate:            parsed.Rate,
	}, nil
}

// Models occasionally wrap the JSON payload in markdown code fences.
func cleanJSONFences(raw string) string {
	trimmed := strings.TrimSpace(raw)
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(trimmed, "```")
	return strings.TrimSpace(trimmed)
}

package models

import "time"

type SessionStatus string

const (
	StatusScheduled SessionStatus = "SCHEDULED"
	StatusCompleted SessionStatus = "COMPLETED"
	StatusPaid      SessionStatus = "PAID"
)

// AllStatuses lists the lifecycle stages in their natural order.
var AllStatuses = []SessionStatus{StatusScheduled, StatusCompleted, StatusPaid}

func ParseStatus(raw string) (SessionStatus, bool) {
	switch SessionStatus(raw) {
	case StatusScheduled, StatusCompleted, StatusPaid:
		return SessionStatus(raw), true
	default:
		return "", false
	}
}

// CanTransition reports whether a status change is part of the normal
// lifecycle. Keeping the same status is always allowed so whole-record
// updates carrying an unchanged status stay idempotent.
func CanTransition(from, to SessionStatus) bool {
	if from == to {
		return true
	}
	switch from {
	case StatusScheduled:
		return to == StatusCompleted
	case StatusCompleted:
		return to == StatusPaid
	default:
		return false
	}
}

type Session struct {
	ID              string        `json:"id"`
	StudentName     string        `json:"studentName"`
	Subject         string        `json:"subject"`
	StartTime       time.Time     `json:"startTime"`
	DurationMinutes int           `json:"durationMinutes"`
	Rate            float64       `json:"rate"`
	Status          SessionStatus `json:"status"`
	Notes           *string       `json:"notes,omitempty"`
	CreatedAt       time.Time     `json:"createdAt"`
}

type Stats struct {
	TotalEarnings    float64 `json:"totalEarnings"`
	PendingPayment   float64 `json:"pendingPayment"`
	TotalSessions    int     `json:"totalSessions"`
	UpcomingSessions int     `json:"upcomingSessions"`
}

type StatusCount struct {
	Status SessionStatus `json:"status"`
	Label  string        `json:"label"`
	Color  string        `json:"color"`
	Count  int           `json:"count"`
}

type StudentEarnings struct {
	StudentName string  `json:"studentName"`
	TotalValue  float64 `json:"totalValue"`
}

// ParsedDraft is a best-effort, user-reviewable session draft produced by
// the schedule parser. It is never authoritative.
type ParsedDraft struct {
	StudentName     string    `json:"studentName"`
	Subject         string    `json:"subject"`
	StartTime       time.Time `json:"startTime"`
	DurationMinutes int       `json:"durationMinutes"`
	Rate            float64   `json:"rate"`
}

package handlers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/KaladaranC/TutorTrack/internal/insights"
)

type CalendarHandler struct {
	service  sessionLister
	location *time.Location
}

func NewCalendarHandler(service sessionLister, location *time.Location) *CalendarHandler {
	if location == nil {
		location = time.Local
	}
	return &CalendarHandler{service: service, location: location}
}

// GetMonth serves one calendar page: sessions of the requested month
// grouped by day, each day ordered by time of day.
func (h *CalendarHandler) GetMonth(c *fiber.Ctx) error {
	year, err := strconv.Atoi(c.Params("year"))
	if err != nil || year < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid year"})
	}

	month, err := strconv.Atoi(c.Params("month"))
	if err != nil || month < 1 || month > 12 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "month must be between 1 and 12"})
	}

	sessions, err := h.service.List(c.Context())
	if err != nil {
		return mapSessionError(c, err)
	}

	return c.JSON(fiber.Map{
		"year":  year,
		"month": month,
		"days":  insights.BucketByDay(sessions, year, time.Month(month), h.location),
	})
}

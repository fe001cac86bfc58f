package handlers

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/KaladaranC/TutorTrack/internal/insights"
	"github.com/KaladaranC/TutorTrack/internal/models"
)

type DashboardHandler struct {
	service sessionLister
}

type sessionLister interface {
	List(ctx context.Context) ([]models.Session, error)
}

func NewDashboardHandler(service sessionLister) *DashboardHandler {
	return &DashboardHandler{service: service}
}

func (h *DashboardHandler) GetStats(c *fiber.Ctx) error {
	sessions, err := h.service.List(c.Context())
	if err != nil {
		return mapSessionError(c, err)
	}

	return c.JSON(fiber.Map{"stats": insights.ComputeStats(sessions, time.Now())})
}

func (h *DashboardHandler) GetStatusDistribution(c *fiber.Ctx) error {
	sessions, err := h.service.List(c.Context())
	if err != nil {
		return mapSessionError(c, err)
	}

	return c.JSON(fiber.Map{"distribution": insights.StatusDistribution(sessions)})
}

func (h *DashboardHandler) GetTopStudents(c *fiber.Ctx) error {
	limit := 0
	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "limit must be a positive integer"})
		}
		limit = parsed
	}

	sessions, err := h.service.List(c.Context())
	if err != nil {
		return mapSessionError(c, err)
	}

	return c.JSON(fiber.Map{"students": insights.TopStudents(sessions, limit)})
}

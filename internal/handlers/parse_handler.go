package handlers

import (
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/KaladaranC/TutorTrack/internal/services"
)

type ParseHandler struct {
	parser services.ScheduleParser
}

func NewParseHandler(parser services.ScheduleParser) *ParseHandler {
	return &ParseHandler{parser: parser}
}

type parseRequest struct {
	Text string `json:"text"`
}

// ParseSchedule turns free text into a session draft. Parser failures are
// never fatal: the client receives a null draft and falls back to manual
// entry.
func (h *ParseHandler) ParseSchedule(c *fiber.Ctx) error {
	var req parseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if strings.TrimSpace(req.Text) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "text is required"})
	}

	if h.parser == nil {
		return c.JSON(fiber.Map{"draft": nil})
	}

	draft, err := h.parser.Parse(c.Context(), req.Text, time.Now())
	if err != nil {
		log.Printf("schedule parse failed: %v", err)
		return c.JSON(fiber.Map{"draft": nil})
	}

	return c.JSON(fiber.Map{"draft": draft})
}

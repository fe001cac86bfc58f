package handlers

import (
	"errors"
	"strings"

	websocket "github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	sessionws "github.com/KaladaranC/TutorTrack/internal/websocket"
	"github.com/KaladaranC/TutorTrack/pkg/utils"
)

// FeedHandler upgrades authenticated clients onto the session-change feed.
type FeedHandler struct {
	hub       *sessionws.Hub
	jwtSecret string
}

func NewFeedHandler(hub *sessionws.Hub, jwtSecret string) *FeedHandler {
	return &FeedHandler{hub: hub, jwtSecret: jwtSecret}
}

func (h *FeedHandler) WebSocketAuth(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return c.Status(fiber.StatusUpgradeRequired).JSON(fiber.Map{"error": "WebSocket upgrade required"})
	}

	claims, err := h.parseWSClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid or expired token"})
	}

	c.Locals("email", claims.Email)
	return c.Next()
}

func (h *FeedHandler) HandleWebSocket(conn *websocket.Conn) {
	client := sessionws.NewClient(h.hub, conn)

	h.hub.Register(client)
	go client.WritePump()
	client.ReadPump()
}

func (h *FeedHandler) parseWSClaims(c *fiber.Ctx) (*utils.Claims, error) {
	tokenString := strings.TrimSpace(c.Query("token"))
	if tokenString == "" {
		authHeader := strings.TrimSpace(c.Get("Authorization"))
		if authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				tokenString = parts[1]
			}
		}
	}

	if tokenString == "" {
		return nil, errors.New("missing token")
	}

	return utils.ValidateToken(tokenString, h.jwtSecret)
}

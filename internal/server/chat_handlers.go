package server

import (
	"learnhub/internal/models"

	"github.com/gofiber/fiber/v2"
)

type chatRequest struct {
	Query *string `json:"query"`
}

// Chat handles POST /chat. Upstream failures are reported inside the
// response text with status 200.
func (s *Server) Chat(c *fiber.Ctx) error {
	var req chatRequest
	if err := s.parseBody(c, &req); err != nil {
		return nil
	}
	if req.Query == nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("query is required"))
	}

	return c.JSON(fiber.Map{"response": s.chatService.Reply(c.UserContext(), *req.Query)})
}

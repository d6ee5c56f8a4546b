package server

import (
	"learnhub/internal/service"

	"github.com/gofiber/fiber/v2"
)

type createUserRequest struct {
	Username string  `json:"username"`
	Password string  `json:"password"`
	Email    string  `json:"email"`
	AboutMe  *string `json:"aboutme"`
}

// CreateUser handles POST /users
func (s *Server) CreateUser(c *fiber.Ctx) error {
	var req createUserRequest
	if err := s.parseBody(c, &req); err != nil {
		return nil
	}

	user, err := s.userService.CreateUser(c.UserContext(), service.CreateUserInput{
		Username: req.Username,
		Password: req.Password,
		Email:    req.Email,
		AboutMe:  req.AboutMe,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(user.Public())
}

// GetUser handles GET /users/:id
func (s *Server) GetUser(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	user, err := s.userService.GetUser(c.UserContext(), id)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(user.Public())
}

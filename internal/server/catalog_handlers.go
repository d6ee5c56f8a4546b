package server

import (
	"learnhub/internal/service"

	"github.com/gofiber/fiber/v2"
)

type createCategoryRequest struct {
	CategoryName string  `json:"category_name"`
	Description  *string `json:"description"`
}

// createSkillRequest accepts category_id for compatibility; the path value wins.
type createSkillRequest struct {
	SkillName   string  `json:"skill_name"`
	Description *string `json:"description"`
	CategoryID  *uint   `json:"category_id"`
}

// CreateCategory handles POST /categories
func (s *Server) CreateCategory(c *fiber.Ctx) error {
	var req createCategoryRequest
	if err := s.parseBody(c, &req); err != nil {
		return nil
	}

	category, err := s.categoryService.CreateCategory(c.UserContext(), service.CreateCategoryInput{
		CategoryName: req.CategoryName,
		Description:  req.Description,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(category)
}

// GetCategory handles GET /category/:id
func (s *Server) GetCategory(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	category, names, err := s.categoryService.GetCategory(c.UserContext(), id)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"category":      category,
		"unique_skills": names,
	})
}

// CreateSkill handles POST /category/:id/skills
func (s *Server) CreateSkill(c *fiber.Ctx) error {
	categoryID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req createSkillRequest
	if err := s.parseBody(c, &req); err != nil {
		return nil
	}

	skill, err := s.skillService.CreateSkill(c.UserContext(), categoryID, service.CreateSkillInput{
		SkillName:   req.SkillName,
		Description: req.Description,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(skill)
}

// GetSkill handles GET /category/:categoryId/skills/:skillId
func (s *Server) GetSkill(c *fiber.Ctx) error {
	categoryID, skillID, err := s.parseSkillPath(c)
	if err != nil {
		return nil
	}

	skill, err := s.skillService.GetSkill(c.UserContext(), categoryID, skillID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(skill)
}

func (s *Server) parseSkillPath(c *fiber.Ctx) (uint, uint, error) {
	categoryID, err := s.parseID(c, "categoryId")
	if err != nil {
		return 0, 0, err
	}
	skillID, err := s.parseID(c, "skillId")
	if err != nil {
		return 0, 0, err
	}
	return categoryID, skillID, nil
}

package server

import (
	"learnhub/internal/service"

	"github.com/gofiber/fiber/v2"
)

type learnSkillRequest struct {
	SkillID         uint    `json:"skill_id"`
	ProficiencyGoal *string `json:"proficiency_goal"`
	Priority        *int    `json:"priority"`
}

type teachSkillRequest struct {
	SkillID         uint    `json:"skill_id"`
	ExperienceLevel *string `json:"experience_level"`
	YearsExperience *int    `json:"years_experience"`
}

// AddLearnSkill handles POST /users/:id/learn-skill
func (s *Server) AddLearnSkill(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req learnSkillRequest
	if err := s.parseBody(c, &req); err != nil {
		return nil
	}

	if err := s.associationService.AddLearnSkill(c.UserContext(), userID, service.AddLearnSkillInput{
		SkillID:         req.SkillID,
		ProficiencyGoal: req.ProficiencyGoal,
		Priority:        req.Priority,
	}); err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Successfully added skill to learning list"})
}

// AddTeachSkill handles POST /users/:id/teach-skill
func (s *Server) AddTeachSkill(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req teachSkillRequest
	if err := s.parseBody(c, &req); err != nil {
		return nil
	}

	if err := s.associationService.AddTeachSkill(c.UserContext(), userID, service.AddTeachSkillInput{
		SkillID:         req.SkillID,
		ExperienceLevel: req.ExperienceLevel,
		YearsExperience: req.YearsExperience,
	}); err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Successfully added skill to teaching list"})
}

// GetSkillLearners handles GET /category/:categoryId/skills/:skillId/learners
func (s *Server) GetSkillLearners(c *fiber.Ctx) error {
	categoryID, skillID, err := s.parseSkillPath(c)
	if err != nil {
		return nil
	}

	result, err := s.associationService.GetSkillLearners(c.UserContext(), categoryID, skillID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"skill":          result.Skill,
		"learners_count": len(result.Learners),
		"learners":       result.Learners,
	})
}

// GetSkillTeachers handles GET /category/:categoryId/skills/:skillId/teachers
func (s *Server) GetSkillTeachers(c *fiber.Ctx) error {
	categoryID, skillID, err := s.parseSkillPath(c)
	if err != nil {
		return nil
	}

	result, err := s.associationService.GetSkillTeachers(c.UserContext(), categoryID, skillID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"skill":          result.Skill,
		"teachers_count": len(result.Teachers),
		"teachers":       result.Teachers,
	})
}

// GetUserLearningSkills handles GET /users/:id/learning-skills
func (s *Server) GetUserLearningSkills(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	skills, err := s.associationService.GetUserLearningSkills(c.UserContext(), userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"user_id":         userID,
		"learning_skills": skills,
	})
}

// GetUserTeachingSkills handles GET /users/:id/teaching-skills
func (s *Server) GetUserTeachingSkills(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	skills, err := s.associationService.GetUserTeachingSkills(c.UserContext(), userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"user_id":         userID,
		"teaching_skills": skills,
	})
}

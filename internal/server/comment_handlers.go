package server

import (
	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/protection"
	"inkwell/internal/service"
	"inkwell/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// CreateComment handles POST /api/posts/:id/comments. A comment on a
// missing post fails with a not-found envelope and writes nothing.
func (s *Server) CreateComment(c *fiber.Ctx) error {
	claims := middleware.SessionClaims(c)

	id, idErr := parseID(c)
	if idErr != nil {
		return s.fail(c, idErr)
	}

	var in validation.CommentInput
	if err := c.BodyParser(&in); err != nil {
		return s.fail(c, models.NewValidationError("Invalid request body"))
	}
	if vErr := validation.FirstViolation(in); vErr != nil {
		return s.fail(c, vErr)
	}

	if _, appErr := s.checkProtection(c, protection.Params{
		Rules:     protection.RulesComment,
		Shield:    &protection.ShieldParams{Content: in.Content},
		Requested: costComment,
	}, contentShield); appErr != nil {
		return s.fail(c, appErr)
	}

	comment, err := s.commentService.AddComment(c.UserContext(), service.AddCommentInput{
		PostID:     id,
		UserID:     claims.UserID,
		AuthorName: claims.UserName,
		Content:    in.Content,
	})
	if err != nil {
		return s.fail(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"status":  fiber.StatusCreated,
		"comment": comment,
	})
}

// GetComments handles GET /api/posts/:id/comments
func (s *Server) GetComments(c *fiber.Ctx) error {
	id, idErr := parseID(c)
	if idErr != nil {
		return s.fail(c, idErr)
	}

	comments, err := s.commentService.ListComments(c.UserContext(), id)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"status":   fiber.StatusOK,
		"comments": comments,
	})
}

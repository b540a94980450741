package server

import (
	"strings"

	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/protection"
	"inkwell/internal/service"
	"inkwell/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// Requested cost units per action. The protection service meters each rule
// set's token bucket with these.
const (
	costCreatePost = 10
	costListPosts  = 10
	costFetchPost  = 5
	costComment    = 1
	costSearch     = 1
)

// CreatePost handles POST /api/posts
func (s *Server) CreatePost(c *fiber.Ctx) error {
	claims := middleware.SessionClaims(c)

	var in validation.PostInput
	if err := c.BodyParser(&in); err != nil {
		return s.fail(c, models.NewValidationError("Invalid request body"))
	}
	if vErr := validation.FirstViolation(in); vErr != nil {
		return s.fail(c, vErr)
	}

	if _, appErr := s.checkProtection(c, protection.Params{
		Rules:     protection.RulesBlogPost,
		Shield:    &protection.ShieldParams{Title: in.Title, Content: in.Content},
		Requested: costCreatePost,
	}, contentShield); appErr != nil {
		return s.fail(c, appErr)
	}

	post, err := s.postService.CreatePost(c.UserContext(), service.CreatePostInput{
		UserID:     claims.UserID,
		Title:      in.Title,
		Content:    in.Content,
		CoverImage: in.CoverImage,
		Category:   in.Category,
	})
	if err != nil {
		return s.fail(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"status":  fiber.StatusCreated,
		"post":    post,
	})
}

// GetPosts handles GET /api/posts. Listings carry the reduced summary
// shape; the full document is one fetch away.
func (s *Server) GetPosts(c *fiber.Ctx) error {
	if _, appErr := s.checkProtection(c, protection.Params{
		Rules:     protection.RulesBlogPost,
		Requested: costListPosts,
	}, activityShield); appErr != nil {
		return s.fail(c, appErr)
	}

	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)

	posts, err := s.postService.ListPosts(c.UserContext(), limit, offset)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"status":  fiber.StatusOK,
		"posts":   toPostSummaries(posts),
	})
}

// GetPost handles GET /api/posts/:id. The response carries the caller's
// own vote state so the client can render the upvote toggle.
func (s *Server) GetPost(c *fiber.Ctx) error {
	claims := middleware.SessionClaims(c)

	id, idErr := parseID(c)
	if idErr != nil {
		return s.fail(c, idErr)
	}

	if _, appErr := s.checkProtection(c, protection.Params{
		Rules:     protection.RulesBlogPost,
		Requested: costFetchPost,
	}, activityShield); appErr != nil {
		return s.fail(c, appErr)
	}

	post, err := s.postService.GetPost(c.UserContext(), id)
	if err != nil {
		return s.fail(c, err)
	}

	voted, err := s.postService.HasUpvoted(c.UserContext(), claims.UserID, id)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"status":     fiber.StatusOK,
		"post":       post,
		"hasUpvoted": voted,
	})
}

// SearchPosts handles GET /api/posts/search?q=. An empty result set is an
// ordinary success, not an error.
func (s *Server) SearchPosts(c *fiber.Ctx) error {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		return s.fail(c, models.NewValidationError("Search query is required"))
	}

	if _, appErr := s.checkProtection(c, protection.Params{
		Rules:     protection.RulesSearch,
		Requested: costSearch,
	}, activityShield); appErr != nil {
		return s.fail(c, appErr)
	}

	posts, err := s.postService.SearchPosts(c.UserContext(), query)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"status":  fiber.StatusOK,
		"posts":   toPostSummaries(posts),
	})
}

// UpvotePost handles POST /api/posts/:id/upvote. Voting twice is a no-op.
func (s *Server) UpvotePost(c *fiber.Ctx) error {
	claims := middleware.SessionClaims(c)

	id, idErr := parseID(c)
	if idErr != nil {
		return s.fail(c, idErr)
	}

	if _, appErr := s.checkProtection(c, protection.Params{
		Rules:     protection.RulesComment,
		Requested: costComment,
	}, activityShield); appErr != nil {
		return s.fail(c, appErr)
	}

	post, err := s.postService.UpvotePost(c.UserContext(), claims.UserID, id)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"status":  fiber.StatusOK,
		"post":    post,
	})
}

// RemoveUpvote handles DELETE /api/posts/:id/upvote
func (s *Server) RemoveUpvote(c *fiber.Ctx) error {
	claims := middleware.SessionClaims(c)

	id, idErr := parseID(c)
	if idErr != nil {
		return s.fail(c, idErr)
	}

	if _, appErr := s.checkProtection(c, protection.Params{
		Rules:     protection.RulesComment,
		Requested: costComment,
	}, activityShield); appErr != nil {
		return s.fail(c, appErr)
	}

	post, err := s.postService.RemoveUpvote(c.UserContext(), claims.UserID, id)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"status":  fiber.StatusOK,
		"post":    post,
	})
}

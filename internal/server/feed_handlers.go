package server

import (
	"yatube/internal/cache"

	"github.com/gofiber/fiber/v2"
)

// Index handles GET /
//
// The rendered body is cached for a short window, so freshly published or
// deleted posts may not show up until the cache entry expires.
func (s *Server) Index(c *fiber.Ctx) error {
	ctx := c.UserContext()

	if body, ok := cache.GetPage(ctx, cache.IndexPageKey); ok {
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.Send(body)
	}

	page, err := s.feedService.GlobalFeed(ctx, c.Query("page"))
	if err != nil {
		return respondServiceError(c, err)
	}

	if err := c.JSON(fiber.Map{"page": page}); err != nil {
		return err
	}

	// Fiber reuses the response buffer, so cache a copy.
	body := append([]byte(nil), c.Response().Body()...)
	cache.SetPage(ctx, cache.IndexPageKey, body, cache.IndexPageTTL)
	return nil
}

// GroupPosts handles GET /group/:slug/
func (s *Server) GroupPosts(c *fiber.Ctx) error {
	group, page, err := s.feedService.GroupFeed(c.UserContext(), c.Params("slug"), c.Query("page"))
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"group": group,
		"page":  page,
	})
}

// Profile handles GET /profile/:username/
func (s *Server) Profile(c *fiber.Ctx) error {
	viewerID, _ := s.optionalUserID(c)

	feed, err := s.feedService.Profile(c.UserContext(), c.Params("username"), c.Query("page"), viewerID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"author":     feed.Author,
		"page":       feed.Page,
		"following":  feed.IsFollowing,
		"post_count": feed.Page.TotalItems,
	})
}

// FollowIndex handles GET /follow/
func (s *Server) FollowIndex(c *fiber.Ctx) error {
	page, err := s.feedService.FollowingFeed(c.UserContext(), currentUserID(c), c.Query("page"))
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"page": page})
}

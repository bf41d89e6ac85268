package server

import (
	"yatube/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

// ProfileFollow handles GET /profile/:username/follow/
//
// Following yourself or an author you already follow changes nothing; every
// outcome lands back on the author's profile.
func (s *Server) ProfileFollow(c *fiber.Ctx) error {
	author, err := s.followService.Follow(c.UserContext(), currentUserID(c), c.Params("username"))
	if err != nil {
		return respondServiceError(c, err)
	}

	middleware.FollowWrites.WithLabelValues("follow").Inc()
	return c.Redirect("/profile/"+author.Username+"/", fiber.StatusFound)
}

// ProfileUnfollow handles GET /profile/:username/unfollow/
func (s *Server) ProfileUnfollow(c *fiber.Ctx) error {
	author, err := s.followService.Unfollow(c.UserContext(), currentUserID(c), c.Params("username"))
	if err != nil {
		return respondServiceError(c, err)
	}

	middleware.FollowWrites.WithLabelValues("unfollow").Inc()
	return c.Redirect("/profile/"+author.Username+"/", fiber.StatusFound)
}

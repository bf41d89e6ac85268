package server

import (
	"errors"
	"fmt"

	"yatube/internal/models"
	"yatube/internal/service"

	"github.com/gofiber/fiber/v2"
)

// postFormRequest carries the submitted post form fields. The image arrives
// separately as a multipart file.
type postFormRequest struct {
	Text  string `json:"text" form:"text"`
	Group string `json:"group" form:"group"`
}

// buildForm turns the raw submission into a validated form, collecting
// per-field messages.
func (s *Server) buildForm(c *fiber.Ctx, req *postFormRequest) (*service.PostForm, service.FieldErrors, error) {
	form := &service.PostForm{Text: req.Text}
	errs := service.FieldErrors{}

	groupID, err := parseGroupID(req.Group)
	if err != nil {
		errs["group"] = "Select a valid group"
	} else {
		form.GroupID = groupID
	}

	svcErrs, err := s.postService.Validate(c.UserContext(), form)
	if err != nil {
		return nil, nil, err
	}
	for field, msg := range svcErrs {
		if _, taken := errs[field]; !taken {
			errs[field] = msg
		}
	}

	return form, errs, nil
}

// PostDetail handles GET /posts/:post_id/
func (s *Server) PostDetail(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "post_id")
	if err != nil {
		return nil
	}

	post, err := s.postService.GetPost(c.UserContext(), postID)
	if err != nil {
		return respondServiceError(c, err)
	}

	comments, err := s.commentService.ListComments(c.UserContext(), postID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"post":          post,
		"comments":      comments,
		"comment_count": len(comments),
	})
}

// PostCreateForm handles GET /create/
func (s *Server) PostCreateForm(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"is_edit": false,
		"form":    postFormRequest{},
		"errors":  fiber.Map{},
	})
}

// PostCreate handles POST /create/
//
// An invalid form is returned to the author with field messages and nothing
// is stored. A valid one lands on the author's profile.
func (s *Server) PostCreate(c *fiber.Ctx) error {
	var req postFormRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	form, errs, err := s.buildForm(c, &req)
	if err != nil {
		return respondServiceError(c, err)
	}
	if len(errs) > 0 {
		return c.JSON(fiber.Map{
			"is_edit": false,
			"form":    req,
			"errors":  errs,
		})
	}

	image, err := s.saveImage(c)
	if err != nil {
		return respondServiceError(c, err)
	}
	form.Image = image

	userID := currentUserID(c)
	if _, err := s.postService.Create(c.UserContext(), userID, form); err != nil {
		return respondServiceError(c, err)
	}

	author, err := s.userRepo.GetByID(c.UserContext(), userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Redirect("/profile/"+author.Username+"/", fiber.StatusFound)
}

// PostEditForm handles GET /posts/:post_id/edit/
//
// Anyone but the author is bounced straight to the post page.
func (s *Server) PostEditForm(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "post_id")
	if err != nil {
		return nil
	}

	post, err := s.postService.GetPost(c.UserContext(), postID)
	if err != nil {
		return respondServiceError(c, err)
	}
	if post.UserID != currentUserID(c) {
		return c.Redirect(fmt.Sprintf("/posts/%d/", postID), fiber.StatusFound)
	}

	group := ""
	if post.GroupID != nil {
		group = fmt.Sprintf("%d", *post.GroupID)
	}
	return c.JSON(fiber.Map{
		"is_edit": true,
		"post":    post,
		"form":    postFormRequest{Text: post.Text, Group: group},
		"errors":  fiber.Map{},
	})
}

// PostEdit handles POST /posts/:post_id/edit/
func (s *Server) PostEdit(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "post_id")
	if err != nil {
		return nil
	}

	post, err := s.postService.GetPost(c.UserContext(), postID)
	if err != nil {
		return respondServiceError(c, err)
	}
	if post.UserID != currentUserID(c) {
		return c.Redirect(fmt.Sprintf("/posts/%d/", postID), fiber.StatusFound)
	}

	var req postFormRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	form, errs, err := s.buildForm(c, &req)
	if err != nil {
		return respondServiceError(c, err)
	}
	if len(errs) > 0 {
		return c.JSON(fiber.Map{
			"is_edit": true,
			"post":    post,
			"form":    req,
			"errors":  errs,
		})
	}

	image, err := s.saveImage(c)
	if err != nil {
		return respondServiceError(c, err)
	}
	form.Image = image

	if _, err := s.postService.Edit(c.UserContext(), postID, currentUserID(c), form); err != nil {
		return respondServiceError(c, err)
	}

	return c.Redirect(fmt.Sprintf("/posts/%d/", postID), fiber.StatusFound)
}

// AddComment handles POST /posts/:post_id/comment/
//
// The reader lands back on the post page whether or not the comment text
// passed validation.
func (s *Server) AddComment(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "post_id")
	if err != nil {
		return nil
	}

	var req struct {
		Text string `json:"text" form:"text"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if _, err := s.commentService.AddComment(c.UserContext(), postID, currentUserID(c), req.Text); err != nil {
		if models.IsNotFound(err) {
			return respondServiceError(c, err)
		}
		// Invalid text falls through to the redirect with nothing stored.
		var appErr *models.AppError
		if !errors.As(err, &appErr) || appErr.Code != models.CodeValidation {
			return respondServiceError(c, err)
		}
	}

	return c.Redirect(fmt.Sprintf("/posts/%d/", postID), fiber.StatusFound)
}

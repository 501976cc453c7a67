package server

import (
	"html/template"

	"inkwell/internal/models"
	"inkwell/internal/service"
	"inkwell/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// ListPosts handles GET /, the public landing page.
func (s *Server) ListPosts(c *fiber.Ctx) error {
	posts, err := s.postService.List(c.Context())
	if err != nil {
		s.flash(c, "danger", "Could not load posts.")
		posts = nil
	}
	return s.render(c, "index", fiber.Map{
		"Title": "Inkwell",
		"Posts": posts,
	})
}

// ShowPost handles GET /post/:id, the public post page with its comments.
func (s *Server) ShowPost(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return s.renderNotFound(c)
	}

	post, err := s.postService.Get(c.Context(), id)
	if err != nil {
		return s.renderNotFound(c)
	}

	comments, err := s.commentService.ListByPost(c.Context(), id)
	if err != nil {
		comments = nil
	}

	return s.render(c, "post", fiber.Map{
		"Title":    post.Title,
		"Post":     post,
		"Body":     template.HTML(post.Body), // rich-text body authored by the admin
		"Comments": comments,
	})
}

// CreateComment handles POST /post/:id. Commenting requires a session; an
// anonymous submission is bounced to the login page with a notice.
func (s *Server) CreateComment(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return s.renderNotFound(c)
	}

	if !isAuthenticated(c) {
		s.flash(c, "warning", "You need to login or register to comment.")
		return c.Redirect("/login", fiber.StatusSeeOther)
	}

	var req struct {
		Text string `form:"text"`
	}
	if err := c.BodyParser(&req); err != nil {
		s.flash(c, "warning", "Invalid form submission.")
		return c.Redirect("/post/"+c.Params("id"), fiber.StatusSeeOther)
	}

	_, err := s.commentService.Create(c.Context(), service.CreateCommentInput{
		AuthorID: currentUser(c).ID,
		PostID:   id,
		Text:     req.Text,
	})
	if err != nil {
		if models.IsNotFound(err) {
			return s.renderNotFound(c)
		}
		s.flash(c, "warning", err.Error())
	}
	return c.Redirect("/post/"+c.Params("id"), fiber.StatusSeeOther)
}

// postFormInput parses and validates the shared create/edit post form.
func (s *Server) postFormInput(c *fiber.Ctx) (service.PostInput, error) {
	var req struct {
		Title    string `form:"title"`
		Subtitle string `form:"subtitle"`
		ImageURL string `form:"img_url"`
		Body     string `form:"body"`
	}
	if err := c.BodyParser(&req); err != nil {
		return service.PostInput{}, models.NewValidationError("Invalid form submission")
	}

	if err := validation.ValidateRequired("title", req.Title); err != nil {
		return service.PostInput{}, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateRequired("subtitle", req.Subtitle); err != nil {
		return service.PostInput{}, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateRequired("body", req.Body); err != nil {
		return service.PostInput{}, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateURL(req.ImageURL); err != nil {
		return service.PostInput{}, models.NewValidationError(err.Error())
	}

	return service.PostInput{
		Title:    req.Title,
		Subtitle: req.Subtitle,
		Body:     req.Body,
		ImageURL: req.ImageURL,
		AuthorID: currentUser(c).ID,
	}, nil
}

// NewPostForm handles GET /new-post (admin only).
func (s *Server) NewPostForm(c *fiber.Ctx) error {
	return s.render(c, "make-post", fiber.Map{
		"Title":   "New Post",
		"Heading": "New Post",
	})
}

// CreatePost handles POST /new-post (admin only).
func (s *Server) CreatePost(c *fiber.Ctx) error {
	in, err := s.postFormInput(c)
	if err != nil {
		s.flash(c, "warning", err.Error())
		return s.render(c, "make-post", fiber.Map{
			"Title":   "New Post",
			"Heading": "New Post",
		})
	}

	if _, err := s.postService.Create(c.Context(), in); err != nil {
		s.flash(c, "warning", err.Error())
		return s.render(c, "make-post", fiber.Map{
			"Title":   "New Post",
			"Heading": "New Post",
			"Post":    models.Post{Title: in.Title, Subtitle: in.Subtitle, Body: in.Body, ImageURL: in.ImageURL},
		})
	}
	return c.Redirect("/", fiber.StatusSeeOther)
}

// EditPostForm handles GET /edit-post/:id (admin only), pre-populated.
func (s *Server) EditPostForm(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return s.renderNotFound(c)
	}

	post, err := s.postService.Get(c.Context(), id)
	if err != nil {
		return s.renderNotFound(c)
	}

	return s.render(c, "make-post", fiber.Map{
		"Title":   "Edit Post",
		"Heading": "Edit Post",
		"IsEdit":  true,
		"Post":    post,
	})
}

// UpdatePost handles POST /edit-post/:id (admin only). Saving reassigns the
// post's author to the editing principal.
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return s.renderNotFound(c)
	}

	in, err := s.postFormInput(c)
	if err != nil {
		s.flash(c, "warning", err.Error())
		return c.Redirect("/edit-post/"+c.Params("id"), fiber.StatusSeeOther)
	}

	post, err := s.postService.Update(c.Context(), id, in)
	if err != nil {
		if models.IsNotFound(err) {
			return s.renderNotFound(c)
		}
		s.flash(c, "warning", err.Error())
		return c.Redirect("/edit-post/"+c.Params("id"), fiber.StatusSeeOther)
	}
	return c.Redirect("/post/"+itoa(post.ID), fiber.StatusSeeOther)
}

// DeletePost handles GET /delete/:id (admin only). Comments are removed
// before the post itself.
func (s *Server) DeletePost(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return s.renderNotFound(c)
	}

	if err := s.postService.Delete(c.Context(), id); err != nil {
		if models.IsNotFound(err) {
			return s.renderNotFound(c)
		}
		s.flash(c, "danger", "Could not delete the post.")
	}
	return c.Redirect("/", fiber.StatusSeeOther)
}

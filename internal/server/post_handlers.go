package server

import (
	"postboard/internal/forms"
	"postboard/internal/models"

	"github.com/gofiber/fiber/v2"
)

// Feed handles GET /
func (s *Server) Feed(c *fiber.Ctx) error {
	page, err := s.postService.Feed(c.UserContext(), pageParam(c))
	if err != nil {
		return err
	}
	return s.render(c, fiber.StatusOK, "index", fiber.Map{
		"Page": page,
	})
}

// GroupPosts handles GET /group/:slug
func (s *Server) GroupPosts(c *fiber.Ctx) error {
	group, page, err := s.postService.GroupPosts(c.UserContext(), c.Params("slug"), pageParam(c))
	if err != nil {
		return err
	}
	return s.render(c, fiber.StatusOK, "group", fiber.Map{
		"Title": group.Title,
		"Group": group,
		"Page":  page,
	})
}

// Profile handles GET /:username
func (s *Server) Profile(c *fiber.Ctx) error {
	author, page, err := s.postService.Profile(c.UserContext(), c.Params("username"), pageParam(c))
	if err != nil {
		return err
	}
	return s.render(c, fiber.StatusOK, "profile", fiber.Map{
		"Title":  "@" + author.Username,
		"Author": author,
		"Page":   page,
	})
}

// PostDetail handles GET /:username/:post_id
func (s *Server) PostDetail(c *fiber.Ctx) error {
	postID, err := parsePostID(c)
	if err != nil {
		return err
	}

	author, post, err := s.postService.PostDetail(c.UserContext(), c.Params("username"), postID)
	if err != nil {
		return err
	}

	viewer := currentIdentity(c)
	return s.render(c, fiber.StatusOK, "post", fiber.Map{
		"Title":   post.Excerpt(30),
		"Author":  author,
		"Post":    post,
		"IsOwner": viewer != nil && viewer.UserID == author.ID,
	})
}

// NewPost handles GET and POST /new. The author is always the session
// identity; an author field in the body is never read.
func (s *Server) NewPost(c *fiber.Ctx) error {
	ctx := c.UserContext()
	viewer := currentIdentity(c)

	groups, err := s.postService.Groups(ctx)
	if err != nil {
		return err
	}

	if c.Method() != fiber.MethodPost {
		return s.renderPostForm(c, forms.PostForm{}, forms.FieldErrors{}, groups, nil)
	}

	var form forms.PostForm
	if err := c.BodyParser(&form); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid form submission")
	}

	_, fieldErrs, err := s.postService.CreatePost(ctx, viewer.UserID, form)
	if err != nil {
		return err
	}
	if fieldErrs.Any() {
		return s.renderPostForm(c, form, fieldErrs, groups, nil)
	}
	return c.Redirect("/", fiber.StatusFound)
}

// EditPost handles GET and POST /:username/:post_id/edit. A caller who is
// not the author is sent to the read-only detail page whatever the method.
func (s *Server) EditPost(c *fiber.Ctx) error {
	ctx := c.UserContext()
	viewer := currentIdentity(c)
	username := c.Params("username")

	postID, err := parsePostID(c)
	if err != nil {
		return err
	}

	post, err := s.postService.EditablePost(ctx, viewer.UserID, username, postID)
	if err != nil {
		if models.IsForbidden(err) {
			return c.Redirect(postDetailPath(username, postID), fiber.StatusFound)
		}
		return err
	}

	groups, err := s.postService.Groups(ctx)
	if err != nil {
		return err
	}

	if c.Method() != fiber.MethodPost {
		return s.renderPostForm(c, forms.PostFormFrom(post), forms.FieldErrors{}, groups, post)
	}

	var form forms.PostForm
	if err := c.BodyParser(&form); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid form submission")
	}

	fieldErrs, err := s.postService.UpdatePost(ctx, post, form)
	if err != nil {
		return err
	}
	if fieldErrs.Any() {
		return s.renderPostForm(c, form, fieldErrs, groups, post)
	}
	return c.Redirect(postDetailPath(post.Author.Username, post.ID), fiber.StatusFound)
}

// renderPostForm shows the create form, or the edit form when post is set.
// Validation failures are not HTTP errors, so the status is always 200.
func (s *Server) renderPostForm(c *fiber.Ctx, form forms.PostForm, errs forms.FieldErrors, groups []*models.Group, post *models.Post) error {
	title := "New post"
	if post != nil {
		title = "Edit post"
	}
	return s.render(c, fiber.StatusOK, "new_post", fiber.Map{
		"Title":  title,
		"Form":   form,
		"Errors": errs,
		"Groups": groups,
		"Post":   post,
		"IsEdit": post != nil,
	})
}

package server

import (
	"fmt"
	"strconv"

	"postboard/internal/paginate"
	"postboard/internal/views"

	"github.com/gofiber/fiber/v2"
)

const csrfContextKey = "csrf"

// render executes a page inside the base layout. The viewer, CSRF token and
// request path are always available to templates.
func (s *Server) render(c *fiber.Ctx, status int, name string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	data["Viewer"] = currentIdentity(c)
	data["Path"] = c.Path()
	if token, ok := c.Locals(csrfContextKey).(string); ok {
		data["CSRF"] = token
	} else {
		data["CSRF"] = ""
	}
	return c.Status(status).Render(name, data, views.Layout)
}

// pageParam reads the page query parameter.
func pageParam(c *fiber.Ctx) int {
	return paginate.ParseNumber(c.Query("page"))
}

// parsePostID reads the post_id route parameter. Anything that is not a
// positive integer cannot name a post.
func parsePostID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("post_id"), 10, 32)
	if err != nil || id == 0 {
		return 0, fiber.ErrNotFound
	}
	return uint(id), nil
}

func postDetailPath(username string, id uint) string {
	return fmt.Sprintf("/%s/%d/", username, id)
}

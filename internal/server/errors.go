package server

import (
	"errors"
	"log/slog"

	"postboard/internal/middleware"
	"postboard/internal/models"

	"github.com/gofiber/fiber/v2"
)

// errorHandler maps handler errors onto the fixed error pages. NOT_FOUND
// app errors and unmatched routes render the 404 page; explicit Fiber
// statuses other than 404/500 are sent as plain text; everything else is a
// 500.
func (s *Server) errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := ""

	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		code = fe.Code
		message = fe.Message
	case models.IsNotFound(err):
		code = fiber.StatusNotFound
	}

	switch code {
	case fiber.StatusNotFound:
		return s.renderNotFound(c)
	case fiber.StatusInternalServerError:
		middleware.Logger.ErrorContext(c.UserContext(), "unhandled error",
			slog.String("path", c.Path()),
			slog.String("error", err.Error()),
		)
		return s.renderServerError(c)
	default:
		c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
		return c.Status(code).SendString(message)
	}
}

// NotFoundPage handles GET /404
func (s *Server) NotFoundPage(c *fiber.Ctx) error {
	return s.renderNotFound(c)
}

// ServerErrorPage handles GET /500
func (s *Server) ServerErrorPage(c *fiber.Ctx) error {
	return s.renderServerError(c)
}

func (s *Server) renderNotFound(c *fiber.Ctx) error {
	if err := s.render(c, fiber.StatusNotFound, "misc/404", fiber.Map{"Title": "Not found"}); err != nil {
		return c.Status(fiber.StatusNotFound).SendString("404 page not found")
	}
	return nil
}

func (s *Server) renderServerError(c *fiber.Ctx) error {
	if err := s.render(c, fiber.StatusInternalServerError, "misc/500", fiber.Map{"Title": "Server error"}); err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("500 internal server error")
	}
	return nil
}

package server

import (
	"postboard/internal/forms"
	"postboard/internal/models"
	"postboard/internal/observability"
	"postboard/internal/service"

	"github.com/gofiber/fiber/v2"
)

// SignupPage handles GET /auth/signup
func (s *Server) SignupPage(c *fiber.Ctx) error {
	return s.renderSignup(c, service.SignupForm{}, forms.FieldErrors{}, safeNext(c.Query("next")))
}

// Signup handles POST /auth/signup
func (s *Server) Signup(c *fiber.Ctx) error {
	var form service.SignupForm
	if err := c.BodyParser(&form); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid form submission")
	}
	next := safeNext(c.FormValue("next"))

	user, fieldErrs, err := s.accountService.Signup(c.UserContext(), form)
	if err != nil {
		return err
	}
	if fieldErrs.Any() {
		observability.FormRejections.WithLabelValues("signup").Inc()
		form.Password = ""
		return s.renderSignup(c, form, fieldErrs, next)
	}

	if err := s.startSession(c, user); err != nil {
		return err
	}
	return c.Redirect(next, fiber.StatusFound)
}

// LoginPage handles GET /auth/login
func (s *Server) LoginPage(c *fiber.Ctx) error {
	return s.renderLogin(c, service.LoginForm{}, forms.FieldErrors{}, safeNext(c.Query("next")))
}

// Login handles POST /auth/login
func (s *Server) Login(c *fiber.Ctx) error {
	var form service.LoginForm
	if err := c.BodyParser(&form); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid form submission")
	}
	next := safeNext(c.FormValue("next"))

	user, err := s.accountService.Login(c.UserContext(), form)
	if err != nil {
		if models.ErrorCode(err) == models.CodeUnauthorized {
			observability.FormRejections.WithLabelValues("login").Inc()
			errs := forms.FieldErrors{}
			errs.Add("", service.MsgBadCredentials)
			form.Password = ""
			return s.renderLogin(c, form, errs, next)
		}
		return err
	}

	if err := s.startSession(c, user); err != nil {
		return err
	}
	return c.Redirect(next, fiber.StatusFound)
}

// Logout handles POST /auth/logout
func (s *Server) Logout(c *fiber.Ctx) error {
	s.endSession(c)
	return c.Redirect("/", fiber.StatusFound)
}

func (s *Server) renderSignup(c *fiber.Ctx, form service.SignupForm, errs forms.FieldErrors, next string) error {
	return s.render(c, fiber.StatusOK, "auth/signup", fiber.Map{
		"Title":  "Sign up",
		"Form":   form,
		"Errors": errs,
		"Next":   next,
	})
}

func (s *Server) renderLogin(c *fiber.Ctx, form service.LoginForm, errs forms.FieldErrors, next string) error {
	return s.render(c, fiber.StatusOK, "auth/login", fiber.Map{
		"Title":  "Log in",
		"Form":   form,
		"Errors": errs,
		"Next":   next,
	})
}

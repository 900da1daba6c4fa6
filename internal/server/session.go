package server

import (
	"log/slog"
	"net/url"
	"strings"
	"time"

	"postboard/internal/auth"
	"postboard/internal/middleware"
	"postboard/internal/models"

	"github.com/gofiber/fiber/v2"
)

const identityKey = "identity"

// identify resolves the session cookie into an identity. Invalid, expired and
// revoked tokens, and tokens of deleted users, leave the request anonymous.
func (s *Server) identify() fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := c.Cookies(s.config.SessionCookieName)
		if raw == "" {
			return c.Next()
		}

		identity, err := s.tokens.Parse(raw)
		if err != nil {
			return c.Next()
		}

		revoked, err := s.revocations.IsRevoked(c.UserContext(), identity.TokenID)
		if err != nil {
			middleware.Logger.WarnContext(c.UserContext(), "revocation check failed",
				slog.String("error", err.Error()))
		}
		if revoked {
			return c.Next()
		}

		// A token can outlive its account.
		user, err := s.userRepo.GetByID(c.UserContext(), identity.UserID)
		if err != nil {
			if models.IsNotFound(err) {
				return c.Next()
			}
			return err
		}
		identity.Username = user.Username

		c.Locals(identityKey, identity)
		c.Locals("userID", identity.UserID)
		return c.Next()
	}
}

// currentIdentity returns the authenticated caller, or nil.
func currentIdentity(c *fiber.Ctx) *auth.Identity {
	identity, _ := c.Locals(identityKey).(*auth.Identity)
	return identity
}

// requireLogin sends anonymous callers to entry, carrying the current URL so
// they come back here afterwards.
func (s *Server) requireLogin(entry string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if currentIdentity(c) != nil {
			return c.Next()
		}
		return c.Redirect(entry+"?next="+url.QueryEscape(c.OriginalURL()), fiber.StatusFound)
	}
}

// startSession issues a token for user and sets the session cookie.
func (s *Server) startSession(c *fiber.Ctx, user *models.User) error {
	token, identity, err := s.tokens.Issue(user.ID, user.Username)
	if err != nil {
		return err
	}
	c.Cookie(&fiber.Cookie{
		Name:     s.config.SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  identity.ExpiresAt,
		HTTPOnly: true,
		Secure:   s.config.IsProduction(),
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return nil
}

// endSession revokes the caller's token and clears the cookie.
func (s *Server) endSession(c *fiber.Ctx) {
	if identity := currentIdentity(c); identity != nil {
		if err := s.revocations.Revoke(c.UserContext(), identity.TokenID, identity.ExpiresAt); err != nil {
			middleware.Logger.WarnContext(c.UserContext(), "failed to revoke session token",
				slog.String("error", err.Error()))
		}
	}
	c.Cookie(&fiber.Cookie{
		Name:     s.config.SessionCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HTTPOnly: true,
		Secure:   s.config.IsProduction(),
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// safeNext accepts only local absolute paths. Anything else, including
// protocol-relative //host forms, falls back to the feed.
func safeNext(raw string) string {
	if raw == "" || !strings.HasPrefix(raw, "/") {
		return "/"
	}
	if strings.HasPrefix(raw, "//") || strings.HasPrefix(raw, "/\\") {
		return "/"
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return "/"
	}
	return raw
}

package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	applog "petwell/internal/log"
	"petwell/internal/services"
	"petwell/internal/session"
)

func ensureSID(c *fiber.Ctx) string {
	sid := c.Cookies("sid")
	if sid == "" {
		sid = uuid.NewString()
		c.Cookie(&fiber.Cookie{
			Name:     "sid",
			Value:    sid,
			Path:     "/",
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
			Secure:   false, // set true behind HTTPS
		})
	}
	return sid
}

func expireSID(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     "sid",
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  time.Now().Add(-1 * time.Hour),
	})
}

// LoadSession resolves the session for every request and parks it in
// Locals. A token without a cached profile triggers a profile fetch
// inside Current; a failed fetch comes back as an unauthenticated
// session (forced logout).
func LoadSession(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := ensureSID(c)
		sess, err := auth.Current(c.Context(), sid)
		if err != nil {
			applog.Error(c, "session.load.fail", err, nil)
			sess = &session.Session{SID: sid}
		}
		c.Locals("sess", sess)
		if sess.User != nil {
			c.Locals("user", sess.User)
		}
		return c.Next()
	}
}

func currentSession(c *fiber.Ctx) *session.Session {
	if sess, ok := c.Locals("sess").(*session.Session); ok && sess != nil {
		return sess
	}
	return &session.Session{}
}

// authFailed tears the session down when the backend rejected the
// token. The caller redirects to login when it returns true.
func authFailed(c *fiber.Ctx, auth *services.AuthService, err error) bool {
	sess := currentSession(c)
	if auth.TeardownOnAuthFailure(sess.SID, err) {
		applog.Security(c, "session.token.rejected", nil)
		expireSID(c)
		return true
	}
	return false
}

// RequireUser gates the non-admin partition: anonymous users go to
// login, admins go to their own landing route. The two partitions share
// nothing but the public pages.
func RequireUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess := currentSession(c)
		if !sess.IsAuthenticated {
			return c.Redirect("/login")
		}
		if sess.IsAdmin() {
			applog.Security(c, "access.partition.admin", map[string]any{"path": c.Path()})
			return c.Redirect("/admin")
		}
		return c.Next()
	}
}

// RequireAdmin gates the admin partition the same way, in reverse.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess := currentSession(c)
		if !sess.IsAuthenticated {
			return c.Redirect("/login")
		}
		if !sess.IsAdmin() {
			applog.Security(c, "access.denied.admin", map[string]any{"path": c.Path()})
			return c.Redirect("/dashboard")
		}
		return c.Next()
	}
}

package handlers

import (
	"github.com/gofiber/fiber/v2"

	"petwell/internal/api"
	"petwell/internal/session"
)

func render(c *fiber.Ctx, tmpl string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	if u := c.Locals("user"); u != nil {
		data["User"] = u
	}
	if sess, ok := c.Locals("sess").(*session.Session); ok && sess != nil {
		data["IsAdmin"] = sess.IsAdmin()
	}
	// Pick up the token the CSRF middleware put into Locals
	if tok, ok := c.Locals("CSRFToken").(string); ok && tok != "" {
		data["CSRFToken"] = tok
	} else if cookTok := c.Cookies("csrf_"); cookTok != "" {
		data["CSRFToken"] = cookTok
	}
	return c.Render(tmpl, data)
}

// errMessage maps a failed backend call to what the page shows. Backend
// messages are surfaced verbatim; a request that never got a response
// becomes a generic try-again message.
func errMessage(err error) string {
	if ae, ok := api.AsAPIError(err); ok {
		return ae.UserMessage()
	}
	return "Something went wrong. Please try again."
}

// fieldErrors pulls the backend's field map, if it sent one, so forms
// can render inline errors next to the offending inputs.
func fieldErrors(err error) map[string]string {
	if ae, ok := api.AsAPIError(err); ok && len(ae.Fields) > 0 {
		return ae.Fields
	}
	return nil
}

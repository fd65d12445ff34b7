package handlers

import (
	"github.com/gofiber/fiber/v2"

	"petwell/internal/api"
	applog "petwell/internal/log"
	"petwell/internal/validate"
)

type ContactHandler struct {
	API *api.Set
}

func (h *ContactHandler) Form(c *fiber.Ctx) error {
	return render(c, "contact", fiber.Map{})
}

func (h *ContactHandler) Submit(c *fiber.Ctx) error {
	req := api.ContactRequest{
		Name:    c.FormValue("name"),
		Email:   c.FormValue("email"),
		Subject: c.FormValue("subject"),
		Message: c.FormValue("message"),
	}
	if err := validate.Struct(req); err != nil {
		return render(c.Status(fiber.StatusBadRequest), "contact", fiber.Map{
			"Form": req, "FieldErrs": validate.StructErrors(err),
		})
	}

	msg, err := h.API.Contact.Submit(c.Context(), req)
	if err != nil {
		applog.Error(c, "contact.submit.fail", err, nil)
		return render(c.Status(fiber.StatusBadRequest), "contact", fiber.Map{
			"Form": req, "Err": errMessage(err), "FieldErrs": fieldErrors(err),
		})
	}
	applog.Info(c, "contact.submit", map[string]any{"subject": req.Subject})
	return render(c, "contact", fiber.Map{"Msg": msg.Message})
}

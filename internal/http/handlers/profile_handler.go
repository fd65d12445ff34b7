package handlers

import (
	"github.com/gofiber/fiber/v2"

	"petwell/internal/api"
	applog "petwell/internal/log"
	"petwell/internal/services"
	"petwell/internal/validate"
)

type ProfileHandler struct {
	API  *api.Set
	Auth *services.AuthService
}

func (h *ProfileHandler) Show(c *fiber.Ctx) error {
	sess := currentSession(c)
	// Always render from a fresh fetch so completion and approval state
	// are current, not the login-time snapshot.
	user, err := h.API.Users.Profile(c.Context(), sess.Token)
	if err != nil {
		if authFailed(c, h.Auth, err) {
			return c.Redirect("/login")
		}
		return render(c, "profile", fiber.Map{"Err": errMessage(err)})
	}
	_ = h.Auth.Sessions.SetUser(sess.SID, user)
	return render(c, "profile", fiber.Map{"Profile": user, "Msg": c.Query("msg")})
}

func (h *ProfileHandler) Update(c *fiber.Ctx) error {
	sess := currentSession(c)
	req := api.UpdateProfileRequest{
		FirstName:   c.FormValue("firstName"),
		LastName:    c.FormValue("lastName"),
		PhoneNumber: c.FormValue("phoneNumber"),
		Address:     c.FormValue("address"),
		City:        c.FormValue("city"),
		State:       c.FormValue("state"),
		Country:     c.FormValue("country"),
		ZipCode:     c.FormValue("zipCode"),
		Bio:         c.FormValue("bio"),
	}
	if err := validate.Struct(req); err != nil {
		return render(c.Status(fiber.StatusBadRequest), "profile", fiber.Map{
			"Profile": sess.User, "Form": req, "FieldErrs": validate.StructErrors(err),
		})
	}

	user, err := h.API.Users.UpdateProfile(c.Context(), sess.Token, req)
	if err != nil {
		if authFailed(c, h.Auth, err) {
			return c.Redirect("/login")
		}
		return render(c.Status(fiber.StatusBadRequest), "profile", fiber.Map{
			"Profile": sess.User, "Form": req, "Err": errMessage(err), "FieldErrs": fieldErrors(err),
		})
	}
	// Keep the cached profile in step with what the server accepted.
	_ = h.Auth.Sessions.SetUser(sess.SID, user)
	applog.Audit(c, "profile.update", nil)
	return c.Redirect("/profile?msg=Profile+updated")
}

func (h *ProfileHandler) ChangePasswordForm(c *fiber.Ctx) error {
	return render(c, "change_password", fiber.Map{})
}

func (h *ProfileHandler) ChangePassword(c *fiber.Ctx) error {
	sess := currentSession(c)
	req := api.ChangePasswordRequest{
		OldPassword: c.FormValue("oldPassword"),
		NewPassword: c.FormValue("newPassword"),
	}
	if err := validate.Struct(req); err != nil {
		return render(c.Status(fiber.StatusBadRequest), "change_password", fiber.Map{
			"FieldErrs": validate.StructErrors(err),
		})
	}
	if c.FormValue("confirmPassword") != req.NewPassword {
		return render(c.Status(fiber.StatusBadRequest), "change_password", fiber.Map{
			"FieldErrs": map[string]string{"confirmPassword": "Passwords do not match"},
		})
	}

	msg, err := h.API.Users.ChangePassword(c.Context(), sess.Token, req)
	if err != nil {
		if authFailed(c, h.Auth, err) {
			return c.Redirect("/login")
		}
		return render(c.Status(fiber.StatusBadRequest), "change_password", fiber.Map{
			"Err": errMessage(err), "FieldErrs": fieldErrors(err),
		})
	}
	applog.Audit(c, "profile.password.change", nil)
	return render(c, "change_password", fiber.Map{"Msg": msg.Message})
}

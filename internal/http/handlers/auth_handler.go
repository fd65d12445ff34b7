package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"petwell/internal/api"
	applog "petwell/internal/log"
	"petwell/internal/services"
	"petwell/internal/validate"
)

type AuthHandler struct {
	Auth *services.AuthService
	API  *api.Set
}

// Landing routes the public root: authenticated sessions go straight to
// their partition's home.
func (h *AuthHandler) Landing(c *fiber.Ctx) error {
	sess := currentSession(c)
	if sess.IsAuthenticated {
		if sess.IsAdmin() {
			return c.Redirect("/admin")
		}
		return c.Redirect("/dashboard")
	}
	return render(c, "landing", fiber.Map{})
}

func (h *AuthHandler) LoginForm(c *fiber.Ctx) error {
	if currentSession(c).IsAuthenticated {
		return c.Redirect("/")
	}
	return render(c, "login", fiber.Map{"Err": ""})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	sid := ensureSID(c)
	id := c.FormValue("emailOrUsername")
	pass := c.FormValue("password")
	if id == "" || pass == "" {
		return render(c.Status(fiber.StatusBadRequest), "login", fiber.Map{"Err": "Please enter your credentials", "EmailOrUsername": id})
	}

	user, err := h.Auth.Login(c.Context(), sid, id, pass)
	if err != nil {
		if errors.Is(err, services.ErrBadCreds) {
			applog.Security(c, "auth.login.fail", map[string]any{"id": id})
			return render(c.Status(fiber.StatusUnauthorized), "login", fiber.Map{"Err": "Invalid username or password", "EmailOrUsername": id})
		}
		applog.Error(c, "auth.login.error", err, nil)
		return render(c.Status(fiber.StatusBadGateway), "login", fiber.Map{"Err": errMessage(err), "EmailOrUsername": id})
	}

	applog.Audit(c, "auth.login.success", map[string]any{"id": id})
	if user.IsAdmin() {
		return c.Redirect("/admin")
	}
	return c.Redirect("/dashboard")
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sid := ensureSID(c)
	_ = h.Auth.Logout(sid)
	expireSID(c)
	applog.Audit(c, "auth.logout", nil)
	return c.Redirect("/")
}

func (h *AuthHandler) RegisterForm(c *fiber.Ctx) error {
	return render(c, "register", fiber.Map{})
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	req := api.RegisterRequest{
		Username:    c.FormValue("username"),
		Email:       c.FormValue("email"),
		Password:    c.FormValue("password"),
		FirstName:   c.FormValue("firstName"),
		LastName:    c.FormValue("lastName"),
		PhoneNumber: c.FormValue("phoneNumber"),
		Address:     c.FormValue("address"),
	}
	if err := validate.Struct(req); err != nil {
		return render(c.Status(fiber.StatusBadRequest), "register", fiber.Map{
			"FieldErrs": validate.StructErrors(err), "Form": req,
		})
	}

	msg, err := h.API.Auth.Register(c.Context(), req)
	if err != nil {
		applog.Error(c, "auth.register.fail", err, map[string]any{"username": req.Username})
		return render(c.Status(fiber.StatusBadRequest), "register", fiber.Map{
			"Err": errMessage(err), "FieldErrs": fieldErrors(err), "Form": req,
		})
	}
	applog.Audit(c, "auth.register", map[string]any{"username": req.Username})
	return render(c, "verify_otp", fiber.Map{"Email": req.Email, "Msg": msg.Message})
}

func (h *AuthHandler) VerifyEmail(c *fiber.Ctx) error {
	token := c.Query("token")
	if token == "" {
		return render(c.Status(fiber.StatusBadRequest), "notfound", fiber.Map{"Message": "Missing verification token"})
	}
	msg, err := h.API.Auth.VerifyEmail(c.Context(), token)
	if err != nil {
		return render(c, "verify_email", fiber.Map{"Err": errMessage(err)})
	}
	return render(c, "verify_email", fiber.Map{"Msg": msg.Message})
}

func (h *AuthHandler) VerifyOtp(c *fiber.Ctx) error {
	email := c.FormValue("email")
	otp := c.FormValue("otp")
	if email == "" || otp == "" {
		return render(c.Status(fiber.StatusBadRequest), "verify_otp", fiber.Map{"Email": email, "Err": "Enter the code we sent you"})
	}
	msg, err := h.API.Auth.VerifyOtp(c.Context(), email, otp)
	if err != nil {
		return render(c.Status(fiber.StatusBadRequest), "verify_otp", fiber.Map{"Email": email, "Err": errMessage(err)})
	}
	return render(c, "login", fiber.Map{"Msg": msg.Message})
}

func (h *AuthHandler) ResendOtp(c *fiber.Ctx) error {
	email := c.FormValue("email")
	if _, ok := validate.Email(email); !ok {
		return render(c.Status(fiber.StatusBadRequest), "verify_otp", fiber.Map{"Err": "Enter a valid email"})
	}
	msg, err := h.API.Auth.ResendOtp(c.Context(), email)
	if err != nil {
		return render(c.Status(fiber.StatusBadRequest), "verify_otp", fiber.Map{"Email": email, "Err": errMessage(err)})
	}
	return render(c, "verify_otp", fiber.Map{"Email": email, "Msg": msg.Message})
}

func (h *AuthHandler) ForgotPasswordForm(c *fiber.Ctx) error {
	return render(c, "forgot_password", fiber.Map{})
}

func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	email, ok := validate.Email(c.FormValue("email"))
	if !ok {
		return render(c.Status(fiber.StatusBadRequest), "forgot_password", fiber.Map{"Err": "Enter a valid email"})
	}
	msg, err := h.API.Auth.ForgotPassword(c.Context(), email)
	if err != nil {
		return render(c.Status(fiber.StatusBadRequest), "forgot_password", fiber.Map{"Err": errMessage(err)})
	}
	return render(c, "forgot_password", fiber.Map{"Msg": msg.Message})
}

func (h *AuthHandler) ResetPasswordForm(c *fiber.Ctx) error {
	return render(c, "reset_password", fiber.Map{"Token": c.Query("token")})
}

func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	token := c.FormValue("token")
	pass := c.FormValue("newPassword")
	if token == "" || len(pass) < 8 {
		return render(c.Status(fiber.StatusBadRequest), "reset_password", fiber.Map{"Token": token, "Err": "Password must be at least 8 characters"})
	}
	msg, err := h.API.Auth.ResetPassword(c.Context(), token, pass)
	if err != nil {
		return render(c.Status(fiber.StatusBadRequest), "reset_password", fiber.Map{"Token": token, "Err": errMessage(err)})
	}
	return render(c, "login", fiber.Map{"Msg": msg.Message})
}

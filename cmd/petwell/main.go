package main

import (
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"

	"petwell/internal/api"
	"petwell/internal/config"
	"petwell/internal/http/handlers"
	applog "petwell/internal/log"
	"petwell/internal/session"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			mw := io.MultiWriter(os.Stdout, f)
			log.SetOutput(mw)
		}
	}

	sessions, err := session.Open(cfg.SessionDB)
	if err != nil {
		log.Fatal(err)
	}

	apiSet := api.NewSet(cfg.APIBaseURL, cfg.APITimeout)
	deps := handlers.NewDeps(apiSet, sessions)

	// Templates & app
	engine := html.New("./web/templates", ".html")
	engine.Reload(true)

	app := fiber.New(fiber.Config{
		Views: engine,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if fe, ok := err.(*fiber.Error); ok && fe.Code == fiber.StatusNotFound {
				return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Page not found"})
			}
			applog.Error(c, "server.error", err, nil)
			// Avoid leaking internals; best-effort render
			if rerr := c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{
				"Message": "Something went wrong. Please try again.",
			}); rerr != nil {
				return c.Status(fiber.StatusInternalServerError).SendString("Something went wrong. Please try again.")
			}
			return nil
		},
	})
	// Body guard sized for one attachment upload plus form fields
	app.Server().MaxRequestBodySize = 8 << 20 // 8 MiB

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(handlers.LoadSession(deps.AuthSvc))
	app.Use(limiter.New(limiter.Config{
		Max:        60,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(c.Path(), "/static/")
		},
	}))
	app.Use(csrf.New(csrf.Config{
		KeyLookup:      "form:csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		CookieSecure:   false, // set true behind HTTPS
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Security(c, "csrf.fail", map[string]any{"form": c.FormValue("csrf")})
			return c.Status(fiber.StatusForbidden).Render("notfound", fiber.Map{"Message": "Security check failed. Please refresh and try again."})
		},
	}))
	app.Use(func(c *fiber.Ctx) error {
		if tok := c.Locals("csrf"); tok != nil {
			c.Locals("CSRFToken", tok.(string))
		}
		return c.Next()
	})

	// ---------- Static assets ----------
	app.Static("/static", "./web/static")

	// ---------- Public pages ----------
	app.Get("/", deps.Auth.Landing)
	app.Get("/login", deps.Auth.LoginForm)
	app.Post("/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).Render("login", fiber.Map{"Err": "Too many attempts. Please try again later."})
		},
	}), deps.Auth.Login)
	app.Post("/logout", deps.Auth.Logout)
	app.Get("/register", deps.Auth.RegisterForm)
	app.Post("/register", deps.Auth.Register)
	app.Get("/verify-email", deps.Auth.VerifyEmail)
	app.Post("/verify-otp", deps.Auth.VerifyOtp)
	app.Post("/resend-otp", deps.Auth.ResendOtp)
	app.Get("/forgot-password", deps.Auth.ForgotPasswordForm)
	app.Post("/forgot-password", deps.Auth.ForgotPassword)
	app.Get("/reset-password", deps.Auth.ResetPasswordForm)
	app.Post("/reset-password", deps.Auth.ResetPassword)
	app.Get("/contact", deps.Contact.Form)
	app.Post("/contact", deps.Contact.Submit)

	// ---------- User partition ----------
	user := app.Group("", handlers.RequireUser())
	user.Get("/dashboard", deps.Pets.Dashboard)

	user.Get("/pets/add", deps.Pets.AddForm)
	user.Post("/pets/add", deps.Pets.Add)
	user.Get("/pets/:id", deps.Pets.Details)
	user.Get("/pets/:id/edit", deps.Pets.EditForm)
	user.Post("/pets/:id/edit", deps.Pets.Edit)
	user.Get("/pets/:id/delete", deps.Pets.DeleteConfirm)
	user.Post("/pets/:id/delete", deps.Pets.Delete)
	user.Get("/pets/:id/report", deps.Pets.HealthReport)

	user.Get("/pets/:id/vaccinations", deps.Vaccinations.List)
	user.Get("/pets/:id/vaccinations/new", deps.Vaccinations.AddForm)
	user.Post("/pets/:id/vaccinations/new", deps.Vaccinations.Add)
	user.Get("/pets/:id/vaccinations/:vid", deps.Vaccinations.Detail)
	user.Post("/pets/:id/vaccinations/:vid/complete", deps.Vaccinations.MarkCompleted)
	user.Post("/pets/:id/vaccinations/:vid/due-date", deps.Vaccinations.UpdateDueDate)
	user.Post("/pets/:id/vaccinations/:vid/next-dose", deps.Vaccinations.AddNextDose)

	user.Get("/pets/:id/medical-history", deps.MedicalHistory.List)
	user.Get("/pets/:id/medical-history/new", deps.MedicalHistory.AddForm)
	user.Post("/pets/:id/medical-history/new", deps.MedicalHistory.Add)

	user.Get("/appointments/book", deps.Booking.Browse)
	user.Get("/appointments/book/confirm", deps.Booking.BookForm)
	user.Post("/appointments/book", deps.Booking.Book)
	user.Get("/appointments", deps.Booking.MyAppointments)
	user.Get("/appointments/:id/cancel", deps.Booking.CancelConfirm)
	user.Post("/appointments/:id/cancel", deps.Booking.Cancel)

	user.Get("/shop", deps.Shop.Products)
	user.Get("/shop/:id", deps.Shop.Product)
	user.Get("/cart", deps.Shop.Cart)
	user.Post("/cart/add", deps.Shop.AddToCart)
	user.Post("/cart/update/:itemId", deps.Shop.UpdateCartItem)
	user.Post("/cart/remove/:itemId", deps.Shop.RemoveFromCart)
	user.Post("/cart/clear", deps.Shop.ClearCart)
	user.Get("/checkout", deps.Shop.CheckoutForm)
	user.Post("/checkout", deps.Shop.Checkout)
	user.Get("/orders", deps.Shop.Orders)
	user.Get("/orders/:id", deps.Shop.Order)
	user.Get("/orders/:id/cancel", deps.Shop.CancelOrderConfirm)
	user.Post("/orders/:id/cancel", deps.Shop.CancelOrder)

	user.Get("/profile", deps.Profile.Show)
	user.Post("/profile", deps.Profile.Update)
	user.Get("/profile/password", deps.Profile.ChangePasswordForm)
	user.Post("/profile/password", deps.Profile.ChangePassword)

	// ---------- Admin partition ----------
	admin := app.Group("/admin", handlers.RequireAdmin())
	admin.Get("/", deps.Admin.Home)
	admin.Get("/users", deps.Admin.Users)
	admin.Post("/users/:username/approve", deps.Admin.ApproveUser)
	admin.Get("/users/:username/reject", deps.Admin.RejectUserConfirm)
	admin.Post("/users/:username/reject", deps.Admin.RejectUser)
	admin.Get("/products", deps.Admin.Products)
	admin.Get("/products/new", deps.Admin.ProductForm)
	admin.Post("/products", deps.Admin.CreateProduct)
	admin.Get("/products/:id/edit", deps.Admin.EditProductForm)
	admin.Post("/products/:id", deps.Admin.UpdateProduct)
	admin.Post("/products/:id/delete", deps.Admin.DeleteProduct)
	admin.Get("/slots", deps.Admin.Slots)
	admin.Get("/slots/new", deps.Admin.SlotForm)
	admin.Post("/slots", deps.Admin.CreateSlot)
	admin.Post("/slots/:id", deps.Admin.UpdateSlot)
	admin.Post("/slots/:id/delete", deps.Admin.DeleteSlot)
	admin.Get("/orders", deps.Admin.Orders)
	admin.Get("/orders/:id", deps.Admin.Order)
	admin.Post("/orders/:id/status", deps.Admin.UpdateOrderStatus)

	// Health & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Page not found"})
	})

	log.Fatal(app.Listen(":" + cfg.Port))
}

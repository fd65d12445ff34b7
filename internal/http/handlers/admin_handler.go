package handlers

import (
	"net/url"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"petwell/internal/api"
	applog "petwell/internal/log"
	"petwell/internal/services"
	"petwell/internal/validate"
)

// AdminHandler is the admin console. The backend re-checks the admin
// role on every call; the RequireAdmin middleware only shapes routing.
type AdminHandler struct {
	API  *api.Set
	Auth *services.AuthService
}

func (h *AdminHandler) Home(c *fiber.Ctx) error {
	sess := currentSession(c)
	pending, err := h.API.Admin.PendingUsers(c.Context(), sess.Token)
	if err != nil {
		if authFailed(c, h.Auth, err) {
			return c.Redirect("/login")
		}
		applog.Error(c, "admin.pending.fail", err, nil)
		return render(c, "admin_home", fiber.Map{"Err": errMessage(err)})
	}
	return render(c, "admin_home", fiber.Map{"Pending": pending, "Msg": c.Query("msg")})
}

func (h *AdminHandler) Users(c *fiber.Ctx) error {
	sess := currentSession(c)
	users, err := h.API.Admin.AllUsers(c.Context(), sess.Token)
	if err != nil {
		if authFailed(c, h.Auth, err) {
			return c.Redirect("/login")
		}
		return render(c, "admin_users", fiber.Map{"Err": errMessage(err)})
	}
	return render(c, "admin_users", fiber.Map{"Users": users})
}

func (h *AdminHandler) ApproveUser(c *fiber.Ctx) error {
	sess := currentSession(c)
	username := c.Params("username")
	msg, err := h.API.Admin.ApproveUser(c.Context(), sess.Token, username)
	if err != nil {
		if authFailed(c, h.Auth, err) {
			return c.Redirect("/login")
		}
		applog.Error(c, "admin.user.approve.fail", err, map[string]any{"username": username})
		return render(c, "admin_home", fiber.Map{"Err": errMessage(err)})
	}
	applog.Audit(c, "admin.user.approve", map[string]any{"username": username})
	return c.Redirect("/admin?msg=" + url.QueryEscape(msg.Message))
}

// RejectUserConfirm gates the destructive reject behind an explicit
// confirmation page where the admin states a reason.
func (h *AdminHandler) RejectUserConfirm(c *fiber.Ctx) error {
	return render(c, "admin_reject_user", fiber.Map{"Username": c.Params("username")})
}

func (h *AdminHandler) RejectUser(c *fiber.Ctx) error {
	sess := currentSession(c)
	username := c.Params("username")
	reason := c.FormValue("reason")
	if reason == "" {
		return render(c.Status(fiber.StatusBadRequest), "admin_reject_user", fiber.Map{
			"Username": username, "FieldErrs": map[string]string{"reason": "A reason is required"},
		})
	}

	msg, err := h.API.Admin.RejectUser(c.Context(), sess.Token, username, reason)
	if err != nil {
		if authFailed(c, h.Auth, err) {
			return c.Redirect("/login")
		}
		applog.Error(c, "admin.user.reject.fail", err, map[string]any{"username": username})
		return render(c, "admin_reject_user", fiber.Map{"Username": username, "Err": errMessage(err)})
	}
	applog.Audit(c, "admin.user.reject", map[string]any{"username": username, "reason": reason})
	return c.Redirect("/admin?msg=" + url.QueryEscape(msg.Message))
}

func (h *AdminHandler) Products(c *fiber.Ctx) error {
	sess := currentSession(c)
	products, err := h.API.Marketplace.Products(c.Context(), sess.Token)
	if err != nil {
		if authFailed(c, h.Auth, err) {
			return c.Redirect("/login")
		}
		return render(c, "admin_products", fiber.Map{"Err": errMessage(err)})
	}
	return render(c, "admin_products", fiber.Map{"Products": products})
}

func (h *AdminHandler) ProductForm(c *fiber.Ctx) error {
	return render(c, "admin_product_form", fiber.Map{"Title": "New product", "Action": "/admin/products"})
}

func (h *AdminHandler) CreateProduct(c *fiber.Ctx) error {
	sess := currentSession(c)
	req, fieldErrs := productRequestFromForm(c)
	if len(fieldErrs) > 0 {
		return render(c.Status(fiber.StatusBadRequest), "admin_product_form", fiber.Map{
			"Title": "New product", "Action": "/admin/products", "Form": req, "FieldErrs": fieldErrs,
		})
	}
	product, err := h.API.Admin.CreateProduct(c.Context(), sess.Token, req)
	if err != nil {
		if authFailed(c, h.Auth, err) {
			return c.Redirect("/login")
		}
		return render(c.Status(fiber.StatusBadRequest), "admin_product_form", fiber.Map{
			"Title": "New product", "Action": "/admin/products",
			"Form": req, "Err": errMessage(err), "FieldErrs": fieldErrors(err),
		})
	}
	applog.Audit(c, "admin.product.create", map[string]any{"product_id": product.ID})
	return c.Redirect("/admin/products")
}

func (h *AdminHandler) EditProductForm(c *fiber.Ctx) error {
	sess := currentSession(c)
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return fiber.ErrNotFound
	}
	product, err := h.API.Marketplace.Product(c.Context(), sess.Token, id)
	if err != nil {
		if authFailed(c, h.Auth, err) {
			return c.Redirect("/login")
		}
		return render(c, "admin_products", fiber.Map{"Err": errMessage(err)})
	}
	form := api.ProductRequest{
		Name: product.Name, Description: product.Description, Price: product.Price,
		Category: product.Category, StockQuantity: product.StockQuantity, ImageURL: product.ImageURL,
	}
	return render(c, "admin_product_form", fiber.Map{
		"Title": "Edit product", "Action": "/admin/products/" + id, "Form": form,
	})
}

func (h *AdminHandler) UpdateProduct(c *fiber.Ctx) error {
	sess := currentSession(c)
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return fiber.ErrNotFound
	}
	req, fieldErrs := productRequestFromForm(c)
	if len(fieldErrs) > 0 {
		return render(c.Status(fiber.StatusBadRequest), "admin_product_form", fiber.Map{
			"Title": "Edit product", "Action": "/admin/products/" + id, "Form": req, "FieldErrs": fieldErrs,
		})
	}
	if _, err := h.API.Admin.UpdateProduct(c.Context(), sess.Token, id, req); err != nil {
		if authFailed(c, h.Auth, err) {
			return c.Redirect("/login")
		}
		return render(c.Status(fiber.StatusBadRequest), "admin_product_form", fiber.Map{
			"Title": "Edit product", "Action": "/admin/products/" + id,
			"Form": req, "Err": errMessage(err), "FieldErrs": fieldErrors(err),
		})
	}
	applog.Audit(c, "admin.product.update", map[string]any{"product_id": id})
	return c.Redirect("/admin/products")
}

func (h *AdminHandler) DeleteProduct(c *fiber.Ctx) error {
	sess := currentSession(c)
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return fiber.ErrNotFound
	}
	if err := h.API.Admin.DeleteProduct(c.Context(), sess.Token, id); err != nil {
		if authFailed(c, h.Auth, err) {
			return c.Redirect("/login")
		}
		return render(c, "admin_products", fiber.Map{"Err": errMessage(err)})
	}
	applog.Audit(c, "admin.product.delete", map[string]any{"product_id": id})
	return c.Redirect("/admin/products")
}

func (h *AdminHandler) Slots(c *fiber.Ctx) error {
	sess := currentSession(c)
	slots, err := h.API.Appointments.AvailableSlots(c.Context(), sess.Token)
	if err != nil {
		if authFailed(c, h.Auth, err) {
			return c.Redirect("/login")
		}
		return render(c, "admin_slots", fiber.Map{"Err": errMessage(err)})
	}
	return render(c, "admin_slots", fiber.Map{"Slots": slots})
}

func (h *AdminHandler) SlotForm(c *fiber.Ctx) error {
	return render(c, "admin_slot_form", fiber.Map{"Title": "New slot", "Action": "/admin/slots"})
}

func (h *AdminHandler) CreateSlot(c *fiber.Ctx) error {
	sess := currentSession(c)
	req, fieldErrs := slotRequestFromForm(c)
	if len(fieldErrs) > 0 {
		return render(c.Status(fiber.StatusBadRequest), "admin_slot_form", fiber.Map{
			"Title": "New slot", "Action": "/admin/slots", "Form": req, "FieldErrs": fieldErrs,
		})
	}
	slot, err := h.API.Admin.CreateSlot(c.Context(), sess.Token, req)
	if err != nil {
		if authFailed(c, h.Auth, err) {
			return c.Redirect("/login")
		}
		return render(c.Status(fiber.StatusBadRequest), "admin_slot_form", fiber.Map{
			"Title": "New slot", "Action": "/admin/slots",
			"Form": req, "Err": errMessage(err), "FieldErrs": fieldErrors(err),
		})
	}
	applog.Audit(c, "admin.slot.create", map[string]any{"slot_id": slot.ID})
	return c.Redirect("/admin/slots")
}

func (h *AdminHandler) UpdateSlot(c *fiber.Ctx) error {
	sess := currentSession(c)
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return fiber.ErrNotFound
	}
	req, fieldErrs := slotRequestFromForm(c)
	if len(fieldErrs) > 0 {
		return render(c.Status(fiber.StatusBadRequest), "admin_slot_form", fiber.Map{
			"Title": "Edit slot", "Action": "/admin/slots/" + id, "Form": req, "FieldErrs": fieldErrs,
		})
	}
	if _, err := h.API.Admin.UpdateSlot(c.Context(), sess.Token, id, req); err != nil {
		if authFailed(c, h.Auth, err) {
			return c.Redirect("/login")
		}
		return render(c.Status(fiber.StatusBadRequest), "admin_slot_form", fiber.Map{
			"Title": "Edit slot", "Action": "/admin/slots/" + id,
			"Form": req, "Err": errMessage(err), "FieldErrs": fieldErrors(err),
		})
	}
	applog.Audit(c, "admin.slot.update", map[string]any{"slot_id": id})
	return c.Redirect("/admin/slots")
}

func (h *AdminHandler) DeleteSlot(c *fiber.Ctx) error {
	sess := currentSession(c)
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return fiber.ErrNotFound
	}
	if err := h.API.Admin.DeleteSlot(c.Context(), sess.Token, id); err != nil {
		if authFailed(c, h.Auth, err) {
			return c.Redirect("/login")
		}
		return render(c, "admin_slots", fiber.Map{"Err": errMessage(err)})
	}
	applog.Audit(c, "admin.slot.delete", map[string]any{"slot_id": id})
	return c.Redirect("/admin/slots")
}

func (h *AdminHandler) Orders(c *fiber.Ctx) error {
	sess := currentSession(c)
	orders, err := h.API.Admin.AllOrders(c.Context(), sess.Token)
	if err != nil {
		if authFailed(c, h.Auth, err) {
			return c.Redirect("/login")
		}
		return render(c, "admin_orders", fiber.Map{"Err": errMessage(err)})
	}
	return render(c, "admin_orders", fiber.Map{"Orders": orders})
}

func (h *AdminHandler) Order(c *fiber.Ctx) error {
	sess := currentSession(c)
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return fiber.ErrNotFound
	}
	order, err := h.API.Admin.Order(c.Context(), sess.Token, id)
	if err != nil {
		if authFailed(c, h.Auth, err) {
			return c.Redirect("/login")
		}
		return render(c, "admin_orders", fiber.Map{"Err": errMessage(err)})
	}
	return render(c, "admin_order_detail", fiber.Map{"Order": order})
}

func (h *AdminHandler) UpdateOrderStatus(c *fiber.Ctx) error {
	sess := currentSession(c)
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return fiber.ErrNotFound
	}
	status := c.FormValue("status")
	order, err := h.API.Admin.UpdateOrderStatus(c.Context(), sess.Token, id, status)
	if err != nil {
		if authFailed(c, h.Auth, err) {
			return c.Redirect("/login")
		}
		applog.Error(c, "admin.order.status.fail", err, map[string]any{"order_id": id, "status": status})
		return render(c, "admin_orders", fiber.Map{"Err": errMessage(err)})
	}
	applog.Audit(c, "admin.order.status", map[string]any{"order_id": id, "status": order.Status})
	return c.Redirect("/admin/orders/" + id)
}

func productRequestFromForm(c *fiber.Ctx) (api.ProductRequest, map[string]string) {
	price, _ := strconv.ParseFloat(c.FormValue("price"), 64)
	stock, _ := strconv.Atoi(c.FormValue("stockQuantity"))
	req := api.ProductRequest{
		Name:          c.FormValue("name"),
		Description:   c.FormValue("description"),
		Price:         price,
		Category:      c.FormValue("category"),
		StockQuantity: stock,
		ImageURL:      c.FormValue("imageUrl"),
	}
	if err := validate.Struct(req); err != nil {
		return req, validate.StructErrors(err)
	}
	return req, nil
}

func slotRequestFromForm(c *fiber.Ctx) (api.SlotRequest, map[string]string) {
	duration, _ := strconv.Atoi(c.FormValue("duration"))
	req := api.SlotRequest{
		Date:             c.FormValue("date"),
		Time:             c.FormValue("time"),
		ConsultationType: c.FormValue("consultationType"),
		VeterinarianName: c.FormValue("veterinarianName"),
		Duration:         duration,
	}
	if err := validate.Struct(req); err != nil {
		return req, validate.StructErrors(err)
	}
	return req, nil
}

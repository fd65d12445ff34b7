package handlers

import (
	"github.com/gofiber/fiber/v2"

	"petwell/internal/api"
	"petwell/internal/domain"
	applog "petwell/internal/log"
	"petwell/internal/services"
	"petwell/internal/validate"
)

type ShopHandler struct {
	API  *api.Set
	Auth *services.AuthService
}

// Products lists the marketplace, optionally narrowed by a category
// filter or a search query. Query wins when both are present.
func (h *ShopHandler) Products(c *fiber.Ctx) error {
	sess := currentSession(c)
	query := c.Query("q")
	category := c.Query("category")

	var (
		products []domain.Product
		err      error
	)
	switch {
	case query != "":
		products, err = h.API.Marketplace.SearchProducts(c.Context(), sess.Token, query)
	case category != "":
		products, err = h.API.Marketplace.ProductsByCategory(c.Context(), sess.Token, category)
	default:
		products, err = h.API.Marketplace.Products(c.Context(), sess.Token)
	}
	if err != nil {
		if authFailed(c, h.Auth, err) {
			return c.Redirect("/login")
		}
		applog.Error(c, "shop.products.fail", err, nil)
		return render(c, "shop", fiber.Map{"Err": errMessage(err)})
	}
	return render(c, "shop", fiber.Map{"Products": products, "Query": query, "Category": category})
}

func (h *ShopHandler) Product(c *fiber.Ctx) error {
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
		if ae, ok := api.AsAPIError(err); ok && ae.IsNotFound() {
			return fiber.ErrNotFound
		}
		return render(c, "shop", fiber.Map{"Err": errMessage(err)})
	}
	return render(c, "product", fiber.Map{"Product": product})
}

func (h *ShopHandler) Cart(c *fiber.Ctx) error {
	sess := currentSession(c)
	cart, err := h.API.Marketplace.Cart(c.Context(), sess.Token)
	if err != nil {
		if authFailed(c, h.Auth, err) {
			return c.Redirect("/login")
		}
		applog.Error(c, "shop.cart.fail", err, nil)
		return render(c, "cart", fiber.Map{"Err": errMessage(err)})
	}
	return render(c, "cart", fiber.Map{"Cart": cart})
}

func (h *ShopHandler) AddToCart(c *fiber.Ctx) error {
	sess := currentSession(c)
	productID, ok := validate.ID(c.FormValue("productId"))
	if !ok {
		return c.Redirect("/shop")
	}
	qty := validate.Qty(c.FormValue("quantity"))

	if _, err := h.API.Marketplace.AddToCart(c.Context(), sess.Token, productID, qty); err != nil {
		if authFailed(c, h.Auth, err) {
			return c.Redirect("/login")
		}
		applog.Error(c, "shop.cart.add.fail", err, map[string]any{"product_id": productID})
		return render(c, "cart", fiber.Map{"Err": errMessage(err)})
	}
	return c.Redirect("/cart")
}

func (h *ShopHandler) UpdateCartItem(c *fiber.Ctx) error {
	sess := currentSession(c)
	itemID, ok := validate.ID(c.Params("itemId"))
	if !ok {
		return c.Redirect("/cart")
	}
	qty := validate.Qty(c.FormValue("quantity"))

	cart, err := h.API.Marketplace.UpdateCartItem(c.Context(), sess.Token, itemID, qty)
	if err != nil {
		if authFailed(c, h.Auth, err) {
			return c.Redirect("/login")
		}
		return render(c, "cart", fiber.Map{"Err": errMessage(err)})
	}
	return render(c, "cart", fiber.Map{"Cart": cart})
}

func (h *ShopHandler) RemoveFromCart(c *fiber.Ctx) error {
	sess := currentSession(c)
	itemID, ok := validate.ID(c.Params("itemId"))
	if !ok {
		return c.Redirect("/cart")
	}
	cart, err := h.API.Marketplace.RemoveFromCart(c.Context(), sess.Token, itemID)
	if err != nil {
		if authFailed(c, h.Auth, err) {
			return c.Redirect("/login")
		}
		return render(c, "cart", fiber.Map{"Err": errMessage(err)})
	}
	return render(c, "cart", fiber.Map{"Cart": cart})
}

func (h *ShopHandler) ClearCart(c *fiber.Ctx) error {
	sess := currentSession(c)
	if err := h.API.Marketplace.ClearCart(c.Context(), sess.Token); err != nil {
		if authFailed(c, h.Auth, err) {
			return c.Redirect("/login")
		}
		return render(c, "cart", fiber.Map{"Err": errMessage(err)})
	}
	return c.Redirect("/cart")
}

func (h *ShopHandler) CheckoutForm(c *fiber.Ctx) error {
	sess := currentSession(c)
	cart, err := h.API.Marketplace.Cart(c.Context(), sess.Token)
	if err != nil {
		if authFailed(c, h.Auth, err) {
			return c.Redirect("/login")
		}
		return render(c, "cart", fiber.Map{"Err": errMessage(err)})
	}
	if cart == nil || len(cart.Items) == 0 {
		return c.Redirect("/cart")
	}
	address := ""
	if sess.User != nil {
		address = sess.User.Address
	}
	return render(c, "checkout", fiber.Map{"Cart": cart, "Address": address})
}

func (h *ShopHandler) Checkout(c *fiber.Ctx) error {
	sess := currentSession(c)
	address := c.FormValue("shippingAddress")
	if address == "" {
		cart, _ := h.API.Marketplace.Cart(c.Context(), sess.Token)
		return render(c.Status(fiber.StatusBadRequest), "checkout", fiber.Map{
			"Cart": cart, "FieldErrs": map[string]string{"shippingAddress": "Shipping address is required"},
		})
	}

	order, err := h.API.Marketplace.PlaceOrder(c.Context(), sess.Token, address)
	if err != nil {
		if authFailed(c, h.Auth, err) {
			return c.Redirect("/login")
		}
		applog.Error(c, "shop.order.place.fail", err, nil)
		cart, _ := h.API.Marketplace.Cart(c.Context(), sess.Token)
		return render(c.Status(fiber.StatusBadRequest), "checkout", fiber.Map{
			"Cart": cart, "Address": address, "Err": errMessage(err),
		})
	}
	applog.Audit(c, "shop.order.place", map[string]any{"order_id": order.ID})
	return c.Redirect("/orders/" + order.ID)
}

func (h *ShopHandler) Orders(c *fiber.Ctx) error {
	sess := currentSession(c)
	orders, err := h.API.Marketplace.MyOrders(c.Context(), sess.Token)
	if err != nil {
		if authFailed(c, h.Auth, err) {
			return c.Redirect("/login")
		}
		return render(c, "orders", fiber.Map{"Err": errMessage(err)})
	}
	return render(c, "orders", fiber.Map{"Orders": orders, "Msg": c.Query("msg")})
}

func (h *ShopHandler) Order(c *fiber.Ctx) error {
	sess := currentSession(c)
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return fiber.ErrNotFound
	}
	order, err := h.API.Marketplace.Order(c.Context(), sess.Token, id)
	if err != nil {
		if authFailed(c, h.Auth, err) {
			return c.Redirect("/login")
		}
		if ae, ok := api.AsAPIError(err); ok && ae.IsNotFound() {
			return fiber.ErrNotFound
		}
		return render(c, "orders", fiber.Map{"Err": errMessage(err)})
	}
	return render(c, "order_detail", fiber.Map{"Order": order})
}

// CancelOrderConfirm mirrors the appointment flow: a confirmation page
// first, the destructive call only on the follow-up POST.
func (h *ShopHandler) CancelOrderConfirm(c *fiber.Ctx) error {
	sess := currentSession(c)
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return fiber.ErrNotFound
	}
	order, err := h.API.Marketplace.Order(c.Context(), sess.Token, id)
	if err != nil {
		if authFailed(c, h.Auth, err) {
			return c.Redirect("/login")
		}
		return render(c, "orders", fiber.Map{"Err": errMessage(err)})
	}
	return render(c, "order_cancel", fiber.Map{"Order": order})
}

func (h *ShopHandler) CancelOrder(c *fiber.Ctx) error {
	sess := currentSession(c)
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return fiber.ErrNotFound
	}
	if err := h.API.Marketplace.CancelOrder(c.Context(), sess.Token, id); err != nil {
		if authFailed(c, h.Auth, err) {
			return c.Redirect("/login")
		}
		applog.Error(c, "shop.order.cancel.fail", err, map[string]any{"order_id": id})
		return render(c, "orders", fiber.Map{"Err": errMessage(err)})
	}
	applog.Audit(c, "shop.order.cancel", map[string]any{"order_id": id})
	return c.Redirect("/orders?msg=Order+cancelled")
}

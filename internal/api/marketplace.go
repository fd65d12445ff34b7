package api

import (
	"context"
	"net/http"
	"net/url"

	"petwell/internal/domain"
)

type MarketplaceAPI struct{ C *Client }

func (m *MarketplaceAPI) Products(ctx context.Context, token string) ([]domain.Product, error) {
	var out []domain.Product
	if err := m.C.DoJSON(ctx, http.MethodGet, "/products", token, nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (m *MarketplaceAPI) ProductsByCategory(ctx context.Context, token, category string) ([]domain.Product, error) {
	var out []domain.Product
	if err := m.C.DoJSON(ctx, http.MethodGet, "/products/category/"+category, token, nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (m *MarketplaceAPI) SearchProducts(ctx context.Context, token, query string) ([]domain.Product, error) {
	q := url.Values{"query": {query}}
	var out []domain.Product
	if err := m.C.DoJSON(ctx, http.MethodGet, "/products/search", token, q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (m *MarketplaceAPI) Product(ctx context.Context, token, id string) (*domain.Product, error) {
	var out domain.Product
	if err := m.C.DoJSON(ctx, http.MethodGet, "/products/"+id, token, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (m *MarketplaceAPI) Cart(ctx context.Context, token string) (*domain.Cart, error) {
	var out domain.Cart
	if err := m.C.DoJSON(ctx, http.MethodGet, "/cart", token, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (m *MarketplaceAPI) AddToCart(ctx context.Context, token, productID string, qty int) (*domain.Cart, error) {
	body := map[string]any{"productId": productID, "quantity": qty}
	var out domain.Cart
	if err := m.C.DoJSON(ctx, http.MethodPost, "/cart/add", token, nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (m *MarketplaceAPI) UpdateCartItem(ctx context.Context, token, itemID string, qty int) (*domain.Cart, error) {
	body := map[string]any{"quantity": qty}
	var out domain.Cart
	if err := m.C.DoJSON(ctx, http.MethodPut, "/cart/update/"+itemID, token, nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (m *MarketplaceAPI) RemoveFromCart(ctx context.Context, token, itemID string) (*domain.Cart, error) {
	var out domain.Cart
	if err := m.C.DoJSON(ctx, http.MethodDelete, "/cart/remove/"+itemID, token, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (m *MarketplaceAPI) ClearCart(ctx context.Context, token string) error {
	return m.C.DoJSON(ctx, http.MethodDelete, "/cart/clear", token, nil, nil, nil)
}

func (m *MarketplaceAPI) PlaceOrder(ctx context.Context, token, shippingAddress string) (*domain.Order, error) {
	body := map[string]string{"shippingAddress": shippingAddress}
	var out domain.Order
	if err := m.C.DoJSON(ctx, http.MethodPost, "/orders/place", token, nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (m *MarketplaceAPI) MyOrders(ctx context.Context, token string) ([]domain.Order, error) {
	var out []domain.Order
	if err := m.C.DoJSON(ctx, http.MethodGet, "/orders/my-orders", token, nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (m *MarketplaceAPI) Order(ctx context.Context, token, id string) (*domain.Order, error) {
	var out domain.Order
	if err := m.C.DoJSON(ctx, http.MethodGet, "/orders/"+id, token, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (m *MarketplaceAPI) CancelOrder(ctx context.Context, token, id string) error {
	return m.C.DoJSON(ctx, http.MethodPut, "/orders/"+id+"/cancel", token, nil, nil, nil)
}

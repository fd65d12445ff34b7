package api

import (
	"context"
	"net/http"

	"petwell/internal/domain"
)

// AdminAPI wraps the admin console endpoints; the backend enforces the
// admin role, these calls just carry the admin's token.
type AdminAPI struct{ C *Client }

type SlotRequest struct {
	Date             string `json:"date" validate:"required"`
	Time             string `json:"time" validate:"required"`
	ConsultationType string `json:"consultationType" validate:"required,oneof=ONLINE IN_CLINIC"`
	VeterinarianName string `json:"veterinarianName" validate:"required"`
	Duration         int    `json:"duration" validate:"gt=0"`
}

type ProductRequest struct {
	Name          string  `json:"name" validate:"required"`
	Description   string  `json:"description" validate:"required"`
	Price         float64 `json:"price" validate:"gt=0"`
	Category      string  `json:"category" validate:"required,oneof=FOOD MEDICINE ACCESSORIES GROOMING OTHER"`
	StockQuantity int     `json:"stockQuantity" validate:"gte=0"`
	ImageURL      string  `json:"imageUrl,omitempty"`
}

func (a *AdminAPI) PendingUsers(ctx context.Context, token string) ([]domain.UserProfile, error) {
	var out []domain.UserProfile
	if err := a.C.DoJSON(ctx, http.MethodGet, "/admin/users/pending", token, nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *AdminAPI) AllUsers(ctx context.Context, token string) ([]domain.UserProfile, error) {
	var out []domain.UserProfile
	if err := a.C.DoJSON(ctx, http.MethodGet, "/admin/users", token, nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *AdminAPI) ApproveUser(ctx context.Context, token, username string) (*domain.Message, error) {
	var out domain.Message
	if err := a.C.DoJSON(ctx, http.MethodPut, "/admin/users/"+username+"/approve", token, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RejectUser is destructive: the backend deletes the pending account.
func (a *AdminAPI) RejectUser(ctx context.Context, token, username, reason string) (*domain.Message, error) {
	body := map[string]string{"reason": reason}
	var out domain.Message
	if err := a.C.DoJSON(ctx, http.MethodDelete, "/admin/users/"+username, token, nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *AdminAPI) CreateProduct(ctx context.Context, token string, req ProductRequest) (*domain.Product, error) {
	var out domain.Product
	if err := a.C.DoJSON(ctx, http.MethodPost, "/admin/products", token, nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *AdminAPI) UpdateProduct(ctx context.Context, token, id string, req ProductRequest) (*domain.Product, error) {
	var out domain.Product
	if err := a.C.DoJSON(ctx, http.MethodPut, "/admin/products/"+id, token, nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *AdminAPI) DeleteProduct(ctx context.Context, token, id string) error {
	return a.C.DoJSON(ctx, http.MethodDelete, "/admin/products/"+id, token, nil, nil, nil)
}

func (a *AdminAPI) CreateSlot(ctx context.Context, token string, req SlotRequest) (*domain.AppointmentSlot, error) {
	var out domain.AppointmentSlot
	if err := a.C.DoJSON(ctx, http.MethodPost, "/admin/appointments/slots", token, nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *AdminAPI) UpdateSlot(ctx context.Context, token, id string, req SlotRequest) (*domain.AppointmentSlot, error) {
	var out domain.AppointmentSlot
	if err := a.C.DoJSON(ctx, http.MethodPut, "/admin/appointments/slots/"+id, token, nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *AdminAPI) DeleteSlot(ctx context.Context, token, id string) error {
	return a.C.DoJSON(ctx, http.MethodDelete, "/admin/appointments/slots/"+id, token, nil, nil, nil)
}

func (a *AdminAPI) AllOrders(ctx context.Context, token string) ([]domain.Order, error) {
	var out []domain.Order
	if err := a.C.DoJSON(ctx, http.MethodGet, "/admin/orders", token, nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *AdminAPI) Order(ctx context.Context, token, id string) (*domain.Order, error) {
	var out domain.Order
	if err := a.C.DoJSON(ctx, http.MethodGet, "/admin/orders/"+id, token, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *AdminAPI) UpdateOrderStatus(ctx context.Context, token, id, status string) (*domain.Order, error) {
	body := map[string]string{"status": status}
	var out domain.Order
	if err := a.C.DoJSON(ctx, http.MethodPut, "/admin/orders/"+id+"/status", token, nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

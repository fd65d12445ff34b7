package api

import (
	"context"
	"net/http"

	"petwell/internal/domain"
)

type ContactAPI struct{ C *Client }

type ContactRequest struct {
	Name    string `json:"name" validate:"required,max=50"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"required,max=100"`
	Message string `json:"message" validate:"required,max=2000"`
}

func (c *ContactAPI) Submit(ctx context.Context, req ContactRequest) (*domain.Message, error) {
	var out domain.Message
	if err := c.C.DoJSON(ctx, http.MethodPost, "/contact", "", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

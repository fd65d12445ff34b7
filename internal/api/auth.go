package api

import (
	"context"
	"net/http"
	"net/url"

	"petwell/internal/domain"
)

// AuthAPI covers the unauthenticated auth endpoints. None of these
// carry a bearer token.
type AuthAPI struct{ C *Client }

type RegisterRequest struct {
	Username    string `json:"username" validate:"required,min=3,max=30"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8,max=64"`
	FirstName   string `json:"firstName" validate:"required"`
	LastName    string `json:"lastName" validate:"required"`
	PhoneNumber string `json:"phoneNumber" validate:"required"`
	Address     string `json:"address" validate:"required"`
}

type LoginRequest struct {
	EmailOrUsername string `json:"emailOrUsername" validate:"required"`
	Password        string `json:"password" validate:"required"`
}

func (a *AuthAPI) Register(ctx context.Context, req RegisterRequest) (*domain.Message, error) {
	var out domain.Message
	if err := a.C.DoJSON(ctx, http.MethodPost, "/auth/register", "", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *AuthAPI) Login(ctx context.Context, req LoginRequest) (*domain.AuthResponse, error) {
	var out domain.AuthResponse
	if err := a.C.DoJSON(ctx, http.MethodPost, "/auth/login", "", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *AuthAPI) VerifyEmail(ctx context.Context, token string) (*domain.Message, error) {
	var out domain.Message
	q := url.Values{"token": {token}}
	if err := a.C.DoJSON(ctx, http.MethodGet, "/auth/verify-email", "", q, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *AuthAPI) ForgotPassword(ctx context.Context, email string) (*domain.Message, error) {
	var out domain.Message
	body := map[string]string{"email": email}
	if err := a.C.DoJSON(ctx, http.MethodPost, "/auth/forgot-password", "", nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *AuthAPI) ResetPassword(ctx context.Context, token, newPassword string) (*domain.Message, error) {
	var out domain.Message
	body := map[string]string{"token": token, "newPassword": newPassword}
	if err := a.C.DoJSON(ctx, http.MethodPost, "/auth/reset-password", "", nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *AuthAPI) VerifyOtp(ctx context.Context, email, otp string) (*domain.Message, error) {
	var out domain.Message
	body := map[string]string{"email": email, "otp": otp}
	if err := a.C.DoJSON(ctx, http.MethodPost, "/auth/verify-otp", "", nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *AuthAPI) ResendOtp(ctx context.Context, email string) (*domain.Message, error) {
	var out domain.Message
	body := map[string]string{"email": email}
	if err := a.C.DoJSON(ctx, http.MethodPost, "/auth/resend-otp", "", nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

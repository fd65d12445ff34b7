package api

import (
	"context"
	"net/http"

	"petwell/internal/domain"
)

type UserAPI struct{ C *Client }

type UpdateProfileRequest struct {
	FirstName   string `json:"firstName" validate:"required"`
	LastName    string `json:"lastName" validate:"required"`
	PhoneNumber string `json:"phoneNumber" validate:"required"`
	Address     string `json:"address" validate:"required"`
	City        string `json:"city,omitempty"`
	State       string `json:"state,omitempty"`
	Country     string `json:"country,omitempty"`
	ZipCode     string `json:"zipCode,omitempty"`
	Bio         string `json:"bio,omitempty"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=8,max=64"`
}

func (u *UserAPI) Profile(ctx context.Context, token string) (*domain.UserProfile, error) {
	var out domain.UserProfile
	if err := u.C.DoJSON(ctx, http.MethodGet, "/users/profile", token, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (u *UserAPI) UpdateProfile(ctx context.Context, token string, req UpdateProfileRequest) (*domain.UserProfile, error) {
	var out domain.UserProfile
	if err := u.C.DoJSON(ctx, http.MethodPut, "/users/profile", token, nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (u *UserAPI) ChangePassword(ctx context.Context, token string, req ChangePasswordRequest) (*domain.Message, error) {
	var out domain.Message
	if err := u.C.DoJSON(ctx, http.MethodPut, "/users/change-password", token, nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

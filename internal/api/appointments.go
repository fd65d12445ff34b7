package api

import (
	"context"
	"net/http"

	"petwell/internal/domain"
)

type AppointmentAPI struct{ C *Client }

// AvailableSlots returns AVAILABLE slots in the server's order; the
// client applies no further filtering or sorting.
func (a *AppointmentAPI) AvailableSlots(ctx context.Context, token string) ([]domain.AppointmentSlot, error) {
	var out []domain.AppointmentSlot
	if err := a.C.DoJSON(ctx, http.MethodGet, "/appointments/slots/available", token, nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *AppointmentAPI) Book(ctx context.Context, token string, req domain.BookAppointmentRequest) (*domain.Appointment, error) {
	var out domain.Appointment
	if err := a.C.DoJSON(ctx, http.MethodPost, "/appointments/book", token, nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *AppointmentAPI) MyAppointments(ctx context.Context, token string) ([]domain.Appointment, error) {
	var out []domain.Appointment
	if err := a.C.DoJSON(ctx, http.MethodGet, "/appointments/my-appointments", token, nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *AppointmentAPI) Get(ctx context.Context, token, id string) (*domain.Appointment, error) {
	var out domain.Appointment
	if err := a.C.DoJSON(ctx, http.MethodGet, "/appointments/"+id, token, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Cancel is irreversible from the client's perspective.
func (a *AppointmentAPI) Cancel(ctx context.Context, token, id string) (*domain.Message, error) {
	var out domain.Message
	if err := a.C.DoJSON(ctx, http.MethodPut, "/appointments/"+id+"/cancel", token, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

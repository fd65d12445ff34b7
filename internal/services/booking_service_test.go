package services_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"petwell/internal/api"
	"petwell/internal/domain"
	"petwell/internal/services"
)

func bookService(t *testing.T, h http.HandlerFunc) *services.BookingService {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return &services.BookingService{API: api.NewSet(srv.URL, 5*time.Second)}
}

func TestLoadAvailableDataFetchesBoth(t *testing.T) {
	svc := bookService(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/appointments/slots/available":
			_ = json.NewEncoder(w).Encode([]domain.AppointmentSlot{{ID: "s1", Status: domain.SlotAvailable}})
		case "/pets":
			_ = json.NewEncoder(w).Encode([]domain.Pet{{ID: "p1", Name: "Rex"}})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})

	slots, pets, err := svc.LoadAvailableData(context.Background(), "tok")
	if err != nil {
		t.Fatal(err)
	}
	if len(slots) != 1 || len(pets) != 1 {
		t.Fatalf("slots=%d pets=%d", len(slots), len(pets))
	}
}

// Either fetch failing fails the whole load; the caller never sees a
// half-populated browse state.
func TestLoadAvailableDataFailsOnEitherError(t *testing.T) {
	svc := bookService(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/pets" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode([]domain.AppointmentSlot{{ID: "s1"}})
	})

	slots, pets, err := svc.LoadAvailableData(context.Background(), "tok")
	if err == nil {
		t.Fatal("expected error")
	}
	if slots != nil || pets != nil {
		t.Fatalf("partial data leaked: slots=%v pets=%v", slots, pets)
	}
}

func TestRequestBookingZeroPetsGate(t *testing.T) {
	svc := &services.BookingService{}
	slots := []domain.AppointmentSlot{{ID: "s1"}}

	if _, err := svc.RequestBooking(slots, nil, "s1"); err != services.ErrNoPets {
		t.Fatalf("err = %v", err)
	}

	pets := []domain.Pet{{ID: "p1"}}
	slot, err := svc.RequestBooking(slots, pets, "s1")
	if err != nil || slot.ID != "s1" {
		t.Fatalf("slot=%v err=%v", slot, err)
	}

	if _, err := svc.RequestBooking(slots, pets, "gone"); err != services.ErrSlotNotFound {
		t.Fatalf("err = %v", err)
	}
}

// Missing petId fails locally; the backend never sees the request.
func TestConfirmBookingRequiresPetBeforeNetwork(t *testing.T) {
	svc := bookService(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected without a pet selection")
	})

	if _, err := svc.ConfirmBooking(context.Background(), "tok", "s1", "", "notes"); err != services.ErrPetRequired {
		t.Fatalf("err = %v", err)
	}
}

func TestConfirmBookingSurfacesServerMessage(t *testing.T) {
	svc := bookService(t, func(w http.ResponseWriter, r *http.Request) {
		var req domain.BookAppointmentRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.PetID != "p1" || req.SlotID != "s1" {
			t.Errorf("req = %+v", req)
		}
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"message":"Slot already booked"}`))
	})

	_, err := svc.ConfirmBooking(context.Background(), "tok", "s1", "p1", "")
	ae, ok := api.AsAPIError(err)
	if !ok {
		t.Fatalf("err = %v", err)
	}
	if ae.UserMessage() != "Slot already booked" {
		t.Fatalf("message = %q", ae.UserMessage())
	}
}

func TestConfirmBookingSuccess(t *testing.T) {
	svc := bookService(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(domain.Appointment{ID: "a1", Status: domain.AppointmentScheduled})
	})

	appt, err := svc.ConfirmBooking(context.Background(), "tok", "s1", "p1", "first visit")
	if err != nil {
		t.Fatal(err)
	}
	if appt.ID != "a1" || appt.Status != domain.AppointmentScheduled {
		t.Fatalf("appt = %+v", appt)
	}
}

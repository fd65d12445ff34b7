package handlers_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"petwell/internal/domain"
)

// Cancelling is a two-step flow: a confirm page first, then the actual
// cancel. The confirm step must not touch the backend's cancel endpoint.
func TestCancelIsTwoStep(t *testing.T) {
	var cancelCalls int
	app, sessions := newWebApp(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/appointments/my-appointments":
			_ = json.NewEncoder(w).Encode([]domain.Appointment{
				{ID: "a1", AppointmentDate: "2026-09-02", Status: domain.AppointmentScheduled},
				{ID: "a2", AppointmentDate: "2026-09-05", Status: domain.AppointmentScheduled},
			})
		case r.Method == http.MethodPut && r.URL.Path == "/appointments/a1/cancel":
			cancelCalls++
			_ = json.NewEncoder(w).Encode(domain.Message{Message: "Appointment cancelled"})
		default:
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
	})
	loginAs(t, sessions, "sid-c", "ROLE_USER")

	resp := get(t, app, "/appointments/a1/cancel", "sid-c")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("confirm page: %d", resp.StatusCode)
	}
	if cancelCalls != 0 {
		t.Fatal("confirm step must not cancel")
	}

	req := httptest.NewRequest(http.MethodPost, "/appointments/a1/cancel", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: "sid-c"})
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("cancel: %d", resp.StatusCode)
	}
	if cancelCalls != 1 {
		t.Fatalf("cancel calls = %d", cancelCalls)
	}

	// The list renders with the row flipped locally; no refetch happened,
	// so the backend still reports SCHEDULED.
	body, _ := io.ReadAll(resp.Body)
	page := string(body)
	if !strings.Contains(page, domain.AppointmentCancelled) {
		t.Fatal("cancelled row not shown")
	}
	if !strings.Contains(page, "Appointment cancelled") {
		t.Fatal("server message not shown")
	}
}

// Cancelling an unknown appointment renders not found before any
// backend cancel call.
func TestCancelConfirmUnknownAppointment(t *testing.T) {
	app, sessions := newWebApp(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path != "/appointments/my-appointments" {
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode([]domain.Appointment{})
	})
	loginAs(t, sessions, "sid-n", "ROLE_USER")

	resp := get(t, app, "/appointments/zzz/cancel", "sid-n")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d", resp.StatusCode)
	}
}

// A failed cancel keeps the list intact and surfaces the server's
// message instead of flipping anything.
func TestCancelFailureKeepsStatus(t *testing.T) {
	app, sessions := newWebApp(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodGet:
			_ = json.NewEncoder(w).Encode([]domain.Appointment{
				{ID: "a1", AppointmentDate: "2026-09-02", Status: domain.AppointmentScheduled},
			})
		case r.Method == http.MethodPut:
			w.WriteHeader(http.StatusConflict)
			_, _ = w.Write([]byte(`{"message":"Appointment already completed"}`))
		}
	})
	loginAs(t, sessions, "sid-f", "ROLE_USER")

	req := httptest.NewRequest(http.MethodPost, "/appointments/a1/cancel", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: "sid-f"})
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	body, _ := io.ReadAll(resp.Body)
	page := string(body)
	if strings.Contains(page, domain.AppointmentCancelled) {
		t.Fatal("row must not flip on a failed cancel")
	}
	if !strings.Contains(page, "Appointment already completed") {
		t.Fatal("server message not shown")
	}
}

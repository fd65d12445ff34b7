package api_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"petwell/internal/api"
	"petwell/internal/domain"
)

func newTestSet(t *testing.T, h http.HandlerFunc) *api.Set {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return api.NewSet(srv.URL, 5*time.Second)
}

func TestBearerTokenInjection(t *testing.T) {
	var gotAuth string
	set := newTestSet(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	})

	if _, err := set.Pets.List(context.Background(), "tok-123"); err != nil {
		t.Fatal(err)
	}
	if gotAuth != "Bearer tok-123" {
		t.Fatalf("expected bearer header, got %q", gotAuth)
	}
}

func TestNoBearerWithoutToken(t *testing.T) {
	var gotAuth string
	set := newTestSet(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"message":"ok"}`))
	})

	if _, err := set.Contact.Submit(context.Background(), api.ContactRequest{
		Name: "A", Email: "a@b.com", Subject: "s", Message: "m",
	}); err != nil {
		t.Fatal(err)
	}
	if gotAuth != "" {
		t.Fatalf("expected no auth header, got %q", gotAuth)
	}
}

func TestAPIErrorMessageParsing(t *testing.T) {
	set := newTestSet(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"message":"Slot is no longer available"}`))
	})

	_, err := set.Appointments.Book(context.Background(), "tok", domain.BookAppointmentRequest{SlotID: "s1", PetID: "p1"})
	ae, ok := api.AsAPIError(err)
	if !ok {
		t.Fatalf("expected APIError, got %v", err)
	}
	if ae.StatusCode != http.StatusConflict {
		t.Fatalf("status = %d", ae.StatusCode)
	}
	if ae.UserMessage() != "Slot is no longer available" {
		t.Fatalf("message = %q", ae.UserMessage())
	}
}

func TestAPIErrorFieldMapParsing(t *testing.T) {
	set := newTestSet(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"vaccineName":"must not be blank","nextDueDate":"must be in the future"}`))
	})

	_, err := set.Vaccinations.Update(context.Background(), "tok", "v1", "", "2020-01-01", "")
	ae, ok := api.AsAPIError(err)
	if !ok {
		t.Fatalf("expected APIError, got %v", err)
	}
	if ae.Fields["vaccineName"] != "must not be blank" {
		t.Fatalf("fields = %+v", ae.Fields)
	}
}

func TestAuthFailureDetection(t *testing.T) {
	set := newTestSet(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := set.Users.Profile(context.Background(), "expired")
	ae, ok := api.AsAPIError(err)
	if !ok || !ae.IsAuthFailure() {
		t.Fatalf("expected auth failure, got %v", err)
	}
}

func TestMultipartUpload(t *testing.T) {
	var gotContentType, gotFileName, gotField string
	set := newTestSet(t, func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
		}
		gotField = r.FormValue("vaccineName")
		if f, fh, err := r.FormFile("file"); err == nil {
			gotFileName = fh.Filename
			f.Close()
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"v1","status":"UPCOMING"}`))
	})

	rec, err := set.Vaccinations.Add(context.Background(), "tok", "p1",
		"Rabies", "Dr. Roe", "2026-08-01", "2027-08-01", "proof.pdf", strings.NewReader("%PDF-1.4"))
	if err != nil {
		t.Fatal(err)
	}
	if rec.ID != "v1" {
		t.Fatalf("rec = %+v", rec)
	}
	if !strings.HasPrefix(gotContentType, "multipart/form-data") {
		t.Fatalf("content type = %q", gotContentType)
	}
	if gotField != "Rabies" || gotFileName != "proof.pdf" {
		t.Fatalf("field=%q file=%q", gotField, gotFileName)
	}
}

func TestMultipartWithoutFile(t *testing.T) {
	set := newTestSet(t, func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
		}
		if _, _, err := r.FormFile("file"); err == nil {
			t.Error("expected no file part")
		}
		_, _ = w.Write([]byte(`{"id":"v2"}`))
	})

	if _, err := set.Vaccinations.Add(context.Background(), "tok", "p1",
		"Rabies", "Dr. Roe", "2026-08-01", "2027-08-01", "", nil); err != nil {
		t.Fatal(err)
	}
}

func TestRawDownload(t *testing.T) {
	set := newTestSet(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/report/pet/p1" {
			t.Errorf("path = %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = io.WriteString(w, "%PDF-1.4 report")
	})

	body, ct, err := set.Reports.PetHealthReport(context.Background(), "tok", "p1")
	if err != nil {
		t.Fatal(err)
	}
	if ct != "application/pdf" {
		t.Fatalf("content type = %q", ct)
	}
	if string(body) != "%PDF-1.4 report" {
		t.Fatalf("body = %q", body)
	}
}

func TestUpdateOmitsEmptyQueryParams(t *testing.T) {
	var gotQuery string
	set := newTestSet(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`{"id":"v1"}`))
	})

	if _, err := set.Vaccinations.Update(context.Background(), "tok", "v1", "2026-08-30", "", ""); err != nil {
		t.Fatal(err)
	}
	if gotQuery != "givenDate=2026-08-30" {
		t.Fatalf("query = %q", gotQuery)
	}
}

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

func vacService(t *testing.T, h http.HandlerFunc) *services.VaccinationService {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return &services.VaccinationService{API: api.NewSet(srv.URL, 5*time.Second)}
}

func writePage(w http.ResponseWriter, recs ...domain.Vaccination) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(domain.VaccinationPage{Content: recs, TotalPages: 1})
}

func TestMarkCompletedSendsToday(t *testing.T) {
	var gotGiven string
	svc := vacService(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("method = %s", r.Method)
		}
		gotGiven = r.URL.Query().Get("givenDate")
		if r.URL.Query().Has("nextDueDate") {
			t.Error("nextDueDate must not be sent when completing")
		}
		_ = json.NewEncoder(w).Encode(domain.Vaccination{ID: "v1", Status: domain.VaccinationCompleted})
	})

	rec := &domain.Vaccination{ID: "v1", Status: domain.VaccinationUpcoming}
	updated, err := svc.MarkCompleted(context.Background(), "tok", rec)
	if err != nil {
		t.Fatal(err)
	}
	if updated.Status != domain.VaccinationCompleted {
		t.Fatalf("status = %s", updated.Status)
	}
	if gotGiven != time.Now().Format("2006-01-02") {
		t.Fatalf("givenDate = %q", gotGiven)
	}
}

func TestMarkCompletedRejectsWrongStatus(t *testing.T) {
	svc := vacService(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected for a guarded transition")
	})
	for _, status := range []string{domain.VaccinationCompleted, domain.VaccinationOverdue} {
		rec := &domain.Vaccination{ID: "v1", Status: status}
		if _, err := svc.MarkCompleted(context.Background(), "tok", rec); err != services.ErrNotUpcoming {
			t.Fatalf("status %s: err = %v", status, err)
		}
	}
}

func TestUpdateDueDateOnlyForOverdue(t *testing.T) {
	svc := vacService(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("nextDueDate"); got != "2026-10-01" {
			t.Errorf("nextDueDate = %q", got)
		}
		_ = json.NewEncoder(w).Encode(domain.Vaccination{ID: "v1", Status: domain.VaccinationUpcoming})
	})

	rec := &domain.Vaccination{ID: "v1", Status: domain.VaccinationUpcoming}
	if _, err := svc.UpdateDueDate(context.Background(), "tok", rec, "2026-10-01"); err != services.ErrNotOverdue {
		t.Fatalf("err = %v", err)
	}

	rec.Status = domain.VaccinationOverdue
	if _, err := svc.UpdateDueDate(context.Background(), "tok", rec, "2026-10-01"); err != nil {
		t.Fatal(err)
	}
}

func TestAddNextDoseOnlyForCompleted(t *testing.T) {
	svc := vacService(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s", r.Method)
		}
		_ = json.NewEncoder(w).Encode(domain.Vaccination{ID: "v2", Status: domain.VaccinationUpcoming, DoseNumber: 2})
	})

	rec := &domain.Vaccination{ID: "v1", Status: domain.VaccinationUpcoming}
	if _, err := svc.AddNextDose(context.Background(), "tok", rec, "2027-01-01"); err != services.ErrNotCompleted {
		t.Fatalf("err = %v", err)
	}

	rec.Status = domain.VaccinationCompleted
	next, err := svc.AddNextDose(context.Background(), "tok", rec, "2027-01-01")
	if err != nil {
		t.Fatal(err)
	}
	if next.DoseNumber != 2 {
		t.Fatalf("dose = %d", next.DoseNumber)
	}
}

func TestCanAdd(t *testing.T) {
	svc := &services.VaccinationService{}

	if !svc.CanAdd(nil) {
		t.Error("nil page must allow add")
	}
	if !svc.CanAdd(&domain.VaccinationPage{}) {
		t.Error("empty page must allow add")
	}
	completed := &domain.VaccinationPage{Content: []domain.Vaccination{{Status: domain.VaccinationCompleted}}}
	if !svc.CanAdd(completed) {
		t.Error("first record completed must allow add")
	}
	upcoming := &domain.VaccinationPage{Content: []domain.Vaccination{
		{Status: domain.VaccinationUpcoming},
		{Status: domain.VaccinationCompleted},
	}}
	if svc.CanAdd(upcoming) {
		t.Error("first record upcoming must block add")
	}
}

// The add gate re-checks server state at submit time, so a stale page
// cannot sneak a second open dose in.
func TestAddRefetchesGateBeforePosting(t *testing.T) {
	var posted bool
	svc := vacService(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet:
			writePage(w, domain.Vaccination{ID: "v1", Status: domain.VaccinationUpcoming})
		case r.Method == http.MethodPost:
			posted = true
			_ = json.NewEncoder(w).Encode(domain.Vaccination{ID: "v2"})
		}
	})

	form := services.AddVaccinationForm{
		VaccineName: "Rabies", DoctorName: "Dr. Roe",
		GivenDate: "2026-08-01", NextDueDate: "2027-08-01",
	}
	_, err := svc.Add(context.Background(), "tok", "p1", form, "", nil)
	if err != services.ErrDoseInProgress {
		t.Fatalf("err = %v", err)
	}
	if posted {
		t.Fatal("add must not post while a dose is open")
	}
}

func TestAddPostsWhenGateIsOpen(t *testing.T) {
	svc := vacService(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			writePage(w, domain.Vaccination{ID: "v1", Status: domain.VaccinationCompleted})
		case http.MethodPost:
			if err := r.ParseMultipartForm(1 << 20); err != nil {
				t.Errorf("parse multipart: %v", err)
			}
			if r.FormValue("petId") != "p1" || r.FormValue("vaccineName") != "Rabies" {
				t.Errorf("form = %v", r.MultipartForm.Value)
			}
			_ = json.NewEncoder(w).Encode(domain.Vaccination{ID: "v2", Status: domain.VaccinationUpcoming})
		}
	})

	form := services.AddVaccinationForm{
		VaccineName: "Rabies", DoctorName: "Dr. Roe",
		GivenDate: "2026-08-01", NextDueDate: "2027-08-01",
	}
	rec, err := svc.Add(context.Background(), "tok", "p1", form, "", nil)
	if err != nil {
		t.Fatal(err)
	}
	if rec.ID != "v2" {
		t.Fatalf("rec = %+v", rec)
	}
}

func TestAddFormValidation(t *testing.T) {
	const today = "2026-08-30"
	base := services.AddVaccinationForm{
		VaccineName: "Rabies", DoctorName: "Dr. Roe",
		GivenDate: "2026-08-01", NextDueDate: "2027-08-01",
	}

	if errs := base.Validate(today, ""); len(errs) != 0 {
		t.Fatalf("valid form rejected: %v", errs)
	}
	if errs := base.Validate(today, "proof.pdf"); len(errs) != 0 {
		t.Fatalf("pdf attachment rejected: %v", errs)
	}

	f := base
	f.NextDueDate = ""
	if errs := f.Validate(today, ""); errs["nextDueDate"] == "" {
		t.Error("missing next due date must be flagged")
	}

	f = base
	f.NextDueDate = f.GivenDate
	if errs := f.Validate(today, ""); errs["nextDueDate"] == "" {
		t.Error("next due date equal to given date must be flagged")
	}

	f = base
	f.NextDueDate = "2026-08-30"
	if errs := f.Validate(today, ""); errs["nextDueDate"] == "" {
		t.Error("next due date not after today must be flagged")
	}

	f = base
	f.VaccineName = ""
	if errs := f.Validate(today, ""); errs["vaccineName"] == "" {
		t.Error("missing vaccine name must be flagged")
	}

	if errs := base.Validate(today, "notes.txt"); errs["file"] == "" {
		t.Error("txt attachment must be flagged")
	}
}

func TestFindOnPage(t *testing.T) {
	svc := &services.VaccinationService{}
	page := &domain.VaccinationPage{Content: []domain.Vaccination{{ID: "a"}, {ID: "b"}}}
	if rec := svc.FindOnPage(page, "b"); rec == nil || rec.ID != "b" {
		t.Fatalf("rec = %+v", rec)
	}
	if rec := svc.FindOnPage(page, "zzz"); rec != nil {
		t.Fatalf("expected nil, got %+v", rec)
	}
	if rec := svc.FindOnPage(nil, "a"); rec != nil {
		t.Fatalf("expected nil for nil page, got %+v", rec)
	}
}

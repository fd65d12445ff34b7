package services

import (
	"context"
	"errors"
	"io"
	"time"

	"petwell/internal/api"
	"petwell/internal/domain"
	"petwell/internal/validate"
)

const VaccinationPageSize = 15

var (
	ErrNotUpcoming    = errors.New("record is not upcoming")
	ErrNotOverdue     = errors.New("record is not overdue")
	ErrNotCompleted   = errors.New("record is not completed")
	ErrDoseInProgress = errors.New("a vaccination is already being tracked for this pet")
)

// VaccinationService drives the dose lifecycle. It never computes a
// status itself: every transition is a server call followed by a
// re-read, and the status strings shown are exactly what came back.
type VaccinationService struct {
	API *api.Set
}

func (s *VaccinationService) LoadPage(ctx context.Context, token, petID string, page int) (*domain.VaccinationPage, error) {
	return s.API.Vaccinations.Page(ctx, token, petID, page, VaccinationPageSize)
}

func (s *VaccinationService) History(ctx context.Context, token, id string) ([]domain.VaccinationAudit, error) {
	return s.API.Vaccinations.History(ctx, token, id)
}

// FindOnPage locates the selected record in the most recent page fetch.
func (s *VaccinationService) FindOnPage(page *domain.VaccinationPage, id string) *domain.Vaccination {
	if page == nil {
		return nil
	}
	for i := range page.Content {
		if page.Content[i].ID == id {
			return &page.Content[i]
		}
	}
	return nil
}

// MarkCompleted submits today's date as the given date. Valid only for
// UPCOMING records; the server recomputes status and sort position.
func (s *VaccinationService) MarkCompleted(ctx context.Context, token string, rec *domain.Vaccination) (*domain.Vaccination, error) {
	if rec.Status != domain.VaccinationUpcoming {
		return nil, ErrNotUpcoming
	}
	today := time.Now().Format("2006-01-02")
	return s.API.Vaccinations.Update(ctx, token, rec.ID, today, "", "")
}

// UpdateDueDate reschedules an OVERDUE record. The server is
// authoritative on date ordering; only non-emptiness is checked here.
func (s *VaccinationService) UpdateDueDate(ctx context.Context, token string, rec *domain.Vaccination, newDueDate string) (*domain.Vaccination, error) {
	if rec.Status != domain.VaccinationOverdue {
		return nil, ErrNotOverdue
	}
	if _, ok := validate.Date(newDueDate); !ok {
		return nil, errors.New("new due date is required")
	}
	return s.API.Vaccinations.Update(ctx, token, rec.ID, "", newDueDate, "")
}

// AddNextDose creates the follow-up record for a COMPLETED dose.
func (s *VaccinationService) AddNextDose(ctx context.Context, token string, rec *domain.Vaccination, nextDueDate string) (*domain.Vaccination, error) {
	if rec.Status != domain.VaccinationCompleted {
		return nil, ErrNotCompleted
	}
	if _, ok := validate.Date(nextDueDate); !ok {
		return nil, errors.New("next due date is required")
	}
	return s.API.Vaccinations.NextDose(ctx, token, rec.ID, nextDueDate)
}

// CanAdd reports whether the add-vaccination action is enabled: no
// records yet, or the first record of the latest fetch is COMPLETED.
func (s *VaccinationService) CanAdd(page *domain.VaccinationPage) bool {
	if page == nil || len(page.Content) == 0 {
		return true
	}
	return page.Content[0].Status == domain.VaccinationCompleted
}

type AddVaccinationForm struct {
	VaccineName string
	DoctorName  string
	GivenDate   string
	NextDueDate string
}

// Validate returns field-level errors for the add form. today is passed
// in so tests can pin the clock.
func (f AddVaccinationForm) Validate(today, attachmentName string) map[string]string {
	errs := map[string]string{}
	if _, ok := validate.Name(f.VaccineName); !ok {
		errs["vaccineName"] = "Vaccine name is required"
	}
	if _, ok := validate.Name(f.DoctorName); !ok {
		errs["doctorName"] = "Doctor name is required"
	}
	if _, ok := validate.Date(f.GivenDate); !ok {
		errs["givenDate"] = "Given date is required"
	}
	if msg, ok := validate.NextDueDate(f.NextDueDate, f.GivenDate, today); !ok {
		errs["nextDueDate"] = msg
	}
	if !validate.Attachment(attachmentName) {
		errs["file"] = "Attachment must be a pdf, jpg, jpeg or png file"
	}
	return errs
}

// Add re-checks the gate against a fresh page-0 fetch before posting,
// closing the stale-button race at submit time, then uploads the form.
func (s *VaccinationService) Add(ctx context.Context, token, petID string, form AddVaccinationForm, fileName string, file io.Reader) (*domain.Vaccination, error) {
	page, err := s.LoadPage(ctx, token, petID, 0)
	if err != nil {
		return nil, err
	}
	if !s.CanAdd(page) {
		return nil, ErrDoseInProgress
	}
	return s.API.Vaccinations.Add(ctx, token, petID,
		form.VaccineName, form.DoctorName, form.GivenDate, form.NextDueDate, fileName, file)
}

package api

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"petwell/internal/domain"
)

type VaccinationAPI struct{ C *Client }

// Add posts a new vaccination record as multipart form data; file may be
// nil when the form had no attachment.
func (v *VaccinationAPI) Add(ctx context.Context, token, petID, vaccineName, doctorName, givenDate, nextDueDate, fileName string, file io.Reader) (*domain.Vaccination, error) {
	fields := map[string]string{
		"petId":       petID,
		"vaccineName": vaccineName,
		"doctorName":  doctorName,
		"givenDate":   givenDate,
		"nextDueDate": nextDueDate,
	}
	var out domain.Vaccination
	if err := v.C.DoMultipart(ctx, "/vaccination/add", token, fields, fileName, file, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Page fetches one page of a pet's records, sorted by next due date on
// the server.
func (v *VaccinationAPI) Page(ctx context.Context, token, petID string, page, size int) (*domain.VaccinationPage, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("size", strconv.Itoa(size))
	var out domain.VaccinationPage
	if err := v.C.DoJSON(ctx, http.MethodGet, "/vaccination/"+petID, token, q, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update changes the given fields via query params; empty strings are
// omitted. The server recomputes the status from the resulting dates.
func (v *VaccinationAPI) Update(ctx context.Context, token, id, givenDate, nextDueDate, doctorName string) (*domain.Vaccination, error) {
	q := url.Values{}
	if givenDate != "" {
		q.Set("givenDate", givenDate)
	}
	if nextDueDate != "" {
		q.Set("nextDueDate", nextDueDate)
	}
	if doctorName != "" {
		q.Set("doctorName", doctorName)
	}
	var out domain.Vaccination
	if err := v.C.DoJSON(ctx, http.MethodPut, "/vaccination/update/"+id, token, q, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (v *VaccinationAPI) NextDose(ctx context.Context, token, id, nextDueDate string) (*domain.Vaccination, error) {
	q := url.Values{}
	q.Set("nextDueDate", nextDueDate)
	var out domain.Vaccination
	if err := v.C.DoJSON(ctx, http.MethodPost, "/vaccination/"+id+"/next-dose", token, q, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// History returns the append-only audit trail, ordered by revision.
func (v *VaccinationAPI) History(ctx context.Context, token, id string) ([]domain.VaccinationAudit, error) {
	var out []domain.VaccinationAudit
	if err := v.C.DoJSON(ctx, http.MethodGet, "/vaccination/"+id+"/history", token, nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

package api

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"petwell/internal/domain"
)

type MedicalHistoryAPI struct{ C *Client }

// Add posts a visit record as multipart form data. Records are immutable
// from this client once created.
func (m *MedicalHistoryAPI) Add(ctx context.Context, token string, fields map[string]string, fileName string, file io.Reader) (*domain.MedicalHistoryRecord, error) {
	var out domain.MedicalHistoryRecord
	if err := m.C.DoMultipart(ctx, "/medical-history/add", token, fields, fileName, file, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (m *MedicalHistoryAPI) Page(ctx context.Context, token, petID string, page, size int) (*domain.MedicalHistoryPage, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("size", strconv.Itoa(size))
	var out domain.MedicalHistoryPage
	if err := m.C.DoJSON(ctx, http.MethodGet, "/medical-history/"+petID, token, q, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

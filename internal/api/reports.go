package api

import "context"

type ReportAPI struct{ C *Client }

// PetHealthReport downloads the generated PDF for a pet. The bytes are
// passed through to the browser unchanged.
func (r *ReportAPI) PetHealthReport(ctx context.Context, token, petID string) ([]byte, string, error) {
	return r.C.DoRaw(ctx, "/report/pet/"+petID, token)
}

package api

import (
	"context"
	"net/http"

	"petwell/internal/domain"
)

type PetAPI struct{ C *Client }

func (p *PetAPI) Register(ctx context.Context, token string, req domain.PetRequest) (*domain.Pet, error) {
	var out domain.Pet
	if err := p.C.DoJSON(ctx, http.MethodPost, "/pets", token, nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (p *PetAPI) List(ctx context.Context, token string) ([]domain.Pet, error) {
	var out []domain.Pet
	if err := p.C.DoJSON(ctx, http.MethodGet, "/pets", token, nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (p *PetAPI) Get(ctx context.Context, token, id string) (*domain.Pet, error) {
	var out domain.Pet
	if err := p.C.DoJSON(ctx, http.MethodGet, "/pets/"+id, token, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (p *PetAPI) Update(ctx context.Context, token, id string, req domain.PetRequest) (*domain.Pet, error) {
	var out domain.Pet
	if err := p.C.DoJSON(ctx, http.MethodPut, "/pets/"+id, token, nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (p *PetAPI) Delete(ctx context.Context, token, id string) error {
	return p.C.DoJSON(ctx, http.MethodDelete, "/pets/"+id, token, nil, nil, nil)
}

package handlers

import (
	"petwell/internal/api"
	"petwell/internal/services"
	"petwell/internal/session"
)

type Deps struct {
	Auth           *AuthHandler
	Pets           *PetHandler
	Vaccinations   *VaccinationHandler
	MedicalHistory *MedicalHistoryHandler
	Booking        *BookingHandler
	Shop           *ShopHandler
	Profile        *ProfileHandler
	Contact        *ContactHandler
	Admin          *AdminHandler
	AuthSvc        *services.AuthService
}

func NewDeps(apiSet *api.Set, sessions *session.Store) *Deps {
	authSvc := &services.AuthService{API: apiSet, Sessions: sessions}
	vacSvc := &services.VaccinationService{API: apiSet}
	bookSvc := &services.BookingService{API: apiSet}

	return &Deps{
		Auth:           &AuthHandler{Auth: authSvc, API: apiSet},
		Pets:           &PetHandler{API: apiSet, Auth: authSvc},
		Vaccinations:   &VaccinationHandler{Vac: vacSvc, API: apiSet, Auth: authSvc},
		MedicalHistory: &MedicalHistoryHandler{API: apiSet, Auth: authSvc},
		Booking:        &BookingHandler{Svc: bookSvc, Auth: authSvc},
		Shop:           &ShopHandler{API: apiSet, Auth: authSvc},
		Profile:        &ProfileHandler{API: apiSet, Auth: authSvc},
		Contact:        &ContactHandler{API: apiSet},
		Admin:          &AdminHandler{API: apiSet, Auth: authSvc},
		AuthSvc:        authSvc,
	}
}

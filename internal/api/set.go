package api

import "time"

// Set bundles one client per backend resource over a shared Client.
type Set struct {
	Auth           *AuthAPI
	Users          *UserAPI
	Pets           *PetAPI
	Appointments   *AppointmentAPI
	Vaccinations   *VaccinationAPI
	MedicalHistory *MedicalHistoryAPI
	Marketplace    *MarketplaceAPI
	Admin          *AdminAPI
	Contact        *ContactAPI
	Reports        *ReportAPI
}

func NewSet(baseURL string, timeout time.Duration) *Set {
	return NewSetWithClient(New(baseURL, timeout))
}

func NewSetWithClient(c *Client) *Set {
	return &Set{
		Auth:           &AuthAPI{C: c},
		Users:          &UserAPI{C: c},
		Pets:           &PetAPI{C: c},
		Appointments:   &AppointmentAPI{C: c},
		Vaccinations:   &VaccinationAPI{C: c},
		MedicalHistory: &MedicalHistoryAPI{C: c},
		Marketplace:    &MarketplaceAPI{C: c},
		Admin:          &AdminAPI{C: c},
		Contact:        &ContactAPI{C: c},
		Reports:        &ReportAPI{C: c},
	}
}

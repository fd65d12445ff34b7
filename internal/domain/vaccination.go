package domain

// Vaccination statuses. The status is computed by the backend from the
// record's dates and re-derived on every fetch; this client never infers
// it, it displays exactly what the server returned.
const (
	VaccinationUpcoming  = "UPCOMING"
	VaccinationCompleted = "COMPLETED"
	VaccinationOverdue   = "OVERDUE"
)

type Vaccination struct {
	ID             string `json:"id"`
	PetID          string `json:"petId"`
	VaccineName    string `json:"vaccineName"`
	DoctorName     string `json:"doctorName"`
	LastGivenDate  string `json:"lastGivenDate"`
	GivenDate      string `json:"givenDate"`
	NextDueDate    string `json:"nextDueDate"`
	Status         string `json:"status"`
	DoseNumber     int    `json:"doseNumber"`
	AttachmentPath string `json:"attachmentPath,omitempty"`
	CreatedAt      string `json:"createdAt"`
}

// VaccinationAudit is one immutable revision snapshot, append-only and
// ordered by Revision.
type VaccinationAudit struct {
	ID                string `json:"id"`
	VaccinationID     string `json:"vaccinationId"`
	PetID             string `json:"petId"`
	VaccineName       string `json:"vaccineName"`
	DoctorName        string `json:"doctorName"`
	LastGivenDate     string `json:"lastGivenDate"`
	GivenDate         string `json:"givenDate"`
	NextDueDate       string `json:"nextDueDate"`
	Status            string `json:"status"`
	DoseNumber        int    `json:"doseNumber"`
	Revision          int64  `json:"revision"`
	RevisionType      string `json:"revisionType"` // ADD | MOD | DEL
	RevisionTimestamp string `json:"revisionTimestamp"`
}

// VaccinationPage is the backend's page envelope for vaccination listings.
type VaccinationPage struct {
	Content    []Vaccination `json:"content"`
	TotalPages int           `json:"totalPages"`
	Number     int           `json:"number"`
}

// MedicalHistoryPage mirrors the same envelope for medical history records.
type MedicalHistoryPage struct {
	Content    []MedicalHistoryRecord `json:"content"`
	TotalPages int                    `json:"totalPages"`
	Number     int                    `json:"number"`
}

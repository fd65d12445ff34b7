package domain

// Pet types and genders as the backend enumerates them.
const (
	PetDog    = "DOG"
	PetCat    = "CAT"
	PetBird   = "BIRD"
	PetRabbit = "RABBIT"
	PetOther  = "OTHER"

	GenderMale   = "MALE"
	GenderFemale = "FEMALE"
)

type Pet struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Type      string  `json:"type"`
	Breed     string  `json:"breed"`
	Age       int     `json:"age"`
	Gender    string  `json:"gender"`
	Weight    float64 `json:"weight"`
	Bio       string  `json:"bio"`
	ImageURL  string  `json:"imageUrl"`
	OwnerID   string  `json:"ownerId"`
	CreatedAt string  `json:"createdAt"`
	UpdatedAt string  `json:"updatedAt"`
}

type PetRequest struct {
	Name     string  `json:"name" validate:"required,max=50"`
	Type     string  `json:"type" validate:"required,oneof=DOG CAT BIRD RABBIT OTHER"`
	Breed    string  `json:"breed" validate:"required,max=50"`
	Age      int     `json:"age" validate:"gte=0"`
	Gender   string  `json:"gender" validate:"required,oneof=MALE FEMALE"`
	Weight   float64 `json:"weight" validate:"gt=0"`
	Bio      string  `json:"bio,omitempty"`
	ImageURL string  `json:"imageUrl,omitempty"`
}

// MedicalHistoryRecord is immutable from this client once created.
type MedicalHistoryRecord struct {
	ID             string `json:"id"`
	PetID          string `json:"petId"`
	VisitDate      string `json:"visitDate"`
	DoctorName     string `json:"doctorName"`
	Diagnosis      string `json:"diagnosis"`
	Treatment      string `json:"treatment"`
	Notes          string `json:"notes"`
	FollowUpDate   string `json:"followUpDate,omitempty"`
	AttachmentPath string `json:"attachmentPath,omitempty"`
	CreatedAt      string `json:"createdAt"`
}

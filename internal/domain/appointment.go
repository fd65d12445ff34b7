package domain

const (
	ConsultationOnline   = "ONLINE"
	ConsultationInClinic = "IN_CLINIC"

	SlotAvailable = "AVAILABLE"
	SlotBooked    = "BOOKED"
	SlotCancelled = "CANCELLED"

	AppointmentScheduled = "SCHEDULED"
	AppointmentCompleted = "COMPLETED"
	AppointmentCancelled = "CANCELLED"
)

// AppointmentSlot is a bookable time published by an administrator. The
// browse list only ever contains AVAILABLE slots; AVAILABLE->BOOKED is
// enforced server-side at booking time.
type AppointmentSlot struct {
	ID               string  `json:"id"`
	Date             string  `json:"date"`
	Time             string  `json:"time"`
	ConsultationType string  `json:"consultationType"`
	VeterinarianName string  `json:"veterinarianName"`
	Status           string  `json:"status"`
	Duration         int     `json:"duration"`
	ConsultationFee  float64 `json:"consultationFee,omitempty"`
	CreatedAt        string  `json:"createdAt"`
	UpdatedAt        string  `json:"updatedAt"`
}

type BookAppointmentRequest struct {
	PetID  string `json:"petId" validate:"required"`
	SlotID string `json:"slotId" validate:"required"`
	Notes  string `json:"notes,omitempty"`
}

type Appointment struct {
	ID               string `json:"id"`
	UserID           string `json:"userId"`
	PetID            string `json:"petId"`
	SlotID           string `json:"slotId"`
	AppointmentDate  string `json:"appointmentDate"`
	AppointmentTime  string `json:"appointmentTime"`
	ConsultationType string `json:"consultationType"`
	VeterinarianName string `json:"veterinarianName"`
	Status           string `json:"status"`
	Notes            string `json:"notes"`
	CreatedAt        string `json:"createdAt"`
	UpdatedAt        string `json:"updatedAt"`
}

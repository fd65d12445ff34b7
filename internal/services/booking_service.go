package services

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"petwell/internal/api"
	"petwell/internal/domain"
)

var (
	ErrNoPets       = errors.New("no registered pets")
	ErrPetRequired  = errors.New("please select a pet")
	ErrSlotNotFound = errors.New("slot not found")
)

// BookingService covers slot discovery and the book/cancel workflow.
type BookingService struct {
	API *api.Set
}

// LoadAvailableData fetches open slots and the user's pets in parallel;
// both must settle before the browse grid renders, and either failure
// fails the load so a booking UI is never shown without pets.
func (s *BookingService) LoadAvailableData(ctx context.Context, token string) ([]domain.AppointmentSlot, []domain.Pet, error) {
	var (
		slots []domain.AppointmentSlot
		pets  []domain.Pet
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		slots, err = s.API.Appointments.AvailableSlots(gctx, token)
		return err
	})
	g.Go(func() error {
		var err error
		pets, err = s.API.Pets.List(gctx, token)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return slots, pets, nil
}

// RequestBooking gates the booking form: with zero pets the form never
// opens, the caller redirects to pet registration instead.
func (s *BookingService) RequestBooking(slots []domain.AppointmentSlot, pets []domain.Pet, slotID string) (*domain.AppointmentSlot, error) {
	if len(pets) == 0 {
		return nil, ErrNoPets
	}
	for i := range slots {
		if slots[i].ID == slotID {
			return &slots[i], nil
		}
	}
	return nil, ErrSlotNotFound
}

// ConfirmBooking validates petId locally before any network call, then
// submits. A slot that went BOOKED since the fetch fails here and the
// server's message is surfaced verbatim by the caller.
func (s *BookingService) ConfirmBooking(ctx context.Context, token, slotID, petID, notes string) (*domain.Appointment, error) {
	if petID == "" {
		return nil, ErrPetRequired
	}
	return s.API.Appointments.Book(ctx, token, domain.BookAppointmentRequest{
		SlotID: slotID,
		PetID:  petID,
		Notes:  notes,
	})
}

func (s *BookingService) MyAppointments(ctx context.Context, token string) ([]domain.Appointment, error) {
	return s.API.Appointments.MyAppointments(ctx, token)
}

// CancelAppointment fires the cancel call. Confirmation is a handler
// concern (two-step confirm page); by the time this runs the user has
// explicitly confirmed.
func (s *BookingService) CancelAppointment(ctx context.Context, token, id string) (*domain.Message, error) {
	return s.API.Appointments.Cancel(ctx, token, id)
}

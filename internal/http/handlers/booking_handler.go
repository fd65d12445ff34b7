package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"petwell/internal/domain"
	applog "petwell/internal/log"
	"petwell/internal/services"
	"petwell/internal/validate"
)

type BookingHandler struct {
	Svc  *services.BookingService
	Auth *services.AuthService
}

// Browse shows the open slot grid. Slots and pets load together; either
// failure fails the whole page so a booking form is never offered
// without knowing the user's pets.
func (h *BookingHandler) Browse(c *fiber.Ctx) error {
	sess := currentSession(c)
	slots, pets, err := h.Svc.LoadAvailableData(c.Context(), sess.Token)
	if err != nil {
		if authFailed(c, h.Auth, err) {
			return c.Redirect("/login")
		}
		applog.Error(c, "booking.browse.fail", err, nil)
		return render(c, "slot_browser", fiber.Map{"Err": errMessage(err)})
	}
	return render(c, "slot_browser", fiber.Map{"Slots": slots, "Pets": pets, "HasPets": len(pets) > 0})
}

// BookForm opens the booking form for one slot. With zero pets the form
// never opens; the user is sent to pet registration instead.
func (h *BookingHandler) BookForm(c *fiber.Ctx) error {
	sess := currentSession(c)
	slotID, ok := validate.ID(c.Query("slotId"))
	if !ok {
		return c.Redirect("/appointments/book")
	}

	slots, pets, err := h.Svc.LoadAvailableData(c.Context(), sess.Token)
	if err != nil {
		if authFailed(c, h.Auth, err) {
			return c.Redirect("/login")
		}
		return render(c, "slot_browser", fiber.Map{"Err": errMessage(err)})
	}

	slot, err := h.Svc.RequestBooking(slots, pets, slotID)
	if err != nil {
		if errors.Is(err, services.ErrNoPets) {
			return c.Redirect("/pets/add")
		}
		return render(c, "slot_browser", fiber.Map{"Slots": slots, "Pets": pets, "HasPets": len(pets) > 0,
			"Err": "That slot is no longer available"})
	}
	return render(c, "booking_form", fiber.Map{"Slot": slot, "Pets": pets, "PetID": "", "Notes": ""})
}

// Book submits the booking. petId is checked before any network call;
// a slot gone BOOKED since the fetch surfaces the server's message
// verbatim above a re-rendered form with the user's selections kept.
func (h *BookingHandler) Book(c *fiber.Ctx) error {
	sess := currentSession(c)
	slotID := c.FormValue("slotId")
	petID := c.FormValue("petId")
	notes := c.FormValue("notes")

	appt, err := h.Svc.ConfirmBooking(c.Context(), sess.Token, slotID, petID, notes)
	if err != nil {
		if authFailed(c, h.Auth, err) {
			return c.Redirect("/login")
		}
		slots, pets, lerr := h.Svc.LoadAvailableData(c.Context(), sess.Token)
		if lerr != nil {
			return render(c, "slot_browser", fiber.Map{"Err": errMessage(lerr)})
		}
		slot := findSlot(slots, slotID)
		if errors.Is(err, services.ErrPetRequired) {
			return render(c.Status(fiber.StatusBadRequest), "booking_form", fiber.Map{
				"Slot": slot, "Pets": pets, "PetID": "", "Notes": notes,
				"FieldErrs": map[string]string{"petId": "Please select a pet"},
			})
		}
		applog.Error(c, "booking.book.fail", err, map[string]any{"slot_id": slotID})
		if slot == nil {
			return render(c, "slot_browser", fiber.Map{"Slots": slots, "Pets": pets, "HasPets": len(pets) > 0,
				"Err": errMessage(err)})
		}
		return render(c.Status(fiber.StatusConflict), "booking_form", fiber.Map{
			"Slot": slot, "Pets": pets, "PetID": petID, "Notes": notes, "Err": errMessage(err),
		})
	}

	applog.Audit(c, "booking.book", map[string]any{"appointment_id": appt.ID, "slot_id": slotID, "pet_id": petID})
	return c.Redirect("/appointments")
}

func findSlot(slots []domain.AppointmentSlot, id string) *domain.AppointmentSlot {
	for i := range slots {
		if slots[i].ID == id {
			return &slots[i]
		}
	}
	return nil
}

func (h *BookingHandler) MyAppointments(c *fiber.Ctx) error {
	sess := currentSession(c)
	appts, err := h.Svc.MyAppointments(c.Context(), sess.Token)
	if err != nil {
		if authFailed(c, h.Auth, err) {
			return c.Redirect("/login")
		}
		applog.Error(c, "booking.list.fail", err, nil)
		return render(c, "appointments", fiber.Map{"Err": errMessage(err)})
	}
	return render(c, "appointments", fiber.Map{"Appointments": appts, "Msg": c.Query("msg")})
}

// CancelConfirm is step one of the two-step cancel: nothing is sent to
// the backend until the user confirms on this page.
func (h *BookingHandler) CancelConfirm(c *fiber.Ctx) error {
	sess := currentSession(c)
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return fiber.ErrNotFound
	}
	appts, err := h.Svc.MyAppointments(c.Context(), sess.Token)
	if err != nil {
		if authFailed(c, h.Auth, err) {
			return c.Redirect("/login")
		}
		return render(c, "appointments", fiber.Map{"Err": errMessage(err)})
	}
	for i := range appts {
		if appts[i].ID == id {
			return render(c, "appointment_cancel", fiber.Map{"Appt": &appts[i]})
		}
	}
	return fiber.ErrNotFound
}

// Cancel is step two. On success the list renders with the cancelled
// row already showing CANCELLED, without waiting for a refetch.
func (h *BookingHandler) Cancel(c *fiber.Ctx) error {
	sess := currentSession(c)
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return fiber.ErrNotFound
	}

	appts, lerr := h.Svc.MyAppointments(c.Context(), sess.Token)
	if lerr != nil {
		if authFailed(c, h.Auth, lerr) {
			return c.Redirect("/login")
		}
		return render(c, "appointments", fiber.Map{"Err": errMessage(lerr)})
	}

	msg, err := h.Svc.CancelAppointment(c.Context(), sess.Token, id)
	if err != nil {
		if authFailed(c, h.Auth, err) {
			return c.Redirect("/login")
		}
		applog.Error(c, "booking.cancel.fail", err, map[string]any{"appointment_id": id})
		return render(c, "appointments", fiber.Map{"Appointments": appts, "Err": errMessage(err)})
	}

	applog.Audit(c, "booking.cancel", map[string]any{"appointment_id": id})

	// Optimistic update: flip the row in the list already in hand
	// instead of waiting on a refetch.
	for i := range appts {
		if appts[i].ID == id {
			appts[i].Status = domain.AppointmentCancelled
		}
	}
	return render(c, "appointments", fiber.Map{"Appointments": appts, "Msg": msg.Message})
}

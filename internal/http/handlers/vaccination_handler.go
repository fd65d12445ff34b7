package handlers

import (
	"errors"
	"io"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"petwell/internal/api"
	"petwell/internal/domain"
	applog "petwell/internal/log"
	"petwell/internal/services"
	"petwell/internal/validate"
)

type VaccinationHandler struct {
	Vac  *services.VaccinationService
	API  *api.Set
	Auth *services.AuthService
}

const addGateMsg = "Complete+the+current+dose+before+adding+a+new+vaccination"

func listURL(petID string, page int) string {
	u := "/pets/" + petID + "/vaccinations"
	if page > 0 {
		u += "?page=" + strconv.Itoa(page)
	}
	return u
}

// List renders one page of the pet's vaccination records in the
// server's order, with per-row actions derived from each record's
// status and the add gate derived from the first row.
func (h *VaccinationHandler) List(c *fiber.Ctx) error {
	sess := currentSession(c)
	petID, ok := validate.ID(c.Params("id"))
	if !ok {
		return fiber.ErrNotFound
	}
	pageNum, _ := strconv.Atoi(c.Query("page", "0"))
	if pageNum < 0 {
		pageNum = 0
	}

	page, err := h.Vac.LoadPage(c.Context(), sess.Token, petID, pageNum)
	if err != nil {
		if authFailed(c, h.Auth, err) {
			return c.Redirect("/login")
		}
		applog.Error(c, "vaccination.page.fail", err, map[string]any{"pet_id": petID})
		return render(c, "vaccinations", fiber.Map{"PetID": petID, "Err": errMessage(err)})
	}

	return render(c, "vaccinations", fiber.Map{
		"PetID":    petID,
		"Page":     page,
		"CanAdd":   h.Vac.CanAdd(page),
		"PrevPage": pageNum - 1,
		"NextPage": pageNum + 1,
		"HasPrev":  pageNum > 0,
		"HasNext":  pageNum+1 < page.TotalPages,
		"Msg":      c.Query("msg"),
		"Err":      c.Query("err"),
	})
}

// loadRecord re-fetches the page the action came from and locates the
// record there, so every transition runs against fresh server state.
func (h *VaccinationHandler) loadRecord(c *fiber.Ctx, token, petID, vid string) (*domain.Vaccination, int, error) {
	pageNum, _ := strconv.Atoi(c.FormValue("page", "0"))
	if pageNum < 0 {
		pageNum = 0
	}
	page, err := h.Vac.LoadPage(c.Context(), token, petID, pageNum)
	if err != nil {
		return nil, pageNum, err
	}
	return h.Vac.FindOnPage(page, vid), pageNum, nil
}

// Detail shows one record with its full audit trail in the order the
// server returned it.
func (h *VaccinationHandler) Detail(c *fiber.Ctx) error {
	sess := currentSession(c)
	petID, ok1 := validate.ID(c.Params("id"))
	vid, ok2 := validate.ID(c.Params("vid"))
	if !ok1 || !ok2 {
		return fiber.ErrNotFound
	}

	rec, _, err := h.loadRecord(c, sess.Token, petID, vid)
	if err != nil {
		if authFailed(c, h.Auth, err) {
			return c.Redirect("/login")
		}
		return render(c, "vaccinations", fiber.Map{"PetID": petID, "Err": errMessage(err)})
	}
	if rec == nil {
		return fiber.ErrNotFound
	}

	audits, histErr := h.Vac.History(c.Context(), sess.Token, vid)
	data := fiber.Map{"PetID": petID, "Rec": rec, "Audits": audits}
	if histErr != nil {
		applog.Error(c, "vaccination.history.fail", histErr, map[string]any{"vaccination_id": vid})
		data["HistoryErr"] = "Audit history is unavailable right now."
	}
	return render(c, "vaccination_detail", data)
}

// MarkCompleted records today as the given date of an UPCOMING dose.
func (h *VaccinationHandler) MarkCompleted(c *fiber.Ctx) error {
	return h.runTransition(c, "vaccination.complete", func(rec *domain.Vaccination, token string, c *fiber.Ctx) error {
		_, err := h.Vac.MarkCompleted(c.Context(), token, rec)
		return err
	})
}

// UpdateDueDate reschedules an OVERDUE dose.
func (h *VaccinationHandler) UpdateDueDate(c *fiber.Ctx) error {
	newDue := c.FormValue("nextDueDate")
	return h.runTransition(c, "vaccination.reschedule", func(rec *domain.Vaccination, token string, c *fiber.Ctx) error {
		_, err := h.Vac.UpdateDueDate(c.Context(), token, rec, newDue)
		return err
	})
}

// AddNextDose opens the follow-up record for a COMPLETED dose.
func (h *VaccinationHandler) AddNextDose(c *fiber.Ctx) error {
	nextDue := c.FormValue("nextDueDate")
	return h.runTransition(c, "vaccination.nextdose", func(rec *domain.Vaccination, token string, c *fiber.Ctx) error {
		_, err := h.Vac.AddNextDose(c.Context(), token, rec, nextDue)
		return err
	})
}

func (h *VaccinationHandler) runTransition(c *fiber.Ctx, action string, fn func(*domain.Vaccination, string, *fiber.Ctx) error) error {
	sess := currentSession(c)
	petID, ok1 := validate.ID(c.Params("id"))
	vid, ok2 := validate.ID(c.Params("vid"))
	if !ok1 || !ok2 {
		return fiber.ErrNotFound
	}

	rec, pageNum, err := h.loadRecord(c, sess.Token, petID, vid)
	if err != nil {
		if authFailed(c, h.Auth, err) {
			return c.Redirect("/login")
		}
		return render(c, "vaccinations", fiber.Map{"PetID": petID, "Err": errMessage(err)})
	}
	if rec == nil {
		return fiber.ErrNotFound
	}

	if err := fn(rec, sess.Token, c); err != nil {
		if authFailed(c, h.Auth, err) {
			return c.Redirect("/login")
		}
		applog.Error(c, action+".fail", err, map[string]any{"vaccination_id": vid})
		return c.Redirect(listURL(petID, pageNum) + transitionErrQuery(pageNum, err))
	}
	applog.Audit(c, action, map[string]any{"pet_id": petID, "vaccination_id": vid})
	// Re-render from a fresh fetch so status, order and actions all
	// reflect the server's recomputation.
	return c.Redirect(listURL(petID, pageNum))
}

func transitionErrQuery(page int, err error) string {
	sep := "?"
	if page > 0 {
		sep = "&"
	}
	switch {
	case errors.Is(err, services.ErrNotUpcoming),
		errors.Is(err, services.ErrNotOverdue),
		errors.Is(err, services.ErrNotCompleted):
		return sep + "err=" + "This+action+is+no+longer+available+for+that+record"
	default:
		return sep + "err=" + "Could+not+update+the+record.+Please+try+again"
	}
}

func (h *VaccinationHandler) AddForm(c *fiber.Ctx) error {
	sess := currentSession(c)
	petID, ok := validate.ID(c.Params("id"))
	if !ok {
		return fiber.ErrNotFound
	}
	page, err := h.Vac.LoadPage(c.Context(), sess.Token, petID, 0)
	if err != nil {
		if authFailed(c, h.Auth, err) {
			return c.Redirect("/login")
		}
		return render(c, "vaccinations", fiber.Map{"PetID": petID, "Err": errMessage(err)})
	}
	if !h.Vac.CanAdd(page) {
		return c.Redirect("/pets/" + petID + "/vaccinations?msg=" + addGateMsg)
	}
	return render(c, "vaccination_form", fiber.Map{"PetID": petID})
}

func (h *VaccinationHandler) Add(c *fiber.Ctx) error {
	sess := currentSession(c)
	petID, ok := validate.ID(c.Params("id"))
	if !ok {
		return fiber.ErrNotFound
	}

	form := services.AddVaccinationForm{
		VaccineName: c.FormValue("vaccineName"),
		DoctorName:  c.FormValue("doctorName"),
		GivenDate:   c.FormValue("givenDate"),
		NextDueDate: c.FormValue("nextDueDate"),
	}

	var (
		fileName string
		file     io.Reader
	)
	if fh, err := c.FormFile("file"); err == nil && fh != nil {
		fileName = fh.Filename
		f, err := fh.Open()
		if err != nil {
			return render(c, "vaccination_form", fiber.Map{"PetID": petID, "Form": form, "Err": "Could not read the attachment"})
		}
		defer f.Close()
		file = f
	}

	today := time.Now().Format("2006-01-02")
	if errs := form.Validate(today, fileName); len(errs) > 0 {
		return render(c.Status(fiber.StatusBadRequest), "vaccination_form", fiber.Map{
			"PetID": petID, "Form": form, "FieldErrs": errs,
		})
	}

	rec, err := h.Vac.Add(c.Context(), sess.Token, petID, form, fileName, file)
	if err != nil {
		if authFailed(c, h.Auth, err) {
			return c.Redirect("/login")
		}
		if errors.Is(err, services.ErrDoseInProgress) {
			return c.Redirect("/pets/" + petID + "/vaccinations?msg=" + addGateMsg)
		}
		return render(c.Status(fiber.StatusBadRequest), "vaccination_form", fiber.Map{
			"PetID": petID, "Form": form, "Err": errMessage(err), "FieldErrs": fieldErrors(err),
		})
	}
	applog.Audit(c, "vaccination.add", map[string]any{"pet_id": petID, "vaccination_id": rec.ID})
	return c.Redirect("/pets/" + petID + "/vaccinations")
}

package handlers

import (
	"io"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"petwell/internal/api"
	applog "petwell/internal/log"
	"petwell/internal/services"
	"petwell/internal/validate"
)

const medicalHistoryPageSize = 10

type MedicalHistoryHandler struct {
	API  *api.Set
	Auth *services.AuthService
}

func (h *MedicalHistoryHandler) List(c *fiber.Ctx) error {
	sess := currentSession(c)
	petID, ok := validate.ID(c.Params("id"))
	if !ok {
		return fiber.ErrNotFound
	}
	pageNum, _ := strconv.Atoi(c.Query("page", "0"))
	if pageNum < 0 {
		pageNum = 0
	}

	page, err := h.API.MedicalHistory.Page(c.Context(), sess.Token, petID, pageNum, medicalHistoryPageSize)
	if err != nil {
		if authFailed(c, h.Auth, err) {
			return c.Redirect("/login")
		}
		applog.Error(c, "medhistory.page.fail", err, map[string]any{"pet_id": petID})
		return render(c, "medical_history", fiber.Map{"PetID": petID, "Err": errMessage(err)})
	}

	return render(c, "medical_history", fiber.Map{
		"PetID":    petID,
		"Page":     page,
		"PrevPage": pageNum - 1,
		"NextPage": pageNum + 1,
		"HasPrev":  pageNum > 0,
		"HasNext":  pageNum+1 < page.TotalPages,
	})
}

func (h *MedicalHistoryHandler) AddForm(c *fiber.Ctx) error {
	petID, ok := validate.ID(c.Params("id"))
	if !ok {
		return fiber.ErrNotFound
	}
	return render(c, "medical_history_form", fiber.Map{"PetID": petID})
}

// Add posts a visit record. Records are immutable once created, so this
// is the only write path for medical history.
func (h *MedicalHistoryHandler) Add(c *fiber.Ctx) error {
	sess := currentSession(c)
	petID, ok := validate.ID(c.Params("id"))
	if !ok {
		return fiber.ErrNotFound
	}

	fields := map[string]string{
		"petId":      petID,
		"visitDate":  c.FormValue("visitDate"),
		"doctorName": c.FormValue("doctorName"),
		"diagnosis":  c.FormValue("diagnosis"),
		"treatment":  c.FormValue("treatment"),
		"notes":      c.FormValue("notes"),
	}
	if v := c.FormValue("followUpDate"); v != "" {
		fields["followUpDate"] = v
	}

	fieldErrs := map[string]string{}
	if _, ok := validate.Date(fields["visitDate"]); !ok {
		fieldErrs["visitDate"] = "Visit date is required"
	}
	if _, ok := validate.Name(fields["doctorName"]); !ok {
		fieldErrs["doctorName"] = "Doctor name is required"
	}
	if fields["diagnosis"] == "" {
		fieldErrs["diagnosis"] = "Diagnosis is required"
	}
	if fields["treatment"] == "" {
		fieldErrs["treatment"] = "Treatment is required"
	}

	var (
		fileName string
		file     io.Reader
	)
	if fh, err := c.FormFile("file"); err == nil && fh != nil {
		fileName = fh.Filename
		if !validate.Attachment(fileName) {
			fieldErrs["file"] = "Attachment must be a pdf, jpg, jpeg or png file"
		} else {
			f, err := fh.Open()
			if err != nil {
				return render(c, "medical_history_form", fiber.Map{"PetID": petID, "Form": fields, "Err": "Could not read the attachment"})
			}
			defer f.Close()
			file = f
		}
	}

	if len(fieldErrs) > 0 {
		return render(c.Status(fiber.StatusBadRequest), "medical_history_form", fiber.Map{
			"PetID": petID, "Form": fields, "FieldErrs": fieldErrs,
		})
	}

	rec, err := h.API.MedicalHistory.Add(c.Context(), sess.Token, fields, fileName, file)
	if err != nil {
		if authFailed(c, h.Auth, err) {
			return c.Redirect("/login")
		}
		return render(c.Status(fiber.StatusBadRequest), "medical_history_form", fiber.Map{
			"PetID": petID, "Form": fields, "Err": errMessage(err), "FieldErrs": fieldErrors(err),
		})
	}
	applog.Audit(c, "medhistory.add", map[string]any{"pet_id": petID, "record_id": rec.ID})
	return c.Redirect("/pets/" + petID + "/medical-history")
}

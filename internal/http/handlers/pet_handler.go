package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"petwell/internal/api"
	"petwell/internal/domain"
	applog "petwell/internal/log"
	"petwell/internal/services"
	"petwell/internal/validate"
)

type PetHandler struct {
	API  *api.Set
	Auth *services.AuthService
}

func (h *PetHandler) Dashboard(c *fiber.Ctx) error {
	sess := currentSession(c)
	pets, err := h.API.Pets.List(c.Context(), sess.Token)
	if err != nil {
		if authFailed(c, h.Auth, err) {
			return c.Redirect("/login")
		}
		applog.Error(c, "pets.list.fail", err, nil)
		return render(c, "dashboard", fiber.Map{"Err": errMessage(err)})
	}
	return render(c, "dashboard", fiber.Map{"Pets": pets})
}

func (h *PetHandler) AddForm(c *fiber.Ctx) error {
	return render(c, "pet_form", fiber.Map{"Title": "Register a pet", "Action": "/pets/add"})
}

func (h *PetHandler) Add(c *fiber.Ctx) error {
	sess := currentSession(c)
	req, fieldErrs := petRequestFromForm(c)
	if len(fieldErrs) > 0 {
		return render(c.Status(fiber.StatusBadRequest), "pet_form", fiber.Map{
			"Title": "Register a pet", "Action": "/pets/add", "Form": req, "FieldErrs": fieldErrs,
		})
	}

	pet, err := h.API.Pets.Register(c.Context(), sess.Token, req)
	if err != nil {
		if authFailed(c, h.Auth, err) {
			return c.Redirect("/login")
		}
		return render(c.Status(fiber.StatusBadRequest), "pet_form", fiber.Map{
			"Title": "Register a pet", "Action": "/pets/add",
			"Form": req, "Err": errMessage(err), "FieldErrs": fieldErrors(err),
		})
	}
	applog.Audit(c, "pet.register", map[string]any{"pet_id": pet.ID, "name": pet.Name})
	return c.Redirect("/pets/" + pet.ID)
}

func (h *PetHandler) Details(c *fiber.Ctx) error {
	sess := currentSession(c)
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return fiber.ErrNotFound
	}
	pet, err := h.API.Pets.Get(c.Context(), sess.Token, id)
	if err != nil {
		if authFailed(c, h.Auth, err) {
			return c.Redirect("/login")
		}
		if ae, ok := api.AsAPIError(err); ok && ae.IsNotFound() {
			return fiber.ErrNotFound
		}
		applog.Error(c, "pet.get.fail", err, map[string]any{"pet_id": id})
		return render(c, "dashboard", fiber.Map{"Err": errMessage(err)})
	}
	return render(c, "pet_details", fiber.Map{"Pet": pet})
}

func (h *PetHandler) EditForm(c *fiber.Ctx) error {
	sess := currentSession(c)
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return fiber.ErrNotFound
	}
	pet, err := h.API.Pets.Get(c.Context(), sess.Token, id)
	if err != nil {
		if authFailed(c, h.Auth, err) {
			return c.Redirect("/login")
		}
		return render(c, "dashboard", fiber.Map{"Err": errMessage(err)})
	}
	form := domain.PetRequest{
		Name: pet.Name, Type: pet.Type, Breed: pet.Breed, Age: pet.Age,
		Gender: pet.Gender, Weight: pet.Weight, Bio: pet.Bio, ImageURL: pet.ImageURL,
	}
	return render(c, "pet_form", fiber.Map{
		"Title": "Edit " + pet.Name, "Action": "/pets/" + pet.ID + "/edit", "Form": form,
	})
}

func (h *PetHandler) Edit(c *fiber.Ctx) error {
	sess := currentSession(c)
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return fiber.ErrNotFound
	}
	req, fieldErrs := petRequestFromForm(c)
	if len(fieldErrs) > 0 {
		return render(c.Status(fiber.StatusBadRequest), "pet_form", fiber.Map{
			"Title": "Edit pet", "Action": "/pets/" + id + "/edit", "Form": req, "FieldErrs": fieldErrs,
		})
	}

	pet, err := h.API.Pets.Update(c.Context(), sess.Token, id, req)
	if err != nil {
		if authFailed(c, h.Auth, err) {
			return c.Redirect("/login")
		}
		return render(c.Status(fiber.StatusBadRequest), "pet_form", fiber.Map{
			"Title": "Edit pet", "Action": "/pets/" + id + "/edit",
			"Form": req, "Err": errMessage(err), "FieldErrs": fieldErrors(err),
		})
	}
	applog.Audit(c, "pet.update", map[string]any{"pet_id": pet.ID})
	return c.Redirect("/pets/" + pet.ID)
}

// DeleteConfirm shows the confirmation page; the destructive call only
// happens on the follow-up POST.
func (h *PetHandler) DeleteConfirm(c *fiber.Ctx) error {
	sess := currentSession(c)
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return fiber.ErrNotFound
	}
	pet, err := h.API.Pets.Get(c.Context(), sess.Token, id)
	if err != nil {
		if authFailed(c, h.Auth, err) {
			return c.Redirect("/login")
		}
		return render(c, "dashboard", fiber.Map{"Err": errMessage(err)})
	}
	return render(c, "pet_delete", fiber.Map{"Pet": pet})
}

func (h *PetHandler) Delete(c *fiber.Ctx) error {
	sess := currentSession(c)
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return fiber.ErrNotFound
	}
	if err := h.API.Pets.Delete(c.Context(), sess.Token, id); err != nil {
		if authFailed(c, h.Auth, err) {
			return c.Redirect("/login")
		}
		applog.Error(c, "pet.delete.fail", err, map[string]any{"pet_id": id})
		return render(c, "dashboard", fiber.Map{"Err": errMessage(err)})
	}
	applog.Audit(c, "pet.delete", map[string]any{"pet_id": id})
	return c.Redirect("/dashboard")
}

// HealthReport streams the backend-generated PDF to the browser.
func (h *PetHandler) HealthReport(c *fiber.Ctx) error {
	sess := currentSession(c)
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return fiber.ErrNotFound
	}
	body, contentType, err := h.API.Reports.PetHealthReport(c.Context(), sess.Token, id)
	if err != nil {
		if authFailed(c, h.Auth, err) {
			return c.Redirect("/login")
		}
		applog.Error(c, "report.download.fail", err, map[string]any{"pet_id": id})
		return render(c, "pet_details", fiber.Map{"Err": errMessage(err)})
	}
	if contentType == "" {
		contentType = "application/pdf"
	}
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="pet-health-report.pdf"`)
	applog.Info(c, "report.download", map[string]any{"pet_id": id, "bytes": len(body)})
	return c.Send(body)
}

func petRequestFromForm(c *fiber.Ctx) (domain.PetRequest, map[string]string) {
	age, _ := strconv.Atoi(c.FormValue("age"))
	weight, _ := strconv.ParseFloat(c.FormValue("weight"), 64)
	req := domain.PetRequest{
		Name:     c.FormValue("name"),
		Type:     c.FormValue("type"),
		Breed:    c.FormValue("breed"),
		Age:      age,
		Gender:   c.FormValue("gender"),
		Weight:   weight,
		Bio:      c.FormValue("bio"),
		ImageURL: c.FormValue("imageUrl"),
	}
	if err := validate.Struct(req); err != nil {
		return req, validate.StructErrors(err)
	}
	return req, nil
}

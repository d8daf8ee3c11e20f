package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/MarcinProgramista/smart-inventory-ai-backend/internal/normalize"
	"github.com/MarcinProgramista/smart-inventory-ai-backend/internal/repository"
	"github.com/MarcinProgramista/smart-inventory-ai-backend/internal/validate"
)

// ContactHandler serves the contact endpoints.
type ContactHandler struct {
	Contacts *repository.ContactRepo
}

func NewContactHandler(contacts *repository.ContactRepo) *ContactHandler {
	return &ContactHandler{Contacts: contacts}
}

// List returns a user's contacts.
func (h *ContactHandler) List(c echo.Context) error {
	userID, ok := userIDQuery(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "user_id required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	contacts, err := h.Contacts.ListByUser(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}
	return c.JSON(http.StatusOK, contacts)
}

// Get returns one contact by id.
func (h *ContactHandler) Get(c echo.Context) error {
	id, ok := idParam(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	contact, err := h.Contacts.GetByID(ctx, id)
	if err != nil {
		return writeStoreError(c, err, "Contact not found", "", "")
	}
	return c.JSON(http.StatusOK, contact)
}

// Search runs the advanced contact search: free text across the person's
// fields plus phone/email presence filters, allow-listed sorting and
// pagination.
func (h *ContactHandler) Search(c echo.Context) error {
	userID, ok := userIDQuery(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "user_id required"})
	}
	page, limit := pageQuery(c)

	f := repository.ContactFilter{
		UserID:   userID,
		Q:        strings.TrimSpace(c.QueryParam("q")),
		HasPhone: boolQuery(c, "has_phone"),
		HasEmail: boolQuery(c, "has_email"),
		Sort:     c.QueryParam("sort"),
		Dir:      c.QueryParam("dir"),
		Page:     page,
		Limit:    limit,
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	results, total, err := h.Contacts.Search(ctx, f)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"page":    page,
		"limit":   limit,
		"total":   total,
		"results": results,
	})
}

// contactRecord converts a validated input into the repository record.
func contactRecord(in normalize.ContactInput) repository.ContactRecord {
	rec := repository.ContactRecord{
		LastName:    in.LastName,
		Role:        in.Role,
		MobilePhone: in.MobilePhone,
		Email:       in.Email,
	}
	if in.UserID.Present {
		rec.UserID = in.UserID.Int64()
	}
	if in.FirstName != nil {
		rec.FirstName = *in.FirstName
	}
	return rec
}

// Create normalizes, validates and inserts a contact.
func (h *ContactHandler) Create(c echo.Context) error {
	raw, err := bindRaw(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	in := normalize.Contact(raw)
	if errs := validate.Contact(in, false); len(errs) > 0 {
		return writeErrors(c, errs.Messages())
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	contact, err := h.Contacts.Create(ctx, contactRecord(in))
	if err != nil {
		return writeStoreError(c, err,
			"Contact not found", "Email already in use", "Referenced user does not exist")
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"created": true,
		"contact": contact,
		"message": "Contact created",
	})
}

// Update applies a partial contact update: the stored row is merged with
// the present payload fields after update-mode validation.
func (h *ContactHandler) Update(c echo.Context) error {
	id, ok := idParam(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	raw, err := bindRaw(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	in := normalize.Contact(raw)
	if errs := validate.Contact(in, true); len(errs) > 0 {
		return writeErrors(c, errs.Messages())
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	existing, err := h.Contacts.GetByID(ctx, id)
	if err != nil {
		return writeStoreError(c, err, "Contact not found", "", "")
	}

	rec := repository.ContactRecord{
		UserID:      existing.UserID,
		FirstName:   existing.FirstName,
		LastName:    existing.LastName,
		Role:        existing.Role,
		MobilePhone: existing.MobilePhone,
		Email:       existing.Email,
	}
	if in.FirstName != nil {
		rec.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		rec.LastName = in.LastName
	}
	if in.Role != nil {
		rec.Role = in.Role
	}
	if in.MobilePhone != nil {
		rec.MobilePhone = in.MobilePhone
	}
	if in.Email != nil {
		rec.Email = in.Email
	}

	contact, err := h.Contacts.Update(ctx, id, rec)
	if err != nil {
		return writeStoreError(c, err,
			"Contact not found", "Email already in use", "invalid reference")
	}
	return c.JSON(http.StatusOK, echo.Map{
		"updated": true,
		"contact": contact,
		"message": "Contact updated",
	})
}

// Delete removes a contact; linked suppliers keep a NULL contact.
func (h *ContactHandler) Delete(c echo.Context) error {
	id, ok := idParam(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	contact, err := h.Contacts.Delete(ctx, id)
	if err != nil {
		return writeStoreError(c, err, "Contact not found", "", "")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "deleted": contact})
}

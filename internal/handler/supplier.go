package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/MarcinProgramista/smart-inventory-ai-backend/internal/normalize"
	"github.com/MarcinProgramista/smart-inventory-ai-backend/internal/repository"
	"github.com/MarcinProgramista/smart-inventory-ai-backend/internal/validate"
)

// SupplierHandler serves the supplier endpoints.
type SupplierHandler struct {
	Suppliers *repository.SupplierRepo
}

func NewSupplierHandler(suppliers *repository.SupplierRepo) *SupplierHandler {
	return &SupplierHandler{Suppliers: suppliers}
}

// List returns a user's suppliers.
func (h *SupplierHandler) List(c echo.Context) error {
	userID, ok := userIDQuery(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "user_id required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	suppliers, err := h.Suppliers.ListByUser(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}
	return c.JSON(http.StatusOK, suppliers)
}

// Get returns one supplier by id.
func (h *SupplierHandler) Get(c echo.Context) error {
	id, ok := idParam(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	supplier, err := h.Suppliers.GetByID(ctx, id)
	if err != nil {
		return writeStoreError(c, err, "Supplier not found", "", "")
	}
	return c.JSON(http.StatusOK, supplier)
}

// Search runs the advanced supplier search: free text over the supplier
// and its linked contact, exact city/country narrowing, contact presence,
// allow-listed sorting and pagination.
func (h *SupplierHandler) Search(c echo.Context) error {
	userID, ok := userIDQuery(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "user_id required"})
	}
	page, limit := pageQuery(c)

	f := repository.SupplierFilter{
		UserID:     userID,
		Q:          strings.TrimSpace(c.QueryParam("q")),
		City:       strings.TrimSpace(c.QueryParam("city")),
		Country:    strings.TrimSpace(c.QueryParam("country")),
		HasContact: boolQuery(c, "has_contact"),
		Sort:       c.QueryParam("sort"),
		Dir:        c.QueryParam("dir"),
		Page:       page,
		Limit:      limit,
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	results, total, err := h.Suppliers.Search(ctx, f)
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

func supplierRecord(in normalize.SupplierInput) repository.SupplierRecord {
	rec := repository.SupplierRecord{
		Street:     in.Street,
		PostalCode: in.PostalCode,
		City:       in.City,
	}
	if in.UserID.Present {
		rec.UserID = in.UserID.Int64()
	}
	if in.Name != nil {
		rec.Name = *in.Name
	}
	if in.ContactID.Present && !in.ContactID.NaN() {
		id := in.ContactID.Int64()
		rec.ContactID = &id
	}
	if in.Country != nil {
		rec.Country = *in.Country
	}
	return rec
}

// Create normalizes, validates and inserts a supplier.
func (h *SupplierHandler) Create(c echo.Context) error {
	raw, err := bindRaw(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	in := normalize.Supplier(raw)
	if errs := validate.Supplier(in, false); len(errs) > 0 {
		return writeErrors(c, errs.Messages())
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	supplier, err := h.Suppliers.Create(ctx, supplierRecord(in))
	if err != nil {
		return writeStoreError(c, err,
			"Supplier not found", "Supplier name already exists", "Referenced contact does not exist")
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"created":  true,
		"supplier": supplier,
		"message":  "Supplier created",
	})
}

// Update applies a partial supplier update: the stored row is merged with
// the present payload fields after update-mode validation.
func (h *SupplierHandler) Update(c echo.Context) error {
	id, ok := idParam(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	raw, err := bindRaw(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	in := normalize.Supplier(raw)
	if errs := validate.Supplier(in, true); len(errs) > 0 {
		return writeErrors(c, errs.Messages())
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	existing, err := h.Suppliers.GetByID(ctx, id)
	if err != nil {
		return writeStoreError(c, err, "Supplier not found", "", "")
	}

	rec := repository.SupplierRecord{
		UserID:     existing.UserID,
		Name:       existing.Name,
		ContactID:  existing.ContactID,
		Street:     existing.Street,
		PostalCode: existing.PostalCode,
		City:       existing.City,
		Country:    existing.Country,
	}
	if in.Name != nil {
		rec.Name = *in.Name
	}
	if in.ContactID.Present && !in.ContactID.NaN() {
		cid := in.ContactID.Int64()
		rec.ContactID = &cid
	}
	if in.Street != nil {
		rec.Street = in.Street
	}
	if in.PostalCode != nil {
		rec.PostalCode = in.PostalCode
	}
	if in.City != nil {
		rec.City = in.City
	}
	if _, present := raw["country"]; present && in.Country != nil {
		rec.Country = *in.Country
	}

	supplier, err := h.Suppliers.Update(ctx, id, rec)
	if err != nil {
		return writeStoreError(c, err,
			"Supplier not found", "Supplier name already exists", "Referenced contact does not exist")
	}
	return c.JSON(http.StatusOK, echo.Map{
		"updated":  true,
		"supplier": supplier,
		"message":  "Supplier updated",
	})
}

// Delete removes a supplier and returns the deleted row.  The store
// refuses while items still reference it.
func (h *SupplierHandler) Delete(c echo.Context) error {
	id, ok := idParam(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	supplier, err := h.Suppliers.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrInUse) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "Supplier still has items and cannot be deleted"})
		}
		return writeStoreError(c, err, "Supplier not found", "", "")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "deleted": supplier})
}

package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/MarcinProgramista/smart-inventory-ai-backend/internal/normalize"
	"github.com/MarcinProgramista/smart-inventory-ai-backend/internal/repository"
	"github.com/MarcinProgramista/smart-inventory-ai-backend/internal/validate"
)

// ItemHandler serves the stock item endpoints.  Creation is an upsert on
// the natural key (user_id, supplier_id, name): hitting an existing row
// adds the incoming quantity instead of failing.
type ItemHandler struct {
	Items *repository.ItemRepo
}

func NewItemHandler(items *repository.ItemRepo) *ItemHandler {
	return &ItemHandler{Items: items}
}

// List returns a user's items, newest first.
func (h *ItemHandler) List(c echo.Context) error {
	userID, ok := userIDQuery(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "user_id required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	items, err := h.Items.ListByUser(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}
	return c.JSON(http.StatusOK, items)
}

// Get returns one item joined with its display names.
func (h *ItemHandler) Get(c echo.Context) error {
	id, ok := idParam(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	item, err := h.Items.GetByID(ctx, id)
	if err != nil {
		return writeStoreError(c, err, "Item not found", "", "")
	}
	return c.JSON(http.StatusOK, item)
}

// Search runs the advanced item search: free text over name and
// description, a derived stock-status filter, exact category and supplier
// narrowing, allow-listed sorting and pagination.
func (h *ItemHandler) Search(c echo.Context) error {
	userID, ok := userIDQuery(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "user_id required"})
	}
	page, limit := pageQuery(c)

	f := repository.ItemFilter{
		UserID:     userID,
		Q:          strings.TrimSpace(c.QueryParam("q")),
		Stock:      c.QueryParam("stock"),
		CategoryID: int64Query(c, "category_id"),
		SupplierID: int64Query(c, "supplier_id"),
		Sort:       c.QueryParam("sort"),
		Dir:        c.QueryParam("dir"),
		Page:       page,
		Limit:      limit,
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	items, total, err := h.Items.Search(ctx, f)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"page":  page,
		"limit": limit,
		"total": total,
		"items": items,
	})
}

func itemRecord(in normalize.ItemInput) repository.ItemRecord {
	rec := repository.ItemRecord{
		Description: in.Description,
	}
	if in.UserID.Present {
		rec.UserID = in.UserID.Int64()
	}
	if in.CategoryID.Present && !in.CategoryID.NaN() {
		id := in.CategoryID.Int64()
		rec.CategoryID = &id
	}
	if in.SupplierID.Present {
		rec.SupplierID = in.SupplierID.Int64()
	}
	if in.Name != nil {
		rec.Name = *in.Name
	}
	if in.Quantity.Present {
		rec.Quantity = in.Quantity.Value
	}
	if in.MinQuantity.Present {
		rec.MinQuantity = in.MinQuantity.Value
	}
	if in.Price.Present {
		rec.Price = in.Price.Value
	}
	return rec
}

// Create validates the payload and upserts the item.  A fresh row answers
// 201; a natural-key hit answers 200 with the merged row, the incoming
// quantity already added.
func (h *ItemHandler) Create(c echo.Context) error {
	raw, err := bindRaw(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	in := normalize.Item(raw)
	if errs := validate.Item(in, false); len(errs) > 0 {
		return writeErrors(c, errs.Messages())
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	item, created, err := h.Items.Upsert(ctx, itemRecord(in))
	if err != nil {
		return writeStoreError(c, err,
			"Item not found", "Duplicate item", "Referenced supplier or category does not exist")
	}
	if created {
		return c.JSON(http.StatusCreated, echo.Map{
			"created": true,
			"item":    item,
			"message": "Item created",
		})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"created": false,
		"item":    item,
		"message": "Quantity added to existing item",
	})
}

// Update applies a partial item update.  Quantity is replaced, never
// merged: merging belongs to the Create path only.
func (h *ItemHandler) Update(c echo.Context) error {
	id, ok := idParam(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	raw, err := bindRaw(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	in := normalize.Item(raw)
	if errs := validate.Item(in, true); len(errs) > 0 {
		return writeErrors(c, errs.Messages())
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	existing, err := h.Items.GetByID(ctx, id)
	if err != nil {
		return writeStoreError(c, err, "Item not found", "", "")
	}

	rec := repository.ItemRecord{
		UserID:      existing.UserID,
		CategoryID:  existing.CategoryID,
		SupplierID:  existing.SupplierID,
		Name:        existing.Name,
		Quantity:    existing.Quantity,
		MinQuantity: existing.MinQuantity,
		Price:       existing.Price,
		Description: existing.Description,
	}
	if in.CategoryID.Present && !in.CategoryID.NaN() {
		cid := in.CategoryID.Int64()
		rec.CategoryID = &cid
	}
	if in.SupplierID.Present && !in.SupplierID.NaN() {
		rec.SupplierID = in.SupplierID.Int64()
	}
	if in.Name != nil {
		rec.Name = *in.Name
	}
	if in.Quantity.Present {
		rec.Quantity = in.Quantity.Value
	}
	if in.MinQuantity.Present {
		rec.MinQuantity = in.MinQuantity.Value
	}
	if in.Price.Present {
		rec.Price = in.Price.Value
	}
	if in.Description != nil {
		rec.Description = in.Description
	}

	item, err := h.Items.Update(ctx, id, rec)
	if err != nil {
		return writeStoreError(c, err,
			"Item not found",
			"An item with this name already exists for the supplier",
			"Referenced supplier or category does not exist")
	}
	return c.JSON(http.StatusOK, echo.Map{
		"updated": true,
		"item":    item,
		"message": "Item updated",
	})
}

// Delete removes an item.
func (h *ItemHandler) Delete(c echo.Context) error {
	id, ok := idParam(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Items.Delete(ctx, id); err != nil {
		return writeStoreError(c, err, "Item not found", "", "")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Item deleted"})
}

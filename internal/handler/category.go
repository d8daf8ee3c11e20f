package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/MarcinProgramista/smart-inventory-ai-backend/internal/repository"
)

// CategoryHandler serves the per-user category endpoints.
type CategoryHandler struct {
	Categories *repository.CategoryRepo
}

func NewCategoryHandler(categories *repository.CategoryRepo) *CategoryHandler {
	return &CategoryHandler{Categories: categories}
}

// List returns a user's categories.
func (h *CategoryHandler) List(c echo.Context) error {
	userID, ok := userIDQuery(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "user_id is required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	cats, err := h.Categories.ListByUser(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}
	return c.JSON(http.StatusOK, cats)
}

type categoryReq struct {
	ID     int64  `json:"id"`
	UserID int64  `json:"user_id"`
	Name   string `json:"name"`
}

// Create adds a category for the user.
func (h *CategoryHandler) Create(c echo.Context) error {
	var req categoryReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.UserID <= 0 || req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "user_id and name required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	cat, err := h.Categories.Create(ctx, req.UserID, req.Name)
	if err != nil {
		return writeStoreError(c, err,
			"Category not found", "Category already exists", "Referenced user does not exist")
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"created":  true,
		"category": cat,
		"message":  "Category created",
	})
}

// Update renames a category.  Like creation the route addresses no row;
// the id travels in the body.
func (h *CategoryHandler) Update(c echo.Context) error {
	var req categoryReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.ID <= 0 || req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "id and name required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	cat, err := h.Categories.Rename(ctx, req.ID, req.Name)
	if err != nil {
		return writeStoreError(c, err,
			"Category not found", "Category already exists", "invalid reference")
	}
	return c.JSON(http.StatusOK, echo.Map{
		"updated":  true,
		"category": cat,
		"message":  "Category updated",
	})
}

// Delete removes a category; the store nulls out item references.
func (h *CategoryHandler) Delete(c echo.Context) error {
	id, ok := idParam(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	cat, err := h.Categories.Delete(ctx, id)
	if err != nil {
		return writeStoreError(c, err, "Category not found", "", "")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "deleted": cat})
}

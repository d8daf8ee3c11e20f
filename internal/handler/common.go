package handler // handler defines http handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/MarcinProgramista/smart-inventory-ai-backend/internal/query"
	"github.com/MarcinProgramista/smart-inventory-ai-backend/internal/repository"
)

// reqCtx bounds every store call to a per-request timeout.
func reqCtx(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), 5*time.Second)
}

// bindRaw decodes the JSON body into an untyped map so the normalization
// layer can coerce each field itself, preserving the difference between an
// absent key and an empty value.
func bindRaw(c echo.Context) (map[string]any, error) {
	raw := map[string]any{}
	if err := c.Bind(&raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// idParam parses the numeric :id path parameter.
func idParam(c echo.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	return id, err == nil && id > 0
}

// userIDQuery parses the mandatory ?user_id query parameter used by list
// and search endpoints.
func userIDQuery(c echo.Context) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(c.QueryParam("user_id")), 10, 64)
	return id, err == nil && id > 0
}

// pageQuery reads page/limit with the builder's defaults and caps applied,
// so the envelope reports the values actually used.
func pageQuery(c echo.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	limit, _ = strconv.Atoi(c.QueryParam("limit"))
	if limit < 1 {
		limit = query.DefaultLimit
	}
	if limit > query.MaxLimit {
		limit = query.MaxLimit
	}
	return page, limit
}

// int64Query parses an optional numeric query parameter, nil when absent
// or unparseable.
func int64Query(c echo.Context, key string) *int64 {
	s := strings.TrimSpace(c.QueryParam(key))
	if s == "" {
		return nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil
	}
	return &n
}

// boolQuery parses an optional boolean query parameter, nil when absent or
// unparseable.
func boolQuery(c echo.Context, key string) *bool {
	s := strings.TrimSpace(c.QueryParam(key))
	if s == "" {
		return nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return nil
	}
	return &b
}

// writeErrors renders the accumulated validation failures; the client gets
// every message in one round trip.
func writeErrors(c echo.Context, msgs []string) error {
	return c.JSON(http.StatusBadRequest, echo.Map{"errors": msgs})
}

// writeStoreError maps the repository sentinels onto the error envelope.
// notFound, conflict and reference carry the resource-specific messages;
// anything unrecognized degrades to a generic 500.
func writeStoreError(c echo.Context, err error, notFound, conflict, reference string) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": notFound})
	case errors.Is(err, repository.ErrDuplicate):
		return c.JSON(http.StatusConflict, echo.Map{"error": conflict})
	case errors.Is(err, repository.ErrMissingReference):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": reference})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
}

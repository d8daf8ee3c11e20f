package middleware

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// RequireDB gates API routes behind a cheap store liveness check so a dead
// database surfaces as 503 before any work happens.  This is the only
// error class clients are advised to retry.
func RequireDB(db *sql.DB, lg *zap.SugaredLogger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
			defer cancel()
			if err := db.PingContext(ctx); err != nil {
				lg.Errorw("database unavailable", "error", err)
				return c.JSON(http.StatusServiceUnavailable, echo.Map{
					"status":  "error",
					"message": "Database temporarily unavailable. Try again later.",
				})
			}
			return next(c)
		}
	}
}

package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/MarcinProgramista/smart-inventory-ai-backend/internal/config"
	"github.com/MarcinProgramista/smart-inventory-ai-backend/internal/repository"
	"github.com/MarcinProgramista/smart-inventory-ai-backend/internal/utils"
)

// refreshCookie is the name of the HTTP-only cookie carrying the refresh
// token.  The token itself never appears in a response body.
const refreshCookie = "refresh_token"

// AuthHandler implements registration, login and the refresh-token
// lifecycle.  The server stores only a SHA-256 hash of the active refresh
// token per user, overwritten on every login, so one session per user is
// valid at a time.
type AuthHandler struct {
	Cfg   config.Config
	Users *repository.UserRepo
	Log   *zap.SugaredLogger
}

func NewAuthHandler(cfg config.Config, users *repository.UserRepo, lg *zap.SugaredLogger) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: users, Log: lg}
}

type registerReq struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Password2 string `json:"password2"`
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates a user together with its default category set.  The
// repository runs both inserts in one transaction: a half-registered
// account is never observable.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "All fields are required"})
	}
	if req.Password != req.Password2 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Passwords do not match"})
	}
	if len(req.Password) < 6 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Password must be at least 6 characters"})
	}

	hash, err := utils.HashPassword(req.Password, h.Cfg.BcryptCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Registration failed"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	id, err := h.Users.Register(ctx, req.Name, req.Email, hash)
	if err != nil {
		h.Log.Errorw("registration failed", "email", req.Email, "error", err)
		return writeStoreError(c, err,
			"user not found", "Email already in use", "invalid reference")
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "User " + req.Email + " registered successfully",
		"userId":  id,
	})
}

// Login verifies credentials, mints the access/refresh token pair, stores
// the refresh token's hash (revoking any prior session) and delivers the
// refresh token as an HTTP-only cookie.  Failures are reported uniformly
// so the response does not reveal whether the email exists.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Email and password are required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid email or password"})
	}
	if !utils.VerifyPassword(u.Password, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid email or password"})
	}

	access, err := utils.NewAccessToken(h.Cfg.AccessSecret, u.ID, u.Name, u.Email, h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Login failed"})
	}
	refresh, err := utils.NewRefreshToken(h.Cfg.RefreshSecret, u.ID, h.Cfg.RefreshTTLDays)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Login failed"})
	}
	if err := h.Users.StoreRefreshHash(ctx, u.ID, utils.HashRefreshRaw(refresh.Raw)); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Login failed"})
	}

	h.setRefreshCookie(c, refresh.Raw, refresh.Exp)
	return c.JSON(http.StatusOK, echo.Map{
		"accessToken": access.Token,
		"user_id":     u.ID,
		"name":        u.Name,
	})
}

// Refresh exchanges a valid refresh-token cookie for a fresh access token.
// Two independent checks must both pass: the cookie's hash matches a
// stored hash, and the token's signature, expiry, issuer and audience
// verify.  The refresh token itself is not rotated here; it stays valid
// until expiry or logout.
func (h *AuthHandler) Refresh(c echo.Context) error {
	ck, err := c.Cookie(refreshCookie)
	if err != nil || ck.Value == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "No refresh token provided"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	u, err := h.Users.FindByRefreshHash(ctx, utils.HashRefreshRaw(ck.Value))
	if err != nil {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "Invalid refresh token"})
	}
	if _, err := utils.VerifyRefreshToken(h.Cfg.RefreshSecret, ck.Value); err != nil {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "Invalid refresh token"})
	}

	access, err := utils.NewAccessToken(h.Cfg.AccessSecret, u.ID, u.Name, u.Email, h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"accessToken": access.Token})
}

// Logout revokes the session named by the refresh-token cookie.  It is
// idempotent and deliberately uninformative: whether or not the cookie
// matched a user, the stored hash is cleared when it did, the cookie is
// cleared client-side and the response is 204.
func (h *AuthHandler) Logout(c echo.Context) error {
	ck, err := c.Cookie(refreshCookie)
	if err != nil || ck.Value == "" {
		return c.NoContent(http.StatusNoContent)
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if u, err := h.Users.FindByRefreshHash(ctx, utils.HashRefreshRaw(ck.Value)); err == nil {
		if err := h.Users.ClearRefreshHash(ctx, u.ID); err != nil {
			h.Log.Errorw("clearing refresh hash failed", "user_id", u.ID, "error", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
		}
	}

	h.clearRefreshCookie(c)
	return c.NoContent(http.StatusNoContent)
}

// setRefreshCookie delivers the raw refresh token as an HTTP-only cookie.
// Outside production SameSite relaxes to Lax and Secure is off so local
// HTTP frontends keep working; production uses None+Secure for cross-site
// frontends over HTTPS.
func (h *AuthHandler) setRefreshCookie(c echo.Context, token string, exp time.Time) {
	prod := h.Cfg.Env == "production"
	ck := &http.Cookie{
		Name:     refreshCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   prod,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(time.Until(exp).Seconds()),
	}
	if prod {
		ck.SameSite = http.SameSiteNoneMode
	}
	c.SetCookie(ck)
}

func (h *AuthHandler) clearRefreshCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     refreshCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

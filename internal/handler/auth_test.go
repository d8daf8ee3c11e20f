package handler

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/MarcinProgramista/smart-inventory-ai-backend/internal/config"
	"github.com/MarcinProgramista/smart-inventory-ai-backend/internal/repository"
	"github.com/MarcinProgramista/smart-inventory-ai-backend/internal/utils"
)

func testConfig() config.Config {
	return config.Config{
		Env:            "test",
		AccessSecret:   "access-secret",
		RefreshSecret:  "refresh-secret",
		AccessTTLMin:   15,
		RefreshTTLDays: 7,
		BcryptCost:     4,
	}
}

func newAuthHandler(t *testing.T) (*AuthHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewAuthHandler(testConfig(), repository.NewUserRepo(db), zap.NewNop().Sugar()), mock
}

func duplicateErr() error {
	return &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}
}

func missingRefErr() error {
	return &mysql.MySQLError{Number: 1452, Message: "FK constraint fails"}
}

// doJSONWithID is doJSON for routes addressing a row by its :id parameter.
func doJSONWithID(t *testing.T, h echo.HandlerFunc, method, path, id, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(id)
	require.NoError(t, h(c))
	return rec
}

func userRow(id int64, name, email, passwordHash string, tokenHash *string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "name", "email", "password", "token", "role_id", "created_at", "updated_at",
	}).AddRow(id, name, email, passwordHash, tokenHash, 2, now, now)
}

func doJSON(t *testing.T, h echo.HandlerFunc, method, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	require.NoError(t, h(e.NewContext(req, rec)))
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	out := map[string]any{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestRegisterValidatesPayload(t *testing.T) {
	h, _ := newAuthHandler(t)

	rec := doJSON(t, h.Register, http.MethodPost, "/api/register",
		`{"name":"","email":"a@b.io","password":"secret1","password2":"secret1"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "All fields are required", decodeBody(t, rec)["error"])

	rec = doJSON(t, h.Register, http.MethodPost, "/api/register",
		`{"name":"Anna","email":"a@b.io","password":"secret1","password2":"other"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Passwords do not match", decodeBody(t, rec)["error"])

	rec = doJSON(t, h.Register, http.MethodPost, "/api/register",
		`{"name":"Anna","email":"a@b.io","password":"abc","password2":"abc"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Password must be at least 6 characters", decodeBody(t, rec)["error"])
}

func TestRegisterCreatesUserAndSeedsCategories(t *testing.T) {
	h, mock := newAuthHandler(t)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO users`).
		WithArgs("Anna", "anna@example.com", sqlmock.AnyArg(), 2).
		WillReturnResult(sqlmock.NewResult(11, 1))
	mock.ExpectExec(`INSERT INTO categories .+ FROM category_default`).
		WithArgs(int64(11)).
		WillReturnResult(sqlmock.NewResult(0, 6))
	mock.ExpectCommit()

	rec := doJSON(t, h.Register, http.MethodPost, "/api/register",
		`{"name":"Anna","email":"Anna@Example.com","password":"secret1","password2":"secret1"}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "User anna@example.com registered successfully", body["message"])
	assert.Equal(t, float64(11), body["userId"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegisterDuplicateEmail(t *testing.T) {
	h, mock := newAuthHandler(t)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO users`).
		WithArgs("Anna", "anna@example.com", sqlmock.AnyArg(), 2).
		WillReturnError(duplicateErr())
	mock.ExpectRollback()

	rec := doJSON(t, h.Register, http.MethodPost, "/api/register",
		`{"name":"Anna","email":"anna@example.com","password":"secret1","password2":"secret1"}`)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "Email already in use", decodeBody(t, rec)["error"])
}

func TestLoginIssuesTokenPairAndCookie(t *testing.T) {
	h, mock := newAuthHandler(t)

	hash, err := utils.HashPassword("s3cret!", 4)
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT .+ FROM users WHERE email=\?`).
		WithArgs("anna@example.com").
		WillReturnRows(userRow(11, "Anna", "anna@example.com", hash, nil))
	mock.ExpectExec(`UPDATE users SET token=\? WHERE id=\?`).
		WithArgs(sqlmock.AnyArg(), int64(11)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	rec := doJSON(t, h.Login, http.MethodPost, "/api/auth/login",
		`{"email":"anna@example.com","password":"s3cret!"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, float64(11), body["user_id"])
	assert.Equal(t, "Anna", body["name"])

	// The access token in the body must verify against the access secret.
	claims, err := utils.ParseAccessToken("access-secret", body["accessToken"].(string))
	require.NoError(t, err)
	assert.Equal(t, int64(11), claims.UserID)

	// The refresh token travels only in an HTTP-only cookie.
	res := rec.Result()
	var refresh *http.Cookie
	for _, ck := range res.Cookies() {
		if ck.Name == "refresh_token" {
			refresh = ck
		}
	}
	require.NotNil(t, refresh)
	assert.True(t, refresh.HttpOnly)
	assert.NotEmpty(t, refresh.Value)
	assert.NotContains(t, rec.Body.String(), refresh.Value)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoginUniformFailures(t *testing.T) {
	h, mock := newAuthHandler(t)

	// Unknown email and wrong password must be indistinguishable.
	mock.ExpectQuery(`SELECT .+ FROM users WHERE email=\?`).
		WithArgs("ghost@example.com").
		WillReturnError(sql.ErrNoRows)
	rec := doJSON(t, h.Login, http.MethodPost, "/api/auth/login",
		`{"email":"ghost@example.com","password":"whatever"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	unknownBody := rec.Body.String()

	hash, err := utils.HashPassword("right", 4)
	require.NoError(t, err)
	mock.ExpectQuery(`SELECT .+ FROM users WHERE email=\?`).
		WithArgs("anna@example.com").
		WillReturnRows(userRow(11, "Anna", "anna@example.com", hash, nil))
	rec = doJSON(t, h.Login, http.MethodPost, "/api/auth/login",
		`{"email":"anna@example.com","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, unknownBody, rec.Body.String())
}

func TestRefreshRequiresCookie(t *testing.T) {
	h, _ := newAuthHandler(t)

	rec := doJSON(t, h.Refresh, http.MethodGet, "/api/auth/refresh_token", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRefreshMintsAccessToken(t *testing.T) {
	h, mock := newAuthHandler(t)

	refresh, err := utils.NewRefreshToken("refresh-secret", 11, 7)
	require.NoError(t, err)
	hash := utils.HashRefreshRaw(refresh.Raw)

	mock.ExpectQuery(`SELECT .+ FROM users WHERE token=\?`).
		WithArgs(hash).
		WillReturnRows(userRow(11, "Anna", "anna@example.com", "x", &hash))

	rec := doJSON(t, h.Refresh, http.MethodGet, "/api/auth/refresh_token", "",
		&http.Cookie{Name: "refresh_token", Value: refresh.Raw})

	require.Equal(t, http.StatusOK, rec.Code)
	claims, err := utils.ParseAccessToken("access-secret", decodeBody(t, rec)["accessToken"].(string))
	require.NoError(t, err)
	assert.Equal(t, int64(11), claims.UserID)
}

func TestRefreshRejectsUnknownHash(t *testing.T) {
	h, mock := newAuthHandler(t)

	refresh, err := utils.NewRefreshToken("refresh-secret", 11, 7)
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT .+ FROM users WHERE token=\?`).
		WillReturnError(sql.ErrNoRows)

	rec := doJSON(t, h.Refresh, http.MethodGet, "/api/auth/refresh_token", "",
		&http.Cookie{Name: "refresh_token", Value: refresh.Raw})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Invalid refresh token", decodeBody(t, rec)["error"])
}

func TestRefreshRejectsForgedTokenEvenWhenHashMatches(t *testing.T) {
	h, mock := newAuthHandler(t)

	// A token signed with the wrong secret whose hash somehow made it into
	// the store must still fail the signature check.
	forged, err := utils.NewRefreshToken("attacker-secret", 11, 7)
	require.NoError(t, err)
	hash := utils.HashRefreshRaw(forged.Raw)

	mock.ExpectQuery(`SELECT .+ FROM users WHERE token=\?`).
		WithArgs(hash).
		WillReturnRows(userRow(11, "Anna", "anna@example.com", "x", &hash))

	rec := doJSON(t, h.Refresh, http.MethodGet, "/api/auth/refresh_token", "",
		&http.Cookie{Name: "refresh_token", Value: forged.Raw})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestLogoutWithoutCookieIsNoOp(t *testing.T) {
	h, mock := newAuthHandler(t)

	rec := doJSON(t, h.Logout, http.MethodDelete, "/api/auth/logout", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLogoutRevokesSessionAndClearsCookie(t *testing.T) {
	h, mock := newAuthHandler(t)

	refresh, err := utils.NewRefreshToken("refresh-secret", 11, 7)
	require.NoError(t, err)
	hash := utils.HashRefreshRaw(refresh.Raw)

	mock.ExpectQuery(`SELECT .+ FROM users WHERE token=\?`).
		WithArgs(hash).
		WillReturnRows(userRow(11, "Anna", "anna@example.com", "x", &hash))
	mock.ExpectExec(`UPDATE users SET token=NULL WHERE id=\?`).
		WithArgs(int64(11)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	rec := doJSON(t, h.Logout, http.MethodDelete, "/api/auth/logout", "",
		&http.Cookie{Name: "refresh_token", Value: refresh.Raw})

	assert.Equal(t, http.StatusNoContent, rec.Code)
	var cleared *http.Cookie
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == "refresh_token" {
			cleared = ck
		}
	}
	require.NotNil(t, cleared)
	assert.Empty(t, cleared.Value)
	assert.Less(t, cleared.MaxAge, 0)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLogoutUnknownTokenStillSucceeds(t *testing.T) {
	h, mock := newAuthHandler(t)

	mock.ExpectQuery(`SELECT .+ FROM users WHERE token=\?`).
		WillReturnError(sql.ErrNoRows)

	rec := doJSON(t, h.Logout, http.MethodDelete, "/api/auth/logout", "",
		&http.Cookie{Name: "refresh_token", Value: "stale-token"})
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/elibdev/elib/pkg/binder"
	"github.com/elibdev/elib/pkg/errcodes"
	"github.com/labstack/echo/v4"
	"github.com/segmentio/encoding/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthTestContext(t *testing.T, payload, path string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	b, err := binder.New()
	require.NoError(t, err)
	e.Binder = b
	e.HTTPErrorHandler = errcodes.NewHandler().Handle

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(payload))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rr := httptest.NewRecorder()
	return e.NewContext(req, rr), rr
}

func TestHandlerRegister(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	h := &handler{authService: NewService(db, "test-jwt-secret")}

	c, rr := newAuthTestContext(t, `{"name":"Frank Herbert","email":"frank@example.com","password":"password123"}`, "/api/users/register")

	err := h.register(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rr.Code)

	resp := TokenResponse{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.AccessToken)

	claims, err := h.authService.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.NotEmpty(t, claims.UserID)
}

func TestHandlerRegister_ShortPassword(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	h := &handler{authService: NewService(db, "test-jwt-secret")}

	c, _ := newAuthTestContext(t, `{"name":"Frank Herbert","email":"frank@example.com","password":"short"}`, "/api/users/register")

	err := h.register(c)
	require.Error(t, err)

	var codeErr *errcodes.Error
	require.ErrorAs(t, err, &codeErr)
	assert.Equal(t, "validation_error", codeErr.Code)
}

func TestHandlerRegister_InvalidEmail(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	h := &handler{authService: NewService(db, "test-jwt-secret")}

	c, _ := newAuthTestContext(t, `{"name":"Frank Herbert","email":"not-an-email","password":"password123"}`, "/api/users/register")

	err := h.register(c)
	require.Error(t, err)

	var codeErr *errcodes.Error
	require.ErrorAs(t, err, &codeErr)
	assert.Equal(t, "validation_error", codeErr.Code)
}

func TestHandlerLogin(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	svc := NewService(db, "test-jwt-secret")
	h := &handler{authService: svc}

	c, rr := newAuthTestContext(t, `{"name":"Frank Herbert","email":"frank@example.com","password":"password123"}`, "/api/users/register")
	require.NoError(t, h.register(c))
	require.Equal(t, http.StatusCreated, rr.Code)

	c, rr = newAuthTestContext(t, `{"email":"frank@example.com","password":"password123"}`, "/api/users/login")
	err := h.login(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rr.Code)

	resp := TokenResponse{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.AccessToken)
}

func TestHandlerLogin_WrongPassword(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	svc := NewService(db, "test-jwt-secret")
	h := &handler{authService: svc}

	c, _ := newAuthTestContext(t, `{"name":"Frank Herbert","email":"frank@example.com","password":"password123"}`, "/api/users/register")
	require.NoError(t, h.register(c))

	c, _ = newAuthTestContext(t, `{"email":"frank@example.com","password":"wrongpassword"}`, "/api/users/login")
	err := h.login(c)
	require.Error(t, err)

	var codeErr *errcodes.Error
	require.ErrorAs(t, err, &codeErr)
	assert.Equal(t, http.StatusUnauthorized, codeErr.HTTPCode)
}

package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/shopfusion/backend/internal/models"
	"github.com/shopfusion/backend/internal/repo"
	"github.com/shopfusion/backend/internal/testutil"
)

var testSecret = []byte("test-secret")

func signToken(t *testing.T, userID uint, role string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":  userID,
		"role": role,
		"exp":  time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testSecret)
	require.NoError(t, err)
	return token
}

func ctxWithAuth(e *echo.Echo, header string) echo.Context {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	return e.NewContext(req, httptest.NewRecorder())
}

func TestOptionalUser(t *testing.T) {
	db := testutil.NewDB(t)
	m := &Middleware{Repo: repo.New(db), JWTSecret: testSecret}
	e := echo.New()

	user := testutil.SeedUser(t, db, "alice", models.RoleCustomer)

	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }

	// No header: the request proceeds as a guest.
	c := ctxWithAuth(e, "")
	require.NoError(t, m.OptionalUser(next)(c))
	_, ok := UserFromContext(c)
	require.False(t, ok)

	// Valid token: the user is loaded from the database.
	c = ctxWithAuth(e, "Bearer "+signToken(t, user.ID, models.RoleCustomer))
	require.NoError(t, m.OptionalUser(next)(c))
	got, ok := UserFromContext(c)
	require.True(t, ok)
	require.Equal(t, user.ID, got.ID)

	// A present-but-garbage token is still rejected.
	c = ctxWithAuth(e, "Bearer garbage")
	err := m.OptionalUser(next)(c)
	require.Equal(t, http.StatusUnauthorized, err.(*echo.HTTPError).Code)

	// Unknown subject.
	c = ctxWithAuth(e, "Bearer "+signToken(t, 9999, models.RoleCustomer))
	err = m.OptionalUser(next)(c)
	require.Equal(t, http.StatusUnauthorized, err.(*echo.HTTPError).Code)
}

func TestLoadUserTakesRoleFromDatabase(t *testing.T) {
	db := testutil.NewDB(t)
	m := &Middleware{Repo: repo.New(db), JWTSecret: testSecret}
	e := echo.New()

	user := testutil.SeedUser(t, db, "bob", models.RoleCustomer)

	// The token claims admin, the database says customer. The database wins.
	raw := signToken(t, user.ID, models.RoleAdmin)
	parsed, err := jwt.Parse(raw, func(*jwt.Token) (interface{}, error) { return testSecret, nil })
	require.NoError(t, err)

	c := ctxWithAuth(e, "")
	c.Set("user", parsed)

	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	require.NoError(t, m.LoadUser(next)(c))

	got, ok := UserFromContext(c)
	require.True(t, ok)
	require.Equal(t, models.RoleCustomer, got.Role)
}

func TestRequireRole(t *testing.T) {
	e := echo.New()
	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }

	c := ctxWithAuth(e, "")
	c.Set("currentUser", &models.User{ID: 1, Role: models.RoleCustomer})
	err := RequireRole(models.RoleSeller, models.RoleAdmin)(next)(c)
	require.Equal(t, http.StatusForbidden, err.(*echo.HTTPError).Code)

	c = ctxWithAuth(e, "")
	c.Set("currentUser", &models.User{ID: 2, Role: models.RoleSeller})
	require.NoError(t, RequireRole(models.RoleSeller, models.RoleAdmin)(next)(c))

	// No user at all.
	c = ctxWithAuth(e, "")
	err = RequireRole(models.RoleAdmin)(next)(c)
	require.Equal(t, http.StatusUnauthorized, err.(*echo.HTTPError).Code)
}

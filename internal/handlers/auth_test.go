package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shopfusion/backend/internal/events"
	"github.com/shopfusion/backend/internal/models"
)

func TestRegisterAndLogin(t *testing.T) {
	e := newEnv(t)
	h := &AuthHandler{Repo: e.Repo, JWTSecret: []byte("test-secret"), Events: e.Events}

	c, rec := e.request(http.MethodPost, "/api/v1/register", `{"username":"alice","password":"pw","role":"seller"}`)
	require.NoError(t, h.Register(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var created models.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.Equal(t, "alice", created.Username)
	require.Equal(t, models.RoleSeller, created.Role)

	require.Len(t, e.Events.events, 1)
	require.Equal(t, events.TopicUserEvents, e.Events.events[0].Topic)
	require.Equal(t, "user_registered", e.Events.events[0].Event["type"])

	// The password hash never leaves the server.
	require.NotContains(t, rec.Body.String(), "password")

	c, _ = e.request(http.MethodPost, "/api/v1/register", `{"username":"alice","password":"pw"}`)
	require.Equal(t, http.StatusConflict, httpCode(t, h.Register(c)))

	c, rec = e.request(http.MethodPost, "/api/v1/login", `{"username":"alice","password":"pw"}`)
	require.NoError(t, h.Login(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		AccessToken string `json:"access_token"`
		Role        string `json:"role"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.AccessToken)
	require.Equal(t, models.RoleSeller, resp.Role)

	c, _ = e.request(http.MethodPost, "/api/v1/login", `{"username":"alice","password":"nope"}`)
	require.Equal(t, http.StatusUnauthorized, httpCode(t, h.Login(c)))
}

func TestRegisterValidation(t *testing.T) {
	e := newEnv(t)
	h := &AuthHandler{Repo: e.Repo, JWTSecret: []byte("test-secret"), Events: e.Events}

	c, _ := e.request(http.MethodPost, "/api/v1/register", `{"username":"","password":""}`)
	require.Equal(t, http.StatusBadRequest, httpCode(t, h.Register(c)))

	// Admins cannot self-register.
	c, _ = e.request(http.MethodPost, "/api/v1/register", `{"username":"root","password":"pw","role":"admin"}`)
	require.Equal(t, http.StatusBadRequest, httpCode(t, h.Register(c)))
}

func TestRegisterDefaultsToCustomer(t *testing.T) {
	e := newEnv(t)
	h := &AuthHandler{Repo: e.Repo, JWTSecret: []byte("test-secret"), Events: e.Events}

	c, rec := e.request(http.MethodPost, "/api/v1/register", `{"username":"bob","password":"pw"}`)
	require.NoError(t, h.Register(c))

	var created models.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.Equal(t, models.RoleCustomer, created.Role)
}

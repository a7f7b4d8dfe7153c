package handlers

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/shopfusion/backend/internal/models"
	"github.com/shopfusion/backend/internal/repo"
	"github.com/shopfusion/backend/internal/testutil"
)

type capturedEvent struct {
	Topic string
	Key   string
	Event map[string]any
}

// capturePublisher records published events so tests can assert on them.
type capturePublisher struct {
	events []capturedEvent
}

func (p *capturePublisher) PublishEvent(_ context.Context, topic, key string, event any) error {
	m, _ := event.(map[string]any)
	p.events = append(p.events, capturedEvent{Topic: topic, Key: key, Event: m})
	return nil
}

type env struct {
	DB     *gorm.DB
	Repo   *repo.GormRepo
	Echo   *echo.Echo
	Events *capturePublisher
}

func newEnv(t *testing.T) *env {
	t.Helper()
	db := testutil.NewDB(t)
	return &env{
		DB:     db,
		Repo:   repo.New(db),
		Echo:   echo.New(),
		Events: &capturePublisher{},
	}
}

// request builds an echo context for a handler call. An empty body means no
// request body; otherwise it is sent as JSON.
func (e *env) request(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.Echo.NewContext(req, rec), rec
}

func asUser(c echo.Context, user *models.User) {
	c.Set("currentUser", user)
}

func httpCode(t *testing.T, err error) int {
	t.Helper()
	he, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected *echo.HTTPError, got %T: %v", err, err)
	}
	return he.Code
}

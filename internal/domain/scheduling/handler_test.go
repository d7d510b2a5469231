package scheduling

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func newApptGetContext(id string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues(id)
	return c
}

func httpCode(t *testing.T, err error) int {
	t.Helper()
	var he *echo.HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("expected *echo.HTTPError, got %v", err)
	}
	return he.Code
}

func TestGetAppointmentMissingRowIs404(t *testing.T) {
	repo := newMockApptRepo()
	h := NewHandler(NewService(repo))

	err := h.GetAppointment(newApptGetContext("7"))
	if code := httpCode(t, err); code != http.StatusNotFound {
		t.Fatalf("expected 404 for absent appointment, got %d", code)
	}
}

func TestGetAppointmentStorageFailureIs500(t *testing.T) {
	repo := newMockApptRepo()
	repo.failErr = errors.New("connection refused")
	h := NewHandler(NewService(repo))

	err := h.GetAppointment(newApptGetContext("7"))
	if code := httpCode(t, err); code != http.StatusInternalServerError {
		t.Fatalf("expected 500 for storage failure, got %d", code)
	}
}

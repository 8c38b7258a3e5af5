package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/taskhive/tasktracker/internal/core/domain"
)

func TestResolveError_DomainMapping(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{domain.ErrMissingCredentials, http.StatusBadRequest},
		{domain.ErrEmailTooLong, http.StatusBadRequest},
		{domain.ErrEmptyTitle, http.StatusBadRequest},
		{domain.ErrTitleTooLong, http.StatusBadRequest},
		{domain.ErrEmailTaken, http.StatusConflict},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{domain.ErrTaskNotFound, http.StatusNotFound},
		{errors.New("database exploded"), http.StatusInternalServerError},
		{echo.NewHTTPError(http.StatusUnauthorized, "invalid token"), http.StatusUnauthorized},
	}

	e := echo.New()
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		code, _ := resolveError(tc.err, zerolog.Nop(), c)
		if code != tc.code {
			t.Fatalf("error %v: got %d, want %d", tc.err, code, tc.code)
		}
	}
}

func TestResolveError_WrappedDomainError(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	wrapped := fmt.Errorf("toggle task: %w", domain.ErrTaskNotFound)
	code, msg := resolveError(wrapped, zerolog.Nop(), c)
	if code != http.StatusNotFound {
		t.Fatalf("expected 404 for wrapped ErrTaskNotFound, got %d", code)
	}
	if msg != "task not found" {
		t.Fatalf("unexpected message: %q", msg)
	}
}

func TestResolveError_InternalHidesCause(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	code, msg := resolveError(errors.New("pq: connection reset"), zerolog.Nop(), c)
	if code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", code)
	}
	if msg != "internal server error" {
		t.Fatalf("internal cause leaked to client: %q", msg)
	}
}

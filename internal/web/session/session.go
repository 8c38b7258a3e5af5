// Package session implements the web tier's server-side sessions. A browser
// holds only an opaque session id cookie; the identity token itself lives in
// the session store under that id, with an idle timeout enforced by the
// store. The Manager is passed explicitly into every handler that needs it.
package session

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ErrNoSession is returned when a browser has no live session: no cookie,
// an unknown session id, or an idle timeout that has already elapsed.
var ErrNoSession = errors.New("session: not found")

// Store persists at most one identity token per session id. The idle
// timeout is fixed at construction; every Get slides it forward.
type Store interface {
	// Get returns the token for sid and refreshes its idle timeout, or
	// ErrNoSession when absent or expired.
	Get(ctx context.Context, sid string) (string, error)
	Set(ctx context.Context, sid, token string) error
	Delete(ctx context.Context, sid string) error
}

// Manager translates the browser cookie into store lookups.
type Manager struct {
	store      Store
	cookieName string
	secure     bool
}

func NewManager(store Store, cookieName string, secure bool) *Manager {
	return &Manager{store: store, cookieName: cookieName, secure: secure}
}

// Token returns the identity token for the current browser session. It only
// reports presence; it never inspects token validity — that is the API's
// job.
func (m *Manager) Token(c echo.Context) (string, error) {
	cookie, err := c.Cookie(m.cookieName)
	if err != nil || cookie.Value == "" {
		return "", ErrNoSession
	}
	return m.store.Get(c.Request().Context(), cookie.Value)
}

// SaveToken starts a fresh session holding token and points the browser at
// it. A new session id is minted on every login so a pre-login cookie can
// never be promoted to an authenticated session.
func (m *Manager) SaveToken(c echo.Context, token string) error {
	sid := uuid.NewString()
	if err := m.store.Set(c.Request().Context(), sid, token); err != nil {
		return err
	}
	c.SetCookie(&http.Cookie{
		Name:     m.cookieName,
		Value:    sid,
		Path:     "/",
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Clear tears down the session server-side and expires the cookie.
func (m *Manager) Clear(c echo.Context) error {
	cookie, err := c.Cookie(m.cookieName)
	if err == nil && cookie.Value != "" {
		if err := m.store.Delete(c.Request().Context(), cookie.Value); err != nil {
			return err
		}
	}
	c.SetCookie(&http.Cookie{
		Name:     m.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Package web serves the browser-facing task tracker. It renders HTML on the
// server and talks to the task API on the user's behalf, exchanging the
// browser's session cookie for a bearer token on every API call.
package web

import (
	"embed"
	"errors"
	"html/template"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/taskhive/tasktracker/internal/web/apiclient"
	"github.com/taskhive/tasktracker/internal/web/session"
)

//go:embed templates/*.html
var templateFS embed.FS

const minPasswordLength = 6

// ctxToken carries the session's bearer token between middleware and handler.
const ctxToken = "session_token"

type renderer struct {
	templates *template.Template
}

func (r *renderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}

// Server wires the session manager and API client into the page handlers.
type Server struct {
	api      *apiclient.Client
	sessions *session.Manager
	log      zerolog.Logger
}

func NewServer(api *apiclient.Client, sessions *session.Manager, log zerolog.Logger) *Server {
	return &Server{api: api, sessions: sessions, log: log}
}

// Router builds the echo instance with all pages registered.
func (s *Server) Router() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = &renderer{
		templates: template.Must(template.ParseFS(templateFS, "templates/*.html")),
	}

	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())

	e.GET("/", s.home)
	e.GET("/register", s.registerPage)
	e.POST("/register", s.register)
	e.GET("/login", s.loginPage)
	e.POST("/login", s.login)
	e.POST("/logout", s.logout)

	tasks := e.Group("", s.requireSession)
	tasks.GET("/tasks", s.listTasks)
	tasks.POST("/tasks", s.createTask)
	tasks.POST("/tasks/:id/toggle", s.toggleTask)

	return e
}

// requireSession resolves the browser session to a bearer token. Anonymous
// visitors are sent to the login page rather than shown an error.
func (s *Server) requireSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, err := s.sessions.Token(c)
		if err != nil {
			if errors.Is(err, session.ErrNoSession) {
				return c.Redirect(http.StatusSeeOther, "/login")
			}
			s.log.Error().Err(err).Msg("session lookup failed")
			return c.Redirect(http.StatusSeeOther, "/login?flash="+url.QueryEscape("please sign in again"))
		}
		c.Set(ctxToken, token)
		return next(c)
	}
}

func (s *Server) home(c echo.Context) error {
	if _, err := s.sessions.Token(c); err == nil {
		return c.Redirect(http.StatusSeeOther, "/tasks")
	}
	return c.Redirect(http.StatusSeeOther, "/login")
}

func (s *Server) loginPage(c echo.Context) error {
	if _, err := s.sessions.Token(c); err == nil {
		return c.Redirect(http.StatusSeeOther, "/tasks")
	}
	return c.Render(http.StatusOK, "login", map[string]any{
		"Flash": flash(c),
		"Email": "",
	})
}

func (s *Server) login(c echo.Context) error {
	email := strings.TrimSpace(c.FormValue("email"))
	password := c.FormValue("password")
	if email == "" || password == "" {
		return c.Render(http.StatusBadRequest, "login", map[string]any{
			"Flash": "email and password are required",
			"Email": email,
		})
	}

	result, err := s.api.Login(c.Request().Context(), email, password)
	if err != nil {
		return c.Render(http.StatusUnauthorized, "login", map[string]any{
			"Flash": loginFailureMessage(err),
			"Email": email,
		})
	}
	if err := s.sessions.SaveToken(c, result.Token); err != nil {
		s.log.Error().Err(err).Msg("session save failed")
		return c.Render(http.StatusInternalServerError, "login", map[string]any{
			"Flash": "something went wrong, please try again",
			"Email": email,
		})
	}
	return c.Redirect(http.StatusSeeOther, "/tasks")
}

func (s *Server) registerPage(c echo.Context) error {
	if _, err := s.sessions.Token(c); err == nil {
		return c.Redirect(http.StatusSeeOther, "/tasks")
	}
	return c.Render(http.StatusOK, "register", map[string]any{
		"Flash": flash(c),
		"Email": "",
	})
}

func (s *Server) register(c echo.Context) error {
	email := strings.TrimSpace(c.FormValue("email"))
	password := c.FormValue("password")
	if email == "" || password == "" {
		return c.Render(http.StatusBadRequest, "register", map[string]any{
			"Flash": "email and password are required",
			"Email": email,
		})
	}
	if len(password) < minPasswordLength {
		return c.Render(http.StatusBadRequest, "register", map[string]any{
			"Flash": "password must be at least 6 characters",
			"Email": email,
		})
	}

	result, err := s.api.Register(c.Request().Context(), email, password)
	if err != nil {
		var se *apiclient.StatusError
		if errors.As(err, &se) {
			return c.Render(statusForForm(se.Code), "register", map[string]any{
				"Flash": se.Message,
				"Email": email,
			})
		}
		s.log.Error().Err(err).Msg("register call failed")
		return c.Render(http.StatusBadGateway, "register", map[string]any{
			"Flash": "registration is temporarily unavailable",
			"Email": email,
		})
	}
	// Registration logs the user straight in.
	if err := s.sessions.SaveToken(c, result.Token); err != nil {
		s.log.Error().Err(err).Msg("session save failed")
		return c.Redirect(http.StatusSeeOther, "/login?flash="+url.QueryEscape("account created, please sign in"))
	}
	return c.Redirect(http.StatusSeeOther, "/tasks")
}

func (s *Server) logout(c echo.Context) error {
	if err := s.sessions.Clear(c); err != nil {
		s.log.Error().Err(err).Msg("session clear failed")
	}
	return c.Redirect(http.StatusSeeOther, "/login")
}

func (s *Server) listTasks(c echo.Context) error {
	token, _ := c.Get(ctxToken).(string)

	tasks, err := s.api.ListTasks(c.Request().Context(), token)
	if err != nil {
		return s.apiFailure(c, err, "failed to load tasks")
	}
	return c.Render(http.StatusOK, "tasks", map[string]any{
		"Flash": flash(c),
		"Tasks": tasks,
	})
}

func (s *Server) createTask(c echo.Context) error {
	token, _ := c.Get(ctxToken).(string)
	title := c.FormValue("title")

	if _, err := s.api.CreateTask(c.Request().Context(), token, title); err != nil {
		return s.apiFailure(c, err, "could not add task")
	}
	return c.Redirect(http.StatusSeeOther, "/tasks")
}

func (s *Server) toggleTask(c echo.Context) error {
	token, _ := c.Get(ctxToken).(string)

	taskID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return redirectWithFlash(c, "/tasks", "task not found")
	}
	if _, err := s.api.ToggleTask(c.Request().Context(), token, taskID); err != nil {
		return s.apiFailure(c, err, "could not update task")
	}
	return c.Redirect(http.StatusSeeOther, "/tasks")
}

// apiFailure handles errors coming back from the task API. A rejected token
// means the session outlived the token, so the session is torn down and the
// user re-authenticates.
func (s *Server) apiFailure(c echo.Context, err error, fallback string) error {
	if errors.Is(err, apiclient.ErrUnauthenticated) {
		if clearErr := s.sessions.Clear(c); clearErr != nil {
			s.log.Error().Err(clearErr).Msg("session clear failed")
		}
		return c.Redirect(http.StatusSeeOther, "/login?flash="+url.QueryEscape("your session expired, please sign in again"))
	}

	var se *apiclient.StatusError
	if errors.As(err, &se) {
		return redirectWithFlash(c, "/tasks", se.Message)
	}
	s.log.Error().Err(err).Msg("api call failed")
	return redirectWithFlash(c, "/tasks", fallback)
}

func loginFailureMessage(err error) string {
	if errors.Is(err, apiclient.ErrUnauthenticated) {
		return "invalid email or password"
	}
	var se *apiclient.StatusError
	if errors.As(err, &se) {
		return se.Message
	}
	return "sign in is temporarily unavailable"
}

// statusForForm re-renders the form with the API's status where it is a
// client error, and 502 when the API itself misbehaved.
func statusForForm(apiStatus int) int {
	if apiStatus >= 400 && apiStatus < 500 {
		return apiStatus
	}
	return http.StatusBadGateway
}

func flash(c echo.Context) string {
	return strings.TrimSpace(c.QueryParam("flash"))
}

func redirectWithFlash(c echo.Context, target, message string) error {
	if message == "" {
		return c.Redirect(http.StatusSeeOther, target)
	}
	return c.Redirect(http.StatusSeeOther, target+"?flash="+url.QueryEscape(message))
}

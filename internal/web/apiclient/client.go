// Package apiclient is the web tier's typed client for the task API. Every
// call carries the caller's bearer token explicitly; the client itself holds
// no per-user state and is safe for concurrent use.
package apiclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// ErrUnauthenticated is returned when the API rejects the bearer token. The
// web tier reacts by dropping the session and sending the browser back to
// the login page.
var ErrUnauthenticated = errors.New("apiclient: token rejected")

// AuthResult mirrors the API's authentication response.
type AuthResult struct {
	Token  string `json:"token"`
	UserID string `json:"userId"`
	Email  string `json:"email"`
}

// Task mirrors the API's task representation.
type Task struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	IsDone    bool      `json:"isDone"`
	CreatedOn time.Time `json:"createdOn"`
}

type apiError struct {
	Error string `json:"error"`
}

type Client struct {
	http *resty.Client
}

func New(baseURL string) *Client {
	return &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(10 * time.Second).
			SetHeader("Accept", "application/json"),
	}
}

func (c *Client) Register(ctx context.Context, email, password string) (*AuthResult, error) {
	var result AuthResult
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]string{"email": email, "password": password}).
		SetResult(&result).
		SetError(&apiError{}).
		Post("/api/auth/register")
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	if resp.IsError() {
		return nil, apiFailure(resp)
	}
	return &result, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	var result AuthResult
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]string{"email": email, "password": password}).
		SetResult(&result).
		SetError(&apiError{}).
		Post("/api/auth/login")
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	if resp.IsError() {
		return nil, apiFailure(resp)
	}
	return &result, nil
}

func (c *Client) ListTasks(ctx context.Context, token string) ([]Task, error) {
	var tasks []Task
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetResult(&tasks).
		SetError(&apiError{}).
		Get("/api/tasks")
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	if resp.IsError() {
		return nil, apiFailure(resp)
	}
	return tasks, nil
}

func (c *Client) CreateTask(ctx context.Context, token, title string) (*Task, error) {
	var task Task
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetBody(map[string]string{"title": title}).
		SetResult(&task).
		SetError(&apiError{}).
		Post("/api/tasks")
	if err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	if resp.IsError() {
		return nil, apiFailure(resp)
	}
	return &task, nil
}

func (c *Client) ToggleTask(ctx context.Context, token string, taskID int64) (*Task, error) {
	var task Task
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetResult(&task).
		SetError(&apiError{}).
		Put(fmt.Sprintf("/api/tasks/%d/toggle", taskID))
	if err != nil {
		return nil, fmt.Errorf("toggle task: %w", err)
	}
	if resp.IsError() {
		return nil, apiFailure(resp)
	}
	return &task, nil
}

// apiFailure turns a non-2xx response into an error the web handlers can
// branch on. The API's error envelope message is preserved so forms can show
// it to the user verbatim.
func apiFailure(resp *resty.Response) error {
	if resp.StatusCode() == http.StatusUnauthorized {
		return ErrUnauthenticated
	}
	if apiErr, ok := resp.Error().(*apiError); ok && apiErr.Error != "" {
		return &StatusError{Code: resp.StatusCode(), Message: apiErr.Error}
	}
	return &StatusError{Code: resp.StatusCode(), Message: http.StatusText(resp.StatusCode())}
}

// StatusError carries the API's status code and error message.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("api: %d %s", e.Code, e.Message)
}

package domain

import (
	"errors"
	"time"
)

// MaxTitleLength bounds a task title after trimming.
const MaxTitleLength = 200

var ErrEmptyTitle = errors.New("title required")
var ErrTitleTooLong = errors.New("title too long")

// ErrTaskNotFound covers both a task that does not exist and a task owned
// by a different user. The two cases are deliberately indistinguishable so
// the API never leaks the existence of another user's tasks.
var ErrTaskNotFound = errors.New("task not found")

// Task is a single to-do item exclusively owned by one user.
type Task struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	IsDone    bool      `json:"isDone"`
	CreatedOn time.Time `json:"createdOn"`
	OwnerID   string    `json:"-"`
}

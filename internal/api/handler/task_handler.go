package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/taskhive/tasktracker/internal/api/metrics"
	"github.com/taskhive/tasktracker/internal/core/domain"
	"github.com/taskhive/tasktracker/internal/core/ports"
)

// TaskHandler handles HTTP requests for task operations. Every route is
// behind the Auth middleware; the caller identity comes from the context.
type TaskHandler struct {
	service ports.TaskService
}

func NewTaskHandler(service ports.TaskService) *TaskHandler {
	return &TaskHandler{service: service}
}

// List handles GET /api/tasks.
//
// @Summary      List the caller's tasks
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Task
// @Failure      401  {object}  errorResponse
// @Router       /api/tasks [get]
func (h *TaskHandler) List(c echo.Context) error {
	callerID, err := ctxCallerID(c)
	if err != nil {
		return err
	}

	tasks, err := h.service.ListMine(c.Request().Context(), callerID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tasks)
}

// Create handles POST /api/tasks.
//
// @Summary      Create a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createTaskRequest  true  "Task title"
// @Success      201   {object}  domain.Task
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/tasks [post]
func (h *TaskHandler) Create(c echo.Context) error {
	callerID, err := ctxCallerID(c)
	if err != nil {
		return err
	}

	var req createTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	task, err := h.service.Create(c.Request().Context(), callerID, req.Title)
	if err != nil {
		return err
	}

	metrics.TasksCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, task)
}

// Toggle handles PUT /api/tasks/:id/toggle.
//
// @Summary      Flip a task's done flag
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Task id"
// @Success      200  {object}  domain.Task
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/tasks/{id}/toggle [put]
func (h *TaskHandler) Toggle(c echo.Context) error {
	callerID, err := ctxCallerID(c)
	if err != nil {
		return err
	}

	taskID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		// A non-numeric id can never name an owned task.
		return domain.ErrTaskNotFound
	}

	task, err := h.service.Toggle(c.Request().Context(), callerID, taskID)
	if err != nil {
		return err
	}

	metrics.TasksToggledTotal.Inc()
	return c.JSON(http.StatusOK, task)
}

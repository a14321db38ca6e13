package delivery

import (
	"fmt"
	"net/http"

	"taskmanager-backend/internal/auth"
	"taskmanager-backend/internal/common"
	"taskmanager-backend/internal/task/domain"
	"taskmanager-backend/internal/task/usecase"
	"taskmanager-backend/pkg/logging"

	"github.com/gin-gonic/gin"
)

// TaskHandler handles task-related HTTP requests
type TaskHandler struct {
	taskUsecase usecase.TaskUsecase
	log         logging.Logger
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(taskUsecase usecase.TaskUsecase, log logging.Logger) *TaskHandler {
	return &TaskHandler{
		taskUsecase: taskUsecase,
		log:         log,
	}
}

// CreateTask creates a task owned by the requester
// POST /tasks
func (h *TaskHandler) CreateTask(c *gin.Context) {
	var req usecase.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondError(c, h.log, fmt.Errorf("%w: %v", common.ErrValidation, err))
		return
	}

	task, err := h.taskUsecase.CreateTask(c.Request.Context(), auth.CurrentUser(c).ID, req)
	if err != nil {
		common.RespondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, task)
}

// GetTasks returns the requester's tasks
// GET /tasks?completed=true&sortBy=createdAt:desc&limit=10&skip=0
func (h *TaskHandler) GetTasks(c *gin.Context) {
	query := usecase.ListQuery{
		Completed: c.Query("completed"),
		SortBy:    c.Query("sortBy"),
		Limit:     c.Query("limit"),
		Skip:      c.Query("skip"),
	}

	tasks, err := h.taskUsecase.GetUserTasks(c.Request.Context(), auth.CurrentUser(c).ID, query)
	if err != nil {
		common.RespondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, tasks)
}

// GetTaskByID returns a specific task
// GET /tasks/:id
func (h *TaskHandler) GetTaskByID(c *gin.Context) {
	task, err := h.taskUsecase.GetTaskByID(c.Request.Context(), auth.CurrentUser(c).ID, c.Param("id"))
	if err != nil {
		common.RespondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// UpdateTask updates description and/or completed
// PATCH /tasks/:id
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		common.RespondError(c, h.log, fmt.Errorf("%w: %v", common.ErrValidation, err))
		return
	}

	var updates usecase.TaskUpdateRequest
	if err := common.DecodeAllowed(body, domain.UpdatableFields, &updates); err != nil {
		common.RespondError(c, h.log, err)
		return
	}

	task, err := h.taskUsecase.UpdateTask(c.Request.Context(), auth.CurrentUser(c).ID, c.Param("id"), updates)
	if err != nil {
		common.RespondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// DeleteTask deletes a task and echoes it back
// DELETE /tasks/:id
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	task, err := h.taskUsecase.DeleteTask(c.Request.Context(), auth.CurrentUser(c).ID, c.Param("id"))
	if err != nil {
		common.RespondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

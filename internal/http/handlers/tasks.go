package handlers

import (
	"fmt"
	"net/http"

	"todo_backend/internal/domain"
	"todo_backend/internal/service"

	"github.com/gin-gonic/gin"
)

type taskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	DueDate     string `json:"dueDate"`
}

func (r taskRequest) input() service.TaskInput {
	return service.TaskInput{Title: r.Title, Description: r.Description, DueDate: r.DueDate}
}

type completionRequest struct {
	Completed *bool `json:"completed" binding:"required"`
}

// ListTasks handles GET /api/tasks?sortBy=dueDate|dateCreated
func (h *Handler) ListTasks(c *gin.Context) {
	sort := domain.ParseSortKey(c.Query("sortBy"))
	tasks, err := h.Tasks.ListTasks(c.Request.Context(), sort)
	if err != nil {
		respondError(c, err, "Failed to fetch tasks")
		return
	}
	c.JSON(http.StatusOK, tasks)
}

// CreateTask handles POST /api/tasks/todo
func (h *Handler) CreateTask(c *gin.Context) {
	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, fmt.Errorf("%w: %v", service.ErrValidation, err), "Failed to create task")
		return
	}

	task, err := h.Tasks.CreateTask(c.Request.Context(), req.input())
	if err != nil {
		respondError(c, err, "Failed to create task")
		return
	}
	c.JSON(http.StatusOK, gin.H{"task": task, "message": "Task created successfully"})
}

// CompleteTask handles PATCH /api/tasks/complete/:id
func (h *Handler) CompleteTask(c *gin.Context) {
	h.setCompletion(c, "Task marked as completed")
}

// UncompleteTask handles PATCH /api/tasks/notComplete/:id. It applies the
// submitted value exactly like CompleteTask does.
func (h *Handler) UncompleteTask(c *gin.Context) {
	h.setCompletion(c, "Task marked as not completed")
}

func (h *Handler) setCompletion(c *gin.Context, okMsg string) {
	var req completionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, fmt.Errorf("%w: completed is required", service.ErrValidation), "Failed to update task")
		return
	}

	task, err := h.Tasks.SetCompletion(c.Request.Context(), c.Param("id"), *req.Completed)
	if err != nil {
		respondError(c, err, "Failed to update task")
		return
	}
	c.JSON(http.StatusOK, gin.H{"task": task, "message": okMsg})
}

// UpdateTask handles PUT /api/tasks/update/:id
func (h *Handler) UpdateTask(c *gin.Context) {
	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, fmt.Errorf("%w: %v", service.ErrValidation, err), "Failed to update task")
		return
	}

	task, err := h.Tasks.UpdateTask(c.Request.Context(), c.Param("id"), req.input())
	if err != nil {
		respondError(c, err, "Failed to update task")
		return
	}
	c.JSON(http.StatusOK, gin.H{"task": task, "message": "Task updated successfully"})
}

// DeleteTask handles DELETE /api/tasks/delete/:id
func (h *Handler) DeleteTask(c *gin.Context) {
	task, err := h.Tasks.DeleteTask(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to delete task")
		return
	}
	c.JSON(http.StatusOK, gin.H{"task": task, "message": "Task deleted successfully"})
}

package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/taskhive-dev/taskhive/internal/models"
	"github.com/taskhive-dev/taskhive/internal/store"
	"github.com/taskhive-dev/taskhive/internal/utils"
)

type TaskHandler struct {
	tasks *store.TaskStore
}

func NewTaskHandler(tasks *store.TaskStore) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

type CreateTaskRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"dueDate"`
	Priority    string     `json:"priority"`
	Status      string     `json:"status"`
	ProjectID   string     `json:"projectId"`
	AssigneeIDs []string   `json:"assigneeIds"`
}

type UpdateTaskRequest struct {
	Status string `json:"status"`
}

func (h *TaskHandler) Create(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var req CreateTaskRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if req.Title == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Title is required"})
		return
	}

	// Enum membership is checked before the store is touched.
	priority := models.Priority(req.Priority)

	if !priority.IsValid() {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid priority value"})
		return
	}

	status := models.TaskStatus(req.Status)

	if !status.IsValid() {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status value"})
		return
	}

	task, err := h.tasks.Create(ctx.Request.Context(), currentUser.ID, store.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Priority:    priority,
		Status:      status,
		ProjectID:   req.ProjectID,
		AssigneeIDs: req.AssigneeIDs,
	})

	if err != nil {
		log.Printf("Failed to create task: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	BroadcastRefresh(task.ProjectID)

	ctx.JSON(http.StatusCreated, task)
}

func (h *TaskHandler) List(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	tasks, err := h.tasks.ListVisible(ctx.Request.Context(), currentUser.ID)

	if err != nil {
		log.Printf("Failed to fetch tasks: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch tasks"})
		return
	}

	ctx.JSON(http.StatusOK, tasks)
}

func (h *TaskHandler) Update(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	taskID := ctx.Param("task_id")

	// Scoped lookup first: an inaccessible task reads as missing.
	task, err := h.tasks.FindVisible(ctx.Request.Context(), taskID, currentUser.ID)

	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
			return
		}
		log.Printf("Failed to fetch task: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var req UpdateTaskRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	status := models.TaskStatus(req.Status)

	if !status.IsValid() {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status value"})
		return
	}

	updated, err := h.tasks.UpdateStatus(ctx.Request.Context(), task.ID, status)

	if err != nil {
		log.Printf("Failed to update task: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	BroadcastRefresh(updated.ProjectID)

	ctx.JSON(http.StatusOK, updated)
}

func (h *TaskHandler) Delete(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	taskID := ctx.Param("task_id")

	task, err := h.tasks.FindVisible(ctx.Request.Context(), taskID, currentUser.ID)

	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
			return
		}
		log.Printf("Failed to fetch task: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if err := h.tasks.Delete(ctx.Request.Context(), task.ID); err != nil {
		log.Printf("Failed to delete task: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	BroadcastRefresh(task.ProjectID)

	ctx.Status(http.StatusNoContent)
}

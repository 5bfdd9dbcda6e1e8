package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/taskhive-dev/taskhive/internal/authz"
	"github.com/taskhive-dev/taskhive/internal/store"
	"github.com/taskhive-dev/taskhive/internal/utils"
)

type ProjectHandler struct {
	projects *store.ProjectStore
	teams    *store.TeamStore
}

func NewProjectHandler(projects *store.ProjectStore, teams *store.TeamStore) *ProjectHandler {
	return &ProjectHandler{projects: projects, teams: teams}
}

type CreateProjectRequest struct {
	Name   string `json:"name"`
	TeamID string `json:"teamId"`
}

type DeleteProjectRequest struct {
	ProjectID string `json:"projectId"`
}

func (h *ProjectHandler) List(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	projects, err := h.projects.ListVisible(ctx.Request.Context(), currentUser.ID)

	if err != nil {
		log.Printf("Failed to fetch projects: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch projects"})
		return
	}

	ctx.JSON(http.StatusOK, projects)
}

func (h *ProjectHandler) Create(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req CreateProjectRequest

	if err := ctx.BindJSON(&req); err != nil || req.Name == "" || req.TeamID == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Project name and team ID are required"})
		return
	}

	// Scoped lookup: a missing team and a team the caller is not part of
	// answer the same way.
	team, err := h.teams.FindByID(ctx.Request.Context(), req.TeamID)

	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			ctx.JSON(http.StatusForbidden, gin.H{"error": "You must be a team member to create a project"})
			return
		}
		log.Printf("Failed to fetch team: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create project"})
		return
	}

	if !authz.IsTeamMember(currentUser.ID, team) {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "You must be a team member to create a project"})
		return
	}

	project, err := h.projects.Create(ctx.Request.Context(), currentUser.ID, req.Name, req.TeamID)

	if err != nil {
		log.Printf("Failed to create project: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create project"})
		return
	}

	ctx.JSON(http.StatusCreated, project)
}

func (h *ProjectHandler) Delete(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req DeleteProjectRequest

	if err := ctx.BindJSON(&req); err != nil || req.ProjectID == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Project ID is required"})
		return
	}

	project, err := h.projects.FindByID(ctx.Request.Context(), req.ProjectID)

	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			ctx.JSON(http.StatusForbidden, gin.H{"error": "Only project creators can delete projects"})
			return
		}
		log.Printf("Failed to fetch project: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete project"})
		return
	}

	if !authz.CanDeleteProject(currentUser.ID, project) {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Only project creators can delete projects"})
		return
	}

	if err := h.projects.DeleteCascade(ctx.Request.Context(), req.ProjectID); err != nil {
		log.Printf("Failed to delete project: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete project"})
		return
	}

	BroadcastRefresh(req.ProjectID)

	ctx.JSON(http.StatusOK, gin.H{"message": "Project deleted successfully"})
}

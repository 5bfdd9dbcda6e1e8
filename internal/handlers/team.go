package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/taskhive-dev/taskhive/internal/store"
	"github.com/taskhive-dev/taskhive/internal/utils"
)

type TeamHandler struct {
	teams *store.TeamStore
	users *store.UserStore
}

func NewTeamHandler(teams *store.TeamStore, users *store.UserStore) *TeamHandler {
	return &TeamHandler{teams: teams, users: users}
}

type CreateTeamRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (h *TeamHandler) Create(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req CreateTeamRequest

	if err := ctx.BindJSON(&req); err != nil || req.Name == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Team name is required"})
		return
	}

	team, err := h.teams.Create(ctx.Request.Context(), currentUser.ID, req.Name, req.Description)

	if err != nil {
		log.Printf("Failed to create team: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create team"})
		return
	}

	ctx.JSON(http.StatusCreated, team)
}

func (h *TeamHandler) List(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	teams, err := h.teams.ListVisible(ctx.Request.Context(), currentUser.ID)

	if err != nil {
		log.Printf("Failed to fetch teams: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch teams"})
		return
	}

	ctx.JSON(http.StatusOK, teams)
}

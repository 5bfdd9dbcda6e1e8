package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/taskhive-dev/taskhive/internal/store"
	"github.com/taskhive-dev/taskhive/internal/utils"
)

type UserHandler struct {
	users *store.UserStore
}

func NewUserHandler(users *store.UserStore) *UserHandler {
	return &UserHandler{users: users}
}

// Available lists users who can still be invited to the team: everyone except
// the caller, the owner and current members.
func (h *UserHandler) Available(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	teamID := ctx.Query("teamId")

	if teamID == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Team ID is required"})
		return
	}

	users, err := h.users.AvailableForTeam(ctx.Request.Context(), teamID, currentUser.ID)

	if err != nil {
		log.Printf("Failed to fetch available users: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch available users"})
		return
	}

	ctx.JSON(http.StatusOK, users)
}

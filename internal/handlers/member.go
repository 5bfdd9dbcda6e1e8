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

type AddMemberRequest struct {
	TeamID string `json:"teamId"`
	UserID string `json:"userId"`
}

type RemoveMemberRequest struct {
	TeamID   string `json:"teamId"`
	MemberID string `json:"memberId"`
}

// ListMembers returns the members of every team the caller owns or belongs
// to.
func (h *TeamHandler) ListMembers(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	members, err := h.users.Teammates(ctx.Request.Context(), currentUser.ID)

	if err != nil {
		log.Printf("Failed to fetch team members: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch team members"})
		return
	}

	ctx.JSON(http.StatusOK, members)
}

func (h *TeamHandler) AddMember(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req AddMemberRequest

	if err := ctx.BindJSON(&req); err != nil || req.TeamID == "" || req.UserID == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Team ID and user ID are required"})
		return
	}

	// A missing team reads the same as not owning it.
	team, err := h.teams.FindByID(ctx.Request.Context(), req.TeamID)

	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			ctx.JSON(http.StatusForbidden, gin.H{"error": "Only team owners can add members"})
			return
		}
		log.Printf("Failed to fetch team: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add member"})
		return
	}

	if !authz.CanManageTeam(currentUser.ID, team) {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Only team owners can add members"})
		return
	}

	if _, err := h.users.FindByID(ctx.Request.Context(), req.UserID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		log.Printf("Failed to fetch user: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add member"})
		return
	}

	if authz.IsTeamMember(req.UserID, team) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "User is already a team member"})
		return
	}

	if err := h.teams.AddMember(ctx.Request.Context(), req.TeamID, req.UserID); err != nil {
		if errors.Is(err, store.ErrAlreadyMember) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "User is already a team member"})
			return
		}
		log.Printf("Failed to add member: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add member"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Member added successfully"})
}

func (h *TeamHandler) RemoveMember(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req RemoveMemberRequest

	if err := ctx.BindJSON(&req); err != nil || req.TeamID == "" || req.MemberID == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Team ID and member ID are required"})
		return
	}

	team, err := h.teams.FindByID(ctx.Request.Context(), req.TeamID)

	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			ctx.JSON(http.StatusForbidden, gin.H{"error": "Only team owners can remove members"})
			return
		}
		log.Printf("Failed to fetch team: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove member"})
		return
	}

	if !authz.CanManageTeam(currentUser.ID, team) {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Only team owners can remove members"})
		return
	}

	if err := h.teams.RemoveMember(ctx.Request.Context(), req.TeamID, req.MemberID); err != nil {
		log.Printf("Failed to remove member: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove member"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Member removed successfully"})
}

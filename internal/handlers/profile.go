package handlers

import (
	"log"
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"

	"github.com/taskhive-dev/taskhive/internal/store"
	"github.com/taskhive-dev/taskhive/internal/utils"
)

type ProfileHandler struct {
	users *store.UserStore
}

func NewProfileHandler(users *store.UserStore) *ProfileHandler {
	return &ProfileHandler{users: users}
}

type UpdateProfileRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Image string `json:"image"`
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Update overwrites the profile with the supplied fields. Omitted fields are
// cleared rather than kept, matching the previous behavior.
func (h *ProfileHandler) Update(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var req UpdateProfileRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if req.Email != "" && !emailPattern.MatchString(req.Email) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email format"})
		return
	}

	if req.Email != "" && (currentUser.Email == nil || req.Email != *currentUser.Email) {
		taken, err := h.users.EmailTakenByOther(ctx.Request.Context(), req.Email, currentUser.ID)

		if err != nil {
			log.Printf("Failed to check email: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		if taken {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Email is already taken"})
			return
		}
	}

	updated, err := h.users.UpdateProfile(
		ctx.Request.Context(),
		currentUser.ID,
		nilIfEmpty(req.Name),
		nilIfEmpty(req.Email),
		nilIfEmpty(req.Image),
	)

	if err != nil {
		log.Printf("Failed to update profile: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, updated)
}

func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

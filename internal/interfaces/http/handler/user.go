package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/shop/backend/internal/application/identity"
)

// UpdateProfileRequest represents the request body for profile updates
type UpdateProfileRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// UserHandler handles user profile HTTP requests
type UserHandler struct {
	BaseHandler
	userService *identity.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *identity.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// GetProfile returns the authenticated user's profile
func (h *UserHandler) GetProfile(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	profile, err := h.userService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, profile)
}

// UpdateProfile updates the authenticated user's profile
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	profile, err := h.userService.UpdateProfile(c.Request.Context(), userID, identity.UpdateProfileInput{
		Name: req.Name,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, profile)
}

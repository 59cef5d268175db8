package handlers

import (
	"net/http"

	"clinixsphere/models"
	"clinixsphere/services/user"
	"clinixsphere/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthHandler struct {
	Users user.UserService
}

func NewAuthHandler(users user.UserService) *AuthHandler {
	return &AuthHandler{Users: users}
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.UserRegistrationRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.Users.Register(c.Request.Context(), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	getLogger(c).Info("Registered user", zap.String("userId", resp.User.ID))
	c.JSON(http.StatusCreated, resp)
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.Users.Login(c.Request.Context(), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetProfile handles GET /patient/profile.
func (h *AuthHandler) GetProfile(c *gin.Context) {
	profile, err := h.Users.GetProfile(c.Request.Context(), currentUserID(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// UpdateProfile handles PUT /patient/profile.
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var req models.ProfileUpdateRequest
	if !bindJSON(c, &req) {
		return
	}
	profile, err := h.Users.UpdateProfile(c.Request.Context(), currentUserID(c), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

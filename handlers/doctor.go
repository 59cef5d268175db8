package handlers

import (
	"net/http"

	"clinixsphere/models"
	"clinixsphere/services/user"
	"clinixsphere/utils"

	"github.com/gin-gonic/gin"
)

type DoctorHandler struct {
	Users user.UserService
}

func NewDoctorHandler(users user.UserService) *DoctorHandler {
	return &DoctorHandler{Users: users}
}

func (h *DoctorHandler) ListDoctors(c *gin.Context) {
	doctors, err := h.Users.ListDoctors(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, doctors)
}

func (h *DoctorHandler) GetProfile(c *gin.Context) {
	profile, err := h.Users.GetDoctorProfile(c.Request.Context(), currentUserID(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *DoctorHandler) UpdateProfile(c *gin.Context) {
	var req models.DoctorProfileUpdate
	if !bindJSON(c, &req) {
		return
	}
	profile, err := h.Users.UpdateDoctorProfile(c.Request.Context(), currentUserID(c), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

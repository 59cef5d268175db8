package handlers

import (
	"net/http"

	"clinixsphere/models"
	"clinixsphere/services/availability"
	"clinixsphere/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AvailabilityHandler struct {
	Availability availability.AvailabilityService
}

func NewAvailabilityHandler(svc availability.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{Availability: svc}
}

// SetMine replaces the calling doctor's weekly availability.
func (h *AvailabilityHandler) SetMine(c *gin.Context) {
	var req models.SetAvailabilityRequest
	if !bindJSON(c, &req) {
		return
	}
	record, err := h.Availability.SetAvailability(c.Request.Context(), currentUserID(c), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	getLogger(c).Info("Availability updated", zap.String("doctorId", record.DoctorID))
	c.JSON(http.StatusOK, record)
}

// GetMine returns an empty object when the doctor has not set availability yet.
func (h *AvailabilityHandler) GetMine(c *gin.Context) {
	record, err := h.Availability.GetAvailability(c.Request.Context(), currentUserID(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	if record == nil {
		c.JSON(http.StatusOK, gin.H{})
		return
	}
	c.JSON(http.StatusOK, record)
}

// GetForDoctor lets a patient read a doctor's availability.
func (h *AvailabilityHandler) GetForDoctor(c *gin.Context) {
	record, err := h.Availability.GetAvailability(c.Request.Context(), c.Param("doctorId"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	if record == nil {
		utils.JSONError(c, http.StatusNotFound, "Availability not set", "")
		return
	}
	c.JSON(http.StatusOK, record)
}

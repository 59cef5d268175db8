package handlers

import (
	"net/http"
	"time"

	"clinixsphere/services/dashboard"
	"clinixsphere/utils"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	Dashboard dashboard.DashboardService
}

func NewDashboardHandler(svc dashboard.DashboardService) *DashboardHandler {
	return &DashboardHandler{Dashboard: svc}
}

func (h *DashboardHandler) Overview(c *gin.Context) {
	overview, err := h.Dashboard.Overview(c.Request.Context(), currentUserID(c), time.Now())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, overview)
}

// Schedule serves both /schedule and /schedule/:date.
func (h *DashboardHandler) Schedule(c *gin.Context) {
	views, err := h.Dashboard.Schedule(c.Request.Context(), currentUserID(c), c.Param("date"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

func (h *DashboardHandler) Patients(c *gin.Context) {
	patients, err := h.Dashboard.Patients(c.Request.Context(), currentUserID(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, patients)
}

func (h *DashboardHandler) PatientHistory(c *gin.Context) {
	history, err := h.Dashboard.PatientHistory(c.Request.Context(), currentUserID(c), c.Param("patientId"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, history)
}

package handlers

import (
	"net/http"

	"clinixsphere/models"
	"clinixsphere/services/prescription"
	"clinixsphere/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type PrescriptionHandler struct {
	Prescriptions prescription.PrescriptionService
}

func NewPrescriptionHandler(svc prescription.PrescriptionService) *PrescriptionHandler {
	return &PrescriptionHandler{Prescriptions: svc}
}

func (h *PrescriptionHandler) Create(c *gin.Context) {
	var req models.CreatePrescriptionRequest
	if !bindJSON(c, &req) {
		return
	}
	p, err := h.Prescriptions.Create(c.Request.Context(), currentUserID(c), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	getLogger(c).Info("Prescription created", zap.String("prescriptionId", p.ID), zap.String("appointmentId", p.AppointmentID))
	c.JSON(http.StatusCreated, p)
}

func (h *PrescriptionHandler) ListForDoctor(c *gin.Context) {
	list, err := h.Prescriptions.ListForDoctor(c.Request.Context(), currentUserID(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *PrescriptionHandler) ListForPatient(c *gin.Context) {
	list, err := h.Prescriptions.ListForPatient(c.Request.Context(), currentUserID(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *PrescriptionHandler) Get(c *gin.Context) {
	p, err := h.Prescriptions.GetForDoctor(c.Request.Context(), currentUserID(c), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

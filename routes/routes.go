package routes

import (
	"strings"
	"time"

	"clinixsphere/handlers"
	"clinixsphere/middleware"
	"clinixsphere/models"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers the public account endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/auth")
	{
		api.POST("/register", hb.Auth.Register)
		api.POST("/login", hb.Auth.Login)
	}
}

// RegisterAppointmentRoutes registers booking and status endpoints.
func RegisterAppointmentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/appointments")
	api.Use(middleware.JWTAuthMiddleware())
	{
		api.POST("", middleware.RequireRole(models.RolePatient), hb.Appointments.Book)
		api.GET("/mine", middleware.RequireRole(models.RoleDoctor), hb.Appointments.ListForDoctor)
		api.GET("/my-patient", middleware.RequireRole(models.RolePatient), hb.Appointments.ListForPatient)
		api.PATCH("/:id/status", middleware.RequireRole(models.RoleDoctor), hb.Appointments.UpdateStatus)
	}
}

// RegisterAvailabilityRoutes registers doctor availability endpoints.
func RegisterAvailabilityRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/doctor-availability")
	api.Use(middleware.JWTAuthMiddleware())
	{
		api.POST("", middleware.RequireRole(models.RoleDoctor), hb.Availability.SetMine)
		api.GET("/me", middleware.RequireRole(models.RoleDoctor), hb.Availability.GetMine)
		api.GET("/:doctorId", middleware.RequireRole(models.RolePatient), hb.Availability.GetForDoctor)
	}
}

// RegisterPrescriptionRoutes registers prescription endpoints.
func RegisterPrescriptionRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/prescriptions")
	api.Use(middleware.JWTAuthMiddleware())
	{
		api.POST("", middleware.RequireRole(models.RoleDoctor), hb.Prescriptions.Create)
		api.GET("/my", middleware.RequireRole(models.RolePatient), hb.Prescriptions.ListForPatient)
		api.GET("/mine", middleware.RequireRole(models.RoleDoctor), hb.Prescriptions.ListForDoctor)
		api.GET("/:id", middleware.RequireRole(models.RoleDoctor), hb.Prescriptions.Get)
	}
}

// RegisterDashboardRoutes registers the doctor dashboard.
func RegisterDashboardRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/doctor-dashboard")
	api.Use(middleware.JWTAuthMiddleware(), middleware.RequireRole(models.RoleDoctor))
	{
		api.GET("/profile", hb.Doctors.GetProfile)
		api.PUT("/profile", hb.Doctors.UpdateProfile)
		api.GET("/overview", hb.Dashboard.Overview)
		api.GET("/patients", hb.Dashboard.Patients)
		api.GET("/prescriptions", hb.Prescriptions.ListForDoctor)
		api.GET("/schedule", hb.Dashboard.Schedule)
		api.GET("/schedule/:date", hb.Dashboard.Schedule)
		api.GET("/patient-history/:patientId", hb.Dashboard.PatientHistory)
	}
}

// RegisterPatientRoutes registers the patient's own endpoints.
func RegisterPatientRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/patient")
	api.Use(middleware.JWTAuthMiddleware(), middleware.RequireRole(models.RolePatient))
	{
		api.GET("/profile", hb.Auth.GetProfile)
		api.PUT("/profile", hb.Auth.UpdateProfile)
		api.POST("/appointments", hb.Appointments.Book)
		api.GET("/doctors", hb.Doctors.ListDoctors)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", handlers.Health)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, corsOrigin string) {
	origins := []string{"*"}
	if corsOrigin != "" && corsOrigin != "*" {
		origins = strings.Split(corsOrigin, ",")
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: origins[0] != "*",
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterAuthRoutes(r, hb)
	RegisterAppointmentRoutes(r, hb)
	RegisterAvailabilityRoutes(r, hb)
	RegisterPrescriptionRoutes(r, hb)
	RegisterDashboardRoutes(r, hb)
	RegisterPatientRoutes(r, hb)
}

package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"clinic-scheduler-server/internal/config"
	"clinic-scheduler-server/internal/handlers"
	"clinic-scheduler-server/internal/middleware"
	"clinic-scheduler-server/internal/models"
)

// SetupRoutes configures the application routes.
func SetupRoutes(router *gin.Engine, db *gorm.DB, cfg *config.Config) {
	// Initialize handlers
	authHandler := handlers.NewAuthHandler(db, cfg)
	appointmentHandler := handlers.NewAppointmentHandler(db, models.ResolverFor(cfg.PatientResolution))
	patientHandler := handlers.NewPatientHandler(db)

	// Auth routes
	auth := router.Group("/auth")
	{
		auth.POST("/signup", authHandler.Signup)
		auth.POST("/login", authHandler.Login)
	}
	authAdmin := router.Group("/auth")
	authAdmin.Use(middleware.AuthMiddleware(cfg), middleware.AdminOnly(db))
	{
		authAdmin.GET("/users", authHandler.GetUsers)
	}

	// Appointment routes open to the booking kiosk
	appointments := router.Group("/appointments")
	{
		appointments.GET("/count-for-today", appointmentHandler.GetTodayAppointmentSummary)
		appointments.GET("/get-available-time-slots", appointmentHandler.GetAvailableTimeSlots)
		appointments.POST("/create", appointmentHandler.CreateAppointment)
		appointments.POST("/create-time-slot", appointmentHandler.CreateTimeSlot)
		appointments.PUT("/update-time-slot/:uid", appointmentHandler.UpdateTimeSlot)
		appointments.DELETE("/delete-time-slot/:uid", appointmentHandler.DeleteTimeSlot)
		appointments.POST("/by-patient", appointmentHandler.GetAppointmentsByPatient)
		appointments.DELETE("/delete/:uid", appointmentHandler.DeleteAppointment)
	}

	// Staff-only appointment routes
	guarded := router.Group("/appointments")
	guarded.Use(middleware.AuthMiddleware(cfg))
	{
		guarded.GET("/by-date/:date", appointmentHandler.GetAppointmentsByDate)
		guarded.POST("/call-patient", appointmentHandler.CallPatient)
	}

	// Patient directory routes
	patients := router.Group("/patients")
	{
		patients.GET("", patientHandler.GetPatients)
		patients.GET("/:id", patientHandler.GetPatientByID)
		patients.POST("", patientHandler.CreatePatient)
		patients.PUT("/:id", patientHandler.UpdatePatient)
		patients.DELETE("/:id", patientHandler.DeletePatient)
	}

	// Simple health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "UP"})
	})
}

package routes

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"

	"clinic-app-server/internal/config"
	"clinic-app-server/internal/handlers"
	"clinic-app-server/internal/middleware"
	"clinic-app-server/internal/repository"
	"clinic-app-server/internal/service"
)

// SetupRoutes wires stores, services and handlers and registers all API
// routes on the router.
func SetupRoutes(router *gin.Engine, cfg *config.Config, db *gorm.DB, mongoDB *mongo.Database) error {
	admins := repository.NewAdminStore(db)
	doctors := repository.NewDoctorStore(db)
	patients := repository.NewPatientStore(db)
	appointments := repository.NewAppointmentStore(db)
	prescriptions, err := repository.NewPrescriptionStore(context.Background(), mongoDB)
	if err != nil {
		return err
	}

	tokens := service.NewTokenService(cfg.JWTSecret, cfg.TokenExpiryDays, admins, doctors, patients)
	adminService := service.NewAdminService(admins, tokens)
	doctorService := service.NewDoctorService(doctors, appointments, tokens)
	patientService := service.NewPatientService(patients, tokens)
	scheduling := service.NewSchedulingService(appointments, doctors, patients, tokens, doctorService, cfg.StrictStatusTransitions)
	prescriptionService := service.NewPrescriptionService(prescriptions, appointments, scheduling)

	adminHandler := handlers.NewAdminHandler(adminService)
	doctorHandler := handlers.NewDoctorHandler(doctorService, tokens)
	patientHandler := handlers.NewPatientHandler(patientService, scheduling)
	appointmentHandler := handlers.NewAppointmentHandler(scheduling, patientService)
	prescriptionHandler := handlers.NewPrescriptionHandler(prescriptionService)

	loginRate := middleware.RateLimit(middleware.NewRateLimiter(cfg.LoginRateLimit, cfg.LoginRateBurst))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")

	admin := api.Group("/admin")
	{
		admin.POST("/login", loginRate, adminHandler.Login)
	}

	doctor := api.Group("/doctor")
	{
		doctor.POST("/login", loginRate, doctorHandler.Login)
		doctor.GET("", doctorHandler.List)
		doctor.GET("/filter/:name/:time/:specialty", doctorHandler.Filter)
		doctor.GET("/availability/:role/:id/:date", doctorHandler.Availability)

		adminOnly := doctor.Group("", middleware.RequireRole(tokens, service.RoleAdmin))
		adminOnly.POST("", doctorHandler.Create)
		adminOnly.PUT("/:id", doctorHandler.Update)
		adminOnly.DELETE("/:id", doctorHandler.Delete)
	}

	patient := api.Group("/patient")
	{
		patient.POST("", patientHandler.Register)
		patient.POST("/login", loginRate, patientHandler.Login)

		patientOnly := patient.Group("", middleware.RequireRole(tokens, service.RolePatient))
		patientOnly.GET("/me", patientHandler.Me)
		patientOnly.GET("/appointments", patientHandler.Appointments)
		patientOnly.GET("/appointments/filter", patientHandler.FilterAppointments)
	}

	appts := api.Group("/appointments")
	{
		appts.POST("", middleware.RequireRole(tokens, service.RolePatient), appointmentHandler.Book)
		appts.DELETE("/:id", middleware.RequireRole(tokens, service.RolePatient), appointmentHandler.Cancel)

		appts.GET("", middleware.RequireRole(tokens, service.RoleDoctor), appointmentHandler.ListForDoctor)
		appts.PUT("", middleware.RequireRole(tokens, service.RoleDoctor), appointmentHandler.Update)
		appts.PATCH("/:id/status", middleware.RequireRole(tokens, service.RoleDoctor), appointmentHandler.ChangeStatus)
	}

	prescription := api.Group("/prescription", middleware.RequireRole(tokens, service.RoleDoctor))
	{
		prescription.POST("", prescriptionHandler.Create)
		prescription.GET("/:appointmentId", prescriptionHandler.ByAppointment)
	}

	return nil
}

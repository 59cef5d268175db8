// File: clinixsphere/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"clinixsphere/config"
	"clinixsphere/cron"
	"clinixsphere/database"
	appointmentRepo "clinixsphere/database/repository/appointment"
	availabilityRepo "clinixsphere/database/repository/availability"
	doctorRepo "clinixsphere/database/repository/doctor"
	prescriptionRepo "clinixsphere/database/repository/prescription"
	userRepoPkg "clinixsphere/database/repository/user"
	"clinixsphere/handlers"
	"clinixsphere/middleware"
	"clinixsphere/routes"
	"clinixsphere/services/availability"
	"clinixsphere/services/booking"
	"clinixsphere/services/dashboard"
	"clinixsphere/services/notification"
	"clinixsphere/services/prescription"
	"clinixsphere/services/tasks"
	"clinixsphere/services/user"
	"clinixsphere/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

type indexer interface {
	EnsureIndexes(ctx context.Context) error
}

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	if err := database.InitDB(); err != nil {
		logger.Sugar().Fatalf("main: failed to connect to MongoDB: %v", err)
	}
	utils.InitCache()
	db := database.Database()

	// repositories.
	userRepo := userRepoPkg.NewMongoUserRepo(db)
	docRepo := doctorRepo.NewMongoDoctorRepo(db)
	availRepo := availabilityRepo.NewMongoAvailabilityRepo(db)
	apptRepo := appointmentRepo.NewMongoAppointmentRepo(db)
	rxRepo := prescriptionRepo.NewMongoPrescriptionRepo(db)

	indexCtx, cancelIndex := context.WithTimeout(context.Background(), 30*time.Second)
	for _, repo := range []indexer{userRepo, docRepo, availRepo, apptRepo, rxRepo} {
		if err := repo.EnsureIndexes(indexCtx); err != nil {
			logger.Sugar().Fatalf("main: failed to create indexes: %v", err)
		}
	}
	cancelIndex()

	loc := config.ClinicLocation()

	// services.
	userService := user.NewUserService(userRepo, docRepo, config.AppConfig.JWTTTL)
	availabilityService := availability.NewAvailabilityService(availRepo, utils.CacheClient, config.AppConfig.AvailabilityCacheTTL)
	engine := booking.NewSchedulingEngine(userService, availabilityService, apptRepo, booking.Options{
		Location:        loc,
		CancelledBlocks: config.AppConfig.CancelledBlocksSlot,
		Duration:        utils.AppointmentDuration,
	})
	prescriptionService := prescription.NewPrescriptionService(rxRepo, apptRepo)
	dashboardService := dashboard.NewDashboardService(apptRepo, rxRepo, userService, loc)

	// reminders.
	reminderClient := asynq.NewClient(cron.ReminderRedisOpt())
	defer reminderClient.Close()
	reminders := tasks.NewReminderScheduler(reminderClient, config.AppConfig.ReminderLead)
	worker := cron.InitReminderWorker(apptRepo, notification.NewLogNotificationService(logger))

	queueRedis := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	})
	defer queueRedis.Close()
	monitor, err := cron.StartHealthMonitor(&utils.HealthChecker{
		RedisClients: []*redis.Client{utils.CacheClient, queueRedis},
		MongoClient:  database.MongoClient,
	}, cron.HealthCheckSpec)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to start health monitor: %v", err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		Auth:          handlers.NewAuthHandler(userService),
		Doctors:       handlers.NewDoctorHandler(userService),
		Availability:  handlers.NewAvailabilityHandler(availabilityService),
		Appointments:  handlers.NewAppointmentHandler(engine, reminders, userService, loc),
		Prescriptions: handlers.NewPrescriptionHandler(prescriptionService),
		Dashboard:     handlers.NewDashboardHandler(dashboardService),
	}
	routes.RegisterRoutes(router, handlerBundle, config.AppConfig.CORSOrigin)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Info("Starting server", zap.String("addr", srv.Addr), zap.String("timezone", loc.String()))
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}
	worker.Shutdown()
	<-monitor.Stop().Done()
	if err := database.MongoClient.Disconnect(ctx); err != nil {
		logger.Warn("main: MongoDB disconnect failed", zap.Error(err))
	}

	logger.Sugar().Info("main: server stopped gracefully")
}

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"carehub/internal/auth"
	"carehub/internal/config"
	"carehub/internal/database"
	"carehub/internal/handler"
	"carehub/internal/mailer"
	"carehub/internal/middleware"
	"carehub/internal/repository"
	"carehub/internal/scheduler"
	"carehub/internal/service"
	"carehub/internal/ws"
)

// @title           CareHub API
// @version         1.0
// @description     Multi-tenant care facility management backend: residents, care charting, medications, staff requests.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	db, err := database.NewConnection(cfg.DB.DSN())
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	log.Info().Msg("connected to PostgreSQL")

	// WebSocket hub for care-record events
	hub := ws.NewHub()
	go hub.Run()

	codec := auth.NewCodec(cfg.Token)
	guard := auth.NewBootstrapGuard(db)
	notifier := mailer.New(cfg.Email)

	// Repositories
	txManager := repository.NewTransactionManager(db)
	userRepo := repository.NewUserRepository(db)
	facilityRepo := repository.NewFacilityRepository(db)
	branchRepo := repository.NewBranchRepository(db)
	patientRepo := repository.NewPatientRepository(db)
	chartRepo := repository.NewChartRepository(db)
	vitalRepo := repository.NewVitalRepository(db)
	medicationRepo := repository.NewMedicationRepository(db)
	administrationRepo := repository.NewAdministrationRepository(db)
	progressRepo := repository.NewProgressRepository(db)
	leaveRepo := repository.NewLeaveRepository(db)
	incidentRepo := repository.NewIncidentRepository(db)
	groceryRepo := repository.NewGroceryRepository(db)
	utilityRepo := repository.NewUtilityRepository(db)
	assessmentRepo := repository.NewAssessmentRepository(db)
	appointmentRepo := repository.NewAppointmentRepository(db)
	sleepRepo := repository.NewSleepRepository(db)

	// Services
	authService := service.NewAuthService(userRepo, codec, guard, notifier)
	userService := service.NewUserService(userRepo, branchRepo, guard, notifier)
	facilityService := service.NewFacilityService(facilityRepo, branchRepo)
	patientService := service.NewPatientService(patientRepo, branchRepo)
	chartService := service.NewChartService(chartRepo, patientRepo, userRepo, txManager, notifier, hub)
	vitalService := service.NewVitalService(vitalRepo, patientRepo, userRepo, txManager, notifier, hub)
	medicationService := service.NewMedicationService(medicationRepo, administrationRepo, patientRepo, userRepo, txManager, notifier, hub)
	progressService := service.NewProgressService(progressRepo, patientRepo, userRepo, txManager, notifier, hub)
	leaveService := service.NewLeaveService(leaveRepo, notifier)
	incidentService := service.NewIncidentService(incidentRepo, notifier)
	groceryService := service.NewGroceryService(groceryRepo, notifier)
	utilityService := service.NewUtilityService(utilityRepo, notifier)
	assessmentService := service.NewAssessmentService(assessmentRepo, patientRepo)
	appointmentService := service.NewAppointmentService(appointmentRepo, patientRepo)
	sleepService := service.NewSleepService(sleepRepo, patientRepo)

	// Middleware shared across route groups
	authenticate := middleware.Authenticate(codec, userRepo)
	superuserGate := middleware.SuperuserGate(guard, authenticate)

	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})

	router.GET("/ws", func(c *gin.Context) {
		ws.ServeWs(hub, c, codec)
	})

	api := router.Group("")
	handler.NewAuthHandler(authService).RegisterRoutes(api, authenticate)
	handler.NewUserHandler(userService).RegisterRoutes(api, authenticate, superuserGate)
	handler.NewFacilityHandler(facilityService).RegisterRoutes(api, authenticate)
	handler.NewPatientHandler(patientService).RegisterRoutes(api, authenticate)
	handler.NewChartHandler(chartService).RegisterRoutes(api, authenticate)
	handler.NewVitalHandler(vitalService).RegisterRoutes(api, authenticate)
	handler.NewMedicationHandler(medicationService).RegisterRoutes(api, authenticate)
	handler.NewProgressHandler(progressService).RegisterRoutes(api, authenticate)
	handler.NewLeaveHandler(leaveService).RegisterRoutes(api, authenticate)
	handler.NewIncidentHandler(incidentService).RegisterRoutes(api, authenticate)
	handler.NewGroceryHandler(groceryService).RegisterRoutes(api, authenticate)
	handler.NewUtilityHandler(utilityService).RegisterRoutes(api, authenticate)
	handler.NewAssessmentHandler(assessmentService).RegisterRoutes(api, authenticate)
	handler.NewAppointmentHandler(appointmentService).RegisterRoutes(api, authenticate)
	handler.NewSleepHandler(sleepService).RegisterRoutes(api, authenticate)

	// Background jobs
	jobCtx, cancelJobs := context.WithCancel(context.Background())
	defer cancelJobs()
	jobs := scheduler.New(userRepo, assessmentRepo, notifier,
		time.Duration(cfg.BirthdayJobHours)*time.Hour,
		time.Duration(cfg.AssessmentJobHours)*time.Hour)
	jobs.Start(jobCtx)

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		log.Info().Msg("shutting down")
		cancelJobs()
		os.Exit(0)
	}()

	log.Info().Str("port", cfg.Port).Msg("server listening")
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
}

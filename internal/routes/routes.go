package routes

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"

	"github.com/aaafasf/PETPOCKEBACKEND1/internal/audit"
	"github.com/aaafasf/PETPOCKEBACKEND1/internal/cache"
	"github.com/aaafasf/PETPOCKEBACKEND1/internal/config"
	"github.com/aaafasf/PETPOCKEBACKEND1/internal/fieldcrypt"
	"github.com/aaafasf/PETPOCKEBACKEND1/internal/handlers"
	infraRepo "github.com/aaafasf/PETPOCKEBACKEND1/internal/infra/repository"
	"github.com/aaafasf/PETPOCKEBACKEND1/internal/middleware"
	ucAppointment "github.com/aaafasf/PETPOCKEBACKEND1/internal/usecase/appointment"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	mongoDB *mongo.Database,
	codec *fieldcrypt.Codec,
	cfg *config.Config,
) {

	// ======================================================
	// INFRA (constructed once, passed by reference)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)
	detailStore := infraRepo.NewDetailMongoStore(mongoDB)
	statsCache := cache.NewStatsCache(cfg.RedisAddr)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	// ======================================================
	// USE CASES — APPOINTMENT LIFECYCLE
	// ======================================================
	createUC := ucAppointment.NewCreateAppointment(
		appointmentRepo,
		detailStore,
		codec,
		auditDispatcher,
	)

	getUC := ucAppointment.NewGetAppointment(appointmentRepo, detailStore, codec)

	listByClientUC := ucAppointment.NewListByClient(appointmentRepo, detailStore, codec)

	updateUC := ucAppointment.NewUpdateAppointment(
		appointmentRepo,
		detailStore,
		codec,
		auditDispatcher,
	)

	rescheduleUC := ucAppointment.NewRescheduleAppointment(
		appointmentRepo,
		detailStore,
		auditDispatcher,
	)

	changeStateUC := ucAppointment.NewChangeState(
		appointmentRepo,
		detailStore,
		auditDispatcher,
		cfg.Timezone,
	)

	listUC := ucAppointment.NewListAppointments(
		appointmentRepo,
		detailStore,
		codec,
	)

	cancelUC := ucAppointment.NewCancelAppointment(changeStateUC)

	availabilityUC := ucAppointment.NewCheckAvailability(appointmentRepo)

	statisticsUC := ucAppointment.NewStatistics(appointmentRepo, statsCache)

	// ======================================================
	// HANDLERS
	// ======================================================
	appointmentHandler := handlers.NewAppointmentHandler(
		createUC,
		getUC,
		listUC,
		listByClientUC,
		updateUC,
		rescheduleUC,
		changeStateUC,
		cancelUC,
		availabilityUC,
		statisticsUC,
	)

	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// availability is a public read so the booking page can
		// poll it before a client signs in
		api.GET("/availability", appointmentHandler.Availability)

		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.POST("/appointments", appointmentHandler.Create)
			secured.GET("/appointments", appointmentHandler.List)
			secured.GET("/calendar", appointmentHandler.Calendar)
			secured.GET("/appointments/:id", appointmentHandler.Get)
			secured.PUT("/appointments/:id", appointmentHandler.Update)
			secured.PATCH("/appointments/:id/reschedule", appointmentHandler.Reschedule)
			secured.PATCH("/appointments/:id/state", appointmentHandler.ChangeState)
			secured.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)

			secured.GET("/clients/:clientId/appointments", appointmentHandler.ListByClient)

			secured.GET("/statistics", appointmentHandler.Statistics)

			secured.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}

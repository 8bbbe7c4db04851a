package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/stable-scheduler/internal/audit"
	"github.com/BruksfildServices01/stable-scheduler/internal/cache"
	"github.com/BruksfildServices01/stable-scheduler/internal/config"
	"github.com/BruksfildServices01/stable-scheduler/internal/handlers"
	infraRepo "github.com/BruksfildServices01/stable-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/stable-scheduler/internal/media"
	"github.com/BruksfildServices01/stable-scheduler/internal/middleware"
	ucReservation "github.com/BruksfildServices01/stable-scheduler/internal/usecase/reservation"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	cfg *config.Config,
	dayCache *cache.Cache,
	uploader *media.Uploader,
) {

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	reservationRepo := infraRepo.NewReservationGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	// ======================================================
	// 🧠 USE CASES — RESERVAS
	// ======================================================
	checkConflictsUC := ucReservation.NewCheckConflicts(reservationRepo)
	suggestSlotsUC := ucReservation.NewSuggestSlots(reservationRepo)

	createReservationUC := ucReservation.NewCreateReservation(
		reservationRepo,
		auditDispatcher,
		dayCache,
	)

	updateReservationUC := ucReservation.NewUpdateReservation(
		reservationRepo,
		auditDispatcher,
		dayCache,
	)

	cancelReservationUC := ucReservation.NewCancelReservation(
		reservationRepo,
		auditDispatcher,
		dayCache,
	)

	reviewReservationUC := ucReservation.NewReviewReservation(
		reservationRepo,
		auditDispatcher,
		dayCache,
	)

	completeReservationUC := ucReservation.NewCompleteReservation(
		reservationRepo,
		auditDispatcher,
		dayCache,
	)

	listByDateUC := ucReservation.NewListReservationsByDate(reservationRepo)
	listByMonthUC := ucReservation.NewListReservationsByMonth(reservationRepo)
	dayScheduleUC := ucReservation.NewGetDaySchedule(reservationRepo)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)
	stableHandler := handlers.NewStableHandler(db)

	facilityHandler := handlers.NewFacilityHandler(db, dayCache)
	horseHandler := handlers.NewHorseHandler(db, uploader)

	reservationHandler := handlers.NewReservationHandler(
		db,
		checkConflictsUC,
		suggestSlotsUC,
		createReservationUC,
		updateReservationUC,
		cancelReservationUC,
		reviewReservationUC,
		completeReservationUC,
		listByDateUC,
		listByMonthUC,
		dayScheduleUC,
	)

	auditLogsHandler := handlers.NewAuditLogsHandler(db)
	publicHandler := handlers.NewPublicHandler(db, dayCache, dayScheduleUC)

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🌐 API PÚBLICA
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/:slug/facilities", publicHandler.ListFacilities)
			publicAPI.GET("/:slug/facilities/:id/availability", publicHandler.DayAvailability)
		}

		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// 🔐 API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)

			secured.GET("/me/stable", stableHandler.GetMeStable)
			secured.PATCH("/me/stable", stableHandler.UpdateMeStable)

			secured.GET("/me/horses", horseHandler.List)
			secured.POST("/me/horses", horseHandler.Create)
			secured.PATCH("/me/horses/:id", horseHandler.Update)
			secured.DELETE("/me/horses/:id", horseHandler.Delete)
			secured.POST("/me/horses/:id/photo", horseHandler.UploadPhoto)

			secured.GET("/me/facilities", facilityHandler.List)
			secured.POST("/me/facilities", facilityHandler.Create)
			secured.PATCH("/me/facilities/:id", facilityHandler.Update)

			secured.GET("/me/facilities/:id/time-blocks", facilityHandler.GetTimeBlocks)
			secured.PUT("/me/facilities/:id/time-blocks", facilityHandler.UpdateTimeBlocks)
			secured.GET("/me/facilities/:id/exceptions", facilityHandler.GetExceptions)
			secured.PUT("/me/facilities/:id/exceptions", facilityHandler.UpdateExceptions)

			secured.GET("/me/facilities/:id/suggestions", reservationHandler.SuggestSlots)
			secured.GET("/me/facilities/:id/schedule", reservationHandler.DaySchedule)

			// ------------------------------
			// RESERVAS
			// ------------------------------
			secured.POST("/me/reservations/check-conflicts", reservationHandler.CheckConflicts)
			secured.POST("/me/reservations", reservationHandler.Create)
			secured.GET("/me/reservations", reservationHandler.ListByDate)
			secured.GET("/me/reservations/month", reservationHandler.ListByMonth)
			secured.PATCH("/me/reservations/:id", reservationHandler.Update)
			secured.PATCH("/me/reservations/:id/cancel", reservationHandler.Cancel)
			secured.PATCH("/me/reservations/:id/confirm", reservationHandler.Confirm)
			secured.PATCH("/me/reservations/:id/reject", reservationHandler.Reject)
			secured.PATCH("/me/reservations/:id/complete", reservationHandler.Complete)
			secured.PATCH("/me/reservations/:id/no-show", reservationHandler.MarkNoShow)

			secured.GET("/me/audit-logs", auditLogsHandler.List)
		}
	}
}

package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/salonat-app/salon-api/internal/assistant"
	"github.com/salonat-app/salon-api/internal/audit"
	"github.com/salonat-app/salon-api/internal/cache"
	"github.com/salonat-app/salon-api/internal/config"
	"github.com/salonat-app/salon-api/internal/handlers"
	infraRepo "github.com/salonat-app/salon-api/internal/infra/repository"
	"github.com/salonat-app/salon-api/internal/media"
	"github.com/salonat-app/salon-api/internal/middleware"
	ucAppointment "github.com/salonat-app/salon-api/internal/usecase/appointment"
)

// Deps carries the shared singletons built in main.
type Deps struct {
	DB        *gorm.DB
	Config    *config.Config
	Log       *zap.Logger
	Cache     *cache.Layered
	Generator assistant.Generator
	Storage   *media.Storage
}

func RegisterRoutes(r *gin.Engine, d Deps) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.RateLimitMiddleware(300, 300))

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(d.DB)

	auditLogger := audit.New(d.DB)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	history := assistant.NewHistory()
	assistantSvc := assistant.NewService(d.DB, d.Generator, history, d.Cache, d.Log)

	// ======================================================
	// USE CASES — APPOINTMENTS
	// ======================================================
	createAppointmentUC := ucAppointment.NewCreateAppointment(appointmentRepo, auditDispatcher)
	validateSlotUC := ucAppointment.NewValidateSlot(appointmentRepo)
	cancelAppointmentUC := ucAppointment.NewCancelAppointment(appointmentRepo, auditDispatcher)
	completeAppointmentUC := ucAppointment.NewCompleteAppointment(appointmentRepo, auditDispatcher)
	markAbsentUC := ucAppointment.NewMarkAbsent(appointmentRepo, auditDispatcher)
	listByDateUC := ucAppointment.NewListAppointmentsByDate(appointmentRepo)
	listByMonthUC := ucAppointment.NewListAppointmentsByMonth(appointmentRepo)
	availabilityUC := ucAppointment.NewGetAvailability(appointmentRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(d.DB, d.Config)
	meHandler := handlers.NewMeHandler(d.DB)
	salonHandler := handlers.NewSalonHandler(d.DB, auditDispatcher)
	staffHandler := handlers.NewStaffHandler(d.DB, auditDispatcher)
	scheduleHandler := handlers.NewScheduleHandler(d.DB, auditDispatcher)
	serviceHandler := handlers.NewServiceHandler(d.DB, auditDispatcher)

	appointmentHandler := handlers.NewAppointmentHandler(
		d.DB,
		createAppointmentUC,
		validateSlotUC,
		cancelAppointmentUC,
		completeAppointmentUC,
		markAbsentUC,
		listByDateUC,
		listByMonthUC,
	)

	discoveryHandler := handlers.NewDiscoveryHandler(d.DB, availabilityUC)
	customerHandler := handlers.NewCustomerHandler(d.DB, appointmentRepo, createAppointmentUC, cancelAppointmentUC)
	reviewHandler := handlers.NewReviewHandler(d.DB)
	chatHandler := handlers.NewChatHandler(assistantSvc)
	employeeHandler := handlers.NewEmployeeHandler(d.DB, appointmentRepo)
	adminHandler := handlers.NewAdminHandler(d.DB, auditDispatcher)
	subscriptionHandler := handlers.NewSubscriptionHandler(d.DB, d.Config, d.Log)
	mediaHandler := handlers.NewMediaHandler(d.DB, d.Storage, auditDispatcher, d.Log)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.DB)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		public := api.Group("/public")
		{
			public.GET("/salons", discoveryHandler.ListSalons)
			public.GET("/salons/:slug", discoveryHandler.GetBySlug)
			public.GET("/salons/:slug/services", discoveryHandler.ListServices)
			public.GET("/salons/:slug/reviews", discoveryHandler.ListReviews)
			public.GET("/salons/:slug/availability", discoveryHandler.GetAvailability)
		}

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)
		api.POST("/auth/staff-pin", authHandler.StaffPinLogin)
		api.POST("/auth/customer", authHandler.CustomerAuth)

		// ------------------------------
		// STRIPE WEBHOOK (unauthenticated, signed)
		// ------------------------------
		api.POST("/webhooks/stripe", subscriptionHandler.Webhook)

		// ------------------------------
		// SALON SIDE
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(d.Config))
		{
			secured.GET("/me", meHandler.GetMe)

			owner := secured.Group("/me")
			owner.Use(middleware.RequireRole(middleware.RoleOwner))
			{
				owner.GET("/salon", salonHandler.Get)
				owner.PATCH("/salon", salonHandler.Update)

				owner.GET("/staff", staffHandler.List)
				owner.POST("/staff", staffHandler.Create)
				owner.PATCH("/staff/:id", staffHandler.Update)

				owner.GET("/schedule", scheduleHandler.Get)
				owner.PUT("/schedule", scheduleHandler.Put)
				owner.GET("/schedule/exceptions", scheduleHandler.ListExceptions)
				owner.POST("/schedule/exceptions", scheduleHandler.CreateException)
				owner.DELETE("/schedule/exceptions/:id", scheduleHandler.DeleteException)
				owner.GET("/schedule/breaks", scheduleHandler.ListBreaks)
				owner.POST("/schedule/breaks", scheduleHandler.CreateBreak)
				owner.DELETE("/schedule/breaks/:id", scheduleHandler.DeleteBreak)

				owner.GET("/services", serviceHandler.List)
				owner.POST("/services", serviceHandler.Create)
				owner.PATCH("/services/:id", serviceHandler.Update)
				owner.DELETE("/services/:id", serviceHandler.Delete)

				owner.GET("/subscription", subscriptionHandler.Get)
				owner.POST("/subscription/checkout", subscriptionHandler.Checkout)

				owner.GET("/photos", mediaHandler.List)
				owner.POST("/photos", mediaHandler.Upload)
				owner.DELETE("/photos/:id", mediaHandler.Delete)

				owner.GET("/audit-logs", auditLogsHandler.List)
			}

			salonSide := secured.Group("/me")
			salonSide.Use(middleware.RequireRole(middleware.RoleOwner, middleware.RoleStaff))
			{
				salonSide.POST("/appointments", appointmentHandler.Create)
				salonSide.POST("/appointments/validate", appointmentHandler.Validate)
				salonSide.GET("/appointments", appointmentHandler.ListByDate)
				salonSide.GET("/appointments/month", appointmentHandler.ListByMonth)
				salonSide.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)
				salonSide.PATCH("/appointments/:id/complete", appointmentHandler.Complete)
				salonSide.PATCH("/appointments/:id/absent", appointmentHandler.MarkAbsent)

				salonSide.GET("/my-day", employeeHandler.MyDay)
			}

			// ------------------------------
			// PLATFORM ADMIN
			// ------------------------------
			admin := secured.Group("/admin")
			admin.Use(middleware.RequireRole(middleware.RoleAdmin))
			{
				admin.GET("/salons", adminHandler.ListSalons)
				admin.PATCH("/salons/:id/approve", adminHandler.ApproveSalon)
				admin.PATCH("/salons/:id/suspend", adminHandler.SuspendSalon)
				admin.GET("/stats", adminHandler.Stats)
			}
		}

		// ------------------------------
		// CUSTOMER APP
		// ------------------------------
		app := api.Group("/app")
		app.Use(middleware.CustomerAuthMiddleware(d.Config))
		{
			app.GET("/profile", customerHandler.GetProfile)
			app.PATCH("/profile", customerHandler.UpdateProfile)

			app.POST("/appointments", customerHandler.Book)
			app.GET("/appointments", customerHandler.ListAppointments)
			app.PATCH("/appointments/:id/cancel", customerHandler.CancelAppointment)

			app.POST("/reviews", reviewHandler.Create)

			chat := app.Group("/chat")
			chat.Use(middleware.RateLimitMiddleware(10, 5))
			{
				chat.POST("", chatHandler.Consult)
				chat.DELETE("", chatHandler.Reset)
			}
		}
	}
}

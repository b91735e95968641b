package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/booking-panel/internal/audit"
	"github.com/BruksfildServices01/booking-panel/internal/backend"
	"github.com/BruksfildServices01/booking-panel/internal/config"
	"github.com/BruksfildServices01/booking-panel/internal/handlers"
	infraRepo "github.com/BruksfildServices01/booking-panel/internal/infra/repository"
	"github.com/BruksfildServices01/booking-panel/internal/metrics"
	"github.com/BruksfildServices01/booking-panel/internal/middleware"
	"github.com/BruksfildServices01/booking-panel/internal/session"
	ucBooking "github.com/BruksfildServices01/booking-panel/internal/usecase/booking"
	"github.com/BruksfildServices01/booking-panel/internal/validators"
)

// Deps are the process singletons the routes are built from.
type Deps struct {
	Config  *config.Config
	Logger  zerolog.Logger
	Backend *backend.Client
	Store   infraRepo.Store
	Audit   *audit.Dispatcher
	Metrics *metrics.Metrics

	// AuditLogs is nil when audit events are not stored in a database.
	AuditLogs handlers.AuditLogReader
	// Resolver backs email domain checks; nil uses the system resolver.
	Resolver validators.Resolver
	Health   map[string]handlers.Pinger
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	cfg := d.Config

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(
		middleware.RequestID(),
		middleware.AccessLog(d.Logger, d.Metrics),
		middleware.CORSMiddleware(),
	)

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	stateRepo := infraRepo.NewBookingStateRepository(d.Store, cfg.WizardTTL)
	sessions := session.NewManager(d.Store, d.Backend, cfg.SessionTTL, cfg.JWTSecret)
	limiter := middleware.NewRateLimiter(cfg.PublicRateRPS, cfg.PublicRateBurst)

	// ======================================================
	// USE CASES
	// ======================================================
	wizardUC := ucBooking.NewWizardService(d.Backend, stateRepo, d.Audit, d.Metrics, d.Logger, cfg.Timezone)
	confirmationUC := ucBooking.NewConfirmationService(d.Backend, stateRepo, d.Audit, d.Metrics, d.Logger, cfg.Timezone)

	// ======================================================
	// HANDLERS
	// ======================================================
	publicHandler := handlers.NewPublicHandler(wizardUC, confirmationUC, cfg.DefaultBusinessID)
	authHandler := handlers.NewAuthHandler(sessions, cfg.CookieSecure, int(cfg.SessionTTL.Seconds()), d.Logger)
	panelHandler := handlers.NewPanelHandler(
		d.Backend,
		sessions,
		d.Audit,
		validators.NewEmailChecker(d.Resolver),
		cfg.Timezone,
		d.Logger,
	)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.Backend, d.AuditLogs)
	healthHandler := handlers.NewHealthHandler(d.Health)

	// ======================================================
	// OPS
	// ======================================================
	r.GET("/health", healthHandler.Health)
	r.GET("/metrics", gin.WrapH(d.Metrics.Handler()))

	// ======================================================
	// PUBLIC API (JSON)
	// ======================================================
	public := r.Group("/api/public")
	public.Use(middleware.Visitor(cfg.CookieSecure))
	{
		public.GET("/cities", publicHandler.Cities)
		public.GET("/cities/:businessID", publicHandler.Cities)

		// ------------------------------
		// WIZARD
		// ------------------------------
		wizard := public.Group("/wizard")
		{
			wizard.POST("", limiter.Middleware(), publicHandler.StartWizard)
			wizard.GET("/:id", publicHandler.GetWizard)
			wizard.GET("/:id/calendar", publicHandler.WizardCalendar)
			wizard.POST("/:id/flow", publicHandler.ChooseFlow)
			wizard.POST("/:id/worker", publicHandler.SelectWorker)
			wizard.POST("/:id/service", publicHandler.SelectService)
			wizard.POST("/:id/date", publicHandler.SelectDate)
			wizard.POST("/:id/slot", publicHandler.SelectSlot)
			wizard.POST("/:id/submit", limiter.Middleware(), publicHandler.Submit)
		}

		// ------------------------------
		// CONFIRMATION
		// ------------------------------
		appointments := public.Group("/appointments/:id")
		{
			appointments.GET("", publicHandler.Appointment)
			appointments.POST("/cancel", limiter.Middleware(), publicHandler.Cancel)
			appointments.POST("/reschedule", publicHandler.OpenReschedule)
			appointments.GET("/reschedule/calendar", publicHandler.RescheduleCalendar)
			appointments.POST("/reschedule/date", publicHandler.RescheduleDate)
			appointments.POST("/reschedule/slot", publicHandler.RescheduleSlot)
			appointments.POST("/reschedule/submit", limiter.Middleware(), publicHandler.SubmitReschedule)
		}
	}

	// ======================================================
	// AUTH
	// ======================================================
	r.GET(middleware.LoginPath, authHandler.LoginPage)
	r.POST(middleware.LoginPath, limiter.Middleware(), authHandler.Login)
	r.POST("/logout", authHandler.Logout)

	// ======================================================
	// PANELS (GUARDED)
	// ======================================================
	guard := middleware.RouteGuard(sessions, d.Logger)

	owner := r.Group("/owner", guard, middleware.RequireRole(backend.RoleOwner))
	{
		owner.GET("/businesses", panelHandler.ListBusinesses)
		owner.POST("/businesses", panelHandler.CreateBusiness)
		owner.PUT("/businesses/:id", panelHandler.UpdateBusiness)
		owner.DELETE("/businesses/:id", panelHandler.DeleteBusiness)

		owner.GET("/businesses/:id/branches", panelHandler.ListBusinessBranches)
		owner.POST("/businesses/:id/branches", panelHandler.CreateBranch)
		owner.PUT("/businesses/:id/branches/:branchID", panelHandler.UpdateBranch)
		owner.DELETE("/businesses/:id/branches/:branchID", panelHandler.DeleteBranch)

		owner.GET("/managers", panelHandler.ListManagers)
		owner.POST("/managers", panelHandler.CreateManager)
		owner.PUT("/managers/:id", panelHandler.UpdateManager)
		owner.DELETE("/managers/:id", panelHandler.DeleteManager)
		owner.POST("/branches/:id/managers/:managerID", panelHandler.AssignManager)

		registerCatalog(owner, panelHandler)

		owner.GET("/reports", panelHandler.Reports)
		owner.GET("/reports/export", panelHandler.ExportReports)
	}

	manager := r.Group("/manager", guard, middleware.RequireRole(backend.RoleManager))
	{
		manager.GET("/branches", panelHandler.ManagerBranches)
		manager.POST("/branches/:id/select", panelHandler.SelectBranch)

		manager.GET("/branches/:id/workers", panelHandler.ListWorkers)
		manager.GET("/branches/:id/workers/:workerID", panelHandler.GetWorker)
		manager.PUT("/branches/:id/workers/:workerID", panelHandler.UpdateWorker)
		manager.DELETE("/branches/:id/workers/:workerID", panelHandler.DeleteWorker)

		manager.GET("/workers/:id/work-hours", panelHandler.ListWorkHours)
		manager.POST("/workers/:id/work-hours", panelHandler.CreateWorkHours)
		manager.POST("/workers/:id/work-hours/batch", panelHandler.BatchWorkHours)
		manager.PUT("/workers/:id/work-hours/:hoursID", panelHandler.UpdateWorkHours)
		manager.DELETE("/workers/:id/work-hours/:hoursID", panelHandler.DeleteWorkHours)

		registerCatalog(manager, panelHandler)
	}

	worker := r.Group("/worker", guard, middleware.RequireRole(backend.RoleWorker))
	{
		worker.GET("/appointments", panelHandler.WorkerAppointments)
		worker.GET("/schedule", panelHandler.WorkerSchedule)
	}

	developer := r.Group("/developer", guard, middleware.RequireRole(backend.RoleDeveloper))
	{
		developer.POST("/owners", panelHandler.RegisterOwner)
		developer.GET("/audit-logs", auditLogsHandler.List)
	}
}

// registerCatalog mounts the position/service/price screens shared by owners
// and managers.
func registerCatalog(g *gin.RouterGroup, h *handlers.PanelHandler) {
	g.GET("/branches/:id/positions", h.ListPositions)
	g.POST("/branches/:id/positions", h.CreatePosition)
	g.PUT("/branches/:id/positions/:itemID", h.UpdatePosition)
	g.DELETE("/branches/:id/positions/:itemID", h.DeletePosition)

	g.GET("/branches/:id/services", h.ListServices)
	g.POST("/branches/:id/services", h.CreateService)
	g.PUT("/branches/:id/services/:itemID", h.UpdateService)
	g.DELETE("/branches/:id/services/:itemID", h.DeleteService)

	g.GET("/branches/:id/service-costs", h.ListCosts)
	g.POST("/branches/:id/service-costs", h.CreateCost)
	g.PUT("/branches/:id/service-costs/:itemID", h.UpdateCost)
	g.DELETE("/branches/:id/service-costs/:itemID", h.DeleteCost)
}

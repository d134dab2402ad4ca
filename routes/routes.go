package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sandeshk25/gym-management-backend/config"
	"github.com/sandeshk25/gym-management-backend/internal/auditlog"
	"github.com/sandeshk25/gym-management-backend/internal/auth"
	"github.com/sandeshk25/gym-management-backend/internal/event"
	"github.com/sandeshk25/gym-management-backend/internal/gym"
	"github.com/sandeshk25/gym-management-backend/internal/membership"
	"github.com/sandeshk25/gym-management-backend/internal/notification"
	"github.com/sandeshk25/gym-management-backend/internal/participation"
	"github.com/sandeshk25/gym-management-backend/internal/reports"
	"github.com/sandeshk25/gym-management-backend/internal/userprofile"
	"github.com/sandeshk25/gym-management-backend/middleware"
)

// Services bundles everything main.go needs after route setup
// (consumer startup, seeding).
type Services struct {
	Auth         auth.Service
	Audit        auditlog.Service
	Notification notification.Service
}

func Setup(r *gin.Engine, db *gorm.DB, cfg *config.Config) *Services {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})

	api := r.Group("/api/v1")
	api.Use(middleware.RateLimiter())     // Global rate limit per IP
	api.Use(middleware.AuditMiddleware()) // Capture client IP for audit trails

	// ========== Audit Log Module ==========
	auditRepo := auditlog.NewRepository(db)
	auditSvc := auditlog.NewService(auditRepo)
	auditHandler := auditlog.NewHandler(auditSvc)

	// ========== Auth ==========
	authRepo := auth.NewRepository(db)
	authSvc := auth.NewService(authRepo, cfg)
	authHandler := auth.NewHandler(authSvc)

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/refresh", authHandler.Refresh)

		authGroup.POST("/forgot-password", authHandler.ForgotPassword)
		authGroup.POST("/reset-password", authHandler.ResetPassword)

		// Public roles endpoint for registration (no auth required)
		authGroup.GET("/public-roles", authHandler.GetPublicRoles)

		authGroup.POST("/logout", middleware.AuthMiddleware(cfg, authSvc), authHandler.Logout)
	}

	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(cfg, authSvc))

	// ========== Audit Logs (SuperAdmin / GymAdmin) ==========
	auditRoutes := protected.Group("/auditlogs")
	auditRoutes.Use(middleware.RBACMiddleware("superadmin", "gymadmin"))
	{
		auditRoutes.GET("/", auditHandler.GetAuditLogs)
		auditRoutes.GET("/:id", auditHandler.GetAuditLogByID)
	}

	// ========== Gyms ==========
	gymRepo := gym.NewRepository(db)
	gymSvc := gym.NewService(gymRepo, auditSvc)
	gymHandler := gym.NewHandler(gymSvc)

	gymRoutes := protected.Group("/gyms")
	{
		gymRoutes.GET("/", gymHandler.ListGyms)
		gymRoutes.GET("/:id", gymHandler.GetGymByID)
		gymRoutes.POST("/", middleware.RBACMiddleware("superadmin", "gymadmin"), gymHandler.CreateGym)
	}

	// ========== Notifications ==========
	notificationRepo := notification.NewRepository(db)
	notificationSvc := notification.NewService(notificationRepo, authRepo, cfg, auditSvc)
	notificationHandler := notification.NewHandler(notificationSvc)

	notificationRoutes := protected.Group("/notifications")
	{
		notificationRoutes.POST("/send", middleware.RBACMiddleware("superadmin", "gymadmin", "trainer"), notificationHandler.SendNotification)
		notificationRoutes.GET("/in-app", notificationHandler.ListInApp)
		notificationRoutes.PUT("/in-app/:id/read", notificationHandler.MarkInAppAsRead)
		notificationRoutes.POST("/devices", notificationHandler.RegisterDevice)
		notificationRoutes.DELETE("/devices", notificationHandler.RemoveDevice)
	}

	// ========== Events ==========
	eventRepo := event.NewRepository(db)
	eventSvc := event.NewService(eventRepo, auditSvc)
	eventSvc.NotifSvc = notificationSvc
	eventHandler := event.NewHandler(eventSvc)

	// ========== Event Participations ==========
	participationRepo := participation.NewRepository(db)
	participationSvc := participation.NewService(participationRepo, eventRepo, auditSvc)
	participationHandler := participation.NewHandler(participationSvc)

	eventRoutes := protected.Group("/events")
	{
		eventRoutes.GET("/", eventHandler.ListEvents)
		eventRoutes.GET("/:id", eventHandler.GetEventByID)
		eventRoutes.POST("/", middleware.RequireWriteAccess(), eventHandler.CreateEvent)
		eventRoutes.PUT("/:id", middleware.RequireWriteAccess(), eventHandler.UpdateEvent)
		eventRoutes.DELETE("/:id", middleware.RequireWriteAccess(), eventHandler.CancelEvent)

		// Registration endpoints; static "participation" segment coexists
		// with the :id param routes above.
		eventRoutes.GET("/participation/me", participationHandler.ListMine)
		eventRoutes.GET("/participation/event/:id", participationHandler.ListForEvent)
		eventRoutes.POST("/participation", middleware.RBACMiddleware("member", "trainer"), participationHandler.Join)
		eventRoutes.DELETE("/participation/:id", participationHandler.Cancel)
		eventRoutes.PUT("/participation/:id/attended", middleware.RBACMiddleware("gymadmin", "trainer"), participationHandler.MarkAttended)
	}

	// ========== User Profiles ==========
	profileRepo := userprofile.NewRepository(db)
	profileSvc := userprofile.NewService(profileRepo, authRepo, gymRepo, auditSvc)
	profileHandler := userprofile.NewHandler(profileSvc)

	userRoutes := protected.Group("/users")
	{
		userRoutes.GET("/profile/me", profileHandler.GetMyProfile)
		userRoutes.PUT("/profile/me", profileHandler.CreateOrUpdateProfile)
		userRoutes.GET("/profile/:id", profileHandler.GetPublicProfile)
		userRoutes.POST("/memberships/:gymId", profileHandler.JoinGym)
		userRoutes.GET("/memberships", profileHandler.ListMemberships)
	}

	// ========== Membership Plans & Purchases ==========
	membershipRepo := membership.NewRepository(db)
	membershipSvc := membership.NewService(membershipRepo, cfg, auditSvc)
	membershipHandler := membership.NewHandler(membershipSvc)

	membershipRoutes := protected.Group("/memberships")
	{
		membershipRoutes.GET("/plans", membershipHandler.ListPlans)
		membershipRoutes.POST("/plans", middleware.RBACMiddleware("superadmin", "gymadmin"), membershipHandler.CreatePlan)
		membershipRoutes.DELETE("/plans/:id", middleware.RBACMiddleware("superadmin", "gymadmin"), membershipHandler.DeactivatePlan)
		membershipRoutes.POST("/purchase", middleware.RBACMiddleware("member", "trainer"), membershipHandler.StartPurchase)
		membershipRoutes.POST("/verify", membershipHandler.VerifyPayment)
		membershipRoutes.GET("/me", membershipHandler.ListMine)
		membershipRoutes.GET("/active", membershipHandler.GetActive)
	}

	// ========== Reports ==========
	reportsRepo := reports.NewRepository(db)
	reportsSvc := reports.NewService(reportsRepo, auditSvc)
	reportsHandler := reports.NewHandler(reportsSvc)

	reportRoutes := protected.Group("/reports")
	reportRoutes.Use(middleware.RBACMiddleware("superadmin", "gymadmin", "trainer"))
	{
		reportRoutes.GET("/event-attendance", reportsHandler.EventAttendance)
		reportRoutes.GET("/membership-revenue", reportsHandler.MembershipRevenue)
		reportRoutes.GET("/:report/export", reportsHandler.Export)
	}

	return &Services{
		Auth:         authSvc,
		Audit:        auditSvc,
		Notification: notificationSvc,
	}
}

package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/sandeshk25/gym-management-backend/config"
	"github.com/sandeshk25/gym-management-backend/database"
	"github.com/sandeshk25/gym-management-backend/internal/auditlog"
	"github.com/sandeshk25/gym-management-backend/internal/auth"
	"github.com/sandeshk25/gym-management-backend/internal/event"
	"github.com/sandeshk25/gym-management-backend/internal/gym"
	"github.com/sandeshk25/gym-management-backend/internal/membership"
	"github.com/sandeshk25/gym-management-backend/internal/notification"
	"github.com/sandeshk25/gym-management-backend/internal/participation"
	"github.com/sandeshk25/gym-management-backend/internal/userprofile"
	"github.com/sandeshk25/gym-management-backend/routes"
	"github.com/sandeshk25/gym-management-backend/utils"
)

func main() {
	cfg := config.Load()

	db := database.Connect(cfg)

	// Redis backs token caching and the event list cache
	if err := utils.InitRedis(); err != nil {
		log.Printf("⚠️ Redis unavailable: %v", err)
	}

	// Kafka carries participation records to the notification consumer
	utils.InitializeKafka()

	// Firebase - single initialization point
	log.Println("🔄 Initializing Firebase...")
	if err := utils.InitFirebase(); err != nil {
		log.Printf("⚠️ Firebase initialization failed: %v", err)
		log.Println("ℹ️ Continuing without Firebase (push notifications will be disabled)")
	} else if utils.IsFCMEnabled() {
		log.Println("✅ Firebase and FCM initialized successfully")
	} else {
		log.Println("⚠️ Firebase initialized but FCM client unavailable")
	}

	// Auto-migrate models
	log.Println("🔄 Running database migrations...")
	if err := db.AutoMigrate(
		&auth.UserRole{},
		&auth.User{},
		&auditlog.AuditLog{},
		&gym.Gym{},
		&event.Event{},
		&participation.EventParticipation{},
		&userprofile.MemberProfile{},
		&userprofile.EmergencyContact{},
		&userprofile.UserGymMembership{},
		&notification.NotificationLog{},
		&notification.InAppNotification{},
		&notification.FCMDeviceToken{},
		&membership.Plan{},
		&membership.Membership{},
	); err != nil {
		panic(fmt.Sprintf("❌ DB AutoMigrate failed: %v", err))
	}
	log.Println("✅ Database migrations completed")

	// Seed roles & super admin
	if err := auth.SeedUserRoles(db); err != nil {
		panic(fmt.Sprintf("❌ Failed to seed roles: %v", err))
	}
	if err := auth.SeedSuperAdminUser(db); err != nil {
		panic(fmt.Sprintf("❌ Failed to seed Super Admin: %v", err))
	}

	// Setup Gin router
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://127.0.0.1:5173", "http://localhost:4173", "http://127.0.0.1:4173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS", "HEAD"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "Content-Length", "X-Requested-With", "Cache-Control", "Pragma", "X-Gym-ID"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type", "Content-Disposition", "Cache-Control", "Pragma", "Expires"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	svcs := routes.Setup(router, db, cfg)

	// Kafka consumer turns participation records into notifications
	notification.StartKafkaConsumer(context.Background(), svcs.Notification)

	fmt.Printf("🚀 Server starting on port %s\n", cfg.Port)
	if utils.IsFCMEnabled() {
		fmt.Println("✅ Firebase Cloud Messaging enabled")
	} else {
		fmt.Println("ℹ️ Firebase Cloud Messaging disabled")
		if err := utils.GetInitError(); err != nil {
			fmt.Printf("   Reason: %v\n", err)
		}
	}

	if err := router.Run(":" + cfg.Port); err != nil {
		panic(fmt.Sprintf("Failed to start server: %v", err))
	}
}

package utils

import (
	"context"
	"fmt"
	"log"
	"os"
	"sync"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

var (
	FirebaseApp    *firebase.App
	FirebaseClient *messaging.Client
	once           sync.Once
	initErr        error
	isInitialized  bool
)

// InitFirebase initializes Firebase Admin SDK and FCM client (singleton pattern)
func InitFirebase() error {
	// Check if already initialized
	if isInitialized {
		log.Println("ℹ️  Firebase already initialized, skipping...")
		return initErr
	}

	once.Do(func() {
		ctx := context.Background()
		log.Println("🔄 Initializing Firebase...")

		// Get credentials path - prioritize GOOGLE_APPLICATION_CREDENTIALS
		credentialsPath := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")
		if credentialsPath == "" {
			credentialsPath = os.Getenv("FCM_CREDENTIALS_PATH")
		}
		if credentialsPath == "" {
			credentialsPath = "./serviceAccountKey.json"
		}

		// Get project ID from environment
		projectID := os.Getenv("FIREBASE_PROJECT_ID")
		if projectID == "" {
			projectID = os.Getenv("FCM_PROJECT_ID")
		}

		// Check if file exists
		if _, err := os.Stat(credentialsPath); os.IsNotExist(err) {
			log.Printf("⚠️  Firebase credentials file not found at: %s", credentialsPath)
			log.Println("ℹ️  Continuing without Firebase (push notifications will be disabled)")
			isInitialized = true
			initErr = fmt.Errorf("firebase credentials file not found: %s", credentialsPath)
			return
		}

		if projectID == "" {
			log.Println("⚠️  FIREBASE_PROJECT_ID not set - FCM will not work properly")
			isInitialized = true
			initErr = fmt.Errorf("FIREBASE_PROJECT_ID is required for FCM")
			return
		}

		config := &firebase.Config{
			ProjectID: projectID,
		}

		opt := option.WithCredentialsFile(credentialsPath)
		app, err := firebase.NewApp(ctx, config, opt)
		if err != nil {
			log.Printf("❌ Error initializing Firebase app: %v", err)
			isInitialized = true
			initErr = fmt.Errorf("firebase app initialization failed: %v", err)
			return
		}

		log.Printf("✅ Firebase app initialized successfully for project: %s", projectID)

		fcmClient, err := app.Messaging(ctx)
		if err != nil {
			log.Printf("❌ Error getting FCM client: %v", err)
			log.Println("ℹ️  Continuing without FCM (push notifications will be disabled)")
			FirebaseApp = app
			FirebaseClient = nil
			isInitialized = true
			initErr = fmt.Errorf("FCM client initialization failed: %v", err)
			return
		}

		log.Println("✅ FCM client initialized successfully")

		FirebaseApp = app
		FirebaseClient = fcmClient
		isInitialized = true
		initErr = nil
	})

	return initErr
}

// GetFCMClient returns the FCM client instance
func GetFCMClient() *messaging.Client {
	return FirebaseClient
}

// IsFCMEnabled checks if FCM is available
func IsFCMEnabled() bool {
	return FirebaseClient != nil
}

// GetInitError returns the initialization error if any
func GetInitError() error {
	return initErr
}

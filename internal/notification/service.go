package notification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"

	"github.com/sandeshk25/gym-management-backend/config"
	"github.com/sandeshk25/gym-management-backend/internal/auditlog"
	"github.com/sandeshk25/gym-management-backend/internal/auth"
	"github.com/sandeshk25/gym-management-backend/utils"
)

type Service interface {
	SendNotification(ctx context.Context, senderID, gymID uint, channel, subject, body string, recipients []string, ip string) error
	GetNotificationsByUser(ctx context.Context, userID uint) ([]NotificationLog, error)
	GetEmailsByAudience(gymID uint, audience string) ([]string, error)

	// In-app notifications
	CreateInAppNotification(ctx context.Context, userID, gymID uint, title, message, category string) error
	ListInAppByUser(ctx context.Context, userID uint, gymID *uint, limit int) ([]InAppNotification, error)
	MarkInAppAsRead(ctx context.Context, id uint, userID uint) error
	CountUnread(ctx context.Context, userID uint) (int64, error)

	// Fan-out helpers
	CreateInAppForGymRoles(ctx context.Context, gymID uint, roleNames []string, title, message, category string) error

	// FCM device token management
	RegisterDeviceToken(ctx context.Context, userID, gymID uint, deviceToken, deviceType, deviceName string) error
	RemoveDeviceToken(ctx context.Context, userID uint, deviceToken string) error

	// FCM push notifications
	SendPushNotification(ctx context.Context, senderID, gymID uint, title, body string, userIDs []uint, ip string) error
	SendPushToRoles(ctx context.Context, senderID, gymID uint, title, body string, roleNames []string, ip string) error
}

type service struct {
	repo     Repository
	authRepo auth.Repository
	auditSvc auditlog.Service
	email    Channel
	fcm      Channel
}

func NewService(repo Repository, authRepo auth.Repository, cfg *config.Config, auditSvc auditlog.Service) Service {
	return &service{
		repo:     repo,
		authRepo: authRepo,
		auditSvc: auditSvc,
		email:    NewEmailSender(cfg),
		fcm:      NewFCMChannel(),
	}
}

func (s *service) SendNotification(
	ctx context.Context,
	senderID, gymID uint,
	channel, subject, body string,
	recipients []string,
	ip string,
) error {
	if len(recipients) == 0 {
		return errors.New("no recipients specified")
	}

	recipientsJSON, _ := json.Marshal(recipients)
	log := &NotificationLog{
		UserID:     senderID,
		GymID:      gymID,
		Channel:    channel,
		Subject:    subject,
		Body:       body,
		Recipients: datatypes.JSON(recipientsJSON),
		Status:     "pending",
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}

	if err := s.repo.CreateNotificationLog(ctx, log); err != nil {
		return err
	}

	fmt.Printf("📨 Starting notification send: channel=%s, recipients=%d\n", channel, len(recipients))

	var sendErr error
	switch channel {
	case "email":
		sendErr = s.sendInBatches(s.email, recipients, subject, body, 50)
	case "push":
		// FCM supports 500 tokens per batch
		sendErr = s.sendInBatches(s.fcm, recipients, subject, body, 500)
	default:
		sendErr = fmt.Errorf("unsupported channel: %s", channel)
	}

	if sendErr != nil {
		errMsg := sendErr.Error()
		log.Status = "failed"
		log.Error = &errMsg
		fmt.Printf("❌ Notification send failed: %v\n", sendErr)
	} else {
		log.Status = "sent"
		fmt.Printf("✅ Notification sent successfully to %d recipients\n", len(recipients))
	}

	log.UpdatedAt = time.Now()
	updateErr := s.repo.UpdateNotificationLog(ctx, log)

	auditAction := "NOTIFICATION_SENT"
	switch channel {
	case "email":
		auditAction = "EMAIL_SENT"
	case "push":
		auditAction = "PUSH_NOTIFICATION_SENT"
	}

	status := "success"
	if sendErr != nil {
		status = "failure"
	}

	details := map[string]interface{}{
		"channel":          channel,
		"recipients_count": len(recipients),
		"subject":          subject,
	}

	if auditErr := s.auditSvc.LogAction(ctx, &senderID, &gymID, auditAction, details, ip, status); auditErr != nil {
		fmt.Printf("❌ Audit log error: %v\n", auditErr)
	}

	if sendErr != nil {
		return sendErr
	}
	return updateErr
}

// sendInBatches fans recipients out to a channel in fixed-size chunks,
// pacing between chunks so SMTP/FCM rate limits are not tripped.
func (s *service) sendInBatches(ch Channel, recipients []string, subject, body string, batchSize int) error {
	total := len(recipients)
	var lastErr error
	successCount := 0
	failedCount := 0

	for i := 0; i < total; i += batchSize {
		end := i + batchSize
		if end > total {
			end = total
		}

		batch := recipients[i:end]
		if err := ch.Send(batch, subject, body); err != nil {
			lastErr = err
			failedCount += len(batch)
		} else {
			successCount += len(batch)
		}

		if end < total {
			time.Sleep(200 * time.Millisecond)
		}
	}

	if successCount > 0 && failedCount > 0 {
		return fmt.Errorf("partial success: %d/%d sent, last error: %v", successCount, total, lastErr)
	}
	if failedCount == total && lastErr != nil {
		return fmt.Errorf("all batches failed: %v", lastErr)
	}
	return nil
}

// CreateInAppNotification stores a bell notification for a specific user
// and publishes it on the user's redis channel for live delivery.
func (s *service) CreateInAppNotification(ctx context.Context, userID, gymID uint, title, message, category string) error {
	item := &InAppNotification{
		UserID:    userID,
		GymID:     gymID,
		Title:     title,
		Message:   message,
		Category:  category,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := s.repo.CreateInApp(ctx, item); err != nil {
		return err
	}

	if utils.RedisClient != nil {
		payload, _ := json.Marshal(map[string]interface{}{
			"id":         item.ID,
			"user_id":    item.UserID,
			"gym_id":     item.GymID,
			"title":      item.Title,
			"message":    item.Message,
			"category":   item.Category,
			"is_read":    item.IsRead,
			"created_at": item.CreatedAt,
		})
		channel := fmt.Sprintf("notifications:user:%d", userID)
		_ = utils.RedisClient.Publish(utils.Ctx, channel, string(payload)).Err()
	}
	return nil
}

func (s *service) ListInAppByUser(ctx context.Context, userID uint, gymID *uint, limit int) ([]InAppNotification, error) {
	return s.repo.ListInAppByUser(ctx, userID, gymID, limit)
}

func (s *service) MarkInAppAsRead(ctx context.Context, id uint, userID uint) error {
	return s.repo.MarkInAppAsRead(ctx, id, userID)
}

func (s *service) CountUnread(ctx context.Context, userID uint) (int64, error) {
	return s.repo.CountUnread(ctx, userID)
}

func (s *service) CreateInAppForGymRoles(ctx context.Context, gymID uint, roleNames []string, title, message, category string) error {
	unique := make(map[uint]struct{})
	for _, role := range roleNames {
		ids, err := s.authRepo.GetUserIDsByRole(role, gymID)
		if err != nil {
			return err
		}
		for _, id := range ids {
			unique[id] = struct{}{}
		}
	}
	for uid := range unique {
		if err := s.CreateInAppNotification(ctx, uid, gymID, title, message, category); err != nil {
			fmt.Printf("in-app fanout error for user %d: %v\n", uid, err)
		}
	}
	return nil
}

func (s *service) GetNotificationsByUser(ctx context.Context, userID uint) ([]NotificationLog, error) {
	return s.repo.GetNotificationsByUser(ctx, userID)
}

func (s *service) GetEmailsByAudience(gymID uint, audience string) ([]string, error) {
	switch audience {
	case "members":
		return s.authRepo.GetUserEmailsByRole("member", gymID)
	case "trainers":
		return s.authRepo.GetUserEmailsByRole("trainer", gymID)
	case "all":
		members, err1 := s.authRepo.GetUserEmailsByRole("member", gymID)
		trainers, err2 := s.authRepo.GetUserEmailsByRole("trainer", gymID)

		if err1 != nil && err2 != nil {
			return nil, fmt.Errorf("failed to fetch both audiences: %v | %v", err1, err2)
		}
		if err1 != nil {
			return trainers, nil
		}
		if err2 != nil {
			return members, nil
		}

		return append(members, trainers...), nil
	default:
		return nil, fmt.Errorf("invalid audience: %s", audience)
	}
}

func (s *service) RegisterDeviceToken(ctx context.Context, userID, gymID uint, deviceToken, deviceType, deviceName string) error {
	token := &FCMDeviceToken{
		UserID:      userID,
		GymID:       gymID,
		DeviceToken: deviceToken,
		DeviceType:  deviceType,
		DeviceName:  deviceName,
		IsActive:    true,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	return s.repo.SaveDeviceToken(ctx, token)
}

func (s *service) RemoveDeviceToken(ctx context.Context, userID uint, deviceToken string) error {
	return s.repo.RemoveDeviceToken(ctx, userID, deviceToken)
}

func (s *service) SendPushNotification(ctx context.Context, senderID, gymID uint, title, body string, userIDs []uint, ip string) error {
	var allTokens []string

	for _, userID := range userIDs {
		tokens, err := s.repo.GetUserDeviceTokens(ctx, userID, gymID)
		if err != nil {
			fmt.Printf("⚠️  Failed to get tokens for user %d: %v\n", userID, err)
			continue
		}
		allTokens = append(allTokens, tokens...)
	}

	if len(allTokens) == 0 {
		return errors.New("no device tokens found for specified users")
	}

	return s.SendNotification(ctx, senderID, gymID, "push", title, body, allTokens, ip)
}

func (s *service) SendPushToRoles(ctx context.Context, senderID, gymID uint, title, body string, roleNames []string, ip string) error {
	tokens, err := s.repo.GetDeviceTokensByGymAndRole(ctx, gymID, roleNames)
	if err != nil {
		return fmt.Errorf("failed to get device tokens for roles: %v", err)
	}

	if len(tokens) == 0 {
		return errors.New("no device tokens found for specified roles")
	}

	return s.SendNotification(ctx, senderID, gymID, "push", title, body, tokens, ip)
}

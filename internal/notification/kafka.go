package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/sandeshk25/gym-management-backend/utils"
)

// StartKafkaConsumer drains the participation topic and turns each record
// into an in-app notification (plus a push when the member has device
// tokens). Runs until ctx is cancelled; a nil reader (no brokers) is a
// no-op so local setups work without Kafka.
func StartKafkaConsumer(ctx context.Context, svc Service) {
	reader := utils.NewParticipationReader()
	if reader == nil {
		log.Println("⚠️ Kafka consumer disabled, participation notifications will not be delivered")
		return
	}

	go func() {
		defer reader.Close()
		log.Println("✅ Kafka participation consumer started")

		for {
			m, err := reader.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				log.Printf("❌ Kafka read error: %v", err)
				continue
			}

			var msg utils.ParticipationMessage
			if err := json.Unmarshal(m.Value, &msg); err != nil {
				log.Printf("❌ Failed to decode participation message: %v", err)
				continue
			}

			handleParticipationMessage(ctx, svc, msg)
		}
	}()
}

func handleParticipationMessage(ctx context.Context, svc Service, msg utils.ParticipationMessage) {
	var title, body string

	switch msg.Action {
	case "registered":
		title = "Registration Confirmed"
		body = fmt.Sprintf("You are registered for %s", msg.EventTitle)
	case "cancelled":
		title = "Registration Cancelled"
		body = fmt.Sprintf("Your registration for %s has been cancelled", msg.EventTitle)
	default:
		return
	}

	if err := svc.CreateInAppNotification(ctx, msg.MemberID, msg.GymID, title, body, "participation"); err != nil {
		log.Printf("❌ Failed to create in-app notification for user %d: %v", msg.MemberID, err)
	}

	// Best effort push; members without registered devices are skipped.
	if err := svc.SendPushNotification(ctx, msg.MemberID, msg.GymID, title, body, []uint{msg.MemberID}, ""); err != nil {
		log.Printf("⚠️ Push delivery skipped for user %d: %v", msg.MemberID, err)
	}
}

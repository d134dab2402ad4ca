package utils

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
)

const (
	// ParticipationTopic carries registration/cancellation records consumed
	// by the notification service.
	ParticipationTopic = "gym.participations"
)

var kafkaWriter *kafka.Writer

// ParticipationMessage is the wire record published on every join/cancel.
type ParticipationMessage struct {
	Action          string    `json:"action"` // registered / cancelled / attended
	ParticipationID uint      `json:"participation_id"`
	EventID         uint      `json:"event_id"`
	EventTitle      string    `json:"event_title"`
	MemberID        uint      `json:"member_id"`
	GymID           uint      `json:"gym_id"`
	OccurredAt      time.Time `json:"occurred_at"`
}

// InitializeKafka sets up the shared writer. Kafka is optional: with no
// brokers configured, publishing becomes a no-op.
func InitializeKafka() {
	brokers := os.Getenv("KAFKA_BROKERS")
	if brokers == "" {
		log.Println("⚠️ KAFKA_BROKERS not set, participation events will not be published")
		return
	}

	kafkaWriter = &kafka.Writer{
		Addr:         kafka.TCP(strings.Split(brokers, ",")...),
		Topic:        ParticipationTopic,
		Balancer:     &kafka.LeastBytes{},
		WriteTimeout: 10 * time.Second,
		// Fire-and-forget: notification delivery must not slow down joins.
		Async: true,
	}

	log.Println("✅ Kafka writer initialized for", brokers)
}

// PublishParticipation sends one participation record. Errors are logged,
// never propagated: the registration itself already succeeded.
func PublishParticipation(msg ParticipationMessage) {
	if kafkaWriter == nil {
		return
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		log.Printf("❌ Failed to marshal participation message: %v", err)
		return
	}

	err = kafkaWriter.WriteMessages(context.Background(), kafka.Message{
		Key:   []byte(msg.Action),
		Value: payload,
	})
	if err != nil {
		log.Printf("❌ Failed to publish participation message: %v", err)
	}
}

// NewParticipationReader builds a reader for the notification consumer.
func NewParticipationReader() *kafka.Reader {
	brokers := os.Getenv("KAFKA_BROKERS")
	if brokers == "" {
		return nil
	}
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:  strings.Split(brokers, ","),
		GroupID:  "gym-notifications",
		Topic:    ParticipationTopic,
		MinBytes: 1,
		MaxBytes: 10e6,
	})
}

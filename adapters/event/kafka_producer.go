package event

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/minhvu/devconnect/internal/config"
)

const (
	TopicProfileEvents = "profile.events"
	TopicAccountEvents = "account.events"
)

const (
	ProfileEventTypeUpdated = "profile.updated"
	AccountEventTypeDeleted = "account.deleted"
)

type ProfileEventPayload struct {
	EventType string    `json:"event_type"`
	OwnerID   uuid.UUID `json:"owner_id"`
	At        time.Time `json:"at"`
}

type AccountEventPayload struct {
	EventType string    `json:"event_type"`
	UserID    uuid.UUID `json:"user_id"`
	At        time.Time `json:"at"`
}

type KafkaProducerClient struct {
	ProfileEventsWriter *kafka.Writer
	AccountEventsWriter *kafka.Writer
}

func NewKafkaProducerClient(cfg config.Config) (*KafkaProducerClient, error) {
	brokers := cfg.Kafka.Brokers
	if len(brokers) == 0 {
		return nil, fmt.Errorf("config Kafka brokers not found")
	}

	profileWriter := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    TopicProfileEvents,
		Balancer: &kafka.LeastBytes{},
	}

	accountWriter := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    TopicAccountEvents,
		Balancer: &kafka.LeastBytes{},
	}

	return &KafkaProducerClient{
		ProfileEventsWriter: profileWriter,
		AccountEventsWriter: accountWriter,
	}, nil
}

func (c *KafkaProducerClient) PublishProfileEvent(ctx context.Context, payload ProfileEventPayload) error {
	value, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("cannot marshal profile event: %w", err)
	}
	return c.ProfileEventsWriter.WriteMessages(ctx, kafka.Message{
		Key:   []byte(payload.OwnerID.String()),
		Value: value,
	})
}

func (c *KafkaProducerClient) PublishAccountEvent(ctx context.Context, payload AccountEventPayload) error {
	value, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("cannot marshal account event: %w", err)
	}
	return c.AccountEventsWriter.WriteMessages(ctx, kafka.Message{
		Key:   []byte(payload.UserID.String()),
		Value: value,
	})
}

func (c *KafkaProducerClient) Close() {
	if c.ProfileEventsWriter != nil {
		c.ProfileEventsWriter.Close()
	}
	if c.AccountEventsWriter != nil {
		c.AccountEventsWriter.Close()
	}
}

package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// SubscriptionChannel is the redis channel subscription changes are published on.
const SubscriptionChannel = "edutrack.teachers.subscription_changed"

// SubscriptionChange describes a teacher's subscription before and after a write.
type SubscriptionChange struct {
	TeacherID uint      `json:"teacher_id"`
	UserID    uint      `json:"user_id"`
	Previous  *uint     `json:"previous_subscription_id"`
	Current   *uint     `json:"current_subscription_id"`
	ChangedAt time.Time `json:"changed_at"`
}

type SubscriptionNotifier interface {
	SubscriptionChanged(ctx context.Context, change SubscriptionChange) error
}

type redisSubscriptionNotifier struct {
	client *redis.Client
}

// NewSubscriptionNotifier publishes to redis. With a nil client the change
// is only logged.
func NewSubscriptionNotifier(client *redis.Client) SubscriptionNotifier {
	return &redisSubscriptionNotifier{client: client}
}

func (n *redisSubscriptionNotifier) SubscriptionChanged(ctx context.Context, change SubscriptionChange) error {
	event := log.Info().Uint("teacherID", change.TeacherID).Uint("userID", change.UserID)
	if change.Previous != nil {
		event = event.Uint("previous", *change.Previous)
	}
	if change.Current != nil {
		event = event.Uint("current", *change.Current)
	}
	event.Msg("Teacher subscription changed")

	if n.client == nil {
		return nil
	}
	payload, err := json.Marshal(change)
	if err != nil {
		return fmt.Errorf("error encoding subscription change: %w", err)
	}
	if err := n.client.Publish(ctx, SubscriptionChannel, payload).Err(); err != nil {
		return fmt.Errorf("error publishing subscription change: %w", err)
	}
	return nil
}

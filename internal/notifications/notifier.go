// Package notifications publishes user-skill association events into Redis channels.
package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"learnhub/internal/middleware"
	"learnhub/internal/models"

	"github.com/redis/go-redis/v9"
)

// Event types carried in AssociationEvent.Type.
const (
	EventLearnSkillAdded = "learn_skill_added"
	EventTeachSkillAdded = "teach_skill_added"
)

// AssociationEvent is the JSON payload published when a user starts learning
// or teaching a skill.
type AssociationEvent struct {
	Type            string    `json:"type"`
	UserID          uint      `json:"user_id"`
	SkillID         uint      `json:"skill_id"`
	ProficiencyGoal *string   `json:"proficiency_goal,omitempty"`
	Priority        *int      `json:"priority,omitempty"`
	ExperienceLevel *string   `json:"experience_level,omitempty"`
	YearsExperience *int      `json:"years_experience,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// Notifier provides helpers to publish events into Redis channels
type Notifier struct {
	rdb *redis.Client
}

// NewNotifier creates a new Notifier instance using the provided Redis client.
// A nil client turns every publish into a no-op.
func NewNotifier(rdb *redis.Client) *Notifier {
	return &Notifier{rdb: rdb}
}

// SkillLearnersChannel is the channel receiving learn events for a skill.
func SkillLearnersChannel(skillID uint) string {
	return fmt.Sprintf("skills:%d:learners", skillID)
}

// SkillTeachersChannel is the channel receiving teach events for a skill.
func SkillTeachersChannel(skillID uint) string {
	return fmt.Sprintf("skills:%d:teachers", skillID)
}

// UserSkillsChannel is the channel receiving every association event of a user.
func UserSkillsChannel(userID uint) string {
	return fmt.Sprintf("users:%d:skills", userID)
}

// PublishLearnSkillAdded announces a new learn association.
func (n *Notifier) PublishLearnSkillAdded(ctx context.Context, assoc *models.UserLearnSkill) error {
	event := AssociationEvent{
		Type:            EventLearnSkillAdded,
		UserID:          assoc.UserID,
		SkillID:         assoc.SkillID,
		ProficiencyGoal: assoc.ProficiencyGoal,
		Priority:        assoc.Priority,
		CreatedAt:       time.Now().UTC(),
	}
	return n.publish(ctx, event, SkillLearnersChannel(assoc.SkillID), UserSkillsChannel(assoc.UserID))
}

// PublishTeachSkillAdded announces a new teach association.
func (n *Notifier) PublishTeachSkillAdded(ctx context.Context, assoc *models.UserTeachSkill) error {
	event := AssociationEvent{
		Type:            EventTeachSkillAdded,
		UserID:          assoc.UserID,
		SkillID:         assoc.SkillID,
		ExperienceLevel: assoc.ExperienceLevel,
		YearsExperience: assoc.YearsExperience,
		CreatedAt:       time.Now().UTC(),
	}
	return n.publish(ctx, event, SkillTeachersChannel(assoc.SkillID), UserSkillsChannel(assoc.UserID))
}

func (n *Notifier) publish(ctx context.Context, event AssociationEvent, channels ...string) error {
	if n == nil || n.rdb == nil {
		return nil
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	pipe := n.rdb.Pipeline()
	for _, channel := range channels {
		pipe.Publish(ctx, channel, payload)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("publish %s: %w", event.Type, err)
	}

	middleware.Logger.DebugContext(ctx, "association event published",
		slog.String("type", event.Type),
		slog.Uint64("user_id", uint64(event.UserID)),
		slog.Uint64("skill_id", uint64(event.SkillID)),
	)
	return nil
}

// Ping reports whether Redis is reachable. Without a client it always succeeds.
func (n *Notifier) Ping(ctx context.Context) error {
	if n == nil || n.rdb == nil {
		return nil
	}
	return n.rdb.Ping(ctx).Err()
}

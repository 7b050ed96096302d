package draft

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/pickupfc/matchday/internal/models"
	"github.com/redis/go-redis/v9"
)

// draftKeyPrefix keys drafts by room, which enforces one draft per room
const draftKeyPrefix = "room_draft:"

// ErrDraftNotFound is returned when a room has no draft
var ErrDraftNotFound = errors.New("draft not found")

// Config holds configuration for the Redis draft repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed draft repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisRepository{
		client: cfg.RedisClient,
	}, nil
}

// Save upserts the room's draft
func (r *redisRepository) Save(ctx context.Context, input *SaveDraftInput) error {
	if input == nil || input.Draft == nil {
		return errors.New("input and draft cannot be nil")
	}

	if input.Draft.RoomID == "" {
		return errors.New("room ID cannot be empty")
	}

	draftJSON, err := json.Marshal(input.Draft)
	if err != nil {
		return fmt.Errorf("failed to marshal draft: %w", err)
	}

	draftKey := fmt.Sprintf("%s%s", draftKeyPrefix, input.Draft.RoomID)
	if err := r.client.Set(ctx, draftKey, draftJSON, 0).Err(); err != nil {
		return fmt.Errorf("failed to save draft: %w", err)
	}

	return nil
}

// Get retrieves the room's draft from Redis
func (r *redisRepository) Get(ctx context.Context, input *GetDraftInput) (*models.Draft, error) {
	if input == nil || input.RoomID == "" {
		return nil, errors.New("input and room ID cannot be empty")
	}

	draftKey := fmt.Sprintf("%s%s", draftKeyPrefix, input.RoomID)
	draftJSON, err := r.client.Get(ctx, draftKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrDraftNotFound
		}
		return nil, fmt.Errorf("failed to get draft: %w", err)
	}

	var draft models.Draft
	if err := json.Unmarshal([]byte(draftJSON), &draft); err != nil {
		return nil, fmt.Errorf("failed to unmarshal draft: %w", err)
	}

	return &draft, nil
}

// Delete removes the room's draft; deleting a missing draft is not an
// error
func (r *redisRepository) Delete(ctx context.Context, input *DeleteDraftInput) (*DeleteDraftOutput, error) {
	if input == nil || input.RoomID == "" {
		return nil, errors.New("input and room ID cannot be empty")
	}

	draftKey := fmt.Sprintf("%s%s", draftKeyPrefix, input.RoomID)
	deleted, err := r.client.Del(ctx, draftKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to delete draft: %w", err)
	}

	return &DeleteDraftOutput{
		Deleted: deleted > 0,
	}, nil
}

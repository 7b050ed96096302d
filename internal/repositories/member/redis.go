package member

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/pickupfc/matchday/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	// Key prefixes for Redis
	memberKeyPrefix     = "member:"
	roomRosterKeyPrefix = "room_members:"
)

// ErrMemberNotFound is returned when a member is not found
var ErrMemberNotFound = errors.New("member not found")

// Config holds configuration for the Redis member repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed member repository
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

// Save upserts a member's profile and adds them to the room roster
func (r *redisRepository) Save(ctx context.Context, input *SaveMemberInput) error {
	if input == nil || input.Member == nil {
		return errors.New("input and member cannot be nil")
	}

	if input.Member.ID == "" {
		return errors.New("member ID cannot be empty")
	}

	memberJSON, err := json.Marshal(input.Member)
	if err != nil {
		return fmt.Errorf("failed to marshal member: %w", err)
	}

	pipe := r.client.Pipeline()

	memberKey := fmt.Sprintf("%s%s", memberKeyPrefix, input.Member.ID)
	pipe.Set(ctx, memberKey, memberJSON, 0)

	if input.RoomID != "" {
		rosterKey := fmt.Sprintf("%s%s", roomRosterKeyPrefix, input.RoomID)
		pipe.SAdd(ctx, rosterKey, input.Member.ID)
	}

	_, err = pipe.Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to save member: %w", err)
	}

	return nil
}

// Get retrieves a member by ID from Redis
func (r *redisRepository) Get(ctx context.Context, input *GetMemberInput) (*models.Member, error) {
	if input == nil || input.MemberID == "" {
		return nil, errors.New("input and member ID cannot be empty")
	}

	memberKey := fmt.Sprintf("%s%s", memberKeyPrefix, input.MemberID)
	memberJSON, err := r.client.Get(ctx, memberKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to get member: %w", err)
	}

	var member models.Member
	if err := json.Unmarshal([]byte(memberJSON), &member); err != nil {
		return nil, fmt.Errorf("failed to unmarshal member: %w", err)
	}

	return &member, nil
}

// Remove drops a member from the room roster and deletes their record
func (r *redisRepository) Remove(ctx context.Context, input *RemoveMemberInput) error {
	if input == nil || input.MemberID == "" {
		return errors.New("input and member ID cannot be empty")
	}

	pipe := r.client.Pipeline()

	if input.RoomID != "" {
		rosterKey := fmt.Sprintf("%s%s", roomRosterKeyPrefix, input.RoomID)
		pipe.SRem(ctx, rosterKey, input.MemberID)
	}

	memberKey := fmt.Sprintf("%s%s", memberKeyPrefix, input.MemberID)
	pipe.Del(ctx, memberKey)

	_, err := pipe.Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}

	return nil
}

// ListByRoom retrieves every known member of a room
func (r *redisRepository) ListByRoom(ctx context.Context, input *ListByRoomInput) (*ListByRoomOutput, error) {
	if input == nil || input.RoomID == "" {
		return nil, errors.New("input and room ID cannot be empty")
	}

	rosterKey := fmt.Sprintf("%s%s", roomRosterKeyPrefix, input.RoomID)
	memberIDs, err := r.client.SMembers(ctx, rosterKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get room roster: %w", err)
	}

	if len(memberIDs) == 0 {
		return &ListByRoomOutput{
			Members: []*models.Member{},
		}, nil
	}

	pipe := r.client.Pipeline()
	memberCommands := make(map[string]*redis.StringCmd)

	for _, memberID := range memberIDs {
		memberKey := fmt.Sprintf("%s%s", memberKeyPrefix, memberID)
		memberCommands[memberID] = pipe.Get(ctx, memberKey)
	}

	_, err = pipe.Exec(ctx)
	if err != nil && err != redis.Nil {
		return nil, fmt.Errorf("failed to get room members: %w", err)
	}

	members := make([]*models.Member, 0, len(memberIDs))
	for memberID, cmd := range memberCommands {
		memberJSON, err := cmd.Result()
		if err != nil {
			if err == redis.Nil {
				// Record was removed between listing the roster and
				// fetching the member
				continue
			}
			return nil, fmt.Errorf("failed to get member %s: %w", memberID, err)
		}

		var member models.Member
		if err := json.Unmarshal([]byte(memberJSON), &member); err != nil {
			return nil, fmt.Errorf("failed to unmarshal member %s: %w", memberID, err)
		}

		members = append(members, &member)
	}

	return &ListByRoomOutput{
		Members: members,
	}, nil
}

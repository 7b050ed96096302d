package vote

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pickupfc/matchday/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	// Key prefixes for Redis
	choicesKeyPrefix = "session_votes:"
	orderKeyPrefix   = "session_vote_order:"
)

// ErrVoteNotFound is returned when a member has not voted on a session
var ErrVoteNotFound = errors.New("vote not found")

// Config holds configuration for the Redis vote repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis.
// Choices live in a hash keyed by member; a sorted set scored by the
// last update time preserves vote order for tally rendering.
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed vote repository
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

// Cast upserts the member's choice and returns the choice it replaced
func (r *redisRepository) Cast(ctx context.Context, input *CastVoteInput) (*CastVoteOutput, error) {
	if input == nil || input.SessionID == 0 || input.MemberID == "" {
		return nil, errors.New("input, session ID and member ID cannot be empty")
	}

	if !input.Choice.IsValid() {
		return nil, fmt.Errorf("invalid vote choice %q", input.Choice)
	}

	choicesKey := fmt.Sprintf("%s%d", choicesKeyPrefix, input.SessionID)
	previous, err := r.client.HGet(ctx, choicesKey, input.MemberID).Result()
	if err != nil && err != redis.Nil {
		return nil, fmt.Errorf("failed to get previous vote: %w", err)
	}

	castAt := input.CastAt
	if castAt.IsZero() {
		castAt = time.Now()
	}

	pipe := r.client.Pipeline()
	pipe.HSet(ctx, choicesKey, input.MemberID, string(input.Choice))
	pipe.ZAdd(ctx, fmt.Sprintf("%s%d", orderKeyPrefix, input.SessionID), redis.Z{
		Score:  float64(castAt.UnixNano()),
		Member: input.MemberID,
	})

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to cast vote: %w", err)
	}

	return &CastVoteOutput{
		Previous: models.VoteChoice(previous),
	}, nil
}

// GetByMember retrieves the member's current vote for a session
func (r *redisRepository) GetByMember(ctx context.Context, input *GetVoteInput) (*models.Vote, error) {
	if input == nil || input.SessionID == 0 || input.MemberID == "" {
		return nil, errors.New("input, session ID and member ID cannot be empty")
	}

	choicesKey := fmt.Sprintf("%s%d", choicesKeyPrefix, input.SessionID)
	choice, err := r.client.HGet(ctx, choicesKey, input.MemberID).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrVoteNotFound
		}
		return nil, fmt.Errorf("failed to get vote: %w", err)
	}

	vote := &models.Vote{
		MemberID:  input.MemberID,
		SessionID: input.SessionID,
		Choice:    models.VoteChoice(choice),
	}

	orderKey := fmt.Sprintf("%s%d", orderKeyPrefix, input.SessionID)
	score, err := r.client.ZScore(ctx, orderKey, input.MemberID).Result()
	if err == nil {
		vote.UpdatedAt = time.Unix(0, int64(score))
	}

	return vote, nil
}

// ListBySession retrieves all votes ordered by last update
func (r *redisRepository) ListBySession(ctx context.Context, input *ListBySessionInput) (*ListBySessionOutput, error) {
	if input == nil || input.SessionID == 0 {
		return nil, errors.New("input and session ID cannot be empty")
	}

	orderKey := fmt.Sprintf("%s%d", orderKeyPrefix, input.SessionID)
	ordered, err := r.client.ZRangeWithScores(ctx, orderKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get vote order: %w", err)
	}

	if len(ordered) == 0 {
		return &ListBySessionOutput{
			Votes: []*models.Vote{},
		}, nil
	}

	choicesKey := fmt.Sprintf("%s%d", choicesKeyPrefix, input.SessionID)
	choices, err := r.client.HGetAll(ctx, choicesKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get vote choices: %w", err)
	}

	votes := make([]*models.Vote, 0, len(ordered))
	for _, entry := range ordered {
		memberID, ok := entry.Member.(string)
		if !ok {
			continue
		}
		choice, ok := choices[memberID]
		if !ok {
			continue
		}
		votes = append(votes, &models.Vote{
			MemberID:  memberID,
			SessionID: input.SessionID,
			Choice:    models.VoteChoice(choice),
			UpdatedAt: time.Unix(0, int64(entry.Score)),
		})
	}

	return &ListBySessionOutput{
		Votes: votes,
	}, nil
}

// GetVoterIDs retrieves the IDs of every member who voted on a session
func (r *redisRepository) GetVoterIDs(ctx context.Context, input *GetVoterIDsInput) ([]string, error) {
	if input == nil || input.SessionID == 0 {
		return nil, errors.New("input and session ID cannot be empty")
	}

	choicesKey := fmt.Sprintf("%s%d", choicesKeyPrefix, input.SessionID)
	memberIDs, err := r.client.HKeys(ctx, choicesKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get voter IDs: %w", err)
	}

	return memberIDs, nil
}

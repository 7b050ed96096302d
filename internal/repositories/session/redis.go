package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/pickupfc/matchday/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	// Key prefixes for Redis
	sessionKeyPrefix   = "signup_session:"
	roomClaimKeyPrefix = "room_active_session:"
	activeSessionsKey  = "active_sessions"
	sessionCounterKey  = "signup_session:next_id"
)

// Repository errors
var (
	// ErrSessionNotFound is returned when a session is not found
	ErrSessionNotFound = errors.New("session not found")

	// ErrActiveSessionExists is returned when the room already has an
	// active session
	ErrActiveSessionExists = errors.New("active session already exists for this room")
)

// Config holds configuration for the Redis session repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed session repository
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

// Create assigns a monotonic ID, claims the room's active slot with a
// single conditional write and persists the session. The SETNX claim is
// the linearization point: two racing creates for the same room can
// never both succeed.
func (r *redisRepository) Create(ctx context.Context, input *CreateSessionInput) (*models.Session, error) {
	if input == nil || input.Session == nil {
		return nil, errors.New("input and session cannot be nil")
	}

	if input.Session.RoomID == "" {
		return nil, errors.New("room ID cannot be empty")
	}

	sessionID, err := r.client.Incr(ctx, sessionCounterKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to allocate session ID: %w", err)
	}

	session := *input.Session
	session.ID = sessionID
	session.IsActive = true

	claimKey := fmt.Sprintf("%s%s", roomClaimKeyPrefix, session.RoomID)
	claimed, err := r.client.SetNX(ctx, claimKey, strconv.FormatInt(sessionID, 10), 0).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to claim active slot: %w", err)
	}
	if !claimed {
		return nil, ErrActiveSessionExists
	}

	sessionJSON, err := json.Marshal(&session)
	if err != nil {
		// Release the claim before reporting failure
		r.client.Del(ctx, claimKey)
		return nil, fmt.Errorf("failed to marshal session: %w", err)
	}

	pipe := r.client.Pipeline()
	sessionKey := fmt.Sprintf("%s%d", sessionKeyPrefix, sessionID)
	pipe.Set(ctx, sessionKey, sessionJSON, 0)
	pipe.SAdd(ctx, activeSessionsKey, sessionID)

	if _, err = pipe.Exec(ctx); err != nil {
		r.client.Del(ctx, claimKey)
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	return &session, nil
}

// Get retrieves a session by ID from Redis
func (r *redisRepository) Get(ctx context.Context, input *GetSessionInput) (*models.Session, error) {
	if input == nil || input.SessionID == 0 {
		return nil, errors.New("input and session ID cannot be empty")
	}

	sessionKey := fmt.Sprintf("%s%d", sessionKeyPrefix, input.SessionID)
	sessionJSON, err := r.client.Get(ctx, sessionKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var session models.Session
	if err := json.Unmarshal([]byte(sessionJSON), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	return &session, nil
}

// GetActiveByRoom retrieves the room's active session via the claim key
func (r *redisRepository) GetActiveByRoom(ctx context.Context, input *GetActiveByRoomInput) (*models.Session, error) {
	if input == nil || input.RoomID == "" {
		return nil, errors.New("input and room ID cannot be empty")
	}

	claimKey := fmt.Sprintf("%s%s", roomClaimKeyPrefix, input.RoomID)
	rawID, err := r.client.Get(ctx, claimKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get active session ID for room: %w", err)
	}

	sessionID, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("corrupt active session ID %q: %w", rawID, err)
	}

	return r.Get(ctx, &GetSessionInput{
		SessionID: sessionID,
	})
}

// Save persists updated session fields
func (r *redisRepository) Save(ctx context.Context, input *SaveSessionInput) error {
	if input == nil || input.Session == nil {
		return errors.New("input and session cannot be nil")
	}

	if input.Session.ID == 0 {
		return errors.New("session ID cannot be empty")
	}

	sessionJSON, err := json.Marshal(input.Session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	sessionKey := fmt.Sprintf("%s%d", sessionKeyPrefix, input.Session.ID)
	if err := r.client.Set(ctx, sessionKey, sessionJSON, 0).Err(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

// Close marks the session inactive and releases the room claim. The
// claim deletion count decides which of two racing closes actually
// performed the close.
func (r *redisRepository) Close(ctx context.Context, input *CloseSessionInput) (*CloseSessionOutput, error) {
	if input == nil || input.SessionID == 0 {
		return nil, errors.New("input and session ID cannot be empty")
	}

	session, err := r.Get(ctx, &GetSessionInput{
		SessionID: input.SessionID,
	})
	if err != nil {
		return nil, err
	}

	closed := false
	claimKey := fmt.Sprintf("%s%s", roomClaimKeyPrefix, session.RoomID)
	rawID, err := r.client.Get(ctx, claimKey).Result()
	if err != nil && err != redis.Nil {
		return nil, fmt.Errorf("failed to get room claim: %w", err)
	}

	// Only release the claim if it still belongs to this session; the
	// room may already be running a newer one.
	if err == nil && rawID == strconv.FormatInt(session.ID, 10) {
		deleted, err := r.client.Del(ctx, claimKey).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to release room claim: %w", err)
		}
		closed = deleted == 1
	}

	if session.IsActive {
		session.IsActive = false
		if err := r.Save(ctx, &SaveSessionInput{Session: session}); err != nil {
			return nil, err
		}
	}

	if err := r.client.SRem(ctx, activeSessionsKey, session.ID).Err(); err != nil {
		return nil, fmt.Errorf("failed to remove session from active set: %w", err)
	}

	return &CloseSessionOutput{
		Closed:  closed,
		Session: session,
	}, nil
}

// ListActive retrieves all active sessions from Redis
func (r *redisRepository) ListActive(ctx context.Context, input *ListActiveInput) (*ListActiveOutput, error) {
	sessionIDs, err := r.client.SMembers(ctx, activeSessionsKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get active session IDs: %w", err)
	}

	if len(sessionIDs) == 0 {
		return &ListActiveOutput{
			Sessions: []*models.Session{},
		}, nil
	}

	pipe := r.client.Pipeline()
	sessionCommands := make(map[string]*redis.StringCmd)

	for _, sessionID := range sessionIDs {
		sessionKey := fmt.Sprintf("%s%s", sessionKeyPrefix, sessionID)
		sessionCommands[sessionID] = pipe.Get(ctx, sessionKey)
	}

	if _, err = pipe.Exec(ctx); err != nil && err != redis.Nil {
		return nil, fmt.Errorf("failed to get active sessions: %w", err)
	}

	sessions := make([]*models.Session, 0, len(sessionIDs))
	for sessionID, cmd := range sessionCommands {
		sessionJSON, err := cmd.Result()
		if err != nil {
			if err == redis.Nil {
				// Session vanished between listing and fetching
				continue
			}
			return nil, fmt.Errorf("failed to get session %s: %w", sessionID, err)
		}

		var session models.Session
		if err := json.Unmarshal([]byte(sessionJSON), &session); err != nil {
			return nil, fmt.Errorf("failed to unmarshal session %s: %w", sessionID, err)
		}

		sessions = append(sessions, &session)
	}

	return &ListActiveOutput{
		Sessions: sessions,
	}, nil
}

// Delete removes a session record and its claim; rollback path only
func (r *redisRepository) Delete(ctx context.Context, input *DeleteSessionInput) error {
	if input == nil || input.SessionID == 0 {
		return errors.New("input and session ID cannot be empty")
	}

	session, err := r.Get(ctx, &GetSessionInput{
		SessionID: input.SessionID,
	})
	if err != nil {
		return err
	}

	claimKey := fmt.Sprintf("%s%s", roomClaimKeyPrefix, session.RoomID)
	rawID, err := r.client.Get(ctx, claimKey).Result()
	if err != nil && err != redis.Nil {
		return fmt.Errorf("failed to get room claim: %w", err)
	}

	pipe := r.client.Pipeline()
	if err == nil && rawID == strconv.FormatInt(session.ID, 10) {
		pipe.Del(ctx, claimKey)
	}
	pipe.Del(ctx, fmt.Sprintf("%s%d", sessionKeyPrefix, session.ID))
	pipe.SRem(ctx, activeSessionsKey, session.ID)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	return nil
}

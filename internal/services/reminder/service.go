package reminder

import (
	"context"
	"errors"
	"log"

	"github.com/pickupfc/matchday/internal/common/uuid"
	"github.com/pickupfc/matchday/internal/models"
	memberRepo "github.com/pickupfc/matchday/internal/repositories/member"
	sessionRepo "github.com/pickupfc/matchday/internal/repositories/session"
	voteRepo "github.com/pickupfc/matchday/internal/repositories/vote"
	"github.com/pickupfc/matchday/internal/services/messaging"
)

// Config holds configuration for the reminder service
type Config struct {
	// UUIDer tags each sweep run for log correlation; defaults to
	// random UUIDs
	UUIDer uuid.UUID
}

// service implements the Service interface
type service struct {
	sessionRepo sessionRepo.Repository
	memberRepo  memberRepo.Repository
	voteRepo    voteRepo.Repository
	messaging   messaging.Service
	notifier    Notifier
	uuider      uuid.UUID
}

// NewService creates a new reminder service
func NewService(ctx context.Context, cfg *Config, sessionRepository sessionRepo.Repository, memberRepository memberRepo.Repository, voteRepository voteRepo.Repository, messagingService messaging.Service, notifier Notifier) (*service, error) {
	if sessionRepository == nil || memberRepository == nil || voteRepository == nil {
		return nil, errors.New("repositories cannot be nil")
	}

	if messagingService == nil {
		return nil, errors.New("messaging service cannot be nil")
	}

	if notifier == nil {
		return nil, errors.New("notifier cannot be nil")
	}

	var uuider uuid.UUID
	if cfg != nil && cfg.UUIDer != nil {
		uuider = cfg.UUIDer
	} else {
		uuider = uuid.New()
	}

	return &service{
		sessionRepo: sessionRepository,
		memberRepo:  memberRepository,
		voteRepo:    voteRepository,
		messaging:   messagingService,
		notifier:    notifier,
		uuider:      uuider,
	}, nil
}

// Sweep walks every active session once and reminds its non-voters.
// It mutates nothing; a failed room logs and is skipped.
func (s *service) Sweep(ctx context.Context) error {
	runID := s.uuider.NewUUID()

	active, err := s.sessionRepo.ListActive(ctx, &sessionRepo.ListActiveInput{})
	if err != nil {
		return err
	}

	if len(active.Sessions) == 0 {
		return nil
	}

	log.Printf("reminder sweep %s: %d active session(s)", runID, len(active.Sessions))

	for _, session := range active.Sessions {
		if err := s.remind(ctx, session); err != nil {
			log.Printf("reminder sweep %s: room %s session %d: %v", runID, session.RoomID, session.ID, err)
		}
	}

	return nil
}

// remind nudges one session's non-voters, if any
func (s *service) remind(ctx context.Context, session *models.Session) error {
	voterIDs, err := s.voteRepo.GetVoterIDs(ctx, &voteRepo.GetVoterIDsInput{
		SessionID: session.ID,
	})
	if err != nil {
		return err
	}

	voted := make(map[string]struct{}, len(voterIDs))
	for _, id := range voterIDs {
		voted[id] = struct{}{}
	}

	roster, err := s.memberRepo.ListByRoom(ctx, &memberRepo.ListByRoomInput{
		RoomID: session.RoomID,
	})
	if err != nil {
		return err
	}

	var nonVoters []*models.Member
	for _, m := range roster.Members {
		if _, ok := voted[m.ID]; !ok {
			nonVoters = append(nonVoters, m)
		}
	}

	if len(nonVoters) == 0 {
		return nil
	}

	output, err := s.messaging.GetReminderMessage(ctx, &messaging.GetReminderMessageInput{
		Session:   session,
		NonVoters: nonVoters,
	})
	if err != nil {
		return err
	}

	return s.notifier.Notify(ctx, session.RoomID, output.Message.Text)
}

package signup

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/pickupfc/matchday/internal/common/clock"
	"github.com/pickupfc/matchday/internal/models"
	draftRepo "github.com/pickupfc/matchday/internal/repositories/draft"
	memberRepo "github.com/pickupfc/matchday/internal/repositories/member"
	sessionRepo "github.com/pickupfc/matchday/internal/repositories/session"
	voteRepo "github.com/pickupfc/matchday/internal/repositories/vote"
	"github.com/pickupfc/matchday/internal/schedule"
)

// Config holds configuration for the signup service
type Config struct {
	// Clock for timestamps; defaults to the system clock
	Clock clock.Clock
}

// service implements the Service interface
type service struct {
	sessionRepo sessionRepo.Repository
	memberRepo  memberRepo.Repository
	draftRepo   draftRepo.Repository
	voteRepo    voteRepo.Repository
	schedule    *schedule.Schedule
	clock       clock.Clock
}

// NewService creates a new signup service
func NewService(ctx context.Context, cfg *Config, sessionRepository sessionRepo.Repository, memberRepository memberRepo.Repository, draftRepository draftRepo.Repository, voteRepository voteRepo.Repository, sched *schedule.Schedule) (*service, error) {
	if sessionRepository == nil || memberRepository == nil || draftRepository == nil || voteRepository == nil {
		return nil, errors.New("repositories cannot be nil")
	}

	if sched == nil {
		return nil, errors.New("schedule cannot be nil")
	}

	var clk clock.Clock
	if cfg != nil && cfg.Clock != nil {
		clk = cfg.Clock
	} else {
		clk = &clock.DefaultClock{}
	}

	return &service{
		sessionRepo: sessionRepository,
		memberRepo:  memberRepository,
		draftRepo:   draftRepository,
		voteRepo:    voteRepository,
		schedule:    sched,
		clock:       clk,
	}, nil
}

// StartSession launches a session directly from a command, the path
// that predates the setup wizard
func (s *service) StartSession(ctx context.Context, input *StartSessionInput) (*StartSessionOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	if !input.RequesterIsAdmin {
		return nil, ErrNotAuthorized
	}

	if !input.Format.IsValid() {
		return nil, ErrInvalidFormat
	}

	var date, timeOfDay string
	var err error

	if input.RawDate != "" {
		date, err = s.schedule.ParseDate(input.RawDate)
		if err != nil {
			return nil, err
		}
	}
	if input.RawTime != "" {
		timeOfDay, err = s.schedule.ParseTime(input.RawTime)
		if err != nil {
			return nil, err
		}
	}

	now := s.clock.Now()
	created, err := s.sessionRepo.Create(ctx, &sessionRepo.CreateSessionInput{
		Session: &models.Session{
			RoomID:        input.RoomID,
			GuildID:       input.GuildID,
			Format:        input.Format,
			NeededPlayers: input.Format.NeededPlayers(),
			AuthorID:      input.AuthorID,
			Date:          date,
			Time:          timeOfDay,
			Status:        schedule.ResolveStatus(input.Status, date, timeOfDay),
			CreatedAt:     now,
			UpdatedAt:     now,
		},
	})
	if err != nil {
		if errors.Is(err, sessionRepo.ErrActiveSessionExists) {
			return nil, ErrSessionAlreadyActive
		}
		return nil, err
	}

	return &StartSessionOutput{
		Session: created,
	}, nil
}

// LaunchFromDraft creates a session from a draft and deletes the draft.
// The repository's claim on the room is the linearization point; if the
// draft cleanup fails the session is unwound so neither change remains.
func (s *service) LaunchFromDraft(ctx context.Context, input *LaunchFromDraftInput) (*LaunchFromDraftOutput, error) {
	if input == nil || input.Draft == nil {
		return nil, errors.New("input and draft cannot be nil")
	}

	d := input.Draft
	if d.Format == "" {
		return nil, ErrIncompleteDraft
	}
	if !d.Format.IsValid() {
		return nil, ErrInvalidFormat
	}

	now := s.clock.Now()
	created, err := s.sessionRepo.Create(ctx, &sessionRepo.CreateSessionInput{
		Session: &models.Session{
			RoomID:        d.RoomID,
			GuildID:       d.GuildID,
			Format:        d.Format,
			NeededPlayers: d.Format.NeededPlayers(),
			AuthorID:      input.AuthorID,
			Date:          d.Date,
			Time:          d.Time,
			Status:        schedule.ResolveStatus(d.Status, d.Date, d.Time),
			CreatedAt:     now,
			UpdatedAt:     now,
		},
	})
	if err != nil {
		if errors.Is(err, sessionRepo.ErrActiveSessionExists) {
			return nil, ErrSessionAlreadyActive
		}
		return nil, err
	}

	if _, err := s.draftRepo.Delete(ctx, &draftRepo.DeleteDraftInput{RoomID: d.RoomID}); err != nil {
		// Unwind the half-finished launch so the draft and the session
		// cannot both survive
		if delErr := s.sessionRepo.Delete(ctx, &sessionRepo.DeleteSessionInput{SessionID: created.ID}); delErr != nil {
			log.Printf("failed to unwind session %d after draft cleanup error: %v", created.ID, delErr)
		}
		return nil, fmt.Errorf("failed to delete draft on launch: %w", err)
	}

	return &LaunchFromDraftOutput{
		Session: created,
	}, nil
}

// RecordVote applies a member's choice and closes the session when the
// yes quota is reached. Votes on a closed session are rejected.
func (s *service) RecordVote(ctx context.Context, input *RecordVoteInput) (*RecordVoteOutput, error) {
	if input == nil || input.Member == nil {
		return nil, errors.New("input and member cannot be nil")
	}

	if !input.Choice.IsValid() {
		return nil, fmt.Errorf("invalid vote choice %q", input.Choice)
	}

	session, err := s.sessionRepo.Get(ctx, &sessionRepo.GetSessionInput{
		SessionID: input.SessionID,
	})
	if err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	if !session.IsActive {
		return nil, ErrNoActiveSession
	}

	// A repeated identical vote changes nothing; the caller surfaces a
	// "no change" acknowledgment instead of re-rendering
	existing, err := s.voteRepo.GetByMember(ctx, &voteRepo.GetVoteInput{
		SessionID: input.SessionID,
		MemberID:  input.Member.ID,
	})
	if err != nil && !errors.Is(err, voteRepo.ErrVoteNotFound) {
		return nil, err
	}
	if existing != nil && existing.Choice == input.Choice {
		tally, err := s.buildTally(ctx, input.SessionID)
		if err != nil {
			return nil, err
		}
		return &RecordVoteOutput{
			Changed: false,
			Tally:   tally,
			Session: session,
		}, nil
	}

	// A vote is proof of presence: refresh the roster from the latest
	// observed profile
	if err := s.memberRepo.Save(ctx, &memberRepo.SaveMemberInput{
		RoomID: session.RoomID,
		Member: input.Member,
	}); err != nil {
		return nil, err
	}

	if _, err := s.voteRepo.Cast(ctx, &voteRepo.CastVoteInput{
		SessionID: input.SessionID,
		MemberID:  input.Member.ID,
		Choice:    input.Choice,
		CastAt:    s.clock.Now(),
	}); err != nil {
		return nil, err
	}

	// The quota check runs against the freshly persisted tally, not a
	// value captured before the write
	tally, err := s.buildTally(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	closed := false
	if len(tally.Yes) >= session.NeededPlayers {
		closeOutput, err := s.sessionRepo.Close(ctx, &sessionRepo.CloseSessionInput{
			SessionID: input.SessionID,
		})
		if err != nil {
			return nil, err
		}
		closed = closeOutput.Closed
		session = closeOutput.Session
	}

	return &RecordVoteOutput{
		Changed: true,
		Closed:  closed,
		Tally:   tally,
		Session: session,
	}, nil
}

// GetTally returns the session's votes grouped by choice
func (s *service) GetTally(ctx context.Context, input *GetTallyInput) (*GetTallyOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	tally, err := s.buildTally(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	return &GetTallyOutput{
		Tally: tally,
	}, nil
}

// EndSession closes the room's active session and clears any lingering
// draft
func (s *service) EndSession(ctx context.Context, input *EndSessionInput) (*EndSessionOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	session, err := s.sessionRepo.GetActiveByRoom(ctx, &sessionRepo.GetActiveByRoomInput{
		RoomID: input.RoomID,
	})
	if err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			return nil, ErrNoActiveSession
		}
		return nil, err
	}

	if !input.RequesterIsAdmin && session.AuthorID != input.RequesterID {
		return nil, ErrNotAuthorized
	}

	closeOutput, err := s.sessionRepo.Close(ctx, &sessionRepo.CloseSessionInput{
		SessionID: session.ID,
	})
	if err != nil {
		return nil, err
	}

	// The room must not carry a draft alongside a finished session
	if _, err := s.draftRepo.Delete(ctx, &draftRepo.DeleteDraftInput{RoomID: input.RoomID}); err != nil {
		log.Printf("failed to clear draft for room %s on session end: %v", input.RoomID, err)
	}

	return &EndSessionOutput{
		Session: closeOutput.Session,
	}, nil
}

// UpdateSchedule partially updates the active session's schedule; an
// absent field keeps its prior value
func (s *service) UpdateSchedule(ctx context.Context, input *UpdateScheduleInput) (*UpdateScheduleOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	if !input.RequesterIsAdmin {
		return nil, ErrNotAuthorized
	}

	session, err := s.sessionRepo.GetActiveByRoom(ctx, &sessionRepo.GetActiveByRoomInput{
		RoomID: input.RoomID,
	})
	if err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			return nil, ErrNoActiveSession
		}
		return nil, err
	}

	if input.RawDate != "" {
		date, err := s.schedule.ParseDate(input.RawDate)
		if err != nil {
			return nil, err
		}
		session.Date = date
	}
	if input.RawTime != "" {
		timeOfDay, err := s.schedule.ParseTime(input.RawTime)
		if err != nil {
			return nil, err
		}
		session.Time = timeOfDay
	}
	if input.Status.IsValid() {
		session.Status = input.Status
	}
	session.UpdatedAt = s.clock.Now()

	if err := s.sessionRepo.Save(ctx, &sessionRepo.SaveSessionInput{Session: session}); err != nil {
		return nil, err
	}

	return &UpdateScheduleOutput{
		Session: session,
	}, nil
}

// GetActiveSession returns the room's active session
func (s *service) GetActiveSession(ctx context.Context, input *GetActiveSessionInput) (*GetActiveSessionOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	session, err := s.sessionRepo.GetActiveByRoom(ctx, &sessionRepo.GetActiveByRoomInput{
		RoomID: input.RoomID,
	})
	if err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			return nil, ErrNoActiveSession
		}
		return nil, err
	}

	return &GetActiveSessionOutput{
		Session: session,
	}, nil
}

// SetAnnouncement stores the announcement message ref once the
// transport has rendered it
func (s *service) SetAnnouncement(ctx context.Context, input *SetAnnouncementInput) error {
	if input == nil || input.MessageID == "" {
		return errors.New("input and message ID cannot be empty")
	}

	session, err := s.sessionRepo.Get(ctx, &sessionRepo.GetSessionInput{
		SessionID: input.SessionID,
	})
	if err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			return ErrSessionNotFound
		}
		return err
	}

	session.MessageID = input.MessageID
	session.UpdatedAt = s.clock.Now()

	return s.sessionRepo.Save(ctx, &sessionRepo.SaveSessionInput{Session: session})
}

// buildTally loads the session's votes in update order and joins the
// roster profile for each voter
func (s *service) buildTally(ctx context.Context, sessionID int64) (*Tally, error) {
	votes, err := s.voteRepo.ListBySession(ctx, &voteRepo.ListBySessionInput{
		SessionID: sessionID,
	})
	if err != nil {
		return nil, err
	}

	tally := &Tally{
		Yes:   []*models.Member{},
		No:    []*models.Member{},
		Maybe: []*models.Member{},
	}

	for _, v := range votes.Votes {
		m, err := s.memberRepo.Get(ctx, &memberRepo.GetMemberInput{
			MemberID: v.MemberID,
		})
		if err != nil {
			if !errors.Is(err, memberRepo.ErrMemberNotFound) {
				return nil, err
			}
			// The voter left the room; keep the count correct with a
			// bare ID
			m = &models.Member{ID: v.MemberID}
		}

		switch v.Choice {
		case models.VoteYes:
			tally.Yes = append(tally.Yes, m)
		case models.VoteNo:
			tally.No = append(tally.No, m)
		case models.VoteMaybe:
			tally.Maybe = append(tally.Maybe, m)
		}
	}

	return tally, nil
}

package setup

import (
	"context"
	"errors"

	"github.com/pickupfc/matchday/internal/common/clock"
	"github.com/pickupfc/matchday/internal/models"
	draftRepo "github.com/pickupfc/matchday/internal/repositories/draft"
	"github.com/pickupfc/matchday/internal/schedule"
	"github.com/pickupfc/matchday/internal/services/signup"
)

// Config holds configuration for the setup service
type Config struct {
	// Clock for timestamps; defaults to the system clock
	Clock clock.Clock
}

// service implements the Service interface
type service struct {
	draftRepo draftRepo.Repository
	signup    signup.Service
	schedule  *schedule.Schedule
	clock     clock.Clock
}

// NewService creates a new setup service
func NewService(ctx context.Context, cfg *Config, draftRepository draftRepo.Repository, signupService signup.Service, sched *schedule.Schedule) (*service, error) {
	if draftRepository == nil {
		return nil, errors.New("draft repository cannot be nil")
	}

	if signupService == nil {
		return nil, errors.New("signup service cannot be nil")
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
		draftRepo: draftRepository,
		signup:    signupService,
		schedule:  sched,
		clock:     clk,
	}, nil
}

// Begin starts a fresh wizard for the room, replacing any prior draft.
// It refuses while the room already runs a sign-up.
func (s *service) Begin(ctx context.Context, input *BeginInput) (*BeginOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	if !input.RequesterIsAdmin {
		return nil, ErrNotAuthorized
	}

	_, err := s.signup.GetActiveSession(ctx, &signup.GetActiveSessionInput{
		RoomID: input.RoomID,
	})
	if err == nil {
		return nil, ErrSessionActive
	}
	if !errors.Is(err, signup.ErrNoActiveSession) {
		return nil, err
	}

	now := s.clock.Now()
	d := &models.Draft{
		RoomID:    input.RoomID,
		GuildID:   input.GuildID,
		Step:      models.DraftStepFormat,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.draftRepo.Save(ctx, &draftRepo.SaveDraftInput{Draft: d}); err != nil {
		return nil, err
	}

	return &BeginOutput{Draft: d}, nil
}

// ChooseFormat sets the match format and advances to the status step
func (s *service) ChooseFormat(ctx context.Context, input *ChooseFormatInput) (*ChooseFormatOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	if !input.Format.IsValid() {
		return nil, ErrInvalidFormat
	}

	d, err := s.getDraft(ctx, input.RoomID)
	if err != nil {
		return nil, err
	}

	d.Format = input.Format
	if err := s.saveAt(ctx, d, models.DraftStepStatus); err != nil {
		return nil, err
	}

	return &ChooseFormatOutput{Draft: d}, nil
}

// ChooseStatus sets the schedule certainty and advances to the date
// step
func (s *service) ChooseStatus(ctx context.Context, input *ChooseStatusInput) (*ChooseStatusOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	if !input.Status.IsValid() {
		return nil, ErrInvalidStatus
	}

	d, err := s.getDraft(ctx, input.RoomID)
	if err != nil {
		return nil, err
	}

	d.Status = input.Status
	if err := s.saveAt(ctx, d, models.DraftStepDate); err != nil {
		return nil, err
	}

	return &ChooseStatusOutput{Draft: d}, nil
}

// ChooseDate parses and sets the date and advances to the time step
func (s *service) ChooseDate(ctx context.Context, input *ChooseDateInput) (*ChooseDateOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	date, err := s.schedule.ParseDate(input.RawDate)
	if err != nil {
		return nil, err
	}

	d, err := s.getDraft(ctx, input.RoomID)
	if err != nil {
		return nil, err
	}

	d.Date = date
	if err := s.saveAt(ctx, d, models.DraftStepTime); err != nil {
		return nil, err
	}

	return &ChooseDateOutput{Draft: d}, nil
}

// ChooseTime parses and sets the time and advances to the review step
func (s *service) ChooseTime(ctx context.Context, input *ChooseTimeInput) (*ChooseTimeOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	timeOfDay, err := s.schedule.ParseTime(input.RawTime)
	if err != nil {
		return nil, err
	}

	d, err := s.getDraft(ctx, input.RoomID)
	if err != nil {
		return nil, err
	}

	d.Time = timeOfDay
	if err := s.saveAt(ctx, d, models.DraftStepReview); err != nil {
		return nil, err
	}

	return &ChooseTimeOutput{Draft: d}, nil
}

// SetDateTime fills date and time in one move and jumps to review. It
// backs the typed "YYYY-MM-DD HH:MM" shortcut.
func (s *service) SetDateTime(ctx context.Context, input *SetDateTimeInput) (*SetDateTimeOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	date, err := s.schedule.ParseDate(input.RawDate)
	if err != nil {
		return nil, err
	}

	timeOfDay, err := s.schedule.ParseTime(input.RawTime)
	if err != nil {
		return nil, err
	}

	d, err := s.getDraft(ctx, input.RoomID)
	if err != nil {
		return nil, err
	}

	d.Date = date
	d.Time = timeOfDay
	if err := s.saveAt(ctx, d, models.DraftStepReview); err != nil {
		return nil, err
	}

	return &SetDateTimeOutput{Draft: d}, nil
}

// JumpTo moves the wizard to an arbitrary step without touching the
// collected values
func (s *service) JumpTo(ctx context.Context, input *JumpToInput) (*JumpToOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	if !input.Step.IsValid() {
		return nil, ErrInvalidStep
	}

	d, err := s.getDraft(ctx, input.RoomID)
	if err != nil {
		return nil, err
	}

	if err := s.saveAt(ctx, d, input.Step); err != nil {
		return nil, err
	}

	return &JumpToOutput{Draft: d}, nil
}

// Launch turns a complete draft into a live session. The draft is
// destroyed by the launch itself, never here.
func (s *service) Launch(ctx context.Context, input *LaunchInput) (*LaunchOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	d, err := s.getDraft(ctx, input.RoomID)
	if err != nil {
		return nil, err
	}

	if !d.IsComplete() {
		return nil, ErrIncompleteDraft
	}

	output, err := s.signup.LaunchFromDraft(ctx, &signup.LaunchFromDraftInput{
		Draft:    d,
		AuthorID: input.AuthorID,
	})
	if err != nil {
		if errors.Is(err, signup.ErrSessionAlreadyActive) {
			return nil, ErrSessionActive
		}
		return nil, err
	}

	return &LaunchOutput{Session: output.Session}, nil
}

// Cancel discards the room's draft; a no-op when none exists
func (s *service) Cancel(ctx context.Context, input *CancelInput) (*CancelOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	output, err := s.draftRepo.Delete(ctx, &draftRepo.DeleteDraftInput{
		RoomID: input.RoomID,
	})
	if err != nil {
		return nil, err
	}

	return &CancelOutput{Canceled: output.Deleted}, nil
}

// GetDraft returns the room's draft
func (s *service) GetDraft(ctx context.Context, input *GetDraftInput) (*GetDraftOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	d, err := s.getDraft(ctx, input.RoomID)
	if err != nil {
		return nil, err
	}

	return &GetDraftOutput{Draft: d}, nil
}

func (s *service) getDraft(ctx context.Context, roomID string) (*models.Draft, error) {
	d, err := s.draftRepo.Get(ctx, &draftRepo.GetDraftInput{RoomID: roomID})
	if err != nil {
		if errors.Is(err, draftRepo.ErrDraftNotFound) {
			return nil, ErrDraftNotFound
		}
		return nil, err
	}
	return d, nil
}

// saveAt persists the draft at the given step
func (s *service) saveAt(ctx context.Context, d *models.Draft, step models.DraftStep) error {
	d.Step = step
	d.UpdatedAt = s.clock.Now()
	return s.draftRepo.Save(ctx, &draftRepo.SaveDraftInput{Draft: d})
}

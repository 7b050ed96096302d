package discord

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pickupfc/matchday/internal/events"
	"github.com/pickupfc/matchday/internal/models"
)

// Component custom IDs carry a colon-separated payload: "vote:yes:42",
// "setup:format:7x7", "setup:launch". The encoding never leaves this
// package; services only see decoded events.

const (
	payloadVote  = "vote"
	payloadSetup = "setup"
)

// encodeEvent turns an event into a component custom ID
func encodeEvent(e events.Event) (string, error) {
	switch e.Kind {
	case events.KindVote:
		return fmt.Sprintf("%s:%s:%d", payloadVote, e.Choice, e.SessionID), nil
	case events.KindSetupFormat:
		return fmt.Sprintf("%s:format:%s", payloadSetup, e.Format), nil
	case events.KindSetupStatus:
		return fmt.Sprintf("%s:status:%s", payloadSetup, e.Status), nil
	case events.KindSetupDate:
		return fmt.Sprintf("%s:date:%s", payloadSetup, e.Date), nil
	case events.KindSetupJump:
		return fmt.Sprintf("%s:jump:%s", payloadSetup, e.Step), nil
	case events.KindSetupLaunch:
		return payloadSetup + ":launch", nil
	case events.KindSetupCancel:
		return payloadSetup + ":cancel", nil
	default:
		return "", fmt.Errorf("unknown event kind %q", e.Kind)
	}
}

// decodeEvent parses a component custom ID back into an event
func decodeEvent(customID string) (events.Event, error) {
	parts := strings.SplitN(customID, ":", 3)

	switch parts[0] {
	case payloadVote:
		if len(parts) != 3 {
			return events.Event{}, fmt.Errorf("malformed vote payload %q", customID)
		}
		choice := models.VoteChoice(parts[1])
		if !choice.IsValid() {
			return events.Event{}, fmt.Errorf("unknown vote choice %q", parts[1])
		}
		sessionID, err := strconv.ParseInt(parts[2], 10, 64)
		if err != nil {
			return events.Event{}, fmt.Errorf("bad session ID in payload %q: %w", customID, err)
		}
		return events.Vote(sessionID, choice), nil

	case payloadSetup:
		if len(parts) < 2 {
			return events.Event{}, fmt.Errorf("malformed setup payload %q", customID)
		}
		action := parts[1]
		arg := ""
		if len(parts) == 3 {
			arg = parts[2]
		}

		switch action {
		case "format":
			return events.SetupFormat(models.Format(arg)), nil
		case "status":
			return events.SetupStatus(models.ScheduleStatus(arg)), nil
		case "date":
			return events.SetupDate(arg), nil
		case "jump":
			return events.SetupJump(models.DraftStep(arg)), nil
		case "launch":
			return events.SetupLaunch(), nil
		case "cancel":
			return events.SetupCancel(), nil
		default:
			return events.Event{}, fmt.Errorf("unknown setup action %q", action)
		}

	default:
		return events.Event{}, fmt.Errorf("unknown payload %q", customID)
	}
}

package discord

import (
	"testing"

	"github.com/pickupfc/matchday/internal/events"
	"github.com/pickupfc/matchday/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeEvent(t *testing.T) {
	cases := []struct {
		name  string
		event events.Event
		want  string
	}{
		{"vote yes", events.Vote(42, models.VoteYes), "vote:yes:42"},
		{"vote maybe", events.Vote(7, models.VoteMaybe), "vote:maybe:7"},
		{"format", events.SetupFormat(models.Format7x7), "setup:format:7x7"},
		{"status", events.SetupStatus(models.ScheduleStatusConfirmed), "setup:status:confirmed"},
		{"date", events.SetupDate("2026-09-22"), "setup:date:2026-09-22"},
		{"jump", events.SetupJump(models.DraftStepTime), "setup:jump:time"},
		{"launch", events.SetupLaunch(), "setup:launch"},
		{"cancel", events.SetupCancel(), "setup:cancel"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := encodeEvent(tc.event)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestEncodeEventUnknownKind(t *testing.T) {
	_, err := encodeEvent(events.Event{Kind: "mystery"})
	require.Error(t, err)
}

func TestDecodeEventRoundTrip(t *testing.T) {
	all := []events.Event{
		events.Vote(123, models.VoteNo),
		events.SetupFormat(models.Format9x9),
		events.SetupStatus(models.ScheduleStatusTentative),
		events.SetupDate("завтра"),
		events.SetupJump(models.DraftStepFormat),
		events.SetupLaunch(),
		events.SetupCancel(),
	}

	for _, e := range all {
		encoded, err := encodeEvent(e)
		require.NoError(t, err)

		decoded, err := decodeEvent(encoded)
		require.NoError(t, err)
		assert.Equal(t, e, decoded)
	}
}

func TestDecodeEventRejectsGarbage(t *testing.T) {
	cases := []string{
		"",
		"vote",
		"vote:yes",
		"vote:perhaps:42",
		"vote:yes:not-a-number",
		"setup",
		"setup:unknown",
		"join_game",
	}

	for _, customID := range cases {
		_, err := decodeEvent(customID)
		assert.Error(t, err, customID)
	}
}

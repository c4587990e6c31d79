package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSlotIDRoundTrip(t *testing.T) {
	slot := SlotID{Court: 3, Team: TeamA, Position: 1}
	require.Equal(t, "court-3-A-1", slot.String())

	parsed, err := ParseSlotID("court-3-A-1")
	require.NoError(t, err)
	require.Equal(t, slot, parsed)
}

func TestParseSlotIDRejectsMalformed(t *testing.T) {
	for _, raw := range []string{
		"",
		"court-3-A",
		"court-x-A-0",
		"court-3-C-0",
		"court-3-A-2",
		"court-7-A-0",
		"court--1-A-0",
		"bench-3-A-0",
	} {
		_, err := ParseSlotID(raw)
		require.Error(t, err, "raw=%q", raw)
	}
}

func TestCourtSlotsOrder(t *testing.T) {
	slots := CourtSlots(2, GameDoubles)
	require.Equal(t, []SlotID{
		{Court: 2, Team: TeamA, Position: 0},
		{Court: 2, Team: TeamA, Position: 1},
		{Court: 2, Team: TeamB, Position: 0},
		{Court: 2, Team: TeamB, Position: 1},
	}, slots)

	singles := CourtSlots(2, GameSingles)
	require.Equal(t, []SlotID{
		{Court: 2, Team: TeamA, Position: 0},
		{Court: 2, Team: TeamB, Position: 0},
	}, singles)
}

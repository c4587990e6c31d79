package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hieuok2710/qlsancauv6/models"
)

func slot(court int, team models.Team, pos int) models.SlotID {
	return models.SlotID{Court: court, Team: team, Position: pos}
}

// Slot exclusivity: however assignments are sequenced, a player holds at
// most one slot and a slot holds at most one player.
func TestSlotExclusivity(t *testing.T) {
	s := newTestState("A", "B", "C")
	a, b, c := s.Players[1].ID, s.Players[2].ID, s.Players[3].ID

	moves := []struct {
		player string
		slot   models.SlotID
	}{
		{a, slot(0, models.TeamA, 0)},
		{b, slot(0, models.TeamB, 0)},
		{a, slot(1, models.TeamA, 0)}, // move
		{c, slot(1, models.TeamA, 0)}, // displace a
		{a, slot(0, models.TeamB, 0)}, // displace b
		{b, slot(0, models.TeamB, 0)}, // displace a again
	}
	for _, mv := range moves {
		require.NoError(t, s.ForceAssign(mv.player, mv.slot))
		seen := map[string]int{}
		for _, id := range s.Assignments {
			seen[id]++
		}
		for id, n := range seen {
			require.Equal(t, 1, n, "player %s occupies %d slots", id, n)
		}
	}
	require.Equal(t, b, s.Assignments[slot(0, models.TeamB, 0)])
	require.Equal(t, c, s.Assignments[slot(1, models.TeamA, 0)])
	_, aAssigned := s.SlotOf(a)
	require.False(t, aAssigned, "displaced player must be unassigned")
}

func TestForceAssignValidation(t *testing.T) {
	s := newTestState("A")
	id := s.Players[1].ID

	require.ErrorIs(t, s.ForceAssign(models.GuestPlayerID, slot(0, models.TeamA, 0)), ErrGuestNotAssign)
	require.ErrorIs(t, s.ForceAssign("missing", slot(0, models.TeamA, 0)), ErrPlayerNotFound)
	require.ErrorIs(t, s.ForceAssign(id, slot(7, models.TeamA, 0)), ErrInvalidCourt)
	require.ErrorIs(t, s.ForceAssign(id, slot(0, models.Team("C"), 0)), ErrInvalidSlot)

	require.NoError(t, s.SetCourtGameType(2, models.GameSingles))
	require.ErrorIs(t, s.ForceAssign(id, slot(2, models.TeamA, 1)), ErrInvalidSlot)
	require.NoError(t, s.ForceAssign(id, slot(2, models.TeamA, 0)))
}

func TestAssignIfEmpty(t *testing.T) {
	s := newTestState("A", "B")
	a, b := s.Players[1].ID, s.Players[2].ID
	target := slot(0, models.TeamA, 0)

	require.NoError(t, s.AssignIfEmpty(a, target))
	require.ErrorIs(t, s.AssignIfEmpty(b, target), ErrSlotOccupied)
	require.Equal(t, a, s.Assignments[target])

	// re-assigning the same player into their own slot is fine
	require.NoError(t, s.AssignIfEmpty(a, target))
}

func TestUnassign(t *testing.T) {
	s := newTestState("A")
	target := slot(3, models.TeamB, 1)
	require.NoError(t, s.ForceAssign(s.Players[1].ID, target))
	require.NoError(t, s.Unassign(target))
	require.Empty(t, s.Assignments)
	// unassigning an empty slot is a no-op
	require.NoError(t, s.Unassign(target))
	require.ErrorIs(t, s.Unassign(slot(9, models.TeamA, 0)), ErrInvalidCourt)
}

// Singles downgrade: position-1 slots vacate, position-0 slots survive.
func TestSinglesDowngradeVacatesPositionOne(t *testing.T) {
	s := newTestState("A", "B", "C", "D")
	ids := []string{s.Players[1].ID, s.Players[2].ID, s.Players[3].ID, s.Players[4].ID}
	for i, sl := range models.CourtSlots(0, models.GameDoubles) {
		require.NoError(t, s.ForceAssign(ids[i], sl))
	}

	require.NoError(t, s.SetCourtGameType(0, models.GameSingles))

	require.Equal(t, ids[0], s.Assignments[slot(0, models.TeamA, 0)])
	require.Equal(t, ids[2], s.Assignments[slot(0, models.TeamB, 0)])
	_, a1 := s.Assignments[slot(0, models.TeamA, 1)]
	_, b1 := s.Assignments[slot(0, models.TeamB, 1)]
	require.False(t, a1)
	require.False(t, b1)

	// switching back to doubles is a pure flag change
	require.NoError(t, s.SetCourtGameType(0, models.GameDoubles))
	require.Len(t, s.Assignments, 2)

	require.ErrorIs(t, s.SetCourtGameType(0, models.GameType("triples")), ErrInvalidGameType)
	require.ErrorIs(t, s.SetCourtGameType(-1, models.GameSingles), ErrInvalidCourt)
}

func TestAutoAssignDeterministicGreedyFill(t *testing.T) {
	s := newTestState("P1", "P2", "P3", "P4", "P5", "P6", "P7")
	require.NoError(t, s.SetCourtGameType(1, models.GameSingles))
	// pre-occupy court 0 A0; auto-assign must not reshuffle it
	p1 := s.Players[1].ID
	require.NoError(t, s.ForceAssign(p1, slot(0, models.TeamA, 0)))

	seated, err := s.AutoAssign()
	require.NoError(t, err)
	require.Equal(t, 6, seated)

	ids := func(i int) string { return s.Players[i].ID }
	// court 0 doubles: A0 kept, then A1, B0, B1 filled FIFO with P2..P4
	require.Equal(t, p1, s.Assignments[slot(0, models.TeamA, 0)])
	require.Equal(t, ids(2), s.Assignments[slot(0, models.TeamA, 1)])
	require.Equal(t, ids(3), s.Assignments[slot(0, models.TeamB, 0)])
	require.Equal(t, ids(4), s.Assignments[slot(0, models.TeamB, 1)])
	// court 1 singles: only A0, B0
	require.Equal(t, ids(5), s.Assignments[slot(1, models.TeamA, 0)])
	require.Equal(t, ids(6), s.Assignments[slot(1, models.TeamB, 0)])
	_, a1 := s.Assignments[slot(1, models.TeamA, 1)]
	require.False(t, a1)

	// everyone seated now: second call reports nothing to do
	_, err = s.AutoAssign()
	require.ErrorIs(t, err, ErrNoUnassigned)
}

func TestUnassignedPlayersExcludesGuestAndAssigned(t *testing.T) {
	s := newTestState("A", "B")
	require.NoError(t, s.ForceAssign(s.Players[1].ID, slot(0, models.TeamA, 0)))
	un := s.UnassignedPlayers()
	require.Len(t, un, 1)
	require.Equal(t, s.Players[2].ID, un[0].ID)
}

func TestCourtPhase(t *testing.T) {
	s := newTestState("A", "B")
	require.Equal(t, models.CourtInsufficient, s.CourtPhase(0))

	require.NoError(t, s.ForceAssign(s.Players[1].ID, slot(0, models.TeamA, 0)))
	require.Equal(t, models.CourtInsufficient, s.CourtPhase(0))

	require.NoError(t, s.ForceAssign(s.Players[2].ID, slot(0, models.TeamB, 0)))
	require.Equal(t, models.CourtReady, s.CourtPhase(0))

	_, err := s.EndMatch(0)
	require.NoError(t, err)
	require.Equal(t, models.CourtPendingResult, s.CourtPhase(0))

	require.NoError(t, s.CancelResult(0))
	require.Equal(t, models.CourtReady, s.CourtPhase(0))
}

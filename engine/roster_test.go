package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hieuok2710/qlsancauv6/models"
)

func newTestState(names ...string) *SessionState {
	s := NewSessionState("user-1", nil)
	for _, name := range names {
		if _, err := s.AddPlayer(name); err != nil {
			panic(err)
		}
	}
	return s
}

func guestOf(t *testing.T, s *SessionState) *models.Player {
	t.Helper()
	count := 0
	var guest *models.Player
	for _, p := range s.Players {
		if p.IsGuest {
			count++
			guest = p
		}
	}
	require.Equal(t, 1, count, "exactly one guest expected")
	return guest
}

func TestNewSessionStateSeedsGuestFirst(t *testing.T) {
	s := NewSessionState("u", []models.PlayerIdentity{
		{ID: "p1", Name: "Tuấn", Phone: "0901"},
		{ID: "p2", Name: "Hùng"},
	})
	require.Len(t, s.Players, 3)
	require.True(t, s.Players[0].IsGuest)
	require.Equal(t, models.GuestPlayerID, s.Players[0].ID)
	require.Equal(t, "Tuấn", s.Players[1].Name)
	require.Equal(t, "0901", s.Players[1].Phone)
	require.Empty(t, s.Players[1].ConsumedDrinks)
	require.False(t, s.Players[1].IsPaid)
	for i := 0; i < models.NumCourts; i++ {
		require.Equal(t, models.GameDoubles, s.CourtGameTypes[i])
	}
}

func TestAddPlayerRejectsBlankNames(t *testing.T) {
	s := newTestState()
	for _, name := range []string{"", "   ", "\t"} {
		_, err := s.AddPlayer(name)
		require.ErrorIs(t, err, ErrBlankName)
	}
	require.Len(t, s.Players, 1) // guest only

	p, err := s.AddPlayer("  Minh  ")
	require.NoError(t, err)
	require.Equal(t, "Minh", p.Name)
	require.Equal(t, 1, p.Quantity)
}

func TestAddPlayerAllowsDuplicateNames(t *testing.T) {
	s := newTestState("Tuấn", "Tuấn")
	require.Len(t, s.Players, 3)
	require.NotEqual(t, s.Players[1].ID, s.Players[2].ID)
}

func TestRemovePlayerCascades(t *testing.T) {
	s := newTestState("An", "Bình")
	an := s.Players[1]
	slot := models.SlotID{Court: 0, Team: models.TeamA, Position: 0}
	require.NoError(t, s.ForceAssign(an.ID, slot))
	s.Wins[an.ID] = 2
	s.Losses[an.ID] = 1
	s.MatchFees[an.ID] = 20000

	require.NoError(t, s.RemovePlayer(an.ID))
	require.Len(t, s.Players, 2)
	require.NotContains(t, s.Wins, an.ID)
	require.NotContains(t, s.Losses, an.ID)
	require.NotContains(t, s.MatchFees, an.ID)
	_, occupied := s.Assignments[slot]
	require.False(t, occupied)

	require.ErrorIs(t, s.RemovePlayer("missing"), ErrPlayerNotFound)
	require.ErrorIs(t, s.RemovePlayer(models.GuestPlayerID), ErrGuestImmutable)
	guestOf(t, s)
}

func TestUpdatePlayerInfo(t *testing.T) {
	s := newTestState("An")
	id := s.Players[1].ID
	require.NoError(t, s.UpdatePlayerInfo(id, " An Nguyễn ", " 0912 "))
	require.Equal(t, "An Nguyễn", s.Players[1].Name)
	require.Equal(t, "0912", s.Players[1].Phone)

	require.ErrorIs(t, s.UpdatePlayerInfo(id, "  ", ""), ErrBlankName)
	require.ErrorIs(t, s.UpdatePlayerInfo(models.GuestPlayerID, "X", ""), ErrGuestImmutable)
}

func TestImportPlayersReplace(t *testing.T) {
	s := newTestState("Cũ 1", "Cũ 2")
	old := s.Players[1]
	require.NoError(t, s.ForceAssign(old.ID, models.SlotID{Court: 1, Team: models.TeamA, Position: 0}))
	s.Wins[old.ID] = 3
	s.MatchFees[old.ID] = 10000

	added, err := s.ImportPlayers([]ImportRow{
		{Name: "Mới 1", Phone: "0901"},
		{Name: "  "},
		{Name: "Mới 2"},
	}, ImportReplace)
	require.NoError(t, err)
	require.Equal(t, 2, added)

	require.Len(t, s.Players, 3)
	guestOf(t, s)
	require.Equal(t, "Mới 1", s.Players[1].Name)
	require.Empty(t, s.Assignments)
	require.Empty(t, s.Wins)
	require.Empty(t, s.Losses)
	require.Empty(t, s.MatchFees)
}

func TestImportPlayersMergeFoldsNames(t *testing.T) {
	s := newTestState("Tuấn", "Hùng")
	require.NoError(t, s.ForceAssign(s.Players[1].ID, models.SlotID{Court: 0, Team: models.TeamA, Position: 0}))

	added, err := s.ImportPlayers([]ImportRow{
		{Name: " tuan "},  // folds onto Tuấn
		{Name: "HÙNG"},    // case-insensitive duplicate
		{Name: "Phương"},  // genuinely new
	}, ImportMerge)
	require.NoError(t, err)
	require.Equal(t, 1, added)
	require.Len(t, s.Players, 4)
	require.Equal(t, "Phương", s.Players[3].Name)
	// merge leaves derived state alone
	require.Len(t, s.Assignments, 1)
}

func TestImportPlayersMergeAllDuplicates(t *testing.T) {
	s := newTestState("An")
	added, err := s.ImportPlayers([]ImportRow{{Name: "an"}}, ImportMerge)
	require.NoError(t, err)
	require.Zero(t, added)
}

func TestImportPlayersInvalidMode(t *testing.T) {
	s := newTestState()
	_, err := s.ImportPlayers(nil, ImportMode("upsert"))
	require.ErrorIs(t, err, ErrInvalidImportMode)
}

func TestGuestQuantityClampsAtOne(t *testing.T) {
	s := newTestState("An")
	guest := guestOf(t, s)

	require.NoError(t, s.UpdateGuestQuantity(guest.ID, 2))
	require.Equal(t, 3, guest.Quantity)
	require.NoError(t, s.UpdateGuestQuantity(guest.ID, -10))
	require.Equal(t, 1, guest.Quantity)

	// no-op on a regular player
	regular := s.Players[1]
	require.NoError(t, s.UpdateGuestQuantity(regular.ID, 5))
	require.Equal(t, 1, regular.Quantity)

	require.ErrorIs(t, s.UpdateGuestQuantity("missing", 1), ErrPlayerNotFound)
}

func TestUpdateConsumptionClampsAndDeletesZeroes(t *testing.T) {
	s := newTestState("An")
	id := s.Players[1].ID

	require.NoError(t, s.UpdateConsumption(id, models.CatalogDrink, "tra-duong", 2))
	require.Equal(t, 2, s.Players[1].ConsumedDrinks["tra-duong"])

	require.NoError(t, s.UpdateConsumption(id, models.CatalogDrink, "tra-duong", -5))
	require.NotContains(t, s.Players[1].ConsumedDrinks, "tra-duong")

	// decrement of an absent entry stores nothing
	require.NoError(t, s.UpdateConsumption(id, models.CatalogFood, "banh-mi", -1))
	require.Empty(t, s.Players[1].ConsumedFoods)

	require.NoError(t, s.UpdateConsumption(id, models.CatalogShuttlecock, "cau-88", 1))
	require.Equal(t, 1, s.Players[1].ShuttlecockConsumption["cau-88"])

	require.ErrorIs(t, s.UpdateConsumption(id, models.CatalogKind("candy"), "x", 1), ErrInvalidCatalog)
}

func TestSetAdjustmentReplacesWholesale(t *testing.T) {
	s := newTestState("An")
	id := s.Players[1].ID
	require.NoError(t, s.SetAdjustment(id, -15000, "về sớm"))
	require.NoError(t, s.SetAdjustment(id, 5000, "thêm nước"))
	require.Equal(t, models.Adjustment{Amount: 5000, Reason: "thêm nước"}, s.Players[1].Adjustment)
}

func TestMarkAllPaidIdempotent(t *testing.T) {
	s := newTestState("An", "Bình")
	require.NoError(t, s.TogglePaid(s.Players[1].ID))

	s.MarkAllPaid()
	first := make([]bool, len(s.Players))
	for i, p := range s.Players {
		first[i] = p.IsPaid
		require.True(t, p.IsPaid)
	}
	s.MarkAllPaid()
	for i, p := range s.Players {
		require.Equal(t, first[i], p.IsPaid)
	}
}

func TestGuestInvariantAfterReset(t *testing.T) {
	s := newTestState("An", "Bình")
	s.Reset(s.Identities())
	guest := guestOf(t, s)
	require.Equal(t, models.GuestPlayerID, guest.ID)
	require.Len(t, s.Players, 3)
}

package services_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hieuok2710/qlsancauv6/models"
)

func TestHistoryNewestFirst(t *testing.T) {
	app := newTestApp(t, newTestDB(t))

	_, fields := doJSON(t, app, "POST", "/session/save", nil)
	first := decodeField[models.Session](t, fields, "session")
	_, fields = doJSON(t, app, "POST", "/session/save", nil)
	second := decodeField[models.Session](t, fields, "session")

	_, fields = doJSON(t, app, "GET", "/history", nil)
	sessions := decodeField[[]models.Session](t, fields, "sessions")
	require.Len(t, sessions, 2)
	require.Equal(t, second.ID, sessions[0].ID)
	require.Equal(t, first.ID, sessions[1].ID)
}

func TestDailyStatsCountsTodayOnly(t *testing.T) {
	app := newTestApp(t, newTestDB(t))

	_, fields := doJSON(t, app, "GET", "/session", nil)
	id := playerIDByName(t, sessionPlayers(t, fields), "Người chơi 1")
	doJSON(t, app, "PATCH", "/players/"+id+"/consumption/drink", map[string]any{
		"itemId": "nuoc-suoi", "delta": 1,
	})
	doJSON(t, app, "POST", "/session/save", nil)

	_, fields = doJSON(t, app, "GET", "/history/daily-stats", nil)
	require.Equal(t, 1, decodeField[int](t, fields, "sessions"))
	// 2 members split the 50000 court fee, guest quantity 1 pays a full
	// share, plus one 5000 water.
	require.Equal(t, int64(155000), decodeField[int64](t, fields, "revenue"))
	// 2 named players plus the guest head count.
	require.Equal(t, 3, decodeField[int](t, fields, "players"))
}

func TestPastRevenueGroupsByDay(t *testing.T) {
	app := newTestApp(t, newTestDB(t))

	doJSON(t, app, "POST", "/session/save", nil)
	doJSON(t, app, "POST", "/session/save", nil)

	_, fields := doJSON(t, app, "GET", "/history/past-revenue", nil)
	days := decodeField[[]map[string]any](t, fields, "days")
	require.Len(t, days, 1)
	require.EqualValues(t, 2, days[0]["sessions"])
}

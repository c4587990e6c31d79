package models

import (
	"encoding/json"
	"time"
)

// Summary is the session-wide billing rollup. TotalPaid and TotalOwed are
// display-only derivations over the same player details.
type Summary struct {
	TotalCourtFee        int64 `json:"totalCourtFee"`
	TotalDrinksCost      int64 `json:"totalDrinksCost"`
	TotalFoodCost        int64 `json:"totalFoodCost"`
	TotalShuttlecockCost int64 `json:"totalShuttlecockCost"`
	GrandTotal           int64 `json:"grandTotal"`
	TotalPaid            int64 `json:"totalPaid"`
	TotalOwed            int64 `json:"totalOwed"`
}

// Session is one billing period's complete, immutable record: full billing
// snapshot, match log, and the item names in effect at save time.
type Session struct {
	ID        string            `json:"id"`
	Date      time.Time         `json:"date"`
	Players   []PlayerDetails   `json:"players"`
	GameType  GameType          `json:"gameType"`
	Summary   Summary           `json:"summary"`
	Matches   []Match           `json:"matches"`
	ItemNames map[string]string `json:"itemNames,omitempty"`
}

// SessionRecord is the sqlite row backing a Session. Snapshot payloads are
// stored as JSON text; history rows are append-only and never updated.
type SessionRecord struct {
	ID          string    `gorm:"primaryKey" json:"id"`
	UserID      string    `gorm:"index;not null" json:"user_id"`
	Date        time.Time `gorm:"index;not null" json:"date"`
	GameType    GameType  `gorm:"type:varchar(16)" json:"game_type"`
	GrandTotal  int64     `json:"grand_total"`
	PlayersJSON string    `gorm:"type:text" json:"-"`
	MatchesJSON string    `gorm:"type:text" json:"-"`
	SummaryJSON string    `gorm:"type:text" json:"-"`
	NamesJSON   string    `gorm:"type:text" json:"-"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// NewSessionRecord freezes a Session into its storage row.
func NewSessionRecord(userID string, s Session) (SessionRecord, error) {
	players, err := json.Marshal(s.Players)
	if err != nil {
		return SessionRecord{}, err
	}
	matches, err := json.Marshal(s.Matches)
	if err != nil {
		return SessionRecord{}, err
	}
	summary, err := json.Marshal(s.Summary)
	if err != nil {
		return SessionRecord{}, err
	}
	names, err := json.Marshal(s.ItemNames)
	if err != nil {
		return SessionRecord{}, err
	}
	return SessionRecord{
		ID:          s.ID,
		UserID:      userID,
		Date:        s.Date,
		GameType:    s.GameType,
		GrandTotal:  s.Summary.GrandTotal,
		PlayersJSON: string(players),
		MatchesJSON: string(matches),
		SummaryJSON: string(summary),
		NamesJSON:   string(names),
	}, nil
}

// Session rehydrates the archived record. Malformed payload fields fall back
// to their zero values rather than failing the whole read.
func (r SessionRecord) Session() Session {
	s := Session{
		ID:       r.ID,
		Date:     r.Date,
		GameType: r.GameType,
	}
	if err := json.Unmarshal([]byte(r.PlayersJSON), &s.Players); err != nil {
		s.Players = nil
	}
	if err := json.Unmarshal([]byte(r.MatchesJSON), &s.Matches); err != nil {
		s.Matches = nil
	}
	if err := json.Unmarshal([]byte(r.SummaryJSON), &s.Summary); err != nil {
		s.Summary = Summary{}
	}
	if r.NamesJSON != "" {
		if err := json.Unmarshal([]byte(r.NamesJSON), &s.ItemNames); err != nil {
			s.ItemNames = nil
		}
	}
	return s
}

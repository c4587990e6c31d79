// Package engine holds the in-memory live session: roster, court slots,
// match state and billing derivations. A SessionState is owned by exactly
// one serialized caller (the per-user actor in services); nothing here
// touches storage.
package engine

import (
	"github.com/hieuok2710/qlsancauv6/models"
)

// Cost configuration, integer VND.
const (
	CourtFee               int64 = 50000 // per person per session
	ShuttlecockFeePerMatch int64 = 20000 // total per match, split among losers
)

// PendingMatch is a court's frozen end-match snapshot awaiting a result.
type PendingMatch struct {
	CourtIndex int                 `json:"courtIndex"`
	GameType   models.GameType     `json:"gameType"`
	TeamA      []models.TeamMember `json:"teamA"`
	TeamB      []models.TeamMember `json:"teamB"`
}

// SessionState is the complete live state of one user's open session.
// Memory is the source of truth; persistence of the identity list is the
// caller's concern and always best-effort.
type SessionState struct {
	UserID         string
	Players        []*models.Player
	Assignments    map[models.SlotID]string
	CourtGameTypes [models.NumCourts]models.GameType
	Wins           map[string]int
	Losses         map[string]int
	MatchFees      map[string]int64
	Matches        []models.Match
	MatchesPlayed  int
	Pending        [models.NumCourts]*PendingMatch
}

// NewSessionState builds a fresh live session: the guest entry first, then
// one clean player per persisted identity. All courts start as doubles.
func NewSessionState(userID string, identities []models.PlayerIdentity) *SessionState {
	s := &SessionState{
		UserID:      userID,
		Assignments: map[models.SlotID]string{},
		Wins:        map[string]int{},
		Losses:      map[string]int{},
		MatchFees:   map[string]int64{},
	}
	for i := range s.CourtGameTypes {
		s.CourtGameTypes[i] = models.GameDoubles
	}
	s.Players = append(s.Players, models.NewGuestPlayer())
	for _, id := range identities {
		if id.ID == models.GuestPlayerID {
			continue
		}
		s.Players = append(s.Players, models.NewPlayer(id.ID, id.Name, id.Phone))
	}
	return s
}

// Reset clears all session-scoped state and reseeds the roster from the
// given identities. Used after a session save and on wholesale restore.
func (s *SessionState) Reset(identities []models.PlayerIdentity) {
	fresh := NewSessionState(s.UserID, identities)
	*s = *fresh
}

// Player finds a roster entry by id.
func (s *SessionState) Player(id string) (*models.Player, bool) {
	for _, p := range s.Players {
		if p.ID == id {
			return p, true
		}
	}
	return nil, false
}

// Guest returns the synthetic walk-in entry. It is always present.
func (s *SessionState) Guest() *models.Player {
	for _, p := range s.Players {
		if p.IsGuest {
			return p
		}
	}
	// Unreachable unless state was corrupted externally; heal instead of
	// crashing.
	g := models.NewGuestPlayer()
	s.Players = append([]*models.Player{g}, s.Players...)
	return g
}

// Identities returns the persistable identity rows, guest excluded, in
// roster order.
func (s *SessionState) Identities() []models.PlayerIdentity {
	out := make([]models.PlayerIdentity, 0, len(s.Players))
	for _, p := range s.Players {
		if p.IsGuest {
			continue
		}
		out = append(out, models.PlayerIdentity{ID: p.ID, Name: p.Name, Phone: p.Phone})
	}
	return out
}

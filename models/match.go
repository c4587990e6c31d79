package models

// TeamMember is a player reference frozen into a match snapshot.
type TeamMember struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Match records one decisive (non-draw) result on a court. Draws are
// notified but never recorded.
type Match struct {
	CourtIndex int          `json:"courtIndex"`
	GameType   GameType     `json:"gameType"`
	TeamA      []TeamMember `json:"teamA"`
	TeamB      []TeamMember `json:"teamB"`
	LosingTeam Team         `json:"losingTeam"`
}

// Winners returns the winning side's members.
func (m Match) Winners() []TeamMember {
	if m.LosingTeam == TeamA {
		return m.TeamB
	}
	return m.TeamA
}

// Losers returns the losing side's members.
func (m Match) Losers() []TeamMember {
	if m.LosingTeam == TeamA {
		return m.TeamA
	}
	return m.TeamB
}

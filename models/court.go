package models

import (
	"fmt"
	"strconv"
	"strings"
)

// NumCourts is fixed: the venue has seven courts.
const NumCourts = 7

// GameType decides how many positions a court uses per team.
type GameType string

const (
	GameSingles GameType = "singles"
	GameDoubles GameType = "doubles"
)

// Team identifies a side of a court.
type Team string

const (
	TeamA Team = "A"
	TeamB Team = "B"
)

// SlotID addresses a single seat: court 0..6, team A/B, position 0/1.
// Singles courts use only position 0.
type SlotID struct {
	Court    int  `json:"court"`
	Team     Team `json:"team"`
	Position int  `json:"position"`
}

// String renders the wire form, e.g. "court-3-A-1".
func (s SlotID) String() string {
	return fmt.Sprintf("court-%d-%s-%d", s.Court, s.Team, s.Position)
}

// ParseSlotID parses the wire form produced by String.
func ParseSlotID(raw string) (SlotID, error) {
	parts := strings.Split(raw, "-")
	if len(parts) != 4 || parts[0] != "court" {
		return SlotID{}, fmt.Errorf("invalid slot id %q", raw)
	}
	court, err := strconv.Atoi(parts[1])
	if err != nil || court < 0 || court >= NumCourts {
		return SlotID{}, fmt.Errorf("invalid court in slot id %q", raw)
	}
	team := Team(parts[2])
	if team != TeamA && team != TeamB {
		return SlotID{}, fmt.Errorf("invalid team in slot id %q", raw)
	}
	pos, err := strconv.Atoi(parts[3])
	if err != nil || pos < 0 || pos > 1 {
		return SlotID{}, fmt.Errorf("invalid position in slot id %q", raw)
	}
	return SlotID{Court: court, Team: team, Position: pos}, nil
}

// CourtSlots lists a court's slots in fixed fill order: A0, A1, B0, B1 for
// doubles, A0, B0 for singles.
func CourtSlots(court int, gameType GameType) []SlotID {
	if gameType == GameSingles {
		return []SlotID{
			{Court: court, Team: TeamA, Position: 0},
			{Court: court, Team: TeamB, Position: 0},
		}
	}
	return []SlotID{
		{Court: court, Team: TeamA, Position: 0},
		{Court: court, Team: TeamA, Position: 1},
		{Court: court, Team: TeamB, Position: 0},
		{Court: court, Team: TeamB, Position: 1},
	}
}

// TeamSlots lists one team's slots in position order.
func TeamSlots(court int, team Team, gameType GameType) []SlotID {
	if gameType == GameSingles {
		return []SlotID{{Court: court, Team: team, Position: 0}}
	}
	return []SlotID{
		{Court: court, Team: team, Position: 0},
		{Court: court, Team: team, Position: 1},
	}
}

// CourtPhase tags a court's implicit match state.
type CourtPhase string

const (
	CourtInsufficient  CourtPhase = "insufficient"
	CourtReady         CourtPhase = "ready"
	CourtPendingResult CourtPhase = "pending_result"
)

// CourtColorRecord persists a court's display color per user.
type CourtColorRecord struct {
	UserID     string `gorm:"primaryKey" json:"user_id"`
	CourtIndex int    `gorm:"primaryKey;autoIncrement:false" json:"court_index"`
	Color      string `json:"color"`
}

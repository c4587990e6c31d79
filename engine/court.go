package engine

import (
	"github.com/hieuok2710/qlsancauv6/models"
)

// SlotOf finds the slot currently holding a player, if any.
func (s *SessionState) SlotOf(playerID string) (models.SlotID, bool) {
	for slot, occupant := range s.Assignments {
		if occupant == playerID {
			return slot, true
		}
	}
	return models.SlotID{}, false
}

// validSlot checks the slot is addressable under the court's current game
// type: singles courts only expose position 0.
func (s *SessionState) validSlot(slot models.SlotID) error {
	if slot.Court < 0 || slot.Court >= models.NumCourts {
		return ErrInvalidCourt
	}
	if slot.Position < 0 || slot.Position > 1 {
		return ErrInvalidSlot
	}
	if slot.Team != models.TeamA && slot.Team != models.TeamB {
		return ErrInvalidSlot
	}
	if s.CourtGameTypes[slot.Court] == models.GameSingles && slot.Position != 0 {
		return ErrInvalidSlot
	}
	return nil
}

// ForceAssign puts a player into a slot with move semantics: the player's
// previous slot (if any) is vacated first, and a prior occupant of the
// target slot is silently displaced back to the unassigned pool. Callers
// that want the stricter contract use AssignIfEmpty.
func (s *SessionState) ForceAssign(playerID string, slot models.SlotID) error {
	if err := s.validSlot(slot); err != nil {
		return err
	}
	p, ok := s.Player(playerID)
	if !ok {
		return ErrPlayerNotFound
	}
	if p.IsGuest {
		return ErrGuestNotAssign
	}
	if old, occupied := s.SlotOf(playerID); occupied {
		delete(s.Assignments, old)
	}
	s.Assignments[slot] = playerID
	return nil
}

// AssignIfEmpty is ForceAssign minus the displacement: it fails if the
// target slot already holds someone else.
func (s *SessionState) AssignIfEmpty(playerID string, slot models.SlotID) error {
	if err := s.validSlot(slot); err != nil {
		return err
	}
	if occupant, occupied := s.Assignments[slot]; occupied && occupant != playerID {
		return ErrSlotOccupied
	}
	return s.ForceAssign(playerID, slot)
}

// Unassign empties a slot.
func (s *SessionState) Unassign(slot models.SlotID) error {
	if slot.Court < 0 || slot.Court >= models.NumCourts {
		return ErrInvalidCourt
	}
	delete(s.Assignments, slot)
	return nil
}

// SetCourtGameType switches a court between singles and doubles. Going to
// singles forcibly vacates both position-1 slots; going to doubles is a
// pure flag change.
func (s *SessionState) SetCourtGameType(court int, gameType models.GameType) error {
	if court < 0 || court >= models.NumCourts {
		return ErrInvalidCourt
	}
	if gameType != models.GameSingles && gameType != models.GameDoubles {
		return ErrInvalidGameType
	}
	s.CourtGameTypes[court] = gameType
	if gameType == models.GameSingles {
		delete(s.Assignments, models.SlotID{Court: court, Team: models.TeamA, Position: 1})
		delete(s.Assignments, models.SlotID{Court: court, Team: models.TeamB, Position: 1})
	}
	return nil
}

// AssignedPlayerIDs is the set of ids currently occupying any slot.
func (s *SessionState) AssignedPlayerIDs() map[string]bool {
	out := map[string]bool{}
	for _, id := range s.Assignments {
		out[id] = true
	}
	return out
}

// UnassignedPlayers lists roster players not on any court, guest excluded,
// in roster order.
func (s *SessionState) UnassignedPlayers() []*models.Player {
	assigned := s.AssignedPlayerIDs()
	var out []*models.Player
	for _, p := range s.Players {
		if !p.IsGuest && !assigned[p.ID] {
			out = append(out, p)
		}
	}
	return out
}

// AutoAssign greedily fills empty slots court by court (0..6), each court's
// slots in fixed order, consuming unassigned players in roster order.
// Occupied slots are never reshuffled. Returns how many players were
// seated.
func (s *SessionState) AutoAssign() (int, error) {
	pool := s.UnassignedPlayers()
	if len(pool) == 0 {
		return 0, ErrNoUnassigned
	}
	seated := 0
	for court := 0; court < models.NumCourts && len(pool) > 0; court++ {
		for _, slot := range models.CourtSlots(court, s.CourtGameTypes[court]) {
			if len(pool) == 0 {
				break
			}
			if _, occupied := s.Assignments[slot]; occupied {
				continue
			}
			s.Assignments[slot] = pool[0].ID
			pool = pool[1:]
			seated++
		}
	}
	return seated, nil
}

// teamMembers snapshots a team's current occupants in position order.
func (s *SessionState) teamMembers(court int, team models.Team) []models.TeamMember {
	var out []models.TeamMember
	for _, slot := range models.TeamSlots(court, team, s.CourtGameTypes[court]) {
		id, occupied := s.Assignments[slot]
		if !occupied {
			continue
		}
		name := "Unknown"
		if p, ok := s.Player(id); ok {
			name = p.Name
		}
		out = append(out, models.TeamMember{ID: id, Name: name})
	}
	return out
}

// CourtPhase derives a court's match state: pending result if a snapshot is
// waiting, ready once each team has at least one player, insufficient
// otherwise.
func (s *SessionState) CourtPhase(court int) models.CourtPhase {
	if court < 0 || court >= models.NumCourts {
		return models.CourtInsufficient
	}
	if s.Pending[court] != nil {
		return models.CourtPendingResult
	}
	if len(s.teamMembers(court, models.TeamA)) >= 1 && len(s.teamMembers(court, models.TeamB)) >= 1 {
		return models.CourtReady
	}
	return models.CourtInsufficient
}

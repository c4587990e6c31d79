package engine

import (
	"strings"

	"github.com/google/uuid"
	"github.com/gosimple/unidecode"

	"github.com/hieuok2710/qlsancauv6/models"
)

// ImportMode selects bulk-import behavior.
type ImportMode string

const (
	ImportReplace ImportMode = "replace"
	ImportMerge   ImportMode = "merge"
)

// ImportRow is one clean row handed over by the import collaborator.
type ImportRow struct {
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
}

// foldName normalizes a name for duplicate detection: trimmed, diacritics
// stripped, lowercased. "Tuấn" and "tuan" collide on purpose.
func foldName(name string) string {
	return strings.ToLower(unidecode.Unidecode(strings.TrimSpace(name)))
}

// AddPlayer appends a new regular player. Blank names are rejected;
// duplicate names are not (two different Tuấn can both show up).
func (s *SessionState) AddPlayer(name string) (*models.Player, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrBlankName
	}
	p := models.NewPlayer(uuid.NewString(), name, "")
	s.Players = append(s.Players, p)
	return p, nil
}

// RemovePlayer removes a regular player and cascades cleanup: win/loss
// counters, the match-fee ledger entry, and any court slot holding the id.
// The guest entry can never be removed.
func (s *SessionState) RemovePlayer(id string) error {
	p, ok := s.Player(id)
	if !ok {
		return ErrPlayerNotFound
	}
	if p.IsGuest {
		return ErrGuestImmutable
	}
	kept := s.Players[:0]
	for _, q := range s.Players {
		if q.ID != id {
			kept = append(kept, q)
		}
	}
	s.Players = kept
	delete(s.Wins, id)
	delete(s.Losses, id)
	delete(s.MatchFees, id)
	for slot, occupant := range s.Assignments {
		if occupant == id {
			delete(s.Assignments, slot)
		}
	}
	return nil
}

// UpdatePlayerInfo renames a regular player in place. No uniqueness check.
func (s *SessionState) UpdatePlayerInfo(id, name, phone string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrBlankName
	}
	p, ok := s.Player(id)
	if !ok {
		return ErrPlayerNotFound
	}
	if p.IsGuest {
		return ErrGuestImmutable
	}
	p.Name = name
	p.Phone = strings.TrimSpace(phone)
	return nil
}

// ImportPlayers bulk-loads roster rows and returns how many players were
// added.
//
// Replace discards all regular players, rebuilds from rows, and resets the
// session-scoped derived state (assignments, win/loss counters, match-fee
// ledger) since the player set changed wholesale. Merge only appends rows
// whose folded name is not already on the roster and leaves derived state
// alone.
func (s *SessionState) ImportPlayers(rows []ImportRow, mode ImportMode) (int, error) {
	switch mode {
	case ImportReplace:
		fresh := []*models.Player{s.Guest()}
		added := 0
		for _, row := range rows {
			name := strings.TrimSpace(row.Name)
			if name == "" {
				continue
			}
			fresh = append(fresh, models.NewPlayer(uuid.NewString(), name, strings.TrimSpace(row.Phone)))
			added++
		}
		s.Players = fresh
		s.Assignments = map[models.SlotID]string{}
		s.Wins = map[string]int{}
		s.Losses = map[string]int{}
		s.MatchFees = map[string]int64{}
		return added, nil
	case ImportMerge:
		existing := map[string]bool{}
		for _, p := range s.Players {
			if !p.IsGuest {
				existing[foldName(p.Name)] = true
			}
		}
		added := 0
		for _, row := range rows {
			name := strings.TrimSpace(row.Name)
			if name == "" || existing[foldName(name)] {
				continue
			}
			s.Players = append(s.Players, models.NewPlayer(uuid.NewString(), name, strings.TrimSpace(row.Phone)))
			added++
		}
		return added, nil
	}
	return 0, ErrInvalidImportMode
}

// UpdateGuestQuantity adjusts the walk-in head count, clamped at 1.
// Only the guest entry carries a meaningful quantity; for anyone else this
// is a no-op, matching the source behavior.
func (s *SessionState) UpdateGuestQuantity(id string, delta int) error {
	p, ok := s.Player(id)
	if !ok {
		return ErrPlayerNotFound
	}
	if !p.IsGuest {
		return nil
	}
	p.Quantity += delta
	if p.Quantity < 1 {
		p.Quantity = 1
	}
	return nil
}

// UpdateConsumption adds delta to a player's consumed quantity of one
// catalog item. Quantities clamp at zero and zero entries are removed, so
// the maps only ever hold positive counts.
func (s *SessionState) UpdateConsumption(id string, kind models.CatalogKind, itemID string, delta int) error {
	p, ok := s.Player(id)
	if !ok {
		return ErrPlayerNotFound
	}
	var m map[string]int
	switch kind {
	case models.CatalogDrink:
		m = p.ConsumedDrinks
	case models.CatalogFood:
		m = p.ConsumedFoods
	case models.CatalogShuttlecock:
		m = p.ShuttlecockConsumption
	default:
		return ErrInvalidCatalog
	}
	next := m[itemID] + delta
	if next <= 0 {
		delete(m, itemID)
		return nil
	}
	m[itemID] = next
	return nil
}

// SetAdjustment replaces a player's manual cost correction wholesale.
// Amount may be negative and is unbounded.
func (s *SessionState) SetAdjustment(id string, amount int64, reason string) error {
	p, ok := s.Player(id)
	if !ok {
		return ErrPlayerNotFound
	}
	p.Adjustment = models.Adjustment{Amount: amount, Reason: reason}
	return nil
}

// TogglePaid flips a player's paid flag. No effect on costs.
func (s *SessionState) TogglePaid(id string) error {
	p, ok := s.Player(id)
	if !ok {
		return ErrPlayerNotFound
	}
	p.IsPaid = !p.IsPaid
	return nil
}

// MarkAllPaid sets every roster entry to paid. Idempotent.
func (s *SessionState) MarkAllPaid() {
	for _, p := range s.Players {
		p.IsPaid = true
	}
}

package engine

import (
	"time"

	"github.com/hieuok2710/qlsancauv6/models"
)

// BuildSession snapshots the live state into an immutable Session record:
// full billing details, the match log, and item names resolved against the
// catalogs in effect right now, so history renders the same forever.
//
// The empty-roster guard is defensive: the guest entry is always present,
// so in practice it never trips.
func (s *SessionState) BuildSession(id string, date time.Time, catalogs models.Catalogs) (models.Session, error) {
	if len(s.Players) == 0 {
		return models.Session{}, ErrEmptyRoster
	}
	details := s.PlayerDetails(catalogs)
	return models.Session{
		ID:        id,
		Date:      date,
		Players:   details,
		GameType:  models.GameDoubles,
		Summary:   s.summarize(details),
		Matches:   append([]models.Match(nil), s.Matches...),
		ItemNames: catalogs.ItemNames(),
	}, nil
}

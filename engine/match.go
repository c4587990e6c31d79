package engine

import (
	"github.com/hieuok2710/qlsancauv6/models"
)

// Result decisions accepted by ConfirmResult.
const (
	WinnerA    = "A"
	WinnerB    = "B"
	ResultDraw = "DRAW"
)

// EndMatch freezes the court's current occupants into a pending-result
// snapshot. Both teams need at least one player; a court already awaiting a
// result cannot end another match first.
func (s *SessionState) EndMatch(court int) (*PendingMatch, error) {
	if court < 0 || court >= models.NumCourts {
		return nil, ErrInvalidCourt
	}
	if s.Pending[court] != nil {
		return nil, ErrResultPending
	}
	teamA := s.teamMembers(court, models.TeamA)
	teamB := s.teamMembers(court, models.TeamB)
	if len(teamA) < 1 || len(teamB) < 1 {
		return nil, ErrNotEnoughPlayers
	}
	s.Pending[court] = &PendingMatch{
		CourtIndex: court,
		GameType:   s.CourtGameTypes[court],
		TeamA:      teamA,
		TeamB:      teamB,
	}
	return s.Pending[court], nil
}

// CancelResult discards a pending snapshot without recording anything,
// leaving the court ready again. This is the dialog-close path.
func (s *SessionState) CancelResult(court int) error {
	if court < 0 || court >= models.NumCourts {
		return ErrInvalidCourt
	}
	if s.Pending[court] == nil {
		return ErrNoPendingMatch
	}
	s.Pending[court] = nil
	return nil
}

// ConfirmResult resolves a pending match. The court's slots are cleared in
// every case. A draw is discarded entirely: no Match record, no counters,
// no fees. A decisive result bumps win/loss counters, splits the per-match
// shuttlecock fee over the losers, and appends a Match record.
//
// Returns the recorded match, or nil for a draw.
func (s *SessionState) ConfirmResult(court int, winner string) (*models.Match, error) {
	if court < 0 || court >= models.NumCourts {
		return nil, ErrInvalidCourt
	}
	pending := s.Pending[court]
	if pending == nil {
		return nil, ErrNoPendingMatch
	}
	if winner != WinnerA && winner != WinnerB && winner != ResultDraw {
		return nil, ErrInvalidWinner
	}

	for _, slot := range models.CourtSlots(court, pending.GameType) {
		delete(s.Assignments, slot)
	}
	s.Pending[court] = nil

	if winner == ResultDraw {
		return nil, nil
	}

	winners, losers := pending.TeamA, pending.TeamB
	losingTeam := models.TeamB
	if winner == WinnerB {
		winners, losers = pending.TeamB, pending.TeamA
		losingTeam = models.TeamA
	}

	s.MatchesPlayed++
	for _, m := range winners {
		s.Wins[m.ID]++
	}
	for _, m := range losers {
		s.Losses[m.ID]++
	}
	for i, share := range SplitFee(ShuttlecockFeePerMatch, len(losers)) {
		s.MatchFees[losers[i].ID] += share
	}

	match := models.Match{
		CourtIndex: court,
		GameType:   pending.GameType,
		TeamA:      pending.TeamA,
		TeamB:      pending.TeamB,
		LosingTeam: losingTeam,
	}
	s.Matches = append(s.Matches, match)
	return &match, nil
}

// SplitFee divides an integer fee among n losers with a largest-remainder
// rule: everyone gets total/n and the first total%n shares (in team slot
// order) get one extra unit, so the shares always sum to the fee.
func SplitFee(total int64, n int) []int64 {
	if n <= 0 {
		return nil
	}
	base := total / int64(n)
	rem := total % int64(n)
	shares := make([]int64, n)
	for i := range shares {
		shares[i] = base
		if int64(i) < rem {
			shares[i]++
		}
	}
	return shares
}

package engine

import (
	"github.com/hieuok2710/qlsancauv6/models"
)

// PlayerDetails derives the billing view of every roster entry against the
// given catalogs. Pure: recomputed on every call, no caching, no mutation.
// Consumption entries pointing at deleted catalog items price at zero.
func (s *SessionState) PlayerDetails(catalogs models.Catalogs) []models.PlayerDetails {
	out := make([]models.PlayerDetails, 0, len(s.Players))
	for _, p := range s.Players {
		drinksCost := consumptionCost(p.ConsumedDrinks, catalogs.Drinks)
		foodCost := consumptionCost(p.ConsumedFoods, catalogs.Foods)
		manualShuttle := consumptionCost(p.ShuttlecockConsumption, catalogs.Shuttlecocks)
		matchShuttle := s.MatchFees[p.ID]
		shuttleCost := manualShuttle + matchShuttle

		courtFee := CourtFee
		if p.IsGuest {
			courtFee = CourtFee * int64(p.Quantity)
		}

		out = append(out, models.PlayerDetails{
			Player:                *p,
			CourtFee:              courtFee,
			Wins:                  s.Wins[p.ID],
			Losses:                s.Losses[p.ID],
			DrinksCost:            drinksCost,
			FoodCost:              foodCost,
			ShuttlecockCost:       shuttleCost,
			ManualShuttlecockCost: manualShuttle,
			MatchShuttlecockCost:  matchShuttle,
			TotalCost:             courtFee + drinksCost + foodCost + shuttleCost + p.Adjustment.Amount,
		})
	}
	return out
}

func consumptionCost(consumed map[string]int, items []models.CatalogItem) int64 {
	var total int64
	for itemID, qty := range consumed {
		total += models.PriceOf(items, itemID) * int64(qty)
	}
	return total
}

// PlayerCountForFee counts heads for the court fee: the guest entry counts
// by its quantity, everyone else counts once.
func (s *SessionState) PlayerCountForFee() int64 {
	var count int64
	for _, p := range s.Players {
		if p.IsGuest {
			count += int64(p.Quantity)
		} else {
			count++
		}
	}
	return count
}

// Summary rolls the per-player details up into the session-wide totals.
// GrandTotal always equals the sum of individual TotalCost values.
func (s *SessionState) Summary(catalogs models.Catalogs) models.Summary {
	return s.summarize(s.PlayerDetails(catalogs))
}

func (s *SessionState) summarize(details []models.PlayerDetails) models.Summary {
	sum := models.Summary{
		TotalCourtFee: s.PlayerCountForFee() * CourtFee,
	}
	for _, d := range details {
		sum.TotalDrinksCost += d.DrinksCost
		sum.TotalFoodCost += d.FoodCost
		sum.TotalShuttlecockCost += d.ShuttlecockCost
		sum.GrandTotal += d.TotalCost
		if d.IsPaid {
			sum.TotalPaid += d.TotalCost
		}
	}
	sum.TotalOwed = sum.GrandTotal - sum.TotalPaid
	return sum
}

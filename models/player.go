package models

// Guest player is a synthetic roster entry representing walk-in attendees.
// It always exists exactly once per live roster and its id never changes.
const (
	GuestPlayerID   = "guest-player"
	GuestPlayerName = "Khách vãng lai"
)

// Adjustment is a manual signed correction to a player's total cost.
// Setting a new adjustment fully replaces the previous one.
type Adjustment struct {
	Amount int64  `json:"amount"`
	Reason string `json:"reason"`
}

// Player is a live-roster entry for the current open session.
// Consumption maps hold only positive quantities; a quantity dropping to
// zero removes the entry.
type Player struct {
	ID                     string           `json:"id"`
	Name                   string           `json:"name"`
	Phone                  string           `json:"phone,omitempty"`
	ConsumedDrinks         map[string]int   `json:"consumedDrinks"`
	ConsumedFoods          map[string]int   `json:"consumedFoods"`
	ShuttlecockConsumption map[string]int   `json:"shuttlecockConsumption"`
	IsGuest                bool             `json:"isGuest,omitempty"`
	Quantity               int              `json:"quantity"`
	Adjustment             Adjustment       `json:"adjustment"`
	IsPaid                 bool             `json:"isPaid"`
}

// NewPlayer creates a fresh regular player with empty consumption.
func NewPlayer(id, name, phone string) *Player {
	return &Player{
		ID:                     id,
		Name:                   name,
		Phone:                  phone,
		ConsumedDrinks:         map[string]int{},
		ConsumedFoods:          map[string]int{},
		ShuttlecockConsumption: map[string]int{},
		Quantity:               1,
	}
}

// NewGuestPlayer creates the synthetic walk-in entry.
func NewGuestPlayer() *Player {
	p := NewPlayer(GuestPlayerID, GuestPlayerName, "")
	p.IsGuest = true
	return p
}

// PlayerDetails is the billing view of a player. Derived, never stored live;
// embedded into Session records at save time.
type PlayerDetails struct {
	Player
	TotalCost             int64 `json:"totalCost"`
	Wins                  int   `json:"wins"`
	Losses                int   `json:"losses"`
	CourtFee              int64 `json:"courtFee"`
	DrinksCost            int64 `json:"drinksCost"`
	FoodCost              int64 `json:"foodCost"`
	ShuttlecockCost       int64 `json:"shuttlecockCost"`
	ManualShuttlecockCost int64 `json:"manualShuttlecockCost"`
	MatchShuttlecockCost  int64 `json:"matchShuttlecockCost"`
}

// PlayerIdentity is the persisted identity row: what survives a session save.
// Cost and consumption state is never persisted for the live roster.
type PlayerIdentity struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
}

// PlayerRecord is the sqlite row backing a PlayerIdentity, ordered per user.
type PlayerRecord struct {
	ID        string `gorm:"primaryKey" json:"id"`
	UserID    string `gorm:"index;not null" json:"user_id"`
	Name      string `gorm:"not null" json:"name"`
	Phone     string `json:"phone"`
	SortOrder int    `gorm:"column:sort_order;default:0" json:"sort_order"`
}

// Identity strips a record down to its round-trip shape.
func (r PlayerRecord) Identity() PlayerIdentity {
	return PlayerIdentity{ID: r.ID, Name: r.Name, Phone: r.Phone}
}

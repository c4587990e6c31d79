package models

// CatalogKind selects one of the three independent price lists.
type CatalogKind string

const (
	CatalogDrink       CatalogKind = "drink"
	CatalogFood        CatalogKind = "food"
	CatalogShuttlecock CatalogKind = "shuttlecock"
)

// ValidCatalogKind reports whether k names a known catalog.
func ValidCatalogKind(k CatalogKind) bool {
	switch k {
	case CatalogDrink, CatalogFood, CatalogShuttlecock:
		return true
	}
	return false
}

// CatalogItem is a priced consumable row, referenced by id from player
// consumption maps. Prices are integer VND.
type CatalogItem struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price int64  `json:"price"`
}

// CatalogEntry is the sqlite row backing a CatalogItem, scoped per user
// and per kind.
type CatalogEntry struct {
	ID        string      `gorm:"primaryKey" json:"id"`
	UserID    string      `gorm:"primaryKey" json:"user_id"`
	Kind      CatalogKind `gorm:"primaryKey;type:varchar(16)" json:"kind"`
	Name      string      `gorm:"not null" json:"name"`
	Price     int64       `gorm:"not null;default:0" json:"price"`
	SortOrder int         `gorm:"column:sort_order;default:0" json:"sort_order"`
}

// Item strips an entry down to its API shape.
func (e CatalogEntry) Item() CatalogItem {
	return CatalogItem{ID: e.ID, Name: e.Name, Price: e.Price}
}

// Catalogs bundles the three price lists handed to the billing calculator.
type Catalogs struct {
	Drinks       []CatalogItem `json:"drinks"`
	Foods        []CatalogItem `json:"foods"`
	Shuttlecocks []CatalogItem `json:"shuttlecocks"`
}

// ByKind returns the list for a kind; nil for an unknown kind.
func (c Catalogs) ByKind(kind CatalogKind) []CatalogItem {
	switch kind {
	case CatalogDrink:
		return c.Drinks
	case CatalogFood:
		return c.Foods
	case CatalogShuttlecock:
		return c.Shuttlecocks
	}
	return nil
}

// PriceOf looks an item up by id. A missing id prices at zero: consumption
// entries referencing a deleted catalog item are tolerated silently so
// history stays renderable after catalog edits.
func PriceOf(items []CatalogItem, id string) int64 {
	for _, it := range items {
		if it.ID == id {
			return it.Price
		}
	}
	return 0
}

// ItemNames collects id → name over all three catalogs, resolved at session
// save time so later catalog edits never change how history renders.
func (c Catalogs) ItemNames() map[string]string {
	names := map[string]string{}
	for _, list := range [][]CatalogItem{c.Drinks, c.Foods, c.Shuttlecocks} {
		for _, it := range list {
			names[it.ID] = it.Name
		}
	}
	return names
}

// DefaultDrinks seeds a first-time user's drink catalog.
func DefaultDrinks() []CatalogItem {
	return []CatalogItem{
		{ID: "tra-duong", Name: "Trà đường", Price: 12000},
		{ID: "nuoc-chai", Name: "Nước chai", Price: 15000},
		{ID: "nuoc-suoi", Name: "Nước suối", Price: 5000},
	}
}

package services

import (
	"time"

	"gorm.io/gorm"

	"github.com/hieuok2710/qlsancauv6/models"
)

// Shared per-user store access. Every key space is partitioned by user id;
// these helpers are the only place that touches the persisted layout.

// LoadIdentities returns the persisted roster identity list in order.
// found=false means the user has never saved a roster.
func LoadIdentities(db *gorm.DB, userID string) ([]models.PlayerIdentity, bool, error) {
	var records []models.PlayerRecord
	err := db.Where("user_id = ?", userID).Order("sort_order asc").Find(&records).Error
	if err != nil {
		return nil, false, err
	}
	if len(records) == 0 {
		return nil, false, nil
	}
	out := make([]models.PlayerIdentity, 0, len(records))
	for _, r := range records {
		out = append(out, r.Identity())
	}
	return out, true, nil
}

// SaveIdentities replaces the persisted roster identity list wholesale,
// preserving order. Guest is never persisted.
func SaveIdentities(db *gorm.DB, userID string, identities []models.PlayerIdentity) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.PlayerRecord{}).Error; err != nil {
			return err
		}
		for i, id := range identities {
			if id.ID == models.GuestPlayerID {
				continue
			}
			rec := models.PlayerRecord{
				ID:        id.ID,
				UserID:    userID,
				Name:      id.Name,
				Phone:     id.Phone,
				SortOrder: i,
			}
			if err := tx.Create(&rec).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// LoadCatalog returns one kind's items in order. found=false means the user
// has never edited this catalog.
func LoadCatalog(db *gorm.DB, userID string, kind models.CatalogKind) ([]models.CatalogItem, bool, error) {
	var entries []models.CatalogEntry
	err := db.Where("user_id = ? AND kind = ?", userID, kind).Order("sort_order asc").Find(&entries).Error
	if err != nil {
		return nil, false, err
	}
	if len(entries) == 0 {
		return nil, false, nil
	}
	out := make([]models.CatalogItem, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Item())
	}
	return out, true, nil
}

// SaveCatalog replaces one kind's items wholesale.
func SaveCatalog(db *gorm.DB, userID string, kind models.CatalogKind, items []models.CatalogItem) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ? AND kind = ?", userID, kind).Delete(&models.CatalogEntry{}).Error; err != nil {
			return err
		}
		for i, it := range items {
			entry := models.CatalogEntry{
				ID:        it.ID,
				UserID:    userID,
				Kind:      kind,
				Name:      it.Name,
				Price:     it.Price,
				SortOrder: i,
			}
			if err := tx.Create(&entry).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// LoadCatalogs bundles all three kinds for the billing calculator, seeding
// the drink catalog with the defaults on first use (as the original app
// does). The seed is persisted so later edits start from it.
func LoadCatalogs(db *gorm.DB, userID string) (models.Catalogs, error) {
	drinks, found, err := LoadCatalog(db, userID, models.CatalogDrink)
	if err != nil {
		return models.Catalogs{}, err
	}
	if !found {
		drinks = models.DefaultDrinks()
		if err := SaveCatalog(db, userID, models.CatalogDrink, drinks); err != nil {
			return models.Catalogs{}, err
		}
	}
	foods, _, err := LoadCatalog(db, userID, models.CatalogFood)
	if err != nil {
		return models.Catalogs{}, err
	}
	shuttles, _, err := LoadCatalog(db, userID, models.CatalogShuttlecock)
	if err != nil {
		return models.Catalogs{}, err
	}
	return models.Catalogs{Drinks: drinks, Foods: foods, Shuttlecocks: shuttles}, nil
}

// LoadColors returns the persisted court color map.
func LoadColors(db *gorm.DB, userID string) (map[int]string, error) {
	var records []models.CourtColorRecord
	if err := db.Where("user_id = ?", userID).Find(&records).Error; err != nil {
		return nil, err
	}
	out := map[int]string{}
	for _, r := range records {
		out[r.CourtIndex] = r.Color
	}
	return out, nil
}

// LoadHistory returns a user's archived sessions, oldest first (append
// order).
func LoadHistory(db *gorm.DB, userID string) ([]models.Session, error) {
	var records []models.SessionRecord
	err := db.Where("user_id = ?", userID).Order("created_at asc").Find(&records).Error
	if err != nil {
		return nil, err
	}
	out := make([]models.Session, 0, len(records))
	for _, r := range records {
		out = append(out, r.Session())
	}
	return out, nil
}

// BuildBackupPayload assembles the full export for one user from the
// persisted stores. Live in-memory state is deliberately excluded.
func BuildBackupPayload(db *gorm.DB, userID string, now time.Time) (models.BackupPayload, error) {
	identities, _, err := LoadIdentities(db, userID)
	if err != nil {
		return models.BackupPayload{}, err
	}
	history, err := LoadHistory(db, userID)
	if err != nil {
		return models.BackupPayload{}, err
	}
	colors, err := LoadColors(db, userID)
	if err != nil {
		return models.BackupPayload{}, err
	}
	catalogs, err := LoadCatalogs(db, userID)
	if err != nil {
		return models.BackupPayload{}, err
	}
	return models.BackupPayload{
		Version:      models.BackupVersion,
		Players:      identities,
		History:      history,
		Colors:       colors,
		Drinks:       catalogs.Drinks,
		Foods:        catalogs.Foods,
		Shuttlecocks: catalogs.Shuttlecocks,
		Timestamp:    now,
	}, nil
}

// KnownUserIDs lists every user id appearing in any persisted store, for
// the auto-backup sweep.
func KnownUserIDs(db *gorm.DB) ([]string, error) {
	seen := map[string]bool{}
	var out []string
	collect := func(ids []string) {
		for _, id := range ids {
			if id != "" && !seen[id] {
				seen[id] = true
				out = append(out, id)
			}
		}
	}
	var ids []string
	if err := db.Model(&models.PlayerRecord{}).Distinct("user_id").Pluck("user_id", &ids).Error; err != nil {
		return nil, err
	}
	collect(ids)
	ids = nil
	if err := db.Model(&models.SessionRecord{}).Distinct("user_id").Pluck("user_id", &ids).Error; err != nil {
		return nil, err
	}
	collect(ids)
	ids = nil
	if err := db.Model(&models.CatalogEntry{}).Distinct("user_id").Pluck("user_id", &ids).Error; err != nil {
		return nil, err
	}
	collect(ids)
	return out, nil
}

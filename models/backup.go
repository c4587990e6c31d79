package models

import "time"

// BackupVersion is the current backup payload schema version. Restore
// rejects versions it does not know.
const BackupVersion = 1

// BackupPayload is the full per-user export: everything needed to rebuild
// the persisted stores. Live in-memory session state is intentionally not
// part of a backup.
type BackupPayload struct {
	Version      int              `json:"version"`
	Players      []PlayerIdentity `json:"players"`
	History      []Session        `json:"history"`
	Colors       map[int]string   `json:"colors"`
	Drinks       []CatalogItem    `json:"drinks"`
	Foods        []CatalogItem    `json:"foods"`
	Shuttlecocks []CatalogItem    `json:"shuttlecocks"`
	Timestamp    time.Time        `json:"timestamp"`
}

// BackupSnapshot is the sqlite row holding a user's latest auto-backup,
// refreshed at most once per 24 hours by the backup worker.
type BackupSnapshot struct {
	UserID    string    `gorm:"primaryKey" json:"user_id"`
	Data      string    `gorm:"type:text" json:"-"`
	Timestamp time.Time `json:"timestamp"`
}

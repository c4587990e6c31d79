package workers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
	"gorm.io/gorm"

	"github.com/hieuok2710/qlsancauv6/models"
	"github.com/hieuok2710/qlsancauv6/services"
	"github.com/hieuok2710/qlsancauv6/utils"
)

// BackupInterval is the minimum age before a user's auto-backup snapshot
// is refreshed.
const BackupInterval = 24 * time.Hour

// BackupWorker sweeps all known users once per hour and refreshes any
// auto-backup snapshot older than BackupInterval. When R2 is configured
// each refreshed snapshot is also uploaded off-site.
type BackupWorker struct {
	db        *gorm.DB
	scheduler gocron.Scheduler
}

func NewBackupWorker(db *gorm.DB) *BackupWorker {
	return &BackupWorker{db: db}
}

func (w *BackupWorker) Start(ctx context.Context) error {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return err
	}
	w.scheduler = sched

	_, err = sched.NewJob(
		gocron.DurationJob(1*time.Hour),
		gocron.NewTask(func() {
			w.sweep(ctx)
		}),
	)
	if err != nil {
		return err
	}

	sched.Start()
	log.Println("🔁 Starting auto-backup worker (hourly sweep, 24h snapshot age)…")

	go func() {
		<-ctx.Done()
		if err := sched.Shutdown(); err != nil {
			log.Printf("⚠️ [BACKUP] scheduler shutdown: %v", err)
		}
		log.Println("⏹️ Auto-backup worker stopped")
	}()
	return nil
}

// Sweep runs one pass immediately, outside the schedule. Used at startup
// so a long-stopped server catches up without waiting an hour.
func (w *BackupWorker) Sweep(ctx context.Context) {
	w.sweep(ctx)
}

func (w *BackupWorker) sweep(ctx context.Context) {
	userIDs, err := services.KnownUserIDs(w.db)
	if err != nil {
		log.Printf("❌ [BACKUP] failed to list users: %v", err)
		return
	}

	now := time.Now()
	var refreshed int
	for _, userID := range userIDs {
		if ctx.Err() != nil {
			return
		}
		ok, err := w.refresh(ctx, userID, now)
		if err != nil {
			log.Printf("⚠️ [BACKUP] failed to refresh snapshot for %s: %v", userID, err)
			continue
		}
		if ok {
			refreshed++
		}
	}
	if refreshed > 0 {
		log.Printf("✅ [BACKUP] refreshed %d snapshot(s)", refreshed)
	}
}

// refresh rebuilds one user's snapshot if it is missing or stale. Returns
// whether a new snapshot was written.
func (w *BackupWorker) refresh(ctx context.Context, userID string, now time.Time) (bool, error) {
	var snapshot models.BackupSnapshot
	err := w.db.First(&snapshot, "user_id = ?", userID).Error
	if err == nil && now.Sub(snapshot.Timestamp) < BackupInterval {
		return false, nil
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	payload, err := services.BuildBackupPayload(w.db, userID, now)
	if err != nil {
		return false, err
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return false, err
	}

	snapshot = models.BackupSnapshot{UserID: userID, Data: string(data), Timestamp: now}
	if err := w.db.Save(&snapshot).Error; err != nil {
		return false, err
	}

	if utils.R2Enabled() {
		key := "backups/" + userID + "/" + now.Format("2006-01-02") + ".json"
		if err := utils.UploadBackupToR2(ctx, key, data); err != nil {
			log.Printf("⚠️ [BACKUP] R2 upload failed for %s: %v", userID, err)
		}
	}
	return true, nil
}

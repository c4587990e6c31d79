package services

import (
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/hieuok2710/qlsancauv6/middleware"
	"github.com/hieuok2710/qlsancauv6/models"
)

// BackupService exports and restores the full per-user store. Restoring
// replaces every persisted store and evicts the live session so the next
// request rebuilds from disk.
type BackupService struct {
	DB       *gorm.DB
	Sessions *SessionService
}

func NewBackupService(db *gorm.DB, sessions *SessionService) *BackupService {
	return &BackupService{DB: db, Sessions: sessions}
}

// GetBackup returns the full export payload as a download.
func (s *BackupService) GetBackup(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	payload, err := BuildBackupPayload(s.DB, userID, time.Now())
	if err != nil {
		log.Printf("❌ [BACKUP] failed to build backup for %s: %v", userID, err)
		return c.Status(500).JSON(fiber.Map{"error": "failed to build backup"})
	}
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="backup_`+time.Now().Format("2006-01-02")+`.json"`)
	return c.JSON(payload)
}

// Restore replaces the user's persisted stores with an uploaded payload.
func (s *BackupService) Restore(c *fiber.Ctx) error {
	var payload models.BackupPayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "file sao lưu không đúng định dạng"})
	}
	return s.restorePayload(c, payload)
}

// RestoreAuto restores from the server-side auto-backup snapshot.
func (s *BackupService) RestoreAuto(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	var snapshot models.BackupSnapshot
	if err := s.DB.First(&snapshot, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "chưa có bản sao lưu tự động nào"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "failed to load auto backup"})
	}
	var payload models.BackupPayload
	if err := json.Unmarshal([]byte(snapshot.Data), &payload); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "bản sao lưu tự động bị hỏng"})
	}
	return s.restorePayload(c, payload)
}

func (s *BackupService) restorePayload(c *fiber.Ctx, payload models.BackupPayload) error {
	if payload.Version != models.BackupVersion {
		return c.Status(400).JSON(fiber.Map{"error": "phiên bản sao lưu không được hỗ trợ"})
	}

	userID := middleware.UserID(c)
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := SaveIdentities(tx, userID, payload.Players); err != nil {
			return err
		}
		if err := SaveCatalog(tx, userID, models.CatalogDrink, payload.Drinks); err != nil {
			return err
		}
		if err := SaveCatalog(tx, userID, models.CatalogFood, payload.Foods); err != nil {
			return err
		}
		if err := SaveCatalog(tx, userID, models.CatalogShuttlecock, payload.Shuttlecocks); err != nil {
			return err
		}

		if err := tx.Where("user_id = ?", userID).Delete(&models.CourtColorRecord{}).Error; err != nil {
			return err
		}
		for index, color := range payload.Colors {
			record := models.CourtColorRecord{UserID: userID, CourtIndex: index, Color: color}
			if err := tx.Create(&record).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("user_id = ?", userID).Delete(&models.SessionRecord{}).Error; err != nil {
			return err
		}
		for _, session := range payload.History {
			record, err := models.NewSessionRecord(userID, session)
			if err != nil {
				return err
			}
			if err := tx.Create(&record).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Printf("❌ [BACKUP] failed to restore backup for %s: %v", userID, err)
		return c.Status(500).JSON(fiber.Map{"error": "không thể khôi phục dữ liệu, vui lòng thử lại"})
	}

	s.Sessions.Evict(userID)
	log.Printf("✅ [BACKUP] restored backup for %s (%d players, %d sessions)", userID, len(payload.Players), len(payload.History))
	return c.JSON(fiber.Map{"message": "Đã khôi phục dữ liệu thành công!"})
}

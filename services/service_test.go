package services_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/hieuok2710/qlsancauv6/handlers"
	"github.com/hieuok2710/qlsancauv6/models"
	"github.com/hieuok2710/qlsancauv6/services"
)

const testUser = "user-1"

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.PlayerRecord{},
		&models.CatalogEntry{},
		&models.SessionRecord{},
		&models.CourtColorRecord{},
		&models.BackupSnapshot{},
	))
	return db
}

// newTestApp wires every route onto a fresh app over the given database,
// skipping the gateway middleware.
func newTestApp(t *testing.T, db *gorm.DB) *fiber.App {
	t.Helper()
	app := fiber.New()
	sessionService := services.NewSessionService(db)
	handlers.SetupSessionRoutes(app, sessionService)
	handlers.SetupCatalogRoutes(app, services.NewCatalogService(db))
	handlers.SetupHistoryRoutes(app, services.NewHistoryService(db))
	handlers.SetupBackupRoutes(app, services.NewBackupService(db, sessionService))
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) (*http.Response, map[string]json.RawMessage) {
	t.Helper()
	return doJSONAs(t, app, testUser, method, path, body)
}

func doJSONAs(t *testing.T, app *fiber.App, userID, method, path string, body any) (*http.Response, map[string]json.RawMessage) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("X-User-ID", userID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	fields := map[string]json.RawMessage{}
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &fields))
	}
	return resp, fields
}

func decodeField[T any](t *testing.T, fields map[string]json.RawMessage, key string) T {
	t.Helper()
	var out T
	raw, ok := fields[key]
	require.True(t, ok, "missing field %q", key)
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

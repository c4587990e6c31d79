package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/hieuok2710/qlsancauv6/handlers"
	"github.com/hieuok2710/qlsancauv6/middleware"
	"github.com/hieuok2710/qlsancauv6/models"
	"github.com/hieuok2710/qlsancauv6/services"
	"github.com/hieuok2710/qlsancauv6/utils"
	"github.com/hieuok2710/qlsancauv6/workers"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, reading environment variables directly")
	}

	app := fiber.New(fiber.Config{
		BodyLimit: 10 * 1024 * 1024, // 10MB, enough for any backup upload
	})

	// 🔐❗ GLOBAL: Only Gateway requests allowed — no exceptions
	app.Use(middleware.GatewayAuthMiddleware())

	allowedOriginsEnv := os.Getenv("ALLOWED_ORIGINS")
	if allowedOriginsEnv == "" {
		log.Println("⚠️  ALLOWED_ORIGINS environment variable not set, using default: http://localhost:3000")
		allowedOriginsEnv = "http://localhost:3000"
	}
	allowedOriginsList := strings.Split(allowedOriginsEnv, ",")
	for i, origin := range allowedOriginsList {
		allowedOriginsList[i] = strings.TrimSpace(origin)
	}
	allowedOriginsString := strings.Join(allowedOriginsList, ",")

	app.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOriginsString,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH,HEAD",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With, X-Request-ID, User-Agent, Cache-Control, X-User-ID",
		ExposeHeaders:    "Content-Length, Content-Type, Content-Disposition, X-Request-ID",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))

	dbPath := os.Getenv("DATABASE_PATH")
	if dbPath == "" {
		dbPath = "qlsancau.db"
	}

	if err := utils.InitR2(); err != nil {
		log.Fatal("failed to initialize R2 client:", err)
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to open database:", err)
	}

	if err := db.AutoMigrate(
		&models.PlayerRecord{},
		&models.CatalogEntry{},
		&models.SessionRecord{},
		&models.CourtColorRecord{},
		&models.BackupSnapshot{},
	); err != nil {
		log.Fatal("failed to migrate database:", err)
	}

	sessionService := services.NewSessionService(db)
	catalogService := services.NewCatalogService(db)
	historyService := services.NewHistoryService(db)
	backupService := services.NewBackupService(db, sessionService)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backupWorker := workers.NewBackupWorker(db)
	if err := backupWorker.Start(ctx); err != nil {
		log.Fatal("failed to start backup worker:", err)
	}
	go backupWorker.Sweep(ctx)

	handlers.SetupSessionRoutes(app, sessionService)
	handlers.SetupCatalogRoutes(app, catalogService)
	handlers.SetupHistoryRoutes(app, historyService)
	handlers.SetupBackupRoutes(app, backupService)

	port := os.Getenv("PORT")
	if port == "" {
		port = "5300"
	}

	go func() {
		if err := app.Listen(":" + port); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("✅ Server running on http://localhost:%s", port)
	log.Printf("✅ Database: %s", dbPath)
	log.Println("✅ Auto-backup worker running (hourly sweep)")
	if utils.R2Enabled() {
		log.Println("✅ R2 off-site backup enabled")
	} else {
		log.Println("⚠️  R2 off-site backup disabled (credentials not set)")
	}
	log.Println("✅ GatewayAuthMiddleware enforced globally — all requests must come from Gateway")
	log.Printf("✅ CORS configured for origins: %s", allowedOriginsString)

	<-ctx.Done()
	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}

package main

import (
	"log"
	"os"

	"walkaudit-be/internal/model"
	"walkaudit-be/pkg/database"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.Open(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	color.Cyan("Starting GORM migration...")

	models := []interface{}{
		&model.User{},
		&model.Organization{},
		&model.Area{},
		&model.Category{},
		&model.OrgLink{},
		&model.Report{},
		&model.Image{},
		&model.ReportAssignment{},
		&model.ResolvedHistory{},
		&model.Chat{},
		&model.ChatMessage{},
		&model.Notification{},
		&model.Feedback{},
		&model.PayHistory{},
		&model.AuditLog{},
	}

	if err := db.AutoMigrate(models...); err != nil {
		color.Red("Migration failed: %v", err)
		os.Exit(1)
	}

	color.Green("Migration complete: %d tables up to date", len(models))
}

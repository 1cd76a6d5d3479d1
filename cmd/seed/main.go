package main

import (
	"log"
	"os"

	"walkaudit-be/internal/model"
	"walkaudit-be/pkg/database"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
)

// Seeds the shared vocabularies used for report routing. Safe to run more
// than once.
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

	color.Cyan("Seeding report categories...")

	categories := []string{
		"road_damage",
		"streetlight",
		"garbage",
		"park_equipment",
		"graffiti",
		"signage",
		"other",
	}

	created := 0
	for _, name := range categories {
		var existing model.Category
		if err := db.Where("name = ?", name).First(&existing).Error; err == nil {
			log.Printf("Category '%s' already exists, skipping...", name)
			continue
		}
		if err := db.Create(&model.Category{Name: name}).Error; err != nil {
			color.Red("Failed to create category '%s': %v", name, err)
			continue
		}
		created++
	}

	color.Green("Seeding complete: %d categories created", created)
}

package main

import (
	"log"

	"customer-insight-be/internal/config"
	"customer-insight-be/internal/model"
	"customer-insight-be/pkg/database"
)

func main() {
	cfg := config.Load()
	if cfg.Database.Connection == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection, database.ParseLogLevel(cfg.Database.LogLevel))
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Step 1: Setting up extensions...")
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto;`).Error; err != nil {
		log.Printf("Warn: Failed to create pgcrypto extension: %v. Continuing...", err)
	}

	log.Println("Step 2: Running AutoMigrate...")
	models := []interface{}{
		&model.Customer{},
		&model.ExtractionArtifact{},
		&model.CustomerInterest{},
		&model.CustomerNote{},
	}
	if err := db.AutoMigrate(models...); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	log.Println("✅ Success: Database migration completed.")
}

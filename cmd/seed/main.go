// Seeds the database with demo data: subjects, tutors with their
// subject listings, students and a handful of lesson requests.
//
// Usage: go run ./cmd/seed [--clear]
//
// With --clear all existing marketplace data is wiped first; running it
// repeatedly with --clear always ends at the same counts.
package main

import (
	"flag"
	"log"

	"tutorhub_backend/internal/config"
	"tutorhub_backend/internal/service"
	"tutorhub_backend/pkg/database"
	"tutorhub_backend/pkg/logger"

	"github.com/joho/godotenv"
)

func main() {
	clear := flag.Bool("clear", false, "wipe existing data before seeding")
	flag.Parse()

	// Local overrides (database credentials etc.) can live in a .env
	// file next to the binary; absence is fine.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.InitLogger(cfg.Server.Mode)

	db, err := database.InitDB(&cfg.Database, cfg.Server.Mode)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	if err := service.NewSeedService(db).Run(*clear); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
}

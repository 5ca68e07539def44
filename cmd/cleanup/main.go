package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"intake/internal/config"
	"intake/internal/database"
	"intake/internal/domain/record"
)

// One-shot retention sweep, suitable for cron.
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}

	repo := record.NewRepository(db)

	deleted, err := repo.DeleteOlderThan(context.Background(), cfg.RetentionAge)
	if err != nil {
		log.Fatalf("retention sweep failed: %v", err)
	}

	log.Printf("retention sweep completed: deleted=%d age=%s", deleted, cfg.RetentionAge)
}

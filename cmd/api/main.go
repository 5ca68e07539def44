package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"intake/internal/config"
	"intake/internal/database"
	"intake/internal/domain/health"
	"intake/internal/domain/record"
	"intake/internal/middleware"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}

	repo := record.NewRepository(db)

	// Bootstrap failure must not kill the process; /health reports it.
	schemaReady := true
	if err := repo.Migrate(context.Background()); err != nil {
		log.Printf("schema bootstrap failed: %v", err)
		schemaReady = false
	}

	svc := record.NewService(repo, cfg.RetentionAge, cfg.ListLimit)
	handler := record.NewHandler(svc)
	healthHandler := health.NewHandler(db, func() bool { return schemaReady })

	r := gin.New()
	r.Use(gin.Logger(), middleware.RequestID(), middleware.ErrorLogger())
	r.SetHTMLTemplate(record.Templates())

	health.RegisterRoutes(r, healthHandler)
	record.RegisterRoutes(r, handler,
		middleware.AdminAuth(cfg.AdminCredentials),
		middleware.UploadKeyAuth(cfg.UploadAPIKey),
	)

	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatal(err)
	}
}

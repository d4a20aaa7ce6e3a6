package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"marketwire/internal/config"
	"marketwire/internal/handler"
	"marketwire/internal/store"
)

func main() {

	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg := config.Load()

	snapStore, err := store.New(context.Background(), cfg)
	if err != nil {
		log.Fatalf("error initializing snapshot store: %v", err)
	}

	snapshotHandler := handler.NewSnapshotHandler(snapStore)

	r := gin.Default()

	allowedOrigins := []string{"http://localhost:3000"}

	if cfg.FrontendURL != "" {
		allowedOrigins = append(allowedOrigins, cfg.FrontendURL)
	}

	slog.Info("AllowOrigins URL:", "urls", allowedOrigins)

	r.Use(cors.New(cors.Config{
		AllowOrigins: allowedOrigins,
		AllowMethods: []string{"GET", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type"},
	}))

	r.GET("/snapshot", snapshotHandler.GetSnapshot)
	r.GET("/livewire", snapshotHandler.GetLivewire)
	r.GET("/digest/:region/:sector", snapshotHandler.GetDigest)
	r.GET("/brief/:region", snapshotHandler.GetBrief)
	r.GET("/health", snapshotHandler.GetHealth)

	err = r.Run(":8080")
	if err != nil {
		log.Fatalf("error starting server: %v", err)
	}
}

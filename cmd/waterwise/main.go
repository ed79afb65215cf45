package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/nhle/waterwise/internal/api"
	"github.com/nhle/waterwise/internal/model"
	"github.com/nhle/waterwise/internal/service"
	"github.com/nhle/waterwise/internal/store"
	"github.com/nhle/waterwise/internal/token"
)

func main() {
	configPath := flag.String("config", model.DefaultConfigPath(), "path to the config file")
	flag.Parse()

	cfg, err := model.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	if cfg.Server.JWTSecret == "" {
		log.Fatal("a JWT secret is required; set server.jwt_secret or WATERWISE_JWT_SECRET")
	}

	s, err := store.NewSQLiteStore(cfg.Server.DatabasePath)
	if err != nil {
		log.Fatalf("opening store: %v", err)
	}
	defer s.Close()

	if err := store.SeedLessons(context.Background(), s); err != nil {
		log.Fatalf("seeding lessons: %v", err)
	}

	tokens := token.NewManager(cfg.Server.JWTSecret, time.Duration(cfg.Server.TokenTTLHours)*time.Hour)

	server := api.NewServer(
		service.NewAuthService(s, tokens),
		service.NewUsageService(s),
		service.NewLessonService(s),
		service.NewNotificationService(s),
		tokens,
	)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("waterwise listening on %s", addr)
	if err := server.Router(cfg.Server.CORSAllowedOrigin).Run(addr); err != nil {
		log.Fatalf("running server: %v", err)
	}
}

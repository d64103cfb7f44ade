// README: Entry point; loads config, wires providers and the planner, starts the HTTP server.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	"wander/internal/ai"
	"wander/internal/audit"
	"wander/internal/config"
	httptransport "wander/internal/http"
	"wander/internal/infra"
	"wander/internal/maps"
	"wander/internal/planner"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var placesCache *redis.Client
	if cfg.Redis.Addr != "" {
		placesCache = infra.NewRedis(cfg.Redis.Addr)
	}

	placesSvc, err := maps.NewPlacesService(cfg.Maps.APIKey, placesCache)
	if err != nil {
		log.Fatalf("maps init: %v", err)
	}

	generator, err := ai.NewGeminiProvider(ctx, cfg.AI.GeminiKey)
	if err != nil {
		log.Fatalf("gemini init: %v", err)
	}
	defer generator.Close()

	var auditSvc *audit.Service
	if cfg.DB.DSN != "" {
		dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
		if err != nil {
			log.Fatalf("db init: %v", err)
		}
		defer dbPool.Close()
		auditSvc = audit.NewService(audit.NewStore(dbPool))
	}

	plannerSvc := planner.NewService(placesSvc, generator, auditSvc, cfg.Planner)

	router := httptransport.NewRouter(plannerSvc, placesSvc)
	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: router}

	go func() {
		<-ctx.Done()
		server.Close()
	}()

	log.Printf("listening on %s", cfg.HTTP.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}

package main

import (
	"context"
	"log"

	"walkaudit-be/internal/bootstrap"
	"walkaudit-be/internal/config"
	"walkaudit-be/internal/server"
	"walkaudit-be/internal/tracer"
	"walkaudit-be/pkg/database"
)

func main() {
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	cfg := config.Load()

	gormDB, err := database.Open(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	container := bootstrap.NewContainer(gormDB, cfg)

	// Enrichment worker: reverse geocoding and org matching off the
	// request path.
	go func() {
		log.Println("Background: Starting Consumer Service...")
		if err := container.ConsumerService.Consume(context.Background()); err != nil {
			log.Printf("Background Consumer Error: %v", err)
		}
	}()

	srv := server.New(cfg, container)
	log.Fatal(srv.Run())
}

package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"customer-insight-be/internal/bootstrap"
	"customer-insight-be/internal/config"
	"customer-insight-be/internal/server"
	"customer-insight-be/internal/tracer"
	"customer-insight-be/pkg/database"

	"gorm.io/gorm"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Initialize Database
	var gormDB *gorm.DB
	if cfg.Storage.Driver != config.StorageDriverMemory {
		db, err := database.NewGormDBFromDSN(cfg.Database.Connection, database.ParseLogLevel(cfg.Database.LogLevel))
		if err != nil {
			log.Panicf("Unable to connect to GORM DB: %v", err)
		}
		gormDB = db
	} else {
		log.Println("[INFO] Using in-memory storage; data is lost on restart")
	}

	// 3. Bootstrap Dependencies (Container)
	container, err := bootstrap.NewContainer(ctx, gormDB, cfg)
	if err != nil {
		log.Panicf("Unable to build container: %v", err)
	}
	defer container.Close()

	shutdownTracer := tracer.InitTracer(ctx, cfg.Tracing, container.Logger)
	defer shutdownTracer(context.Background())

	// 4. Start Background Services
	go func() {
		log.Println("Background: Starting audit consumer...")
		if err := container.ConsumerService.Consume(ctx); err != nil {
			log.Printf("Background Consumer Error: %v", err)
		}
	}()
	if err := container.ReviewFeedService.Start(ctx); err != nil {
		log.Printf("[WARN] Review feed relay not started: %v", err)
	}

	// 5. Initialize Server
	srv := server.New(cfg, container)

	go func() {
		<-ctx.Done()
		if err := srv.Shutdown(); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
	}()

	// 6. Run Server
	if err := srv.Run(); err != nil {
		log.Printf("Server stopped: %v", err)
	}
}

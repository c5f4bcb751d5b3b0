package main

import (
	"context"
	"log"
	"time"

	"github.com/humyn-ai/humyn/go/internal/config"
	"github.com/humyn-ai/humyn/go/internal/db"
	"github.com/humyn-ai/humyn/go/internal/reports"
	"github.com/humyn-ai/humyn/go/internal/user"
)

func main() {
	cfg := config.Load()

	bunDB := db.NewBunPostgresClient(cfg.DatabaseURL)
	defer bunDB.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := user.NewAccountRepository(bunDB).InitializeDatabase(ctx); err != nil {
		log.Fatalf("Failed to initialize accounts schema: %v", err)
	}
	if err := reports.NewReportRepository(bunDB).InitializeDatabase(ctx); err != nil {
		log.Fatalf("Failed to initialize reports schema: %v", err)
	}

	log.Println("Migration completed")
}

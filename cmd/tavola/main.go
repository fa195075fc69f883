package main

import (
	"log"

	"github.com/tavola-dev/tavola/db"
	"github.com/tavola-dev/tavola/internal/config"
	"github.com/tavola-dev/tavola/internal/router"
)

func main() {
	var err error

	cfg := config.Load()

	if err = db.ConnectDatabase(cfg); err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}

	defer db.Store.Close()

	r := router.NewRouter(cfg)

	log.Printf("Listening on :%s", cfg.Port)

	if err = r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

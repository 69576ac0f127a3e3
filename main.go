package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"
)

func main() {
	log.SetPrefix("nutritrack: ")
	log.SetFlags(log.LstdFlags)

	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("[main] config: %v", err)
	}
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	store, err := openStore(ctx, cfg.DBURL)
	if err != nil {
		cancel()
		log.Fatalf("[main] open store: %v", err)
	}
	defer store.Close()

	if cfg.OwnerUsername != "" {
		created, err := ensureOwner(ctx, store, cfg.OwnerUsername, cfg.OwnerPassword)
		if err != nil {
			cancel()
			log.Fatalf("[main] create owner %q: %v", cfg.OwnerUsername, err)
		}
		if created {
			log.Printf("[main] created owner account %q", cfg.OwnerUsername)
		}
	}
	cancel()

	router := newRouter(newHandler(store), cfg.TrustedProxies)
	log.Printf("[main] listening on :%s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("[main] %v", err)
	}
}

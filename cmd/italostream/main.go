package main

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/italostream/italostream/internal/cache"
	"github.com/italostream/italostream/internal/config"
	"github.com/italostream/italostream/internal/constants"
	"github.com/italostream/italostream/internal/database"
	"github.com/italostream/italostream/internal/handlers"
	"github.com/italostream/italostream/internal/middleware"
	"github.com/italostream/italostream/internal/services"
	"github.com/italostream/italostream/pkg/logger"
	"github.com/italostream/italostream/pkg/ratelimiter"
)

func main() {
	log := logger.New()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	db, err := database.NewBolt(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("failed to open database at %s: %v", cfg.DatabasePath, err)
	}
	defer db.Close()

	memCache := cache.New(cfg.CacheSize, cfg.CacheTTL)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	memCache.StartCleanup(ctx)

	container := services.NewContainer(cfg, memCache, db, log)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger(log))
	r.Use(middleware.CORS())
	r.Use(middleware.Gzip())
	r.Use(middleware.RateLimit(ratelimiter.NewTokenBucket(100, 50)))

	h := handlers.New(container)
	h.RegisterRoutes(r)

	log.Infof("%s %s listening on port %s with providers %v",
		cfg.Name, constants.AddonVersion, cfg.Port, container.Registry.Names())
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

package services

import (
	"github.com/italostream/italostream/internal/cache"
	"github.com/italostream/italostream/internal/config"
	"github.com/italostream/italostream/internal/database"
	"github.com/italostream/italostream/internal/providers"
	"github.com/italostream/italostream/pkg/logger"
)

// Container wires the service graph together. Built once at startup; every
// handler reads from it.
type Container struct {
	Config    *config.ServerConfig
	Registry  *providers.Registry
	Resolver  *Resolver
	Search    *SearchMerger
	Kitsu     KitsuService
	MediaFlow *MediaFlow
	TV        TVService
	Cache     *cache.LRUCache
	DB        database.Database
	Logger    logger.Logger
}

func NewContainer(cfg *config.ServerConfig, memCache *cache.LRUCache, db database.Database, log logger.Logger) *Container {
	registry := providers.NewRegistry(cfg, log)
	kitsu := NewKitsu(memCache, db, log)
	mediaflow := NewMediaFlow(log)
	tv := NewTV(cfg, log)

	return &Container{
		Config:    cfg,
		Registry:  registry,
		Resolver:  NewResolver(cfg, registry, kitsu, mediaflow, tv, log),
		Search:    NewSearchMerger(registry, log),
		Kitsu:     kitsu,
		MediaFlow: mediaflow,
		TV:        tv,
		Cache:     memCache,
		DB:        db,
		Logger:    log,
	}
}

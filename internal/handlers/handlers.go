// Package handlers implements the HTTP request handlers for the addon API.
package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/italostream/italostream/internal/config"
	"github.com/italostream/italostream/internal/services"
)

// Handler handles HTTP requests for the addon.
type Handler struct {
	services *services.Container
	config   *config.ServerConfig
}

// New creates a new Handler with the provided service container.
func New(container *services.Container) *Handler {
	return &Handler{
		services: container,
		config:   container.Config,
	}
}

// RegisterRoutes registers all HTTP routes for the addon.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/", h.handleHome)

	r.GET("/configure", h.handleConfigure)
	r.GET("/:configuration/configure", h.handleConfigure)

	r.GET("/manifest.json", h.handleManifest)
	r.GET("/:configuration/manifest.json", h.handleManifestWithConfig)

	// Catalog, meta and stream routes accept both the bare and the .json
	// form of the trailing id.
	r.GET("/:configuration/catalog/:type/:id", h.handleCatalogWrapper)
	r.GET("/:configuration/catalog/:type/:id/*extra", h.handleCatalogWrapper)
	r.GET("/:configuration/meta/:type/:id", h.handleMetaWrapper)
	r.GET("/:configuration/stream/:type/:id", h.handleStreamWrapper)
}

func (h *Handler) handleCatalogWrapper(c *gin.Context) {
	stripJSONExtension(c, "id")

	// Stremio encodes extra catalog arguments as a path segment, e.g.
	// /catalog/anime/anime_search/search=naruto.json
	extra := c.Param("extra")
	if extra != "" {
		extra = strings.TrimPrefix(extra, "/")
		extra = strings.TrimSuffix(extra, ".json")

		for _, param := range strings.Split(extra, "&") {
			parts := strings.SplitN(param, "=", 2)
			if len(parts) == 2 {
				c.Request.URL.RawQuery = c.Request.URL.RawQuery + "&" + parts[0] + "=" + parts[1]
			}
		}
		c.Request.URL.RawQuery = strings.TrimPrefix(c.Request.URL.RawQuery, "&")
	}

	h.handleCatalog(c)
}

func (h *Handler) handleMetaWrapper(c *gin.Context) {
	stripJSONExtension(c, "id")
	h.handleMeta(c)
}

func (h *Handler) handleStreamWrapper(c *gin.Context) {
	stripJSONExtension(c, "id")
	h.handleStream(c)
}

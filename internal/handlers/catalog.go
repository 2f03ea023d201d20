package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/italostream/italostream/internal/config"
	"github.com/italostream/italostream/internal/models"
	"github.com/italostream/italostream/internal/services"
)

func (h *Handler) handleCatalog(c *gin.Context) {
	catalogType := c.Param("type")
	catalogID := c.Param("id")

	switch {
	case catalogType == "tv" && catalogID == "italostream_tv":
		h.handleTVCatalog(c)
	case catalogType == "anime" && catalogID == "anime_search":
		h.handleAnimeSearchCatalog(c)
	default:
		c.JSON(http.StatusOK, models.CatalogResponse{Metas: []models.Meta{}})
	}
}

func (h *Handler) handleTVCatalog(c *gin.Context) {
	channels := services.ChannelsByGenre(c.Query("genre"))

	metas := make([]models.Meta, 0, len(channels))
	for _, ch := range channels {
		metas = append(metas, models.Meta{
			ID:          ch.ID,
			Type:        "tv",
			Name:        ch.Name,
			Poster:      ch.Poster,
			PosterShape: "landscape",
			Genres:      ch.Genres,
		})
	}
	c.JSON(http.StatusOK, models.CatalogResponse{Metas: metas})
}

func (h *Handler) handleAnimeSearchCatalog(c *gin.Context) {
	query := c.Query("search")
	if query == "" {
		c.JSON(http.StatusOK, models.CatalogResponse{Metas: []models.Meta{}})
		return
	}

	pc := config.ParseToken(c.Param("configuration"))
	results := h.services.Search.SearchAll(c.Request.Context(), query, pc)

	metas := make([]models.Meta, 0, len(results))
	for _, candidate := range results {
		metas = append(metas, models.Meta{
			ID:          services.SyntheticID(candidate.Source, candidate.Title),
			Type:        "anime",
			Name:        candidate.Title,
			Poster:      candidate.ImageURL,
			PosterShape: "poster",
		})
	}
	c.JSON(http.StatusOK, models.CatalogResponse{Metas: metas})
}

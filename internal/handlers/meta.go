package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/italostream/italostream/internal/models"
	"github.com/italostream/italostream/internal/services"
)

// handleMeta serves metadata for the ids this addon mints itself: TV
// channels and synthetic anime entries. Movie and series ids get a minimal
// fallback meta so clients without a metadata addon still render an entry.
func (h *Handler) handleMeta(c *gin.Context) {
	metaType := c.Param("type")
	id := c.Param("id")

	switch {
	case metaType == "tv":
		h.handleTVMeta(c, id)
	case strings.HasPrefix(id, "anime_"):
		h.handleAnimeMeta(c, id)
	case strings.HasPrefix(id, "tt"):
		h.handleFallbackMeta(c, metaType, id)
	default:
		c.JSON(http.StatusNotFound, gin.H{"error": "no metadata for " + id})
	}
}

func (h *Handler) handleFallbackMeta(c *gin.Context, metaType, id string) {
	label := "Film"
	if metaType == "series" {
		label = "Serie"
	}
	c.JSON(http.StatusOK, models.MetaResponse{Meta: models.Meta{
		ID:          id,
		Type:        metaType,
		Name:        label + " " + id,
		PosterShape: "poster",
	}})
}

func (h *Handler) handleTVMeta(c *gin.Context, id string) {
	ch, ok := services.ChannelByID(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown channel " + id})
		return
	}

	c.JSON(http.StatusOK, models.MetaResponse{Meta: models.Meta{
		ID:          ch.ID,
		Type:        "tv",
		Name:        ch.Name,
		Poster:      ch.Poster,
		PosterShape: "landscape",
		Genres:      ch.Genres,
		Description: ch.Title + " live",
	}})
}

func (h *Handler) handleAnimeMeta(c *gin.Context, id string) {
	source, slug, ok := services.ParseSyntheticID(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "malformed anime id " + id})
		return
	}

	name := titleCase(services.SlugToQuery(slug))
	c.JSON(http.StatusOK, models.MetaResponse{Meta: models.Meta{
		ID:          id,
		Type:        "anime",
		Name:        name,
		PosterShape: "poster",
		Description: name + " via " + source,
	}})
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		runes := []rune(w)
		words[i] = strings.ToUpper(string(runes[0])) + string(runes[1:])
	}
	return strings.Join(words, " ")
}

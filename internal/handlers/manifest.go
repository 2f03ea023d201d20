package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/italostream/italostream/internal/config"
	"github.com/italostream/italostream/internal/constants"
	"github.com/italostream/italostream/internal/models"
)

// handleManifest serves the unconfigured manifest: every capability is
// advertised and installation requires visiting the configure page first.
func (h *Handler) handleManifest(c *gin.Context) {
	manifest := h.createManifest(models.ProviderConfig{}, false)
	manifest.BehaviorHints.ConfigurationRequired = true
	c.JSON(http.StatusOK, manifest)
}

// handleManifestWithConfig shapes the manifest to the request token: the TV
// type and catalog only appear when the token carries the live TV flag, and
// the anime catalogs only when an anime-searchable provider is enabled.
func (h *Handler) handleManifestWithConfig(c *gin.Context) {
	pc := config.ParseToken(c.Param("configuration"))
	c.JSON(http.StatusOK, h.createManifest(pc, true))
}

func (h *Handler) createManifest(pc models.ProviderConfig, shaped bool) models.Manifest {
	types := []string{"movie", "series", "anime"}
	catalogs := []models.Catalog{}

	animeSearch := h.services.Registry.HasAnimeSearch()
	if shaped {
		animeSearch = animeSearch && anyAnimeEnabled(pc)
	}
	if animeSearch {
		catalogs = append(catalogs, models.Catalog{
			Type: "anime",
			ID:   "anime_search",
			Name: h.config.Name + " Anime",
			Extra: []models.ExtraField{
				{Name: "search", IsRequired: true},
			},
		})
	}

	if !shaped || pc.LiveTV {
		types = append(types, "tv")
		catalogs = append(catalogs, models.Catalog{
			Type: "tv",
			ID:   "italostream_tv",
			Name: h.config.Name + " TV",
			Extra: []models.ExtraField{
				{Name: "genre", Options: constants.TVGenres},
			},
		})
	}

	return models.Manifest{
		ID:          constants.AddonID,
		Version:     constants.AddonVersion,
		Name:        h.config.Name,
		Description: constants.AddonDescription,
		Types:       types,
		Resources:   []string{"catalog", "meta", "stream"},
		Catalogs:    catalogs,
		BehaviorHints: models.BehaviorHints{
			Configurable: true,
		},
		IDPrefixes: []string{"tt", "kitsu:", "anime_"},
		Logo:       constants.AddonLogo,
	}
}

func anyAnimeEnabled(pc models.ProviderConfig) bool {
	for _, name := range []string{
		constants.ProviderAnimeWorld,
		constants.ProviderAnimeSaturn,
		constants.ProviderAnimeUnity,
		constants.ProviderGogoAnime,
	} {
		if pc.IsEnabled(name) {
			return true
		}
	}
	return false
}

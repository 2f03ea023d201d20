package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/italostream/italostream/internal/config"
	"github.com/italostream/italostream/internal/constants"
	"github.com/italostream/italostream/internal/errors"
	"github.com/italostream/italostream/internal/models"
)

func (h *Handler) handleStream(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), constants.RequestTimeout)
	defer cancel()

	configuration := c.Param("configuration")
	contentType := c.Param("type")
	id := c.Param("id")

	pc := config.ParseToken(configuration)

	// Stream resolution is never cached: every request re-resolves so a
	// transient provider outage is not pinned for the cache TTL.
	start := time.Now()
	streams, err := h.services.Resolver.Resolve(ctx, contentType, id, pc)
	if err != nil {
		h.streamError(c, id, err)
		return
	}
	h.services.Logger.Infof("resolved %d streams for %s in %v", len(streams), id, time.Since(start))

	c.JSON(http.StatusOK, models.StreamResponse{Streams: streams})
}

func (h *Handler) streamError(c *gin.Context, id string, err error) {
	var se *errors.StreamError
	if errors.As(err, &se) {
		switch se.Type {
		case errors.ErrorTypeNoStreamsFound:
			c.JSON(http.StatusNotFound, models.StreamResponse{Streams: []models.Stream{}})
			return
		case errors.ErrorTypeUnknownContentType:
			c.JSON(http.StatusNotFound, gin.H{"error": se.Message})
			return
		}
	}

	h.services.Logger.Errorf("stream resolution failed for %s: %v", id, err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "stream resolution failed"})
}

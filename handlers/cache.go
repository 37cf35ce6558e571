package handlers

import (
	"net/http"

	"social-server/services"

	"github.com/gin-gonic/gin"
)

type CacheHandler struct {
	sweeper *services.CacheSweeper
}

func NewCacheHandler(sweeper *services.CacheSweeper) *CacheHandler {
	return &CacheHandler{sweeper: sweeper}
}

// GetCacheStats handles GET /cache/stats
func (h *CacheHandler) GetCacheStats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"stats":  h.sweeper.Stats(),
	})
}

// Purge handles POST /cache/purge
func (h *CacheHandler) Purge(c *gin.Context) {
	h.sweeper.Sweep()
	c.JSON(http.StatusOK, gin.H{
		"status": "purged",
		"stats":  h.sweeper.Stats(),
	})
}

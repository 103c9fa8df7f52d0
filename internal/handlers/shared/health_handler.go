package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"reviewadder/internal/utils"
	"reviewadder/pkg/storage"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db      Pinger
	storage storage.Backend
	version string
}

func NewHealthHandler(db Pinger, backend storage.Backend, version string) *HealthHandler {
	return &HealthHandler{
		db:      db,
		storage: backend,
		version: version,
	}
}

// Health reports 503 when the database is unreachable. A missing storage
// backend only disables uploads and keeps the service healthy.
func (h *HealthHandler) Health(c *gin.Context) {
	status := http.StatusOK
	body := gin.H{
		"status":   utils.StatusHealthy,
		"version":  h.version,
		"database": utils.StatusHealthy,
		"storage":  utils.StatusDisabled,
	}

	if err := h.db.Ping(c.Request.Context()); err != nil {
		status = http.StatusServiceUnavailable
		body["status"] = utils.StatusUnhealthy
		body["database"] = utils.StatusUnhealthy
	}

	if provider, ok := h.storage.Provider(); ok {
		body["storage"] = provider.Name()
	}

	c.JSON(status, body)
}

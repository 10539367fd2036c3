package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	probeConnected    = "connected"
	probeDisconnected = "disconnected"
	probeDisabled     = "disabled"
)

// HealthController reports whether the service can reach its backing stores.
type HealthController struct {
	database func() bool
	cache    func() bool
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Cache     string `json:"cache"`
	Timestamp string `json:"timestamp"`
}

// NewHealthController creates a health controller from two probes.
// A nil cache probe reports the cache as disabled.
func NewHealthController(database, cache func() bool) *HealthController {
	return &HealthController{database: database, cache: cache}
}

// Check handles GET /health.
// A missing database makes the service unavailable; a lost cache only degrades it.
func (h *HealthController) Check(c *gin.Context) {
	resp := HealthResponse{
		Status:    "ok",
		Database:  probe(h.database, probeDisconnected),
		Cache:     probe(h.cache, probeDisabled),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	status := http.StatusOK
	switch {
	case resp.Database != probeConnected:
		resp.Status = "unavailable"
		status = http.StatusServiceUnavailable
	case resp.Cache == probeDisconnected:
		resp.Status = "degraded"
	}

	c.JSON(status, resp)
}

func probe(check func() bool, whenMissing string) string {
	if check == nil {
		return whenMissing
	}
	if check() {
		return probeConnected
	}
	return probeDisconnected
}

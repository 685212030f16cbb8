package monitoring

import (
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthChecker reports service health. The only dependency worth probing
// is the storage directory: if it is not writable, every save silently
// degrades, so surface that here.
type HealthChecker struct {
	service string
	dataDir string
	started time.Time
}

// NewHealthChecker creates a health checker for the given storage directory
func NewHealthChecker(service, dataDir string) *HealthChecker {
	return &HealthChecker{
		service: service,
		dataDir: dataDir,
		started: time.Now(),
	}
}

// Handler returns a gin handler for the health endpoint
func (h *HealthChecker) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		storage := "healthy"
		code := http.StatusOK

		if err := h.probeStorage(); err != nil {
			storage = "unhealthy: " + err.Error()
			code = http.StatusServiceUnavailable
		}

		c.JSON(code, gin.H{
			"service":   h.service,
			"status":    map[int]string{http.StatusOK: "healthy", http.StatusServiceUnavailable: "unhealthy"}[code],
			"storage":   storage,
			"uptime":    time.Since(h.started).String(),
			"timestamp": time.Now().UTC(),
		})
	}
}

// probeStorage verifies the data directory exists and is writable
func (h *HealthChecker) probeStorage() error {
	if _, err := os.Stat(h.dataDir); err != nil {
		return err
	}

	probe := filepath.Join(h.dataDir, ".healthcheck")
	if err := os.WriteFile(probe, []byte("ok"), 0o644); err != nil {
		return err
	}
	return os.Remove(probe)
}

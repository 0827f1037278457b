package health

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// ModelInfo describes the active predictor
type ModelInfo interface {
	Name() string
}

type classCounter interface {
	ClassCount() int
}

// WorkerStatus reports whether a background worker is scheduled
type WorkerStatus interface {
	IsRunning() bool
}

// PingFunc checks a dependency and returns nil when it is reachable
type PingFunc func(ctx context.Context) error

// Handler serves liveness and detailed health endpoints
type Handler struct {
	service   string
	modelPath string
	model     ModelInfo
	worker    WorkerStatus
	pingDB    PingFunc
}

// NewHandler creates a health handler; worker and pingDB may be nil
func NewHandler(service, modelPath string, model ModelInfo, worker WorkerStatus, pingDB PingFunc) *Handler {
	if service == "" {
		service = "ai-categorizer"
	}
	return &Handler{
		service:   service,
		modelPath: modelPath,
		model:     model,
		worker:    worker,
		pingDB:    pingDB,
	}
}

// Health handles GET /health
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"model":  h.modelPath,
	})
}

// Detailed handles GET /health/detailed
func (h *Handler) Detailed(c *gin.Context) {
	status := "ok"
	code := http.StatusOK

	database := "connected"
	if h.pingDB == nil {
		database = "disabled"
	} else if err := h.pingDB(c.Request.Context()); err != nil {
		database = "unreachable: " + err.Error()
		status = "degraded"
		code = http.StatusServiceUnavailable
	}

	modelName := ""
	classes := 0
	if h.model != nil {
		modelName = h.model.Name()
		if cc, ok := h.model.(classCounter); ok {
			classes = cc.ClassCount()
		}
	}

	c.JSON(code, gin.H{
		"status":        status,
		"timestamp":     time.Now(),
		"service":       h.service,
		"model":         h.modelPath,
		"model_name":    modelName,
		"model_classes": classes,
		"reload_worker": h.worker != nil && h.worker.IsRunning(),
		"database":      database,
	})
}

// RegisterRoutes registers the health endpoints at the router root
func (h *Handler) RegisterRoutes(router gin.IRoutes) {
	router.GET("/health", h.Health)
	router.GET("/health/detailed", h.Detailed)
}

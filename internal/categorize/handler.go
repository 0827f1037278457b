package categorize

import (
	"errors"
	"net/http"

	"github.com/dustin/jearn-categorizer/internal/textclean"
	"github.com/dustin/jearn-categorizer/pkg/logger"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
)

// Handler handles HTTP requests for categorization
type Handler struct {
	service Service
	logger  *logger.Logger
}

// NewHandler creates a new categorize handler
func NewHandler(service Service, log *logger.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  log.WithComponent("categorize-handler"),
	}
}

// Categorize scores the submitted text against every stored category
func (h *Handler) Categorize(c *gin.Context) {
	var req Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	text := req.inputText()
	if text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": ErrEmptyText.Error()})
		return
	}

	topK := 0
	if req.TopK != nil {
		topK = *req.TopK
	}

	result, err := h.service.Categorize(c.Request.Context(), text, topK)
	if err != nil {
		if errors.Is(err, ErrEmptyText) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.WithFields(map[string]interface{}{"request_id": requestid.Get(c)}).
			Error("AI error: " + err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// inputText picks the first non-empty source and cleans it
func (r *Request) inputText() string {
	if text := textclean.Clean(r.Text); text != "" {
		return text
	}
	if text := textclean.Clean(r.Content); text != "" {
		return text
	}
	return textclean.FromHTML(r.HTML)
}

// RegisterRoutes registers the versioned categorize route
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/categorize", h.Categorize)
}

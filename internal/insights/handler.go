package insights

import (
	"errors"
	"net/http"

	"rentwear/internal/catalog"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// POST /admin/insights/recompute
func (h *Handler) Recompute(c *gin.Context) {
	var req struct {
		City     string `json:"city"`
		Category string `json:"category"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	if req.City == "" && req.Category == "" {
		n, err := h.service.RecomputeAll(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "published": n})
		return
	}

	published, err := h.service.RecomputeSnapshot(c.Request.Context(), req.City, req.Category)
	if errors.Is(err, ErrMissingMarket) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"published": published,
	})
}

// GET /insights
func (h *Handler) Get(c *gin.Context) {
	snapshot, err := h.service.GetSnapshot(c.Request.Context(), c.Query("city"), c.Query("category"))
	switch {
	case errors.Is(err, ErrMissingMarket):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case err != nil:
		c.JSON(http.StatusNotFound, gin.H{"error": "no data available"})
	default:
		c.JSON(http.StatusOK, snapshot)
	}
}

// GET /products/:id/positioning
func (h *Handler) Positioning(c *gin.Context) {
	pos, err := h.service.ProductPositioning(c.Request.Context(), c.Param("id"), c.GetString("userID"))
	switch {
	case err == nil:
		c.JSON(http.StatusOK, pos)
	case errors.Is(err, catalog.ErrNotOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, catalog.ErrProductNotFound), errors.Is(err, ErrNoMarketData):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

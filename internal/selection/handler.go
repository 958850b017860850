package selection

import (
	"errors"
	"net/http"

	"rentwear/internal/core"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// GET /cart
func (h *Handler) View(c *gin.Context) {
	sessionID, ok := sessionFrom(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.service.View(sessionID))
}

// POST /cart/items
func (h *Handler) AddItem(c *gin.Context) {
	sessionID, ok := sessionFrom(c)
	if !ok {
		return
	}

	var req struct {
		ProductID string `json:"product_id"`
		Days      *int   `json:"days"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	days := 1
	if req.Days != nil {
		days = *req.Days
	}

	snap, err := h.service.Add(c.Request.Context(), sessionID, req.ProductID, days)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, snap)
	case errors.Is(err, ErrMissingProduct), errors.Is(err, ErrInvalidDays):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, core.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, ErrProductUnavailable):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update cart"})
	}
}

// GET /cart/items/:product_id
func (h *Handler) HasItem(c *gin.Context) {
	sessionID, ok := sessionFrom(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"product_id": c.Param("product_id"),
		"contains":   h.service.Contains(sessionID, c.Param("product_id")),
	})
}

// DELETE /cart/items/:product_id
func (h *Handler) RemoveItem(c *gin.Context) {
	sessionID, ok := sessionFrom(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.service.Remove(sessionID, c.Param("product_id")))
}

// DELETE /cart
func (h *Handler) Clear(c *gin.Context) {
	sessionID, ok := sessionFrom(c)
	if !ok {
		return
	}
	h.service.Clear(sessionID)
	c.Status(http.StatusNoContent)
}

// POST /auth/logout ends the caller's cart session.
func (h *Handler) EndSession(c *gin.Context) {
	sessionID, ok := sessionFrom(c)
	if !ok {
		return
	}
	h.service.Discard(sessionID)
	c.Status(http.StatusNoContent)
}

func sessionFrom(c *gin.Context) (string, bool) {
	userID := c.GetString("userID")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return "", false
	}
	return userID, true
}

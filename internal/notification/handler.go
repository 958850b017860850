package notification

import (
	"errors"
	"net/http"

	"rentwear/internal/auth"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func caller(c *gin.Context) (string, bool) {
	return c.GetString("userID"), c.GetString("userRole") == auth.RoleAdmin
}

// GET /notifications
func (h *Handler) List(c *gin.Context) {
	userID, isAdmin := caller(c)
	inbox, err := h.service.Inbox(c.Request.Context(), userID, isAdmin)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch notifications"})
		return
	}
	c.JSON(http.StatusOK, inbox)
}

// POST /notifications/:id/read
func (h *Handler) MarkRead(c *gin.Context) {
	userID, isAdmin := caller(c)
	err := h.service.MarkRead(c.Request.Context(), userID, isAdmin, c.Param("id"))
	switch {
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update notification"})
	default:
		c.Status(http.StatusNoContent)
	}
}

// POST /notifications/read-all
func (h *Handler) MarkAllRead(c *gin.Context) {
	userID, isAdmin := caller(c)
	n, err := h.service.MarkAllRead(c.Request.Context(), userID, isAdmin)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update notifications"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": n})
}

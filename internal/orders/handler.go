package orders

import (
	"errors"
	"net/http"

	"rentwear/internal/auth"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
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

// POST /checkout
func (h *Handler) Checkout(c *gin.Context) {
	userID, _ := caller(c)
	o, err := h.service.Checkout(c.Request.Context(), userID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, o)
}

// GET /orders
func (h *Handler) ListMine(c *gin.Context) {
	userID, _ := caller(c)
	list, err := h.service.ListMine(c.Request.Context(), userID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// GET /orders/:id
func (h *Handler) Get(c *gin.Context) {
	userID, isAdmin := caller(c)
	o, err := h.service.Get(c.Request.Context(), userID, isAdmin, c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

// PATCH /orders/:id/payment
func (h *Handler) UpdatePayment(c *gin.Context) {
	var req struct {
		Status    string `json:"status"`
		Reference string `json:"reference"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	userID, isAdmin := caller(c)
	o, err := h.service.UpdatePaymentStatus(c.Request.Context(), userID, isAdmin, c.Param("id"), req.Status, req.Reference)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

func fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrEmptyCart), errors.Is(err, ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, ErrInvalidTransition), errors.Is(err, ErrStatusChanged):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		zap.L().Error("order request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

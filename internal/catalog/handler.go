package catalog

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// --------------------------------------------------
// POST /shops
// --------------------------------------------------
func (h *Handler) CreateShop(c *gin.Context) {
	var req struct {
		Name        string `json:"name"`
		City        string `json:"city"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	shop, err := h.service.CreateShop(c.Request.Context(), c.GetString("userID"), req.Name, req.City, req.Description)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, shop)
}

// GET /shops/me
func (h *Handler) ListMyShops(c *gin.Context) {
	shops, err := h.service.ListMyShops(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch shops"})
		return
	}
	c.JSON(http.StatusOK, nonNil(shops))
}

// GET /shops
func (h *Handler) ListShops(c *gin.Context) {
	shops, err := h.service.ListApprovedShops(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch shops"})
		return
	}
	c.JSON(http.StatusOK, nonNil(shops))
}

// GET /shops/:id
func (h *Handler) GetShop(c *gin.Context) {
	shop, err := h.service.GetPublicShop(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, shop)
}

// GET /shops/:id/products
func (h *Handler) ListShopProducts(c *gin.Context) {
	if _, err := h.service.GetPublicShop(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}

	f := filterFrom(c)
	f.ShopID = c.Param("id")
	page, err := h.service.ListProducts(c.Request.Context(), f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch products"})
		return
	}
	c.JSON(http.StatusOK, page)
}

// --------------------------------------------------
// POST /shops/:id/products
// --------------------------------------------------
func (h *Handler) CreateProduct(c *gin.Context) {
	var in ProductInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	product, err := h.service.CreateProduct(c.Request.Context(), c.GetString("userID"), c.Param("id"), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

// GET /products
func (h *Handler) ListProducts(c *gin.Context) {
	page, err := h.service.ListProducts(c.Request.Context(), filterFrom(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch products"})
		return
	}
	c.JSON(http.StatusOK, page)
}

// GET /products/:id
func (h *Handler) GetProduct(c *gin.Context) {
	product, err := h.service.GetPublicProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// --------------------------------------------------
// POST /products/:id/images
// --------------------------------------------------
func (h *Handler) UploadImages(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil || len(form.File["images"]) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "images are required"})
		return
	}

	images := make([]Image, 0, len(form.File["images"]))
	for _, fh := range form.File["images"] {
		fh := fh
		images = append(images, Image{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Size:        fh.Size,
			Open:        func() (io.ReadCloser, error) { return fh.Open() },
		})
	}

	urls, err := h.service.UploadImages(c.Request.Context(), c.GetString("userID"), c.Param("id"), images)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "images uploaded successfully",
		"images":  urls,
	})
}

// --------------------------------------------------
// ADMIN
// --------------------------------------------------

// GET /admin/products
func (h *Handler) AdminListProducts(c *gin.Context) {
	f := filterFrom(c)
	f.Status = c.Query("status")

	page, err := h.service.AdminListProducts(c.Request.Context(), f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch products"})
		return
	}
	c.JSON(http.StatusOK, page)
}

// GET /admin/shops/pending
func (h *Handler) ListPendingShops(c *gin.Context) {
	shops, err := h.service.ListPendingShops(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch shops"})
		return
	}
	c.JSON(http.StatusOK, nonNil(shops))
}

// POST /admin/shops/:id/approve
func (h *Handler) ApproveShop(c *gin.Context) {
	if err := h.service.ApproveShop(c.Request.Context(), c.Param("id"), c.GetString("userID")); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "shop and products approved",
		"shop_id": c.Param("id"),
	})
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrMissingFields),
		errors.Is(err, ErrInvalidPrice),
		errors.Is(err, ErrInvalidCategory),
		errors.Is(err, ErrInvalidImage):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, ErrShopNotFound), errors.Is(err, ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, ErrNotOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, ErrNoStorage):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		zap.L().Error("catalog request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func filterFrom(c *gin.Context) ProductFilter {
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))
	return ProductFilter{
		Category: c.Query("category"),
		City:     c.Query("city"),
		Limit:    limit,
		Offset:   offset,
	}
}

func nonNil(shops []*Shop) []*Shop {
	if shops == nil {
		return []*Shop{}
	}
	return shops
}

package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCatalogRouter(svc *Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewHandler(svc)

	withUser := func(c *gin.Context) {
		c.Set("userID", c.GetHeader("X-Test-User"))
		c.Next()
	}

	r.GET("/shops", h.ListShops)
	r.GET("/shops/:id", h.GetShop)
	r.GET("/shops/:id/products", h.ListShopProducts)
	r.GET("/products", h.ListProducts)
	r.GET("/products/:id", h.GetProduct)

	owner := r.Group("", withUser)
	owner.POST("/shops", h.CreateShop)
	owner.GET("/shops/me", h.ListMyShops)
	owner.POST("/shops/:id/products", h.CreateProduct)
	owner.POST("/products/:id/images", h.UploadImages)
	owner.GET("/admin/products", h.AdminListProducts)
	owner.POST("/admin/shops/:id/approve", h.ApproveShop)

	return r
}

func jsonReq(method, path, user string, body any) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Test-User", user)
	return req
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCatalogHandlers_ShopLifecycle(t *testing.T) {
	svc, _, _, _ := newTestService()
	r := setupCatalogRouter(svc)

	w := serve(r, jsonReq(http.MethodPost, "/shops", "owner-1", gin.H{"name": "Velvet Closet", "city": "Pune"}))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var shop Shop
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &shop))

	w = serve(r, jsonReq(http.MethodPost, "/shops/"+shop.ID+"/products", "owner-1",
		gin.H{"name": "Tuxedo", "category": "suit", "price_per_day": 35}))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var product Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &product))

	// not public until approved
	assert.Equal(t, http.StatusNotFound, serve(r, jsonReq(http.MethodGet, "/products/"+product.ID, "", nil)).Code)
	assert.Equal(t, http.StatusNotFound, serve(r, jsonReq(http.MethodGet, "/shops/"+shop.ID, "", nil)).Code)

	w = serve(r, jsonReq(http.MethodGet, "/admin/products?status=PENDING", "admin", nil))
	var page ProductPage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Equal(t, 1, page.Total)

	w = serve(r, jsonReq(http.MethodPost, "/admin/shops/"+shop.ID+"/approve", "admin", nil))
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, http.StatusOK, serve(r, jsonReq(http.MethodGet, "/products/"+product.ID, "", nil)).Code)

	w = serve(r, jsonReq(http.MethodGet, "/shops/"+shop.ID+"/products", "", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Equal(t, 1, page.Total)

	w = serve(r, jsonReq(http.MethodGet, "/shops", "", nil))
	var shops []Shop
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &shops))
	assert.Len(t, shops, 1)
}

func TestCatalogHandlers_Errors(t *testing.T) {
	svc, _, _, _ := newTestService()
	r := setupCatalogRouter(svc)
	shop, _ := svc.CreateShop(context.Background(), "owner-1", "Closet", "Pune", "")

	w := serve(r, jsonReq(http.MethodPost, "/shops/"+shop.ID+"/products", "intruder",
		gin.H{"name": "Tuxedo", "category": "suit", "price_per_day": 35}))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = serve(r, jsonReq(http.MethodPost, "/shops/"+shop.ID+"/products", "owner-1",
		gin.H{"name": "Tuxedo", "category": "suit", "price_per_day": -1}))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = serve(r, jsonReq(http.MethodPost, "/admin/shops/unknown/approve", "admin", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = serve(r, jsonReq(http.MethodGet, "/shops/me", "nobody", nil))
	assert.Equal(t, "[]", w.Body.String())
}

func TestCatalogHandlers_UploadImages(t *testing.T) {
	svc, _, _, storage := newTestService()
	r := setupCatalogRouter(svc)
	ctx := context.Background()

	shop, _ := svc.CreateShop(ctx, "owner-1", "Closet", "Pune", "")
	p, _ := svc.CreateProduct(ctx, "owner-1", shop.ID, ProductInput{Name: "Gown", Category: "dress", PricePerDay: 40})

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	hdr := make(textproto.MIMEHeader)
	hdr.Set("Content-Disposition", `form-data; name="images"; filename="gown.png"`)
	hdr.Set("Content-Type", "image/png")
	part, err := mw.CreatePart(hdr)
	require.NoError(t, err)
	_, _ = part.Write([]byte("\x89PNG fake"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/products/"+p.ID+"/images", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("X-Test-User", "owner-1")

	w := serve(r, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Len(t, storage.objects, 1)

	req = httptest.NewRequest(http.MethodPost, "/products/"+p.ID+"/images", nil)
	req.Header.Set("X-Test-User", "owner-1")
	assert.Equal(t, http.StatusBadRequest, serve(r, req).Code)
}

package router

import (
	"net/http"
	"time"

	"rentwear/internal/auth"
	"rentwear/internal/catalog"
	"rentwear/internal/feedback"
	"rentwear/internal/insights"
	"rentwear/internal/middleware"
	"rentwear/internal/notification"
	"rentwear/internal/orders"
	"rentwear/internal/report"
	"rentwear/internal/selection"
	"rentwear/internal/stylist"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handlers struct {
	Auth          *auth.Handler
	Catalog       *catalog.Handler
	Insights      *insights.Handler
	Cart          *selection.Handler
	Orders        *orders.Handler
	Feedback      *feedback.Handler
	Reports       *report.Handler
	Notifications *notification.Handler
	Stylist       *stylist.Handler
}

type Options struct {
	Tokens      *auth.Tokens
	Logger      *zap.Logger
	CORSOrigins []string
}

func NewRouter(opts Options, h Handlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(opts.Logger))

	r.Use(cors.New(cors.Config{
		AllowOrigins:     opts.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	authed := middleware.AuthMiddleware(opts.Tokens)

	// ───────────────────────── HEALTH ─────────────────────────
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ───────────────────────── AUTH ─────────────────────────
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", h.Auth.Register)
		authGroup.POST("/login", h.Auth.Login)
		authGroup.POST("/password/forgot", h.Auth.ForgotPassword)
		authGroup.POST("/password/reset", h.Auth.ResetPassword)

		authGroup.POST("/password", authed, h.Auth.ChangePassword)
		authGroup.POST("/logout", authed, h.Cart.EndSession)
	}

	// ───────────────────────── PUBLIC CATALOG ─────────────────────────
	r.GET("/shops", h.Catalog.ListShops)
	r.GET("/shops/:id", h.Catalog.GetShop)
	r.GET("/shops/:id/products", h.Catalog.ListShopProducts)
	r.GET("/products", h.Catalog.ListProducts)
	r.GET("/products/:id", h.Catalog.GetProduct)
	r.GET("/insights", h.Insights.Get)
	r.POST("/feedback", h.Feedback.Submit)

	// ───────────────────────── SHOP OWNERS ─────────────────────────
	owners := r.Group("")
	owners.Use(authed, middleware.RequireRole(auth.RoleShopOwner))
	{
		owners.POST("/shops", h.Catalog.CreateShop)
		owners.GET("/shops/me", h.Catalog.ListMyShops)
		owners.POST("/shops/:id/products", h.Catalog.CreateProduct)
		owners.POST("/products/:id/images", h.Catalog.UploadImages)
		owners.GET("/products/:id/positioning", h.Insights.Positioning)
	}

	// ───────────────────────── CART + ORDERS ─────────────────────────
	cart := r.Group("/cart")
	cart.Use(authed)
	{
		cart.GET("", h.Cart.View)
		cart.DELETE("", h.Cart.Clear)
		cart.POST("/items", h.Cart.AddItem)
		cart.GET("/items/:product_id", h.Cart.HasItem)
		cart.DELETE("/items/:product_id", h.Cart.RemoveItem)
	}

	r.POST("/checkout", authed, h.Orders.Checkout)

	ordersGroup := r.Group("/orders")
	ordersGroup.Use(authed)
	{
		ordersGroup.GET("", h.Orders.ListMine)
		ordersGroup.GET("/:id", h.Orders.Get)
		ordersGroup.PATCH("/:id/payment", h.Orders.UpdatePayment)
	}

	// ───────────────────────── SIGNED-IN EXTRAS ─────────────────────────
	r.POST("/reports", authed, h.Reports.Create)
	r.POST("/stylist/ask", authed, h.Stylist.Ask)

	notifications := r.Group("/notifications")
	notifications.Use(authed)
	{
		notifications.GET("", h.Notifications.List)
		notifications.POST("/read-all", h.Notifications.MarkAllRead)
		notifications.POST("/:id/read", h.Notifications.MarkRead)
	}

	// ───────────────────────── ADMIN ─────────────────────────
	admin := r.Group("/admin")
	admin.Use(authed, middleware.RequireRole(auth.RoleAdmin))
	{
		admin.GET("/products", h.Catalog.AdminListProducts)
		admin.GET("/shops/pending", h.Catalog.ListPendingShops)
		admin.POST("/shops/:id/approve", h.Catalog.ApproveShop)

		admin.POST("/insights/recompute", h.Insights.Recompute)

		admin.GET("/feedback", h.Feedback.List)
		admin.GET("/reports", h.Reports.List)
		admin.POST("/reports/:id/resolve", h.Reports.Resolve)
	}

	return r
}

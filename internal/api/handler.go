package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"bookstore-service/internal/auth"
	"bookstore-service/internal/service"
	"bookstore-service/internal/store"
	"bookstore-service/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Handler contains HTTP handlers
type Handler struct {
	accounts      *service.AccountService
	catalog       *service.CatalogService
	carts         *service.CartService
	orders        *service.OrderService
	feedback      *service.FeedbackService
	authMW        *auth.Middleware
	adminUsername string
}

// NewHandler creates a new HTTP handler
func NewHandler(
	accounts *service.AccountService,
	catalog *service.CatalogService,
	carts *service.CartService,
	orders *service.OrderService,
	feedback *service.FeedbackService,
	authMW *auth.Middleware,
	adminUsername string,
) *Handler {
	return &Handler{
		accounts:      accounts,
		catalog:       catalog,
		carts:         carts,
		orders:        orders,
		feedback:      feedback,
		authMW:        authMW,
		adminUsername: adminUsername,
	}
}

// SetupRoutes sets up HTTP routes
func (h *Handler) SetupRoutes(router *gin.Engine) {
	router.Use(gin.Recovery())
	router.Use(prometheusMiddleware())
	router.Use(gin.Logger())

	router.GET("/health", h.healthCheck)
	router.GET("/ready", h.readinessCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// public storefront
	router.GET("/index", h.index)
	router.GET("/product/:id", h.productDetail)
	router.GET("/search", h.search)
	router.POST("/register", h.register)
	router.POST("/login", h.login)
	router.GET("/logout", h.logout)

	// authenticated storefront
	authed := router.Group("/", h.authMW.RequireAuth())
	{
		authed.GET("/profile", h.profile)
		authed.GET("/cart", h.viewCart)
		authed.POST("/add_to_cart/:id", h.addToCart)
		authed.POST("/update_cart/:id", h.updateCart)
		authed.POST("/remove_from_cart/:id", h.removeFromCart)
		authed.POST("/buy/:id", h.buyProduct)
		authed.GET("/feedback", h.listFeedback)
		authed.POST("/feedback", h.submitFeedback)
		authed.POST("/delete_feedback/:id", h.deleteFeedback)
	}

	// back-office
	admin := router.Group("/admin", h.authMW.RequireAuth(), h.authMW.RequireAdmin())
	{
		admin.GET("/products", h.adminListProducts)
		admin.POST("/products/add", h.adminAddProduct)
		admin.POST("/products/edit/:id", h.adminEditProduct)
		admin.POST("/products/delete/:id", h.adminDeleteProduct)
		admin.GET("/categories", h.adminListCategories)

		admin.GET("/users", h.adminListUsers)
		admin.POST("/users/add", h.adminAddUser)
		admin.POST("/users/edit/:id", h.adminEditUser)
		admin.POST("/users/delete/:id", h.adminDeleteUser)

		admin.GET("/orders", h.adminListOrders)
		admin.POST("/orders/approve/:id", h.adminApproveOrder)
		admin.POST("/orders/reject/:id", h.adminRejectOrder)

		admin.GET("/feedback", h.adminListFeedback)
		admin.POST("/feedback/respond/:id", h.adminRespondFeedback)
		admin.POST("/feedback/delete/:id", h.adminDeleteFeedback)
	}
}

// healthCheck handles health check requests
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   time.Now().Unix(),
	})
}

// readinessCheck handles readiness check requests
func (h *Handler) readinessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"time":   time.Now().Unix(),
	})
}

// idParam parses the :id path segment
func idParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

// respondError maps the error taxonomy onto HTTP statuses. Internal
// failures surface a generic message; details go to the log only.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, store.ErrOrderFinalized):
		c.JSON(http.StatusNotFound, gin.H{"error": "order already finalized"})
	case errors.Is(err, store.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "already exists"})
	case errors.Is(err, store.ErrInsufficientFunds):
		c.JSON(http.StatusPaymentRequired, gin.H{"error": "insufficient funds"})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid username or password"})
	case errors.Is(err, service.ErrInvalidQuantity),
		errors.Is(err, service.ErrEmptyContent),
		errors.Is(err, service.ErrPasswordMismatch),
		errors.Is(err, service.ErrInvalidPrice),
		errors.Is(err, service.ErrMissingField):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		util.GetLogger().Error("Request failed",
			zap.String("path", c.FullPath()),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong, please try again later"})
	}
}

// prometheusMiddleware collects HTTP metrics
func prometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		util.HTTPRequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Observe(duration)

		util.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Inc()
	}
}

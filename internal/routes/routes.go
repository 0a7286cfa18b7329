package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rushi-mungse/product-microservice/internal/apidoc"
	"github.com/rushi-mungse/product-microservice/internal/apperrors"
	"github.com/rushi-mungse/product-microservice/internal/auth"
	"github.com/rushi-mungse/product-microservice/internal/config"
	"github.com/rushi-mungse/product-microservice/internal/handlers"
	"github.com/rushi-mungse/product-microservice/internal/logger"
	"github.com/rushi-mungse/product-microservice/internal/middleware"
	"go.uber.org/zap"
)

// Version is reported by /health and the API document.
const Version = "1.0.0"

// corsConfig lets the configured frontends call us with the accessToken
// cookie attached.
func corsConfig(origins []string) cors.Config {
	return cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
}

func SetupRouter(h *handlers.Handlers, verifier auth.Verifier, cfg *config.Config, log *zap.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(
		gin.Recovery(),
		logger.RequestLogger(log),
		cors.New(corsConfig(cfg.AllowedOrigins)),
		apperrors.Handler(log),
		middleware.Timeout(cfg.RequestTimeout),
	)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK", "version": Version})
	})
	router.Static("/public", cfg.PublicDir)
	router.GET("/api/docs/openapi.json", apidoc.Handler(apidoc.New(Version)))

	authenticate := middleware.Authenticate(verifier)
	adminOnly := middleware.RequireRole(auth.RoleAdmin)
	image := middleware.SingleFile("image", cfg.UploadDir, cfg.UploadMaxBytes)

	category := router.Group("/api/category")
	{
		category.GET("", h.GetAllCategories)
		category.PUT("", authenticate, adminOnly, h.CreateCategory)
		category.POST("/:categoryId", authenticate, adminOnly, h.UpdateCategory)
		category.DELETE("/:categoryId", authenticate, adminOnly, h.DeleteCategory)
	}

	product := router.Group("/api/product")
	{
		product.GET("", h.GetAllProducts)
		product.GET("/:productId", h.GetProduct)
		product.POST("/create", authenticate, adminOnly, image, h.CreateProduct)
		product.POST("/update/:productId", authenticate, adminOnly, image, h.UpdateProduct)
		product.DELETE("/:productId", authenticate, adminOnly, h.DeleteProduct)
	}

	return router
}

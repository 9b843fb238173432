package handler

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"hijabstyles/pkg/logger"
	"hijabstyles/pkg/metrics"
)

// SetupRoutes настраивает маршруты каталога
// Чтение стилей и отзывов публичное, создание отзыва требует токен
func SetupRoutes(styleHandler *StyleHandler, reviewHandler *ReviewHandler, authMiddleware *AuthMiddleware) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())

	router.Use(logger.GinLoggerMiddleware())

	router.Use(metrics.GinPrometheusMiddleware("catalog-service"))

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"https://*", "http://*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "catalog-service",
		})
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	styles := router.Group("/styles")
	{
		styles.GET("", styleHandler.GetStyles)
		styles.GET("/:style_id", styleHandler.GetStyle)
		styles.GET("/:style_id/reviews", reviewHandler.GetReviewsByStyle)
	}

	reviews := router.Group("/reviews")
	reviews.Use(authMiddleware.Authenticate())
	{
		reviews.POST("", reviewHandler.CreateReview)
		reviews.GET("/my", reviewHandler.GetMyReviews)
	}

	return router
}

package main

import (
	"net/http"
	"strconv"
	"time"

	"cropupgrad-backend/internal/metrics"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// newRouter builds the gin engine with CORS, access logging and recovery.
// An empty allow-list disables cross-origin access altogether.
func newRouter(a *api, allowedOrigins []string) *gin.Engine {
	r := gin.New()

	if len(allowedOrigins) > 0 {
		corsConfig := cors.DefaultConfig()
		corsConfig.AllowOrigins = allowedOrigins
		corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
		corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
		corsConfig.AllowCredentials = true
		r.Use(cors.New(corsConfig))
	}
	r.Use(httpLogger(), httpRecovery())

	r.POST("/predict_crop", a.handlePredictCrop)

	v1 := r.Group("/api/v1")
	v1.GET("/health", a.handleHealth)
	v1.GET("/model", a.handleModel)
	v1.POST("/predict_crop", a.handlePredictCrop)
	v1.GET("/predictions", a.handleRecentPredictions)

	r.GET("/metrics", gin.WrapH(metrics.Handler()))
	return r
}

// httpLogger logs every request and records its latency.
func httpLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := c.Writer.Status()
		metrics.ObserveRequest(path, c.Request.Method, strconv.Itoa(status), latency)
		log.Info().Msgf("[access] [%s] %s %s %d %v", c.ClientIP(), c.Request.Method, c.Request.URL.Path, status, latency)
	}
}

// httpRecovery turns a handler panic into a 500.
func httpRecovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Error().Interface("panic", rec).Str("path", c.Request.URL.Path).Msg("recovered from panic")
				c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
			}
		}()
		c.Next()
	}
}

package routes

import (
	"time"

	"github.com/ReconfigureIO/asset-gateway/handlers/api"
	"github.com/ReconfigureIO/asset-gateway/middleware"
	"github.com/ReconfigureIO/asset-gateway/service/assets"
	"github.com/ReconfigureIO/asset-gateway/sugar"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rcrowley/go-metrics/exp"
)

// NewEngine returns a gin engine with recovery, request logging and, when
// allowedOrigins is not empty, CORS.
func NewEngine(allowedOrigins []string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.Logger())

	if len(allowedOrigins) > 0 {
		conf := cors.Config{
			AllowMethods: []string{"GET", "POST", "PUT"},
			AllowHeaders: []string{"Origin", "Content-Type"},
			MaxAge:       12 * time.Hour,
		}
		if len(allowedOrigins) == 1 && allowedOrigins[0] == "*" {
			conf.AllowAllOrigins = true
		} else {
			conf.AllowOrigins = allowedOrigins
		}
		r.Use(cors.New(conf))
	}
	return r
}

// SetupRoutes sets up asset routes on r.
func SetupRoutes(r *gin.Engine, gw *assets.Gateway) {
	// Anything unrouted, including ids that are not 32 hex digits.
	r.NoRoute(sugar.NotFound)

	r.GET("/ping", func(c *gin.Context) {
		c.String(200, "pong")
	})
	r.GET("/debug/metrics", gin.WrapH(exp.ExpHandler(gw.Metrics)))

	asset := api.Asset{Gateway: gw}
	assetRoute := r.Group("/asset")
	{
		assetRoute.POST("", asset.Create)
		assetRoute.PUT("/:id", asset.Confirm)
		assetRoute.GET("/:id", asset.Get)
	}
}

package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/sma-roster/api/swagger"
	"github.com/noah-isme/sma-roster/internal/handler"
	"github.com/noah-isme/sma-roster/internal/middleware"
	"github.com/noah-isme/sma-roster/internal/service"
	"github.com/noah-isme/sma-roster/pkg/config"
	"github.com/noah-isme/sma-roster/pkg/logger"
	corsmiddleware "github.com/noah-isme/sma-roster/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/sma-roster/pkg/middleware/requestid"
)

// Deps are the collaborators the router wires into routes. Tokens is required only when
// auth is enabled.
type Deps struct {
	Students *handler.StudentHandler
	Metrics  *handler.MetricsHandler
	Recorder *service.MetricsService
	Tokens   *service.TokenService
	Logger   *zap.Logger
}

// NewRouter builds the gin engine serving the student endpoint.
func NewRouter(cfg *config.Config, deps Deps) *gin.Engine {
	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(deps.Logger))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))

	r.GET("/health", deps.Metrics.Health)
	r.GET("/ready", deps.Metrics.Ready)
	r.GET("/metrics", deps.Metrics.Prometheus)
	r.GET("/metrics/summary", deps.Metrics.Summary)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.Use(middleware.Metrics(deps.Recorder))
	if cfg.JWT.Enabled {
		api.Use(middleware.JWT(deps.Tokens))
	}
	api.GET("/student", deps.Students.Dispatch)
	api.POST("/student", deps.Students.Dispatch)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"code": http.StatusNotFound, "message": "route not found"})
	})
	return r
}

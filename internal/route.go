package internal

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	docs "github.com/raids-lab/projecthub/docs"
	"github.com/raids-lab/projecthub/internal/handler"
	"github.com/raids-lab/projecthub/internal/middleware"
	"github.com/raids-lab/projecthub/pkg/metrics"
)

const (
	APIPrefix     = "/api"
	healthTimeout = 2 * time.Second
)

type Backend struct {
	R *gin.Engine
}

// Register builds the gin engine: public routes on the root group, and every
// manager's protected routes under /api/<name> behind token authentication.
func Register(config *handler.RegisterConfig, tokens middleware.TokenChecker) *gin.Engine {
	s := new(Backend)
	s.R = gin.New()
	s.R.Use(gin.Logger(), gin.Recovery(), metrics.GinMiddleware())
	s.R.Use(cors.New(corsConfig(config.Config.Server.CORSOrigins)))

	s.R.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Project Management Backend is running")
	})

	// health check, pings the database
	s.R.GET("/healthz", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
		defer cancel()
		if err := config.Service.Store().Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"message": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})

	s.RegisterService(config, tokens)

	// Swagger
	docs.SwaggerInfo.BasePath = "/"
	s.R.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return s.R
}

func (b *Backend) RegisterService(config *handler.RegisterConfig, tokens middleware.TokenChecker) {
	managers := registerManagers(config)

	///////////////////////////////////////
	//// Public routers, no need login ////
	///////////////////////////////////////

	publicRouter := b.R.Group("")
	for _, mgr := range managers {
		mgr.RegisterPublic(publicRouter)
	}

	///////////////////////////////////////
	//// Protected routers, need login ////
	///////////////////////////////////////

	protectedRouter := b.R.Group(APIPrefix)
	protectedRouter.Use(middleware.AuthProtected(tokens))
	for _, mgr := range managers {
		mgr.RegisterProtected(protectedRouter.Group("/" + mgr.GetName()))
	}
}

func corsConfig(origins []string) cors.Config {
	conf := cors.DefaultConfig()
	conf.AllowHeaders = append(conf.AllowHeaders, "Authorization")
	if len(origins) == 0 {
		conf.AllowAllOrigins = true
		return conf
	}
	conf.AllowOrigins = origins
	return conf
}

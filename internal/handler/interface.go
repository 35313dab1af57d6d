package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/raids-lab/projecthub/pkg/config"
	"github.com/raids-lab/projecthub/pkg/events"
	"github.com/raids-lab/projecthub/pkg/service"
)

// RegisterConfig carries the dependencies handed to every manager.
type RegisterConfig struct {
	Config  *config.Config
	Service *service.Service
	// Syncer applies events received on the webhook ingress.
	Syncer events.Handler
	// Publisher is drained on shutdown when it runs handlers in-process.
	Publisher events.Publisher
}

type Manager interface {
	GetName() string
	// RegisterPublic receives the root group; managers add full paths.
	RegisterPublic(group *gin.RouterGroup)
	// RegisterProtected receives /api/<name> behind token authentication.
	RegisterProtected(group *gin.RouterGroup)
}

// Registers collects manager constructors from init functions.
var Registers []func(config *RegisterConfig) Manager

package internal

import (
	"github.com/raids-lab/projecthub/internal/handler"
	"github.com/raids-lab/projecthub/pkg/logutils"
)

// registerManagers registers all the managers.
func registerManagers(config *handler.RegisterConfig) []handler.Manager {
	var managers []handler.Manager
	for _, register := range handler.Registers {
		manager := register(config)
		managers = append(managers, manager)
		logutils.Log.Debugf("Registered manager: %s", manager.GetName())
	}
	return managers
}

package main

import (
	"context"
	"flag"

	"github.com/raids-lab/projecthub/cmd/projecthub/helper"
	"github.com/raids-lab/projecthub/pkg/logutils"
)

// @title						ProjectHub API
// @version						1.0.0
// @description					This is the API server for ProjectHub, a workspace, project and task management backend.
// @securityDefinitions.apikey	Bearer
// @in							header
// @name						Authorization
// @description					填入 'Bearer ${TOKEN}' 以访问受保护的接口，TOKEN 为身份提供方签发的会话令牌
func main() {
	rollback := flag.Bool("rollback-last", false, "revert the most recent schema migration and exit")
	flag.Parse()

	// Initialize configuration
	configInit := helper.NewConfigInitializer()

	// Load debug environment if needed
	if err := configInit.LoadDebugEnvironment(); err != nil {
		logutils.Log.Fatalf("Failed to load env: %s", err)
	}
	backendConfig := configInit.GetBackendConfig()

	if *rollback {
		if err := configInit.RollbackLastMigration(); err != nil {
			logutils.Log.Fatalf("Failed to roll back: %s", err)
		}
		return
	}

	// Initialize register config and dependencies
	registerConfig, err := configInit.InitializeRegisterConfig()
	if err != nil {
		logutils.Log.Fatalf("Failed to register config: %s", err)
	}

	serverRunner := helper.NewServerRunner(backendConfig)

	shutdownTracing, err := serverRunner.SetupTracing(context.Background())
	if err != nil {
		logutils.Log.Fatalf("Failed to set up tracing: %s", err)
	}

	// Start the reminder sweep
	reminders := configInit.NewReminderManager(registerConfig)
	if err := reminders.Start(backendConfig.Reminder.Spec); err != nil {
		logutils.Log.Fatalf("Failed to start reminder sweep: %s", err)
	}

	// Start HTTP server, blocks until SIGINT or SIGTERM
	serverRunner.StartServer(registerConfig, configInit.GetTokenChecker())

	serverRunner.Shutdown(registerConfig, reminders, shutdownTracing)
}

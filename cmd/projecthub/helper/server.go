package helper

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/raids-lab/projecthub/internal"
	"github.com/raids-lab/projecthub/internal/handler"
	"github.com/raids-lab/projecthub/internal/middleware"
	"github.com/raids-lab/projecthub/pkg/config"
	"github.com/raids-lab/projecthub/pkg/events"
	"github.com/raids-lab/projecthub/pkg/logutils"
	"github.com/raids-lab/projecthub/pkg/otel"
	"github.com/raids-lab/projecthub/pkg/reminder"
)

// ServerRunner 封装服务器运行逻辑
type ServerRunner struct {
	backendConfig *config.Config
}

func NewServerRunner(backendConfig *config.Config) *ServerRunner {
	return &ServerRunner{
		backendConfig: backendConfig,
	}
}

var (
	readHeaderTimeout = 10 * time.Second // 设置读取头部的超时时间
	cancelTimeout     = 10 * time.Second // 设置取消操作的超时时间
)

// SetupTracing 在配置了 otel.endpoint 时启用链路追踪
func (sr *ServerRunner) SetupTracing(ctx context.Context) (func(context.Context) error, error) {
	return otel.Setup(ctx, sr.backendConfig.Otel)
}

// StartServer 启动HTTP服务器，收到退出信号后优雅关闭
func (sr *ServerRunner) StartServer(registerConfig *handler.RegisterConfig, tokens middleware.TokenChecker) {
	logutils.Log.Info("starting server")
	backend := internal.Register(registerConfig, tokens)

	// reference: https://gin-gonic.com/en/docs/examples/graceful-restart-or-stop
	srv := &http.Server{
		Addr:              sr.backendConfig.Server.Addr,
		Handler:           backend,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		// service connections
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logutils.Log.Fatalf("listen: %s\n", err)
		}
	}()
	logutils.Log.Infof("listening on %s", sr.backendConfig.Server.Addr)

	// kill (no params) by default sends syscall.SIGTERM
	// kill -2 is syscall.SIGINT
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logutils.Log.Info("Shutdown Gin Server ...")

	ctx, cancel := context.WithTimeout(context.Background(), cancelTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logutils.Log.Info("Gin Server Shutdown:", err)
	}
	logutils.Log.Info("Gin Server exiting")
}

// Shutdown 等待进程内事件处理完成，停止定时任务并刷新未导出的 span
func (sr *ServerRunner) Shutdown(
	registerConfig *handler.RegisterConfig,
	reminders *reminder.Manager,
	shutdownTracing func(context.Context) error,
) {
	ctx, cancel := context.WithTimeout(context.Background(), cancelTimeout)
	defer cancel()
	if drainer, ok := registerConfig.Publisher.(events.Drainer); ok {
		if err := drainer.Drain(ctx); err != nil {
			logutils.Log.WithError(err).Warn("drain in-process events")
		}
	}
	reminders.Stop(ctx)
	if err := shutdownTracing(ctx); err != nil {
		logutils.Log.WithError(err).Warn("flush traces")
	}
}

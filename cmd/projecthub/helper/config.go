package helper

import (
	"errors"
	"io/fs"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/raids-lab/projecthub/dao/migrate"
	"github.com/raids-lab/projecthub/dao/query"
	"github.com/raids-lab/projecthub/internal/handler"
	"github.com/raids-lab/projecthub/internal/middleware"
	"github.com/raids-lab/projecthub/internal/util"
	"github.com/raids-lab/projecthub/pkg/alert"
	"github.com/raids-lab/projecthub/pkg/config"
	"github.com/raids-lab/projecthub/pkg/db"
	"github.com/raids-lab/projecthub/pkg/events"
	"github.com/raids-lab/projecthub/pkg/logutils"
	"github.com/raids-lab/projecthub/pkg/reminder"
	"github.com/raids-lab/projecthub/pkg/service"
	"github.com/raids-lab/projecthub/pkg/syncer"
)

// ConfigInitializer 封装配置初始化逻辑
type ConfigInitializer struct {
	backendConfig *config.Config
	store         *db.Store
}

func NewConfigInitializer() *ConfigInitializer {
	return &ConfigInitializer{}
}

// GetBackendConfig 获取后端配置
func (ci *ConfigInitializer) GetBackendConfig() *config.Config {
	if ci.backendConfig == nil {
		ci.backendConfig = config.GetConfig()
	}
	return ci.backendConfig
}

// LoadDebugEnvironment 加载调试环境变量，必须在读取配置之前调用，
// 这样 .debug.env 中的 PROJECTHUB_* 变量才能覆盖配置文件
func (ci *ConfigInitializer) LoadDebugEnvironment() error {
	if gin.Mode() != gin.DebugMode {
		return nil
	}
	err := godotenv.Load(".debug.env")
	if errors.Is(err, fs.ErrNotExist) {
		logutils.Log.Warn(".debug.env not found, using the process environment")
		return nil
	}
	return err
}

// GetTokenChecker 返回校验会话令牌的组件
func (ci *ConfigInitializer) GetTokenChecker() middleware.TokenChecker {
	return util.GetTokenMgr()
}

func (ci *ConfigInitializer) getStore() *db.Store {
	if ci.store == nil {
		ci.store = db.New(query.GetDB())
	}
	return ci.store
}

// InitializeRegisterConfig 连接数据库、执行迁移并组装业务组件
func (ci *ConfigInitializer) InitializeRegisterConfig() (*handler.RegisterConfig, error) {
	cfg := ci.GetBackendConfig()
	if err := cfg.Validate(gin.Mode()); err != nil {
		return nil, err
	}
	store := ci.getStore()
	if err := migrate.Migrate(store.DB()); err != nil {
		return nil, err
	}

	syncHandler := syncer.New(store, alert.GetAlertMgr(), cfg.Server.FrontendURL)
	publisher := events.NewPublisher(cfg.Inngest, syncHandler)
	svc := service.New(store, publisher, service.Options{
		StrictBatchDelete: cfg.Authz.StrictBatchDelete,
	})

	return &handler.RegisterConfig{
		Config:    cfg,
		Service:   svc,
		Syncer:    syncHandler,
		Publisher: publisher,
	}, nil
}

// NewReminderManager 创建到期提醒的定时任务
func (ci *ConfigInitializer) NewReminderManager(registerConfig *handler.RegisterConfig) *reminder.Manager {
	return reminder.NewManager(registerConfig.Service.Store(), alert.GetAlertMgr(), registerConfig.Config.Server.FrontendURL)
}

// RollbackLastMigration 回滚最近一次数据库迁移
func (ci *ConfigInitializer) RollbackLastMigration() error {
	return migrate.RollbackLast(ci.getStore().DB())
}

package query

import (
	"fmt"
	"sync"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/dbresolver"

	"github.com/raids-lab/projecthub/pkg/config"
	"github.com/raids-lab/projecthub/pkg/logutils"
)

const slowQueryThreshold = 200 * time.Millisecond

var (
	once     sync.Once
	instance *gorm.DB
)

// GetDB returns the singleton instance of the database connection.
func GetDB() *gorm.DB {
	once.Do(func() {
		var err error
		instance, err = Connect(config.GetConfig())
		if err != nil {
			panic(err)
		}
		logutils.Log.Info("Postgres init success!")
	})
	return instance
}

// GormConfig is shared by the production connection and test databases.
// Membership invariants are checked by the rule engine at add time, so the
// schema carries no foreign keys.
func GormConfig() *gorm.Config {
	return &gorm.Config{
		TranslateError:                           true,
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   newLogger(),
	}
}

// gormWriter reports gorm's slow-query and error lines as warnings.
type gormWriter struct{}

func (gormWriter) Printf(format string, args ...any) {
	logutils.Log.Warnf(format, args...)
}

// newLogger routes gorm's messages through logutils. Lookups that find
// nothing are an expected outcome and are not logged.
func newLogger() logger.Interface {
	return logger.New(gormWriter{}, logger.Config{
		SlowThreshold:             slowQueryThreshold,
		LogLevel:                  logger.Warn,
		IgnoreRecordNotFoundError: true,
	})
}

// Connect opens a pooled Postgres connection and registers read replicas.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	pg := cfg.Postgres
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		pg.Host, pg.User, pg.Password, pg.DBName, pg.Port, pg.SSLMode, pg.TimeZone)

	db, err := gorm.Open(postgres.Open(dsn), GormConfig())
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}

	if len(pg.Replicas) > 0 {
		replicas := make([]gorm.Dialector, 0, len(pg.Replicas))
		for _, replica := range pg.Replicas {
			replicas = append(replicas, postgres.Open(replica))
		}
		err = db.Use(dbresolver.Register(dbresolver.Config{
			Replicas: replicas,
			Policy:   dbresolver.RandomPolicy{},
		}))
		if err != nil {
			return nil, fmt.Errorf("register read replicas: %w", err)
		}
		logutils.Log.Infof("registered %d read replicas", len(replicas))
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(pg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(pg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(time.Hour)
	return db, nil
}

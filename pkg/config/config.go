package config

import (
	"errors"
	"io/fs"
	"os"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/gin-gonic/gin"
	"sigs.k8s.io/yaml"

	"github.com/raids-lab/projecthub/pkg/logutils"
)

type Config struct {
	Server   ServerConfig   `json:"server" envPrefix:"SERVER_"`
	Postgres PostgresConfig `json:"postgres" envPrefix:"POSTGRES_"`
	Identity IdentityConfig `json:"identity" envPrefix:"IDENTITY_"`
	Inngest  InngestConfig  `json:"inngest" envPrefix:"INNGEST_"`
	SMTP     SMTPConfig     `json:"smtp" envPrefix:"SMTP_"`
	Reminder ReminderConfig `json:"reminder" envPrefix:"REMINDER_"`
	Authz    AuthzConfig    `json:"authz" envPrefix:"AUTHZ_"`
	Otel     OtelConfig     `json:"otel" envPrefix:"OTEL_"`
}

type ServerConfig struct {
	Addr        string   `json:"addr" env:"ADDR"`               // The address the server endpoint binds to.
	FrontendURL string   `json:"frontendURL" env:"FRONTEND_URL"` // Used to build links in notification mails.
	CORSOrigins []string `json:"corsOrigins" env:"CORS_ORIGINS"` // Empty means every origin is allowed.
}

type PostgresConfig struct {
	Host         string   `json:"host" env:"HOST"`
	Port         string   `json:"port" env:"PORT"`
	DBName       string   `json:"dbname" env:"DBNAME"`
	User         string   `json:"user" env:"USER"`
	Password     string   `json:"password" env:"PASSWORD"`
	SSLMode      string   `json:"sslmode" env:"SSLMODE"`
	TimeZone     string   `json:"TimeZone" env:"TIMEZONE"`
	Replicas     []string `json:"replicas" env:"REPLICAS"` // Full DSNs of read replicas.
	MaxIdleConns int      `json:"maxIdleConns" env:"MAX_IDLE_CONNS"`
	MaxOpenConns int      `json:"maxOpenConns" env:"MAX_OPEN_CONNS"`
}

// IdentityConfig configures how caller session tokens are verified.
// Exactly one key source is used, in order: publicKey, jwksURL, devSecret.
type IdentityConfig struct {
	PublicKey string `json:"publicKey" env:"PUBLIC_KEY"` // PEM encoded RSA public key.
	JWKSURL   string `json:"jwksURL" env:"JWKS_URL"`
	Issuer    string `json:"issuer" env:"ISSUER"`
	DevSecret string `json:"devSecret" env:"DEV_SECRET"` // HS256 secret, local development only.
}

type InngestConfig struct {
	SigningKey string `json:"signingKey" env:"SIGNING_KEY"`
	EventKey   string `json:"eventKey" env:"EVENT_KEY"`
	EventURL   string `json:"eventURL" env:"EVENT_URL"`
}

type SMTPConfig struct {
	Host     string `json:"host" env:"HOST"`
	Port     int    `json:"port" env:"PORT"`
	User     string `json:"user" env:"USER"`
	Password string `json:"password" env:"PASSWORD"`
	Sender   string `json:"sender" env:"SENDER"`
}

type ReminderConfig struct {
	Spec string `json:"spec" env:"SPEC"` // Cron spec of the due-date reminder sweep.
}

type AuthzConfig struct {
	// StrictBatchDelete requires team-lead rights on every project touched by
	// a batch task deletion instead of only the first task's project.
	StrictBatchDelete bool `json:"strictBatchDelete" env:"STRICT_BATCH_DELETE"`
}

type OtelConfig struct {
	Endpoint    string `json:"endpoint" env:"ENDPOINT"`
	ServiceName string `json:"serviceName" env:"SERVICE_NAME"`
}

const envPrefix = "PROJECTHUB_"

var (
	once   sync.Once
	config *Config
)

func GetConfig() *Config {
	once.Do(func() {
		config = initConfig()
	})
	return config
}

func IsDebugMode() bool {
	return gin.Mode() == gin.DebugMode
}

// initConfig reads the configuration file and applies environment overrides.
// In debug mode the file is ./etc/debug-config.yaml unless
// PROJECTHUB_DEBUG_CONFIG_PATH says otherwise; in release mode it is mounted
// at /etc/projecthub/config.yaml.
func initConfig() *Config {
	var configPath string
	if IsDebugMode() {
		if os.Getenv("PROJECTHUB_DEBUG_CONFIG_PATH") != "" {
			configPath = os.Getenv("PROJECTHUB_DEBUG_CONFIG_PATH")
		} else {
			configPath = "./etc/debug-config.yaml"
		}
	} else {
		configPath = "/etc/projecthub/config.yaml"
	}
	logutils.Log.Info("config path: ", configPath)
	cfg, err := Load(configPath)
	if err != nil {
		logutils.Log.Error("init config ", err)
		panic(err)
	}
	return cfg
}

// Load builds a Config from defaults, the YAML file at filePath (if it exists)
// and PROJECTHUB_* environment variables, in that order of precedence.
func Load(filePath string) (*Config, error) {
	cfg := Default()
	if err := readConfig(filePath, cfg); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		logutils.Log.Warnf("config file %s not found, using defaults and environment", filePath)
	}
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: envPrefix}); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the configuration used when nothing else is set.
func Default() *Config {
	cfg := &Config{}
	cfg.Server.Addr = ":5000"
	cfg.Postgres.Host = "localhost"
	cfg.Postgres.Port = "5432"
	cfg.Postgres.DBName = "projecthub"
	cfg.Postgres.User = "postgres"
	cfg.Postgres.SSLMode = "disable"
	cfg.Postgres.TimeZone = "UTC"
	cfg.Postgres.MaxIdleConns = 5
	cfg.Postgres.MaxOpenConns = 10
	cfg.SMTP.Port = 587
	cfg.Inngest.EventURL = "https://inn.gs/e/"
	cfg.Reminder.Spec = "@every 1m"
	cfg.Otel.ServiceName = "projecthub"
	return cfg
}

// Validate rejects settings that are unsafe for the given gin mode. Release
// mode requires a webhook signing key.
func (c *Config) Validate(mode string) error {
	if mode == gin.ReleaseMode && c.Inngest.SigningKey == "" {
		return errors.New("inngest.signingKey is required in release mode")
	}
	return nil
}

func readConfig(filePath string, config *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, config)
}

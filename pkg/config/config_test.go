package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, ":5000", cfg.Server.Addr)
	assert.Equal(t, "@every 1m", cfg.Reminder.Spec)
	assert.False(t, cfg.Authz.StrictBatchDelete)
}

func TestLoadFileThenEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  addr: ":8080"
  corsOrigins: ["https://app.example.com"]
postgres:
  host: db.internal
  replicas: ["host=replica user=ro"]
authz:
  strictBatchDelete: true
smtp:
  host: smtp.example.com
  sender: bot@example.com
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("PROJECTHUB_POSTGRES_HOST", "override.internal")
	t.Setenv("PROJECTHUB_INNGEST_SIGNING_KEY", "signkey-test-abc")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, []string{"https://app.example.com"}, cfg.Server.CORSOrigins)
	assert.Equal(t, "override.internal", cfg.Postgres.Host)
	assert.Equal(t, "5432", cfg.Postgres.Port, "defaults survive a partial file")
	assert.Equal(t, []string{"host=replica user=ro"}, cfg.Postgres.Replicas)
	assert.True(t, cfg.Authz.StrictBatchDelete)
	assert.Equal(t, 587, cfg.SMTP.Port)
	assert.Equal(t, "signkey-test-abc", cfg.Inngest.SigningKey)
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [unterminated"), 0o600))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidateRequiresSigningKeyInRelease(t *testing.T) {
	cfg := Default()
	assert.Error(t, cfg.Validate(gin.ReleaseMode))
	assert.NoError(t, cfg.Validate(gin.DebugMode))
	assert.NoError(t, cfg.Validate(gin.TestMode))

	cfg.Inngest.SigningKey = "signkey-prod-abc123"
	assert.NoError(t, cfg.Validate(gin.ReleaseMode))
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testYAML = `
api:
  environment: test
  port: "9000"
  jwt_signing_key: secret
  allowed_cors_domains:
    - http://localhost:3000
gin:
  mode: test
postgres:
  host: localhost
  user: borai
  password: borai
  db: borai
rate_limit:
  rps: 2
  burst: 4
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	conf, err := Load(writeConfig(t, testYAML))
	require.NoError(t, err)

	assert.Equal(t, "test", conf.API.Environment)
	assert.Equal(t, "9000", conf.API.Port)
	assert.Equal(t, []string{"http://localhost:3000"}, conf.API.AllowedCORSDomains)
	assert.Equal(t, "test", conf.Gin.Mode)
	assert.Equal(t, "5432", conf.Postgres.Port)
	assert.Equal(t, "host=localhost port=5432 user=borai password=borai dbname=borai sslmode=disable TimeZone=UTC", conf.Postgres.DSN())
	assert.Equal(t, 7, conf.Achievement.MaxVisibleInsignias)

	rps, burst := conf.RateLimit.Values()
	assert.Equal(t, 2.0, rps)
	assert.Equal(t, 4, burst)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("POSTGRES_HOST", "db.internal")

	conf, err := Load(writeConfig(t, testYAML))
	require.NoError(t, err)
	assert.Equal(t, "db.internal", conf.Postgres.Host)
}

func TestLoadRequiresSigningKey(t *testing.T) {
	_, err := Load(writeConfig(t, "api:\n  port: \"8080\"\n"))
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)
}

package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	t.Setenv("SECRET_KEY", "test-secret")
	t.Setenv("DB_ENGINE", "mysql")
	t.Setenv("DB_HOST", "test-host")
	t.Setenv("DB_MAX_OPEN_CONNS", "20")
	t.Setenv("ALLOWED_HOSTS", "example.com, www.example.com")
	t.Setenv("CSRF_TRUSTED_ORIGINS", "https://example.com")
	t.Setenv("EMAIL_USE_TLS", "true")
	t.Setenv("SESSION_TTL_HOURS", "48")

	cfg := Load()

	assert.Equal(t, "test-secret", cfg.SecretKey)
	assert.Equal(t, "mysql", cfg.Database.Engine)
	assert.Equal(t, "test-host", cfg.Database.Host)
	assert.Equal(t, 20, cfg.Database.MaxOpenConns)
	assert.Equal(t, []string{"example.com", "www.example.com"}, cfg.AllowedHosts)
	assert.Equal(t, []string{"https://example.com"}, cfg.CSRFTrustedOrigins)
	assert.True(t, cfg.Email.UseTLS)
	assert.Equal(t, 48, cfg.Session.TTLHours)
}

func TestValidate(t *testing.T) {
	base := func() *AppConfig {
		c := &AppConfig{
			SecretKey: "s",
			Database:  DatabaseConfig{Engine: EngineSQLite},
			Email:     EmailConfig{Backend: EmailBackendConsole},
			Files:     FilesConfig{MediaStorage: MediaStorageLocal},
		}
		return c
	}

	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, base().Validate())
	})

	t.Run("missing secret outside debug", func(t *testing.T) {
		c := base()
		c.SecretKey = ""
		assert.Error(t, c.Validate())

		c.Debug = true
		assert.NoError(t, c.Validate())
	})

	t.Run("bad engine", func(t *testing.T) {
		c := base()
		c.Database.Engine = "postgres"
		err := c.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "DB_ENGINE")
	})

	t.Run("bad email backend", func(t *testing.T) {
		c := base()
		c.Email.Backend = "sendmail"
		assert.Error(t, c.Validate())
	})
}

func TestHostAllowed(t *testing.T) {
	c := &AppConfig{AllowedHosts: []string{"example.com", ".dfs.edu"}}

	assert.True(t, c.HostAllowed("example.com"))
	assert.True(t, c.HostAllowed("example.com:8080"))
	assert.True(t, c.HostAllowed("EXAMPLE.com"))
	assert.True(t, c.HostAllowed("dfs.edu"))
	assert.True(t, c.HostAllowed("portal.dfs.edu"))
	assert.False(t, c.HostAllowed("evil.com"))

	wildcard := &AppConfig{AllowedHosts: []string{"*"}}
	assert.True(t, wildcard.HostAllowed("anything.example"))
}

func TestOriginTrusted(t *testing.T) {
	c := &AppConfig{CSRFTrustedOrigins: []string{"https://example.com"}}

	assert.True(t, c.OriginTrusted("https://example.com"))
	assert.True(t, c.OriginTrusted("https://example.com/"))
	assert.False(t, c.OriginTrusted("http://example.com"))
	assert.False(t, c.OriginTrusted("https://other.com"))
}

func TestGetEnv(t *testing.T) {
	key := "TEST_ENV_VAR"
	os.Setenv(key, "value")
	defer os.Unsetenv(key)

	assert.Equal(t, "value", getEnv(key, "default"))
	assert.Equal(t, "default", getEnv("NON_EXISTENT", "default"))
}

func TestGetEnvList(t *testing.T) {
	t.Setenv("TEST_LIST_VAR", "a, b,,c ")
	assert.Equal(t, []string{"a", "b", "c"}, getEnvList("TEST_LIST_VAR", ""))
	assert.Equal(t, []string{"x"}, getEnvList("TEST_LIST_MISSING", "x"))
}

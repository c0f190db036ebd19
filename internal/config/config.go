package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Supported database engines.
const (
	EngineSQLite = "sqlite3"
	EngineMySQL  = "mysql"
)

// Supported email backends.
const (
	EmailBackendSMTP    = "smtp"
	EmailBackendConsole = "console"
)

// Supported media storage backends.
const (
	MediaStorageLocal = "local"
	MediaStorageS3    = "s3"
)

// DatabaseConfig holds database connection settings. Engine selects the
// driver; for sqlite3 only Name (the file path) is used.
type DatabaseConfig struct {
	Engine             string
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
}

// EmailConfig holds SMTP settings for outbound notification mail.
type EmailConfig struct {
	Backend      string
	Host         string
	Port         int
	UseTLS       bool
	HostUser     string
	HostPassword string
	DefaultFrom  string
}

// MinIOConfig holds object storage settings for MinIO, used when media is
// kept in an S3-compatible store instead of the local media directory.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// FilesConfig holds the static/media filesystem layout. StaticSourceDirs
// are the directories collectstatic copies into StaticRoot.
type FilesConfig struct {
	StaticRoot       string
	StaticSourceDirs []string
	MediaRoot        string
	MediaStorage     string
}

// SessionConfig controls login session lifetime and the recurring cleanup
// of expired sessions inside the server process.
type SessionConfig struct {
	TTLHours    int
	CleanupCron string
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	SecretKey          string
	Debug              bool
	AllowedHosts       []string
	CSRFTrustedOrigins []string
	SecureSSLRedirect  bool
	Port               string
	RestartSentinel    string
	Database           DatabaseConfig
	Email              EmailConfig
	MinIO              MinIOConfig
	Files              FilesConfig
	Session            SessionConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		SecretKey:          getEnv("SECRET_KEY", ""),
		Debug:              getEnvBool("DEBUG", false),
		AllowedHosts:       getEnvList("ALLOWED_HOSTS", "*"),
		CSRFTrustedOrigins: getEnvList("CSRF_TRUSTED_ORIGINS", ""),
		SecureSSLRedirect:  getEnvBool("SECURE_SSL_REDIRECT", false),
		Port:               getEnv("PORT", "8080"), // default only for non-sensitive value
		RestartSentinel:    getEnv("RESTART_SENTINEL", "tmp/restart.txt"),
		Database: DatabaseConfig{
			Engine:             getEnv("DB_ENGINE", EngineSQLite),
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", "3306"),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			Name:               getEnv("DB_NAME", "db.sqlite3"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
		},
		Email: EmailConfig{
			Backend:      getEnv("EMAIL_BACKEND", EmailBackendConsole),
			Host:         getEnv("EMAIL_HOST", ""),
			Port:         getEnvInt("EMAIL_PORT", 587),
			UseTLS:       getEnvBool("EMAIL_USE_TLS", true),
			HostUser:     getEnv("EMAIL_HOST_USER", ""),
			HostPassword: getEnv("EMAIL_HOST_PASSWORD", ""),
			DefaultFrom:  getEnv("DEFAULT_FROM_EMAIL", "noreply@dfs-education.com"),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", ""),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
		Files: FilesConfig{
			StaticRoot:       getEnv("STATIC_ROOT", "staticfiles"),
			StaticSourceDirs: getEnvList("STATIC_SOURCE_DIRS", "static"),
			MediaRoot:        getEnv("MEDIA_ROOT", "media"),
			MediaStorage:     getEnv("MEDIA_STORAGE", MediaStorageLocal),
		},
		Session: SessionConfig{
			TTLHours:    getEnvInt("SESSION_TTL_HOURS", 24*14),
			CleanupCron: getEnv("SESSION_CLEANUP_CRON", "0 3 * * *"),
		},
	}
}

// Validate checks settings that must fail fast at startup rather than
// surface later as opaque runtime errors.
func (c *AppConfig) Validate() error {
	if c.SecretKey == "" && !c.Debug {
		return fmt.Errorf("SECRET_KEY is required when DEBUG is off")
	}
	switch c.Database.Engine {
	case EngineSQLite, EngineMySQL:
	default:
		return fmt.Errorf("unsupported DB_ENGINE %q (expected %q or %q)", c.Database.Engine, EngineSQLite, EngineMySQL)
	}
	switch c.Email.Backend {
	case EmailBackendSMTP, EmailBackendConsole:
	default:
		return fmt.Errorf("unsupported EMAIL_BACKEND %q", c.Email.Backend)
	}
	switch c.Files.MediaStorage {
	case MediaStorageLocal, MediaStorageS3:
	default:
		return fmt.Errorf("unsupported MEDIA_STORAGE %q", c.Files.MediaStorage)
	}
	return nil
}

// HostAllowed reports whether the request Host header matches
// ALLOWED_HOSTS. A single "*" entry allows everything; a leading dot
// allows the domain and all subdomains.
func (c *AppConfig) HostAllowed(host string) bool {
	// Strip a port suffix if present.
	if i := strings.LastIndex(host, ":"); i != -1 && !strings.Contains(host[i:], "]") {
		host = host[:i]
	}
	host = strings.ToLower(host)
	for _, allowed := range c.AllowedHosts {
		allowed = strings.ToLower(allowed)
		switch {
		case allowed == "*":
			return true
		case strings.HasPrefix(allowed, "."):
			if host == allowed[1:] || strings.HasSuffix(host, allowed) {
				return true
			}
		case host == allowed:
			return true
		}
	}
	return false
}

// OriginTrusted reports whether an Origin header value is listed in
// CSRF_TRUSTED_ORIGINS.
func (c *AppConfig) OriginTrusted(origin string) bool {
	for _, o := range c.CSRFTrustedOrigins {
		if strings.EqualFold(strings.TrimSuffix(o, "/"), strings.TrimSuffix(origin, "/")) {
			return true
		}
	}
	return false
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}

// getEnvList splits a comma-separated variable, trimming whitespace and
// dropping empty entries.
func getEnvList(key, def string) []string {
	v := os.Getenv(key)
	if v == "" {
		v = def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/XSAM/otelsql"
	_ "github.com/go-sql-driver/mysql"
	"go.opentelemetry.io/otel/attribute"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	_ "modernc.org/sqlite"

	"dfseducation/internal/config"
)

var sqlOpen = sql.Open

// BuildDSN constructs the driver DSN for the configured engine.
// sqlite3: the database file path. mysql: user:pass@tcp(host:port)/name
// with parseTime so DATETIME columns scan into time.Time.
func BuildDSN(c config.DatabaseConfig) (string, error) {
	switch c.Engine {
	case config.EngineSQLite:
		if c.Name == "" {
			return "", fmt.Errorf("invalid database config: sqlite3 requires DB_NAME (file path)")
		}
		return c.Name, nil
	case config.EngineMySQL:
		if c.Host == "" || c.Port == "" || c.User == "" || c.Name == "" {
			return "", fmt.Errorf("invalid database config: mysql requires host, port, user, and name")
		}
		cred := c.User
		if c.Password != "" {
			cred += ":" + c.Password
		}
		return fmt.Sprintf("%s@tcp(%s:%s)/%s?parseTime=true&charset=utf8mb4&loc=UTC", cred, c.Host, c.Port, c.Name), nil
	default:
		return "", fmt.Errorf("unsupported database engine %q", c.Engine)
	}
}

func driverFor(engine string) (name string, attr attribute.KeyValue) {
	if engine == config.EngineMySQL {
		return "mysql", semconv.DBSystemMySQL
	}
	return "sqlite", semconv.DBSystemSqlite
}

// New opens a database/sql connection for the configured engine and
// applies pooling settings. The driver is wrapped with otelsql so queries
// produce spans.
func New(c config.DatabaseConfig) (*sql.DB, error) {
	dsn, err := BuildDSN(c)
	if err != nil {
		return nil, err
	}

	baseDriver, sysAttr := driverFor(c.Engine)
	driverName, err := otelsql.Register(baseDriver,
		otelsql.WithAttributes(sysAttr),
		otelsql.WithSQLCommenter(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to register otelsql: %w", err)
	}

	db, err := sqlOpen(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("sql open: %w", err)
	}

	// SQLite is a single-writer file store; cap the pool at one open
	// connection so concurrent writes queue instead of failing with
	// SQLITE_BUSY.
	if c.Engine == config.EngineSQLite {
		db.SetMaxOpenConns(1)
	} else {
		if c.MaxOpenConns > 0 {
			db.SetMaxOpenConns(c.MaxOpenConns)
		}
		if c.MaxIdleConns > 0 {
			db.SetMaxIdleConns(c.MaxIdleConns)
		}
	}
	if c.ConnMaxLifetimeSec > 0 {
		db.SetConnMaxLifetime(time.Duration(c.ConnMaxLifetimeSec) * time.Second)
	}

	// Verify connectivity with a short timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping: %w", err)
	}

	return db, nil
}

package migration

import (
	"context"
	"strings"
	"testing"

	"dfseducation/internal/config"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSteps(t *testing.T) {
	wantTables := []string{
		"users", "sessions", "notifications", "scholarships", "applications",
		"admission_letters", "jw02_forms", "application_status_history",
		"offices", "office_regions", "bank_accounts", "application_payments",
		"wallets", "wallet_transactions", "withdrawal_requests", "site_settings",
	}

	for _, engine := range []string{config.EngineSQLite, config.EngineMySQL} {
		t.Run(engine, func(t *testing.T) {
			steps := buildSteps(engine)
			all := ""
			for _, s := range steps {
				all += s.SQL + "\n"
			}
			for _, table := range wantTables {
				assert.Contains(t, all, "CREATE TABLE IF NOT EXISTS "+table, "missing table %s", table)
			}
		})
	}

	t.Run("dialect pk differs", func(t *testing.T) {
		sqliteSQL := buildSteps(config.EngineSQLite)[0].SQL
		mysqlSQL := buildSteps(config.EngineMySQL)[0].SQL
		assert.Contains(t, sqliteSQL, "AUTOINCREMENT")
		assert.Contains(t, mysqlSQL, "AUTO_INCREMENT")
	})

	t.Run("application document slots", func(t *testing.T) {
		appSQL := ""
		for _, s := range buildSteps(config.EngineSQLite) {
			if s.Name == "create_table_applications" {
				appSQL = s.SQL
			}
		}
		require.NotEmpty(t, appSQL)
		for _, f := range []string{"passport", "photo", "study_plan", "english_certificate"} {
			assert.True(t, strings.Contains(appSQL, f), "missing document column %s", f)
		}
	})
}

func TestEnsureMigrated_SkipsExistingSchema(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM sqlite_master").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	err = EnsureMigrated(context.Background(), db, config.EngineSQLite)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureMigrated_RunsAllSteps(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM sqlite_master").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	for range buildSteps(config.EngineSQLite) {
		mock.ExpectExec("CREATE").WillReturnResult(sqlmock.NewResult(0, 0))
	}

	err = EnsureMigrated(context.Background(), db, config.EngineSQLite)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

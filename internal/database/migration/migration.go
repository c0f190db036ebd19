package migration

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"dfseducation/internal/config"
)

type migrationStep struct {
	Name string
	SQL  string
}

// dialect captures the few DDL differences between the two supported
// engines. Everything else in the schema is written in the portable
// subset both accept.
type dialect struct {
	pk       string // auto-incrementing primary key column
	boolCol  string
	fileCol  string // storage keys
	textCol  string
}

func dialectFor(engine string) dialect {
	if engine == config.EngineMySQL {
		return dialect{
			pk:      "BIGINT PRIMARY KEY AUTO_INCREMENT",
			boolCol: "TINYINT(1) NOT NULL DEFAULT 0",
			fileCol: "VARCHAR(500) NOT NULL DEFAULT ''",
			textCol: "TEXT",
		}
	}
	return dialect{
		pk:      "INTEGER PRIMARY KEY AUTOINCREMENT",
		boolCol: "BOOLEAN NOT NULL DEFAULT 0",
		fileCol: "VARCHAR(500) NOT NULL DEFAULT ''",
		textCol: "TEXT",
	}
}

func buildSteps(engine string) []migrationStep {
	d := dialectFor(engine)

	docCols := ""
	for _, f := range []string{
		"passport", "photo", "graduation_certificate", "criminal_record",
		"medical_examination", "letter_of_recommendation_1",
		"letter_of_recommendation_2", "study_plan", "english_certificate",
	} {
		docCols += fmt.Sprintf("  %s %s,\n", f, d.fileCol)
	}

	return []migrationStep{
		{
			Name: "create_table_users",
			SQL: fmt.Sprintf(`CREATE TABLE IF NOT EXISTS users (
  id            %s,
  username      VARCHAR(150) NOT NULL UNIQUE,
  email         VARCHAR(254) NOT NULL,
  password_hash VARCHAR(128) NOT NULL,
  first_name    VARCHAR(150) NOT NULL DEFAULT '',
  last_name     VARCHAR(150) NOT NULL DEFAULT '',
  phone         VARCHAR(20)  NOT NULL DEFAULT '',
  role          VARCHAR(20)  NOT NULL DEFAULT 'user',
  status        VARCHAR(20)  NOT NULL DEFAULT 'active',
  is_superuser  %s,
  created_at    DATETIME NOT NULL,
  updated_at    DATETIME NOT NULL
)`, d.pk, d.boolCol),
		},
		{
			Name: "create_table_sessions",
			SQL: `CREATE TABLE IF NOT EXISTS sessions (
  id         VARCHAR(36) PRIMARY KEY,
  user_id    BIGINT NOT NULL,
  expires_at DATETIME NOT NULL,
  created_at DATETIME NOT NULL
)`,
		},
		{
			Name: "create_table_notifications",
			SQL: fmt.Sprintf(`CREATE TABLE IF NOT EXISTS notifications (
  id         %s,
  user_id    BIGINT NOT NULL,
  title      VARCHAR(255) NOT NULL,
  message    %s NOT NULL,
  link       VARCHAR(500) NOT NULL DEFAULT '',
  is_read    %s,
  created_at DATETIME NOT NULL
)`, d.pk, d.textCol, d.boolCol),
		},
		{
			Name: "create_table_scholarships",
			SQL: fmt.Sprintf(`CREATE TABLE IF NOT EXISTS scholarships (
  id               %s,
  name             VARCHAR(100) NOT NULL,
  description      %s NOT NULL,
  city             VARCHAR(100) NOT NULL,
  major            VARCHAR(100) NOT NULL,
  degree           VARCHAR(50) NOT NULL,
  language         VARCHAR(100) NOT NULL,
  scholarship_type VARCHAR(50) NOT NULL,
  deadline         DATETIME NOT NULL,
  semester         VARCHAR(20) NOT NULL,
  price            DECIMAL(10,2) NOT NULL,
  eligibility      %s NOT NULL,
  note             %s,
  agent_commission DECIMAL(10,2) NOT NULL DEFAULT 0,
  hq_commission    DECIMAL(10,2) NOT NULL DEFAULT 0
)`, d.pk, d.textCol, d.textCol, d.textCol),
		},
		{
			Name: "create_table_applications",
			SQL: fmt.Sprintf(`CREATE TABLE IF NOT EXISTS applications (
  app_id           %s,
  scholarship_id   BIGINT NOT NULL,
  user_id          BIGINT NOT NULL,
  office_id        BIGINT,
  status           VARCHAR(30) NOT NULL DEFAULT 'draft',
  applied_date     DATETIME NOT NULL,
%s  rejection_reason %s,
  assigned_agent_id BIGINT,
  assigned_hq_id    BIGINT,
  deadline         DATETIME,
  approved_date    DATETIME,
  completed_date   DATETIME
)`, d.pk, docCols, d.textCol),
		},
		{
			Name: "create_table_admission_letters",
			SQL: fmt.Sprintf(`CREATE TABLE IF NOT EXISTS admission_letters (
  id             %s,
  application_id BIGINT NOT NULL,
  uploaded_by_id BIGINT,
  file_key       VARCHAR(500) NOT NULL,
  status         VARCHAR(30) NOT NULL DEFAULT 'pending_verification',
  revision_note  %s,
  uploaded_at    DATETIME NOT NULL,
  approved_at    DATETIME,
  approved_by_id BIGINT
)`, d.pk, d.textCol),
		},
		{
			Name: "create_table_jw02_forms",
			SQL: fmt.Sprintf(`CREATE TABLE IF NOT EXISTS jw02_forms (
  id             %s,
  application_id BIGINT NOT NULL,
  uploaded_by_id BIGINT,
  file_key       VARCHAR(500) NOT NULL,
  status         VARCHAR(30) NOT NULL DEFAULT 'pending_verification',
  revision_note  %s,
  uploaded_at    DATETIME NOT NULL,
  approved_at    DATETIME,
  approved_by_id BIGINT
)`, d.pk, d.textCol),
		},
		{
			Name: "create_table_application_status_history",
			SQL: fmt.Sprintf(`CREATE TABLE IF NOT EXISTS application_status_history (
  id             %s,
  application_id BIGINT NOT NULL,
  old_status     VARCHAR(30),
  new_status     VARCHAR(30) NOT NULL,
  changed_by_id  BIGINT,
  note           %s,
  changed_at     DATETIME NOT NULL
)`, d.pk, d.textCol),
		},
		{
			Name: "create_table_offices",
			SQL: fmt.Sprintf(`CREATE TABLE IF NOT EXISTS offices (
  id         %s,
  name       VARCHAR(200) NOT NULL,
  code       VARCHAR(30) NOT NULL UNIQUE,
  city       VARCHAR(100) NOT NULL DEFAULT '',
  country    VARCHAR(100) NOT NULL DEFAULT '',
  address    %s,
  phone      VARCHAR(30) NOT NULL DEFAULT '',
  email      VARCHAR(254) NOT NULL DEFAULT '',
  is_default %s,
  is_active  %s,
  created_at DATETIME NOT NULL
)`, d.pk, d.textCol, d.boolCol, d.boolCol),
		},
		{
			Name: "create_table_office_regions",
			SQL: fmt.Sprintf(`CREATE TABLE IF NOT EXISTS office_regions (
  id           %s,
  office_id    BIGINT NOT NULL,
  country_code VARCHAR(3) NOT NULL,
  country_name VARCHAR(100) NOT NULL,
  city         VARCHAR(100) NOT NULL DEFAULT '',
  CONSTRAINT uq_office_regions UNIQUE (country_code, city)
)`, d.pk),
		},
		{
			Name: "create_table_bank_accounts",
			SQL: fmt.Sprintf(`CREATE TABLE IF NOT EXISTS bank_accounts (
  account_id          %s,
  bank_name           VARCHAR(255) NOT NULL,
  account_number      VARCHAR(50) NOT NULL,
  account_holder_name VARCHAR(255) NOT NULL,
  iban                VARCHAR(50) NOT NULL DEFAULT '',
  swift_code          VARCHAR(50) NOT NULL,
  status              VARCHAR(20) NOT NULL DEFAULT 'active',
  created_at          DATETIME NOT NULL,
  updated_at          DATETIME NOT NULL
)`, d.pk),
		},
		{
			Name: "create_table_application_payments",
			SQL: fmt.Sprintf(`CREATE TABLE IF NOT EXISTS application_payments (
  application_payment_id %s,
  application_id BIGINT NOT NULL,
  amount         DECIMAL(10,2) NOT NULL,
  receipt_key    VARCHAR(500) NOT NULL DEFAULT '',
  payment_status VARCHAR(20) NOT NULL DEFAULT 'pending',
  payment_date   DATETIME NOT NULL,
  transaction_id VARCHAR(255) NOT NULL DEFAULT '',
  reviewed_by_id BIGINT,
  reviewed_at    DATETIME,
  review_note    %s
)`, d.pk, d.textCol),
		},
		{
			Name: "create_table_wallets",
			SQL: fmt.Sprintf(`CREATE TABLE IF NOT EXISTS wallets (
  id                  %s,
  user_id             BIGINT NOT NULL UNIQUE,
  current_balance     DECIMAL(12,2) NOT NULL DEFAULT 0,
  upcoming_payments   DECIMAL(12,2) NOT NULL DEFAULT 0,
  pending_withdrawals DECIMAL(12,2) NOT NULL DEFAULT 0,
  total_earned        DECIMAL(12,2) NOT NULL DEFAULT 0,
  total_withdrawn     DECIMAL(12,2) NOT NULL DEFAULT 0,
  created_at          DATETIME NOT NULL,
  updated_at          DATETIME NOT NULL
)`, d.pk),
		},
		{
			Name: "create_table_wallet_transactions",
			SQL: fmt.Sprintf(`CREATE TABLE IF NOT EXISTS wallet_transactions (
  id             %s,
  wallet_id      BIGINT NOT NULL,
  application_id BIGINT,
  type           VARCHAR(20) NOT NULL,
  amount         DECIMAL(10,2) NOT NULL,
  description    VARCHAR(255) NOT NULL,
  status         VARCHAR(20) NOT NULL DEFAULT 'completed',
  created_at     DATETIME NOT NULL
)`, d.pk),
		},
		{
			Name: "create_table_withdrawal_requests",
			SQL: fmt.Sprintf(`CREATE TABLE IF NOT EXISTS withdrawal_requests (
  id               %s,
  wallet_id        BIGINT NOT NULL,
  amount           DECIMAL(10,2) NOT NULL,
  status           VARCHAR(20) NOT NULL DEFAULT 'pending',
  rejection_reason %s,
  requested_at     DATETIME NOT NULL,
  processed_at     DATETIME,
  processed_by_id  BIGINT
)`, d.pk, d.textCol),
		},
		{
			Name: "create_table_site_settings",
			SQL: fmt.Sprintf(`CREATE TABLE IF NOT EXISTS site_settings (
  id                  BIGINT PRIMARY KEY,
  site_name           VARCHAR(200) NOT NULL,
  tagline             VARCHAR(300) NOT NULL DEFAULT '',
  logo_key            VARCHAR(500) NOT NULL DEFAULT '',
  favicon_key         VARCHAR(500) NOT NULL DEFAULT '',
  meta_description    VARCHAR(300) NOT NULL DEFAULT '',
  meta_keywords       VARCHAR(500) NOT NULL DEFAULT '',
  og_image_key        VARCHAR(500) NOT NULL DEFAULT '',
  contact_email       VARCHAR(254) NOT NULL DEFAULT '',
  contact_phone       VARCHAR(30) NOT NULL DEFAULT '',
  address             %s,
  facebook_url        VARCHAR(200) NOT NULL DEFAULT '',
  instagram_url       VARCHAR(200) NOT NULL DEFAULT '',
  twitter_url         VARCHAR(200) NOT NULL DEFAULT '',
  linkedin_url        VARCHAR(200) NOT NULL DEFAULT '',
  youtube_url         VARCHAR(200) NOT NULL DEFAULT '',
  whatsapp_number     VARCHAR(30) NOT NULL DEFAULT '',
  google_analytics_id VARCHAR(30) NOT NULL DEFAULT '',
  footer_text         VARCHAR(500) NOT NULL DEFAULT ''
)`, d.textCol),
		},
		{
			Name: "create_index_sessions_expires_at",
			SQL:  `CREATE INDEX idx_sessions_expires_at ON sessions (expires_at)`,
		},
		{
			Name: "create_index_notifications_user",
			SQL:  `CREATE INDEX idx_notifications_user ON notifications (user_id, is_read)`,
		},
		{
			Name: "create_index_applications_user",
			SQL:  `CREATE INDEX idx_applications_user ON applications (user_id)`,
		},
		{
			Name: "create_index_applications_status",
			SQL:  `CREATE INDEX idx_applications_status ON applications (status)`,
		},
		{
			Name: "create_index_applications_agent",
			SQL:  `CREATE INDEX idx_applications_agent ON applications (assigned_agent_id)`,
		},
		{
			Name: "create_index_applications_hq",
			SQL:  `CREATE INDEX idx_applications_hq ON applications (assigned_hq_id)`,
		},
		{
			Name: "create_index_history_application",
			SQL:  `CREATE INDEX idx_history_application ON application_status_history (application_id)`,
		},
		{
			Name: "create_index_payments_application",
			SQL:  `CREATE INDEX idx_payments_application ON application_payments (application_id)`,
		},
		{
			Name: "create_index_wallet_txn_wallet",
			SQL:  `CREATE INDEX idx_wallet_txn_wallet ON wallet_transactions (wallet_id)`,
		},
	}
}

// schemaExists checks for the users sentinel table.
func schemaExists(ctx context.Context, db *sql.DB, engine string) (bool, error) {
	var query string
	if engine == config.EngineMySQL {
		query = `SELECT COUNT(*) FROM information_schema.tables WHERE table_schema = DATABASE() AND table_name = 'users'`
	} else {
		query = `SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'users'`
	}
	var count int
	if err := db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

// EnsureMigrated checks whether the schema exists and creates it if it
// doesn't. Index steps are only run on a fresh schema, so they don't need
// IF NOT EXISTS support from the engine.
func EnsureMigrated(ctx context.Context, db *sql.DB, engine string) error {
	start := time.Now()

	logJSON(map[string]any{
		"component": "database",
		"event":     "db_migration_check",
		"status":    "starting",
		"engine":    engine,
	})

	exists, err := schemaExists(ctx, db, engine)
	if err != nil {
		logJSON(map[string]any{
			"component":     "database",
			"event":         "db_migration_failed",
			"status":        "error",
			"error_message": fmt.Sprintf("failed to check sentinel table: %v", err),
			"engine":        engine,
			"duration_ms":   time.Since(start).Milliseconds(),
		})
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		logJSON(map[string]any{
			"component":   "database",
			"event":       "db_migration_skip",
			"status":      "success",
			"msg":         "schema already exists, skipping migration",
			"engine":      engine,
			"duration_ms": time.Since(start).Milliseconds(),
		})
		return nil
	}

	logJSON(map[string]any{
		"component": "database",
		"event":     "db_migration_start",
		"status":    "in_progress",
		"engine":    engine,
	})

	for _, step := range buildSteps(engine) {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			logJSON(map[string]any{
				"component":        "database",
				"event":            "db_migration_failed",
				"status":           "error",
				"migration_step":   step.Name,
				"error_message":    err.Error(),
				"engine":           engine,
				"duration_ms":      time.Since(start).Milliseconds(),
				"step_duration_ms": time.Since(stepStart).Milliseconds(),
			})
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		logJSON(map[string]any{
			"component":        "database",
			"event":            "db_migration_step",
			"status":           "success",
			"migration_step":   step.Name,
			"engine":           engine,
			"step_duration_ms": time.Since(stepStart).Milliseconds(),
		})
	}

	logJSON(map[string]any{
		"component":   "database",
		"event":       "db_migration_success",
		"status":      "success",
		"engine":      engine,
		"duration_ms": time.Since(start).Milliseconds(),
	})

	return nil
}

func logJSON(data map[string]any) {
	data["ts"] = time.Now().UTC().Format(time.RFC3339Nano)
	if _, ok := data["level"]; !ok {
		if data["status"] == "error" {
			data["level"] = "error"
		} else {
			data["level"] = "info"
		}
	}

	b, err := json.Marshal(data)
	if err != nil {
		log.Printf("failed to marshal migration log: %v", err)
		return
	}
	log.SetFlags(0)
	log.Println(string(b))
}

package migration

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"document-manager-api/internal/infrastructure/db/postgres"
)

// sentinelQuery checks the newest table; every step is idempotent so older
// schemas are brought forward.
const sentinelQuery = `SELECT to_regclass('public.registrations') IS NOT NULL`

type step struct {
	Name string
	SQL  string
}

var steps = []step{
	{
		Name: "create_table_users",
		SQL: `CREATE TABLE IF NOT EXISTS users (
  id              VARCHAR(36)  PRIMARY KEY,
  username        VARCHAR(50)  NOT NULL,
  password        VARCHAR(100) NOT NULL,
  email           VARCHAR(100) NOT NULL,
  role_id         VARCHAR(36)  NOT NULL,
  storage_quota   BIGINT       NOT NULL,
  storage_current BIGINT       NOT NULL DEFAULT 0,
  onboarding      BOOLEAN      NOT NULL DEFAULT TRUE,
  totp_key        VARCHAR(100),
  disable_date    TIMESTAMPTZ,
  create_date     TIMESTAMPTZ  NOT NULL,
  delete_date     TIMESTAMPTZ
);`,
	},
	{
		Name: "create_index_users_active_username",
		SQL:  `CREATE UNIQUE INDEX IF NOT EXISTS idx_users_active_username ON users (username) WHERE delete_date IS NULL;`,
	},
	{
		Name: "create_table_documents",
		SQL: `CREATE TABLE IF NOT EXISTS documents (
  id          VARCHAR(36)   PRIMARY KEY,
  user_id     VARCHAR(36)   NOT NULL REFERENCES users (id),
  title       VARCHAR(100)  NOT NULL,
  description VARCHAR(4000),
  language    VARCHAR(7)    NOT NULL,
  subject     VARCHAR(500),
  identifier  VARCHAR(500),
  publisher   VARCHAR(500),
  format      VARCHAR(500),
  source      VARCHAR(500),
  type        VARCHAR(100),
  coverage    VARCHAR(100),
  rights      VARCHAR(100),
  file_id     VARCHAR(36),
  create_date TIMESTAMPTZ   NOT NULL,
  update_date TIMESTAMPTZ   NOT NULL,
  delete_date TIMESTAMPTZ
);`,
	},
	{
		Name: "create_index_documents_user_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_documents_user_id ON documents (user_id) WHERE delete_date IS NULL;`,
	},
	{
		Name: "create_table_acls",
		SQL: `CREATE TABLE IF NOT EXISTS acls (
  id          VARCHAR(36) PRIMARY KEY,
  source_id   VARCHAR(36) NOT NULL,
  perm        VARCHAR(30) NOT NULL,
  target_id   VARCHAR(36) NOT NULL,
  type        VARCHAR(30) NOT NULL,
  delete_date TIMESTAMPTZ
);`,
	},
	{
		Name: "create_index_acls_source_target",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_acls_source_target ON acls (source_id, target_id) WHERE delete_date IS NULL;`,
	},
	{
		Name: "create_table_groups",
		SQL: `CREATE TABLE IF NOT EXISTS groups (
  id          VARCHAR(36)  PRIMARY KEY,
  name        VARCHAR(50)  NOT NULL,
  create_date TIMESTAMPTZ  NOT NULL,
  delete_date TIMESTAMPTZ
);`,
	},
	{
		Name: "create_index_groups_active_name",
		SQL:  `CREATE UNIQUE INDEX IF NOT EXISTS idx_groups_active_name ON groups (name) WHERE delete_date IS NULL;`,
	},
	{
		Name: "create_table_user_groups",
		SQL: `CREATE TABLE IF NOT EXISTS user_groups (
  id          VARCHAR(36) PRIMARY KEY,
  group_id    VARCHAR(36) NOT NULL REFERENCES groups (id),
  user_id     VARCHAR(36) NOT NULL REFERENCES users (id),
  create_date TIMESTAMPTZ NOT NULL,
  delete_date TIMESTAMPTZ
);`,
	},
	{
		Name: "create_index_user_groups_active_member",
		SQL:  `CREATE UNIQUE INDEX IF NOT EXISTS idx_user_groups_active_member ON user_groups (group_id, user_id) WHERE delete_date IS NULL;`,
	},
	{
		Name: "create_index_user_groups_user_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_user_groups_user_id ON user_groups (user_id) WHERE delete_date IS NULL;`,
	},
	{
		Name: "create_table_registrations",
		SQL: `CREATE TABLE IF NOT EXISTS registrations (
  id          VARCHAR(36)  PRIMARY KEY,
  username    VARCHAR(50)  NOT NULL UNIQUE,
  email       VARCHAR(100) NOT NULL,
  password    VARCHAR(100) NOT NULL,
  create_date TIMESTAMPTZ  NOT NULL
);`,
	},
	{
		Name: "create_table_audit_logs",
		SQL: `CREATE TABLE IF NOT EXISTS audit_logs (
  id           VARCHAR(36)  PRIMARY KEY,
  entity_id    VARCHAR(36)  NOT NULL,
  entity_class VARCHAR(50)  NOT NULL,
  type         VARCHAR(50)  NOT NULL,
  message      VARCHAR(1000),
  user_id      VARCHAR(50)  NOT NULL,
  create_date  TIMESTAMPTZ  NOT NULL
);`,
	},
	{
		Name: "create_index_audit_logs_entity",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_audit_logs_entity ON audit_logs (entity_id, create_date DESC);`,
	},
}

// EnsureMigrated creates the schema unless the users table already exists.
// All steps run in one transaction.
func EnsureMigrated(ctx context.Context, db postgres.DB, logger *zap.Logger) error {
	start := time.Now()
	logger.Info("db migration check")

	var exists bool
	if err := db.QueryRow(ctx, sentinelQuery).Scan(&exists); err != nil {
		logger.Error("db migration failed", zap.Error(err), zap.Duration("duration", time.Since(start)))
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}
	if exists {
		logger.Info("schema already exists, skipping migration", zap.Duration("duration", time.Since(start)))
		return nil
	}

	err := postgres.ExecTx(ctx, db, func(ctx context.Context) error {
		conn := postgres.Conn(ctx, db)
		for _, s := range steps {
			if _, err := conn.Exec(ctx, s.SQL); err != nil {
				return fmt.Errorf("migration step %s: %w", s.Name, err)
			}
			logger.Debug("migration step applied", zap.String("step", s.Name))
		}
		return nil
	})
	if err != nil {
		logger.Error("db migration failed", zap.Error(err), zap.Duration("duration", time.Since(start)))
		return err
	}

	logger.Info("db migration completed",
		zap.Int("steps", len(steps)),
		zap.Duration("duration", time.Since(start)),
	)

	return nil
}

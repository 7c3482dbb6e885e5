package audit

import (
	"context"
	"database/sql"

	"github.com/radieske/betting-backoffice/pkg/contracts/events"
)

// PostgresStore grava a trilha de auditoria numa tabela própria do console
type PostgresStore struct{ db *sql.DB }

func NewPostgresStore(db *sql.DB) *PostgresStore { return &PostgresStore{db: db} }

// EnsureSchema cria a tabela se não existir
func (p *PostgresStore) EnsureSchema(ctx context.Context) error {
	_, err := p.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS backoffice_audit (
			id         UUID PRIMARY KEY,
			entity     TEXT NOT NULL,
			operation  TEXT NOT NULL,
			target_id  TEXT,
			version    TEXT,
			payload    JSONB,
			created_at TIMESTAMPTZ NOT NULL
		)`)
	return err
}

func (p *PostgresStore) Record(ctx context.Context, e events.BackofficeMutation) error {
	var payload any
	if len(e.Payload) > 0 {
		payload = []byte(e.Payload)
	}
	_, err := p.db.ExecContext(ctx, `
		INSERT INTO backoffice_audit (id,entity,operation,target_id,version,payload,created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		e.ID, e.Entity, e.Operation, nullable(e.TargetID), nullable(e.Version), payload, e.Ts,
	)
	return err
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

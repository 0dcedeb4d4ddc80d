package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"curator/internal/domain"
)

// AuditStore appends immutable trail entries. There is no update or delete:
// entries outlive the records they describe.
type AuditStore struct {
	db *DB
}

func NewAuditStore(db *DB) *AuditStore { return &AuditStore{db: db} }

func (s *AuditStore) Append(ctx context.Context, e domain.AuditEntry) (int64, error) {
	var actor any
	if e.ActorID != nil {
		actor = *e.ActorID
	}
	res, err := s.db.execer(ctx).ExecContext(ctx, `
		INSERT INTO audit_log (event_id, user_id, table_name, action, record_id, details, timestamp)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.EventID, actor, e.TableName, e.Action, e.RecordID, e.Details,
		e.Timestamp.Format(timestampFormat),
	)
	if err != nil {
		return 0, mapErr(err)
	}
	return insertID(res)
}

func (s *AuditStore) List(ctx context.Context, table string, limit int) ([]domain.AuditEntry, error) {
	query := `
		SELECT log_id, event_id, user_id, table_name, action, record_id, details, timestamp
		FROM audit_log`
	args := []any{}
	if table != "" {
		query += ` WHERE table_name = ?`
		args = append(args, table)
	}
	query += ` ORDER BY log_id DESC`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.execer(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	var out []domain.AuditEntry
	for rows.Next() {
		var (
			e     domain.AuditEntry
			actor sql.NullInt64
			ts    string
		)
		if err := rows.Scan(&e.ID, &e.EventID, &actor, &e.TableName, &e.Action, &e.RecordID, &e.Details, &ts); err != nil {
			return nil, fmt.Errorf("scan audit row: %w", err)
		}
		if actor.Valid {
			e.ActorID = &actor.Int64
		}
		if e.Timestamp, err = time.Parse(timestampFormat, ts); err != nil {
			return nil, fmt.Errorf("parse audit timestamp: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

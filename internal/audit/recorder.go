// Package audit maintains the immutable trail of business mutations.
//
// Entries are appended inside the same transaction as the mutation they
// describe, so a record never exists without its trail entry. Attribution
// comes from the request context rather than any global state; when no
// acting user is attached (bootstrap scripts, seeding) the entry is skipped,
// which is not an error.
package audit

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"curator/internal/domain"
	"curator/internal/storage"
	"curator/pkg/requestcontext"
)

// Recorder appends audit entries for entity services.
type Recorder struct {
	store  storage.AuditStore
	logger *log.Logger
}

func NewRecorder(store storage.AuditStore, logger *log.Logger) *Recorder {
	return &Recorder{store: store, logger: logger}
}

// Record appends one entry for a mutation of table/recordID. The write joins
// whatever transaction is carried by ctx.
func (r *Recorder) Record(ctx context.Context, table, action string, recordID int64, details string) error {
	actorID, ok := requestcontext.ActorID(ctx)
	if !ok {
		return nil
	}
	entry := domain.AuditEntry{
		EventID:   uuid.NewString(),
		ActorID:   &actorID,
		TableName: table,
		Action:    action,
		RecordID:  recordID,
		Details:   details,
		Timestamp: requestcontext.Now(ctx),
	}
	if _, err := r.store.Append(ctx, entry); err != nil {
		return fmt.Errorf("append audit entry: %w", err)
	}
	if r.logger != nil {
		r.logger.Printf("audit: user=%d %s %s id=%d", actorID, action, table, recordID)
	}
	return nil
}

// List returns trail entries, newest first, optionally filtered by table.
func (r *Recorder) List(ctx context.Context, table string, limit int) ([]domain.AuditEntry, error) {
	return r.store.List(ctx, table, limit)
}

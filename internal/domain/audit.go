package domain

import "time"

// Audit actions mirror the mutation kinds recorded against entity tables.
const (
	AuditInsert = "INSERT"
	AuditUpdate = "UPDATE"
	AuditDelete = "DELETE"
)

// AuditEntry captures one mutation for the trail. Entries are immutable once
// written: the application never updates or deletes them, and they outlive
// the records they describe. ActorID is nil for unattributed writes.
type AuditEntry struct {
	ID        int64     `json:"id"`
	EventID   string    `json:"event_id"`
	ActorID   *int64    `json:"actor_id"`
	TableName string    `json:"table_name"`
	Action    string    `json:"action"`
	RecordID  int64     `json:"record_id"`
	Details   string    `json:"details"`
	Timestamp time.Time `json:"timestamp"`
}

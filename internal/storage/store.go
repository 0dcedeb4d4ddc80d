package storage

import (
	"context"
	"time"

	"curator/internal/domain"
)

// Stores are interface-driven to keep the domain logic testable and to allow
// swapping in-memory and SQLite persistence without rewiring business code.
// Implementations return pkg/platform/sentinel errors for infrastructure
// facts; services translate those into coded domain errors.

// TxRunner executes fn as one atomic unit. Every mutation (validation aside,
// which runs before the store is touched) and its audit entry commit or roll
// back together. Implementations release the transaction on all exit paths.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type MuseumStore interface {
	Create(ctx context.Context, m domain.Museum) (int64, error)
	// ExistsNameCity reports whether a museum with the exact (name, city)
	// pair already exists.
	ExistsNameCity(ctx context.Context, name, city string) (bool, error)
	List(ctx context.Context) ([]domain.Museum, error)
	// Stats returns the aggregate row for one museum, or ErrNotFound when
	// the museum does not exist.
	Stats(ctx context.Context, museumID int64) (domain.MuseumStats, error)
}

type ExhibitStore interface {
	Create(ctx context.Context, e domain.Exhibit) (int64, error)
	Get(ctx context.Context, id int64) (domain.Exhibit, error)
	UpdateCondition(ctx context.Context, id int64, c domain.Condition) error
	// Search matches term case-insensitively against title and category,
	// ordered by title.
	Search(ctx context.Context, term string) ([]domain.Exhibit, error)
	ByCondition(ctx context.Context, c domain.Condition) ([]domain.Exhibit, error)
	// Valuable lists exhibits with value >= minValue, highest first.
	Valuable(ctx context.Context, minValue float64) ([]domain.Exhibit, error)
	// TopByMaintenance ranks exhibits by maintenance-action count descending,
	// ties broken by most recent maintenance date descending.
	TopByMaintenance(ctx context.Context, limit int) ([]domain.ExhibitMaintenanceRank, error)
	HasMaintenanceHistory(ctx context.Context, id int64) (bool, error)
	Delete(ctx context.Context, id int64) error
}

type VisitorStore interface {
	Create(ctx context.Context, v domain.Visitor) (int64, error)
	// FindByEmail looks up by the normalized (lowercase) address.
	FindByEmail(ctx context.Context, email string) (domain.Visitor, error)
	LogVisit(ctx context.Context, v domain.Visit) (int64, error)
	// Activity returns per-visitor aggregates for visitors with at least one
	// visit, ordered by total visits descending.
	Activity(ctx context.Context) ([]domain.VisitorActivity, error)
}

type MaintenanceStore interface {
	Create(ctx context.Context, r domain.MaintenanceRecord) (int64, error)
	// ByDateRange returns records with date in [start, end] inclusive,
	// newest first.
	ByDateRange(ctx context.Context, start, end time.Time) ([]domain.MaintenanceRecord, error)
	// Candidates returns every exhibit joined with its latest maintenance
	// date, condition and value. DaysSince is measured against now and is
	// nil for exhibits never maintained. Threshold filtering is business
	// logic and stays out of the store.
	Candidates(ctx context.Context, now time.Time) ([]domain.MaintenanceCandidate, error)
	Summary(ctx context.Context) ([]domain.MaintenanceSummaryRow, error)
}

type UserStore interface {
	Create(ctx context.Context, u domain.User) (int64, error)
	FindByUsername(ctx context.Context, username string) (domain.User, error)
	UpdateLastLogin(ctx context.Context, id int64, t time.Time) error
}

// AuditStore is append-only. There is deliberately no update or delete.
type AuditStore interface {
	Append(ctx context.Context, e domain.AuditEntry) (int64, error)
	List(ctx context.Context, table string, limit int) ([]domain.AuditEntry, error)
}

package storage

import (
	"context"
	"time"

	"curator/internal/domain"
)

// Typed views over the shared dataset. Each view satisfies one store
// interface so services depend on exactly what they use.

func (s *Memory) Museums() MuseumStore         { return memoryMuseums{s} }
func (s *Memory) Exhibits() ExhibitStore       { return memoryExhibits{s} }
func (s *Memory) Visitors() VisitorStore       { return memoryVisitors{s} }
func (s *Memory) Maintenance() MaintenanceStore { return memoryMaintenance{s} }
func (s *Memory) Users() UserStore             { return memoryUsers{s} }
func (s *Memory) Audit() AuditStore            { return memoryAudit{s} }

type memoryMuseums struct{ m *Memory }

func (v memoryMuseums) Create(ctx context.Context, mu domain.Museum) (int64, error) {
	return v.m.createMuseum(ctx, mu)
}

func (v memoryMuseums) ExistsNameCity(ctx context.Context, name, city string) (bool, error) {
	return v.m.existsNameCity(ctx, name, city)
}

func (v memoryMuseums) List(ctx context.Context) ([]domain.Museum, error) {
	return v.m.listMuseums(ctx)
}

func (v memoryMuseums) Stats(ctx context.Context, museumID int64) (domain.MuseumStats, error) {
	return v.m.stats(ctx, museumID)
}

type memoryExhibits struct{ m *Memory }

func (v memoryExhibits) Create(ctx context.Context, e domain.Exhibit) (int64, error) {
	return v.m.createExhibit(ctx, e)
}

func (v memoryExhibits) Get(ctx context.Context, id int64) (domain.Exhibit, error) {
	return v.m.getExhibit(ctx, id)
}

func (v memoryExhibits) UpdateCondition(ctx context.Context, id int64, c domain.Condition) error {
	return v.m.updateCondition(ctx, id, c)
}

func (v memoryExhibits) Search(ctx context.Context, term string) ([]domain.Exhibit, error) {
	return v.m.searchExhibits(ctx, term)
}

func (v memoryExhibits) ByCondition(ctx context.Context, c domain.Condition) ([]domain.Exhibit, error) {
	return v.m.byCondition(ctx, c)
}

func (v memoryExhibits) Valuable(ctx context.Context, minValue float64) ([]domain.Exhibit, error) {
	return v.m.valuable(ctx, minValue)
}

func (v memoryExhibits) TopByMaintenance(ctx context.Context, limit int) ([]domain.ExhibitMaintenanceRank, error) {
	return v.m.topByMaintenance(ctx, limit)
}

func (v memoryExhibits) HasMaintenanceHistory(ctx context.Context, id int64) (bool, error) {
	return v.m.hasMaintenanceHistory(ctx, id)
}

func (v memoryExhibits) Delete(ctx context.Context, id int64) error {
	return v.m.deleteExhibit(ctx, id)
}

type memoryVisitors struct{ m *Memory }

func (v memoryVisitors) Create(ctx context.Context, vis domain.Visitor) (int64, error) {
	return v.m.createVisitor(ctx, vis)
}

func (v memoryVisitors) FindByEmail(ctx context.Context, email string) (domain.Visitor, error) {
	return v.m.findByEmail(ctx, email)
}

func (v memoryVisitors) LogVisit(ctx context.Context, visit domain.Visit) (int64, error) {
	return v.m.logVisit(ctx, visit)
}

func (v memoryVisitors) Activity(ctx context.Context) ([]domain.VisitorActivity, error) {
	return v.m.activity(ctx)
}

type memoryMaintenance struct{ m *Memory }

func (v memoryMaintenance) Create(ctx context.Context, r domain.MaintenanceRecord) (int64, error) {
	return v.m.createMaintenance(ctx, r)
}

func (v memoryMaintenance) ByDateRange(ctx context.Context, start, end time.Time) ([]domain.MaintenanceRecord, error) {
	return v.m.byDateRange(ctx, start, end)
}

func (v memoryMaintenance) Candidates(ctx context.Context, now time.Time) ([]domain.MaintenanceCandidate, error) {
	return v.m.candidates(ctx, now)
}

func (v memoryMaintenance) Summary(ctx context.Context) ([]domain.MaintenanceSummaryRow, error) {
	return v.m.summary(ctx)
}

type memoryUsers struct{ m *Memory }

func (v memoryUsers) Create(ctx context.Context, u domain.User) (int64, error) {
	return v.m.createUser(ctx, u)
}

func (v memoryUsers) FindByUsername(ctx context.Context, username string) (domain.User, error) {
	return v.m.findByUsername(ctx, username)
}

func (v memoryUsers) UpdateLastLogin(ctx context.Context, id int64, t time.Time) error {
	return v.m.updateLastLogin(ctx, id, t)
}

type memoryAudit struct{ m *Memory }

func (v memoryAudit) Append(ctx context.Context, e domain.AuditEntry) (int64, error) {
	return v.m.appendAudit(ctx, e)
}

func (v memoryAudit) List(ctx context.Context, table string, limit int) ([]domain.AuditEntry, error) {
	return v.m.listAudit(ctx, table, limit)
}

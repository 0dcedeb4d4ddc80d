package storage

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"curator/internal/domain"
	"curator/pkg/platform/sentinel"
)

// Memory is a single in-memory dataset implementing every store interface.
// It recomputes the relational joins in Go and intentionally favors clarity
// over performance. Services are tested against it; the SQLite stores must
// agree with its observable behavior.
type Memory struct {
	mu sync.RWMutex

	museums     map[int64]domain.Museum
	exhibits    map[int64]domain.Exhibit
	visitors    map[int64]domain.Visitor
	visits      map[int64]domain.Visit
	maintenance map[int64]domain.MaintenanceRecord
	users       map[int64]domain.User
	audit       []domain.AuditEntry

	nextID map[string]int64
}

func NewMemory() *Memory {
	return &Memory{
		museums:     make(map[int64]domain.Museum),
		exhibits:    make(map[int64]domain.Exhibit),
		visitors:    make(map[int64]domain.Visitor),
		visits:      make(map[int64]domain.Visit),
		maintenance: make(map[int64]domain.MaintenanceRecord),
		users:       make(map[int64]domain.User),
		nextID:      make(map[string]int64),
	}
}

// RunInTx runs fn directly. The memory dataset serializes operations with
// its mutex; there is no partial-write window to roll back because services
// validate before the first store call.
func (s *Memory) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (s *Memory) allocate(table string) int64 {
	s.nextID[table]++
	return s.nextID[table]
}

// --- MuseumStore ---

func (s *Memory) createMuseum(ctx context.Context, m domain.Museum) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.museums {
		if existing.Name == m.Name && existing.City == m.City {
			return 0, sentinel.ErrDuplicate
		}
	}
	m.ID = s.allocate("museum")
	s.museums[m.ID] = m
	return m.ID, nil
}

func (s *Memory) existsNameCity(_ context.Context, name, city string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, m := range s.museums {
		if m.Name == name && m.City == city {
			return true, nil
		}
	}
	return false, nil
}

func (s *Memory) listMuseums(_ context.Context) ([]domain.Museum, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Museum, 0, len(s.museums))
	for _, m := range s.museums {
		for _, e := range s.exhibits {
			if e.MuseumID == m.ID {
				m.ExhibitCount++
			}
		}
		out = append(out, m)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Memory) stats(_ context.Context, museumID int64) (domain.MuseumStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.museums[museumID]
	if !ok {
		return domain.MuseumStats{}, sentinel.ErrNotFound
	}
	stats := domain.MuseumStats{MuseumName: m.Name}
	for _, e := range s.exhibits {
		if e.MuseumID == museumID {
			stats.TotalExhibits++
		}
	}
	ratingSum, ratingCount := 0, 0
	for _, v := range s.visits {
		if v.MuseumID != museumID {
			continue
		}
		stats.TotalVisits++
		stats.TotalRevenue += v.TicketPrice
		if v.Rating != nil {
			ratingSum += *v.Rating
			ratingCount++
		}
	}
	if ratingCount > 0 {
		avg := float64(ratingSum) / float64(ratingCount)
		stats.AvgRating = &avg
	}
	return stats, nil
}

// --- ExhibitStore ---

func (s *Memory) createExhibit(ctx context.Context, e domain.Exhibit) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.museums[e.MuseumID]; !ok {
		return 0, sentinel.ErrForeignKey
	}
	e.ID = s.allocate("museum_item")
	s.exhibits[e.ID] = e
	return e.ID, nil
}

func (s *Memory) getExhibit(_ context.Context, id int64) (domain.Exhibit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.exhibits[id]
	if !ok {
		return domain.Exhibit{}, sentinel.ErrNotFound
	}
	s.joinMuseum(&e)
	return e, nil
}

func (s *Memory) updateCondition(_ context.Context, id int64, c domain.Condition) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.exhibits[id]
	if !ok {
		return sentinel.ErrNotFound
	}
	e.Condition = c
	s.exhibits[id] = e
	return nil
}

func (s *Memory) searchExhibits(_ context.Context, term string) ([]domain.Exhibit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	needle := strings.ToLower(term)
	var out []domain.Exhibit
	for _, e := range s.exhibits {
		if strings.Contains(strings.ToLower(e.Title), needle) ||
			strings.Contains(strings.ToLower(e.Category), needle) {
			s.joinMuseum(&e)
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}

func (s *Memory) byCondition(_ context.Context, c domain.Condition) ([]domain.Exhibit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Exhibit
	for _, e := range s.exhibits {
		if e.Condition == c {
			s.joinMuseum(&e)
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}

func (s *Memory) valuable(_ context.Context, minValue float64) ([]domain.Exhibit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Exhibit
	for _, e := range s.exhibits {
		if e.Value >= minValue {
			s.joinMuseum(&e)
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Value > out[j].Value })
	return out, nil
}

func (s *Memory) topByMaintenance(_ context.Context, limit int) ([]domain.ExhibitMaintenanceRank, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]int64, 0, len(s.exhibits))
	for id := range s.exhibits {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]domain.ExhibitMaintenanceRank, 0, len(ids))
	for _, id := range ids {
		e := s.exhibits[id]
		rank := domain.ExhibitMaintenanceRank{Title: e.Title, Category: e.Category}
		if m, ok := s.museums[e.MuseumID]; ok {
			rank.MuseumName = m.Name
		}
		for _, rec := range s.maintenance {
			if rec.ExhibitID != id {
				continue
			}
			rank.MaintenanceCount++
			if rank.LastMaintenance == nil || rec.Date.After(*rank.LastMaintenance) {
				d := rec.Date
				rank.LastMaintenance = &d
			}
		}
		out = append(out, rank)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].MaintenanceCount != out[j].MaintenanceCount {
			return out[i].MaintenanceCount > out[j].MaintenanceCount
		}
		li, lj := out[i].LastMaintenance, out[j].LastMaintenance
		switch {
		case li == nil:
			return false
		case lj == nil:
			return true
		default:
			return li.After(*lj)
		}
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *Memory) hasMaintenanceHistory(_ context.Context, id int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, rec := range s.maintenance {
		if rec.ExhibitID == id {
			return true, nil
		}
	}
	return false, nil
}

// Delete mirrors the SQLite ON DELETE RESTRICT behavior: an exhibit with
// maintenance history cannot be removed.
func (s *Memory) deleteExhibit(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.exhibits[id]; !ok {
		return sentinel.ErrNotFound
	}
	for _, rec := range s.maintenance {
		if rec.ExhibitID == id {
			return sentinel.ErrForeignKey
		}
	}
	delete(s.exhibits, id)
	return nil
}

func (s *Memory) joinMuseum(e *domain.Exhibit) {
	if m, ok := s.museums[e.MuseumID]; ok {
		e.MuseumName = m.Name
		e.City = m.City
	}
}

// --- VisitorStore ---

func (s *Memory) createVisitor(_ context.Context, v domain.Visitor) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.visitors {
		if existing.Email == v.Email {
			return 0, sentinel.ErrDuplicate
		}
	}
	v.ID = s.allocate("guest")
	s.visitors[v.ID] = v
	return v.ID, nil
}

func (s *Memory) findByEmail(_ context.Context, email string) (domain.Visitor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, v := range s.visitors {
		if v.Email == email {
			return v, nil
		}
	}
	return domain.Visitor{}, sentinel.ErrNotFound
}

func (s *Memory) logVisit(_ context.Context, v domain.Visit) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.visitors[v.VisitorID]; !ok {
		return 0, sentinel.ErrForeignKey
	}
	if _, ok := s.museums[v.MuseumID]; !ok {
		return 0, sentinel.ErrForeignKey
	}
	v.ID = s.allocate("guest_visit")
	s.visits[v.ID] = v
	return v.ID, nil
}

func (s *Memory) activity(_ context.Context) ([]domain.VisitorActivity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]int64, 0, len(s.visitors))
	for id := range s.visitors {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var out []domain.VisitorActivity
	for _, id := range ids {
		v := s.visitors[id]
		act := domain.VisitorActivity{Name: v.Name, Email: v.Email, Membership: v.Membership}
		ratingSum, ratingCount := 0, 0
		for _, visit := range s.visits {
			if visit.VisitorID != id {
				continue
			}
			act.TotalVisits++
			act.TotalSpent += visit.TicketPrice
			if act.LastVisit == nil || visit.VisitDate.After(*act.LastVisit) {
				d := visit.VisitDate
				act.LastVisit = &d
			}
			if visit.Rating != nil {
				ratingSum += *visit.Rating
				ratingCount++
			}
		}
		if act.TotalVisits == 0 {
			continue
		}
		if ratingCount > 0 {
			avg := float64(ratingSum) / float64(ratingCount)
			act.AvgRating = &avg
		}
		out = append(out, act)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].TotalVisits > out[j].TotalVisits })
	return out, nil
}

// --- MaintenanceStore ---

func (s *Memory) createMaintenance(_ context.Context, r domain.MaintenanceRecord) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.exhibits[r.ExhibitID]; !ok {
		return 0, sentinel.ErrForeignKey
	}
	r.ID = s.allocate("item_maintenance")
	s.maintenance[r.ID] = r
	return r.ID, nil
}

func (s *Memory) byDateRange(_ context.Context, start, end time.Time) ([]domain.MaintenanceRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.MaintenanceRecord
	for _, r := range s.maintenance {
		if r.Date.Before(start) || r.Date.After(end) {
			continue
		}
		if e, ok := s.exhibits[r.ExhibitID]; ok {
			r.ExhibitTitle = e.Title
			if m, ok := s.museums[e.MuseumID]; ok {
				r.MuseumName = m.Name
			}
		}
		out = append(out, r)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (s *Memory) candidates(_ context.Context, now time.Time) ([]domain.MaintenanceCandidate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]int64, 0, len(s.exhibits))
	for id := range s.exhibits {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]domain.MaintenanceCandidate, 0, len(ids))
	for _, id := range ids {
		e := s.exhibits[id]
		cand := domain.MaintenanceCandidate{
			ExhibitID: id,
			Title:     e.Title,
			Condition: e.Condition,
			Value:     e.Value,
		}
		if m, ok := s.museums[e.MuseumID]; ok {
			cand.MuseumName = m.Name
		}
		for _, rec := range s.maintenance {
			if rec.ExhibitID != id {
				continue
			}
			if cand.LastMaintenance == nil || rec.Date.After(*cand.LastMaintenance) {
				d := rec.Date
				cand.LastMaintenance = &d
			}
		}
		if cand.LastMaintenance != nil {
			days := now.Sub(*cand.LastMaintenance).Hours() / 24
			cand.DaysSince = &days
		}
		out = append(out, cand)
	}
	// Never-maintained exhibits sort last, matching DESC NULL ordering in
	// the SQLite store.
	sort.SliceStable(out, func(i, j int) bool {
		di, dj := out[i].DaysSince, out[j].DaysSince
		switch {
		case di == nil:
			return false
		case dj == nil:
			return true
		default:
			return *di > *dj
		}
	})
	return out, nil
}

func (s *Memory) summary(_ context.Context) ([]domain.MaintenanceSummaryRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]int64, 0, len(s.exhibits))
	for id := range s.exhibits {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var out []domain.MaintenanceSummaryRow
	for _, id := range ids {
		e := s.exhibits[id]
		row := domain.MaintenanceSummaryRow{ExhibitTitle: e.Title}
		if m, ok := s.museums[e.MuseumID]; ok {
			row.MuseumName = m.Name
		}
		for _, rec := range s.maintenance {
			if rec.ExhibitID != id {
				continue
			}
			row.TotalActions++
			row.TotalCost += rec.Cost
			d := rec.Date
			if row.FirstMaintenance == nil || d.Before(*row.FirstMaintenance) {
				first := d
				row.FirstMaintenance = &first
			}
			if row.LastMaintenance == nil || d.After(*row.LastMaintenance) {
				last := d
				row.LastMaintenance = &last
			}
		}
		if row.TotalActions == 0 {
			continue
		}
		out = append(out, row)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].TotalActions > out[j].TotalActions })
	return out, nil
}

// --- UserStore ---

func (s *Memory) createUser(_ context.Context, u domain.User) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Username == u.Username {
			return 0, sentinel.ErrDuplicate
		}
	}
	u.ID = s.allocate("users")
	s.users[u.ID] = u
	return u.ID, nil
}

func (s *Memory) findByUsername(_ context.Context, username string) (domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Username == username {
			return u, nil
		}
	}
	return domain.User{}, sentinel.ErrNotFound
}

func (s *Memory) updateLastLogin(_ context.Context, id int64, t time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return sentinel.ErrNotFound
	}
	u.LastLogin = &t
	s.users[id] = u
	return nil
}

// --- AuditStore ---

func (s *Memory) appendAudit(_ context.Context, e domain.AuditEntry) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e.ID = s.allocate("audit_log")
	s.audit = append(s.audit, e)
	return e.ID, nil
}

func (s *Memory) listAudit(_ context.Context, table string, limit int) ([]domain.AuditEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.AuditEntry
	for i := len(s.audit) - 1; i >= 0; i-- {
		if table != "" && s.audit[i].TableName != table {
			continue
		}
		out = append(out, s.audit[i])
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

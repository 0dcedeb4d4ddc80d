package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"curator/internal/domain"
)

// MaintenanceStore persists maintenance records in SQLite.
type MaintenanceStore struct {
	db *DB
}

func NewMaintenanceStore(db *DB) *MaintenanceStore { return &MaintenanceStore{db: db} }

func (s *MaintenanceStore) Create(ctx context.Context, r domain.MaintenanceRecord) (int64, error) {
	res, err := s.db.execer(ctx).ExecContext(ctx, `
		INSERT INTO item_maintenance
			(item_ref, maintenance_type, maintenance_date, specialist_name, cost, notes)
		VALUES (?, ?, ?, ?, ?, ?)`,
		r.ExhibitID, r.Action, formatDate(r.Date), r.Specialist, r.Cost, r.Notes,
	)
	if err != nil {
		return 0, mapErr(err)
	}
	return insertID(res)
}

func (s *MaintenanceStore) ByDateRange(ctx context.Context, start, end time.Time) ([]domain.MaintenanceRecord, error) {
	rows, err := s.db.execer(ctx).QueryContext(ctx, `
		SELECT im.maintenance_id, im.item_ref, im.maintenance_type, im.maintenance_date,
		       im.specialist_name, im.cost, im.notes, mi.item_title, m.museum_name
		FROM item_maintenance im
		JOIN museum_item mi ON im.item_ref = mi.item_id
		JOIN museum m ON mi.museum_ref = m.id
		WHERE im.maintenance_date BETWEEN ? AND ?
		ORDER BY im.maintenance_date DESC`,
		formatDate(start), formatDate(end))
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	var out []domain.MaintenanceRecord
	for rows.Next() {
		var (
			r    domain.MaintenanceRecord
			date string
		)
		if err := rows.Scan(&r.ID, &r.ExhibitID, &r.Action, &date,
			&r.Specialist, &r.Cost, &r.Notes, &r.ExhibitTitle, &r.MuseumName); err != nil {
			return nil, fmt.Errorf("scan maintenance row: %w", err)
		}
		if r.Date, err = parseDate(date); err != nil {
			return nil, fmt.Errorf("parse maintenance date: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *MaintenanceStore) Candidates(ctx context.Context, now time.Time) ([]domain.MaintenanceCandidate, error) {
	rows, err := s.db.execer(ctx).QueryContext(ctx, `
		SELECT
			mi.item_id,
			mi.item_title,
			m.museum_name,
			MAX(im.maintenance_date) AS last_maintenance,
			julianday(?) - julianday(MAX(im.maintenance_date)) AS days_since,
			mi.condition,
			mi.value
		FROM museum_item mi
		LEFT JOIN item_maintenance im ON mi.item_id = im.item_ref
		JOIN museum m ON mi.museum_ref = m.id
		GROUP BY mi.item_id
		ORDER BY days_since DESC`,
		formatDate(now))
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	var out []domain.MaintenanceCandidate
	for rows.Next() {
		var (
			c         domain.MaintenanceCandidate
			last      sql.NullString
			daysSince sql.NullFloat64
			cond      string
		)
		if err := rows.Scan(&c.ExhibitID, &c.Title, &c.MuseumName, &last, &daysSince, &cond, &c.Value); err != nil {
			return nil, fmt.Errorf("scan maintenance candidate row: %w", err)
		}
		if c.LastMaintenance, err = scanNullDate(last); err != nil {
			return nil, fmt.Errorf("parse last maintenance date: %w", err)
		}
		if daysSince.Valid {
			c.DaysSince = &daysSince.Float64
		}
		c.Condition = domain.Condition(cond)
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *MaintenanceStore) Summary(ctx context.Context) ([]domain.MaintenanceSummaryRow, error) {
	rows, err := s.db.execer(ctx).QueryContext(ctx, `
		SELECT
			mi.item_title,
			m.museum_name,
			COUNT(im.maintenance_id) AS total_actions,
			SUM(im.cost) AS total_cost,
			MIN(im.maintenance_date) AS first_maintenance,
			MAX(im.maintenance_date) AS last_maintenance
		FROM museum_item mi
		JOIN item_maintenance im ON mi.item_id = im.item_ref
		JOIN museum m ON mi.museum_ref = m.id
		GROUP BY mi.item_id
		ORDER BY total_actions DESC`)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	var out []domain.MaintenanceSummaryRow
	for rows.Next() {
		var (
			row         domain.MaintenanceSummaryRow
			totalCost   sql.NullFloat64
			first, last sql.NullString
		)
		if err := rows.Scan(&row.ExhibitTitle, &row.MuseumName, &row.TotalActions, &totalCost, &first, &last); err != nil {
			return nil, fmt.Errorf("scan maintenance summary row: %w", err)
		}
		if totalCost.Valid {
			row.TotalCost = totalCost.Float64
		}
		if row.FirstMaintenance, err = scanNullDate(first); err != nil {
			return nil, fmt.Errorf("parse first maintenance date: %w", err)
		}
		if row.LastMaintenance, err = scanNullDate(last); err != nil {
			return nil, fmt.Errorf("parse last maintenance date: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

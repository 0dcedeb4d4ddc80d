package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"curator/internal/domain"
	"curator/pkg/platform/sentinel"
)

// MuseumStore persists museums in SQLite.
type MuseumStore struct {
	db *DB
}

func NewMuseumStore(db *DB) *MuseumStore { return &MuseumStore{db: db} }

func (s *MuseumStore) Create(ctx context.Context, m domain.Museum) (int64, error) {
	res, err := s.db.execer(ctx).ExecContext(ctx, `
		INSERT INTO museum (museum_name, city, address, phone, opening_hours)
		VALUES (?, ?, ?, ?, ?)`,
		m.Name, m.City, m.Address, m.Phone, m.OpeningHours,
	)
	if err != nil {
		return 0, mapErr(err)
	}
	return insertID(res)
}

func (s *MuseumStore) ExistsNameCity(ctx context.Context, name, city string) (bool, error) {
	var n int
	err := s.db.execer(ctx).QueryRowContext(ctx,
		`SELECT COUNT(1) FROM museum WHERE museum_name = ? AND city = ?`,
		name, city,
	).Scan(&n)
	if err != nil {
		return false, mapErr(err)
	}
	return n > 0, nil
}

func (s *MuseumStore) List(ctx context.Context) ([]domain.Museum, error) {
	rows, err := s.db.execer(ctx).QueryContext(ctx, `
		SELECT m.id, m.museum_name, m.city, m.address, m.phone, m.opening_hours,
		       COUNT(mi.item_id) AS exhibit_count
		FROM museum m
		LEFT JOIN museum_item mi ON m.id = mi.museum_ref
		GROUP BY m.id
		ORDER BY m.museum_name`)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	var out []domain.Museum
	for rows.Next() {
		var m domain.Museum
		if err := rows.Scan(&m.ID, &m.Name, &m.City, &m.Address, &m.Phone, &m.OpeningHours, &m.ExhibitCount); err != nil {
			return nil, fmt.Errorf("scan museum row: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (s *MuseumStore) Stats(ctx context.Context, museumID int64) (domain.MuseumStats, error) {
	var (
		stats     domain.MuseumStats
		avgRating sql.NullFloat64
		revenue   sql.NullFloat64
	)
	// Scalar subqueries instead of a double LEFT JOIN: joining exhibits and
	// visits in one pass multiplies visit rows per exhibit and inflates the
	// revenue sum.
	err := s.db.execer(ctx).QueryRowContext(ctx, `
		SELECT
			m.museum_name,
			(SELECT COUNT(*) FROM museum_item WHERE museum_ref = m.id) AS total_exhibits,
			(SELECT COUNT(*) FROM guest_visit WHERE museum_ref = m.id) AS total_visits,
			(SELECT AVG(rating) FROM guest_visit WHERE museum_ref = m.id) AS avg_rating,
			(SELECT SUM(ticket_price) FROM guest_visit WHERE museum_ref = m.id) AS total_revenue
		FROM museum m
		WHERE m.id = ?`,
		museumID,
	).Scan(&stats.MuseumName, &stats.TotalExhibits, &stats.TotalVisits, &avgRating, &revenue)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.MuseumStats{}, sentinel.ErrNotFound
	}
	if err != nil {
		return domain.MuseumStats{}, mapErr(err)
	}
	if avgRating.Valid {
		stats.AvgRating = &avgRating.Float64
	}
	if revenue.Valid {
		stats.TotalRevenue = revenue.Float64
	}
	return stats, nil
}

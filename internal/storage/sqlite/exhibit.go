package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"curator/internal/domain"
	"curator/pkg/platform/sentinel"
)

// ExhibitStore persists exhibits in SQLite.
type ExhibitStore struct {
	db *DB
}

func NewExhibitStore(db *DB) *ExhibitStore { return &ExhibitStore{db: db} }

func (s *ExhibitStore) Create(ctx context.Context, e domain.Exhibit) (int64, error) {
	res, err := s.db.execer(ctx).ExecContext(ctx, `
		INSERT INTO museum_item
			(museum_ref, item_title, item_type, date_acquired, description, condition, value)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.MuseumID, e.Title, e.Category, formatDate(e.DateAcquired), e.Description, string(e.Condition), e.Value,
	)
	if err != nil {
		return 0, mapErr(err)
	}
	return insertID(res)
}

func (s *ExhibitStore) Get(ctx context.Context, id int64) (domain.Exhibit, error) {
	row := s.db.execer(ctx).QueryRowContext(ctx, `
		SELECT mi.item_id, mi.museum_ref, mi.item_title, mi.item_type, mi.date_acquired,
		       mi.description, mi.condition, mi.value, m.museum_name, m.city
		FROM museum_item mi
		JOIN museum m ON mi.museum_ref = m.id
		WHERE mi.item_id = ?`, id)
	e, err := scanExhibit(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Exhibit{}, sentinel.ErrNotFound
	}
	if err != nil {
		return domain.Exhibit{}, mapErr(err)
	}
	return e, nil
}

func (s *ExhibitStore) UpdateCondition(ctx context.Context, id int64, c domain.Condition) error {
	res, err := s.db.execer(ctx).ExecContext(ctx,
		`UPDATE museum_item SET condition = ? WHERE item_id = ?`,
		string(c), id,
	)
	if err != nil {
		return mapErr(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *ExhibitStore) Search(ctx context.Context, term string) ([]domain.Exhibit, error) {
	pattern := "%" + term + "%"
	return s.queryExhibits(ctx, `
		SELECT mi.item_id, mi.museum_ref, mi.item_title, mi.item_type, mi.date_acquired,
		       mi.description, mi.condition, mi.value, m.museum_name, m.city
		FROM museum_item mi
		JOIN museum m ON mi.museum_ref = m.id
		WHERE mi.item_title LIKE ? OR mi.item_type LIKE ?
		ORDER BY mi.item_title`,
		pattern, pattern)
}

func (s *ExhibitStore) ByCondition(ctx context.Context, c domain.Condition) ([]domain.Exhibit, error) {
	return s.queryExhibits(ctx, `
		SELECT mi.item_id, mi.museum_ref, mi.item_title, mi.item_type, mi.date_acquired,
		       mi.description, mi.condition, mi.value, m.museum_name, m.city
		FROM museum_item mi
		JOIN museum m ON mi.museum_ref = m.id
		WHERE mi.condition = ?
		ORDER BY mi.item_title`,
		string(c))
}

func (s *ExhibitStore) Valuable(ctx context.Context, minValue float64) ([]domain.Exhibit, error) {
	return s.queryExhibits(ctx, `
		SELECT mi.item_id, mi.museum_ref, mi.item_title, mi.item_type, mi.date_acquired,
		       mi.description, mi.condition, mi.value, m.museum_name, m.city
		FROM museum_item mi
		JOIN museum m ON mi.museum_ref = m.id
		WHERE mi.value >= ?
		ORDER BY mi.value DESC`,
		minValue)
}

func (s *ExhibitStore) TopByMaintenance(ctx context.Context, limit int) ([]domain.ExhibitMaintenanceRank, error) {
	rows, err := s.db.execer(ctx).QueryContext(ctx, `
		SELECT
			mi.item_title,
			mi.item_type,
			m.museum_name,
			COUNT(im.maintenance_id) AS maintenance_count,
			MAX(im.maintenance_date) AS last_maintenance
		FROM museum_item mi
		LEFT JOIN item_maintenance im ON mi.item_id = im.item_ref
		JOIN museum m ON mi.museum_ref = m.id
		GROUP BY mi.item_id
		ORDER BY maintenance_count DESC, last_maintenance DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	var out []domain.ExhibitMaintenanceRank
	for rows.Next() {
		var (
			r    domain.ExhibitMaintenanceRank
			last sql.NullString
		)
		if err := rows.Scan(&r.Title, &r.Category, &r.MuseumName, &r.MaintenanceCount, &last); err != nil {
			return nil, fmt.Errorf("scan exhibit rank row: %w", err)
		}
		if r.LastMaintenance, err = scanNullDate(last); err != nil {
			return nil, fmt.Errorf("parse last maintenance date: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *ExhibitStore) HasMaintenanceHistory(ctx context.Context, id int64) (bool, error) {
	var n int
	err := s.db.execer(ctx).QueryRowContext(ctx,
		`SELECT COUNT(1) FROM item_maintenance WHERE item_ref = ?`, id,
	).Scan(&n)
	if err != nil {
		return false, mapErr(err)
	}
	return n > 0, nil
}

func (s *ExhibitStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.execer(ctx).ExecContext(ctx,
		`DELETE FROM museum_item WHERE item_id = ?`, id)
	if err != nil {
		return mapErr(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *ExhibitStore) queryExhibits(ctx context.Context, query string, args ...any) ([]domain.Exhibit, error) {
	rows, err := s.db.execer(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	var out []domain.Exhibit
	for rows.Next() {
		e, err := scanExhibit(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func scanExhibit(scan func(dest ...any) error) (domain.Exhibit, error) {
	var (
		e        domain.Exhibit
		acquired string
		cond     string
	)
	if err := scan(&e.ID, &e.MuseumID, &e.Title, &e.Category, &acquired,
		&e.Description, &cond, &e.Value, &e.MuseumName, &e.City); err != nil {
		return domain.Exhibit{}, err
	}
	t, err := parseDate(acquired)
	if err != nil {
		return domain.Exhibit{}, fmt.Errorf("parse acquisition date: %w", err)
	}
	e.DateAcquired = t
	e.Condition = domain.Condition(cond)
	return e, nil
}

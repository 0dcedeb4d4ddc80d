package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"curator/internal/domain"
	"curator/pkg/platform/sentinel"
)

// VisitorStore persists visitors and their visits in SQLite.
type VisitorStore struct {
	db *DB
}

func NewVisitorStore(db *DB) *VisitorStore { return &VisitorStore{db: db} }

func (s *VisitorStore) Create(ctx context.Context, v domain.Visitor) (int64, error) {
	res, err := s.db.execer(ctx).ExecContext(ctx, `
		INSERT INTO guest (guest_name, contact_email, phone, membership_type)
		VALUES (?, ?, ?, ?)`,
		v.Name, v.Email, v.Phone, string(v.Membership),
	)
	if err != nil {
		return 0, mapErr(err)
	}
	return insertID(res)
}

func (s *VisitorStore) FindByEmail(ctx context.Context, email string) (domain.Visitor, error) {
	var (
		v          domain.Visitor
		membership string
	)
	err := s.db.execer(ctx).QueryRowContext(ctx, `
		SELECT guest_id, guest_name, contact_email, phone, membership_type
		FROM guest
		WHERE contact_email = ?`, email,
	).Scan(&v.ID, &v.Name, &v.Email, &v.Phone, &membership)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Visitor{}, sentinel.ErrNotFound
	}
	if err != nil {
		return domain.Visitor{}, mapErr(err)
	}
	v.Membership = domain.Membership(membership)
	return v, nil
}

func (s *VisitorStore) LogVisit(ctx context.Context, v domain.Visit) (int64, error) {
	var rating any
	if v.Rating != nil {
		rating = *v.Rating
	}
	res, err := s.db.execer(ctx).ExecContext(ctx, `
		INSERT INTO guest_visit (guest_ref, museum_ref, visit_date, ticket_price, rating)
		VALUES (?, ?, ?, ?, ?)`,
		v.VisitorID, v.MuseumID, formatDate(v.VisitDate), v.TicketPrice, rating,
	)
	if err != nil {
		return 0, mapErr(err)
	}
	return insertID(res)
}

func (s *VisitorStore) Activity(ctx context.Context) ([]domain.VisitorActivity, error) {
	rows, err := s.db.execer(ctx).QueryContext(ctx, `
		SELECT
			g.guest_name,
			g.contact_email,
			g.membership_type,
			COUNT(gv.visit_id) AS total_visits,
			MAX(gv.visit_date) AS last_visit,
			AVG(gv.rating) AS avg_rating,
			SUM(gv.ticket_price) AS total_spent
		FROM guest g
		LEFT JOIN guest_visit gv ON g.guest_id = gv.guest_ref
		GROUP BY g.guest_id
		HAVING total_visits > 0
		ORDER BY total_visits DESC`)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	var out []domain.VisitorActivity
	for rows.Next() {
		var (
			act        domain.VisitorActivity
			membership string
			lastVisit  sql.NullString
			avgRating  sql.NullFloat64
			totalSpent sql.NullFloat64
		)
		if err := rows.Scan(&act.Name, &act.Email, &membership, &act.TotalVisits,
			&lastVisit, &avgRating, &totalSpent); err != nil {
			return nil, fmt.Errorf("scan visitor activity row: %w", err)
		}
		act.Membership = domain.Membership(membership)
		if act.LastVisit, err = scanNullDate(lastVisit); err != nil {
			return nil, fmt.Errorf("parse last visit date: %w", err)
		}
		if avgRating.Valid {
			act.AvgRating = &avgRating.Float64
		}
		if totalSpent.Valid {
			act.TotalSpent = totalSpent.Float64
		}
		out = append(out, act)
	}
	return out, rows.Err()
}

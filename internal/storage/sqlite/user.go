package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"curator/internal/domain"
	"curator/pkg/platform/sentinel"
)

// timestampFormat is used for write-time instants (last login, audit).
const timestampFormat = time.RFC3339

// UserStore persists operator accounts in SQLite.
type UserStore struct {
	db *DB
}

func NewUserStore(db *DB) *UserStore { return &UserStore{db: db} }

func (s *UserStore) Create(ctx context.Context, u domain.User) (int64, error) {
	res, err := s.db.execer(ctx).ExecContext(ctx, `
		INSERT INTO users (username, password_hash, role, is_active)
		VALUES (?, ?, ?, ?)`,
		u.Username, u.PasswordHash, string(u.Role), boolToInt(u.Active),
	)
	if err != nil {
		return 0, mapErr(err)
	}
	return insertID(res)
}

func (s *UserStore) FindByUsername(ctx context.Context, username string) (domain.User, error) {
	var (
		u         domain.User
		role      string
		active    int
		lastLogin sql.NullString
	)
	err := s.db.execer(ctx).QueryRowContext(ctx, `
		SELECT user_id, username, password_hash, role, is_active, last_login
		FROM users
		WHERE username = ?`, username,
	).Scan(&u.ID, &u.Username, &u.PasswordHash, &role, &active, &lastLogin)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, sentinel.ErrNotFound
	}
	if err != nil {
		return domain.User{}, mapErr(err)
	}
	u.Role = domain.Role(role)
	u.Active = active != 0
	if lastLogin.Valid && lastLogin.String != "" {
		t, err := time.Parse(timestampFormat, lastLogin.String)
		if err != nil {
			return domain.User{}, mapErr(err)
		}
		u.LastLogin = &t
	}
	return u, nil
}

func (s *UserStore) UpdateLastLogin(ctx context.Context, id int64, t time.Time) error {
	res, err := s.db.execer(ctx).ExecContext(ctx,
		`UPDATE users SET last_login = ? WHERE user_id = ?`,
		t.Format(timestampFormat), id,
	)
	if err != nil {
		return mapErr(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return mapErr(err)
	}
	if n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

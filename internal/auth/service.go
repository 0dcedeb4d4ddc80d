// Package auth implements credential validation and role-hierarchy
// authorization decisions. Password hash storage mechanics live in the user
// store; only the authentication decision logic is here.
package auth

import (
	"context"
	"errors"
	"fmt"

	"curator/internal/audit"
	"curator/internal/domain"
	"curator/internal/storage"
	dErrors "curator/pkg/domain-errors"
	"curator/pkg/platform/sentinel"
	"curator/pkg/requestcontext"
)

const (
	minPasswordLen = 8
	minUsernameLen = 3
	usersTable     = "users"
)

// Service answers login and user-management requests.
type Service struct {
	users storage.UserStore
	audit *audit.Recorder
	tx    storage.TxRunner
}

func NewService(users storage.UserStore, recorder *audit.Recorder, tx storage.TxRunner) *Service {
	return &Service{users: users, audit: recorder, tx: tx}
}

// Login validates credentials and returns the user identity. The failure
// message never distinguishes a missing user from a wrong password. On
// success the last-login timestamp is updated.
func (s *Service) Login(ctx context.Context, username, password string) (domain.Identity, error) {
	if username == "" || password == "" {
		return domain.Identity{}, dErrors.New(dErrors.CodeValidation, "username and password are required")
	}

	user, err := s.users.FindByUsername(ctx, username)
	if errors.Is(err, sentinel.ErrNotFound) {
		return domain.Identity{}, invalidCredentials()
	}
	if err != nil {
		return domain.Identity{}, dErrors.Wrap(err, dErrors.CodeStore, "look up user")
	}
	if !user.Active || !VerifyPassword(user.PasswordHash, password) {
		return domain.Identity{}, invalidCredentials()
	}

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		return s.users.UpdateLastLogin(txCtx, user.ID, requestcontext.Now(txCtx))
	})
	if err != nil {
		return domain.Identity{}, dErrors.Wrap(err, dErrors.CodeStore, "update last login")
	}

	return domain.Identity{UserID: user.ID, Username: user.Username, Role: user.Role}, nil
}

// CreateUser provisions an operator account. Only administrators may create
// users.
func (s *Service) CreateUser(ctx context.Context, username, password string, role, requesterRole domain.Role) (int64, error) {
	if !s.CheckAccess(requesterRole, domain.RoleAdmin) {
		return 0, dErrors.New(dErrors.CodePermissionDenied, "only administrators can create users")
	}
	if len(password) < minPasswordLen {
		return 0, dErrors.Newf(dErrors.CodeValidation, "password must be at least %d characters", minPasswordLen)
	}
	if len(username) < minUsernameLen {
		return 0, dErrors.Newf(dErrors.CodeValidation, "username must be at least %d characters", minUsernameLen)
	}
	if !role.Valid() {
		return 0, dErrors.New(dErrors.CodeValidation, "invalid role. Must be admin, curator, or viewer")
	}

	hash, err := HashPassword(password)
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "hash password")
	}

	var userID int64
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		id, err := s.users.Create(txCtx, domain.User{
			Username:     username,
			PasswordHash: hash,
			Role:         role,
			Active:       true,
		})
		if errors.Is(err, sentinel.ErrDuplicate) {
			return dErrors.Newf(dErrors.CodeDuplicate, "username %q is already taken", username)
		}
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeStore, "create user")
		}
		userID = id
		return s.audit.Record(txCtx, usersTable, domain.AuditInsert, id, fmt.Sprintf("Created user: %s", username))
	})
	if err != nil {
		return 0, err
	}
	return userID, nil
}

// CheckAccess reports whether userRole satisfies requiredRole. Pure rank
// comparison; no side effects, never fails, idempotent.
func (s *Service) CheckAccess(userRole, requiredRole domain.Role) bool {
	return userRole.Allows(requiredRole)
}

func invalidCredentials() error {
	return dErrors.New(dErrors.CodeValidation, "invalid username or password")
}

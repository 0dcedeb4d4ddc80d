package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"curator/internal/audit"
	"curator/internal/domain"
	"curator/internal/storage"
	dErrors "curator/pkg/domain-errors"
	"curator/pkg/requestcontext"
)

type AuthServiceSuite struct {
	suite.Suite
	mem *storage.Memory
	svc *Service
	ctx context.Context
}

func (s *AuthServiceSuite) SetupTest() {
	s.mem = storage.NewMemory()
	recorder := audit.NewRecorder(s.mem.Audit(), nil)
	s.svc = NewService(s.mem.Users(), recorder, s.mem)
	s.ctx = requestcontext.WithTime(context.Background(), time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))
}

func TestAuthServiceSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceSuite))
}

func (s *AuthServiceSuite) seedUser(username, password string, role domain.Role, active bool) int64 {
	hash, err := HashPassword(password)
	s.Require().NoError(err)
	id, err := s.mem.Users().Create(s.ctx, domain.User{
		Username:     username,
		PasswordHash: hash,
		Role:         role,
		Active:       active,
	})
	s.Require().NoError(err)
	return id
}

func (s *AuthServiceSuite) TestLogin() {
	id := s.seedUser("admin", "admin123", domain.RoleAdmin, true)

	s.Run("valid credentials return the identity", func() {
		identity, err := s.svc.Login(s.ctx, "admin", "admin123")
		s.Require().NoError(err)
		s.Equal(id, identity.UserID)
		s.Equal("admin", identity.Username)
		s.Equal(domain.RoleAdmin, identity.Role)
	})

	s.Run("login updates last login from the request clock", func() {
		_, err := s.svc.Login(s.ctx, "admin", "admin123")
		s.Require().NoError(err)

		user, err := s.mem.Users().FindByUsername(s.ctx, "admin")
		s.Require().NoError(err)
		s.Require().NotNil(user.LastLogin)
		s.Equal(requestcontext.Now(s.ctx), *user.LastLogin)
	})

	s.Run("wrong password is rejected without detail", func() {
		_, err := s.svc.Login(s.ctx, "admin", "wrongpassword")
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
		s.EqualError(err, "invalid username or password")
	})

	s.Run("unknown user gets the same message as a wrong password", func() {
		_, err := s.svc.Login(s.ctx, "ghost", "whatever1")
		s.Require().Error(err)
		s.EqualError(err, "invalid username or password")
	})

	s.Run("empty credentials are a validation error", func() {
		_, err := s.svc.Login(s.ctx, "", "")
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})
}

func (s *AuthServiceSuite) TestLoginInactiveUser() {
	s.seedUser("retired", "secret123", domain.RoleCurator, false)

	_, err := s.svc.Login(s.ctx, "retired", "secret123")
	s.Require().Error(err)
	s.EqualError(err, "invalid username or password")
}

func (s *AuthServiceSuite) TestCreateUser() {
	s.Run("admin can create a curator", func() {
		id, err := s.svc.CreateUser(s.ctx, "curator_jane", "secure123", domain.RoleCurator, domain.RoleAdmin)
		s.Require().NoError(err)
		s.Positive(id)

		identity, err := s.svc.Login(s.ctx, "curator_jane", "secure123")
		s.Require().NoError(err)
		s.Equal(domain.RoleCurator, identity.Role)
	})

	s.Run("non-admin requester is denied", func() {
		_, err := s.svc.CreateUser(s.ctx, "sneaky", "secure123", domain.RoleViewer, domain.RoleCurator)
		s.True(dErrors.HasCode(err, dErrors.CodePermissionDenied))
		s.EqualError(err, "only administrators can create users")
	})

	s.Run("short password is rejected before hashing", func() {
		_, err := s.svc.CreateUser(s.ctx, "shortpw", "short", domain.RoleViewer, domain.RoleAdmin)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("short username is rejected", func() {
		_, err := s.svc.CreateUser(s.ctx, "ab", "secure123", domain.RoleViewer, domain.RoleAdmin)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("unknown role is rejected", func() {
		_, err := s.svc.CreateUser(s.ctx, "weirdrole", "secure123", domain.Role("owner"), domain.RoleAdmin)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("duplicate username is reported as such", func() {
		_, err := s.svc.CreateUser(s.ctx, "taken", "secure123", domain.RoleViewer, domain.RoleAdmin)
		s.Require().NoError(err)
		_, err = s.svc.CreateUser(s.ctx, "taken", "secure456", domain.RoleViewer, domain.RoleAdmin)
		s.True(dErrors.HasCode(err, dErrors.CodeDuplicate))
	})
}

func (s *AuthServiceSuite) TestCreateUserAudited() {
	ctx := requestcontext.WithActorID(s.ctx, 1)
	_, err := s.svc.CreateUser(ctx, "audited_user", "secure123", domain.RoleViewer, domain.RoleAdmin)
	s.Require().NoError(err)

	entries, err := s.mem.Audit().List(ctx, "users", 10)
	s.Require().NoError(err)
	s.Require().Len(entries, 1)
	s.Equal(domain.AuditInsert, entries[0].Action)
	s.Equal("Created user: audited_user", entries[0].Details)
}

func (s *AuthServiceSuite) TestCheckAccess() {
	cases := []struct {
		user, required domain.Role
		want           bool
	}{
		{domain.RoleAdmin, domain.RoleAdmin, true},
		{domain.RoleAdmin, domain.RoleViewer, true},
		{domain.RoleCurator, domain.RoleAdmin, false},
		{domain.RoleCurator, domain.RoleCurator, true},
		{domain.RoleViewer, domain.RoleCurator, false},
		{domain.RoleViewer, domain.RoleViewer, true},
		{domain.Role("unknown"), domain.RoleViewer, false},
	}
	for _, c := range cases {
		s.Equal(c.want, s.svc.CheckAccess(c.user, c.required), "%s vs %s", c.user, c.required)
	}
}

func (s *AuthServiceSuite) TestPasswordHashing() {
	hash, err := HashPassword("admin123")
	s.Require().NoError(err)
	s.NotEqual("admin123", hash)
	s.True(VerifyPassword(hash, "admin123"))
	s.False(VerifyPassword(hash, "admin124"))
}

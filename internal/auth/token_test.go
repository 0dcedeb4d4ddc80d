package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"curator/internal/domain"
	dErrors "curator/pkg/domain-errors"
)

func TestTokenRoundTrip(t *testing.T) {
	mgr := NewTokenManager("test-secret", time.Hour)
	identity := domain.Identity{UserID: 7, Username: "curator_jane", Role: domain.RoleCurator}

	token, err := mgr.Issue(identity, time.Now())
	require.NoError(t, err)
	require.NotEmpty(t, token)

	got, err := mgr.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, identity, got)
}

func TestTokenWrongSecret(t *testing.T) {
	issuer := NewTokenManager("secret-one", time.Hour)
	verifier := NewTokenManager("secret-two", time.Hour)

	token, err := issuer.Issue(domain.Identity{UserID: 1, Username: "admin", Role: domain.RoleAdmin}, time.Now())
	require.NoError(t, err)

	_, err = verifier.Parse(token)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodePermissionDenied))
}

func TestTokenExpired(t *testing.T) {
	mgr := NewTokenManager("test-secret", time.Hour)

	issued := time.Now().Add(-2 * time.Hour)
	token, err := mgr.Issue(domain.Identity{UserID: 1, Username: "admin", Role: domain.RoleAdmin}, issued)
	require.NoError(t, err)

	_, err = mgr.Parse(token)
	require.Error(t, err)
}

func TestTokenGarbage(t *testing.T) {
	mgr := NewTokenManager("test-secret", time.Hour)
	_, err := mgr.Parse("not.a.token")
	require.Error(t, err)
}

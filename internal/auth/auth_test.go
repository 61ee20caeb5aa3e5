package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adventure-league/tracker/internal/domain"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("admin123")
	require.NoError(t, err)
	require.NotEmpty(t, hash)

	assert.NotEqual(t, "admin123", hash)
	assert.True(t, CheckPassword(hash, "admin123"))
	assert.False(t, CheckPassword(hash, "admin124"))
	assert.False(t, CheckPassword("not-a-hash", "admin123"))
}

func TestTokensRoundTrip(t *testing.T) {
	tokens, err := NewTokens("test-secret")
	require.NoError(t, err)

	signed, err := tokens.Generate("user-admin-1", "admin@al.local")
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	userID, err := tokens.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, "user-admin-1", userID)
}

func TestTokensRejectsWrongSecret(t *testing.T) {
	issuer, err := NewTokens("secret-a")
	require.NoError(t, err)
	verifier, err := NewTokens("secret-b")
	require.NoError(t, err)

	signed, err := issuer.Generate("user-1", "one@al.local")
	require.NoError(t, err)

	_, err = verifier.Verify(signed)
	assert.Error(t, err)
}

func TestTokensRejectsGarbage(t *testing.T) {
	tokens, err := NewTokens("test-secret")
	require.NoError(t, err)

	_, err = tokens.Verify("not.a.token")
	assert.Error(t, err)
}

func TestNewTokensRequiresSecret(t *testing.T) {
	_, err := NewTokens("")
	assert.Error(t, err)
}

func TestRequireRole(t *testing.T) {
	player := domain.User{ID: "u1", Role: domain.RolePlayer}
	gm := domain.User{ID: "u2", Role: domain.RoleGameMaster}
	admin := domain.User{ID: "u3", Role: domain.RoleAdministrator}

	tests := []struct {
		name     string
		actor    domain.User
		required domain.Role
		wantErr  error
	}{
		{name: "no actor", actor: domain.User{}, required: domain.RolePlayer, wantErr: domain.ErrUnauthorized},
		{name: "player short of game master", actor: player, required: domain.RoleGameMaster, wantErr: domain.ErrForbidden},
		{name: "game master passes game master", actor: gm, required: domain.RoleGameMaster},
		{name: "game master short of administrator", actor: gm, required: domain.RoleAdministrator, wantErr: domain.ErrForbidden},
		{name: "administrator passes everything", actor: admin, required: domain.RoleAdministrator},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := RequireRole(tt.actor, tt.required)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

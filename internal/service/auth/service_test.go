package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hospitalvida/atendimento-api/internal/model"
	"github.com/hospitalvida/atendimento-api/internal/repository/memory"
	"github.com/hospitalvida/atendimento-api/pkg/auth"
	"github.com/hospitalvida/atendimento-api/pkg/security"
)

func newTestService(t *testing.T) (*Service, *model.User) {
	t.Helper()

	store := memory.NewStore()
	hasher := security.NewBcryptHasher(4)
	jwtSvc := auth.NewJWTService("test-secret", "test-refresh-secret", time.Hour, 24*time.Hour)

	hash, err := hasher.Hash("senha-segura")
	require.NoError(t, err)

	user := &model.User{
		Email:        "medica@hospitalvida.com.br",
		Name:         "Dra. Lima",
		Role:         model.RoleDoctor,
		PasswordHash: hash,
	}
	require.NoError(t, store.Users.Create(context.Background(), user))

	return NewService(store.Users, jwtSvc, hasher), user
}

func TestLoginSuccess(t *testing.T) {
	svc, user := newTestService(t)

	tokens, err := svc.Login(context.Background(), user.Email, "senha-segura")
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
	assert.Equal(t, int64(3600), tokens.ExpiresIn)

	claims, err := svc.ValidateToken(tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.Email, claims.Email)
	assert.Equal(t, model.RoleDoctor, claims.Role)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, user := newTestService(t)

	_, err := svc.Login(context.Background(), user.Email, "senha-errada")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unauthorized")
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Login(context.Background(), "ninguem@hospitalvida.com.br", "senha-segura")
	require.Error(t, err)
}

func TestRefreshIssuesNewTokens(t *testing.T) {
	svc, user := newTestService(t)

	tokens, err := svc.Login(context.Background(), user.Email, "senha-segura")
	require.NoError(t, err)

	refreshed, err := svc.Refresh(context.Background(), tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	claims, err := svc.ValidateToken(refreshed.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	svc, user := newTestService(t)

	tokens, err := svc.Login(context.Background(), user.Email, "senha-segura")
	require.NoError(t, err)

	// Access and refresh tokens are signed with different secrets.
	_, err = svc.Refresh(context.Background(), tokens.AccessToken)
	require.Error(t, err)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.ValidateToken("not-a-token")
	require.Error(t, err)
}

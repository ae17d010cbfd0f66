package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hospitalvida/atendimento-api/internal/model"
	"github.com/hospitalvida/atendimento-api/internal/repository/memory"
	"github.com/hospitalvida/atendimento-api/pkg/security"
)

type recordingEmail struct {
	to       string
	password string
	fail     error
}

func (r *recordingEmail) SendCredentials(_ context.Context, to, _, password string) error {
	r.to = to
	r.password = password
	return r.fail
}

func (r *recordingEmail) SendCustom(_ context.Context, _, _, _ string) error {
	return nil
}

func TestCreateUserWithExplicitPassword(t *testing.T) {
	mail := &recordingEmail{}
	svc := NewService(memory.NewStore().Users, security.NewBcryptHasher(4), mail)

	user, err := svc.CreateUser(context.Background(), &model.CreateUserRequest{
		Email:    "tecnico@hospitalvida.com.br",
		Name:     "João Pereira",
		Role:     model.RoleNursingTech,
		Password: "senha-propria",
	})
	require.NoError(t, err)
	assert.Equal(t, model.RoleNursingTech, user.Role)
	assert.NotEmpty(t, user.PasswordHash)
	assert.NotEqual(t, "senha-propria", user.PasswordHash)

	// No generated password means no credentials mail.
	assert.Empty(t, mail.to)
}

func TestCreateUserGeneratesAndMailsPassword(t *testing.T) {
	mail := &recordingEmail{}
	svc := NewService(memory.NewStore().Users, security.NewBcryptHasher(4), mail)

	user, err := svc.CreateUser(context.Background(), &model.CreateUserRequest{
		Email: "enfermeira@hospitalvida.com.br",
		Name:  "Ana Silva",
		Role:  model.RoleNurse,
	})
	require.NoError(t, err)
	assert.Equal(t, "enfermeira@hospitalvida.com.br", mail.to)
	assert.NotEmpty(t, mail.password)
	assert.NotEmpty(t, user.PasswordHash)
}

func TestCreateUserSurvivesMailFailure(t *testing.T) {
	mail := &recordingEmail{fail: assert.AnError}
	store := memory.NewStore()
	svc := NewService(store.Users, security.NewBcryptHasher(4), mail)

	user, err := svc.CreateUser(context.Background(), &model.CreateUserRequest{
		Email: "medico@hospitalvida.com.br",
		Name:  "Dr. Souza",
		Role:  model.RoleDoctor,
	})
	require.NoError(t, err)

	stored, err := store.Users.Get(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dr. Souza", stored.Name)
}

func TestUpdateRoleAndDelete(t *testing.T) {
	store := memory.NewStore()
	svc := NewService(store.Users, security.NewBcryptHasher(4), nil)

	user, err := svc.CreateUser(context.Background(), &model.CreateUserRequest{
		Email:    "admin@hospitalvida.com.br",
		Name:     "Administração",
		Role:     model.RoleNurse,
		Password: "senha-inicial",
	})
	require.NoError(t, err)

	require.NoError(t, svc.UpdateRole(context.Background(), user.ID, model.RoleAdmin))
	got, err := svc.GetUser(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, got.Role)

	require.NoError(t, svc.DeleteUser(context.Background(), user.ID))
	_, err = svc.GetUser(context.Background(), user.ID)
	assert.Error(t, err)
}

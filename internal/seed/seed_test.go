package seed

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	appModels "github.com/villageedu/api/internal/app/models"
	"github.com/villageedu/api/internal/pkg/apperrors"
	"github.com/villageedu/api/internal/pkg/auth"
)

type memAdmins struct {
	byEmail map[string]*appModels.Admin
	lookErr error
}

func (m *memAdmins) Create(_ context.Context, a *appModels.Admin) error {
	if _, ok := m.byEmail[a.Email]; ok {
		return apperrors.ErrEmailAlreadyExists
	}
	a.ID = "a1"
	m.byEmail[a.Email] = a
	return nil
}

func (m *memAdmins) GetByEmail(_ context.Context, email string) (*appModels.Admin, error) {
	if m.lookErr != nil {
		return nil, m.lookErr
	}
	if a, ok := m.byEmail[email]; ok {
		return a, nil
	}
	return nil, apperrors.ErrAdminNotFound
}

func TestCreateDefaultAdmin(t *testing.T) {
	store := &memAdmins{byEmail: map[string]*appModels.Admin{}}
	def := DefaultAdmin{Email: " Root@VillageEdu.in ", Password: "changeme", FullName: "Super Admin"}

	require.NoError(t, CreateDefaultAdmin(context.Background(), store, def, zerolog.Nop()))

	admin := store.byEmail["root@villageedu.in"]
	require.NotNil(t, admin)
	assert.Equal(t, appModels.RoleSuperAdmin, admin.Role)
	assert.True(t, auth.CheckPassword(admin.PasswordHash, "changeme"))

	// second run is a no-op
	require.NoError(t, CreateDefaultAdmin(context.Background(), store, def, zerolog.Nop()))
	assert.Len(t, store.byEmail, 1)
}

func TestCreateDefaultAdmin_Disabled(t *testing.T) {
	store := &memAdmins{byEmail: map[string]*appModels.Admin{}, lookErr: errors.New("must not be called")}
	require.NoError(t, CreateDefaultAdmin(context.Background(), store, DefaultAdmin{}, zerolog.Nop()))
	assert.Empty(t, store.byEmail)
}

func TestCreateDefaultAdmin_LookupError(t *testing.T) {
	store := &memAdmins{byEmail: map[string]*appModels.Admin{}, lookErr: errors.New("db down")}
	err := CreateDefaultAdmin(context.Background(), store, DefaultAdmin{Email: "x@y.in", Password: "p"}, zerolog.Nop())
	assert.EqualError(t, err, "db down")
}

package seed

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"
	appModels "github.com/villageedu/api/internal/app/models"
	"github.com/villageedu/api/internal/pkg/apperrors"
	"github.com/villageedu/api/internal/pkg/auth"
)

// AdminStore is the slice of the admin repository the seed needs
type AdminStore interface {
	Create(ctx context.Context, a *appModels.Admin) error
	GetByEmail(ctx context.Context, email string) (*appModels.Admin, error)
}

// DefaultAdmin describes the superadmin created on first start
type DefaultAdmin struct {
	Email    string
	Password string
	FullName string
}

// CreateDefaultAdmin creates the configured superadmin unless an account with that
// email already exists. An empty email disables seeding.
func CreateDefaultAdmin(ctx context.Context, admins AdminStore, def DefaultAdmin, lgr zerolog.Logger) error {
	email := strings.ToLower(strings.TrimSpace(def.Email))
	if email == "" {
		lgr.Debug().Msg("No seed admin configured, skipping")
		return nil
	}

	_, err := admins.GetByEmail(ctx, email)
	if err == nil {
		lgr.Info().Str("email", email).Msg("Seed admin already exists, skipping creation")
		return nil
	}
	if !errors.Is(err, apperrors.ErrAdminNotFound) {
		return err
	}

	hash, err := auth.HashPassword(def.Password)
	if err != nil {
		return err
	}

	admin := &appModels.Admin{
		FullName:     def.FullName,
		Email:        email,
		PasswordHash: hash,
		Role:         appModels.RoleSuperAdmin,
	}
	if err := admins.Create(ctx, admin); err != nil {
		// Another instance may have seeded concurrently
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			return nil
		}
		return err
	}

	lgr.Info().Str("adminID", admin.ID).Msg("Default superadmin created")
	return nil
}

package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/villageedu/api/internal/app/models"
	"github.com/villageedu/api/internal/pkg/apperrors"
	"github.com/villageedu/api/internal/pkg/dberrors"
	"github.com/villageedu/api/internal/pkg/logger"
)

const adminEmailConstraint = "admins_email_key"

// AdminRepository handles admin database operations
type AdminRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewAdminRepository creates a new AdminRepository
func NewAdminRepository(db *pgxpool.Pool) *AdminRepository {
	return &AdminRepository{db: db, sb: statementBuilder()}
}

// Create inserts an admin
func (r *AdminRepository) Create(ctx context.Context, a *models.Admin) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}

	sql, args, err := r.sb.Insert("admins").
		Columns("id", "full_name", "email", "password_hash", "role").
		Values(a.ID, a.FullName, a.Email, a.PasswordHash, string(a.Role)).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create admin query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&a.CreatedAt, &a.UpdatedAt); err != nil {
		if dberrors.IsDuplicateConstraintError(err, adminEmailConstraint) {
			logger.Warn().Str("email", a.Email).Msg("Attempted to create admin with duplicate email")
			return apperrors.ErrEmailAlreadyExists
		}
		logger.Error().Err(err).Str("email", a.Email).Msg("Error executing create admin query")
		return fmt.Errorf("error creating admin: %w", err)
	}

	logger.Info().Str("adminID", a.ID).Str("role", string(a.Role)).Msg("Admin created successfully")
	return nil
}

// GetByID retrieves an admin by ID
func (r *AdminRepository) GetByID(ctx context.Context, id string) (*models.Admin, error) {
	if !isUUID(id) {
		return nil, apperrors.ErrAdminNotFound
	}
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

// GetByEmail retrieves an admin by exact email
func (r *AdminRepository) GetByEmail(ctx context.Context, email string) (*models.Admin, error) {
	return r.getOne(ctx, squirrel.Eq{"email": email})
}

func (r *AdminRepository) getOne(ctx context.Context, where squirrel.Sqlizer) (*models.Admin, error) {
	sql, args, err := r.sb.Select("id", "full_name", "email", "password_hash", "role", "created_at", "updated_at").
		From("admins").
		Where(where).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get admin query: %w", err)
	}

	var a models.Admin
	var role string
	err = r.db.QueryRow(ctx, sql, args...).Scan(&a.ID, &a.FullName, &a.Email, &a.PasswordHash, &role, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, apperrors.ErrAdminNotFound
		}
		logger.Error().Err(err).Msg("Error retrieving admin")
		return nil, fmt.Errorf("error retrieving admin: %w", err)
	}
	a.Role = models.AdminRole(role)
	return &a, nil
}

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

const studentEmailConstraint = "students_email_key"

var studentColumns = []string{
	"id", "first_name", "last_name", "fathers_name", "mothers_name", "email", "mobile",
	"password_hash", "date_of_birth", "gender", "state", "city", "pincode",
	"current_class", "school", "medium", "terms_accepted", "created_at", "updated_at",
}

// StudentRepository handles student database operations
type StudentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{db: db, sb: statementBuilder()}
}

// Create inserts a student. ID and timestamps are filled in on success.
func (r *StudentRepository) Create(ctx context.Context, s *models.Student) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}

	sql, args, err := r.sb.Insert("students").
		Columns(studentColumns[:17]...).
		Values(s.ID, s.FirstName, s.LastName, s.FathersName, s.MothersName, s.Email, s.Mobile,
			s.PasswordHash, s.DateOfBirth, s.Gender, s.State, s.City, s.Pincode,
			s.CurrentClass, s.School, s.Medium, s.TermsAccepted).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create student query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&s.CreatedAt, &s.UpdatedAt); err != nil {
		if dberrors.IsDuplicateConstraintError(err, studentEmailConstraint) {
			logger.Warn().Str("email", s.Email).Msg("Attempted to create student with duplicate email")
			return apperrors.ErrEmailAlreadyExists
		}
		logger.Error().Err(err).Str("email", s.Email).Msg("Error executing create student query")
		return fmt.Errorf("error creating student: %w", err)
	}

	logger.Info().Str("studentID", s.ID).Msg("Student created successfully")
	return nil
}

// GetByID retrieves a student by ID
func (r *StudentRepository) GetByID(ctx context.Context, id string) (*models.Student, error) {
	if !isUUID(id) {
		return nil, apperrors.ErrStudentNotFound
	}
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

// GetByEmail retrieves a student by exact email
func (r *StudentRepository) GetByEmail(ctx context.Context, email string) (*models.Student, error) {
	return r.getOne(ctx, squirrel.Eq{"email": email})
}

func (r *StudentRepository) getOne(ctx context.Context, where squirrel.Sqlizer) (*models.Student, error) {
	sql, args, err := r.sb.Select(studentColumns...).
		From("students").
		Where(where).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get student query: %w", err)
	}

	var s models.Student
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&s.ID, &s.FirstName, &s.LastName, &s.FathersName, &s.MothersName, &s.Email, &s.Mobile,
		&s.PasswordHash, &s.DateOfBirth, &s.Gender, &s.State, &s.City, &s.Pincode,
		&s.CurrentClass, &s.School, &s.Medium, &s.TermsAccepted, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, apperrors.ErrStudentNotFound
		}
		logger.Error().Err(err).Msg("Error retrieving student")
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}
	return &s, nil
}

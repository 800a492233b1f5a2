package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/villageedu/api/internal/app/models"
	"github.com/villageedu/api/internal/db"
	"github.com/villageedu/api/internal/pkg/apperrors"
	"github.com/villageedu/api/internal/pkg/dberrors"
	"github.com/villageedu/api/internal/pkg/logger"
)

const enrollmentPairConstraint = "enrollments_student_course_key"

// EnrollmentRepository handles enrollment database operations
type EnrollmentRepository struct {
	db      *pgxpool.Pool
	sb      squirrel.StatementBuilderType
	courses *CourseRepository
}

// NewEnrollmentRepository creates a new EnrollmentRepository
func NewEnrollmentRepository(pool *pgxpool.Pool) *EnrollmentRepository {
	return &EnrollmentRepository{db: pool, sb: statementBuilder(), courses: NewCourseRepository(pool)}
}

// Exists reports whether the student is already enrolled in the course
func (r *EnrollmentRepository) Exists(ctx context.Context, studentID, courseID string) (bool, error) {
	if !isUUID(studentID) || !isUUID(courseID) {
		return false, nil
	}

	sql, args, err := r.sb.Select("1").
		From("enrollments").
		Where(squirrel.Eq{"student_id": studentID, "course_id": courseID}).
		Prefix("SELECT EXISTS (").
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build enrollment exists query: %w", err)
	}

	var exists bool
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&exists); err != nil {
		logger.Error().Err(err).Str("studentID", studentID).Str("courseID", courseID).Msg("Error checking enrollment")
		return false, fmt.Errorf("error checking enrollment: %w", err)
	}
	return exists, nil
}

// Create records the enrollment and increments the course counter in one transaction.
// A concurrent duplicate surfaces as ErrAlreadyEnrolled and leaves the counter untouched.
func (r *EnrollmentRepository) Create(ctx context.Context, e *models.Enrollment) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}

	insertSQL, insertArgs, err := r.sb.Insert("enrollments").
		Columns("id", "student_id", "course_id").
		Values(e.ID, e.StudentID, e.CourseID).
		Suffix("RETURNING enrolled_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create enrollment query: %w", err)
	}

	counterSQL, counterArgs, err := r.sb.Update("courses").
		Set("students_enrolled", squirrel.Expr("students_enrolled + 1")).
		Where(squirrel.Eq{"id": e.CourseID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build enrollment counter query: %w", err)
	}

	err = db.RunInTx(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, insertSQL, insertArgs...).Scan(&e.EnrolledAt); err != nil {
			if dberrors.IsDuplicateConstraintError(err, enrollmentPairConstraint) {
				return apperrors.ErrAlreadyEnrolled
			}
			return fmt.Errorf("error creating enrollment: %w", err)
		}
		tag, err := tx.Exec(ctx, counterSQL, counterArgs...)
		if err != nil {
			return fmt.Errorf("error incrementing enrollment counter: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return apperrors.ErrCourseNotFound
		}
		return nil
	})
	if err != nil {
		if !apperrors.Is(err, apperrors.ErrAlreadyEnrolled, apperrors.ErrCourseNotFound) {
			logger.Error().Err(err).Str("studentID", e.StudentID).Str("courseID", e.CourseID).Msg("Error executing enrollment transaction")
		}
		return err
	}

	logger.Info().Str("studentID", e.StudentID).Str("courseID", e.CourseID).Msg("Student enrolled successfully")
	return nil
}

// ListStudentCourses returns the student's enrolled courses ordered by enrollment time.
// A course deleted after enrollment appears as a nil entry.
func (r *EnrollmentRepository) ListStudentCourses(ctx context.Context, studentID string) ([]*models.Course, error) {
	if !isUUID(studentID) {
		return []*models.Course{}, nil
	}

	sql, args, err := r.sb.Select("course_id").
		From("enrollments").
		Where(squirrel.Eq{"student_id": studentID}).
		OrderBy("enrolled_at ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build student courses query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("studentID", studentID).Msg("Error querying student enrollments")
		return nil, fmt.Errorf("error querying student enrollments: %w", err)
	}
	courseIDs, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("error scanning student enrollments: %w", err)
	}

	byID, err := r.courses.GetByIDs(ctx, courseIDs)
	if err != nil {
		return nil, err
	}

	result := make([]*models.Course, len(courseIDs))
	for i, id := range courseIDs {
		result[i] = byID[id]
	}
	return result, nil
}

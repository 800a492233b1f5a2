package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/villageedu/api/internal/app/models"
	"github.com/villageedu/api/internal/pkg/logger"
)

// TrendDays bounds the daily enrollment trend window and its bucket count
const TrendDays = 30

// AnalyticsRepository runs the read-only aggregation queries behind the admin dashboards.
// Enrollment totals join courses, so enrollments of deleted courses are not counted.
type AnalyticsRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewAnalyticsRepository creates a new AnalyticsRepository
func NewAnalyticsRepository(db *pgxpool.Pool) *AnalyticsRepository {
	return &AnalyticsRepository{db: db, sb: statementBuilder()}
}

// CountStudents returns the number of registered students
func (r *AnalyticsRepository) CountStudents(ctx context.Context) (int64, error) {
	return r.scalar(ctx, r.sb.Select("COUNT(*)").From("students"))
}

// CountEnrolledStudents returns the number of students with at least one enrollment
func (r *AnalyticsRepository) CountEnrolledStudents(ctx context.Context) (int64, error) {
	return r.scalar(ctx, r.sb.Select("COUNT(DISTINCT student_id)").From("enrollments"))
}

// CountCourses returns the number of catalog courses
func (r *AnalyticsRepository) CountCourses(ctx context.Context) (int64, error) {
	return r.scalar(ctx, r.sb.Select("COUNT(*)").From("courses"))
}

// CountEnrollments returns the number of enrollments whose course still exists
func (r *AnalyticsRepository) CountEnrollments(ctx context.Context) (int64, error) {
	return r.scalar(ctx, r.sb.Select("COUNT(*)").
		From("enrollments e").
		Join("courses c ON c.id = e.course_id"))
}

// CountCourseEnrollments returns the number of enrollments of one course
func (r *AnalyticsRepository) CountCourseEnrollments(ctx context.Context, courseID string) (int64, error) {
	if !isUUID(courseID) {
		return 0, nil
	}
	return r.scalar(ctx, r.sb.Select("COUNT(*)").
		From("enrollments").
		Where(squirrel.Eq{"course_id": courseID}))
}

// CourseWiseStats returns per-course enrollment counts, most enrolled first
func (r *AnalyticsRepository) CourseWiseStats(ctx context.Context) ([]models.CourseEnrollmentStat, error) {
	return r.courseStats(ctx, r.sb.Select(courseStatColumns...).
		From("enrollments e").
		Join("courses c ON c.id = e.course_id"))
}

// CategoryCourseStats returns every course of a category with its enrollment count
func (r *AnalyticsRepository) CategoryCourseStats(ctx context.Context, categoryID models.CourseCategoryID) ([]models.CourseEnrollmentStat, error) {
	return r.courseStats(ctx, r.sb.Select(courseStatColumns...).
		From("courses c").
		LeftJoin("enrollments e ON e.course_id = c.id").
		Where(squirrel.Eq{"c.category_id": string(categoryID)}))
}

var courseStatColumns = []string{
	"c.id", "c.title", "c.category_id", "c.class", "c.instructor", "c.price", "c.rating",
	"COUNT(e.id) AS total_enrollments",
}

func (r *AnalyticsRepository) courseStats(ctx context.Context, query squirrel.SelectBuilder) ([]models.CourseEnrollmentStat, error) {
	sql, args, err := query.GroupBy("c.id").OrderBy("total_enrollments DESC", "c.title ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build course stats query: %w", err)
	}

	return collect(ctx, r.db, sql, args, func(row pgx.CollectableRow) (models.CourseEnrollmentStat, error) {
		var s models.CourseEnrollmentStat
		var category string
		err := row.Scan(&s.CourseID, &s.CourseName, &category, &s.CourseClass, &s.Instructor, &s.Price, &s.Rating, &s.TotalEnrollments)
		s.CourseCategory = models.CourseCategoryID(category)
		return s, err
	})
}

// CategoryStats aggregates courses by category, most enrolled first
func (r *AnalyticsRepository) CategoryStats(ctx context.Context) ([]models.CategoryStat, error) {
	sql, args, err := r.sb.Select(
		"category_id",
		"MIN(category_name_en)",
		"COUNT(*)",
		"COALESCE(SUM(students_enrolled), 0) AS total_enrollments",
		"COALESCE(AVG(rating), 0)::float8",
		"COALESCE(AVG(price), 0)::float8").
		From("courses").
		GroupBy("category_id").
		OrderBy("total_enrollments DESC", "category_id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build category stats query: %w", err)
	}

	return collect(ctx, r.db, sql, args, func(row pgx.CollectableRow) (models.CategoryStat, error) {
		var s models.CategoryStat
		var category string
		err := row.Scan(&category, &s.CategoryName, &s.TotalCourses, &s.TotalEnrollments, &s.AverageRating, &s.AveragePrice)
		s.CategoryID = models.CourseCategoryID(category)
		return s, err
	})
}

// StudentClassDistribution counts students per current class, ordered by class label
func (r *AnalyticsRepository) StudentClassDistribution(ctx context.Context) ([]models.LabelCount, error) {
	return r.labelCounts(ctx, r.sb.Select("current_class", "COUNT(*) AS total").
		From("students").
		GroupBy("current_class").
		OrderBy("current_class ASC"))
}

// GenderDistribution counts students per gender, largest first
func (r *AnalyticsRepository) GenderDistribution(ctx context.Context) ([]models.LabelCount, error) {
	return r.labelCounts(ctx, r.sb.Select("gender", "COUNT(*) AS total").
		From("students").
		GroupBy("gender").
		OrderBy("total DESC", "gender ASC"))
}

// StateDistribution counts students per state, limited to the ten largest
func (r *AnalyticsRepository) StateDistribution(ctx context.Context) ([]models.LabelCount, error) {
	return r.labelCounts(ctx, r.sb.Select("state", "COUNT(*) AS total").
		From("students").
		GroupBy("state").
		OrderBy("total DESC", "state ASC").
		Limit(10))
}

// ClassCourseDistribution counts courses and their enrollments per class label
func (r *AnalyticsRepository) ClassCourseDistribution(ctx context.Context) ([]models.ClassCourseStat, error) {
	sql, args, err := r.sb.Select("class", "COUNT(*)", "COALESCE(SUM(students_enrolled), 0)").
		From("courses").
		GroupBy("class").
		OrderBy("class ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build class course query: %w", err)
	}

	return collect(ctx, r.db, sql, args, func(row pgx.CollectableRow) (models.ClassCourseStat, error) {
		var s models.ClassCourseStat
		err := row.Scan(&s.Class, &s.TotalCourses, &s.TotalEnrollments)
		return s, err
	})
}

// EnrollmentTrend buckets enrollments made since the given time by UTC day, oldest first.
// An empty courseID covers all courses.
func (r *AnalyticsRepository) EnrollmentTrend(ctx context.Context, since time.Time, courseID string) ([]models.DayCount, error) {
	query := r.sb.Select("to_char(enrolled_at AT TIME ZONE 'UTC', 'YYYY-MM-DD') AS day", "COUNT(*)").
		From("enrollments").
		Where(squirrel.GtOrEq{"enrolled_at": since})
	if courseID != "" {
		if !isUUID(courseID) {
			return []models.DayCount{}, nil
		}
		query = query.Where(squirrel.Eq{"course_id": courseID})
	}

	sql, args, err := query.GroupBy("day").OrderBy("day ASC").Limit(TrendDays).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build enrollment trend query: %w", err)
	}

	return collect(ctx, r.db, sql, args, func(row pgx.CollectableRow) (models.DayCount, error) {
		var d models.DayCount
		err := row.Scan(&d.Date, &d.Count)
		return d, err
	})
}

// TopCourses returns the most enrolled courses
func (r *AnalyticsRepository) TopCourses(ctx context.Context, limit int) ([]*models.Course, error) {
	sql, args, err := r.sb.Select(courseColumns...).
		From("courses").
		OrderBy("students_enrolled DESC", "created_at DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build top courses query: %w", err)
	}

	return collect(ctx, r.db, sql, args, func(row pgx.CollectableRow) (*models.Course, error) {
		return scanCourse(row)
	})
}

// RecentEnrollments returns the latest enrollments with student and course summaries.
// An empty courseID covers all courses.
func (r *AnalyticsRepository) RecentEnrollments(ctx context.Context, limit int, courseID string) ([]models.EnrollmentDetail, error) {
	query := r.sb.Select(
		"e.id", "e.enrolled_at",
		"s.id", "s.first_name", "s.last_name", "s.email",
		"c.id", "c.title", "c.category_id").
		From("enrollments e").
		LeftJoin("students s ON s.id = e.student_id").
		LeftJoin("courses c ON c.id = e.course_id")
	if courseID != "" {
		if !isUUID(courseID) {
			return []models.EnrollmentDetail{}, nil
		}
		query = query.Where(squirrel.Eq{"e.course_id": courseID})
	}

	sql, args, err := query.OrderBy("e.enrolled_at DESC", "e.id ASC").Limit(uint64(limit)).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build recent enrollments query: %w", err)
	}

	return collect(ctx, r.db, sql, args, func(row pgx.CollectableRow) (models.EnrollmentDetail, error) {
		var d models.EnrollmentDetail
		var sID, sFirst, sLast, sEmail, cID, cTitle, cCategory *string
		if err := row.Scan(&d.ID, &d.EnrolledAt, &sID, &sFirst, &sLast, &sEmail, &cID, &cTitle, &cCategory); err != nil {
			return d, err
		}
		if sID != nil {
			d.Student = &models.StudentSummary{ID: *sID, FirstName: deref(sFirst), LastName: deref(sLast), Email: deref(sEmail)}
		}
		if cID != nil {
			d.Course = &models.CourseSummary{ID: *cID, Title: deref(cTitle), Category: models.CourseCategoryID(deref(cCategory))}
		}
		return d, nil
	})
}

func (r *AnalyticsRepository) labelCounts(ctx context.Context, query squirrel.SelectBuilder) ([]models.LabelCount, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build distribution query: %w", err)
	}
	return collect(ctx, r.db, sql, args, func(row pgx.CollectableRow) (models.LabelCount, error) {
		var lc models.LabelCount
		err := row.Scan(&lc.Label, &lc.Count)
		return lc, err
	})
}

func (r *AnalyticsRepository) scalar(ctx context.Context, query squirrel.SelectBuilder) (int64, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count query: %w", err)
	}
	var n int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&n); err != nil {
		logger.Error().Err(err).Str("query", sql).Msg("Error executing analytics count")
		return 0, fmt.Errorf("error executing analytics count: %w", err)
	}
	return n, nil
}

// collect runs a query and maps every row with fn. The result is never nil.
func collect[T any](ctx context.Context, db *pgxpool.Pool, sql string, args []interface{}, fn pgx.RowToFunc[T]) ([]T, error) {
	rows, err := db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("query", sql).Msg("Error executing analytics query")
		return nil, fmt.Errorf("error executing analytics query: %w", err)
	}
	out, err := pgx.CollectRows(rows, fn)
	if err != nil {
		return nil, fmt.Errorf("error scanning analytics rows: %w", err)
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/villageedu/api/internal/app/models"
	"github.com/villageedu/api/internal/pkg/apperrors"
	"github.com/villageedu/api/internal/pkg/dberrors"
	"github.com/villageedu/api/internal/pkg/logger"
)

var courseColumns = []string{
	"id", "title", "description", "category_id", "category_name", "category_name_en",
	"instructor", "lessons", "price", "language", "class", "rating", "students_enrolled",
	"created_at", "updated_at",
}

// CourseRepository handles course database operations
type CourseRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewCourseRepository creates a new CourseRepository
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{db: db, sb: statementBuilder()}
}

// Create inserts a course. StudentsEnrolled is always stored as 0.
func (r *CourseRepository) Create(ctx context.Context, c *models.Course) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	c.StudentsEnrolled = 0

	lessons, err := marshalLessons(c.Lessons)
	if err != nil {
		return err
	}

	sql, args, err := r.sb.Insert("courses").
		Columns(courseColumns[:13]...).
		Values(c.ID, c.Title, c.Description, string(c.Category.ID), c.Category.Name, c.Category.NameEn,
			c.Instructor, lessons, c.Price, c.Language, c.Class, c.Rating, 0).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create course query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&c.CreatedAt, &c.UpdatedAt); err != nil {
		logger.Error().Err(err).Str("title", c.Title).Msg("Error executing create course query")
		return fmt.Errorf("error creating course: %w", err)
	}

	logger.Info().Str("courseID", c.ID).Str("category", string(c.Category.ID)).Msg("Course created successfully")
	return nil
}

// GetByID retrieves a course by ID
func (r *CourseRepository) GetByID(ctx context.Context, id string) (*models.Course, error) {
	if !isUUID(id) {
		return nil, apperrors.ErrCourseNotFound
	}

	sql, args, err := r.sb.Select(courseColumns...).
		From("courses").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get course query: %w", err)
	}

	course, err := scanCourse(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, apperrors.ErrCourseNotFound
		}
		logger.Error().Err(err).Str("courseID", id).Msg("Error retrieving course")
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}
	return course, nil
}

// GetByIDs returns the courses that still exist among ids, keyed by ID.
func (r *CourseRepository) GetByIDs(ctx context.Context, ids []string) (map[string]*models.Course, error) {
	result := make(map[string]*models.Course, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	sql, args, err := r.sb.Select(courseColumns...).
		From("courses").
		Where(squirrel.Eq{"id": ids}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get courses query: %w", err)
	}

	courses, err := r.queryCourses(ctx, sql, args)
	if err != nil {
		return nil, err
	}
	for _, c := range courses {
		result[c.ID] = c
	}
	return result, nil
}

// List returns courses matching the filter, newest first
func (r *CourseRepository) List(ctx context.Context, filter models.CourseFilter) ([]*models.Course, error) {
	query := r.sb.Select(courseColumns...).From("courses")
	if filter.CategoryID != "" {
		query = query.Where(squirrel.Eq{"category_id": string(filter.CategoryID)})
	}
	if filter.Class != "" {
		query = query.Where(squirrel.Eq{"class": filter.Class})
	}

	sql, args, err := query.OrderBy("created_at DESC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list courses query: %w", err)
	}
	return r.queryCourses(ctx, sql, args)
}

// Update applies the non-nil fields of patch and returns the stored course
func (r *CourseRepository) Update(ctx context.Context, id string, patch models.CoursePatch) (*models.Course, error) {
	if !isUUID(id) {
		return nil, apperrors.ErrCourseNotFound
	}

	set := map[string]interface{}{"updated_at": squirrel.Expr("NOW()")}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.Category != nil {
		set["category_id"] = string(patch.Category.ID)
		set["category_name"] = patch.Category.Name
		set["category_name_en"] = patch.Category.NameEn
	}
	if patch.Instructor != nil {
		set["instructor"] = *patch.Instructor
	}
	if patch.Lessons != nil {
		lessons, err := marshalLessons(*patch.Lessons)
		if err != nil {
			return nil, err
		}
		set["lessons"] = lessons
	}
	if patch.Price != nil {
		set["price"] = *patch.Price
	}
	if patch.Language != nil {
		set["language"] = *patch.Language
	}
	if patch.Class != nil {
		set["class"] = *patch.Class
	}
	if patch.Rating != nil {
		set["rating"] = *patch.Rating
	}

	sql, args, err := r.sb.Update("courses").
		SetMap(set).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(courseColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build update course query: %w", err)
	}

	course, err := scanCourse(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, apperrors.ErrCourseNotFound
		}
		logger.Error().Err(err).Str("courseID", id).Msg("Error executing update course query")
		return nil, fmt.Errorf("error updating course: %w", err)
	}

	logger.Info().Str("courseID", id).Msg("Course updated successfully")
	return course, nil
}

// Delete removes a course. Its enrollments are left in place.
func (r *CourseRepository) Delete(ctx context.Context, id string) error {
	if !isUUID(id) {
		return apperrors.ErrCourseNotFound
	}

	sql, args, err := r.sb.Delete("courses").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete course query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("courseID", id).Msg("Error executing delete course query")
		return fmt.Errorf("error deleting course: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}

	logger.Info().Str("courseID", id).Msg("Course deleted successfully")
	return nil
}

func (r *CourseRepository) queryCourses(ctx context.Context, sql string, args []interface{}) ([]*models.Course, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error querying courses")
		return nil, fmt.Errorf("error querying courses: %w", err)
	}
	defer rows.Close()

	courses := make([]*models.Course, 0)
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning course row: %w", err)
		}
		courses = append(courses, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating course rows: %w", err)
	}
	return courses, nil
}

// scanCourse reads one row selected with courseColumns
func scanCourse(row pgx.Row) (*models.Course, error) {
	var c models.Course
	var categoryID string
	var lessons []byte
	err := row.Scan(&c.ID, &c.Title, &c.Description, &categoryID, &c.Category.Name, &c.Category.NameEn,
		&c.Instructor, &lessons, &c.Price, &c.Language, &c.Class, &c.Rating, &c.StudentsEnrolled,
		&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	c.Category.ID = models.CourseCategoryID(categoryID)

	c.Lessons = []models.Lesson{}
	if len(lessons) > 0 {
		if err := json.Unmarshal(lessons, &c.Lessons); err != nil {
			return nil, fmt.Errorf("failed to decode lessons: %w", err)
		}
	}
	return &c, nil
}

func marshalLessons(lessons []models.Lesson) (string, error) {
	if lessons == nil {
		lessons = []models.Lesson{}
	}
	for i := range lessons {
		if lessons[i].Resources == nil {
			lessons[i].Resources = []string{}
		}
	}
	b, err := json.Marshal(lessons)
	if err != nil {
		return "", fmt.Errorf("failed to encode lessons: %w", err)
	}
	return string(b), nil
}

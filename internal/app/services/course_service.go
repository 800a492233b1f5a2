package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/villageedu/api/internal/app/models"
	"github.com/villageedu/api/internal/pkg/apperrors"
)

// CategoryAll is the listing filter value that disables category filtering
const CategoryAll = "all"

// CourseService defines the course catalog operations
type CourseService interface {
	CreateCourse(ctx context.Context, course *models.Course) (*models.Course, error)
	GetCourse(ctx context.Context, id string) (*models.Course, error)
	ListCourses(ctx context.Context, categoryID, class string) ([]*models.Course, error)
	UpdateCourse(ctx context.Context, id string, patch models.CoursePatch) (*models.Course, error)
	DeleteCourse(ctx context.Context, id string) error
}

type courseServiceImpl struct {
	courses CourseStore
}

// NewCourseService creates a new course service
func NewCourseService(courses CourseStore) CourseService {
	return &courseServiceImpl{courses: courses}
}

func validateCategory(category *models.CourseCategory) error {
	if !category.ID.IsValid() {
		return apperrors.NewValidationError("Invalid course category")
	}
	defaults := category.ID.Names()
	if strings.TrimSpace(category.Name) == "" {
		category.Name = defaults.Name
	}
	if strings.TrimSpace(category.NameEn) == "" {
		category.NameEn = defaults.NameEn
	}
	return nil
}

func validateLessons(lessons []models.Lesson) error {
	for i, l := range lessons {
		if strings.TrimSpace(l.Title) == "" {
			return apperrors.NewValidationError(fmt.Sprintf("Lesson %d requires a title", i+1))
		}
	}
	return nil
}

func validateRating(rating float64) error {
	if rating < 0 || rating > 5 {
		return apperrors.NewValidationError("Rating must be between 0 and 5")
	}
	return nil
}

func (s *courseServiceImpl) validateCourse(course *models.Course) error {
	if strings.TrimSpace(course.Title) == "" {
		return apperrors.NewValidationError("Course title is required")
	}
	if strings.TrimSpace(course.Description) == "" {
		return apperrors.NewValidationError("Course description is required")
	}
	if strings.TrimSpace(course.Instructor) == "" {
		return apperrors.NewValidationError("Instructor is required")
	}
	if err := validateCategory(&course.Category); err != nil {
		return err
	}
	if !models.IsValidCourseClass(course.Class) {
		return apperrors.NewValidationError("Invalid course class")
	}
	if course.Price < 0 {
		return apperrors.NewValidationError("Price cannot be negative")
	}
	if err := validateRating(course.Rating); err != nil {
		return err
	}
	return validateLessons(course.Lessons)
}

// CreateCourse validates and stores a new course
func (s *courseServiceImpl) CreateCourse(ctx context.Context, course *models.Course) (*models.Course, error) {
	if err := s.validateCourse(course); err != nil {
		return nil, err
	}
	if strings.TrimSpace(course.Language) == "" {
		course.Language = models.DefaultCourseLanguage
	}
	if course.Lessons == nil {
		course.Lessons = []models.Lesson{}
	}
	course.StudentsEnrolled = 0

	if err := s.courses.Create(ctx, course); err != nil {
		return nil, fmt.Errorf("failed to create course: %w", err)
	}
	return course, nil
}

// GetCourse returns a course by ID
func (s *courseServiceImpl) GetCourse(ctx context.Context, id string) (*models.Course, error) {
	course, err := s.courses.GetByID(ctx, id)
	if err != nil {
		return nil, courseLookupError(err)
	}
	return course, nil
}

// ListCourses lists courses newest first. categoryID "" or "all" disables the category filter.
func (s *courseServiceImpl) ListCourses(ctx context.Context, categoryID, class string) ([]*models.Course, error) {
	var filter models.CourseFilter
	if categoryID != "" && categoryID != CategoryAll {
		filter.CategoryID = models.CourseCategoryID(categoryID)
		if !filter.CategoryID.IsValid() {
			return nil, apperrors.NewValidationError("Invalid course category")
		}
	}
	if class != "" {
		if !models.IsValidCourseClass(class) {
			return nil, apperrors.NewValidationError("Invalid course class")
		}
		filter.Class = class
	}

	courses, err := s.courses.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}
	return courses, nil
}

// UpdateCourse applies a validated partial update
func (s *courseServiceImpl) UpdateCourse(ctx context.Context, id string, patch models.CoursePatch) (*models.Course, error) {
	if patch.IsEmpty() {
		return nil, apperrors.NewValidationError("No fields to update")
	}
	if err := validatePatch(&patch); err != nil {
		return nil, err
	}

	course, err := s.courses.Update(ctx, id, patch)
	if err != nil {
		return nil, courseLookupError(err)
	}
	return course, nil
}

func validatePatch(p *models.CoursePatch) error {
	for field, v := range map[string]*string{"title": p.Title, "description": p.Description, "instructor": p.Instructor} {
		if v != nil && strings.TrimSpace(*v) == "" {
			return apperrors.NewValidationError(fmt.Sprintf("Course %s cannot be empty", field))
		}
	}
	if p.Category != nil {
		if err := validateCategory(p.Category); err != nil {
			return err
		}
	}
	if p.Class != nil && !models.IsValidCourseClass(*p.Class) {
		return apperrors.NewValidationError("Invalid course class")
	}
	if p.Price != nil && *p.Price < 0 {
		return apperrors.NewValidationError("Price cannot be negative")
	}
	if p.Rating != nil {
		if err := validateRating(*p.Rating); err != nil {
			return err
		}
	}
	if p.Language != nil && strings.TrimSpace(*p.Language) == "" {
		lang := models.DefaultCourseLanguage
		p.Language = &lang
	}
	if p.Lessons != nil {
		return validateLessons(*p.Lessons)
	}
	return nil
}

// DeleteCourse removes a course
func (s *courseServiceImpl) DeleteCourse(ctx context.Context, id string) error {
	if err := s.courses.Delete(ctx, id); err != nil {
		return courseLookupError(err)
	}
	return nil
}

func courseLookupError(err error) error {
	if errors.Is(err, apperrors.ErrCourseNotFound) {
		return apperrors.NewCustomError(apperrors.ErrCourseNotFound, "Course not found")
	}
	return fmt.Errorf("course store error: %w", err)
}

package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/villageedu/api/internal/app/models"
	"github.com/villageedu/api/internal/pkg/apperrors"
)

// EnrollmentService enrolls students in courses and lists their courses
type EnrollmentService interface {
	Enroll(ctx context.Context, studentID, courseID string) (*models.Enrollment, error)
	ListMyCourses(ctx context.Context, studentID string) ([]*models.Course, error)
}

type enrollmentServiceImpl struct {
	enrollments EnrollmentStore
	courses     CourseStore
	logger      zerolog.Logger
}

// NewEnrollmentService creates a new enrollment service
func NewEnrollmentService(enrollments EnrollmentStore, courses CourseStore, logger zerolog.Logger) EnrollmentService {
	return &enrollmentServiceImpl{enrollments: enrollments, courses: courses, logger: logger}
}

func alreadyEnrolled() error {
	return apperrors.NewCustomError(apperrors.ErrAlreadyEnrolled, "Already enrolled in this course")
}

// Enroll creates the (student, course) enrollment. The store's uniqueness constraint
// is authoritative; the Exists check only avoids a doomed transaction.
func (s *enrollmentServiceImpl) Enroll(ctx context.Context, studentID, courseID string) (*models.Enrollment, error) {
	if _, err := s.courses.GetByID(ctx, courseID); err != nil {
		return nil, courseLookupError(err)
	}

	exists, err := s.enrollments.Exists(ctx, studentID, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to check enrollment: %w", err)
	}
	if exists {
		return nil, alreadyEnrolled()
	}

	enrollment := &models.Enrollment{StudentID: studentID, CourseID: courseID}
	if err := s.enrollments.Create(ctx, enrollment); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrAlreadyEnrolled):
			s.logger.Warn().Str("studentID", studentID).Str("courseID", courseID).Msg("Concurrent duplicate enrollment rejected")
			return nil, alreadyEnrolled()
		case errors.Is(err, apperrors.ErrCourseNotFound):
			return nil, courseLookupError(err)
		}
		return nil, fmt.Errorf("failed to enroll: %w", err)
	}
	return enrollment, nil
}

// ListMyCourses returns the student's courses in enrollment order; deleted courses are nil
func (s *enrollmentServiceImpl) ListMyCourses(ctx context.Context, studentID string) ([]*models.Course, error) {
	courses, err := s.enrollments.ListStudentCourses(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list enrolled courses: %w", err)
	}
	return courses, nil
}

package services

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/villageedu/api/internal/app/models"
)

// analyticsKeys are every cached analytics payload. Writes that change
// student, course or enrollment counts drop them all.
var analyticsKeys = []string{overviewCacheKey, summaryCacheKey}

type analyticsInvalidator struct {
	cache  JSONCache
	logger zerolog.Logger
}

func (a analyticsInvalidator) invalidate(ctx context.Context) {
	if a.cache == nil {
		return
	}
	if err := a.cache.Delete(ctx, analyticsKeys...); err != nil {
		a.logger.Warn().Err(err).Strs("keys", analyticsKeys).Msg("Failed to invalidate analytics cache")
	}
}

// invalidatingStudentStore drops cached analytics after a student registers.
type invalidatingStudentStore struct {
	StudentStore
	inv analyticsInvalidator
}

func (s invalidatingStudentStore) Create(ctx context.Context, st *models.Student) error {
	if err := s.StudentStore.Create(ctx, st); err != nil {
		return err
	}
	s.inv.invalidate(ctx)
	return nil
}

// invalidatingCourseStore drops cached analytics after any course write.
type invalidatingCourseStore struct {
	CourseStore
	inv analyticsInvalidator
}

func (s invalidatingCourseStore) Create(ctx context.Context, c *models.Course) error {
	if err := s.CourseStore.Create(ctx, c); err != nil {
		return err
	}
	s.inv.invalidate(ctx)
	return nil
}

func (s invalidatingCourseStore) Update(ctx context.Context, id string, patch models.CoursePatch) (*models.Course, error) {
	c, err := s.CourseStore.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	s.inv.invalidate(ctx)
	return c, nil
}

func (s invalidatingCourseStore) Delete(ctx context.Context, id string) error {
	if err := s.CourseStore.Delete(ctx, id); err != nil {
		return err
	}
	s.inv.invalidate(ctx)
	return nil
}

// invalidatingEnrollmentStore drops cached analytics after a new enrollment.
type invalidatingEnrollmentStore struct {
	EnrollmentStore
	inv analyticsInvalidator
}

func (s invalidatingEnrollmentStore) Create(ctx context.Context, e *models.Enrollment) error {
	if err := s.EnrollmentStore.Create(ctx, e); err != nil {
		return err
	}
	s.inv.invalidate(ctx)
	return nil
}

// withAnalyticsInvalidation wraps the write-side stores so cached analytics
// never outlive a change to the counts they summarize. A nil cache returns the stores as is.
func withAnalyticsInvalidation(cache JSONCache, logger zerolog.Logger, students StudentStore, courses CourseStore, enrollments EnrollmentStore) (StudentStore, CourseStore, EnrollmentStore) {
	if cache == nil {
		return students, courses, enrollments
	}
	inv := analyticsInvalidator{cache: cache, logger: logger.With().Str("component", "analytics-cache").Logger()}
	return invalidatingStudentStore{students, inv},
		invalidatingCourseStore{courses, inv},
		invalidatingEnrollmentStore{enrollments, inv}
}

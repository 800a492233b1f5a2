package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/villageedu/api/internal/app/models"
	"github.com/villageedu/api/internal/pkg/apperrors"
)

func TestEnrollmentPercentage(t *testing.T) {
	tests := []struct {
		enrolled, total int64
		want            float64
	}{
		{2, 10, 20.00},
		{1, 3, 33.33},
		{2, 3, 66.67},
		{0, 0, 0},
		{5, 5, 100},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, EnrollmentPercentage(tt.enrolled, tt.total), "%d/%d", tt.enrolled, tt.total)
	}
}

func newScenarioStore() *stubAnalyticsStore {
	// 10 students, 3 enrollments across 2 distinct students
	return &stubAnalyticsStore{
		students:         10,
		enrolledStudents: 2,
		courses:          2,
		enrollments:      3,
		courseStats: []models.CourseEnrollmentStat{
			{CourseID: "c1", CourseName: "Basic Maths", CourseCategory: models.CategoryMath, Price: 100, Rating: 4.5, TotalEnrollments: 2},
			{CourseID: "c2", CourseName: "Geometry", CourseCategory: models.CategoryMath, Price: 50, Rating: 4, TotalEnrollments: 1},
		},
		categoryStats: []models.CategoryStat{
			{CategoryID: models.CategoryMath, CategoryName: "Mathematics", TotalCourses: 2, TotalEnrollments: 3, AverageRating: 4.25, AveragePrice: 74.999},
		},
	}
}

func TestOverview_Scenario(t *testing.T) {
	svc := NewAnalyticsService(newScenarioStore(), newMemCourseStore(), nil, 0, zerolog.Nop())

	out, err := svc.Overview(context.Background())
	require.NoError(t, err)

	assert.EqualValues(t, 2, out.Overview.EnrolledStudents)
	assert.EqualValues(t, 8, out.Overview.NotEnrolledStudents)
	assert.Equal(t, 20.00, out.Overview.EnrollmentPercentage)
	assert.EqualValues(t, 3, out.Overview.TotalEnrollments)
	assert.Equal(t, 75.0, out.CategoryStats[0].AveragePrice)

	var perCourse int64
	for _, s := range out.CourseWiseStats {
		perCourse += s.TotalEnrollments
	}
	assert.Equal(t, out.Overview.TotalEnrollments, perCourse)
	assert.Len(t, out.RecentEnrollments, 2)
}

func TestOverview_AnyFailureFailsWhole(t *testing.T) {
	store := newScenarioStore()
	store.failOn = "GenderDistribution"
	svc := NewAnalyticsService(store, newMemCourseStore(), nil, 0, zerolog.Nop())

	out, err := svc.Overview(context.Background())
	assert.Nil(t, out)
	assert.ErrorIs(t, err, errStoreDown)
}

func TestOverview_ReadThroughCache(t *testing.T) {
	store := newScenarioStore()
	cache := &mapCache{}
	svc := NewAnalyticsService(store, newMemCourseStore(), cache, time.Minute, zerolog.Nop())

	first, err := svc.Overview(context.Background())
	require.NoError(t, err)
	callsAfterFirst := store.calls
	assert.Equal(t, 1, cache.sets)

	second, err := svc.Overview(context.Background())
	require.NoError(t, err)
	assert.Equal(t, callsAfterFirst, store.calls)
	assert.Equal(t, first.Overview, second.Overview)
}

func TestOverview_CacheErrorsIgnored(t *testing.T) {
	cache := &mapCache{err: errors.New("redis down")}
	svc := NewAnalyticsService(newScenarioStore(), newMemCourseStore(), cache, time.Minute, zerolog.Nop())

	out, err := svc.Overview(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 20.00, out.Overview.EnrollmentPercentage)
}

func TestDashboardSummary(t *testing.T) {
	svc := NewAnalyticsService(newScenarioStore(), newMemCourseStore(), nil, 0, zerolog.Nop())

	out, err := svc.DashboardSummary(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 10, out.TotalStudents)
	assert.EqualValues(t, 2, out.TotalCourses)
	assert.EqualValues(t, 3, out.TotalEnrollments)
	assert.Equal(t, 20.00, out.EnrollmentRate)
	assert.NotNil(t, out.RecentEnrollments)
}

func TestCategoryAnalytics(t *testing.T) {
	svc := NewAnalyticsService(newScenarioStore(), newMemCourseStore(), nil, 0, zerolog.Nop())

	out, err := svc.CategoryAnalytics(context.Background(), "math")
	require.NoError(t, err)
	assert.EqualValues(t, 2, out.TotalCourses)
	assert.EqualValues(t, 3, out.TotalEnrollments)
	assert.Equal(t, 4.25, out.AverageRating)
	assert.Equal(t, 75.0, out.AveragePrice)
	assert.Equal(t, "Mathematics", out.Category.NameEn)

	empty, err := svc.CategoryAnalytics(context.Background(), "science")
	require.NoError(t, err)
	assert.Zero(t, empty.TotalCourses)
	assert.Zero(t, empty.AverageRating)

	_, err = svc.CategoryAnalytics(context.Background(), "history")
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestCourseAnalytics(t *testing.T) {
	ctx := context.Background()
	courses := newMemCourseStore()
	c, err := NewCourseService(courses).CreateCourse(ctx, mathCourse())
	require.NoError(t, err)

	store := newScenarioStore()
	store.courseStats[0].CourseID = c.ID
	svc := NewAnalyticsService(store, courses, nil, 0, zerolog.Nop())

	out, err := svc.CourseAnalytics(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, c.ID, out.Course.ID)
	assert.EqualValues(t, 2, out.TotalEnrollments)
	assert.Len(t, out.DailyTrend, 2)

	_, err = svc.CourseAnalytics(ctx, "0b6c3f55-2a6e-4b8e-9d7c-5d2f1e9f4a10")
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
}

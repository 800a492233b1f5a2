package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"
	"github.com/villageedu/api/internal/app/models"
	"github.com/villageedu/api/internal/app/models/dto"
	"github.com/villageedu/api/internal/app/repositories"
	"github.com/villageedu/api/internal/pkg/apperrors"
	"github.com/villageedu/api/internal/pkg/helpers"
	"golang.org/x/sync/errgroup"
)

const (
	topCoursesLimit        = 5
	recentEnrollmentsLimit = 10

	overviewCacheKey = "analytics:overview"
	summaryCacheKey  = "analytics:dashboard-summary"
)

// AnalyticsService produces the admin dashboard aggregations
type AnalyticsService interface {
	Overview(ctx context.Context) (*dto.AdminAnalytics, error)
	DashboardSummary(ctx context.Context) (*dto.DashboardSummary, error)
	CourseAnalytics(ctx context.Context, courseID string) (*dto.CourseAnalytics, error)
	CategoryAnalytics(ctx context.Context, categoryID string) (*dto.CategoryAnalytics, error)
}

type analyticsServiceImpl struct {
	store   AnalyticsStore
	courses CourseStore
	cache   JSONCache
	ttl     time.Duration
	logger  zerolog.Logger
	now     func() time.Time
}

// NewAnalyticsService creates a new analytics service. cache may be nil.
func NewAnalyticsService(store AnalyticsStore, courses CourseStore, cache JSONCache, ttl time.Duration, logger zerolog.Logger) AnalyticsService {
	return &analyticsServiceImpl{
		store:   store,
		courses: courses,
		cache:   cache,
		ttl:     ttl,
		logger:  logger.With().Str("component", "analytics").Logger(),
		now:     helpers.UTCNow,
	}
}

// Percentage returns part/whole as a percentage rounded to two decimals; 0 when whole is 0
func Percentage(part, whole int64) float64 {
	if whole <= 0 {
		return 0
	}
	return roundTo2(float64(part) * 100 / float64(whole))
}

// EnrollmentPercentage is the share of students with at least one enrollment
func EnrollmentPercentage(enrolled, total int64) float64 {
	return Percentage(enrolled, total)
}

func roundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Overview runs every aggregation concurrently; any failure fails the whole payload
func (s *analyticsServiceImpl) Overview(ctx context.Context) (*dto.AdminAnalytics, error) {
	var cached dto.AdminAnalytics
	if s.cacheGet(ctx, overviewCacheKey, &cached) {
		return &cached, nil
	}

	var (
		out                                           dto.AdminAnalytics
		totalStudents, enrolled, courses, enrollments int64
	)
	g, gctx := errgroup.WithContext(ctx)

	count := func(dst *int64, fn func(context.Context) (int64, error)) {
		g.Go(func() error {
			n, err := fn(gctx)
			*dst = n
			return err
		})
	}
	count(&totalStudents, s.store.CountStudents)
	count(&enrolled, s.store.CountEnrolledStudents)
	count(&courses, s.store.CountCourses)
	count(&enrollments, s.store.CountEnrollments)

	g.Go(func() (err error) { out.CourseWiseStats, err = s.store.CourseWiseStats(gctx); return })
	g.Go(func() (err error) { out.CategoryStats, err = s.store.CategoryStats(gctx); return })
	g.Go(func() (err error) { out.ClassStats, err = s.store.StudentClassDistribution(gctx); return })
	g.Go(func() (err error) { out.ClassCourseStats, err = s.store.ClassCourseDistribution(gctx); return })
	g.Go(func() (err error) { out.GenderStats, err = s.store.GenderDistribution(gctx); return })
	g.Go(func() (err error) { out.StateStats, err = s.store.StateDistribution(gctx); return })
	g.Go(func() (err error) {
		since := s.now().AddDate(0, 0, -repositories.TrendDays)
		out.RecentEnrollments, err = s.store.EnrollmentTrend(gctx, since, "")
		return
	})
	g.Go(func() (err error) { out.TopCourses, err = s.store.TopCourses(gctx, topCoursesLimit); return })

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to compute analytics overview: %w", err)
	}

	for i := range out.CategoryStats {
		out.CategoryStats[i].AverageRating = roundTo2(out.CategoryStats[i].AverageRating)
		out.CategoryStats[i].AveragePrice = roundTo2(out.CategoryStats[i].AveragePrice)
	}
	out.Overview = dto.AnalyticsOverview{
		TotalStudents:        totalStudents,
		EnrolledStudents:     enrolled,
		NotEnrolledStudents:  totalStudents - enrolled,
		TotalCourses:         courses,
		EnrollmentPercentage: EnrollmentPercentage(enrolled, totalStudents),
		TotalEnrollments:     enrollments,
	}
	out.GeneratedAt = s.now()

	s.cacheSet(ctx, overviewCacheKey, &out)
	return &out, nil
}

// DashboardSummary returns the headline counts and the latest enrollments
func (s *analyticsServiceImpl) DashboardSummary(ctx context.Context) (*dto.DashboardSummary, error) {
	var cached dto.DashboardSummary
	if s.cacheGet(ctx, summaryCacheKey, &cached) {
		return &cached, nil
	}

	var out dto.DashboardSummary
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { out.TotalStudents, err = s.store.CountStudents(gctx); return })
	g.Go(func() (err error) { out.TotalCourses, err = s.store.CountCourses(gctx); return })
	g.Go(func() (err error) { out.TotalEnrollments, err = s.store.CountEnrollments(gctx); return })
	g.Go(func() (err error) { out.EnrolledStudents, err = s.store.CountEnrolledStudents(gctx); return })
	g.Go(func() (err error) {
		out.RecentEnrollments, err = s.store.RecentEnrollments(gctx, recentEnrollmentsLimit, "")
		return
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to compute dashboard summary: %w", err)
	}

	out.EnrollmentRate = EnrollmentPercentage(out.EnrolledStudents, out.TotalStudents)
	out.GeneratedAt = s.now()

	s.cacheSet(ctx, summaryCacheKey, &out)
	return &out, nil
}

// CourseAnalytics describes one course's enrollment activity
func (s *analyticsServiceImpl) CourseAnalytics(ctx context.Context, courseID string) (*dto.CourseAnalytics, error) {
	course, err := s.courses.GetByID(ctx, courseID)
	if err != nil {
		return nil, courseLookupError(err)
	}

	out := dto.CourseAnalytics{Course: course}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { out.TotalEnrollments, err = s.store.CountCourseEnrollments(gctx, courseID); return })
	g.Go(func() (err error) {
		since := s.now().AddDate(0, 0, -repositories.TrendDays)
		out.DailyTrend, err = s.store.EnrollmentTrend(gctx, since, courseID)
		return
	})
	g.Go(func() (err error) {
		out.RecentStudents, err = s.store.RecentEnrollments(gctx, recentEnrollmentsLimit, courseID)
		return
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to compute course analytics: %w", err)
	}
	return &out, nil
}

// CategoryAnalytics summarizes the courses of one category
func (s *analyticsServiceImpl) CategoryAnalytics(ctx context.Context, categoryID string) (*dto.CategoryAnalytics, error) {
	id := models.CourseCategoryID(categoryID)
	if !id.IsValid() {
		return nil, apperrors.NewValidationError("Invalid course category")
	}

	stats, err := s.store.CategoryCourseStats(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to compute category analytics: %w", err)
	}

	names := id.Names()
	out := &dto.CategoryAnalytics{
		Category:     models.CourseCategory{ID: id, Name: names.Name, NameEn: names.NameEn},
		TotalCourses: int64(len(stats)),
		Courses:      stats,
	}
	var ratingSum, priceSum float64
	for _, st := range stats {
		out.TotalEnrollments += st.TotalEnrollments
		ratingSum += st.Rating
		priceSum += st.Price
	}
	if n := len(stats); n > 0 {
		out.AverageRating = roundTo2(ratingSum / float64(n))
		out.AveragePrice = roundTo2(priceSum / float64(n))
	}
	return out, nil
}

func (s *analyticsServiceImpl) cacheGet(ctx context.Context, key string, dest interface{}) bool {
	if s.cache == nil {
		return false
	}
	if err := s.cache.GetJSON(ctx, key, dest); err != nil {
		s.logger.Debug().Err(err).Str("key", key).Msg("Analytics cache miss")
		return false
	}
	return true
}

func (s *analyticsServiceImpl) cacheSet(ctx context.Context, key string, value interface{}) {
	if s.cache == nil || s.ttl <= 0 {
		return
	}
	if err := s.cache.SetJSON(ctx, key, value, s.ttl); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("Failed to store analytics in cache")
	}
}

package repositories

import (
	"context"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/villageedu/api/internal/app/migrations"
	"github.com/villageedu/api/internal/app/models"
	"github.com/villageedu/api/internal/pkg/apperrors"
	"github.com/villageedu/api/internal/pkg/dberrors"
)

// testDatabaseEnv names a PostgreSQL URL the repository tests may use.
// Each run migrates into a throwaway schema and drops it afterwards.
const testDatabaseEnv = "VILLAGEEDU_TEST_DATABASE_URL"

func newTestRepositories(t *testing.T) *Repositories {
	t.Helper()
	dsn := os.Getenv(testDatabaseEnv)
	if dsn == "" {
		t.Skipf("%s not set, skipping PostgreSQL repository tests", testDatabaseEnv)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	schema := "test_" + strings.ReplaceAll(uuid.NewString(), "-", "")

	admin, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	_, err = admin.Exec(ctx, "CREATE SCHEMA "+schema)
	require.NoError(t, err)

	cfg, err := pgxpool.ParseConfig(dsn)
	require.NoError(t, err)
	cfg.ConnConfig.RuntimeParams["search_path"] = schema
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	require.NoError(t, err)

	t.Cleanup(func() {
		pool.Close()
		_, _ = admin.Exec(context.Background(), "DROP SCHEMA "+schema+" CASCADE")
		admin.Close()
	})

	require.NoError(t, migrations.NewMigrator(pool, zerolog.Nop()).MigrateFromDirectory(ctx, "../../../migrations"))
	return NewRepositories(pool)
}

func seedStudent(t *testing.T, repos *Repositories, n int, class, gender string) *models.Student {
	t.Helper()
	s := &models.Student{
		FirstName: "Asha", LastName: "Kumari", FathersName: "Ramesh", MothersName: "Sita",
		Email:        fmt.Sprintf("student%d@example.com", n),
		Mobile:       "9876543210",
		PasswordHash: "x",
		DateOfBirth:  "2012-04-01",
		Gender:       gender,
		State:        "बिहार / Bihar",
		City:         "Patna",
		Pincode:      "800001",
		CurrentClass: class,
		School:       "Govt. School",
		Medium:       "हिंदी / Hindi",
	}
	require.NoError(t, repos.StudentRepository.Create(context.Background(), s))
	return s
}

func seedCourse(t *testing.T, repos *Repositories, category models.CourseCategoryID, rating float64) *models.Course {
	t.Helper()
	meta := category.Names()
	c := &models.Course{
		Title:       "Course " + string(category),
		Description: "d",
		Category:    models.CourseCategory{ID: category, Name: meta.Name, NameEn: meta.NameEn},
		Instructor:  "R. Sharma",
		Lessons:     []models.Lesson{{Title: "Intro"}},
		Language:    "हिंदी",
		Class:       "5th Class",
		Rating:      rating,
	}
	require.NoError(t, repos.CourseRepository.Create(context.Background(), c))
	return c
}

func enroll(t *testing.T, repos *Repositories, studentID, courseID string) error {
	t.Helper()
	return repos.EnrollmentRepository.Create(context.Background(), &models.Enrollment{StudentID: studentID, CourseID: courseID})
}

func TestEnrollmentRepository_OncePerPair(t *testing.T) {
	repos := newTestRepositories(t)
	ctx := context.Background()

	student := seedStudent(t, repos, 1, "5th", "female")
	course := seedCourse(t, repos, models.CategoryMath, 4.5)

	require.NoError(t, enroll(t, repos, student.ID, course.ID))
	err := enroll(t, repos, student.ID, course.ID)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyEnrolled)

	exists, err := repos.EnrollmentRepository.Exists(ctx, student.ID, course.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	got, err := repos.CourseRepository.GetByID(ctx, course.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.StudentsEnrolled)

	n, err := repos.AnalyticsRepository.CountCourseEnrollments(ctx, course.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	mine, err := repos.EnrollmentRepository.ListStudentCourses(ctx, student.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, course.ID, mine[0].ID)

	err = enroll(t, repos, student.ID, uuid.NewString())
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
}

func TestEnrollmentRepository_DeletedCourseLeavesHole(t *testing.T) {
	repos := newTestRepositories(t)
	ctx := context.Background()

	student := seedStudent(t, repos, 1, "5th", "female")
	first := seedCourse(t, repos, models.CategoryMath, 4)
	second := seedCourse(t, repos, models.CategoryScience, 4)
	require.NoError(t, enroll(t, repos, student.ID, first.ID))
	require.NoError(t, enroll(t, repos, student.ID, second.ID))

	require.NoError(t, repos.CourseRepository.Delete(ctx, first.ID))

	mine, err := repos.EnrollmentRepository.ListStudentCourses(ctx, student.ID)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Nil(t, mine[0])
	assert.Equal(t, second.ID, mine[1].ID)

	total, err := repos.AnalyticsRepository.CountEnrollments(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
}

func TestAnalyticsRepository_Aggregates(t *testing.T) {
	repos := newTestRepositories(t)
	ctx := context.Background()
	ar := repos.AnalyticsRepository

	var students []*models.Student
	for i := 0; i < 10; i++ {
		gender := "female"
		if i%2 == 1 {
			gender = "male"
		}
		students = append(students, seedStudent(t, repos, i, "5th", gender))
	}
	math := seedCourse(t, repos, models.CategoryMath, 4)
	math2 := seedCourse(t, repos, models.CategoryMath, 5)
	science := seedCourse(t, repos, models.CategoryScience, 3)

	// two students, one of them in two courses
	require.NoError(t, enroll(t, repos, students[0].ID, math.ID))
	require.NoError(t, enroll(t, repos, students[0].ID, science.ID))
	require.NoError(t, enroll(t, repos, students[1].ID, math.ID))

	totalStudents, err := ar.CountStudents(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 10, totalStudents)

	enrolledStudents, err := ar.CountEnrolledStudents(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, enrolledStudents)

	totalEnrollments, err := ar.CountEnrollments(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 3, totalEnrollments)

	totalCourses, err := ar.CountCourses(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 3, totalCourses)

	categories, err := ar.CategoryStats(ctx)
	require.NoError(t, err)
	var courseSum, enrollmentSum int64
	for _, c := range categories {
		courseSum += c.TotalCourses
		enrollmentSum += c.TotalEnrollments
	}
	assert.Equal(t, totalCourses, courseSum)
	assert.Equal(t, totalEnrollments, enrollmentSum)
	require.Len(t, categories, 2)
	assert.Equal(t, models.CategoryMath, categories[0].CategoryID)
	assert.EqualValues(t, 2, categories[0].TotalCourses)
	assert.EqualValues(t, 2, categories[0].TotalEnrollments)
	assert.InDelta(t, 4.5, categories[0].AverageRating, 0.001)

	// only courses with at least one enrollment
	perCourse, err := ar.CourseWiseStats(ctx)
	require.NoError(t, err)
	require.Len(t, perCourse, 2)
	assert.Equal(t, math.ID, perCourse[0].CourseID)
	assert.EqualValues(t, 2, perCourse[0].TotalEnrollments)

	mathOnly, err := ar.CategoryCourseStats(ctx, models.CategoryMath)
	require.NoError(t, err)
	require.Len(t, mathOnly, 2)
	assert.Equal(t, math2.ID, mathOnly[1].CourseID)
	assert.Zero(t, mathOnly[1].TotalEnrollments)

	genders, err := ar.GenderDistribution(ctx)
	require.NoError(t, err)
	require.Len(t, genders, 2)
	assert.EqualValues(t, 5, genders[0].Count)

	trend, err := ar.EnrollmentTrend(ctx, time.Now().AddDate(0, 0, -1), "")
	require.NoError(t, err)
	require.NotEmpty(t, trend)
	var trendSum int64
	for _, d := range trend {
		trendSum += d.Count
	}
	assert.EqualValues(t, 3, trendSum)

	recent, err := ar.RecentEnrollments(ctx, 10, math.ID)
	require.NoError(t, err)
	assert.Len(t, recent, 2)
}

func TestContactRepository_OversizedValueIsReported(t *testing.T) {
	repos := newTestRepositories(t)

	err := repos.ContactRepository.Create(context.Background(), &models.Contact{
		Name: "Ravi", Email: "ravi@example.com",
		Mobile:            strings.Repeat("9", 21),
		Category:          models.ContactStudent,
		Subject:           "Admission",
		Message:           "hello",
		PreferredLanguage: models.LanguageHindi,
	})
	require.Error(t, err)
	assert.True(t, dberrors.IsValueOutOfRange(err))
}

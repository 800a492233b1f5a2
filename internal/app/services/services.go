package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/villageedu/api/internal/app/models"
	"github.com/villageedu/api/internal/app/repositories"
	"github.com/villageedu/api/internal/pkg/auth"
	"github.com/villageedu/api/internal/pkg/helpers"
)

// Storage contracts the services depend on. The repositories package satisfies them
// against PostgreSQL; tests substitute in-memory versions.

type StudentStore interface {
	Create(ctx context.Context, s *models.Student) error
	GetByID(ctx context.Context, id string) (*models.Student, error)
	GetByEmail(ctx context.Context, email string) (*models.Student, error)
}

type AdminStore interface {
	Create(ctx context.Context, a *models.Admin) error
	GetByID(ctx context.Context, id string) (*models.Admin, error)
	GetByEmail(ctx context.Context, email string) (*models.Admin, error)
}

type CourseStore interface {
	Create(ctx context.Context, c *models.Course) error
	GetByID(ctx context.Context, id string) (*models.Course, error)
	List(ctx context.Context, filter models.CourseFilter) ([]*models.Course, error)
	Update(ctx context.Context, id string, patch models.CoursePatch) (*models.Course, error)
	Delete(ctx context.Context, id string) error
}

type EnrollmentStore interface {
	Exists(ctx context.Context, studentID, courseID string) (bool, error)
	Create(ctx context.Context, e *models.Enrollment) error
	ListStudentCourses(ctx context.Context, studentID string) ([]*models.Course, error)
}

type ContactStore interface {
	Create(ctx context.Context, c *models.Contact) error
	GetByID(ctx context.Context, id string) (*models.Contact, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter models.ContactFilter, page helpers.Page) ([]*models.Contact, int64, error)
	ListAll(ctx context.Context, filter models.ContactFilter) ([]*models.Contact, error)
	Search(ctx context.Context, term string, categories []models.ContactCategory, page helpers.Page) ([]*models.Contact, int64, error)
	Count(ctx context.Context, filter models.ContactFilter) (int64, error)
	CategoryCounts(ctx context.Context, filter models.ContactFilter) ([]models.ContactCategoryStat, error)
	LanguageCounts(ctx context.Context, filter models.ContactFilter) ([]models.ContactLanguageStat, error)
	MonthlyCounts(ctx context.Context, from, to time.Time) ([]models.MonthCount, error)
}

type AnalyticsStore interface {
	CountStudents(ctx context.Context) (int64, error)
	CountEnrolledStudents(ctx context.Context) (int64, error)
	CountCourses(ctx context.Context) (int64, error)
	CountEnrollments(ctx context.Context) (int64, error)
	CountCourseEnrollments(ctx context.Context, courseID string) (int64, error)
	CourseWiseStats(ctx context.Context) ([]models.CourseEnrollmentStat, error)
	CategoryCourseStats(ctx context.Context, categoryID models.CourseCategoryID) ([]models.CourseEnrollmentStat, error)
	CategoryStats(ctx context.Context) ([]models.CategoryStat, error)
	StudentClassDistribution(ctx context.Context) ([]models.LabelCount, error)
	GenderDistribution(ctx context.Context) ([]models.LabelCount, error)
	StateDistribution(ctx context.Context) ([]models.LabelCount, error)
	ClassCourseDistribution(ctx context.Context) ([]models.ClassCourseStat, error)
	EnrollmentTrend(ctx context.Context, since time.Time, courseID string) ([]models.DayCount, error)
	TopCourses(ctx context.Context, limit int) ([]*models.Course, error)
	RecentEnrollments(ctx context.Context, limit int, courseID string) ([]models.EnrollmentDetail, error)
}

// JSONCache is the optional read-through cache of analytics payloads
type JSONCache interface {
	GetJSON(ctx context.Context, key string, dest interface{}) error
	SetJSON(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// Services holds all the service instances
type Services struct {
	AuthService       AuthService
	CourseService     CourseService
	EnrollmentService EnrollmentService
	ContactService    ContactService
	AnalyticsService  AnalyticsService
}

// Options carries the non-repository dependencies of the services
type Options struct {
	JWTService   *auth.JWTService
	Cache        JSONCache // nil disables caching
	AnalyticsTTL time.Duration
	Logger       zerolog.Logger
}

// NewServices wires every service against the given repositories
func NewServices(repos *repositories.Repositories, opts Options) *Services {
	students, courses, enrollments := withAnalyticsInvalidation(opts.Cache, opts.Logger,
		repos.StudentRepository, repos.CourseRepository, repos.EnrollmentRepository)

	return &Services{
		AuthService:       NewAuthService(students, repos.AdminRepository, opts.JWTService, opts.Logger),
		CourseService:     NewCourseService(courses),
		EnrollmentService: NewEnrollmentService(enrollments, courses, opts.Logger),
		ContactService:    NewContactService(repos.ContactRepository),
		AnalyticsService:  NewAnalyticsService(repos.AnalyticsRepository, repos.CourseRepository, opts.Cache, opts.AnalyticsTTL, opts.Logger),
	}
}

package repositories

import (
	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	StudentRepository    *StudentRepository
	AdminRepository      *AdminRepository
	CourseRepository     *CourseRepository
	EnrollmentRepository *EnrollmentRepository
	ContactRepository    *ContactRepository
	AnalyticsRepository  *AnalyticsRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		StudentRepository:    NewStudentRepository(db),
		AdminRepository:      NewAdminRepository(db),
		CourseRepository:     NewCourseRepository(db),
		EnrollmentRepository: NewEnrollmentRepository(db),
		ContactRepository:    NewContactRepository(db),
		AnalyticsRepository:  NewAnalyticsRepository(db),
	}
}

func statementBuilder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// isUUID guards id lookups so malformed ids read as "not found" instead of a cast error.
func isUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

package dto

import (
	"time"

	"github.com/villageedu/api/internal/app/models"
)

// AnalyticsOverview holds the platform-wide headline numbers
type AnalyticsOverview struct {
	TotalStudents        int64   `json:"totalStudents"`
	EnrolledStudents     int64   `json:"enrolledStudents"`
	NotEnrolledStudents  int64   `json:"notEnrolledStudents"`
	TotalCourses         int64   `json:"totalCourses"`
	EnrollmentPercentage float64 `json:"enrollmentPercentage" example:"20.00"`
	TotalEnrollments     int64   `json:"totalEnrollments"`
}

// AdminAnalytics is the full analytics payload of the admin dashboard
type AdminAnalytics struct {
	Overview          AnalyticsOverview             `json:"overview"`
	CourseWiseStats   []models.CourseEnrollmentStat `json:"courseWiseStats"`
	CategoryStats     []models.CategoryStat         `json:"categoryStats"`
	ClassStats        []models.LabelCount           `json:"classStats"`
	ClassCourseStats  []models.ClassCourseStat      `json:"classCourseStats"`
	GenderStats       []models.LabelCount           `json:"genderStats"`
	StateStats        []models.LabelCount           `json:"stateStats"`
	RecentEnrollments []models.DayCount             `json:"recentEnrollments"`
	TopCourses        []*models.Course              `json:"topCourses"`
	GeneratedAt       time.Time                     `json:"generatedAt"`
}

// DashboardSummary is the lightweight admin dashboard payload
type DashboardSummary struct {
	TotalStudents     int64                     `json:"totalStudents"`
	TotalCourses      int64                     `json:"totalCourses"`
	TotalEnrollments  int64                     `json:"totalEnrollments"`
	EnrolledStudents  int64                     `json:"enrolledStudents"`
	EnrollmentRate    float64                   `json:"enrollmentRate"`
	RecentEnrollments []models.EnrollmentDetail `json:"recentEnrollments"`
	GeneratedAt       time.Time                 `json:"generatedAt"`
}

// CourseAnalytics describes enrollment activity of a single course
type CourseAnalytics struct {
	Course           *models.Course            `json:"course"`
	TotalEnrollments int64                     `json:"totalEnrollments"`
	DailyTrend       []models.DayCount         `json:"dailyTrend"`
	RecentStudents   []models.EnrollmentDetail `json:"recentStudents"`
}

// CategoryAnalytics describes the courses of one category
type CategoryAnalytics struct {
	Category         models.CourseCategory         `json:"category"`
	TotalCourses     int64                         `json:"totalCourses"`
	TotalEnrollments int64                         `json:"totalEnrollments"`
	AverageRating    float64                       `json:"averageRating"`
	AveragePrice     float64                       `json:"averagePrice"`
	Courses          []models.CourseEnrollmentStat `json:"courses"`
}

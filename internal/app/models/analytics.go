package models

import "time"

// Result rows of the analytics aggregation queries.

type CourseEnrollmentStat struct {
	CourseID         string           `json:"courseId"`
	CourseName       string           `json:"courseName"`
	CourseCategory   CourseCategoryID `json:"courseCategory"`
	CourseClass      string           `json:"courseClass"`
	Instructor       string           `json:"instructor"`
	Price            float64          `json:"price"`
	Rating           float64          `json:"rating"`
	TotalEnrollments int64            `json:"totalEnrollments"`
}

type CategoryStat struct {
	CategoryID       CourseCategoryID `json:"categoryId"`
	CategoryName     string           `json:"categoryName"`
	TotalCourses     int64            `json:"totalCourses"`
	TotalEnrollments int64            `json:"totalEnrollments"`
	AverageRating    float64          `json:"averageRating"`
	AveragePrice     float64          `json:"averagePrice"`
}

// LabelCount is a generic (label, count) bucket used for class, gender and state groupings.
type LabelCount struct {
	Label string `json:"label"`
	Count int64  `json:"count"`
}

type ClassCourseStat struct {
	Class            string `json:"class"`
	TotalCourses     int64  `json:"totalCourses"`
	TotalEnrollments int64  `json:"totalEnrollments"`
}

// DayCount is one calendar-day bucket, Date formatted as YYYY-MM-DD.
type DayCount struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

type ContactCategoryStat struct {
	Category         ContactCategory `json:"category"`
	Label            string          `json:"label"`
	Count            int64           `json:"count"`
	LatestSubmission time.Time       `json:"latestSubmission"`
}

type ContactLanguageStat struct {
	Language ContactLanguage `json:"language"`
	Count    int64           `json:"count"`
}

// MonthCount is one month bucket; Month is 1-12.
type MonthCount struct {
	Year  int   `json:"year"`
	Month int   `json:"month"`
	Count int64 `json:"count"`
}

package models

import "time"

// CourseCategory is the composite category stored on a course.
type CourseCategory struct {
	ID     CourseCategoryID `json:"id" example:"math"`
	Name   string           `json:"name" example:"गणित"`
	NameEn string           `json:"nameEn" example:"Mathematics"`
}

// Lesson is one entry of a course's ordered lesson list.
type Lesson struct {
	Title     string   `json:"title" example:"Fractions"`
	VideoURL  string   `json:"videoUrl,omitempty"`
	Duration  string   `json:"duration,omitempty" example:"12:30"`
	Resources []string `json:"resources"`
}

// Course represents a catalog entry managed by admins.
type Course struct {
	ID               string         `json:"id" db:"id"`
	Title            string         `json:"title" db:"title"`
	Description      string         `json:"description" db:"description"`
	Category         CourseCategory `json:"category"`
	Instructor       string         `json:"instructor" db:"instructor"`
	Lessons          []Lesson       `json:"lessons" db:"lessons"`
	Price            float64        `json:"price" db:"price"`
	Language         string         `json:"language" db:"language"`
	Class            string         `json:"class" db:"class" example:"5th Class"`
	Rating           float64        `json:"rating" db:"rating"`
	StudentsEnrolled int            `json:"studentsEnrolled" db:"students_enrolled"` // Kept in step with enrollments
	CreatedAt        time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt        time.Time      `json:"updatedAt" db:"updated_at"`
}

// CourseSummary is the compact course shape embedded in enrollment listings.
type CourseSummary struct {
	ID       string           `json:"id"`
	Title    string           `json:"title"`
	Category CourseCategoryID `json:"category"`
}

// CourseFilter narrows a course listing. Empty fields mean no filter.
type CourseFilter struct {
	CategoryID CourseCategoryID
	Class      string
}

// CoursePatch carries the fields of a partial course update. Nil means unchanged.
type CoursePatch struct {
	Title       *string
	Description *string
	Category    *CourseCategory
	Instructor  *string
	Lessons     *[]Lesson
	Price       *float64
	Language    *string
	Class       *string
	Rating      *float64
}

// IsEmpty reports whether the patch changes nothing.
func (p CoursePatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Category == nil && p.Instructor == nil &&
		p.Lessons == nil && p.Price == nil && p.Language == nil && p.Class == nil && p.Rating == nil
}

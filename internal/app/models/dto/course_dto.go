package dto

import "github.com/villageedu/api/internal/app/models"

// CourseCategoryRequest is the category object of a course payload
type CourseCategoryRequest struct {
	ID     models.CourseCategoryID `json:"id" binding:"required,course_category" example:"math"`
	Name   string                  `json:"name" binding:"max=100" example:"गणित"`
	NameEn string                  `json:"nameEn" binding:"max=100" example:"Mathematics"`
}

// LessonRequest is one lesson of a course payload
type LessonRequest struct {
	Title     string   `json:"title" binding:"required" example:"Fractions"`
	VideoURL  string   `json:"videoUrl"`
	Duration  string   `json:"duration" example:"12:30"`
	Resources []string `json:"resources"`
}

// CreateCourseRequest represents the course creation payload
type CreateCourseRequest struct {
	Title       string                `json:"title" binding:"required,max=255" example:"Basic Maths"`
	Description string                `json:"description" binding:"required"`
	Category    CourseCategoryRequest `json:"category"`
	Instructor  string                `json:"instructor" binding:"required,max=150" example:"R. Sharma"`
	Lessons     []LessonRequest       `json:"lessons" binding:"dive"`
	Price       float64               `json:"price" binding:"gte=0,lte=99999999"`
	Language    string                `json:"language" binding:"max=50" example:"हिंदी"`
	Class       string                `json:"class" binding:"required,course_class" example:"5th Class"`
	Rating      float64               `json:"rating" binding:"gte=0,lte=5"`
}

// UpdateCourseRequest carries a partial course update; omitted fields stay unchanged
type UpdateCourseRequest struct {
	Title       *string                `json:"title" binding:"omitempty,max=255"`
	Description *string                `json:"description"`
	Category    *CourseCategoryRequest `json:"category"`
	Instructor  *string                `json:"instructor" binding:"omitempty,max=150"`
	Lessons     *[]LessonRequest       `json:"lessons"`
	Price       *float64               `json:"price" binding:"omitempty,gte=0,lte=99999999"`
	Language    *string                `json:"language" binding:"omitempty,max=50"`
	Class       *string                `json:"class" binding:"omitempty,course_class"`
	Rating      *float64               `json:"rating" binding:"omitempty,gte=0,lte=5"`
}

// ToModel converts the creation payload into a course
func (r CreateCourseRequest) ToModel() *models.Course {
	return &models.Course{
		Title:       r.Title,
		Description: r.Description,
		Category:    r.Category.toModel(),
		Instructor:  r.Instructor,
		Lessons:     toLessons(r.Lessons),
		Price:       r.Price,
		Language:    r.Language,
		Class:       r.Class,
		Rating:      r.Rating,
	}
}

// ToPatch converts the update payload into a course patch
func (r UpdateCourseRequest) ToPatch() models.CoursePatch {
	patch := models.CoursePatch{
		Title:       r.Title,
		Description: r.Description,
		Instructor:  r.Instructor,
		Price:       r.Price,
		Language:    r.Language,
		Class:       r.Class,
		Rating:      r.Rating,
	}
	if r.Category != nil {
		category := r.Category.toModel()
		patch.Category = &category
	}
	if r.Lessons != nil {
		lessons := toLessons(*r.Lessons)
		patch.Lessons = &lessons
	}
	return patch
}

func (r CourseCategoryRequest) toModel() models.CourseCategory {
	return models.CourseCategory{ID: r.ID, Name: r.Name, NameEn: r.NameEn}
}

func toLessons(in []LessonRequest) []models.Lesson {
	lessons := make([]models.Lesson, 0, len(in))
	for _, l := range in {
		resources := l.Resources
		if resources == nil {
			resources = []string{}
		}
		lessons = append(lessons, models.Lesson{
			Title:     l.Title,
			VideoURL:  l.VideoURL,
			Duration:  l.Duration,
			Resources: resources,
		})
	}
	return lessons
}

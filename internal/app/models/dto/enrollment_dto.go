package dto

// EnrollRequest is the body of an enroll call
type EnrollRequest struct {
	CourseID string `json:"courseId" binding:"required,uuid" example:"0b6c3f55-2a6e-4b8e-9d7c-5d2f1e9f4a10"`
}

package models

import "time"

// Enrollment links one student to one course. The pair is unique.
type Enrollment struct {
	ID         string    `json:"id" db:"id"`
	StudentID  string    `json:"studentId" db:"student_id"`
	CourseID   string    `json:"courseId" db:"course_id"`
	EnrolledAt time.Time `json:"enrolledAt" db:"enrolled_at"`
}

// EnrollmentDetail is an enrollment with student and course summaries populated.
// Either summary is nil when the referenced row no longer exists.
type EnrollmentDetail struct {
	ID         string          `json:"id"`
	EnrolledAt time.Time       `json:"enrolledAt"`
	Student    *StudentSummary `json:"student"`
	Course     *CourseSummary  `json:"course"`
}

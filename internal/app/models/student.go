package models

import "time"

// Student defines the student model based on the 'students' table
type Student struct {
	ID            string    `json:"id" db:"id" example:"7f1c0a52-5d0e-4c1a-9a52-1f4f3f0c2b11"`
	FirstName     string    `json:"firstName" db:"first_name" example:"Asha"`
	LastName      string    `json:"lastName" db:"last_name" example:"Kumari"`
	FathersName   string    `json:"fathersName" db:"fathers_name"`
	MothersName   string    `json:"mothersName" db:"mothers_name"`
	Email         string    `json:"email" db:"email" example:"asha@example.com"`
	Mobile        string    `json:"mobile" db:"mobile" example:"9876543210"`
	PasswordHash  string    `json:"-" db:"password_hash"` // Never serialized
	DateOfBirth   string    `json:"dateOfBirth" db:"date_of_birth" example:"2012-04-01"`
	Gender        string    `json:"gender" db:"gender" example:"female"`
	State         string    `json:"state" db:"state" example:"बिहार / Bihar"`
	City          string    `json:"city" db:"city" example:"Patna"`
	Pincode       string    `json:"pincode" db:"pincode" example:"800001"`
	CurrentClass  string    `json:"currentClass" db:"current_class" example:"5th"`
	School        string    `json:"school" db:"school"`
	Medium        string    `json:"medium" db:"medium" example:"हिंदी / Hindi"`
	TermsAccepted bool      `json:"termsAccepted" db:"terms_accepted"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time `json:"updatedAt" db:"updated_at"`
}

// StudentSummary is the compact student shape embedded in enrollment listings
type StudentSummary struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

package models

import "time"

// Admin is a privileged account that manages the catalog and reads analytics
type Admin struct {
	ID           string    `json:"id" db:"id"`
	FullName     string    `json:"fullName" db:"full_name" example:"Site Admin"`
	Email        string    `json:"email" db:"email" example:"admin@villageedu.in"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         AdminRole `json:"role" db:"role" example:"admin"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

package models

import (
	"strings"
	"time"
)

// ContactCategory is the canonical key of a contact submitter type
type ContactCategory string

const (
	ContactStudent     ContactCategory = "Student"
	ContactParent      ContactCategory = "Parent"
	ContactTeacher     ContactCategory = "Teacher"
	ContactSchoolAdmin ContactCategory = "SchoolAdmin"
	ContactOther       ContactCategory = "Other"
)

// AllContactCategories lists the contact categories in form order
var AllContactCategories = []ContactCategory{
	ContactStudent, ContactParent, ContactTeacher, ContactSchoolAdmin, ContactOther,
}

var contactCategoryLabels = map[ContactCategory]string{
	ContactStudent:     "छात्र / Student",
	ContactParent:      "अभिभावक / Parent",
	ContactTeacher:     "शिक्षक / Teacher",
	ContactSchoolAdmin: "स्कूल प्रशासन / School Admin",
	ContactOther:       "अन्य / Other",
}

// Label returns the bilingual label shown on the contact form
func (c ContactCategory) Label() string {
	return contactCategoryLabels[c]
}

// IsValid reports whether c is a known category key
func (c ContactCategory) IsValid() bool {
	_, ok := contactCategoryLabels[c]
	return ok
}

// ParseContactCategory accepts a key ("SchoolAdmin"), its English part ("School Admin")
// or the full bilingual label, case-insensitively.
func ParseContactCategory(s string) (ContactCategory, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	for key, label := range contactCategoryLabels {
		english := label[strings.Index(label, "/")+1:]
		if strings.EqualFold(s, string(key)) ||
			strings.EqualFold(s, label) ||
			strings.EqualFold(s, strings.TrimSpace(english)) {
			return key, true
		}
	}
	return "", false
}

// ContactLanguage is the reply language a submitter prefers
type ContactLanguage string

const (
	LanguageHindi   ContactLanguage = "hindi"
	LanguageEnglish ContactLanguage = "english"
)

// IsValid reports whether l is hindi or english
func (l ContactLanguage) IsValid() bool {
	return l == LanguageHindi || l == LanguageEnglish
}

// Contact is an inbound contact-form submission
type Contact struct {
	ID                string          `json:"id" db:"id"`
	Name              string          `json:"name" db:"name"`
	Email             string          `json:"email" db:"email"`
	Mobile            string          `json:"mobile" db:"mobile"`
	Category          ContactCategory `json:"category" db:"category" example:"Student"`
	CategoryLabel     string          `json:"categoryLabel" example:"छात्र / Student"`
	Subject           string          `json:"subject" db:"subject"`
	Message           string          `json:"message" db:"message"`
	PreferredLanguage ContactLanguage `json:"preferredLanguage" db:"preferred_language" example:"hindi"`
	CreatedAt         time.Time       `json:"createdAt" db:"created_at"`
}

// ContactFilter narrows a contact listing. Zero values mean no filter.
type ContactFilter struct {
	Category          ContactCategory
	PreferredLanguage ContactLanguage
	Since             *time.Time
}

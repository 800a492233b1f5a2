package models

// PrincipalType tells which identity table a token subject points into
type PrincipalType string

const (
	PrincipalStudent PrincipalType = "student"
	PrincipalAdmin   PrincipalType = "admin"
)

// AdminRole defines the privilege level of an admin account
type AdminRole string

const (
	RoleAdmin      AdminRole = "admin"
	RoleSuperAdmin AdminRole = "superadmin"
)

// IsValid reports whether the role grants admin access
func (r AdminRole) IsValid() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

// CourseCategoryID is the fixed subject-area tag of a course
type CourseCategoryID string

const (
	CategoryHindi    CourseCategoryID = "hindi"
	CategoryEnglish  CourseCategoryID = "english"
	CategoryMath     CourseCategoryID = "math"
	CategoryScience  CourseCategoryID = "science"
	CategoryComputer CourseCategoryID = "computer"
)

// CategoryNames holds the localized and English display names of a course category
type CategoryNames struct {
	Name   string
	NameEn string
}

var courseCategories = map[CourseCategoryID]CategoryNames{
	CategoryHindi:    {Name: "हिंदी", NameEn: "Hindi"},
	CategoryEnglish:  {Name: "अंग्रेज़ी", NameEn: "English"},
	CategoryMath:     {Name: "गणित", NameEn: "Mathematics"},
	CategoryScience:  {Name: "विज्ञान", NameEn: "Science"},
	CategoryComputer: {Name: "कंप्यूटर", NameEn: "Computer"},
}

// AllCourseCategories lists category ids in display order
var AllCourseCategories = []CourseCategoryID{
	CategoryHindi, CategoryEnglish, CategoryMath, CategoryScience, CategoryComputer,
}

// IsValid reports whether the id belongs to the fixed category set
func (c CourseCategoryID) IsValid() bool {
	_, ok := courseCategories[c]
	return ok
}

// Names returns the default display names for the category
func (c CourseCategoryID) Names() CategoryNames {
	return courseCategories[c]
}

// CourseClasses is the fixed list of grade labels a course can target
var CourseClasses = []string{
	"1st Class", "2nd Class", "3rd Class", "4th Class", "5th Class", "6th Class",
	"7th Class", "8th Class", "9th Class", "10th Class", "11th Class", "12th Class",
}

// IsValidCourseClass reports whether label is one of CourseClasses
func IsValidCourseClass(label string) bool {
	for _, c := range CourseClasses {
		if c == label {
			return true
		}
	}
	return false
}

// DefaultCourseLanguage is used when a course is created without a language
const DefaultCourseLanguage = "हिंदी"

package dto

import (
	"time"

	"github.com/villageedu/api/internal/app/models"
)

// SubmitContactRequest is the public contact form payload
type SubmitContactRequest struct {
	Name              string                 `json:"name" binding:"required,max=150"`
	Email             string                 `json:"email" binding:"required,max=255"`
	Mobile            string                 `json:"mobile" binding:"required,max=20"`
	Category          string                 `json:"category" binding:"required,max=100" example:"छात्र / Student"`
	Subject           string                 `json:"subject" binding:"required,max=255"`
	Message           string                 `json:"message" binding:"required"`
	PreferredLanguage models.ContactLanguage `json:"preferredLanguage" binding:"omitempty,contact_language" example:"hindi"`
}

// LanguageDistribution counts contacts per preferred language
type LanguageDistribution struct {
	Hindi   int64 `json:"hindi"`
	English int64 `json:"english"`
}

// CategoryReportStatistics summarizes one contact category
type CategoryReportStatistics struct {
	TotalContacts        int64                `json:"totalContacts"`
	LanguageDistribution LanguageDistribution `json:"languageDistribution"`
}

// CategoryReport is the detailed per-category contact report
type CategoryReport struct {
	Category   models.ContactCategory   `json:"category"`
	Label      string                   `json:"label"`
	Contacts   []*models.Contact        `json:"contacts"`
	Statistics CategoryReportStatistics `json:"statistics"`
	Pagination PaginationInfo           `json:"pagination"`
}

// MonthlyContactTrend is one month of the current-year contact trend
type MonthlyContactTrend struct {
	Month       string `json:"month" example:"जनवरी"`
	MonthEn     string `json:"monthEn" example:"January"`
	MonthNumber int    `json:"monthNumber" example:"1"`
	Year        int    `json:"year" example:"2025"`
	Count       int64  `json:"count"`
}

// ContactTotals is the totals block of the contact analysis
type ContactTotals struct {
	TotalContacts   int64  `json:"totalContacts"`
	TotalCategories int    `json:"totalCategories"`
	Timeframe       string `json:"timeframe" example:"all"`
}

// ContactAnalysis is the category, language and monthly breakdown of contacts
type ContactAnalysis struct {
	CategoryAnalysis []models.ContactCategoryStat `json:"categoryAnalysis"`
	LanguageAnalysis []models.ContactLanguageStat `json:"languageAnalysis"`
	MonthlyTrend     []MonthlyContactTrend        `json:"monthlyTrend"`
	TotalStats       ContactTotals                `json:"totalStats"`
}

// ContactCategoryShare is a category count with its share of all contacts
type ContactCategoryShare struct {
	Category   models.ContactCategory `json:"category"`
	Label      string                 `json:"label"`
	Count      int64                  `json:"count"`
	Percentage float64                `json:"percentage"`
}

// ContactOverview counts contacts over fixed recent windows
type ContactOverview struct {
	TotalContacts   int64 `json:"totalContacts"`
	TodaysContacts  int64 `json:"todaysContacts"`
	WeeklyContacts  int64 `json:"weeklyContacts"`
	MonthlyContacts int64 `json:"monthlyContacts"`
}

// ContactDashboard is the contact dashboard payload
type ContactDashboard struct {
	Overview             ContactOverview              `json:"overview"`
	CategoryDistribution []ContactCategoryShare       `json:"categoryDistribution"`
	LanguageDistribution []models.ContactLanguageStat `json:"languageDistribution"`
	RecentContacts       []*models.Contact            `json:"recentContacts"`
	GeneratedAt          time.Time                    `json:"generatedAt"`
}

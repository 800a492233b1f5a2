package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/villageedu/api/internal/app/models"
	"github.com/villageedu/api/internal/app/models/dto"
	"github.com/villageedu/api/internal/pkg/apperrors"
	"github.com/villageedu/api/internal/pkg/helpers"
	"github.com/villageedu/api/internal/pkg/report"
	"github.com/villageedu/api/internal/pkg/validation"
)

// ContactService handles contact-form intake, admin browsing and contact reports
type ContactService interface {
	Submit(ctx context.Context, req dto.SubmitContactRequest) (*models.Contact, error)
	List(ctx context.Context, category, language string, page helpers.Page) ([]*models.Contact, dto.PaginationInfo, error)
	Search(ctx context.Context, query string, page helpers.Page) ([]*models.Contact, dto.PaginationInfo, error)
	Get(ctx context.Context, id string) (*models.Contact, error)
	Delete(ctx context.Context, id string) error
	CategoryReport(ctx context.Context, category string, page helpers.Page) (*dto.CategoryReport, error)
	ExportCategoryReport(ctx context.Context, category string) (data []byte, filename string, err error)
	Analysis(ctx context.Context, timeframe string) (*dto.ContactAnalysis, error)
	Dashboard(ctx context.Context) (*dto.ContactDashboard, error)
}

type contactServiceImpl struct {
	contacts ContactStore
	now      func() time.Time
}

// NewContactService creates a new contact service
func NewContactService(contacts ContactStore) ContactService {
	return &contactServiceImpl{contacts: contacts, now: helpers.UTCNow}
}

// Submit validates and records a contact-form submission
func (s *contactServiceImpl) Submit(ctx context.Context, req dto.SubmitContactRequest) (*models.Contact, error) {
	contact := &models.Contact{
		Name:              strings.TrimSpace(req.Name),
		Email:             normalizeEmail(req.Email),
		Mobile:            strings.TrimSpace(req.Mobile),
		Subject:           strings.TrimSpace(req.Subject),
		Message:           strings.TrimSpace(req.Message),
		PreferredLanguage: req.PreferredLanguage,
	}

	for field, v := range map[string]string{
		"name": contact.Name, "mobile": contact.Mobile, "subject": contact.Subject, "message": contact.Message,
	} {
		if v == "" {
			return nil, apperrors.NewValidationError(fmt.Sprintf("Contact %s is required", field))
		}
	}
	if !validation.IsEmail(contact.Email) {
		return nil, apperrors.NewValidationError("Please provide a valid email address")
	}

	category, ok := models.ParseContactCategory(req.Category)
	if !ok {
		return nil, apperrors.NewValidationError("Invalid contact category")
	}
	contact.Category = category

	if contact.PreferredLanguage == "" {
		contact.PreferredLanguage = models.LanguageHindi
	}
	if !contact.PreferredLanguage.IsValid() {
		return nil, apperrors.NewValidationError("Preferred language must be hindi or english")
	}

	if err := s.contacts.Create(ctx, contact); err != nil {
		return nil, fmt.Errorf("failed to save contact: %w", err)
	}
	return contact, nil
}

// List returns one page of contacts, optionally filtered by category and language
func (s *contactServiceImpl) List(ctx context.Context, category, language string, page helpers.Page) ([]*models.Contact, dto.PaginationInfo, error) {
	var filter models.ContactFilter
	if category != "" {
		c, err := parseCategory(category)
		if err != nil {
			return nil, dto.PaginationInfo{}, err
		}
		filter.Category = c
	}
	if language != "" {
		filter.PreferredLanguage = models.ContactLanguage(strings.ToLower(language))
		if !filter.PreferredLanguage.IsValid() {
			return nil, dto.PaginationInfo{}, apperrors.NewValidationError("Preferred language must be hindi or english")
		}
	}

	page = helpers.NewPage(page.Number, page.Limit)
	contacts, total, err := s.contacts.List(ctx, filter, page)
	if err != nil {
		return nil, dto.PaginationInfo{}, fmt.Errorf("failed to list contacts: %w", err)
	}
	return contacts, helpers.NewPaginationInfo(total, page), nil
}

// Search matches query against contact text fields and category labels
func (s *contactServiceImpl) Search(ctx context.Context, query string, page helpers.Page) ([]*models.Contact, dto.PaginationInfo, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, dto.PaginationInfo{}, apperrors.NewValidationError("Search query is required")
	}

	page = helpers.NewPage(page.Number, page.Limit)
	contacts, total, err := s.contacts.Search(ctx, query, MatchingContactCategories(query), page)
	if err != nil {
		return nil, dto.PaginationInfo{}, fmt.Errorf("failed to search contacts: %w", err)
	}
	return contacts, helpers.NewPaginationInfo(total, page), nil
}

// MatchingContactCategories returns the categories whose key or label contains query, case-insensitively
func MatchingContactCategories(query string) []models.ContactCategory {
	q := strings.ToLower(query)
	var out []models.ContactCategory
	for _, c := range models.AllContactCategories {
		if strings.Contains(strings.ToLower(string(c)), q) || strings.Contains(strings.ToLower(c.Label()), q) {
			out = append(out, c)
		}
	}
	return out
}

// Get returns one contact
func (s *contactServiceImpl) Get(ctx context.Context, id string) (*models.Contact, error) {
	contact, err := s.contacts.GetByID(ctx, id)
	if err != nil {
		return nil, contactLookupError(err)
	}
	return contact, nil
}

// Delete removes one contact
func (s *contactServiceImpl) Delete(ctx context.Context, id string) error {
	if err := s.contacts.Delete(ctx, id); err != nil {
		return contactLookupError(err)
	}
	return nil
}

// CategoryReport returns a page of one category's contacts with its language split
func (s *contactServiceImpl) CategoryReport(ctx context.Context, category string, page helpers.Page) (*dto.CategoryReport, error) {
	c, err := parseCategory(category)
	if err != nil {
		return nil, err
	}

	page = helpers.NewPage(page.Number, page.Limit)
	filter := models.ContactFilter{Category: c}
	contacts, total, err := s.contacts.List(ctx, filter, page)
	if err != nil {
		return nil, fmt.Errorf("failed to list category contacts: %w", err)
	}
	languages, err := s.languageDistribution(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &dto.CategoryReport{
		Category: c,
		Label:    c.Label(),
		Contacts: contacts,
		Statistics: dto.CategoryReportStatistics{
			TotalContacts:        total,
			LanguageDistribution: languages,
		},
		Pagination: helpers.NewPaginationInfo(total, page),
	}, nil
}

// ExportCategoryReport renders every contact of a category as an XLSX workbook
func (s *contactServiceImpl) ExportCategoryReport(ctx context.Context, category string) ([]byte, string, error) {
	c, err := parseCategory(category)
	if err != nil {
		return nil, "", err
	}

	filter := models.ContactFilter{Category: c}
	contacts, err := s.contacts.ListAll(ctx, filter)
	if err != nil {
		return nil, "", fmt.Errorf("failed to list category contacts: %w", err)
	}
	languages, err := s.languageDistribution(ctx, filter)
	if err != nil {
		return nil, "", err
	}

	now := s.now()
	data, err := report.BuildContactWorkbook(report.ContactSheet{
		Category:    c,
		Contacts:    contacts,
		Total:       int64(len(contacts)),
		Hindi:       languages.Hindi,
		English:     languages.English,
		GeneratedAt: now,
	})
	if err != nil {
		return nil, "", fmt.Errorf("failed to build contact workbook: %w", err)
	}

	filename := fmt.Sprintf("contacts-%s-%s.xlsx", strings.ToLower(string(c)), now.Format("20060102"))
	return data, filename, nil
}

func (s *contactServiceImpl) languageDistribution(ctx context.Context, filter models.ContactFilter) (dto.LanguageDistribution, error) {
	stats, err := s.contacts.LanguageCounts(ctx, filter)
	if err != nil {
		return dto.LanguageDistribution{}, fmt.Errorf("failed to count contact languages: %w", err)
	}
	var dist dto.LanguageDistribution
	for _, st := range stats {
		switch st.Language {
		case models.LanguageHindi:
			dist.Hindi = st.Count
		case models.LanguageEnglish:
			dist.English = st.Count
		}
	}
	return dist, nil
}

func parseCategory(s string) (models.ContactCategory, error) {
	c, ok := models.ParseContactCategory(s)
	if !ok {
		return "", apperrors.NewValidationError("Invalid contact category")
	}
	return c, nil
}

func contactLookupError(err error) error {
	if errors.Is(err, apperrors.ErrContactNotFound) {
		return apperrors.NewCustomError(apperrors.ErrContactNotFound, "Contact not found")
	}
	return fmt.Errorf("contact store error: %w", err)
}

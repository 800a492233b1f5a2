package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/villageedu/api/internal/app/models"
	"github.com/villageedu/api/internal/app/models/dto"
	"github.com/villageedu/api/internal/pkg/apperrors"
	"github.com/villageedu/api/internal/pkg/helpers"
)

// Analysis timeframes
const (
	TimeframeAll   = "all"
	TimeframeToday = "today"
	TimeframeWeek  = "week"
	TimeframeMonth = "month"
	TimeframeYear  = "year"
)

const dashboardRecentContacts = 5

var hindiMonths = [12]string{
	"जनवरी", "फरवरी", "मार्च", "अप्रैल", "मई", "जून",
	"जुलाई", "अगस्त", "सितम्बर", "अक्टूबर", "नवम्बर", "दिसम्बर",
}

// TimeframeStart returns the lower bound of a timeframe relative to now; nil means unbounded.
// "week", "month" and "year" are rolling windows, "today" starts at midnight UTC.
func TimeframeStart(timeframe string, now time.Time) (*time.Time, error) {
	now = now.UTC()
	var start time.Time
	switch timeframe {
	case TimeframeAll:
		return nil, nil
	case TimeframeToday:
		start = helpers.StartOfDay(now)
	case TimeframeWeek:
		start = now.AddDate(0, 0, -7)
	case TimeframeMonth:
		start = now.AddDate(0, -1, 0)
	case TimeframeYear:
		start = now.AddDate(-1, 0, 0)
	default:
		return nil, apperrors.NewValidationError("Timeframe must be one of all, today, week, month, year")
	}
	return &start, nil
}

// Analysis breaks contacts down by category and language within a timeframe,
// plus a monthly trend of the current year
func (s *contactServiceImpl) Analysis(ctx context.Context, timeframe string) (*dto.ContactAnalysis, error) {
	if timeframe == "" {
		timeframe = TimeframeAll
	}
	now := s.now().UTC()
	since, err := TimeframeStart(timeframe, now)
	if err != nil {
		return nil, err
	}
	filter := models.ContactFilter{Since: since}

	categories, err := s.contacts.CategoryCounts(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count contact categories: %w", err)
	}
	languages, err := s.contacts.LanguageCounts(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count contact languages: %w", err)
	}
	months, err := s.contacts.MonthlyCounts(ctx, helpers.StartOfYear(now), now.Add(time.Second))
	if err != nil {
		return nil, fmt.Errorf("failed to count monthly contacts: %w", err)
	}
	total, err := s.contacts.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count contacts: %w", err)
	}

	return &dto.ContactAnalysis{
		CategoryAnalysis: categories,
		LanguageAnalysis: languages,
		MonthlyTrend:     MonthlyTrend(months),
		TotalStats: dto.ContactTotals{
			TotalContacts:   total,
			TotalCategories: len(categories),
			Timeframe:       timeframe,
		},
	}, nil
}

// MonthlyTrend labels month buckets with Hindi and English names, ordered by year then month
func MonthlyTrend(months []models.MonthCount) []dto.MonthlyContactTrend {
	trend := make([]dto.MonthlyContactTrend, 0, len(months))
	for _, m := range months {
		if m.Month < 1 || m.Month > 12 {
			continue
		}
		trend = append(trend, dto.MonthlyContactTrend{
			Month:       hindiMonths[m.Month-1],
			MonthEn:     time.Month(m.Month).String(),
			MonthNumber: m.Month,
			Year:        m.Year,
			Count:       m.Count,
		})
	}
	sort.SliceStable(trend, func(i, j int) bool {
		if trend[i].Year != trend[j].Year {
			return trend[i].Year < trend[j].Year
		}
		return trend[i].MonthNumber < trend[j].MonthNumber
	})
	return trend
}

// Dashboard returns recent-window counts, category shares, language split and the newest contacts
func (s *contactServiceImpl) Dashboard(ctx context.Context) (*dto.ContactDashboard, error) {
	now := s.now().UTC()
	today := helpers.StartOfDay(now)
	lastWeek := today.AddDate(0, 0, -7)
	lastMonth := today.AddDate(0, -1, 0)

	var overview dto.ContactOverview
	counts := []struct {
		dst   *int64
		since *time.Time
	}{
		{&overview.TotalContacts, nil},
		{&overview.TodaysContacts, &today},
		{&overview.WeeklyContacts, &lastWeek},
		{&overview.MonthlyContacts, &lastMonth},
	}
	for _, c := range counts {
		n, err := s.contacts.Count(ctx, models.ContactFilter{Since: c.since})
		if err != nil {
			return nil, fmt.Errorf("failed to count contacts: %w", err)
		}
		*c.dst = n
	}

	categories, err := s.contacts.CategoryCounts(ctx, models.ContactFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to count contact categories: %w", err)
	}
	languages, err := s.contacts.LanguageCounts(ctx, models.ContactFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to count contact languages: %w", err)
	}
	recent, _, err := s.contacts.List(ctx, models.ContactFilter{}, helpers.NewPage(1, dashboardRecentContacts))
	if err != nil {
		return nil, fmt.Errorf("failed to list recent contacts: %w", err)
	}

	shares := make([]dto.ContactCategoryShare, 0, len(categories))
	for _, c := range categories {
		shares = append(shares, dto.ContactCategoryShare{
			Category:   c.Category,
			Label:      c.Label,
			Count:      c.Count,
			Percentage: Percentage(c.Count, overview.TotalContacts),
		})
	}

	return &dto.ContactDashboard{
		Overview:             overview,
		CategoryDistribution: shares,
		LanguageDistribution: languages,
		RecentContacts:       recent,
		GeneratedAt:          now,
	}, nil
}

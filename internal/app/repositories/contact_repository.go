package repositories

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/villageedu/api/internal/app/models"
	"github.com/villageedu/api/internal/pkg/apperrors"
	"github.com/villageedu/api/internal/pkg/dberrors"
	"github.com/villageedu/api/internal/pkg/helpers"
	"github.com/villageedu/api/internal/pkg/logger"
)

var contactColumns = []string{
	"id", "name", "email", "mobile", "category", "subject", "message", "preferred_language", "created_at",
}

// ContactRepository handles contact submission storage and its aggregations
type ContactRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewContactRepository creates a new ContactRepository
func NewContactRepository(db *pgxpool.Pool) *ContactRepository {
	return &ContactRepository{db: db, sb: statementBuilder()}
}

// Create stores a submission
func (r *ContactRepository) Create(ctx context.Context, c *models.Contact) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}

	sql, args, err := r.sb.Insert("contacts").
		Columns(contactColumns[:8]...).
		Values(c.ID, c.Name, c.Email, c.Mobile, string(c.Category), c.Subject, c.Message, string(c.PreferredLanguage)).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create contact query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&c.CreatedAt); err != nil {
		logger.Error().Err(err).Str("category", string(c.Category)).Msg("Error executing create contact query")
		return fmt.Errorf("error creating contact: %w", err)
	}
	c.CategoryLabel = c.Category.Label()
	return nil
}

// GetByID retrieves a submission by ID
func (r *ContactRepository) GetByID(ctx context.Context, id string) (*models.Contact, error) {
	if !isUUID(id) {
		return nil, apperrors.ErrContactNotFound
	}

	sql, args, err := r.sb.Select(contactColumns...).From("contacts").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get contact query: %w", err)
	}

	c, err := scanContact(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, apperrors.ErrContactNotFound
		}
		return nil, fmt.Errorf("error retrieving contact: %w", err)
	}
	return c, nil
}

// Delete removes a submission
func (r *ContactRepository) Delete(ctx context.Context, id string) error {
	if !isUUID(id) {
		return apperrors.ErrContactNotFound
	}

	sql, args, err := r.sb.Delete("contacts").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete contact query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting contact: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrContactNotFound
	}
	return nil
}

// List returns one page of submissions matching filter, newest first, and the total match count
func (r *ContactRepository) List(ctx context.Context, filter models.ContactFilter, page helpers.Page) ([]*models.Contact, int64, error) {
	return r.page(ctx, filterConditions(filter), page)
}

// ListAll returns every submission matching filter, newest first
func (r *ContactRepository) ListAll(ctx context.Context, filter models.ContactFilter) ([]*models.Contact, error) {
	query := r.sb.Select(contactColumns...).From("contacts").OrderBy("created_at DESC", "id ASC")
	for _, cond := range filterConditions(filter) {
		query = query.Where(cond)
	}
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list contacts query: %w", err)
	}
	return r.queryContacts(ctx, sql, args)
}

// Search matches term case-insensitively against the text fields, plus any category
// listed in categories.
func (r *ContactRepository) Search(ctx context.Context, term string, categories []models.ContactCategory, page helpers.Page) ([]*models.Contact, int64, error) {
	pattern := "%" + escapeLike(term) + "%"
	or := squirrel.Or{
		squirrel.ILike{"name": pattern},
		squirrel.ILike{"email": pattern},
		squirrel.ILike{"mobile": pattern},
		squirrel.ILike{"subject": pattern},
		squirrel.ILike{"message": pattern},
	}
	if len(categories) > 0 {
		keys := make([]string, len(categories))
		for i, c := range categories {
			keys[i] = string(c)
		}
		or = append(or, squirrel.Eq{"category": keys})
	}
	return r.page(ctx, []squirrel.Sqlizer{or}, page)
}

// Count returns the number of submissions matching filter
func (r *ContactRepository) Count(ctx context.Context, filter models.ContactFilter) (int64, error) {
	return r.count(ctx, filterConditions(filter))
}

// CategoryCounts groups submissions by category, largest first
func (r *ContactRepository) CategoryCounts(ctx context.Context, filter models.ContactFilter) ([]models.ContactCategoryStat, error) {
	query := r.sb.Select("category", "COUNT(*) AS total", "MAX(created_at)").
		From("contacts").
		GroupBy("category").
		OrderBy("total DESC", "category ASC")
	for _, cond := range filterConditions(filter) {
		query = query.Where(cond)
	}
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build contact category query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying contact categories: %w", err)
	}
	stats, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.ContactCategoryStat, error) {
		var s models.ContactCategoryStat
		var category string
		err := row.Scan(&category, &s.Count, &s.LatestSubmission)
		s.Category = models.ContactCategory(category)
		s.Label = s.Category.Label()
		return s, err
	})
	if err != nil {
		return nil, fmt.Errorf("error scanning contact categories: %w", err)
	}
	return stats, nil
}

// LanguageCounts groups submissions matching filter by preferred language
func (r *ContactRepository) LanguageCounts(ctx context.Context, filter models.ContactFilter) ([]models.ContactLanguageStat, error) {
	query := r.sb.Select("preferred_language", "COUNT(*) AS total").
		From("contacts").
		GroupBy("preferred_language").
		OrderBy("total DESC", "preferred_language ASC")
	for _, cond := range filterConditions(filter) {
		query = query.Where(cond)
	}
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build contact language query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying contact languages: %w", err)
	}
	stats, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.ContactLanguageStat, error) {
		var s models.ContactLanguageStat
		var lang string
		err := row.Scan(&lang, &s.Count)
		s.Language = models.ContactLanguage(lang)
		return s, err
	})
	if err != nil {
		return nil, fmt.Errorf("error scanning contact languages: %w", err)
	}
	return stats, nil
}

// MonthlyCounts buckets submissions in [from, to) by calendar month, oldest first
func (r *ContactRepository) MonthlyCounts(ctx context.Context, from, to time.Time) ([]models.MonthCount, error) {
	sql, args, err := r.sb.Select(
		"EXTRACT(YEAR FROM created_at)::int AS y",
		"EXTRACT(MONTH FROM created_at)::int AS m",
		"COUNT(*)").
		From("contacts").
		Where(squirrel.GtOrEq{"created_at": from}).
		Where(squirrel.Lt{"created_at": to}).
		GroupBy("y", "m").
		OrderBy("y ASC", "m ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build monthly contacts query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying monthly contacts: %w", err)
	}
	counts, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.MonthCount, error) {
		var m models.MonthCount
		err := row.Scan(&m.Year, &m.Month, &m.Count)
		return m, err
	})
	if err != nil {
		return nil, fmt.Errorf("error scanning monthly contacts: %w", err)
	}
	return counts, nil
}

func (r *ContactRepository) page(ctx context.Context, conds []squirrel.Sqlizer, page helpers.Page) ([]*models.Contact, int64, error) {
	total, err := r.count(ctx, conds)
	if err != nil {
		return nil, 0, err
	}

	query := r.sb.Select(contactColumns...).
		From("contacts").
		OrderBy("created_at DESC", "id ASC").
		Limit(uint64(page.Limit)).
		Offset(page.Offset())
	for _, cond := range conds {
		query = query.Where(cond)
	}
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build contacts page query: %w", err)
	}

	contacts, err := r.queryContacts(ctx, sql, args)
	if err != nil {
		return nil, 0, err
	}
	return contacts, total, nil
}

func (r *ContactRepository) count(ctx context.Context, conds []squirrel.Sqlizer) (int64, error) {
	query := r.sb.Select("COUNT(*)").From("contacts")
	for _, cond := range conds {
		query = query.Where(cond)
	}
	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count contacts query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		logger.Error().Err(err).Msg("Error counting contacts")
		return 0, fmt.Errorf("error counting contacts: %w", err)
	}
	return total, nil
}

func (r *ContactRepository) queryContacts(ctx context.Context, sql string, args []interface{}) ([]*models.Contact, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error querying contacts")
		return nil, fmt.Errorf("error querying contacts: %w", err)
	}
	defer rows.Close()

	contacts := make([]*models.Contact, 0)
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning contact row: %w", err)
		}
		contacts = append(contacts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating contact rows: %w", err)
	}
	return contacts, nil
}

func scanContact(row pgx.Row) (*models.Contact, error) {
	var c models.Contact
	var category, lang string
	if err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Mobile, &category, &c.Subject, &c.Message, &lang, &c.CreatedAt); err != nil {
		return nil, err
	}
	c.Category = models.ContactCategory(category)
	c.CategoryLabel = c.Category.Label()
	c.PreferredLanguage = models.ContactLanguage(lang)
	return &c, nil
}

func filterConditions(f models.ContactFilter) []squirrel.Sqlizer {
	var conds []squirrel.Sqlizer
	if f.Category != "" {
		conds = append(conds, squirrel.Eq{"category": string(f.Category)})
	}
	if f.PreferredLanguage != "" {
		conds = append(conds, squirrel.Eq{"preferred_language": string(f.PreferredLanguage)})
	}
	if f.Since != nil {
		conds = append(conds, squirrel.GtOrEq{"created_at": *f.Since})
	}
	return conds
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes user input match literally inside an ILIKE pattern
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

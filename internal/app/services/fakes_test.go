package services

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/villageedu/api/internal/app/models"
	"github.com/villageedu/api/internal/pkg/apperrors"
	"github.com/villageedu/api/internal/pkg/helpers"
)

// In-memory stores mirroring the repository semantics closely enough for service tests.

type memStudentStore struct {
	mu   sync.Mutex
	byID map[string]*models.Student
}

func newMemStudentStore() *memStudentStore {
	return &memStudentStore{byID: map[string]*models.Student{}}
}

func (m *memStudentStore) Create(_ context.Context, s *models.Student) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.byID {
		if existing.Email == s.Email {
			return apperrors.ErrEmailAlreadyExists
		}
	}
	s.ID = uuid.NewString()
	s.CreatedAt = time.Now()
	s.UpdatedAt = s.CreatedAt
	cp := *s
	m.byID[s.ID] = &cp
	return nil
}

func (m *memStudentStore) GetByID(_ context.Context, id string) (*models.Student, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.byID[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, apperrors.ErrStudentNotFound
}

func (m *memStudentStore) GetByEmail(_ context.Context, email string) (*models.Student, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.byID {
		if s.Email == email {
			cp := *s
			return &cp, nil
		}
	}
	return nil, apperrors.ErrStudentNotFound
}

type memAdminStore struct {
	mu   sync.Mutex
	byID map[string]*models.Admin
}

func newMemAdminStore() *memAdminStore {
	return &memAdminStore{byID: map[string]*models.Admin{}}
}

func (m *memAdminStore) Create(_ context.Context, a *models.Admin) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.byID {
		if existing.Email == a.Email {
			return apperrors.ErrEmailAlreadyExists
		}
	}
	a.ID = uuid.NewString()
	cp := *a
	m.byID[a.ID] = &cp
	return nil
}

func (m *memAdminStore) GetByID(_ context.Context, id string) (*models.Admin, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a, ok := m.byID[id]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, apperrors.ErrAdminNotFound
}

func (m *memAdminStore) GetByEmail(_ context.Context, email string) (*models.Admin, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.byID {
		if a.Email == email {
			cp := *a
			return &cp, nil
		}
	}
	return nil, apperrors.ErrAdminNotFound
}

type memCourseStore struct {
	mu    sync.Mutex
	order []string
	byID  map[string]*models.Course
	clock time.Time
}

func newMemCourseStore() *memCourseStore {
	return &memCourseStore{byID: map[string]*models.Course{}, clock: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (m *memCourseStore) Create(_ context.Context, c *models.Course) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c.ID = uuid.NewString()
	m.clock = m.clock.Add(time.Minute)
	c.CreatedAt, c.UpdatedAt = m.clock, m.clock
	cp := *c
	m.byID[c.ID] = &cp
	m.order = append(m.order, c.ID)
	return nil
}

func (m *memCourseStore) GetByID(_ context.Context, id string) (*models.Course, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.byID[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, apperrors.ErrCourseNotFound
}

func (m *memCourseStore) List(_ context.Context, f models.CourseFilter) ([]*models.Course, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*models.Course{}
	for i := len(m.order) - 1; i >= 0; i-- {
		c, ok := m.byID[m.order[i]]
		if !ok {
			continue
		}
		if f.CategoryID != "" && c.Category.ID != f.CategoryID {
			continue
		}
		if f.Class != "" && c.Class != f.Class {
			continue
		}
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}

func (m *memCourseStore) Update(_ context.Context, id string, p models.CoursePatch) (*models.Course, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.byID[id]
	if !ok {
		return nil, apperrors.ErrCourseNotFound
	}
	if p.Title != nil {
		c.Title = *p.Title
	}
	if p.Description != nil {
		c.Description = *p.Description
	}
	if p.Category != nil {
		c.Category = *p.Category
	}
	if p.Instructor != nil {
		c.Instructor = *p.Instructor
	}
	if p.Lessons != nil {
		c.Lessons = *p.Lessons
	}
	if p.Price != nil {
		c.Price = *p.Price
	}
	if p.Language != nil {
		c.Language = *p.Language
	}
	if p.Class != nil {
		c.Class = *p.Class
	}
	if p.Rating != nil {
		c.Rating = *p.Rating
	}
	cp := *c
	return &cp, nil
}

func (m *memCourseStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[id]; !ok {
		return apperrors.ErrCourseNotFound
	}
	delete(m.byID, id)
	return nil
}

type memEnrollmentStore struct {
	mu      sync.Mutex
	rows    []models.Enrollment
	courses *memCourseStore

	// forceDuplicate makes Exists miss and Create fail like a lost race on the unique constraint
	forceDuplicate bool
}

func (m *memEnrollmentStore) Exists(_ context.Context, studentID, courseID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.forceDuplicate {
		return false, nil
	}
	for _, e := range m.rows {
		if e.StudentID == studentID && e.CourseID == courseID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memEnrollmentStore) Create(_ context.Context, e *models.Enrollment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.forceDuplicate {
		return apperrors.ErrAlreadyEnrolled
	}
	for _, existing := range m.rows {
		if existing.StudentID == e.StudentID && existing.CourseID == e.CourseID {
			return apperrors.ErrAlreadyEnrolled
		}
	}
	m.courses.mu.Lock()
	c, ok := m.courses.byID[e.CourseID]
	if ok {
		c.StudentsEnrolled++
	}
	m.courses.mu.Unlock()
	if !ok {
		return apperrors.ErrCourseNotFound
	}

	e.ID = uuid.NewString()
	e.EnrolledAt = time.Now()
	m.rows = append(m.rows, *e)
	return nil
}

func (m *memEnrollmentStore) ListStudentCourses(ctx context.Context, studentID string) ([]*models.Course, error) {
	m.mu.Lock()
	var ids []string
	for _, e := range m.rows {
		if e.StudentID == studentID {
			ids = append(ids, e.CourseID)
		}
	}
	m.mu.Unlock()

	out := make([]*models.Course, len(ids))
	for i, id := range ids {
		c, err := m.courses.GetByID(ctx, id)
		if err == nil {
			out[i] = c
		}
	}
	return out, nil
}

type memContactStore struct {
	mu   sync.Mutex
	rows []*models.Contact
	now  func() time.Time
}

func newMemContactStore(now func() time.Time) *memContactStore {
	return &memContactStore{now: now}
}

func (m *memContactStore) add(c models.Contact) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	c.CategoryLabel = c.Category.Label()
	m.rows = append(m.rows, &c)
}

func (m *memContactStore) Create(_ context.Context, c *models.Contact) error {
	c.ID = uuid.NewString()
	c.CreatedAt = m.now()
	c.CategoryLabel = c.Category.Label()
	m.add(*c)
	return nil
}

func (m *memContactStore) GetByID(_ context.Context, id string) (*models.Contact, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.rows {
		if c.ID == id {
			cp := *c
			return &cp, nil
		}
	}
	return nil, apperrors.ErrContactNotFound
}

func (m *memContactStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, c := range m.rows {
		if c.ID == id {
			m.rows = append(m.rows[:i], m.rows[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrContactNotFound
}

func (m *memContactStore) matching(f models.ContactFilter) []*models.Contact {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*models.Contact
	for _, c := range m.rows {
		if f.Category != "" && c.Category != f.Category {
			continue
		}
		if f.PreferredLanguage != "" && c.PreferredLanguage != f.PreferredLanguage {
			continue
		}
		if f.Since != nil && c.CreatedAt.Before(*f.Since) {
			continue
		}
		cp := *c
		out = append(out, &cp)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func paginate(all []*models.Contact, p helpers.Page) []*models.Contact {
	start := int(p.Offset())
	if start >= len(all) {
		return []*models.Contact{}
	}
	end := start + p.Limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end]
}

func (m *memContactStore) List(_ context.Context, f models.ContactFilter, p helpers.Page) ([]*models.Contact, int64, error) {
	all := m.matching(f)
	return paginate(all, p), int64(len(all)), nil
}

func (m *memContactStore) ListAll(_ context.Context, f models.ContactFilter) ([]*models.Contact, error) {
	return m.matching(f), nil
}

func (m *memContactStore) Search(_ context.Context, term string, categories []models.ContactCategory, p helpers.Page) ([]*models.Contact, int64, error) {
	term = strings.ToLower(term)
	var hits []*models.Contact
	for _, c := range m.matching(models.ContactFilter{}) {
		text := strings.ToLower(strings.Join([]string{c.Name, c.Email, c.Mobile, c.Subject, c.Message}, "\x00"))
		matched := strings.Contains(text, term)
		for _, cat := range categories {
			matched = matched || c.Category == cat
		}
		if matched {
			hits = append(hits, c)
		}
	}
	return paginate(hits, p), int64(len(hits)), nil
}

func (m *memContactStore) Count(_ context.Context, f models.ContactFilter) (int64, error) {
	return int64(len(m.matching(f))), nil
}

func (m *memContactStore) CategoryCounts(_ context.Context, f models.ContactFilter) ([]models.ContactCategoryStat, error) {
	byCat := map[models.ContactCategory]*models.ContactCategoryStat{}
	for _, c := range m.matching(f) {
		st, ok := byCat[c.Category]
		if !ok {
			st = &models.ContactCategoryStat{Category: c.Category, Label: c.Category.Label()}
			byCat[c.Category] = st
		}
		st.Count++
		if c.CreatedAt.After(st.LatestSubmission) {
			st.LatestSubmission = c.CreatedAt
		}
	}
	out := []models.ContactCategoryStat{}
	for _, st := range byCat {
		out = append(out, *st)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Category < out[j].Category
	})
	return out, nil
}

func (m *memContactStore) LanguageCounts(_ context.Context, f models.ContactFilter) ([]models.ContactLanguageStat, error) {
	counts := map[models.ContactLanguage]int64{}
	for _, c := range m.matching(f) {
		counts[c.PreferredLanguage]++
	}
	out := []models.ContactLanguageStat{}
	for _, l := range []models.ContactLanguage{models.LanguageHindi, models.LanguageEnglish} {
		if counts[l] > 0 {
			out = append(out, models.ContactLanguageStat{Language: l, Count: counts[l]})
		}
	}
	return out, nil
}

func (m *memContactStore) MonthlyCounts(_ context.Context, from, to time.Time) ([]models.MonthCount, error) {
	type key struct{ y, m int }
	counts := map[key]int64{}
	for _, c := range m.matching(models.ContactFilter{Since: &from}) {
		if !c.CreatedAt.Before(to) {
			continue
		}
		counts[key{c.CreatedAt.Year(), int(c.CreatedAt.Month())}]++
	}
	out := []models.MonthCount{}
	for k, n := range counts {
		out = append(out, models.MonthCount{Year: k.y, Month: k.m, Count: n})
	}
	// unordered on purpose: MonthlyTrend must sort
	return out, nil
}

// stubAnalyticsStore returns canned aggregation results; failOn names a method that errors.
type stubAnalyticsStore struct {
	mu     sync.Mutex
	calls  int
	failOn string

	students, enrolledStudents, courses, enrollments int64
	courseStats                                      []models.CourseEnrollmentStat
	categoryStats                                    []models.CategoryStat
}

var errStoreDown = errors.New("store unavailable")

func (s *stubAnalyticsStore) hit(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.failOn == name {
		return errStoreDown
	}
	return nil
}

func (s *stubAnalyticsStore) CountStudents(context.Context) (int64, error) {
	return s.students, s.hit("CountStudents")
}

func (s *stubAnalyticsStore) CountEnrolledStudents(context.Context) (int64, error) {
	return s.enrolledStudents, s.hit("CountEnrolledStudents")
}

func (s *stubAnalyticsStore) CountCourses(context.Context) (int64, error) {
	return s.courses, s.hit("CountCourses")
}

func (s *stubAnalyticsStore) CountEnrollments(context.Context) (int64, error) {
	return s.enrollments, s.hit("CountEnrollments")
}

func (s *stubAnalyticsStore) CountCourseEnrollments(_ context.Context, courseID string) (int64, error) {
	var n int64
	for _, st := range s.courseStats {
		if st.CourseID == courseID {
			n = st.TotalEnrollments
		}
	}
	return n, s.hit("CountCourseEnrollments")
}

func (s *stubAnalyticsStore) CourseWiseStats(context.Context) ([]models.CourseEnrollmentStat, error) {
	return s.courseStats, s.hit("CourseWiseStats")
}

func (s *stubAnalyticsStore) CategoryCourseStats(_ context.Context, id models.CourseCategoryID) ([]models.CourseEnrollmentStat, error) {
	out := []models.CourseEnrollmentStat{}
	for _, st := range s.courseStats {
		if st.CourseCategory == id {
			out = append(out, st)
		}
	}
	return out, s.hit("CategoryCourseStats")
}

func (s *stubAnalyticsStore) CategoryStats(context.Context) ([]models.CategoryStat, error) {
	return append([]models.CategoryStat(nil), s.categoryStats...), s.hit("CategoryStats")
}

func (s *stubAnalyticsStore) StudentClassDistribution(context.Context) ([]models.LabelCount, error) {
	return []models.LabelCount{{Label: "10th", Count: 4}, {Label: "5th", Count: 6}}, s.hit("StudentClassDistribution")
}

func (s *stubAnalyticsStore) GenderDistribution(context.Context) ([]models.LabelCount, error) {
	return []models.LabelCount{{Label: "female", Count: 6}, {Label: "male", Count: 4}}, s.hit("GenderDistribution")
}

func (s *stubAnalyticsStore) StateDistribution(context.Context) ([]models.LabelCount, error) {
	return []models.LabelCount{{Label: "बिहार / Bihar", Count: 10}}, s.hit("StateDistribution")
}

func (s *stubAnalyticsStore) ClassCourseDistribution(context.Context) ([]models.ClassCourseStat, error) {
	return []models.ClassCourseStat{{Class: "5th Class", TotalCourses: 2, TotalEnrollments: 3}}, s.hit("ClassCourseDistribution")
}

func (s *stubAnalyticsStore) EnrollmentTrend(context.Context, time.Time, string) ([]models.DayCount, error) {
	return []models.DayCount{{Date: "2025-03-01", Count: 2}, {Date: "2025-03-02", Count: 1}}, s.hit("EnrollmentTrend")
}

func (s *stubAnalyticsStore) TopCourses(context.Context, int) ([]*models.Course, error) {
	return []*models.Course{}, s.hit("TopCourses")
}

func (s *stubAnalyticsStore) RecentEnrollments(context.Context, int, string) ([]models.EnrollmentDetail, error) {
	return []models.EnrollmentDetail{}, s.hit("RecentEnrollments")
}

// mapCache is a JSONCache keeping encoded values in memory; err makes every call fail.
type mapCache struct {
	mu   sync.Mutex
	data map[string][]byte
	err  error
	sets int
}

var errCacheMiss = errors.New("miss")

func (c *mapCache) GetJSON(_ context.Context, key string, dest interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	raw, ok := c.data[key]
	if !ok {
		return errCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (c *mapCache) SetJSON(_ context.Context, key string, value interface{}, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets++
	if c.err != nil {
		return c.err
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if c.data == nil {
		c.data = map[string][]byte{}
	}
	c.data[key] = raw
	return nil
}

func (c *mapCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	for _, k := range keys {
		delete(c.data, k)
	}
	return nil
}

func (c *mapCache) has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.data[key]
	return ok
}

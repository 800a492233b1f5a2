package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/villageedu/api/internal/app/models"
	"github.com/villageedu/api/internal/app/models/dto"
	"github.com/villageedu/api/internal/app/services"
	"github.com/villageedu/api/internal/middleware"
	"github.com/villageedu/api/internal/pkg/apperrors"
	"github.com/villageedu/api/internal/pkg/helpers"
	"github.com/villageedu/api/internal/pkg/report"
	"github.com/villageedu/api/internal/pkg/validation"
)

const knownCourseID = "0b6c3f55-2a6e-4b8e-9d7c-5d2f1e9f4a10"

type fakeCourseService struct {
	services.CourseService
	created *models.Course
	filter  [2]string
}

func (f *fakeCourseService) CreateCourse(_ context.Context, c *models.Course) (*models.Course, error) {
	c.ID = knownCourseID
	f.created = c
	return c, nil
}

func (f *fakeCourseService) ListCourses(_ context.Context, categoryID, class string) ([]*models.Course, error) {
	f.filter = [2]string{categoryID, class}
	if categoryID == "bogus" {
		return nil, apperrors.NewValidationError("Invalid course category")
	}
	return nil, nil
}

func (f *fakeCourseService) GetCourse(_ context.Context, id string) (*models.Course, error) {
	if id != knownCourseID {
		return nil, apperrors.NewCustomError(apperrors.ErrCourseNotFound, "Course not found")
	}
	return &models.Course{ID: id, Title: "Basic Maths"}, nil
}

type fakeEnrollmentService struct {
	enrolled map[string]bool
}

func (f *fakeEnrollmentService) Enroll(_ context.Context, studentID, courseID string) (*models.Enrollment, error) {
	if f.enrolled[courseID] {
		return nil, apperrors.NewCustomError(apperrors.ErrAlreadyEnrolled, "Already enrolled in this course")
	}
	f.enrolled[courseID] = true
	return &models.Enrollment{ID: "e1", StudentID: studentID, CourseID: courseID, EnrolledAt: time.Now()}, nil
}

func (f *fakeEnrollmentService) ListMyCourses(context.Context, string) ([]*models.Course, error) {
	return []*models.Course{{ID: knownCourseID}, nil}, nil
}

type fakeContactService struct {
	services.ContactService
}

func (fakeContactService) List(_ context.Context, _, _ string, page helpers.Page) ([]*models.Contact, dto.PaginationInfo, error) {
	return []*models.Contact{{ID: "c1"}}, helpers.NewPaginationInfo(11, page), nil
}

func (fakeContactService) Search(_ context.Context, query string, page helpers.Page) ([]*models.Contact, dto.PaginationInfo, error) {
	if query == "" {
		return nil, dto.PaginationInfo{}, apperrors.NewValidationError("Search query is required")
	}
	return nil, helpers.NewPaginationInfo(0, page), nil
}

func (fakeContactService) ExportCategoryReport(context.Context, string) ([]byte, string, error) {
	return []byte("PK"), "contacts-student-20250313.xlsx", nil
}

func setupRouter(t *testing.T) (*gin.Engine, *fakeCourseService) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	require.NoError(t, validation.RegisterGinValidators())

	courses := &fakeCourseService{}
	courseCtl := NewCourseController(courses)
	enrollCtl := NewEnrollmentController(&fakeEnrollmentService{enrolled: map[string]bool{}})
	contactCtl := NewContactController(fakeContactService{})

	asStudent := func(c *gin.Context) {
		c.Set(middleware.ContextStudentKey, &models.Student{ID: "s1"})
		c.Next()
	}

	r := gin.New()
	api := r.Group("/api")
	api.POST("/course", courseCtl.CreateCourse)
	api.GET("/course", courseCtl.GetCourses)
	api.GET("/course/:id", courseCtl.GetCourse)
	api.POST("/enroll", asStudent, enrollCtl.Enroll)
	api.GET("/enroll/my-courses", asStudent, enrollCtl.MyCourses)
	api.POST("/enroll-anonymous", enrollCtl.Enroll)
	api.POST("/contact", contactCtl.SubmitContact)
	api.GET("/contact/contacts", contactCtl.ListContacts)
	api.GET("/contact/contacts/search", contactCtl.SearchContacts)
	api.GET("/contact/analysis/category/:category/export", contactCtl.ExportCategoryReport)
	return r, courses
}

func perform(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	body := decode(t, w)
	errObj, ok := body["error"].(map[string]interface{})
	require.True(t, ok, "missing error object")
	return errObj["message"].(string)
}

func TestCreateCourse(t *testing.T) {
	r, courses := setupRouter(t)

	body := `{"title":"Basic Maths","description":"d","category":{"id":"math"},"instructor":"R","class":"5th Class","price":0}`
	w := perform(r, http.MethodPost, "/api/course", body)

	require.Equal(t, http.StatusCreated, w.Code)
	resp := decode(t, w)
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, "Course created successfully", resp["message"])
	require.NotNil(t, courses.created)
	assert.Equal(t, models.CourseCategoryID("math"), courses.created.Category.ID)
}

func TestCreateCourse_Validation(t *testing.T) {
	r, courses := setupRouter(t)

	tests := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{"bad category", `{"title":"t","description":"d","category":{"id":"history"},"instructor":"R","class":"5th Class"}`, "id must be one of: hindi, english, math, science, computer"},
		{"bad class", `{"title":"t","description":"d","category":{"id":"math"},"instructor":"R","class":"13th Class"}`, "class must be a class from 1st Class to 12th Class"},
		{"negative price", `{"title":"t","description":"d","category":{"id":"math"},"instructor":"R","class":"5th Class","price":-1}`, "price must be greater than or equal to 0"},
		{"missing title", `{"description":"d","category":{"id":"math"},"instructor":"R","class":"5th Class"}`, "title is required"},
		{"title too long", `{"title":"` + strings.Repeat("t", 256) + `","description":"d","category":{"id":"math"},"instructor":"R","class":"5th Class"}`, "title must be at most 255 characters"},
		{"price overflow", `{"title":"t","description":"d","category":{"id":"math"},"instructor":"R","class":"5th Class","price":1e9}`, "price must be less than or equal to 99999999"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := perform(r, http.MethodPost, "/api/course", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.wantMsg, errorMessage(t, w))
		})
	}
	assert.Nil(t, courses.created)
}

func TestGetCourses(t *testing.T) {
	r, courses := setupRouter(t)

	w := perform(r, http.MethodGet, "/api/course?categoryId=math&class=5th%20Class", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, [2]string{"math", "5th Class"}, courses.filter)

	resp := decode(t, w)
	assert.EqualValues(t, 0, resp["count"])
	assert.Equal(t, []interface{}{}, resp["data"])

	w = perform(r, http.MethodGet, "/api/course?categoryId=bogus", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid course category", errorMessage(t, w))
}

func TestGetCourse_NotFound(t *testing.T) {
	r, _ := setupRouter(t)

	w := perform(r, http.MethodGet, "/api/course/"+knownCourseID, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = perform(r, http.MethodGet, "/api/course/missing", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Course not found", errorMessage(t, w))
}

func TestEnroll(t *testing.T) {
	r, _ := setupRouter(t)
	body := `{"courseId":"` + knownCourseID + `"}`

	w := perform(r, http.MethodPost, "/api/enroll", body)
	require.Equal(t, http.StatusCreated, w.Code)
	resp := decode(t, w)
	assert.Equal(t, "Enrollment successful", resp["message"])
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "s1", data["studentId"])

	w = perform(r, http.MethodPost, "/api/enroll", body)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Already enrolled in this course", errorMessage(t, w))

	w = perform(r, http.MethodPost, "/api/enroll-anonymous", body)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMyCourses_KeepsHoles(t *testing.T) {
	r, _ := setupRouter(t)

	w := perform(r, http.MethodGet, "/api/enroll/my-courses", "")
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode(t, w)
	data := resp["data"].([]interface{})
	require.Len(t, data, 2)
	assert.Nil(t, data[1])
	assert.EqualValues(t, 2, resp["count"])
}

func TestListContacts_Pagination(t *testing.T) {
	r, _ := setupRouter(t)

	w := perform(r, http.MethodGet, "/api/contact/contacts?page=2&limit=10", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Pagination)
	assert.Equal(t, dto.PaginationInfo{CurrentPage: 2, TotalPages: 2, Limit: 10, TotalCount: 11, HasNext: false, HasPrev: true}, *resp.Pagination)
}

func TestSearchContacts_RequiresQuery(t *testing.T) {
	r, _ := setupRouter(t)

	w := perform(r, http.MethodGet, "/api/contact/contacts/search", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Search query is required", errorMessage(t, w))
}

func TestExportCategoryReport(t *testing.T) {
	r, _ := setupRouter(t)

	w := perform(r, http.MethodGet, "/api/contact/analysis/category/Student/export", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, report.XLSXContentType, w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="contacts-student-20250313.xlsx"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "PK", w.Body.String())
}

func TestSubmitContact_OversizedField(t *testing.T) {
	r, _ := setupRouter(t)

	body := `{"name":"Asha","email":"asha@example.com","mobile":"+91 98765 43210 ext 12","category":"छात्र / Student","subject":"s","message":"m"}`
	w := perform(r, http.MethodPost, "/api/contact", body)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "mobile must be at most 20 characters", errorMessage(t, w))
}

type fakeAuthService struct {
	services.AuthService
}

func (fakeAuthService) LoginStudent(_ context.Context, req dto.LoginRequest) (*dto.StudentAuthResponse, error) {
	if req.Password != "secret123" {
		return nil, apperrors.NewUnauthenticatedError(apperrors.ErrInvalidCredentials, "Invalid credentials")
	}
	return &dto.StudentAuthResponse{Student: &models.Student{ID: "s1"}, Token: dto.NewTokenResponse("tok", 60)}, nil
}

func TestLoginStudent(t *testing.T) {
	gin.SetMode(gin.TestMode)
	require.NoError(t, validation.RegisterGinValidators())

	ctl := NewAuthController(fakeAuthService{}, zerolog.Nop())
	r := gin.New()
	r.POST("/api/student/login", ctl.LoginStudent)

	w := perform(r, http.MethodPost, "/api/student/login", `{"email":"asha@example.com","password":"secret123"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Login successful", decode(t, w)["message"])

	w = perform(r, http.MethodPost, "/api/student/login", `{"email":"asha@example.com","password":"nope"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid credentials", errorMessage(t, w))

	w = perform(r, http.MethodPost, "/api/student/login", `{"email":"not-an-email","password":"x"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

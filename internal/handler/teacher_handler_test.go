package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kestrel-academy/booking-api/internal/models"
	"github.com/kestrel-academy/booking-api/internal/service"
	"github.com/kestrel-academy/booking-api/pkg/config"
)

type fakeStudentLookup struct{}

func (fakeStudentLookup) FindByID(context.Context, string) (*models.Student, error) {
	return nil, sql.ErrNoRows
}

type fakeCourseLookup struct{}

func (fakeCourseLookup) FindByID(context.Context, string) (*models.Course, error) {
	return nil, sql.ErrNoRows
}

type fakeBookingLookup struct{}

func (fakeBookingLookup) FindByID(context.Context, string) (*models.Booking, error) {
	return nil, sql.ErrNoRows
}

type fakeTeacherLookup struct {
	teachers   []models.TeacherProfile
	lastFilter models.TeacherFilter
}

func (f *fakeTeacherLookup) FindByID(_ context.Context, id string) (*models.TeacherProfile, error) {
	for i := range f.teachers {
		if f.teachers[i].ID == id {
			return &f.teachers[i], nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeTeacherLookup) ListEligible(context.Context) ([]models.TeacherProfile, error) {
	return f.teachers, nil
}

func (f *fakeTeacherLookup) List(_ context.Context, filter models.TeacherFilter) ([]models.TeacherProfile, int, error) {
	f.lastFilter = filter
	return f.teachers, len(f.teachers), nil
}

func newTeacherHandlerFixture(teachers *fakeTeacherLookup) *TeacherHandler {
	cache := service.NewCacheService(nil, nil, 0, nil, false)
	directory := service.NewDirectoryService(fakeStudentLookup{}, teachers, fakeCourseLookup{}, fakeBookingLookup{}, cache, config.CacheConfig{}, nil)
	return NewTeacherHandler(directory)
}

func TestTeacherHandlerListAppliesQueryFilters(t *testing.T) {
	gin.SetMode(gin.TestMode)
	teachers := &fakeTeacherLookup{teachers: []models.TeacherProfile{{ID: "t1", FullName: "Dana Reyes"}}}
	handler := newTeacherHandlerFixture(teachers)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/teachers?search=dana&active=true&eligible=false&page=2&limit=10", nil)

	handler.List(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "dana", teachers.lastFilter.Search)
	require.NotNil(t, teachers.lastFilter.Active)
	assert.True(t, *teachers.lastFilter.Active)
	require.NotNil(t, teachers.lastFilter.Eligible)
	assert.False(t, *teachers.lastFilter.Eligible)
	assert.Equal(t, 2, teachers.lastFilter.Page)
	assert.Equal(t, 10, teachers.lastFilter.PageSize)

	var envelope struct {
		Data       []models.TeacherProfile `json:"data"`
		Pagination *models.Pagination      `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data, 1)
	require.NotNil(t, envelope.Pagination)
	assert.Equal(t, 2, envelope.Pagination.Page)
	assert.Equal(t, 1, envelope.Pagination.TotalCount)
}

func TestTeacherHandlerGetNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newTeacherHandlerFixture(&fakeTeacherLookup{})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/teachers/missing", nil)
	c.Params = gin.Params{{Key: "id", Value: "missing"}}

	handler.Get(c)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTeacherHandlerGetSuccess(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newTeacherHandlerFixture(&fakeTeacherLookup{teachers: []models.TeacherProfile{{ID: "t1", FullName: "Dana Reyes"}}})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/teachers/t1", nil)
	c.Params = gin.Params{{Key: "id", Value: "t1"}}

	handler.Get(c)

	assert.Equal(t, http.StatusOK, rec.Code)

	var envelope struct {
		Data models.TeacherProfile `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "Dana Reyes", envelope.Data.FullName)
}

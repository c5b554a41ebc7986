package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/kestrel-academy/booking-api/internal/models"
	"github.com/kestrel-academy/booking-api/internal/service"
	appErrors "github.com/kestrel-academy/booking-api/pkg/errors"
	"github.com/kestrel-academy/booking-api/pkg/response"
)

// TeacherHandler serves teacher profile listings.
type TeacherHandler struct {
	directory *service.DirectoryService
}

// NewTeacherHandler constructs a TeacherHandler.
func NewTeacherHandler(directory *service.DirectoryService) *TeacherHandler {
	return &TeacherHandler{directory: directory}
}

// List godoc
// @Summary List teacher profiles
// @Tags Teachers
// @Produce json
// @Param search query string false "Search by name/email"
// @Param active query bool false "Filter by active status"
// @Param eligible query bool false "Filter by 1:1 eligibility"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /teachers [get]
func (h *TeacherHandler) List(c *gin.Context) {
	filter := models.TeacherFilter{
		Search:    strings.TrimSpace(c.Query("search")),
		SortBy:    c.Query("sort"),
		SortOrder: c.Query("order"),
	}
	if active := parseBoolQuery(c.Query("active")); active != nil {
		filter.Active = active
	}
	if eligible := parseBoolQuery(c.Query("eligible")); eligible != nil {
		filter.Eligible = eligible
	}
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		filter.Page = page
	}
	if size, err := strconv.Atoi(c.DefaultQuery("limit", "20")); err == nil {
		filter.PageSize = size
	}

	teachers, pagination, err := h.directory.ListTeachers(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list teachers"))
		return
	}
	response.JSON(c, http.StatusOK, teachers, pagination)
}

// Get godoc
// @Summary Get teacher profile
// @Tags Teachers
// @Produce json
// @Param id path string true "Teacher ID"
// @Success 200 {object} response.Envelope
// @Router /teachers/{id} [get]
func (h *TeacherHandler) Get(c *gin.Context) {
	teacher, err := h.directory.Teacher(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "teacher not found"))
			return
		}
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load teacher"))
		return
	}
	response.JSON(c, http.StatusOK, teacher, nil)
}

func parseBoolQuery(raw string) *bool {
	switch strings.ToLower(raw) {
	case "true":
		val := true
		return &val
	case "false":
		val := false
		return &val
	}
	return nil
}

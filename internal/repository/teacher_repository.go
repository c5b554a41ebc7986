package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/kestrel-academy/booking-api/internal/models"
)

const teacherColumns = `id, email, full_name, gender, experience_years, specializations, certifications,
	languages_spoken, teaching_styles, personality_traits,
	average_rating AS "ratings.average_rating", total_reviews AS "ratings.total_reviews",
	recent_average AS "ratings.recent_average",
	availability_summary, hourly_rate, active, one_on_one_eligible, created_at, updated_at`

// TeacherRepository manages persistence for teacher profiles.
type TeacherRepository struct {
	db *sqlx.DB
}

// NewTeacherRepository constructs a TeacherRepository.
func NewTeacherRepository(db *sqlx.DB) *TeacherRepository {
	return &TeacherRepository{db: db}
}

// List returns teachers matching filters along with total count.
func (r *TeacherRepository) List(ctx context.Context, filter models.TeacherFilter) ([]models.TeacherProfile, int, error) {
	base := "FROM teachers WHERE 1=1"
	var conditions []string
	var args []interface{}

	if filter.Active != nil {
		conditions = append(conditions, fmt.Sprintf("active = $%d", len(args)+1))
		args = append(args, *filter.Active)
	}
	if filter.Eligible != nil {
		conditions = append(conditions, fmt.Sprintf("one_on_one_eligible = $%d", len(args)+1))
		args = append(args, *filter.Eligible)
	}
	if filter.Search != "" {
		search := "%" + strings.ToLower(filter.Search) + "%"
		conditions = append(conditions, fmt.Sprintf("(LOWER(full_name) LIKE $%d OR LOWER(email) LIKE $%d)", len(args)+1, len(args)+1))
		args = append(args, search)
	}

	if len(conditions) > 0 {
		base += " AND " + strings.Join(conditions, " AND ")
	}

	sortBy := filter.SortBy
	if sortBy == "" {
		sortBy = "created_at"
	}
	allowedSorts := map[string]string{
		"full_name":        "full_name",
		"experience_years": "experience_years",
		"average_rating":   "average_rating",
		"created_at":       "created_at",
	}
	column, ok := allowedSorts[sortBy]
	if !ok {
		column = "created_at"
	}

	order := strings.ToUpper(filter.SortOrder)
	if order != "ASC" && order != "DESC" {
		order = "DESC"
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	offset := (page - 1) * size

	query := fmt.Sprintf("SELECT %s %s ORDER BY %s %s LIMIT %d OFFSET %d", teacherColumns, base, column, order, size, offset)
	var teachers []models.TeacherProfile
	if err := r.db.SelectContext(ctx, &teachers, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list teachers: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count teachers: %w", err)
	}

	return teachers, total, nil
}

// ListEligible returns every active teacher that may take 1:1 sessions, in a
// stable creation order. The matcher relies on that order for deterministic
// tie-breaks.
func (r *TeacherRepository) ListEligible(ctx context.Context) ([]models.TeacherProfile, error) {
	query := fmt.Sprintf("SELECT %s FROM teachers WHERE active = TRUE AND one_on_one_eligible = TRUE ORDER BY created_at ASC, id ASC", teacherColumns)
	var teachers []models.TeacherProfile
	if err := r.db.SelectContext(ctx, &teachers, query); err != nil {
		return nil, fmt.Errorf("list eligible teachers: %w", err)
	}
	return teachers, nil
}

// FindByID fetches a teacher profile by ID.
func (r *TeacherRepository) FindByID(ctx context.Context, id string) (*models.TeacherProfile, error) {
	query := fmt.Sprintf("SELECT %s FROM teachers WHERE id = $1", teacherColumns)
	var teacher models.TeacherProfile
	if err := r.db.GetContext(ctx, &teacher, query, id); err != nil {
		return nil, err
	}
	return &teacher, nil
}

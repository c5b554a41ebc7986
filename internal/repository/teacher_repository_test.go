package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/kestrel-academy/booking-api/internal/models"
)

func newTeacherRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

var teacherRowColumns = []string{
	"id", "email", "full_name", "gender", "experience_years", "specializations", "certifications",
	"languages_spoken", "teaching_styles", "personality_traits",
	"ratings.average_rating", "ratings.total_reviews", "ratings.recent_average",
	"availability_summary", "hourly_rate", "active", "one_on_one_eligible", "created_at", "updated_at",
}

func addTeacherRow(rows *sqlmock.Rows, id string, years int, rating float64, created time.Time) {
	rows.AddRow(
		id, id+"@kestrel.test", "Teacher "+id, "female", years,
		"{Mathematics,Physics}", "{}", "{English}", "{structured}", "{patient}",
		rating, 40, rating, "weekday mornings", 45.0, true, true, created, created,
	)
}

func TestTeacherRepositoryFindByID(t *testing.T) {
	db, mock, cleanup := newTeacherRepoMock(t)
	defer cleanup()

	repo := NewTeacherRepository(db)
	now := time.Now()
	rows := sqlmock.NewRows(teacherRowColumns)
	addTeacherRow(rows, "t1", 6, 4.8, now)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, email, full_name")).
		WithArgs("t1").
		WillReturnRows(rows)

	teacher, err := repo.FindByID(context.Background(), "t1")
	require.NoError(t, err)
	require.Equal(t, "t1", teacher.ID)
	require.Equal(t, 6, teacher.ExperienceYears)
	require.Equal(t, 4.8, teacher.Ratings.AverageRating)
	require.Equal(t, models.TeacherRatings{AverageRating: 4.8, TotalReviews: 40, RecentAverage: 4.8}, teacher.Ratings)
	require.Contains(t, []string(teacher.Specializations), "Mathematics")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTeacherRepositoryListEligibleKeepsFetchOrder(t *testing.T) {
	db, mock, cleanup := newTeacherRepoMock(t)
	defer cleanup()

	repo := NewTeacherRepository(db)
	now := time.Now()
	rows := sqlmock.NewRows(teacherRowColumns)
	addTeacherRow(rows, "older", 8, 4.9, now.Add(-48*time.Hour))
	addTeacherRow(rows, "newer", 3, 4.2, now)

	mock.ExpectQuery("SELECT .+ FROM teachers WHERE active = TRUE AND one_on_one_eligible = TRUE ORDER BY created_at ASC, id ASC").
		WillReturnRows(rows)

	teachers, err := repo.ListEligible(context.Background())
	require.NoError(t, err)
	require.Len(t, teachers, 2)
	require.Equal(t, "older", teachers[0].ID)
	require.Equal(t, "newer", teachers[1].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTeacherRepositoryListWithFilters(t *testing.T) {
	db, mock, cleanup := newTeacherRepoMock(t)
	defer cleanup()

	repo := NewTeacherRepository(db)
	now := time.Now()
	rows := sqlmock.NewRows(teacherRowColumns)
	addTeacherRow(rows, "t1", 6, 4.8, now)

	active := true
	mock.ExpectQuery("SELECT .+ FROM teachers WHERE 1=1 AND active = \\$1 AND \\(LOWER\\(full_name\\) LIKE \\$2").
		WithArgs(true, "%math%").
		WillReturnRows(rows)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM teachers WHERE 1=1 AND active = $1")).
		WithArgs(true, "%math%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	teachers, total, err := repo.List(context.Background(), models.TeacherFilter{Active: &active, Search: "Math"})
	require.NoError(t, err)
	require.Len(t, teachers, 1)
	require.Equal(t, 1, total)
	require.NoError(t, mock.ExpectationsWereMet())
}

package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Harmonic/harmonic/internal/domain"
	"github.com/Harmonic/harmonic/internal/repository/testutil"
)

func assessmentRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "user_id", "completed", "dominant_state", "results", "created_at", "completed_at"})
}

func TestAssessmentRepository_Create(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()

	repo := NewAssessmentRepository(db)
	now := time.Now().UTC()

	t.Run("generates an id", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO assessments \(id,user_id,completed,dominant_state,results,created_at\) VALUES (.+) RETURNING`).
			WithArgs(sqlmock.AnyArg(), "user-1", false, nil, nil, sqlmock.AnyArg()).
			WillReturnRows(assessmentRows().AddRow("a-1", "user-1", false, nil, nil, now, nil))

		assessment, err := repo.Create(context.Background(), domain.AssessmentInsert{UserID: "user-1"})
		require.NoError(t, err)
		assert.Equal(t, "a-1", assessment.ID)
		assert.False(t, assessment.Completed)
		assert.Nil(t, assessment.CompletedAt)
		assert.Nil(t, assessment.Results)
	})

	t.Run("requires a user", func(t *testing.T) {
		_, err := repo.Create(context.Background(), domain.AssessmentInsert{})
		assert.True(t, domain.IsValidationError(err))
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssessmentRepository_GetByID(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()

	repo := NewAssessmentRepository(db)
	now := time.Now().UTC()

	t.Run("decodes results", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM assessments WHERE id = \$1`).
			WithArgs("a-1").
			WillReturnRows(assessmentRows().AddRow("a-1", "user-1", true, "Flow", []byte(`{"Flow":9,"Calm":4}`), now, now))

		assessment, err := repo.GetByID(context.Background(), "a-1")
		require.NoError(t, err)
		require.NotNil(t, assessment.DominantState)
		assert.Equal(t, "Flow", *assessment.DominantState)
		assert.Equal(t, domain.AssessmentResults{"Flow": 9, "Calm": 4}, assessment.Results)
		require.NotNil(t, assessment.CompletedAt)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM assessments WHERE id = \$1`).
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		_, err := repo.GetByID(context.Background(), "missing")
		assert.True(t, domain.IsNotFound(err))
	})

	t.Run("malformed id", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM assessments WHERE id = \$1`).
			WithArgs("abc").
			WillReturnError(&pq.Error{Code: "22P02"})

		_, err := repo.GetByID(context.Background(), "abc")
		assert.True(t, domain.IsNotFound(err))
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssessmentRepository_Update(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()

	repo := NewAssessmentRepository(db)
	now := time.Now().UTC()
	completed := true

	t.Run("completes", func(t *testing.T) {
		mock.ExpectQuery(`UPDATE assessments SET completed = \$1, dominant_state = \$2, results = \$3, completed_at = \$4 WHERE id = \$5 RETURNING`).
			WithArgs(true, "Flow", sqlmock.AnyArg(), now, "a-1").
			WillReturnRows(assessmentRows().AddRow("a-1", "user-1", true, "Flow", []byte(`{"Flow":9}`), now, now))

		assessment, err := repo.Update(context.Background(), "a-1", domain.AssessmentUpdate{
			Completed:     &completed,
			DominantState: domain.StringPtr("Flow"),
			Results:       domain.AssessmentResults{"Flow": 9},
			CompletedAt:   &now,
		})
		require.NoError(t, err)
		assert.True(t, assessment.Completed)
	})

	t.Run("nothing to set", func(t *testing.T) {
		_, err := repo.Update(context.Background(), "a-1", domain.AssessmentUpdate{})
		assert.True(t, domain.IsValidationError(err))
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssessmentRepository_ListByUser(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()

	repo := NewAssessmentRepository(db)
	now := time.Now().UTC()

	mock.ExpectQuery(`SELECT (.+) FROM assessments WHERE user_id = \$1 ORDER BY created_at DESC`).
		WithArgs("user-1").
		WillReturnRows(assessmentRows().
			AddRow("a-2", "user-1", false, nil, nil, now, nil).
			AddRow("a-1", "user-1", true, "Calm", []byte(`{"Calm":5}`), now.Add(-time.Hour), now))

	assessments, err := repo.ListByUser(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, assessments, 2)
	assert.Equal(t, "a-2", assessments[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssessmentRepository_Aggregates(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()

	repo := NewAssessmentRepository(db)
	filter := domain.ClientFilter{CoachID: domain.StringPtr("coach-1")}

	t.Run("count completed", func(t *testing.T) {
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM assessments a JOIN profiles p ON p.id = a.user_id WHERE a.completed = \$1 AND \(p.role = \$2 AND p.coach_id = \$3\)`).
			WithArgs(true, "respondent", "coach-1").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))

		count, err := repo.CountCompleted(context.Background(), filter)
		require.NoError(t, err)
		assert.Equal(t, 12, count)
	})

	t.Run("daily completions", func(t *testing.T) {
		since := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		day := since.Add(24 * time.Hour)

		mock.ExpectQuery(`SELECT date_trunc\('day', a.completed_at\) AS day, COUNT\(\*\) FROM assessments a (.+) AND a.completed_at >= \$4 GROUP BY day ORDER BY day`).
			WithArgs(true, "respondent", "coach-1", since).
			WillReturnRows(sqlmock.NewRows([]string{"day", "count"}).
				AddRow(since, 2).
				AddRow(day, 5))

		counts, err := repo.DailyCompletions(context.Background(), filter, since)
		require.NoError(t, err)
		assert.Equal(t, []domain.DailyCount{{Day: since, Count: 2}, {Day: day, Count: 5}}, counts)
	})

	t.Run("dominant states", func(t *testing.T) {
		mock.ExpectQuery(`SELECT a.dominant_state, COUNT\(\*\) FROM assessments a (.+) AND a.dominant_state IS NOT NULL GROUP BY a.dominant_state ORDER BY COUNT\(\*\) DESC, a.dominant_state`).
			WithArgs(true, "respondent", "coach-1").
			WillReturnRows(sqlmock.NewRows([]string{"dominant_state", "count"}).
				AddRow("Flow", 4).
				AddRow("Calm", 1))

		counts, err := repo.DominantStateCounts(context.Background(), filter)
		require.NoError(t, err)
		require.Len(t, counts, 2)
		assert.Equal(t, "Flow", counts[0].State)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

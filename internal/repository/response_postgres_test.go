package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Harmonic/harmonic/internal/domain"
	"github.com/Harmonic/harmonic/internal/repository/testutil"
)

func TestResponseRepository(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()

	repo := NewResponseRepository(db)
	now := time.Now().UTC()
	columns := []string{"id", "assessment_id", "question_id", "score", "created_at"}

	t.Run("upsert replaces the score", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO responses (.+) ON CONFLICT \(assessment_id, question_id\) DO UPDATE SET score = EXCLUDED.score RETURNING`).
			WithArgs(sqlmock.AnyArg(), "a-1", "q-1", 4, sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows(columns).AddRow("r-1", "a-1", "q-1", 4, now))

		resp, err := repo.Upsert(context.Background(), domain.ResponseInsert{AssessmentID: "a-1", QuestionID: "q-1", Score: 4})
		require.NoError(t, err)
		assert.Equal(t, 4, resp.Score)
	})

	t.Run("score out of range", func(t *testing.T) {
		for _, score := range []int{0, 6} {
			_, err := repo.Upsert(context.Background(), domain.ResponseInsert{AssessmentID: "a-1", QuestionID: "q-1", Score: score})
			assert.True(t, domain.IsValidationError(err), "score %d", score)
		}
	})

	t.Run("list by assessment", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM responses WHERE assessment_id = \$1 ORDER BY created_at ASC`).
			WithArgs("a-1").
			WillReturnRows(sqlmock.NewRows(columns).
				AddRow("r-1", "a-1", "q-1", 4, now).
				AddRow("r-2", "a-1", "q-2", 2, now))

		responses, err := repo.ListByAssessment(context.Background(), "a-1")
		require.NoError(t, err)
		assert.Len(t, responses, 2)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Harmonic/harmonic/internal/domain"
	"github.com/Harmonic/harmonic/internal/repository/testutil"
)

func profileRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "email", "first_name", "last_name", "role", "coach_id", "trainer_id", "created_at", "updated_at",
	})
}

func TestProfileRepository_GetByEmail(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()

	repo := NewProfileRepository(db)
	now := time.Now().UTC()

	t.Run("found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM profiles WHERE email = \$1 LIMIT 1`).
			WithArgs("ada@example.com").
			WillReturnRows(profileRows().AddRow(
				"p-1", "ada@example.com", "Ada", nil, "respondent", "coach-1", nil, now, now,
			))

		profile, err := repo.GetByEmail(context.Background(), "ada@example.com")
		require.NoError(t, err)
		assert.Equal(t, "p-1", profile.ID)
		assert.Equal(t, domain.RoleRespondent, profile.Role)
		require.NotNil(t, profile.FirstName)
		assert.Equal(t, "Ada", *profile.FirstName)
		assert.Nil(t, profile.LastName)
		require.NotNil(t, profile.CoachID)
		assert.Equal(t, "coach-1", *profile.CoachID)
		assert.Nil(t, profile.TrainerID)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM profiles WHERE email = \$1 LIMIT 1`).
			WithArgs("nobody@example.com").
			WillReturnError(sql.ErrNoRows)

		profile, err := repo.GetByEmail(context.Background(), "nobody@example.com")
		assert.Nil(t, profile)
		assert.ErrorIs(t, err, domain.ErrProfileNotFound)
	})

	t.Run("database error", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM profiles WHERE email = \$1`).
			WithArgs("ada@example.com").
			WillReturnError(errors.New("connection reset"))

		_, err := repo.GetByEmail(context.Background(), "ada@example.com")
		require.Error(t, err)
		assert.NotErrorIs(t, err, domain.ErrProfileNotFound)
		assert.Contains(t, err.Error(), "failed to get profile by email")
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileRepository_GetByID(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()

	repo := NewProfileRepository(db)

	mock.ExpectQuery(`SELECT (.+) FROM profiles WHERE id = \$1`).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileRepository_GetByID_MalformedID(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()

	repo := NewProfileRepository(db)

	mock.ExpectQuery(`SELECT (.+) FROM profiles WHERE id = \$1`).
		WithArgs("abc").
		WillReturnError(&pq.Error{Code: "22P02", Message: `invalid input syntax for type uuid: "abc"`})

	_, err := repo.GetByID(context.Background(), "abc")
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileRepository_GetByID_QueryError(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()

	repo := NewProfileRepository(db)

	mock.ExpectQuery(`SELECT (.+) FROM profiles WHERE id = \$1`).
		WithArgs("p-1").
		WillReturnError(errors.New("connection reset"))

	_, err := repo.GetByID(context.Background(), "p-1")
	require.Error(t, err)
	assert.False(t, errors.Is(err, domain.ErrProfileNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileRepository_Insert(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()

	repo := NewProfileRepository(db)
	now := time.Now().UTC()

	insert := domain.ProfileInsert{
		ID:        "p-1",
		Email:     "ada@example.com",
		FirstName: domain.StringPtr("Ada"),
		LastName:  domain.StringPtr("Lovelace"),
		CoachID:   domain.StringPtr("coach-1"),
	}

	t.Run("defaults role to respondent", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO profiles \(id,email,first_name,last_name,role,coach_id,trainer_id,created_at,updated_at\) VALUES (.+) RETURNING`).
			WithArgs("p-1", "ada@example.com", "Ada", "Lovelace", "respondent", "coach-1", nil, sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnRows(profileRows().AddRow(
				"p-1", "ada@example.com", "Ada", "Lovelace", "respondent", "coach-1", nil, now, now,
			))

		profile, err := repo.Insert(context.Background(), insert)
		require.NoError(t, err)
		assert.Equal(t, "Ada Lovelace", profile.FullName())
	})

	t.Run("unique violation", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO profiles`).
			WillReturnError(&pq.Error{Code: "23505"})

		_, err := repo.Insert(context.Background(), insert)
		assert.ErrorIs(t, err, domain.ErrAlreadyExists)
	})

	t.Run("invalid email never reaches the database", func(t *testing.T) {
		bad := insert
		bad.Email = "not-an-email"

		_, err := repo.Insert(context.Background(), bad)
		assert.True(t, domain.IsValidationError(err))
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileRepository_Update(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()

	repo := NewProfileRepository(db)
	now := time.Now().UTC()

	t.Run("sets only provided columns", func(t *testing.T) {
		mock.ExpectQuery(`UPDATE profiles SET first_name = \$1, coach_id = \$2, updated_at = \$3 WHERE id = \$4 RETURNING`).
			WithArgs("Grace", "coach-9", sqlmock.AnyArg(), "p-1").
			WillReturnRows(profileRows().AddRow(
				"p-1", "grace@example.com", "Grace", nil, "respondent", "coach-9", nil, now, now,
			))

		profile, err := repo.Update(context.Background(), "p-1", domain.ProfileUpdate{
			FirstName: domain.StringPtr("Grace"),
			CoachID:   domain.StringPtr("coach-9"),
		})
		require.NoError(t, err)
		assert.Equal(t, "coach-9", *profile.CoachID)
	})

	t.Run("clear coach writes null", func(t *testing.T) {
		mock.ExpectQuery(`UPDATE profiles SET coach_id = \$1, updated_at = \$2 WHERE id = \$3`).
			WithArgs(nil, sqlmock.AnyArg(), "p-1").
			WillReturnRows(profileRows().AddRow(
				"p-1", "grace@example.com", "Grace", nil, "respondent", nil, nil, now, now,
			))

		profile, err := repo.Update(context.Background(), "p-1", domain.ProfileUpdate{ClearCoach: true})
		require.NoError(t, err)
		assert.Nil(t, profile.CoachID)
	})

	t.Run("missing row", func(t *testing.T) {
		mock.ExpectQuery(`UPDATE profiles`).
			WillReturnError(sql.ErrNoRows)

		_, err := repo.Update(context.Background(), "p-404", domain.ProfileUpdate{Role: domain.RolePtr(domain.RoleRespondent)})
		assert.ErrorIs(t, err, domain.ErrProfileNotFound)
	})

	t.Run("empty update is rejected", func(t *testing.T) {
		_, err := repo.Update(context.Background(), "p-1", domain.ProfileUpdate{})
		assert.True(t, domain.IsValidationError(err))
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileRepository_ListClients(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()

	repo := NewProfileRepository(db)
	now := time.Now().UTC()

	mock.ExpectQuery(`SELECT (.+) FROM profiles WHERE \(role = \$1 AND coach_id = \$2\) ORDER BY created_at DESC`).
		WithArgs("respondent", "coach-1").
		WillReturnRows(profileRows().
			AddRow("p-1", "a@example.com", "A", nil, "respondent", "coach-1", nil, now, now).
			AddRow("p-2", "b@example.com", "B", nil, "respondent", "coach-1", nil, now, now))

	profiles, err := repo.ListClients(context.Background(), domain.ClientFilter{CoachID: domain.StringPtr("coach-1")})
	require.NoError(t, err)
	assert.Len(t, profiles, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileRepository_CountClients(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()

	repo := NewProfileRepository(db)

	t.Run("all respondents", func(t *testing.T) {
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM profiles WHERE \(role = \$1\)`).
			WithArgs("respondent").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

		count, err := repo.CountClients(context.Background(), domain.ClientFilter{})
		require.NoError(t, err)
		assert.Equal(t, 7, count)
	})

	t.Run("coach or trainer", func(t *testing.T) {
		mock.ExpectQuery(`WHERE \(role = \$1 AND \(coach_id = \$2 OR trainer_id = \$3\)\)`).
			WithArgs("respondent", "u-1", "u-1").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

		count, err := repo.CountClients(context.Background(), domain.ClientFilter{
			CoachID:   domain.StringPtr("u-1"),
			TrainerID: domain.StringPtr("u-1"),
		})
		require.NoError(t, err)
		assert.Equal(t, 3, count)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupMockDB(t *testing.T) {
	db, mock, cleanup := SetupMockDB(t)
	require.NotNil(t, db)

	mock.ExpectQuery(`SELECT 1`).WillReturnRows(mock.NewRows([]string{"n"}).AddRow(1))

	var n int
	require.NoError(t, db.QueryRow("SELECT 1").Scan(&n))
	assert.Equal(t, 1, n)
	assert.NoError(t, mock.ExpectationsWereMet())

	cleanup()
	assert.Error(t, db.Ping())
}

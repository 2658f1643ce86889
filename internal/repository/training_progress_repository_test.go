package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetops/driver-training-api/internal/models"
)

func progressRows() *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "driver_id", "module_id", "status", "start_date", "completion_date",
		"score", "attempts", "instructor_notes", "created_at", "updated_at",
	}).AddRow("prg-1", "drv-1", "mod-1", "not_started", nil, nil, nil, 0, nil, now, now)
}

func TestTrainingProgressRepositoryListFiltersByDriver(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTrainingProgressRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM training_progress WHERE 1=1 AND driver_id = $1 ORDER BY created_at")).
		WithArgs("drv-1").
		WillReturnRows(progressRows())

	records, err := repo.List(context.Background(), models.ProgressFilter{DriverID: "drv-1"})
	require.NoError(t, err)
	assert.Len(t, records, 1)
	assert.Equal(t, models.StatusNotStarted, records[0].Status)
	assert.Nil(t, records[0].Score)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTrainingProgressRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTrainingProgressRepository(db)

	mock.ExpectExec("INSERT INTO training_progress").
		WithArgs(
			sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
			sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
			sqlmock.AnyArg(),
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	progress := &models.TrainingProgress{DriverID: "drv-1", ModuleID: "mod-1", Status: models.StatusNotStarted}
	require.NoError(t, repo.Create(context.Background(), progress))
	assert.NotEmpty(t, progress.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTrainingProgressRepositoryExistsByDriverAndModule(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTrainingProgressRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM training_progress WHERE driver_id = $1 AND module_id = $2 LIMIT 1")).
		WithArgs("drv-1", "mod-1").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))

	exists, err := repo.ExistsByDriverAndModule(context.Background(), "drv-1", "mod-1")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTrainingProgressRepositoryCompletedMandatoryByDriver(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTrainingProgressRepository(db)

	rows := sqlmock.NewRows([]string{"driver_id", "completed"}).
		AddRow("drv-1", 3).
		AddRow("drv-2", 1)
	mock.ExpectQuery("SELECT p.driver_id, COUNT").
		WithArgs(models.StatusCompleted).
		WillReturnRows(rows)

	counts, err := repo.CompletedMandatoryByDriver(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"drv-1": 3, "drv-2": 1}, counts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

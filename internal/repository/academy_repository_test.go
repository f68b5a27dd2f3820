package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldhouse/sports-cms-api/internal/models"
)

func newAcademyMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func academyRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "location", "description", "images", "is_active", "created_at", "updated_at"}).
		AddRow("a1", "North Academy", "Pune", "Multi-sport campus", pq.StringArray{"https://img/one.jpg"}, true, time.Now(), time.Now())
}

func TestAcademyRepositoryList(t *testing.T) {
	db, mock, cleanup := newAcademyMock(t)
	defer cleanup()
	repo := NewAcademyRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, location, description, images, is_active, created_at, updated_at FROM academies ORDER BY created_at DESC LIMIT 20 OFFSET 20")).
		WillReturnRows(academyRows())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM academies")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(25))

	academies, total, err := repo.List(context.Background(), 2, 20)
	require.NoError(t, err)
	assert.Len(t, academies, 1)
	assert.Equal(t, 25, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAcademyRepositoryFindDetailByIDOrdersBatches(t *testing.T) {
	db, mock, cleanup := newAcademyMock(t)
	defer cleanup()
	repo := NewAcademyRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, location, description, images, is_active, created_at, updated_at FROM academies WHERE id = $1")).
		WithArgs("a1").
		WillReturnRows(academyRows())
	mock.ExpectQuery(regexp.QuoteMeta("FROM batches WHERE sports_academy_id = $1 ORDER BY start_date ASC")).
		WithArgs("a1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "sports_academy_id", "name", "sport", "head_coach", "start_date", "end_date", "start_time", "end_time", "description", "created_at", "updated_at"}).
			AddRow("b1", "a1", "Morning", "Cricket", "Coach A", time.Now(), time.Now(), "06:00", "08:00", nil, time.Now(), time.Now()))

	detail, err := repo.FindDetailByID(context.Background(), "a1")
	require.NoError(t, err)
	assert.Equal(t, "a1", detail.ID)
	assert.Len(t, detail.Batches, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAcademyRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newAcademyMock(t)
	defer cleanup()
	repo := NewAcademyRepository(db)

	mock.ExpectExec("INSERT INTO academies").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	academy := &models.Academy{Name: "North Academy", Location: "Pune", Description: "Campus", Images: pq.StringArray{"https://img/one.jpg"}, IsActive: true}
	err := repo.Create(context.Background(), academy)
	require.NoError(t, err)
	assert.NotEmpty(t, academy.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAcademyRepositoryUpdateReplacesBatchesInOneTransaction(t *testing.T) {
	db, mock, cleanup := newAcademyMock(t)
	defer cleanup()
	repo := NewAcademyRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE academies SET").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM batches WHERE sports_academy_id = $1")).
		WithArgs("a1").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("INSERT INTO batches").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	academy := &models.Academy{ID: "a1", Name: "North Academy", Location: "Pune", Description: "Campus", Images: pq.StringArray{"https://img/one.jpg"}, IsActive: true}
	batches := []models.Batch{{Name: "Morning", Sport: "Cricket", HeadCoach: "Coach A", StartDate: time.Now(), EndDate: time.Now(), StartTime: "06:00", EndTime: "08:00"}}

	err := repo.Update(context.Background(), academy, batches, true)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAcademyRepositoryUpdateRollsBackOnBatchInsertFailure(t *testing.T) {
	db, mock, cleanup := newAcademyMock(t)
	defer cleanup()
	repo := NewAcademyRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE academies SET").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM batches WHERE sports_academy_id = $1")).
		WithArgs("a1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO batches").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnError(errors.New("constraint violation"))
	mock.ExpectRollback()

	academy := &models.Academy{ID: "a1", Name: "North Academy", Location: "Pune", Description: "Campus", Images: pq.StringArray{"https://img/one.jpg"}, IsActive: true}
	batches := []models.Batch{{Name: "Morning", Sport: "Cricket", HeadCoach: "Coach A", StartDate: time.Now(), EndDate: time.Now(), StartTime: "06:00", EndTime: "08:00"}}

	err := repo.Update(context.Background(), academy, batches, true)
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAcademyRepositoryUpdateMissingRow(t *testing.T) {
	db, mock, cleanup := newAcademyMock(t)
	defer cleanup()
	repo := NewAcademyRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE academies SET").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	academy := &models.Academy{ID: "missing", Name: "North Academy", Location: "Pune", Description: "Campus", Images: pq.StringArray{"https://img/one.jpg"}}
	err := repo.Update(context.Background(), academy, nil, false)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAcademyRepositoryListAllWithBatchesGroupsChildren(t *testing.T) {
	db, mock, cleanup := newAcademyMock(t)
	defer cleanup()
	repo := NewAcademyRepository(db)

	academies := sqlmock.NewRows([]string{"id", "name", "location", "description", "images", "is_active", "created_at", "updated_at"}).
		AddRow("a1", "North", "Pune", "d", pq.StringArray{"u1"}, true, time.Now(), time.Now()).
		AddRow("a2", "South", "Goa", "d", pq.StringArray{"u2"}, true, time.Now(), time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("FROM academies ORDER BY created_at DESC")).
		WillReturnRows(academies)
	mock.ExpectQuery(regexp.QuoteMeta("FROM batches ORDER BY start_date ASC")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "sports_academy_id", "name", "sport", "head_coach", "start_date", "end_date", "start_time", "end_time", "description", "created_at", "updated_at"}).
			AddRow("b1", "a1", "Morning", "Cricket", "Coach A", time.Now(), time.Now(), "06:00", "08:00", nil, time.Now(), time.Now()))

	details, err := repo.ListAllWithBatches(context.Background())
	require.NoError(t, err)
	require.Len(t, details, 2)
	assert.Len(t, details[0].Batches, 1)
	assert.NotNil(t, details[1].Batches)
	assert.Empty(t, details[1].Batches)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAcademyRepositoryDeleteMissingRow(t *testing.T) {
	db, mock, cleanup := newAcademyMock(t)
	defer cleanup()
	repo := NewAcademyRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM academies WHERE id = $1")).
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

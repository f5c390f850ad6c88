package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/curriculum-api/internal/models"
)

var curriculumRowColumns = []string{"id", "class_name", "subject", "topic", "description", "created_at", "updated_at"}

func TestCurriculumList(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewCurriculumRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows(curriculumRowColumns).
		AddRow(2, "Grade 5", "English", "Poetry", "", now, now).
		AddRow(1, "Grade 5", "Math", "Fractions", "", now, now)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, class_name, subject, topic, description, created_at, updated_at FROM curriculum ORDER BY class_name ASC, subject ASC, id ASC")).
		WillReturnRows(rows)

	items, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "English", items[0].Subject)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCurriculumListEmptyIsNotNil(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewCurriculumRepository(db)

	mock.ExpectQuery("FROM curriculum ORDER BY").WillReturnRows(sqlmock.NewRows(curriculumRowColumns))

	items, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestCurriculumFindByIDNotFound(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewCurriculumRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM curriculum WHERE id = $1")).
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows(curriculumRowColumns))

	_, err := repo.FindByID(context.Background(), 99)
	assert.True(t, errors.Is(err, sql.ErrNoRows))
}

func TestCurriculumCreateReturnsID(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewCurriculumRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO curriculum (class_name, subject, topic, description, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6) RETURNING id")).
		WithArgs("Grade 5", "Math", "Fractions", "", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))

	item := &models.Curriculum{ClassName: "Grade 5", Subject: "Math", Topic: "Fractions"}
	require.NoError(t, repo.Create(context.Background(), item))
	assert.Equal(t, int64(42), item.ID)
	assert.False(t, item.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCurriculumUpdate(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewCurriculumRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE curriculum SET class_name = ?, subject = ?, topic = ?, description = ?, updated_at = ? WHERE id = ?")).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Update(context.Background(), &models.Curriculum{ID: 3, ClassName: "Grade 6", Subject: "Math", Topic: "Ratios"})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCurriculumDeleteMissingRow(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewCurriculumRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM curriculum WHERE id = $1")).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), 5)
	assert.True(t, errors.Is(err, sql.ErrNoRows))
	assert.NoError(t, mock.ExpectationsWereMet())
}

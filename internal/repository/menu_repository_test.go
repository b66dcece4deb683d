package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeleteRemovesUnorderedItem(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewMenuRepo(db)

	mock.ExpectExec("DELETE FROM menu_items").
		WithArgs("item-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.Delete(context.Background(), "item-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteRefusesItemWithOrderHistory(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewMenuRepo(db)

	mock.ExpectExec("DELETE FROM menu_items").
		WithArgs("item-1").
		WillReturnError(errors.New("Error 1451: Cannot delete or update a parent row: a foreign key constraint fails"))

	err = repo.Delete(context.Background(), "item-1")
	assert.ErrorIs(t, err, ErrMenuItemInUse)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteUnknownItem(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewMenuRepo(db)

	mock.ExpectExec("DELETE FROM menu_items").
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.Delete(context.Background(), "missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

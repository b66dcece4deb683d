package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mealora/food-ordering/internal/model"
)

func TestRegistrationTxCommitsUserProfileAndRoles(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	users := NewUserRepo(db)
	profiles := NewProfileRepo(db)
	roles := NewRoleRepo(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO users").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO profiles").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO user_roles").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO user_roles").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	ctx := context.Background()
	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)

	id, err := users.CreateTx(ctx, tx, "Owner@Example.com", "hash")
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	require.NoError(t, profiles.CreateTx(ctx, tx, id, "Sam Owner"))
	require.NoError(t, roles.GrantTx(ctx, tx, id, model.RoleCustomer))
	require.NoError(t, roles.GrantTx(ctx, tx, id, model.RoleOwner))
	require.NoError(t, tx.Commit())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegistrationTxRollsBackWhenProfileFails(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	users := NewUserRepo(db)
	profiles := NewProfileRepo(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO users").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO profiles").
		WillReturnError(errors.New("profiles table gone"))
	mock.ExpectRollback()

	ctx := context.Background()
	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)

	id, err := users.CreateTx(ctx, tx, "sam@example.com", "hash")
	require.NoError(t, err)
	require.Error(t, profiles.CreateTx(ctx, tx, id, "Sam"))
	require.NoError(t, tx.Rollback())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegistrationTxRollsBackWhenRoleGrantFails(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	users := NewUserRepo(db)
	profiles := NewProfileRepo(db)
	roles := NewRoleRepo(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO users").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO profiles").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO user_roles").
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	ctx := context.Background()
	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)

	id, err := users.CreateTx(ctx, tx, "sam@example.com", "hash")
	require.NoError(t, err)
	require.NoError(t, profiles.CreateTx(ctx, tx, id, "Sam"))
	require.Error(t, roles.GrantTx(ctx, tx, id, model.RoleCustomer))
	require.NoError(t, tx.Rollback())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateTxDuplicateEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	users := NewUserRepo(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO users").
		WillReturnError(errors.New("Error 1062: Duplicate entry 'sam@example.com' for key 'uq_users_email'"))
	mock.ExpectRollback()

	ctx := context.Background()
	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)

	_, err = users.CreateTx(ctx, tx, "sam@example.com", "hash")
	assert.ErrorIs(t, err, ErrEmailExists)
	require.NoError(t, tx.Rollback())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGrantTxDuplicateRoleIsNoop(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	roles := NewRoleRepo(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO user_roles").
		WillReturnError(errors.New("Error 1062: Duplicate entry"))
	mock.ExpectCommit()

	ctx := context.Background()
	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)

	assert.NoError(t, roles.GrantTx(ctx, tx, "user-1", model.RoleCustomer))
	require.NoError(t, tx.Commit())

	assert.NoError(t, mock.ExpectationsWereMet())
}

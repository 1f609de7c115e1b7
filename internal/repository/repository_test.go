package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"movieapi/internal/model"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		Logger:                 logger.Discard,
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	require.NoError(t, err)
	return gormDB, mock
}

const lockUserQuery = "SELECT `id` FROM `users` WHERE `users`.`id` = \\? .*FOR UPDATE"

func TestUserRepository_Update(t *testing.T) {
	gormDB, mock := newMockDB(t)
	repo := NewUserRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectQuery(lockUserQuery).WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectExec("^UPDATE `users` SET ").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Update(context.Background(), &model.User{ID: 1, Username: "alice", Age: 31})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Update_DeletedUserIsNotRecreated(t *testing.T) {
	gormDB, mock := newMockDB(t)
	repo := NewUserRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectQuery(lockUserQuery).WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	err := repo.Update(context.Background(), &model.User{ID: 1, Username: "alice"})

	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_UpdateLastLogin_ZeroRowsIsNotAnError(t *testing.T) {
	gormDB, mock := newMockDB(t)
	repo := NewUserRepository(gormDB)

	mock.ExpectExec("^UPDATE `users` SET `last_login`=\\?").WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateLastLogin(context.Background(), 1, time.Now())

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Delete(t *testing.T) {
	gormDB, mock := newMockDB(t)
	repo := NewUserRepository(gormDB)

	mock.ExpectExec("^DELETE FROM `users` WHERE `users`.`id` = \\?").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("^DELETE FROM `users` WHERE `users`.`id` = \\?").WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, repo.Delete(context.Background(), 1))
	assert.ErrorIs(t, repo.Delete(context.Background(), 1), gorm.ErrRecordNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Search(t *testing.T) {
	gormDB, mock := newMockDB(t)
	repo := NewUserRepository(gormDB)
	age := 20

	mock.ExpectQuery("^SELECT \\* FROM `users` WHERE `age` = \\? ORDER BY id").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "age"}).
			AddRow(1, "u1", 20).
			AddRow(3, "u3", 20))

	users, err := repo.Search(context.Background(), model.UserFilter{Age: &age})

	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "u1", users[0].Username)
	assert.Equal(t, "u3", users[1].Username)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMovieRepository_Update_DeletedMovieIsNotRecreated(t *testing.T) {
	gormDB, mock := newMockDB(t)
	repo := NewMovieRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT `id` FROM `movies` WHERE `movies`.`id` = \\? .*FOR UPDATE").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	err := repo.Update(context.Background(), &model.Movie{ID: 4, Title: "Heat", Playtime: 170})

	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

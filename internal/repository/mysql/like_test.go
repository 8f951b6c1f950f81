package mysql

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	mysqldriver "gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/openmuse/gallery/domain"
)

func testGormDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(mysqldriver.New(mysqldriver.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return gdb, mock
}

func TestLikeRepository_Get(t *testing.T) {
	gdb, mock := testGormDB(t)
	repo := NewLikeRepository(gdb)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `likes` WHERE item_id = ? ORDER BY `likes`.`item_id` LIMIT ?")).
		WithArgs("436535", 1).
		WillReturnRows(sqlmock.NewRows([]string{"item_id", "likes"}).AddRow("436535", 12))

	likes, err := repo.Get(context.Background(), "436535")

	require.NoError(t, err)
	assert.Equal(t, int64(12), likes)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLikeRepository_GetUnknownItem(t *testing.T) {
	gdb, mock := testGormDB(t)
	repo := NewLikeRepository(gdb)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `likes`")).
		WithArgs("436535", 1).
		WillReturnRows(sqlmock.NewRows([]string{"item_id", "likes"}))

	_, err := repo.Get(context.Background(), "436535")

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLikeRepository_Increment(t *testing.T) {
	gdb, mock := testGormDB(t)
	repo := NewLikeRepository(gdb)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO likes (item_id, likes, updated_at) VALUES (?, 1, NOW()) ON DUPLICATE KEY UPDATE likes = likes + 1, updated_at = NOW()")).
		WithArgs("436535").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `likes`")).
		WithArgs("436535", 1).
		WillReturnRows(sqlmock.NewRows([]string{"item_id", "likes"}).AddRow("436535", 13))

	likes, err := repo.Increment(context.Background(), "436535")

	require.NoError(t, err)
	assert.Equal(t, int64(13), likes)
	assert.NoError(t, mock.ExpectationsWereMet())
}

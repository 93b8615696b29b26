package gorm

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/trailpost/tourcms/pkg/apperr"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 conn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		// gorm.Open pings the pool unless told not to; every ping here
		// must be one the test expected.
		DisableAutomaticPing: true,
	})
	require.NoError(t, err)
	return db, mock
}

func TestHealthStorePing(t *testing.T) {
	t.Run("healthy connection", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectPing()

		assert.NoError(t, NewHealthStore(db).Ping())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("dead connection surfaces the error", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectPing().WillReturnError(errors.New("connection refused"))

		err := NewHealthStore(db).Ping()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "connection refused")
	})
}

func TestEnsureSlugFree(t *testing.T) {
	countRows := func(n int64) *sqlmock.Rows {
		return sqlmock.NewRows([]string{"count"}).AddRow(n)
	}

	t.Run("free slug passes", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(`SELECT count\(\*\) FROM "regions" WHERE slug = \$1`).
			WithArgs("araku-valley").
			WillReturnRows(countRows(0))

		assert.NoError(t, ensureSlugFree(db, "regions", "araku-valley", 0))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("taken slug conflicts", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(`SELECT count\(\*\) FROM "regions" WHERE slug = \$1`).
			WithArgs("araku-valley").
			WillReturnRows(countRows(1))

		err := ensureSlugFree(db, "regions", "araku-valley", 0)
		require.Error(t, err)
		assert.True(t, apperr.IsKind(err, apperr.KindConflict))
	})

	t.Run("update skips the record's own row", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(`SELECT count\(\*\) FROM "villages" WHERE slug = \$1 AND id <> \$2`).
			WithArgs("araku-valley", uint(7)).
			WillReturnRows(countRows(0))

		assert.NoError(t, ensureSlugFree(db, "villages", "araku-valley", 7))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty slug is a no-op", func(t *testing.T) {
		db, _ := newMockDB(t)
		assert.NoError(t, ensureSlugFree(db, "regions", "", 0))
	})

	t.Run("query failure maps to a database error", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(`SELECT count\(\*\) FROM "regions"`).
			WillReturnError(errors.New("relation does not exist"))

		err := ensureSlugFree(db, "regions", "araku-valley", 0)
		require.Error(t, err)
		assert.True(t, apperr.IsKind(err, apperr.KindDatabase))
	})
}

func TestFindErr(t *testing.T) {
	t.Run("record not found", func(t *testing.T) {
		err := findErr("village", uint(42), gorm.ErrRecordNotFound)
		assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
		assert.Equal(t, "village 42 not found", err.Error())
	})

	t.Run("other errors are database errors", func(t *testing.T) {
		err := findErr("village", uint(42), errors.New("disk full"))
		assert.True(t, apperr.IsKind(err, apperr.KindDatabase))
	})
}

func TestDBErrPreservesTaxonomy(t *testing.T) {
	conflict := apperr.Conflict("slug taken")
	assert.Same(t, conflict, dbErr("create region", conflict))

	wrapped := dbErr("create region", errors.New("deadlock"))
	assert.True(t, apperr.IsKind(wrapped, apperr.KindDatabase))
}

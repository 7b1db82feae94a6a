package dbtx_test

import (
	"context"
	"testing"

	"github.com/cha0jun/leavey/internal/shared/dbtx"
	"github.com/cha0jun/leavey/internal/shared/testdb"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type note struct {
	ID   uint `gorm:"primaryKey"`
	Body string
}

func TestConn(t *testing.T) {
	ctx := context.Background()
	db := testdb.Open(t, &note{})
	sqlDB, err := db.DB()
	require.NoError(t, err)

	t.Run("rollback discards writes made through the handle", func(t *testing.T) {
		tx, err := sqlDB.BeginTx(ctx, nil)
		require.NoError(t, err)

		require.NoError(t, dbtx.Conn(ctx, db, tx).Create(&note{Body: "draft"}).Error)
		require.NoError(t, tx.Rollback())

		var count int64
		require.NoError(t, db.Model(&note{}).Count(&count).Error)
		assert.Zero(t, count)
	})

	t.Run("commit keeps writes", func(t *testing.T) {
		tx, err := sqlDB.BeginTx(ctx, nil)
		require.NoError(t, err)

		require.NoError(t, dbtx.Conn(ctx, db, tx).Create(&note{Body: "final"}).Error)
		require.NoError(t, tx.Commit())

		var count int64
		require.NoError(t, db.Model(&note{}).Where("body = ?", "final").Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})

	t.Run("nil tx uses the pool", func(t *testing.T) {
		require.NoError(t, dbtx.Conn(ctx, db, nil).Create(&note{Body: "direct"}).Error)

		var count int64
		require.NoError(t, db.Model(&note{}).Where("body = ?", "direct").Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})
}

package category_test

import (
	"context"
	"testing"

	"github.com/cha0jun/leavey/internal/category"
	categoryerrors "github.com/cha0jun/leavey/internal/category/errors"
	"github.com/cha0jun/leavey/internal/shared/testdb"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryRepository_WithService(t *testing.T) {
	ctx := context.Background()
	db := testdb.Open(t, &category.LeaveCategory{})
	sqlDB, err := db.DB()
	require.NoError(t, err)
	repo := category.NewRepository(db)
	svc := category.NewService(sqlDB, repo, nil)

	off := false
	created, err := svc.Create(ctx, admin, category.CreateCategoryRequest{Name: "Unpaid", IsChargeable: &off})
	require.NoError(t, err)

	t.Run("false chargeable is persisted", func(t *testing.T) {
		var stored category.LeaveCategory
		require.NoError(t, db.First(&stored, "id = ?", created.ID).Error)
		assert.False(t, stored.IsChargeable)
	})

	t.Run("duplicate name is conflict", func(t *testing.T) {
		_, err := svc.Create(ctx, admin, category.CreateCategoryRequest{Name: "Unpaid"})
		assert.ErrorIs(t, err, categoryerrors.ErrCategoryNameTaken)
	})

	t.Run("list is ordered by name", func(t *testing.T) {
		_, err := svc.Create(ctx, admin, category.CreateCategoryRequest{Name: "Annual"})
		require.NoError(t, err)

		all, err := svc.GetAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, "Annual", all[0].Name)
		assert.Equal(t, "Unpaid", all[1].Name)
	})
}

package user_test

import (
	"context"
	"testing"

	"github.com/cha0jun/leavey/internal/domain"
	"github.com/cha0jun/leavey/internal/shared/testdb"
	"github.com/cha0jun/leavey/internal/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_FindAllAndUnique(t *testing.T) {
	ctx := context.Background()
	db := testdb.Open(t, &user.User{})
	repo := user.NewRepository(db)

	seed := []*user.User{
		{ExternalID: "s1", Email: "b@example.com", FullName: "Blake", Role: domain.RoleContractor, IsActive: true},
		{ExternalID: "s2", Email: "a@example.com", FullName: "Avery", Role: domain.RoleContractor, IsActive: true},
		{ExternalID: "s3", Email: "m@example.com", FullName: "Morgan", Role: domain.RoleManager, IsActive: true},
	}
	for _, u := range seed {
		require.NoError(t, repo.Create(ctx, u))
	}

	contractor := domain.RoleContractor
	users, total, err := repo.FindAll(ctx, user.Filter{Role: &contractor})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, users, 2)
	assert.Equal(t, "Avery", users[0].FullName)

	page, total, err := repo.FindAll(ctx, user.Filter{Offset: 1, Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, page, 1)
	assert.Equal(t, "Blake", page[0].FullName)

	found, err := repo.FindByExternalID(ctx, "s3")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleManager, found.Role)

	dup := &user.User{ExternalID: "s1", Email: "other@example.com", FullName: "Dup", Role: domain.RoleContractor, IsActive: true}
	assert.Error(t, repo.Create(ctx, dup))
}

func TestService_ResolveProvisionsOnce(t *testing.T) {
	ctx := context.Background()
	db := testdb.Open(t, &user.User{})
	sqlDB, err := db.DB()
	require.NoError(t, err)

	svc := user.NewService(sqlDB, user.NewRepository(db), nil)

	first, err := svc.Resolve(ctx, domain.Identity{Subject: "idp|42", Email: "new@example.com", Name: "New Person"})
	require.NoError(t, err)
	second, err := svc.Resolve(ctx, domain.Identity{Subject: "idp|42"})
	require.NoError(t, err)

	assert.Equal(t, first.UserID, second.UserID)
	assert.Equal(t, domain.RoleContractor, first.Role)

	var count int64
	require.NoError(t, db.Model(&user.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/fitstack/clubledger/internal/user/domain"
	"github.com/fitstack/clubledger/internal/user/repository"
	"github.com/fitstack/clubledger/pkg/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService(t *testing.T) domain.Service {
	t.Helper()

	conn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&domain.User{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	return New(Params{
		DB:    conn,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  repository.Provide(),
	})
}

func TestCreateAndGetUser(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.CreateUserRequest{FullName: "  Asha Rao  ", Phone: "9000000001"})
	require.NoError(t, err)
	assert.Equal(t, "Asha Rao", created.FullName)
	assert.Equal(t, domain.FeeStatusUnpaid, created.FeeStatus)

	found, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	_, err = svc.Create(ctx, domain.CreateUserRequest{FullName: "   "})
	assert.ErrorIs(t, err, domain.ErrInvalidName)
}

func TestSetFeeStatus(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.CreateUserRequest{FullName: "Ravi"})
	require.NoError(t, err)

	require.NoError(t, svc.SetFeeStatus(ctx, created.ID, domain.FeeStatusPaid))

	found, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.FeeStatusPaid, found.FeeStatus)
}

func TestListUsersPaginates(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := svc.Create(ctx, domain.CreateUserRequest{FullName: "Member"})
		require.NoError(t, err)
	}

	first, err := svc.List(ctx, domain.ListUsersRequest{PageSize: 2})
	require.NoError(t, err)
	require.Len(t, first.Users, 2)
	require.True(t, first.PageInfo.HasMore)
	require.NotEmpty(t, first.PageInfo.NextPageToken)

	second, err := svc.List(ctx, domain.ListUsersRequest{PageSize: 2, PageToken: first.PageInfo.NextPageToken})
	require.NoError(t, err)
	require.Len(t, second.Users, 2)
	assert.True(t, second.PageInfo.HasMore)

	// No overlap between pages.
	assert.NotEqual(t, first.Users[1].ID, second.Users[0].ID)

	third, err := svc.List(ctx, domain.ListUsersRequest{PageSize: 2, PageToken: second.PageInfo.NextPageToken})
	require.NoError(t, err)
	require.Len(t, third.Users, 1)
	assert.False(t, third.PageInfo.HasMore)

	_, err = svc.List(ctx, domain.ListUsersRequest{PageToken: "not-base64!!"})
	assert.ErrorIs(t, err, domain.ErrInvalidPageToken)
}

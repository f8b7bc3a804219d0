package repository

import (
	"context"
	"testing"
	"time"

	"stroymonitor/internal/entity"

	"github.com/stretchr/testify/require"
)

func TestActivityLogRepository_ListNewestFirst(t *testing.T) {
	repo := NewActivityLogRepository(newTestDB(t))
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i, action := range []entity.ActivityAction{
		entity.ActionLoginFailed,
		entity.ActionLoginSuccess,
		entity.ActionUserCreated,
	} {
		log := &entity.ActivityLog{
			UserEmail: "admin@example.com",
			Action:    action,
		}
		log.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, repo.Create(ctx, log))
	}

	logs, err := repo.List(ctx, 2, 0)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	require.Equal(t, entity.ActionUserCreated, logs[0].Action)
	require.Equal(t, entity.ActionLoginSuccess, logs[1].Action)

	paged, err := repo.List(ctx, 2, 2)
	require.NoError(t, err)
	require.Len(t, paged, 1)
	require.Equal(t, entity.ActionLoginFailed, paged[0].Action)
}

func TestActivityLogRepository_NullableActor(t *testing.T) {
	repo := NewActivityLogRepository(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &entity.ActivityLog{
		UserEmail: "ghost@example.com",
		Action:    entity.ActionLoginFailed,
	}))

	logs, err := repo.List(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	require.Nil(t, logs[0].UserID)
	require.Equal(t, "ghost@example.com", logs[0].UserEmail)
}

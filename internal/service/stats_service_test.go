package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/greenwatch/greenwatch-api/internal/models"
	"github.com/greenwatch/greenwatch-api/internal/repository"
)

func seedStatsData(t *testing.T, db *gorm.DB) {
	t.Helper()

	reporter := models.User{Name: "Sari", Email: "sari@example.com", PasswordHash: "x", Role: models.RoleUser}
	admin := models.User{Name: "Dewi", Email: "dewi@example.com", PasswordHash: "x", Role: models.RoleAdmin}
	require.NoError(t, db.Create(&reporter).Error)
	require.NoError(t, db.Create(&admin).Error)

	statuses := []string{models.StatusPending, models.StatusResolved, models.StatusResolved}
	for _, status := range statuses {
		report := models.Report{UserID: reporter.ID, Latitude: 1, Longitude: 2, Severity: models.SeverityLow, Status: status}
		require.NoError(t, db.Create(&report).Error)
	}
}

func TestStatsServicePublicAggregates(t *testing.T) {
	db := setupServiceDB(t)
	seedStatsData(t, db)

	svc := NewStatsService(repository.NewStatsRepository(db), nil, time.Minute, zerolog.Nop())

	stats, err := svc.Public(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(3), stats.Reports)
	require.Equal(t, int64(1), stats.Communities, "admins do not count as communities")
	require.Equal(t, int64(2), stats.Removed)
	require.Len(t, stats.Leaderboard, 1)
	require.Equal(t, "Sari", stats.Leaderboard[0].Name)
	require.Equal(t, int64(3), stats.Leaderboard[0].ReportCount)
}

func TestStatsServicePublicServesFromCache(t *testing.T) {
	db := setupServiceDB(t)
	seedStatsData(t, db)

	mini := miniredis.RunT(t)
	cache := redis.NewClient(&redis.Options{Addr: mini.Addr()})
	t.Cleanup(func() { _ = cache.Close() })

	svc := NewStatsService(repository.NewStatsRepository(db), cache, time.Minute, zerolog.Nop())

	first, err := svc.Public(context.Background())
	require.NoError(t, err)

	// New rows must not show up until the cache entry expires.
	extra := models.Report{UserID: 1, Latitude: 3, Longitude: 4, Severity: models.SeverityHigh, Status: models.StatusPending}
	require.NoError(t, db.Create(&extra).Error)

	second, err := svc.Public(context.Background())
	require.NoError(t, err)
	require.Equal(t, first.Reports, second.Reports)

	mini.FastForward(2 * time.Minute)

	third, err := svc.Public(context.Background())
	require.NoError(t, err)
	require.Equal(t, first.Reports+1, third.Reports)
}

package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/greenwatch/greenwatch-api/internal/dto"
	"github.com/greenwatch/greenwatch-api/internal/models"
	"github.com/greenwatch/greenwatch-api/internal/repository"
)

const (
	statsCacheKey   = "stats:public"
	leaderboardSize = 3
)

// StatsService serves the public aggregate statistics.
type StatsService interface {
	Public(ctx context.Context) (dto.PublicStatsResponse, error)
}

type statsService struct {
	stats  repository.StatsRepository
	cache  *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

// NewStatsService constructs the stats service. The cache client may be nil;
// every request then falls through to the store.
func NewStatsService(stats repository.StatsRepository, cache *redis.Client, ttl time.Duration, logger zerolog.Logger) StatsService {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}

	return &statsService{
		stats:  stats,
		cache:  cache,
		ttl:    ttl,
		logger: logger.With().Str("component", "stats_service").Logger(),
	}
}

func (s *statsService) Public(ctx context.Context) (dto.PublicStatsResponse, error) {
	if cached, ok := s.fromCache(ctx); ok {
		return cached, nil
	}

	response, err := s.compute(ctx)
	if err != nil {
		return dto.PublicStatsResponse{}, err
	}

	s.store(ctx, response)
	return response, nil
}

func (s *statsService) compute(ctx context.Context) (dto.PublicStatsResponse, error) {
	reports, err := s.stats.CountReports(ctx)
	if err != nil {
		return dto.PublicStatsResponse{}, err
	}

	communities, err := s.stats.CountUsersWithRole(ctx, models.RoleUser)
	if err != nil {
		return dto.PublicStatsResponse{}, err
	}

	removed, err := s.stats.CountReportsWithStatus(ctx, models.StatusResolved)
	if err != nil {
		return dto.PublicStatsResponse{}, err
	}

	rows, err := s.stats.Leaderboard(ctx, leaderboardSize)
	if err != nil {
		return dto.PublicStatsResponse{}, err
	}

	return dto.PublicStatsResponse{
		Reports:     reports,
		Communities: communities,
		Removed:     removed,
		Leaderboard: dto.NewLeaderboard(rows),
	}, nil
}

func (s *statsService) fromCache(ctx context.Context) (dto.PublicStatsResponse, bool) {
	if s.cache == nil {
		return dto.PublicStatsResponse{}, false
	}

	payload, err := s.cache.Get(ctx, statsCacheKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("stats cache read failed")
		}
		return dto.PublicStatsResponse{}, false
	}

	var response dto.PublicStatsResponse
	if err := json.Unmarshal(payload, &response); err != nil {
		s.logger.Warn().Err(err).Msg("stats cache payload corrupt")
		return dto.PublicStatsResponse{}, false
	}

	return response, true
}

func (s *statsService) store(ctx context.Context, response dto.PublicStatsResponse) {
	if s.cache == nil {
		return
	}

	payload, err := json.Marshal(response)
	if err != nil {
		return
	}

	if err := s.cache.Set(ctx, statsCacheKey, payload, s.ttl).Err(); err != nil {
		s.logger.Warn().Err(err).Msg("stats cache write failed")
	}
}

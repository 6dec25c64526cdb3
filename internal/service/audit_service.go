package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/greenwatch/greenwatch-api/internal/dto"
	"github.com/greenwatch/greenwatch-api/internal/repository"
)

// recentFeedSize is the fixed page size of the activity feed. The feed is a
// glance view, not a full audit browser, so there is no cursor.
const recentFeedSize = 10

// AuditService projects the moderation trail into the admin activity feed.
type AuditService interface {
	RecentActivity(ctx context.Context) ([]dto.AuditEntryResponse, error)
}

type auditService struct {
	logs   repository.ActionLogRepository
	logger zerolog.Logger
}

// NewAuditService constructs the audit service.
func NewAuditService(logs repository.ActionLogRepository, logger zerolog.Logger) AuditService {
	return &auditService{
		logs:   logs,
		logger: logger.With().Str("component", "audit_service").Logger(),
	}
}

func (s *auditService) RecentActivity(ctx context.Context) ([]dto.AuditEntryResponse, error) {
	rows, err := s.logs.ListRecent(ctx, recentFeedSize)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to load activity feed")
		return nil, err
	}

	entries := make([]dto.AuditEntryResponse, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, dto.NewAuditEntryResponse(row))
	}

	return entries, nil
}

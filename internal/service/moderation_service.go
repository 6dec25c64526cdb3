package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/greenwatch/greenwatch-api/internal/dto"
	"github.com/greenwatch/greenwatch-api/internal/models"
	"github.com/greenwatch/greenwatch-api/internal/repository"
)

var (
	// ErrReportNotFound indicates the target report does not exist.
	ErrReportNotFound = errors.New("report not found")
	// ErrNotModerator indicates the caller does not carry the admin role.
	ErrNotModerator = errors.New("moderator role required")
	// ErrTransitionBlocked indicates strict mode refused to reopen a
	// resolved report.
	ErrTransitionBlocked = errors.New("resolved reports cannot be reopened")
)

// ModerationService is the sole authority over report status changes and, by
// extension, the only producer of audit entries.
type ModerationService interface {
	Apply(ctx context.Context, reportID uint, action models.ModerationAction, payload dto.ModerationRequest, actor Actor) (string, error)
}

type moderationService struct {
	reports   repository.ReportRepository
	validator *validator.Validate
	strict    bool
	logger    zerolog.Logger
}

// NewModerationService constructs the moderation service. With strict set,
// reports can no longer leave the RESOLVED status; the default matches the
// historical loose behavior where any action applies from any status.
func NewModerationService(reports repository.ReportRepository, validator *validator.Validate, strict bool, logger zerolog.Logger) ModerationService {
	return &moderationService{
		reports:   reports,
		validator: validator,
		strict:    strict,
		logger:    logger.With().Str("component", "moderation_service").Logger(),
	}
}

func (s *moderationService) Apply(ctx context.Context, reportID uint, action models.ModerationAction, payload dto.ModerationRequest, actor Actor) (string, error) {
	// The route guard already checks the role; re-verify so the service can
	// never be driven by a non-admin through another path.
	if !actor.IsAdmin() {
		return "", ErrNotModerator
	}

	if err := s.validator.Struct(payload); err != nil {
		return "", err
	}

	target := action.TargetStatus()

	err := s.reports.ApplyStatus(ctx, reportID, repository.StatusChange{
		Status:       target,
		Notes:        strings.TrimSpace(payload.Notes),
		AdminID:      actor.ID,
		KeepResolved: s.strict,
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrReportNotFound
		}
		if errors.Is(err, repository.ErrResolvedLocked) {
			return "", ErrTransitionBlocked
		}
		s.logger.Error().Err(err).
			Uint("report_id", reportID).
			Str("action", action.String()).
			Msg("failed to apply status transition")
		return "", err
	}

	s.logger.Info().
		Uint("report_id", reportID).
		Uint("admin_id", actor.ID).
		Str("status", target).
		Msg("report status updated")

	return fmt.Sprintf("report %s", strings.ToLower(target)), nil
}

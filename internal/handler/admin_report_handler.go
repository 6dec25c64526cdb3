package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/greenwatch/greenwatch-api/internal/dto"
	"github.com/greenwatch/greenwatch-api/internal/models"
	"github.com/greenwatch/greenwatch-api/internal/service"
	"github.com/greenwatch/greenwatch-api/internal/utils"
)

// AdminReportHandler wires the moderation and audit endpoints.
type AdminReportHandler struct {
	moderation service.ModerationService
	reports    service.ReportService
	audit      service.AuditService
	logger     zerolog.Logger
}

// NewAdminReportHandler constructs the handler.
func NewAdminReportHandler(moderation service.ModerationService, reports service.ReportService, audit service.AuditService, logger zerolog.Logger) *AdminReportHandler {
	return &AdminReportHandler{
		moderation: moderation,
		reports:    reports,
		audit:      audit,
		logger:     logger.With().Str("component", "admin_report_handler").Logger(),
	}
}

// Register attaches moderation routes to the admin group.
func (h *AdminReportHandler) Register(router fiber.Router) {
	router.Put("/reports/:id/:action", h.transition)
	router.Get("/logs", h.logs)
	router.Get("/report/:id", h.detail)
}

func (h *AdminReportHandler) transition(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	action, err := models.ParseModerationAction(c.Params("action"))
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid action")
	}

	var payload dto.ModerationRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&payload); err != nil {
			return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
		}
	}

	message, err := h.moderation.Apply(c.Context(), id, action, payload, actorFromContext(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotModerator):
			return utils.SendError(c, fiber.StatusForbidden, "admin access required")
		case errors.Is(err, service.ErrReportNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "report not found")
		case errors.Is(err, service.ErrTransitionBlocked):
			return utils.SendError(c, fiber.StatusConflict, "resolved reports cannot be reopened")
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, "invalid notes")
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to apply transition")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to update report")
		}
	}

	return utils.SendSuccess(c, message, nil)
}

func (h *AdminReportHandler) logs(c *fiber.Ctx) error {
	entries, err := h.audit.RecentActivity(c.Context())
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to load audit feed")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to load logs")
	}

	return utils.SendSuccess(c, "logs retrieved", entries)
}

func (h *AdminReportHandler) detail(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	report, err := h.reports.AdminDetail(c.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrReportNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "report not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to fetch report detail")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to fetch report")
	}

	return utils.SendSuccess(c, "report retrieved", report)
}

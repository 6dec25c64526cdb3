package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/greenwatch/greenwatch-api/internal/service"
	"github.com/greenwatch/greenwatch-api/internal/utils"
)

// StatsHandler serves the public statistics endpoint.
type StatsHandler struct {
	service service.StatsService
	logger  zerolog.Logger
}

// NewStatsHandler constructs the handler.
func NewStatsHandler(service service.StatsService, logger zerolog.Logger) *StatsHandler {
	return &StatsHandler{
		service: service,
		logger:  logger.With().Str("component", "stats_handler").Logger(),
	}
}

// Register attaches the stats routes.
func (h *StatsHandler) Register(router fiber.Router) {
	router.Get("/public", h.public)
}

func (h *StatsHandler) public(c *fiber.Ctx) error {
	stats, err := h.service.Public(c.Context())
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to compute public stats")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to load stats")
	}

	return utils.SendSuccess(c, "stats retrieved", stats)
}

package handler

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/greenwatch/greenwatch-api/internal/dto"
	"github.com/greenwatch/greenwatch-api/internal/service"
	"github.com/greenwatch/greenwatch-api/internal/utils"
)

// ReportHandler wires citizen-facing report endpoints.
type ReportHandler struct {
	service service.ReportService
	logger  zerolog.Logger
}

// NewReportHandler constructs the handler.
func NewReportHandler(service service.ReportService, logger zerolog.Logger) *ReportHandler {
	return &ReportHandler{
		service: service,
		logger:  logger.With().Str("component", "report_handler").Logger(),
	}
}

// Register attaches report routes. Listing all reports is public; submission
// and own-report listing require authentication.
func (h *ReportHandler) Register(router fiber.Router, protect fiber.Handler) {
	router.Post("", protect, h.create)
	router.Get("/my", protect, h.listMine)
	router.Get("/all", h.listAll)
}

func (h *ReportHandler) create(c *fiber.Ctx) error {
	payload, err := parseReportForm(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	// The image part is optional; absence is not an error.
	image, _ := c.FormFile("image")

	report, err := h.service.Submit(c.Context(), userIDFromContext(c), payload, image)
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, "invalid report fields")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to submit report")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to submit report")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "report submitted", fiber.Map{"report_id": report.ID})
}

func (h *ReportHandler) listMine(c *fiber.Ctx) error {
	reports, err := h.service.ListMine(c.Context(), userIDFromContext(c))
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list own reports")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list reports")
	}

	return utils.SendSuccess(c, "reports retrieved", reports)
}

func (h *ReportHandler) listAll(c *fiber.Ctx) error {
	reports, err := h.service.ListAll(c.Context())
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list reports")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list reports")
	}

	return utils.SendSuccess(c, "reports retrieved", reports)
}

func parseReportForm(c *fiber.Ctx) (dto.ReportCreateRequest, error) {
	latitude, err := strconv.ParseFloat(strings.TrimSpace(c.FormValue("latitude")), 64)
	if err != nil {
		return dto.ReportCreateRequest{}, fiber.NewError(fiber.StatusBadRequest, "latitude is required")
	}

	longitude, err := strconv.ParseFloat(strings.TrimSpace(c.FormValue("longitude")), 64)
	if err != nil {
		return dto.ReportCreateRequest{}, fiber.NewError(fiber.StatusBadRequest, "longitude is required")
	}

	return dto.ReportCreateRequest{
		Latitude:  latitude,
		Longitude: longitude,
		Address:   c.FormValue("address"),
		Severity:  c.FormValue("severity"),
	}, nil
}

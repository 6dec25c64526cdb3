package service

import (
	"context"
	"errors"
	"io"
	"mime/multipart"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/greenwatch/greenwatch-api/internal/dto"
	"github.com/greenwatch/greenwatch-api/internal/models"
	"github.com/greenwatch/greenwatch-api/internal/repository"
)

// FileUploader abstracts the image storage destination.
type FileUploader interface {
	Upload(ctx context.Context, name string, reader io.Reader) (string, error)
}

// ReportService covers report submission and the read surfaces around it.
type ReportService interface {
	Submit(ctx context.Context, userID uint, req dto.ReportCreateRequest, image *multipart.FileHeader) (dto.ReportResponse, error)
	ListMine(ctx context.Context, userID uint) ([]dto.ReportResponse, error)
	ListAll(ctx context.Context) ([]dto.ReportResponse, error)
	AdminDetail(ctx context.Context, id uint) (dto.AdminReportDetailResponse, error)
}

type reportService struct {
	reports   repository.ReportRepository
	validator *validator.Validate
	uploader  FileUploader
	logger    zerolog.Logger
}

// NewReportService constructs the report service. The uploader may be nil
// when no image storage is configured; submissions then persist without one.
func NewReportService(reports repository.ReportRepository, validator *validator.Validate, uploader FileUploader, logger zerolog.Logger) ReportService {
	return &reportService{
		reports:   reports,
		validator: validator,
		uploader:  uploader,
		logger:    logger.With().Str("component", "report_service").Logger(),
	}
}

func (s *reportService) Submit(ctx context.Context, userID uint, req dto.ReportCreateRequest, image *multipart.FileHeader) (dto.ReportResponse, error) {
	req.Severity = strings.ToUpper(strings.TrimSpace(req.Severity))
	if err := s.validator.Struct(req); err != nil {
		return dto.ReportResponse{}, err
	}

	var imageURL string
	if image != nil && s.uploader != nil {
		url, err := s.uploadImage(ctx, image)
		if err != nil {
			s.logger.Error().Err(err).Msg("failed to upload report image")
			return dto.ReportResponse{}, err
		}
		imageURL = url
	}

	report := models.Report{
		UserID:    userID,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		Address:   strings.TrimSpace(req.Address),
		Severity:  req.Severity,
		ImageURL:  imageURL,
		Status:    models.StatusPending,
	}

	if err := s.reports.Create(ctx, &report); err != nil {
		s.logger.Error().Err(err).Msg("failed to persist report")
		return dto.ReportResponse{}, err
	}

	return dto.NewReportResponse(report), nil
}

func (s *reportService) uploadImage(ctx context.Context, image *multipart.FileHeader) (string, error) {
	file, err := image.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()

	return s.uploader.Upload(ctx, image.Filename, file)
}

func (s *reportService) ListMine(ctx context.Context, userID uint) ([]dto.ReportResponse, error) {
	reports, err := s.reports.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return newReportResponses(reports), nil
}

func (s *reportService) ListAll(ctx context.Context) ([]dto.ReportResponse, error) {
	reports, err := s.reports.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	return newReportResponses(reports), nil
}

func (s *reportService) AdminDetail(ctx context.Context, id uint) (dto.AdminReportDetailResponse, error) {
	row, err := s.reports.DetailWithReporter(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AdminReportDetailResponse{}, ErrReportNotFound
		}
		return dto.AdminReportDetailResponse{}, err
	}

	return dto.NewAdminReportDetailResponse(row), nil
}

func newReportResponses(reports []models.Report) []dto.ReportResponse {
	responses := make([]dto.ReportResponse, 0, len(reports))
	for _, report := range reports {
		responses = append(responses, dto.NewReportResponse(report))
	}
	return responses
}

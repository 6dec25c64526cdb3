package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/greenwatch/greenwatch-api/internal/models"
)

// ErrResolvedLocked indicates the guarded update refused to move a report
// out of the RESOLVED status.
var ErrResolvedLocked = errors.New("resolved report is locked")

// StatusChange captures the fields written by a moderation transition. With
// KeepResolved set, the update refuses to move a RESOLVED report to any other
// status; the check runs inside the write so no concurrent resolve can slip
// between a read and the update.
type StatusChange struct {
	Status       string
	Notes        string
	AdminID      uint
	KeepResolved bool
}

// ReportDetailRow is a report joined with its reporter. Reporter fields are
// nil when the owning account has been deleted.
type ReportDetailRow struct {
	ID            uint
	UserID        uint
	Latitude      float64
	Longitude     float64
	Address       string
	Severity      string
	ImageURL      string
	Status        string
	AdminNotes    string
	CreatedAt     time.Time
	UpdatedAt     time.Time
	ReporterName  *string
	ReporterEmail *string
}

// ReportRepository exposes persistence helpers for hazard reports.
type ReportRepository interface {
	Create(ctx context.Context, report *models.Report) error
	ListByUser(ctx context.Context, userID uint) ([]models.Report, error)
	ListAll(ctx context.Context) ([]models.Report, error)
	ApplyStatus(ctx context.Context, id uint, change StatusChange) error
	DetailWithReporter(ctx context.Context, id uint) (ReportDetailRow, error)
}

type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository constructs the report repository.
func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) Create(ctx context.Context, report *models.Report) error {
	return r.db.WithContext(ctx).Create(report).Error
}

func (r *reportRepository) ListByUser(ctx context.Context, userID uint) ([]models.Report, error) {
	var reports []models.Report
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&reports).Error
	if err != nil {
		return nil, err
	}

	return reports, nil
}

func (r *reportRepository) ListAll(ctx context.Context) ([]models.Report, error) {
	var reports []models.Report
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&reports).Error; err != nil {
		return nil, err
	}

	return reports, nil
}

// ApplyStatus updates the report row and appends the matching audit entry as
// one transaction. When the report id matches no row, nothing is written and
// gorm.ErrRecordNotFound is returned. There is no per-report lock: concurrent
// transitions both commit and the last writer wins, unless KeepResolved pins
// an already-resolved row in place.
func (r *reportRepository) ApplyStatus(ctx context.Context, id uint, change StatusChange) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		query := tx.Model(&models.Report{}).Where("id = ?", id)
		if change.KeepResolved && change.Status != models.StatusResolved {
			query = query.Where("status <> ?", models.StatusResolved)
		}

		update := query.Updates(map[string]interface{}{
			"status":      change.Status,
			"admin_notes": change.Notes,
			"updated_at":  time.Now().UTC(),
		})
		if update.Error != nil {
			return update.Error
		}

		if update.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&models.Report{}).Where("id = ?", id).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return gorm.ErrRecordNotFound
			}
			return ErrResolvedLocked
		}

		entry := models.ActionLog{
			ReportID: id,
			AdminID:  change.AdminID,
			Action:   change.Status,
		}

		return tx.Create(&entry).Error
	})
}

func (r *reportRepository) DetailWithReporter(ctx context.Context, id uint) (ReportDetailRow, error) {
	var row ReportDetailRow
	err := r.db.WithContext(ctx).Model(&models.Report{}).
		Select("reports.*, users.name AS reporter_name, users.email AS reporter_email").
		Joins("LEFT JOIN users ON users.id = reports.user_id").
		Where("reports.id = ?", id).
		Take(&row).Error
	if err != nil {
		return ReportDetailRow{}, err
	}

	return row, nil
}

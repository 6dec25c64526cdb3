package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/greenwatch/greenwatch-api/internal/models"
)

// AuditFeedRow is an audit entry joined with the acting admin and target
// report. Joined fields are nil when the referenced row has been deleted;
// the entry itself always survives.
type AuditFeedRow struct {
	ID        uint
	Action    string
	CreatedAt time.Time
	AdminName *string
	Address   *string
}

// ActionLogRepository reads the append-only moderation audit trail. Entries
// are written exclusively by ReportRepository.ApplyStatus.
type ActionLogRepository interface {
	ListRecent(ctx context.Context, limit int) ([]AuditFeedRow, error)
}

type actionLogRepository struct {
	db *gorm.DB
}

// NewActionLogRepository constructs the action log repository.
func NewActionLogRepository(db *gorm.DB) ActionLogRepository {
	return &actionLogRepository{db: db}
}

func (r *actionLogRepository) ListRecent(ctx context.Context, limit int) ([]AuditFeedRow, error) {
	if limit <= 0 {
		limit = 10
	}

	var rows []AuditFeedRow
	err := r.db.WithContext(ctx).Model(&models.ActionLog{}).
		Select("action_logs.id, action_logs.action, action_logs.created_at, users.name AS admin_name, reports.address AS address").
		Joins("LEFT JOIN users ON users.id = action_logs.admin_id").
		Joins("LEFT JOIN reports ON reports.id = action_logs.report_id").
		Order("action_logs.created_at DESC, action_logs.id DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	return rows, nil
}

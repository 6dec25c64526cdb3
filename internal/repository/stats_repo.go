package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/greenwatch/greenwatch-api/internal/models"
)

// LeaderboardRow ranks a reporter by submitted report count.
type LeaderboardRow struct {
	Name        string `json:"name"`
	ReportCount int64  `json:"report_count"`
}

// StatsRepository aggregates public statistics over users and reports.
type StatsRepository interface {
	CountReports(ctx context.Context) (int64, error)
	CountReportsWithStatus(ctx context.Context, status string) (int64, error)
	CountUsersWithRole(ctx context.Context, role string) (int64, error)
	Leaderboard(ctx context.Context, limit int) ([]LeaderboardRow, error)
}

type statsRepository struct {
	db *gorm.DB
}

// NewStatsRepository constructs the stats repository.
func NewStatsRepository(db *gorm.DB) StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) CountReports(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Report{}).Count(&count).Error
	return count, err
}

func (r *statsRepository) CountReportsWithStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Report{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}

func (r *statsRepository) CountUsersWithRole(ctx context.Context, role string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).
		Where("role = ?", role).
		Count(&count).Error
	return count, err
}

func (r *statsRepository) Leaderboard(ctx context.Context, limit int) ([]LeaderboardRow, error) {
	if limit <= 0 {
		limit = 3
	}

	var rows []LeaderboardRow
	err := r.db.WithContext(ctx).Model(&models.User{}).
		Select("users.name AS name, COUNT(reports.id) AS report_count").
		Joins("JOIN reports ON reports.user_id = users.id").
		Group("users.id, users.name").
		Order("report_count DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	return rows, nil
}

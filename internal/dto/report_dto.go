package dto

import (
	"time"

	"github.com/greenwatch/greenwatch-api/internal/models"
)

// ReportCreateRequest captures a citizen hazard submission. The image part is
// handled separately as a multipart file.
type ReportCreateRequest struct {
	Latitude  float64 `json:"latitude" validate:"latitude"`
	Longitude float64 `json:"longitude" validate:"longitude"`
	Address   string  `json:"address" validate:"omitempty,max=512"`
	Severity  string  `json:"severity" validate:"required,oneof=LOW MEDIUM HIGH"`
}

// ReportResponse serializes a report for listing endpoints.
type ReportResponse struct {
	ID         uint      `json:"id"`
	UserID     uint      `json:"user_id"`
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	Address    string    `json:"address"`
	Severity   string    `json:"severity"`
	ImageURL   string    `json:"image_url"`
	Status     string    `json:"status"`
	AdminNotes string    `json:"admin_notes"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NewReportResponse converts a report model into a DTO.
func NewReportResponse(report models.Report) ReportResponse {
	return ReportResponse{
		ID:         report.ID,
		UserID:     report.UserID,
		Latitude:   report.Latitude,
		Longitude:  report.Longitude,
		Address:    report.Address,
		Severity:   report.Severity,
		ImageURL:   report.ImageURL,
		Status:     report.Status,
		AdminNotes: report.AdminNotes,
		CreatedAt:  report.CreatedAt,
		UpdatedAt:  report.UpdatedAt,
	}
}

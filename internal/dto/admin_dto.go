package dto

import (
	"time"

	"github.com/greenwatch/greenwatch-api/internal/models"
	"github.com/greenwatch/greenwatch-api/internal/repository"
)

// ModerationRequest carries the optional notes attached to a transition.
type ModerationRequest struct {
	Notes string `json:"notes" validate:"omitempty,max=2048"`
}

// AuditEntryResponse serializes one row of the recent-activity feed.
type AuditEntryResponse struct {
	ID        uint      `json:"id"`
	Action    string    `json:"action"`
	Timestamp time.Time `json:"timestamp"`
	AdminName string    `json:"admin_name"`
	Address   string    `json:"address"`
}

// NewAuditEntryResponse converts a joined audit row into a DTO. Orphaned
// references render as placeholders instead of dropping the entry.
func NewAuditEntryResponse(row repository.AuditFeedRow) AuditEntryResponse {
	adminName := "Unknown admin"
	if row.AdminName != nil {
		adminName = *row.AdminName
	}

	address := ""
	if row.Address != nil {
		address = *row.Address
	}

	return AuditEntryResponse{
		ID:        row.ID,
		Action:    row.Action,
		Timestamp: row.CreatedAt,
		AdminName: adminName,
		Address:   address,
	}
}

// AdminUserResponse serializes an account for the admin user list.
type AdminUserResponse struct {
	ID          uint       `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Role        string     `json:"role"`
	TrustScore  int        `json:"trust_score"`
	CreatedAt   time.Time  `json:"created_at"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

// NewAdminUserResponse converts a user model into its admin DTO.
func NewAdminUserResponse(user models.User) AdminUserResponse {
	return AdminUserResponse{
		ID:          user.ID,
		Name:        user.Name,
		Email:       user.Email,
		Role:        user.Role,
		TrustScore:  user.TrustScore,
		CreatedAt:   user.CreatedAt,
		LastLoginAt: user.LastLoginAt,
	}
}

// AdminReportDetailResponse serializes a report with its reporter for the
// admin detail view. Reporter fields stay empty when the account is gone.
type AdminReportDetailResponse struct {
	ReportResponse
	ReporterName  string `json:"reporter_name"`
	ReporterEmail string `json:"reporter_email"`
}

// NewAdminReportDetailResponse converts a joined detail row into a DTO.
func NewAdminReportDetailResponse(row repository.ReportDetailRow) AdminReportDetailResponse {
	detail := AdminReportDetailResponse{
		ReportResponse: ReportResponse{
			ID:         row.ID,
			UserID:     row.UserID,
			Latitude:   row.Latitude,
			Longitude:  row.Longitude,
			Address:    row.Address,
			Severity:   row.Severity,
			ImageURL:   row.ImageURL,
			Status:     row.Status,
			AdminNotes: row.AdminNotes,
			CreatedAt:  row.CreatedAt,
			UpdatedAt:  row.UpdatedAt,
		},
	}

	if row.ReporterName != nil {
		detail.ReporterName = *row.ReporterName
	}
	if row.ReporterEmail != nil {
		detail.ReporterEmail = *row.ReporterEmail
	}

	return detail
}

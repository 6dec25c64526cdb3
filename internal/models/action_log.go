package models

import "time"

// ActionLog captures one moderation action applied to a report. Rows are
// append-only: they are never updated or deleted, and deliberately carry no
// foreign key constraints so entries survive deletion of the admin or report
// they reference.
type ActionLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ReportID  uint      `gorm:"not null;index" json:"report_id"`
	AdminID   uint      `gorm:"not null" json:"admin_id"`
	Action    string    `gorm:"size:32;not null" json:"action"`
	CreatedAt time.Time `json:"created_at"`
}

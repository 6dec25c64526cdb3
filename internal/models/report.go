package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Report status values. Status is only ever written by the moderation flow
// after creation.
const (
	StatusPending  = "PENDING"
	StatusVerified = "VERIFIED"
	StatusRejected = "REJECTED"
	StatusResolved = "RESOLVED"
)

// Report severity values, fixed at submission time.
const (
	SeverityLow    = "LOW"
	SeverityMedium = "MEDIUM"
	SeverityHigh   = "HIGH"
)

// Report represents a geotagged hazard report submitted by a citizen.
type Report struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;index" json:"user_id"`
	Latitude   float64   `gorm:"not null" json:"latitude"`
	Longitude  float64   `gorm:"not null" json:"longitude"`
	Address    string    `gorm:"size:512" json:"address"`
	Severity   string    `gorm:"size:16;not null" json:"severity"`
	ImageURL   string    `gorm:"size:1024" json:"image_url"`
	Status     string    `gorm:"size:16;not null;default:PENDING" json:"status"`
	AdminNotes string    `gorm:"size:2048" json:"admin_notes"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ErrInvalidAction signals a moderation action token outside the closed set.
var ErrInvalidAction = errors.New("invalid moderation action")

// ModerationAction is the closed set of admin actions applicable to a report.
type ModerationAction int

const (
	ActionVerify ModerationAction = iota
	ActionReject
	ActionResolve
)

// ParseModerationAction maps a request token onto the action enum. Unknown
// tokens are rejected here, before any storage is touched.
func ParseModerationAction(raw string) (ModerationAction, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "verify":
		return ActionVerify, nil
	case "reject":
		return ActionReject, nil
	case "resolve":
		return ActionResolve, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidAction, raw)
	}
}

// TargetStatus returns the report status the action transitions to. The
// mapping is total over the enum.
func (a ModerationAction) TargetStatus() string {
	switch a {
	case ActionReject:
		return StatusRejected
	case ActionResolve:
		return StatusResolved
	default:
		return StatusVerified
	}
}

func (a ModerationAction) String() string {
	switch a {
	case ActionReject:
		return "reject"
	case ActionResolve:
		return "resolve"
	default:
		return "verify"
	}
}

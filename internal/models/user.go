package models

import "time"

// Roles assignable to an account. New signups always start as RoleUser.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// User represents a registered reporter or administrator.
type User struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Name         string     `gorm:"size:255;not null" json:"name"`
	Email        string     `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string     `gorm:"size:255;not null" json:"-"`
	Role         string     `gorm:"size:16;not null;default:USER" json:"role"`
	TrustScore   int        `gorm:"not null;default:0" json:"trust_score"`
	CreatedAt    time.Time  `json:"created_at"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
}

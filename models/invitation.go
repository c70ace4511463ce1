package models

import (
	"time"
)

// Invitation is a single-use join code scoped to a circle. Once Used is
// set the row is never mutated again.
type Invitation struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	Code       string     `gorm:"size:50;not null;unique" json:"code"`
	IssuedByID uint       `gorm:"not null;index" json:"issued_by"`
	IssuedBy   User       `gorm:"foreignKey:IssuedByID" json:"-"`
	CircleID   uint       `gorm:"not null;index" json:"circle_id"`
	Circle     Circle     `gorm:"foreignKey:CircleID" json:"-"`
	Used       bool       `gorm:"default:false" json:"used"`
	UsedByID   *uint      `json:"used_by,omitempty"`
	UsedBy     *User      `gorm:"foreignKey:UsedByID" json:"-"`
	UsedAt     *time.Time `json:"used_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

package models

import (
	"time"
)

// Membership links a user to a circle. Leaving a circle clears IsActive
// instead of deleting the row, so invitation history survives.
type Membership struct {
	ID                   uint       `gorm:"primaryKey" json:"id"`
	UserID               uint       `gorm:"not null;index:idx_user_circle,unique" json:"user_id"`
	User                 User       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	CircleID             uint       `gorm:"not null;index:idx_user_circle,unique" json:"circle_id"`
	Circle               Circle     `gorm:"foreignKey:CircleID" json:"-"`
	IsAdmin              bool       `gorm:"default:false" json:"is_admin"`
	IsActive             bool       `gorm:"default:true" json:"is_active"`
	UsedInvitations      uint       `gorm:"default:0" json:"used_invitations"`
	RemainingInvitations uint       `gorm:"default:0" json:"remaining_invitations"`
	InvitedByID          *uint      `json:"invited_by,omitempty"`
	RidesTaken           uint       `gorm:"default:0" json:"rides_taken"`
	RidesOffered         uint       `gorm:"default:0" json:"rides_offered"`
	CreatedAt            time.Time  `json:"joined_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

// FounderInvitations is the invitation quota seeded for a circle's founder.
const FounderInvitations = 10

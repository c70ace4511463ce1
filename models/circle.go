package models

import (
	"time"
)

// Circle is a community of users who share rides with each other.
// Counters are denormalized ride stats kept in sync by the ride service.
type Circle struct {
	ID           uint         `gorm:"primaryKey" json:"id"`
	Name         string       `gorm:"size:140;not null" json:"name"`
	SlugName     string       `gorm:"size:40;not null;unique" json:"slug_name"`
	About        string       `gorm:"size:255" json:"about"`
	Picture      string       `gorm:"size:255" json:"picture"`
	IsPublic     bool         `gorm:"default:true" json:"is_public"`
	Verified     bool         `gorm:"default:false" json:"verified"`
	IsLimited    bool         `gorm:"default:false" json:"is_limited"`
	MembersLimit uint         `gorm:"default:0" json:"members_limit"`
	RidesOffered uint         `gorm:"default:0" json:"rides_offered"`
	RidesTaken   uint         `gorm:"default:0" json:"rides_taken"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
	Memberships  []Membership `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Invitations  []Invitation `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

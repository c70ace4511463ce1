package models

import (
	"time"
)

type Ride struct {
	ID                uint         `gorm:"primaryKey" json:"id"`
	OfferedByID       uint         `gorm:"not null;index" json:"offered_by"`
	OfferedBy         User         `gorm:"foreignKey:OfferedByID" json:"-"`
	CircleID          uint         `gorm:"not null;index" json:"circle_id"`
	Circle            Circle       `gorm:"foreignKey:CircleID" json:"-"`
	Comments          string       `gorm:"size:255" json:"comments"`
	DepartureLocation string       `gorm:"size:255;not null" json:"departure_location"`
	DepartureDate     time.Time    `gorm:"not null;index" json:"departure_date"`
	ArrivalLocation   string       `gorm:"size:255;not null" json:"arrival_location"`
	ArrivalDate       time.Time    `gorm:"not null;index" json:"arrival_date"`
	AvailableSeats    uint         `gorm:"not null" json:"available_seats"`
	IsActive          bool         `gorm:"default:true;index" json:"is_active"`
	Rating            *float64     `json:"rating,omitempty"`
	CreatedAt         time.Time    `json:"created_at"`
	UpdatedAt         time.Time    `json:"updated_at"`
	Passengers        []User       `gorm:"many2many:ride_passengers;" json:"passengers,omitempty"`
}

type RidePassenger struct {
	RideID    uint      `gorm:"primaryKey" json:"ride_id"`
	UserID    uint      `gorm:"primaryKey" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// RideRating is one passenger's score for a finished ride. The ride's
// Rating field is the mean of its rows.
type RideRating struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	RideID       uint      `gorm:"not null;index:idx_ride_rater,unique" json:"ride_id"`
	RatingUserID uint      `gorm:"not null;index:idx_ride_rater,unique" json:"rating_user"`
	Score        uint      `gorm:"not null" json:"score"`
	Comments     string    `gorm:"size:255" json:"comments"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

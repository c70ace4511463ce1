package models

import (
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type User struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Username    string    `gorm:"size:20;not null;unique" json:"username"`
	Email       string    `gorm:"size:255;not null;unique" json:"email"`
	FirstName   string    `gorm:"size:30" json:"first_name"`
	LastName    string    `gorm:"size:30" json:"last_name"`
	PhoneNumber string    `gorm:"size:17" json:"phone_number"`
	Password    string    `gorm:"size:255;not null" json:"-"`
	IsVerified  bool      `gorm:"default:false" json:"is_verified"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Profile     *Profile  `json:"profile,omitempty"`
}

// Profile holds the public ride stats and picture for a user. One is
// created at sign-up and lives for as long as the user does.
type Profile struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uint      `gorm:"not null;unique" json:"user_id"`
	Picture      string    `gorm:"size:255" json:"picture"`
	Biography    string    `gorm:"size:500" json:"biography"`
	RidesTaken   uint      `gorm:"default:0" json:"rides_taken"`
	RidesOffered uint      `gorm:"default:0" json:"rides_offered"`
	Reputation   float64   `gorm:"default:5.0" json:"reputation"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// BeforeSave hashes the password before saving to the database
func (u *User) BeforeSave(tx *gorm.DB) error {
	if u.Password != "" && !isBcryptHash(u.Password) {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		u.Password = string(hashedPassword)
	}
	return nil
}

// ValidatePassword checks if the provided password matches the stored hash
func (u *User) ValidatePassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
}

// isBcryptHash reports whether s already looks like a bcrypt digest, so
// saving a loaded user does not re-hash the stored hash.
func isBcryptHash(s string) bool {
	return len(s) == 60 && (strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$"))
}

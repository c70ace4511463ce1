package services

import (
	"fmt"
	"testing"

	"github.com/cride-hq/cride_backend/models"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupDB opens an in-memory sqlite database with the full schema. A
// single connection keeps every query on the same in-memory store.
func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Circle{},
		&models.Membership{},
		&models.Invitation{},
		&models.Ride{},
		&models.RidePassenger{},
		&models.RideRating{},
	))

	return db
}

func createUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	user := &models.User{
		Username:   username,
		Email:      fmt.Sprintf("%s@example.com", username),
		FirstName:  "Test",
		LastName:   "User",
		Password:   "s3cretpass",
		IsVerified: true,
	}
	require.NoError(t, db.Create(user).Error)
	require.NoError(t, db.Create(&models.Profile{UserID: user.ID}).Error)
	return user
}

// createCircle creates a circle and its founding admin membership.
func createCircle(t *testing.T, db *gorm.DB, slug string, founder *models.User, limited bool, limit uint) (*models.Circle, *models.Membership) {
	t.Helper()

	circle := &models.Circle{
		Name:         slug,
		SlugName:     slug,
		IsPublic:     true,
		IsLimited:    limited,
		MembersLimit: limit,
	}
	require.NoError(t, db.Create(circle).Error)

	membership := &models.Membership{
		UserID:               founder.ID,
		CircleID:             circle.ID,
		IsAdmin:              true,
		IsActive:             true,
		RemainingInvitations: models.FounderInvitations,
	}
	require.NoError(t, db.Create(membership).Error)

	return circle, membership
}

// stubGenerator returns the given codes in order and falls back to
// unique filler once they run out.
func stubGenerator(codes ...string) func() string {
	i := 0
	return func() string {
		if i < len(codes) {
			code := codes[i]
			i++
			return code
		}
		i++
		return fmt.Sprintf("filler%04d", i)
	}
}

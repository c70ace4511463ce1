package services

import (
	"context"
	"time"

	"github.com/cride-hq/cride_backend/models"
	"gorm.io/gorm"
)

const (
	// DepartureLeadTime is how far in the future a new ride must depart.
	DepartureLeadTime = 30 * time.Minute

	// SweepGracePeriod is how long after arrival a ride stays active
	// before the sweep deactivates it.
	SweepGracePeriod = 60 * time.Second

	MinSeats = 1
	MaxSeats = 15
)

// RideOffer is the validated input for offering a ride.
type RideOffer struct {
	Comments          string
	DepartureLocation string
	DepartureDate     time.Time
	ArrivalLocation   string
	ArrivalDate       time.Time
	AvailableSeats    uint
}

// RideChanges carries the editable ride fields for Update. Nil pointers
// leave the field untouched.
type RideChanges struct {
	Comments          *string
	DepartureLocation *string
	DepartureDate     *time.Time
	ArrivalLocation   *string
	ArrivalDate       *time.Time
	AvailableSeats    *uint
}

// RideService drives the ride lifecycle: offering, boarding, edits and
// the expiry sweep. Ride counters on membership, circle and profile are
// updated in the same transaction as the event that caused them.
type RideService struct {
	db *gorm.DB
}

func NewRideService(db *gorm.DB) *RideService {
	return &RideService{db: db}
}

// Offer validates and persists a new ride offered by userID in circleID.
func (s *RideService) Offer(ctx context.Context, circleID, userID uint, offer RideOffer) (*models.Ride, error) {
	if !offer.ArrivalDate.After(offer.DepartureDate) {
		return nil, errValidation("arrival must be after departure")
	}
	if offer.DepartureDate.Before(time.Now().Add(DepartureLeadTime)) {
		return nil, errValidation("departure time must be at least 30 minutes from now")
	}
	if offer.AvailableSeats < MinSeats || offer.AvailableSeats > MaxSeats {
		return nil, errValidation("available seats must be between %d and %d", MinSeats, MaxSeats)
	}

	var ride *models.Ride
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var membership models.Membership
		if err := tx.Where("circle_id = ? AND user_id = ? AND is_active = ?", circleID, userID, true).
			First(&membership).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return errPermissionDenied("not an active member of this circle")
			}
			return err
		}

		ride = &models.Ride{
			OfferedByID:       userID,
			CircleID:          circleID,
			Comments:          offer.Comments,
			DepartureLocation: offer.DepartureLocation,
			DepartureDate:     offer.DepartureDate,
			ArrivalLocation:   offer.ArrivalLocation,
			ArrivalDate:       offer.ArrivalDate,
			AvailableSeats:    offer.AvailableSeats,
			IsActive:          true,
		}
		if err := tx.Create(ride).Error; err != nil {
			return err
		}

		return recordRideOffered(tx, &membership)
	})
	if err != nil {
		return nil, err
	}
	return ride, nil
}

// Join adds userID to the ride's passenger roster. All checks and the
// seat decrement run in one transaction; the conditional UPDATE keeps the
// seat count from ever going negative under concurrent joins.
func (s *RideService) Join(ctx context.Context, rideID, userID uint) (*models.Ride, error) {
	var ride models.Ride

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&ride, rideID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return errNotFound("ride not found")
			}
			return err
		}

		var membership models.Membership
		if err := tx.Where("circle_id = ? AND user_id = ? AND is_active = ?", ride.CircleID, userID, true).
			First(&membership).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return errPermissionDenied("not an active member of this circle")
			}
			return err
		}

		if !time.Now().Before(ride.DepartureDate) {
			return errStateViolation("ride has already departed")
		}
		if ride.OfferedByID == userID {
			return errPermissionDenied("ride owner cannot join as passenger")
		}

		var joined int64
		if err := tx.Model(&models.RidePassenger{}).
			Where("ride_id = ? AND user_id = ?", rideID, userID).
			Count(&joined).Error; err != nil {
			return err
		}
		if joined > 0 {
			return errConflict("user is already a passenger on this ride")
		}

		result := tx.Model(&models.Ride{}).
			Where("id = ? AND available_seats >= ?", rideID, 1).
			Update("available_seats", gorm.Expr("available_seats - 1"))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errCapacityExceeded("no seats available")
		}

		if err := tx.Create(&models.RidePassenger{RideID: rideID, UserID: userID}).Error; err != nil {
			return err
		}

		if err := recordRideTaken(tx, &membership); err != nil {
			return err
		}

		return tx.Preload("Passengers").First(&ride, rideID).Error
	})
	if err != nil {
		return nil, err
	}
	return &ride, nil
}

// Update applies changes to a ride that has not departed yet. Only the
// offering user may edit.
func (s *RideService) Update(ctx context.Context, rideID, userID uint, changes RideChanges) (*models.Ride, error) {
	var ride models.Ride

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&ride, rideID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return errNotFound("ride not found")
			}
			return err
		}

		if ride.OfferedByID != userID {
			return errPermissionDenied("only the ride owner can update it")
		}
		if !time.Now().Before(ride.DepartureDate) {
			return errStateViolation("ride is already under way")
		}

		if changes.Comments != nil {
			ride.Comments = *changes.Comments
		}
		if changes.DepartureLocation != nil {
			ride.DepartureLocation = *changes.DepartureLocation
		}
		if changes.DepartureDate != nil {
			ride.DepartureDate = *changes.DepartureDate
		}
		if changes.ArrivalLocation != nil {
			ride.ArrivalLocation = *changes.ArrivalLocation
		}
		if changes.ArrivalDate != nil {
			ride.ArrivalDate = *changes.ArrivalDate
		}
		if changes.AvailableSeats != nil {
			if *changes.AvailableSeats > MaxSeats {
				return errValidation("available seats must be between %d and %d", MinSeats, MaxSeats)
			}
			ride.AvailableSeats = *changes.AvailableSeats
		}

		if !ride.ArrivalDate.After(ride.DepartureDate) {
			return errValidation("arrival must be after departure")
		}
		if changes.DepartureDate != nil && ride.DepartureDate.Before(time.Now().Add(DepartureLeadTime)) {
			return errValidation("departure time must be at least 30 minutes from now")
		}

		return tx.Save(&ride).Error
	})
	if err != nil {
		return nil, err
	}
	return &ride, nil
}

// Rate records a passenger's score for a finished ride and refreshes the
// ride's mean rating. Each passenger rates a ride at most once.
func (s *RideService) Rate(ctx context.Context, rideID, userID uint, score uint, comments string) (*models.Ride, error) {
	if score < 1 || score > 5 {
		return nil, errValidation("score must be between 1 and 5")
	}

	var ride models.Ride
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&ride, rideID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return errNotFound("ride not found")
			}
			return err
		}

		if time.Now().Before(ride.ArrivalDate) {
			return errStateViolation("ride has not finished yet")
		}

		var passenger int64
		if err := tx.Model(&models.RidePassenger{}).
			Where("ride_id = ? AND user_id = ?", rideID, userID).
			Count(&passenger).Error; err != nil {
			return err
		}
		if passenger == 0 {
			return errPermissionDenied("only passengers can rate a ride")
		}

		var rated int64
		if err := tx.Model(&models.RideRating{}).
			Where("ride_id = ? AND rating_user_id = ?", rideID, userID).
			Count(&rated).Error; err != nil {
			return err
		}
		if rated > 0 {
			return errConflict("ride already rated by this user")
		}

		rating := models.RideRating{
			RideID:       rideID,
			RatingUserID: userID,
			Score:        score,
			Comments:     comments,
		}
		if err := tx.Create(&rating).Error; err != nil {
			return err
		}

		var mean float64
		if err := tx.Model(&models.RideRating{}).
			Where("ride_id = ?", rideID).
			Select("AVG(score)").
			Scan(&mean).Error; err != nil {
			return err
		}

		ride.Rating = &mean
		return tx.Model(&models.Ride{}).Where("id = ?", rideID).Update("rating", mean).Error
	})
	if err != nil {
		return nil, err
	}
	return &ride, nil
}

// Upcoming lists the circle's active rides that have not departed yet.
func (s *RideService) Upcoming(ctx context.Context, circleID uint) ([]models.Ride, error) {
	var rides []models.Ride
	err := s.db.WithContext(ctx).
		Preload("Passengers").
		Where("circle_id = ? AND is_active = ? AND departure_date > ?", circleID, true, time.Now()).
		Order("departure_date").
		Find(&rides).Error
	return rides, err
}

// SweepExpired deactivates every active ride whose arrival date is at
// least the grace period in the past. It returns the number of rides
// flipped; a second run right after the first finds nothing.
func (s *RideService) SweepExpired(ctx context.Context, now time.Time) (int64, error) {
	result := s.db.WithContext(ctx).Model(&models.Ride{}).
		Where("is_active = ? AND arrival_date <= ?", true, now.Add(-SweepGracePeriod)).
		Update("is_active", false)
	return result.RowsAffected, result.Error
}

// recordRideOffered bumps the offered-ride counters on the membership,
// its circle and the offerer's profile inside the caller's transaction.
func recordRideOffered(tx *gorm.DB, membership *models.Membership) error {
	if err := tx.Model(&models.Membership{}).Where("id = ?", membership.ID).
		Update("rides_offered", gorm.Expr("rides_offered + 1")).Error; err != nil {
		return err
	}
	if err := tx.Model(&models.Circle{}).Where("id = ?", membership.CircleID).
		Update("rides_offered", gorm.Expr("rides_offered + 1")).Error; err != nil {
		return err
	}
	return tx.Model(&models.Profile{}).Where("user_id = ?", membership.UserID).
		Update("rides_offered", gorm.Expr("rides_offered + 1")).Error
}

// recordRideTaken is the passenger-side counterpart of recordRideOffered.
func recordRideTaken(tx *gorm.DB, membership *models.Membership) error {
	if err := tx.Model(&models.Membership{}).Where("id = ?", membership.ID).
		Update("rides_taken", gorm.Expr("rides_taken + 1")).Error; err != nil {
		return err
	}
	if err := tx.Model(&models.Circle{}).Where("id = ?", membership.CircleID).
		Update("rides_taken", gorm.Expr("rides_taken + 1")).Error; err != nil {
		return err
	}
	return tx.Model(&models.Profile{}).Where("user_id = ?", membership.UserID).
		Update("rides_taken", gorm.Expr("rides_taken + 1")).Error
}

package services

import (
	"context"
	"testing"
	"time"

	"github.com/cride-hq/cride_backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validOffer() RideOffer {
	return RideOffer{
		DepartureLocation: "UNAM",
		DepartureDate:     time.Now().Add(2 * time.Hour),
		ArrivalLocation:   "Polanco",
		ArrivalDate:       time.Now().Add(3 * time.Hour),
		AvailableSeats:    3,
	}
}

func TestOfferValidation(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	founder := createUser(t, db, "joedoe")
	outsider := createUser(t, db, "outsider")
	circle, _ := createCircle(t, db, "hiking-vancouver", founder, false, 0)

	svc := NewRideService(db)

	tests := []struct {
		name   string
		userID uint
		mutate func(*RideOffer)
		kind   Kind
	}{
		{
			name:   "arrival before departure",
			userID: founder.ID,
			mutate: func(o *RideOffer) {
				o.DepartureDate = time.Now().Add(45 * time.Minute)
				o.ArrivalDate = time.Now().Add(40 * time.Minute)
			},
			kind: KindValidation,
		},
		{
			name:   "departure too soon",
			userID: founder.ID,
			mutate: func(o *RideOffer) {
				o.DepartureDate = time.Now().Add(5 * time.Minute)
				o.ArrivalDate = time.Now().Add(2 * time.Hour)
			},
			kind: KindValidation,
		},
		{
			name:   "zero seats",
			userID: founder.ID,
			mutate: func(o *RideOffer) { o.AvailableSeats = 0 },
			kind:   KindValidation,
		},
		{
			name:   "too many seats",
			userID: founder.ID,
			mutate: func(o *RideOffer) { o.AvailableSeats = 16 },
			kind:   KindValidation,
		},
		{
			name:   "not a member",
			userID: outsider.ID,
			mutate: func(o *RideOffer) {},
			kind:   KindPermissionDenied,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offer := validOffer()
			tt.mutate(&offer)

			_, err := svc.Offer(ctx, circle.ID, tt.userID, offer)
			require.Error(t, err)
			assert.True(t, IsKind(err, tt.kind), "got %v", err)
		})
	}
}

func TestOfferRecordsCounters(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	founder := createUser(t, db, "joedoe")
	circle, _ := createCircle(t, db, "hiking-vancouver", founder, false, 0)

	svc := NewRideService(db)
	ride, err := svc.Offer(ctx, circle.ID, founder.ID, validOffer())
	require.NoError(t, err)
	assert.True(t, ride.IsActive)

	var membership models.Membership
	require.NoError(t, db.Where("user_id = ? AND circle_id = ?", founder.ID, circle.ID).First(&membership).Error)
	assert.EqualValues(t, 1, membership.RidesOffered)

	var updatedCircle models.Circle
	require.NoError(t, db.First(&updatedCircle, circle.ID).Error)
	assert.EqualValues(t, 1, updatedCircle.RidesOffered)

	var profile models.Profile
	require.NoError(t, db.Where("user_id = ?", founder.ID).First(&profile).Error)
	assert.EqualValues(t, 1, profile.RidesOffered)
}

func TestJoinRide(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	founder := createUser(t, db, "joedoe")
	passenger := createUser(t, db, "janedoe")
	circle, _ := createCircle(t, db, "hiking-vancouver", founder, false, 0)
	require.NoError(t, db.Create(&models.Membership{
		UserID:   passenger.ID,
		CircleID: circle.ID,
		IsActive: true,
	}).Error)

	svc := NewRideService(db)
	ride, err := svc.Offer(ctx, circle.ID, founder.ID, validOffer())
	require.NoError(t, err)

	joined, err := svc.Join(ctx, ride.ID, passenger.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, joined.AvailableSeats)
	require.Len(t, joined.Passengers, 1)
	assert.Equal(t, passenger.ID, joined.Passengers[0].ID)

	var membership models.Membership
	require.NoError(t, db.Where("user_id = ? AND circle_id = ?", passenger.ID, circle.ID).First(&membership).Error)
	assert.EqualValues(t, 1, membership.RidesTaken)

	var updatedCircle models.Circle
	require.NoError(t, db.First(&updatedCircle, circle.ID).Error)
	assert.EqualValues(t, 1, updatedCircle.RidesTaken)

	// Joining again is rejected
	_, err = svc.Join(ctx, ride.ID, passenger.ID)
	require.Error(t, err)
	assert.True(t, IsKind(err, KindConflict))
}

func TestJoinRideRejections(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	founder := createUser(t, db, "joedoe")
	outsider := createUser(t, db, "outsider")
	circle, _ := createCircle(t, db, "hiking-vancouver", founder, false, 0)

	svc := NewRideService(db)
	ride, err := svc.Offer(ctx, circle.ID, founder.ID, validOffer())
	require.NoError(t, err)

	// The owner cannot take a seat on their own ride
	_, err = svc.Join(ctx, ride.ID, founder.ID)
	require.Error(t, err)
	assert.True(t, IsKind(err, KindPermissionDenied))

	// Non-members cannot join
	_, err = svc.Join(ctx, ride.ID, outsider.ID)
	require.Error(t, err)
	assert.True(t, IsKind(err, KindPermissionDenied))

	_, err = svc.Join(ctx, 9999, founder.ID)
	require.Error(t, err)
	assert.True(t, IsKind(err, KindNotFound))
}

func TestJoinDepartedRide(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	founder := createUser(t, db, "joedoe")
	passenger := createUser(t, db, "janedoe")
	circle, _ := createCircle(t, db, "hiking-vancouver", founder, false, 0)
	require.NoError(t, db.Create(&models.Membership{
		UserID:   passenger.ID,
		CircleID: circle.ID,
		IsActive: true,
	}).Error)

	ride := models.Ride{
		OfferedByID:       founder.ID,
		CircleID:          circle.ID,
		DepartureLocation: "UNAM",
		DepartureDate:     time.Now().Add(-time.Hour),
		ArrivalLocation:   "Polanco",
		ArrivalDate:       time.Now().Add(time.Hour),
		AvailableSeats:    3,
		IsActive:          true,
	}
	require.NoError(t, db.Create(&ride).Error)

	_, err := NewRideService(db).Join(ctx, ride.ID, passenger.ID)
	require.Error(t, err)
	assert.True(t, IsKind(err, KindStateViolation))
}

func TestJoinLastSeat(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	founder := createUser(t, db, "joedoe")
	first := createUser(t, db, "first")
	second := createUser(t, db, "second")
	circle, _ := createCircle(t, db, "hiking-vancouver", founder, false, 0)
	for _, user := range []*models.User{first, second} {
		require.NoError(t, db.Create(&models.Membership{
			UserID:   user.ID,
			CircleID: circle.ID,
			IsActive: true,
		}).Error)
	}

	offer := validOffer()
	offer.AvailableSeats = 1

	svc := NewRideService(db)
	ride, err := svc.Offer(ctx, circle.ID, founder.ID, offer)
	require.NoError(t, err)

	_, err = svc.Join(ctx, ride.ID, first.ID)
	require.NoError(t, err)

	_, err = svc.Join(ctx, ride.ID, second.ID)
	require.Error(t, err)
	assert.True(t, IsKind(err, KindCapacityExceeded))

	// The seat count floors at zero
	var final models.Ride
	require.NoError(t, db.First(&final, ride.ID).Error)
	assert.EqualValues(t, 0, final.AvailableSeats)
}

func TestUpdateRide(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	founder := createUser(t, db, "joedoe")
	other := createUser(t, db, "other")
	circle, _ := createCircle(t, db, "hiking-vancouver", founder, false, 0)
	require.NoError(t, db.Create(&models.Membership{
		UserID:   other.ID,
		CircleID: circle.ID,
		IsActive: true,
	}).Error)

	svc := NewRideService(db)
	ride, err := svc.Offer(ctx, circle.ID, founder.ID, validOffer())
	require.NoError(t, err)

	comments := "Leaving from the north gate"
	updated, err := svc.Update(ctx, ride.ID, founder.ID, RideChanges{Comments: &comments})
	require.NoError(t, err)
	assert.Equal(t, comments, updated.Comments)

	// Only the owner can edit
	_, err = svc.Update(ctx, ride.ID, other.ID, RideChanges{Comments: &comments})
	require.Error(t, err)
	assert.True(t, IsKind(err, KindPermissionDenied))

	// An arrival before the departure is rejected
	badArrival := ride.DepartureDate.Add(-time.Minute)
	_, err = svc.Update(ctx, ride.ID, founder.ID, RideChanges{ArrivalDate: &badArrival})
	require.Error(t, err)
	assert.True(t, IsKind(err, KindValidation))
}

func TestUpdateDepartedRide(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	founder := createUser(t, db, "joedoe")
	circle, _ := createCircle(t, db, "hiking-vancouver", founder, false, 0)

	ride := models.Ride{
		OfferedByID:       founder.ID,
		CircleID:          circle.ID,
		DepartureLocation: "UNAM",
		DepartureDate:     time.Now().Add(-time.Hour),
		ArrivalLocation:   "Polanco",
		ArrivalDate:       time.Now().Add(time.Hour),
		AvailableSeats:    3,
		IsActive:          true,
	}
	require.NoError(t, db.Create(&ride).Error)

	comments := "too late"
	_, err := NewRideService(db).Update(ctx, ride.ID, founder.ID, RideChanges{Comments: &comments})
	require.Error(t, err)
	assert.True(t, IsKind(err, KindStateViolation))
}

func TestRateRide(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	founder := createUser(t, db, "joedoe")
	passengerA := createUser(t, db, "passenger-a")
	passengerB := createUser(t, db, "passenger-b")
	circle, _ := createCircle(t, db, "hiking-vancouver", founder, false, 0)

	ride := models.Ride{
		OfferedByID:       founder.ID,
		CircleID:          circle.ID,
		DepartureLocation: "UNAM",
		DepartureDate:     time.Now().Add(-2 * time.Hour),
		ArrivalLocation:   "Polanco",
		ArrivalDate:       time.Now().Add(-time.Hour),
		AvailableSeats:    1,
		IsActive:          false,
	}
	require.NoError(t, db.Create(&ride).Error)
	for _, user := range []*models.User{passengerA, passengerB} {
		require.NoError(t, db.Create(&models.RidePassenger{RideID: ride.ID, UserID: user.ID}).Error)
	}

	svc := NewRideService(db)

	// Non-passengers cannot rate
	_, err := svc.Rate(ctx, ride.ID, founder.ID, 5, "")
	require.Error(t, err)
	assert.True(t, IsKind(err, KindPermissionDenied))

	rated, err := svc.Rate(ctx, ride.ID, passengerA.ID, 4, "great ride")
	require.NoError(t, err)
	require.NotNil(t, rated.Rating)
	assert.InDelta(t, 4.0, *rated.Rating, 0.001)

	rated, err = svc.Rate(ctx, ride.ID, passengerB.ID, 2, "")
	require.NoError(t, err)
	require.NotNil(t, rated.Rating)
	assert.InDelta(t, 3.0, *rated.Rating, 0.001)

	// One rating per passenger
	_, err = svc.Rate(ctx, ride.ID, passengerA.ID, 5, "")
	require.Error(t, err)
	assert.True(t, IsKind(err, KindConflict))
}

func TestRateUnfinishedRide(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	founder := createUser(t, db, "joedoe")
	passenger := createUser(t, db, "janedoe")
	circle, _ := createCircle(t, db, "hiking-vancouver", founder, false, 0)
	require.NoError(t, db.Create(&models.Membership{
		UserID:   passenger.ID,
		CircleID: circle.ID,
		IsActive: true,
	}).Error)

	svc := NewRideService(db)
	ride, err := svc.Offer(ctx, circle.ID, founder.ID, validOffer())
	require.NoError(t, err)
	_, err = svc.Join(ctx, ride.ID, passenger.ID)
	require.NoError(t, err)

	_, err = svc.Rate(ctx, ride.ID, passenger.ID, 5, "")
	require.Error(t, err)
	assert.True(t, IsKind(err, KindStateViolation))
}

func TestSweepExpired(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	founder := createUser(t, db, "joedoe")
	circle, _ := createCircle(t, db, "hiking-vancouver", founder, false, 0)

	now := time.Now()
	rides := []models.Ride{
		// Finished well past the grace period: swept
		{ArrivalDate: now.Add(-2 * time.Minute), DepartureDate: now.Add(-time.Hour)},
		// Finished but still inside the grace period: kept
		{ArrivalDate: now.Add(-30 * time.Second), DepartureDate: now.Add(-time.Hour)},
		// Still in the future: kept
		{ArrivalDate: now.Add(2 * time.Hour), DepartureDate: now.Add(time.Hour)},
	}
	for i := range rides {
		rides[i].OfferedByID = founder.ID
		rides[i].CircleID = circle.ID
		rides[i].DepartureLocation = "UNAM"
		rides[i].ArrivalLocation = "Polanco"
		rides[i].AvailableSeats = 2
		rides[i].IsActive = true
		require.NoError(t, db.Create(&rides[i]).Error)
	}

	svc := NewRideService(db)

	count, err := svc.SweepExpired(ctx, now)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	var active int64
	require.NoError(t, db.Model(&models.Ride{}).
		Where("circle_id = ? AND is_active = ?", circle.ID, true).
		Count(&active).Error)
	assert.EqualValues(t, 2, active)

	// Sweeping again right away finds nothing
	count, err = svc.SweepExpired(ctx, now)
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)
}

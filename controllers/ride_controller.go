package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/cride-hq/cride_backend/database"
	"github.com/cride-hq/cride_backend/services"
	"github.com/cride-hq/cride_backend/websocket"
	"github.com/gin-gonic/gin"
)

type CreateRideInput struct {
	Comments          string    `json:"comments" binding:"max=255"`
	DepartureLocation string    `json:"departure_location" binding:"required,max=255"`
	DepartureDate     time.Time `json:"departure_date" binding:"required"`
	ArrivalLocation   string    `json:"arrival_location" binding:"required,max=255"`
	ArrivalDate       time.Time `json:"arrival_date" binding:"required"`
	AvailableSeats    uint      `json:"available_seats" binding:"required,min=1,max=15"`
}

type UpdateRideInput struct {
	Comments          *string    `json:"comments" binding:"omitempty,max=255"`
	DepartureLocation *string    `json:"departure_location" binding:"omitempty,max=255"`
	DepartureDate     *time.Time `json:"departure_date"`
	ArrivalLocation   *string    `json:"arrival_location" binding:"omitempty,max=255"`
	ArrivalDate       *time.Time `json:"arrival_date"`
	AvailableSeats    *uint      `json:"available_seats" binding:"omitempty,min=1,max=15"`
}

type RateRideInput struct {
	Score    uint   `json:"score" binding:"required,min=1,max=5"`
	Comments string `json:"comments" binding:"max=255"`
}

// GetRides godoc
// @Summary List a circle's upcoming rides
// @Description Returns active rides that have not departed yet
// @Tags rides
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Circle slug"
// @Success 200 {object} map[string]interface{} "List of rides"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Circle not found"
// @Router /api/circles/{slug}/rides [get]
func GetRides(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	circle, ok := findCircle(c)
	if !ok {
		return
	}

	memberships := services.NewMembershipService(database.DB)
	if _, err := memberships.ActiveMember(c.Request.Context(), circle.ID, userID); err != nil {
		respondError(c, err)
		return
	}

	rides, err := services.NewRideService(database.DB).Upcoming(c.Request.Context(), circle.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"rides": rides})
}

// CreateRide godoc
// @Summary Offer a ride in a circle
// @Description Creates a ride offered by the authenticated user
// @Tags rides
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Circle slug"
// @Param ride body CreateRideInput true "Ride Offer"
// @Success 201 {object} map[string]interface{} "Ride created successfully"
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Circle not found"
// @Router /api/circles/{slug}/rides [post]
func CreateRide(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	circle, ok := findCircle(c)
	if !ok {
		return
	}

	var input CreateRideInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ride, err := services.NewRideService(database.DB).Offer(c.Request.Context(), circle.ID, userID, services.RideOffer{
		Comments:          input.Comments,
		DepartureLocation: input.DepartureLocation,
		DepartureDate:     input.DepartureDate,
		ArrivalLocation:   input.ArrivalLocation,
		ArrivalDate:       input.ArrivalDate,
		AvailableSeats:    input.AvailableSeats,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	websocket.BroadcastToCircle(circle.ID, "ride_created", ride)

	c.JSON(http.StatusCreated, gin.H{
		"message": "Ride created successfully",
		"ride":    ride,
	})
}

// UpdateRide godoc
// @Summary Update a ride
// @Description Updates ride data; only the offering user may edit, and only before departure
// @Tags rides
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Circle slug"
// @Param id path int true "Ride ID"
// @Param ride body UpdateRideInput true "Ride Update"
// @Success 200 {object} map[string]interface{} "Ride updated successfully"
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Ride not found"
// @Failure 422 {object} map[string]string "Ride already under way"
// @Router /api/circles/{slug}/rides/{id} [put]
func UpdateRide(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	circle, ok := findCircle(c)
	if !ok {
		return
	}

	rideID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ride ID"})
		return
	}

	var input UpdateRideInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ride, err := services.NewRideService(database.DB).Update(c.Request.Context(), uint(rideID), userID, services.RideChanges{
		Comments:          input.Comments,
		DepartureLocation: input.DepartureLocation,
		DepartureDate:     input.DepartureDate,
		ArrivalLocation:   input.ArrivalLocation,
		ArrivalDate:       input.ArrivalDate,
		AvailableSeats:    input.AvailableSeats,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	websocket.BroadcastToCircle(circle.ID, "ride_updated", ride)

	c.JSON(http.StatusOK, gin.H{
		"message": "Ride updated successfully",
		"ride":    ride,
	})
}

// JoinRide godoc
// @Summary Join a ride as passenger
// @Description Takes one seat on the ride for the authenticated user
// @Tags rides
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Circle slug"
// @Param id path int true "Ride ID"
// @Success 200 {object} map[string]interface{} "Joined the ride"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Ride not found"
// @Failure 409 {object} map[string]string "No seats or already joined"
// @Failure 422 {object} map[string]string "Ride already departed"
// @Router /api/circles/{slug}/rides/{id}/join [post]
func JoinRide(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	circle, ok := findCircle(c)
	if !ok {
		return
	}

	rideID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ride ID"})
		return
	}

	ride, err := services.NewRideService(database.DB).Join(c.Request.Context(), uint(rideID), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	websocket.BroadcastToCircle(circle.ID, "passenger_joined", ride)

	c.JSON(http.StatusOK, gin.H{
		"message": "Joined the ride",
		"ride":    ride,
	})
}

// RateRide godoc
// @Summary Rate a finished ride
// @Description Records the authenticated passenger's score for the ride
// @Tags rides
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Circle slug"
// @Param id path int true "Ride ID"
// @Param rating body RateRideInput true "Rating"
// @Success 200 {object} map[string]interface{} "Ride rated"
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Ride not found"
// @Failure 409 {object} map[string]string "Already rated"
// @Failure 422 {object} map[string]string "Ride not finished"
// @Router /api/circles/{slug}/rides/{id}/rate [post]
func RateRide(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	if _, ok := findCircle(c); !ok {
		return
	}

	rideID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ride ID"})
		return
	}

	var input RateRideInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ride, err := services.NewRideService(database.DB).Rate(c.Request.Context(), uint(rideID), userID, input.Score, input.Comments)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Ride rated",
		"ride":    ride,
	})
}

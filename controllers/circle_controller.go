package controllers

import (
	"net/http"

	"github.com/cride-hq/cride_backend/database"
	"github.com/cride-hq/cride_backend/models"
	"github.com/cride-hq/cride_backend/services"
	"github.com/gin-gonic/gin"
)

type CreateCircleInput struct {
	Name         string `json:"name" binding:"required,max=140"`
	SlugName     string `json:"slug_name" binding:"required,max=40"`
	About        string `json:"about" binding:"max=255"`
	IsLimited    bool   `json:"is_limited"`
	MembersLimit uint   `json:"members_limit" binding:"omitempty,min=10,max=32000"`
}

type UpdateCircleInput struct {
	Name         *string `json:"name" binding:"omitempty,max=140"`
	About        *string `json:"about" binding:"omitempty,max=255"`
	Picture      *string `json:"picture" binding:"omitempty,max=255"`
	IsLimited    *bool   `json:"is_limited"`
	MembersLimit *uint   `json:"members_limit" binding:"omitempty,min=10,max=32000"`
}

// GetCircles godoc
// @Summary List public circles
// @Description Returns all public circles
// @Tags circles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "List of circles"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Server error"
// @Router /api/circles [get]
func GetCircles(c *gin.Context) {
	var circles []models.Circle
	if err := database.DB.Where("is_public = ?", true).Find(&circles).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch circles"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"circles": circles})
}

// CreateCircle godoc
// @Summary Create a new circle
// @Description Creates a circle with the authenticated user as founding admin
// @Tags circles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param circle body CreateCircleInput true "Circle Creation"
// @Success 201 {object} map[string]interface{} "Circle created successfully"
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Server error"
// @Router /api/circles [post]
func CreateCircle(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	var input CreateCircleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// A limited circle needs a limit, an unlimited one must not have one
	if input.IsLimited != (input.MembersLimit > 0) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "If circle is limited, a members limit should be provided"})
		return
	}

	var existing models.Circle
	if result := database.DB.Where("slug_name = ?", input.SlugName).First(&existing); result.RowsAffected > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Circle with this slug already exists"})
		return
	}

	circle := models.Circle{
		Name:         input.Name,
		SlugName:     input.SlugName,
		About:        input.About,
		IsPublic:     true,
		IsLimited:    input.IsLimited,
		MembersLimit: input.MembersLimit,
	}

	if err := database.DB.Create(&circle).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create circle"})
		return
	}

	// The creator becomes the founding admin with a seeded invitation quota
	memberships := services.NewMembershipService(database.DB)
	if _, err := memberships.CreateFounder(c.Request.Context(), userID, circle.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create founder membership"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Circle created successfully",
		"circle":  circle,
	})
}

// GetCircle godoc
// @Summary Get a circle by slug
// @Description Returns a single public circle
// @Tags circles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Circle slug"
// @Success 200 {object} map[string]interface{} "Circle details"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Circle not found"
// @Router /api/circles/{slug} [get]
func GetCircle(c *gin.Context) {
	circle, ok := findCircle(c)
	if !ok {
		return
	}

	if !circle.IsPublic {
		userID := c.MustGet("userID").(uint)
		memberships := services.NewMembershipService(database.DB)
		if _, err := memberships.ActiveMember(c.Request.Context(), circle.ID, userID); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Circle not found"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"circle": circle})
}

// UpdateCircle godoc
// @Summary Update a circle
// @Description Updates circle data; only circle admins may do this
// @Tags circles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Circle slug"
// @Param circle body UpdateCircleInput true "Circle Update"
// @Success 200 {object} map[string]interface{} "Circle updated successfully"
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Circle not found"
// @Router /api/circles/{slug} [put]
func UpdateCircle(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	circle, ok := findCircle(c)
	if !ok {
		return
	}

	memberships := services.NewMembershipService(database.DB)
	membership, err := memberships.ActiveMember(c.Request.Context(), circle.ID, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	if !membership.IsAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only circle admins can update the circle"})
		return
	}

	var input UpdateCircleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Name != nil {
		circle.Name = *input.Name
	}
	if input.About != nil {
		circle.About = *input.About
	}
	if input.Picture != nil {
		circle.Picture = *input.Picture
	}
	if input.IsLimited != nil {
		circle.IsLimited = *input.IsLimited
	}
	if input.MembersLimit != nil {
		circle.MembersLimit = *input.MembersLimit
	}

	if circle.IsLimited != (circle.MembersLimit > 0) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "If circle is limited, a members limit should be provided"})
		return
	}

	if err := database.DB.Save(circle).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update circle"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Circle updated successfully",
		"circle":  circle,
	})
}

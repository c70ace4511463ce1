package controllers

import (
	"net/http"

	"github.com/cride-hq/cride_backend/database"
	"github.com/cride-hq/cride_backend/mailer"
	"github.com/cride-hq/cride_backend/models"
	"github.com/cride-hq/cride_backend/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type RegisterInput struct {
	Username             string `json:"username" binding:"required,min=4,max=20"`
	Email                string `json:"email" binding:"required,email"`
	FirstName            string `json:"first_name" binding:"required,min=2,max=30"`
	LastName             string `json:"last_name" binding:"required,min=2,max=30"`
	PhoneNumber          string `json:"phone_number" binding:"omitempty,e164"`
	Password             string `json:"password" binding:"required,min=8,max=64"`
	PasswordConfirmation string `json:"password_confirmation" binding:"required,eqfield=Password"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type VerifyInput struct {
	Token string `json:"token" binding:"required"`
}

// Register godoc
// @Summary Sign up a new user
// @Description Creates a user and profile and mails an account verification token
// @Tags auth
// @Accept json
// @Produce json
// @Param user body RegisterInput true "User Registration"
// @Success 201 {object} map[string]interface{} "User registered successfully"
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 500 {object} map[string]string "Server error"
// @Router /api/register [post]
func Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Check if user already exists
	var existingUser models.User
	if result := database.DB.Where("email = ? OR username = ?", input.Email, input.Username).
		First(&existingUser); result.RowsAffected > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username or email already exists"})
		return
	}

	user := models.User{
		Username:    input.Username,
		Email:       input.Email,
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		PhoneNumber: input.PhoneNumber,
		Password:    input.Password,
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		return tx.Create(&models.Profile{UserID: user.ID}).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	// Fire-and-forget verification email
	token, err := utils.GenerateVerificationToken(user.Username)
	if err == nil {
		mailer.New().SendVerificationEmail(user.Email, user.Username, token)
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully, check your email to verify the account",
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"email":    user.Email,
		},
	})
}

// Login godoc
// @Summary Authenticate a user
// @Description Returns a JWT for a verified user
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body LoginInput true "Login credentials"
// @Success 200 {object} map[string]interface{} "Login successful"
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Invalid credentials or unverified account"
// @Router /api/login [post]
func Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Find user by email
	var user models.User
	if result := database.DB.Where("email = ?", input.Email).First(&user); result.Error != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	// Validate password
	if err := user.ValidatePassword(input.Password); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	if !user.IsVerified {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Account is not verified yet"})
		return
	}

	// Generate token
	token, err := utils.GenerateToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"email":    user.Email,
		},
		"token": token,
	})
}

// Verify godoc
// @Summary Verify a new account
// @Description Consumes the emailed verification token and activates the account
// @Tags auth
// @Accept json
// @Produce json
// @Param token body VerifyInput true "Verification token"
// @Success 200 {object} map[string]string "Account verified"
// @Failure 400 {object} map[string]string "Invalid token"
// @Router /api/verify [post]
func Verify(c *gin.Context) {
	var input VerifyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	username, err := utils.ParseVerificationToken(input.Token)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired verification token"})
		return
	}

	if err := database.DB.Model(&models.User{}).
		Where("username = ?", username).
		Update("is_verified", true).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify account"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Account verified successfully"})
}

package controllers

import (
	"net/http"
	"os"
	"time"

	"permit-management-api/config"
	"permit-management-api/middleware"
	"permit-management-api/models"
	"permit-management-api/services"
	"permit-management-api/utils"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const tokenLifetime = 24 * time.Hour

type loginRequest struct {
	Contact  string `json:"contact" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type otpRequest struct {
	Contact string `json:"contact" binding:"required"`
	Channel string `json:"channel" binding:"required"`
}

type otpVerifyRequest struct {
	Contact string `json:"contact" binding:"required"`
	Channel string `json:"channel" binding:"required"`
	Code    string `json:"code" binding:"required"`
}

func issueToken(c *gin.Context, user *models.User) (string, error) {
	claims := middleware.Claims{
		UserID: user.ID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenLifetime)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(os.Getenv("JWT_SECRET")))
	if err != nil {
		return "", err
	}

	secure := os.Getenv("ENVIRONMENT") == "production"
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie("auth_token", signed, int(tokenLifetime.Seconds()), "/", "", secure, true)
	return signed, nil
}

// Login authenticates a staff account with contact and password. Applicants
// normally sign in through the OTP flow instead.
func Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Contact and password are required"})
		return
	}

	contact := utils.SanitizeInput(req.Contact)
	var user models.User
	if err := config.DB.Where("email = ? OR phone = ?", contact, contact).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}
	if user.PasswordHash == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	signed, err := issueToken(c, &user)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": signed,
		"token_type":   "bearer",
		"user":         user,
	})
}

// RequestOTP sends a one-time code to the contact over the chosen channel.
// The response never reveals whether the contact already has an account.
func RequestOTP(c *gin.Context) {
	var req otpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Contact and channel are required"})
		return
	}

	service := services.NewOTPService(config.DB)
	if err := service.RequestOTP(req.Contact, req.Channel); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Verification code sent"})
}

// VerifyOTP checks a submitted code and signs the caller in, creating the
// applicant account on first verification.
func VerifyOTP(c *gin.Context) {
	var req otpVerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Contact, channel and code are required"})
		return
	}

	service := services.NewOTPService(config.DB)
	result, err := service.VerifyOTP(req.Contact, req.Channel, req.Code)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	switch result.Status {
	case services.OTPSuccess:
		// fall through to token issuance
	case services.OTPLocked, services.OTPMaxAttempts:
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many failed attempts, try again later", "status": result.Status})
		return
	case services.OTPCodeExpired:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Code expired, request a new one", "status": result.Status})
		return
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid verification code", "status": result.Status})
		return
	}

	signed, err := issueToken(c, result.User)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": signed,
		"token_type":   "bearer",
		"user":         result.User,
		"onboarding":   result.Onboarding,
	})
}

// Logout clears the session cookie.
func Logout(c *gin.Context) {
	secure := os.Getenv("ENVIRONMENT") == "production"
	c.SetCookie("auth_token", "", -1, "/", "", secure, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// GetProfile returns the authenticated user with their profile.
func GetProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var user models.User
	if err := config.DB.Preload("Profile").Where("id = ?", userID).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, user)
}

type onboardingRequest struct {
	FirstName       string `json:"first_name" binding:"required"`
	LastName        string `json:"last_name" binding:"required"`
	OtherName       string `json:"other_name"`
	GhanaCardNumber string `json:"ghana_card_number"`
	Address         string `json:"address"`
	DigitalAddress  string `json:"digital_address"`
	CompanyName     string `json:"company_name"`
	LicenseNumber   string `json:"license_number"`
	Specialization  string `json:"specialization"`
}

// CompleteOnboarding records the applicant's identity details and activates
// the account.
func CompleteOnboarding(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var req onboardingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "First and last name are required"})
		return
	}

	var user models.User
	if err := config.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	now := time.Now()
	user.FirstName = ptr(utils.SanitizeInput(req.FirstName))
	user.LastName = ptr(utils.SanitizeInput(req.LastName))
	user.OtherName = ptr(utils.SanitizeInput(req.OtherName))
	user.IsActive = true
	user.UpdatedAt = now
	if err := config.DB.Save(&user).Error; err != nil {
		respondServiceError(c, err)
		return
	}

	var profile models.UserProfile
	err := config.DB.Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		profile = models.UserProfile{UserID: userID, CreatedAt: now}
	}
	profile.GhanaCardNumber = ptr(utils.SanitizeInput(req.GhanaCardNumber))
	profile.Address = utils.SanitizeInput(req.Address)
	profile.DigitalAddress = ptr(utils.SanitizeInput(req.DigitalAddress))
	profile.CompanyName = ptr(utils.SanitizeInput(req.CompanyName))
	profile.LicenseNumber = ptr(utils.SanitizeInput(req.LicenseNumber))
	profile.Specialization = ptr(utils.SanitizeInput(req.Specialization))
	profile.UpdatedAt = now
	if err := config.DB.Save(&profile).Error; err != nil {
		respondServiceError(c, err)
		return
	}

	user.Profile = &profile
	c.JSON(http.StatusOK, user)
}

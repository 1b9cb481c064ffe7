package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"permit-management-api/config"
	"permit-management-api/models"
	"permit-management-api/services"
	"permit-management-api/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type submitApplicationRequest struct {
	MMDAID           int            `json:"mmda_id" binding:"required"`
	PermitTypeID     string         `json:"permit_type_id" binding:"required"`
	ProjectName      string         `json:"project_name" binding:"required"`
	ProjectDesc      string         `json:"project_description"`
	ProjectAddress   string         `json:"project_address" binding:"required"`
	ParcelNumber     string         `json:"parcel_number"`
	EstimatedCost    *float64       `json:"estimated_cost"`
	ConstructionArea *float64       `json:"construction_area"`
	ParkingSpaces    *int           `json:"parking_spaces"`
	Setbacks         models.JSONMap `json:"setbacks"`
	FloorAreas       models.JSONMap `json:"floor_areas"`
	GISMetadata      models.JSONMap `json:"gis_metadata"`
	Latitude         *float64       `json:"latitude"`
	Longitude        *float64       `json:"longitude"`

	ExpectedStartDate *time.Time `json:"expected_start_date"`
	ExpectedEndDate   *time.Time `json:"expected_end_date"`

	PaymentReference string `json:"payment_reference"`

	Documents []struct {
		DocumentTypeID int    `json:"document_type_id" binding:"required"`
		FilePath       string `json:"file_path" binding:"required"`
	} `json:"documents"`
}

func newApplicationNumber() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:8]
	return fmt.Sprintf("APP-%d-%s", time.Now().Year(), suffix)
}

// SubmitApplication creates a permit application in the submitted state,
// attaches uploaded documents and links the processing-fee payment.
func SubmitApplication(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var req submitApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	permitType, err := services.GetPermitTypeByID(req.PermitTypeID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(req.Documents) < permitType.MinRequiredDocuments {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("permit type %s requires at least %d documents", permitType.ID, permitType.MinRequiredDocuments),
		})
		return
	}

	var mmda models.MMDA
	if err := config.DB.Where("id = ?", req.MMDAID).First(&mmda).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown MMDA"})
		return
	}

	now := time.Now()
	app := models.PermitApplication{
		ApplicationNumber:  newApplicationNumber(),
		ApplicantID:        userID,
		MMDAID:             req.MMDAID,
		PermitTypeID:       permitType.ID,
		Status:             models.StatusSubmitted,
		ProjectName:        utils.SanitizeInput(req.ProjectName),
		ProjectDescription: utils.SanitizeInput(req.ProjectDesc),
		ProjectAddress:     utils.SanitizeInput(req.ProjectAddress),
		ParcelNumber:       utils.SanitizeInput(req.ParcelNumber),
		EstimatedCost:      req.EstimatedCost,
		ConstructionArea:   req.ConstructionArea,
		ParkingSpaces:      req.ParkingSpaces,
		Setbacks:           req.Setbacks,
		FloorAreas:         req.FloorAreas,
		GISMetadata:        req.GISMetadata,
		Latitude:           req.Latitude,
		Longitude:          req.Longitude,
		ExpectedStartDate:  req.ExpectedStartDate,
		ExpectedEndDate:    req.ExpectedEndDate,
		CreatedAt:          now,
		UpdatedAt:          now,
		SubmittedAt:        &now,
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		respondServiceError(c, tx.Error)
		return
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := tx.Create(&app).Error; err != nil {
		tx.Rollback()
		respondServiceError(c, err)
		return
	}

	history := models.ApplicationStatusHistory{
		ApplicationID: app.ID,
		ToStatus:      models.StatusSubmitted,
		ChangedByID:   userID,
		ChangedAt:     now,
	}
	if err := tx.Create(&history).Error; err != nil {
		tx.Rollback()
		respondServiceError(c, err)
		return
	}

	for _, doc := range req.Documents {
		row := models.ApplicationDocument{
			ApplicationID:  app.ID,
			DocumentTypeID: doc.DocumentTypeID,
			FilePath:       doc.FilePath,
			UploadedByID:   userID,
			UploadedAt:     now,
		}
		if err := tx.Create(&row).Error; err != nil {
			tx.Rollback()
			respondServiceError(c, err)
			return
		}
	}

	if req.PaymentReference != "" {
		result := tx.Model(&models.Payment{}).
			Where("reference = ? AND user_id = ? AND purpose = ? AND status = ? AND application_id IS NULL",
				req.PaymentReference, userID, models.PaymentPurposeProcessingFee, models.PaymentStatusCompleted).
			Update("application_id", app.ID)
		if result.Error != nil {
			tx.Rollback()
			respondServiceError(c, result.Error)
			return
		}
		if result.RowsAffected == 0 {
			tx.Rollback()
			c.JSON(http.StatusBadRequest, gin.H{"error": "No completed processing fee payment matches that reference"})
			return
		}
	}

	if err := tx.Commit().Error; err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, app)
}

// GetMyApplications lists the caller's own applications, newest first.
func GetMyApplications(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var apps []models.PermitApplication
	err := config.DB.Preload("PermitType").Preload("MMDA").
		Where("applicant_id = ?", userID).
		Order("created_at DESC").
		Find(&apps).Error
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"applications": apps, "total": len(apps)})
}

// GetApplication returns one application for its applicant, including the
// audit trail and inspections.
func GetApplication(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}
	appID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid application id"})
		return
	}

	var app models.PermitApplication
	err = config.DB.Preload("PermitType").Preload("MMDA").
		Preload("Documents.DocumentType").
		Preload("Inspections").
		Preload("StatusHistory", func(db *gorm.DB) *gorm.DB { return db.Order("changed_at ASC") }).
		Where("id = ?", appID).First(&app).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Application not found"})
		return
	}
	if app.ApplicantID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	c.JSON(http.StatusOK, app)
}

// GetApplicationForReviewer returns the reviewer projection: full application
// detail plus reviews, checklist steps and the reviewer's own progress.
// Jurisdiction is enforced before anything is returned.
func GetApplicationForReviewer(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}
	appID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid application id"})
		return
	}

	var app models.PermitApplication
	err = config.DB.Preload("Applicant.Profile").
		Preload("PermitType").Preload("MMDA").
		Preload("Documents.DocumentType").
		Preload("Reviews").
		Preload("ReviewSteps").
		Preload("Inspections.Photos").
		Preload("Payments").
		Preload("StatusHistory", func(db *gorm.DB) *gorm.DB { return db.Order("changed_at ASC") }).
		Preload("StatusHistory.ChangedBy").
		Where("id = ?", appID).First(&app).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Application not found"})
		return
	}

	jurisdiction := services.NewJurisdictionService(config.DB)
	staff, err := jurisdiction.StaffFor(userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if !staff.CanActOn(&app) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Application is outside your jurisdiction"})
		return
	}

	reviews := services.NewReviewService(config.DB)
	progress, err := reviews.Progress(userID, app.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"application": app,
		"progress":    progress,
	})
}

// GetStatusHistory returns the audit trail of one application for its
// applicant or any staff member with jurisdiction.
func GetStatusHistory(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}
	appID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid application id"})
		return
	}

	var app models.PermitApplication
	if err := config.DB.Where("id = ?", appID).First(&app).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Application not found"})
		return
	}

	if app.ApplicantID != userID {
		jurisdiction := services.NewJurisdictionService(config.DB)
		staff, err := jurisdiction.StaffFor(userID)
		if err != nil || !staff.CanActOn(&app) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
			return
		}
	}

	var history []models.ApplicationStatusHistory
	err = config.DB.Preload("ChangedBy").
		Where("application_id = ?", appID).
		Order("changed_at ASC").
		Find(&history).Error
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"history": history, "total": len(history)})
}

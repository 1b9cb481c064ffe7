package controllers

import (
	"net/http"
	"strconv"
	"time"

	"permit-management-api/config"
	"permit-management-api/models"
	"permit-management-api/services"

	"github.com/gin-gonic/gin"
)

type scheduleInspectionRequest struct {
	ScheduledDate  time.Time `json:"scheduled_date" binding:"required"`
	InspectionType string    `json:"inspection_type" binding:"required"`
	Notes          string    `json:"notes"`
}

type requestInspectionRequest struct {
	InspectionType string    `json:"inspection_type" binding:"required"`
	RequestedDate  time.Time `json:"requested_date" binding:"required"`
	Notes          string    `json:"notes"`
}

type completeInspectionRequest struct {
	Outcome         string   `json:"outcome" binding:"required"`
	Findings        string   `json:"findings"`
	ViolationsFound string   `json:"violations_found"`
	Notes           string   `json:"notes"`
	PhotoPaths      []string `json:"photo_paths"`
}

// ScheduleInspection books an inspection on an application in the caller's
// jurisdiction and moves it to the inspection-pending state.
func ScheduleInspection(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}
	appID, ok := applicationIDParam(c)
	if !ok {
		return
	}

	var req scheduleInspectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Scheduled date and inspection type are required"})
		return
	}

	service := services.NewInspectionService(config.DB)
	inspection, err := service.Schedule(userID, services.ScheduleInput{
		ApplicationID:  appID,
		ScheduledDate:  req.ScheduledDate,
		InspectionType: req.InspectionType,
		Notes:          req.Notes,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, inspection)
}

// RequestInspection lets an applicant ask for an inspection on their own
// application.
func RequestInspection(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}
	appID, ok := applicationIDParam(c)
	if !ok {
		return
	}

	var req requestInspectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Inspection type and requested date are required"})
		return
	}

	service := services.NewInspectionService(config.DB)
	inspection, err := service.Request(userID, services.RequestInput{
		ApplicationID:  appID,
		InspectionType: req.InspectionType,
		RequestedDate:  req.RequestedDate,
		Notes:          req.Notes,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, inspection)
}

// CompleteInspection records the outcome of a site visit and moves the
// application forward.
func CompleteInspection(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}
	inspectionID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid inspection id"})
		return
	}

	var req completeInspectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Outcome is required"})
		return
	}

	service := services.NewInspectionService(config.DB)
	inspection, err := service.Complete(userID, services.CompleteInput{
		InspectionID:    inspectionID,
		Outcome:         req.Outcome,
		Findings:        req.Findings,
		ViolationsFound: req.ViolationsFound,
		Notes:           req.Notes,
		PhotoPaths:      req.PhotoPaths,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, inspection)
}

// GetInspection returns one inspection for its applicant, assigned officer
// or staff with jurisdiction.
func GetInspection(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}
	inspectionID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid inspection id"})
		return
	}

	var inspection models.Inspection
	err = config.DB.Preload("Application").Preload("Photos").
		Where("id = ?", inspectionID).First(&inspection).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Inspection not found"})
		return
	}

	allowed := inspection.ApplicantID == userID ||
		(inspection.InspectionOfficerID != nil && *inspection.InspectionOfficerID == userID)
	if !allowed {
		jurisdiction := services.NewJurisdictionService(config.DB)
		staff, err := jurisdiction.StaffFor(userID)
		if err != nil || staff.MMDAID != inspection.MMDAID {
			c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
			return
		}
	}

	c.JSON(http.StatusOK, inspection)
}

// GetUserInspections lists inspections relevant to the caller: their own
// applications for applicants, their assigned workload for officers.
func GetUserInspections(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}
	role, _ := c.Get("role")

	query := config.DB.Preload("Application").Preload("Photos").Order("scheduled_date DESC")
	switch role {
	case models.RoleInspectionOfficer:
		query = query.Where("inspection_officer_id = ?", userID)
	default:
		query = query.Where("applicant_id = ?", userID)
	}

	var inspections []models.Inspection
	if err := query.Find(&inspections).Error; err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"inspections": inspections, "total": len(inspections)})
}

// GetInspectorViolations lists the caller's completed inspections that
// recorded violations, within their MMDA.
func GetInspectorViolations(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	service := services.NewInspectionService(config.DB)
	inspections, err := service.ViolationsForOfficer(userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"violations": inspections, "total": len(inspections)})
}

package controllers

import (
	"net/http"
	"strconv"

	"permit-management-api/config"
	"permit-management-api/models"
	"permit-management-api/services"

	"github.com/gin-gonic/gin"
)

// GetMMDAs lists every assembly for the application form.
func GetMMDAs(c *gin.Context) {
	var mmdas []models.MMDA
	if err := config.DB.Order("name ASC").Find(&mmdas).Error; err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"mmdas": mmdas, "total": len(mmdas)})
}

// GetMMDADepartments lists the departments of one assembly.
func GetMMDADepartments(c *gin.Context) {
	mmdaID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid MMDA id"})
		return
	}

	var departments []models.Department
	if err := config.DB.Where("mmda_id = ?", mmdaID).Order("name ASC").Find(&departments).Error; err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"departments": departments, "total": len(departments)})
}

// GetMMDACommittees lists the committees of one assembly with members.
func GetMMDACommittees(c *gin.Context) {
	mmdaID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid MMDA id"})
		return
	}

	var committees []models.Committee
	if err := config.DB.Preload("Members.User").Where("mmda_id = ?", mmdaID).Order("name ASC").Find(&committees).Error; err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"committees": committees, "total": len(committees)})
}

// GetPermitTypes lists the active permit type catalogue with document
// requirements.
func GetPermitTypes(c *gin.Context) {
	types, err := services.GetPermitTypes()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"permit_types": types, "total": len(types)})
}

// GetReviewerQueue lists applications awaiting action in the caller's
// jurisdiction: submitted first, then under review and inspection states,
// oldest submission first within each status.
func GetReviewerQueue(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	jurisdiction := services.NewJurisdictionService(config.DB)
	staff, err := jurisdiction.StaffFor(userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	actionable := []models.ApplicationStatus{
		models.StatusSubmitted,
		models.StatusUnderReview,
		models.StatusAdditionalInfoRequested,
		models.StatusInspectionPending,
		models.StatusInspectionCompleted,
		models.StatusForApprovalOrRejection,
	}

	query := config.DB.Preload("PermitType").Preload("Applicant").
		Where("mmda_id = ?", staff.MMDAID).
		Where("status IN ?", actionable)
	if status := c.Query("status"); status != "" {
		parsed, err := models.ParseApplicationStatus(status)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		query = query.Where("status = ?", parsed)
	}

	var apps []models.PermitApplication
	err = query.
		Order("FIELD(status, 'submitted', 'additional_info_requested', 'under_review', 'inspection_pending', 'inspection_completed', 'for_approval_or_rejection')").
		Order("submitted_at ASC").
		Find(&apps).Error
	if err != nil {
		respondServiceError(c, err)
		return
	}

	// Committee and department routing still applies per application.
	queue := make([]models.PermitApplication, 0, len(apps))
	for i := range apps {
		if staff.CanActOn(&apps[i]) {
			queue = append(queue, apps[i])
		}
	}

	c.JSON(http.StatusOK, gin.H{"applications": queue, "total": len(queue)})
}

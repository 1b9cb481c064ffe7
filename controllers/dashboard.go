package controllers

import (
	"net/http"
	"time"

	"permit-management-api/config"
	"permit-management-api/models"
	"permit-management-api/services"

	"github.com/gin-gonic/gin"
)

func periodStart(period string, now time.Time) time.Time {
	switch period {
	case "day":
		return now.AddDate(0, 0, -1)
	case "month":
		return now.AddDate(0, -1, 0)
	case "year":
		return now.AddDate(-1, 0, 0)
	default: // week
		return now.AddDate(0, 0, -7)
	}
}

// GetReviewerMetrics summarizes workflow activity in the caller's MMDA over
// the requested period (day, week, month or year).
func GetReviewerMetrics(c *gin.Context) {
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

	period := c.DefaultQuery("period", "week")
	now := time.Now()
	since := periodStart(period, now)

	countByStatus := func(statuses ...models.ApplicationStatus) (int64, error) {
		var n int64
		err := config.DB.Model(&models.PermitApplication{}).
			Where("mmda_id = ?", staff.MMDAID).
			Where("status IN ?", statuses).
			Count(&n).Error
		return n, err
	}

	pending, err := countByStatus(models.StatusSubmitted, models.StatusAdditionalInfoRequested)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	inReview, err := countByStatus(models.StatusUnderReview, models.StatusInspectionPending,
		models.StatusInspectionCompleted, models.StatusForApprovalOrRejection)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	var decided int64
	err = config.DB.Model(&models.ApplicationStatusHistory{}).
		Joins("JOIN permit_applications ON permit_applications.id = application_status_history.application_id").
		Where("permit_applications.mmda_id = ?", staff.MMDAID).
		Where("application_status_history.to_status IN ?", []models.ApplicationStatus{models.StatusApproved, models.StatusRejected, models.StatusIssued}).
		Where("application_status_history.changed_at >= ?", since).
		Count(&decided).Error
	if err != nil {
		respondServiceError(c, err)
		return
	}

	var myReviews int64
	err = config.DB.Model(&models.ApplicationReview{}).
		Where("review_officer_id = ?", userID).
		Where("updated_at >= ?", since).
		Count(&myReviews).Error
	if err != nil {
		respondServiceError(c, err)
		return
	}

	var inspectionsDone int64
	err = config.DB.Model(&models.Inspection{}).
		Where("mmda_id = ?", staff.MMDAID).
		Where("status = ?", models.InspectionCompleted).
		Where("actual_date >= ?", since).
		Count(&inspectionsDone).Error
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"period":                period,
		"since":                 since,
		"pending_applications":  pending,
		"in_review":             inReview,
		"decisions_made":        decided,
		"my_reviews":            myReviews,
		"inspections_completed": inspectionsDone,
	})
}

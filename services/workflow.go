package services

import (
	"permit-management-api/models"
	"time"

	"gorm.io/gorm"
)

// transitionApplication writes a new application status and its audit row
// inside the caller's transaction. The update is guarded by the version
// counter: if another request moved the application first, zero rows match
// and the whole unit of work must roll back.
func transitionApplication(tx *gorm.DB, app *models.PermitApplication, target models.ApplicationStatus, actorID int, notes *string) error {
	now := time.Now()

	updates := map[string]interface{}{
		"status":     target,
		"version":    app.Version + 1,
		"updated_at": now,
	}
	if target == models.StatusIssued {
		updates["approved_at"] = now
	}

	result := tx.Model(&models.PermitApplication{}).
		Where("id = ? AND version = ?", app.ID, app.Version).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrVersionConflict
	}

	fromStatus := app.Status
	history := models.ApplicationStatusHistory{
		ApplicationID: app.ID,
		FromStatus:    &fromStatus,
		ToStatus:      target,
		ChangedByID:   actorID,
		Notes:         notes,
		ChangedAt:     now,
	}
	if err := tx.Create(&history).Error; err != nil {
		return err
	}

	app.Status = target
	app.Version++
	return nil
}

func optionalText(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

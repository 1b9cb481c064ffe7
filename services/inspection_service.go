package services

import (
	"errors"
	"fmt"
	"permit-management-api/models"
	"time"

	"gorm.io/gorm"
)

// RecommendationForOutcome derives the inspector recommendation string from
// the recorded outcome.
func RecommendationForOutcome(outcome models.InspectionOutcome) string {
	switch outcome {
	case models.InspectionPassed:
		return "APPROVE - No violations found"
	case models.InspectionFailed:
		return "REJECT - Significant violations found"
	case models.InspectionPartial:
		return "CONDITIONAL APPROVAL - Minor violations must be corrected"
	default:
		return "PENDING REVIEW - Outcome not recorded"
	}
}

// ScheduleInput is a reviewer-initiated inspection booking.
type ScheduleInput struct {
	ApplicationID  int
	ScheduledDate  time.Time
	InspectionType string
	Notes          string
}

// RequestInput is an applicant-initiated inspection request.
type RequestInput struct {
	ApplicationID  int
	InspectionType string
	RequestedDate  time.Time
	Notes          string
}

// CompleteInput records the result of a site visit.
type CompleteInput struct {
	InspectionID    int
	Outcome         string
	Findings        string
	ViolationsFound string
	Notes           string
	PhotoPaths      []string
}

// InspectionService schedules, assigns and completes inspections, and feeds
// outcomes back into the application workflow.
type InspectionService struct {
	db           *gorm.DB
	jurisdiction *JurisdictionService
}

func NewInspectionService(db *gorm.DB) *InspectionService {
	return &InspectionService{db: db, jurisdiction: NewJurisdictionService(db)}
}

func (s *InspectionService) loadApplication(applicationID int) (*models.PermitApplication, error) {
	var app models.PermitApplication
	if err := s.db.Where("id = ?", applicationID).First(&app).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &app, nil
}

// Schedule books an inspection on behalf of the review workflow: future date
// only, recognized type, one active inspection at a time. Creates the
// inspection, moves the application to inspection_pending and writes the
// audit row in one transaction.
func (s *InspectionService) Schedule(schedulerID int, in ScheduleInput) (*models.Inspection, error) {
	inspectionType, err := models.ParseInspectionType(in.InspectionType)
	if err != nil {
		return nil, validationErrorf(err.Error())
	}
	if !in.ScheduledDate.After(time.Now()) {
		return nil, validationErrorf("scheduled date must be in the future")
	}

	app, err := s.loadApplication(in.ApplicationID)
	if err != nil {
		return nil, err
	}

	staff, err := s.jurisdiction.StaffFor(schedulerID)
	if err != nil {
		return nil, err
	}
	if !staff.CanActOn(app) {
		return nil, ErrForbidden
	}

	if !app.Status.CanTransition(models.StatusInspectionPending) {
		return nil, validationErrorf(fmt.Sprintf("cannot schedule inspection while application is %s", app.Status))
	}

	var active int64
	err = s.db.Model(&models.Inspection{}).
		Where("application_id = ? AND status IN ?", app.ID,
			[]models.InspectionStatus{models.InspectionPending, models.InspectionScheduled, models.InspectionInProgress}).
		Count(&active).Error
	if err != nil {
		return nil, err
	}
	if active > 0 {
		return nil, ErrActiveInspection
	}

	inspection := models.Inspection{
		ApplicationID:  app.ID,
		ApplicantID:    app.ApplicantID,
		MMDAID:         app.MMDAID,
		InspectionType: inspectionType,
		Status:         models.InspectionScheduled,
		ScheduledDate:  &in.ScheduledDate,
		Notes:          optionalText(in.Notes),
	}

	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := tx.Create(&inspection).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	note := fmt.Sprintf("Inspection scheduled for %s", in.ScheduledDate.Format("2006-01-02"))
	if err := transitionApplication(tx, app, models.StatusInspectionPending, schedulerID, &note); err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return &inspection, nil
}

// Request creates a pending inspection on the applicant's own application.
// Applicant requests may coexist with earlier inspections to support
// re-inspection; no status transition happens here.
func (s *InspectionService) Request(userID int, in RequestInput) (*models.Inspection, error) {
	inspectionType, err := models.ParseInspectionType(in.InspectionType)
	if err != nil {
		return nil, validationErrorf(err.Error())
	}

	app, err := s.loadApplication(in.ApplicationID)
	if err != nil {
		return nil, err
	}
	if app.ApplicantID != userID {
		return nil, ErrForbidden
	}

	inspection := models.Inspection{
		ApplicationID:  app.ID,
		ApplicantID:    userID,
		MMDAID:         app.MMDAID,
		InspectionType: inspectionType,
		Status:         models.InspectionPending,
		ScheduledDate:  &in.RequestedDate,
		Notes:          optionalText(in.Notes),
		IsReinspection: false,
	}
	if err := s.db.Create(&inspection).Error; err != nil {
		return nil, err
	}
	return &inspection, nil
}

// Complete records the result of a site visit exactly once. Repeating the
// call on a completed inspection fails with a conflict and changes nothing.
// The update, photo rows, application transition and audit row commit
// together or not at all.
func (s *InspectionService) Complete(officerID int, in CompleteInput) (*models.Inspection, error) {
	outcome, err := models.ParseInspectionOutcome(in.Outcome)
	if err != nil {
		return nil, validationErrorf(err.Error())
	}

	var inspection models.Inspection
	if err := s.db.Where("id = ?", in.InspectionID).First(&inspection).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if inspection.Status == models.InspectionCompleted {
		return nil, ErrAlreadyCompleted
	}

	app, err := s.loadApplication(inspection.ApplicationID)
	if err != nil {
		return nil, err
	}
	if !app.Status.CanTransition(models.StatusInspectionCompleted) {
		return nil, validationErrorf(fmt.Sprintf("cannot complete inspection while application is %s", app.Status))
	}

	now := time.Now()
	recommendation := RecommendationForOutcome(outcome)

	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	updates := map[string]interface{}{
		"status":                models.InspectionCompleted,
		"outcome":               outcome,
		"findings":              optionalText(in.Findings),
		"violations_found":      optionalText(in.ViolationsFound),
		"notes":                 optionalText(in.Notes),
		"recommendations":       recommendation,
		"actual_date":           now,
		"inspection_officer_id": officerID,
		"updated_at":            now,
	}
	if err := tx.Model(&models.Inspection{}).Where("id = ?", inspection.ID).Updates(updates).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	for _, path := range in.PhotoPaths {
		photo := models.InspectionPhoto{
			InspectionID: inspection.ID,
			FilePath:     path,
			UploadedByID: officerID,
			UploadedAt:   now,
		}
		if err := tx.Create(&photo).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	note := fmt.Sprintf("Inspection completed: %s", outcome)
	if err := transitionApplication(tx, app, models.StatusInspectionCompleted, officerID, &note); err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	inspection.Status = models.InspectionCompleted
	inspection.Outcome = &outcome
	inspection.Findings = optionalText(in.Findings)
	inspection.ViolationsFound = optionalText(in.ViolationsFound)
	inspection.Notes = optionalText(in.Notes)
	inspection.Recommendations = &recommendation
	inspection.ActualDate = &now
	inspection.InspectionOfficerID = &officerID
	return &inspection, nil
}

// ViolationsForOfficer lists the officer's own completed inspections that
// recorded violations, scoped to the officer's MMDA.
func (s *InspectionService) ViolationsForOfficer(officerID int) ([]models.Inspection, error) {
	staff, err := s.jurisdiction.StaffFor(officerID)
	if err != nil {
		return nil, err
	}

	var inspections []models.Inspection
	err = s.db.Preload("Application").Preload("Photos").
		Where("mmda_id = ?", staff.MMDAID).
		Where("inspection_officer_id = ?", officerID).
		Where("status = ?", models.InspectionCompleted).
		Where("violations_found IS NOT NULL AND violations_found <> ''").
		Order("actual_date DESC").
		Find(&inspections).Error
	if err != nil {
		return nil, err
	}
	return inspections, nil
}

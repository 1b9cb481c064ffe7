package services

import (
	"errors"
	"fmt"
	"permit-management-api/models"
	"time"

	"gorm.io/gorm"
)

// ReviewStepOrder is the fixed checklist vocabulary, in presentation order.
// "Decision" stays re-presentable once everything else is complete.
var ReviewStepOrder = []string{
	"Overview",
	"Property Details",
	"Zoning Compliance",
	"Technical Review",
	"Timeline",
	"Documents",
	"Inspection Results",
	"Decision",
}

// IsReviewStep reports whether name belongs to the checklist vocabulary.
func IsReviewStep(name string) bool {
	for _, step := range ReviewStepOrder {
		if step == name {
			return true
		}
	}
	return false
}

// NextReviewStep returns the first step in order without a completed entry.
// With everything complete the last step is reported again.
func NextReviewStep(completed map[string]bool) string {
	for _, step := range ReviewStepOrder {
		if !completed[step] {
			return step
		}
	}
	return ReviewStepOrder[len(ReviewStepOrder)-1]
}

// DeriveReviewOutcome maps a decision's target status to the review outcome
// recorded on completion. Statuses outside the decision set yield no outcome.
func DeriveReviewOutcome(target models.ApplicationStatus) *models.ReviewOutcome {
	var outcome models.ReviewOutcome
	switch target {
	case models.StatusApproved:
		outcome = models.OutcomeApproved
	case models.StatusRejected, models.StatusCancelled:
		outcome = models.OutcomeRejected
	case models.StatusInspectionPending, models.StatusAdditionalInfoRequested, models.StatusForApprovalOrRejection:
		outcome = models.OutcomeNeedsMoreInfo
	default:
		return nil
	}
	return &outcome
}

// DecisionInput carries one reviewer decision against an application.
type DecisionInput struct {
	ApplicationID   int
	TargetStatus    string
	Comments        string
	RequiredChanges string
	InspectionDate  *time.Time
	InspectionNotes string
}

// DecisionResult reports the state the decision produced.
type DecisionResult struct {
	ApplicationStatus models.ApplicationStatus  `json:"application_status"`
	ReviewOutcome     *models.ReviewOutcome     `json:"review_outcome"`
	Review            *models.ApplicationReview `json:"review"`
}

// ReviewProgress is the reviewer's position in the checklist.
type ReviewProgress struct {
	NextStep       string                   `json:"next_step"`
	CompletedSteps []string                 `json:"completed_steps"`
	FlaggedSteps   []string                 `json:"flagged_steps"`
	CurrentStatus  models.ApplicationStatus `json:"current_status"`
}

// ReviewService owns the application review workflow: status transitions,
// review record lifecycle, checklist tracking and the audit trail. Every
// mutating operation runs as a single transaction.
type ReviewService struct {
	db           *gorm.DB
	jurisdiction *JurisdictionService
}

func NewReviewService(db *gorm.DB) *ReviewService {
	return &ReviewService{db: db, jurisdiction: NewJurisdictionService(db)}
}

func (s *ReviewService) loadApplication(db *gorm.DB, applicationID int) (*models.PermitApplication, error) {
	var app models.PermitApplication
	if err := db.Where("id = ?", applicationID).First(&app).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &app, nil
}

// authorize resolves the reviewer's staff assignment and checks jurisdiction
// over the application. Fail-closed: any error here precedes all writes.
func (s *ReviewService) authorize(reviewerID int, app *models.PermitApplication) error {
	staff, err := s.jurisdiction.StaffFor(reviewerID)
	if err != nil {
		return err
	}
	if !staff.CanActOn(app) {
		return ErrForbidden
	}
	return nil
}

// SubmitDecision applies one explicit reviewer action: validates the target
// status token and the transition, upserts the reviewer's review record,
// optionally creates an inspection request, marks the Decision step and
// writes the new status plus its audit row — all in one transaction.
func (s *ReviewService) SubmitDecision(reviewerID int, in DecisionInput) (*DecisionResult, error) {
	target, err := models.ParseApplicationStatus(in.TargetStatus)
	if err != nil {
		return nil, validationErrorf(err.Error())
	}

	app, err := s.loadApplication(s.db, in.ApplicationID)
	if err != nil {
		return nil, err
	}

	if err := s.authorize(reviewerID, app); err != nil {
		return nil, err
	}

	if !app.Status.CanTransition(target) {
		return nil, validationErrorf(fmt.Sprintf("cannot move application from %s to %s", app.Status, target))
	}

	outcome := DeriveReviewOutcome(target)
	startingReview := target == models.StatusUnderReview

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

	review, err := s.upsertReview(tx, reviewerID, in, startingReview, outcome)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	if target == models.StatusInspectionPending && in.InspectionDate != nil {
		inspection := models.Inspection{
			ApplicationID:  app.ID,
			ApplicantID:    app.ApplicantID,
			MMDAID:         app.MMDAID,
			InspectionType: models.InspectionInitial,
			Status:         models.InspectionPending,
			ScheduledDate:  in.InspectionDate,
			Notes:          optionalText(in.InspectionNotes),
		}
		if err := tx.Create(&inspection).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	if !startingReview {
		if err := upsertStepCompleted(tx, app.ID, reviewerID, "Decision"); err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	if err := transitionApplication(tx, app, target, reviewerID, optionalText(in.Comments)); err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return &DecisionResult{
		ApplicationStatus: app.Status,
		ReviewOutcome:     outcome,
		Review:            review,
	}, nil
}

// upsertReview creates or updates the single review row for (application,
// reviewer). The unique constraint makes concurrent upserts idempotent.
func (s *ReviewService) upsertReview(tx *gorm.DB, reviewerID int, in DecisionInput, starting bool, outcome *models.ReviewOutcome) (*models.ApplicationReview, error) {
	status := models.ReviewCompleted
	if starting {
		status = models.ReviewInProgress
		outcome = nil
	}

	now := time.Now()
	var review models.ApplicationReview
	err := tx.Where("application_id = ? AND review_officer_id = ?", in.ApplicationID, reviewerID).
		First(&review).Error
	switch {
	case err == nil:
		review.Status = status
		review.Outcome = outcome
		review.Comments = optionalText(in.Comments)
		review.RequestedAdditionalInfo = optionalText(in.RequiredChanges)
		review.UpdatedAt = now
		if err := tx.Save(&review).Error; err != nil {
			return nil, err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		review = models.ApplicationReview{
			ApplicationID:           in.ApplicationID,
			ReviewOfficerID:         reviewerID,
			Status:                  status,
			Outcome:                 outcome,
			Comments:                optionalText(in.Comments),
			RequestedAdditionalInfo: optionalText(in.RequiredChanges),
			CreatedAt:               now,
			UpdatedAt:               now,
		}
		if err := tx.Create(&review).Error; err != nil {
			return nil, err
		}
	default:
		return nil, err
	}
	return &review, nil
}

// StartReview opens or refreshes the caller's review record. The first start
// moves the application under review; later reviewers join an application
// already under review without a second transition.
func (s *ReviewService) StartReview(reviewerID, applicationID int, comments string) (*models.ApplicationReview, error) {
	app, err := s.loadApplication(s.db, applicationID)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(reviewerID, app); err != nil {
		return nil, err
	}

	needsTransition := app.Status != models.StatusUnderReview
	if needsTransition && !app.Status.CanTransition(models.StatusUnderReview) {
		return nil, validationErrorf(fmt.Sprintf("cannot start review while application is %s", app.Status))
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

	in := DecisionInput{ApplicationID: applicationID, Comments: comments}
	review, err := s.upsertReview(tx, reviewerID, in, true, nil)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	if needsTransition {
		if err := transitionApplication(tx, app, models.StatusUnderReview, reviewerID, optionalText(comments)); err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return review, nil
}

// upsertStepCompleted marks a checklist step complete and clears any flag.
func upsertStepCompleted(tx *gorm.DB, applicationID, reviewerID int, stepName string) error {
	now := time.Now()
	var step models.ApplicationReviewStep
	err := tx.Where("application_id = ? AND reviewer_id = ? AND step_name = ?", applicationID, reviewerID, stepName).
		First(&step).Error
	switch {
	case err == nil:
		return tx.Model(&models.ApplicationReviewStep{}).
			Where("id = ?", step.ID).
			Updates(map[string]interface{}{
				"completed":    true,
				"completed_at": now,
				"flagged":      false,
				"flag_reason":  nil,
				"flagged_at":   nil,
			}).Error
	case errors.Is(err, gorm.ErrRecordNotFound):
		step = models.ApplicationReviewStep{
			ApplicationID: applicationID,
			ReviewerID:    reviewerID,
			StepName:      stepName,
			Completed:     true,
			CompletedAt:   &now,
		}
		return tx.Create(&step).Error
	default:
		return err
	}
}

// CompleteStep marks one named checklist step complete for the reviewer,
// clearing any prior flag. Requires jurisdiction over the application.
func (s *ReviewService) CompleteStep(reviewerID, applicationID int, stepName string) (*models.ApplicationReviewStep, error) {
	if !IsReviewStep(stepName) {
		return nil, validationErrorf(fmt.Sprintf("unknown review step: %s", stepName))
	}

	app, err := s.loadApplication(s.db, applicationID)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(reviewerID, app); err != nil {
		return nil, err
	}

	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	if err := upsertStepCompleted(tx, applicationID, reviewerID, stepName); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return s.loadStep(applicationID, reviewerID, stepName)
}

// FlagStep records an exception against a step without completing it.
// Flagging only requires the reviewer to hold some staff assignment.
func (s *ReviewService) FlagStep(reviewerID, applicationID int, stepName, reason string) (*models.ApplicationReviewStep, error) {
	if !IsReviewStep(stepName) {
		return nil, validationErrorf(fmt.Sprintf("unknown review step: %s", stepName))
	}

	if _, err := s.jurisdiction.StaffFor(reviewerID); err != nil {
		return nil, err
	}
	if _, err := s.loadApplication(s.db, applicationID); err != nil {
		return nil, err
	}

	now := time.Now()
	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}

	var step models.ApplicationReviewStep
	err := tx.Where("application_id = ? AND reviewer_id = ? AND step_name = ?", applicationID, reviewerID, stepName).
		First(&step).Error
	switch {
	case err == nil:
		err = tx.Model(&models.ApplicationReviewStep{}).
			Where("id = ?", step.ID).
			Updates(map[string]interface{}{
				"flagged":     true,
				"flag_reason": reason,
				"flagged_at":  now,
			}).Error
	case errors.Is(err, gorm.ErrRecordNotFound):
		step = models.ApplicationReviewStep{
			ApplicationID: applicationID,
			ReviewerID:    reviewerID,
			StepName:      stepName,
			Flagged:       true,
			FlagReason:    &reason,
			FlaggedAt:     &now,
		}
		err = tx.Create(&step).Error
	}
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return s.loadStep(applicationID, reviewerID, stepName)
}

func (s *ReviewService) loadStep(applicationID, reviewerID int, stepName string) (*models.ApplicationReviewStep, error) {
	var step models.ApplicationReviewStep
	err := s.db.Where("application_id = ? AND reviewer_id = ? AND step_name = ?", applicationID, reviewerID, stepName).
		First(&step).Error
	if err != nil {
		return nil, err
	}
	return &step, nil
}

// Progress reports the reviewer's next step and the completed/flagged sets,
// following the fixed vocabulary order.
func (s *ReviewService) Progress(reviewerID, applicationID int) (*ReviewProgress, error) {
	app, err := s.loadApplication(s.db, applicationID)
	if err != nil {
		return nil, err
	}

	var steps []models.ApplicationReviewStep
	if err := s.db.Where("application_id = ? AND reviewer_id = ?", applicationID, reviewerID).
		Find(&steps).Error; err != nil {
		return nil, err
	}

	completed := make(map[string]bool, len(steps))
	flagged := make(map[string]bool, len(steps))
	for _, step := range steps {
		if step.Completed {
			completed[step.StepName] = true
		}
		if step.Flagged {
			flagged[step.StepName] = true
		}
	}

	progress := &ReviewProgress{
		NextStep:       NextReviewStep(completed),
		CompletedSteps: []string{},
		FlaggedSteps:   []string{},
		CurrentStatus:  app.Status,
	}
	for _, name := range ReviewStepOrder {
		if completed[name] {
			progress.CompletedSteps = append(progress.CompletedSteps, name)
		}
		if flagged[name] {
			progress.FlaggedSteps = append(progress.FlaggedSteps, name)
		}
	}
	return progress, nil
}

package services

import (
	"testing"
	"time"

	"permit-management-api/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestNextReviewStep(t *testing.T) {
	if got := NextReviewStep(nil); got != "Overview" {
		t.Fatalf("empty checklist should start at Overview, got %s", got)
	}

	completed := map[string]bool{"Overview": true, "Property Details": true}
	if got := NextReviewStep(completed); got != "Zoning Compliance" {
		t.Fatalf("expected Zoning Compliance, got %s", got)
	}

	// Gaps resolve to the earliest incomplete step.
	completed = map[string]bool{"Overview": true, "Timeline": true}
	if got := NextReviewStep(completed); got != "Property Details" {
		t.Fatalf("expected Property Details, got %s", got)
	}

	all := make(map[string]bool, len(ReviewStepOrder))
	for _, step := range ReviewStepOrder {
		all[step] = true
	}
	if got := NextReviewStep(all); got != "Decision" {
		t.Fatalf("fully complete checklist should report Decision, got %s", got)
	}
}

func TestIsReviewStep(t *testing.T) {
	for _, step := range ReviewStepOrder {
		if !IsReviewStep(step) {
			t.Errorf("expected %q to be a known step", step)
		}
	}
	for _, step := range []string{"overview", "Budget", ""} {
		if IsReviewStep(step) {
			t.Errorf("expected %q to be rejected", step)
		}
	}
}

func TestDeriveReviewOutcome(t *testing.T) {
	cases := []struct {
		target models.ApplicationStatus
		want   *models.ReviewOutcome
	}{
		{models.StatusApproved, outcomePtr(models.OutcomeApproved)},
		{models.StatusRejected, outcomePtr(models.OutcomeRejected)},
		{models.StatusCancelled, outcomePtr(models.OutcomeRejected)},
		{models.StatusInspectionPending, outcomePtr(models.OutcomeNeedsMoreInfo)},
		{models.StatusAdditionalInfoRequested, outcomePtr(models.OutcomeNeedsMoreInfo)},
		{models.StatusForApprovalOrRejection, outcomePtr(models.OutcomeNeedsMoreInfo)},
		{models.StatusUnderReview, nil},
		{models.StatusSubmitted, nil},
		{models.StatusIssued, nil},
	}
	for _, tc := range cases {
		got := DeriveReviewOutcome(tc.target)
		switch {
		case tc.want == nil && got != nil:
			t.Errorf("DeriveReviewOutcome(%s) = %v, want nil", tc.target, *got)
		case tc.want != nil && (got == nil || *got != *tc.want):
			t.Errorf("DeriveReviewOutcome(%s) = %v, want %v", tc.target, got, *tc.want)
		}
	}
}

func outcomePtr(o models.ReviewOutcome) *models.ReviewOutcome {
	return &o
}

func TestSubmitDecisionRejectsUnknownToken(t *testing.T) {
	db, mock := newMockDB(t)
	service := NewReviewService(db)

	_, err := service.SubmitDecision(1, DecisionInput{ApplicationID: 1, TargetStatus: "fast_track"})
	if !IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expected no database access: %v", err)
	}
}

func expectApplicationLoad(mock sqlmock.Sqlmock, status models.ApplicationStatus) {
	mock.ExpectQuery("SELECT .* FROM `permit_applications`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "applicant_id", "mmda_id", "permit_type_id", "status", "version"}).
			AddRow(10, 5, 1, "residential_single", string(status), 2))
}

func expectStaffLoad(mock sqlmock.Sqlmock) {
	mock.ExpectQuery("SELECT .* FROM `department_staff`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "department_id", "user_id", "is_head"}).
			AddRow(1, 2, 9, false))
	mock.ExpectQuery("SELECT .* FROM `departments`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "mmda_id", "name"}).
			AddRow(2, 1, "Physical Planning"))
	mock.ExpectQuery("SELECT .* FROM `committee_members`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "committee_id", "user_id"}))
}

func TestSubmitDecisionRejectsInvalidTransitionWithoutWriting(t *testing.T) {
	db, mock := newMockDB(t)

	expectApplicationLoad(mock, models.StatusSubmitted)
	expectStaffLoad(mock)
	// No transaction expected: submitted cannot jump straight to approved.

	service := NewReviewService(db)
	_, err := service.SubmitDecision(9, DecisionInput{ApplicationID: 10, TargetStatus: "approved"})
	if !IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unexpected database writes: %v", err)
	}
}

func TestSubmitDecisionApprovesInOneTransaction(t *testing.T) {
	db, mock := newMockDB(t)

	expectApplicationLoad(mock, models.StatusUnderReview)
	expectStaffLoad(mock)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .* FROM `application_reviews`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectExec("INSERT INTO `application_reviews`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery("SELECT .* FROM `application_review_steps`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectExec("INSERT INTO `application_review_steps`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("UPDATE `permit_applications` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO `application_status_history`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	service := NewReviewService(db)
	result, err := service.SubmitDecision(9, DecisionInput{
		ApplicationID: 10,
		TargetStatus:  "approved",
		Comments:      "All requirements satisfied",
	})
	if err != nil {
		t.Fatalf("SubmitDecision returned error: %v", err)
	}

	if result.ApplicationStatus != models.StatusApproved {
		t.Fatalf("expected approved, got %s", result.ApplicationStatus)
	}
	if result.ReviewOutcome == nil || *result.ReviewOutcome != models.OutcomeApproved {
		t.Fatalf("expected approved outcome, got %v", result.ReviewOutcome)
	}
	if result.Review == nil || result.Review.Status != models.ReviewCompleted {
		t.Fatalf("expected completed review record, got %+v", result.Review)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestStartReviewMovesSubmittedApplicationUnderReview(t *testing.T) {
	db, mock := newMockDB(t)

	expectApplicationLoad(mock, models.StatusSubmitted)
	expectStaffLoad(mock)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .* FROM `application_reviews`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectExec("INSERT INTO `application_reviews`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("UPDATE `permit_applications` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO `application_status_history`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	service := NewReviewService(db)
	review, err := service.StartReview(9, 10, "starting the pass")
	if err != nil {
		t.Fatalf("StartReview returned error: %v", err)
	}
	if review.Status != models.ReviewInProgress {
		t.Fatalf("expected in_progress review, got %s", review.Status)
	}
	if review.Outcome != nil {
		t.Fatalf("outcome must stay unset on start, got %v", *review.Outcome)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestStartReviewSecondReviewerJoinsWithoutTransition(t *testing.T) {
	db, mock := newMockDB(t)

	expectApplicationLoad(mock, models.StatusUnderReview)
	expectStaffLoad(mock)

	// Only the review record is written: no application update, no history.
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .* FROM `application_reviews`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectExec("INSERT INTO `application_reviews`").
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	service := NewReviewService(db)
	review, err := service.StartReview(9, 10, "second opinion")
	if err != nil {
		t.Fatalf("StartReview returned error: %v", err)
	}
	if review.Status != models.ReviewInProgress {
		t.Fatalf("expected in_progress review, got %s", review.Status)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestStartReviewRejectsTerminalApplication(t *testing.T) {
	db, mock := newMockDB(t)

	expectApplicationLoad(mock, models.StatusRejected)
	expectStaffLoad(mock)

	service := NewReviewService(db)
	_, err := service.StartReview(9, 10, "")
	if !IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unexpected database writes: %v", err)
	}
}

func TestSubmitDecisionSchedulesInspection(t *testing.T) {
	db, mock := newMockDB(t)

	expectApplicationLoad(mock, models.StatusUnderReview)
	expectStaffLoad(mock)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .* FROM `application_reviews`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectExec("INSERT INTO `application_reviews`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO `inspections`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery("SELECT .* FROM `application_review_steps`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectExec("INSERT INTO `application_review_steps`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("UPDATE `permit_applications` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO `application_status_history`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	inspectionDate := time.Now().Add(72 * time.Hour)
	service := NewReviewService(db)
	result, err := service.SubmitDecision(9, DecisionInput{
		ApplicationID:  10,
		TargetStatus:   "inspection_pending",
		InspectionDate: &inspectionDate,
	})
	if err != nil {
		t.Fatalf("SubmitDecision returned error: %v", err)
	}
	if result.ApplicationStatus != models.StatusInspectionPending {
		t.Fatalf("expected inspection_pending, got %s", result.ApplicationStatus)
	}
	if result.ReviewOutcome == nil || *result.ReviewOutcome != models.OutcomeNeedsMoreInfo {
		t.Fatalf("expected needs_more_info outcome, got %v", result.ReviewOutcome)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

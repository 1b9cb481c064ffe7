package services

import (
	"errors"
	"testing"
	"time"

	"permit-management-api/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestRecommendationForOutcome(t *testing.T) {
	cases := []struct {
		outcome models.InspectionOutcome
		want    string
	}{
		{models.InspectionPassed, "APPROVE - No violations found"},
		{models.InspectionFailed, "REJECT - Significant violations found"},
		{models.InspectionPartial, "CONDITIONAL APPROVAL - Minor violations must be corrected"},
		{"", "PENDING REVIEW - Outcome not recorded"},
	}
	for _, tc := range cases {
		if got := RecommendationForOutcome(tc.outcome); got != tc.want {
			t.Errorf("RecommendationForOutcome(%q) = %q, want %q", tc.outcome, got, tc.want)
		}
	}
}

func TestScheduleRejectsPastDateWithoutQuerying(t *testing.T) {
	db, mock := newMockDB(t)
	service := NewInspectionService(db)

	_, err := service.Schedule(9, ScheduleInput{
		ApplicationID:  10,
		ScheduledDate:  time.Now().Add(-24 * time.Hour),
		InspectionType: "site",
	})
	if !IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expected no database access: %v", err)
	}
}

func TestScheduleRefusesSecondActiveInspection(t *testing.T) {
	db, mock := newMockDB(t)

	expectApplicationLoad(mock, models.StatusUnderReview)
	expectStaffLoad(mock)
	mock.ExpectQuery("SELECT count.* FROM `inspections`").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	service := NewInspectionService(db)
	_, err := service.Schedule(9, ScheduleInput{
		ApplicationID:  10,
		ScheduledDate:  time.Now().Add(48 * time.Hour),
		InspectionType: "site",
	})
	if !errors.Is(err, ErrActiveInspection) {
		t.Fatalf("expected ErrActiveInspection, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestScheduleRollsBackInspectionOnConcurrentTransition(t *testing.T) {
	db, mock := newMockDB(t)

	expectApplicationLoad(mock, models.StatusUnderReview)
	expectStaffLoad(mock)
	mock.ExpectQuery("SELECT count.* FROM `inspections`").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	// A rival scheduler moved the application first: the version-guarded
	// update matches zero rows and the created inspection rolls back with it.
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `inspections`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("UPDATE `permit_applications` SET").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	service := NewInspectionService(db)
	_, err := service.Schedule(9, ScheduleInput{
		ApplicationID:  10,
		ScheduledDate:  time.Now().Add(48 * time.Hour),
		InspectionType: "site",
	})
	if !errors.Is(err, ErrVersionConflict) {
		t.Fatalf("expected ErrVersionConflict, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCompleteIsIdempotentOnCompletedInspection(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery("SELECT .* FROM `inspections`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "application_id", "applicant_id", "mmda_id", "inspection_type", "status"}).
			AddRow(3, 10, 5, 1, "site", string(models.InspectionCompleted)))

	service := NewInspectionService(db)
	_, err := service.Complete(9, CompleteInput{InspectionID: 3, Outcome: "passed"})
	if !errors.Is(err, ErrAlreadyCompleted) {
		t.Fatalf("expected ErrAlreadyCompleted, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("completion must not write twice: %v", err)
	}
}

func TestCompleteRecordsOutcomeAndTransitions(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery("SELECT .* FROM `inspections`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "application_id", "applicant_id", "mmda_id", "inspection_type", "status"}).
			AddRow(3, 10, 5, 1, "site", string(models.InspectionScheduled)))
	expectApplicationLoad(mock, models.StatusInspectionPending)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `inspections` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO `inspection_photos`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("UPDATE `permit_applications` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO `application_status_history`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	service := NewInspectionService(db)
	inspection, err := service.Complete(9, CompleteInput{
		InspectionID:    3,
		Outcome:         "partial",
		Findings:        "Setback encroachment on the north boundary",
		ViolationsFound: "Setback violation",
		PhotoPaths:      []string{"uploads/inspections/3-north.jpg"},
	})
	if err != nil {
		t.Fatalf("Complete returned error: %v", err)
	}

	if inspection.Status != models.InspectionCompleted {
		t.Fatalf("inspection not completed: %s", inspection.Status)
	}
	if inspection.Outcome == nil || *inspection.Outcome != models.InspectionPartial {
		t.Fatalf("outcome not recorded: %v", inspection.Outcome)
	}
	if inspection.Recommendations == nil || *inspection.Recommendations != RecommendationForOutcome(models.InspectionPartial) {
		t.Fatalf("recommendation not derived: %v", inspection.Recommendations)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

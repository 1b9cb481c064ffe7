package services

import (
	"errors"
	"testing"

	"permit-management-api/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestTransitionApplicationWritesStatusAndHistory(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `permit_applications` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO `application_status_history`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	app := &models.PermitApplication{
		ID:      7,
		Status:  models.StatusUnderReview,
		Version: 3,
	}

	tx := db.Begin()
	if err := transitionApplication(tx, app, models.StatusApproved, 42, nil); err != nil {
		t.Fatalf("transitionApplication returned error: %v", err)
	}
	if err := tx.Commit().Error; err != nil {
		t.Fatalf("commit failed: %v", err)
	}

	if app.Status != models.StatusApproved {
		t.Fatalf("status not updated in memory: %s", app.Status)
	}
	if app.Version != 4 {
		t.Fatalf("version not incremented: %d", app.Version)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestTransitionApplicationVersionConflict(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `permit_applications` SET").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	app := &models.PermitApplication{
		ID:      7,
		Status:  models.StatusUnderReview,
		Version: 3,
	}

	tx := db.Begin()
	err := transitionApplication(tx, app, models.StatusApproved, 42, nil)
	if !errors.Is(err, ErrVersionConflict) {
		t.Fatalf("expected ErrVersionConflict, got %v", err)
	}
	tx.Rollback()

	if app.Status != models.StatusUnderReview || app.Version != 3 {
		t.Fatalf("application mutated despite conflict: %s v%d", app.Status, app.Version)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

package services

import (
	"strconv"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestGenerateCode(t *testing.T) {
	for i := 0; i < 50; i++ {
		code, err := GenerateCode()
		if err != nil {
			t.Fatalf("GenerateCode returned error: %v", err)
		}
		if len(code) != 6 {
			t.Fatalf("expected 6 digits, got %q", code)
		}
		n, err := strconv.Atoi(code)
		if err != nil {
			t.Fatalf("code is not numeric: %q", code)
		}
		if n < 100000 || n > 999999 {
			t.Fatalf("code out of range: %d", n)
		}
	}
}

func pendingRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "email", "otp_secret", "otp_expires",
		"verification_channel", "verification_attempts", "is_locked",
	})
}

func TestVerifyOTPUnknownContact(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery("SELECT .* FROM `unverified_users`").
		WillReturnRows(pendingRows())

	service := NewOTPService(db)
	result, err := service.VerifyOTP("ama@example.com", "email", "123456")
	if err != nil {
		t.Fatalf("VerifyOTP returned error: %v", err)
	}
	if result.Status != OTPNotFound {
		t.Fatalf("expected not_found, got %s", result.Status)
	}
}

func TestVerifyOTPWrongCodeIncrementsAttempts(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery("SELECT .* FROM `unverified_users`").
		WillReturnRows(pendingRows().
			AddRow(1, "ama@example.com", "654321", time.Now().Add(2*time.Minute), "email", 2, false))
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `unverified_users` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	service := NewOTPService(db)
	result, err := service.VerifyOTP("ama@example.com", "email", "123456")
	if err != nil {
		t.Fatalf("VerifyOTP returned error: %v", err)
	}
	if result.Status != OTPCodeInvalid {
		t.Fatalf("expected code_invalid, got %s", result.Status)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestVerifyOTPLocksAfterMaxAttempts(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery("SELECT .* FROM `unverified_users`").
		WillReturnRows(pendingRows().
			AddRow(1, "ama@example.com", "654321", time.Now().Add(2*time.Minute), "email", otpMaxAttempts-1, false))
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `unverified_users` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	service := NewOTPService(db)
	result, err := service.VerifyOTP("ama@example.com", "email", "123456")
	if err != nil {
		t.Fatalf("VerifyOTP returned error: %v", err)
	}
	if result.Status != OTPMaxAttempts {
		t.Fatalf("expected max_attempts, got %s", result.Status)
	}
}

func TestVerifyOTPExpiredCode(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery("SELECT .* FROM `unverified_users`").
		WillReturnRows(pendingRows().
			AddRow(1, "ama@example.com", "654321", time.Now().Add(-time.Minute), "email", 0, false))

	service := NewOTPService(db)
	result, err := service.VerifyOTP("ama@example.com", "email", "654321")
	if err != nil {
		t.Fatalf("VerifyOTP returned error: %v", err)
	}
	if result.Status != OTPCodeExpired {
		t.Fatalf("expected code_expired, got %s", result.Status)
	}
}

package models

import "testing"

func TestParseApplicationStatusTokens(t *testing.T) {
	cases := []struct {
		token string
		want  ApplicationStatus
	}{
		{"submitted", StatusSubmitted},
		{"under_review", StatusUnderReview},
		{"Under Review", StatusUnderReview},
		{"  approved  ", StatusApproved},
		{"inspected", StatusInspectionCompleted},
		{"approval_requested", StatusForApprovalOrRejection},
		{"CANCELLED", StatusCancelled},
	}
	for _, tc := range cases {
		got, err := ParseApplicationStatus(tc.token)
		if err != nil {
			t.Fatalf("ParseApplicationStatus(%q) returned error: %v", tc.token, err)
		}
		if got != tc.want {
			t.Fatalf("ParseApplicationStatus(%q) = %s, want %s", tc.token, got, tc.want)
		}
	}
}

func TestParseApplicationStatusRejectsUnknown(t *testing.T) {
	for _, token := range []string{"", "pending", "in_review", "done", "inspection"} {
		if _, err := ParseApplicationStatus(token); err == nil {
			t.Fatalf("ParseApplicationStatus(%q) accepted an unknown token", token)
		}
	}
}

func TestCanTransition(t *testing.T) {
	allowed := []struct{ from, to ApplicationStatus }{
		{StatusDraft, StatusSubmitted},
		{StatusSubmitted, StatusUnderReview},
		{StatusUnderReview, StatusApproved},
		{StatusUnderReview, StatusRejected},
		{StatusUnderReview, StatusInspectionPending},
		{StatusUnderReview, StatusAdditionalInfoRequested},
		{StatusAdditionalInfoRequested, StatusUnderReview},
		{StatusInspectionPending, StatusInspectionCompleted},
		{StatusInspectionCompleted, StatusForApprovalOrRejection},
		{StatusInspectionCompleted, StatusUnderReview},
		{StatusForApprovalOrRejection, StatusIssued},
		{StatusForApprovalOrRejection, StatusRejected},
		{StatusIssued, StatusCompleted},
		{StatusDraft, StatusCancelled},
		{StatusForApprovalOrRejection, StatusCancelled},
	}
	for _, tc := range allowed {
		if !tc.from.CanTransition(tc.to) {
			t.Errorf("expected %s -> %s to be allowed", tc.from, tc.to)
		}
	}

	denied := []struct{ from, to ApplicationStatus }{
		{StatusDraft, StatusUnderReview},
		{StatusSubmitted, StatusApproved},
		{StatusUnderReview, StatusIssued},
		{StatusInspectionPending, StatusApproved},
		{StatusRejected, StatusUnderReview},
		{StatusRejected, StatusCancelled},
		{StatusCancelled, StatusSubmitted},
		{StatusIssued, StatusIssued},
		{StatusCompleted, StatusCancelled},
	}
	for _, tc := range denied {
		if tc.from.CanTransition(tc.to) {
			t.Errorf("expected %s -> %s to be denied", tc.from, tc.to)
		}
	}
}

func TestIsTerminal(t *testing.T) {
	terminal := []ApplicationStatus{StatusIssued, StatusCompleted, StatusRejected, StatusCancelled}
	for _, s := range terminal {
		if !s.IsTerminal() {
			t.Errorf("expected %s to be terminal", s)
		}
	}
	open := []ApplicationStatus{StatusDraft, StatusSubmitted, StatusUnderReview, StatusInspectionPending}
	for _, s := range open {
		if s.IsTerminal() {
			t.Errorf("expected %s to be open", s)
		}
	}
}

func TestParseInspectionType(t *testing.T) {
	if got, err := ParseInspectionType(" Final "); err != nil || got != InspectionFinal {
		t.Fatalf("ParseInspectionType(Final) = %v, %v", got, err)
	}
	if _, err := ParseInspectionType("aerial"); err == nil {
		t.Fatal("expected unknown inspection type to be rejected")
	}
}

func TestParseInspectionOutcome(t *testing.T) {
	if got, err := ParseInspectionOutcome("PASSED"); err != nil || got != InspectionPassed {
		t.Fatalf("ParseInspectionOutcome(PASSED) = %v, %v", got, err)
	}
	if _, err := ParseInspectionOutcome("ok"); err == nil {
		t.Fatal("expected unknown inspection outcome to be rejected")
	}
}

func TestInspectionStatusIsActive(t *testing.T) {
	for _, s := range []InspectionStatus{InspectionPending, InspectionScheduled, InspectionInProgress} {
		if !s.IsActive() {
			t.Errorf("expected %s to be active", s)
		}
	}
	for _, s := range []InspectionStatus{InspectionCompleted, InspectionCancelled} {
		if s.IsActive() {
			t.Errorf("expected %s to be inactive", s)
		}
	}
}

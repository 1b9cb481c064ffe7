package models

import (
	"fmt"
	"strings"
)

// ApplicationStatus is the closed set of permit application states.
type ApplicationStatus string

const (
	StatusDraft                   ApplicationStatus = "draft"
	StatusSubmitted               ApplicationStatus = "submitted"
	StatusUnderReview             ApplicationStatus = "under_review"
	StatusAdditionalInfoRequested ApplicationStatus = "additional_info_requested"
	StatusApproved                ApplicationStatus = "approved"
	StatusRejected                ApplicationStatus = "rejected"
	StatusInspectionPending       ApplicationStatus = "inspection_pending"
	StatusInspectionCompleted     ApplicationStatus = "inspection_completed"
	StatusForApprovalOrRejection  ApplicationStatus = "for_approval_or_rejection"
	StatusIssued                  ApplicationStatus = "issued"
	StatusCompleted               ApplicationStatus = "completed"
	StatusCancelled               ApplicationStatus = "cancelled"
)

// statusTokens maps every accepted request token to its status. Tokens not
// listed here are rejected at the boundary.
var statusTokens = map[string]ApplicationStatus{
	"draft":                     StatusDraft,
	"submitted":                 StatusSubmitted,
	"under_review":              StatusUnderReview,
	"additional_info_requested": StatusAdditionalInfoRequested,
	"approved":                  StatusApproved,
	"rejected":                  StatusRejected,
	"inspection_pending":        StatusInspectionPending,
	"inspected":                 StatusInspectionCompleted,
	"approval_requested":        StatusForApprovalOrRejection,
	"issued":                    StatusIssued,
	"completed":                 StatusCompleted,
	"cancelled":                 StatusCancelled,
}

// ParseApplicationStatus resolves a request token to an ApplicationStatus.
func ParseApplicationStatus(token string) (ApplicationStatus, error) {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(token)), " ", "_")
	status, ok := statusTokens[normalized]
	if !ok {
		return "", fmt.Errorf("unknown status: %s", token)
	}
	return status, nil
}

// IsTerminal reports whether no further transitions are allowed.
func (s ApplicationStatus) IsTerminal() bool {
	switch s {
	case StatusIssued, StatusCompleted, StatusRejected, StatusCancelled:
		return true
	}
	return false
}

// statusTransitions is the recognized transition graph. Cancellation is
// reachable from every non-terminal state.
var statusTransitions = map[ApplicationStatus][]ApplicationStatus{
	StatusDraft:                   {StatusSubmitted},
	StatusSubmitted:               {StatusUnderReview},
	StatusUnderReview:             {StatusAdditionalInfoRequested, StatusApproved, StatusRejected, StatusInspectionPending},
	StatusAdditionalInfoRequested: {StatusUnderReview},
	StatusApproved:                {StatusInspectionPending, StatusForApprovalOrRejection},
	StatusInspectionPending:       {StatusInspectionCompleted},
	StatusInspectionCompleted:     {StatusUnderReview, StatusForApprovalOrRejection},
	StatusForApprovalOrRejection:  {StatusIssued, StatusRejected},
	StatusIssued:                  {StatusCompleted},
}

// CanTransition reports whether moving from s to target is a recognized
// transition.
func (s ApplicationStatus) CanTransition(target ApplicationStatus) bool {
	if s.IsTerminal() {
		return false
	}
	if target == StatusCancelled {
		return true
	}
	for _, next := range statusTransitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

// ReviewStatus tracks the lifecycle of a single reviewer's pass.
type ReviewStatus string

const (
	ReviewPending    ReviewStatus = "pending"
	ReviewInProgress ReviewStatus = "in_progress"
	ReviewCompleted  ReviewStatus = "completed"
)

// ReviewOutcome is the reviewer's final call, set at completion only.
type ReviewOutcome string

const (
	OutcomeApproved      ReviewOutcome = "approved"
	OutcomeRejected      ReviewOutcome = "rejected"
	OutcomeNeedsMoreInfo ReviewOutcome = "needs_more_info"
)

// InspectionType categorizes site visits.
type InspectionType string

const (
	InspectionInitial    InspectionType = "initial"
	InspectionSite       InspectionType = "site"
	InspectionFoundation InspectionType = "foundation"
	InspectionFraming    InspectionType = "framing"
	InspectionElectrical InspectionType = "electrical"
	InspectionPlumbing   InspectionType = "plumbing"
	InspectionFinal      InspectionType = "final"
	InspectionSpecial    InspectionType = "special"
)

// ParseInspectionType resolves a request token to an InspectionType.
func ParseInspectionType(token string) (InspectionType, error) {
	normalized := strings.ToLower(strings.TrimSpace(token))
	switch InspectionType(normalized) {
	case InspectionInitial, InspectionSite, InspectionFoundation, InspectionFraming,
		InspectionElectrical, InspectionPlumbing, InspectionFinal, InspectionSpecial:
		return InspectionType(normalized), nil
	}
	return "", fmt.Errorf("unknown inspection type: %s", token)
}

// InspectionStatus tracks a site visit from request to completion.
type InspectionStatus string

const (
	InspectionPending    InspectionStatus = "pending"
	InspectionScheduled  InspectionStatus = "scheduled"
	InspectionInProgress InspectionStatus = "in_progress"
	InspectionCompleted  InspectionStatus = "completed"
	InspectionCancelled  InspectionStatus = "cancelled"
)

// IsActive reports whether the inspection still occupies the pipeline.
func (s InspectionStatus) IsActive() bool {
	switch s {
	case InspectionPending, InspectionScheduled, InspectionInProgress:
		return true
	}
	return false
}

// InspectionOutcome is recorded when an inspection completes.
type InspectionOutcome string

const (
	InspectionPassed  InspectionOutcome = "passed"
	InspectionFailed  InspectionOutcome = "failed"
	InspectionPartial InspectionOutcome = "partial"
)

// ParseInspectionOutcome resolves a request token to an InspectionOutcome.
func ParseInspectionOutcome(token string) (InspectionOutcome, error) {
	normalized := strings.ToLower(strings.TrimSpace(token))
	switch InspectionOutcome(normalized) {
	case InspectionPassed, InspectionFailed, InspectionPartial:
		return InspectionOutcome(normalized), nil
	}
	return "", fmt.Errorf("unknown inspection outcome: %s", token)
}

// User roles.
const (
	RoleApplicant         = "applicant"
	RoleReviewOfficer     = "review_officer"
	RoleInspectionOfficer = "inspection_officer"
	RoleAdmin             = "admin"
)

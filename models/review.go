package models

import "time"

// ApplicationReview is one officer's overall assessment of an application.
// At most one row exists per (application, review officer); decisions upsert
// into it.
type ApplicationReview struct {
	ID                      int            `gorm:"primaryKey;column:id" json:"id"`
	ApplicationID           int            `gorm:"column:application_id;uniqueIndex:uq_application_officer" json:"application_id"`
	ReviewOfficerID         int            `gorm:"column:review_officer_id;uniqueIndex:uq_application_officer" json:"review_officer_id"`
	Status                  ReviewStatus   `gorm:"column:status" json:"status"`
	Outcome                 *ReviewOutcome `gorm:"column:outcome" json:"outcome"`
	Comments                *string        `gorm:"column:comments" json:"comments"`
	RequestedAdditionalInfo *string        `gorm:"column:requested_additional_info" json:"requested_additional_info"`
	Deadline                *time.Time     `gorm:"column:deadline" json:"deadline"`
	CreatedAt               time.Time      `gorm:"column:created_at" json:"created_at"`
	UpdatedAt               time.Time      `gorm:"column:updated_at" json:"updated_at"`

	ReviewOfficer *User `gorm:"foreignKey:ReviewOfficerID" json:"review_officer,omitempty"`
}

// TableName specifies the table name for ApplicationReview.
func (ApplicationReview) TableName() string {
	return "application_reviews"
}

// ApplicationReviewStep is a checklist item within a reviewer's pass, unique
// per (application, reviewer, step name). Completing a step always clears any
// prior flag.
type ApplicationReviewStep struct {
	ID            int    `gorm:"primaryKey;column:id" json:"id"`
	ApplicationID int    `gorm:"column:application_id;uniqueIndex:uq_app_reviewer_step" json:"application_id"`
	ReviewerID    int    `gorm:"column:reviewer_id;uniqueIndex:uq_app_reviewer_step" json:"reviewer_id"`
	StepName      string `gorm:"column:step_name;uniqueIndex:uq_app_reviewer_step" json:"step_name"`

	Completed   bool       `gorm:"column:completed" json:"completed"`
	CompletedAt *time.Time `gorm:"column:completed_at" json:"completed_at"`

	Flagged    bool       `gorm:"column:flagged" json:"flagged"`
	FlagReason *string    `gorm:"column:flag_reason" json:"flag_reason"`
	FlaggedAt  *time.Time `gorm:"column:flagged_at" json:"flagged_at"`
}

// TableName specifies the table name for ApplicationReviewStep.
func (ApplicationReviewStep) TableName() string {
	return "application_review_steps"
}

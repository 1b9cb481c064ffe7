package models

import "time"

// Inspection is a scheduled or completed site visit tied to an application.
type Inspection struct {
	ID                  int                `gorm:"primaryKey;column:id" json:"id"`
	ApplicationID       int                `gorm:"column:application_id;index" json:"application_id"`
	ApplicantID         int                `gorm:"column:applicant_id" json:"applicant_id"`
	MMDAID              int                `gorm:"column:mmda_id" json:"mmda_id"`
	InspectionOfficerID *int               `gorm:"column:inspection_officer_id" json:"inspection_officer_id"`
	InspectionType      InspectionType     `gorm:"column:inspection_type" json:"inspection_type"`
	Status              InspectionStatus   `gorm:"column:status" json:"status"`
	Outcome             *InspectionOutcome `gorm:"column:outcome" json:"outcome"`

	ScheduledDate *time.Time `gorm:"column:scheduled_date" json:"scheduled_date"`
	ActualDate    *time.Time `gorm:"column:actual_date" json:"actual_date"`

	Findings            *string `gorm:"column:findings" json:"findings"`
	Recommendations     *string `gorm:"column:recommendations" json:"recommendations"`
	ViolationsFound     *string `gorm:"column:violations_found" json:"violations_found"`
	Notes               *string `gorm:"column:notes" json:"notes"`
	SpecialInstructions *string `gorm:"column:special_instructions" json:"special_instructions"`
	IsReinspection      bool    `gorm:"column:is_reinspection" json:"is_reinspection"`

	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`

	// Relations
	Application       *PermitApplication `gorm:"foreignKey:ApplicationID" json:"application,omitempty"`
	InspectionOfficer *User              `gorm:"foreignKey:InspectionOfficerID" json:"inspection_officer,omitempty"`
	Applicant         *User              `gorm:"foreignKey:ApplicantID" json:"applicant,omitempty"`
	MMDA              *MMDA              `gorm:"foreignKey:MMDAID" json:"mmda,omitempty"`
	Photos            []InspectionPhoto  `gorm:"foreignKey:InspectionID" json:"photos,omitempty"`
}

// TableName specifies the table name for Inspection.
func (Inspection) TableName() string {
	return "inspections"
}

// InspectionPhoto is evidentiary material attached to one inspection.
// Deletable only by its uploader or an admin; enforced at the handler.
type InspectionPhoto struct {
	ID           int       `gorm:"primaryKey;column:id" json:"id"`
	InspectionID int       `gorm:"column:inspection_id;index" json:"inspection_id"`
	FilePath     string    `gorm:"column:file_path" json:"file_path"`
	Caption      *string   `gorm:"column:caption" json:"caption"`
	UploadedByID int       `gorm:"column:uploaded_by_id" json:"uploaded_by_id"`
	UploadedAt   time.Time `gorm:"column:uploaded_at" json:"uploaded_at"`

	UploadedBy *User `gorm:"foreignKey:UploadedByID" json:"uploaded_by,omitempty"`
}

// TableName specifies the table name for InspectionPhoto.
func (InspectionPhoto) TableName() string {
	return "inspection_photos"
}

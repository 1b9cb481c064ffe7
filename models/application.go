package models

import "time"

// JSONMap stores unstructured attribute blocks (setbacks, floor areas, GIS
// metadata) as a JSON column.
type JSONMap map[string]interface{}

// PermitApplication is the permit application aggregate. Its status only
// changes through the review workflow; every change writes exactly one
// ApplicationStatusHistory row.
type PermitApplication struct {
	ID                int               `gorm:"primaryKey;column:id" json:"id"`
	ApplicationNumber string            `gorm:"column:application_number;uniqueIndex" json:"application_number"`
	ApplicantID       int               `gorm:"column:applicant_id" json:"applicant_id"`
	MMDAID            int               `gorm:"column:mmda_id" json:"mmda_id"`
	DepartmentID      *int              `gorm:"column:department_id" json:"department_id"`
	CommitteeID       *int              `gorm:"column:committee_id" json:"committee_id"`
	PermitTypeID      string            `gorm:"column:permit_type_id" json:"permit_type_id"`
	Status            ApplicationStatus `gorm:"column:status;index" json:"status"`

	ProjectName        string   `gorm:"column:project_name" json:"project_name"`
	ProjectDescription string   `gorm:"column:project_description" json:"project_description"`
	ProjectAddress     string   `gorm:"column:project_address" json:"project_address"`
	ParcelNumber       string   `gorm:"column:parcel_number" json:"parcel_number"`
	EstimatedCost      *float64 `gorm:"column:estimated_cost" json:"estimated_cost"`
	ConstructionArea   *float64 `gorm:"column:construction_area" json:"construction_area"`
	ParkingSpaces      *int     `gorm:"column:parking_spaces" json:"parking_spaces"`

	Setbacks    JSONMap `gorm:"column:setbacks;serializer:json" json:"setbacks"`
	FloorAreas  JSONMap `gorm:"column:floor_areas;serializer:json" json:"floor_areas"`
	GISMetadata JSONMap `gorm:"column:gis_metadata;serializer:json" json:"gis_metadata"`
	Latitude    *float64 `gorm:"column:latitude" json:"latitude"`
	Longitude   *float64 `gorm:"column:longitude" json:"longitude"`

	ExpectedStartDate *time.Time `gorm:"column:expected_start_date" json:"expected_start_date"`
	ExpectedEndDate   *time.Time `gorm:"column:expected_end_date" json:"expected_end_date"`

	// Version guards status writes against lost updates. Every status
	// transition checks and increments it in the same statement.
	Version int `gorm:"column:version" json:"version"`

	CreatedAt   time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at" json:"updated_at"`
	SubmittedAt *time.Time `gorm:"column:submitted_at" json:"submitted_at"`
	ApprovedAt  *time.Time `gorm:"column:approved_at" json:"approved_at"`

	// Relations
	Applicant     *User                       `gorm:"foreignKey:ApplicantID" json:"applicant,omitempty"`
	MMDA          *MMDA                       `gorm:"foreignKey:MMDAID" json:"mmda,omitempty"`
	PermitType    *PermitType                 `gorm:"foreignKey:PermitTypeID" json:"permit_type,omitempty"`
	Documents     []ApplicationDocument       `gorm:"foreignKey:ApplicationID" json:"documents,omitempty"`
	Reviews       []ApplicationReview         `gorm:"foreignKey:ApplicationID" json:"reviews,omitempty"`
	Inspections   []Inspection                `gorm:"foreignKey:ApplicationID" json:"inspections,omitempty"`
	Payments      []Payment                   `gorm:"foreignKey:ApplicationID" json:"payments,omitempty"`
	StatusHistory []ApplicationStatusHistory  `gorm:"foreignKey:ApplicationID" json:"status_history,omitempty"`
	ReviewSteps   []ApplicationReviewStep     `gorm:"foreignKey:ApplicationID" json:"review_steps,omitempty"`
}

// TableName specifies the table name for PermitApplication.
func (PermitApplication) TableName() string {
	return "permit_applications"
}

// ApplicationStatusHistory is the append-only audit trail of status changes.
type ApplicationStatusHistory struct {
	ID            int                `gorm:"primaryKey;column:id" json:"id"`
	ApplicationID int                `gorm:"column:application_id;index" json:"application_id"`
	FromStatus    *ApplicationStatus `gorm:"column:from_status" json:"from_status"`
	ToStatus      ApplicationStatus  `gorm:"column:to_status" json:"to_status"`
	ChangedByID   int                `gorm:"column:changed_by_id" json:"changed_by_id"`
	Notes         *string            `gorm:"column:notes" json:"notes"`
	ChangedAt     time.Time          `gorm:"column:changed_at" json:"changed_at"`

	ChangedBy *User `gorm:"foreignKey:ChangedByID" json:"changed_by,omitempty"`
}

// TableName specifies the table name for ApplicationStatusHistory.
func (ApplicationStatusHistory) TableName() string {
	return "application_status_history"
}

package models

import "time"

// PermitType is a reference row describing one category of building permit,
// including the documents an application of that type must carry and the
// standard processing duration used by the reviewer queue.
type PermitType struct {
	ID                   string   `gorm:"primaryKey;column:id" json:"id"`
	Name                 string   `gorm:"column:name" json:"name"`
	Description          string   `gorm:"column:description" json:"description"`
	RequiredDocuments    []string `gorm:"column:required_documents;serializer:json" json:"required_documents"`
	MinRequiredDocuments int      `gorm:"column:min_required_documents" json:"min_required_documents"`
	StandardDurationDays int      `gorm:"column:standard_duration_days" json:"standard_duration_days"`
	BaseFeePesewas       int64    `gorm:"column:base_fee_pesewas" json:"base_fee_pesewas"`
	IsActive             bool     `gorm:"column:is_active" json:"is_active"`

	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

// TableName specifies the table name for PermitType.
func (PermitType) TableName() string {
	return "permit_types"
}

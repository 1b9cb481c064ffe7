package models

import "time"

// ApplicationDocument is an uploaded file attached to an application. The
// workflow consumes these as read-only facts.
type ApplicationDocument struct {
	ID             int       `gorm:"primaryKey;column:id" json:"id"`
	ApplicationID  int       `gorm:"column:application_id;index" json:"application_id"`
	DocumentTypeID int       `gorm:"column:document_type_id" json:"document_type_id"`
	FilePath       string    `gorm:"column:file_path" json:"file_path"`
	UploadedByID   int       `gorm:"column:uploaded_by_id" json:"uploaded_by_id"`
	UploadedAt     time.Time `gorm:"column:uploaded_at" json:"uploaded_at"`

	DocumentType *DocumentType `gorm:"foreignKey:DocumentTypeID" json:"document_type,omitempty"`
	UploadedBy   *User         `gorm:"foreignKey:UploadedByID" json:"uploaded_by,omitempty"`
}

// TableName specifies the table name for ApplicationDocument.
func (ApplicationDocument) TableName() string {
	return "application_documents"
}

// DocumentType is a reference row naming a kind of supporting document.
type DocumentType struct {
	ID       int    `gorm:"primaryKey;column:id" json:"id"`
	Name     string `gorm:"column:name" json:"name"`
	Code     string `gorm:"column:code" json:"code"`
	Required bool   `gorm:"column:required" json:"required"`
}

// TableName specifies the table name for DocumentType.
func (DocumentType) TableName() string {
	return "document_types"
}

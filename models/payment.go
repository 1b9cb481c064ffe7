package models

import "time"

// Payment purposes and statuses consumed by the workflow.
const (
	PaymentPurposeProcessingFee = "processing_fee"
	PaymentPurposeInspectionFee = "inspection_fee"
	PaymentPurposeIssuance      = "permit_issuance"

	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"
	PaymentStatusRefunded  = "refunded"
)

// Payment records a gateway payment. The core reads these as facts (for
// example "a completed processing fee exists") and links them to
// applications at submission time.
type Payment struct {
	ID            int       `gorm:"primaryKey;column:id" json:"id"`
	UserID        int       `gorm:"column:user_id;index" json:"user_id"`
	ApplicationID *int      `gorm:"column:application_id;index" json:"application_id"`
	Reference     string    `gorm:"column:reference;uniqueIndex" json:"reference"`
	Purpose       string    `gorm:"column:purpose" json:"purpose"`
	Status        string    `gorm:"column:status" json:"status"`
	AmountPesewas int64     `gorm:"column:amount_pesewas" json:"amount_pesewas"`
	Method        string    `gorm:"column:method" json:"method"`
	PaymentDate   time.Time `gorm:"column:payment_date" json:"payment_date"`
	CreatedAt     time.Time `gorm:"column:created_at" json:"created_at"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// TableName specifies the table name for Payment.
func (Payment) TableName() string {
	return "payments"
}

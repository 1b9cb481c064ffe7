package models

import "time"

// User represents an account: applicants, review officers, inspection
// officers and admins.
type User struct {
	ID           int     `gorm:"primaryKey;column:id" json:"id"`
	Email        *string `gorm:"column:email;uniqueIndex" json:"email"`
	Phone        *string `gorm:"column:phone;uniqueIndex" json:"phone"`
	PasswordHash *string `gorm:"column:password_hash" json:"-"`
	FirstName    *string `gorm:"column:first_name" json:"first_name"`
	LastName     *string `gorm:"column:last_name" json:"last_name"`
	OtherName    *string `gorm:"column:other_name" json:"other_name"`
	Role         string  `gorm:"column:role" json:"role"`
	IsActive     bool    `gorm:"column:is_active" json:"is_active"`

	PreferredVerification string `gorm:"column:preferred_verification" json:"preferred_verification"`

	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`

	Profile *UserProfile `gorm:"foreignKey:UserID" json:"profile,omitempty"`
}

// TableName specifies the table name for User.
func (User) TableName() string {
	return "users"
}

// UserProfile holds identity and professional details collected during
// onboarding.
type UserProfile struct {
	ID              int        `gorm:"primaryKey;column:id" json:"id"`
	UserID          int        `gorm:"column:user_id" json:"user_id"`
	GhanaCardNumber *string    `gorm:"column:ghana_card_number;uniqueIndex" json:"ghana_card_number"`
	DateOfBirth     *time.Time `gorm:"column:date_of_birth" json:"date_of_birth"`
	Address         string     `gorm:"column:address" json:"address"`
	DigitalAddress  *string    `gorm:"column:digital_address" json:"digital_address"`
	CompanyName     *string    `gorm:"column:company_name" json:"company_name"`
	LicenseNumber   *string    `gorm:"column:license_number" json:"license_number"`
	Specialization  *string    `gorm:"column:specialization" json:"specialization"`
	CreatedAt       time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt       time.Time  `gorm:"column:updated_at" json:"updated_at"`
}

// TableName specifies the table name for UserProfile.
func (UserProfile) TableName() string {
	return "user_profiles"
}

// UnverifiedUser tracks a pending OTP verification for a contact that has no
// confirmed account yet.
type UnverifiedUser struct {
	ID                   int        `gorm:"primaryKey;column:id" json:"id"`
	Email                *string    `gorm:"column:email;uniqueIndex" json:"email"`
	Phone                *string    `gorm:"column:phone;uniqueIndex" json:"phone"`
	OTPSecret            string     `gorm:"column:otp_secret" json:"-"`
	OTPExpires           time.Time  `gorm:"column:otp_expires" json:"-"`
	VerificationChannel  string     `gorm:"column:verification_channel" json:"verification_channel"`
	VerificationAttempts int        `gorm:"column:verification_attempts" json:"verification_attempts"`
	IsLocked             bool       `gorm:"column:is_locked" json:"is_locked"`
	LockExpires          *time.Time `gorm:"column:lock_expires" json:"lock_expires"`
	CreatedAt            time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt            time.Time  `gorm:"column:updated_at" json:"updated_at"`
}

// TableName specifies the table name for UnverifiedUser.
func (UnverifiedUser) TableName() string {
	return "unverified_users"
}

package services

import (
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"math/big"
	"permit-management-api/config"
	"permit-management-api/models"
	"permit-management-api/utils"
	"strings"
	"time"

	"gorm.io/gorm"
)

const (
	otpMaxAttempts  = 5
	otpLockDuration = 15 * time.Minute
	otpExpiry       = 5 * time.Minute
)

// OTPStatus classifies the result of a verification attempt.
type OTPStatus string

const (
	OTPSuccess     OTPStatus = "success"
	OTPNotFound    OTPStatus = "not_found"
	OTPCodeExpired OTPStatus = "code_expired"
	OTPCodeInvalid OTPStatus = "code_invalid"
	OTPMaxAttempts OTPStatus = "max_attempts"
	OTPLocked      OTPStatus = "locked"
)

// VerifyResult is returned by VerifyOTP; Onboarding is true when the user
// still has profile details to collect.
type VerifyResult struct {
	Status     OTPStatus    `json:"status"`
	User       *models.User `json:"-"`
	Onboarding bool         `json:"onboarding"`
}

// OTPService implements passwordless login: issue a short-lived 6-digit
// code, verify it with attempt lockout, and materialize the account on first
// successful verification.
type OTPService struct {
	db *gorm.DB
}

func NewOTPService(db *gorm.DB) *OTPService {
	return &OTPService{db: db}
}

// GenerateCode returns a 6-digit numeric one-time code.
func GenerateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

func isEmailContact(contact string) bool {
	return strings.Contains(contact, "@")
}

// RequestOTP issues a code for the contact and delivers it over the chosen
// channel. Locked contacts are refused until the lock expires.
func (s *OTPService) RequestOTP(contact, channel string) error {
	if channel != "email" && channel != "sms" {
		return validationErrorf("channel must be email or sms")
	}
	contact = utils.NormalizeContact(contact, channel)
	if channel == "email" && !utils.ValidateEmail(contact) {
		return validationErrorf("invalid email address")
	}

	code, err := GenerateCode()
	if err != nil {
		return err
	}

	now := time.Now()
	expires := now.Add(otpExpiry)

	var pending models.UnverifiedUser
	err = s.db.Where("email = ? OR phone = ?", contact, contact).First(&pending).Error
	switch {
	case err == nil:
		if pending.IsLocked && pending.LockExpires != nil && pending.LockExpires.After(now) {
			return ErrLocked
		}
		pending.IsLocked = false
		pending.LockExpires = nil
		pending.OTPSecret = code
		pending.OTPExpires = expires
		pending.VerificationAttempts = 0
		pending.UpdatedAt = now
		if err := s.db.Save(&pending).Error; err != nil {
			return err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		pending = models.UnverifiedUser{
			OTPSecret:           code,
			OTPExpires:          expires,
			VerificationChannel: channel,
			CreatedAt:           now,
			UpdatedAt:           now,
		}
		if isEmailContact(contact) {
			pending.Email = &contact
		} else {
			pending.Phone = &contact
		}
		if err := s.db.Create(&pending).Error; err != nil {
			return err
		}
	default:
		return err
	}

	return s.deliver(contact, channel, code)
}

func (s *OTPService) deliver(contact, channel, code string) error {
	if channel == "email" {
		body := fmt.Sprintf("<p>Your permit portal verification code is <strong>%s</strong>. It expires in 5 minutes.</p>", code)
		return config.SendMail([]string{contact}, "Your verification code", body)
	}
	// SMS delivery runs through an external gateway; out of scope here.
	log.Printf("SMS OTP requested for %s", contact)
	return nil
}

// VerifyOTP checks the submitted code, enforcing the attempt lockout, and on
// success upserts the account and removes the pending row.
func (s *OTPService) VerifyOTP(contact, channel, code string) (*VerifyResult, error) {
	contact = utils.NormalizeContact(contact, channel)
	now := time.Now()

	var pending models.UnverifiedUser
	err := s.db.Where("email = ? OR phone = ?", contact, contact).First(&pending).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &VerifyResult{Status: OTPNotFound}, nil
		}
		return nil, err
	}

	if pending.IsLocked && pending.LockExpires != nil && pending.LockExpires.After(now) {
		return &VerifyResult{Status: OTPLocked}, nil
	}
	if pending.OTPExpires.Before(now) {
		return &VerifyResult{Status: OTPCodeExpired}, nil
	}

	if pending.OTPSecret != code {
		pending.VerificationAttempts++
		status := OTPCodeInvalid
		if pending.VerificationAttempts >= otpMaxAttempts {
			pending.IsLocked = true
			lockUntil := now.Add(otpLockDuration)
			pending.LockExpires = &lockUntil
			status = OTPMaxAttempts
		}
		if err := s.db.Save(&pending).Error; err != nil {
			return nil, err
		}
		return &VerifyResult{Status: status}, nil
	}

	var user models.User
	err = s.db.Where("email = ? OR phone = ?", contact, contact).First(&user).Error
	onboarding := false
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		user = models.User{
			Role:      models.RoleApplicant,
			IsActive:  false,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if isEmailContact(contact) {
			user.Email = &contact
			user.PreferredVerification = "email"
		} else {
			user.Phone = &contact
			user.PreferredVerification = "sms"
		}
		if err := s.db.Create(&user).Error; err != nil {
			return nil, err
		}
		onboarding = true
	case err != nil:
		return nil, err
	default:
		onboarding = !user.IsActive
	}

	if err := s.db.Delete(&pending).Error; err != nil {
		return nil, err
	}

	return &VerifyResult{Status: OTPSuccess, User: &user, Onboarding: onboarding}, nil
}

package service

import (
	"github.com/avvvet/giftcard-services/internal/giftsvc/errs"
	"github.com/avvvet/giftcard-services/internal/giftsvc/models"
)

// Failures the handlers report as-is. Anything else is a 500.
var (
	ErrCodeRequired       = errs.Validation("Code is required")
	ErrCardCodeRequired   = errs.Validation("Card code is required")
	ErrAdminExists        = errs.Conflict("Admin already registered")
	ErrMissingCredentials = errs.Validation("Email and password required")
	ErrNoAdmin            = errs.Validation("No admin registered. Please register first.")
	ErrInvalidCredentials = errs.Auth("Invalid credentials")
	ErrRecordNotFound     = errs.NotFound("Record not found")

	ErrRegistration = errs.Internal("Registration failed")
	ErrLogin        = errs.Internal("Login failed")
)

// RecordEvents is told about every record that is stored or removed.
type RecordEvents interface {
	RecordCreated(rec *models.GiftCardRecord)
	RecordDeleted(id int64)
}

type noopEvents struct{}

func (noopEvents) RecordCreated(*models.GiftCardRecord) {}
func (noopEvents) RecordDeleted(int64)                  {}

func eventsOrNoop(ev RecordEvents) RecordEvents {
	if ev == nil {
		return noopEvents{}
	}
	return ev
}

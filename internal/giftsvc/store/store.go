package store

import (
	"context"
	"errors"

	"github.com/avvvet/giftcard-services/internal/giftsvc/models"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate entry")
)

// RecordStore persists balance-check records.
type RecordStore interface {
	InsertRecord(ctx context.Context, rec *models.GiftCardRecord) error
	// ListRecords returns every record, newest check_date first.
	ListRecords(ctx context.Context) ([]models.GiftCardRecord, error)
	// DeleteRecord returns ErrNotFound when no record has the id.
	DeleteRecord(ctx context.Context, id int64) error
	CountRecords(ctx context.Context) (int64, error)
}

// AdminStore persists the single admin account.
type AdminStore interface {
	// FindAdmin returns nil, nil when no admin is registered.
	FindAdmin(ctx context.Context) (*models.Admin, error)
	// InsertAdmin returns ErrDuplicate when an admin already exists.
	InsertAdmin(ctx context.Context, admin *models.Admin) error
}

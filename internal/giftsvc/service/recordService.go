package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/avvvet/giftcard-services/internal/giftsvc/metrics"
	"github.com/avvvet/giftcard-services/internal/giftsvc/models"
	"github.com/avvvet/giftcard-services/internal/giftsvc/store"
	log "github.com/sirupsen/logrus"
)

type RecordService struct {
	records store.RecordStore
	events  RecordEvents
}

func NewRecordService(records store.RecordStore, events RecordEvents) *RecordService {
	return &RecordService{records: records, events: eventsOrNoop(events)}
}

// List returns every record, newest check first. Never nil.
func (s *RecordService) List(ctx context.Context) ([]models.GiftCardRecord, error) {
	list, err := s.records.ListRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	if list == nil {
		list = []models.GiftCardRecord{}
	}
	return list, nil
}

func (s *RecordService) Delete(ctx context.Context, id int64) error {
	if err := s.records.DeleteRecord(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrRecordNotFound
		}
		return fmt.Errorf("delete record %d: %w", id, err)
	}

	log.Infof("record %d deleted", id)
	metrics.IncRecordDeleted()
	s.events.RecordDeleted(id)
	return nil
}

func (s *RecordService) Count(ctx context.Context) (int64, error) {
	return s.records.CountRecords(ctx)
}

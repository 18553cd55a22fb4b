package service

import (
	"context"
	"fmt"
	"time"

	"github.com/avvvet/giftcard-services/internal/giftsvc/card"
	"github.com/avvvet/giftcard-services/internal/giftsvc/metrics"
	"github.com/avvvet/giftcard-services/internal/giftsvc/models"
	"github.com/avvvet/giftcard-services/internal/giftsvc/store"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

const DefaultCardName = "Unnamed Card"

type BalanceService struct {
	simulator *card.Simulator
	records   store.RecordStore
	events    RecordEvents
	now       func() time.Time
}

type BalanceResult struct {
	Balance  decimal.Decimal
	CardType string
	CardName string
}

func NewBalanceService(sim *card.Simulator, records store.RecordStore, events RecordEvents) *BalanceService {
	return &BalanceService{
		simulator: sim,
		records:   records,
		events:    eventsOrNoop(events),
		now:       time.Now,
	}
}

func (s *BalanceService) DetectType(code string) (string, error) {
	if code == "" {
		return "", ErrCodeRequired
	}
	return card.DetectType(code), nil
}

// CheckBalance simulates a lookup for code and stores the attempt.
// An empty or "Other" cardType is re-detected from the code.
func (s *BalanceService) CheckBalance(ctx context.Context, code, cardType, cardName string) (*BalanceResult, error) {
	if code == "" {
		return nil, ErrCardCodeRequired
	}

	if card.IsAutoDetect(cardType) {
		cardType = card.DetectType(code)
	}
	if cardName == "" {
		cardName = DefaultCardName
	}

	balance, err := s.simulator.Check(ctx, cardType, code)
	if err != nil {
		return nil, fmt.Errorf("balance check: %w", err)
	}

	now := s.now()
	rec := &models.GiftCardRecord{
		ID:          now.UnixMilli(),
		CardType:    cardType,
		CardName:    cardName,
		FullCode:    code,
		Balance:     balance.InexactFloat64(),
		CheckDate:   models.FormatTime(now),
		CheckMethod: models.CheckMethodRealTime,
	}

	if err := s.records.InsertRecord(ctx, rec); err != nil {
		return nil, fmt.Errorf("insert record: %w", err)
	}
	log.Infof("balance check stored: id=%d type=%s balance=%s", rec.ID, rec.CardType, balance.StringFixed(2))

	metrics.IncBalanceCheck(cardType)
	s.events.RecordCreated(rec)

	return &BalanceResult{Balance: balance, CardType: cardType, CardName: cardName}, nil
}

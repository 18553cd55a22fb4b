package store

import (
	"context"
	"fmt"
	"time"

	"github.com/avvvet/giftcard-services/internal/giftsvc/models"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgRecordStore struct {
	db *pgxpool.Pool
}

func NewPgRecordStore(db *pgxpool.Pool) *PgRecordStore {
	return &PgRecordStore{db: db}
}

func (s *PgRecordStore) InsertRecord(ctx context.Context, rec *models.GiftCardRecord) error {
	checkDate, err := models.ParseTime(rec.CheckDate)
	if err != nil {
		return fmt.Errorf("invalid check_date %q: %w", rec.CheckDate, err)
	}

	_, err = s.db.Exec(ctx, `
		INSERT INTO giftcards (id, card_type, card_name, full_code, balance, check_date, check_method)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, rec.ID, rec.CardType, rec.CardName, rec.FullCode,
		decimal.NewFromFloat(rec.Balance), checkDate, rec.CheckMethod)
	if err != nil {
		return fmt.Errorf("insert record: %w", err)
	}
	return nil
}

func (s *PgRecordStore) ListRecords(ctx context.Context) ([]models.GiftCardRecord, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, card_type, card_name, full_code, balance, check_date, check_method
		FROM giftcards
		ORDER BY check_date DESC, pk DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	records := []models.GiftCardRecord{}
	for rows.Next() {
		var (
			rec       models.GiftCardRecord
			balance   decimal.Decimal
			checkDate time.Time
		)
		if err := rows.Scan(
			&rec.ID,
			&rec.CardType,
			&rec.CardName,
			&rec.FullCode,
			&balance,
			&checkDate,
			&rec.CheckMethod,
		); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		rec.Balance = balance.InexactFloat64()
		rec.CheckDate = models.FormatTime(checkDate)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return records, nil
}

func (s *PgRecordStore) DeleteRecord(ctx context.Context, id int64) error {
	tag, err := s.db.Exec(ctx, `
		DELETE FROM giftcards
		WHERE pk = (SELECT pk FROM giftcards WHERE id = $1 ORDER BY pk LIMIT 1)
	`, id)
	if err != nil {
		return fmt.Errorf("delete record %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PgRecordStore) CountRecords(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM giftcards`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count records: %w", err)
	}
	return n, nil
}

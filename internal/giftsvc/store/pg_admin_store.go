package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avvvet/giftcard-services/internal/giftsvc/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolation = "23505"

type PgAdminStore struct {
	db *pgxpool.Pool
}

func NewPgAdminStore(db *pgxpool.Pool) *PgAdminStore {
	return &PgAdminStore{db: db}
}

func (s *PgAdminStore) FindAdmin(ctx context.Context) (*models.Admin, error) {
	var (
		admin        models.Admin
		registeredAt time.Time
	)

	err := s.db.QueryRow(ctx, `
		SELECT email, password, registered_at
		FROM admin
		LIMIT 1
	`).Scan(&admin.Email, &admin.Password, &registeredAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find admin: %w", err)
	}

	admin.RegisteredAt = models.FormatTime(registeredAt)
	return &admin, nil
}

func (s *PgAdminStore) InsertAdmin(ctx context.Context, admin *models.Admin) error {
	registeredAt, err := models.ParseTime(admin.RegisteredAt)
	if err != nil {
		return fmt.Errorf("invalid registeredAt %q: %w", admin.RegisteredAt, err)
	}

	_, err = s.db.Exec(ctx, `
		INSERT INTO admin (email, password, registered_at)
		VALUES ($1, $2, $3)
	`, admin.Email, admin.Password, registeredAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrDuplicate
		}
		return fmt.Errorf("insert admin: %w", err)
	}
	return nil
}

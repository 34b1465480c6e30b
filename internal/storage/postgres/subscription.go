package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/meoncu/34webdergi/internal/domain"
)

type SubscriptionStore struct {
	db *sqlx.DB
}

func NewSubscriptionStore(db *sqlx.DB) *SubscriptionStore {
	return &SubscriptionStore{db: db}
}

// Active returns the currently selected login profile, which is the most
// recently created one. Returns (nil, nil) when no profile exists.
func (s *SubscriptionStore) Active(ctx context.Context) (*domain.Subscription, error) {
	var sub domain.Subscription
	err := s.db.GetContext(ctx, &sub,
		"SELECT * FROM subscriptions ORDER BY created_at DESC LIMIT 1")
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (s *SubscriptionStore) Create(ctx context.Context, sub *domain.Subscription) (int64, error) {
	query := `
		INSERT INTO subscriptions (name, login_url, username, password_encrypted, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id`

	var id int64
	err := s.db.GetContext(ctx, &id, query,
		sub.Name, sub.LoginURL, sub.Username, sub.PasswordEncrypted)
	return id, err
}

// TouchLastSynced records a completed run against the profile.
func (s *SubscriptionStore) TouchLastSynced(ctx context.Context, id int64, at time.Time) error {
	_, err := s.db.ExecContext(ctx,
		"UPDATE subscriptions SET last_synced_at = $1 WHERE id = $2", at, id)
	return err
}

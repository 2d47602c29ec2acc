package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Adebayoisreal122/Banking-Backend/internal/ledger"
	"github.com/Adebayoisreal122/Banking-Backend/internal/models"
	"github.com/Adebayoisreal122/Banking-Backend/internal/redis"
)

const accountViewKeyPrefix = "account:view:"

// cachedAccountView keeps the owner id, which AccountView hides from JSON.
type cachedAccountView struct {
	models.AccountView
	OwnerID string `json:"ownerId"`
}

// AccountReadRepository serves account views from Redis when a client is
// configured, falling back to the database and back-filling the cache.
type AccountReadRepository struct {
	db    *sql.DB
	cache *redis.ViewCache[cachedAccountView]
}

// NewAccountReadRepository accepts a nil client, in which case every read goes
// to the database.
func NewAccountReadRepository(db *sql.DB, client *redis.Client, ttl time.Duration) *AccountReadRepository {
	r := &AccountReadRepository{db: db}
	if client != nil {
		r.cache = redis.NewViewCache[cachedAccountView](client.Client, ttl)
	}
	return r
}

func accountViewKey(accountID string) string {
	return accountViewKeyPrefix + accountID
}

func (r *AccountReadRepository) GetByID(ctx context.Context, id string) (*models.AccountView, error) {
	if r.cache != nil {
		if cached, ok := r.cache.Get(ctx, accountViewKey(id)); ok {
			view := cached.AccountView
			view.UserID = cached.OwnerID
			return &view, nil
		}
	}

	account, err := scanAccount(r.db.QueryRowContext(ctx, queryGetAccountByID, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ledger.ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	view := models.AccountToView(account)
	r.CacheAccountView(ctx, view)
	return view, nil
}

// ListByUserID always reads the database so newly created accounts appear
// without waiting for cache population.
func (r *AccountReadRepository) ListByUserID(ctx context.Context, userID string) ([]models.AccountView, error) {
	rows, err := r.db.QueryContext(ctx, queryListAccountsByUser, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	views := []models.AccountView{}
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		views = append(views, *models.AccountToView(account))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return views, nil
}

func (r *AccountReadRepository) CacheAccountView(ctx context.Context, view *models.AccountView) {
	if r.cache == nil {
		return
	}
	r.cache.Set(ctx, accountViewKey(view.ID), &cachedAccountView{AccountView: *view, OwnerID: view.UserID})
}

func (r *AccountReadRepository) InvalidateAccountView(ctx context.Context, accountIDs ...string) {
	if r.cache == nil || len(accountIDs) == 0 {
		return
	}
	keys := make([]string, len(accountIDs))
	for i, id := range accountIDs {
		keys[i] = accountViewKey(id)
	}
	r.cache.Delete(ctx, keys...)
}

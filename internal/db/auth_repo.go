package db

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/mageshboopath1/Live-ESG-sub001/internal/models"
)

// AuthRepo backs component H's username/password and API-key principals.
type AuthRepo struct{ db *DB }

func NewAuthRepo(d *DB) *AuthRepo { return &AuthRepo{db: d} }

// UserByUsername fetches an active user for login.
func (r *AuthRepo) UserByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	err := r.db.Pool.QueryRow(ctx, `
		SELECT id, username, password_hash, active, admin, created_at FROM users WHERE username = $1`, username,
	).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Active, &u.Admin, &u.CreatedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return &u, wrapQuery("auth user by username", err)
}

// CreateUser inserts a new user row with an already-hashed password.
func (r *AuthRepo) CreateUser(ctx context.Context, u models.User) (int64, error) {
	var id int64
	err := r.db.Pool.QueryRow(ctx, `
		INSERT INTO users (username, password_hash, active, admin) VALUES ($1, $2, $3, $4) RETURNING id`,
		u.Username, u.PasswordHash, u.Active, u.Admin,
	).Scan(&id)
	return id, wrapQuery("auth create user", err)
}

// APIKeyByPrefix fetches an API key row by its public prefix; the caller
// verifies the full key against KeyHash before trusting the result.
func (r *AuthRepo) APIKeyByPrefix(ctx context.Context, prefix string) (*models.APIKey, error) {
	var k models.APIKey
	err := r.db.Pool.QueryRow(ctx, `
		SELECT id, user_id, prefix, key_hash, scopes, expires_at, active, created_at FROM api_keys WHERE prefix = $1`, prefix,
	).Scan(&k.ID, &k.UserID, &k.Prefix, &k.KeyHash, &k.Scopes, &k.ExpiresAt, &k.Active, &k.CreatedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return &k, wrapQuery("auth api key by prefix", err)
}

// CreateAPIKey inserts a new API key row, the hash and prefix having already
// been derived from the plaintext key by the caller.
func (r *AuthRepo) CreateAPIKey(ctx context.Context, k models.APIKey) (int64, error) {
	var id int64
	err := r.db.Pool.QueryRow(ctx, `
		INSERT INTO api_keys (user_id, prefix, key_hash, scopes, expires_at, active) VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		k.UserID, k.Prefix, k.KeyHash, k.Scopes, k.ExpiresAt, k.Active,
	).Scan(&id)
	return id, wrapQuery("auth create api key", err)
}

package httpapi

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/time/rate"

	"github.com/mageshboopath1/Live-ESG-sub001/internal/db"
)

type contextKey string

const principalKey contextKey = "principal"

// principal is whichever identity authenticated the request, bearer user
// or API key.
type principal struct {
	userID int64
	scopes []string
}

// claims is the JWT payload issued on login.
type claims struct {
	UserID int64 `json:"user_id"`
	jwt.RegisteredClaims
}

type authenticator struct {
	authRepo    *db.AuthRepo
	jwtSecret   []byte
	tokenTTL    time.Duration
	limiters    *rateLimiterRegistry
}

func newAuthenticator(authRepo *db.AuthRepo, jwtSecret string, tokenTTL time.Duration, rps float64, burst int) *authenticator {
	return &authenticator{
		authRepo:  authRepo,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
		limiters:  newRateLimiterRegistry(rps, burst),
	}
}

func (a *authenticator) issueToken(userID int64) (string, error) {
	now := time.Now()
	c := claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	return token.SignedString(a.jwtSecret)
}

// generateAPIKey returns a plaintext key (shown once) plus its stored
// prefix and hash.
func generateAPIKey() (plaintext, prefix, hash string, err error) {
	buf := make([]byte, 32)
	if _, err = rand.Read(buf); err != nil {
		return "", "", "", err
	}
	plaintext = "esg_" + hex.EncodeToString(buf)
	prefix = plaintext[:12]
	sum := sha256.Sum256([]byte(plaintext))
	hash = hex.EncodeToString(sum[:])
	return plaintext, prefix, hash, nil
}

func hashAPIKey(plaintext string) string {
	sum := sha256.Sum256([]byte(plaintext))
	return hex.EncodeToString(sum[:])
}

var errUnauthenticated = errors.New("unauthenticated")

// authenticate accepts either a bearer JWT or an API key header, returning
// the resolved principal.
func (a *authenticator) authenticate(r *http.Request) (*principal, error) {
	if bearer := r.Header.Get("Authorization"); strings.HasPrefix(bearer, "Bearer ") {
		return a.authenticateBearer(strings.TrimPrefix(bearer, "Bearer "))
	}
	if key := r.Header.Get("X-API-Key"); key != "" {
		return a.authenticateAPIKey(r.Context(), key)
	}
	return nil, errUnauthenticated
}

func (a *authenticator) authenticateBearer(token string) (*principal, error) {
	parsed, err := jwt.ParseWithClaims(token, &claims{}, func(t *jwt.Token) (any, error) {
		return a.jwtSecret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, errUnauthenticated
	}
	c, ok := parsed.Claims.(*claims)
	if !ok {
		return nil, errUnauthenticated
	}
	return &principal{userID: c.UserID}, nil
}

func (a *authenticator) authenticateAPIKey(ctx context.Context, key string) (*principal, error) {
	if len(key) < 12 {
		return nil, errUnauthenticated
	}
	prefix := key[:12]
	record, err := a.authRepo.APIKeyByPrefix(ctx, prefix)
	if err != nil {
		return nil, err
	}
	if record == nil || !record.Active {
		return nil, errUnauthenticated
	}
	if record.ExpiresAt != nil && record.ExpiresAt.Before(time.Now()) {
		return nil, errUnauthenticated
	}
	if subtle.ConstantTimeCompare([]byte(hashAPIKey(key)), []byte(record.KeyHash)) != 1 {
		return nil, errUnauthenticated
	}
	return &principal{userID: record.UserID, scopes: record.Scopes}, nil
}

func hashPassword(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	return string(b), err
}

func checkPassword(hash, pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}

// rateLimiterRegistry keeps one token-bucket limiter per principal (the
// X-API-Key header value, or "user-<id>" for a bearer token), approximating the sliding-window RPS/burst contract per principal.
type rateLimiterRegistry struct {
	rps     float64
	burst   int
	buckets map[string]*rate.Limiter
}

func newRateLimiterRegistry(rps float64, burst int) *rateLimiterRegistry {
	return &rateLimiterRegistry{rps: rps, burst: burst, buckets: map[string]*rate.Limiter{}}
}

func (rr *rateLimiterRegistry) allow(key string) (bool, int) {
	l, ok := rr.buckets[key]
	if !ok {
		capacity := int(rr.rps) + rr.burst
		if capacity < 1 {
			capacity = 1
		}
		l = rate.NewLimiter(rate.Limit(rr.rps), capacity)
		rr.buckets[key] = l
	}
	allowed := l.Allow()
	remaining := int(l.Tokens())
	if remaining < 0 {
		remaining = 0
	}
	return allowed, remaining
}

func withPrincipal(ctx context.Context, p *principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

func principalFrom(ctx context.Context) *principal {
	p, _ := ctx.Value(principalKey).(*principal)
	return p
}

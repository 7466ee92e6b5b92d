package httpapi

import (
	"context"
	"encoding/json"
)

const listCacheTTLSeconds = 60

// getCached returns the raw cached JSON body for key, if present. A nil
// cache or any cache error is treated as a miss: reads must never fail
// because the cache is unavailable.
func (s *Server) getCached(ctx context.Context, key string) (string, bool) {
	if s.cache == nil {
		return "", false
	}
	val, ok, err := s.cache.Get(ctx, key)
	if err != nil || !ok {
		return "", false
	}
	return val, true
}

func (s *Server) setCachedJSON(ctx context.Context, key string, v any) {
	if s.cache == nil {
		return
	}
	body, err := json.Marshal(v)
	if err != nil {
		return
	}
	_ = s.cache.Set(ctx, key, string(body), listCacheTTLSeconds)
}

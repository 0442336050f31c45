package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const cacheTTL = 60 * time.Second

type cachedPage struct {
	Tracks []Track `json:"tracks"`
	Total  int     `json:"total"`
}

// CachedSearcher serves recent search pages from Redis and falls back
// to the wrapped Searcher on a miss or any cache error.
type CachedSearcher struct {
	next Searcher
	rdb  *redis.Client
}

func NewCachedSearcher(next Searcher, rdb *redis.Client) *CachedSearcher {
	return &CachedSearcher{next: next, rdb: rdb}
}

func (c *CachedSearcher) Search(ctx context.Context, query string, offset, limit int) ([]Track, int, error) {
	key := fmt.Sprintf("search:%s:%d:%d", query, offset, limit)

	if raw, err := c.rdb.Get(ctx, key).Bytes(); err == nil {
		var page cachedPage
		if err := json.Unmarshal(raw, &page); err == nil {
			return page.Tracks, page.Total, nil
		}
	}

	tracks, total, err := c.next.Search(ctx, query, offset, limit)
	if err != nil {
		return nil, 0, err
	}

	if raw, err := json.Marshal(cachedPage{Tracks: tracks, Total: total}); err == nil {
		c.rdb.Set(ctx, key, raw, cacheTTL)
	}
	return tracks, total, nil
}

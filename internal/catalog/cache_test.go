package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/redis/go-redis/v9"
)

type countingSearcher struct {
	calls  int
	tracks []Track
	total  int
	err    error
}

func (s *countingSearcher) Search(context.Context, string, int, int) ([]Track, int, error) {
	s.calls++
	if s.err != nil {
		return nil, 0, s.err
	}
	return s.tracks, s.total, nil
}

// deadRedis points at a closed port, so every cache operation fails and
// the cached searcher must fall through to the live catalog.
func deadRedis() *redis.Client {
	return redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
}

func TestCachedSearcher(t *testing.T) {
	t.Run("Falls Through On Cache Error", func(t *testing.T) {
		next := &countingSearcher{
			tracks: []Track{{ID: "sp1", Title: "Song A"}},
			total:  7,
		}
		cs := NewCachedSearcher(next, deadRedis())

		tracks, total, err := cs.Search(context.Background(), "road", 0, 10)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if next.calls != 1 {
			t.Errorf("expected exactly one live call, got %d", next.calls)
		}
		if total != 7 || len(tracks) != 1 || tracks[0].Title != "Song A" {
			t.Errorf("unexpected results: total=%d tracks=%+v", total, tracks)
		}
	})

	t.Run("Propagates Catalog Error", func(t *testing.T) {
		next := &countingSearcher{err: ErrUnavailable}
		cs := NewCachedSearcher(next, deadRedis())

		if _, _, err := cs.Search(context.Background(), "road", 0, 10); !errors.Is(err, ErrUnavailable) {
			t.Errorf("expected ErrUnavailable, got %v", err)
		}
	})
}

package pokeapi

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type countingFetcher struct {
	calls   int32
	release chan struct{}
	fail    bool
}

func (f *countingFetcher) Get(ctx context.Context, resourceUrl string) (*PokemonResponse, error) {
	atomic.AddInt32(&f.calls, 1)
	if f.release != nil {
		<-f.release
	}
	if f.fail {
		return nil, errors.New("boom")
	}
	return &PokemonResponse{Id: 1, Name: "bulbasaur"}, nil
}

func TestDetailCacheMemoizes(t *testing.T) {
	fetcher := &countingFetcher{}
	cache := NewDetailCache(fetcher, zap.NewNop().Sugar())

	for i := 0; i < 3; i++ {
		pokemon, err := cache.Get(context.Background(), "u/1/")
		require.NoError(t, err)
		assert.Equal(t, "bulbasaur", pokemon.Name)
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&fetcher.calls))
	assert.Equal(t, 1, cache.Len())
}

func TestDetailCacheCoalescesInflight(t *testing.T) {
	fetcher := &countingFetcher{release: make(chan struct{})}
	cache := NewDetailCache(fetcher, zap.NewNop().Sugar())

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := cache.Get(context.Background(), "u/1/")
			assert.NoError(t, err)
		}()
	}
	for atomic.LoadInt32(&fetcher.calls) == 0 {
		runtime.Gosched()
	}
	close(fetcher.release)
	wg.Wait()
	assert.Equal(t, int32(1), atomic.LoadInt32(&fetcher.calls))
	assert.Equal(t, 1, cache.Len())
}

func TestDetailCacheDoesNotStoreFailures(t *testing.T) {
	fetcher := &countingFetcher{fail: true}
	cache := NewDetailCache(fetcher, zap.NewNop().Sugar())

	_, err := cache.Get(context.Background(), "u/1/")
	require.Error(t, err)
	_, err = cache.Get(context.Background(), "u/1/")
	require.Error(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&fetcher.calls))
	assert.Equal(t, 0, cache.Len())
}

func TestDetailCachePut(t *testing.T) {
	fetcher := &countingFetcher{}
	cache := NewDetailCache(fetcher, zap.NewNop().Sugar())
	cache.Put("u/132/", &PokemonResponse{Id: 132, Name: "ditto"})

	pokemon, err := cache.Get(context.Background(), "u/132/")
	require.NoError(t, err)
	assert.Equal(t, "ditto", pokemon.Name)
	assert.Equal(t, int32(0), atomic.LoadInt32(&fetcher.calls))
}

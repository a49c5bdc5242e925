package pokeapi

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

type DetailFetcher interface {
	Get(ctx context.Context, resourceUrl string) (*PokemonResponse, error)
}

// DetailCache memoizes Pokémon details by resource url for the lifetime of a session.
// Concurrent requests for the same url share one fetch. Failures are not stored.
type DetailCache struct {
	fetcher DetailFetcher
	sugar   *zap.SugaredLogger
	group   singleflight.Group
	mu      sync.RWMutex
	entries map[string]*PokemonResponse
}

func NewDetailCache(fetcher DetailFetcher, sugar *zap.SugaredLogger) *DetailCache {
	return &DetailCache{
		fetcher: fetcher,
		sugar:   sugar,
		entries: make(map[string]*PokemonResponse),
	}
}

func (c *DetailCache) Get(ctx context.Context, resourceUrl string) (*PokemonResponse, error) {
	if pokemon, ok := c.Peek(resourceUrl); ok {
		return pokemon, nil
	}
	value, err, shared := c.group.Do(resourceUrl, func() (any, error) {
		if pokemon, ok := c.Peek(resourceUrl); ok {
			return pokemon, nil
		}
		pokemon, err := c.fetcher.Get(ctx, resourceUrl)
		if err != nil {
			return nil, err
		}
		c.Put(resourceUrl, pokemon)
		return pokemon, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		c.sugar.Debugf("Shared inflight detail fetch for %s", resourceUrl)
	}
	return value.(*PokemonResponse), nil
}

func (c *DetailCache) Peek(resourceUrl string) (*PokemonResponse, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	pokemon, ok := c.entries[resourceUrl]
	return pokemon, ok
}

func (c *DetailCache) Put(resourceUrl string, pokemon *PokemonResponse) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[resourceUrl] = pokemon
}

func (c *DetailCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

package autocomplete

import (
	"context"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/kyohenrique/pokedex/src/pokeapi"
	"go.uber.org/zap"
)

const (
	// NamesLimit covers the full national dex plus forms in one listing page.
	NamesLimit     = 2000
	MinTermLength  = 2
	MaxSuggestions = 8
)

type Lister interface {
	ListFirst(ctx context.Context, limit int32) (*pokeapi.PokemonListResult, error)
}

// Index holds every Pokémon name, loaded once per session.
type Index struct {
	sugar *zap.SugaredLogger
	limit int32
	mu    sync.RWMutex
	names []string
	once  sync.Once
}

func NewIndex(sugar *zap.SugaredLogger, limit int32) *Index {
	if limit <= 0 {
		limit = NamesLimit
	}
	return &Index{sugar: sugar, limit: limit}
}

// NewIndexFromNames builds an already-loaded index.
func NewIndexFromNames(names []string) *Index {
	idx := &Index{sugar: zap.NewNop().Sugar(), limit: NamesLimit, names: names}
	idx.once.Do(func() {})
	return idx
}

// Load fetches the name list the first time it is called; later calls do nothing.
// A failed load is logged and leaves the index empty for the rest of the session.
func (idx *Index) Load(ctx context.Context, lister Lister) {
	idx.once.Do(func() {
		result, err := lister.ListFirst(ctx, idx.limit)
		if err != nil {
			idx.sugar.Errorf("Failed to load Pokemon names: %s", err)
			return
		}
		names := make([]string, 0, len(result.Results))
		for _, entry := range result.Results {
			names = append(names, entry.Name)
		}
		idx.mu.Lock()
		idx.names = names
		idx.mu.Unlock()
		idx.sugar.Infof("Loaded %d Pokemon names for autocomplete", len(names))
	})
}

func (idx *Index) Len() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.names)
}

// Suggest returns up to MaxSuggestions names containing term, in listing order.
// Terms shorter than MinTermLength never produce suggestions.
func (idx *Index) Suggest(term string) []string {
	if utf8.RuneCountInString(term) < MinTermLength {
		return nil
	}
	needle := strings.ToLower(term)
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	var result []string
	for _, name := range idx.names {
		if strings.Contains(strings.ToLower(name), needle) {
			result = append(result, name)
			if len(result) == MaxSuggestions {
				break
			}
		}
	}
	return result
}

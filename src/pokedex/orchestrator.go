// Package pokedex holds the page-level state machine: which entries are
// listed, the pagination cursor, search mode, and the open overlay.
//
// Operations return an *Op describing the fetch they need. Run the Op off
// the UI loop, then hand its Result back to Apply on the UI loop. Each list
// replacing operation starts a new generation; results of older generations
// are dropped, so a slow response can never overwrite newer state.
package pokedex

import (
	"context"
	"strings"

	"github.com/kyohenrique/pokedex/src/pokeapi"
	"go.uber.org/zap"
)

const DefaultPageSize = 20

type API interface {
	pokeapi.DetailFetcher
	ListFirst(ctx context.Context, limit int32) (*pokeapi.PokemonListResult, error)
	ListPage(ctx context.Context, pageUrl string) (*pokeapi.PokemonListResult, error)
	Lookup(ctx context.Context, idOrName string) (*pokeapi.PokemonResponse, error)
	BaseUrl() string
}

type OpKind int

const (
	OpMount OpKind = iota
	OpLoadMore
	OpSearch
	OpReset
)

func (k OpKind) String() string {
	switch k {
	case OpMount:
		return "mount"
	case OpLoadMore:
		return "load-more"
	case OpSearch:
		return "search"
	case OpReset:
		return "reset"
	}
	return "unknown"
}

type Op struct {
	Kind       OpKind
	Generation uint64
	run        func(ctx context.Context) Result
}

func (op *Op) Run(ctx context.Context) Result {
	r := op.run(ctx)
	r.Kind = op.Kind
	r.Generation = op.Generation
	return r
}

type Result struct {
	Kind       OpKind
	Generation uint64
	Page       *pokeapi.PokemonListResult
	Pokemon    *pokeapi.PokemonResponse
	Term       string
	Err        error
}

// Orchestrator is not safe for concurrent use; drive it from the UI loop.
type Orchestrator struct {
	api        API
	details    *pokeapi.DetailCache
	sugar      *zap.SugaredLogger
	pageSize   int32
	state      State
	generation uint64
	lastErr    error
}

func New(api API, sugar *zap.SugaredLogger, pageSize int32) *Orchestrator {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Orchestrator{
		api:      api,
		details:  pokeapi.NewDetailCache(api, sugar),
		sugar:    sugar,
		pageSize: pageSize,
	}
}

// Details is the detail cache shared by every card and overlay on the page.
func (o *Orchestrator) Details() *pokeapi.DetailCache {
	return o.details
}

func (o *Orchestrator) Snapshot() State {
	s := o.state
	s.Entries = append([]Entry(nil), o.state.Entries...)
	return s
}

// LastError is the error behind the current ModeSearchFailed state.
func (o *Orchestrator) LastError() error {
	return o.lastErr
}

func (o *Orchestrator) Generation() uint64 {
	return o.generation
}

// Mount fetches the first browse page.
func (o *Orchestrator) Mount() *Op {
	return o.browse(OpMount)
}

// Reset drops the current list, cursor and error, then fetches the first browse page.
func (o *Orchestrator) Reset() *Op {
	o.state.Mode = ModeBrowsing
	o.state.Entries = nil
	o.state.Next = ""
	o.state.Term = ""
	o.lastErr = nil
	return o.browse(OpReset)
}

func (o *Orchestrator) browse(kind OpKind) *Op {
	o.generation++
	o.state.Loading = true
	limit := o.pageSize
	return &Op{
		Kind:       kind,
		Generation: o.generation,
		run: func(ctx context.Context) Result {
			page, err := o.api.ListFirst(ctx, limit)
			return Result{Page: page, Err: err}
		},
	}
}

// LoadMore fetches the next page. It returns nil when there is no cursor,
// the page is not browsing, or a fetch is already in flight.
func (o *Orchestrator) LoadMore() *Op {
	if !o.state.CanLoadMore() {
		return nil
	}
	o.state.Loading = true
	next := o.state.Next
	return &Op{
		Kind:       OpLoadMore,
		Generation: o.generation,
		run: func(ctx context.Context) Result {
			page, err := o.api.ListPage(ctx, next)
			return Result{Page: page, Err: err}
		},
	}
}

// Search looks up a single Pokémon by name. A blank term behaves as Reset.
func (o *Orchestrator) Search(term string) *Op {
	normalized := strings.ToLower(strings.TrimSpace(term))
	if normalized == "" {
		return o.Reset()
	}
	o.generation++
	o.state.Loading = true
	return &Op{
		Kind:       OpSearch,
		Generation: o.generation,
		run: func(ctx context.Context) Result {
			pokemon, err := o.api.Lookup(ctx, normalized)
			return Result{Pokemon: pokemon, Term: normalized, Err: err}
		},
	}
}

// Apply folds a finished Op into the state. It reports false for results
// that were superseded by a newer operation.
func (o *Orchestrator) Apply(r Result) bool {
	if r.Generation != o.generation {
		o.sugar.Debugf("Dropping stale %s result (generation %d, current %d)", r.Kind, r.Generation, o.generation)
		return false
	}
	o.state.Loading = false
	switch r.Kind {
	case OpMount, OpReset:
		if r.Err != nil {
			o.sugar.Errorf("Failed to load Pokemon page: %s", r.Err)
			return true
		}
		o.state.Mode = ModeBrowsing
		o.state.Entries = entriesFrom(r.Page.Results)
		o.state.Next = r.Page.NextURL()
		o.state.Term = ""
	case OpLoadMore:
		if r.Err != nil {
			o.sugar.Errorf("Failed to load next Pokemon page: %s", r.Err)
			return true
		}
		if o.state.Mode != ModeBrowsing {
			return true
		}
		entries := make([]Entry, 0, len(o.state.Entries)+len(r.Page.Results))
		entries = append(entries, o.state.Entries...)
		o.state.Entries = append(entries, entriesFrom(r.Page.Results)...)
		o.state.Next = r.Page.NextURL()
	case OpSearch:
		o.state.Next = ""
		o.state.Term = r.Term
		if r.Err != nil {
			o.sugar.Warnf("Search for %q failed: %s", r.Term, r.Err)
			o.state.Mode = ModeSearchFailed
			o.state.Entries = nil
			o.lastErr = r.Err
			return true
		}
		resourceUrl := pokeapi.ResourceUrl(o.api.BaseUrl(), r.Pokemon.Id)
		o.details.Put(resourceUrl, r.Pokemon)
		o.state.Mode = ModeSearching
		o.state.Entries = []Entry{{Name: r.Pokemon.Name, Url: resourceUrl}}
		o.lastErr = nil
	}
	return true
}

// Do runs op and applies its result. A nil op is a no-op.
func (o *Orchestrator) Do(ctx context.Context, op *Op) bool {
	if op == nil {
		return false
	}
	return o.Apply(op.Run(ctx))
}

func (o *Orchestrator) SelectEntry(resourceUrl string) {
	o.state.Selected = resourceUrl
}

func (o *Orchestrator) ClearSelection() {
	o.state.Selected = ""
}

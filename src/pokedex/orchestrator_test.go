package pokedex

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/kyohenrique/pokedex/src/pokeapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const base = "https://pokeapi.test/api/v2/"

var errOffline = errors.New("offline")

// fakeAPI serves a dex of total entries in pages of the requested size.
type fakeAPI struct {
	total    int
	failList bool
	failPage bool
	lookups  []string
	listed   []int32
	gets     int
}

func (f *fakeAPI) page(offset, limit int) *pokeapi.PokemonListResult {
	result := &pokeapi.PokemonListResult{Count: int32(f.total)}
	for i := offset; i < offset+limit && i < f.total; i++ {
		result.Results = append(result.Results, pokeapi.NamedResource{
			Name: fmt.Sprintf("mon-%d", i+1),
			Url:  fmt.Sprintf("%spokemon/%d/", base, i+1),
		})
	}
	if offset+limit < f.total {
		next := fmt.Sprintf("%spokemon?offset=%d&limit=%d", base, offset+limit, limit)
		result.Next = &next
	}
	return result
}

func (f *fakeAPI) ListFirst(ctx context.Context, limit int32) (*pokeapi.PokemonListResult, error) {
	f.listed = append(f.listed, limit)
	if f.failList {
		return nil, errOffline
	}
	return f.page(0, int(limit)), nil
}

func (f *fakeAPI) ListPage(ctx context.Context, pageUrl string) (*pokeapi.PokemonListResult, error) {
	if f.failPage {
		return nil, errOffline
	}
	var offset, limit int
	if _, err := fmt.Sscanf(pageUrl, base+"pokemon?offset=%d&limit=%d", &offset, &limit); err != nil {
		return nil, err
	}
	return f.page(offset, limit), nil
}

func (f *fakeAPI) Lookup(ctx context.Context, idOrName string) (*pokeapi.PokemonResponse, error) {
	f.lookups = append(f.lookups, idOrName)
	if idOrName == "ditto" {
		return &pokeapi.PokemonResponse{Id: 132, Name: "ditto"}, nil
	}
	return nil, pokeapi.ErrNotFound
}

func (f *fakeAPI) Get(ctx context.Context, resourceUrl string) (*pokeapi.PokemonResponse, error) {
	f.gets++
	return &pokeapi.PokemonResponse{Name: "fetched"}, nil
}

func (f *fakeAPI) BaseUrl() string {
	return base
}

func newOrchestrator(api *fakeAPI) *Orchestrator {
	return New(api, zap.NewNop().Sugar(), 0)
}

func mounted(t *testing.T, api *fakeAPI) *Orchestrator {
	t.Helper()
	o := newOrchestrator(api)
	require.True(t, o.Do(context.Background(), o.Mount()))
	return o
}

func TestMountFetchesFirstPage(t *testing.T) {
	api := &fakeAPI{total: 50}
	o := mounted(t, api)

	s := o.Snapshot()
	assert.Equal(t, []int32{DefaultPageSize}, api.listed)
	assert.Equal(t, ModeBrowsing, s.Mode)
	assert.Len(t, s.Entries, 20)
	assert.Equal(t, "mon-1", s.Entries[0].Name)
	assert.Equal(t, "1", s.Entries[0].Id())
	assert.NotEmpty(t, s.Next)
	assert.False(t, s.Loading)
	assert.True(t, s.CanLoadMore())
}

func TestMountFailureOnlyClearsLoading(t *testing.T) {
	api := &fakeAPI{total: 50, failList: true}
	o := newOrchestrator(api)
	op := o.Mount()
	assert.True(t, o.Snapshot().Loading)

	o.Do(context.Background(), op)

	s := o.Snapshot()
	assert.False(t, s.Loading)
	assert.Empty(t, s.Entries)
	assert.False(t, s.HasError())
}

func TestLoadMoreAppendsUntilExhausted(t *testing.T) {
	api := &fakeAPI{total: 45}
	o := mounted(t, api)

	require.True(t, o.Do(context.Background(), o.LoadMore()))
	s := o.Snapshot()
	assert.Len(t, s.Entries, 40)
	assert.Equal(t, "mon-21", s.Entries[20].Name)

	require.True(t, o.Do(context.Background(), o.LoadMore()))
	s = o.Snapshot()
	assert.Len(t, s.Entries, 45)
	assert.Empty(t, s.Next)

	assert.Nil(t, o.LoadMore())
	after := o.Snapshot()
	assert.Equal(t, s.Entries, after.Entries)
	assert.Equal(t, s.Next, after.Next)
}

func TestLoadMoreWhileLoadingIsNoop(t *testing.T) {
	api := &fakeAPI{total: 100}
	o := mounted(t, api)

	first := o.LoadMore()
	require.NotNil(t, first)
	assert.Nil(t, o.LoadMore())

	o.Do(context.Background(), first)
	assert.Len(t, o.Snapshot().Entries, 40)
}

func TestLoadMoreFailureKeepsState(t *testing.T) {
	api := &fakeAPI{total: 100}
	o := mounted(t, api)
	before := o.Snapshot()

	api.failPage = true
	o.Do(context.Background(), o.LoadMore())

	after := o.Snapshot()
	assert.Equal(t, before.Entries, after.Entries)
	assert.Equal(t, before.Next, after.Next)
	assert.False(t, after.Loading)
	assert.False(t, after.HasError())
}

func TestSearchSuccess(t *testing.T) {
	api := &fakeAPI{total: 100}
	o := mounted(t, api)

	require.True(t, o.Do(context.Background(), o.Search("  Ditto ")))

	s := o.Snapshot()
	assert.Equal(t, []string{"ditto"}, api.lookups)
	assert.Equal(t, ModeSearching, s.Mode)
	require.Len(t, s.Entries, 1)
	assert.Equal(t, "ditto", s.Entries[0].Name)
	assert.Equal(t, "132", s.Entries[0].Id())
	assert.Equal(t, "https://pokeapi.test/api/v2/pokemon/132/", s.Entries[0].Url)
	assert.Empty(t, s.Next)
	assert.False(t, s.CanLoadMore())
	assert.Nil(t, o.LoadMore())

	cached, ok := o.Details().Peek(s.Entries[0].Url)
	require.True(t, ok)
	assert.Equal(t, "ditto", cached.Name)
}

func TestSearchFailure(t *testing.T) {
	api := &fakeAPI{total: 100}
	o := mounted(t, api)

	o.Do(context.Background(), o.Search("xyzabc123"))

	s := o.Snapshot()
	assert.Equal(t, ModeSearchFailed, s.Mode)
	assert.True(t, s.HasError())
	assert.Empty(t, s.Entries)
	assert.Empty(t, s.Next)
	assert.Equal(t, "xyzabc123", s.Term)
	assert.ErrorIs(t, o.LastError(), pokeapi.ErrNotFound)
}

func TestBlankSearchResets(t *testing.T) {
	api := &fakeAPI{total: 100}
	o := mounted(t, api)
	o.Do(context.Background(), o.Search("xyzabc123"))

	op := o.Search("   ")
	require.NotNil(t, op)
	assert.Equal(t, OpReset, op.Kind)
	o.Do(context.Background(), op)

	s := o.Snapshot()
	assert.Equal(t, ModeBrowsing, s.Mode)
	assert.Len(t, s.Entries, 20)
	assert.Empty(t, api.lookups[1:])
}

func TestResetRestoresFirstPage(t *testing.T) {
	api := &fakeAPI{total: 100}
	o := mounted(t, api)
	o.Do(context.Background(), o.LoadMore())
	o.Do(context.Background(), o.Search("ditto"))

	op := o.Reset()
	mid := o.Snapshot()
	assert.Empty(t, mid.Entries)
	assert.True(t, mid.Loading)
	o.Do(context.Background(), op)

	fresh := api.page(0, DefaultPageSize)
	s := o.Snapshot()
	assert.Equal(t, ModeBrowsing, s.Mode)
	assert.False(t, s.HasError())
	assert.Equal(t, fresh.NextURL(), s.Next)
	require.Len(t, s.Entries, len(fresh.Results))
	for i, r := range fresh.Results {
		assert.Equal(t, r.Name, s.Entries[i].Name)
	}
	assert.Nil(t, o.LastError())
}

func TestStaleResultsAreDropped(t *testing.T) {
	api := &fakeAPI{total: 100}
	o := mounted(t, api)

	slowSearch := o.Search("xyzabc123")
	fastReset := o.Reset()

	require.True(t, o.Do(context.Background(), fastReset))
	assert.False(t, o.Apply(slowSearch.Run(context.Background())))

	s := o.Snapshot()
	assert.Equal(t, ModeBrowsing, s.Mode)
	assert.Len(t, s.Entries, 20)
}

func TestSearchSupersedesInflightLoadMore(t *testing.T) {
	api := &fakeAPI{total: 100}
	o := mounted(t, api)

	loadMore := o.LoadMore()
	search := o.Search("ditto")

	assert.False(t, o.Apply(loadMore.Run(context.Background())))
	assert.True(t, o.Snapshot().Loading)

	o.Do(context.Background(), search)
	s := o.Snapshot()
	assert.Equal(t, ModeSearching, s.Mode)
	assert.Len(t, s.Entries, 1)
}

func TestSelection(t *testing.T) {
	o := mounted(t, &fakeAPI{total: 5})
	url := o.Snapshot().Entries[2].Url

	o.SelectEntry(url)
	assert.Equal(t, url, o.Snapshot().Selected)
	o.SelectEntry(o.Snapshot().Entries[3].Url)
	assert.True(t, strings.HasSuffix(o.Snapshot().Selected, "/4/"))

	o.ClearSelection()
	assert.Empty(t, o.Snapshot().Selected)
}

func TestSnapshotIsACopy(t *testing.T) {
	o := mounted(t, &fakeAPI{total: 5})
	s := o.Snapshot()
	s.Entries[0].Name = "changed"
	assert.Equal(t, "mon-1", o.Snapshot().Entries[0].Name)
}

func TestDetailsAreShared(t *testing.T) {
	api := &fakeAPI{total: 5}
	o := mounted(t, api)
	url := o.Snapshot().Entries[0].Url

	_, err := o.Details().Get(context.Background(), url)
	require.NoError(t, err)
	_, err = o.Details().Get(context.Background(), url)
	require.NoError(t, err)
	assert.Equal(t, 1, api.gets)
}

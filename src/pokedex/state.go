package pokedex

import "github.com/kyohenrique/pokedex/src/pokeapi"

type Mode int

const (
	// ModeBrowsing shows listing pages; only this mode carries a next-page cursor.
	ModeBrowsing Mode = iota
	// ModeSearching shows the single result of a name lookup.
	ModeSearching
	// ModeSearchFailed shows the not-found panel with an empty list.
	ModeSearchFailed
)

func (m Mode) String() string {
	switch m {
	case ModeBrowsing:
		return "browsing"
	case ModeSearching:
		return "searching"
	case ModeSearchFailed:
		return "search-failed"
	}
	return "unknown"
}

// Entry is the lightweight reference a card is built from.
type Entry struct {
	Name string
	Url  string
}

// Id is the numeric id encoded in the resource url.
func (e Entry) Id() string {
	return pokeapi.IdFromUrl(e.Url)
}

type State struct {
	Mode    Mode
	Entries []Entry
	// Next is the server-supplied cursor; empty once the listing is exhausted or outside ModeBrowsing.
	Next    string
	Loading bool
	// Term is the normalized term of the last search, set in ModeSearching and ModeSearchFailed.
	Term string
	// Selected is the url of the entry whose overlay is open, if any.
	Selected string
}

func (s State) CanLoadMore() bool {
	return s.Mode == ModeBrowsing && s.Next != "" && !s.Loading
}

func (s State) HasError() bool {
	return s.Mode == ModeSearchFailed
}

func entriesFrom(results []pokeapi.NamedResource) []Entry {
	entries := make([]Entry, 0, len(results))
	for _, r := range results {
		entries = append(entries, Entry{Name: r.Name, Url: r.Url})
	}
	return entries
}

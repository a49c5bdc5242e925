package autocomplete

import (
	"unicode/utf8"

	"github.com/kyohenrique/pokedex/src/events"
)

// SearchBox is the state behind the search field: the typed term, its
// suggestions, and whether the suggestion list is showing.
type SearchBox struct {
	index        *Index
	onSearch     func(term string)
	onClear      func()
	term         string
	suggestions  []string
	visible      bool
	activeSearch bool
	highlight    int
	bounds       events.Rect
	unsubscribe  func()
}

func NewSearchBox(index *Index, onSearch func(term string), onClear func()) *SearchBox {
	return &SearchBox{
		index:     index,
		onSearch:  onSearch,
		onClear:   onClear,
		highlight: -1,
	}
}

// Mount installs the press-outside listener. Presses outside the box bounds hide the suggestions.
func (b *SearchBox) Mount(pointers *events.Bus[events.Pointer]) {
	b.Unmount()
	b.unsubscribe = pointers.Subscribe(func(p events.Pointer) bool {
		if !b.bounds.Contains(p) {
			b.visible = false
		}
		return false
	})
}

func (b *SearchBox) Unmount() {
	if b.unsubscribe != nil {
		b.unsubscribe()
		b.unsubscribe = nil
	}
}

// SetBounds records where the box and its suggestion list are drawn.
func (b *SearchBox) SetBounds(r events.Rect) {
	b.bounds = r
}

func (b *SearchBox) Bounds() events.Rect {
	return b.bounds
}

func (b *SearchBox) SetTerm(term string) {
	if term == b.term {
		return
	}
	b.term = term
	b.Refresh()
}

// Refresh recomputes the suggestions for the current term, e.g. once the index has loaded.
func (b *SearchBox) Refresh() {
	b.highlight = -1
	if utf8.RuneCountInString(b.term) >= MinTermLength {
		b.suggestions = b.index.Suggest(b.term)
		b.visible = true
		return
	}
	b.suggestions = nil
	b.visible = false
}

func (b *SearchBox) Focus() {
	if utf8.RuneCountInString(b.term) >= MinTermLength {
		b.visible = true
	}
}

func (b *SearchBox) Hide() {
	b.visible = false
	b.highlight = -1
}

func (b *SearchBox) Select(name string) {
	b.term = name
	b.suggestions = b.index.Suggest(name)
	b.activeSearch = true
	b.Hide()
	b.onSearch(name)
}

// Submit searches for the typed term unless it is empty.
func (b *SearchBox) Submit() {
	if b.term == "" {
		return
	}
	b.activeSearch = true
	b.Hide()
	b.onSearch(b.term)
}

// Accept submits the highlighted suggestion if there is one, otherwise the term.
func (b *SearchBox) Accept() {
	if name, ok := b.Highlighted(); ok {
		b.Select(name)
		return
	}
	b.Submit()
}

func (b *SearchBox) Clear() {
	b.term = ""
	b.suggestions = nil
	b.activeSearch = false
	b.Hide()
	b.onClear()
}

// MoveHighlight steps through the visible suggestions; it wraps to "none" at either end.
func (b *SearchBox) MoveHighlight(delta int) {
	if !b.SuggestionsShown() {
		return
	}
	next := b.highlight + delta
	if next < -1 {
		next = len(b.suggestions) - 1
	}
	if next >= len(b.suggestions) {
		next = -1
	}
	b.highlight = next
}

func (b *SearchBox) Highlighted() (string, bool) {
	if !b.SuggestionsShown() || b.highlight < 0 || b.highlight >= len(b.suggestions) {
		return "", false
	}
	return b.suggestions[b.highlight], true
}

func (b *SearchBox) Term() string {
	return b.term
}

func (b *SearchBox) Suggestions() []string {
	return b.suggestions
}

// SuggestionsShown mirrors what is drawn: a visible, non-empty list.
func (b *SearchBox) SuggestionsShown() bool {
	return b.visible && len(b.suggestions) > 0
}

func (b *SearchBox) ActiveSearch() bool {
	return b.activeSearch
}

// ClearVisible reports whether the clear control is offered.
func (b *SearchBox) ClearVisible() bool {
	return b.term != "" || b.activeSearch
}

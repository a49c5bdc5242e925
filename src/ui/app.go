package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/kyohenrique/pokedex/src/audio"
	"github.com/kyohenrique/pokedex/src/autocomplete"
	"github.com/kyohenrique/pokedex/src/events"
	"github.com/kyohenrique/pokedex/src/pokeapi"
	"github.com/kyohenrique/pokedex/src/pokedex"
	"go.uber.org/zap"
)

const (
	defaultWidth  = 100
	defaultHeight = 32
	searchWidth   = 32
	// lines under the grid: blank, load more, thumbnail, help
	footerLines = 4
)

type Options struct {
	SpriteBaseUrl string
	PageSize      int32
	NamesLimit    int32
}

type appLayout struct {
	search      events.Rect
	clear       events.Rect
	suggestions []events.Rect
	cards       []events.Rect
	cardIndex   []int
	loadMore    events.Rect
	back        events.Rect
}

// App is the bubbletea model of the whole page.
type App struct {
	ctx           context.Context
	sugar         *zap.SugaredLogger
	api           pokedex.API
	orchestrator  *pokedex.Orchestrator
	index         *autocomplete.Index
	search        *autocomplete.SearchBox
	input         textinput.Model
	inputFocused  bool
	spinner       spinner.Model
	keys          *events.Bus[events.Key]
	pointers      *events.Bus[events.Pointer]
	cards         []*Card
	cursor        int
	scroll        int
	overlay       *Overlay
	player        audio.Player
	spriteBaseUrl string
	width         int
	height        int
	styles        Styles
	keymap        KeyMap
	help          help.Model
	layout        appLayout
	pending       []tea.Cmd
}

func NewApp(ctx context.Context, api pokedex.API, player audio.Player, sugar *zap.SugaredLogger, opts Options) *App {
	if opts.SpriteBaseUrl == "" {
		opts.SpriteBaseUrl = pokeapi.DefaultSpriteBaseUrl
	}
	input := textinput.New()
	input.Placeholder = "Search Pokémon by name"
	input.Prompt = "search: "
	input.CharLimit = 64
	input.Width = searchWidth

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	a := &App{
		ctx:           ctx,
		sugar:         sugar,
		api:           api,
		orchestrator:  pokedex.New(api, sugar, opts.PageSize),
		index:         autocomplete.NewIndex(sugar, opts.NamesLimit),
		input:         input,
		spinner:       spin,
		keys:          events.NewBus[events.Key](),
		pointers:      events.NewBus[events.Pointer](),
		player:        player,
		spriteBaseUrl: opts.SpriteBaseUrl,
		width:         defaultWidth,
		height:        defaultHeight,
		styles:        NewStyles(),
		keymap:        DefaultKeyMap(),
		help:          help.New(),
	}
	a.spinner.Style = a.styles.Spinner
	a.search = autocomplete.NewSearchBox(a.index, a.onSearch, a.onClear)
	a.search.Mount(a.pointers)
	return a
}

func (a *App) onSearch(term string) {
	a.input.SetValue(term)
	a.enqueue(runOp(a.ctx, a.orchestrator.Search(term)))
}

func (a *App) onClear() {
	a.input.SetValue("")
	a.enqueue(runOp(a.ctx, a.orchestrator.Reset()))
}

func (a *App) enqueue(cmd tea.Cmd) {
	if cmd != nil {
		a.pending = append(a.pending, cmd)
	}
}

func (a *App) drain(cmds ...tea.Cmd) tea.Cmd {
	cmds = append(cmds, a.pending...)
	a.pending = nil
	return tea.Batch(cmds...)
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(
		runOp(a.ctx, a.orchestrator.Mount()),
		loadNames(a.ctx, a.index, a.api),
		a.spinner.Tick,
	)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		a.help.Width = msg.Width
		return a, nil
	case tea.KeyMsg:
		return a, a.drain(a.handleKey(msg))
	case tea.MouseMsg:
		return a, a.drain(a.handleMouse(msg))
	case opResultMsg:
		if !a.orchestrator.Apply(msg.result) {
			return a, nil
		}
		return a, a.drain(a.syncCards())
	case namesLoadedMsg:
		a.sugar.Debugf("Loaded %d Pokemon names", a.index.Len())
		if a.inputFocused {
			a.search.Refresh()
		}
		return a, nil
	case detailMsg:
		for _, c := range a.cards {
			c.SetDetail(msg)
		}
		if a.overlay != nil {
			a.overlay.SetDetail(msg)
		}
		return a, nil
	case cryMsg:
		if msg.err != nil {
			a.sugar.Warnf("Failed to play cry %s: %s", msg.url, msg.err)
		}
		return a, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd
	}
	if a.inputFocused {
		var cmd tea.Cmd
		a.input, cmd = a.input.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	k := msg.String()
	if k == "ctrl+c" {
		return tea.Quit
	}
	if a.keys.Dispatch(events.Key(k)) {
		return nil
	}
	if a.overlay != nil {
		return a.overlay.HandleKey(k, a.keymap)
	}
	if a.inputFocused {
		return a.handleInputKey(msg)
	}

	state := a.orchestrator.Snapshot()
	cols := a.columns()
	switch {
	case matches(k, a.keymap.Quit):
		return tea.Quit
	case matches(k, a.keymap.Search):
		return a.focusInput()
	case matches(k, a.keymap.Clear):
		a.search.Clear()
	case matches(k, a.keymap.Back):
		if state.Mode != pokedex.ModeBrowsing || a.search.ClearVisible() {
			a.search.Clear()
		}
	case matches(k, a.keymap.LoadMore):
		return a.loadMore()
	case matches(k, a.keymap.Left):
		a.moveCursor(-1)
	case matches(k, a.keymap.Right):
		a.moveCursor(1)
	case matches(k, a.keymap.Up):
		a.moveCursor(-cols)
	case matches(k, a.keymap.Down):
		a.moveCursor(cols)
	case matches(k, a.keymap.Open):
		if a.cursor < len(a.cards) {
			return a.openCard(a.cursor)
		}
	}
	return nil
}

func (a *App) handleInputKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		a.blurInput()
		return nil
	case tea.KeyEnter:
		a.search.Accept()
		a.blurInput()
		return nil
	case tea.KeyUp:
		a.search.MoveHighlight(-1)
		return nil
	case tea.KeyDown, tea.KeyTab:
		a.search.MoveHighlight(1)
		return nil
	case tea.KeyCtrlX:
		a.search.Clear()
		return nil
	}
	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	a.search.SetTerm(a.input.Value())
	return cmd
}

func (a *App) focusInput() tea.Cmd {
	a.inputFocused = true
	a.search.Focus()
	return a.input.Focus()
}

func (a *App) blurInput() {
	a.inputFocused = false
	a.input.Blur()
	a.search.Hide()
}

func (a *App) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if msg.Action != tea.MouseActionPress {
		return nil
	}
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		a.scroll = max(0, a.scroll-1)
		return nil
	case tea.MouseButtonWheelDown:
		a.scroll++
		return nil
	case tea.MouseButtonLeft:
	default:
		return nil
	}

	p := events.Pointer{X: msg.X, Y: msg.Y}
	if a.pointers.Dispatch(p) {
		return nil
	}
	if a.overlay != nil {
		return a.overlay.HandlePointer(p, a.width, a.height, a.styles)
	}

	l := a.layout
	if l.clear.Contains(p) {
		a.search.Clear()
		return nil
	}
	for i, r := range l.suggestions {
		if r.Contains(p) && i < len(a.search.Suggestions()) {
			a.search.Select(a.search.Suggestions()[i])
			a.blurInput()
			return nil
		}
	}
	if l.search.Contains(p) {
		return a.focusInput()
	}
	if a.inputFocused {
		a.blurInput()
	}
	if l.back.Contains(p) {
		a.search.Clear()
		return nil
	}
	if l.loadMore.Contains(p) {
		return a.loadMore()
	}
	for i, r := range l.cards {
		if r.Contains(p) {
			a.cursor = l.cardIndex[i]
			return a.openCard(a.cursor)
		}
	}
	return nil
}

func (a *App) loadMore() tea.Cmd {
	return runOp(a.ctx, a.orchestrator.LoadMore())
}

func (a *App) openCard(i int) tea.Cmd {
	if a.overlay != nil {
		a.overlay.Close()
	}
	url := a.cards[i].Entry().Url
	a.orchestrator.SelectEntry(url)
	a.overlay = OpenOverlay(url, a.keys, a.player, a.sugar, a.closeOverlay)
	return a.overlay.Init(a.ctx, a.orchestrator.Details())
}

func (a *App) closeOverlay() {
	a.overlay = nil
	a.orchestrator.ClearSelection()
}

func (a *App) moveCursor(delta int) {
	if len(a.cards) == 0 {
		return
	}
	next := a.cursor + delta
	if next < 0 || next >= len(a.cards) {
		return
	}
	a.cursor = next
}

// syncCards keeps existing cards when the entry list only grew, so their
// fetched badges survive a load-more.
func (a *App) syncCards() tea.Cmd {
	entries := a.orchestrator.Snapshot().Entries
	keep := len(a.cards) <= len(entries)
	for i := 0; keep && i < len(a.cards); i++ {
		keep = a.cards[i].Entry().Url == entries[i].Url
	}
	if !keep {
		a.cards = nil
		a.cursor = 0
		a.scroll = 0
	}
	var cmds []tea.Cmd
	details := a.orchestrator.Details()
	for _, entry := range entries[len(a.cards):] {
		card := NewCard(entry, a.spriteBaseUrl)
		a.cards = append(a.cards, card)
		cmds = append(cmds, card.Init(a.ctx, details, a.sugar))
	}
	return tea.Batch(cmds...)
}

// Close releases every listener the page holds.
func (a *App) Close() {
	if a.overlay != nil {
		a.overlay.Close()
	}
	a.search.Unmount()
}

func (a *App) Orchestrator() *pokedex.Orchestrator {
	return a.orchestrator
}

func (a *App) Cards() []*Card {
	return a.cards
}

func (a *App) Overlay() *Overlay {
	return a.overlay
}

func (a *App) SearchBox() *autocomplete.SearchBox {
	return a.search
}

func (a *App) columns() int {
	return max(1, (a.width+cardGap)/(cardWidth+cardGap))
}

func (a *App) View() string {
	if a.overlay != nil && a.overlay.Pokemon() != nil {
		return a.overlay.View(a.width, a.height, a.styles) + "\n" + a.help.View(overlayHelp{keys: a.keymap})
	}
	a.layout = appLayout{}
	state := a.orchestrator.Snapshot()
	var lines []string
	add := func(block string) int {
		y := len(lines)
		lines = append(lines, strings.Split(block, "\n")...)
		return y
	}

	add(a.styles.Title.Render("Pokédex") + "  " + a.styles.Muted.Render(state.Mode.String()))
	add("")

	searchLine := a.input.View()
	inputWidth := lipgloss.Width(searchLine)
	y := len(lines)
	a.layout.search = events.Rect{X: 0, Y: y, Width: inputWidth, Height: 1}
	if a.search.ClearVisible() {
		clear := a.styles.Button.Render("x clear")
		a.layout.clear = events.Rect{X: inputWidth + 2, Y: y, Width: lipgloss.Width(clear), Height: 1}
		searchLine += "  " + clear
	}
	add(searchLine)
	if a.search.SuggestionsShown() {
		highlighted, _ := a.search.Highlighted()
		for _, name := range a.search.Suggestions() {
			style := a.styles.Suggestion
			if name == highlighted {
				style = a.styles.Highlight
			}
			row := add("  " + style.Render(name))
			a.layout.suggestions = append(a.layout.suggestions, events.Rect{X: 0, Y: row, Width: inputWidth, Height: 1})
		}
	}
	a.search.SetBounds(events.Rect{X: 0, Y: y, Width: max(inputWidth, a.width), Height: len(lines) - y})
	add("")

	switch {
	case state.HasError():
		panel := a.styles.Error.Render(fmt.Sprintf("No Pokémon found for %q.", state.Term)) + "\n\n" +
			a.styles.Button.Render("Back to the list")
		top := add(a.styles.ErrorPanel.Render(panel))
		// border plus the message and a blank line
		a.layout.back = events.Rect{X: 2, Y: top + 3, Width: lipgloss.Width(a.styles.Button.Render("Back to the list")), Height: 1}
	case state.Loading && len(a.cards) == 0:
		add(a.spinner.View() + " Loading Pokémon…")
	case len(a.cards) == 0:
		add(a.styles.Muted.Render("No Pokémon to show."))
	default:
		a.renderGrid(add, len(lines))
	}

	add("")
	if state.Mode == pokedex.ModeBrowsing && state.Next != "" {
		button := a.styles.Button.Render("Load more")
		if state.Loading {
			button = a.styles.ButtonOff.Render(a.spinner.View() + " Loading…")
		} else {
			a.layout.loadMore = events.Rect{X: 0, Y: len(lines), Width: lipgloss.Width(button), Height: 1}
		}
		add(button)
	} else {
		add("")
	}
	if a.cursor < len(a.cards) {
		add(a.styles.Muted.Render("sprite: " + a.cards[a.cursor].Thumbnail()))
	} else {
		add("")
	}
	add(a.help.View(a.keymap))
	return strings.Join(lines, "\n")
}

func (a *App) renderGrid(add func(string) int, top int) {
	cols := a.columns()
	rows := (len(a.cards) + cols - 1) / cols
	visible := max(1, (a.height-top-footerLines)/cardHeight)
	cursorRow := a.cursor / cols
	if cursorRow < a.scroll {
		a.scroll = cursorRow
	}
	if cursorRow >= a.scroll+visible {
		a.scroll = cursorRow - visible + 1
	}
	a.scroll = min(a.scroll, max(0, rows-visible))

	gap := strings.Repeat(" ", cardGap)
	for row := a.scroll; row < rows && row < a.scroll+visible; row++ {
		var views []string
		for col := 0; col < cols; col++ {
			i := row*cols + col
			if i >= len(a.cards) {
				break
			}
			if col > 0 {
				views = append(views, gap)
			}
			views = append(views, a.cards[i].View(a.styles, i == a.cursor))
		}
		y := add(lipgloss.JoinHorizontal(lipgloss.Top, views...))
		for col := 0; col < cols && row*cols+col < len(a.cards); col++ {
			a.layout.cards = append(a.layout.cards, events.Rect{X: col * (cardWidth + cardGap), Y: y, Width: cardWidth, Height: cardHeight})
			a.layout.cardIndex = append(a.layout.cardIndex, row*cols+col)
		}
	}
}

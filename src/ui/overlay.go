package ui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/kyohenrique/pokedex/src/audio"
	"github.com/kyohenrique/pokedex/src/events"
	"github.com/kyohenrique/pokedex/src/pokeapi"
	"go.uber.org/zap"
)

const (
	// StatCap is the base value drawn as a full bar; anything above is clamped.
	StatCap = 150

	overlayMaxInner = 60
	overlayMinInner = 32
	statLabelWidth  = 16
	statValueWidth  = 4

	headerLine  = 0
	artworkLine = 3
	cryLine     = 4
)

// StatPercent maps a base value to a bar width percentage, min(value, 150) / 1.5.
func StatPercent(value int32) float64 {
	if value < 0 {
		value = 0
	}
	if value > StatCap {
		value = StatCap
	}
	return float64(value) / 1.5
}

type overlayLayout struct {
	panel   events.Rect
	close   events.Rect
	artwork events.Rect
}

// Overlay is the detail view of one entry. While open it owns an Escape
// listener on the key bus; Close removes it.
type Overlay struct {
	url         string
	pokemon     *pokeapi.PokemonResponse
	onClose     func()
	player      audio.Player
	sugar       *zap.SugaredLogger
	unsubscribe func()
	closed      bool
}

func OpenOverlay(url string, keys *events.Bus[events.Key], player audio.Player, sugar *zap.SugaredLogger, onClose func()) *Overlay {
	o := &Overlay{
		url:     url,
		onClose: onClose,
		player:  player,
		sugar:   sugar,
	}
	o.unsubscribe = keys.Subscribe(func(k events.Key) bool {
		if k == "esc" {
			o.Close()
			return true
		}
		return false
	})
	return o
}

func (o *Overlay) Init(ctx context.Context, details *pokeapi.DetailCache) tea.Cmd {
	if pokemon, ok := details.Peek(o.url); ok {
		o.pokemon = pokemon
		return nil
	}
	return fetchDetail(ctx, details, o.sugar, o.url, "overlay")
}

func (o *Overlay) SetDetail(msg detailMsg) bool {
	if msg.url != o.url {
		return false
	}
	if msg.err == nil && msg.pokemon != nil {
		o.pokemon = msg.pokemon
	}
	return true
}

func (o *Overlay) Url() string {
	return o.url
}

func (o *Overlay) Pokemon() *pokeapi.PokemonResponse {
	return o.pokemon
}

func (o *Overlay) Closed() bool {
	return o.closed
}

// Close removes the Escape listener and notifies the owner. Only the first call has an effect.
func (o *Overlay) Close() {
	if o.closed {
		return
	}
	o.closed = true
	o.unsubscribe()
	o.onClose()
}

// PlayCry starts the cry without waiting for it. Nothing happens when there is no cry.
func (o *Overlay) PlayCry() tea.Cmd {
	if o.pokemon == nil || o.pokemon.Cries.Latest == "" {
		return nil
	}
	url := o.pokemon.Cries.Latest
	player := o.player
	return func() tea.Msg {
		return cryMsg{url: url, err: player.Play(url)}
	}
}

func (o *Overlay) HandleKey(k string, keys KeyMap) tea.Cmd {
	switch {
	case matches(k, keys.Close):
		o.Close()
	case matches(k, keys.Cry):
		return o.PlayCry()
	}
	return nil
}

// HandlePointer treats presses on the backdrop as dismissal. Presses inside
// the panel are contained, except on the close control and the artwork.
func (o *Overlay) HandlePointer(p events.Pointer, width, height int, styles Styles) tea.Cmd {
	if o.pokemon == nil {
		o.Close()
		return nil
	}
	_, layout := o.render(width, height, styles)
	switch {
	case !layout.panel.Contains(p):
		o.Close()
	case layout.close.Contains(p):
		o.Close()
	case layout.artwork.Contains(p):
		return o.PlayCry()
	}
	return nil
}

func (o *Overlay) View(width, height int, styles Styles) string {
	if o.pokemon == nil {
		return ""
	}
	view, _ := o.render(width, height, styles)
	return view
}

func (o *Overlay) render(width, height int, styles Styles) (string, overlayLayout) {
	inner := width - 8
	if inner > overlayMaxInner {
		inner = overlayMaxInner
	}
	if inner < overlayMinInner {
		inner = overlayMinInner
	}
	panel := styles.Panel.Render(strings.Join(o.lines(inner, styles), "\n"))
	pw, ph := lipgloss.Width(panel), lipgloss.Height(panel)
	left, top := max(0, (width-pw)/2), max(0, (height-ph)/2)

	var sb strings.Builder
	sb.WriteString(strings.Repeat("\n", top))
	margin := strings.Repeat(" ", left)
	for i, line := range strings.Split(panel, "\n") {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(margin)
		sb.WriteString(line)
	}

	// One cell of border and one of padding sit between the panel edge and the content.
	contentX, contentY := left+2, top+1
	return sb.String(), overlayLayout{
		panel:   events.Rect{X: left, Y: top, Width: pw, Height: ph},
		close:   events.Rect{X: contentX + inner - 3, Y: contentY + headerLine, Width: 3, Height: 1},
		artwork: events.Rect{X: contentX, Y: contentY + artworkLine, Width: inner, Height: cryLine - artworkLine + 1},
	}
}

func (o *Overlay) lines(inner int, styles Styles) []string {
	p := o.pokemon
	color := Fallback
	if len(p.Types) > 0 {
		color = TypeColor(p.Types[0].Type.Name)
	}
	title := lipgloss.NewStyle().Foreground(color).Bold(true).Render(truncate(capitalize(p.Name), inner-10))
	header := title + "  " + styles.Muted.Render(paddedId(p.Id))
	header = lipgloss.PlaceHorizontal(inner-3, lipgloss.Left, header) + styles.Bold.Render("[x]")

	var badges []string
	for _, t := range p.TypeNames() {
		badges = append(badges, Badge(t))
	}

	measures := fmt.Sprintf("Height %s m   Weight %s kg", tenths(p.Height), tenths(p.Weight))
	artwork := styles.Muted.Render(truncate("artwork: "+p.Artwork(), inner))
	cry := styles.Muted.Render("no cry available")
	if p.Cries.Latest != "" {
		cry = styles.Bold.Render("♪ p or click here: play cry")
	}

	lines := []string{header, strings.Join(badges, " "), measures, artwork, cry, "", styles.Bold.Render("Stats")}
	barWidth := inner - statLabelWidth - statValueWidth - 2
	for _, stat := range p.Stats {
		bar := progress.New(progress.WithSolidFill(string(color)), progress.WithoutPercentage(), progress.WithWidth(barWidth))
		label := styles.Muted.Render(fmt.Sprintf("%-*s", statLabelWidth, truncate(StatLabel(stat.Stat.Name), statLabelWidth)))
		value := styles.Bold.Render(fmt.Sprintf("%*d", statValueWidth, stat.BaseStat))
		lines = append(lines, label+value+"  "+bar.ViewAs(StatPercent(stat.BaseStat)/100))
	}
	for i, line := range lines {
		lines[i] = lipgloss.PlaceHorizontal(inner, lipgloss.Left, line)
	}
	return lines
}

// StatLabel turns an API stat name into a display label: "special-attack" becomes "SPECIAL ATTACK".
func StatLabel(name string) string {
	return strings.ToUpper(strings.Replace(name, "-", " ", 1))
}

// tenths renders decimetres as metres and hectograms as kilograms.
func tenths(v int32) string {
	return strconv.FormatFloat(float64(v)/10, 'f', -1, 64)
}

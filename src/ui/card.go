package ui

import (
	"context"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/kyohenrique/pokedex/src/pokeapi"
	"github.com/kyohenrique/pokedex/src/pokedex"
	"go.uber.org/zap"
)

const (
	cardInnerWidth = 22
	cardWidth      = cardInnerWidth + 2
	cardHeight     = 5
	cardGap        = 1
)

// Card is the summary view of one entry. It fetches its own detail for the type badges,
// while the thumbnail comes straight from the id in the url.
type Card struct {
	entry     pokedex.Entry
	id        string
	thumbnail string
	types     []string
	loaded    bool
}

func NewCard(entry pokedex.Entry, spriteBaseUrl string) *Card {
	id := entry.Id()
	return &Card{
		entry:     entry,
		id:        id,
		thumbnail: pokeapi.SpriteUrl(spriteBaseUrl, id),
	}
}

func (c *Card) Init(ctx context.Context, details *pokeapi.DetailCache, sugar *zap.SugaredLogger) tea.Cmd {
	if pokemon, ok := details.Peek(c.entry.Url); ok {
		c.setDetail(pokemon)
		return nil
	}
	return fetchDetail(ctx, details, sugar, c.entry.Url, "card")
}

// SetDetail applies a fetched detail if it belongs to this card. Failures leave the badges empty.
func (c *Card) SetDetail(msg detailMsg) bool {
	if msg.url != c.entry.Url {
		return false
	}
	if msg.err == nil && msg.pokemon != nil {
		c.setDetail(msg.pokemon)
	}
	return true
}

func (c *Card) setDetail(pokemon *pokeapi.PokemonResponse) {
	c.types = pokemon.TypeNames()
	c.loaded = true
}

func (c *Card) Entry() pokedex.Entry {
	return c.entry
}

func (c *Card) Thumbnail() string {
	return c.thumbnail
}

func (c *Card) Types() []string {
	return c.types
}

func (c *Card) Loaded() bool {
	return c.loaded
}

func (c *Card) View(styles Styles, active bool) string {
	idLine := lipgloss.PlaceHorizontal(cardInnerWidth, lipgloss.Right, styles.CardId.Render("#"+c.id))
	nameLine := lipgloss.PlaceHorizontal(cardInnerWidth, lipgloss.Center, styles.Bold.Render(truncate(capitalize(c.entry.Name), cardInnerWidth)))
	var badges []string
	for _, t := range c.types {
		badges = append(badges, Badge(t))
	}
	badgeLine := lipgloss.PlaceHorizontal(cardInnerWidth, lipgloss.Center, strings.Join(badges, " "))
	style := styles.Card
	if active {
		style = styles.CardActive
	}
	return style.Render(strings.Join([]string{idLine, nameLine, badgeLine}, "\n"))
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func truncate(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	runes := []rune(s)
	if width <= 1 {
		return string(runes[:width])
	}
	return string(runes[:width-1]) + "…"
}

func paddedId(id int32) string {
	return fmt.Sprintf("#%03d", id)
}

package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/kyohenrique/pokedex/src/autocomplete"
	"github.com/kyohenrique/pokedex/src/pokeapi"
	"github.com/kyohenrique/pokedex/src/pokedex"
	"go.uber.org/zap"
)

type opResultMsg struct {
	result pokedex.Result
}

type namesLoadedMsg struct{}

type detailMsg struct {
	url     string
	pokemon *pokeapi.PokemonResponse
	err     error
}

type cryMsg struct {
	url string
	err error
}

func runOp(ctx context.Context, op *pokedex.Op) tea.Cmd {
	if op == nil {
		return nil
	}
	return func() tea.Msg {
		return opResultMsg{result: op.Run(ctx)}
	}
}

func loadNames(ctx context.Context, index *autocomplete.Index, lister autocomplete.Lister) tea.Cmd {
	return func() tea.Msg {
		index.Load(ctx, lister)
		return namesLoadedMsg{}
	}
}

// fetchDetail resolves a detail through the shared cache. Failures are logged
// here and reported so the caller can leave its placeholder in place.
func fetchDetail(ctx context.Context, details *pokeapi.DetailCache, sugar *zap.SugaredLogger, url, purpose string) tea.Cmd {
	return func() tea.Msg {
		pokemon, err := details.Get(ctx, url)
		if err != nil {
			sugar.Errorf("Failed to fetch %s detail %s: %s", purpose, url, err)
		}
		return detailMsg{url: url, pokemon: pokemon, err: err}
	}
}

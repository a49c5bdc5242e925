package parquet

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/kyohenrique/pokedex/src/pokeapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func bulbasaur() *pokeapi.PokemonResponse {
	p := &pokeapi.PokemonResponse{Id: 1, Name: "bulbasaur", Weight: 69, Height: 7}
	p.Types = []pokeapi.PokemonType{
		{Slot: 1, Type: pokeapi.PokemonTypeEntry{Name: "grass"}},
		{Slot: 2, Type: pokeapi.PokemonTypeEntry{Name: "poison"}},
	}
	for name, value := range map[string]int32{"hp": 45, "attack": 49, "defense": 49, "special-attack": 65, "special-defense": 65, "speed": 45} {
		p.Stats = append(p.Stats, pokeapi.PokemonStat{BaseStat: value, Stat: pokeapi.PokemonStatEntry{Name: name}})
	}
	p.Sprites.FrontDefault = "front.png"
	p.Cries.Latest = "cry.ogg"
	return p
}

func TestToPokemonOneRowPerType(t *testing.T) {
	rows := ToPokemon(bulbasaur(), 1)
	grass := Pokemon{
		Id: 1, Name: "bulbasaur", Weight: 69, Height: 7, Type: "grass", Slot: 1, Generation: 1,
		Hp: 45, Attack: 49, Defense: 49, SpecialAttack: 65, SpecialDefense: 65, Speed: 45,
		Artwork: "front.png", Cry: "cry.ogg",
	}
	poison := grass
	poison.Type = "poison"
	poison.Slot = 2
	if diff := cmp.Diff([]Pokemon{grass, poison}, rows); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestToPokemonWithoutTypes(t *testing.T) {
	rows := ToPokemon(&pokeapi.PokemonResponse{Id: 0, Name: "missingno"}, 0)
	require.Len(t, rows, 1)
	assert.Empty(t, rows[0].Type)
}

func TestPokemonWriterFinish(t *testing.T) {
	w, err := NewPokemonWriter(zap.NewNop().Sugar())
	require.NoError(t, err)
	for _, row := range ToPokemon(bulbasaur(), 1) {
		require.NoError(t, w.WritePokemon(&row))
	}
	require.NoError(t, w.Finish())
	assert.Equal(t, 2, w.Rows())
	assert.Greater(t, w.Size(), 4)
	magic := make([]byte, 4)
	_, err = w.BufferReader().Read(magic)
	require.NoError(t, err)
	assert.Equal(t, "PAR1", string(magic))
}

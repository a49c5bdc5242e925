package csv

import (
	"io"
	"strings"
	"testing"

	"github.com/kyohenrique/pokedex/src/parquet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriterUsesParquetColumnNames(t *testing.T) {
	w := NewPokemonWriter()
	require.NoError(t, w.WriteHeader())
	require.NoError(t, w.Write(parquet.Pokemon{Id: 25, Name: "pikachu", Weight: 60, Height: 4, Type: "electric", Slot: 1, Generation: 1, Hp: 35}))
	require.NoError(t, w.Finish())
	assert.Equal(t, 1, w.Rows())

	data, err := io.ReadAll(w.BufferReader())
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "id,name,weight,height,type,slot,generation,hp,attack"))
	assert.True(t, strings.HasPrefix(lines[1], "25,pikachu,60,4,electric,1,1,35,0"))
	assert.Equal(t, len(data), w.Size())
}

func TestWriterQuotesNames(t *testing.T) {
	w := NewPokemonWriter()
	require.NoError(t, w.Write(parquet.Pokemon{Name: "mr, mime"}))
	require.NoError(t, w.Finish())
	data, err := io.ReadAll(w.BufferReader())
	require.NoError(t, err)
	assert.Contains(t, string(data), `"mr, mime"`)
}

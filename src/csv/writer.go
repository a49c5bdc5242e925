package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"reflect"

	"github.com/kyohenrique/pokedex/src/parquet"
	"github.com/kyohenrique/pokedex/src/utils"
	"github.com/xitongsys/parquet-go-source/buffer"
)

// PokemonWriter writes export rows as CSV with the parquet column names as header.
type PokemonWriter struct {
	buffer *buffer.BufferFile
	writer *csv.Writer
	fields []reflect.StructField
	rows   int
}

const InitialCapacity = 1024 * 1024

func NewPokemonWriter() *PokemonWriter {
	bufferFile := buffer.NewBufferFileCapacity(InitialCapacity)
	return &PokemonWriter{
		buffer: bufferFile,
		writer: csv.NewWriter(bufferFile),
		fields: utils.GetFields(parquet.Pokemon{}),
	}
}

func (w *PokemonWriter) WriteHeader() error {
	return w.writer.Write(utils.ColumnNames(w.fields))
}

func (w *PokemonWriter) Write(pokemon parquet.Pokemon) error {
	if err := w.writer.Write(utils.FieldStrings(pokemon, w.fields)); err != nil {
		return fmt.Errorf("writing %s to csv: %w", pokemon.Name, err)
	}
	w.rows++
	return nil
}

func (w *PokemonWriter) Finish() error {
	w.writer.Flush()
	if err := w.writer.Error(); err != nil {
		return fmt.Errorf("flushing csv: %w", err)
	}
	_, err := w.buffer.Seek(0, io.SeekStart)
	return err
}

func (w *PokemonWriter) Rows() int {
	return w.rows
}

func (w *PokemonWriter) Size() int {
	return len(w.buffer.Bytes())
}

func (w *PokemonWriter) BufferReader() io.Reader {
	return w.buffer
}

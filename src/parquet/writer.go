package parquet

import (
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/xitongsys/parquet-go-source/buffer"
	"github.com/xitongsys/parquet-go/writer"
)

type PokemonWriter struct {
	sugar  *zap.SugaredLogger
	buffer *buffer.BufferFile
	writer *writer.ParquetWriter
	rows   int
}

const (
	InitialCapacity = 4 * 1024 * 1024
	Parallelism     = 4
)

func NewPokemonWriter(sugar *zap.SugaredLogger) (*PokemonWriter, error) {
	bufferFile := buffer.NewBufferFileCapacity(InitialCapacity)
	w, err := writer.NewParquetWriter(bufferFile, new(Pokemon), Parallelism)
	if err != nil {
		return nil, fmt.Errorf("creating parquet writer: %w", err)
	}
	return &PokemonWriter{
		sugar:  sugar,
		buffer: bufferFile,
		writer: w,
	}, nil
}

func (w *PokemonWriter) WritePokemon(pokemon *Pokemon) error {
	if err := w.writer.Write(pokemon); err != nil {
		return fmt.Errorf("writing %s to parquet: %w", pokemon.Name, err)
	}
	w.rows++
	return nil
}

// Finish flushes the footer and rewinds the buffer so BufferReader reads the whole file.
func (w *PokemonWriter) Finish() error {
	if err := w.writer.WriteStop(); err != nil {
		return fmt.Errorf("finishing parquet file: %w", err)
	}
	w.sugar.Debugf("Parquet file holds %d rows in %d bytes", w.rows, w.Size())
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

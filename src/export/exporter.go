package export

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/kyohenrique/pokedex/src/csv"
	"github.com/kyohenrique/pokedex/src/parquet"
	"github.com/kyohenrique/pokedex/src/pokeapi"
	"go.uber.org/zap"
)

const (
	ParquetContentType = "application/vnd.apache.parquet"
	CsvContentType     = "text/csv"
	DefaultPrefix      = "pokemons"
)

var ErrNoFormat = errors.New("export needs at least one format")

type Source interface {
	pokeapi.DetailFetcher
	List(ctx context.Context, limit, offset int32) (*pokeapi.PokemonListResult, error)
	GetPokemonGeneration(ctx context.Context, species pokeapi.PokemonResponseSpecies) (int32, error)
}

type Result struct {
	RunId           string `json:"runId"`
	ParquetFileName string `json:"parquetFileName,omitempty"`
	CsvFileName     string `json:"csvFileName,omitempty"`
	Pokemon         int    `json:"pokemon"`
	Rows            int    `json:"rows"`
}

type Exporter struct {
	source   Source
	details  *pokeapi.DetailCache
	sink     Sink
	sugar    *zap.SugaredLogger
	prefix   string
	parquet  bool
	csv      bool
	newRunId func() string
}

type Option func(*Exporter)

func WithPrefix(prefix string) Option {
	return func(e *Exporter) {
		if prefix != "" {
			e.prefix = prefix
		}
	}
}

func WithFormats(parquet, csv bool) Option {
	return func(e *Exporter) {
		e.parquet = parquet
		e.csv = csv
	}
}

func WithRunId(newRunId func() string) Option {
	return func(e *Exporter) {
		e.newRunId = newRunId
	}
}

// WithDetails shares an existing detail cache, e.g. the browser's.
func WithDetails(details *pokeapi.DetailCache) Option {
	return func(e *Exporter) {
		e.details = details
	}
}

func NewExporter(source Source, sink Sink, sugar *zap.SugaredLogger, opts ...Option) *Exporter {
	e := &Exporter{
		source:   source,
		sink:     sink,
		sugar:    sugar,
		prefix:   DefaultPrefix,
		parquet:  true,
		csv:      true,
		newRunId: uuid.NewString,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.details == nil {
		e.details = pokeapi.NewDetailCache(source, sugar)
	}
	return e
}

// Run exports one schedule. Details are fetched one at a time; an empty
// listing slice produces no files.
func (e *Exporter) Run(ctx context.Context, schedule Schedule) (*Result, error) {
	if !e.parquet && !e.csv {
		return nil, ErrNoFormat
	}
	if schedule.Limit <= 0 || schedule.Offset < 0 {
		return nil, fmt.Errorf("invalid schedule limit %d offset %d", schedule.Limit, schedule.Offset)
	}
	result := &Result{RunId: e.newRunId()}
	e.sugar.Infof("Starting export %s, limit: %d offset: %d", result.RunId, schedule.Limit, schedule.Offset)

	listing, err := e.source.List(ctx, schedule.Limit, schedule.Offset)
	if err != nil {
		return nil, fmt.Errorf("listing Pokemon: %w", err)
	}
	result.Pokemon = len(listing.Results)
	e.sugar.Infof("Got %d Pokemon results", result.Pokemon)
	if result.Pokemon == 0 {
		return result, nil
	}

	var parquetWriter *parquet.PokemonWriter
	if e.parquet {
		if parquetWriter, err = parquet.NewPokemonWriter(e.sugar); err != nil {
			return nil, err
		}
	}
	var csvWriter *csv.PokemonWriter
	if e.csv {
		csvWriter = csv.NewPokemonWriter()
		if err := csvWriter.WriteHeader(); err != nil {
			return nil, err
		}
	}

	generations := make(map[string]int32)
	for _, entry := range listing.Results {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		pokemon, err := e.details.Get(ctx, entry.Url)
		if err != nil {
			return nil, fmt.Errorf("fetching %s: %w", entry.Name, err)
		}
		generation, ok := generations[pokemon.Species.Url]
		if !ok {
			if generation, err = e.source.GetPokemonGeneration(ctx, pokemon.Species); err != nil {
				return nil, fmt.Errorf("fetching generation of %s: %w", entry.Name, err)
			}
			generations[pokemon.Species.Url] = generation
		}
		for _, row := range parquet.ToPokemon(pokemon, generation) {
			e.sugar.Debugf("Writing Pokemon %s (%s)", row.Name, row.Type)
			if parquetWriter != nil {
				if err := parquetWriter.WritePokemon(&row); err != nil {
					return nil, err
				}
			}
			if csvWriter != nil {
				if err := csvWriter.Write(row); err != nil {
					return nil, err
				}
			}
			result.Rows++
		}
	}

	first := schedule.Offset + 1
	last := schedule.Offset + int32(result.Pokemon)
	base := fmt.Sprintf("%s/%s/%d_%d", e.prefix, result.RunId, first, last)
	if parquetWriter != nil {
		if err := parquetWriter.Finish(); err != nil {
			return nil, err
		}
		result.ParquetFileName = base + ".parquet"
		e.sugar.Infof("Sending parquet file of size %d to %s", parquetWriter.Size(), result.ParquetFileName)
		if err := e.sink.PutFile(ctx, parquetWriter.BufferReader(), result.ParquetFileName, ParquetContentType); err != nil {
			return nil, err
		}
	}
	if csvWriter != nil {
		if err := csvWriter.Finish(); err != nil {
			return nil, err
		}
		result.CsvFileName = base + ".csv"
		e.sugar.Infof("Sending CSV file of size %d to %s", csvWriter.Size(), result.CsvFileName)
		if err := e.sink.PutFile(ctx, csvWriter.BufferReader(), result.CsvFileName, CsvContentType); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// RunAll runs the schedules in order and stops at the first failure.
func (e *Exporter) RunAll(ctx context.Context, schedules []Schedule) ([]Result, error) {
	results := make([]Result, 0, len(schedules))
	for _, schedule := range schedules {
		result, err := e.Run(ctx, schedule)
		if err != nil {
			return results, err
		}
		results = append(results, *result)
	}
	return results, nil
}

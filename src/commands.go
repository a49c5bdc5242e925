package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/kyohenrique/pokedex/src/audio"
	"github.com/kyohenrique/pokedex/src/config"
	"github.com/kyohenrique/pokedex/src/export"
	"github.com/kyohenrique/pokedex/src/pokeapi"
	"github.com/kyohenrique/pokedex/src/s3"
	"github.com/kyohenrique/pokedex/src/ui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Version is set via ldflags at build time.
var Version = "dev"

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "pokedex",
	Short: "Browse the Pokédex in your terminal",
	Long: `Pokedex lists Pokémon from PokeAPI page by page, searches them by name
with autocomplete, and opens a detail view with stats and cries.
It can also export slices of the Pokédex to Parquet and CSV.`,
	SilenceUsage: true,
	RunE:         runBrowse,
}

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Open the terminal Pokédex",
	RunE:  runBrowse,
}

var exportFlags struct {
	offset   int32
	pages    int32
	pageSize int32
	outDir   string
	bucket   string
	formats  []string
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a slice of the Pokédex to Parquet and CSV",
	RunE:  runExport,
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the pokedex configuration file",
}

var forceInit bool

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := os.Stat(cfgFile); err == nil && !forceInit {
			return fmt.Errorf("%s already exists, use --force to overwrite it", cfgFile)
		}
		if err := config.DefaultConfig().Save(cfgFile); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", cfgFile)
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of pokedex",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "pokedex %s\n", Version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultPath, "config file path")

	exportCmd.Flags().Int32Var(&exportFlags.offset, "offset", 0, "listing offset of the first Pokémon")
	exportCmd.Flags().Int32Var(&exportFlags.pages, "pages", 0, "number of pages to export (default from config)")
	exportCmd.Flags().Int32Var(&exportFlags.pageSize, "page-size", 0, "Pokémon per exported file (default from config)")
	exportCmd.Flags().StringVar(&exportFlags.outDir, "out", "", "local output directory (default from config)")
	exportCmd.Flags().StringVar(&exportFlags.bucket, "bucket", "", "S3 bucket to upload to instead of a local directory")
	exportCmd.Flags().StringSliceVar(&exportFlags.formats, "format", nil, "formats to write: parquet, csv")

	configInitCmd.Flags().BoolVar(&forceInit, "force", false, "overwrite an existing file")
	configCmd.AddCommand(configInitCmd)

	rootCmd.AddCommand(browseCmd, exportCmd, configCmd, versionCmd)
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

func newClient(cfg *config.Config, sugar *zap.SugaredLogger) *pokeapi.Client {
	return pokeapi.NewClient(sugar,
		pokeapi.WithBaseUrl(cfg.Api.BaseUrl),
		pokeapi.WithTimeout(cfg.Api.Timeout),
		pokeapi.WithRateLimit(cfg.Api.RateLimit, cfg.Api.Burst),
		pokeapi.WithUserAgent(cfg.Api.UserAgent),
	)
}

func runBrowse(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	// The terminal belongs to the UI, so the log goes to a file.
	sugar, err := newLogger(cfg.Log, cfg.Log.File)
	if err != nil {
		return err
	}
	defer syncLogger(sugar)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	client := newClient(cfg, sugar)
	player := audio.NewExecPlayer(cfg.Player.Command, cfg.Player.Volume, sugar)
	app := ui.NewApp(ctx, client, player, sugar, ui.Options{
		SpriteBaseUrl: cfg.Api.SpriteBaseUrl,
		PageSize:      cfg.Browse.PageSize,
		NamesLimit:    cfg.Browse.NamesLimit,
	})
	defer app.Close()

	sugar.Infof("Starting pokedex %s against %s", Version, client.BaseUrl())
	program := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("running terminal UI: %w", err)
	}
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyExportFlags(&cfg.Export)
	if err := cfg.Validate(); err != nil {
		return err
	}
	sugar, err := newLogger(cfg.Log, "")
	if err != nil {
		return err
	}
	defer syncLogger(sugar)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	sink, err := newSink(ctx, cfg.Export)
	if err != nil {
		return err
	}
	exporter := newExporter(cfg, sink, sugar)
	schedules, err := export.ScheduleTasks(sugar, export.ScheduleRequest{
		PageSize:    cfg.Export.PageSize,
		StartOffset: exportFlags.offset,
		PageCount:   cfg.Export.PageCount,
	})
	if err != nil {
		return err
	}
	results, err := exporter.RunAll(ctx, schedules)
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	if encodeErr := encoder.Encode(results); encodeErr != nil {
		sugar.Errorf("Failed to print export results: %s", encodeErr)
	}
	return err
}

func applyExportFlags(cfg *config.ExportConfig) {
	if exportFlags.pages > 0 {
		cfg.PageCount = exportFlags.pages
	}
	if exportFlags.pageSize > 0 {
		cfg.PageSize = exportFlags.pageSize
	}
	if exportFlags.outDir != "" {
		cfg.OutDir = exportFlags.outDir
	}
	if exportFlags.bucket != "" {
		cfg.Bucket = exportFlags.bucket
	}
	if len(exportFlags.formats) > 0 {
		cfg.Formats = exportFlags.formats
	}
}

// newSink uploads to S3 when a bucket is configured and writes to the output directory otherwise.
func newSink(ctx context.Context, cfg config.ExportConfig) (export.Sink, error) {
	if cfg.Bucket == "" {
		return export.DirSink{Dir: cfg.OutDir}, nil
	}
	var opts []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Region))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}
	return s3.NewClient(awsCfg, cfg.Bucket), nil
}

func newExporter(cfg *config.Config, sink export.Sink, sugar *zap.SugaredLogger) *export.Exporter {
	return export.NewExporter(newClient(cfg, sugar), sink, sugar,
		export.WithPrefix(cfg.Export.Prefix),
		export.WithFormats(cfg.Export.HasFormat(config.FormatParquet), cfg.Export.HasFormat(config.FormatCsv)),
	)
}

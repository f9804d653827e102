// flags.go - Command-line flag definitions and configuration
package main

import (
	"fmt"
	"io"

	"github.com/spf13/pflag"

	"github.com/lgbarn/chessstego-go/internal/config"
)

// options holds the parsed command-line flags.
type options struct {
	format     string
	compressor string
	configFile string
	logLevel   string
	lineLength uint
	batch      bool
	workers    int
	version    bool
	help       bool
}

// newFlagSet defines every flag on a fresh set bound to opts.
func newFlagSet(opts *options) *pflag.FlagSet {
	fs := pflag.NewFlagSet("chessstego", pflag.ContinueOnError)
	fs.StringVar(&opts.format, "format", string(config.FEN), "carrier format: fen or pgn")
	fs.StringVar(&opts.compressor, "compressor", "zlib", "PGN payload compressor: zlib, zstd, lz4, or auto (decode only)")
	fs.StringVar(&opts.configFile, "config", "", "YAML configuration file")
	fs.StringVar(&opts.logLevel, "log-level", "warn", "log level: debug, info, warn, error")
	fs.UintVar(&opts.lineLength, "line-length", 80, "maximum PGN movetext line length")
	fs.BoolVar(&opts.batch, "batch", false, "treat each input line (or each PGN game when decoding) as its own job")
	fs.IntVar(&opts.workers, "workers", 0, "number of batch workers, 0 for one per CPU (default: number of CPUs)")
	fs.BoolVar(&opts.version, "version", false, "print the version and exit")
	fs.BoolVarP(&opts.help, "help", "h", false, "show help")
	return fs
}

// loadConfig builds the configuration from the defaults, the optional
// config file and then any flag given on the command line.
func loadConfig(fs *pflag.FlagSet, opts *options) (*config.Config, error) {
	cfg := config.NewConfig()
	if opts.configFile != "" {
		loaded, err := config.LoadFile(opts.configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	applyFlags(fs, opts, cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.Format, _ = config.ParseFormat(string(cfg.Format))
	return cfg, nil
}

// applyFlags copies the flags that were set explicitly onto cfg, so they
// override the config file.
func applyFlags(fs *pflag.FlagSet, opts *options, cfg *config.Config) {
	b := config.BuilderFrom(cfg)
	if fs.Changed("format") {
		b.WithFormat(config.Format(opts.format))
	}
	if fs.Changed("compressor") {
		b.WithCompressor(opts.compressor)
	}
	if fs.Changed("log-level") {
		b.WithLogLevel(opts.logLevel)
	}
	if fs.Changed("line-length") {
		b.WithMaxLineLength(opts.lineLength)
	}
	if fs.Changed("batch") {
		b.WithBatch(opts.batch, cfg.Batch.Workers)
	}
	if fs.Changed("workers") {
		b.WithWorkers(opts.workers)
	}
}

func usage(w io.Writer, fs *pflag.FlagSet) {
	fmt.Fprintf(w, `chessstego hides text in chess positions and games.

Usage:
  chessstego [flags] encode [text]
  chessstego [flags] decode [artifact]

Without a positional argument the input is read from stdin, with
surrounding whitespace removed.

Examples:
  # Hide a short message in a FEN position
  chessstego encode "meet at dawn"

  # Hide any UTF-8 text in a game
  chessstego --format pgn encode "Treffpunkt: Brücke, 6 Uhr" > game.pgn
  chessstego --format pgn decode < game.pgn

  # Decode every game of a file in parallel
  chessstego --format pgn --batch decode < games.pgn

Flags:
`)
	fs.SetOutput(w)
	fs.PrintDefaults()
}

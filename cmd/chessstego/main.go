// chessstego hides text in chess artifacts: a single FEN position or the
// moves of a PGN game.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/lgbarn/chessstego-go/internal/compress"
	"github.com/lgbarn/chessstego-go/internal/config"
	"github.com/lgbarn/chessstego-go/internal/fenstego"
	"github.com/lgbarn/chessstego-go/internal/logx"
	"github.com/lgbarn/chessstego-go/internal/parser"
	"github.com/lgbarn/chessstego-go/internal/pgnstego"
	"github.com/lgbarn/chessstego-go/internal/worker"
)

const programVersion = "0.1.0"

// Exit codes.
const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

const (
	cmdEncode = "encode"
	cmdDecode = "decode"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes one command line and returns the process exit code.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var opts options
	fs := newFlagSet(&opts)
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		usage(stderr, fs)
		return exitUsage
	}

	if opts.help {
		usage(stdout, fs)
		return exitOK
	}
	if opts.version {
		fmt.Fprintf(stdout, "chessstego version %s\n", programVersion)
		return exitOK
	}

	positional := fs.Args()
	if len(positional) == 0 {
		fmt.Fprintln(stderr, "Error: missing command (encode or decode)")
		usage(stderr, fs)
		return exitUsage
	}
	command := positional[0]
	if command != cmdEncode && command != cmdDecode {
		fmt.Fprintf(stderr, "Error: unknown command %q (want encode or decode)\n", command)
		usage(stderr, fs)
		return exitUsage
	}

	cfg, err := loadConfig(fs, &opts)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}
	cfg.SetOutput(stdout)
	cfg.SetLogFile(stderr)

	level, _ := cfg.Level()
	a := newApp(cfg, logx.NewLogger(cfg.LogFile, level))

	input, err := readInput(positional[1:], stdin)
	if err != nil {
		fmt.Fprintf(stderr, "Error: reading input: %v\n", err)
		return exitFailure
	}

	if cfg.Batch.Enabled {
		return a.runBatch(command, input)
	}

	out, err := a.process(command, worker.Job{Input: input})
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitFailure
	}
	fmt.Fprintln(cfg.OutputFile, out)
	return exitOK
}

// readInput returns the positional text, or all of stdin when there is
// none, with surrounding whitespace removed.
func readInput(args []string, stdin io.Reader) (string, error) {
	if len(args) > 0 {
		return strings.TrimSpace(strings.Join(args, " ")), nil
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// app holds the codecs configured for one run.
type app struct {
	cfg *config.Config
	log zerolog.Logger
	fen *fenstego.Codec
	pgn *pgnstego.Codec
}

func newApp(cfg *config.Config, log zerolog.Logger) *app {
	pgnOpts := []pgnstego.Option{
		pgnstego.WithConfig(cfg),
		pgnstego.WithLogger(log),
	}
	if strings.EqualFold(cfg.Compressor, compress.Auto) {
		pgnOpts = append(pgnOpts, pgnstego.WithAutoDetect())
	} else if c, err := compress.ByName(cfg.Compressor); err == nil {
		pgnOpts = append(pgnOpts, pgnstego.WithCompressor(c))
	}

	return &app{
		cfg: cfg,
		log: log,
		fen: fenstego.New(fenstego.WithLogger(log)),
		pgn: pgnstego.New(pgnOpts...),
	}
}

// process runs one encode or decode call.
func (a *app) process(command string, job worker.Job) (string, error) {
	switch {
	case a.cfg.Format == config.FEN && command == cmdEncode:
		return a.fen.Encode(job.Input)
	case a.cfg.Format == config.FEN:
		return a.fen.Decode(job.Input)
	case command == cmdEncode:
		return a.pgn.Encode(job.Input)
	case job.Game != nil:
		return a.pgn.DecodeGame(job.Game)
	default:
		return a.pgn.Decode(job.Input)
	}
}

// runBatch splits the input into jobs, runs them on the worker pool and
// prints the results in input order. A failed job is reported on stderr
// and does not stop the others.
func (a *app) runBatch(command, input string) int {
	jobs, err := a.batchJobs(command, input)
	if err != nil {
		fmt.Fprintf(a.cfg.LogFile, "Error: %v\n", err)
		return exitFailure
	}
	a.log.Debug().Int("jobs", len(jobs)).Int("workers", a.cfg.Batch.Workers).Msg("batch start")

	results := worker.Run(jobs, a.cfg.Batch.Workers, a.cfg.Batch.BufferSize, func(job worker.Job) worker.Result {
		out, err := a.process(command, job)
		return worker.Result{Output: out, Err: err}
	})

	code := exitOK
	separator := "\n"
	if a.cfg.Format == config.PGN && command == cmdEncode {
		separator = "\n\n"
	}
	for i, r := range results {
		if r.Err != nil {
			fmt.Fprintf(a.cfg.LogFile, "Error: input %d: %v\n", i+1, r.Err)
			code = exitFailure
			continue
		}
		fmt.Fprint(a.cfg.OutputFile, r.Output, separator)
	}
	return code
}

// batchJobs splits input into jobs: one per PGN game when decoding PGN,
// otherwise one per non-empty line.
func (a *app) batchJobs(command, input string) ([]worker.Job, error) {
	if a.cfg.Format == config.PGN && command == cmdDecode {
		games, err := parser.NewParser(strings.NewReader(input), parser.WithLogger(a.log)).ParseAllGames()
		if err != nil {
			return nil, err
		}
		jobs := make([]worker.Job, len(games))
		for i, g := range games {
			jobs[i] = worker.Job{Game: g}
		}
		return jobs, nil
	}

	var jobs []worker.Job
	scanner := bufio.NewScanner(strings.NewReader(input))
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			jobs = append(jobs, worker.Job{Input: line})
		}
	}
	return jobs, scanner.Err()
}

package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kingpin"
	"github.com/charmbracelet/log"

	"github.com/Lakshanj98/Fasta-Analyzer/internal/cleanse"
	"github.com/Lakshanj98/Fasta-Analyzer/internal/composition"
	"github.com/Lakshanj98/Fasta-Analyzer/internal/config"
	"github.com/Lakshanj98/Fasta-Analyzer/internal/logging"
	"github.com/Lakshanj98/Fasta-Analyzer/internal/molecule"
	"github.com/Lakshanj98/Fasta-Analyzer/internal/ops"
)

// version is the program version. It can be overridden at build time with -ldflags "-X main.version=..."
var version = "0.1.0"

const (
	exitOK               = 0
	exitError            = 1
	exitInvalidSelection = 2
)

// command is one subcommand and the flags that shape its request.
type command struct {
	op       ops.Operation
	files    *[]string
	batch    *bool
	kind     *string
	molecule *string
	hint     *string
}

func (c *command) request() (ops.Request, error) {
	req := ops.Request{Op: c.op, Kind: composition.AT, Molecule: molecule.DNA}
	if c.batch != nil && *c.batch {
		switch c.op {
		case ops.Length:
			req.Op = ops.LengthBatch
		case ops.Content:
			req.Op = ops.ContentBatch
		}
	}
	var err error
	if c.kind != nil {
		if req.Kind, err = composition.ParseKind(*c.kind); err != nil {
			return req, err
		}
	}
	if c.molecule != nil {
		if req.Molecule, err = molecule.ParseType(*c.molecule); err != nil {
			return req, err
		}
	}
	if c.hint != nil {
		if req.Hint, err = cleanse.ParseHint(*c.hint); err != nil {
			return req, err
		}
	}
	return req, nil
}

type cli struct {
	app      *kingpin.Application
	config   *string
	out      *string
	verbose  *bool
	commands map[string]*command
}

func newCLI() *cli {
	app := kingpin.New("fastaproc", "Split, merge, count, cleanse and annotate FASTA files.")
	app.Version(version)
	c := &cli{
		app:      app,
		config:   app.Flag("config", "path to a config file (JSON, YAML or TOML)").Short('c').String(),
		out:      app.Flag("out", "output directory (overrides config)").Short('o').String(),
		verbose:  app.Flag("verbose", "enable verbose (debug) logging").Short('v').Bool(),
		commands: make(map[string]*command),
	}

	add := func(op ops.Operation, name string) (*kingpin.CmdClause, *command) {
		clause := app.Command(name, op.Description())
		cmd := &command{op: op}
		c.commands[clause.FullCommand()] = cmd
		return clause, cmd
	}

	for _, op := range []ops.Operation{ops.Split, ops.Count, ops.ATContent, ops.GCContent} {
		clause, cmd := add(op, string(op))
		cmd.files = clause.Arg("file", "input .fasta file").Required().Strings()
	}

	clause, cmd := add(ops.Merge, string(ops.Merge))
	cmd.files = clause.Arg("files", "two or more input .fasta files").Required().Strings()

	clause, cmd = add(ops.Cleanse, string(ops.Cleanse))
	cmd.hint = clause.Flag("type", "sequence type: nucleotide keeps ATGCU, protein drops X").Short('t').Default("nucleotide").Enum("nucleotide", "protein")
	cmd.files = clause.Arg("file", "input .fasta file").Required().Strings()

	clause, cmd = add(ops.Length, string(ops.Length))
	cmd.batch = clause.Flag("batch", "write all annotated records to one file named after the input").Bool()
	cmd.files = clause.Arg("file", "input .fasta file").Required().Strings()

	clause, cmd = add(ops.Content, string(ops.Content))
	cmd.kind = clause.Flag("kind", "content kind").Short('k').Default("AT").Enum("AT", "GC", "at", "gc")
	cmd.molecule = clause.Flag("molecule", "declared molecule type").Short('m').Default("DNA").Enum("DNA", "RNA", "dna", "rna")
	cmd.batch = clause.Flag("batch", "write all annotated records to one file named after the input").Bool()
	cmd.files = clause.Arg("file", "input .fasta file").Required().Strings()

	return c
}

// run parses args, executes one operation and returns the exit code.
func run(args []string, stdout, stderr io.Writer) int {
	c := newCLI()
	c.app.Writer(stdout).ErrorWriter(stderr).UsageWriter(stderr)
	exited := false
	c.app.Terminate(func(int) { exited = true })
	name, err := c.app.Parse(args)
	if exited {
		return exitOK
	}
	if err != nil {
		fmt.Fprintf(stderr, "fastaproc: %v\n", err)
		return exitError
	}

	cfg, err := config.LoadConfig(*c.config)
	if err != nil {
		fmt.Fprintf(stderr, "fastaproc: load config: %v\n", err)
		return exitError
	}
	// flags override config when provided
	if *c.out != "" {
		cfg.OutputDir = *c.out
	}

	logger, closeLog := logging.New(logging.Options{Out: stderr, LogFile: cfg.LogFile, Level: cfg.LogLevel, Verbose: *c.verbose})
	defer func() { _ = closeLog() }()
	logger.Debug("loaded config", "output_dir", cfg.OutputDir, "log_file", cfg.LogFile, "log_level", cfg.LogLevel)

	cmd := c.commands[name]
	req, err := cmd.request()
	if err != nil {
		logger.Error("invalid arguments", "err", err)
		return exitError
	}
	logger.Debug("starting operation", "request", req.String(), "files", *cmd.files)

	o := &ops.Orchestrator{
		Selector:  ops.StaticSelector(*cmd.files),
		Notifier:  ops.LogNotifier{Logger: logger},
		OutputDir: cfg.OutputDir,
		Logger:    logger,
	}
	return report(o, req, stdout, logger)
}

func report(o *ops.Orchestrator, req ops.Request, stdout io.Writer, logger *log.Logger) int {
	res, err := o.Run(req)
	if err != nil {
		if errors.Is(err, ops.ErrInvalidSelection) {
			logger.Warn("operation aborted: invalid file selection", "err", err)
			return exitInvalidSelection
		}
		return exitError
	}
	if res.Label != "" {
		fmt.Fprintln(stdout, res.Label)
	}
	for _, p := range res.Outputs {
		logger.Debug("wrote output", "path", p)
	}
	return exitOK
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

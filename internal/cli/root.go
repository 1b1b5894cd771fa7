// Package cli implements the shelf command-line interface: one subcommand
// per catalog operation plus an interactive menu loop that keeps a single
// catalog alive for the whole session.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/shelf/internal/catalog"
	"github.com/mesh-intelligence/shelf/internal/seed"
	"github.com/mesh-intelligence/shelf/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// errUsage marks malformed command-line input.
var errUsage = errors.New("usage")

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	seedFile  string
	logLevel  string
	jsonMode  bool
}

// app is the state shared by one invocation's command tree.
type app struct {
	flags  rootFlags
	cfg    types.Config
	logger *slog.Logger
	cat    *catalog.Catalog
	errOut io.Writer
}

// NewRootCmd creates the top-level "shelf" command with global flags and all
// subcommands registered. Each call returns an independent command tree.
func NewRootCmd() *cobra.Command {
	a := &app{errOut: os.Stderr}

	root := &cobra.Command{
		Use:   "shelf",
		Short: "An in-memory library catalog",
		Long: `Shelf manages books, authors, customers, loans, and waitlists in memory.

The catalog lives for one process. Use --seed to replay a JSONL file of
operations at startup, or "shelf shell" for an interactive session.`,
		Version:           Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return fmt.Errorf("%w: %v", errUsage, err)
	})

	root.PersistentFlags().StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (default: $XDG_CONFIG_HOME/shelf)")
	root.PersistentFlags().StringVar(&a.flags.seedFile, "seed", "", "JSONL file of catalog operations to replay at startup")
	root.PersistentFlags().StringVar(&a.flags.logLevel, "log-level", "", "log level: debug, info, warn, error")
	root.PersistentFlags().BoolVar(&a.flags.jsonMode, "json", false, "output in JSON format")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd(a))
	root.AddCommand(newBookCmd(a))
	root.AddCommand(newCustomerCmd(a))
	root.AddCommand(newBorrowCmd(a))
	root.AddCommand(newReturnCmd(a))
	root.AddCommand(newWaitlistCmd(a))
	root.AddCommand(newLateCmd(a))
	root.AddCommand(newSearchCmd(a))
	root.AddCommand(newAvailableCmd(a))
	root.AddCommand(newRecommendCmd(a))
	root.AddCommand(newAuthorsCmd(a))
	root.AddCommand(newGenresCmd(a))
	root.AddCommand(newExportCmd(a))
	root.AddCommand(newShellCmd(a))

	return root
}

// Execute runs the root command against the process arguments and exits
// with the appropriate code.
func Execute() {
	os.Exit(Run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// Run executes the command line args with the given streams and returns the
// process exit code.
func Run(args []string, in io.Reader, out, errOut io.Writer) int {
	root := NewRootCmd()
	root.SetArgs(args)
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)

	err := root.Execute()
	if err == nil {
		return exitSuccess
	}
	fmt.Fprintln(errOut, "shelf:", err)
	return exitCode(err)
}

// exitCode maps an error to the process exit code.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitSuccess
	case types.IsUserError(err), errors.Is(err, errUsage):
		return exitUserError
	default:
		return exitSysError
	}
}

// setup loads configuration, builds the logger and the catalog, and replays
// the seed file if one is configured.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	// Skip setup for version command
	if cmd.Name() == "version" {
		return nil
	}
	a.errOut = cmd.ErrOrStderr()

	cfg, err := loadConfig(a.flags)
	if err != nil {
		return err
	}
	a.cfg = cfg

	logger, err := newLogger(a.errOut, cfg.LogLevel)
	if err != nil {
		return err
	}
	a.logger = logger
	a.cat = catalog.New(catalog.WithLogger(logger))

	if cfg.SeedFile == "" {
		return nil
	}
	rep, err := seed.LoadFile(cfg.SeedFile, a.cat)
	if rep.Applied == 0 && rep.Failed == 0 && err != nil {
		return fmt.Errorf("load seed: %w", err)
	}
	if err != nil {
		logger.Warn("seed replay had failures", "file", cfg.SeedFile, "error", err)
	}
	logger.Info("seed replayed", "file", cfg.SeedFile, "applied", rep.Applied, "skipped", rep.Skipped, "failed", rep.Failed)
	return nil
}

// newLogger builds a text slog logger at the named level.
func newLogger(w io.Writer, level string) (*slog.Logger, error) {
	var lvl slog.Level
	if level == "" {
		level = types.DefaultLogLevel
	}
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("%w: %q", types.ErrLogLevelUnknown, level)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}

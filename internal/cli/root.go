// Package cli implements the tcm command-line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/tcm/internal/logging"
	"github.com/mesh-intelligence/tcm/internal/paths"
	"github.com/mesh-intelligence/tcm/internal/sqlite"
	"github.com/mesh-intelligence/tcm/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	initDB    bool
	configDir string
	dataDir   string
	jsonMode  bool
	verbose   bool
}

// app carries the state of one invocation: parsed global flags, the logger
// and the attached store.
type app struct {
	flags    rootFlags
	logger   *slog.Logger
	store    types.Store
	newStore func(logger *slog.Logger) types.Store

	// initDone is set once --init-db has run; data commands then do nothing.
	initDone bool
}

func newApp() *app {
	return &app{
		logger: logging.Discard(),
		newStore: func(logger *slog.Logger) types.Store {
			return sqlite.NewBackend(sqlite.WithLogger(logger))
		},
	}
}

// exitError carries a message for stderr and the process exit code.
type exitError struct {
	code int
	msg  string
}

func (e *exitError) Error() string { return e.msg }

func userError(format string, args ...any) error {
	return &exitError{code: exitUserError, msg: fmt.Sprintf(format, args...)}
}

func sysError(format string, args ...any) error {
	return &exitError{code: exitSysError, msg: fmt.Sprintf(format, args...)}
}

// newRootCmd creates the top-level "tcm" command with global flags and all
// subcommands registered.
func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "tcm",
		Short: "Simple test case management tool",
		Long: `tcm keeps manually tracked test cases in a local SQLite database.
Run "tcm --init-db" once to create the database, then add, list, update,
view and delete test cases.`,
		// Unknown commands fall through to RunE and print help.
		Args:              cobra.ArbitraryArgs,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.initDone {
				return nil
			}
			return cmd.Help()
		},
	}
	root.CompletionOptions.DisableDefaultCmd = true

	pf := root.PersistentFlags()
	pf.BoolVar(&a.flags.initDB, "init-db", false, "initialize the database (create table if not exists) and exit")
	pf.StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (default: install directory)")
	pf.StringVar(&a.flags.dataDir, "data-dir", "", "data directory (default: <install directory>/data)")
	pf.BoolVar(&a.flags.jsonMode, "json", false, "output in JSON format")
	pf.BoolVarP(&a.flags.verbose, "verbose", "v", false, "enable debug logging on stderr")

	root.SetHelpCommand(newHelpCmd(a))
	root.AddCommand(newVersionCmd(a))
	root.AddCommand(newAddCmd(a))
	root.AddCommand(newListCmd(a))
	root.AddCommand(newUpdateCmd(a))
	root.AddCommand(newDeleteCmd(a))
	root.AddCommand(newViewCmd(a))

	return root
}

// Run executes tcm with args and returns the process exit code.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	return run(ctx, newApp(), args, stdout, stderr)
}

func run(ctx context.Context, a *app, args []string, stdout, stderr io.Writer) int {
	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	// PersistentPostRunE is skipped when a command fails.
	defer a.close()

	cmd, err := root.ExecuteContextC(ctx)
	if err == nil {
		return exitSuccess
	}

	var ee *exitError
	if errors.As(err, &ee) {
		if ee.msg != "" {
			fmt.Fprintln(stderr, ee.msg)
		}
		return ee.code
	}

	// Flag and argument errors from cobra are usage errors.
	fmt.Fprintln(stderr, "Error:", err)
	fmt.Fprint(stderr, cmd.UsageString())
	return exitUserError
}

// newHelpCmd replaces cobra's default help command so that it honours
// --init-db like every other subcommand.
func newHelpCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "help [command]",
		Short: "Help about any command",
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.initDone {
				return nil
			}
			target, _, err := cmd.Root().Find(args)
			if target == nil || err != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "Unknown help topic %q\n", args)
				return cmd.Root().Usage()
			}
			return target.Help()
		},
	}
}

// setup loads configuration, builds the logger and attaches the store.
// With --init-db it also initializes the database, after which no other
// command does anything.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	if !a.flags.initDB && (cmd.Name() == "version" || cmd.Name() == "help") {
		return nil
	}

	configDir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return sysError("resolve config dir: %s", err)
	}
	cfg, err := loadConfig(configDir)
	if err != nil {
		return sysError("load config: %s", err)
	}

	logger, err := logging.New(logging.Config{
		Output:  cmd.ErrOrStderr(),
		Format:  cfg.GetString(cfgKeyLogFormat),
		Verbose: a.flags.verbose,
	})
	if err != nil {
		return sysError("load config: %s", err)
	}
	a.logger = logger

	dataDir, err := paths.ResolveDataDir(a.flags.dataDir, cfg.GetString(cfgKeyDataDir))
	if err != nil {
		return sysError("resolve data dir: %s", err)
	}

	store := a.newStore(logger)
	err = store.Attach(types.Config{
		Backend: cfg.GetString(cfgKeyBackend),
		DataDir: dataDir,
	})
	if err != nil {
		return sysError("attach store: %s", err)
	}
	a.store = store
	logger.Debug("store attached", "config_dir", configDir, "path", store.Path())

	if a.flags.initDB {
		if err := a.initDB(cmd, configDir, dataDir); err != nil {
			return err
		}
		a.initDone = true
	}
	return nil
}

// close detaches the store. Safe to call more than once.
func (a *app) close() error {
	if a.store == nil {
		return nil
	}
	if err := a.store.Detach(); err != nil {
		return sysError("detach store: %s", err)
	}
	return nil
}

// storeCommand wraps a data command's RunE with the --init-db short-circuit
// and the schema pre-flight check.
func (a *app) storeCommand(fn func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if a.initDone {
			return nil
		}
		ok, err := a.store.Initialized(cmd.Context())
		if err != nil {
			return sysError("Error accessing database: %s\nPlease ensure the database is initialized using --init-db", err)
		}
		if !ok {
			return userError(msgNotInitialized)
		}
		return fn(cmd, args)
	}
}

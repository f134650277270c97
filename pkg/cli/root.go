package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/getmockd/apputil/pkg/cli/internal/output"
	"github.com/getmockd/apputil/pkg/cliconfig"
	"github.com/getmockd/apputil/pkg/events"
	"github.com/getmockd/apputil/pkg/logging"
	"github.com/getmockd/apputil/pkg/storage"
)

var (
	// Version is injected during build
	Version = "dev"
	// Commit is injected during build
	Commit = "none"
	// BuildDate is injected during build
	BuildDate = "unknown"
)

// globalFlags are the persistent flags shared by every command.
type globalFlags struct {
	json       bool
	configFile string
	logLevel   string
	logFormat  string
	logFile    string
	storage    string
	dataDir    string
}

// app holds the state of one CLI invocation.
type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	flags globalFlags
	cfg   *cliconfig.CLIConfig
	log   *slog.Logger
	bus   *events.Bus

	closers []io.Closer
}

// Execute runs the CLI with the process arguments and exits with its status.
// This is called by main.main().
func Execute() {
	os.Exit(Run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// Run executes one command line and returns the process exit code. Errors
// are printed to stderr.
func Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	a := &app{
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
		log:    logging.Nop(),
		bus:    events.NewBus(),
	}
	defer a.close()

	root := a.newRootCmd()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func (a *app) newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "apputil",
		Short: "Template, property path and helper utilities",
		Long: `apputil renders {{ variable }} templates against JSON or YAML context
documents, reads and writes dot-separated property paths, and bundles small
helpers for ids, phone numbers, durations and stored API credentials.

Configuration can be provided via flags, APPUTIL_* environment variables,
.apputilrc.yaml in the working directory or ~/.config/apputil/config.yaml.`,
		SilenceUsage:      true,
		SilenceErrors:     true, // Run prints errors
		PersistentPreRunE: a.setup,
	}

	pf := root.PersistentFlags()
	pf.BoolVar(&a.flags.json, "json", false, "Output command results in JSON format")
	pf.StringVar(&a.flags.configFile, "config", "", "Config file (default: .apputilrc.yaml, then ~/.config/apputil/config.yaml)")
	pf.StringVar(&a.flags.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	pf.StringVar(&a.flags.logFormat, "log-format", "", "Log format (text, json)")
	pf.StringVar(&a.flags.logFile, "log-file", "", "Also write JSON logs to this file")
	pf.StringVar(&a.flags.storage, "storage", "", "Storage backend (memory, file)")
	pf.StringVar(&a.flags.dataDir, "data-dir", "", "Directory for the file storage backend")

	root.AddCommand(
		a.newVarsCmd(),
		a.newRenderCmd(),
		a.newGetCmd(),
		a.newSetCmd(),
		a.newUUIDCmd(),
		a.newPhoneCmd(),
		a.newDurationCmd(),
		a.newCredentialsCmd(),
		a.newConfigCmd(),
		a.newVersionCmd(),
	)
	return root
}

// setup resolves the configuration and builds the logger before any
// command runs.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := cliconfig.LoadAll(cliconfig.LoadOptions{ConfigFile: a.flags.configFile})
	if err != nil {
		return err
	}

	flagCfg := &cliconfig.CLIConfig{SetFields: map[string]bool{}}
	flags := cmd.Flags()
	if flags.Changed("storage") {
		flagCfg.Storage = a.flags.storage
	}
	if flags.Changed("data-dir") {
		flagCfg.DataDir = a.flags.dataDir
	}
	if flags.Changed("log-level") {
		flagCfg.LogLevel = a.flags.logLevel
	}
	if flags.Changed("log-format") {
		flagCfg.LogFormat = a.flags.logFormat
	}
	if flags.Changed("log-file") {
		flagCfg.LogFile = a.flags.logFile
	}
	if flags.Changed("json") {
		flagCfg.JSON = a.flags.json
		flagCfg.SetFields["json"] = true
	}
	cliconfig.MergeConfig(cfg, flagCfg, cliconfig.SourceFlag)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	a.cfg = cfg

	logCfg := logging.Config{
		Level:   logging.ParseLevel(cfg.LogLevel),
		Format:  logging.ParseFormat(cfg.LogFormat),
		Output:  a.stderr,
		Service: "apputil",
	}
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		a.closers = append(a.closers, f)
		logCfg.Mirror = f
	}
	a.log = logging.New(logCfg).With("command", cmd.Name())

	a.bus.Subscribe(events.Wildcard, func(_ context.Context, e events.Event) {
		a.log.Info("event", "name", e.Name)
	})

	a.log.Debug("configuration loaded", "storage", cfg.Storage, "dataDir", cfg.DataDir, "configFile", cfg.ConfigFile)
	return nil
}

// jsonOutput reports whether results should be printed as JSON.
func (a *app) jsonOutput() bool {
	if a.cfg != nil {
		return a.cfg.JSON
	}
	return a.flags.json
}

// openStore opens and initializes the configured store. It is closed when
// the command finishes.
func (a *app) openStore(ctx context.Context) (storage.Store, error) {
	store, err := storage.Open(storage.Config{
		Backend: storage.Backend(a.cfg.Storage),
		DataDir: a.cfg.DataDir,
		Logger:  a.log,
	})
	if err != nil {
		return nil, err
	}
	if err := store.Init(ctx); err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}
	a.closers = append(a.closers, store)
	return store, nil
}

func (a *app) close() {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i].Close())
	}
	if err := errors.Join(errs...); err != nil {
		output.Warn(a.stderr, "%v", err)
	}
}

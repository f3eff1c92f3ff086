// Package cli implements the flexschema command-line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/flexphp/flex-schema/internal/paths"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// Output modes.
const (
	outputText = "text"
	outputJSON = "json"
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	logLevel  string
	jsonMode  bool
}

// app is the state shared by the commands of one invocation.
type app struct {
	flags  rootFlags
	config *viper.Viper
	logger *slog.Logger
	output string
}

// exitError carries the process exit code for a failed command.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }

func (e *exitError) Unwrap() error { return e.err }

func userError(err error) error { return &exitError{code: exitUserError, err: err} }

func systemError(err error) error { return &exitError{code: exitSysError, err: err} }

// exitCode maps a command error to a process exit code. Errors without an
// explicit code come from cobra itself (unknown flags, bad arguments).
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return exitUserError
}

// NewRootCmd creates the top-level "flexschema" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "flexschema",
		Short: "Validate and inspect FlexPHP entity schemas",
		Long: "flexschema loads schema documents describing an entity and its attributes,\n" +
			"validates every attribute constraint and reports the resulting model.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (default: $XDG_CONFIG_HOME/flexschema)")
	root.PersistentFlags().StringVar(&a.flags.logLevel, "log-level", "", "log level: debug, info, warn, error")
	root.PersistentFlags().BoolVar(&a.flags.jsonMode, "json", false, "output in JSON format")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newValidateCmd(a))
	root.AddCommand(newInspectCmd(a))
	root.AddCommand(newJSONSchemaCmd())

	return root
}

// setup resolves the config directory, loads config.yaml and installs the logger.
func (a *app) setup(cmd *cobra.Command) error {
	dir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return systemError(fmt.Errorf("resolve config dir: %w", err))
	}
	v, err := loadConfig(dir)
	if err != nil {
		return systemError(err)
	}
	if a.flags.logLevel != "" {
		v.Set(cfgKeyLogLevel, a.flags.logLevel)
	}
	a.config = v

	level, err := parseLevel(v.GetString(cfgKeyLogLevel))
	if err != nil {
		return userError(err)
	}
	a.logger = newLogger(cmd.ErrOrStderr(), level)

	a.output = v.GetString(cfgKeyOutput)
	if a.flags.jsonMode {
		a.output = outputJSON
	}
	if a.output != outputText && a.output != outputJSON {
		return userError(fmt.Errorf("invalid output %q, allowed values are: %s, %s", a.output, outputText, outputJSON))
	}

	a.logger.Debug("configuration loaded", "dir", dir, "file", v.ConfigFileUsed(), "output", a.output)
	return nil
}

func (a *app) jsonOutput() bool { return a.output == outputJSON }

// run executes the command tree with the given arguments and returns the exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root := NewRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	err := root.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %s\n", err)
	}
	return exitCode(err)
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// Package cli implements the roster command-line interface.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/roster/internal/rules"
	"github.com/mesh-intelligence/roster/pkg/backend"
	"github.com/mesh-intelligence/roster/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values for one command tree.
type rootFlags struct {
	configDir string
	backend   string
	jsonMode  bool
}

// app is one process's state. The store it opens lives until Run returns,
// so every command of a shell session sees the same rows.
type app struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer

	cupboard types.Cupboard
	svc      *rules.Service
	logger   *slog.Logger
	logOut   io.WriteCloser
}

// sysError marks a failure of the tool rather than of the request.
type sysError struct {
	err error
}

func (e *sysError) Error() string { return e.err.Error() }
func (e *sysError) Unwrap() error { return e.err }

func sysErr(format string, args ...any) error {
	return &sysError{err: fmt.Errorf(format, args...)}
}

// serviceErr classifies an error returned by the rules service.
func serviceErr(err error) error {
	if err == nil {
		return nil
	}
	if rules.IsFault(err) {
		return &sysError{err: err}
	}
	return err
}

// exitCode maps a command error to the process exit code.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var sys *sysError
	if errors.As(err, &sys) {
		return exitSysError
	}
	return exitUserError
}

// newRootCmd creates the top-level "roster" command bound to a, with
// defaults for the global flags.
func newRootCmd(a *app, defaults rootFlags) *cobra.Command {
	flags := defaults
	root := &cobra.Command{
		Use:   "roster",
		Short: "An in-memory store of users, profiles, posts and member types",
		Long: "Roster keeps users, their profiles and posts, and the subscriptions\n" +
			"between users consistent. Rows live in memory for the life of the process;\n" +
			"use the shell command to run several commands against one store.",
		// Do not print usage on errors returned by subcommands.
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !needsStore(cmd) {
				return nil
			}
			return a.open(cmd, flags)
		},
	}
	root.SetIn(a.in)
	root.SetOut(a.out)
	root.SetErr(a.errOut)

	root.PersistentFlags().StringVar(&flags.configDir, "config-dir", defaults.configDir, "configuration directory (default: $ROSTER_CONFIG_DIR or the platform config dir)")
	root.PersistentFlags().StringVar(&flags.backend, "backend", defaults.backend, "storage backend: memory or sqlite (overrides config)")
	root.PersistentFlags().BoolVar(&flags.jsonMode, "json", defaults.jsonMode, "output in JSON format")

	out := &printer{w: a.out, json: &flags.jsonMode}

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd(&flags))
	root.AddCommand(newUserCmd(a, out))
	root.AddCommand(newProfileCmd(a, out))
	root.AddCommand(newPostCmd(a, out))
	root.AddCommand(newMemberTypeCmd(a, out))
	root.AddCommand(newShellCmd(a, &flags))

	return root
}

// needsStore reports whether cmd talks to the store.
func needsStore(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "version", "init", "help", "completion", "roster":
		return false
	}
	return cmd.Runnable()
}

// open loads configuration and attaches the backend. It is a no-op once a
// store is open.
func (a *app) open(cmd *cobra.Command, flags rootFlags) error {
	if a.svc != nil {
		return nil
	}

	v, err := loadConfig(flags.configDir)
	if err != nil {
		return &sysError{err: err}
	}
	if flags.backend != "" {
		v.Set(cfgKeyBackend, flags.backend)
	}
	s, err := readSettings(v)
	if err != nil {
		return &sysError{err: err}
	}

	logOut := logWriter(a.errOut, s.logFile)
	logger, err := newLogger(logOut, s.logLevel, s.logFormat)
	if err != nil {
		logOut.Close()
		return &sysError{err: err}
	}

	cupboard, err := backend.Open(s.config)
	if err != nil {
		logOut.Close()
		return &sysError{err: err}
	}
	tables, err := cupboard.Tables()
	if err != nil {
		cupboard.Detach()
		logOut.Close()
		return &sysError{err: err}
	}

	a.cupboard = cupboard
	a.logger = logger
	a.logOut = logOut
	a.svc = rules.New(tables, s.options, logger)
	logger.Debug("store opened", "backend", s.config.Backend, "command", cmd.CommandPath())
	return nil
}

// close detaches the store, discarding every row, and closes the log file.
func (a *app) close() error {
	if a.cupboard == nil {
		return nil
	}
	err := a.cupboard.Detach()
	if cerr := a.logOut.Close(); cerr != nil {
		err = errors.Join(err, cerr)
	}
	a.cupboard, a.svc, a.logOut = nil, nil, nil
	return err
}

// Run executes the roster command line in args and returns the exit code.
func Run(args []string, in io.Reader, out, errOut io.Writer) int {
	a := &app{in: in, out: out, errOut: errOut}
	defer a.close()

	root := newRootCmd(a, rootFlags{})
	root.SetArgs(args)
	err := root.Execute()
	if err != nil {
		a.printError(err)
	}
	return exitCode(err)
}

// Execute runs the root command with the process arguments and exits with
// the appropriate code.
func Execute() {
	os.Exit(Run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func (a *app) printError(err error) {
	fmt.Fprintln(a.errOut, color.New(color.FgHiRed, color.Bold).Sprint("error: "+err.Error()))
}

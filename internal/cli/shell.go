package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/kballard/go-shellquote"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

const shellPrompt = "roster> "

func newShellCmd(a *app, flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Run commands from stdin against one store",
		Long: `Read commands line by line from stdin and run each against the same store,
so rows created by one line are visible to the next. Lines use shell quoting;
blank lines and lines starting with # are skipped; "exit" ends the session.

Example:
  printf 'user create --first-name Ann\nuser list\n' | roster shell`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runShell(*flags)
		},
	}
}

// runShell executes each input line with a fresh command tree that shares
// a's store. Line failures are reported as they happen; the returned error
// summarizes them.
func (a *app) runShell(defaults rootFlags) error {
	interactive := false
	if f, ok := a.in.(*os.File); ok {
		interactive = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}

	scanner := bufio.NewScanner(a.in)
	var ran, failed int
	var fault bool
	for {
		if interactive {
			fmt.Fprint(a.out, shellPrompt)
		}
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if line == "exit" || line == "quit" {
			break
		}

		ran++
		if err := a.runLine(line, defaults); err != nil {
			failed++
			var sys *sysError
			if errors.As(err, &sys) {
				fault = true
			}
			a.printError(err)
		}
	}
	if err := scanner.Err(); err != nil {
		return sysErr("read input: %w", err)
	}

	if failed == 0 {
		return nil
	}
	summary := fmt.Errorf("%d of %d commands failed", failed, ran)
	if fault {
		return &sysError{err: summary}
	}
	return summary
}

func (a *app) runLine(line string, defaults rootFlags) error {
	args, err := shellquote.Split(line)
	if err != nil {
		return fmt.Errorf("parse %q: %w", line, err)
	}
	if len(args) > 0 && args[0] == "shell" {
		return errors.New("shell cannot be nested")
	}

	root := newRootCmd(a, defaults)
	root.SetArgs(args)
	return root.Execute()
}

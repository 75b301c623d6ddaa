package zli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/xcaeser/zli/pkg/spinner"
)

// ParseAndRun parses the command hierarchy and runs the command. A convenience function that
// combines [Parse] and [Run] into a single call. See [Parse] and [Run] for more details.
//
// When help is requested it is written to the configured Stdout and the returned error wraps
// [ErrHelp].
func ParseAndRun(
	ctx context.Context,
	root *Command,
	args []string,
	options *RunOptions,
) error {
	options = checkAndSetRunOptions(options)
	if err := parse(root, args, options.Logger); err != nil {
		var cliErr *Error
		if errors.Is(err, ErrHelp) && errors.As(err, &cliErr) {
			writeUsage(options.Stdout, cliErr.Command(), options.NoColor)
		}
		return err
	}
	return Run(ctx, root, options)
}

// RunOptions specifies options for running a command.
type RunOptions struct {
	// Stdin, Stdout, and Stderr are the standard input, output, and error streams for the command.
	// If any of these are nil, the command will use the default streams ([os.Stdin], [os.Stdout],
	// and [os.Stderr], respectively).
	Stdin          io.Reader
	Stdout, Stderr io.Writer

	// Logger receives debug records describing how the arguments were resolved. If nil, records
	// are discarded.
	Logger *slog.Logger

	// Spinner is handed to the command through [State]. If nil, a spinner writing to Stderr is
	// created.
	Spinner *spinner.Spinner

	// Data is an opaque value made available to the command as [State.Data].
	Data any

	// NoColor disables styling of help and error output. Styling is also disabled when the output
	// is not a terminal or NO_COLOR is set.
	NoColor bool
}

// Run executes the current command. It returns an error if the command has not been parsed or if
// the command has no execution function.
//
// The options parameter may be nil, in which case default values are used. See [RunOptions] for
// more details.
func Run(ctx context.Context, root *Command, options *RunOptions) error {
	if root == nil || root.selected == nil {
		return errors.New("command has not been parsed")
	}
	options = checkAndSetRunOptions(options)
	selected := root.selected.command

	// If it is the root command, and it has no execution function, print help
	if selected.Exec == nil {
		if selected == root {
			writeUsage(options.Stdout, selected, options.NoColor)
			return newHelpError(selected)
		}
		return &NoExecError{Command: selected}
	}

	s := &State{
		Args:    root.selected.args,
		Stdin:   options.Stdin,
		Stdout:  options.Stdout,
		Stderr:  options.Stderr,
		Logger:  options.Logger,
		Spinner: options.Spinner,
		Data:    options.Data,
		root:    root,
		parent:  selected.parent,
		cmd:     selected,
	}

	ctx, stop := spinner.HandleSignals(ctx, s.Spinner)
	defer stop()
	// Leave the terminal clean if the command returned with the spinner still running.
	defer s.Spinner.Stop()

	options.Logger.Debug("executing command", slog.String("command", selected.Path()))
	if err := selected.Exec(ctx, s); err != nil {
		if cliErr := (*Error)(nil); errors.As(err, &cliErr) && cliErr.code == ErrShowHelp {
			writeUsage(s.Stdout, selected, options.NoColor)
		}
		return err
	}
	return nil
}

// Execute parses argv, whose first element is the program name, runs the resolved command and
// reports any error on the configured Stderr. It returns the process exit code: 0 on success or
// when help was shown, the code of an [*ExitError] returned by the command, and 1 otherwise.
func Execute(ctx context.Context, root *Command, argv []string, options *RunOptions) int {
	options = checkAndSetRunOptions(options)
	var args []string
	if len(argv) > 1 {
		args = argv[1:]
	}
	err := ParseAndRun(ctx, root, args, options)
	return reportError(options.Stderr, err, options.NoColor)
}

// Main runs root with the process arguments and exits the process with the code returned by
// [Execute].
func Main(ctx context.Context, root *Command, options *RunOptions) {
	os.Exit(Execute(ctx, root, os.Args, options))
}

func reportError(w io.Writer, err error, noColor bool) int {
	if err == nil || errors.Is(err, ErrHelp) {
		return 0
	}
	var cliErr *Error
	if errors.As(err, &cliErr) && cliErr.code == ErrShowHelp && cliErr.err == nil {
		return 0
	}

	prefix := color.New(color.FgRed, color.Bold)
	if noColor {
		prefix.DisableColor()
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		if exitErr.Err != nil {
			fmt.Fprintf(w, "%s %v\n", prefix.Sprint("error:"), exitErr.Err)
		}
		return exitErr.Code
	}

	fmt.Fprintf(w, "%s %v\n", prefix.Sprint("error:"), err)
	if cliErr != nil && cliErr.command != nil {
		fmt.Fprintf(w, "Run '%s --help' for usage.\n", cliErr.command.Path())
	}
	return 1
}

func checkAndSetRunOptions(opt *RunOptions) *RunOptions {
	if opt == nil {
		opt = &RunOptions{}
	}
	if opt.Stdin == nil {
		opt.Stdin = os.Stdin
	}
	if opt.Stdout == nil {
		opt.Stdout = os.Stdout
	}
	if opt.Stderr == nil {
		opt.Stderr = os.Stderr
	}
	if opt.Logger == nil {
		opt.Logger = discardLogger()
	}
	if opt.Spinner == nil {
		opt.Spinner = spinner.New(opt.Stderr)
	}
	return opt
}

package zli

import (
	"errors"
	"fmt"
	"strings"
)

// ErrHelp is wrapped by the error returned from [Parse] when --help or -h was given. The help
// text itself is written by [ParseAndRun] and [Execute]; callers of [Parse] can render it with
// [DefaultUsage] using the command from the returned [*Error].
var ErrHelp = errors.New("help requested")

// NewError creates a new error with the given error code and error. Exec functions return
// NewError(ErrShowHelp, err) to have the command's help printed before the error is reported.
func NewError(code ErrorCode, err error) error {
	return &Error{code: code, err: err}
}

// ErrorCode represents an error code for a specific error type.
type ErrorCode int

const (
	ErrShowHelp ErrorCode = iota + 1
	ErrUnknownCommand
	ErrUnknownFlag
	ErrMissingValueForFlag
	ErrInvalidBooleanValue
	ErrInvalidIntegerValue
	// ErrInvalidFlagValue wraps ErrInvalidBooleanValue or ErrInvalidIntegerValue.
	ErrInvalidFlagValue
	// ErrInvalidFlagCombination is reported when a non-boolean shortcut is not last in a cluster.
	ErrInvalidFlagCombination
	ErrMissingArgs
	ErrTooManyArgs
	ErrCommandDeprecated
)

func (c ErrorCode) String() string {
	return convertErrorCode(c)
}

func convertErrorCode(code ErrorCode) string {
	switch code {
	case ErrShowHelp:
		return "show help"
	case ErrUnknownCommand:
		return "unknown command"
	case ErrUnknownFlag:
		return "unknown flag"
	case ErrMissingValueForFlag:
		return "missing value for flag"
	case ErrInvalidBooleanValue:
		return "invalid boolean value"
	case ErrInvalidIntegerValue:
		return "invalid integer value"
	case ErrInvalidFlagValue:
		return "invalid flag value"
	case ErrInvalidFlagCombination:
		return "invalid flag combination"
	case ErrMissingArgs:
		return "missing arguments"
	case ErrTooManyArgs:
		return "too many arguments"
	case ErrCommandDeprecated:
		return "command deprecated"
	default:
		return "unknown error"
	}
}

// Error represents an error with an error code and an underlying error. All parse and validation
// failures are reported as *Error, use [errors.As] to inspect them.
type Error struct {
	code ErrorCode
	err  error

	command     *Command
	token       string
	flag        string
	missing     []string
	maxArgs     int
	gotArgs     int
	suggestions []string
}

// Code returns the error code.
func (e *Error) Code() ErrorCode { return e.code }

// Command returns the command that was being resolved when the error occurred. It may be nil for
// errors created with [NewError].
func (e *Error) Command() *Command { return e.command }

// Flag returns the name of the flag involved in the error, if any.
func (e *Error) Flag() string { return e.flag }

// Token returns the offending command-line token, if any.
func (e *Error) Token() string { return e.token }

// Missing returns the names of the required positional arguments that were not provided.
func (e *Error) Missing() []string { return e.missing }

// Suggestions returns similar command or flag names for unknown command and flag errors.
func (e *Error) Suggestions() []string { return e.suggestions }

// Cause returns the specific conversion failure behind an [ErrInvalidFlagValue] error, or nil.
func (e *Error) Cause() *Error {
	var cause *Error
	if e.err != nil && errors.As(e.err, &cause) {
		return cause
	}
	return nil
}

func (e *Error) Unwrap() error {
	return e.err
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	msg := e.message()
	if e.command != nil {
		return fmt.Sprintf("command %q: %s", e.command.Path(), msg)
	}
	return msg
}

func (e *Error) message() string {
	switch e.code {
	case ErrUnknownCommand:
		return withSuggestions(fmt.Sprintf("unknown command %q", e.token), e.suggestions)
	case ErrUnknownFlag:
		return withSuggestions(fmt.Sprintf("unknown flag %q", e.token), e.suggestions)
	case ErrMissingValueForFlag:
		return fmt.Sprintf("flag %q requires a value", e.token)
	case ErrInvalidBooleanValue:
		return fmt.Sprintf("invalid boolean value %q, expected true or false", e.token)
	case ErrInvalidIntegerValue:
		return fmt.Sprintf("invalid integer value %q, expected a 32-bit signed integer", e.token)
	case ErrInvalidFlagValue:
		if e.err != nil {
			var cause *Error
			if errors.As(e.err, &cause) {
				return fmt.Sprintf("invalid value for flag %q: %s", e.flag, cause.message())
			}
			return fmt.Sprintf("invalid value for flag %q: %v", e.flag, e.err)
		}
		return fmt.Sprintf("invalid value %q for flag %q", e.token, e.flag)
	case ErrInvalidFlagCombination:
		return fmt.Sprintf("flag %q takes a value and must be the last flag in %q", "-"+e.flag, e.token)
	case ErrMissingArgs:
		return fmt.Sprintf("missing required argument(s): %s", strings.Join(e.missing, ", "))
	case ErrTooManyArgs:
		return fmt.Sprintf("too many arguments: accepts at most %d, got %d", e.maxArgs, e.gotArgs)
	case ErrCommandDeprecated:
		if e.command != nil && e.command.ReplacedBy != "" {
			return fmt.Sprintf("command is deprecated, use %q instead", e.command.ReplacedBy)
		}
		return "command is deprecated"
	}
	if e.err == nil {
		return convertErrorCode(e.code) + ": <nil>"
	}
	return e.err.Error()
}

func withSuggestions(msg string, suggestions []string) string {
	if len(suggestions) == 0 {
		return msg
	}
	return msg + ". Did you mean one of these?\n\t" + strings.Join(suggestions, "\n\t")
}

func newHelpError(cmd *Command) *Error {
	return &Error{code: ErrShowHelp, err: ErrHelp, command: cmd}
}

// ExitError is returned by an Exec function to end the process with a specific exit code. Err,
// if set, is reported on stderr before exiting.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

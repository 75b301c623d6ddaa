package zli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/xcaeser/zli/pkg/spinner"
)

// State is the execution context handed to the resolved command's Exec function. It is created
// once per [Run] and is only valid for the duration of that call. Use [GetFlag] to retrieve flag
// values and [State.Arg] or [State.VariadicArgs] to retrieve positional values by name.
type State struct {
	// Args contains the positional values in the order they appeared, as raw strings.
	Args []string

	// Standard I/O streams.
	Stdin          io.Reader
	Stdout, Stderr io.Writer

	// Logger receives debug output from the library. It is never nil.
	Logger *slog.Logger

	// Spinner is a progress indicator writing to Stderr, ready to Start.
	Spinner *spinner.Spinner

	// Data is the opaque value passed in [RunOptions].
	Data any

	root, parent, cmd *Command
}

// Root returns the root of the command tree.
func (s *State) Root() *Command { return s.root }

// Parent returns the resolved command's parent, or nil when the root itself was resolved.
func (s *State) Parent() *Command { return s.parent }

// Command returns the resolved command.
func (s *State) Command() *Command { return s.cmd }

// Arg returns the value bound to the named positional argument, or "" if it was not provided. For
// a variadic argument it returns the first value; use [State.VariadicArgs] for all of them.
//
// Arg panics if the command does not declare an argument with that name.
func (s *State) Arg(name string) string {
	values := s.VariadicArgs(name)
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

// VariadicArgs returns every value bound to the named positional argument. For a variadic argument
// that is all remaining values; for any other argument it is zero or one value.
//
// VariadicArgs panics if the command does not declare an argument with that name.
func (s *State) VariadicArgs(name string) []string {
	for i, spec := range s.cmd.args {
		if spec.Name != name {
			continue
		}
		if i >= len(s.Args) {
			return nil
		}
		if spec.Variadic {
			return s.Args[i:]
		}
		return s.Args[i : i+1]
	}
	panic(fmt.Errorf("internal error: positional argument %q not declared on command %q", name, s.cmd.Path()))
}

// GetFlag retrieves a flag value of the resolved command by name. Flags are not inherited, so only
// the resolved command's own flags are visible. Example usage:
//
//	verbose := GetFlag[bool](state, "verbose")
//	count := GetFlag[int](state, "count")
//	path := GetFlag[string](state, "path")
//
// [Int] flags can be read as int or int32. If the flag isn't registered, or T doesn't match its
// type, GetFlag panics: that is a programming error, and it's better to fail LOUD and EARLY than to
// silently return a zero value.
func GetFlag[T any](s *State, name string) T {
	reg := s.cmd.registry()
	f, ok := reg.byName[name]
	if !ok {
		panic(fmt.Errorf("internal error: flag %q not found in command %q flag set", "--"+name, s.cmd.Path()))
	}
	v, ok := reg.values[name]
	if !ok || v.Type() != f.Type {
		v = f.Default
	}

	var out T
	switch p := any(&out).(type) {
	case *bool:
		if b, ok := v.AsBool(); ok {
			*p = b
			return out
		}
	case *int:
		if n, ok := v.AsInt(); ok {
			*p = int(n)
			return out
		}
	case *int32:
		if n, ok := v.AsInt(); ok {
			*p = n
			return out
		}
	case *string:
		if str, ok := v.AsString(); ok {
			*p = str
			return out
		}
	}
	panic(fmt.Errorf("internal error: type mismatch for flag %q in command %q: registered %s, requested %T",
		"--"+name, s.cmd.Path(), f.Type, out))
}

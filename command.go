package zli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// NoExecError is returned when a command has no execution function.
type NoExecError struct {
	Command *Command
}

func (e *NoExecError) Error() string {
	return fmt.Sprintf("command %q has no execution function", e.Command.Path())
}

// DuplicateError is returned when a command, alias, shortcut, flag or positional argument would
// shadow one that is already registered.
type DuplicateError struct {
	// Kind is what collided, e.g. "command", "alias", "flag shortcut".
	Kind string
	Name string
	// Command is the command the registration was attempted on.
	Command *Command
}

func (e *DuplicateError) Error() string {
	if e.Command == nil {
		return fmt.Sprintf("duplicate %s %q", e.Kind, e.Name)
	}
	return fmt.Sprintf("command %q: duplicate %s %q", e.Command.Path(), e.Kind, e.Name)
}

// Command represents a CLI command or subcommand within the application's command hierarchy.
//
// Identity and help fields are set with a struct literal. Children, flags and positional
// arguments are attached with [Command.AddCommand], [Command.AddFlag] and
// [Command.AddPositionalArg], which keep the lookup indices consistent. A command is built once on
// a single goroutine and must not be modified while it is being parsed or run.
type Command struct {
	// Name is always a single word representing the command's name. It is unique among siblings.
	Name string

	// Shortcut is an optional alternative token for the command, e.g. "r" for "run".
	Shortcut string

	// Aliases are additional names the command can be invoked by.
	Aliases []string

	// Usage provides the command's full usage pattern. When empty it is derived from the command
	// path, subcommands and positional arguments.
	//
	// Example: "blitz run [flags] <target> [files...]"
	Usage string

	// ShortHelp is a brief description of the command's purpose, shown in the parent's command
	// list and at the top of the command's help text.
	ShortHelp string

	// Description is a longer explanation shown in the command's own help text.
	Description string

	// Deprecated commands fail to resolve with [ErrCommandDeprecated] before any flag is parsed.
	Deprecated bool
	// ReplacedBy names the command to use instead of a deprecated one.
	ReplacedBy string

	// UsageFunc is an optional function that can be used to generate a custom usage string for the
	// command.
	UsageFunc func(*Command) string

	// Exec defines the command's execution logic. It receives the resolved [State] and returns an
	// error if execution fails.
	Exec func(ctx context.Context, s *State) error

	parent *Command
	subs   []*Command

	byName     map[string]*Command
	byShortcut map[string]*Command
	byAlias    map[string]*Command

	flags *flagRegistry
	args  []PositionalArg

	// selected is set on the root by Parse.
	selected *resolution
}

type resolution struct {
	command *Command
	args    []string
}

// AddCommand attaches child to c. The child's name, shortcut and aliases must not collide with
// any name, shortcut or alias of c's existing children, and the child must not already have a
// parent. On error nothing is attached.
func (c *Command) AddCommand(child *Command) error {
	if child == nil {
		return errors.New("cannot add nil command")
	}
	if err := validateCommand(child); err != nil {
		return err
	}
	for p := c; p != nil; p = p.parent {
		if p == child {
			return fmt.Errorf("command %q cannot be added to itself or its descendants", child.Name)
		}
	}
	if child.parent != nil {
		return fmt.Errorf("command %q is already attached to %q", child.Name, child.parent.Path())
	}

	seen := make(map[string]bool)
	for _, key := range child.keys() {
		if seen[key.token] {
			return &DuplicateError{Kind: key.kind, Name: key.token, Command: child}
		}
		seen[key.token] = true
		if c.FindCommand(key.token) != nil {
			return &DuplicateError{Kind: key.kind, Name: key.token, Command: c}
		}
	}

	if c.byName == nil {
		c.byName = make(map[string]*Command)
		c.byShortcut = make(map[string]*Command)
		c.byAlias = make(map[string]*Command)
	}
	c.byName[child.Name] = child
	if child.Shortcut != "" {
		c.byShortcut[child.Shortcut] = child
	}
	for _, alias := range child.Aliases {
		c.byAlias[alias] = child
	}
	c.subs = append(c.subs, child)
	child.parent = c
	return nil
}

// AddCommands attaches each child in order, stopping at the first error.
func (c *Command) AddCommands(children ...*Command) error {
	for _, child := range children {
		if err := c.AddCommand(child); err != nil {
			return err
		}
	}
	return nil
}

type commandKey struct {
	kind  string
	token string
}

func (c *Command) keys() []commandKey {
	keys := []commandKey{{kind: "command", token: c.Name}}
	if c.Shortcut != "" {
		keys = append(keys, commandKey{kind: "shortcut", token: c.Shortcut})
	}
	for _, alias := range c.Aliases {
		keys = append(keys, commandKey{kind: "alias", token: alias})
	}
	return keys
}

func validateCommand(c *Command) error {
	if c.Name == "" {
		return errors.New("command has no name")
	}
	for _, key := range c.keys() {
		if err := validateCommandToken(key.token); err != nil {
			return fmt.Errorf("command %q: %s %w", c.Name, key.kind, err)
		}
	}
	return nil
}

func validateCommandToken(token string) error {
	switch {
	case token == "":
		return errors.New("is empty")
	case strings.HasPrefix(token, "-"):
		return fmt.Errorf("%q must not start with '-'", token)
	case strings.IndexFunc(token, unicode.IsSpace) >= 0:
		return fmt.Errorf("%q contains spaces, must be a single word", token)
	}
	return nil
}

// FindCommand looks up a direct child by name, then by alias, then by shortcut. It returns nil if
// no child matches.
func (c *Command) FindCommand(token string) *Command {
	if sub, ok := c.byName[token]; ok {
		return sub
	}
	if sub, ok := c.byAlias[token]; ok {
		return sub
	}
	if sub, ok := c.byShortcut[token]; ok {
		return sub
	}
	return nil
}

// SubCommands returns the direct children in the order they were added.
func (c *Command) SubCommands() []*Command {
	return c.subs
}

// Parent returns the command c is attached to, or nil for a root.
func (c *Command) Parent() *Command {
	return c.parent
}

// Root returns the root of the tree c belongs to.
func (c *Command) Root() *Command {
	root := c
	for root.parent != nil {
		root = root.parent
	}
	return root
}

// Parents returns the chain of ancestors from the root down to, but excluding, c.
func (c *Command) Parents() []*Command {
	var chain []*Command
	for p := c.parent; p != nil; p = p.parent {
		chain = append(chain, p)
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}

// Path returns the space separated names from the root to c, e.g. "blitz cache clean".
func (c *Command) Path() string {
	return getCommandPath(append(c.Parents(), c))
}

func getCommandPath(commands []*Command) string {
	var commandPath []string
	for _, c := range commands {
		commandPath = append(commandPath, c.Name)
	}
	return strings.Join(commandPath, " ")
}

func (c *Command) registry() *flagRegistry {
	if c.flags == nil {
		c.flags = newFlagRegistry()
	}
	return c.flags
}

// AddFlag registers a flag on c. Every command starts with an implicit --help/-h flag, so neither
// "help" nor "h" can be registered. Flag names and shortcuts must be unique within the command.
func (c *Command) AddFlag(f Flag) error {
	if err := c.registry().add(f); err != nil {
		var dup *DuplicateError
		if errors.As(err, &dup) {
			dup.Command = c
			return dup
		}
		return fmt.Errorf("command %q: %w", c.Path(), err)
	}
	return nil
}

// AddFlags registers each flag in order, stopping at the first error.
func (c *Command) AddFlags(flags ...Flag) error {
	for _, f := range flags {
		if err := c.AddFlag(f); err != nil {
			return err
		}
	}
	return nil
}

// Flags returns the command's flags in registration order, starting with the implicit help flag.
func (c *Command) Flags() []Flag {
	specs := c.registry().specs
	flags := make([]Flag, 0, len(specs))
	for _, f := range specs {
		flags = append(flags, *f)
	}
	return flags
}

// PositionalArg declares a positional argument. Positional values are bound to declarations in
// order.
type PositionalArg struct {
	// Name is shown in help text and used to look the value up with [State.Arg].
	Name        string
	Description string
	Required    bool
	// Variadic arguments take every remaining value. Only the last argument may be variadic.
	Variadic bool
}

// AddPositionalArg appends a positional argument declaration to c. Nothing may follow a variadic
// argument, and a required argument may not follow an optional one.
func (c *Command) AddPositionalArg(arg PositionalArg) error {
	if err := validateCommandToken(arg.Name); err != nil {
		return fmt.Errorf("command %q: positional argument %w", c.Path(), err)
	}
	for _, existing := range c.args {
		if existing.Name == arg.Name {
			return &DuplicateError{Kind: "positional argument", Name: arg.Name, Command: c}
		}
	}
	if n := len(c.args); n > 0 {
		last := c.args[n-1]
		if last.Variadic {
			return fmt.Errorf("command %q: positional argument %q follows variadic argument %q", c.Path(), arg.Name, last.Name)
		}
		if arg.Required && !last.Required {
			return fmt.Errorf("command %q: required positional argument %q follows optional argument %q", c.Path(), arg.Name, last.Name)
		}
	}
	c.args = append(c.args, arg)
	return nil
}

// AddPositionalArgs appends each declaration in order, stopping at the first error.
func (c *Command) AddPositionalArgs(args ...PositionalArg) error {
	for _, arg := range args {
		if err := c.AddPositionalArg(arg); err != nil {
			return err
		}
	}
	return nil
}

// PositionalArgs returns the command's positional argument declarations.
func (c *Command) PositionalArgs() []PositionalArg {
	return c.args
}

func (c *Command) variadic() bool {
	return len(c.args) > 0 && c.args[len(c.args)-1].Variadic
}

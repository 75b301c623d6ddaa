package zli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/xcaeser/zli/pkg/suggest"
)

const maxSuggestions = 3

// Parse resolves args against the command tree rooted at root. It returns an error if parsing
// fails at any point; the first error aborts the pass.
//
// args must not include the program name, typically os.Args[1:]. Parsing walks the tree to the
// leaf command, assigns flag values on that leaf and binds the remaining tokens to its positional
// arguments. Once parsing is complete, the root command is ready to be executed with [Run].
//
// When --help or -h is encountered the returned error wraps [ErrHelp].
func Parse(root *Command, args []string) error {
	return parse(root, args, discardLogger())
}

func parse(root *Command, args []string, logger *slog.Logger) error {
	if root == nil {
		return errors.New("failed to parse: root command is nil")
	}
	if root.parent != nil {
		return fmt.Errorf("failed to parse: command %q is not a root command", root.Path())
	}
	if err := validateCommand(root); err != nil {
		return fmt.Errorf("failed to parse: root %w", err)
	}
	root.selected = nil

	p := &parser{
		tokens: args,
		logger: logger,
	}
	leaf, err := p.descend(root)
	if err != nil {
		return err
	}
	if leaf.Deprecated {
		logger.Debug("deprecated command", slog.String("command", leaf.Path()))
		return &Error{code: ErrCommandDeprecated, command: leaf}
	}
	values, err := p.parseFlags(leaf)
	if err != nil {
		return err
	}
	if err := validateArgs(leaf, values); err != nil {
		return err
	}
	root.selected = &resolution{command: leaf, args: values}
	logger.Debug("resolved command",
		slog.String("command", leaf.Path()),
		slog.Int("args", len(values)),
	)
	return nil
}

// parser consumes tokens left to right. Tokens are never reordered.
type parser struct {
	tokens []string
	logger *slog.Logger
}

func (p *parser) peek() (string, bool) {
	if len(p.tokens) == 0 {
		return "", false
	}
	return p.tokens[0], true
}

func (p *parser) pop() string {
	tok := p.tokens[0]
	p.tokens = p.tokens[1:]
	return tok
}

// descend walks from root towards the leaf, consuming one token per level. It stops at the first
// flag-like token, when the queue is empty, or once the current command declares positional
// arguments, so those tokens are left for the positional list.
func (p *parser) descend(root *Command) (*Command, error) {
	current := root
	for {
		tok, ok := p.peek()
		if !ok || strings.HasPrefix(tok, "-") || len(current.args) > 0 {
			return current, nil
		}
		sub := current.FindCommand(tok)
		if sub == nil {
			return nil, unknownCommandError(current, tok)
		}
		p.pop()
		p.logger.Debug("descend", slog.String("token", tok), slog.String("command", sub.Path()))
		current = sub
	}
}

func unknownCommandError(c *Command, tok string) *Error {
	var known []string
	for _, sub := range c.subs {
		known = append(known, sub.Name)
		known = append(known, sub.Aliases...)
	}
	return &Error{
		code:        ErrUnknownCommand,
		command:     c,
		token:       tok,
		suggestions: suggest.FindSimilar(tok, known, maxSuggestions),
	}
}

// parseFlags runs the classification loop on the leaf command and returns the positional values
// in the order they appeared.
func (p *parser) parseFlags(cmd *Command) ([]string, error) {
	reg := cmd.registry()
	reg.reset()

	var positionals []string
	for len(p.tokens) > 0 {
		tok := p.pop()
		switch {
		case tok == "--"+helpFlagName || tok == "-"+helpFlagShortcut:
			return nil, newHelpError(cmd)
		case tok == "--":
			// End of options, everything after is positional.
			positionals = append(positionals, p.tokens...)
			p.tokens = nil
		case strings.HasPrefix(tok, "--"):
			if err := p.parseLong(cmd, tok); err != nil {
				return nil, err
			}
		case strings.HasPrefix(tok, "-") && len(tok) > 1:
			if err := p.parseCluster(cmd, tok); err != nil {
				return nil, err
			}
		default:
			positionals = append(positionals, tok)
		}
	}
	if reg.helpRequested() {
		return nil, newHelpError(cmd)
	}
	return positionals, nil
}

func (p *parser) parseLong(cmd *Command, tok string) error {
	reg := cmd.registry()
	name, value, hasValue := strings.Cut(strings.TrimPrefix(tok, "--"), "=")
	f := reg.lookup(name)
	if f == nil {
		return unknownFlagError(cmd, "--"+name, name)
	}
	if hasValue {
		return p.setFlag(cmd, f, value)
	}
	if f.Type == Bool {
		// Only a literal true or false is taken as the value, anything else stays in the queue.
		if next, ok := p.peek(); ok && (next == "true" || next == "false") {
			return p.setFlag(cmd, f, p.pop())
		}
		return p.setFlag(cmd, f, "true")
	}
	next, ok := p.peek()
	if !ok || strings.HasPrefix(next, "-") {
		return &Error{code: ErrMissingValueForFlag, command: cmd, flag: f.Name, token: tok}
	}
	return p.setFlag(cmd, f, p.pop())
}

// parseCluster handles -abc. Boolean shortcuts may appear anywhere in the cluster; a shortcut
// that takes a value must be last and consumes the next whole token.
func (p *parser) parseCluster(cmd *Command, tok string) error {
	reg := cmd.registry()
	shortcuts := []rune(tok[1:])
	for i, r := range shortcuts {
		short := string(r)
		f := reg.byShortcut[short]
		if f == nil {
			return unknownFlagError(cmd, "-"+short, short)
		}
		if f.Type == Bool {
			if err := p.setFlag(cmd, f, "true"); err != nil {
				return err
			}
			continue
		}
		if i != len(shortcuts)-1 {
			return &Error{code: ErrInvalidFlagCombination, command: cmd, flag: short, token: tok}
		}
		if _, ok := p.peek(); !ok {
			return &Error{code: ErrMissingValueForFlag, command: cmd, flag: f.Name, token: "-" + short}
		}
		return p.setFlag(cmd, f, p.pop())
	}
	return nil
}

func (p *parser) setFlag(cmd *Command, f *Flag, raw string) error {
	if err := cmd.registry().set(f, raw); err != nil {
		var cliErr *Error
		if errors.As(err, &cliErr) {
			cliErr.command = cmd
		}
		return err
	}
	p.logger.Debug("set flag", slog.String("command", cmd.Path()), slog.String("flag", f.Name), slog.String("value", raw))
	return nil
}

func unknownFlagError(c *Command, tok, name string) *Error {
	var known []string
	for _, f := range c.registry().specs {
		if f.Hidden {
			continue
		}
		known = append(known, "--"+f.Name)
	}
	return &Error{
		code:        ErrUnknownFlag,
		command:     c,
		token:       tok,
		flag:        name,
		suggestions: suggest.FindSimilar(tok, known, maxSuggestions),
	}
}

func validateArgs(c *Command, values []string) error {
	var missing []string
	for i, spec := range c.args {
		if spec.Required && i >= len(values) {
			missing = append(missing, spec.Name)
		}
	}
	if len(missing) > 0 {
		return &Error{code: ErrMissingArgs, command: c, missing: missing}
	}
	if !c.variadic() && len(values) > len(c.args) {
		return &Error{
			code:    ErrTooManyArgs,
			command: c,
			token:   values[len(c.args)],
			maxArgs: len(c.args),
			gotArgs: len(values),
		}
	}
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

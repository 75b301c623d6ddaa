package zli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// FlagType is the declared type of a flag's value.
type FlagType int

const (
	Bool FlagType = iota + 1
	Int
	String
)

func (t FlagType) String() string {
	switch t {
	case Bool:
		return "bool"
	case Int:
		return "int"
	case String:
		return "string"
	default:
		return "invalid"
	}
}

// FlagValue is a flag value tagged with its type. Build one with [BoolValue], [IntValue] or
// [StringValue]. The zero FlagValue has no type.
type FlagValue struct {
	typ FlagType
	b   bool
	i   int32
	s   string
}

func BoolValue(v bool) FlagValue     { return FlagValue{typ: Bool, b: v} }
func IntValue(v int32) FlagValue     { return FlagValue{typ: Int, i: v} }
func StringValue(v string) FlagValue { return FlagValue{typ: String, s: v} }

// Type returns the value's type, or 0 for the zero FlagValue.
func (v FlagValue) Type() FlagType { return v.typ }

// AsBool returns the boolean payload and whether v is a [Bool] value.
func (v FlagValue) AsBool() (bool, bool) { return v.b, v.typ == Bool }

// AsInt returns the integer payload and whether v is an [Int] value.
func (v FlagValue) AsInt() (int32, bool) { return v.i, v.typ == Int }

// AsString returns the string payload and whether v is a [String] value.
func (v FlagValue) AsString() (string, bool) { return v.s, v.typ == String }

// String formats the value the way it would be written on the command line.
func (v FlagValue) String() string {
	switch v.typ {
	case Bool:
		return strconv.FormatBool(v.b)
	case Int:
		return strconv.FormatInt(int64(v.i), 10)
	case String:
		return v.s
	default:
		return ""
	}
}

func (v FlagValue) isZero() bool {
	return v == zeroValue(v.typ)
}

func zeroValue(t FlagType) FlagValue {
	return FlagValue{typ: t}
}

// Flag describes a flag accepted by a single command. Flags are not inherited: every command has
// its own set, plus the implicit --help/-h flag.
type Flag struct {
	// Name is the long name, used as --name on the command line and for lookups with [GetFlag].
	Name string
	// Shortcut is an optional single character, used as -s and inside clusters like -abc.
	Shortcut string
	// Description is shown in help text.
	Description string
	Type        FlagType
	// Default must match Type. The zero FlagValue means the zero value of Type.
	Default FlagValue
	// Hidden flags are omitted from help text but still parse normally.
	Hidden bool
}

const (
	helpFlagName     = "help"
	helpFlagShortcut = "h"
)

// flagRegistry holds a command's flag specs and their current values. Specs are indexed by name
// and by shortcut, both updated only through add.
type flagRegistry struct {
	specs      []*Flag
	byName     map[string]*Flag
	byShortcut map[string]*Flag
	values     map[string]FlagValue
}

func newFlagRegistry() *flagRegistry {
	r := &flagRegistry{
		byName:     make(map[string]*Flag),
		byShortcut: make(map[string]*Flag),
		values:     make(map[string]FlagValue),
	}
	// Cannot collide on an empty registry.
	_ = r.add(Flag{
		Name:        helpFlagName,
		Shortcut:    helpFlagShortcut,
		Description: "Show help for this command",
		Type:        Bool,
	})
	return r
}

func (r *flagRegistry) add(f Flag) error {
	if err := validateFlag(&f); err != nil {
		return err
	}
	if _, ok := r.byName[f.Name]; ok {
		return &DuplicateError{Kind: "flag", Name: f.Name}
	}
	if f.Shortcut != "" {
		if _, ok := r.byShortcut[f.Shortcut]; ok {
			return &DuplicateError{Kind: "flag shortcut", Name: f.Shortcut}
		}
	}
	spec := &f
	r.specs = append(r.specs, spec)
	r.byName[spec.Name] = spec
	if spec.Shortcut != "" {
		r.byShortcut[spec.Shortcut] = spec
	}
	r.values[spec.Name] = spec.Default
	return nil
}

func validateFlag(f *Flag) error {
	switch {
	case f.Name == "":
		return errors.New("flag has no name")
	case strings.HasPrefix(f.Name, "-"):
		return fmt.Errorf("flag name %q must not start with '-'", f.Name)
	case strings.ContainsRune(f.Name, '='):
		return fmt.Errorf("flag name %q must not contain '='", f.Name)
	case strings.IndexFunc(f.Name, unicode.IsSpace) >= 0:
		return fmt.Errorf("flag name %q contains spaces, must be a single word", f.Name)
	}
	if f.Shortcut != "" {
		r, size := utf8.DecodeRuneInString(f.Shortcut)
		if size != len(f.Shortcut) || r == '-' || r == '=' || unicode.IsSpace(r) {
			return fmt.Errorf("flag %q: shortcut %q must be a single character", f.Name, f.Shortcut)
		}
	}
	if f.Type < Bool || f.Type > String {
		return fmt.Errorf("flag %q has invalid type %d", f.Name, f.Type)
	}
	switch f.Default.Type() {
	case 0:
		f.Default = zeroValue(f.Type)
	case f.Type:
	default:
		return fmt.Errorf("flag %q: default value is %s, flag type is %s", f.Name, f.Default.Type(), f.Type)
	}
	return nil
}

// lookup finds a flag by name, then by shortcut.
func (r *flagRegistry) lookup(nameOrShortcut string) *Flag {
	if f, ok := r.byName[nameOrShortcut]; ok {
		return f
	}
	return r.byShortcut[nameOrShortcut]
}

// set converts raw to the flag's type and stores it. Conversion failures are reported as
// ErrInvalidFlagValue wrapping the specific failure.
func (r *flagRegistry) set(f *Flag, raw string) error {
	v, err := parseFlagValue(f.Type, raw)
	if err != nil {
		return &Error{code: ErrInvalidFlagValue, err: err, flag: f.Name, token: raw}
	}
	r.values[f.Name] = v
	return nil
}

func (r *flagRegistry) reset() {
	for _, f := range r.specs {
		r.values[f.Name] = f.Default
	}
}

func (r *flagRegistry) helpRequested() bool {
	b, _ := r.values[helpFlagName].AsBool()
	return b
}

func parseFlagValue(t FlagType, raw string) (FlagValue, error) {
	switch t {
	case Bool:
		switch raw {
		case "true":
			return BoolValue(true), nil
		case "false":
			return BoolValue(false), nil
		}
		return FlagValue{}, &Error{code: ErrInvalidBooleanValue, token: raw}
	case Int:
		n, err := strconv.ParseInt(raw, 10, 32)
		if err != nil {
			return FlagValue{}, &Error{code: ErrInvalidIntegerValue, token: raw, err: err}
		}
		return IntValue(int32(n)), nil
	case String:
		return StringValue(raw), nil
	}
	return FlagValue{}, fmt.Errorf("unsupported flag type %d", t)
}

package zli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddCommand(t *testing.T) {
	t.Parallel()

	t.Run("indices and lookup", func(t *testing.T) {
		t.Parallel()
		root := &Command{Name: "blitz"}
		run := &Command{Name: "run", Shortcut: "r", Aliases: []string{"exec", "start"}}
		require.NoError(t, root.AddCommand(run))

		assert.Equal(t, root, run.Parent())
		for _, tok := range []string{"run", "r", "exec", "start"} {
			assert.Equal(t, run, root.FindCommand(tok), tok)
		}
		assert.Nil(t, root.FindCommand("ru"))
		assert.Nil(t, root.FindCommand("blitz"))
		assert.Equal(t, []*Command{run}, root.SubCommands())
	})
	t.Run("children keep insertion order", func(t *testing.T) {
		t.Parallel()
		root := &Command{Name: "blitz"}
		c, a, b := &Command{Name: "c"}, &Command{Name: "a"}, &Command{Name: "b"}
		require.NoError(t, root.AddCommands(c, a, b))
		assert.Equal(t, []*Command{c, a, b}, root.SubCommands())
	})
	t.Run("collisions", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name  string
			child *Command
			kind  string
			token string
		}{
			{"name vs name", &Command{Name: "run"}, "command", "run"},
			{"name vs alias", &Command{Name: "exec"}, "command", "exec"},
			{"name vs shortcut", &Command{Name: "r"}, "command", "r"},
			{"shortcut vs shortcut", &Command{Name: "remove", Shortcut: "r"}, "shortcut", "r"},
			{"alias vs name", &Command{Name: "launch", Aliases: []string{"run"}}, "alias", "run"},
			{"alias vs alias", &Command{Name: "launch", Aliases: []string{"exec"}}, "alias", "exec"},
		}
		for _, tt := range tests {
			root := &Command{Name: "blitz"}
			require.NoError(t, root.AddCommand(&Command{Name: "run", Shortcut: "r", Aliases: []string{"exec"}}))

			err := root.AddCommand(tt.child)
			var dup *DuplicateError
			require.ErrorAs(t, err, &dup, tt.name)
			assert.Equal(t, tt.kind, dup.Kind, tt.name)
			assert.Equal(t, tt.token, dup.Name, tt.name)
			assert.Equal(t, root, dup.Command, tt.name)

			// Nothing is attached on error.
			assert.Nil(t, tt.child.Parent(), tt.name)
			assert.Len(t, root.SubCommands(), 1, tt.name)
			assert.Equal(t, "run", root.FindCommand(tt.token).Name, tt.name)
		}
	})
	t.Run("self collision", func(t *testing.T) {
		t.Parallel()
		root := &Command{Name: "blitz"}
		child := &Command{Name: "run", Aliases: []string{"go", "go"}}

		err := root.AddCommand(child)
		var dup *DuplicateError
		require.ErrorAs(t, err, &dup)
		assert.Equal(t, "go", dup.Name)
		assert.Equal(t, child, dup.Command)
		assert.Empty(t, root.SubCommands())
	})
	t.Run("invalid commands", func(t *testing.T) {
		t.Parallel()

		root := &Command{Name: "blitz"}
		require.ErrorContains(t, root.AddCommand(nil), "cannot add nil command")
		require.ErrorContains(t, root.AddCommand(&Command{}), "command has no name")
		require.ErrorContains(t, root.AddCommand(&Command{Name: "two words"}), "must be a single word")
		require.ErrorContains(t, root.AddCommand(&Command{Name: "-run"}), `must not start with '-'`)
		require.ErrorContains(t, root.AddCommand(&Command{Name: "run", Aliases: []string{""}}), "alias is empty")
		require.ErrorContains(t, root.AddCommand(&Command{Name: "run", Shortcut: "-r"}), "shortcut")
		assert.Empty(t, root.SubCommands())
	})
	t.Run("re-parenting and cycles", func(t *testing.T) {
		t.Parallel()
		root := &Command{Name: "blitz"}
		cache := &Command{Name: "cache"}
		clean := &Command{Name: "clean"}
		require.NoError(t, root.AddCommand(cache))
		require.NoError(t, cache.AddCommand(clean))

		other := &Command{Name: "other"}
		require.ErrorContains(t, other.AddCommand(clean), `command "clean" is already attached to "blitz cache"`)
		require.ErrorContains(t, clean.AddCommand(clean), "cannot be added to itself")
		require.ErrorContains(t, clean.AddCommand(root), "cannot be added to itself or its descendants")
		assert.Equal(t, cache, clean.Parent())
	})
}

func TestCommandPath(t *testing.T) {
	t.Parallel()
	s := newTestState(t)

	assert.Equal(t, "blitz", s.root.Path())
	assert.Equal(t, "blitz cache clean", s.clean.Path())
	assert.Equal(t, []*Command{s.root, s.cache}, s.clean.Parents())
	assert.Empty(t, s.root.Parents())
	assert.Equal(t, s.root, s.clean.Root())
	assert.Equal(t, s.root, s.root.Root())
	assert.Nil(t, s.root.Parent())
}

func TestAddFlag(t *testing.T) {
	t.Parallel()

	t.Run("implicit help flag", func(t *testing.T) {
		t.Parallel()
		cmd := &Command{Name: "run"}
		flags := cmd.Flags()
		require.Len(t, flags, 1)
		assert.Equal(t, "help", flags[0].Name)
		assert.Equal(t, "h", flags[0].Shortcut)
		assert.Equal(t, Bool, flags[0].Type)

		var dup *DuplicateError
		require.ErrorAs(t, cmd.AddFlag(Flag{Name: "help", Type: Bool}), &dup)
		assert.Equal(t, "flag", dup.Kind)
		require.ErrorAs(t, cmd.AddFlag(Flag{Name: "host", Shortcut: "h", Type: String}), &dup)
		assert.Equal(t, "flag shortcut", dup.Kind)
		assert.Equal(t, cmd, dup.Command)
	})
	t.Run("registration order and defaults", func(t *testing.T) {
		t.Parallel()
		cmd := &Command{Name: "run"}
		require.NoError(t, cmd.AddFlags(
			Flag{Name: "verbose", Shortcut: "v", Type: Bool},
			Flag{Name: "count", Type: Int, Default: IntValue(3)},
			Flag{Name: "env", Type: String},
		))

		flags := cmd.Flags()
		require.Len(t, flags, 4)
		assert.Equal(t, "verbose", flags[1].Name)
		assert.Equal(t, BoolValue(false), flags[1].Default)
		assert.Equal(t, IntValue(3), flags[2].Default)
		assert.Equal(t, StringValue(""), flags[3].Default)
	})
	t.Run("duplicates", func(t *testing.T) {
		t.Parallel()
		cmd := &Command{Name: "run"}
		require.NoError(t, cmd.AddFlag(Flag{Name: "verbose", Shortcut: "v", Type: Bool}))

		var dup *DuplicateError
		require.ErrorAs(t, cmd.AddFlag(Flag{Name: "verbose", Type: Int}), &dup)
		assert.Equal(t, "verbose", dup.Name)
		require.ErrorAs(t, cmd.AddFlag(Flag{Name: "version", Shortcut: "v", Type: Bool}), &dup)
		assert.Equal(t, "v", dup.Name)
		assert.EqualError(t, dup, `command "run": duplicate flag shortcut "v"`)
		assert.Len(t, cmd.Flags(), 2)
	})
	t.Run("flags are per command", func(t *testing.T) {
		t.Parallel()
		s := newTestState(t)
		// Same name and shortcut on sibling commands is fine.
		require.NoError(t, s.add.AddFlag(Flag{Name: "verbose", Shortcut: "v", Type: Bool}))
	})
	t.Run("invalid flags", func(t *testing.T) {
		t.Parallel()
		cmd := &Command{Name: "run"}

		tests := []struct {
			flag Flag
			want string
		}{
			{Flag{Type: Bool}, "flag has no name"},
			{Flag{Name: "--verbose", Type: Bool}, `must not start with '-'`},
			{Flag{Name: "a=b", Type: Bool}, `must not contain '='`},
			{Flag{Name: "dry run", Type: Bool}, "must be a single word"},
			{Flag{Name: "verbose", Shortcut: "vv", Type: Bool}, "must be a single character"},
			{Flag{Name: "verbose", Shortcut: "-", Type: Bool}, "must be a single character"},
			{Flag{Name: "verbose"}, "invalid type 0"},
			{Flag{Name: "count", Type: Int, Default: StringValue("3")}, "default value is string, flag type is int"},
		}
		for _, tt := range tests {
			err := cmd.AddFlag(tt.flag)
			require.Error(t, err, tt.want)
			assert.ErrorContains(t, err, tt.want)
		}
		assert.Len(t, cmd.Flags(), 1)
	})
	t.Run("multibyte shortcut", func(t *testing.T) {
		t.Parallel()
		cmd := &Command{Name: "run"}
		require.NoError(t, cmd.AddFlag(Flag{Name: "lambda", Shortcut: "λ", Type: Bool}))

		require.NoError(t, Parse(cmd, []string{"-λ"}))
		_, state := resolved(t, cmd)
		assert.True(t, GetFlag[bool](state, "lambda"))
	})
}

func TestAddPositionalArg(t *testing.T) {
	t.Parallel()

	t.Run("ordering rules", func(t *testing.T) {
		t.Parallel()
		cmd := &Command{Name: "cp"}
		require.NoError(t, cmd.AddPositionalArg(PositionalArg{Name: "src", Required: true}))
		require.NoError(t, cmd.AddPositionalArg(PositionalArg{Name: "dst"}))

		err := cmd.AddPositionalArg(PositionalArg{Name: "mode", Required: true})
		assert.ErrorContains(t, err, `required positional argument "mode" follows optional argument "dst"`)

		require.NoError(t, cmd.AddPositionalArg(PositionalArg{Name: "rest", Variadic: true}))
		err = cmd.AddPositionalArg(PositionalArg{Name: "extra"})
		assert.ErrorContains(t, err, `positional argument "extra" follows variadic argument "rest"`)

		var dup *DuplicateError
		require.ErrorAs(t, cmd.AddPositionalArg(PositionalArg{Name: "src"}), &dup)
		assert.Equal(t, "positional argument", dup.Kind)

		names := make([]string, 0, len(cmd.PositionalArgs()))
		for _, arg := range cmd.PositionalArgs() {
			names = append(names, arg.Name)
		}
		assert.Equal(t, []string{"src", "dst", "rest"}, names)
		assert.True(t, cmd.variadic())
	})
	t.Run("invalid names", func(t *testing.T) {
		t.Parallel()
		cmd := &Command{Name: "cp"}
		assert.ErrorContains(t, cmd.AddPositionalArg(PositionalArg{}), "positional argument is empty")
		assert.ErrorContains(t, cmd.AddPositionalArg(PositionalArg{Name: "-src"}), `must not start with '-'`)
		assert.Empty(t, cmd.PositionalArgs())
	})
}

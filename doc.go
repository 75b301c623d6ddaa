// Package zli provides a framework for building tree-structured command-line applications: named,
// nested commands, each with its own typed flags and ordered positional arguments, dispatched from
// the process arguments to exactly one leaf command.
//
// Build the tree once at startup with [Command.AddCommand], [Command.AddFlag] and
// [Command.AddPositionalArg], then hand the arguments to [Main], [Execute] or [ParseAndRun].
//
// Arguments are resolved left to right. Leading tokens that name a subcommand (by name, alias or
// shortcut) select it, until a flag-like token is reached or the current command declares
// positional arguments. The rest is classified against that command only; flags are not
// inherited:
//
//	--name=value   set any flag
//	--name value   set a string or int flag; the value must not start with '-'
//	--name         set a bool flag to true; a following literal "true" or "false" is taken as its value
//	-abc           bool shortcuts a, b and c; only the last shortcut may take a value, from the next token
//	--             every following token is positional
//	--help, -h     print help for the command
//
// Anything else, including a lone "-", is a positional value.
package zli

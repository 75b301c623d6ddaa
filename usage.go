package zli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/xcaeser/zli/pkg/textutil"
)

const usageWidth = 80

// DefaultUsage renders the help text printed by --help for c, without styling. If c.UsageFunc is
// set, its result is returned instead.
func DefaultUsage(c *Command) string {
	if c == nil {
		return ""
	}
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.Ascii)
	return renderUsage(c, newUsageStyles(r))
}

func writeUsage(w io.Writer, c *Command, noColor bool) {
	if c == nil {
		return
	}
	r := lipgloss.NewRenderer(w)
	if noColor {
		r.SetColorProfile(termenv.Ascii)
	}
	fmt.Fprintln(w, renderUsage(c, newUsageStyles(r)))
}

type usageStyles struct {
	header lipgloss.Style
	name   lipgloss.Style
	muted  lipgloss.Style
	warn   lipgloss.Style
}

func newUsageStyles(r *lipgloss.Renderer) usageStyles {
	return usageStyles{
		header: r.NewStyle().Bold(true),
		name:   r.NewStyle().Foreground(lipgloss.Color("6")),
		muted:  r.NewStyle().Faint(true),
		warn:   r.NewStyle().Foreground(lipgloss.Color("3")),
	}
}

func renderUsage(c *Command, st usageStyles) string {
	if c.UsageFunc != nil {
		return c.UsageFunc(c)
	}

	var b strings.Builder

	if c.Deprecated {
		notice := "Deprecated."
		if c.ReplacedBy != "" {
			notice = fmt.Sprintf("Deprecated: use %q instead.", c.ReplacedBy)
		}
		b.WriteString(st.warn.Render(notice))
		b.WriteString("\n\n")
	}

	if c.ShortHelp != "" {
		for _, line := range textutil.Wrap(c.ShortHelp, usageWidth) {
			b.WriteString(line)
			b.WriteRune('\n')
		}
		b.WriteRune('\n')
	}
	if c.Description != "" {
		for _, line := range textutil.Wrap(c.Description, usageWidth) {
			b.WriteString(line)
			b.WriteRune('\n')
		}
		b.WriteRune('\n')
	}

	b.WriteString(st.header.Render("Usage:"))
	b.WriteString("\n  ")
	if c.Usage != "" {
		b.WriteString(c.Usage)
	} else {
		b.WriteString(defaultUsageLine(c))
	}
	b.WriteString("\n\n")

	if len(c.Aliases) > 0 || c.Shortcut != "" {
		names := []string{c.Name}
		if c.Shortcut != "" {
			names = append(names, c.Shortcut)
		}
		names = append(names, c.Aliases...)
		b.WriteString(st.header.Render("Aliases:"))
		b.WriteString("\n  ")
		b.WriteString(strings.Join(names, ", "))
		b.WriteString("\n\n")
	}

	if len(c.subs) > 0 {
		var rows []usageRow
		for _, sub := range c.subs {
			desc := sub.ShortHelp
			if sub.Deprecated {
				desc = strings.TrimSpace(desc + " (deprecated)")
			}
			rows = append(rows, usageRow{name: sub.Name, desc: desc})
		}
		b.WriteString(st.header.Render("Available Commands:"))
		b.WriteRune('\n')
		writeRows(&b, rows, st)
		b.WriteRune('\n')
	}

	if len(c.args) > 0 {
		var rows []usageRow
		for _, arg := range c.args {
			var notes []string
			if arg.Required {
				notes = append(notes, "required")
			}
			if arg.Variadic {
				notes = append(notes, "variadic")
			}
			desc := arg.Description
			if len(notes) > 0 {
				desc = strings.TrimSpace(desc + " " + st.muted.Render("("+strings.Join(notes, ", ")+")"))
			}
			rows = append(rows, usageRow{name: arg.Name, desc: desc})
		}
		b.WriteString(st.header.Render("Arguments:"))
		b.WriteRune('\n')
		writeRows(&b, rows, st)
		b.WriteRune('\n')
	}

	var flagRows []usageRow
	for _, f := range c.registry().specs {
		if f.Hidden {
			continue
		}
		flagRows = append(flagRows, usageRow{name: flagLabel(f), desc: flagDescription(f, st)})
	}
	if len(flagRows) > 0 {
		b.WriteString(st.header.Render("Flags:"))
		b.WriteRune('\n')
		writeRows(&b, flagRows, st)
		b.WriteRune('\n')
	}

	if len(c.subs) > 0 {
		fmt.Fprintf(&b, "Use \"%s [command] --help\" for more information about a command.\n", c.Path())
	}

	return strings.TrimRight(b.String(), "\n")
}

func defaultUsageLine(c *Command) string {
	parts := []string{c.Path()}
	if len(c.subs) > 0 {
		parts = append(parts, "[command]")
	}
	parts = append(parts, "[flags]")
	for _, arg := range c.args {
		name := arg.Name
		if arg.Variadic {
			name += "..."
		}
		if arg.Required {
			parts = append(parts, "<"+name+">")
		} else {
			parts = append(parts, "["+name+"]")
		}
	}
	return strings.Join(parts, " ")
}

func flagLabel(f *Flag) string {
	label := "    --" + f.Name
	if f.Shortcut != "" {
		label = "-" + f.Shortcut + ", --" + f.Name
	}
	if f.Type != Bool {
		label += " " + f.Type.String()
	}
	return label
}

func flagDescription(f *Flag, st usageStyles) string {
	if f.Default.isZero() {
		return f.Description
	}
	def := f.Default.String()
	if f.Type == String {
		def = fmt.Sprintf("%q", def)
	}
	return strings.TrimSpace(f.Description + " " + st.muted.Render("(default: "+def+")"))
}

type usageRow struct {
	name string
	desc string
}

// writeRows writes name/description rows with the descriptions aligned in one column and wrapped
// to the remaining width.
func writeRows(b *strings.Builder, rows []usageRow, st usageStyles) {
	maxLen := 0
	for _, row := range rows {
		maxLen = max(maxLen, lipgloss.Width(row.name))
	}
	nameWidth := maxLen + 4
	wrapWidth := usageWidth - nameWidth - 2

	for _, row := range rows {
		name := st.name.Render(row.name)
		if row.desc == "" {
			fmt.Fprintf(b, "  %s\n", name)
			continue
		}
		lines := textutil.Wrap(row.desc, wrapWidth)
		fmt.Fprintf(b, "  %s%s\n", textutil.PadRight(name, nameWidth), lines[0])

		indentPadding := strings.Repeat(" ", nameWidth+2)
		for _, line := range lines[1:] {
			fmt.Fprintf(b, "%s%s\n", indentPadding, line)
		}
	}
}

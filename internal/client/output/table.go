package output

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/fatih/color"
)

// TableWriter wraps tabwriter for formatted output
type TableWriter struct {
	writer *tabwriter.Writer
}

// NewTableWriter creates a new table writer on Stdout
func NewTableWriter() *TableWriter {
	return &TableWriter{writer: tabwriter.NewWriter(Stdout, 0, 0, 2, ' ', 0)}
}

// WriteHeader writes table headers
func (t *TableWriter) WriteHeader(headers ...string) {
	t.WriteRow(headers...)
}

// WriteRow writes a table row
func (t *TableWriter) WriteRow(values ...string) {
	for i, v := range values {
		if i > 0 {
			fmt.Fprint(t.writer, "\t")
		}
		fmt.Fprint(t.writer, v)
	}
	fmt.Fprintln(t.writer)
}

// Flush writes buffered output
func (t *TableWriter) Flush() error {
	return t.writer.Flush()
}

// YesNo renders a boolean table cell
func YesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// UintList renders ids as "1,2,3" or "-" when empty
func UintList(ids []uint) string {
	if len(ids) == 0 {
		return "-"
	}
	out := ""
	for i, id := range ids {
		if i > 0 {
			out += ","
		}
		out += strconv.FormatUint(uint64(id), 10)
	}
	return out
}

// PrintSuccess prints a success message with checkmark
func PrintSuccess(message string) {
	color.New(color.FgGreen).Fprintf(Stdout, "✓ %s\n", message)
}

// PrintError prints an error message
func PrintError(message string) {
	color.New(color.FgRed).Fprintf(Stderr, "✗ %s\n", message)
}

// PrintWarning prints a warning message
func PrintWarning(message string) {
	color.New(color.FgYellow).Fprintf(Stderr, "⚠ %s\n", message)
}

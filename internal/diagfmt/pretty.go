// Package diagfmt renders diagnostics for humans: one header line per
// diagnostic, the offending source line, and a caret underline aligned
// with display widths rather than byte counts.
package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"co/internal/diag"
	"co/internal/source"
)

// Options control the pretty printer.
type Options struct {
	Color bool
}

var (
	errColor  = color.New(color.FgRed, color.Bold)
	warnColor = color.New(color.FgYellow, color.Bold)
	noteColor = color.New(color.FgCyan)
	locColor  = color.New(color.Bold)
)

// Pretty writes every diagnostic of the bag. The bag is expected to be
// sorted already.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts Options) {
	if !opts.Color {
		color.NoColor = true
	}
	for _, d := range bag.Items() {
		printOne(w, d, fs)
	}
}

func printOne(w io.Writer, d diag.Diagnostic, fs *source.FileSet) {
	header(w, d.Severity, d.Code.String(), d.Message, d.Primary, fs)
	underlineSpan(w, d.Primary, fs)
	for _, n := range d.Notes {
		if n.Span.Empty() && n.Span.Start == 0 {
			fmt.Fprintf(w, "  %s: %s\n", noteColor.Sprint("note"), n.Msg)
			continue
		}
		header(w, diag.SevNote, "note", n.Msg, n.Span, fs)
		underlineSpan(w, n.Span, fs)
	}
}

func header(w io.Writer, sev diag.Severity, tag, msg string, sp source.Span, fs *source.FileSet) {
	pos := fs.Position(sp.File, sp.Start)
	file := fs.Get(sp.File)
	path := "<input>"
	if file != nil {
		path = file.Path
	}
	var sevStr string
	switch sev {
	case diag.SevError:
		sevStr = errColor.Sprintf("error %s", tag)
	case diag.SevWarning:
		sevStr = warnColor.Sprintf("warning %s", tag)
	default:
		sevStr = noteColor.Sprint(tag)
	}
	fmt.Fprintf(w, "%s: %s: %s\n", locColor.Sprintf("%s:%s", path, pos), sevStr, msg)
}

func underlineSpan(w io.Writer, sp source.Span, fs *source.FileSet) {
	pos := fs.Position(sp.File, sp.Start)
	line := fs.LineText(sp.File, pos.Line)
	if line == "" {
		return
	}
	fmt.Fprintf(w, "  %s\n", line)

	prefix := line
	if int(pos.Col-1) <= len(line) {
		prefix = line[:pos.Col-1]
	}
	pad := runewidth.StringWidth(strings.ReplaceAll(prefix, "\t", "    "))
	width := 1
	if !sp.Empty() {
		end := int(pos.Col-1) + int(sp.Len())
		if end > len(line) {
			end = len(line)
		}
		if end > int(pos.Col-1) {
			width = runewidth.StringWidth(line[pos.Col-1 : end])
		}
	}
	marker := "^"
	if width > 1 {
		marker += strings.Repeat("~", width-1)
	}
	fmt.Fprintf(w, "  %s%s\n", strings.Repeat(" ", pad), errColor.Sprint(marker))
}

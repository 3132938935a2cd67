// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package report

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/bureau-foundation/splitjoin/lib/partset"
	"github.com/bureau-foundation/splitjoin/lib/tui"
)

// Printer writes status lines to an output stream.
type Printer struct {
	out io.Writer

	// width caps the display width of each line. Zero means unlimited.
	width int

	pipeline func(name string) lipgloss.Style
	success  lipgloss.Style
	warning  lipgloss.Style
	faint    lipgloss.Style
	label    lipgloss.Style
}

// New returns a Printer writing to out. When styled is false every
// line is plain text regardless of what out is connected to.
func New(out io.Writer, styled bool) *Printer {
	profile := termenv.Ascii
	if styled {
		profile = termenv.ANSI256
	}
	// SetColorProfile is required: the renderer otherwise re-detects
	// the profile from out and ignores WithProfile.
	renderer := lipgloss.NewRenderer(out, termenv.WithProfile(profile))
	renderer.SetColorProfile(profile)

	theme := tui.DefaultTheme
	return &Printer{
		out: out,
		pipeline: func(name string) lipgloss.Style {
			return renderer.NewStyle().Bold(true).Foreground(theme.PipelineColor(name))
		},
		success: renderer.NewStyle().Foreground(theme.Success),
		warning: renderer.NewStyle().Bold(true).Foreground(theme.Warning),
		faint:   renderer.NewStyle().Foreground(theme.FaintText),
		label:   renderer.NewStyle().Foreground(theme.HeaderForeground),
	}
}

// ForFile returns a Printer for file, styled and width-limited when
// file is a terminal.
func ForFile(file *os.File) *Printer {
	fd := int(file.Fd())
	if !term.IsTerminal(fd) {
		return New(file, false)
	}
	printer := New(file, true)
	if width, _, err := term.GetSize(fd); err == nil {
		printer.width = width
	}
	return printer
}

// WithWidth returns a copy of p that truncates lines to width display
// columns.
func (p *Printer) WithWidth(width int) *Printer {
	clone := *p
	clone.width = width
	return &clone
}

func (p *Printer) println(line string) {
	fmt.Fprintln(p.out, tui.FitLine(line, p.width))
}

// pipelineTitle is the capitalized label that opens completion lines.
func pipelineTitle(pipeline string) string {
	if pipeline == partset.PipelineLines {
		return "CSV"
	}
	return "Binary"
}

// pipelineNoun names the file kind in progress lines.
func pipelineNoun(pipeline string) string {
	if pipeline == partset.PipelineLines {
		return "CSV file"
	}
	return "binary file"
}

// ChunkStarted announces a chunk operation.
func (p *Printer) ChunkStarted(pipeline string) {
	p.println(p.faint.Render(fmt.Sprintf("Chunking the %s...", pipelineNoun(pipeline))))
}

// JoinStarted announces a join operation.
func (p *Printer) JoinStarted(pipeline string) {
	p.println(p.faint.Render(fmt.Sprintf("Joining the %s chunks...", pipelineNoun(pipeline))))
}

// ChunkComplete reports a finished chunk operation.
func (p *Printer) ChunkComplete(result *partset.ChunkResult) {
	line := p.pipeline(result.Pipeline).Render(pipelineTitle(result.Pipeline)+" chunking complete!") +
		p.success.Render(fmt.Sprintf(" %d files created.", len(result.Parts)))

	detail := humanize.IBytes(uint64(result.SourceSize)) + " read"
	if largest := largestPart(result.Parts); largest != nil {
		detail += ", largest part " + humanize.IBytes(uint64(largest.Size))
	}
	p.println(line + p.faint.Render("  ("+detail+")"))
}

// JoinComplete reports a finished join operation.
func (p *Printer) JoinComplete(pipeline string, result *partset.JoinResult) {
	line := p.pipeline(pipeline).Render(pipelineTitle(pipeline)+" file assembly complete!")
	detail := fmt.Sprintf("%s, %s from %d parts",
		result.Destination, humanize.IBytes(uint64(result.Bytes)), len(result.Parts))
	p.println(line + p.faint.Render("  ("+detail+")"))
}

// ManifestWritten reports where a manifest was saved.
func (p *Printer) ManifestWritten(path string, manifest *partset.Manifest) {
	p.println(p.success.Render("Manifest written: ") + path +
		p.faint.Render(fmt.Sprintf("  (%d parts, set %s)", manifest.PartCount, manifest.SetID)))
}

// Unsupported reports a source whose extension matches no pipeline.
func (p *Printer) Unsupported(err *partset.UnsupportedTypeError) {
	extension := err.Extension
	if extension == "" {
		extension = "no extension"
	}
	p.println(p.warning.Render("Unsupported file type!") + p.faint.Render("  ("+extension+")"))
}

// Manifest prints the contents of a manifest: a field table followed
// by one line per part.
func (p *Printer) Manifest(path string, manifest *partset.Manifest) {
	fields := [][2]string{
		{"manifest", path},
		{"set id", manifest.SetID},
		{"pipeline", manifest.Pipeline},
		{"source", manifest.Source},
		{"source size", humanize.IBytes(uint64(manifest.SourceSize))},
		{"prefix", manifest.Prefix},
		{"part extension", manifest.PartExtension},
		{"parts", fmt.Sprintf("%d", manifest.PartCount)},
	}
	labels := make([]string, len(fields))
	for i, field := range fields {
		labels[i] = field[0]
	}
	labelWidth := tui.ColumnWidth(labels) + 2

	for _, field := range fields {
		p.println(tui.PadRight(p.label.Render(field[0]+":"), labelWidth) + field[1])
	}

	if len(manifest.Parts) == 0 {
		return
	}
	names := make([]string, len(manifest.Parts))
	numbers := make([]string, len(manifest.Parts))
	for i, part := range manifest.Parts {
		names[i] = part.Name
		numbers[i] = fmt.Sprintf("%d", part.Number)
	}
	nameWidth := tui.ColumnWidth(names) + 2
	numberWidth := tui.ColumnWidth(numbers) + 2

	p.println("")
	for i, part := range manifest.Parts {
		line := "  " + tui.PadRight(p.faint.Render(numbers[i]), numberWidth) +
			tui.PadRight(part.Name, nameWidth) + humanize.IBytes(uint64(part.Size))
		if part.Lines > 0 {
			line += p.faint.Render(fmt.Sprintf("  %d lines", part.Lines))
		}
		p.println(line)
	}
}

func largestPart(parts []partset.PartInfo) *partset.PartInfo {
	var largest *partset.PartInfo
	for i := range parts {
		if largest == nil || parts[i].Size > largest.Size {
			largest = &parts[i]
		}
	}
	return largest
}

// Package render turns parsed patch documents, apply results, and status
// lines into styled terminal output. The CLI and the interactive picker
// share one Renderer so previews look identical everywhere.
package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/buivietphi/ft-patch-package/pkg/patch"
)

// Renderer holds the style set for one process. Construct it through New
// so the color profile matches the terminal and NO_COLOR.
type Renderer struct {
	header     lipgloss.Style
	hunk       lipgloss.Style
	insert     lipgloss.Style
	delete     lipgloss.Style
	insertEmph lipgloss.Style
	deleteEmph lipgloss.Style
	ok         lipgloss.Style
	warn       lipgloss.Style
	fail       lipgloss.Style
	muted      lipgloss.Style
}

// New builds a Renderer. noColor forces the ASCII profile; otherwise the
// terminal's detected profile is used, already downgraded by NO_COLOR and
// CLICOLOR per termenv.
func New(noColor bool) *Renderer {
	if noColor {
		return NewMode("never")
	}
	return NewMode("auto")
}

// NewMode builds a Renderer from a color mode: "auto", "always", or
// "never". Unknown modes fall back to auto.
func NewMode(mode string) *Renderer {
	var profile termenv.Profile
	switch mode {
	case "never":
		profile = termenv.Ascii
	case "always":
		profile = termenv.ANSI256
	default:
		profile = termenv.EnvColorProfile()
	}
	lipgloss.SetColorProfile(profile)

	return &Renderer{
		header:     lipgloss.NewStyle().Bold(true),
		hunk:       lipgloss.NewStyle().Foreground(lipgloss.Color("39")),  // Blue
		insert:     lipgloss.NewStyle().Foreground(lipgloss.Color("78")),  // Green
		delete:     lipgloss.NewStyle().Foreground(lipgloss.Color("197")), // Red
		insertEmph: lipgloss.NewStyle().Foreground(lipgloss.Color("120")).Background(lipgloss.Color("22")),
		deleteEmph: lipgloss.NewStyle().Foreground(lipgloss.Color("210")).Background(lipgloss.Color("52")),
		ok:         lipgloss.NewStyle().Foreground(lipgloss.Color("78")),
		warn:       lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // Amber
		fail:       lipgloss.NewStyle().Foreground(lipgloss.Color("197")),
		muted:      lipgloss.NewStyle().Faint(true),
	}
}

// Document renders every file section. highlight adds intra-line emphasis
// on replaced line pairs.
func (r *Renderer) Document(doc patch.Document, highlight bool) string {
	var b strings.Builder
	for i, fd := range doc.Files {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(r.FileDiff(fd, highlight))
	}
	return b.String()
}

// FileDiff renders one file section: a header naming the change followed
// by its hunks.
func (r *Renderer) FileDiff(fd patch.FileDiff, highlight bool) string {
	var b strings.Builder
	b.WriteString(r.fileHeader(fd))
	b.WriteByte('\n')
	for _, h := range fd.Hunks {
		r.renderHunk(&b, h, highlight)
	}
	return b.String()
}

// Summary renders the one-line document total, e.g. "2 files, +12 -4".
func (r *Renderer) Summary(s patch.Stats) string {
	noun := "files"
	if s.Files == 1 {
		noun = "file"
	}
	return fmt.Sprintf("%d %s, %s %s",
		s.Files, noun,
		r.insert.Render("+"+strconv.Itoa(s.Inserts)),
		r.delete.Render("-"+strconv.Itoa(s.Deletes)))
}

// ResultLine renders one apply outcome as "<status> <path>".
func (r *Renderer) ResultLine(res patch.Result) string {
	style := r.header
	switch res.Status {
	case "A":
		style = r.insert
	case "D":
		style = r.delete
	case "M":
		style = r.hunk
	}
	return style.Render(res.Status) + " " + res.Path
}

// OK styles a success token.
func (r *Renderer) OK(text string) string { return r.ok.Render(text) }

// Warn styles a warning token.
func (r *Renderer) Warn(text string) string { return r.warn.Render(text) }

// Fail styles a failure token.
func (r *Renderer) Fail(text string) string { return r.fail.Render(text) }

// Muted styles secondary text.
func (r *Renderer) Muted(text string) string { return r.muted.Render(text) }

// Bold styles emphasised text.
func (r *Renderer) Bold(text string) string { return r.header.Render(text) }

func (r *Renderer) fileHeader(fd patch.FileDiff) string {
	verb := "modified"
	style := r.hunk
	switch {
	case fd.IsCreation():
		verb = "created"
		style = r.insert
	case fd.IsDeletion():
		verb = "deleted"
		style = r.delete
	}
	inserts, deletes := fileStats(fd)
	return fmt.Sprintf("%s %s  %s %s",
		style.Render(verb),
		r.header.Render(fd.Path()),
		r.insert.Render("+"+strconv.Itoa(inserts)),
		r.delete.Render("-"+strconv.Itoa(deletes)))
}

func (r *Renderer) renderHunk(b *strings.Builder, h patch.Hunk, highlight bool) {
	b.WriteString(r.hunk.Render(hunkHeader(h)))
	b.WriteByte('\n')

	lines := h.Lines
	for i := 0; i < len(lines); {
		switch lines[i].Kind {
		case patch.LineDelete:
			j := i
			for j < len(lines) && lines[j].Kind == patch.LineDelete {
				j++
			}
			k := j
			for k < len(lines) && lines[k].Kind == patch.LineInsert {
				k++
			}
			r.renderReplacement(b, lines[i:j], lines[j:k], highlight)
			i = k
		case patch.LineInsert:
			b.WriteString(r.insert.Render("+" + lines[i].Text))
			b.WriteByte('\n')
			i++
		default:
			b.WriteString(" " + lines[i].Text)
			b.WriteByte('\n')
			i++
		}
	}
}

// renderReplacement writes a run of deletes followed by a run of inserts.
// With highlight on, lines are paired index-wise and their changed spans
// emphasised.
func (r *Renderer) renderReplacement(b *strings.Builder, dels, ins []patch.Line, highlight bool) {
	paired := min(len(dels), len(ins))
	oldSides := make([]string, paired)
	newSides := make([]string, paired)
	if highlight {
		for idx := 0; idx < paired; idx++ {
			oldSides[idx], newSides[idx] = r.highlightPair(dels[idx].Text, ins[idx].Text)
		}
	}
	for idx, line := range dels {
		if highlight && idx < paired {
			b.WriteString(r.delete.Render("-") + oldSides[idx])
		} else {
			b.WriteString(r.delete.Render("-" + line.Text))
		}
		b.WriteByte('\n')
	}
	for idx, line := range ins {
		if highlight && idx < paired {
			b.WriteString(r.insert.Render("+") + newSides[idx])
		} else {
			b.WriteString(r.insert.Render("+" + line.Text))
		}
		b.WriteByte('\n')
	}
}

// highlightPair renders one replaced line pair. Unchanged spans keep the
// plain insert/delete colors, changed spans get the emphasis styles.
func (r *Renderer) highlightPair(oldText, newText string) (string, string) {
	matcher := diffmatchpatch.New()
	diffs := matcher.DiffCleanupSemantic(matcher.DiffMain(oldText, newText, false))
	var oldOut, newOut strings.Builder
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			oldOut.WriteString(r.deleteEmph.Render(d.Text))
		case diffmatchpatch.DiffInsert:
			newOut.WriteString(r.insertEmph.Render(d.Text))
		default:
			oldOut.WriteString(r.delete.Render(d.Text))
			newOut.WriteString(r.insert.Render(d.Text))
		}
	}
	return oldOut.String(), newOut.String()
}

func hunkHeader(h patch.Hunk) string {
	return fmt.Sprintf("@@ -%s +%s @@",
		rangeText(h.OriginalStart, h.OriginalCount),
		rangeText(h.ModifiedStart, h.ModifiedCount))
}

func rangeText(start, count int) string {
	if count == 1 {
		return strconv.Itoa(start)
	}
	return strconv.Itoa(start) + "," + strconv.Itoa(count)
}

func fileStats(fd patch.FileDiff) (inserts, deletes int) {
	for _, h := range fd.Hunks {
		for _, line := range h.Lines {
			switch line.Kind {
			case patch.LineInsert:
				inserts++
			case patch.LineDelete:
				deletes++
			}
		}
	}
	return inserts, deletes
}

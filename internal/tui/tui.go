// Package tui implements the interactive picker behind apply
// --interactive: the patch's file sections as a toggle list with a live
// hunk preview, so only the confirmed subset gets applied.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/buivietphi/ft-patch-package/internal/render"
	"github.com/buivietphi/ft-patch-package/pkg/patch"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63")) // Mauve
	cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	helpStyle   = lipgloss.NewStyle().Faint(true)
)

// Pick runs the picker over doc and returns the confirmed subset. ok is
// false when the user cancelled instead of confirming.
func Pick(doc patch.Document, renderer *render.Renderer) (selection patch.Document, ok bool, err error) {
	if doc.IsEmpty() {
		return doc, true, nil
	}
	p := tea.NewProgram(newModel(doc, renderer), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return patch.Document{}, false, fmt.Errorf("run picker: %w", err)
	}
	m, isModel := final.(model)
	if !isModel || !m.confirmed {
		return patch.Document{}, false, nil
	}
	return m.selection(), true, nil
}

type model struct {
	doc       patch.Document
	renderer  *render.Renderer
	selected  []bool
	cursor    int
	vp        viewport.Model
	ready     bool
	confirmed bool
}

func newModel(doc patch.Document, renderer *render.Renderer) model {
	selected := make([]bool, len(doc.Files))
	for i := range selected {
		selected[i] = true
	}
	return model{doc: doc, renderer: renderer, selected: selected}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.vp.Width = msg.Width
		m.vp.Height = max(msg.Height-m.chromeHeight(), 3)
		m.ready = true
		m.refreshPreview()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.confirmed = false
			return m, tea.Quit
		case "enter":
			m.confirmed = true
			return m, tea.Quit
		case "j", "down":
			if m.cursor < len(m.doc.Files)-1 {
				m.cursor++
				m.refreshPreview()
			}
			return m, nil
		case "k", "up":
			if m.cursor > 0 {
				m.cursor--
				m.refreshPreview()
			}
			return m, nil
		case " ":
			m.selected[m.cursor] = !m.selected[m.cursor]
			return m, nil
		case "a":
			for i := range m.selected {
				m.selected[i] = true
			}
			return m, nil
		case "n":
			for i := range m.selected {
				m.selected[i] = false
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

func (m model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Select files to apply"))
	b.WriteString(helpStyle.Render(fmt.Sprintf("  %d of %d selected", m.selectedCount(), len(m.doc.Files))))
	b.WriteString("\n\n")

	for i, fd := range m.doc.Files {
		pointer := "  "
		if i == m.cursor {
			pointer = cursorStyle.Render("> ")
		}
		box := "[ ]"
		if m.selected[i] {
			box = "[x]"
		}
		entry := m.renderer.ResultLine(patch.Result{Status: statusLetter(fd), Path: fd.Path()})
		b.WriteString(fmt.Sprintf("%s%s %s\n", pointer, box, entry))
	}
	b.WriteString("\n")

	if m.ready {
		b.WriteString(m.vp.View())
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("space toggle • a all • n none • j/k move • enter apply • q cancel"))
	return b.String()
}

// chromeHeight counts the fixed lines around the preview viewport.
func (m model) chromeHeight() int {
	return len(m.doc.Files) + 5
}

func (m *model) refreshPreview() {
	if !m.ready || len(m.doc.Files) == 0 {
		return
	}
	m.vp.SetContent(m.renderer.FileDiff(m.doc.Files[m.cursor], false))
	m.vp.GotoTop()
}

func (m model) selectedCount() int {
	count := 0
	for _, on := range m.selected {
		if on {
			count++
		}
	}
	return count
}

func (m model) selection() patch.Document {
	var out patch.Document
	for i, fd := range m.doc.Files {
		if m.selected[i] {
			out.Files = append(out.Files, fd)
		}
	}
	return out
}

func statusLetter(fd patch.FileDiff) string {
	switch {
	case fd.IsCreation():
		return "A"
	case fd.IsDeletion():
		return "D"
	default:
		return "M"
	}
}

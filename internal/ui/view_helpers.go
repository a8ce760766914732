// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package ui

import (
	"fmt"
	"strings"

	"rgui/internal/version"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

func (m *model) renderHeader() string {
	title := titleStyle.Render("Repomix") + " " + dimStyle.Render(version.Get().Version)
	root := dimStyle.Render("No project directory selected")
	if r := m.ws.Root(); r != "" {
		root = rootStyle.Render(truncate(r, m.width))
	}
	return title + "\n" + root
}

// renderHelp joins bindings into a single footer line, wrapped to the window width.
func (m *model) renderHelp(bindings ...key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, footerKeyStyle.Render(h.Key)+" "+footerDescStyle.Render(h.Desc))
	}
	help := strings.Join(parts, footerSeparatorStyle.Render(" | "))
	return lipgloss.NewStyle().Width(m.width).Render(help)
}

func (m *model) renderActivity(n int) string {
	start := max(0, len(m.activity)-n)
	lines := make([]string, 0, n)
	for _, l := range m.activity[start:] {
		lines = append(lines, dimStyle.Render(truncate(l, m.width)))
	}
	for len(lines) < n {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func (m *model) renderPreview() string {
	p := m.ws.Preview()
	if p == "" {
		return dimStyle.Render("Select a project directory to build the command.")
	}
	return lipgloss.NewStyle().Width(m.width).Render(stepStyle.Render("$ ") + p)
}

// paneWidths splits the window: Files takes two fifths, the rest share the remainder.
func (m *model) paneWidths() [paneCount]int {
	var w [paneCount]int
	total := max(m.width, 40)
	w[paneFiles] = total * 2 / 5
	rest := total - w[paneFiles]
	w[paneExcluded] = rest / 3
	w[panePatterns] = rest / 3
	w[paneOptions] = rest - 2*(rest/3)
	return w
}

func (m *model) renderPanes() string {
	widths := m.paneWidths()
	h := m.listHeight()

	cols := make([]string, 0, paneCount)
	for p := paneFiles; p < paneCount; p++ {
		cols = append(cols, m.renderPane(p, widths[p]-2, h))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}

// renderPane draws one bordered list. width and height exclude the border.
func (m *model) renderPane(p pane, width, height int) string {
	items := m.items(p)
	ls := m.lists[p]

	title := fmt.Sprintf("%s (%d)", p.title(), len(items))
	if p == paneFiles && m.filter != "" {
		title += " /" + m.filter
	}
	if n := len(m.gitignored); p == paneFiles && n > 0 {
		title += fmt.Sprintf(" %d in .gitignore", n)
	}
	if n := len(ls.selected); n > 0 {
		title += fmt.Sprintf(" %d selected", n)
	}
	lines := []string{paneTitleStyle.Render(truncate(title, width))}

	if len(items) == 0 {
		lines = append(lines, dimStyle.Render(emptyPaneText(p)))
	}
	end := min(len(items), ls.offset+height)
	for i := ls.offset; i < end; i++ {
		lines = append(lines, m.renderRow(p, i, items[i], width))
	}

	style := paneStyle
	if p == m.focus && m.currentState != stateInput {
		style = focusedPaneStyle
	}
	return style.Width(width).Height(height + 1).Render(strings.Join(lines, "\n"))
}

func (m *model) renderRow(p pane, i int, item string, width int) string {
	ls := m.lists[p]
	cursor := "  "
	if i == ls.cursor && p == m.focus {
		cursor = cursorStyle.Render("> ")
	}

	if p == paneOptions {
		row := m.optRows[i]
		if row.kind == optFlag {
			checkbox := "[ ]"
			if row.on {
				checkbox = successStyle.Render("[x]")
			}
			return cursor + checkbox + " " + truncate(row.label, width-6)
		}
		label := row.label + ": "
		return cursor + label + identifierColor.Render(truncate(row.value, width-2-len(label)))
	}

	checkbox := "[ ]"
	if _, ok := ls.selected[item]; ok {
		checkbox = successStyle.Render("[x]")
	}
	if _, ok := m.gitignored[item]; ok && p == paneFiles {
		return cursor + checkbox + " " + dimStyle.Render(truncate(item, width-8)+" ~")
	}
	return cursor + checkbox + " " + truncate(item, width-6)
}

func emptyPaneText(p pane) string {
	switch p {
	case paneFiles:
		return "  no files"
	case paneExcluded:
		return "  nothing excluded"
	default:
		return "  no patterns"
	}
}

func (m *model) mainHelp() string {
	km := m.keymap
	return m.renderHelp(km.Tab, km.Select, km.Exclude, km.Include, km.AddPattern, km.RemovePattern,
		km.Filter, km.Style, km.Output, km.Header, km.Instructions, km.ChangeDir, km.Reset,
		km.Copy, km.Save, km.Run, km.Quit)
}

func (m *model) renderMainView() (string, string) {
	body := strings.Join([]string{
		m.renderPanes(),
		m.renderPreview(),
		m.renderActivity(logLinesShown),
	}, "\n")
	return body, m.mainHelp()
}

func (m *model) renderNoRootView() (string, string) {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(statusStyle.Render("Choose the repository to pack."))
	b.WriteString("\n\n")
	b.WriteString(m.renderActivity(logLinesShown))
	footer := "\n" + m.renderHelp(m.keymap.ChangeDir, m.keymap.Quit)
	return b.String(), footer
}

func (m *model) renderInputView() (string, string) {
	var b strings.Builder
	b.WriteString(m.renderPanes())
	b.WriteString("\n")
	b.WriteString(titleStyle.Render(inputTitle(m.inputKind)))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	if m.inputErr != "" {
		b.WriteString("\n" + errorStyle.Render(m.inputErr))
	} else if m.input.Err != nil {
		b.WriteString("\n" + errorStyle.Render(m.input.Err.Error()))
	}
	return b.String(), m.renderHelp(m.keymap.Enter, m.keymap.Esc)
}

func (m *model) renderConfirmView() (string, string) {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(titleStyle.Render("Run repomix?"))
	b.WriteString("\n\n")
	b.WriteString("Directory: " + identifierColor.Render(m.pendingStep.Dir) + "\n")
	b.WriteString("Output:    " + identifierColor.Render(m.pendingOutput) + "\n")
	b.WriteString("Files:     " + identifierColor.Render(fmt.Sprintf("%d", len(m.ws.Included()))) + "\n\n")
	b.WriteString(lipgloss.NewStyle().Width(m.width).Render(stepStyle.Render("$ ") + m.ws.Preview()))
	b.WriteString("\n")
	return b.String(), "\n" + m.renderHelp(m.keymap.Yes, m.keymap.No)
}

// runViewportHeight leaves room for the header, one status line and the help line.
func (m *model) runViewportHeight() int {
	return max(3, m.height-headerHeight-3)
}

func (m *model) renderRunningView() (string, string) {
	m.viewport.Width = m.width
	m.viewport.Height = m.runViewportHeight()
	status := statusStyle.Render(fmt.Sprintf("Running repomix in %s...", m.pendingStep.Dir))
	footer := m.renderHelp(m.keymap.Up, m.keymap.Down, m.keymap.PgUp, m.keymap.PgDown)
	return status + "\n" + m.viewport.View(), footer
}

func (m *model) renderResultView() (string, string) {
	m.viewport.Width = m.width
	m.viewport.Height = m.runViewportHeight()
	footer := m.renderHelp(m.keymap.Back, m.keymap.Up, m.keymap.Down, m.keymap.Copy, m.keymap.Quit)
	return m.resultBanner() + "\n" + m.viewport.View(), footer
}

// truncate shortens s to at most width runes, marking the cut with an ellipsis.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	return string(r[:width-1]) + "…"
}

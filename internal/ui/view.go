package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/stash/internal/coordinator"
	"github.com/five82/stash/internal/render"
)

// View implements tea.Model.
func (m Model) View() string {
	if m.showHelp {
		return m.renderHelp()
	}

	styles := m.theme.Styles()
	var body string
	switch {
	case m.showLogs:
		body = m.renderLogs(styles)
	case m.detail != nil:
		body = m.renderDetail(styles)
	default:
		body = m.renderScreen(styles)
	}

	parts := []string{m.renderHeader(styles), body}
	if m.toast != nil {
		style := styles.Toast
		if m.toast.error {
			style = styles.ToastError
		}
		parts = append(parts, style.Render(m.toast.text))
	}
	parts = append(parts, styles.Footer.Render(m.help.ShortHelpView(m.keys.ShortHelp())))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) renderHeader(styles Styles) string {
	title := styles.AccentText.Bold(true).Render("stash")
	info := fmt.Sprintf("favorites · %s", m.screen.Phase)
	if m.screen.Phase == coordinator.PhaseSuccess {
		info = fmt.Sprintf("favorites · %d", len(m.screen.Items))
	}
	right := styles.FaintText.Render(m.theme.Name)
	return styles.Header.Render(title + "  " + styles.MutedText.Render(info) + "  " + right)
}

func (m Model) renderScreen(styles Styles) string {
	switch m.screen.Phase {
	case coordinator.PhaseLoading:
		return m.spinner.View() + " " + styles.MutedText.Render("Loading favorites...")
	case coordinator.PhaseNoData:
		return styles.MutedText.Render("No favorites yet. Star items in the catalog to see them here.")
	case coordinator.PhaseError:
		reason := m.screen.Reason()
		msg := styles.DangerText.Render(reason.Message())
		if reason.Retryable() {
			msg += "\n" + styles.MutedText.Render("Press r to retry.")
		}
		return msg
	}
	return m.renderRows(styles)
}

func (m Model) renderRows(styles Styles) string {
	var b strings.Builder
	n := 0
	for i, row := range m.rows {
		if row.Kind == render.KindPlaceholder {
			b.WriteString(styles.Placeholder.Render("   -- sponsored --"))
			b.WriteString("\n")
			continue
		}
		n++
		line := fmt.Sprintf("%2d. %s", n, row.Entry.Name)
		if cat := strings.TrimSpace(row.Entry.Category); cat != "" {
			line += " " + styles.FaintText.Render("["+cat+"]")
		}
		if i == m.cursor {
			line = styles.Selected.Render(line)
		} else {
			line = styles.Text.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func (m Model) renderDetail(styles Styles) string {
	item := m.detail
	lines := []string{
		styles.Text.Bold(true).Render(item.Name),
		styles.FaintText.Render(item.ID),
	}
	if cat := strings.TrimSpace(item.Category); cat != "" {
		lines = append(lines, styles.AccentText.Render(cat))
	}
	if desc := strings.TrimSpace(item.Description); desc != "" {
		lines = append(lines, "", styles.Text.Render(desc))
	}
	if icon := strings.TrimSpace(item.IconURL); icon != "" {
		lines = append(lines, "", styles.MutedText.Render("icon: "+icon))
	}
	lines = append(lines, "", styles.MutedText.Render("f toggle favorite · esc back"))
	return styles.Modal.Render(strings.Join(lines, "\n"))
}

func (m Model) renderLogs(styles Styles) string {
	if m.logFile == "" {
		return styles.MutedText.Render("Logging to a file is disabled.")
	}
	return m.logView.View()
}

func (m Model) renderHelp() string {
	styles := m.theme.Styles()
	full := m.help
	full.ShowAll = true

	content := styles.Text.Bold(true).Render("Keyboard Shortcuts") + "\n" +
		styles.FaintText.Render(strings.Repeat("─", 30)) + "\n\n" +
		full.View(m.keys)

	modal := styles.Modal.Render(content)
	if m.width == 0 || m.height == 0 {
		return modal
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(m.theme.Background)),
	)
}

func joinLines(lines []string) string {
	return strings.Join(lines, "\n")
}

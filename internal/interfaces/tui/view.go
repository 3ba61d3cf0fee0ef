package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"writemaster-api/internal/application/workspace"
	"writemaster-api/internal/workflow/catalog"
	"writemaster-api/internal/workflow/node"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	activeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	pinStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	spinnerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	dividerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
)

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.headerView())
	b.WriteString("\n")
	b.WriteString(m.formatsView())
	b.WriteString("\n\n")
	b.WriteString(m.idea.View())
	b.WriteString("\n")
	b.WriteString(m.statusView())
	b.WriteString("\n")
	b.WriteString(dividerStyle.Render(strings.Repeat("─", max(m.width, 20))))
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	if m.focus == focusAPIKey {
		b.WriteString(m.apiKey.View())
	} else {
		b.WriteString(m.instruction.View())
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))

	return b.String()
}

func (m Model) headerView() string {
	s := m.snap.Settings
	tone := "no tone"
	if t := catalog.ResolveTone(s.ToneID); t != nil {
		tone = t.Name
	}
	key := errorStyle.Render("no API key")
	if s.APIKey != "" {
		key = activeStyle.Render("API key set")
	}
	meta := fmt.Sprintf("style: %s · %s · %s", catalog.ResolveStyle(s.StyleID).Name, tone, key)
	return titleStyle.Render("WriteMaster") + "  " + mutedStyle.Render(meta)
}

func (m Model) formatsView() string {
	parts := make([]string, 0, len(catalog.FormatIDs()))
	for i, f := range catalog.FormatList() {
		label := fmt.Sprintf("%d %s", i+1, f.Name)
		if m.snap.Settings.HasFormat(f.ID) {
			parts = append(parts, activeStyle.Render("["+label+"]"))
		} else {
			parts = append(parts, mutedStyle.Render(" "+label+" "))
		}
	}
	return strings.Join(parts, " ")
}

func (m Model) statusView() string {
	switch {
	case m.snap.Phase != workspace.PhaseIdle:
		return m.spinner.View() + " " + mutedStyle.Render(m.snap.Phase.String()+"...")
	case m.snap.Error != "":
		return errorStyle.Render(m.snap.Error)
	case m.status != "":
		return mutedStyle.Render(m.status)
	}
	return ""
}

// renderOutputs 输出区内容：每个格式一组，展开的格式显示全文
func (m Model) renderOutputs() string {
	if len(m.snap.Outputs) == 0 {
		return mutedStyle.Render("Nothing yet. Type an idea and press enter.")
	}

	var b strings.Builder
	index := 0
	for _, fo := range m.snap.Outputs {
		arrow := "▸"
		if fo.Expanded {
			arrow = "▾"
		}
		b.WriteString(titleStyle.Render(fmt.Sprintf("%s %s (%d)", arrow, fo.Name, len(fo.Items))))
		b.WriteString("\n")

		for _, it := range fo.Items {
			b.WriteString(m.itemHeader(it, index == m.cursor))
			b.WriteString("\n")
			if fo.Expanded {
				b.WriteString(m.itemBody(it))
			} else {
				b.WriteString("    " + mutedStyle.Render(preview(it.Content, m.width-8)))
				b.WriteString("\n")
			}
			index++
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) itemHeader(it workspace.Item, selected bool) string {
	marker := "  "
	if selected {
		marker = selectedStyle.Render("❯ ")
	}
	meta := fmt.Sprintf("%s · %d chars · %d words", catalog.ResolveStyle(it.StyleID).Name, it.Chars(), it.Words())
	if t := catalog.ResolveTone(it.ToneID); t != nil {
		meta += " · " + t.Name
	}
	line := marker + mutedStyle.Render(meta)
	if it.Pinned {
		line += " " + pinStyle.Render("pinned")
	}
	return line
}

func (m Model) itemBody(it workspace.Item) string {
	segments := it.Segments()
	if len(segments) == 1 {
		return m.markdown(it.Content)
	}
	var b strings.Builder
	for i, seg := range segments {
		b.WriteString(mutedStyle.Render(fmt.Sprintf("    %d/%d", i+1, len(segments))))
		b.WriteString("\n")
		b.WriteString(m.markdown(seg))
	}
	return b.String()
}

// preview 首行截断
func preview(content string, width int) string {
	line := strings.TrimSpace(content)
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	return node.TruncateByRunes(line, max(width, 20))
}

package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"writemaster-api/internal/workflow/catalog"
	"writemaster-api/internal/workflow/node"
	apperrors "writemaster-api/pkg/errors"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// renderMarkdown 渲染失败时原样返回
func renderMarkdown(content string, width int) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return content
	}
	out, err := r.Render(content)
	if err != nil {
		return content
	}
	return out
}

func printResult(w io.Writer, formatID, content string, markdown bool) {
	name := catalog.ResolveFormat(formatID).Name
	stats := fmt.Sprintf("%d chars · %d words", node.CountChars(content), node.CountWords(content))
	fmt.Fprintf(w, "%s  %s\n\n", headingStyle.Render(name), mutedStyle.Render(stats))

	if markdown {
		fmt.Fprintln(w, strings.TrimRight(renderMarkdown(content, 80), "\n"))
	} else {
		fmt.Fprintln(w, content)
	}
	fmt.Fprintln(w)
}

func printError(w io.Writer, formatID string, err error) {
	name := catalog.ResolveFormat(formatID).Name
	fmt.Fprintf(w, "%s  %s\n\n", headingStyle.Render(name), errorStyle.Render(apperrors.UserMessage(err)))
}

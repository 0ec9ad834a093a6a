package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Heban-7/governed-ai-native-ide/internal/govtypes"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			MarginBottom(1)

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	pathStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	revisionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244"))

	astRefactorStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("46"))

	intentEvolutionStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("214"))

	unknownMutationStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("241")).
				Italic(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1)
)

func mutationStyle(class govtypes.MutationClass) lipgloss.Style {
	switch class {
	case govtypes.MutationASTRefactor:
		return astRefactorStyle
	case govtypes.MutationIntentEvolution:
		return intentEvolutionStyle
	default:
		return unknownMutationStyle
	}
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("agent_trace.jsonl") + "\n")

	if m.err != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("error: %v", m.err)) + "\n")
	}

	if len(m.records) == 0 {
		b.WriteString(pathStyle.Render("(waiting for trace records...)") + "\n")
	}

	for i, rec := range m.records {
		line := renderRecord(rec)
		if i == m.cursor {
			line = selectedStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}

	b.WriteString(helpStyle.Render("↑/↓ scroll · q quit"))
	return b.String()
}

func renderRecord(rec govtypes.TraceRecord) string {
	var paths []string
	var class govtypes.MutationClass = govtypes.MutationUnknown
	for _, f := range rec.Files {
		paths = append(paths, f.RelativePath)
		for _, conv := range f.Conversations {
			class = conv.Meta.MutationClass
		}
	}
	return fmt.Sprintf("%s %s %s",
		revisionStyle.Render(rec.Timestamp),
		pathStyle.Render(strings.Join(paths, ", ")),
		mutationStyle(class).Render(string(class)),
	)
}

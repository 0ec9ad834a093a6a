package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Heban-7/governed-ai-native-ide/internal/govtypes"
)

const pollInterval = 500 * time.Millisecond

type recordsMsg []govtypes.TraceRecord

type tickMsg time.Time

// Model is the bubbletea model for `govgate ledger tail --watch`.
type Model struct {
	reader  *tailReader
	records []govtypes.TraceRecord
	cursor  int
	width   int
	height  int

	quitting bool
	err      error
}

// NewModel builds a Model that tails ledgerPath, starting empty — the
// initial poll (triggered by Init) picks up whatever is already on disk.
func NewModel(ledgerPath string) Model {
	return Model{reader: newTailReader(ledgerPath)}
}

func tickCmd() tea.Cmd {
	return tea.Tick(pollInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(pollCmd(m.reader), tickCmd())
}

func pollCmd(reader *tailReader) tea.Cmd {
	return func() tea.Msg {
		records, err := reader.poll()
		if err != nil {
			return errMsg{err}
		}
		if len(records) == 0 {
			return nil
		}
		return recordsMsg(records)
	}
}

type errMsg struct{ err error }

// Update implements tea.Model.
//
//nolint:ireturn // required by tea.Model interface
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.records)-1 {
				m.cursor++
			}
		}

	case tickMsg:
		return m, tea.Batch(pollCmd(m.reader), tickCmd())

	case recordsMsg:
		m.records = append(m.records, msg...)
		m.cursor = len(m.records) - 1

	case errMsg:
		m.err = msg.err
	}

	return m, nil
}

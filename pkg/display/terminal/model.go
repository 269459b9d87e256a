package terminal

import (
	"fmt"
	"strings"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("36"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// chromeRows is how many terminal rows the title and help lines take.
const chromeRows = 2

// frameMsg carries a pre-rendered frame into the program.
type frameMsg struct {
	view  string
	index int
}

// model is the bubbletea model behind a Surface. Sizes and the cancel flag
// are shared with the Surface, which reads them from another goroutine.
type model struct {
	title  string
	view   string
	frame  int
	cols   *atomic.Int32
	rows   *atomic.Int32
	cancel *atomic.Bool
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.cancel.Store(true)
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.cols.Store(int32(msg.Width))
		m.rows.Store(int32(max(1, msg.Height-chromeRows)))
	case frameMsg:
		m.view = msg.view
		m.frame = msg.index
	}
	return m, nil
}

func (m model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString(dimStyle.Render(fmt.Sprintf("  frame %d", m.frame)))
	b.WriteString("\n")
	b.WriteString(m.view)
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("q quit"))
	return b.String()
}

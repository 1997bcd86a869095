package panel

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/oshokin/keypad-lock/internal/device"
	domain "github.com/oshokin/keypad-lock/internal/domain/lock"
)

// RefreshInterval is how often the panel re-reads the devices.
const RefreshInterval = 50 * time.Millisecond

// refreshMsg asks the model to take a new device snapshot.
type refreshMsg time.Time

// Model is the bubbletea model of the front panel.
type Model struct {
	// panel is the simulated hardware driven by the controller.
	panel *device.Panel
	// snapshot is the last rendered device state.
	snapshot device.Snapshot
	// dropped counts presses the keypad refused.
	dropped int
}

// New creates a model over panel.
func New(panel *device.Panel) Model {
	return Model{
		panel:    panel,
		snapshot: panel.Snapshot(),
	}
}

// Init starts the refresh ticker.
func (m Model) Init() tea.Cmd {
	return refresh()
}

// Update handles terminal keys and refresh ticks.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		}

		if msg.Type != tea.KeyRunes {
			return m, nil
		}

		for _, r := range msg.Runes {
			k, ok := domain.ParseKey(r)
			if !ok || !m.panel.Keypad.Press(k) {
				m.dropped++
			}
		}

		return m, nil
	case refreshMsg:
		m.snapshot = m.panel.Snapshot()

		return m, refresh()
	}

	return m, nil
}

// View renders the LCD, indicators, latch and keypad.
func (m Model) View() string {
	s := m.snapshot

	lcd := lcdStyle.Render(s.Rows[0] + "\n" + s.Rows[1])

	indicators := lipgloss.JoinHorizontal(lipgloss.Top,
		lamp("GREEN", s.Green, greenOnStyle),
		"   ",
		lamp("RED", s.Red, redOnStyle),
	)

	latch := fmt.Sprintf("Latch: %s  %d°  %s",
		s.Position, s.Angle, device.PulseWidth(s.Angle))

	var b strings.Builder

	b.WriteString(titleStyle.Render("Keypad lock"))
	b.WriteString("\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, lcd, "  ", renderKeypad()))
	b.WriteString("\n")
	b.WriteString(indicators)
	b.WriteString("\n")
	b.WriteString(latch)
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("Type 0-9, A-D, * or #. Esc quits."))

	if m.dropped > 0 {
		b.WriteString(helpStyle.Render(fmt.Sprintf("  Ignored presses: %d", m.dropped)))
	}

	return b.String()
}

// Snapshot returns the device state last rendered.
func (m Model) Snapshot() device.Snapshot {
	return m.snapshot
}

// Run shows the panel until the user quits or ctx is canceled.
func Run(ctx context.Context, panel *device.Panel, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithContext(ctx), tea.WithAltScreen()}, opts...)

	_, err := tea.NewProgram(New(panel), opts...).Run()
	if err != nil && !(errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil) {
		return fmt.Errorf("run front panel: %w", err)
	}

	return nil
}

func refresh() tea.Cmd {
	return tea.Tick(RefreshInterval, func(t time.Time) tea.Msg {
		return refreshMsg(t)
	})
}

func lamp(name string, on bool, style lipgloss.Style) string {
	if on {
		return style.Render("● " + name)
	}

	return offStyle.Render("○ " + name)
}

func renderKeypad() string {
	rows := make([]string, 0, len(domain.Layout))

	for _, row := range domain.Layout {
		cells := make([]string, 0, len(row))
		for _, k := range row {
			cells = append(cells, keyStyle.Render(k.String()))
		}

		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

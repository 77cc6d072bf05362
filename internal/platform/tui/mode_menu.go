package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-janken/internal/config"
	"github.com/vovakirdan/tui-janken/internal/core"
)

// PresetSelection holds the user's choice from the best-of menu.
type PresetSelection struct {
	Preset config.MatchPreset
}

// PresetModel lets users choose a match format for best-of play.
type PresetModel struct {
	cursor    int
	width     int
	height    int
	keyMapper *KeyMapper
	selection PresetSelection
	choosing  bool
	quitting  bool
	back      bool
}

// NewPresetModel creates a new match format selection model.
func NewPresetModel(width, height int) PresetModel {
	return PresetModel{
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
		choosing:  true,
	}
}

// Init initializes the model.
func (m PresetModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m PresetModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}
	return m, nil
}

func (m PresetModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keyMapper.MapKeyToMenuAction(msg)

	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < 1 { // Only 2 formats
			m.cursor++
		}
	case MenuActionSelect:
		m.choosing = false
		if m.cursor == 0 {
			m.selection = PresetSelection{Preset: config.PresetBestOf3}
		} else {
			m.selection = PresetSelection{Preset: config.PresetBestOf5}
		}
		return m, tea.Quit
	case MenuActionBack:
		m.back = true
		return m, tea.Quit
	}

	return m, nil
}

// View renders the format selection.
func (m PresetModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("BEST OF", m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select match format:", m.width))
	b.WriteString("\n\n")

	formats := []string{"Best of 3 (first to 2)", "Best of 5 (first to 3)"}
	for i, format := range formats {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		b.WriteString(centerText(fmt.Sprintf("%s%s", cursor, format), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Enter: Select  |  Esc: Back  |  Q: Quit", m.width))

	return b.String()
}

// Selected returns the selection, or nil if still choosing.
func (m PresetModel) Selected() *PresetSelection {
	if m.choosing {
		return nil
	}
	return &m.selection
}

// IsQuitting returns true if user wants to quit.
func (m PresetModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m PresetModel) WantsBack() bool {
	return m.back
}

// RunPresetSelector runs the match format selection and returns the choice.
// Returns nil if the user backed out or quit.
func RunPresetSelector(cfg core.RuntimeConfig) (*PresetSelection, error) {
	model := NewPresetModel(cfg.ScreenW, cfg.ScreenH)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}

	m, ok := finalModel.(PresetModel)
	if !ok {
		return nil, nil
	}

	if m.IsQuitting() || m.WantsBack() {
		return nil, nil
	}

	return m.Selected(), nil
}

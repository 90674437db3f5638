package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hearth-home/hearth-ctl/internal/config"
)

// setupProgram adapts setupModel to the tea.Model interface.
type setupProgram struct {
	model   setupModel
	done    bool
	profile *config.Profile
}

func (p setupProgram) Init() tea.Cmd {
	return p.model.Init()
}

func (p setupProgram) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	done, profile, cmd := p.model.Update(msg)
	if done {
		p.done = true
		p.profile = profile
		return p, tea.Quit
	}
	return p, cmd
}

func (p setupProgram) View() string {
	if p.done {
		return ""
	}
	return p.model.View()
}

// RunSetup runs the interactive profile wizard. It returns the completed
// profile, or nil if the operator cancelled.
func RunSetup(defaults *config.Profile) (*config.Profile, error) {
	p := tea.NewProgram(setupProgram{model: newSetupModel(defaults)}, tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}

	return finalModel.(setupProgram).profile, nil
}

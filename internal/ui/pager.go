package ui

import (
	"errors"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/noborus/ov/oviewer"
)

var errNoProgram = errors.New("program not set")

// Pager shows long content in ov, handing the terminal over while it runs
type Pager interface {
	Show(content string) error
}

// ovPager runs oviewer on top of a Bubble Tea program
type ovPager struct {
	program *tea.Program
}

// Show releases the terminal, runs ov until the user quits it, then hands
// the terminal back to Bubble Tea.
func (p *ovPager) Show(content string) error {
	if p.program == nil {
		return errNoProgram
	}

	if err := p.program.ReleaseTerminal(); err != nil {
		return err
	}
	defer func() {
		// Give ov time to leave the alternate screen before Bubble Tea redraws
		time.Sleep(100 * time.Millisecond)
		_ = p.program.RestoreTerminal()
	}()

	root, err := oviewer.NewRoot(strings.NewReader(content))
	if err != nil {
		return err
	}

	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}

// showInPager returns a command that shows content in the pager, pausing
// rendering while it is open
func (m *Model) showInPager(what, content string) tea.Cmd {
	pager := m.pager
	program := m.program
	return func() tea.Msg {
		if pager == nil {
			return pagerMsg{what: what, content: content, err: errNoProgram}
		}
		if program != nil {
			program.Send(pauseRenderingMsg{})
		}

		err := pager.Show(content)

		if program != nil {
			program.Send(resumeRenderingMsg{})
		}
		return pagerMsg{what: what, content: content, err: err}
	}
}

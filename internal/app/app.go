package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/ssupark/oratio/internal/report"
	"github.com/ssupark/oratio/internal/router"
	"github.com/ssupark/oratio/internal/screen"
	"github.com/ssupark/oratio/internal/screens/start"
	"github.com/ssupark/oratio/internal/speech"
	"github.com/ssupark/oratio/internal/ui/layout"
)

// Options carries the wired services the screens need. Nil speech adapters
// default to the unavailable stand-ins.
type Options struct {
	Reports     *report.Service
	Recognizer  speech.Recognizer
	Synthesizer speech.Synthesizer
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	opts   Options
	width  int
	height int
}

// newAppModel creates a new AppModel starting at level selection.
func newAppModel(opts Options) AppModel {
	if opts.Recognizer == nil {
		opts.Recognizer = speech.NoRecognizer{}
	}
	if opts.Synthesizer == nil {
		opts.Synthesizer = speech.NoSynthesizer{}
	}
	startScreen := start.New(opts.Reports, opts.Recognizer, opts.Synthesizer)
	return AppModel{
		router: router.New(startScreen),
		opts:   opts,
	}
}

func (m AppModel) Init() tea.Cmd {
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				// Leaving a screen mid-session: silence the speech
				// layer before popping so no capture or playback
				// outlives the screen that owned it.
				recog := m.opts.Recognizer
				synth := m.opts.Synthesizer
				return m, func() tea.Msg {
					_ = recog.Stop()
					_ = synth.Stop()
					return router.PopScreenMsg{}
				}
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	badge := ""
	if active != nil {
		title = active.Title()
		if bp, ok := active.(screen.BadgeProvider); ok {
			badge = bp.Badge()
		}
	}

	header := layout.RenderHeader(title, badge, m.width)

	var footerHints []layout.KeyHint
	if hp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = hp.KeyHints()
	}
	if footerHints == nil {
		footerHints = []layout.KeyHint{
			{Key: "↑↓", Description: "이동"},
			{Key: "Enter", Description: "선택"},
			{Key: "Ctrl+C", Description: "종료"},
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}

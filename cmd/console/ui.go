package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jwebster45206/tour-guide/pkg/chat"
	"github.com/jwebster45206/tour-guide/pkg/feedback"
	"github.com/jwebster45206/tour-guide/pkg/scene"
	"github.com/muesli/reflow/wordwrap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const moveStep = 1.0

// guide is the part of the dialogue coordinator the console drives.
type guide interface {
	BeginOrResumeDialogue(ctx context.Context)
	SelectOption(ctx context.Context, index int)
	SkipReveal()
	HideDialogue()
	RestartJourney(ctx context.Context) error
	Snapshot() []chat.ChatMessage
	Progress() scene.Progress
	Status(pos scene.Vec3) string
}

// ConsoleUI is the BubbleTea model that runs the UI.
// https://github.com/charmbracelet/bubbletea
//
// Every coordinator call runs inside a tea.Cmd. The coordinator reports back
// through teaPresenter, which sends into this loop, so calling it from Update
// would block the loop on itself.
type ConsoleUI struct {
	ctx     context.Context
	guide   guide
	player  *player
	archive *archiver
	logger  *slog.Logger
	copy    func(string) error

	tourName         string
	guideName        string
	locations        []scene.Location
	threshold        float64
	feedbackDuration time.Duration

	keys     keyMap
	help     help.Model
	viewport viewport.Model

	width  int
	height int
	ready  bool

	panelVisible   bool
	speaker        string
	portrait       string
	body           string
	options        [4]string
	optionsVisible bool
	tint           feedback.Kind
	tintSeq        int

	progress scene.Progress
	pos      scene.Vec3
	status   string
	notice   string
}

type consoleOptions struct {
	TourName         string
	GuideName        string
	Locations        []scene.Location
	Threshold        float64
	FeedbackDuration time.Duration
	Progress         scene.Progress
	Copy             func(string) error
}

type (
	noticeMsg struct {
		text string
		err  error
	}
	statusMsg    struct{ text string }
	tintResetMsg struct{ seq int }
)

var (
	dialoguePanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("62")).
				Padding(1, 2)

	hudPanelStyle = lipgloss.NewStyle().
			PaddingTop(1).
			PaddingLeft(2).
			PaddingRight(1)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")). // pink
			Bold(true)

	speakerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")). // purple
			Bold(true)

	portraitStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	optionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")) // teal

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // red

	loadingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")) // yellow

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	inRangeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")) // green
)

// tintColors maps reply feedback to the dialogue border.
var tintColors = map[feedback.Kind]lipgloss.Color{
	feedback.Neutral:  lipgloss.Color("62"),
	feedback.Positive: lipgloss.Color("86"),
	feedback.Negative: lipgloss.Color("196"),
}

var titleCaser = cases.Title(language.English)

func NewConsoleUI(ctx context.Context, g guide, p *player, a *archiver, logger *slog.Logger, opts consoleOptions) ConsoleUI {
	vp := viewport.New(50, 8)
	vp.MouseWheelEnabled = true

	copyFn := opts.Copy
	if copyFn == nil {
		copyFn = func(string) error { return fmt.Errorf("clipboard unavailable") }
	}

	return ConsoleUI{
		ctx:              ctx,
		guide:            g,
		player:           p,
		archive:          a,
		logger:           logger,
		copy:             copyFn,
		tourName:         opts.TourName,
		guideName:        opts.GuideName,
		locations:        opts.Locations,
		threshold:        opts.Threshold,
		feedbackDuration: opts.FeedbackDuration,
		keys:             defaultKeyMap(),
		help:             help.New(),
		viewport:         vp,
		progress:         opts.Progress,
		pos:              p.Position(),
	}
}

func (m ConsoleUI) Init() tea.Cmd {
	return nil
}

func (m ConsoleUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.viewport.Width = m.dialogueWidth() - 6
		m.viewport.Height = max(m.height/3, 4)
		m.ready = true
		m.refreshBody()
		return m, nil

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)

	case speakerMsg:
		m.speaker = msg.name
		m.portrait = msg.portrait

	case bodyMsg:
		m.body = msg.text
		m.refreshBody()

	case optionsMsg:
		m.options = msg.options
		m.optionsVisible = true

	case hideOptionsMsg:
		m.options = [4]string{}
		m.optionsVisible = false

	case tintMsg:
		m.tint = msg.kind
		m.tintSeq++
		if msg.kind != feedback.Neutral && m.feedbackDuration > 0 {
			seq := m.tintSeq
			return m, tea.Tick(m.feedbackDuration, func(time.Time) tea.Msg {
				return tintResetMsg{seq: seq}
			})
		}

	case tintResetMsg:
		if msg.seq == m.tintSeq {
			m.tint = feedback.Neutral
		}

	case panelMsg:
		m.panelVisible = msg.visible

	case progressMsg:
		m.progress = msg.progress

	case statusMsg:
		m.status = msg.text

	case noticeMsg:
		if msg.err != nil {
			m.logger.Warn("console action failed", "error", msg.err)
			m.notice = errorStyle.Render(msg.err.Error())
		} else {
			m.notice = msg.text
		}
	}

	return m, nil
}

func (m ConsoleUI) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Sequence(m.archiveCmd(), tea.Quit)

	case key.Matches(msg, m.keys.Talk):
		m.notice = ""
		return m, m.talk()

	case key.Matches(msg, m.keys.Skip):
		return m, func() tea.Msg {
			m.guide.SkipReveal()
			return nil
		}

	case key.Matches(msg, m.keys.Hide):
		return m, func() tea.Msg {
			m.guide.HideDialogue()
			return nil
		}

	case key.Matches(msg, m.keys.Up):
		m.pos = m.player.Move(0, moveStep)
	case key.Matches(msg, m.keys.Down):
		m.pos = m.player.Move(0, -moveStep)
	case key.Matches(msg, m.keys.Left):
		m.pos = m.player.Move(-moveStep, 0)
	case key.Matches(msg, m.keys.Right):
		m.pos = m.player.Move(moveStep, 0)

	case key.Matches(msg, m.keys.Jump):
		if next, ok := m.nextLocation(); ok {
			m.pos = m.player.MoveTo(next.Coordinates)
		}

	case key.Matches(msg, m.keys.Restart):
		if len(m.locations) > 0 {
			m.pos = m.player.MoveTo(m.locations[0].Coordinates)
		}
		m.status = ""
		return m, m.restart()

	case key.Matches(msg, m.keys.Copy):
		return m, m.copyTranscript()

	case key.Matches(msg, m.keys.Status):
		if m.status != "" {
			m.status = ""
			return m, nil
		}
		pos := m.pos
		return m, func() tea.Msg {
			return statusMsg{text: m.guide.Status(pos)}
		}

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	default:
		for i, b := range m.keys.Options {
			if key.Matches(msg, b) {
				return m, m.selectOption(i)
			}
		}
	}
	return m, nil
}

func (m ConsoleUI) talk() tea.Cmd {
	return func() tea.Msg {
		m.guide.BeginOrResumeDialogue(m.ctx)
		return nil
	}
}

func (m ConsoleUI) selectOption(index int) tea.Cmd {
	return func() tea.Msg {
		m.guide.SelectOption(m.ctx, index)
		return nil
	}
}

func (m ConsoleUI) restart() tea.Cmd {
	return func() tea.Msg {
		if _, err := m.archive.Save(m.ctx, m.guide.Snapshot(), m.guide.Progress()); err != nil {
			m.logger.Warn("failed to archive before restart", "error", err)
		}
		m.archive.Rotate()
		if err := m.guide.RestartJourney(m.ctx); err != nil {
			return noticeMsg{err: fmt.Errorf("failed to restart journey: %w", err)}
		}
		return noticeMsg{text: "Journey restarted."}
	}
}

func (m ConsoleUI) archiveCmd() tea.Cmd {
	return func() tea.Msg {
		saved, err := m.archive.Save(m.ctx, m.guide.Snapshot(), m.guide.Progress())
		if err != nil {
			return noticeMsg{err: err}
		}
		if saved {
			return noticeMsg{text: "Transcript archived as " + m.archive.ID()}
		}
		return nil
	}
}

func (m ConsoleUI) copyTranscript() tea.Cmd {
	return func() tea.Msg {
		text := chat.Transcript(m.guide.Snapshot(), m.guideName)
		if text == "" {
			return noticeMsg{text: "Nothing to copy yet."}
		}
		if err := m.copy(text); err != nil {
			return noticeMsg{err: fmt.Errorf("failed to copy transcript: %w", err)}
		}
		return noticeMsg{text: "Transcript copied to clipboard."}
	}
}

func (m ConsoleUI) nextLocation() (scene.Location, bool) {
	i := m.progress.SceneIndex + 1
	if i >= len(m.locations) {
		return scene.Location{}, false
	}
	return m.locations[i], true
}

func (m ConsoleUI) dialogueWidth() int {
	if m.width == 0 {
		return 60
	}
	return max(int(float64(m.width)*0.65), 30)
}

func (m *ConsoleUI) refreshBody() {
	width := max(m.viewport.Width, 10)
	m.viewport.SetContent(wordwrap.String(m.body, width))
	m.viewport.GotoBottom()
}

func (m ConsoleUI) View() string {
	if !m.ready {
		return "\n  Initializing..."
	}

	dialogue := lipgloss.JoinHorizontal(lipgloss.Top, m.renderDialogue(), m.renderHUD())
	return lipgloss.JoinVertical(lipgloss.Left, dialogue, "", m.help.View(m.keys))
}

func (m ConsoleUI) renderDialogue() string {
	width := m.dialogueWidth()
	style := dialoguePanelStyle.Width(width).BorderForeground(tintColors[m.tint])

	if !m.panelVisible {
		hint := promptStyle.Render(fmt.Sprintf("Press E to talk to %s.", m.guideName))
		return style.Render(hint)
	}

	var content strings.Builder
	content.WriteString(speakerStyle.Render(m.speaker))
	if m.portrait != "" {
		content.WriteString(" " + portraitStyle.Render("["+m.portrait+"]"))
	}
	content.WriteString("\n\n")
	content.WriteString(m.viewport.View())
	content.WriteString("\n")

	if m.optionsVisible {
		content.WriteString("\n")
		for i, opt := range m.options {
			if opt == "" {
				continue
			}
			line := fmt.Sprintf("%d. %s", i+1, opt)
			content.WriteString(optionStyle.Render(wordwrap.String(line, width-6)) + "\n")
		}
	}

	if m.tint != feedback.Neutral {
		content.WriteString("\n" + promptStyle.Render(titleCaser.String(m.tint.String())+" answer"))
	}

	return style.Render(content.String())
}

func (m ConsoleUI) renderHUD() string {
	var content strings.Builder
	content.WriteString(titleStyle.Render(strings.ToUpper(m.tourName)) + "\n\n")

	content.WriteString("Scene:\n")
	content.WriteString(fmt.Sprintf("%d/%d %s\n\n", m.progress.SceneIndex+1, len(m.locations), titleCaser.String(m.progress.SceneName)))

	content.WriteString("Questions:\n")
	content.WriteString(fmt.Sprintf("%d of %d\n\n", m.progress.Questions, m.progress.Target))

	content.WriteString("Position:\n")
	content.WriteString(fmt.Sprintf("(%.0f, %.0f)\n\n", m.pos.X, m.pos.Z))

	content.WriteString("Next stop:\n")
	switch next, ok := m.nextLocation(); {
	case m.progress.Complete:
		content.WriteString("Journey complete\n")
	case !ok:
		content.WriteString("Final destination\n")
	default:
		dist := m.pos.Horizontal().Distance(next.Coordinates)
		content.WriteString(titleCaser.String(next.Name) + "\n")
		line := fmt.Sprintf("%.1f units away", dist)
		if dist <= m.threshold {
			content.WriteString(inRangeStyle.Render(line+" (in range)") + "\n")
		} else {
			content.WriteString(line + "\n")
		}
	}

	if m.status != "" {
		content.WriteString("\n" + loadingStyle.Render(m.status) + "\n")
	}
	if m.notice != "" {
		content.WriteString("\n" + m.notice + "\n")
	}

	width := max(m.width-m.dialogueWidth()-4, 20)
	return hudPanelStyle.Width(width).Render(content.String())
}

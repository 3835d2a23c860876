package ui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/olivier-w/winston/internal/config"
	"github.com/olivier-w/winston/internal/greeting"
	"github.com/olivier-w/winston/internal/logging"
	"github.com/olivier-w/winston/internal/render"
	"github.com/olivier-w/winston/internal/scene"
)

// Greeter supplies the panel's text. *greeting.Service satisfies it.
type Greeter interface {
	Blessing(ctx context.Context, recipient, style string) greeting.Wish
	Poem(ctx context.Context) string
	Recent(n int) []greeting.Wish
}

// recentWishes is how many past blessings the info panel lists.
const recentWishes = 5

// zoomStep is the camera distance change per key press.
const zoomStep = 2.0

// maxFrameDelta bounds the time step after a stall so the view does not jump.
const maxFrameDelta = 0.25

// Options wires a Model to its collaborators.
type Options struct {
	Scene    *scene.Scene
	Renderer scene.Renderer
	Greeter  Greeter
	FPS      int
	Logger   *log.Logger
}

// Model is the Bubbletea model for the winston view.
type Model struct {
	state    ViewState
	pending  []Effect
	scene    *scene.Scene
	renderer scene.Renderer
	greeter  Greeter
	log      *log.Logger
	fps      int

	width, height int
	lastFrame     time.Time
	frame         string
	quitting      bool

	keys     keyMap
	help     help.Model
	spinner  spinner.Model
	progress progress.Model

	info      string // rendered info panel, cached per width
	infoWidth int

	statusMsg  string
	statusTime time.Time
}

// New creates a Model in its initial state.
func New(opts Options) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	p := progress.New(
		progress.WithScaledGradient("#065f46", "#f9d71c"),
		progress.WithoutPercentage(),
		progress.WithWidth(16),
	)

	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	state, effects := Initial()
	return Model{
		state:    state,
		pending:  effects,
		scene:    opts.Scene,
		renderer: opts.Renderer,
		greeter:  opts.Greeter,
		log:      logger,
		fps:      max(opts.FPS, 1),
		keys:     defaultKeys(),
		help:     help.New(),
		spinner:  s,
		progress: p,
		width:    80,
		height:   24,
	}
}

// State returns the current view state.
func (m Model) State() ViewState { return m.state }

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		frameCmd(m.fps),
		m.spinner.Tick,
		tea.SetWindowTitle("Winston · Merry Christmas"),
	}
	cmds = append(cmds, m.run(m.pending)...)
	return tea.Batch(cmds...)
}

// dispatch reduces a and starts the effects it asks for.
func (m Model) dispatch(a Action) (Model, tea.Cmd) {
	next, effects := Reduce(m.state, a)
	if next.Morph != m.state.Morph {
		m.log.Debug("morph target changed", "state", next.Morph)
	}
	m.state = next
	return m, tea.Batch(m.run(effects)...)
}

func (m Model) run(effects []Effect) []tea.Cmd {
	var cmds []tea.Cmd
	g := m.greeter
	for _, e := range effects {
		switch e {
		case RequestBlessing:
			m.log.Info("requesting blessing")
			cmds = append(cmds, func() tea.Msg {
				return blessingMsg{wish: g.Blessing(context.Background(), "", "")}
			})
		case RequestPoem:
			m.log.Info("requesting poem")
			cmds = append(cmds, func() tea.Msg {
				return poemMsg{text: g.Poem(context.Background())}
			})
		}
	}
	return cmds
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case frameMsg:
		now := time.Time(msg)
		dt := 1 / float64(m.fps)
		if !m.lastFrame.IsZero() {
			dt = max(min(now.Sub(m.lastFrame).Seconds(), maxFrameDelta), 0)
		}
		m.lastFrame = now
		m.step(dt)
		if m.statusMsg != "" && now.Sub(m.statusTime) > 5*time.Second {
			m.statusMsg = ""
		}
		return m, frameCmd(m.fps)

	case blessingMsg:
		m.log.Info("blessing received", "id", msg.wish.ID, "sentiment", msg.wish.Sentiment, "fallback", msg.wish.Fallback)
		m, cmd := m.dispatch(BlessingReceived{Text: msg.wish.Text, Sentiment: msg.wish.Sentiment})
		m.info = ""
		m.refreshInfo()
		return m, cmd

	case poemMsg:
		return m.dispatch(PoemReceived{Text: msg.text})

	case ConfigReloadedMsg:
		return m.applyConfig(msg), nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.refreshInfo()
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "esc" && m.state.InfoOpen:
		return m.dispatch(ToggleInfo{})
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Sequence(tea.SetWindowTitle(""), tea.Quit)
	case key.Matches(msg, m.keys.Toggle):
		return m.dispatch(ToggleMorph{})
	case key.Matches(msg, m.keys.Reveal):
		return m.dispatch(Reveal{})
	case key.Matches(msg, m.keys.Reset):
		return m.dispatch(Reset{})
	case key.Matches(msg, m.keys.Audio):
		return m.dispatch(ToggleAudio{})
	case key.Matches(msg, m.keys.Info):
		m, cmd := m.dispatch(ToggleInfo{})
		m.refreshInfo()
		return m, cmd
	case key.Matches(msg, m.keys.ZoomIn):
		if m.scene != nil {
			m.scene.Zoom(-zoomStep)
		}
	case key.Matches(msg, m.keys.ZoomOut):
		if m.scene != nil {
			m.scene.Zoom(zoomStep)
		}
	}
	return m, nil
}

// step advances the scene and rasterises it into the space left over by
// the header, panel and help line.
func (m *Model) step(dt float64) {
	if m.scene == nil {
		return
	}
	f := m.scene.Step(m.state.Morph, dt)
	if m.renderer == nil {
		return
	}
	rows := m.sceneRows()
	if rows < 1 || m.width < 1 {
		m.frame = ""
		return
	}
	m.frame = m.renderer.Render(f, m.width, rows)
}

// refreshInfo renders the info panel, with the session's recent wishes,
// when it is open and the cached copy is missing or made for another width.
func (m *Model) refreshInfo() {
	if !m.state.InfoOpen || (m.info != "" && m.infoWidth == m.width) {
		return
	}
	var wishes []greeting.Wish
	if m.greeter != nil {
		wishes = m.greeter.Recent(recentWishes)
	}
	m.info = renderInfo(infoMarkdown, wishes, m.width)
	m.infoWidth = m.width
}

func (m Model) chrome() (header, panel, footer string) {
	bar := m.progress.ViewAs(m.progressValue())
	header = renderHeader(m.state, bar, m.width)
	panel = lipgloss.PlaceHorizontal(m.width, lipgloss.Center, renderPanel(m.state, m.spinner.View(), m.width))
	footer = "  " + m.help.View(m.keys)
	if m.statusMsg != "" {
		footer = "  " + statusStyle.Render(m.statusMsg) + "\n" + footer
	}
	return header, panel, footer
}

func (m Model) sceneRows() int {
	header, panel, footer := m.chrome()
	used := lipgloss.Height(header) + lipgloss.Height(panel) + lipgloss.Height(footer)
	return m.height - used
}

func (m Model) progressValue() float64 {
	if m.scene == nil {
		return 0
	}
	return m.scene.Progress()
}

func (m Model) applyConfig(msg ConfigReloadedMsg) Model {
	if msg.Err != nil {
		m.log.Warn("config reload failed, keeping previous config", "err", msg.Err)
		m.statusMsg = "config reload failed; previous settings kept"
		m.statusTime = time.Now()
		return m
	}
	cfg := msg.Cfg
	if m.scene != nil {
		m.scene.Retune(cfg.Scene)
		m.scene.SetFPS(cfg.FPS)
	}
	if t, ok := m.renderer.(*render.Terminal); ok {
		t.SetSpec(cfg.Render)
	}
	m.fps = cfg.FPS
	m.log.Info("config reloaded", "fps", cfg.FPS, "mode", cfg.Render.Mode)
	m.statusMsg = "config reloaded"
	m.statusTime = time.Now()
	return m
}

// Reload turns a config watcher callback into a program message.
func Reload(send func(tea.Msg)) func(*config.Config, error) {
	return func(cfg *config.Config, err error) {
		send(ConfigReloadedMsg{Cfg: cfg, Err: err})
	}
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	header, panel, footer := m.chrome()
	rows := m.height - lipgloss.Height(header) - lipgloss.Height(panel) - lipgloss.Height(footer)

	var middle string
	switch {
	case m.state.InfoOpen:
		middle = lipgloss.Place(m.width, max(rows, 1), lipgloss.Center, lipgloss.Center, m.info)
	case m.frame != "":
		middle = m.frame
	default:
		middle = strings.Repeat("\n", max(rows-1, 0))
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, middle, panel, footer)
}

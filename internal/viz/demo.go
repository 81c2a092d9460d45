package viz

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/pdspring/internal/config"
	"github.com/san-kum/pdspring/internal/curve"
	"github.com/san-kum/pdspring/internal/dynamo"
	"github.com/san-kum/pdspring/internal/timeline"
	"github.com/san-kum/pdspring/spring"
)

// overshootRoom is the share of a track kept free past the target.
const overshootRoom = 1.0 / 6

type TickMsg time.Time

// Model animates the perceptual spring and its harmonica reference side by side.
type Model struct {
	cfg         config.Config
	label       string
	presetNames []string
	preset      int

	ease     spring.Easing
	tl       *timeline.Timeline
	ref      harmonica.Spring
	refPos   float64
	refVel   float64
	lastIter int
	frame    time.Duration
	graph    string

	progress progress.Model
	help     help.Model
	keys     keyMap
	theme    int
	styles   styles
}

// NewModel builds the demo from cfg. label names the preset shown in the
// header; tab cycles from there through the built-in presets.
func NewModel(cfg *config.Config, label string) (Model, error) {
	m := Model{
		cfg:         *cfg,
		label:       label,
		presetNames: config.ListPresets(),
		preset:      -1,
		progress: progress.New(
			progress.WithScaledGradient("#FF8C00", "#FF5F1F"),
			progress.WithoutPercentage(),
		),
		help: help.New(),
		keys: defaultKeyMap(),
	}
	m.setTheme(cfg.Demo.Theme)
	m.progress.Width = cfg.Demo.Width
	for i, name := range m.presetNames {
		if name == label {
			m.preset = i
		}
	}

	if err := m.rebuild(); err != nil {
		return Model{}, err
	}
	return m, nil
}

func (m *Model) rebuild() error {
	if err := m.cfg.Validate(); err != nil {
		return err
	}
	if m.cfg.Demo.Width < 10 {
		return fmt.Errorf("demo width must be at least 10, got %d", m.cfg.Demo.Width)
	}

	ease, err := spring.New(m.cfg.Duration, m.cfg.Bounce)
	if err != nil {
		return err
	}

	dt := 1 / float64(m.cfg.Demo.FPS)
	m.ease = ease
	m.frame = time.Duration(dt * float64(time.Second))
	m.tl = timeline.New(timeline.Tween{
		From:     m.cfg.Tween.From,
		To:       m.cfg.Tween.To,
		Duration: time.Duration(m.cfg.Duration * float64(time.Second)),
		Ease:     ease,
	}, m.cfg.Tween.Repeat)
	m.ref = curve.ReferenceSpring(m.cfg.Duration, m.cfg.Bounce, dt)
	m.refPos, m.refVel, m.lastIter = m.cfg.Tween.From, 0, 0

	m.graph, err = m.plot()
	return err
}

// plot draws both curves over one tween duration in normalized units.
func (m *Model) plot() (string, error) {
	n := m.cfg.Demo.Width
	_, closed := curve.Grid(m.ease, dynamo.Config{Dt: 1 / float64(n-1), Span: 1})

	grid := dynamo.Config{Dt: m.cfg.Duration / float64(n-1), Span: m.cfg.Duration}
	ref, err := curve.New().SampleReference(context.Background(), m.cfg.Duration, m.cfg.Bounce, 0, grid)
	if err != nil {
		return "", err
	}

	return asciigraph.PlotMany([][]float64{closed, ref.Values},
		asciigraph.Height(8),
		asciigraph.Width(n),
		asciigraph.Precision(2),
		asciigraph.SeriesColors(asciigraph.Magenta, asciigraph.Cyan),
		asciigraph.Caption("spring (magenta) vs harmonica (cyan)"),
	), nil
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.frame, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		m.progress.Width = min(max(msg.Width-8, 20), 60)
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Restart):
			m.restart()
		case key.Matches(msg, m.keys.Pause):
			if m.tl.Paused() {
				m.tl.Resume()
			} else {
				m.tl.Pause()
			}
		case key.Matches(msg, m.keys.Preset):
			m.nextPreset()
		case key.Matches(msg, m.keys.Theme):
			names := ThemeNames()
			m.setTheme(names[(m.theme+1)%len(names)])
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}
	case TickMsg:
		m.step()
		return m, m.tick()
	}
	return m, nil
}

// step advances both tracks by one frame. The reference spring restarts
// whenever the timeline begins a new repeat.
func (m *Model) step() {
	if m.tl.Paused() || m.tl.Done() {
		return
	}
	m.tl.Advance(m.frame)
	if it := m.tl.Iteration(); it != m.lastIter {
		m.refPos, m.refVel, m.lastIter = m.cfg.Tween.From, 0, it
	}
	m.refPos, m.refVel = m.ref.Update(m.refPos, m.refVel, m.cfg.Tween.To)
}

func (m *Model) setTheme(name string) {
	t := GetTheme(name)
	for i, th := range Themes {
		if th.Name == t.Name {
			m.theme = i
		}
	}
	m.styles = newStyles(t)
}

func (m *Model) restart() {
	m.tl.Restart()
	m.refPos, m.refVel, m.lastIter = m.cfg.Tween.From, 0, 0
}

func (m *Model) nextPreset() {
	if len(m.presetNames) == 0 {
		return
	}
	next := (m.preset + 1) % len(m.presetNames)
	p := config.GetPreset(m.presetNames[next])
	if p == nil {
		return
	}

	// rebuild replaces every derived field, so a copy can be discarded whole.
	cand := *m
	cand.cfg.Apply(*p)
	if err := cand.rebuild(); err != nil {
		return
	}
	cand.preset = next
	cand.label = m.presetNames[next]
	*m = cand
}

// column maps a track value to a sub-pixel x on a track of width cells.
func (m Model) column(v float64) int {
	sub := m.cfg.Demo.Width * 2
	travel := float64(sub) * (1 - overshootRoom)
	span := m.cfg.Tween.To - m.cfg.Tween.From
	if span == 0 || math.IsNaN(v) {
		return 0
	}
	x := int(math.Round((v - m.cfg.Tween.From) / span * travel))
	return min(max(x, 0), sub-2)
}

func (m Model) track(v float64) string {
	c := NewCanvas(m.cfg.Demo.Width, 1)
	target := m.column(m.cfg.Tween.To)
	c.DrawLine(target, 0, target, 3)
	c.FillRect(m.column(v), 0, 2, 4)
	return c.String()
}

func (m Model) View() string {
	st := m.styles
	var s strings.Builder

	title := "PDSPRING"
	if m.label != "" {
		title += "  " + m.label
	}
	s.WriteString(st.header.Render(title) + "\n")

	phys := spring.Translate(m.cfg.Duration, m.cfg.Bounce)
	s.WriteString(st.label.Render("duration") + st.value.Render(fmt.Sprintf("%.2fs", m.cfg.Duration)) + "\n")
	s.WriteString(st.label.Render("bounce") + st.value.Render(fmt.Sprintf("%.2f", m.cfg.Bounce)) + "\n")
	s.WriteString(st.label.Render("stiffness") + st.value.Render(fmt.Sprintf("%.3f", phys.Stiffness)) + "\n")
	s.WriteString(st.label.Render("damping") + st.value.Render(fmt.Sprintf("%.3f", phys.Damping)) + "\n\n")

	value := m.tl.Value()
	s.WriteString(st.label.Render("spring") + st.spring.Render(m.track(value)) + fmt.Sprintf(" %6.1f\n", value))
	s.WriteString(st.label.Render("harmonica") + st.ref.Render(m.track(m.refPos)) + fmt.Sprintf(" %6.1f\n\n", m.refPos))

	status := "RUNNING"
	switch {
	case m.tl.Done():
		status = "DONE"
	case m.tl.Paused():
		status = "PAUSED"
	}
	loops := fmt.Sprintf("loop %d/%d", m.tl.Iteration()+1, m.cfg.Tween.Repeat+1)
	s.WriteString(st.status.Render(status) + "  " + st.value.Render(loops) + "\n")
	s.WriteString(m.progress.ViewAs(m.tl.Progress()) + "\n")

	s.WriteString(st.graph.Render(m.graph) + "\n")
	s.WriteString(m.help.View(m.keys))

	return st.panel.Render(s.String())
}

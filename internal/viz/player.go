package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/orbsim/internal/dynamo"
)

const (
	DefaultWidth  = 80
	DefaultHeight = 30
	frameInterval = time.Second / 30
	maxSpeed      = 4096
)

type TickMsg time.Time

type PlayerOptions struct {
	Title  string
	Names  []string
	Colors []string
	Width  int
	Height int
	Extent float64
	Speed  int       // steps advanced per frame
	Theme  string    // one of ThemeNames; unknown names fall back to the first
	Drift  []float64 // relative energy drift per step, optional
}

// Player replays a finished trajectory, extending every body's polyline by
// the steps covered since the previous frame.
type Player struct {
	traj    *dynamo.Trajectory
	title   string
	names   []string
	styles  []lipgloss.Style
	drift   []float64
	canvas  *Canvas
	view    View
	theme   Theme
	frame   int
	speed   int
	running bool
}

func NewPlayer(traj *dynamo.Trajectory, opts PlayerOptions) Player {
	w, h := opts.Width, opts.Height
	if w <= 0 {
		w = DefaultWidth
	}
	if h <= 0 {
		h = DefaultHeight
	}
	speed := opts.Speed
	if speed <= 0 {
		speed = max(1, traj.Len()/600)
	}

	names := make([]string, traj.Bodies())
	for i := range names {
		if i < len(opts.Names) && opts.Names[i] != "" {
			names[i] = opts.Names[i]
		} else {
			names[i] = fmt.Sprintf("body%d", i)
		}
	}

	p := Player{
		traj:    traj,
		title:   opts.Title,
		names:   names,
		styles:  BodyStyles(BodyColors(opts.Colors, traj.Bodies())),
		canvas:  NewCanvas(w, h),
		view:    FitView(traj, opts.Extent, w, h),
		drift:   opts.Drift,
		theme:   GetTheme(opts.Theme),
		speed:   speed,
		running: true,
	}
	p.restart()
	return p
}

func tick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (p Player) Init() tea.Cmd {
	return tick()
}

func (p Player) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return p, tea.Quit
		case " ":
			p.running = !p.running
		case "r":
			p.restart()
			p.running = true
		case "+", "=":
			p.speed = min(p.speed*2, maxSpeed)
		case "-", "_":
			p.speed = max(p.speed/2, 1)
		case "right", "l":
			p.advance(p.speed)
		case "t":
			p.theme = NextTheme(p.theme)
		}
	case TickMsg:
		if p.running {
			p.advance(p.speed)
			if p.Done() {
				p.running = false
			}
		}
		return p, tick()
	}
	return p, nil
}

// advance extends the drawn polylines by up to n steps.
func (p *Player) advance(n int) {
	last := p.traj.Len() - 1
	next := min(p.frame+n, last)
	for body := 0; body < p.traj.Bodies(); body++ {
		for k := p.frame + 1; k <= next; k++ {
			p.view.DrawSegment(p.canvas, p.traj.Positions[k-1][body], p.traj.Positions[k][body], body)
		}
	}
	p.frame = next
}

func (p *Player) restart() {
	p.canvas.Clear()
	p.frame = 0
	DrawTrajectory(p.canvas, p.view, p.traj, 0)
}

func (p Player) Frame() int { return p.frame }

func (p Player) Done() bool { return p.frame >= p.traj.Len()-1 }

func (p Player) View() string {
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.theme.Border)
	text := lipgloss.NewStyle().Foreground(p.theme.Text)
	muted := lipgloss.NewStyle().Foreground(p.theme.Muted)

	var side strings.Builder
	side.WriteString(GradientText(strings.ToUpper(p.title), p.theme.Title[0], p.theme.Title[1]) + "\n\n")

	status := StatusRunning.Render("PLAYING")
	switch {
	case p.Done():
		status = StatusPaused.Render("FINISHED")
	case !p.running:
		status = StatusPaused.Render("PAUSED")
	}
	side.WriteString(status + "\n\n")

	last := p.traj.Len() - 1
	side.WriteString(MetricLabel.Render("step") + text.Render(fmt.Sprintf("%d / %d", p.frame, last)) + "\n")
	side.WriteString(MetricLabel.Render("time") + text.Render(FormatTime(p.traj.Time(p.frame))) + "\n")
	side.WriteString(MetricLabel.Render("speed") + text.Render(fmt.Sprintf("%d steps/frame", p.speed)) + "\n")
	progress := 1.0
	if last > 0 {
		progress = float64(p.frame) / float64(last)
	}
	side.WriteString(ProgressBar(progress, 24) + "\n\n")

	if p.frame < len(p.drift) && len(p.drift) > 1 {
		side.WriteString(MetricLabel.Render("energy drift") + text.Render(fmt.Sprintf("%.2e", p.drift[p.frame])) + "\n")
		side.WriteString(muted.Render(Sparkline(p.drift[:p.frame+1], 24)) + "\n\n")
	}

	for i, name := range p.names {
		side.WriteString(p.styles[i].Render("●") + " " + text.Render(name) + "\n")
	}

	side.WriteString("\n" + muted.Render("SPC pause  r restart  +/- speed\n→ step  t theme  q quit"))

	return lipgloss.JoinHorizontal(lipgloss.Top,
		border.Render(p.canvas.Render(p.styles)),
		lipgloss.NewStyle().Padding(1, 2).Render(side.String()),
	)
}

// Play runs the animation until the user quits.
func Play(traj *dynamo.Trajectory, opts PlayerOptions) error {
	_, err := tea.NewProgram(NewPlayer(traj, opts), tea.WithAltScreen()).Run()
	return err
}

// Render returns a static, coloured picture of the whole trajectory.
func Render(traj *dynamo.Trajectory, opts PlayerOptions) string {
	p := NewPlayer(traj, opts)
	p.advance(traj.Len())
	return p.canvas.Render(p.styles)
}

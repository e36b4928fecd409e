package viz

import (
	"math"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/orbsim/internal/dynamo"
)

func circleTrajectory(steps int) *dynamo.Trajectory {
	x := dynamo.NewState(
		[]dynamo.Vec{{X: 1, Y: 0}, {X: -1, Y: 0}},
		[]dynamo.Vec{{X: 0, Y: 1}, {X: 0, Y: -1}},
	)
	traj := dynamo.NewTrajectory(x, 1, steps)
	for k := 1; k <= steps; k++ {
		f := float64(k) / float64(steps)
		traj.Append(dynamo.NewState(
			[]dynamo.Vec{{X: 1 - f, Y: f}, {X: -1 + f, Y: -f}},
			x.Velocities,
		))
	}
	return traj
}

func TestCanvasSetAndOwner(t *testing.T) {
	c := NewCanvas(2, 1)
	c.Set(0, 0, 3)
	c.Set(3, 3, 1)
	c.Set(-1, 0, 0)
	c.Set(4, 0, 0)

	if c.Grid[0][0] != 0x2801 {
		t.Errorf("expected ⠁, got %q", c.Grid[0][0])
	}
	if c.Grid[0][1] != 0x2880 {
		t.Errorf("expected ⢀, got %q", c.Grid[0][1])
	}
	if c.Owner[0][0] != 3 || c.Owner[0][1] != 1 {
		t.Errorf("unexpected owners %v", c.Owner[0])
	}

	c.Clear()
	if c.String() != "⠀⠀\n" || c.Owner[0][0] != noOwner {
		t.Errorf("expected blank canvas, got %q", c.String())
	}
}

func TestCanvasDrawLine(t *testing.T) {
	c := NewCanvas(4, 1)
	c.DrawLine(0, 0, 7, 0, 0)
	for j, r := range c.Grid[0] {
		if r != 0x2809 {
			t.Errorf("cell %d: expected ⠉, got %q", j, r)
		}
	}
}

func TestCanvasRenderKeepsGlyphs(t *testing.T) {
	c := NewCanvas(3, 1)
	c.Set(0, 0, 0)
	c.Set(2, 0, 5)
	out := c.Render([]lipgloss.Style{lipgloss.NewStyle()})
	if !strings.Contains(out, "⠁") || strings.Count(out, "\n") != 1 {
		t.Errorf("unexpected render %q", out)
	}
}

func TestViewProjectEqualAspect(t *testing.T) {
	v := NewView(dynamo.Vec{}, 1, 20, 10)

	cx, cy, ok := v.Project(dynamo.Vec{})
	if !ok || cx != 20 || cy != 20 {
		t.Errorf("expected centre (20, 20), got (%d, %d)", cx, cy)
	}

	rx, _, _ := v.Project(dynamo.Vec{X: 1})
	_, uy, _ := v.Project(dynamo.Vec{Y: 1})
	if rx-cx != cy-uy {
		t.Errorf("expected equal scaling, got dx=%d dy=%d", rx-cx, cy-uy)
	}
}

func TestViewProjectRejectsNaN(t *testing.T) {
	v := NewView(dynamo.Vec{}, 1, 10, 10)
	if _, _, ok := v.Project(dynamo.Vec{X: math.NaN()}); ok {
		t.Error("expected NaN to be rejected")
	}
}

func TestFitViewUsesExtent(t *testing.T) {
	traj := circleTrajectory(4)
	if v := FitView(traj, 10, 10, 10); v.Half != 10 || v.Center != (dynamo.Vec{}) {
		t.Errorf("unexpected view %+v", v)
	}
	if v := FitView(traj, 0, 10, 10); v.Half <= 1 {
		t.Errorf("expected fitted half-width above 1, got %g", v.Half)
	}
}

func TestBodyColors(t *testing.T) {
	colors := BodyColors([]string{"#ff0000", "bad"}, 3)
	if len(colors) != 3 {
		t.Fatalf("expected 3 colours, got %d", len(colors))
	}
	if colors[0].Hex() != "#ff0000" {
		t.Errorf("expected configured red, got %s", colors[0].Hex())
	}
	if colors[1] == colors[2] {
		t.Error("expected generated colours to differ")
	}
	if styles := BodyStyles([]colorful.Color{{}}); len(styles) != 1 {
		t.Error("expected one style")
	}
}

func TestSparkline(t *testing.T) {
	if s := Sparkline([]float64{0, 1}, 2); s != "▁█" {
		t.Errorf("unexpected sparkline %q", s)
	}
	if s := Sparkline(nil, 3); s != "───" {
		t.Errorf("unexpected empty sparkline %q", s)
	}
}

func TestFormatTime(t *testing.T) {
	tests := []struct {
		t    float64
		want string
	}{
		{1.5, "1.5 s"},
		{3 * 3600, "3.0 h"},
		{10 * 86400, "10.0 d"},
		{50000 * 21600, "34.22 yr"},
	}
	for _, tt := range tests {
		if got := FormatTime(tt.t); got != tt.want {
			t.Errorf("FormatTime(%g) = %s, want %s", tt.t, got, tt.want)
		}
	}
}

func TestPlayerAdvancesFrames(t *testing.T) {
	traj := circleTrajectory(10)
	p := NewPlayer(traj, PlayerOptions{Title: "test", Names: []string{"A"}, Speed: 3, Width: 20, Height: 10})

	if p.Frame() != 0 {
		t.Fatalf("expected frame 0, got %d", p.Frame())
	}

	m, _ := p.Update(TickMsg{})
	p = m.(Player)
	if p.Frame() != 3 {
		t.Errorf("expected frame 3, got %d", p.Frame())
	}

	for i := 0; i < 10; i++ {
		m, _ = p.Update(TickMsg{})
		p = m.(Player)
	}
	if !p.Done() || p.Frame() != 10 {
		t.Errorf("expected to stop at frame 10, got %d", p.Frame())
	}
}

func TestPlayerKeys(t *testing.T) {
	p := NewPlayer(circleTrajectory(10), PlayerOptions{Speed: 2, Width: 20, Height: 10})

	m, _ := p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{' '}})
	p = m.(Player)
	m, _ = p.Update(TickMsg{})
	p = m.(Player)
	if p.Frame() != 0 {
		t.Errorf("expected paused player to stay at 0, got %d", p.Frame())
	}

	m, _ = p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'+'}})
	p = m.(Player)
	m, _ = p.Update(tea.KeyMsg{Type: tea.KeyRight})
	p = m.(Player)
	if p.Frame() != 4 {
		t.Errorf("expected frame 4 after doubling speed, got %d", p.Frame())
	}

	m, _ = p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	p = m.(Player)
	if p.Frame() != 0 {
		t.Errorf("expected restart to frame 0, got %d", p.Frame())
	}

	_, cmd := p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestPlayerViewShowsLegend(t *testing.T) {
	p := NewPlayer(circleTrajectory(4), PlayerOptions{Title: "pair", Names: []string{"Sun", "Earth"}, Width: 20, Height: 10})
	out := p.View()
	for _, want := range []string{"Sun", "Earth", "step", "0 / 4"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected view to contain %q", want)
		}
	}
}

func TestRenderDrawsWholeTrajectory(t *testing.T) {
	out := Render(circleTrajectory(8), PlayerOptions{Width: 20, Height: 10})
	if strings.Count(out, "\n") != 10 {
		t.Errorf("expected 10 rows, got %d", strings.Count(out, "\n"))
	}
	if strings.Trim(out, "⠀\n") == "" {
		t.Error("expected some pixels set")
	}
}

func TestThemes(t *testing.T) {
	if NextTheme(ThemeSunset).Name != Themes[0].Name {
		t.Error("expected wrap-around")
	}
	if GetTheme("nope").Name != "space" {
		t.Error("expected default theme")
	}
	if len(ThemeNames()) != len(Themes) {
		t.Error("unexpected theme names")
	}
}

func TestPlayerShowsEnergyDrift(t *testing.T) {
	traj := circleTrajectory(4)
	drift := []float64{0, 1e-6, 2e-6, 3e-6, 4e-6}
	p := NewPlayer(traj, PlayerOptions{Drift: drift, Speed: 2, Width: 20, Height: 10})

	m, _ := p.Update(TickMsg{})
	out := m.(Player).View()
	if !strings.Contains(out, "energy drift") || !strings.Contains(out, "2.00e-06") {
		t.Errorf("expected drift at frame 2 in view:\n%s", out)
	}
	if !strings.Contains(out, "▁▄█") {
		t.Errorf("expected sparkline of the first three samples in view:\n%s", out)
	}

	if out := NewPlayer(traj, PlayerOptions{Width: 20, Height: 10}).View(); strings.Contains(out, "energy drift") {
		t.Error("expected no drift panel without drift data")
	}
}

func TestPlayerThemeOption(t *testing.T) {
	traj := circleTrajectory(4)
	if p := NewPlayer(traj, PlayerOptions{Theme: "sunset"}); p.theme.Name != "sunset" {
		t.Errorf("expected sunset, got %s", p.theme.Name)
	}
	if p := NewPlayer(traj, PlayerOptions{Theme: "nope"}); p.theme.Name != Themes[0].Name {
		t.Errorf("expected fallback to %s, got %s", Themes[0].Name, p.theme.Name)
	}
}

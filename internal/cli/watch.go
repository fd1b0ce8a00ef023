package cli

import (
	"context"
	"fmt"
	"math"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/cellplot/cellplot/pkg/canvas"
	"github.com/cellplot/cellplot/pkg/data"
	"github.com/cellplot/cellplot/pkg/geom"
	"github.com/cellplot/cellplot/pkg/plot"
)

// watchCommand creates the watch subcommand: a live chart that re-renders
// on a timer and reports frame diff statistics.
func (c *CLI) watchCommand() *cobra.Command {
	var interval time.Duration
	var points int

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Show a live-updating chart with frame diff statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			m := newWatchModel(interval, points)
			prog := tea.NewProgram(m, tea.WithContext(cmd.Context()))
			_, err := prog.Run()
			return err
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", 250*time.Millisecond, "frame interval")
	cmd.Flags().IntVar(&points, "points", 120, "points kept in the rolling window")
	return cmd
}

var (
	watchHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	watchStatStyle   = lipgloss.NewStyle().Foreground(colorGray)
	watchWarnStyle   = lipgloss.NewStyle().Foreground(colorYellow)
)

type watchTickMsg time.Time

// watchModel drives the live chart: every tick appends a sample, renders
// a fresh frame, and diffs it against the previous one.
type watchModel struct {
	interval time.Duration
	capacity int

	rows data.DataSource
	t    float64

	width, height int

	differ *canvas.Differ
	frame  string
	stats  string
}

func newWatchModel(interval time.Duration, points int) *watchModel {
	if points < 10 {
		points = 10
	}
	return &watchModel{
		interval: interval,
		capacity: points,
		differ:   canvas.NewDiffer(),
		width:    80,
		height:   24,
	}
}

func (m *watchModel) Init() tea.Cmd {
	return m.tick()
}

func (m *watchModel) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return watchTickMsg(t)
	})
}

func (m *watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "r":
			m.differ.Reset()
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height - 2 // footer rows
		if m.height < 8 {
			m.height = 8
		}
		m.differ.Reset()
	case watchTickMsg:
		m.step()
		return m, m.tick()
	}
	return m, nil
}

// step advances the series and produces the next frame.
func (m *watchModel) step() {
	m.t++
	value := math.Sin(m.t/9) + 0.4*math.Sin(m.t/2.3)
	m.rows = append(m.rows, data.Record{"t": m.t, "value": value})
	if len(m.rows) > m.capacity {
		m.rows = m.rows[len(m.rows)-m.capacity:]
	}

	c, err := plot.New(m.rows).
		Aes(data.Mapping{data.AesX: "t", data.AesY: "value"}).
		Geom(geom.Line, geom.Params{}).
		Geom(geom.HLine, geom.Params{YIntercept: 0}).
		Title("live signal").
		Size(m.width, m.height).
		RenderCanvas(context.Background())
	if err != nil {
		m.stats = watchWarnStyle.Render(fmt.Sprintf("render error: %v", err))
		return
	}

	res := m.differ.Diff(c)
	m.frame = c.String()
	switch {
	case res.FullRender:
		m.stats = watchStatStyle.Render(fmt.Sprintf(
			"full render · %d cells", res.TotalCells))
	default:
		m.stats = watchStatStyle.Render(fmt.Sprintf(
			"diff · %d/%d cells changed (%.1f%%)",
			res.ChangedCells, res.TotalCells, res.ChangePercent*100))
	}
}

func (m *watchModel) View() string {
	if m.frame == "" {
		return watchHeaderStyle.Render("warming up…")
	}
	footer := m.stats + watchStatStyle.Render("  ·  q quit · r reset differ")
	return m.frame + "\n" + footer
}

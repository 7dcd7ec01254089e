package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/NimbleMarkets/ntcharts/canvas/runes"
	"github.com/NimbleMarkets/ntcharts/linechart/streamlinechart"

	"github.com/LeslieMarande/qibullet/pkg/hardware"
	"github.com/LeslieMarande/qibullet/pkg/robot"
	"github.com/LeslieMarande/qibullet/pkg/sim"
	"github.com/LeslieMarande/qibullet/pkg/teleop"
)

type TeleoperateCommand struct {
	Hz   int    `long:"hz" default:"60" description:"Control loop frequency"`
	Hand string `long:"hand" default:"RHand" choice:"RHand" choice:"LHand" description:"Composite actuator to drive"`
}

const (
	headerHeight = 2 // title + blank line
	legendHeight = 2 // legend row + blank
	footerHeight = 7 // log box height
	maxLogs      = 5 // number of log messages to show
	borderSize   = 2 // chart border
)

const (
	seriesTarget = "target"
	seriesHand   = "hand"
)

var seriesColors = map[string]string{
	seriesTarget: "208", // orange
	seriesHand:   "46",  // green
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	chartStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

type teleopModel struct {
	ctrl     *teleop.Controller
	chart    *streamlinechart.Model
	width    int // terminal width
	height   int // terminal height
	logs     []string
	quitting bool
}

func (m *teleopModel) addLog(msg string) {
	m.logs = append(m.logs, msg)
	if len(m.logs) > maxLogs {
		m.logs = m.logs[len(m.logs)-maxLogs:]
	}
}

// Messages from the controller
type stateMsg teleop.State
type logMsg string

func waitForState(ctrl *teleop.Controller) tea.Cmd {
	return func() tea.Msg {
		return stateMsg(<-ctrl.States())
	}
}

func waitForLog(ctrl *teleop.Controller) tea.Cmd {
	return func() tea.Msg {
		return logMsg(<-ctrl.Logs())
	}
}

// chartSize calculates the size of the chart based on terminal dimensions
func (m *teleopModel) chartSize() (width, height int) {
	if m.width == 0 || m.height == 0 {
		return 80, 20 // default size before we know terminal size
	}
	width = m.width - borderSize - 2
	if width < 40 {
		width = 40
	}
	height = m.height - headerHeight - legendHeight - footerHeight - borderSize
	if height < 10 {
		height = 10
	}
	return width, height
}

func (m *teleopModel) resizeChart() {
	w, h := m.chartSize()
	m.chart.Resize(w, h)
}

func initialTeleopModel(ctrl *teleop.Controller) teleopModel {
	chart := streamlinechart.New(80, 20,
		streamlinechart.WithYRange(0, 1),
	)

	for name, color := range seriesColors {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(color))
		chart.SetDataSetStyles(name, runes.ThinLineStyle, style)
	}

	return teleopModel{
		ctrl:  ctrl,
		chart: &chart,
	}
}

func (m teleopModel) Init() tea.Cmd {
	return tea.Batch(
		waitForState(m.ctrl),
		waitForLog(m.ctrl),
	)
}

func (m teleopModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeChart()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "up":
			m.ctrl.Drive(0.2, 0, 0)
		case "down":
			m.ctrl.Drive(-0.2, 0, 0)
		case "left":
			m.ctrl.Drive(0, 0, 0.5)
		case "right":
			m.ctrl.Drive(0, 0, -0.5)
		case " ":
			m.ctrl.Drive(0, 0, 0)
		}

	case stateMsg:
		state := teleop.State(msg)
		if state.Error == nil {
			m.chart.PushDataSet(seriesTarget, state.Target)
			m.chart.PushDataSet(seriesHand, state.Hand)
			m.chart.DrawAll()
		}
		return m, waitForState(m.ctrl)

	case logMsg:
		m.addLog(string(msg))
		return m, waitForLog(m.ctrl)
	}

	return m, nil
}

func (m teleopModel) View() string {
	if m.quitting {
		return "Teleoperation stopped.\n"
	}

	var sb strings.Builder

	// Header
	sb.WriteString(titleStyle.Render("qibullet Teleoperate"))
	sb.WriteString(fmt.Sprintf(" - %d Hz", m.ctrl.Hz()))
	if m.width > 0 {
		sb.WriteString(statusStyle.Render(fmt.Sprintf("  [%dx%d]", m.width, m.height)))
	}
	sb.WriteString("\n\n")

	// Chart
	sb.WriteString(chartStyle.Render(m.chart.View()))
	sb.WriteString("\n")

	// Legend
	sb.WriteString(renderLegend())
	sb.WriteString("\n")

	// Log box
	logStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(m.width - 4).
		Foreground(lipgloss.Color("9"))

	var logLines string
	if len(m.logs) == 0 {
		logLines = statusStyle.Render("Arrows drive the base, space stops it, 'q' quits")
	} else {
		logLines = strings.Join(m.logs, "\n")
	}
	sb.WriteString(logStyle.Render(logLines))
	sb.WriteString("\n")

	return sb.String()
}

func renderLegend() string {
	var items []string
	for _, name := range []string{seriesTarget, seriesHand} {
		colorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(seriesColors[name])).Bold(true)
		items = append(items, colorStyle.Render("━━")+" "+name)
	}
	return strings.Join(items, "  ")
}

func (c *TeleoperateCommand) Execute(args []string) error {
	cfg, err := robot.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "No configuration found. Create qibullet.json first.")
		os.Exit(1)
	}
	if !cfg.HasLeader() {
		fmt.Fprintln(os.Stderr, "No leader rig configured in qibullet.json.")
		os.Exit(1)
	}

	cal, err := hardware.LoadCalibration(cfg.Leader.Calibration)
	if err != nil {
		log.Fatalf("Failed to load calibration: %v", err)
	}
	rig, err := hardware.NewRig(cfg.Leader.Port, cal)
	if err != nil {
		log.Fatalf("Failed to open leader rig: %v", err)
	}

	mgr := sim.NewSimulationManager(nil)
	s := mgr.Launch(cfg.Simulation.Hz)
	defer mgr.Stop(s)

	gripper, err := mgr.SpawnGripper(context.Background(), s)
	if err != nil {
		log.Fatalf("Failed to spawn gripper: %v", err)
	}

	ctrl, err := teleop.NewController(teleop.Config{
		Leader:  rig,
		Gripper: gripper,
		Hand:    c.Hand,
		Hz:      c.Hz,
	})
	if err != nil {
		log.Fatalf("Failed to create controller: %v", err)
	}
	defer ctrl.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		if err := ctrl.Start(ctx); err != nil && err != context.Canceled {
			log.Printf("Controller error: %v", err)
		}
	}()

	p := tea.NewProgram(initialTeleopModel(ctrl), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Fatalf("Error running program: %v", err)
	}

	return nil
}

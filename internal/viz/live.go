package viz

import (
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/pendlab/pendsim/dynamo"
	"github.com/pendlab/pendsim/models"
)

const (
	width           = 60
	height          = 20
	historyCapacity = 600
	substeps        = 4
)

type TickMsg time.Time

// Model holds the live simulation state and visualization buffers.
type Model struct {
	dyn           dynamo.System
	integrator    dynamo.Integrator
	state         dynamo.State
	t, dt         float64
	canvas        *Canvas
	running       bool
	modelName     string
	thetaHistory  []float64
	energyHistory []float64
	params        map[string]float64
	initialParams map[string]float64
	paramKeys     []string
	selected      int
	initialState  dynamo.State
}

// NewModel initializes the live view for a system.
func NewModel(dyn dynamo.System, integ dynamo.Integrator, initState []float64, dt float64, modelName string) Model {
	params := make(map[string]float64)
	if c, ok := dyn.(dynamo.Configurable); ok {
		for k, v := range c.GetParams() {
			params[k] = v
		}
	}
	keys := make([]string, 0, len(params))
	initialParams := make(map[string]float64)
	for k, v := range params {
		keys = append(keys, k)
		if v == 0 {
			v = 1e-6
		}
		initialParams[k] = v
	}
	sort.Strings(keys)

	return Model{
		dyn:           dyn,
		integrator:    integ,
		state:         dynamo.State(initState).Clone(),
		t:             0,
		dt:            dt,
		canvas:        NewCanvas(width, height),
		running:       true,
		modelName:     modelName,
		thetaHistory:  make([]float64, 0, historyCapacity),
		energyHistory: make([]float64, 0, historyCapacity),
		params:        params,
		initialParams: initialParams,
		paramKeys:     keys,
		selected:      0,
		initialState:  dynamo.State(initState).Clone(),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		case "tab":
			m.cycleParam()
		case "up", "k":
			m.adjustParam(1.05)
		case "down", "j":
			m.adjustParam(0.95)
		}
		return m, nil

	case TickMsg:
		if m.running {
			m.step()
		}
		return m, tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
	}

	return m, nil
}

func (m *Model) step() {
	for i := 0; i < substeps; i++ {
		m.state = m.integrator.Step(m.dyn, m.state, m.t, m.dt)
		m.t += m.dt
	}

	m.thetaHistory = append(m.thetaHistory, m.state[0])
	if len(m.thetaHistory) > historyCapacity {
		m.thetaHistory = m.thetaHistory[1:]
	}

	if h, ok := m.dyn.(dynamo.Hamiltonian); ok {
		m.energyHistory = append(m.energyHistory, h.Energy(m.state))
		if len(m.energyHistory) > historyCapacity {
			m.energyHistory = m.energyHistory[1:]
		}
	}
}

func (m *Model) reset() {
	m.state = m.initialState.Clone()
	m.t = 0
	m.thetaHistory = m.thetaHistory[:0]
	m.energyHistory = m.energyHistory[:0]
}

func (m *Model) cycleParam() {
	if len(m.paramKeys) > 0 {
		m.selected = (m.selected + 1) % len(m.paramKeys)
	}
}

func (m *Model) adjustParam(factor float64) {
	if len(m.paramKeys) == 0 {
		return
	}
	c, ok := m.dyn.(dynamo.Configurable)
	if !ok {
		return
	}
	key := m.paramKeys[m.selected]
	val := m.params[key] * factor
	if val == 0 {
		val = 1e-6
	}
	if err := c.SetParam(key, val); err == nil {
		m.params[key] = val
	}
}

// draw renders the pendulum rods in the pivot's frame of reference.
func (m *Model) draw() {
	m.canvas.Clear()

	// Sub-pixel canvas is (width*2) x (height*4); pivot sits at the center.
	cx, cy := width, height*2
	scale := float64(height*4) / 4.5

	px, py := cx, cy
	switch dyn := m.dyn.(type) {
	case *models.Pendulum:
		x, y := dyn.BobPosition(m.state[0])
		bx, by := cx+int(x*scale), cy-int(y*scale)
		m.canvas.DrawLine(px, py, bx, by)
	case *models.DoublePendulum:
		x0, y0, x1, y1 := dyn.TipPositions(m.state[0], m.state[2])
		b0x, b0y := cx+int(x0*scale/2), cy-int(y0*scale/2)
		b1x, b1y := cx+int(x1*scale/2), cy-int(y1*scale/2)
		m.canvas.DrawLine(px, py, b0x, b0y)
		m.canvas.DrawLine(b0x, b0y, b1x, b1y)
	}
}

func (m Model) View() string {
	m.draw()
	canvasView := canvasStyle.Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.modelName)) + "\n")
	status := "RUNNING"
	if !m.running {
		status = "PAUSED"
	}
	s.WriteString(fmt.Sprintf("%s\n\n", status))

	if len(m.thetaHistory) > 1 {
		chart := asciigraph.Plot(m.thetaHistory,
			asciigraph.Height(4),
			asciigraph.Width(30),
			asciigraph.Caption("theta"),
		)
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.2fs", m.t)) + "\n")
	if len(m.energyHistory) > 0 {
		energy := m.energyHistory[len(m.energyHistory)-1]
		s.WriteString(labelStyle.Render("Energy") + valueStyle.Render(fmt.Sprintf("%.3f", energy)) + "\n")
	}

	s.WriteString("\nPARAMETERS\n")
	if len(m.params) > 0 {
		for i, k := range m.paramKeys {
			val, initial := m.params[k], m.initialParams[k]
			barWidth, ratio := 10, val/(2.0*initial)
			if ratio > 1 {
				ratio = 1
			} else if ratio < 0 {
				ratio = 0
			}
			filled := int(ratio * float64(barWidth))
			bar := "[" + strings.Repeat("=", filled) + strings.Repeat("-", barWidth-filled) + "]"
			line := fmt.Sprintf("%-10s %s %.2f", k, bar, val)
			if i == m.selected {
				s.WriteString(activeParamStyle.Render("> "+line) + "\n")
			} else {
				s.WriteString("  " + labelStyle.Render(line) + "\n")
			}
		}
	} else {
		s.WriteString(labelStyle.Render("  (none)") + "\n")
	}

	s.WriteString(helpStyle.Render("\n─────────────────\nSP:Pause R:Reset Q:Quit\nTab:Select ↑↓:Tune"))
	statsView := statsStyle.Render(s.String())

	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
}

// RunLive starts the interactive live view and blocks until it exits.
func RunLive(dyn dynamo.System, integ dynamo.Integrator, initState []float64, dt float64, modelName string) error {
	p := tea.NewProgram(NewModel(dyn, integ, initState, dt, modelName))
	_, err := p.Run()
	return err
}

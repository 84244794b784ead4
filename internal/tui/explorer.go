// Package tui is an interactive terminal explorer for plasma parameters.
package tui

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/san-kum/plasmalab/internal/config"
	"github.com/san-kum/plasmalab/internal/quantity"
)

// Ions are the species the explorer cycles through.
var Ions = []string{"p+", "D+", "He-4 2+", "O+", "Ar+"}

const (
	fineStep   = 1.7782794100389228 // 10^(1/4)
	decadeStep = 10
)

type param int

const (
	paramDensity param = iota
	paramTe
	paramTi
	paramB
	paramCount
)

var paramNames = [paramCount]string{"density", "T_e", "T_i", "B"}

type model struct {
	params  Params
	cursor  param
	presets []string
	byName  map[string]Params
	preset  int
	rows    []Row
	width   int
}

// New returns an explorer starting at p. presets are offered with the p key.
func New(p Params, presets map[string]Params) tea.Model {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	m := model{params: p, presets: names, byName: presets, preset: -1, width: 80}
	m.rows = Derive(m.params)
	return m
}

// Run starts the explorer on the terminal.
func Run(p Params, presets map[string]Params) error {
	_, err := tea.NewProgram(New(p, presets), tea.WithAltScreen()).Run()
	return err
}

// FromPlasma converts a parsed plasma configuration. Temperatures given
// in kelvin are converted to eV.
func FromPlasma(p *config.Plasma) (Params, error) {
	te, err := toEV(p.Temperature)
	if err != nil {
		return Params{}, fmt.Errorf("temperature: %w", err)
	}
	ti, err := toEV(p.IonTemp)
	if err != nil {
		return Params{}, fmt.Errorf("ion temperature: %w", err)
	}
	n, err := p.Density.In(quantity.PerCubicMetre)
	if err != nil {
		return Params{}, fmt.Errorf("density: %w", err)
	}
	b, err := p.Field.In(quantity.Tesla)
	if err != nil {
		return Params{}, fmt.Errorf("field: %w", err)
	}
	return Params{Density: n, Te: te, Ti: ti, B: b, Ion: p.Ion.Symbol()}, nil
}

func toEV(q quantity.Quantity) (float64, error) {
	if c, ok := quantity.TemperatureEnergy().Convert(q, quantity.ElectronVolt); ok {
		q = c
	}
	return q.In(quantity.ElectronVolt)
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m.cursor = (m.cursor + paramCount - 1) % paramCount
		case "down", "j":
			m.cursor = (m.cursor + 1) % paramCount
		case "right", "l", "+":
			m.scale(fineStep)
		case "left", "h", "-":
			m.scale(1 / fineStep)
		case "]":
			m.scale(decadeStep)
		case "[":
			m.scale(1.0 / decadeStep)
		case "i":
			m.params.Ion = Ions[(indexOf(Ions, m.params.Ion)+1)%len(Ions)]
		case "p":
			if len(m.presets) == 0 {
				return m, nil
			}
			m.preset = (m.preset + 1) % len(m.presets)
			m.params = m.byName[m.presets[m.preset]]
		default:
			return m, nil
		}
		m.rows = Derive(m.params)
	}
	return m, nil
}

func indexOf(xs []string, s string) int {
	for i, x := range xs {
		if x == s {
			return i
		}
	}
	return -1
}

func (m *model) scale(f float64) {
	switch m.cursor {
	case paramDensity:
		m.params.Density *= f
	case paramTe:
		m.params.Te *= f
	case paramTi:
		m.params.Ti *= f
	case paramB:
		m.params.B *= f
	}
}

func (m model) value(p param) string {
	switch p {
	case paramDensity:
		return fmt.Sprintf("%.3e m^-3", m.params.Density)
	case paramTe:
		return fmt.Sprintf("%.3g eV", m.params.Te)
	case paramTi:
		return fmt.Sprintf("%.3g eV", m.params.Ti)
	case paramB:
		return fmt.Sprintf("%.3g T", m.params.B)
	}
	return ""
}

func (m model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("plasmalab explorer"))
	if m.preset >= 0 {
		b.WriteString(label.Render("  preset " + m.presets[m.preset]))
	}
	b.WriteString("\n\n")

	var inputs strings.Builder
	for p := range paramCount {
		name := fmt.Sprintf("%-8s", paramNames[p])
		if p == m.cursor {
			inputs.WriteString(selected.Render("> " + name))
		} else {
			inputs.WriteString(label.Render("  " + name))
		}
		inputs.WriteString(" " + value.Render(m.value(p)) + "\n")
	}
	inputs.WriteString(label.Render("  ion     ") + " " + value.Render(m.params.Ion))
	b.WriteString(panel.Render(inputs.String()))
	b.WriteString("\n")

	b.WriteString(m.table())
	b.WriteString("\n")
	b.WriteString(hint.Render("up/down select  left/right x10^(1/4)  [ ] x10  i ion  p preset  q quit"))
	return b.String()
}

func (m model) table() string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("#444466"))).
		Headers("quantity", "value").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerCell
			}
			return cell
		})

	var failed int
	for _, r := range m.rows {
		t.Row(r.Name, r.Text())
		if r.Err != nil {
			failed++
		}
	}
	out := t.Render()
	if failed > 0 {
		out += "\n" + warn.Render(fmt.Sprintf("%d quantities undefined for these inputs", failed))
	}
	return out
}

package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/tinypnr/pkg/netlist"
	"github.com/matzehuels/tinypnr/pkg/place"
	"github.com/matzehuels/tinypnr/pkg/route"
)

// Floorplan canvas size in characters.
const (
	floorCols = 48
	floorRows = 16
)

var (
	floorStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorDim).Padding(0, 1)
	cellMarkStyle = lipgloss.NewStyle().Foreground(colorWhite)
	cellSelStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
)

// previewCommand creates the preview command: an interactive floorplan view.
func (c *CLI) previewCommand() *cobra.Command {
	geo := geometryFlags{}

	cmd := &cobra.Command{
		Use:   "preview <design.json|netlist.v>",
		Short: "Interactively browse the placed floorplan",
		Long: `Open an interactive terminal view of the placed die.

Cells are drawn at their grid positions; selecting a cell shows its pins
and the nets it drives. Placement runs on load with the configured die.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPreview(args[0], geo.resolve(cmd))
		},
	}
	geo.register(cmd)

	return cmd
}

func (c *CLI) runPreview(input string, geo geometryFlags) error {
	d, err := loadDesign(input)
	if err != nil {
		return err
	}

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	die := cfg.DiePlan()
	if geo.dieWidth > 0 {
		die.Width = geo.dieWidth
	}
	if geo.dieHeight > 0 {
		die.Height = geo.dieHeight
	}
	place.Place(d, die)

	if d.Empty() {
		printInfo("Design has no cells; nothing to preview")
		return nil
	}

	model := newFloorplanModel(d, die)
	_, err = tea.NewProgram(model).Run()
	return err
}

// =============================================================================
// FloorplanModel - Interactive placed-die browser
// =============================================================================

// floorplanModel is the bubbletea model for the floorplan preview.
type floorplanModel struct {
	design *netlist.Design
	die    place.Die
	cells  []*netlist.Cell
	nets   map[string]*route.Net
	cursor int
}

func newFloorplanModel(d *netlist.Design, die place.Die) floorplanModel {
	return floorplanModel{
		design: d,
		die:    die,
		cells:  d.Cells(),
		nets:   route.BuildNets(d),
	}
}

func (m floorplanModel) Init() tea.Cmd {
	return nil
}

func (m floorplanModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "left", "h", "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "right", "l", "down", "j", "tab":
			if m.cursor < len(m.cells)-1 {
				m.cursor++
			}
		}
	}
	return m, nil
}

func (m floorplanModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(fmt.Sprintf("Floorplan — %s", m.design.Module)))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("←/→ select cell  q quit"))
	b.WriteString("\n\n")

	b.WriteString(floorStyle.Render(m.renderCanvas()))
	b.WriteString("\n\n")
	b.WriteString(m.renderDetail())
	b.WriteString("\n")

	return b.String()
}

// renderCanvas draws the die as a character grid with one marker per cell.
// The y axis is flipped so the die origin sits at the bottom-left, matching
// the DEF coordinate system.
func (m floorplanModel) renderCanvas() string {
	// selected wins when two cells land on the same character
	marks := make(map[[2]int]bool)
	for i, c := range m.cells {
		col := clamp(int(c.X/m.die.Width*floorCols), 0, floorCols-1)
		row := clamp(int(c.Y/m.die.Height*floorRows), 0, floorRows-1)
		key := [2]int{col, row}
		marks[key] = marks[key] || i == m.cursor
	}

	var b strings.Builder
	for row := floorRows - 1; row >= 0; row-- {
		for col := 0; col < floorCols; col++ {
			if selected, ok := marks[[2]int{col, row}]; ok {
				if selected {
					b.WriteString(cellSelStyle.Render("▣"))
				} else {
					b.WriteString(cellMarkStyle.Render("■"))
				}
				continue
			}
			b.WriteString(StyleDim.Render("·"))
		}
		if row > 0 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// renderDetail shows the selected cell's pins and driven connections.
func (m floorplanModel) renderDetail() string {
	c := m.cells[m.cursor]

	var pins []string
	for _, p := range c.Pins {
		pins = append(pins, fmt.Sprintf("%s (%s)", p.Name, p.Dir))
	}

	fanout := 0
	if out, ok := c.Output(); ok {
		if net := m.nets[out.Name]; net != nil {
			fanout = len(net.Sinks)
		}
	}

	var b strings.Builder
	b.WriteString(cellSelStyle.Render(c.Name))
	b.WriteString(StyleDim.Render(fmt.Sprintf("  %s  (%g, %g)", c.Type, c.X, c.Y)))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("pins: "))
	b.WriteString(StyleValue.Render(strings.Join(pins, ", ")))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render(fmt.Sprintf("drives %d sink(s)", fanout)))
	return b.String()
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/onion/pkg/errors"
	"github.com/matzehuels/onion/pkg/peel"
	"github.com/matzehuels/onion/pkg/pipeline"
	"github.com/matzehuels/onion/pkg/pivot"
	"github.com/matzehuels/onion/pkg/pointset"
)

// rollCommand creates the roll command, an interactive stepper over a
// single traversal.
func (c *CLI) rollCommand() *cobra.Command {
	var (
		diameter float64
		anchor   int
	)

	cmd := &cobra.Command{
		Use:   "roll [file]",
		Short: "Step through one disc traversal interactively",
		Long: `Roll a disc around a point set one pivot at a time.

Press space or n to roll once, a to roll until the traversal ends, and q to
quit. Without --anchor the traversal starts at the leftmost node that admits
an empty disc.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := pipeline.Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			set, err := doc.PointSet()
			if err != nil {
				return err
			}
			var start *int
			if cmd.Flags().Changed("anchor") {
				start = &anchor
			}
			roller, err := newRoller(set, diameter, start)
			if err != nil {
				return err
			}

			final, err := tea.NewProgram(newRollModel(roller), tea.WithContext(cmd.Context())).Run()
			if err != nil {
				return err
			}
			if m, ok := final.(RollModel); ok && m.Err != nil {
				return m.Err
			}
			return nil
		},
	}

	cmd.Flags().Float64VarP(&diameter, "diameter", "d", pipeline.DefaultDiameter, "disc diameter")
	cmd.Flags().IntVar(&anchor, "anchor", 0, "node id to start from (default: leftmost with a seed)")
	return cmd
}

// newRoller builds the neighbor graph of set at diameter and seeds a roller
// at anchor, or at the leftmost node admitting a seed when anchor is nil.
func newRoller(set *pointset.Set, diameter float64, anchor *int) (*pivot.Roller, error) {
	if err := pipeline.ValidateDiameters([]float64{diameter}); err != nil {
		return nil, err
	}
	if err := set.Rebuild(diameter); err != nil {
		return nil, err
	}

	var candidates []*pointset.Node
	if anchor != nil {
		n, ok := set.Node(*anchor)
		if !ok {
			return nil, errors.New(errors.ErrCodeNotFound, "anchor node %d is not in the point set", *anchor)
		}
		candidates = []*pointset.Node{n}
	} else {
		candidates = peel.Anchors(set)
	}

	for _, n := range candidates {
		if seed, ok := pivot.FindSeed(n, diameter); ok {
			return pivot.NewRoller(set, seed), nil
		}
	}
	return nil, errors.New(errors.ErrCodeNotFound, "no node admits an empty disc of diameter %g", diameter)
}

// =============================================================================
// RollModel - Interactive traversal stepper
// =============================================================================

// rollHistory is the number of recent edges shown.
const rollHistory = 10

var (
	rollHeaderStyle = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	rollLatestStyle = lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
	rollDimStyle    = lipgloss.NewStyle().Foreground(colorDim)
)

// RollModel is the bubbletea model for stepping through a traversal.
type RollModel struct {
	Roller *pivot.Roller
	Edges  []pivot.Edge
	Err    error
}

func newRollModel(r *pivot.Roller) RollModel {
	return RollModel{Roller: r}
}

func (m RollModel) Init() tea.Cmd {
	return nil
}

func (m RollModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case " ", "n", "right":
		m = m.step()
	case "a", "enter":
		for !m.Roller.Done() && m.Err == nil {
			m = m.step()
		}
	}
	return m, nil
}

func (m RollModel) step() RollModel {
	e, ok, err := m.Roller.Step()
	if err != nil {
		m.Err = err
		return m
	}
	if ok {
		m.Edges = append(m.Edges, e)
	}
	return m
}

func (m RollModel) View() string {
	var b strings.Builder

	circle := m.Roller.Center()
	b.WriteString(StyleTitle.Render(fmt.Sprintf("Rolling d=%g", circle.Diameter)))
	b.WriteString("\n")
	b.WriteString(rollDimStyle.Render("space/n roll  a run to end  q quit"))
	b.WriteString("\n\n")

	anchor := m.Roller.Anchor()
	fmt.Fprintf(&b, "anchor  %s at (%.2f, %.2f)\n", StyleNumber.Render(fmt.Sprint(anchor.ID)), anchor.X, anchor.Y)
	fmt.Fprintf(&b, "center  (%.2f, %.2f)\n", circle.Center.X, circle.Center.Y)
	fmt.Fprintf(&b, "edges   %d\n\n", len(m.Edges))

	start := max(0, len(m.Edges)-rollHistory)
	rows := make([][]string, 0, len(m.Edges)-start)
	for i := start; i < len(m.Edges); i++ {
		e := m.Edges[i]
		rows = append(rows, []string{fmt.Sprint(i + 1), fmt.Sprint(e.From), fmt.Sprint(e.To)})
	}
	last := len(rows) - 1
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", "From", "To").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return rollHeaderStyle
			case row == last:
				return rollLatestStyle
			}
			return lipgloss.NewStyle()
		})
	b.WriteString(t.Render())
	b.WriteString("\n\n")

	switch {
	case m.Err != nil:
		b.WriteString(styleIconError.Render(iconError) + " " + m.Err.Error())
	case m.Roller.Done() && m.Roller.Ring().Closed():
		b.WriteString(styleIconSuccess.Render(iconSuccess) + " ring closed")
	case m.Roller.Done():
		b.WriteString(StyleWarning.Render("boundary is open"))
	}
	b.WriteString("\n")
	return b.String()
}

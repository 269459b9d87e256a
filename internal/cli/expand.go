package cli

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/matzehuels/sprout/pkg/grammar"
	"github.com/matzehuels/sprout/pkg/preset"
)

// expandOpts holds the command-line flags for the expand command.
type expandOpts struct {
	generations int  // rewriting passes (default from preset)
	maxLength   int  // longest sequence a generation may reach
	print       bool // write the raw sequence to stdout instead of statistics
}

// expandCommand creates the expand command for inspecting a preset's sequence.
func (c *CLI) expandCommand() *cobra.Command {
	opts := expandOpts{maxLength: grammar.DefaultMaxLength}

	cmd := &cobra.Command{
		Use:               "expand [preset]",
		Short:             "Expand a preset's grammar and show statistics",
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: c.presetNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			name := defaultGrowPreset
			if len(args) == 1 {
				name = args[0]
			}
			return c.runExpand(cmd.Context(), cmd.Flags(), cmd.OutOrStdout(), name, &opts)
		},
	}

	cmd.Flags().IntVarP(&opts.generations, "generations", "n", 0, "rewriting passes (default from preset)")
	cmd.Flags().IntVar(&opts.maxLength, "max-length", opts.maxLength, "longest sequence a generation may reach")
	cmd.Flags().BoolVarP(&opts.print, "print", "p", false, "print the expanded sequence")

	return cmd
}

func (c *CLI) runExpand(ctx context.Context, flags *pflag.FlagSet, w io.Writer, name string, opts *expandOpts) error {
	logger := loggerFromContext(ctx)

	cat, err := c.catalog()
	if err != nil {
		return err
	}
	p, err := cat.Get(name)
	if err != nil {
		return err
	}
	if flags.Changed("generations") {
		p.Generations = opts.generations
		if err := p.Validate(); err != nil {
			return err
		}
	}

	seq, lengths, err := expandPreset(ctx, logger, &p, opts.maxLength)
	if err != nil {
		return err
	}
	if opts.print {
		_, err := fmt.Fprintln(w, seq.String())
		return err
	}

	out := newPrinter(w)
	out.heading(p.Name, p.Description)
	out.blank()
	out.field("axiom", p.Axiom)
	out.field("rules", p.RuleSummary())
	out.field("angle", strconv.FormatFloat(p.Angle, 'g', -1, 64)+"°")
	out.field("generations", strconv.Itoa(p.Generations))
	out.field("symbols", strconv.Itoa(len(seq)))
	out.blank()
	out.println(lengthsLine(lengths))
	out.println(histogramTable(seq.Histogram(), len(seq)))
	out.blank()
	out.hint("Animate it", fmt.Sprintf("%s grow %s -n %d", appName, p.Name, p.Generations))
	return nil
}

// lengthsLine shows the sequence length of every generation.
func lengthsLine(lengths []int) string {
	parts := make([]string, len(lengths))
	for g, n := range lengths {
		parts[g] = fmt.Sprintf("g%d %d", g, n)
	}
	return statsLine(parts...)
}

// histogramTable renders symbol counts, most frequent first.
func histogramTable(h map[grammar.Symbol]int, total int) string {
	syms := make([]grammar.Symbol, 0, len(h))
	for sym := range h {
		syms = append(syms, sym)
	}
	sort.Slice(syms, func(i, j int) bool {
		if h[syms[i]] != h[syms[j]] {
			return h[syms[i]] > h[syms[j]]
		}
		return syms[i] < syms[j]
	})

	rows := make([][]string, len(syms))
	for i, sym := range syms {
		share := 0.0
		if total > 0 {
			share = 100 * float64(h[sym]) / float64(total)
		}
		rows[i] = []string{string(sym), strconv.Itoa(h[sym]), fmt.Sprintf("%.1f%%", share)}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleBorder).
		Headers("Symbol", "Count", "Share").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			if col == 0 {
				return StyleHighlight
			}
			return lipgloss.NewStyle()
		})
	return t.Render()
}

// presetsCommand creates the presets command, which lists available presets.
func (c *CLI) presetsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := c.catalog()
			if err != nil {
				return err
			}
			newPrinter(cmd.OutOrStdout()).println(presetTable(cat.All()))
			return nil
		},
	}
}

// presetTable renders one row per preset.
func presetTable(presets []preset.Preset) string {
	rows := make([][]string, len(presets))
	for i, p := range presets {
		rows[i] = []string{
			p.Name,
			p.Axiom,
			p.RuleSummary(),
			strconv.FormatFloat(p.Angle, 'g', -1, 64) + "°",
			strconv.Itoa(p.Generations),
			p.Description,
		}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleBorder).
		Headers("Name", "Axiom", "Rules", "Angle", "Gens", "Description").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return styleHeader
			case col == 0:
				return StyleHighlight.Bold(true)
			case col == 5:
				return StyleDim
			}
			return lipgloss.NewStyle()
		})
	return t.Render()
}

package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/matzehuels/sprout/pkg/anim"
	"github.com/matzehuels/sprout/pkg/display"
	"github.com/matzehuels/sprout/pkg/errors"
	"github.com/matzehuels/sprout/pkg/geom"
	"github.com/matzehuels/sprout/pkg/grammar"
	"github.com/matzehuels/sprout/pkg/observability"
	"github.com/matzehuels/sprout/pkg/preset"
	"github.com/matzehuels/sprout/pkg/raster"
	"github.com/matzehuels/sprout/pkg/turtle"
	"github.com/matzehuels/sprout/pkg/viewport"
)

const (
	displayAuto       = "auto"             // terminal when stdout is a TTY, headless otherwise
	defaultFrameRate  = 60                 // frames per second
	spinnerThreshold  = 1 << 20            // projected symbols before a spinner is shown
	defaultGrowPreset = preset.DefaultName // preset grown when none is named
)

// growOpts holds the command-line flags for the grow command. Flags that
// are not set on the command line fall back to the preset's values.
type growOpts struct {
	width       int           // canvas width in pixels
	height      int           // canvas height in pixels
	generations int           // rewriting passes
	angle       float64       // turn angle in degrees
	step        float64       // segment length when --no-fit is set
	margin      float64       // fraction of the canvas kept clear on each side
	ink         string        // stroke color (#rrggbb)
	background  string        // background color (#rrggbb)
	tick        time.Duration // time between cursor advances
	frameRate   int           // frames presented per second; 0 runs unpaced
	advance     int           // symbols revealed per advance
	branches    bool          // fit over every branch instead of the plain path
	noFit       bool          // skip autofit and draw at --step from the canvas center
	strict      bool          // fail on a pop with an empty stack
	display     string        // auto, terminal or headless
	maxFrames   int           // stop after this many frames (0 = until grown or quit)
	maxLength   int           // longest sequence any generation may reach
}

// growCommand creates the grow command, which expands a preset and animates it.
func (c *CLI) growCommand() *cobra.Command {
	opts := growOpts{
		tick:      anim.DefaultInterval,
		frameRate: defaultFrameRate,
		advance:   1,
		display:   displayAuto,
		maxLength: grammar.DefaultMaxLength,
	}

	cmd := &cobra.Command{
		Use:               "grow [preset]",
		Short:             "Animate an L-system preset",
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: c.presetNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			name := defaultGrowPreset
			if len(args) == 1 {
				name = args[0]
			}
			return c.runGrow(cmd.Context(), cmd.Flags(), cmd.OutOrStdout(), name, &opts)
		},
	}

	cmd.Flags().IntVar(&opts.width, "width", preset.DefaultWidth, "canvas width in pixels")
	cmd.Flags().IntVar(&opts.height, "height", preset.DefaultHeight, "canvas height in pixels")
	cmd.Flags().IntVarP(&opts.generations, "generations", "n", 0, "rewriting passes (default from preset)")
	cmd.Flags().Float64VarP(&opts.angle, "angle", "a", 0, "turn angle in degrees (default from preset)")
	cmd.Flags().Float64Var(&opts.step, "step", preset.DefaultStep, "segment length with --no-fit")
	cmd.Flags().Float64Var(&opts.margin, "margin", preset.DefaultMargin, "fraction of the canvas kept clear on each side")
	cmd.Flags().StringVar(&opts.ink, "ink", raster.Black.Hex(), "stroke color")
	cmd.Flags().StringVar(&opts.background, "background", raster.White.Hex(), "background color")
	cmd.Flags().DurationVar(&opts.tick, "tick", opts.tick, "time between cursor advances")
	cmd.Flags().IntVar(&opts.frameRate, "frame-rate", opts.frameRate, "frames per second (0 = unpaced)")
	cmd.Flags().IntVar(&opts.advance, "advance", opts.advance, "symbols revealed per advance")
	cmd.Flags().BoolVar(&opts.branches, "fit-branches", false, "fit the viewport over every branch")
	cmd.Flags().BoolVar(&opts.noFit, "no-fit", false, "draw at a fixed step from the canvas center")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "fail when ] pops an empty stack")
	cmd.Flags().StringVar(&opts.display, "display", opts.display, "display: auto, terminal, headless")
	cmd.Flags().IntVar(&opts.maxFrames, "max-frames", 0, "stop after this many frames")
	cmd.Flags().IntVar(&opts.maxLength, "max-length", opts.maxLength, "longest sequence a generation may reach")

	return cmd
}

// applyFlags copies explicitly set flags onto p and revalidates it.
func (o *growOpts) applyFlags(flags *pflag.FlagSet, p *preset.Preset) error {
	if flags.Changed("width") {
		p.Width = o.width
	}
	if flags.Changed("height") {
		p.Height = o.height
	}
	if flags.Changed("generations") {
		p.Generations = o.generations
	}
	if flags.Changed("angle") {
		p.Angle = o.angle
	}
	if flags.Changed("step") {
		p.Step = o.step
	}
	if flags.Changed("margin") {
		p.Margin = o.margin
	}
	if flags.Changed("ink") {
		p.Ink = o.ink
	}
	if flags.Changed("background") {
		p.Background = o.background
	}
	if o.advance < 1 {
		return errors.New(errors.ErrCodeInvalidInput, "--advance must be at least 1 (got %d)", o.advance)
	}
	if o.frameRate < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "--frame-rate cannot be negative (got %d)", o.frameRate)
	}
	return p.Validate()
}

// frameInterval converts the frame rate to a pacing interval.
func (o *growOpts) frameInterval() time.Duration {
	if o.frameRate <= 0 {
		return 0
	}
	return time.Second / time.Duration(o.frameRate)
}

// resolveDisplay maps --display to a surface kind.
func resolveDisplay(name string, stdout *os.File) (display.Kind, error) {
	switch name {
	case displayAuto, "":
		if isatty.IsTerminal(stdout.Fd()) || isatty.IsCygwinTerminal(stdout.Fd()) {
			return display.KindTerminal, nil
		}
		return display.KindHeadless, nil
	case string(display.KindTerminal), string(display.KindHeadless):
		return display.Kind(name), nil
	default:
		return "", errors.New(errors.ErrCodeInvalidInput, "invalid display: %s (must be 'auto', 'terminal', or 'headless')", name)
	}
}

func (c *CLI) runGrow(ctx context.Context, flags *pflag.FlagSet, w io.Writer, name string, opts *growOpts) error {
	logger := loggerFromContext(ctx)
	out := newPrinter(w)

	kind, err := resolveDisplay(opts.display, os.Stdout)
	if err != nil {
		return err
	}
	if opts.display == displayAuto && kind == display.KindHeadless {
		out.warning("stdout is not a terminal, growing without display")
	}

	cat, err := c.catalog()
	if err != nil {
		return err
	}
	p, err := cat.Get(name)
	if err != nil {
		return err
	}
	if err := opts.applyFlags(flags, &p); err != nil {
		return err
	}

	seq, _, err := expandPreset(ctx, logger, &p, opts.maxLength)
	if err != nil {
		return err
	}

	table, err := p.Table()
	if err != nil {
		return err
	}
	ink, background, err := p.Colors()
	if err != nil {
		return err
	}

	fit := fitFor(seq, table, &p, opts)
	logger.Debug("viewport", "scale", fit.Scale, "origin", fmt.Sprintf("(%.1f, %.1f)", fit.Origin.X, fit.Origin.Y))

	// Log lines would tear the terminal view, so the animation stays quiet there.
	var animLogger *log.Logger
	if kind == display.KindHeadless {
		animLogger = logger
	} else {
		c.registerHooks(true)
	}
	ctrl, err := anim.New(anim.Config{
		Scene: anim.Scene{
			Commands:   seq,
			Table:      table,
			Fit:        fit,
			Ink:        ink,
			Background: background,
			Turtle:     turtle.Options{StrictPop: opts.strict},
		},
		Canvas:   raster.NewCanvas(p.Width, p.Height),
		Interval: opts.tick,
		Advance:  opts.advance,
		Logger:   animLogger,
	})
	if err != nil {
		return err
	}

	dopts := display.Options{Ink: ink, Background: background, MaxFrames: opts.maxFrames, Logger: animLogger}
	if opts.maxFrames == 0 {
		dopts.StopWhen = ctrl.Done
	}
	prog := newProgress(logger)
	title := fmt.Sprintf("%s · %d generations", p.Name, p.Generations)
	if err := ctrl.Play(ctx, display.Factory(kind, dopts), title, opts.frameInterval()); err != nil {
		return err
	}

	if ctrl.Done() {
		prog.done("grown", "preset", p.Name, "frames", ctrl.Frames())
		out.success("Grew %s", StyleHighlight.Render(p.Name))
	} else {
		out.info("Stopped %s at %d of %d symbols", StyleHighlight.Render(p.Name), ctrl.Cursor(), len(seq))
	}
	out.stats(
		fmt.Sprintf("%d symbols", len(seq)),
		fmt.Sprintf("%d frames", ctrl.Frames()),
		fmt.Sprintf("%d inked pixels", ctrl.Canvas().Count(ink)),
	)
	return nil
}

// fitFor maps the drawing onto the canvas, either by autofit or at a fixed
// step from the canvas center.
func fitFor(seq grammar.Sequence, table turtle.ActionTable, p *preset.Preset, opts *growOpts) viewport.Fit {
	if opts.noFit {
		return viewport.Fixed(p.Step, geom.Pt(float64(p.Width)/2, float64(p.Height)/2))
	}
	var fitOpts []viewport.Option
	if opts.branches {
		fitOpts = append(fitOpts, viewport.WithBranches())
	}
	return viewport.Compute(seq, table, p.Width, p.Height, p.Margin, fitOpts...)
}

// expandPreset expands p's grammar and returns it with the length of every
// generation, showing a spinner on a terminal when the result is projected
// to be large.
func expandPreset(ctx context.Context, logger *log.Logger, p *preset.Preset, maxLength int) (grammar.Sequence, []int, error) {
	rules, err := p.Productions()
	if err != nil {
		return nil, nil, err
	}
	engine := grammar.Engine{MaxLength: maxLength}

	lengths, err := engine.Project(p.Sequence(), rules, p.Generations)
	if err != nil {
		return nil, nil, err
	}
	projected := lengths[len(lengths)-1]
	hooks := observability.Expand()
	hooks.OnExpandStart(ctx, p.Name, p.Generations, projected)

	var spinner *Spinner
	if projected >= spinnerThreshold && isatty.IsTerminal(os.Stderr.Fd()) {
		spinner = newSpinnerWithContext(ctx, fmt.Sprintf("Expanding %s to %d symbols...", p.Name, projected))
		spinner.Start()
	}

	prog := newProgress(logger)
	seq, err := engine.Expand(p.Sequence(), rules, p.Generations)
	hooks.OnExpandComplete(ctx, p.Name, len(seq), prog.elapsed(), err)
	if spinner != nil {
		if err != nil {
			spinner.StopWithError(errors.UserMessage(err))
		} else {
			spinner.StopWithSuccess(fmt.Sprintf("Expanded %s to %d symbols", p.Name, len(seq)))
		}
	}
	if err != nil {
		return nil, nil, err
	}
	prog.done("expanded", "preset", p.Name, "symbols", len(seq))
	return seq, lengths, nil
}

package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/sprout/pkg/display"
	"github.com/matzehuels/sprout/pkg/errors"
	"github.com/matzehuels/sprout/pkg/grammar"
	"github.com/matzehuels/sprout/pkg/preset"
)

// execute runs the root command with args and returns what it wrote to its
// output writer.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	c := New(io.Discard, log.InfoLevel)
	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := New(io.Discard, log.InfoLevel).RootCommand()
	for _, name := range []string{"grow", "expand", "presets", "completion"} {
		if cmd, _, err := root.Find([]string{name}); err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestExpandPrint(t *testing.T) {
	out, err := execute(t, "expand", "koch", "-n", "1", "--print")
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	if out != "F+F-F-F+F\n" {
		t.Errorf("output = %q, want %q", out, "F+F-F-F+F\n")
	}
}

func TestExpandZeroGenerationsPrintsAxiom(t *testing.T) {
	out, err := execute(t, "expand", "plant", "-n", "0", "--print")
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	if out != "+++X\n" {
		t.Errorf("output = %q, want axiom", out)
	}
}

func TestExpandTooLarge(t *testing.T) {
	_, err := execute(t, "expand", "plant", "-n", "40", "--print")
	if !grammar.IsTooLarge(err) {
		t.Errorf("error = %v, want SEQUENCE_TOO_LARGE", err)
	}
}

func TestExpandUnknownPreset(t *testing.T) {
	_, err := execute(t, "expand", "fern")
	if !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("error = %v, want NOT_FOUND", err)
	}
}

func TestConfigFileOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mine.toml")
	src := "[tree]\naxiom = \"F\"\ngenerations = 1\n[tree.rules]\nF = \"F[+F]F\"\n"
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	out, err := execute(t, "--config", path, "expand", "tree", "--print")
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	if out != "F[+F]F\n" {
		t.Errorf("output = %q", out)
	}
}

func TestUserConfigDirOverlay(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, appName), 0o755); err != nil {
		t.Fatal(err)
	}
	src := "[koch]\naxiom = \"FF\"\ngenerations = 0\n"
	if err := os.WriteFile(filepath.Join(dir, appName, presetsFile), []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("XDG_CONFIG_HOME", dir)

	c := New(io.Discard, log.InfoLevel)
	cat, err := c.catalog()
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	p, _ := cat.Get("koch")
	if p.Axiom != "FF" {
		t.Errorf("koch axiom = %q, want user override", p.Axiom)
	}
}

func TestPresetsCommand(t *testing.T) {
	out, err := execute(t, "presets")
	if err != nil {
		t.Fatalf("presets: %v", err)
	}
	for _, name := range []string{"plant", "koch", "dragon", "sierpinski", "bush", "+++X"} {
		if !strings.Contains(out, name) {
			t.Errorf("presets output missing %q", name)
		}
	}
}

func TestGrowHeadless(t *testing.T) {
	out, err := execute(t, "grow", "koch", "-n", "2",
		"--display", "headless", "--frame-rate", "0", "--tick=-1ns", "--width", "120", "--height", "90")
	if err != nil {
		t.Fatalf("grow: %v", err)
	}
	// koch at 2 generations has 49 symbols.
	for _, want := range []string{"Grew", "49 symbols", "inked pixels"} {
		if !strings.Contains(out, want) {
			t.Errorf("grow output missing %q:\n%s", want, out)
		}
	}
}

func TestExpandStats(t *testing.T) {
	out, err := execute(t, "expand", "koch", "-n", "1")
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	for _, want := range []string{"koch", "axiom", "F→F+F-F-F+F", "g0 1", "g1 9", "Symbol", "55.6%", "sprout grow koch -n 1"} {
		if !strings.Contains(out, want) {
			t.Errorf("expand output missing %q:\n%s", want, out)
		}
	}
}

func TestExpandPresetLengths(t *testing.T) {
	p := preset.Preset{Name: "koch", Axiom: "F", Rules: map[string]string{"F": "F+F-F-F+F"}, Generations: 2}
	seq, lengths, err := expandPreset(context.Background(), log.New(io.Discard), &p, grammar.DefaultMaxLength)
	if err != nil {
		t.Fatalf("expandPreset: %v", err)
	}
	if want := []int{1, 9, 49}; !slices.Equal(lengths, want) {
		t.Errorf("lengths = %v, want %v", lengths, want)
	}
	if len(seq) != lengths[len(lengths)-1] {
		t.Errorf("len(seq) = %d, want last projected length %d", len(seq), lengths[len(lengths)-1])
	}
}

func TestExpandPresetBadRule(t *testing.T) {
	p := preset.Preset{Name: "broken", Axiom: "F", Rules: map[string]string{"FF": "F"}, Generations: 1}
	_, _, err := expandPreset(context.Background(), log.New(io.Discard), &p, grammar.DefaultMaxLength)
	if err == nil {
		t.Fatal("expandPreset accepted a two-symbol rule key")
	}
	if !errors.Is(err, errors.ErrCodeInvalidPreset) {
		t.Errorf("error = %v, want INVALID_PRESET", err)
	}
}

func TestCompletion(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		out, err := execute(t, "completion", shell)
		if err != nil {
			t.Errorf("completion %s: %v", shell, err)
			continue
		}
		if !strings.Contains(out, appName) {
			t.Errorf("completion %s script does not mention %s", shell, appName)
		}
	}
	if _, err := execute(t, "completion", "tcsh"); err == nil {
		t.Error("completion tcsh: expected error")
	}
}

func TestPresetNames(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	c := New(io.Discard, log.InfoLevel)

	names, dir := c.presetNames(nil, nil, "")
	if dir != cobra.ShellCompDirectiveNoFileComp {
		t.Errorf("directive = %v, want NoFileComp", dir)
	}
	if !slices.Contains(names, "plant") {
		t.Errorf("names = %v, want plant among them", names)
	}
	if names, _ := c.presetNames(nil, []string{"plant"}, ""); names != nil {
		t.Errorf("second argument completed to %v", names)
	}
}

func TestGrowMaxFrames(t *testing.T) {
	_, err := execute(t, "grow", "plant", "-n", "3",
		"--display", "headless", "--frame-rate", "0", "--max-frames", "5", "--strict")
	if err != nil {
		t.Fatalf("grow: %v", err)
	}
}

func TestGrowRejectsBadFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"display", []string{"--display", "window"}},
		{"margin", []string{"--margin", "0.7"}},
		{"ink", []string{"--ink", "green"}},
		{"advance", []string{"--advance", "0"}},
		{"width", []string{"--width", "0"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"grow", "koch", "--display", "headless"}, tt.args...)
			if _, err := execute(t, args...); err == nil {
				t.Errorf("grow %v: expected error", tt.args)
			}
		})
	}
}

func TestGrowCanceled(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	root := New(io.Discard, log.InfoLevel).RootCommand()
	root.SetArgs([]string{"grow", "koch", "-n", "1", "--display", "headless"})
	err := root.ExecuteContext(ctx)
	if err != context.Canceled {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestResolveDisplay(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "out")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	tests := []struct {
		name    string
		want    display.Kind
		wantErr bool
	}{
		{displayAuto, display.KindHeadless, false},
		{"terminal", display.KindTerminal, false},
		{"headless", display.KindHeadless, false},
		{"window", "", true},
	}
	for _, tt := range tests {
		got, err := resolveDisplay(tt.name, f)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("resolveDisplay(%q) = %q, %v; want %q", tt.name, got, err, tt.want)
		}
	}
}

func TestFrameInterval(t *testing.T) {
	if got := (&growOpts{frameRate: 0}).frameInterval(); got != 0 {
		t.Errorf("frameInterval(0) = %v, want 0", got)
	}
	if got := (&growOpts{frameRate: 50}).frameInterval().Milliseconds(); got != 20 {
		t.Errorf("frameInterval(50) = %dms, want 20ms", got)
	}
}

func TestHistogramTableOrder(t *testing.T) {
	out := histogramTable(map[grammar.Symbol]int{'F': 6, 'X': 2, '+': 2}, 10)
	f, plus, x := strings.Index(out, "F"), strings.Index(out, "+ "), strings.Index(out, "X")
	if !(f < plus && plus < x) {
		t.Errorf("rows not sorted by count then symbol:\n%s", out)
	}
	if !strings.Contains(out, "60.0%") {
		t.Errorf("missing share column:\n%s", out)
	}
}

func TestPresetTable(t *testing.T) {
	out := presetTable([]preset.Preset{{Name: "algae", Axiom: "A", Rules: map[string]string{"A": "AB", "B": "A"}, Angle: 30}})
	for _, want := range []string{"algae", "A→AB, B→A", "30°"} {
		if !strings.Contains(out, want) {
			t.Errorf("presetTable missing %q:\n%s", want, out)
		}
	}
}

func TestLengthsLine(t *testing.T) {
	out := lengthsLine([]int{1, 2, 3})
	for _, want := range []string{"g0 1", "g1 2", "g2 3"} {
		if !strings.Contains(out, want) {
			t.Errorf("lengthsLine missing %q: %q", want, out)
		}
	}
}

func TestConfigDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	dir, err := configDir()
	if err != nil {
		t.Fatal(err)
	}
	if dir != filepath.Join("/tmp/xdg", appName) {
		t.Errorf("configDir() = %q", dir)
	}
}

package preset

import (
	"bytes"
	_ "embed"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/sprout/pkg/errors"
)

//go:embed presets.toml
var builtinTOML []byte

// DefaultName is the preset used when none is requested.
const DefaultName = "plant"

// Catalog is a set of presets keyed by name.
type Catalog struct {
	presets map[string]*Preset
}

// Builtin returns a catalog holding the embedded presets.
func Builtin() (*Catalog, error) {
	c := &Catalog{presets: make(map[string]*Preset)}
	if err := c.Load(bytes.NewReader(builtinTOML)); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "built-in presets")
	}
	return c, nil
}

// Load decodes presets from r and adds them to the catalog, replacing any
// preset with the same name. Nothing is added if any preset is invalid.
func (c *Catalog) Load(r io.Reader) error {
	var file map[string]*Preset
	md, err := toml.NewDecoder(r).Decode(&file)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPreset, err, "decode presets")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return errors.New(errors.ErrCodeInvalidPreset, "unknown keys: %s", strings.Join(keys, ", "))
	}

	for name, p := range file {
		p.Name = name
		p.marginSet = md.IsDefined(name, "margin")
		if err := p.ValidateAndSetDefaults(); err != nil {
			return err
		}
	}
	for name, p := range file {
		c.presets[name] = p
	}
	return nil
}

// LoadFile loads presets from a TOML file.
func (c *Catalog) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.New(errors.ErrCodeFileNotFound, "preset file %s not found", path)
		}
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "open preset file")
	}
	defer f.Close()
	if err := c.Load(f); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPreset, err, "%s", path)
	}
	return nil
}

// Get returns a copy of the named preset.
func (c *Catalog) Get(name string) (Preset, error) {
	p, ok := c.presets[name]
	if !ok {
		return Preset{}, errors.New(errors.ErrCodeNotFound, "unknown preset %q (available: %s)",
			name, strings.Join(c.Names(), ", "))
	}
	return *p, nil
}

// Names returns the preset names in sorted order.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.presets))
	for name := range c.presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns copies of every preset, sorted by name.
func (c *Catalog) All() []Preset {
	out := make([]Preset, 0, len(c.presets))
	for _, name := range c.Names() {
		out = append(out, *c.presets[name])
	}
	return out
}

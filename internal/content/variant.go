// Package content describes what the page shows: the variant (tab labels,
// theme, monogram) and the markdown sections behind each tab.
package content

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/kyaoi/folio/internal/page"
)

var (
	// ErrUnknownVariant is returned for a variant name with no definition.
	ErrUnknownVariant = errors.New("content: unknown variant")
	// ErrInvalidVariant is returned when a variant fails validation.
	ErrInvalidVariant = errors.New("content: invalid variant")
)

// TabSpec binds a section key to the label shown in the header.
type TabSpec struct {
	Key   string `mapstructure:"key" yaml:"key"`
	Label string `mapstructure:"label" yaml:"label"`
}

// Theme holds the variant colours as hex strings. An empty colour leaves
// the terminal default in place. Markdown names a glamour standard style.
type Theme struct {
	Background string   `mapstructure:"background" yaml:"background"`
	Foreground string   `mapstructure:"foreground" yaml:"foreground"`
	Muted      string   `mapstructure:"muted" yaml:"muted"`
	Accent     string   `mapstructure:"accent" yaml:"accent"`
	Border     string   `mapstructure:"border" yaml:"border"`
	Glow       string   `mapstructure:"glow" yaml:"glow"`
	Gradient   []string `mapstructure:"gradient" yaml:"gradient,omitempty"`
	Markdown   string   `mapstructure:"markdown" yaml:"markdown"`
}

// Variant is one configuration of the page.
type Variant struct {
	Name     string    `mapstructure:"name" yaml:"name"`
	Monogram string    `mapstructure:"monogram" yaml:"monogram"`
	Domain   string    `mapstructure:"domain" yaml:"domain"`
	Tabs     []TabSpec `mapstructure:"tabs" yaml:"tabs"`
	Theme    Theme     `mapstructure:"theme" yaml:"theme"`
}

// PageTabs returns the tab labels in order.
func (v Variant) PageTabs() page.Tabs {
	tabs := make(page.Tabs, 0, len(v.Tabs))
	for _, spec := range v.Tabs {
		tabs = append(tabs, page.Tab(spec.Label))
	}
	return tabs
}

// Label returns the label for a section key.
func (v Variant) Label(key string) (string, bool) {
	for _, spec := range v.Tabs {
		if spec.Key == key {
			return spec.Label, true
		}
	}
	return "", false
}

// Validate checks that keys and labels are present and unique.
func (v Variant) Validate() error {
	if strings.TrimSpace(v.Name) == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidVariant)
	}
	keys := make(map[string]struct{}, len(v.Tabs))
	for i, spec := range v.Tabs {
		if strings.TrimSpace(spec.Key) == "" {
			return fmt.Errorf("%w: %s: tab %d has no key", ErrInvalidVariant, v.Name, i)
		}
		if _, ok := keys[spec.Key]; ok {
			return fmt.Errorf("%w: %s: duplicate key %q", ErrInvalidVariant, v.Name, spec.Key)
		}
		keys[spec.Key] = struct{}{}
	}
	if err := v.PageTabs().Validate(); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidVariant, v.Name, err)
	}
	return nil
}

var builtins = map[string]Variant{
	"noir": {
		Name:     "noir",
		Monogram: "YN",
		Domain:   "yourname.dev",
		Tabs: []TabSpec{
			{Key: "home", Label: "Home"},
			{Key: "about", Label: "About"},
			{Key: "experience", Label: "Experience"},
			{Key: "projects", Label: "Projects"},
			{Key: "skills", Label: "Skills"},
			{Key: "contact", Label: "Contact"},
		},
		Theme: Theme{
			Background: "#171717",
			Foreground: "#f5f5f5",
			Muted:      "#a3a3a3",
			Accent:     "#ffffff",
			Border:     "#737373",
			Glow:       "#fafafa",
			Markdown:   "dark",
		},
	},
	"pastel": {
		Name:     "pastel",
		Monogram: "YN",
		Domain:   "yourname.dev",
		Tabs: []TabSpec{
			{Key: "home", Label: "Hi!"},
			{Key: "about", Label: "About"},
			{Key: "experience", Label: "Experience"},
			{Key: "projects", Label: "Projects"},
			{Key: "contact", Label: "Get in touch!"},
		},
		Theme: Theme{
			Background: "#fce1e4",
			Foreground: "#1a1b26",
			Muted:      "#565f89",
			Accent:     "#000000",
			Border:     "#aec6cf",
			Glow:       "#fcd5ce",
			Gradient:   []string{"#aec6cf", "#fce1e4", "#fcd5ce"},
			Markdown:   "light",
		},
	},
	"mono": {
		Name:     "mono",
		Monogram: "YN",
		Domain:   "yourname.dev",
		Tabs: []TabSpec{
			{Key: "home", Label: "Home"},
			{Key: "about", Label: "About"},
			{Key: "experience", Label: "Experience"},
			{Key: "projects", Label: "Projects"},
			{Key: "skills", Label: "Skills"},
			{Key: "contact", Label: "Contact"},
		},
		Theme: Theme{Markdown: "notty"},
	},
}

// DefaultVariant is the variant used when none is configured.
const DefaultVariant = "noir"

// Builtin returns a copy of a built-in variant.
func Builtin(name string) (Variant, bool) {
	v, ok := builtins[name]
	if !ok {
		return Variant{}, false
	}
	v.Tabs = append([]TabSpec(nil), v.Tabs...)
	v.Theme.Gradient = append([]string(nil), v.Theme.Gradient...)
	return v, true
}

// BuiltinNames lists the built-in variants in alphabetical order.
func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve finds name among custom variants first, then the built-ins.
// Custom variants with no tabs inherit the tabs of the built-in of the same
// name, or of the default variant.
func Resolve(name string, custom map[string]Variant) (Variant, error) {
	if name == "" {
		name = DefaultVariant
	}
	if v, ok := custom[name]; ok {
		if v.Name == "" {
			v.Name = name
		}
		if len(v.Tabs) == 0 {
			base, ok := Builtin(name)
			if !ok {
				base, _ = Builtin(DefaultVariant)
			}
			v.Tabs = base.Tabs
		}
		if err := v.Validate(); err != nil {
			return Variant{}, err
		}
		return v, nil
	}
	if v, ok := Builtin(name); ok {
		return v, nil
	}
	return Variant{}, fmt.Errorf("%w: %q", ErrUnknownVariant, name)
}

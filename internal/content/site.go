package content

import (
	"fmt"
	"sort"
	"strings"

	"github.com/kyaoi/folio/internal/page"
)

// Site is a variant with its sections resolved, one per tab, in tab order.
type Site struct {
	Variant  Variant
	Sections []Section
	// Unused lists section keys that no tab of the variant shows.
	Unused []string
}

// Assemble binds sections to the variant's tabs. A tab with no section gets
// an empty one headed by its label.
func Assemble(v Variant, sections []Section) (*Site, error) {
	if err := v.Validate(); err != nil {
		return nil, err
	}
	byKey := make(map[string]Section, len(sections))
	for _, sec := range sections {
		byKey[sec.Key] = sec
	}

	site := &Site{Variant: v}
	used := make(map[string]struct{}, len(v.Tabs))
	for _, spec := range v.Tabs {
		sec, ok := byKey[spec.Key]
		if !ok {
			sec = Section{Key: spec.Key}
		}
		sec.Label = spec.Label
		if sec.Heading == "" {
			sec.Heading = spec.Label
		}
		site.Sections = append(site.Sections, sec)
		used[spec.Key] = struct{}{}
	}
	for _, sec := range sections {
		if _, ok := used[sec.Key]; !ok {
			site.Unused = append(site.Unused, sec.Key)
		}
	}
	return site, nil
}

// Load reads sections from loader and assembles them for v.
func Load(v Variant, loader Loader) (*Site, error) {
	sections, err := loader.Load()
	if err != nil {
		return nil, err
	}
	return Assemble(v, sections)
}

// Tabs returns the tab list of the site.
func (s *Site) Tabs() page.Tabs {
	return s.Variant.PageTabs()
}

// Section returns the section with the given key.
func (s *Site) Section(key string) (Section, bool) {
	for _, sec := range s.Sections {
		if sec.Key == key {
			return sec, true
		}
	}
	return Section{}, false
}

// SectionFor returns the section behind tab.
func (s *Site) SectionFor(tab page.Tab) (Section, bool) {
	for _, sec := range s.Sections {
		if page.Tab(sec.Label) == tab {
			return sec, true
		}
	}
	return Section{}, false
}

// Headline returns the first section with typed text.
func (s *Site) Headline() (Section, bool) {
	for _, sec := range s.Sections {
		if sec.Typed != "" {
			return sec, true
		}
	}
	return Section{}, false
}

// Filter returns a site that shows only the given keys, in variant order.
func (s *Site) Filter(keys []string) (*Site, error) {
	want := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		want[k] = struct{}{}
	}
	v := s.Variant
	v.Tabs = nil
	var sections []Section
	for i, spec := range s.Variant.Tabs {
		if _, ok := want[spec.Key]; !ok {
			continue
		}
		v.Tabs = append(v.Tabs, spec)
		sections = append(sections, s.Sections[i])
		delete(want, spec.Key)
	}
	if len(want) > 0 {
		missing := make([]string, 0, len(want))
		for k := range want {
			missing = append(missing, k)
		}
		sort.Strings(missing)
		return nil, fmt.Errorf("no section %s in variant %s", strings.Join(missing, ", "), v.Name)
	}
	if len(v.Tabs) == 0 {
		return nil, fmt.Errorf("no sections selected")
	}
	return &Site{Variant: v, Sections: sections}, nil
}

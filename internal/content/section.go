package content

import (
	"bytes"
	"fmt"
	"io"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
)

// Section is the markdown behind one tab.
type Section struct {
	Key     string
	Label   string
	Order   int
	Heading string
	// Typed is revealed one rune at a time in place of Heading.
	Typed string
	Speed time.Duration
	Body  string
	// Source is the file the section was read from, if any.
	Source string
}

type frontMatter struct {
	Key     string `yaml:"key"`
	Order   *int   `yaml:"order"`
	Heading string `yaml:"heading"`
	Typed   string `yaml:"typed"`
	Speed   string `yaml:"speed"`
}

// ParseSection reads a markdown file with optional YAML frontmatter. The
// key and order default to the file name: "02-about.md" is key "about",
// order 2.
func ParseSection(name string, r io.Reader) (Section, error) {
	var fm frontMatter
	body, err := frontmatter.Parse(r, &fm)
	if err != nil {
		return Section{}, fmt.Errorf("parse %s: %w", name, err)
	}

	order, key := splitName(name)
	sec := Section{
		Key:     key,
		Order:   order,
		Heading: strings.TrimSpace(fm.Heading),
		Typed:   strings.TrimSpace(fm.Typed),
		Body:    string(bytes.TrimSpace(body)),
		Source:  name,
	}
	if fm.Key != "" {
		sec.Key = strings.ToLower(strings.TrimSpace(fm.Key))
	}
	if fm.Order != nil {
		sec.Order = *fm.Order
	}
	if fm.Speed != "" {
		speed, err := time.ParseDuration(fm.Speed)
		if err != nil {
			return Section{}, fmt.Errorf("parse %s: speed: %w", name, err)
		}
		if speed <= 0 {
			return Section{}, fmt.Errorf("parse %s: speed must be positive", name)
		}
		sec.Speed = speed
	}
	if sec.Key == "" {
		return Section{}, fmt.Errorf("parse %s: no section key", name)
	}
	return sec, nil
}

func splitName(name string) (int, string) {
	base := path.Base(strings.ReplaceAll(name, "\\", "/"))
	base = strings.TrimSuffix(base, path.Ext(base))
	prefix, rest, ok := strings.Cut(base, "-")
	if ok {
		if n, err := strconv.Atoi(prefix); err == nil {
			return n, strings.ToLower(rest)
		}
	}
	return 0, strings.ToLower(base)
}

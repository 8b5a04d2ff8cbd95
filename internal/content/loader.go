package content

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Loader produces the sections of a page.
type Loader interface {
	Load() ([]Section, error)
}

//go:embed defaults/*.md
var defaultFS embed.FS

// FSLoader reads the markdown files at the top of a directory.
type FSLoader struct {
	root string
	fsys fs.FS
}

// NewFSLoader reads sections from the directory root.
func NewFSLoader(root string) *FSLoader {
	return &FSLoader{root: root, fsys: os.DirFS(root)}
}

// NewDefaultLoader reads the built-in sample sections.
func NewDefaultLoader() *FSLoader {
	sub, err := fs.Sub(defaultFS, "defaults")
	if err != nil {
		panic(err)
	}
	return &FSLoader{root: "", fsys: sub}
}

// Root is the directory the loader reads, or "" for the built-in sections.
func (l *FSLoader) Root() string {
	return l.root
}

// Load parses every markdown file and returns the sections by order, then
// key. Two files with the same key are an error.
func (l *FSLoader) Load() ([]Section, error) {
	entries, err := fs.ReadDir(l.fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("read sections: %w", err)
	}

	var sections []Section
	seen := make(map[string]string)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !isMarkdown(name) || strings.HasPrefix(name, ".") {
			continue
		}
		sec, err := l.parse(name)
		if err != nil {
			return nil, err
		}
		if prev, ok := seen[sec.Key]; ok {
			return nil, fmt.Errorf("section %q defined in both %s and %s", sec.Key, prev, name)
		}
		seen[sec.Key] = name
		sections = append(sections, sec)
	}

	sort.SliceStable(sections, func(i, j int) bool {
		if sections[i].Order != sections[j].Order {
			return sections[i].Order < sections[j].Order
		}
		return sections[i].Key < sections[j].Key
	})
	return sections, nil
}

func (l *FSLoader) parse(name string) (Section, error) {
	f, err := l.fsys.Open(name)
	if err != nil {
		return Section{}, err
	}
	defer f.Close()
	sec, err := ParseSection(name, f)
	if err != nil {
		return Section{}, err
	}
	if l.root != "" {
		sec.Source = filepath.Join(l.root, name)
	}
	return sec, nil
}

func isMarkdown(name string) bool {
	lower := strings.ToLower(name)
	return strings.HasSuffix(lower, ".md") || strings.HasSuffix(lower, ".mdx")
}

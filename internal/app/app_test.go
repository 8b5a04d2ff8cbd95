package app

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/kyaoi/folio/internal/config"
)

func TestNormalizeKeys(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{name: "empty", args: nil, want: nil},
		{name: "plain", args: []string{"home", "about"}, want: []string{"home", "about"}},
		{name: "commas", args: []string{"Home, About", "contact"}, want: []string{"home", "about", "contact"}},
		{name: "repeats and blanks", args: []string{"home", "", " HOME ", ",about,"}, want: []string{"home", "about"}},
	}
	for _, tc := range tests {
		if got := NormalizeKeys(tc.args); !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("%s: NormalizeKeys(%q) = %q, want %q", tc.name, tc.args, got, tc.want)
		}
	}
}

func TestLoadInitialStateDefaults(t *testing.T) {
	cfg := *config.NewConfig()
	state, err := LoadInitialState(cfg, nil)
	if err != nil {
		t.Fatalf("LoadInitialState: %v", err)
	}
	if state.Site.Variant.Name != "noir" {
		t.Fatalf("variant = %q", state.Site.Variant.Name)
	}
	if len(state.Site.Sections) != 6 {
		t.Fatalf("sections = %d, want 6", len(state.Site.Sections))
	}
	if state.PreloadPeriod != 500*time.Millisecond || state.RevealDelay != 800*time.Millisecond {
		t.Fatalf("preloader timings = %v/%v", state.PreloadPeriod, state.RevealDelay)
	}
	if state.WatchDir != "" {
		t.Fatalf("watch dir set without content.watch")
	}
	if _, ok := state.Site.Headline(); !ok {
		t.Fatalf("built-in sections have no headline")
	}
}

func TestLoadInitialStateFiltered(t *testing.T) {
	cfg := *config.NewConfig()
	state, err := LoadInitialState(cfg, []string{"Contact,home"})
	if err != nil {
		t.Fatalf("LoadInitialState: %v", err)
	}
	var keys []string
	for _, sec := range state.Site.Sections {
		keys = append(keys, sec.Key)
	}
	if !reflect.DeepEqual(keys, []string{"home", "contact"}) {
		t.Fatalf("keys = %q, want variant order", keys)
	}
	if !reflect.DeepEqual(state.Keys, []string{"contact", "home"}) {
		t.Fatalf("state keys = %q", state.Keys)
	}

	if _, err := LoadInitialState(cfg, []string{"blog"}); err == nil || !strings.Contains(err.Error(), "blog") {
		t.Fatalf("unknown key error = %v", err)
	}
}

func TestLoadInitialStateFromDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "02-about.md"), []byte("---\nheading: Who\n---\nMe."), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := *config.NewConfig()
	cfg.Variant = "pastel"
	cfg.Content.Dir = dir
	cfg.Content.Watch = true

	state, err := LoadInitialState(cfg, nil)
	if err != nil {
		t.Fatalf("LoadInitialState: %v", err)
	}
	if state.WatchDir != dir {
		t.Fatalf("watch dir = %q", state.WatchDir)
	}
	sec, ok := state.Site.Section("about")
	if !ok || sec.Heading != "Who" || sec.Body != "Me." {
		t.Fatalf("about = %+v", sec)
	}
	home, _ := state.Site.Section("home")
	if home.Heading != "Hi!" || home.Body != "" {
		t.Fatalf("missing section not defaulted: %+v", home)
	}
}

func TestLoadSiteUnknownVariant(t *testing.T) {
	cfg := *config.NewConfig()
	cfg.Variant = "nope"
	if _, _, err := LoadSite(cfg); err == nil {
		t.Fatalf("expected error")
	}
}

func TestOpenLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "folio.log")
	logger, closeLog, err := OpenLogFile(config.LogConfig{Level: "error", File: path})
	if err != nil {
		t.Fatalf("OpenLogFile: %v", err)
	}
	logger.Info("hidden")
	logger.Error("shown", "k", "v")
	if err := closeLog(); err != nil {
		t.Fatalf("close: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if bytes.Contains(data, []byte("hidden")) || !bytes.Contains(data, []byte("shown")) {
		t.Fatalf("log = %q", data)
	}
}

package app

import (
	"fmt"

	"github.com/kyaoi/folio/internal/config"
	"github.com/kyaoi/folio/internal/content"
	"github.com/kyaoi/folio/internal/ui"
)

// LoadSite resolves the configured variant and reads its sections, from
// content.dir when set and from the built-in samples otherwise.
func LoadSite(cfg config.Config) (*content.Site, content.Loader, error) {
	v, err := cfg.ResolveVariant()
	if err != nil {
		return nil, nil, err
	}
	var loader content.Loader = content.NewDefaultLoader()
	if cfg.Content.Dir != "" {
		loader = content.NewFSLoader(cfg.Content.Dir)
	}
	site, err := content.Load(v, loader)
	if err != nil {
		return nil, nil, fmt.Errorf("load sections: %w", err)
	}
	return site, loader, nil
}

// LoadInitialState prepares the UI state for cfg, narrowed to keys when
// any are given.
func LoadInitialState(cfg config.Config, keys []string) (ui.State, error) {
	site, loader, err := LoadSite(cfg)
	if err != nil {
		return ui.State{}, err
	}
	keys = NormalizeKeys(keys)
	if len(keys) > 0 {
		if site, err = site.Filter(keys); err != nil {
			return ui.State{}, err
		}
	}

	state := ui.State{
		Site:          site,
		Loader:        loader,
		Keys:          keys,
		PreloadPeriod: cfg.Preloader.Period,
		RevealDelay:   cfg.Preloader.RevealDelay,
		TypingSpeed:   cfg.Typing.Speed,
		SkipPreloader: cfg.Preloader.Skip,
	}
	if cfg.Content.Watch {
		state.WatchDir = cfg.Content.Dir
	}
	return state, nil
}

package main

import (
	"context"

	"github.com/spf13/cobra"
	"pkt.systems/pslog"

	"github.com/kyaoi/folio/internal/app"
	"github.com/kyaoi/folio/internal/config"
	"github.com/kyaoi/folio/internal/content"
	"github.com/kyaoi/folio/internal/web"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the page over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Serve.Addr = addr
			}
			ctx := cmd.Context()
			site, loader, err := app.LoadSite(*cfg)
			if err != nil {
				return err
			}
			srv := web.NewServer(site, serveOptions(cfg))
			if cfg.Content.Watch {
				w, err := content.Watch(cfg.Content.Dir)
				if err != nil {
					return err
				}
				defer func() { _ = w.Close() }()
				go reloadSite(ctx, w, loader, srv)
			}
			return web.ListenAndServe(ctx, cfg.Serve.Addr, srv.Handler())
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides serve.addr)")
	return cmd
}

// siteSetter receives reloaded sites.
type siteSetter interface {
	Site() *content.Site
	SetSite(*content.Site)
}

// reloadSite swaps in freshly loaded sections whenever the watcher reports
// a change. A failed reload keeps the previous site.
func reloadSite(ctx context.Context, w *content.Watcher, loader content.Loader, dst siteSetter) {
	logger := pslog.Ctx(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case err, ok := <-w.Errors():
			if !ok {
				return
			}
			logger.Warn("content watch failed", "err", err)
		case path, ok := <-w.Changes():
			if !ok {
				return
			}
			site, err := content.Load(dst.Site().Variant, loader)
			if err != nil {
				logger.Warn("content reload failed", "path", path, "err", err)
				continue
			}
			dst.SetSite(site)
			logger.Info("content reloaded", "path", path, "sections", len(site.Sections))
		}
	}
}

func serveOptions(cfg *config.Config) web.Options {
	return web.Options{
		PreloadPeriod: cfg.Preloader.Period,
		RevealDelay:   cfg.Preloader.RevealDelay,
		TypingSpeed:   cfg.Typing.Speed,
		SkipPreloader: cfg.Preloader.Skip,
	}
}

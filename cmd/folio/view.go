package main

import (
	"github.com/spf13/cobra"

	"github.com/kyaoi/folio/internal/app"
)

func newViewCmd(opts *rootOptions) *cobra.Command {
	var skip bool
	cmd := &cobra.Command{
		Use:   "view [section...]",
		Short: "Show the page in this terminal",
		Long:  "Show the page in this terminal. Naming sections shows only those, in tab order.",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			if skip {
				cfg.Preloader.Skip = true
			}
			return app.Run(cmd.Context(), *cfg, args)
		},
	}
	cmd.Flags().BoolVar(&skip, "skip-preloader", false, "show the page without the loading animation")
	return cmd
}

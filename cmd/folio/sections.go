package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kyaoi/folio/internal/app"
)

func newSectionsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "sections",
		Short: "List the sections of the configured variant",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			site, _, err := app.LoadSite(*cfg)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "KEY\tLABEL\tHEADING\tSOURCE")
			for _, sec := range site.Sections {
				source := sec.Source
				if source == "" {
					source = "-"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", sec.Key, sec.Label, sec.Heading, source)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			for _, key := range site.Unused {
				fmt.Fprintf(cmd.ErrOrStderr(), "section %q is not shown by variant %s\n", key, site.Variant.Name)
			}
			return nil
		},
	}
}

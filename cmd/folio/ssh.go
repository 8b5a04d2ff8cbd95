package main

import (
	"github.com/spf13/cobra"

	"github.com/kyaoi/folio/internal/app"
	"github.com/kyaoi/folio/internal/sshserver"
	"github.com/kyaoi/folio/internal/ui"
)

func newSSHCmd(opts *rootOptions) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "ssh",
		Short: "Serve the terminal page over SSH",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.SSH.Addr = addr
			}
			state, err := app.LoadInitialState(*cfg, nil)
			if err != nil {
				return err
			}
			srv := &sshserver.Server{
				Addr:        cfg.SSH.Addr,
				HostKeyPath: cfg.SSH.HostKey,
				State:       func() ui.State { return state },
			}
			return srv.ListenAndServe(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides ssh.addr)")
	return cmd
}

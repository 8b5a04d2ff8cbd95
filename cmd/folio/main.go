package main

import (
	"context"
	"log"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"
	"pkt.systems/psi"
	"pkt.systems/pslog"

	"github.com/kyaoi/folio/internal/config"
)

func main() {
	psi.Run(submain)
}

func submain(ctx context.Context) int {
	logger := pslog.LoggerFromEnv(
		pslog.WithEnvWriter(os.Stderr),
		pslog.WithEnvOptions(pslog.Options{Mode: pslog.ModeConsole}),
	)
	ctx = pslog.ContextWithLogger(ctx, logger)
	log.SetOutput(pslog.LogLogger(logger).Writer())
	log.SetFlags(0)

	root := newRootCmd()
	root.SetArgs(os.Args[1:])
	if err := root.ExecuteContext(ctx); err != nil {
		pslog.Ctx(ctx).With("err", err).Error("folio command failed")
		return 1
	}
	return 0
}

// rootOptions are the flags shared by every command.
type rootOptions struct {
	configPath string
}

func (o *rootOptions) load() (*config.Config, error) {
	return config.Load(o.configPath)
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	view := newViewCmd(opts)
	root := &cobra.Command{
		Use:           "folio [section...]",
		Short:         "A portfolio page for the terminal, the browser and SSH",
		Args:          view.Args,
		RunE:          view.RunE,
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "config file (default "+config.DefaultConfigPath+" if present)")

	root.AddCommand(view)
	root.AddCommand(newServeCmd(opts))
	root.AddCommand(newSSHCmd(opts))
	root.AddCommand(newSectionsCmd(opts))
	root.AddCommand(newConfigCmd(opts))
	root.AddCommand(newVersionCmd())
	return root
}

package main

import (
	"fmt"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"
)

const defaultModule = "github.com/kyaoi/folio"

// buildVersion is set via -ldflags "-X main.buildVersion=...".
var buildVersion = ""

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			module, version := buildInfo()
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", module, version)
			return err
		},
	}
}

func buildInfo() (module, version string) {
	module, version = defaultModule, "v0.0.0-unknown"
	info, ok := debug.ReadBuildInfo()
	if ok {
		if p := strings.TrimSpace(info.Main.Path); p != "" {
			module = p
		}
		if v := strings.TrimSpace(info.Main.Version); v != "" && v != "(devel)" {
			version = v
		}
	}
	if v := strings.TrimSpace(buildVersion); v != "" {
		version = v
	}
	return module, version
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/getmockd/apputil/pkg/cli/internal/output"
	"github.com/getmockd/apputil/pkg/cliconfig"
)

type configEntry struct {
	Key    string `json:"key"`
	Value  string `json:"value"`
	Source string `json:"source"`
}

func (a *app) newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show effective configuration",
		Long: `Show every configuration value and the layer it came from: default, global
(~/.config/apputil/config.yaml), local (.apputilrc.yaml), file (--config),
env (APPUTIL_*) or flag.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries := make([]configEntry, 0, len(cliconfig.Keys))
			for _, key := range cliconfig.Keys {
				source := a.cfg.Sources[key]
				if source == "" {
					source = cliconfig.SourceDefault
				}
				entries = append(entries, configEntry{Key: key, Value: a.cfg.Value(key), Source: source})
			}

			if a.jsonOutput() {
				return output.JSON(a.stdout, entries)
			}

			tw := output.Table(a.stdout)
			fmt.Fprintln(tw, "KEY\tVALUE\tSOURCE")
			for _, e := range entries {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", e.Key, e.Value, e.Source)
			}
			if a.cfg.ConfigFile != "" {
				fmt.Fprintf(tw, "\nconfig file:\t%s\t\n", a.cfg.ConfigFile)
			}
			return tw.Flush()
		},
	}
}

// BuildInfo describes the running binary.
type BuildInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildDate string `json:"buildDate"`
}

func (a *app) newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := BuildInfo{Version: Version, Commit: Commit, BuildDate: BuildDate}
			if a.jsonOutput() {
				return output.JSON(a.stdout, info)
			}
			fmt.Fprintf(a.stdout, "apputil %s (commit %s, built %s)\n", info.Version, info.Commit, info.BuildDate)
			return nil
		},
	}
}

package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/dendrascience/qiimewb/qiime"
	"github.com/spf13/cobra"
)

// NewQiimeConfigCmd prints the QIIME configuration the tools will pick up.
func NewQiimeConfigCmd() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "qiime-config",
		Short: "Show the .qiime_config QIIME will read",
		Long: `Locate and print the per-user QIIME configuration file.

The file is looked up at $QIIME_CONFIG_FP, then ~/.qiime_config. qiimewb
never writes it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if path == "" {
				p, err := qiime.LocateConfig()
				if err != nil {
					return err
				}
				path = p
			}
			c, err := qiime.ReadConfig(path)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "# %s\n", c.Path)
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, e := range c.Entries {
				fmt.Fprintf(tw, "%s\t%s\n", e.Key, e.Value)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVarP(&path, "file", "f", "", "Config file to read instead of the default location")
	return cmd
}

package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/dendrascience/qiimewb/config"
	"github.com/dendrascience/qiimewb/dataset"
	"github.com/spf13/cobra"
)

func loadCatalog(cfg *config.Config) (*dataset.Catalog, error) {
	return dataset.LoadCatalog(cfg.Catalog)
}

// NewDatasetsCmd lists the datasets fetch knows about.
func NewDatasetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "datasets",
		Short: "List the datasets available to fetch",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			catalog, err := loadCatalog(cfg)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tFORMAT\tDESCRIPTION")
			for _, name := range catalog.Names() {
				ds, _ := catalog.Lookup(name)
				fmt.Fprintf(tw, "%s\t%s\t%s\n", ds.Name, ds.Kind(), ds.Description)
			}
			return tw.Flush()
		},
	}
}

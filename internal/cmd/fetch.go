package cmd

import (
	"context"
	"fmt"

	"github.com/dendrascience/qiimewb/config"
	"github.com/dendrascience/qiimewb/dataset"
	"github.com/dendrascience/qiimewb/ui"
	"github.com/spf13/cobra"
)

// NewFetchCmd creates the fetch subcommand, which downloads and unpacks
// catalog datasets into a session directory.
func NewFetchCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "fetch DATASET...",
		Short: "Download and unpack tutorial datasets into a session",
		Long: `Download the named datasets into the session directory and unpack them.

Archives already present with a matching checksum are not downloaded again.
Run "qiimewb datasets" to see the available names.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			catalog, err := loadCatalog(cfg)
			if err != nil {
				return err
			}
			// resolve every name before touching the filesystem
			var sets []dataset.Dataset
			for _, name := range args {
				ds, err := catalog.Lookup(name)
				if err != nil {
					return err
				}
				sets = append(sets, ds)
			}
			s, err := enterSession(cfg, dir)
			if err != nil {
				return err
			}
			for _, ds := range sets {
				if err := fetchOne(cmd.Context(), cfg, ds, s.Path); err != nil {
					return err
				}
			}
			return nil
		},
	}
	addWorkdirFlag(cmd, &dir)
	return cmd
}

func fetchOne(ctx context.Context, cfg *config.Config, ds dataset.Dataset, dir string) error {
	ui.Info("fetching %s from %s", ds.Name, ds.URL)
	res, err := dataset.Fetch(ctx, newHTTPClient(cfg), ds, dir)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", ds.Name, err)
	}
	if res.Downloaded {
		ui.Success("%s: downloaded %d bytes, unpacked %d files", ds.Name, res.Bytes, len(res.Files))
	} else {
		ui.Success("%s: already present, unpacked %d files", ds.Name, len(res.Files))
	}
	return nil
}

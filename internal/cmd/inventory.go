package cmd

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

type inventoryEntry struct {
	files int
	bytes int64
}

type inventory struct {
	total inventoryEntry
	byTop map[string]*inventoryEntry
}

// takeInventory counts regular files and their sizes below root, grouped by
// the first path component.
func takeInventory(root string, progress func(n int)) (*inventory, error) {
	inv := &inventory{byTop: make(map[string]*inventoryEntry)}
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		top, _, _ := strings.Cut(filepath.ToSlash(rel), "/")
		e := inv.byTop[top]
		if e == nil {
			e = &inventoryEntry{}
			inv.byTop[top] = e
		}
		e.files++
		e.bytes += info.Size()
		inv.total.files++
		inv.total.bytes += info.Size()
		if progress != nil && inv.total.files%10000 == 0 {
			progress(inv.total.files)
		}
		return nil
	})
	return inv, err
}

// NewInventoryCmd creates the inventory subcommand, which reports what a
// session directory holds.
func NewInventoryCmd() *cobra.Command {
	var showProgress bool

	cmd := &cobra.Command{
		Use:   "inventory [SESSION_DIR]",
		Short: "Count files and bytes in a session directory",
		Long: `Count the files below a session directory (default: the current directory),
grouped by top-level entry, e.g. the unpacked datasets, otus/ and cdout/.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) > 0 {
				root = args[0]
			}
			var progress func(int)
			if showProgress {
				progress = func(n int) {
					fmt.Fprintf(cmd.ErrOrStderr(), "Progress: %d files counted\n", n)
				}
			}
			inv, err := takeInventory(root, progress)
			if err != nil {
				return fmt.Errorf("counting files in %s: %w", root, err)
			}

			names := make([]string, 0, len(inv.byTop))
			for name := range inv.byTop {
				names = append(names, name)
			}
			sort.Strings(names)

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', tabwriter.AlignRight)
			fmt.Fprintln(tw, "FILES\tBYTES\t\t")
			for _, name := range names {
				e := inv.byTop[name]
				fmt.Fprintf(tw, "%d\t%d\t\t%s\n", e.files, e.bytes, name)
			}
			fmt.Fprintf(tw, "%d\t%d\t\t%s\n", inv.total.files, inv.total.bytes, "total")
			return tw.Flush()
		},
	}

	cmd.Flags().BoolVar(&showProgress, "progress", false, "Show progress every 10,000 files")

	return cmd
}

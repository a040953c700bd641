package cmd

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/dendrascience/qiimewb/config"
	"github.com/dendrascience/qiimewb/qiime"
	"github.com/dendrascience/qiimewb/ui"
	"github.com/dendrascience/qiimewb/workdir"
	"github.com/spf13/cobra"
)

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	return config.Load(path)
}

func addWorkdirFlag(cmd *cobra.Command, dir *string) {
	cmd.Flags().StringVarP(dir, "workdir", "w", "", "Existing session directory to work in (default: allocate a new one)")
}

// enterSession re-enters dir when given, otherwise allocates a new session.
// Either way the process working directory is the session afterwards.
func enterSession(cfg *config.Config, dir string) (*workdir.Session, error) {
	if dir != "" {
		s, err := workdir.Open(dir)
		if err != nil {
			return nil, err
		}
		ui.Info("using session %s", ui.SessionName(s.Suffix, s.Tag()))
		return s, nil
	}
	s, err := workdir.Allocate(cfg.BaseDir, cfg.SuffixLength, cfg.AllocateOptions()...)
	if err != nil {
		return nil, fmt.Errorf("allocate session under %s: %w", cfg.BaseDir, err)
	}
	ui.Success("session %s created at %s", ui.SessionName(s.Suffix, s.Tag()), s.Path)
	return s, nil
}

func newRunner(cmd *cobra.Command, cfg *config.Config, dryRun bool) *qiime.Runner {
	return &qiime.Runner{
		BinDir: cfg.QiimeBinDir,
		Stdout: cmd.OutOrStdout(),
		Stderr: cmd.ErrOrStderr(),
		DryRun: dryRun,
	}
}

func newHTTPClient(cfg *config.Config) *http.Client {
	return &http.Client{Timeout: cfg.DownloadTimeout}
}

// NewSessionCmd creates the session command and its subcommands.
func NewSessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Allocate and inspect session working directories",
	}
	cmd.AddCommand(newSessionNewCmd(), newSessionShowCmd(), newSessionListCmd())
	return cmd
}

func newSessionNewCmd() *cobra.Command {
	var (
		base      string
		length    int
		exclusive bool
	)
	cmd := &cobra.Command{
		Use:   "new",
		Short: "Allocate a new session directory and print its path",
		Long: `Allocate a new session directory named by random letters under the base
directory, e.g. temp/aZbQmNpLsTxY, and print its absolute path.

The path is printed alone on stdout so it can be captured:

  cd "$(qiimewb session new)"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("base") {
				cfg.BaseDir = base
			}
			if cmd.Flags().Changed("length") {
				cfg.SuffixLength = length
			}
			if cmd.Flags().Changed("exclusive") {
				cfg.Exclusive = exclusive
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			s, err := enterSession(cfg, "")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), s.Path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&base, "base", "b", workdir.DefaultBase, "Base directory for sessions")
	cmd.Flags().IntVarP(&length, "length", "n", workdir.DefaultSuffixLength, "Number of random letters in the directory name")
	cmd.Flags().BoolVar(&exclusive, "exclusive", false, "Fail if the drawn name already exists")
	return cmd
}

func newSessionShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show SESSION_DIR",
		Short: "Print the manifest of a session directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := workdir.ReadSession(args[0])
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(s)
		},
	}
}

func newSessionListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list [BASE]",
		Short: "List sessions under BASE, or the configured base directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			base := cfg.BaseDir
			if len(args) == 1 {
				base = args[0]
			}
			sessions, err := workdir.List(base)
			if err != nil {
				return err
			}
			for _, s := range sessions {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %s\n",
					ui.SessionName(s.Suffix, s.Tag()), s.CreatedAt.Format("2006-01-02 15:04:05"), s.Path)
			}
			return nil
		},
	}
}

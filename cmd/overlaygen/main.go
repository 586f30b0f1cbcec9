// overlaygen imports a LaunchBox platform export into a TeknoParrot
// install: curated descriptions into launchbox_descriptions.json, and
// preview videos and box art into the media directories.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/user-none/bigbox/catalog"
	"github.com/user-none/bigbox/launchbox"
	"github.com/user-none/bigbox/logging"
	"github.com/user-none/bigbox/media"
	"github.com/user-none/bigbox/standalone/storage"
)

type globalFlags struct {
	base    string
	verbose bool
}

func main() {
	var g globalFlags
	var logger *zap.Logger
	var closeLog func()

	root := &cobra.Command{
		Use:           "overlaygen",
		Short:         "Import LaunchBox data into a TeknoParrot install",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := "info"
			if g.verbose {
				level = "debug"
			}
			var err error
			logger, closeLog, err = logging.New(logging.Options{Level: level})
			if err != nil {
				return err
			}
			if g.base != "" {
				storage.Init(g.base)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if closeLog != nil {
				closeLog()
			}
		},
	}
	root.PersistentFlags().StringVar(&g.base, "base", "", "TeknoParrot install directory (default: next to this program)")
	root.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "log every skipped game")

	loggerFn := func() *zap.Logger { return logger }
	root.AddCommand(newDescriptionsCmd(loggerFn))
	root.AddCommand(newMediaCmd("videos", "Import preview videos", media.VideosDir, launchbox.VideoExtensions, loggerFn))
	root.AddCommand(newMediaCmd("covers", "Import box art", media.CoversDir, launchbox.CoverExtensions, loggerFn))
	root.AddCommand(newCompletionCmd(root))

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func parseGames(path string) ([]launchbox.Game, error) {
	games, err := launchbox.ParseFile(path)
	if err != nil {
		return nil, err
	}
	if len(games) == 0 {
		return nil, fmt.Errorf("%s: %w", path, launchbox.ErrNoGames)
	}
	return games, nil
}

func newDescriptionsCmd(logger func() *zap.Logger) *cobra.Command {
	var out string
	var merge bool

	cmd := &cobra.Command{
		Use:   "descriptions <platform.xml>",
		Short: "Write launchbox_descriptions.json from a LaunchBox platform XML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := storage.GetBaseDir()
			if err != nil {
				return err
			}
			if out == "" {
				out = filepath.Join(base, catalog.OverlayFileName)
			}

			games, err := parseGames(args[0])
			if err != nil {
				return err
			}
			overlay, stats, err := launchbox.BuildOverlay(games, filepath.Join(base, catalog.ScriptsDirName), logger())
			if err != nil {
				return fmt.Errorf("failed to read launch scripts: %w", err)
			}

			if merge {
				existing := catalog.LoadOverlay(out, logger())
				for id, rec := range overlay {
					existing[id] = rec
				}
				overlay = existing
			}

			if err := storage.AtomicWriteJSON(out, overlay); err != nil {
				return err
			}
			logger().Info("Wrote descriptions",
				zap.String("path", out),
				zap.Int("written", stats.Written),
				zap.Int("total", len(overlay)),
				zap.Int("unmatched", stats.NoMatch),
				zap.Int("noProfile", stats.NoProfile))
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default: <base>/"+catalog.OverlayFileName+")")
	cmd.Flags().BoolVar(&merge, "merge", false, "keep records already in the output file")
	return cmd
}

func newMediaCmd(use, short, destDir string, exts []string, logger func() *zap.Logger) *cobra.Command {
	var opts launchbox.ImportOptions
	var mediaRoot string

	cmd := &cobra.Command{
		Use:   use + " <platform.xml>",
		Short: short + " named by LaunchBox title into the media directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.SourceDir == "" {
				return fmt.Errorf("--from is required")
			}
			base, err := storage.GetBaseDir()
			if err != nil {
				return err
			}
			if mediaRoot == "" {
				settings, err := storage.LoadSettings()
				if err != nil && settings == nil {
					return err
				}
				mediaRoot = settings.MediaRoot(base)
			}
			opts.DestDir = filepath.Join(mediaRoot, destDir)
			opts.Extensions = exts
			opts.Logger = logger()

			games, err := parseGames(args[0])
			if err != nil {
				return err
			}
			ids, err := launchbox.ProfileIDs(filepath.Join(base, catalog.ScriptsDirName), logger())
			if err != nil {
				return fmt.Errorf("failed to read launch scripts: %w", err)
			}

			stats, err := launchbox.ImportMedia(games, ids, opts)
			if err != nil {
				return err
			}
			logger().Info("Imported "+use,
				zap.String("dest", opts.DestDir),
				zap.Int("imported", stats.Imported),
				zap.Int("existing", stats.Exists),
				zap.Int("noMedia", stats.NoMedia),
				zap.Int("noProfile", stats.NoProfile),
				zap.Bool("dryRun", opts.DryRun))
			return nil
		},
	}
	cmd.Flags().StringVar(&opts.SourceDir, "from", "", "LaunchBox media folder holding {Title}-01.ext files")
	cmd.Flags().StringVar(&mediaRoot, "media", "", "media root (default: MediaPath from settings, else <base>/Media)")
	cmd.Flags().BoolVar(&opts.Move, "move", false, "move files instead of copying")
	cmd.Flags().BoolVar(&opts.Overwrite, "overwrite", false, "replace existing files")
	cmd.Flags().BoolVarP(&opts.DryRun, "dry-run", "n", false, "only report what would be imported")
	return cmd
}

func newCompletionCmd(root *cobra.Command) *cobra.Command {
	return &cobra.Command{
		Use:       "completion [bash|zsh|fish|powershell]",
		Short:     "Generate shell completion",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return root.GenBashCompletion(os.Stdout)
			case "zsh":
				return root.GenZshCompletion(os.Stdout)
			case "fish":
				return root.GenFishCompletion(os.Stdout, true)
			default:
				return root.GenPowerShellCompletionWithDesc(os.Stdout)
			}
		},
	}
}

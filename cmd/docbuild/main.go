package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hexadocs/docbuild/internal/app"
	"github.com/hexadocs/docbuild/internal/config"
	"github.com/hexadocs/docbuild/internal/utils"
	"github.com/hexadocs/docbuild/pkg/version"
)

var (
	cfgFile    string
	verbose    bool
	dryRun     bool
	noProgress bool
	log        *utils.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "docbuild",
	Short: "Build documentation sites from markdown sources",
	Long: `Docbuild renders a tree of markdown sources to HTML and maintains a
build manifest recording every output artifact each source produced.

Parallel build groups each produce a partial manifest; docbuild merges them
into one canonical manifest and resolves duplicate output paths, reporting
collisions as build warnings.`,
	Version:       version.Short(),
	SilenceUsage:  true,
	SilenceErrors: true,
}

var buildCmd = &cobra.Command{
	Use:   "build [source-dir]",
	Short: "Build a source directory and publish its manifest",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runBuild,
}

var mergeCmd = &cobra.Command{
	Use:   "merge <manifest>...",
	Short: "Merge partial manifests into one",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runMerge,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print detailed version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.Full())
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.docbuild/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	buildCmd.Flags().StringP("output", "o", config.DefaultOutputDir, "Output directory")
	buildCmd.Flags().IntP("concurrency", "j", config.DefaultWorkers, "Number of concurrent workers per group")
	buildCmd.Flags().BoolP("force", "f", false, "Rewrite outputs that already exist")
	buildCmd.Flags().Bool("no-cache", false, "Disable the incremental build cache")
	buildCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Build without writing output files")
	buildCmd.Flags().BoolVar(&noProgress, "no-progress", false, "Disable the progress bar")

	_ = viper.BindPFlag("output.directory", buildCmd.Flags().Lookup("output"))
	_ = viper.BindPFlag("build.workers", buildCmd.Flags().Lookup("concurrency"))
	_ = viper.BindPFlag("output.force", buildCmd.Flags().Lookup("force"))

	mergeCmd.Flags().StringP("output", "o", "manifest.json", "Merged manifest path")

	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(mergeCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if noCache, _ := cmd.Flags().GetBool("no-cache"); noCache {
		cfg.Cache.Enabled = false
	}

	log = newLogger(cfg)

	sourceDir := "."
	if len(args) == 1 {
		sourceDir = args[0]
	}

	orch, err := app.NewOrchestrator(cfg, log, app.OrchestratorOptions{
		DryRun:       dryRun,
		ShowProgress: !noProgress && !verbose,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := orch.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close build cache")
		}
	}()

	return orch.Run(cmd.Context(), sourceDir)
}

func runMerge(cmd *cobra.Command, args []string) error {
	// Merging reads only the manifest files named on the command line;
	// default settings are enough for the rest.
	cfg := config.Default()
	cfg.Cache.Enabled = false

	log = newLogger(cfg)

	outPath, _ := cmd.Flags().GetString("output")

	orch, err := app.NewOrchestrator(cfg, log, app.OrchestratorOptions{})
	if err != nil {
		return err
	}
	defer orch.Close()

	return orch.MergeFiles(args, outPath)
}

func newLogger(cfg *config.Config) *utils.Logger {
	return utils.NewLogger(utils.LoggerOptions{
		Level:   cfg.Logging.Level,
		Format:  cfg.Logging.Format,
		Verbose: verbose,
	})
}

package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/folio"
	"github.com/aretw0/folio/internal/config"
	"github.com/aretw0/folio/internal/metrics"
	"github.com/aretw0/folio/internal/platform"
)

var (
	verbose     bool
	projectDir  string
	cacheFlag   bool
	logger      = slog.Default()
	collections = []string{"blog", "portfolio"}
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "folio",
	Short: "Query the blog and portfolio content of the agency site",
	Long: `Folio reads Markdown files with YAML or TOML frontmatter from content/blog
and content/portfolio/<locale>, and lists, reads and relates them.
It can also serve the content as a JSON API for previews.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger = slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&projectDir, "dir", "C", "", "Project directory (default: nearest folder with folio.yaml or content/)")
	rootCmd.PersistentFlags().BoolVar(&cacheFlag, "cache", false, "Enable the mtime read-through cache")
}

// loadConfig resolves the project directory and its configuration.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	dir := projectDir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
		dir = wd
		if root, err := platform.FindRoot(wd); err == nil {
			dir = root
		}
	}

	cfg, err := config.Load(dir)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("cache") {
		cfg.Cache = cacheFlag
	}
	logger.Debug("config loaded", "dir", dir, "content_root", cfg.ContentRoot, "cache", cfg.Cache)
	return cfg, nil
}

// openSite builds the site described by cfg. recorder may be nil.
func openSite(cfg *config.Config, recorder metrics.Recorder) (*folio.Site, error) {
	opts := []folio.Option{
		folio.WithLogger(logger),
		folio.WithCache(cfg.Cache),
		folio.WithLocales(cfg.Locales...),
		folio.WithDefaultLocale(cfg.DefaultLocale),
		folio.WithBlogDir(cfg.BlogDir),
		folio.WithPortfolioDir(cfg.PortfolioDir),
	}
	if recorder != nil {
		opts = append(opts, folio.WithRecorder(recorder))
	}
	return folio.New(cfg.ContentRoot, opts...)
}

func collectionArg(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("requires a collection: blog or portfolio")
	}
	for _, c := range collections {
		if args[0] == c {
			return nil
		}
	}
	return fmt.Errorf("unknown collection %q (want blog or portfolio)", args[0])
}

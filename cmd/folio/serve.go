package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/aretw0/lifecycle"
	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/aretw0/folio/internal/logfields"
	"github.com/aretw0/folio/internal/metrics"
	"github.com/aretw0/folio/internal/server"
	lcsource "github.com/aretw0/folio/pkg/adapters/lifecycle"
	"github.com/aretw0/folio/pkg/core"
)

var (
	serveAddr  string
	serveWatch bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the content as a JSON API",
	Long: `Serve blog and portfolio content over HTTP for previews.
With --watch, file changes evict cached entries as they happen.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("addr") {
			cfg.Server.Addr = serveAddr
		}
		if cmd.Flags().Changed("watch") {
			cfg.Server.Watch = serveWatch
		}

		reg := prom.NewRegistry()
		site, err := openSite(cfg, metrics.NewPrometheusRecorder(reg))
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if cfg.Server.Watch {
			events, err := site.Watch(ctx, cfg.Server.WatchPattern)
			if err != nil {
				return err
			}
			source := lcsource.NewSource(events)
			if err := source.Start(ctx); err != nil {
				return err
			}
			lifecycle.Go(ctx, func(ctx context.Context) error {
				for e := range source.Events() {
					if change, ok := e.(core.Event); ok {
						logger.Info("content changed",
							logfields.Collection(change.Collection),
							logfields.ID(change.ID),
							logfields.Event(string(change.Type)),
						)
					}
				}
				return nil
			})
		}

		engine := server.NewServer(server.NewHandler(site, logger), metrics.HTTPHandler(reg))
		return server.Run(ctx, cfg.Server.Addr, engine, logger)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "Listen address")
	serveCmd.Flags().BoolVar(&serveWatch, "watch", false, "Watch content files for changes")
}

package main

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/killertux/goslim/internal/fixtures"
	"github.com/killertux/goslim/internal/observability"
	"github.com/killertux/goslim/internal/slim/fixture"
	"github.com/killertux/goslim/internal/slim/server"
)

func newServeCmd() *cobra.Command {
	var (
		configPath string
		addr       string
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the bundled fixtures over SLIM",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadServiceConfig(configPath)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Addr = addr
			}
			log := observability.InitLogger("slimd", cfg.LogLevel)

			reg := fixture.NewRegistry()
			fixtures.Register(reg)

			if cfg.MetricsAddr != "" {
				observability.RegisterMetrics()
				mux := http.NewServeMux()
				mux.Handle("/metrics", promhttp.Handler())
				go func() {
					log.Info().Str("addr", cfg.MetricsAddr).Msg("metrics listening")
					if err := http.ListenAndServe(cfg.MetricsAddr, mux); err != nil {
						log.Error().Err(err).Msg("metrics listener failed")
					}
				}()
			}

			return server.New(reg, cfg.Limits, log).ListenAndServe(cfg.Addr)
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to config.toml")
	cmd.Flags().StringVarP(&addr, "addr", "a", "", "listen address, overrides the config file")
	return cmd
}

package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/aretw0/enform"
	enformhttp "github.com/aretw0/enform/pkg/adapters/http"
	"github.com/aretw0/enform/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

// serveCmd exposes the wizard over HTTP.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the enrollment wizard over HTTP",
	Run: func(cmd *cobra.Command, args []string) {
		addr, _ := cmd.Flags().GetString("addr")
		logger := newLogger(cmd)

		store, err := newStore(cmd)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		registry := prometheus.NewRegistry()
		metrics := observability.NewMetrics(registry)

		engine, err := enform.New(
			enform.WithStore(store),
			enform.WithLogger(logger),
			enform.WithMetrics(metrics),
		)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		engine.Start(cmd.Context())

		handler := enformhttp.NewHandler(engine,
			enformhttp.WithLogger(logger),
			enformhttp.WithMetricsGatherer(registry),
		)

		logger.Info("serving enrollment wizard", "addr", addr)
		if err := http.ListenAndServe(addr, handler); err != nil {
			logger.Error("server stopped", "error", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", ":8080", "Listen address")
}

package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"dcrhub/internal/server"
)

var (
	serveAddr string
	serveDir  string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve local JSON documents with caching disabled",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		sc := cfg.Server
		if serveAddr != "" {
			sc.Addr = serveAddr
		}

		if serveDir != "" {
			sc.Dir = serveDir
		}

		return server.New(sc, log).Run(ctx)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default server.addr)")
	serveCmd.Flags().StringVar(&serveDir, "dir", "", "directory holding results.json and cards.json (default server.dir)")
	rootCmd.AddCommand(serveCmd)
}

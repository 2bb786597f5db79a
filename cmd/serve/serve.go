// Package serve runs the JSON API server
package serve

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/ieee-sl/relief-ledger/cmd/root"
	"github.com/ieee-sl/relief-ledger/internal/config"
	"github.com/ieee-sl/relief-ledger/internal/server"
	"github.com/spf13/cobra"
)

var addr string

// Cmd represents the serve command
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the ledger and impact stories over HTTP",
	Long: `Serve the transparency API. Feeds are loaded on first request and
cached for cache.ttl_seconds; a failing feed is served as empty.`,
	RunE: serveFunc,
}

func init() {
	Cmd.Flags().StringVarP(&addr, "addr", "a", "", "Listen address (overrides server.addr)")
}

func serveFunc(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return run(ctx, root.GetConfig(), root.GetContainer().GetCache())
}

// NewServer builds the API server from configuration.
func NewServer(cfg *config.Config, snapshots server.SnapshotProvider) *server.Server {
	if cfg.Log.Level != "debug" && cfg.Log.Level != "trace" {
		gin.SetMode(gin.ReleaseMode)
	}
	return server.New(snapshots, server.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		RateLimit:      cfg.Server.RateLimit,
		RateBurst:      cfg.Server.RateBurst,
		Currency:       cfg.Ledger.Currency,
	}, root.Log)
}

func run(ctx context.Context, cfg *config.Config, snapshots server.SnapshotProvider) error {
	listen := cfg.Server.Addr
	if addr != "" {
		listen = addr
	}
	return NewServer(cfg, snapshots).Run(ctx, listen)
}

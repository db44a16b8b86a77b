package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/iodocs/internal/highlight"
	"github.com/ziadkadry99/iodocs/internal/site"
)

var (
	servePort  int
	serveTitle string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the documentation site",
	Long: `Starts the documentation web server: the navigation shell, highlighted
partials, the route API and the live route websocket.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		index, err := loadIndex(ctx, cfg)
		if err != nil {
			return err
		}

		port := cfg.Server.Port
		if cmd.Flags().Changed("port") {
			port = servePort
		}

		if _, err := os.Stat(cfg.Pages.PartialsDir); err != nil {
			logger.Warn("partials directory not readable, partial requests will 404",
				"dir", cfg.Pages.PartialsDir, "error", err)
		}

		var renderOpts []highlight.Option
		if cfg.Pages.Sanitize {
			renderOpts = append(renderOpts, highlight.WithSanitize())
		}

		srv := site.New(site.Config{
			Port:     port,
			AllowAll: cfg.Server.AllowAll,
			Title:    serveTitle,
			Partials: os.DirFS(cfg.Pages.PartialsDir),
			Logger:   logger,
		}, index, cfg.RouteOptions(), highlight.New(cfg.HighlightStyle, renderOpts...))

		go func() {
			<-ctx.Done()
			logger.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error("shutdown failed", "error", err)
			}
		}()

		fmt.Fprintf(cmd.OutOrStdout(), "Serving %d pages (%s) at http://localhost:%d\n", index.Len(), cfg.Variant, port)
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 8080, "port to listen on (overrides server.port)")
	serveCmd.Flags().StringVar(&serveTitle, "title", "", "title shown in the site header")
	rootCmd.AddCommand(serveCmd)
}

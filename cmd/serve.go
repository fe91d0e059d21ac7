package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/scholarsite/internal/livereload"
	"github.com/ziadkadry99/scholarsite/internal/server"
)

var (
	servePort       int
	serveLiveReload bool
	serveAllowAll   bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the site directory for local development",
	Long: `Serves the site directory over HTTP with the data documents under /data/
and a /healthz endpoint. With --live-reload, open pages reconnect to a
websocket and reload whenever a file under the site or data directory
changes.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("port") {
			cfg.Port = servePort
		}
		if cmd.Flags().Changed("live-reload") {
			cfg.LiveReload = serveLiveReload
		}
		if cmd.Flags().Changed("allow-all-origins") {
			cfg.AllowAllOrigins = serveAllowAll
		}
		logger := stderrLogger(cfg)

		if _, err := os.Stat(filepath.Join(cfg.SiteDir, "index.html")); err != nil {
			return fmt.Errorf("site directory %s has no index.html", cfg.SiteDir)
		}

		var hub *livereload.Hub
		if cfg.LiveReload {
			hub = livereload.NewHub(logger)
			opts := livereload.Options{
				Debounce: ms(cfg.Timings.ReloadDebounceMS),
				Exclude:  cfg.WatchExclude,
			}
			for _, dir := range watchDirs(cfg.SiteDir, cfg.DataPath()) {
				w, err := livereload.Watch(dir, opts, hub.Reload, logger)
				if err != nil {
					return fmt.Errorf("starting live reload: %w", err)
				}
				defer w.Close()
			}
		}

		srv := server.New(server.Config{
			Port:     cfg.Port,
			SiteDir:  cfg.SiteDir,
			DataDir:  cfg.DataPath(),
			AllowAll: cfg.AllowAllOrigins,
		}, hub, logger)

		// Graceful shutdown.
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			<-ctx.Done()
			fmt.Fprintln(os.Stderr, "\nShutting down server...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			srv.Shutdown(shutdownCtx)
		}()

		fmt.Fprintf(os.Stderr, "scholarsite %s serving %s at http://localhost:%d\n", Version, cfg.SiteDir, cfg.Port)
		return srv.Start()
	},
}

// watchDirs returns the site directory plus the data directory when it
// lives outside the site tree.
func watchDirs(siteDir, dataDir string) []string {
	dirs := []string{siteDir}
	siteAbs, err1 := filepath.Abs(siteDir)
	dataAbs, err2 := filepath.Abs(dataDir)
	if err1 != nil || err2 != nil {
		return dirs
	}
	rel, err := filepath.Rel(siteAbs, dataAbs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		if _, statErr := os.Stat(dataDir); statErr == nil {
			dirs = append(dirs, dataDir)
		}
	}
	return dirs
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "port to listen on")
	serveCmd.Flags().BoolVar(&serveLiveReload, "live-reload", false, "reload open pages when files change")
	serveCmd.Flags().BoolVar(&serveAllowAll, "allow-all-origins", false, "allow all CORS origins")
	rootCmd.AddCommand(serveCmd)
}

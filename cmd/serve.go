package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/AnyUserName/genkan/internal/pipeline"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"
)

var (
	serveFlags siteFlags
	serveAddr  string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Build, serve the output directory and rebuild on changes",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	serveFlags.register(serveCmd, true)
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "listen address")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s, res, err := buildSite(ctx, &serveFlags)
	if err != nil {
		return err
	}
	absOutput, err := filepath.Abs(serveFlags.output)
	if err != nil {
		return err
	}

	e := newPreviewServer(absOutput)
	go func() {
		fmt.Fprintf(os.Stderr, "[genkan] serving %s on http://localhost%s\n", absOutput, serveAddr)
		if err := e.Start(serveAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logWarn("server: %v", err)
			stop()
		}
	}()

	werr := watchAndRebuild(ctx, s, res, &serveFlags, func() (*site, *pipeline.Result) {
		s, res, err := buildSite(ctx, &serveFlags)
		if err != nil {
			logWarn("rebuild failed: %v", err)
			return s, res
		}
		logVerbose("rebuilt %s", filepath.Join(absOutput, pipeline.OutputFile))
		return s, res
	})

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return werr
}

// newPreviewServer serves dir with caching disabled so reloads always see
// the latest build.
func newPreviewServer(dir string) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Response().Header().Set("Cache-Control", "no-store")
			return next(c)
		}
	})
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			logVerbose("%s %s -> %d (%s)", v.Method, v.URI, v.Status, v.Latency)
			return nil
		},
	}))
	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{Level: 5}))
	e.Static("/", dir)
	return e
}

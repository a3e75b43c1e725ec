// web.go implements the "glossd web" command, serving the search widget
// until interrupted.

package core

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jpl-au/glossd/cmd"
	"github.com/jpl-au/glossd/extension"
	"github.com/jpl-au/glossd/internal/glossary"
	"github.com/jpl-au/glossd/internal/log"
	"github.com/jpl-au/glossd/internal/web"
	"github.com/spf13/cobra"
)

// shutdownTimeout bounds how long in-flight requests may run after a signal.
const shutdownTimeout = 5 * time.Second

func newWebCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "web",
		Short: "Serve the search widget over HTTP",
		Long: `Serve the glossary search widget.

  glossd web                        # listen on web.addr (127.0.0.1:8080)
  glossd web --addr :9000           # listen on all interfaces, port 9000

Open /?course=<id> to offer that course's collections in the selector.
See 'glossd guide web' for parameters and styling.`,
		Args: cobra.NoArgs,
		RunE: runWeb,
	}
	c.Flags().String(extension.FlagAddr, "", "Listen address (overrides web.addr)")
	return c
}

func runWeb(c *cobra.Command, _ []string) error {
	svc, err := glossary.New(cmd.Options())
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("open glossary: %w", err))
	}
	defer svc.Close()
	log.SetProject(svc.Location())

	cfg := svc.Config()
	opts := web.OptionsFromConfig(cfg)
	if addr, _ := c.Flags().GetString(extension.FlagAddr); addr != "" {
		opts.Addr = addr
	}

	logger, err := web.NewLogger(cfg.LogLevel(), cfg.LogFormat())
	if err != nil {
		return cmd.PrintJSONError(err)
	}
	logger.Infof("serving %s (%s, whole-word %s)", svc.Location(), svc.Dialect(), svc.Strategy())

	srv := web.NewServer(svc, opts, logger)
	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	ctx, stop := signal.NotifyContext(c.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		err = srv.Shutdown(sctx)
	case err = <-errCh:
	}

	log.Event("core:web", "serve").
		Author(cmd.Author()).
		Detail("addr", opts.Addr).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("web: %w", err))
	}
	return nil
}

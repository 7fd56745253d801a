package cmd

import (
	"context"
	"net/http"
	"time"

	"hwgrade/handler"
	"hwgrade/utils"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newServeCmd(o *options) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the rubrics and the grade reports over HTTP",
		Long: `Serve the homework rubrics and the stored grade reports as JSON or YAML.

Every route except /ping needs a token issued by "hwgrade token", passed as
"Authorization: Bearer <token>" or in the "token" cookie.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = o.config.Server.Addr
			}
			if o.config.Server.TokenSecret == "" {
				log.Warn("No token secret configured, tokens are only valid until the server stops")
			}
			utils.SetTokenSecret(o.config.Server.TokenSecret)

			archive, err := o.archive(cmd.Context())
			if err != nil {
				return err
			}
			gin.SetMode(gin.ReleaseMode)
			h := &handler.Handler{Config: o.config, Archive: archive}
			return serve(cmd.Context(), &http.Server{Addr: addr, Handler: h.Router()})
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	return cmd
}

// serve runs the server until ctx is done, then shuts it down gracefully.
func serve(ctx context.Context, srv *http.Server) error {
	errc := make(chan error, 1)
	go func() {
		log.WithField("addr", srv.Addr).Info("Listening")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return errors.Wrap(err, "listen")
	case <-ctx.Done():
	}
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "server shutdown failed")
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "listen")
	}
	log.Info("Server exiting")
	return nil
}

package cli

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/SAP-F-2025/career-orientation-service/internal/handlers"
	"github.com/SAP-F-2025/career-orientation-service/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 15 * time.Second

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			a, err := newApp()
			if err != nil {
				return err
			}
			defer func() {
				if err := a.close(); err != nil {
					a.logger.LogError(err, "Shutdown cleanup failed")
				}
			}()

			if err := a.initServices(ctx); err != nil {
				return err
			}

			if a.cfg.IsProduction() {
				gin.SetMode(gin.ReleaseMode)
			}
			router := gin.New()
			router.Use(gin.Recovery())
			router.Use(utils.ContextLogger(a.logger))
			router.Use(utils.LoggerMiddleware(a.logger))
			handlers.NewHandlerManager(a.services, a.auth, a.logger).SetupRoutes(router)

			server := &http.Server{
				Addr:              ":" + a.cfg.Port,
				Handler:           router,
				ReadHeaderTimeout: 10 * time.Second,
			}

			serverErr := make(chan error, 1)
			go func() {
				a.logger.Info("Server starting", "port", a.cfg.Port, "environment", a.cfg.Environment)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serverErr <- err
				}
				close(serverErr)
			}()

			select {
			case err := <-serverErr:
				return err
			case <-ctx.Done():
			}

			a.logger.Info("Shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	}
}

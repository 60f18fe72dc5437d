package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/nekruzvatanshoev/carprice/pkg/carprice/server"
)

var (
	ServeCmd = &cobra.Command{
		Use:   ServeCmdName,
		Short: ServeCmdShort,
		Long:  ServeCmdLong,
		RunE:  serveCmdFunc(),
	}
)

func init() {
	ServeCmd.Flags().String("address", ":8080", "address to listen on")
	_ = viper.BindPFlag("server.address", ServeCmd.Flags().Lookup("address"))
}

func serveCmdFunc() func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, svc, err := bootstrap()
		if err != nil {
			return err
		}

		serve := server.NewHTTPServer(cfg.Server.Address, svc, cfg.Formatter(), slog.Default())

		errCh := make(chan error, 1)
		go func() {
			slog.Info("starting server", "address", serve.Addr)
			if err := serve.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()

		select {
		case err := <-errCh:
			return err
		case <-cmd.Context().Done():
		}

		slog.Info("shutting down the server")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return serve.Shutdown(ctx)
	}
}

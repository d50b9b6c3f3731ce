package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/tokensave/buildtrust/internal/app"
)

func main() {
	_ = godotenv.Load()

	cmd := &cli.Command{
		Name:  "buildtrust",
		Usage: "Deal lifecycle service for the BuildTrust marketplace",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "addr",
				Value: ":8080",
				Usage: "HTTP listen address",
			},
			&cli.StringFlag{
				Name:  "db-path",
				Value: "./buildtrust.sqlite",
				Usage: "SQLite file path",
			},
			&cli.StringFlag{
				Name:    "blockchain-api-url",
				Sources: cli.EnvVars("BUILDTRUST_BLOCKCHAIN_API_URL"),
				Usage:   "Base URL of the blockchain-recording microservice (enables deal forwarding)",
			},
			&cli.StringFlag{
				Name:    "bootstrap-token",
				Sources: cli.EnvVars("BUILDTRUST_BOOTSTRAP_TOKEN"),
				Usage:   "Optional access token to upsert at startup",
			},
			&cli.Int64Flag{
				Name:    "bootstrap-user-id",
				Value:   1,
				Sources: cli.EnvVars("BUILDTRUST_BOOTSTRAP_USER_ID"),
				Usage:   "User the bootstrap token acts as",
			},
			&cli.StringFlag{
				Name:    "bootstrap-token-name",
				Value:   "bootstrap",
				Sources: cli.EnvVars("BUILDTRUST_BOOTSTRAP_TOKEN_NAME"),
				Usage:   "Name for the bootstrap access token",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			logger, err := newLogger(c.Bool("debug"))
			if err != nil {
				return fmt.Errorf("create logger: %w", err)
			}
			defer func() {
				_ = logger.Sync()
			}()

			cfg := app.Config{
				Addr:               c.String("addr"),
				DBPath:             c.String("db-path"),
				BlockchainAPIURL:   c.String("blockchain-api-url"),
				BootstrapToken:     c.String("bootstrap-token"),
				BootstrapUserID:    c.Int64("bootstrap-user-id"),
				BootstrapTokenName: c.String("bootstrap-token-name"),
			}

			server, closer, err := app.NewServer(ctx, cfg, logger)
			if err != nil {
				return fmt.Errorf("create server: %w", err)
			}
			defer func() {
				if closeErr := closer.Close(); closeErr != nil {
					logger.Error("close resources", zap.Error(closeErr))
				}
			}()

			errCh := make(chan error, 1)
			go func() {
				logger.Info("listening", zap.String("addr", cfg.Addr))
				errCh <- server.ListenAndServe()
			}()

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			defer signal.Stop(sigCh)

			select {
			case <-ctx.Done():
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				return server.Shutdown(shutdownCtx)
			case sig := <-sigCh:
				logger.Info("received signal", zap.String("signal", sig.String()))
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				return server.Shutdown(shutdownCtx)
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			}
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rahul/gurukul/internal/english"
	"github.com/rahul/gurukul/internal/gateway"
	"github.com/rahul/gurukul/internal/llm"
	"github.com/rahul/gurukul/internal/observability"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the Telegram tutor gateway",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if !cfg.Gateway.Enabled || cfg.Gateway.TelegramToken == "" {
				return errors.New("telegram gateway is not configured; set TELEGRAM_BOT_TOKEN")
			}

			observability.PrintBanner()

			logger := observability.NewLogger()
			client, err := llm.New(cfg.LLM)
			if err != nil {
				return fmt.Errorf("gateway needs an LLM: %w", err)
			}
			tutor := english.NewAssistant(client, logger)

			gw, err := gateway.NewTelegramGateway(cfg.Gateway.TelegramToken, tutor, logger)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				errCh <- gw.Start()
			}()
			fmt.Println("Telegram gateway running. Ctrl-C to stop.")

			select {
			case <-ctx.Done():
				if err := gw.Stop(); err != nil {
					return err
				}
				<-errCh
				return nil
			case err := <-errCh:
				return err
			}
		},
	}
	return cmd
}

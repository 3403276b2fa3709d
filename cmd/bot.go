/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"hollowbot/pkg/chat/telegram"
	"hollowbot/pkg/config"
	"hollowbot/pkg/dispatch"
	"hollowbot/pkg/logger"
	"hollowbot/pkg/media"
	"hollowbot/pkg/moderation"
	"hollowbot/pkg/privilege"
	"hollowbot/pkg/status"

	"github.com/spf13/cobra"
)

var botCmd = &cobra.Command{
	Use:   "bot",
	Short: "Run the chat bot",
	Long:  "Connects to the configured chat channel and serves commands until interrupted.",
	Run: func(cmd *cobra.Command, args []string) {
		_ = args

		cfg, err := config.LoadConfig()
		if err != nil {
			fmt.Printf("failed to load config: %v\n", err)
			return
		}

		appLogger, err := logger.New(cfg.Logging)
		if err != nil {
			fmt.Printf("failed to initialize logger: %v\n", err)
			return
		}
		slog.SetDefault(appLogger)
		log := slog.Default().With("component", "cmd.bot")

		if !cfg.Channels.Telegram.Enabled {
			log.Error("No channel is enabled; set channels.telegram.enabled")
			return
		}

		adapter, err := telegram.NewAdapter(cfg.Channels.Telegram, appLogger)
		if err != nil {
			log.Error("Failed to initialize telegram channel", "error", err)
			return
		}

		muted := moderation.NewStore(cfg.Moderation.MutedFile, appLogger)
		muted.Load()

		resolver := privilege.NewResolver(cfg.Privilege.AdminAllowlist, adapter, appLogger)

		pipeline, err := media.NewPipeline(
			cfg.Media.DownloadsDir,
			media.NewHTTPFetcher(),
			&media.FFmpegTranscoder{Path: cfg.Media.FFmpegPath},
			appLogger,
		)
		if err != nil {
			log.Error("Failed to initialize media pipeline", "error", err)
			return
		}

		dispatcher, err := dispatch.New(dispatch.Options{
			Gateway:   adapter,
			Muted:     muted,
			Privilege: resolver,
			Player:    pipeline,
			Prefix:    cfg.Commands.Prefix,
			AssetsDir: cfg.Media.AssetsDir,
			Logger:    appLogger,
		})
		if err != nil {
			log.Error("Failed to initialize dispatcher", "error", err)
			return
		}

		runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if cfg.Status.Enabled {
			statusServer := status.NewServer(cfg.Status, appLogger)
			statusServer.SetChannel(adapter.Name(), true)
			statusServer.SetMutedCount(muted.Len())
			go func() {
				if err := statusServer.Run(runCtx); err != nil {
					log.Error("Status server failed", "error", err)
				}
			}()
		}

		log.Info("Bot started", "channel", adapter.Name(), "muted", muted.Len())
		if err := adapter.Run(runCtx, dispatcher.Dispatch); err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			log.Error("Channel runtime failed", "error", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(botCmd)
}

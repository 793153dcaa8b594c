package commands

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/luizzsec/infogram/internal/bot"
	"github.com/luizzsec/infogram/internal/card"
	"github.com/luizzsec/infogram/internal/config"
	"github.com/luizzsec/infogram/internal/directory"
	"github.com/luizzsec/infogram/internal/logging"
)

func init() {
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run the lookup bot",
		Long: `Run the InfoGram bot: long-poll the Bot API for inbound messages and
answer each lookup with a rendered profile card.`,
		RunE: runBot,
	}

	rootCmd.AddCommand(runCmd)
}

func runBot(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	logger := logging.New(cfg.LogLevel)
	defer func() { _ = logger.Sync() }()

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	layoutKeys, err := cfg.CardLayout()
	if err != nil {
		return err
	}
	layout, err := card.ParseLayout(layoutKeys)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dir, err := directory.New(ctx, cfg, logger.Named("directory"))
	if err != nil {
		return fmt.Errorf("error creating directory client: %w", err)
	}

	var client *bot.Client
	sender := bot.SenderFunc(func(msg tgbotapi.Chattable) error { return client.Send(msg) })
	handler := bot.NewHandler(cfg, layout, loc, dir, sender, logger.Named("bot"))

	client, err = bot.NewClient(cfg.BotToken, cfg.PollTimeoutSeconds, logger.Named("bot"), handler.HandleUpdate)
	if err != nil {
		return fmt.Errorf("error creating bot client: %w", err)
	}

	logger.Info("starting infogram bot", zap.String("bot_name", cfg.BotName))

	return dir.Run(ctx, func(ctx context.Context) error {
		return client.Start(ctx)
	})
}

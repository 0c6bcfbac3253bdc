package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"workorders/cmd"
	httpin "workorders/internal/adapters/in/http"
	tgin "workorders/internal/adapters/in/telegram"
	"workorders/internal/adapters/out/postgres"
	"workorders/internal/metrics"
	"workorders/internal/pkg/clock"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/spf13/cobra"
)

func newServeCommand(opts *rootOptions) *cobra.Command {
	var migrate bool

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API, the Telegram bot and the housekeeping jobs",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			config, db, logger, err := bootstrap(opts)
			if err != nil {
				return err
			}
			defer closeDB(db, logger)

			if migrate {
				if err = postgres.Migrate(db); err != nil {
					return err
				}
			}
			if config.TelegramToken == "" {
				return errors.New("TELEGRAM_TOKEN is required to serve")
			}

			bot, err := tgbotapi.NewBotAPI(config.TelegramToken)
			if err != nil {
				return fmt.Errorf("connect telegram bot: %w", err)
			}

			metrics.Register()
			root := cmd.NewCompositionRoot(config, db, bot, clock.System{}, logger)

			ctx, stop := signal.NotifyContext(c.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return runServer(ctx, root, bot, config, logger)
		},
	}

	serve.Flags().BoolVar(&migrate, "migrate", false, "migrate the schema before serving")
	return serve
}

func runServer(ctx context.Context, root *cmd.CompositionRoot, bot *tgbotapi.BotAPI, config cmd.Config, logger *slog.Logger) error {
	jobManager := root.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 30
	updates := bot.GetUpdatesChan(updateConfig)
	defer bot.StopReceivingUpdates()

	botHandler := tgin.NewHandler(
		bot,
		root.CreateClaimOrderCommandHandler(),
		root.CreateCompleteOrderCommandHandler(),
		root.CreateRegisterUserCommandHandler(),
		config.PublicURL,
		logger,
	)
	go botHandler.Run(ctx, updates)

	server := httpin.NewServer(httpin.Handlers{
		CreateOrder:       root.CreateCreateOrderCommandHandler(),
		ClaimOrder:        root.CreateClaimOrderCommandHandler(),
		CompleteOrder:     root.CreateCompleteOrderCommandHandler(),
		ArchiveOrder:      root.CreateArchiveOrderCommandHandler(),
		UnarchiveOrder:    root.CreateUnarchiveOrderCommandHandler(),
		CancelOrder:       root.CreateCancelOrderCommandHandler(),
		ListCreatorOrders: root.CreateListCreatorOrdersQueryHandler(),
		ListWorkerOrders:  root.CreateListWorkerOrdersQueryHandler(),
		WhoAmI:            root.CreateWhoAmIQueryHandler(),
	}, logger)

	e, err := httpin.NewRouter(server, logger)
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server started", "port", config.HTTPPort)
		errCh <- e.Start(fmt.Sprintf("0.0.0.0:%s", config.HTTPPort))
	}()

	select {
	case err = <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

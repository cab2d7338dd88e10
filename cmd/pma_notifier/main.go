package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/SscSPs/pension_management_app/internal/events"
	"github.com/SscSPs/pension_management_app/internal/platform/config"
)

// pma_notifier consumes contribution events and emits the member notification for each.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)

	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL must be set for the notifier")
		os.Exit(1)
	}

	client, err := events.NewAMQPClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to connect to message broker", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer client.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("Notifier consuming", slog.String("queue", cfg.AMQPQueue))
	if err := client.Consume(ctx, notify(logger)); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Consumer stopped", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("Notifier stopped")
}

// notify logs the notification a member would receive for event.
func notify(logger *slog.Logger) func(context.Context, *events.ContributionEvent) error {
	return func(ctx context.Context, event *events.ContributionEvent) error {
		title, message := event.Notification()
		logger.InfoContext(ctx, "Member notification",
			slog.String("member_id", event.MemberID),
			slog.String("contribution_id", event.ContributionID),
			slog.String("event_type", string(event.Type)),
			slog.String("title", title),
			slog.String("message", message))
		return nil
	}
}

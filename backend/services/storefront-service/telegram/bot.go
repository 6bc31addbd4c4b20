package telegram

import (
	"context"
	"fmt"
	"time"

	"github.com/kartikeyan-sudo/better-bite-Grocery-ecom/backend/services/storefront-service/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// BotAPI is the subset of *tgbotapi.BotAPI the gateway uses.
type BotAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// Notifier is the order notification channel as seen by the rest of the
// service. *Gateway and Disabled implement it.
type Notifier interface {
	Start(ctx context.Context) error
	Stop()
	OrderCreated(ctx context.Context, order *models.Order, customer models.Customer) error
	StatusChanged(ctx context.Context, order *models.Order, customer models.Customer, oldStatus string) error
}

// Config controls the chat channel.
type Config struct {
	Token           string
	ChatID          int64
	Polling         bool
	ConversationTTL time.Duration
	Location        *time.Location
}

// Enabled reports whether both credentials are present.
func (c Config) Enabled() bool {
	return c.Token != "" && c.ChatID != 0
}

// New returns a live gateway when the bot is configured and a logged no-op
// otherwise.
func New(cfg Config, deps Deps) (Notifier, error) {
	if !cfg.Enabled() {
		deps.Logger.Warn("Telegram bot credentials not configured, order notifications disabled")
		return Disabled{}, nil
	}
	bot, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}
	deps.Logger.Info("Telegram bot authorized",
		zap.String("username", bot.Self.UserName),
		zap.Bool("polling", cfg.Polling),
	)
	return NewGateway(bot, cfg, deps), nil
}

// Disabled drops every notification.
type Disabled struct{}

func (Disabled) Start(context.Context) error { return nil }
func (Disabled) Stop()                       {}

func (Disabled) OrderCreated(context.Context, *models.Order, models.Customer) error { return nil }

func (Disabled) StatusChanged(context.Context, *models.Order, models.Customer, string) error {
	return nil
}

// Package telegram delivers lead notifications to a Telegram chat.
package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/leadflowhq/leadflow-backend/pkg/config"
	"github.com/leadflowhq/leadflow-backend/pkg/db/models"
	"github.com/leadflowhq/leadflow-backend/pkg/logger"
)

// Client wraps the bot API for one destination chat. A nil *Client is a
// valid no-op notifier, so callers do not have to branch on configuration.
type Client struct {
	bot    *tgbotapi.BotAPI
	chatID int64
	logg   *logger.Logger
}

// New authenticates the bot against the Telegram API. Returns (nil, nil)
// when the integration is not configured.
func New(cfg config.TelegramConfig, logg *logger.Logger) (*Client, error) {
	if !cfg.Configured() {
		return nil, nil
	}

	bot, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, err
	}
	bot.Debug = false

	return &Client{bot: bot, chatID: cfg.ChatID, logg: logg}, nil
}

// NotifyApplication sends the formatted lead message. Failures are logged
// and swallowed so intake never waits on Telegram availability.
func (c *Client) NotifyApplication(ctx context.Context, app *models.Application) {
	if c == nil || c.bot == nil {
		return
	}

	msg := tgbotapi.NewMessage(c.chatID, FormatApplicationMessage(app))
	msg.ParseMode = tgbotapi.ModeHTML

	if _, err := c.bot.Send(msg); err != nil {
		c.logg.Error(ctx, "telegram notification failed", err)
		return
	}
	c.logg.Info(ctx, "telegram notification sent")
}

// Package telegram provides the Telegram command surface of the bot.
package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	subentity "crypto_signal_bot/internal/feature/subscriber/domain/entity"
)

// SubscriberUsecase is the subscriber management surface the bot needs.
// Following Go convention: interfaces are defined by the consumer
// (transport), not the provider (usecase).
type SubscriberUsecase interface {
	Subscribe(ctx context.Context, chatID int64, username string) error
	Unsubscribe(ctx context.Context, chatID int64) error
	SetNotifyTime(ctx context.Context, chatID int64, value string) error
	SetScanDays(ctx context.Context, chatID int64, days int) error
	Preferences(ctx context.Context, chatID int64) (subentity.Preferences, error)
}

// NotifyUsecase runs a scan for one subscriber and delivers the result.
type NotifyUsecase interface {
	NotifySubscriber(ctx context.Context, chatID int64) error
}

// ScheduleReloader rebuilds the per-subscriber schedule from the store.
type ScheduleReloader interface {
	Reload(ctx context.Context) error
}

// Bot dispatches Telegram commands to the subscriber and notify usecases.
type Bot struct {
	api       *tgbotapi.BotAPI
	subs      SubscriberUsecase
	notify    NotifyUsecase
	scheduler ScheduleReloader
	quote     string
}

// NewBot connects to the Telegram Bot API with the given token. The bot
// is also the notify usecase's delivery channel, which makes the
// dependency circular; Attach closes the loop before Run.
func NewBot(token string, subs SubscriberUsecase, quote string) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram connect: %w", err)
	}
	slog.Info("Telegram bot authorized", "username", api.Self.UserName)
	return &Bot{api: api, subs: subs, quote: quote}, nil
}

// Attach wires the notify usecase and the scheduler into the bot. Must be
// called before Run.
func (b *Bot) Attach(notify NotifyUsecase, scheduler ScheduleReloader) {
	b.notify = notify
	b.scheduler = scheduler
}

// SendMessage delivers one plain-text message to a chat. It implements
// the notify usecase's Notifier.
func (b *Bot) SendMessage(chatID int64, text string) error {
	_, err := b.api.Send(tgbotapi.NewMessage(chatID, text))
	return err
}

// Run polls for updates and dispatches commands until ctx is cancelled.
func (b *Bot) Run(ctx context.Context) error {
	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = 30
	updates := b.api.GetUpdatesChan(cfg)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil || !update.Message.IsCommand() {
				continue
			}
			b.dispatch(ctx, update.Message)
		}
	}
}

func (b *Bot) dispatch(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	var username string
	if msg.From != nil {
		username = msg.From.UserName
	}
	slog.Info("command received", "command", msg.Command(), "chat_id", chatID)

	switch msg.Command() {
	case "start":
		b.handleStart(ctx, chatID, username)
	case "help":
		b.reply(chatID, helpText)
	case "subscribe":
		b.handleSubscribe(ctx, chatID, username)
	case "unsubscribe":
		b.handleUnsubscribe(ctx, chatID)
	case "settings":
		b.handleSettings(ctx, chatID)
	case "settime":
		b.handleSetTime(ctx, chatID, strings.TrimSpace(msg.CommandArguments()))
	case "setdays":
		b.handleSetDays(ctx, chatID, strings.TrimSpace(msg.CommandArguments()))
	case "scan":
		b.handleScan(ctx, chatID)
	default:
		b.reply(chatID, "Unknown command. Use /help to see available commands.")
	}
}

const helpText = "Available commands:\n\n" +
	"/settings - Show current settings\n" +
	"/subscribe - Subscribe to daily notifications\n" +
	"/unsubscribe - Unsubscribe from notifications\n" +
	"/settime HH:MM - Set your preferred notification time (24h format)\n" +
	"/setdays N - Set the candle lookback window in days\n" +
	"/scan - Run a scan right now\n" +
	"/help - Show this help message"

func (b *Bot) handleStart(ctx context.Context, chatID int64, username string) {
	if err := b.subs.Subscribe(ctx, chatID, username); err != nil {
		slog.Error("failed to add subscriber", "chat_id", chatID, "error", err)
		b.reply(chatID, "❌ Failed to subscribe. Please try again later.")
		return
	}
	b.reloadSchedule(ctx)
	b.reply(chatID, "🤖 Welcome to the two-green-candle screener!\n\n"+
		"Once a day this bot scans every "+b.quote+" pair for two consecutive "+
		"green daily candles closing above the 28-day moving average and sends "+
		"you the best-ranked matches.\n\n"+
		"Use /help to see available commands.")
}

func (b *Bot) handleSubscribe(ctx context.Context, chatID int64, username string) {
	if err := b.subs.Subscribe(ctx, chatID, username); err != nil {
		slog.Error("failed to subscribe", "chat_id", chatID, "error", err)
		b.reply(chatID, "❌ Failed to subscribe. Please try again later.")
		return
	}
	b.reloadSchedule(ctx)
	b.reply(chatID, "✅ Successfully subscribed to notifications!")
}

func (b *Bot) handleUnsubscribe(ctx context.Context, chatID int64) {
	if err := b.subs.Unsubscribe(ctx, chatID); err != nil {
		slog.Error("failed to unsubscribe", "chat_id", chatID, "error", err)
		b.reply(chatID, "❌ Failed to unsubscribe. Please try again later.")
		return
	}
	b.reloadSchedule(ctx)
	b.reply(chatID, "✅ Successfully unsubscribed from notifications.")
}

func (b *Bot) handleSettings(ctx context.Context, chatID int64) {
	prefs, err := b.subs.Preferences(ctx, chatID)
	if err != nil {
		slog.Error("failed to load settings", "chat_id", chatID, "error", err)
		b.reply(chatID, "❌ Failed to load settings. Please try again later.")
		return
	}
	b.reply(chatID, fmt.Sprintf("Current settings:\n"+
		"Quote currency: %s\n"+
		"Scan days: %d\n"+
		"Notification time: %s", b.quote, prefs.ScanDays, prefs.NotifyTime))
}

func (b *Bot) handleSetTime(ctx context.Context, chatID int64, arg string) {
	if err := b.subs.SetNotifyTime(ctx, chatID, arg); err != nil {
		b.reply(chatID, "❌ "+err.Error())
		return
	}
	b.reloadSchedule(ctx)
	b.reply(chatID, "✅ Notification time set to "+arg+".")
}

func (b *Bot) handleSetDays(ctx context.Context, chatID int64, arg string) {
	days, err := strconv.Atoi(arg)
	if err != nil {
		b.reply(chatID, "❌ Usage: /setdays N")
		return
	}
	if err := b.subs.SetScanDays(ctx, chatID, days); err != nil {
		b.reply(chatID, "❌ "+err.Error())
		return
	}
	b.reply(chatID, fmt.Sprintf("✅ Scan window set to %d days.", days))
}

func (b *Bot) handleScan(ctx context.Context, chatID int64) {
	b.reply(chatID, "🔄 Running scan, this can take a few minutes...")
	// A full scan walks every pair on the exchange; run it off the update
	// loop so other commands stay responsive.
	go func() {
		if err := b.notify.NotifySubscriber(ctx, chatID); err != nil {
			slog.Error("on-demand scan failed", "chat_id", chatID, "error", err)
		}
	}()
}

func (b *Bot) reloadSchedule(ctx context.Context) {
	if b.scheduler == nil {
		return
	}
	if err := b.scheduler.Reload(ctx); err != nil {
		slog.Error("failed to reload schedule", "error", err)
	}
}

func (b *Bot) reply(chatID int64, text string) {
	if err := b.SendMessage(chatID, text); err != nil {
		slog.Error("failed to send reply", "chat_id", chatID, "error", err)
	}
}

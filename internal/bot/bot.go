// Package bot is the Telegram transport: it classifies inbound updates,
// gates them through the access service, and drives the reader, catalog,
// and admin workflows.
package bot

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/pkruglov/chitalka/internal/access"
	"github.com/pkruglov/chitalka/internal/catalog"
	"github.com/pkruglov/chitalka/internal/platform/apperr"
	"github.com/pkruglov/chitalka/internal/platform/config"
	"github.com/pkruglov/chitalka/internal/platform/constants"
	"github.com/pkruglov/chitalka/internal/reader"
)

// handlerTimeout caps one update's processing, file transfers included.
const handlerTimeout = 2 * time.Minute

// Bot wires the Telegram API to the application services.
type Bot struct {
	api     *tgbotapi.BotAPI
	cfg     *config.Config
	reader  *reader.Service
	access  *access.Service
	catalog *catalog.Catalog
	dialogs *DialogStore
	logger  *slog.Logger

	// files downloads user uploads from Telegram's file CDN.
	files *http.Client
}

func New(
	cfg *config.Config,
	readerService *reader.Service,
	accessService *access.Service,
	cat *catalog.Catalog,
	dialogs *DialogStore,
	logger *slog.Logger,
) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("bot: authorize: %w", err)
	}
	api.Debug = cfg.Debug

	logger.Info("bot_authorized", slog.String("username", api.Self.UserName))

	return &Bot{
		api:     api,
		cfg:     cfg,
		reader:  readerService,
		access:  accessService,
		catalog: cat,
		dialogs: dialogs,
		logger:  logger,
		files:   &http.Client{Timeout: time.Minute},
	}, nil
}

// Run consumes the long-polling update stream until ctx is canceled. Each
// update is handled on its own goroutine so a slow file transfer does not
// stall navigation for everyone else.
func (b *Bot) Run(ctx context.Context) error {
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = constants.UpdateTimeout

	updates := b.api.GetUpdatesChan(updateConfig)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			go b.handleUpdate(ctx, update)
		}
	}
}

func (b *Bot) handleUpdate(parent context.Context, update tgbotapi.Update) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("update_panic",
				slog.Any("panic", r),
				slog.String("stack", string(debug.Stack())),
			)
		}
	}()

	event := ClassifyUpdate(update)
	if event == nil {
		return
	}

	ctx, cancel := context.WithTimeout(parent, handlerTimeout)
	defer cancel()

	switch e := event.(type) {
	case CommandEvent:
		b.handleCommand(ctx, e)
	case TextEvent:
		b.handleText(ctx, e)
	case DocumentEvent:
		b.handleDocument(ctx, e)
	case CallbackEvent:
		b.handleCallback(ctx, e)
	}
}

// requireApproved gates an event on the approval registry. Unapproved users
// are silently ignored; /start is their only entry point.
func (b *Bot) requireApproved(ctx context.Context, userID int64) bool {
	approved, err := b.access.IsApproved(ctx, userID)
	if err != nil {
		b.logger.Error("approval_check_failed",
			slog.Int64("user_id", userID),
			slog.Any("error", err),
		)
		return false
	}
	return approved
}

// # Outbound helpers

func (b *Bot) send(chatID int64, text string) {
	b.sendMessage(tgbotapi.NewMessage(chatID, text))
}

func (b *Bot) sendMarkdownV2(chatID int64, text string, keyboard ...tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdownV2
	if len(keyboard) > 0 {
		msg.ReplyMarkup = keyboard[0]
	}
	b.sendMessage(msg)
}

func (b *Bot) sendMarkdown(chatID int64, text string, markup interface{}) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.DisableWebPagePreview = true
	msg.ReplyMarkup = markup
	b.sendMessage(msg)
}

func (b *Bot) sendMessage(msg tgbotapi.MessageConfig) {
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Error("send_failed",
			slog.Int64("chat_id", msg.ChatID),
			slog.Any("error", err),
		)
	}
}

func (b *Bot) editMarkdownV2(chatID int64, messageID int, text string, keyboard *tgbotapi.InlineKeyboardMarkup) {
	edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
	edit.ParseMode = tgbotapi.ModeMarkdownV2
	edit.ReplyMarkup = keyboard
	if _, err := b.api.Request(edit); err != nil {
		b.logger.Error("edit_failed",
			slog.Int64("chat_id", chatID),
			slog.Int("message_id", messageID),
			slog.Any("error", err),
		)
	}
}

func (b *Bot) deleteMessage(chatID int64, messageID int) {
	if _, err := b.api.Request(tgbotapi.NewDeleteMessage(chatID, messageID)); err != nil {
		b.logger.Warn("delete_failed",
			slog.Int64("chat_id", chatID),
			slog.Int("message_id", messageID),
			slog.Any("error", err),
		)
	}
}

// answerCallback acknowledges a callback, with an optional toast text.
func (b *Bot) answerCallback(callbackID, text string) {
	if _, err := b.api.Request(tgbotapi.NewCallback(callbackID, text)); err != nil {
		b.logger.Warn("callback_answer_failed", slog.Any("error", err))
	}
}

// replyError renders a service error to the user. Expected conditions carry
// their own user-facing MarkdownV2 message; everything else is logged and
// surfaced generically.
func (b *Bot) replyError(chatID int64, err error) {
	appErr := apperr.As(err)
	if appErr == nil {
		appErr = apperr.Internal(err)
	}
	if appErr.Cause != nil {
		b.logger.Error("handler_error",
			slog.Int64("chat_id", chatID),
			slog.String("code", appErr.Code),
			slog.Any("error", appErr.Cause),
		)
	}
	b.sendMarkdownV2(chatID, appErr.Message)
}

// downloadFile fetches an uploaded document from Telegram's file storage.
func (b *Bot) downloadFile(ctx context.Context, fileID string) ([]byte, error) {
	url, err := b.api.GetFileDirectURL(fileID)
	if err != nil {
		return nil, fmt.Errorf("bot: resolve file url: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("bot: build file request: %w", err)
	}
	resp, err := b.files.Do(req)
	if err != nil {
		return nil, fmt.Errorf("bot: download file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bot: download file: status %s", resp.Status)
	}
	return io.ReadAll(resp.Body)
}

package bot

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkruglov/chitalka/internal/access"
)

// handleStart is the single entry point for unapproved users: approved ones
// get the info screen, everyone else files (or re-checks) an access request.
func (b *Bot) handleStart(ctx context.Context, e CommandEvent) {
	approved, err := b.access.IsApproved(ctx, e.User.ID)
	if err != nil {
		b.replyError(e.ChatID, err)
		return
	}
	if approved {
		b.sendInfo(ctx, e.ChatID, e.User.ID)
		return
	}

	pending := &access.PendingUser{
		ID:        e.User.ID,
		Username:  e.User.UserName,
		FirstName: e.User.FirstName,
		LastName:  e.User.LastName,
	}
	created, err := b.access.RequestAccess(ctx, pending)
	if err != nil {
		b.replyError(e.ChatID, err)
		return
	}
	if !created {
		b.send(e.ChatID, msgAccessPending)
		return
	}

	b.send(e.ChatID, msgAccessRequested)
	b.notifyAdmins(pending)
}

func (b *Bot) notifyAdmins(pending *access.PendingUser) {
	text := fmt.Sprintf(
		"🔔 **Новая заявка на одобрение!**\n\n**ID:** `%d`\n**Username:** @%s\n**Имя:** %s %s",
		pending.ID, escapeUsername(pending.Username), orNA(pending.FirstName), pending.LastName,
	)
	for _, adminID := range b.cfg.AdminIDs {
		b.sendMarkdown(adminID, text, approvalKeyboard(pending.ID))
	}
}

// handleAdminCallback serves the approval-workflow buttons. All of them
// require admin rights regardless of where the keyboard ended up.
func (b *Bot) handleAdminCallback(ctx context.Context, e CallbackEvent) {
	if !b.access.IsAdmin(e.User.ID) {
		b.answerCallback(e.CallbackID, msgNoPermission)
		return
	}

	targetID, err := strconv.ParseInt(e.Arg, 10, 64)
	if err != nil {
		b.answerCallback(e.CallbackID, "")
		return
	}

	switch e.Action {
	case ActionApprove:
		user, err := b.access.Approve(ctx, targetID)
		if err != nil {
			b.answerCallback(e.CallbackID, msgAlreadyDecided)
			return
		}
		b.editMarkdownV2(e.ChatID, e.MessageID,
			fmt.Sprintf("Заявка пользователя `%d` одобрена\\.", user.ID), nil)
		b.send(targetID, msgAccessApproved)
		b.answerCallback(e.CallbackID, "")

	case ActionReject:
		if err := b.access.Reject(ctx, targetID); err != nil {
			b.answerCallback(e.CallbackID, msgNotPending)
			return
		}
		b.editMarkdownV2(e.ChatID, e.MessageID,
			fmt.Sprintf("Заявка пользователя `%d` отклонена\\.", targetID), nil)
		b.send(targetID, msgAccessRejected)
		b.answerCallback(e.CallbackID, "")

	case ActionRemoveUser:
		if err := b.access.Revoke(ctx, targetID); err != nil {
			b.answerCallback(e.CallbackID, "")
			b.replyError(e.ChatID, err)
			return
		}
		b.editMarkdownV2(e.ChatID, e.MessageID,
			fmt.Sprintf("Пользователь `%d` удален из списка\\.", targetID), nil)
		b.answerCallback(e.CallbackID, "")
	}
}

// listApprovedUsers sends one removable entry per approved user.
func (b *Bot) listApprovedUsers(ctx context.Context, chatID int64) {
	users, err := b.access.ListApproved(ctx)
	if err != nil {
		b.replyError(chatID, err)
		return
	}
	if len(users) == 0 {
		b.send(chatID, msgNoApprovedUsers)
		return
	}

	b.send(chatID, msgApprovedHeader)
	for _, user := range users {
		text := fmt.Sprintf("- ID: `%d` | Имя: %s %s | Username: @%s",
			user.ID, user.FirstName, user.LastName, escapeUsername(user.Username))
		b.sendMarkdown(chatID, text, removeUserKeyboard(user.ID))
	}
}

// listPendingUsers sends one decidable entry per pending request.
func (b *Bot) listPendingUsers(ctx context.Context, chatID int64) {
	users, err := b.access.ListPending(ctx)
	if err != nil {
		b.replyError(chatID, err)
		return
	}
	if len(users) == 0 {
		b.send(chatID, msgNoPendingUsers)
		return
	}

	b.send(chatID, msgPendingHeader)
	for _, user := range users {
		text := fmt.Sprintf("**ID:** `%d` | **Имя:** %s | **Username:** @%s",
			user.ID, orNA(user.FirstName), escapeUsername(user.Username))
		b.sendMarkdown(chatID, text, approvalKeyboard(user.ID))
	}
}

// sendInfo shows the library overview screen.
func (b *Bot) sendInfo(ctx context.Context, chatID, userID int64) {
	b.logger.Info("info_requested", slog.Int64("user_id", userID))

	userCount, err := b.access.CountApproved(ctx)
	if err != nil {
		b.replyError(chatID, err)
		return
	}

	updatedAt := "неизвестно"
	if stat, err := os.Stat(b.cfg.INPXFile); err == nil {
		updatedAt = stat.ModTime().Format("02.01.2006")
	}

	text := fmt.Sprintf(
		"Привет! \nЯ бот для поиска и скачивания книг из библиотеки LibRusEc.\n\n"+
			"Библиотека [LibRusEc](http://lib.rus.ec/) - одна из самых больших сетевых библиотек художественной литературы на русском языке.\n\n"+
			"Формат книг: FB2 \n"+
			"Сейчас книг в базе: %d\n"+
			"Общий объем библиотеки: %.2f ГБ\n"+
			"Дата последнего обновления базы: **%s**\n"+
			"Всего пользователей бота: %d\n\n"+
			"Чтобы начать поиск книги, нажми на одну из кнопок поиска ниже. \n\n"+
			"Чем открыть файл FB2 можешь узнать тут: /reader \n\n"+
			"Также можно отправить боту свой файл `.fb2` или `.fb2.zip` и читать его прямо в чате.",
		b.catalog.Len(), dirSizeGB(b.cfg.BooksDir), updatedAt, userCount,
	)
	b.sendMarkdown(chatID, text, b.menuFor(userID))
}

// dirSizeGB walks the library directory and sums file sizes. Errors yield
// zero rather than failing the info screen.
func dirSizeGB(path string) float64 {
	var total int64
	_ = filepath.WalkDir(path, func(_ string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if info, err := d.Info(); err == nil && info.Mode().IsRegular() {
			total += info.Size()
		}
		return nil
	})
	return float64(total) / (1024 * 1024 * 1024)
}

// escapeUsername keeps Telegram usernames from being eaten as Markdown.
func escapeUsername(username string) string {
	if username == "" {
		return "N/A"
	}
	return strings.ReplaceAll(username, "_", `\_`)
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

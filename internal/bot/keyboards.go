package bot

import (
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/pkruglov/chitalka/internal/reader"
)

// Reply menu button labels. Text handlers match on these exact strings.
const (
	btnInfo             = "Инфо"
	btnMyBooks          = "Мои книги"
	btnSmartSearch      = "Умный поиск"
	btnSequentialSearch = "Последовательный поиск"
	btnListUsers        = "Список пользователей"
	btnListPending      = "Заявки на одобрение"
)

var userMenu = tgbotapi.NewReplyKeyboard(
	tgbotapi.NewKeyboardButtonRow(
		tgbotapi.NewKeyboardButton(btnInfo),
		tgbotapi.NewKeyboardButton(btnMyBooks),
	),
	tgbotapi.NewKeyboardButtonRow(
		tgbotapi.NewKeyboardButton(btnSmartSearch),
		tgbotapi.NewKeyboardButton(btnSequentialSearch),
	),
)

var adminMenu = tgbotapi.NewReplyKeyboard(
	tgbotapi.NewKeyboardButtonRow(
		tgbotapi.NewKeyboardButton(btnInfo),
		tgbotapi.NewKeyboardButton(btnMyBooks),
	),
	tgbotapi.NewKeyboardButtonRow(
		tgbotapi.NewKeyboardButton(btnSmartSearch),
		tgbotapi.NewKeyboardButton(btnSequentialSearch),
	),
	tgbotapi.NewKeyboardButtonRow(
		tgbotapi.NewKeyboardButton(btnListUsers),
		tgbotapi.NewKeyboardButton(btnListPending),
	),
)

func init() {
	userMenu.ResizeKeyboard = true
	adminMenu.ResizeKeyboard = true
}

func (b *Bot) menuFor(userID int64) tgbotapi.ReplyKeyboardMarkup {
	if b.access.IsAdmin(userID) {
		return adminMenu
	}
	return userMenu
}

// readingKeyboard is the in-page navigation row. Boundary buttons are
// omitted rather than disabled.
func readingKeyboard(view *reader.View) tgbotapi.InlineKeyboardMarkup {
	var row []tgbotapi.InlineKeyboardButton
	if view.HasPrev {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData("⬅️ Назад", callbackData(ActionPrevPage, view.ShortID)))
	}
	row = append(row, tgbotapi.NewInlineKeyboardButtonData("📚 Мои книги", callbackData(ActionMyBooks, "")))
	if view.HasNext {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData("➡️ Далее", callbackData(ActionNextPage, view.ShortID)))
	}
	return tgbotapi.NewInlineKeyboardMarkup(row)
}

func bookActionsKeyboard(shortID string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📕 Читать", callbackData(ActionReadBook, shortID)),
			tgbotapi.NewInlineKeyboardButtonData("➡️ Страница", callbackData(ActionGotoPage, shortID)),
			tgbotapi.NewInlineKeyboardButtonData("❌ Удалить", callbackData(ActionDeleteBook, shortID)),
		),
	)
}

func addBookKeyboard(libID string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📕 Читать книгу", callbackData(ActionAddBook, libID)),
		),
	)
}

func approvalKeyboard(userID int64) tgbotapi.InlineKeyboardMarkup {
	arg := strconv.FormatInt(userID, 10)
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Одобрить", callbackData(ActionApprove, arg)),
			tgbotapi.NewInlineKeyboardButtonData("❌ Отклонить", callbackData(ActionReject, arg)),
		),
	)
}

func removeUserKeyboard(userID int64) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("❌ Удалить", callbackData(ActionRemoveUser, strconv.FormatInt(userID, 10))),
		),
	)
}

// resultsKeyboard numbers each displayed book for download, five buttons
// per row, with a navigation row underneath. Unavailable directions show
// an inert placeholder so the row keeps its shape.
func resultsKeyboard(libIDs []string, firstIndex, currentPage, totalPages int) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton

	const buttonsPerRow = 5
	var row []tgbotapi.InlineKeyboardButton
	for i, libID := range libIDs {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(
			strconv.Itoa(firstIndex+i+1), callbackData(ActionDownload, libID)))
		if len(row) == buttonsPerRow {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}

	blocked := tgbotapi.NewInlineKeyboardButtonData("⛔", callbackData(ActionIgnore, ""))
	nav := make([]tgbotapi.InlineKeyboardButton, 4)
	nav[0], nav[1], nav[2], nav[3] = blocked, blocked, blocked, blocked
	if currentPage > 0 {
		nav[0] = tgbotapi.NewInlineKeyboardButtonData("⏪ Начало", callbackData(ActionResultsNav, "start"))
		nav[1] = tgbotapi.NewInlineKeyboardButtonData("◀️ Назад", callbackData(ActionResultsNav, "prev"))
	}
	if currentPage < totalPages-1 {
		nav[2] = tgbotapi.NewInlineKeyboardButtonData("Вперёд ▶️", callbackData(ActionResultsNav, "next"))
		nav[3] = tgbotapi.NewInlineKeyboardButtonData("Конец ⏩", callbackData(ActionResultsNav, "end"))
	}
	rows = append(rows, nav)

	return tgbotapi.InlineKeyboardMarkup{InlineKeyboard: rows}
}

package bot

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/pkruglov/chitalka/internal/catalog"
)

func (b *Bot) startSmartSearch(ctx context.Context, chatID, userID int64) {
	b.logger.Info("smart_search_started", slog.Int64("user_id", userID))

	if err := b.dialogs.SetDialog(ctx, userID, &Dialog{Step: StepSmartQuery}); err != nil {
		b.replyError(chatID, err)
		return
	}
	b.sendMarkdown(chatID, msgSmartSearch, b.menuFor(userID))
}

func (b *Bot) startSequentialSearch(ctx context.Context, chatID, userID int64) {
	b.logger.Info("sequential_search_started", slog.Int64("user_id", userID))

	if err := b.dialogs.SetDialog(ctx, userID, &Dialog{Step: StepSeqAuthor}); err != nil {
		b.replyError(chatID, err)
		return
	}
	b.sendMarkdown(chatID, msgSeqSearchAuthor, b.menuFor(userID))
}

// handleSequentialStep records the current criterion and prompts for the
// next one; the final step runs the search.
func (b *Bot) handleSequentialStep(ctx context.Context, e TextEvent, dialog *Dialog) {
	value := skipValue(e.Text)

	var prompt string
	switch dialog.Step {
	case StepSeqAuthor:
		dialog.Filter.Author = value
		dialog.Step = StepSeqSeries
		prompt = msgSeqSearchSeries
	case StepSeqSeries:
		dialog.Filter.Series = value
		dialog.Step = StepSeqSerNo
		prompt = msgSeqSearchSerNo
	case StepSeqSerNo:
		dialog.Filter.SeriesNumber = value
		dialog.Step = StepSeqYear
		prompt = msgSeqSearchYear
	case StepSeqYear:
		dialog.Filter.Date = value
		dialog.Step = StepSeqTitle
		prompt = msgSeqSearchTitle
	case StepSeqTitle:
		dialog.Filter.Title = value
		b.finishSequentialSearch(ctx, e.ChatID, e.User.ID, dialog.Filter)
		return
	}

	if err := b.dialogs.SetDialog(ctx, e.User.ID, dialog); err != nil {
		b.replyError(e.ChatID, err)
		return
	}
	b.sendMarkdown(e.ChatID, prompt, b.menuFor(e.User.ID))
}

func (b *Bot) finishSequentialSearch(ctx context.Context, chatID, userID int64, filter catalog.Filter) {
	if err := b.dialogs.ClearDialog(ctx, userID); err != nil {
		b.replyError(chatID, err)
		return
	}

	if filter.IsEmpty() {
		b.sendMarkdown(chatID, msgSearchNoCriteria, b.menuFor(userID))
		return
	}

	b.logger.Info("sequential_search_run",
		slog.Int64("user_id", userID),
		slog.String("author", filter.Author),
		slog.String("title", filter.Title),
		slog.String("series", filter.Series),
	)

	b.send(chatID, msgSearchRunning)
	b.publishResults(ctx, chatID, userID, b.catalog.Search(filter))
}

func (b *Bot) handleSmartQuery(ctx context.Context, e TextEvent) {
	if err := b.dialogs.ClearDialog(ctx, e.User.ID); err != nil {
		b.replyError(e.ChatID, err)
		return
	}

	query := strings.TrimSpace(e.Text)
	if query == "" || query == "-" {
		b.sendMarkdown(e.ChatID, msgSearchNoQuery, b.menuFor(e.User.ID))
		return
	}

	b.logger.Info("smart_search_run",
		slog.Int64("user_id", e.User.ID),
		slog.String("query", query),
	)

	b.send(e.ChatID, fmt.Sprintf("Выполняю умный поиск по запросу: %q...", query))
	b.publishResults(ctx, e.ChatID, e.User.ID, b.catalog.SearchSmart(query))
}

// publishResults caches the found set and shows its first page.
func (b *Bot) publishResults(ctx context.Context, chatID, userID int64, books []*catalog.Book) {
	libIDs := make([]string, 0, len(books))
	for _, book := range books {
		libIDs = append(libIDs, book.LibID)
	}

	if err := b.dialogs.SaveResults(ctx, userID, libIDs); err != nil {
		b.replyError(chatID, err)
		return
	}
	b.displayResults(ctx, chatID, userID)
}

// displayResults renders one page of the cached result set: a numbered
// HTML listing plus download and navigation buttons.
func (b *Bot) displayResults(ctx context.Context, chatID, userID int64) {
	set, err := b.dialogs.Results(ctx, userID)
	if err != nil {
		b.replyError(chatID, err)
		return
	}
	if set == nil || len(set.LibIDs) == 0 {
		b.sendMarkdown(chatID, msgSearchNoResults, b.menuFor(userID))
		return
	}

	perPage := b.cfg.ResultsPerPage
	total := len(set.LibIDs)
	totalPages := (total + perPage - 1) / perPage

	page := set.Page
	if page < 0 {
		page = 0
	}
	if page > totalPages-1 {
		page = totalPages - 1
	}
	start := page * perPage
	end := start + perPage
	if end > total {
		end = total
	}
	pageIDs := set.LibIDs[start:end]

	var text strings.Builder
	fmt.Fprintf(&text, "Найдено %d книг. Страница %d из %d:\n\n", total, page+1, totalPages)
	for i, libID := range pageIDs {
		book, ok := b.catalog.FindByLibID(libID)
		if !ok {
			continue
		}
		fmt.Fprintf(&text, "%d. <a href='https://lib.rus.ec/b/%s'>%s - \"%s\"</a>%s%s\n",
			start+i+1, book.LibID,
			html.EscapeString(book.Author), html.EscapeString(book.Title),
			seriesSuffix(book), sizeSuffix(book))
	}
	text.WriteString("\nДля скачки выбранной книги, нажмите кнопку с ее номером.")

	msg := tgbotapi.NewMessage(chatID, text.String())
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true
	msg.ReplyMarkup = resultsKeyboard(pageIDs, start, page, totalPages)
	b.sendMessage(msg)
}

func seriesSuffix(book *catalog.Book) string {
	if book.Series == "" {
		return ""
	}
	return fmt.Sprintf(" (Серия: %s, #%s)", html.EscapeString(book.Series), html.EscapeString(book.SeriesNo))
}

func sizeSuffix(book *catalog.Book) string {
	if book.Size <= 0 {
		return ""
	}
	return fmt.Sprintf(" (%.2f МБ)", float64(book.Size)/(1024*1024))
}

// handleResultsNav moves the cached result view and re-sends the listing.
func (b *Bot) handleResultsNav(ctx context.Context, e CallbackEvent) {
	set, err := b.dialogs.Results(ctx, e.User.ID)
	if err != nil || set == nil {
		b.answerCallback(e.CallbackID, msgResultsExpired)
		return
	}

	perPage := b.cfg.ResultsPerPage
	totalPages := (len(set.LibIDs) + perPage - 1) / perPage

	page := set.Page
	switch e.Arg {
	case "start":
		page = 0
	case "prev":
		if page > 0 {
			page--
		}
	case "next":
		if page < totalPages-1 {
			page++
		}
	case "end":
		page = totalPages - 1
	}

	if err := b.dialogs.SetResultsPage(ctx, e.User.ID, page); err != nil {
		b.answerCallback(e.CallbackID, "")
		b.replyError(e.ChatID, err)
		return
	}

	b.deleteMessage(e.ChatID, e.MessageID)
	b.displayResults(ctx, e.ChatID, e.User.ID)
	b.answerCallback(e.CallbackID, "")
}

// handleDownload extracts a catalog book and sends it as a document.
func (b *Bot) handleDownload(ctx context.Context, e CallbackEvent) {
	b.answerCallback(e.CallbackID, msgDownloadStarting)
	b.sendCatalogBook(ctx, e.ChatID, e.Arg)
}

// handleAddBook pulls a catalog book straight into the reader.
func (b *Bot) handleAddBook(ctx context.Context, e CallbackEvent) {
	book, ok := b.catalog.FindByLibID(e.Arg)
	if !ok {
		b.answerCallback(e.CallbackID, msgBookNotFound)
		return
	}

	data, filename, err := b.catalog.Extract(book)
	if err != nil {
		b.logger.Error("extract_failed",
			slog.String("lib_id", book.LibID),
			slog.Any("error", err),
		)
		b.answerCallback(e.CallbackID, "")
		b.send(e.ChatID, msgAddBookError)
		return
	}

	payload, err := catalog.UnwrapFB2(data, filename)
	if err != nil {
		b.answerCallback(e.CallbackID, "")
		b.replyError(e.ChatID, err)
		return
	}

	b.answerCallback(e.CallbackID, "")
	b.beginReading(ctx, e.ChatID, e.User.ID, payload)
}

// handleCatalogLink serves a pasted lib.rus.ec book link. The per-user
// guard drops duplicate link messages while a transfer is in flight.
func (b *Bot) handleCatalogLink(ctx context.Context, chatID, userID int64, libID string) {
	acquired, err := b.dialogs.AcquireLinkGuard(ctx, userID)
	if err != nil {
		b.replyError(chatID, err)
		return
	}
	if !acquired {
		return
	}
	defer b.dialogs.ReleaseLinkGuard(ctx, userID)

	book, ok := b.catalog.FindByLibID(libID)
	if !ok {
		b.sendMarkdown(chatID, msgBookNotFound, b.menuFor(userID))
		return
	}

	b.logger.Info("catalog_link_received",
		slog.Int64("user_id", userID),
		slog.String("lib_id", libID),
	)

	b.send(chatID, fmt.Sprintf("Начинаю скачивание книги: %s...", book.Title))
	b.sendCatalogBook(ctx, chatID, libID)
}

// sendCatalogBook extracts the archived payload and delivers it with a
// metadata caption and a "read here" shortcut.
func (b *Bot) sendCatalogBook(ctx context.Context, chatID int64, libID string) {
	book, ok := b.catalog.FindByLibID(libID)
	if !ok {
		b.send(chatID, msgBookNotFound)
		return
	}

	data, filename, err := b.catalog.Extract(book)
	if err != nil {
		b.logger.Error("extract_failed",
			slog.String("lib_id", book.LibID),
			slog.Any("error", err),
		)
		b.send(chatID, msgDownloadError)
		return
	}

	caption := fmt.Sprintf(
		"Автор: %s\nНазвание книги: %s\nСерия: %s\nНомер в серии: %s\nСсылка на сайт: [link](http://lib.rus.ec/b/%s)",
		book.Author, book.Title, book.Series, book.SeriesNo, book.LibID,
	)

	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{Name: filename, Bytes: data})
	doc.Caption = caption
	doc.ParseMode = tgbotapi.ModeMarkdown
	if _, err := b.api.Send(doc); err != nil {
		b.logger.Error("document_send_failed",
			slog.Int64("chat_id", chatID),
			slog.String("lib_id", book.LibID),
			slog.Any("error", err),
		)
		b.send(chatID, msgSendError)
		return
	}

	b.logger.Info("book_delivered",
		slog.Int64("chat_id", chatID),
		slog.String("lib_id", book.LibID),
		slog.String("title", book.Title),
	)

	followup := tgbotapi.NewMessage(chatID, msgBookSent)
	followup.ReplyMarkup = addBookKeyboard(book.LibID)
	b.sendMessage(followup)
}

package bot

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/pkruglov/chitalka/internal/catalog"
	"github.com/pkruglov/chitalka/internal/platform/apperr"
	"github.com/pkruglov/chitalka/internal/reader"
)

// handleDocument ingests an uploaded .fb2 or .fb2.zip into the reader.
func (b *Bot) handleDocument(ctx context.Context, e DocumentEvent) {
	if !b.requireApproved(ctx, e.User.ID) {
		return
	}

	lower := strings.ToLower(e.FileName)
	if !strings.HasSuffix(lower, ".fb2") && !strings.HasSuffix(lower, ".fb2.zip") && !strings.HasSuffix(lower, ".zip") {
		b.sendMarkdownV2(e.ChatID, msgUnsupportedFile)
		return
	}

	b.logger.Info("document_received",
		slog.Int64("user_id", e.User.ID),
		slog.String("file_name", e.FileName),
	)

	data, err := b.downloadFile(ctx, e.FileID)
	if err != nil {
		b.logger.Error("file_download_failed", slog.Any("error", err))
		b.sendMarkdownV2(e.ChatID, msgFileDownloadError)
		return
	}

	payload, err := catalog.UnwrapFB2(data, e.FileName)
	if err != nil {
		if apperr.IsCode(err, "MALFORMED_ARCHIVE") {
			b.sendMarkdownV2(e.ChatID, msgBrokenZip)
		} else {
			b.sendMarkdownV2(e.ChatID, msgNoFB2InArchive)
		}
		return
	}

	b.beginReading(ctx, e.ChatID, e.User.ID, payload)
}

// beginReading starts a reader session from raw FB2 bytes and shows the
// first page.
func (b *Bot) beginReading(ctx context.Context, chatID, userID int64, payload []byte) {
	view, err := b.reader.BeginReading(ctx, userID, payload)
	if err != nil {
		b.replyError(chatID, err)
		return
	}
	b.sendMarkdownV2(chatID, view.Text, readingKeyboard(view))
}

// handleTurnPage advances or retreats a session. A boundary yields only a
// toast; otherwise the source message is edited in place.
func (b *Bot) handleTurnPage(ctx context.Context, e CallbackEvent, forward bool) {
	var view *reader.View
	var err error
	if forward {
		view, err = b.reader.Advance(ctx, e.User.ID, e.Arg)
	} else {
		view, err = b.reader.Retreat(ctx, e.User.ID, e.Arg)
	}
	if err != nil {
		b.answerCallback(e.CallbackID, "")
		b.replyError(e.ChatID, err)
		return
	}

	if view.Notice != "" {
		b.answerCallback(e.CallbackID, view.Notice)
		return
	}

	keyboard := readingKeyboard(view)
	b.editMarkdownV2(e.ChatID, e.MessageID, view.Text, &keyboard)
	b.answerCallback(e.CallbackID, "")
}

// handleReadBook resumes a stored session at its saved page.
func (b *Bot) handleReadBook(ctx context.Context, e CallbackEvent) {
	view, err := b.reader.Open(ctx, e.User.ID, e.Arg)
	if err != nil {
		b.answerCallback(e.CallbackID, msgBookNotFound)
		return
	}

	keyboard := readingKeyboard(view)
	b.editMarkdownV2(e.ChatID, e.MessageID, view.Text, &keyboard)
	b.answerCallback(e.CallbackID, "")
}

// handleGotoPageRequest starts the page-number conversation for a book.
func (b *Bot) handleGotoPageRequest(ctx context.Context, e CallbackEvent) {
	// Verify the reference before asking for input.
	if _, err := b.reader.Open(ctx, e.User.ID, e.Arg); err != nil {
		b.answerCallback(e.CallbackID, msgBookNotFound)
		return
	}

	dialog := &Dialog{Step: StepGotoPage, BookID: e.Arg}
	if err := b.dialogs.SetDialog(ctx, e.User.ID, dialog); err != nil {
		b.answerCallback(e.CallbackID, "")
		b.replyError(e.ChatID, err)
		return
	}

	b.answerCallback(e.CallbackID, "")
	b.send(e.ChatID, msgGotoPagePrompt)
}

// handleGotoPageInput consumes the typed page number.
func (b *Bot) handleGotoPageInput(ctx context.Context, e TextEvent, dialog *Dialog) {
	if err := b.dialogs.ClearDialog(ctx, e.User.ID); err != nil {
		b.replyError(e.ChatID, err)
		return
	}

	page, err := strconv.Atoi(strings.TrimSpace(e.Text))
	if err != nil {
		b.send(e.ChatID, msgGotoPageNotNum)
		return
	}

	view, err := b.reader.GoToPage(ctx, e.User.ID, dialog.BookID, page)
	if err != nil {
		b.replyError(e.ChatID, err)
		return
	}
	b.sendMarkdownV2(e.ChatID, view.Text, readingKeyboard(view))
}

func (b *Bot) handleDeleteBook(ctx context.Context, e CallbackEvent) {
	if err := b.reader.DeleteBook(ctx, e.User.ID, e.Arg); err != nil {
		b.answerCallback(e.CallbackID, msgBookNotFound)
		return
	}
	b.sendMarkdownV2(e.ChatID, msgBookDeleted)
	b.answerCallback(e.CallbackID, "")
}

// showMyBooks sends the saved-books listing: a header message followed by
// one actionable message per book. When editMessageID is non-zero the
// header replaces that message instead of adding a new one.
func (b *Bot) showMyBooks(ctx context.Context, chatID, userID int64, editMessageID int) {
	books, err := b.reader.ListBooks(ctx, userID)
	if err != nil {
		b.replyError(chatID, err)
		return
	}

	if len(books) == 0 {
		if editMessageID != 0 {
			b.editMarkdownV2(chatID, editMessageID, msgNoBooks, nil)
		} else {
			b.sendMarkdownV2(chatID, msgNoBooks)
		}
		return
	}

	if editMessageID != 0 {
		b.editMarkdownV2(chatID, editMessageID, msgMyBooksHeader, nil)
	} else {
		b.sendMarkdownV2(chatID, msgMyBooksHeader)
	}

	for _, summary := range books {
		b.sendMarkdownV2(chatID, reader.RenderSummary(summary), bookActionsKeyboard(summary.ShortID()))
	}
}

func (b *Bot) handleMyBooksCallback(ctx context.Context, e CallbackEvent) {
	b.showMyBooks(ctx, e.ChatID, e.User.ID, e.MessageID)
	b.answerCallback(e.CallbackID, "")
}

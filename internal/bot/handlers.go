package bot

import (
	"context"
	"regexp"
	"strings"
)

// delete_<full book identity> commands come from the /mybooks fallback UI.
var deleteCommandRe = regexp.MustCompile(`^delete_([a-f0-9]{64})$`)

// librusLinkRe captures the library id out of a pasted catalog link.
var librusLinkRe = regexp.MustCompile(`lib\.rus\.ec/b/(\d+)`)

func (b *Bot) handleCommand(ctx context.Context, e CommandEvent) {
	if e.Command == "start" {
		b.handleStart(ctx, e)
		return
	}

	if !b.requireApproved(ctx, e.User.ID) {
		return
	}

	switch {
	case e.Command == "info":
		b.sendInfo(ctx, e.ChatID, e.User.ID)
	case e.Command == "reader":
		b.sendMarkdown(e.ChatID, msgReaderHelp, b.menuFor(e.User.ID))
	case e.Command == "mybooks":
		b.showMyBooks(ctx, e.ChatID, e.User.ID, 0)
	default:
		if m := deleteCommandRe.FindStringSubmatch(e.Command); m != nil {
			if err := b.reader.DeleteBook(ctx, e.User.ID, m[1]); err != nil {
				b.replyError(e.ChatID, err)
				return
			}
			b.sendMarkdownV2(e.ChatID, msgBookDeleted)
		}
	}
}

func (b *Bot) handleText(ctx context.Context, e TextEvent) {
	if !b.requireApproved(ctx, e.User.ID) {
		return
	}

	if b.isMenuButton(e.Text, e.User.ID) {
		b.handleMenuButton(ctx, e)
		return
	}

	if m := librusLinkRe.FindStringSubmatch(e.Text); m != nil {
		b.handleCatalogLink(ctx, e.ChatID, e.User.ID, m[1])
		return
	}

	dialog, err := b.dialogs.Dialog(ctx, e.User.ID)
	if err != nil {
		b.replyError(e.ChatID, err)
		return
	}
	if dialog != nil {
		b.continueDialog(ctx, e, dialog)
	}
}

func (b *Bot) isMenuButton(text string, userID int64) bool {
	switch text {
	case btnInfo, btnMyBooks, btnSmartSearch, btnSequentialSearch:
		return true
	case btnListUsers, btnListPending:
		return b.access.IsAdmin(userID)
	}
	return false
}

// handleMenuButton runs the pressed reply-menu button. A button press wins
// over any conversation in progress, which is abandoned with a notice.
func (b *Bot) handleMenuButton(ctx context.Context, e TextEvent) {
	dialog, err := b.dialogs.Dialog(ctx, e.User.ID)
	if err == nil && dialog != nil {
		if err := b.dialogs.ClearDialog(ctx, e.User.ID); err == nil {
			b.send(e.ChatID, msgSearchAborted)
		}
	}

	switch e.Text {
	case btnInfo:
		b.sendInfo(ctx, e.ChatID, e.User.ID)
	case btnMyBooks:
		b.showMyBooks(ctx, e.ChatID, e.User.ID, 0)
	case btnSmartSearch:
		b.startSmartSearch(ctx, e.ChatID, e.User.ID)
	case btnSequentialSearch:
		b.startSequentialSearch(ctx, e.ChatID, e.User.ID)
	case btnListUsers:
		b.listApprovedUsers(ctx, e.ChatID)
	case btnListPending:
		b.listPendingUsers(ctx, e.ChatID)
	}
}

func (b *Bot) handleCallback(ctx context.Context, e CallbackEvent) {
	switch e.Action {
	case ActionApprove, ActionReject, ActionRemoveUser:
		b.handleAdminCallback(ctx, e)
		return
	case ActionIgnore:
		b.answerCallback(e.CallbackID, "")
		return
	}

	if !b.requireApproved(ctx, e.User.ID) {
		b.answerCallback(e.CallbackID, msgNoAccess)
		return
	}

	switch e.Action {
	case ActionNextPage:
		b.handleTurnPage(ctx, e, true)
	case ActionPrevPage:
		b.handleTurnPage(ctx, e, false)
	case ActionReadBook:
		b.handleReadBook(ctx, e)
	case ActionGotoPage:
		b.handleGotoPageRequest(ctx, e)
	case ActionDeleteBook:
		b.handleDeleteBook(ctx, e)
	case ActionMyBooks:
		b.handleMyBooksCallback(ctx, e)
	case ActionDownload:
		b.handleDownload(ctx, e)
	case ActionAddBook:
		b.handleAddBook(ctx, e)
	case ActionResultsNav:
		b.handleResultsNav(ctx, e)
	}
}

func (b *Bot) continueDialog(ctx context.Context, e TextEvent, dialog *Dialog) {
	switch dialog.Step {
	case StepGotoPage:
		b.handleGotoPageInput(ctx, e, dialog)
	case StepSeqAuthor, StepSeqSeries, StepSeqSerNo, StepSeqYear, StepSeqTitle:
		b.handleSequentialStep(ctx, e, dialog)
	case StepSmartQuery:
		b.handleSmartQuery(ctx, e)
	}
}

// skipValue maps the "-" skip marker to an empty criterion.
func skipValue(text string) string {
	text = strings.TrimSpace(text)
	if text == "-" {
		return ""
	}
	return text
}

package bot

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Inbound updates are classified into a closed set of event types before
// any handler sees them, so handlers never branch on raw update shape.

// Event is one classified inbound update.
type Event interface {
	isEvent()
}

// CommandEvent is a slash command, e.g. /start or /mybooks.
type CommandEvent struct {
	User    *tgbotapi.User
	ChatID  int64
	Command string
	Args    string
}

// TextEvent is a plain text message (button presses included).
type TextEvent struct {
	User   *tgbotapi.User
	ChatID int64
	Text   string
}

// DocumentEvent is a file upload.
type DocumentEvent struct {
	User     *tgbotapi.User
	ChatID   int64
	FileID   string
	FileName string
}

// CallbackEvent is an inline keyboard press.
type CallbackEvent struct {
	User       *tgbotapi.User
	ChatID     int64
	MessageID  int
	CallbackID string
	Action     CallbackAction
	Arg        string
}

func (CommandEvent) isEvent()  {}
func (TextEvent) isEvent()     {}
func (DocumentEvent) isEvent() {}
func (CallbackEvent) isEvent() {}

// CallbackAction is the verb part of inline callback data.
type CallbackAction string

const (
	ActionNextPage   CallbackAction = "next_page"
	ActionPrevPage   CallbackAction = "prev_page"
	ActionReadBook   CallbackAction = "read_book"
	ActionGotoPage   CallbackAction = "goto_page"
	ActionDeleteBook CallbackAction = "delete_book"
	ActionMyBooks    CallbackAction = "my_books"
	ActionDownload   CallbackAction = "download"
	ActionAddBook    CallbackAction = "add_book"
	ActionResultsNav CallbackAction = "page"
	ActionApprove    CallbackAction = "approve"
	ActionReject     CallbackAction = "reject"
	ActionRemoveUser CallbackAction = "remove_user"
	ActionIgnore     CallbackAction = "ignore"
)

var knownActions = map[CallbackAction]bool{
	ActionNextPage:   true,
	ActionPrevPage:   true,
	ActionReadBook:   true,
	ActionGotoPage:   true,
	ActionDeleteBook: true,
	ActionMyBooks:    true,
	ActionDownload:   true,
	ActionAddBook:    true,
	ActionResultsNav: true,
	ActionApprove:    true,
	ActionReject:     true,
	ActionRemoveUser: true,
	ActionIgnore:     true,
}

// ClassifyUpdate maps a raw update onto an Event. Updates the bot does not
// care about (edits, channel posts, stickers) yield nil.
func ClassifyUpdate(update tgbotapi.Update) Event {
	switch {
	case update.CallbackQuery != nil:
		query := update.CallbackQuery
		if query.Message == nil {
			return nil
		}
		action, arg, err := parseCallback(query.Data)
		if err != nil {
			return nil
		}
		return CallbackEvent{
			User:       query.From,
			ChatID:     query.Message.Chat.ID,
			MessageID:  query.Message.MessageID,
			CallbackID: query.ID,
			Action:     action,
			Arg:        arg,
		}

	case update.Message != nil:
		msg := update.Message
		switch {
		case msg.Document != nil:
			return DocumentEvent{
				User:     msg.From,
				ChatID:   msg.Chat.ID,
				FileID:   msg.Document.FileID,
				FileName: msg.Document.FileName,
			}
		case msg.IsCommand():
			return CommandEvent{
				User:    msg.From,
				ChatID:  msg.Chat.ID,
				Command: msg.Command(),
				Args:    msg.CommandArguments(),
			}
		case msg.Text != "":
			return TextEvent{
				User:   msg.From,
				ChatID: msg.Chat.ID,
				Text:   msg.Text,
			}
		}
	}
	return nil
}

// parseCallback splits callback data "verb" or "verb:arg" and rejects
// unknown verbs.
func parseCallback(data string) (CallbackAction, string, error) {
	verb, arg, _ := strings.Cut(data, ":")
	action := CallbackAction(verb)
	if !knownActions[action] {
		return "", "", fmt.Errorf("bot: unknown callback %q", data)
	}
	return action, arg, nil
}

func callbackData(action CallbackAction, arg string) string {
	if arg == "" {
		return string(action)
	}
	return string(action) + ":" + arg
}

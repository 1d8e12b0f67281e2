package reader

import (
	"context"
	"errors"
	"log/slog"

	"github.com/pkruglov/chitalka/internal/fb2"
	"github.com/pkruglov/chitalka/internal/platform/apperr"
	"github.com/pkruglov/chitalka/internal/platform/dberr"
)

// Boundary notices shown as callback toasts when navigation is a no-op.
const (
	NoticeFirstPage = "Вы на первой странице."
	NoticeLastPage  = "Вы на последней странице."
)

// View is what one reader operation hands the presentation layer: the
// rendered page plus which navigation actions are currently available.
type View struct {
	Text        string
	BookID      string
	ShortID     string
	CurrentPage int // 0-based
	TotalPages  int
	HasPrev     bool
	HasNext     bool

	// Notice is set instead of a state change when navigation hits a
	// boundary ("already at the first/last page").
	Notice string
}

// Service orchestrates parsing, pagination, and session persistence.
type Service struct {
	repo     Repository
	pageSize int
	logger   *slog.Logger
}

// NewService creates the reader controller. pageSize is the pagination
// budget pinned into every newly created session.
func NewService(repo Repository, pageSize int, logger *slog.Logger) *Service {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	return &Service{repo: repo, pageSize: pageSize, logger: logger}
}

// BeginReading ingests a raw FB2 document for the user: parse, paginate,
// persist at page 0, and render the first page.
func (service *Service) BeginReading(ctx context.Context, userID int64, raw []byte) (*View, error) {
	doc, err := fb2.Parse(raw)
	if err != nil {
		return nil, apperr.UnreadableDocument(err)
	}
	if doc.Body == "" {
		return nil, apperr.UnreadableDocument(errors.New("document has no readable body"))
	}

	pages := SplitPages(doc.Body, service.pageSize)
	if len(pages) == 0 {
		return nil, apperr.UnreadableDocument(errors.New("document paginated to zero pages"))
	}

	session := &Session{
		UserID:       userID,
		BookID:       Identity(userID, doc.Title, doc.Author, doc.Series, doc.SeriesNumber),
		Title:        doc.Title,
		Author:       doc.Author,
		Series:       doc.Series,
		SeriesNumber: doc.SeriesNumber,
		Content:      doc.Body,
		CurrentPage:  0,
		TotalPages:   len(pages),
		PageSize:     service.pageSize,
	}

	if err := service.repo.Save(ctx, session); err != nil {
		return nil, err
	}

	service.logger.Info("reading_started",
		slog.Int64("user_id", userID),
		slog.String("book_id", session.ShortID()),
		slog.String("title", session.Title),
		slog.Int("total_pages", session.TotalPages),
	)

	return service.view(session, headerBegin), nil
}

// Open resumes an existing session at its stored page.
func (service *Service) Open(ctx context.Context, userID int64, shortID string) (*View, error) {
	session, err := service.lookup(ctx, userID, shortID)
	if err != nil {
		return nil, err
	}
	return service.view(session, headerResume), nil
}

// GoToPage jumps to an explicit page. requestedPage is 1-based, as typed by
// the user; the stored index is 0-based.
func (service *Service) GoToPage(ctx context.Context, userID int64, shortID string, requestedPage int) (*View, error) {
	session, err := service.lookup(ctx, userID, shortID)
	if err != nil {
		return nil, err
	}

	page := requestedPage - 1
	if page < 0 || page >= session.TotalPages {
		return nil, apperr.InvalidPageNumber(session.TotalPages)
	}

	return service.moveTo(ctx, session, page)
}

// Advance moves one page forward, or reports the last-page notice.
func (service *Service) Advance(ctx context.Context, userID int64, shortID string) (*View, error) {
	session, err := service.lookup(ctx, userID, shortID)
	if err != nil {
		return nil, err
	}

	if session.CurrentPage >= session.TotalPages-1 {
		view := service.view(session, headerNone)
		view.Notice = NoticeLastPage
		return view, nil
	}

	return service.moveTo(ctx, session, session.CurrentPage+1)
}

// Retreat moves one page backward, or reports the first-page notice.
func (service *Service) Retreat(ctx context.Context, userID int64, shortID string) (*View, error) {
	session, err := service.lookup(ctx, userID, shortID)
	if err != nil {
		return nil, err
	}

	if session.CurrentPage <= 0 {
		view := service.view(session, headerNone)
		view.Notice = NoticeFirstPage
		return view, nil
	}

	return service.moveTo(ctx, session, session.CurrentPage-1)
}

// ListBooks returns the user's sessions, most recently touched first.
func (service *Service) ListBooks(ctx context.Context, userID int64) ([]*Summary, error) {
	return service.repo.ListByUser(ctx, userID)
}

// DeleteBook removes the session referenced by a short id.
func (service *Service) DeleteBook(ctx context.Context, userID int64, shortID string) error {
	bookID, err := service.repo.ResolveShortID(ctx, userID, shortID)
	if err != nil {
		if errors.Is(err, dberr.ErrNoRows) {
			return apperr.SessionNotFound()
		}
		return err
	}

	if err := service.repo.Delete(ctx, userID, bookID); err != nil {
		return err
	}

	service.logger.Info("book_deleted",
		slog.Int64("user_id", userID),
		slog.String("book_id", ShortID(bookID)),
	)
	return nil
}

// lookup resolves a short id and loads the session, mapping absence to the
// session-not-found condition.
func (service *Service) lookup(ctx context.Context, userID int64, shortID string) (*Session, error) {
	bookID, err := service.repo.ResolveShortID(ctx, userID, shortID)
	if err != nil {
		if errors.Is(err, dberr.ErrNoRows) {
			return nil, apperr.SessionNotFound()
		}
		return nil, err
	}

	session, err := service.repo.Get(ctx, userID, bookID)
	if err != nil {
		if errors.Is(err, dberr.ErrNoRows) {
			return nil, apperr.SessionNotFound()
		}
		return nil, err
	}
	return session, nil
}

// moveTo persists the new page and renders it.
func (service *Service) moveTo(ctx context.Context, session *Session, page int) (*View, error) {
	if err := service.repo.SetPage(ctx, session.UserID, session.BookID, page); err != nil {
		if errors.Is(err, dberr.ErrNoRows) {
			return nil, apperr.SessionNotFound()
		}
		return nil, err
	}
	session.CurrentPage = page
	return service.view(session, headerNone), nil
}

// view assembles the presentation projection of a session's current page.
func (service *Service) view(session *Session, h header) *View {
	return &View{
		Text:        renderPage(session, h),
		BookID:      session.BookID,
		ShortID:     session.ShortID(),
		CurrentPage: session.CurrentPage,
		TotalPages:  session.TotalPages,
		HasPrev:     session.CurrentPage > 0,
		HasNext:     session.CurrentPage < session.TotalPages-1,
	}
}

package bot

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/pkruglov/chitalka/internal/catalog"
	"github.com/pkruglov/chitalka/internal/platform/constants"
)

// Step names a waiting point in a multi-step conversation.
type Step string

const (
	StepGotoPage   Step = "goto_page"
	StepSeqAuthor  Step = "seq_author"
	StepSeqSeries  Step = "seq_series"
	StepSeqSerNo   Step = "seq_serno"
	StepSeqYear    Step = "seq_year"
	StepSeqTitle   Step = "seq_title"
	StepSmartQuery Step = "smart_query"
)

// Dialog is the persisted state of one user's unfinished conversation.
type Dialog struct {
	Step   Step           `json:"step"`
	BookID string         `json:"book_id,omitempty"`
	Filter catalog.Filter `json:"filter,omitempty"`
}

// ResultSet is a cached search outcome: the matched library ids plus the
// result page the user is currently looking at.
type ResultSet struct {
	LibIDs []string `json:"lib_ids"`
	Page   int      `json:"page"`
}

// DialogStore keeps conversation state in Redis so that a restart, or a
// second bot instance, sees the same dialogs. Every key carries a TTL.
type DialogStore struct {
	rdb *redis.Client
}

func NewDialogStore(rdb *redis.Client) *DialogStore {
	return &DialogStore{rdb: rdb}
}

func dialogKey(userID int64) string {
	return fmt.Sprintf("%s:dialog:%d", constants.AppName, userID)
}

func resultsKey(userID int64) string {
	return fmt.Sprintf("%s:results:%d", constants.AppName, userID)
}

func linkGuardKey(userID int64) string {
	return fmt.Sprintf("%s:link_guard:%d", constants.AppName, userID)
}

// SetDialog stores the user's conversation state, resetting its TTL.
func (s *DialogStore) SetDialog(ctx context.Context, userID int64, dialog *Dialog) error {
	payload, err := json.Marshal(dialog)
	if err != nil {
		return fmt.Errorf("bot: marshal dialog: %w", err)
	}
	if err := s.rdb.Set(ctx, dialogKey(userID), payload, constants.DialogTTL).Err(); err != nil {
		return fmt.Errorf("bot: store dialog: %w", err)
	}
	return nil
}

// Dialog loads the user's conversation state; nil when there is none.
func (s *DialogStore) Dialog(ctx context.Context, userID int64) (*Dialog, error) {
	payload, err := s.rdb.Get(ctx, dialogKey(userID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("bot: load dialog: %w", err)
	}

	var dialog Dialog
	if err := json.Unmarshal(payload, &dialog); err != nil {
		return nil, fmt.Errorf("bot: decode dialog: %w", err)
	}
	return &dialog, nil
}

// ClearDialog drops the user's conversation state, if any.
func (s *DialogStore) ClearDialog(ctx context.Context, userID int64) error {
	if err := s.rdb.Del(ctx, dialogKey(userID)).Err(); err != nil {
		return fmt.Errorf("bot: clear dialog: %w", err)
	}
	return nil
}

// SaveResults caches a search outcome, starting at the first result page.
func (s *DialogStore) SaveResults(ctx context.Context, userID int64, libIDs []string) error {
	payload, err := json.Marshal(&ResultSet{LibIDs: libIDs})
	if err != nil {
		return fmt.Errorf("bot: marshal results: %w", err)
	}
	if err := s.rdb.Set(ctx, resultsKey(userID), payload, constants.SearchResultsTTL).Err(); err != nil {
		return fmt.Errorf("bot: store results: %w", err)
	}
	return nil
}

// Results loads the cached search outcome; nil when it expired.
func (s *DialogStore) Results(ctx context.Context, userID int64) (*ResultSet, error) {
	payload, err := s.rdb.Get(ctx, resultsKey(userID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("bot: load results: %w", err)
	}

	var set ResultSet
	if err := json.Unmarshal(payload, &set); err != nil {
		return nil, fmt.Errorf("bot: decode results: %w", err)
	}
	return &set, nil
}

// SetResultsPage moves the cached result view to another page, keeping the
// remaining TTL.
func (s *DialogStore) SetResultsPage(ctx context.Context, userID int64, page int) error {
	set, err := s.Results(ctx, userID)
	if err != nil {
		return err
	}
	if set == nil {
		return nil
	}
	set.Page = page

	payload, err := json.Marshal(set)
	if err != nil {
		return fmt.Errorf("bot: marshal results: %w", err)
	}
	if err := s.rdb.Set(ctx, resultsKey(userID), payload, redis.KeepTTL).Err(); err != nil {
		return fmt.Errorf("bot: store results: %w", err)
	}
	return nil
}

// AcquireLinkGuard takes the per-user in-flight lock for link processing.
// It reports false when another download for this user is still running.
// The TTL frees the lock even if the holder dies.
func (s *DialogStore) AcquireLinkGuard(ctx context.Context, userID int64) (bool, error) {
	ok, err := s.rdb.SetNX(ctx, linkGuardKey(userID), 1, constants.LinkGuardTTL).Result()
	if err != nil {
		return false, fmt.Errorf("bot: acquire link guard: %w", err)
	}
	return ok, nil
}

// ReleaseLinkGuard frees the per-user in-flight lock.
func (s *DialogStore) ReleaseLinkGuard(ctx context.Context, userID int64) {
	s.rdb.Del(ctx, linkGuardKey(userID))
}

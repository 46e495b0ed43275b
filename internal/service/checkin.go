package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"moodbot/internal/content"
	"moodbot/internal/models"
	"moodbot/internal/mood"
	"moodbot/internal/repository"
)

// Classifier is the classification surface the service needs.
type Classifier interface {
	Classify(input string, isButton bool) mood.Category
	Reload() error
}

// Selector is the response-selection surface the service needs.
type Selector interface {
	Select(category mood.Category) content.ResponsePayload
}

// Reloader refreshes a content snapshot from disk.
type Reloader interface {
	Reload() error
}

// CooldownError tells the caller a check-in is not allowed yet and how
// long remains.
type CooldownError struct {
	Remaining time.Duration
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("check-in on cooldown, %s remaining", e.Remaining)
}

// StatsSnapshot is the aggregate view over the trailing window.
// Categories with zero check-ins in the window are absent from
// CategoryCounts.
type StatsSnapshot struct {
	TotalUsers       int                   `json:"total_users"`
	CheckinsInWindow int                   `json:"checkins_in_window"`
	CategoryCounts   map[mood.Category]int `json:"category_counts"`
}

const statsCacheKey = "stats"

// CheckinService is the core of the bot: classification, response
// selection, the cooldown gate and the check-in ledger, behind one
// facade used by the Telegram transport and the admin API.
type CheckinService struct {
	users      repository.UserRepository
	checkins   repository.CheckinRepository
	classifier Classifier
	selector   Selector
	catalog    Reloader

	cooldown    time.Duration
	statsWindow time.Duration
	logRawText  bool

	statsCache *gocache.Cache
	logger     *zap.Logger

	// userLocks serializes the cooldown read-check-write per user, so
	// two concurrent attempts by the same user cannot both pass the
	// gate. Distinct users never contend.
	mu        sync.Mutex
	userLocks map[int64]*sync.Mutex
}

// Options carries the configuration knobs of the core.
type Options struct {
	Cooldown    time.Duration
	StatsWindow time.Duration
	LogRawText  bool
}

func NewCheckinService(
	users repository.UserRepository,
	checkins repository.CheckinRepository,
	classifier Classifier,
	selector Selector,
	catalog Reloader,
	opts Options,
	logger *zap.Logger,
) *CheckinService {
	return &CheckinService{
		users:       users,
		checkins:    checkins,
		classifier:  classifier,
		selector:    selector,
		catalog:     catalog,
		cooldown:    opts.Cooldown,
		statsWindow: opts.StatsWindow,
		logRawText:  opts.LogRawText,
		statsCache:  gocache.New(time.Minute, 5*time.Minute),
		logger:      logger,
		userLocks:   make(map[int64]*sync.Mutex),
	}
}

func (s *CheckinService) userLock(userID int64) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.userLocks[userID]
	if !ok {
		lock = &sync.Mutex{}
		s.userLocks[userID] = lock
	}
	return lock
}

// RegisterUser makes the user known to the ledger; repeat calls are
// no-ops.
func (s *CheckinService) RegisterUser(ctx context.Context, userID int64, username *string) error {
	return s.users.RegisterUser(ctx, userID, username)
}

// Classify turns a button label or a free-text message into a category.
func (s *CheckinService) Classify(input string, isButton bool) mood.Category {
	return s.classifier.Classify(input, isButton)
}

// Respond picks the reply content for a category.
func (s *CheckinService) Respond(category mood.Category) content.ResponsePayload {
	return s.selector.Select(category)
}

// CheckinAllowed reports whether the user may check in now, and the
// remaining cooldown when they may not. A never-seen user is always
// allowed.
func (s *CheckinService) CheckinAllowed(ctx context.Context, userID int64) (bool, *time.Duration, error) {
	last, err := s.users.LastCheckin(ctx, userID)
	if err != nil {
		return false, nil, fmt.Errorf("read last check-in: %w", err)
	}
	if last == nil {
		return true, nil, nil
	}
	elapsed := time.Since(*last)
	if elapsed >= s.cooldown {
		return true, nil, nil
	}
	remaining := s.cooldown - elapsed
	return false, &remaining, nil
}

// CompleteCheckin runs the full exchange for one user: re-checks the
// cooldown under the per-user lock, classifies the input, selects the
// reply and appends the ledger record. On an active cooldown it
// returns a *CooldownError; any other error is a persistence failure.
func (s *CheckinService) CompleteCheckin(ctx context.Context, userID int64, input string, isButton bool) (mood.Category, content.ResponsePayload, error) {
	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	// Users can check in straight from the weekly prompt without ever
	// sending /start, so make sure the user row exists first.
	if err := s.users.RegisterUser(ctx, userID, nil); err != nil {
		return "", content.ResponsePayload{}, fmt.Errorf("register user: %w", err)
	}

	allowed, remaining, err := s.CheckinAllowed(ctx, userID)
	if err != nil {
		return "", content.ResponsePayload{}, err
	}
	if !allowed {
		return "", content.ResponsePayload{}, &CooldownError{Remaining: *remaining}
	}

	category := s.classifier.Classify(input, isButton)
	payload := s.selector.Select(category)

	checkin := &models.Checkin{
		UserID:    userID,
		Category:  string(category),
		InputType: models.InputButton,
	}
	if !isButton {
		checkin.InputType = models.InputText
		if s.logRawText {
			raw := input
			checkin.MoodRaw = &raw
		}
	}
	if payload.TextID != "" {
		id := payload.TextID
		checkin.ResponseTextID = &id
	}
	if payload.MemeFile != "" {
		meme := payload.MemeFile
		checkin.MemeFile = &meme
	}
	if payload.VideoURL != "" {
		video := payload.VideoURL
		checkin.VideoURL = &video
	}

	if err := s.checkins.RecordCheckin(ctx, checkin); err != nil {
		return "", content.ResponsePayload{}, fmt.Errorf("record check-in: %w", err)
	}

	s.statsCache.Delete(statsCacheKey)
	s.logger.Info("Check-in recorded",
		zap.Int64("user_id", userID),
		zap.String("category", string(category)),
		zap.String("input_type", checkin.InputType),
	)
	return category, payload, nil
}

// Stats aggregates the trailing window. Results are cached for a
// minute so the dashboard and the /stats command do not re-run the
// aggregation on every call.
func (s *CheckinService) Stats(ctx context.Context) (*StatsSnapshot, error) {
	if cached, ok := s.statsCache.Get(statsCacheKey); ok {
		return cached.(*StatsSnapshot), nil
	}

	totalUsers, err := s.users.CountUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}

	since := time.Now().Add(-s.statsWindow)
	inWindow, err := s.checkins.CountSince(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("count check-ins: %w", err)
	}

	rawCounts, err := s.checkins.CategoryCountsSince(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("count categories: %w", err)
	}

	counts := make(map[mood.Category]int, len(rawCounts))
	for name, count := range rawCounts {
		cat := mood.Category(name)
		if !cat.Valid() {
			s.logger.Warn("Unknown category in ledger, counting as default", zap.String("category", name))
			cat = mood.DefaultCategory
		}
		counts[cat] += count
	}

	snapshot := &StatsSnapshot{
		TotalUsers:       totalUsers,
		CheckinsInWindow: inWindow,
		CategoryCounts:   counts,
	}
	s.statsCache.Set(statsCacheKey, snapshot, gocache.DefaultExpiration)
	return snapshot, nil
}

// Reload swaps the keyword and response snapshots from disk.
func (s *CheckinService) Reload() error {
	if err := s.classifier.Reload(); err != nil {
		return fmt.Errorf("reload keywords: %w", err)
	}
	if err := s.catalog.Reload(); err != nil {
		return fmt.Errorf("reload responses: %w", err)
	}
	s.logger.Info("Content reloaded")
	return nil
}

// AllUserIDs lists broadcast recipients.
func (s *CheckinService) AllUserIDs(ctx context.Context) ([]int64, error) {
	return s.users.AllUserIDs(ctx)
}

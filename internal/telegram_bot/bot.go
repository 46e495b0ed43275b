package telegram_bot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"moodbot/internal/config"
	"moodbot/internal/media"
	"moodbot/internal/mood"
	"moodbot/internal/service"
)

const (
	checkinNowLabel = "Check in now 🙂"
	typeMoodData    = "mood_text"
	moodDataPrefix  = "mood_"
)

const welcomeText = "👋 Welcome to Mood Check-In Bot\n\n" +
	"I'm here to check in with you weekly and help you reflect on how you're feeling.\n\n" +
	"🔒 Privacy: your mood logs are stored only for bot functionality. We don't share your data.\n\n" +
	"What can you do?\n" +
	"• Use /checkin to check in anytime\n" +
	"• I'll send you a weekly prompt\n" +
	"• Select your mood or describe it in words\n" +
	"• Get personalized support based on how you're feeling\n\n" +
	"Ready? Let's go! 💙"

const weeklyPromptText = "🎯 Weekly Mood Check-In\n\n" +
	"How are you feeling this week?\n\n" +
	"(You can also use /checkin anytime)"

// Bot is the Telegram transport for the check-in core: the long-polling
// loop, the mood keyboard, the awaiting-text conversation state and the
// admin commands.
type Bot struct {
	api     *tgbotapi.BotAPI
	service *service.CheckinService
	media   *media.Store
	cfg     *config.Config
	logger  *zap.Logger

	// awaitingText tracks users who chose "Type my mood" and owe us one
	// free-text message.
	mu           sync.Mutex
	awaitingText map[int64]bool
}

// NewBot creates a new Telegram bot instance. An empty token disables
// the bot (nil, nil) so the admin API can still run without Telegram.
func NewBot(cfg *config.Config, checkinService *service.CheckinService, mediaStore *media.Store, logger *zap.Logger) (*Bot, error) {
	if cfg.Bot.Token == "" {
		logger.Info("Telegram bot is disabled (bot.token is empty)")
		return nil, nil
	}

	botAPI, err := tgbotapi.NewBotAPI(cfg.Bot.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Telegram bot API: %w", err)
	}

	logger.Info("Telegram bot authorized", zap.String("username", botAPI.Self.UserName))

	return &Bot{
		api:          botAPI,
		service:      checkinService,
		media:        mediaStore,
		cfg:          cfg,
		logger:       logger,
		awaitingText: make(map[int64]bool),
	}, nil
}

// Start begins listening for updates from Telegram.
func (b *Bot) Start(ctx context.Context) error {
	if b == nil {
		return nil // Bot is disabled
	}

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	b.logger.Info("Telegram bot started, waiting for updates...")

	for {
		select {
		case <-ctx.Done():
			b.logger.Info("Telegram bot shutting down...")
			b.api.StopReceivingUpdates()
			return nil
		case update := <-updates:
			if update.CallbackQuery != nil {
				b.handleCallbackQuery(ctx, update.CallbackQuery)
			} else if update.Message != nil {
				b.handleMessage(ctx, update.Message)
			}
		}
	}
}

func (b *Bot) setAwaitingText(userID int64, awaiting bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if awaiting {
		b.awaitingText[userID] = true
	} else {
		delete(b.awaitingText, userID)
	}
}

func (b *Bot) isAwaitingText(userID int64) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.awaitingText[userID]
}

// handleMessage processes incoming messages and commands.
func (b *Bot) handleMessage(ctx context.Context, message *tgbotapi.Message) {
	if message.From == nil {
		return
	}
	userID := message.From.ID

	if message.IsCommand() {
		b.setAwaitingText(userID, false)
		switch message.Command() {
		case "start":
			b.handleStartCommand(ctx, message)
		case "checkin":
			b.startCheckin(ctx, userID, message.Chat.ID)
		case "cancel":
			b.sendMessage(message.Chat.ID, "❌ Check-in cancelled.")
		case "stats":
			b.handleStatsCommand(ctx, message)
		case "broadcast":
			b.handleBroadcastCommand(ctx, message)
		case "reload":
			b.handleReloadCommand(message)
		default:
			b.sendMessage(message.Chat.ID, "Unknown command. Type /checkin to start a mood check-in or /start for help.")
		}
		return
	}

	if b.isAwaitingText(userID) {
		b.handleMoodText(ctx, message)
		return
	}

	if message.Text == checkinNowLabel {
		b.startCheckin(ctx, userID, message.Chat.ID)
		return
	}

	b.sendMessage(message.Chat.ID, "Type /checkin to start a mood check-in or /start for help.")
}

// handleStartCommand registers the user and shows the welcome message.
func (b *Bot) handleStartCommand(ctx context.Context, message *tgbotapi.Message) {
	var username *string
	if message.From.UserName != "" {
		name := message.From.UserName
		username = &name
	}
	if err := b.service.RegisterUser(ctx, message.From.ID, username); err != nil {
		b.logger.Error("Failed to register user", zap.Int64("user_id", message.From.ID), zap.Error(err))
		b.sendMessage(message.Chat.ID, "Something went wrong, please try again later.")
		return
	}

	msg := tgbotapi.NewMessage(message.Chat.ID, welcomeText)
	msg.ReplyMarkup = tgbotapi.NewOneTimeReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(checkinNowLabel)),
	)
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Error("Failed to send welcome message", zap.Error(err))
	}
	b.logger.Info("User started bot", zap.Int64("user_id", message.From.ID))
}

// startCheckin applies the cooldown gate and shows the mood keyboard.
func (b *Bot) startCheckin(ctx context.Context, userID, chatID int64) {
	allowed, remaining, err := b.service.CheckinAllowed(ctx, userID)
	if err != nil {
		b.logger.Error("Failed to check cooldown", zap.Int64("user_id", userID), zap.Error(err))
		b.sendMessage(chatID, "Something went wrong, please try again later.")
		return
	}
	if !allowed {
		b.sendMessage(chatID, cooldownMessage(*remaining))
		return
	}

	msg := tgbotapi.NewMessage(chatID, "How are you feeling right now?")
	msg.ReplyMarkup = moodKeyboard()
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Error("Failed to send mood keyboard", zap.Error(err))
	}
}

// handleCallbackQuery processes the mood keyboard selections.
func (b *Bot) handleCallbackQuery(ctx context.Context, query *tgbotapi.CallbackQuery) {
	callback := tgbotapi.NewCallback(query.ID, "")
	if _, err := b.api.Request(callback); err != nil {
		b.logger.Error("Failed to send callback response", zap.Error(err))
	}

	if !strings.HasPrefix(query.Data, moodDataPrefix) {
		b.logger.Warn("Unknown callback data", zap.String("data", query.Data))
		return
	}

	userID := query.From.ID
	chatID := query.Message.Chat.ID

	if query.Data == typeMoodData {
		b.setAwaitingText(userID, true)
		edit := tgbotapi.NewEditMessageText(chatID, query.Message.MessageID,
			"📝 Describe how you're feeling in your own words. (Send one message)")
		if _, err := b.api.Send(edit); err != nil {
			b.logger.Error("Failed to edit message", zap.Error(err))
		}
		return
	}

	label := strings.TrimPrefix(query.Data, moodDataPrefix)

	category, payload, err := b.service.CompleteCheckin(ctx, userID, label, true)
	if err != nil {
		b.replyCheckinError(chatID, err)
		return
	}

	// Replace the keyboard message with the reply text, then attach any
	// media as follow-up messages.
	text := formatResponseText(category, payload.Text, payload.VideoURL)
	edit := tgbotapi.NewEditMessageText(chatID, query.Message.MessageID, text)
	if _, err := b.api.Send(edit); err != nil {
		b.logger.Error("Failed to edit message", zap.Error(err))
	}
	b.sendMeme(chatID, payload.MemeFile)

	b.logger.Info("User checked in via button",
		zap.Int64("user_id", userID), zap.String("category", string(category)))
}

// handleMoodText processes the free-text mood description.
func (b *Bot) handleMoodText(ctx context.Context, message *tgbotapi.Message) {
	userID := message.From.ID
	text := strings.TrimSpace(message.Text)

	if text == "" || mood.NormalizeText(text) == "" {
		b.sendMessage(message.Chat.ID, "Please describe your mood (e.g., 'I feel anxious today')")
		return
	}

	b.setAwaitingText(userID, false)

	category, payload, err := b.service.CompleteCheckin(ctx, userID, text, false)
	if err != nil {
		b.replyCheckinError(message.Chat.ID, err)
		return
	}

	b.sendMessage(message.Chat.ID, formatResponseText(category, payload.Text, payload.VideoURL))
	b.sendMeme(message.Chat.ID, payload.MemeFile)

	b.logger.Info("User checked in via text",
		zap.Int64("user_id", userID), zap.String("category", string(category)))
}

func (b *Bot) replyCheckinError(chatID int64, err error) {
	var cooldownErr *service.CooldownError
	if errors.As(err, &cooldownErr) {
		b.sendMessage(chatID, cooldownMessage(cooldownErr.Remaining))
		return
	}
	b.logger.Error("Check-in failed", zap.Int64("chat_id", chatID), zap.Error(err))
	b.sendMessage(chatID, "Something went wrong, please try again later.")
}

func (b *Bot) sendMeme(chatID int64, memeFile string) {
	if memeFile == "" {
		return
	}
	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FilePath(b.media.Path(memeFile)))
	if _, err := b.api.Send(photo); err != nil {
		b.logger.Error("Failed to send photo", zap.String("file", memeFile), zap.Error(err))
	}
}

// handleStatsCommand shows aggregate statistics to bot admins.
func (b *Bot) handleStatsCommand(ctx context.Context, message *tgbotapi.Message) {
	if !b.cfg.IsAdmin(message.From.ID) {
		b.sendMessage(message.Chat.ID, "❌ Admin access required.")
		return
	}

	stats, err := b.service.Stats(ctx)
	if err != nil {
		b.logger.Error("Failed to get stats", zap.Error(err))
		b.sendMessage(message.Chat.ID, "❌ Failed to retrieve statistics.")
		return
	}

	var sb strings.Builder
	sb.WriteString("📊 Mood Bot Statistics\n\n")
	sb.WriteString(fmt.Sprintf("Total users: %d\n", stats.TotalUsers))
	sb.WriteString(fmt.Sprintf("Check-ins this week: %d\n", stats.CheckinsInWindow))
	sb.WriteString("\nCategory breakdown (this week):\n")
	for _, cat := range mood.Categories {
		if count, ok := stats.CategoryCounts[cat]; ok {
			sb.WriteString(fmt.Sprintf("  %s: %d\n", cat, count))
		}
	}
	b.sendMessage(message.Chat.ID, sb.String())
	b.logger.Info("Stats viewed by admin", zap.Int64("user_id", message.From.ID))
}

// handleBroadcastCommand sends an admin message to all users.
func (b *Bot) handleBroadcastCommand(ctx context.Context, message *tgbotapi.Message) {
	if !b.cfg.IsAdmin(message.From.ID) {
		b.sendMessage(message.Chat.ID, "❌ Admin access required.")
		return
	}

	text := strings.TrimSpace(message.CommandArguments())
	if text == "" {
		b.sendMessage(message.Chat.ID, "Usage: /broadcast <message>\n\nExample: /broadcast How are you doing?")
		return
	}

	sent, failed, err := b.Broadcast(ctx, "📢 Message from bot:\n\n"+text)
	if err != nil {
		b.logger.Error("Broadcast failed", zap.Error(err))
		b.sendMessage(message.Chat.ID, "❌ Broadcast failed.")
		return
	}

	b.sendMessage(message.Chat.ID, fmt.Sprintf("✅ Broadcast sent!\n\nSuccess: %d\nFailed: %d", sent, failed))
	b.logger.Info("Broadcast by admin",
		zap.Int64("user_id", message.From.ID), zap.Int("sent", sent), zap.Int("failed", failed))
}

// handleReloadCommand refreshes keyword and response content from disk.
func (b *Bot) handleReloadCommand(message *tgbotapi.Message) {
	if !b.cfg.IsAdmin(message.From.ID) {
		b.sendMessage(message.Chat.ID, "❌ Admin access required.")
		return
	}

	if err := b.service.Reload(); err != nil {
		b.sendMessage(message.Chat.ID, fmt.Sprintf("❌ Error reloading content: %v", err))
		b.logger.Error("Error reloading content", zap.Error(err))
		return
	}
	b.sendMessage(message.Chat.ID, "✅ Content reloaded successfully!")
	b.logger.Info("Content reloaded by admin", zap.Int64("user_id", message.From.ID))
}

// Broadcast sends text to every registered user.
func (b *Bot) Broadcast(ctx context.Context, text string) (int, int, error) {
	userIDs, err := b.service.AllUserIDs(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("list broadcast recipients: %w", err)
	}

	sent, failed := 0, 0
	for _, userID := range userIDs {
		msg := tgbotapi.NewMessage(userID, text)
		if _, err := b.api.Send(msg); err != nil {
			failed++
			b.logger.Warn("Failed to send broadcast message", zap.Int64("user_id", userID), zap.Error(err))
			continue
		}
		sent++
	}
	return sent, failed, nil
}

// BroadcastCheckinPrompt sends the weekly prompt with the mood keyboard
// to every registered user. Called by the scheduler.
func (b *Bot) BroadcastCheckinPrompt(ctx context.Context) {
	if b == nil {
		return
	}

	userIDs, err := b.service.AllUserIDs(ctx)
	if err != nil {
		b.logger.Error("Failed to list users for weekly prompt", zap.Error(err))
		return
	}

	sent, failed := 0, 0
	for _, userID := range userIDs {
		msg := tgbotapi.NewMessage(userID, weeklyPromptText)
		msg.ReplyMarkup = moodKeyboard()
		if _, err := b.api.Send(msg); err != nil {
			failed++
			b.logger.Warn("Failed to send weekly prompt", zap.Int64("user_id", userID), zap.Error(err))
			continue
		}
		sent++
	}
	b.logger.Info("Weekly broadcast completed", zap.Int("sent", sent), zap.Int("failed", failed))
}

// sendMessage is a helper to send a simple text message.
func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Error("Failed to send message", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

func moodKeyboard() tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(mood.ButtonOrder)+1)
	for _, label := range mood.ButtonOrder {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, moodDataPrefix+label),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("✍️ Type my mood", typeMoodData),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

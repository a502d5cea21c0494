package telegram

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/DynamicLiz/CardioBud/internal/service"
	"github.com/DynamicLiz/CardioBud/internal/store"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	usageLogMed   = "Usage: /log_med <medication name>"
	usageSymptom  = "Usage: /symptom <description>"
	noMedsYet     = "You haven't logged any medications yet. Use /log_med <name> to add one."
	noSymptomsYet = "You haven't logged any symptoms yet. Use /symptom <description> to add one."
	apologyReply  = "Sorry, I couldn't come up with an answer right now. Please try again in a moment."

	urgentCareAdvice = "⚠️ Logged. Chest pain or shortness of breath can be serious. Please seek urgent medical care right away."
	monitoringAdvice = "✅ Logged. Keep monitoring how you feel and rest if symptoms persist."

	educationText = "🫀 *Heart health basics*\n\n" +
		"• Move for at least 30 minutes most days.\n" +
		"• Keep an eye on blood pressure and cholesterol.\n" +
		"• Take prescribed medications on schedule (log them with /log_med).\n" +
		"• Chest pain or shortness of breath means seek care immediately."
)

var urgentPhrases = []string{"chest pain", "shortness of breath"}

// nextQuestionDelay is the pause before the next quiz question is
// shown, applied via the scheduler so the update loop never waits.
const nextQuestionDelay = 2 * time.Second

// Generator produces a delegated reply for free text. Nil disables
// delegation and free text falls back to the keyword rules.
type Generator func(text string) (string, error)

// botAPI is the slice of tgbotapi.BotAPI the handlers use, kept
// narrow so tests can substitute a recording fake.
type botAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

type Bot struct {
	api    botAPI
	client *tgbotapi.BotAPI
	store  store.Store
	quiz   *service.QuizEngine
	gen    Generator
	sched  *scheduler
	delay  time.Duration
	wg     sync.WaitGroup
}

func NewBot(token string, st store.Store, quiz *service.QuizEngine, gen Generator) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram auth failed: %w", err)
	}

	return &Bot{
		api:    api,
		client: api,
		store:  st,
		quiz:   quiz,
		gen:    gen,
		sched:  newScheduler(),
		delay:  nextQuestionDelay,
	}, nil
}

// Start runs the long-poll loop until ctx is cancelled, then stops
// the update stream and pending quiz timers.
func (b *Bot) Start(ctx context.Context) {
	log.Printf("Authorised on account: %s", b.client.Self.UserName)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updates := b.client.GetUpdatesChan(u)

	go func() {
		<-ctx.Done()
		b.client.StopReceivingUpdates()
	}()

	for update := range updates {
		// Each update gets its own goroutine so one slow delegated
		// reply cannot stall other users. Per-user consistency comes
		// from the store lock.
		b.wg.Add(1)
		go func(update tgbotapi.Update) {
			defer b.wg.Done()
			b.handleUpdate(update)
		}(update)
	}

	b.wg.Wait()
	b.sched.StopAll()
	log.Println("Update loop stopped")
}

func (b *Bot) handleUpdate(update tgbotapi.Update) {
	// A misbehaving handler must never take down the update loop.
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Recovered from handler panic: %v", r)
		}
	}()

	if update.Message != nil {
		b.handleMessage(update.Message)
	}
	if update.CallbackQuery != nil {
		b.handleCallback(update.CallbackQuery)
	}
}

func (b *Bot) handleMessage(msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	if msg.IsCommand() {
		switch msg.Command() {
		case "start":
			b.sendMainMenu(chatID)
		case "log_med":
			b.handleLogMed(chatID, msg.CommandArguments())
		case "view_meds":
			b.handleViewMeds(chatID)
		case "symptom":
			b.handleSymptom(chatID, msg.CommandArguments())
		default:
			b.sendMessage(chatID, "Unknown command. Try /start.")
		}
		return
	}

	if msg.Text != "" {
		b.handleText(chatID, msg.Text)
	}
}

func (b *Bot) handleCallback(callback *tgbotapi.CallbackQuery) {
	// Telegram omits Message when the originating message is too old;
	// the press still identifies the user.
	chatID := callback.From.ID
	if callback.Message != nil {
		chatID = callback.Message.Chat.ID
	}
	data := callback.Data

	ack := tgbotapi.NewCallback(callback.ID, "")
	if _, err := b.api.Request(ack); err != nil {
		log.Printf("Error answering callback: %v", err)
	}

	switch {
	case strings.HasPrefix(data, "answer_"):
		b.handleQuizAnswer(chatID, strings.TrimPrefix(data, "answer_"))
	case data == "quiz":
		b.startQuiz(chatID)
	case data == "education":
		b.sendEducation(chatID)
	case data == "medlog":
		b.handleViewMeds(chatID)
	case data == "symptoms":
		b.handleViewSymptoms(chatID)
	default:
		b.sendMessage(chatID, "Unknown command. Try /start.")
	}
}

// handleText routes free text through the delegated generator when
// configured, falling back to a fixed apology on any failure.
func (b *Bot) handleText(chatID int64, text string) {
	if b.gen == nil {
		b.sendMessage(chatID, service.KeywordReply(text))
		return
	}

	reply, err := b.gen(text)
	if err != nil {
		log.Printf("Delegated reply failed for chat %d: %v", chatID, err)
		b.sendMessage(chatID, apologyReply)
		return
	}
	b.sendMessage(chatID, reply)
}

func (b *Bot) handleLogMed(chatID int64, args string) {
	name := strings.TrimSpace(args)
	if name == "" {
		b.sendMessage(chatID, usageLogMed)
		return
	}

	_, err := b.store.Update(chatID, func(rec *store.UserRecord) {
		rec.Medications = append(rec.Medications, name)
	})
	if err != nil {
		log.Printf("Store error for chat %d: %v", chatID, err)
		b.sendMessage(chatID, apologyReply)
		return
	}
	b.sendMessage(chatID, fmt.Sprintf("✅ Logged medication: %s", name))
}

func (b *Bot) handleViewMeds(chatID int64) {
	rec, err := b.store.Get(chatID)
	if err != nil {
		log.Printf("Store error for chat %d: %v", chatID, err)
		b.sendMessage(chatID, apologyReply)
		return
	}

	if len(rec.Medications) == 0 {
		b.sendMessage(chatID, noMedsYet)
		return
	}
	b.sendMessage(chatID, "Your medications:\n"+strings.Join(rec.Medications, "\n"))
}

func (b *Bot) handleSymptom(chatID int64, args string) {
	desc := strings.TrimSpace(args)
	if desc == "" {
		b.sendMessage(chatID, usageSymptom)
		return
	}

	_, err := b.store.Update(chatID, func(rec *store.UserRecord) {
		rec.Symptoms = append(rec.Symptoms, desc)
	})
	if err != nil {
		log.Printf("Store error for chat %d: %v", chatID, err)
		b.sendMessage(chatID, apologyReply)
		return
	}

	b.sendMessage(chatID, symptomAdvice(desc))
}

func symptomAdvice(desc string) string {
	lowered := strings.ToLower(desc)
	for _, phrase := range urgentPhrases {
		if strings.Contains(lowered, phrase) {
			return urgentCareAdvice
		}
	}
	return monitoringAdvice
}

func (b *Bot) handleViewSymptoms(chatID int64) {
	rec, err := b.store.Get(chatID)
	if err != nil {
		log.Printf("Store error for chat %d: %v", chatID, err)
		b.sendMessage(chatID, apologyReply)
		return
	}

	if len(rec.Symptoms) == 0 {
		b.sendMessage(chatID, noSymptomsYet)
		return
	}
	b.sendMessage(chatID, "Your symptoms:\n"+strings.Join(rec.Symptoms, "\n"))
}

func (b *Bot) sendMainMenu(chatID int64) {
	msg := tgbotapi.NewMessage(chatID, "🫀 *CardioBud*\n\nWhat would you like to do?")
	msg.ParseMode = "Markdown"

	kb := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📚 Education", "education"),
			tgbotapi.NewInlineKeyboardButtonData("💊 Medications", "medlog"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🩺 Symptoms", "symptoms"),
			tgbotapi.NewInlineKeyboardButtonData("❓ Quiz", "quiz"),
		),
	)
	msg.ReplyMarkup = kb
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("Error sending main menu: %v", err)
	}
}

func (b *Bot) sendEducation(chatID int64) {
	msg := tgbotapi.NewMessage(chatID, educationText)
	msg.ParseMode = "Markdown"
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("Error sending education text: %v", err)
	}
}

func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("Error sending message: %v", err)
	}
}

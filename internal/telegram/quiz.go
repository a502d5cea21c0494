package telegram

import (
	"fmt"
	"log"

	"github.com/DynamicLiz/CardioBud/internal/service"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func (b *Bot) startQuiz(chatID int64) {
	res, err := b.quiz.Start(chatID)
	if err != nil {
		log.Printf("Store error for chat %d: %v", chatID, err)
		b.sendMessage(chatID, apologyReply)
		return
	}

	if res.Summary != nil {
		b.sendMessage(chatID, summaryText(*res.Summary))
		return
	}
	b.sendQuestion(chatID, *res.Question, res.Index, res.Total)
}

func (b *Bot) handleQuizAnswer(chatID int64, option string) {
	res, err := b.quiz.Answer(chatID, option)
	if err != nil {
		log.Printf("Store error for chat %d: %v", chatID, err)
		b.sendMessage(chatID, apologyReply)
		return
	}
	if !res.Handled {
		return
	}

	text := "✅ Correct!"
	if !res.Correct {
		text = fmt.Sprintf("❌ Wrong! The correct answer is: %s", res.CorrectIs)
	}
	if res.Done {
		text += "\n\n" + summaryText(*res.Summary)
		b.sendMessage(chatID, text)
		return
	}
	b.sendMessage(chatID, text)

	// Deferred so this handler returns immediately; the scheduled
	// task re-reads quiz state when it fires.
	b.sched.Schedule(chatID, b.delay, func() {
		b.deliverNextQuestion(chatID)
	})
}

// deliverNextQuestion renders the pending question, if the user is
// still waiting for one.
func (b *Bot) deliverNextQuestion(chatID int64) {
	q, index, ok, err := b.quiz.NextQuestion(chatID)
	if err != nil {
		log.Printf("Store error for chat %d: %v", chatID, err)
		return
	}
	if !ok {
		return
	}
	b.sendQuestion(chatID, q, index, b.quiz.Total())
}

func (b *Bot) sendQuestion(chatID int64, q service.Question, index, total int) {
	text := fmt.Sprintf("❓ *Question %d/%d*\n\n%s", index+1, total, q.Prompt)
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = "Markdown"

	var rows [][]tgbotapi.InlineKeyboardButton
	for _, option := range q.Options {
		button := tgbotapi.NewInlineKeyboardButtonData(option, "answer_"+option)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(button))
	}
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)

	if _, err := b.api.Send(msg); err != nil {
		log.Printf("Error sending question: %v", err)
	}
}

func summaryText(s service.Summary) string {
	return fmt.Sprintf("🏁 Quiz complete! You scored %d/%d.", s.Score, s.Total)
}

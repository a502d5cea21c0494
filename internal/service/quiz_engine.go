package service

import (
	"github.com/DynamicLiz/CardioBud/internal/store"
)

// QuizEngine drives the per-user quiz state machine on top of the
// user store. All transitions happen inside store.Update, so they are
// atomic per user.
type QuizEngine struct {
	questions []Question
	store     store.Store
	shuffle   bool
}

func NewQuizEngine(questions []Question, st store.Store, shuffle bool) *QuizEngine {
	return &QuizEngine{questions: questions, store: st, shuffle: shuffle}
}

// Total returns the number of configured questions.
func (e *QuizEngine) Total() int { return len(e.questions) }

// Start resets the user's quiz and returns the first question. With an
// empty question list it returns an immediate 0/0 summary.
func (e *QuizEngine) Start(chatID int64) (StartResult, error) {
	res := StartResult{Total: len(e.questions)}

	_, err := e.store.Update(chatID, func(rec *store.UserRecord) {
		if len(e.questions) == 0 {
			rec.QuizScore = 0
			rec.QuizIndex = 0
			rec.QuizState = store.QuizNotStarted
			res.Summary = &Summary{Score: 0, Total: 0}
			return
		}

		rec.QuizOrder = e.sessionOrder()
		rec.QuizScore = 0
		rec.QuizIndex = 0
		rec.QuizState = store.QuizAwaiting

		q := e.questionAt(rec, 0)
		res.Question = &q
		res.Index = 0
	})
	return res, err
}

// Answer grades one answer payload. Payloads arriving while the user
// is not awaiting an answer are reported as unhandled.
func (e *QuizEngine) Answer(chatID int64, option string) (AnswerResult, error) {
	res := AnswerResult{Total: len(e.questions)}

	_, err := e.store.Update(chatID, func(rec *store.UserRecord) {
		if rec.QuizState != store.QuizAwaiting || rec.QuizIndex >= len(e.questions) {
			return
		}
		res.Handled = true

		q := e.questionAt(rec, rec.QuizIndex)
		res.CorrectIs = q.Correct
		if option == q.Correct {
			res.Correct = true
			rec.QuizScore++
		}
		rec.QuizIndex++

		if rec.QuizIndex == len(e.questions) {
			res.Done = true
			res.Summary = &Summary{Score: rec.QuizScore, Total: len(e.questions)}
			rec.QuizScore = 0
			rec.QuizIndex = 0
			rec.QuizState = store.QuizNotStarted
			return
		}

		rec.QuizState = store.QuizAsking
		res.NextIndex = rec.QuizIndex
	})
	return res, err
}

// NextQuestion moves a user from asking to awaiting and returns the
// question to render. Called when the deferred next-question task
// fires; it reads current state, so it is a no-op if the user
// restarted or finished the quiz in the meantime.
func (e *QuizEngine) NextQuestion(chatID int64) (q Question, index int, ok bool, err error) {
	_, err = e.store.Update(chatID, func(rec *store.UserRecord) {
		if rec.QuizState != store.QuizAsking || rec.QuizIndex >= len(e.questions) {
			return
		}
		rec.QuizState = store.QuizAwaiting
		q = e.questionAt(rec, rec.QuizIndex)
		index = rec.QuizIndex
		ok = true
	})
	return q, index, ok, err
}

func (e *QuizEngine) sessionOrder() []int {
	order := make([]int, len(e.questions))
	for i := range order {
		order[i] = i
	}
	if e.shuffle {
		order = ShuffleOrder(order)
	}
	return order
}

func (e *QuizEngine) questionAt(rec *store.UserRecord, i int) Question {
	if i < len(rec.QuizOrder) {
		if n := rec.QuizOrder[i]; n >= 0 && n < len(e.questions) {
			return e.questions[n]
		}
	}
	return e.questions[i]
}

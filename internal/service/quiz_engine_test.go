package service

import (
	"testing"

	"github.com/DynamicLiz/CardioBud/internal/store"
)

func testQuestions() []Question {
	return []Question{
		{Prompt: "Q1", Options: []string{"A", "B"}, Correct: "A"},
		{Prompt: "Q2", Options: []string{"C", "D"}, Correct: "D"},
	}
}

func TestQuizStart(t *testing.T) {
	st := store.NewMemoryStore()
	e := NewQuizEngine(testQuestions(), st, false)

	res, err := e.Start(1)
	if err != nil {
		t.Fatal(err)
	}
	if res.Question == nil || res.Question.Prompt != "Q1" {
		t.Fatalf("expected first question, got %+v", res)
	}
	if res.Index != 0 || res.Total != 2 {
		t.Errorf("expected index 0 of 2, got %d of %d", res.Index, res.Total)
	}

	rec, _ := st.Get(1)
	if rec.QuizState != store.QuizAwaiting {
		t.Errorf("expected awaiting state, got %q", rec.QuizState)
	}
}

func TestQuizFullRunScoresAndResets(t *testing.T) {
	st := store.NewMemoryStore()
	e := NewQuizEngine(testQuestions(), st, false)

	if _, err := e.Start(1); err != nil {
		t.Fatal(err)
	}

	// Wrong answer on Q1.
	res, err := e.Answer(1, "B")
	if err != nil {
		t.Fatal(err)
	}
	if !res.Handled || res.Correct || res.Done {
		t.Fatalf("unexpected result for wrong answer: %+v", res)
	}
	if res.CorrectIs != "A" {
		t.Errorf("expected correct answer A, got %q", res.CorrectIs)
	}

	// Question 2 is shown after the delay; simulate the timer firing.
	q, index, ok, err := e.NextQuestion(1)
	if err != nil {
		t.Fatal(err)
	}
	if !ok || q.Prompt != "Q2" || index != 1 {
		t.Fatalf("expected Q2 at index 1, got %q at %d (ok=%v)", q.Prompt, index, ok)
	}

	// Correct answer on Q2 completes the quiz.
	res, err = e.Answer(1, "D")
	if err != nil {
		t.Fatal(err)
	}
	if !res.Done || res.Summary == nil {
		t.Fatalf("expected completion, got %+v", res)
	}
	if res.Summary.Score != 1 || res.Summary.Total != 2 {
		t.Errorf("expected summary 1/2, got %d/%d", res.Summary.Score, res.Summary.Total)
	}

	rec, _ := st.Get(1)
	if rec.QuizScore != 0 || rec.QuizIndex != 0 || rec.QuizState != store.QuizNotStarted {
		t.Errorf("expected reset record, got %+v", rec)
	}
}

func TestQuizAnswerIgnoredWhenNotAwaiting(t *testing.T) {
	st := store.NewMemoryStore()
	e := NewQuizEngine(testQuestions(), st, false)

	res, err := e.Answer(1, "A")
	if err != nil {
		t.Fatal(err)
	}
	if res.Handled {
		t.Error("answer before start should be ignored")
	}

	// While the next question is pending (asking), answers are ignored too.
	if _, err := e.Start(1); err != nil {
		t.Fatal(err)
	}
	if _, err := e.Answer(1, "A"); err != nil {
		t.Fatal(err)
	}
	res, err = e.Answer(1, "D")
	if err != nil {
		t.Fatal(err)
	}
	if res.Handled {
		t.Error("answer during the asking window should be ignored")
	}
}

func TestQuizEmptyQuestionList(t *testing.T) {
	st := store.NewMemoryStore()
	e := NewQuizEngine(nil, st, false)

	res, err := e.Start(1)
	if err != nil {
		t.Fatal(err)
	}
	if res.Summary == nil || res.Summary.Score != 0 || res.Summary.Total != 0 {
		t.Fatalf("expected immediate 0/0 summary, got %+v", res)
	}
}

func TestStaleNextQuestionIsNoOp(t *testing.T) {
	st := store.NewMemoryStore()
	e := NewQuizEngine(testQuestions(), st, false)

	if _, err := e.Start(1); err != nil {
		t.Fatal(err)
	}
	if _, err := e.Answer(1, "A"); err != nil {
		t.Fatal(err)
	}

	// User restarts the quiz before the deferred task fires.
	if _, err := e.Start(1); err != nil {
		t.Fatal(err)
	}

	_, _, ok, err := e.NextQuestion(1)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("deferred task after a restart should do nothing")
	}

	rec, _ := st.Get(1)
	if rec.QuizIndex != 0 || rec.QuizState != store.QuizAwaiting {
		t.Errorf("restart state clobbered: %+v", rec)
	}
}

func TestShuffledSessionGradesConsistently(t *testing.T) {
	st := store.NewMemoryStore()
	e := NewQuizEngine(testQuestions(), st, true)

	res, err := e.Start(1)
	if err != nil {
		t.Fatal(err)
	}

	// Answer each shown question with its own correct option.
	score := 0
	q := *res.Question
	for {
		ans, err := e.Answer(1, q.Correct)
		if err != nil {
			t.Fatal(err)
		}
		if !ans.Handled || !ans.Correct {
			t.Fatalf("correct option rejected for %q: %+v", q.Prompt, ans)
		}
		score++
		if ans.Done {
			if ans.Summary.Score != score {
				t.Errorf("expected score %d, got %d", score, ans.Summary.Score)
			}
			return
		}
		var ok bool
		q, _, ok, err = e.NextQuestion(1)
		if err != nil || !ok {
			t.Fatalf("next question unavailable: ok=%v err=%v", ok, err)
		}
	}
}

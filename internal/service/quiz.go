package service

// Question is a single quiz question. Correct must be one of Options.
// Questions are loaded once at startup and never mutated.
type Question struct {
	Prompt  string
	Options []string
	Correct string
}

// Summary is the result shown when a quiz run finishes. It is a
// snapshot taken before the stored score resets, so the user always
// sees the score they earned.
type Summary struct {
	Score int
	Total int
}

// StartResult describes the outcome of starting a quiz. Either
// Question is set (render it and await an answer) or Summary is set
// (the question list is empty).
type StartResult struct {
	Question *Question
	Index    int
	Total    int
	Summary  *Summary
}

// AnswerResult describes the outcome of grading one answer.
// Handled is false when the user was not awaiting an answer; such
// payloads are ignored without a reply.
type AnswerResult struct {
	Handled   bool
	Correct   bool
	CorrectIs string
	Done      bool
	Summary   *Summary
	NextIndex int
	Total     int
}

package service

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strings"
)

// ParseQuestions reads quiz questions from a text file. One question
// per line:
//
//	prompt | option1; option2; option3 | correct option
//
// Blank lines and lines starting with '#' are skipped. The correct
// option must be one of the listed options.
func ParseQuestions(filename string) ([]Question, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	var questions []Question
	scanner := bufio.NewScanner(file)
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		q, err := parseQuestionLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		questions = append(questions, q)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading file: %w", err)
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("no valid questions found in file")
	}
	return questions, nil
}

func parseQuestionLine(line string) (Question, error) {
	parts := strings.Split(line, "|")
	if len(parts) != 3 {
		return Question{}, fmt.Errorf("expected 'prompt | options | correct', got %d fields", len(parts))
	}

	prompt := strings.TrimSpace(parts[0])
	if prompt == "" {
		return Question{}, fmt.Errorf("question prompt cannot be empty")
	}

	var options []string
	for _, opt := range strings.Split(parts[1], ";") {
		opt = strings.TrimSpace(opt)
		if opt != "" {
			options = append(options, opt)
		}
	}
	if len(options) < 2 {
		return Question{}, fmt.Errorf("need at least 2 options, got %d", len(options))
	}

	correct := strings.TrimSpace(parts[2])
	found := false
	for _, opt := range options {
		if opt == correct {
			found = true
			break
		}
	}
	if !found {
		return Question{}, fmt.Errorf("correct option %q is not among the options", correct)
	}

	return Question{Prompt: prompt, Options: options, Correct: correct}, nil
}

// LoadQuestions loads questions from a file, falling back to the
// built-in cardiology set when the file is missing or invalid.
func LoadQuestions(filename string) []Question {
	if filename == "" {
		return DefaultQuestions()
	}

	questions, err := ParseQuestions(filename)
	if err != nil {
		log.Printf("Warning: failed to load questions from %s: %v", filename, err)
		log.Println("Using default questions...")
		return DefaultQuestions()
	}

	log.Printf("Loaded %d questions from %s", len(questions), filename)
	return questions
}

// DefaultQuestions returns the built-in heart-health quiz.
func DefaultQuestions() []Question {
	return []Question{
		{
			Prompt:  "How many chambers does the human heart have?",
			Options: []string{"Two", "Three", "Four"},
			Correct: "Four",
		},
		{
			Prompt:  "Which habit is best for your heart?",
			Options: []string{"Regular walking", "Smoking", "Skipping sleep"},
			Correct: "Regular walking",
		},
		{
			Prompt:  "Which of these is a warning sign of a heart attack?",
			Options: []string{"Chest pain", "Itchy ears", "Hiccups"},
			Correct: "Chest pain",
		},
	}
}

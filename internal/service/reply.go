package service

import "strings"

const (
	greetingReply = "Hello! How can I help you today?"
	helpReply     = "Sure! Tell me what you need help with."
	identityReply = "I'm CardioBud, your friendly heart-health bot!"
	fallbackReply = "I didn't fully understand that, but I'm here to help!"
)

// KeywordReply maps free text to a canned response using ordered
// substring rules. It is pure and total: every input, including the
// empty string, yields a non-empty reply.
func KeywordReply(text string) string {
	text = strings.ToLower(text)

	if strings.Contains(text, "hello") || strings.Contains(text, "hi") {
		return greetingReply
	}
	if strings.Contains(text, "help") {
		return helpReply
	}
	if strings.Contains(text, "your name") {
		return identityReply
	}
	return fallbackReply
}

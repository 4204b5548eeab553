package utils

import (
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
)

// TextProcessor provides utilities for processing text
type TextProcessor struct {
	logger *zap.Logger
}

// NewTextProcessor creates a new TextProcessor
func NewTextProcessor(logger *zap.Logger) *TextProcessor {
	return &TextProcessor{
		logger: logger,
	}
}

// TruncateText cuts text to at most maxChars characters (runes).
// Text is never split inside a multi-byte character.
func (tp *TextProcessor) TruncateText(text string, maxChars int) string {
	if maxChars <= 0 || utf8.RuneCountInString(text) <= maxChars {
		return text
	}

	count := 0
	for i := range text {
		if count == maxChars {
			tp.logger.Debug("Text truncated",
				zap.Int("original_size", len(text)),
				zap.Int("truncated_size", i),
				zap.Int("max_chars", maxChars))
			return text[:i]
		}
		count++
	}

	return text
}

// SanitizeUTF8 ensures the string contains only valid UTF-8 characters
func (tp *TextProcessor) SanitizeUTF8(text string) string {
	if utf8.ValidString(text) {
		return text
	}

	sanitized := strings.ToValidUTF8(text, "")

	tp.logger.Debug("Text sanitized",
		zap.Int("original_size", len(text)),
		zap.Int("sanitized_size", len(sanitized)))

	return sanitized
}

// ProcessText sanitizes and truncates text in one operation
func (tp *TextProcessor) ProcessText(text string, maxChars int) string {
	return tp.TruncateText(tp.SanitizeUTF8(text), maxChars)
}

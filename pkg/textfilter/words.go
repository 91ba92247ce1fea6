package textfilter

import (
	"strings"
)

// Ellipsis marks text that was cut to fit a word cap.
const Ellipsis = "..."

// OptionPrefixes are the answer labels a guide turn may carry, in slot order.
var OptionPrefixes = [4]string{"A)", "B)", "C)", "D)"}

// CountWords counts whitespace separated words.
func CountWords(text string) int {
	return len(strings.Fields(text))
}

// TruncateWords keeps the first limit words of text, joined by single spaces
// and followed by Ellipsis. Text within the limit is returned unchanged.
// A limit of zero or less disables truncation.
func TruncateWords(text string, limit int) string {
	if limit <= 0 {
		return text
	}
	words := strings.Fields(text)
	if len(words) <= limit {
		return text
	}
	return strings.Join(words[:limit], " ") + Ellipsis
}

// OptionIndex reports which option slot a line belongs to, judged by its
// "A)".."D)" prefix after trimming.
func OptionIndex(line string) (int, bool) {
	trimmed := strings.TrimSpace(line)
	for i, prefix := range OptionPrefixes {
		if strings.HasPrefix(trimmed, prefix) {
			return i, true
		}
	}
	return -1, false
}

// EnforceWordLimits trims a guide turn to the configured caps. Body lines are
// kept while the running word count of the kept output stays within
// maxQuestionWords; the first body line that would overflow closes the body and
// every later body line is dropped. Option lines are always kept, each cut to
// maxOptionWords. Lines are trimmed. A cap of zero or less disables that cap.
func EnforceWordLimits(text string, maxQuestionWords, maxOptionWords int) string {
	lines := strings.Split(text, "\n")
	kept := make([]string, 0, len(lines))

	words := 0
	bodyClosed := false
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		n := CountWords(trimmed)

		if _, isOption := OptionIndex(trimmed); isOption {
			if maxOptionWords > 0 && n > maxOptionWords {
				trimmed = TruncateWords(trimmed, maxOptionWords)
				n = maxOptionWords
			}
		} else {
			if bodyClosed || (maxQuestionWords > 0 && words+n > maxQuestionWords) {
				bodyClosed = true
				continue
			}
		}

		kept = append(kept, trimmed)
		words += n
	}

	return strings.Join(kept, "\n")
}

package textfilter

import (
	"regexp"
	"sort"
	"strings"
)

// DefaultLeakPhrases reveal the guide's internal question counter.
var DefaultLeakPhrases = []string{
	"first question", "second question", "third question",
	"1st question", "2nd question", "3rd question",
	"question 1", "question 2", "question 3",
	"one question", "two questions", "three questions",
	"1/3", "2/3", "3/3",
	"first of three", "second of three", "third of three",
}

// LeakScrubber removes progress-revealing phrases from model output. Matching
// is a case-insensitive substring match, so a phrase inside a longer word is
// removed too. Nothing is rewritten; matches are deleted.
type LeakScrubber struct {
	pattern *regexp.Regexp
	phrases []string
}

// NewLeakScrubber compiles a scrubber for phrases. With no phrases it uses
// DefaultLeakPhrases.
func NewLeakScrubber(phrases ...string) *LeakScrubber {
	if len(phrases) == 0 {
		phrases = DefaultLeakPhrases
	}

	cleaned := make([]string, 0, len(phrases))
	for _, p := range phrases {
		if p = strings.TrimSpace(p); p != "" {
			cleaned = append(cleaned, p)
		}
	}

	ls := &LeakScrubber{phrases: cleaned}
	if len(cleaned) == 0 {
		return ls
	}

	// Longest first so "two questions" wins over a shorter overlapping phrase.
	ordered := append([]string(nil), cleaned...)
	sort.SliceStable(ordered, func(i, j int) bool { return len(ordered[i]) > len(ordered[j]) })

	quoted := make([]string, len(ordered))
	for i, p := range ordered {
		quoted[i] = regexp.QuoteMeta(p)
	}
	ls.pattern = regexp.MustCompile(`(?i)(?:` + strings.Join(quoted, "|") + `)`)
	return ls
}

// Phrases returns the phrases this scrubber removes.
func (ls *LeakScrubber) Phrases() []string {
	return append([]string(nil), ls.phrases...)
}

// Scrub deletes every phrase occurrence. Deletion repeats until the text is
// stable, since removing one match can join the halves of another.
func (ls *LeakScrubber) Scrub(text string) string {
	if ls == nil || ls.pattern == nil {
		return text
	}
	for {
		next := ls.pattern.ReplaceAllString(text, "")
		if next == text {
			return next
		}
		text = next
	}
}

// ContainsLeak reports whether text holds any phrase.
func (ls *LeakScrubber) ContainsLeak(text string) bool {
	if ls == nil || ls.pattern == nil {
		return false
	}
	return ls.pattern.MatchString(text)
}

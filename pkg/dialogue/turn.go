package dialogue

import (
	"strings"

	"github.com/jwebster45206/tour-guide/pkg/textfilter"
)

// Turn is a guide message split for display.
type Turn struct {
	Body    string
	Options [4]string
}

// HasOptions reports whether any option slot is filled.
func (t Turn) HasOptions() bool {
	for _, o := range t.Options {
		if o != "" {
			return true
		}
	}
	return false
}

// ParseTurn splits text into body lines and A)..D) option lines. Lines are
// trimmed; when a prefix repeats the first line wins. Options keep their prefix.
func ParseTurn(text string) Turn {
	var (
		turn Turn
		body []string
	)
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if i, ok := textfilter.OptionIndex(line); ok {
			if turn.Options[i] == "" {
				turn.Options[i] = line
			}
			continue
		}
		body = append(body, line)
	}
	turn.Body = strings.TrimSpace(strings.Join(body, "\n"))
	return turn
}

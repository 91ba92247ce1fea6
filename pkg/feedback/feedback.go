package feedback

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Kind is the coarse sentiment of a guide reply, used only for text tinting.
type Kind int

const (
	Neutral Kind = iota
	Positive
	Negative
)

func (k Kind) String() string {
	switch k {
	case Positive:
		return "positive"
	case Negative:
		return "negative"
	default:
		return "neutral"
	}
}

// ParseKind accepts "positive", "neutral" or "negative" in any case.
// An empty string is Neutral.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "neutral":
		return Neutral, nil
	case "positive":
		return Positive, nil
	case "negative":
		return Negative, nil
	default:
		return Neutral, fmt.Errorf("unknown feedback kind %q", s)
	}
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// MarshalJSON keeps tour files readable ("positive" rather than 1).
func (k Kind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

func (k *Kind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("feedback kind must be a string: %w", err)
	}
	return k.UnmarshalText([]byte(s))
}

// Default trigger words. There are no negative triggers by default, so a
// reply is never tinted negative unless a tour configures some.
var (
	DefaultPositiveWords = []string{"excellent", "insightful", "well chosen", "perceptive"}
	DefaultNeutralWords  = []string{"interesting", "thoughtful"}
)

// Classifier maps text to a Kind by case-insensitive substring search.
// Positive words are checked first, then neutral, then negative.
type Classifier struct {
	Positive []string `json:"positive,omitempty" yaml:"positive,omitempty"`
	Neutral  []string `json:"neutral,omitempty" yaml:"neutral,omitempty"`
	Negative []string `json:"negative,omitempty" yaml:"negative,omitempty"`
}

// DefaultClassifier returns a classifier with the default trigger words.
func DefaultClassifier() Classifier {
	return Classifier{
		Positive: append([]string(nil), DefaultPositiveWords...),
		Neutral:  append([]string(nil), DefaultNeutralWords...),
	}
}

// Classify returns the feedback kind for text. Without any trigger it is Neutral.
func (c Classifier) Classify(text string) Kind {
	lower := strings.ToLower(text)

	if containsAny(lower, c.Positive) {
		return Positive
	}
	if containsAny(lower, c.Neutral) {
		return Neutral
	}
	if containsAny(lower, c.Negative) {
		return Negative
	}
	return Neutral
}

func containsAny(lower string, words []string) bool {
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w != "" && strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

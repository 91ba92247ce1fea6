package feedback

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifier_Classify(t *testing.T) {
	c := DefaultClassifier()

	tests := []struct {
		name     string
		text     string
		expected Kind
	}{
		{"positive trigger", "An excellent observation about the curves.", Positive},
		{"positive trigger any case", "WELL CHOSEN. The lions guard the door.", Positive},
		{"neutral trigger", "An interesting thought.", Neutral},
		{"positive wins over neutral", "Interesting and insightful.", Positive},
		{"no trigger defaults to neutral", "The pagoda has seven tiers.", Neutral},
		{"empty text", "", Neutral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, c.Classify(tt.text))
		})
	}
}

func TestClassifier_NegativeWords(t *testing.T) {
	c := Classifier{
		Positive: []string{"excellent"},
		Negative: []string{"not quite"},
	}

	assert.Equal(t, Negative, c.Classify("Not quite, look again at the roof."))
	assert.Equal(t, Positive, c.Classify("Excellent, though not quite complete."))
}

func TestClassifier_ZeroValue(t *testing.T) {
	var c Classifier
	assert.Equal(t, Neutral, c.Classify("excellent"))
}

func TestParseKind(t *testing.T) {
	for in, want := range map[string]Kind{
		"positive":   Positive,
		"Neutral":    Neutral,
		" NEGATIVE ": Negative,
		"":           Neutral,
	} {
		got, err := ParseKind(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseKind("ecstatic")
	assert.Error(t, err)
}

func TestKind_JSON(t *testing.T) {
	var payload struct {
		Feedback Kind `json:"feedback"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"feedback":"positive"}`), &payload))
	assert.Equal(t, Positive, payload.Feedback)

	data, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"feedback":"positive"}`, string(data))

	assert.Error(t, json.Unmarshal([]byte(`{"feedback":2}`), &payload))
}

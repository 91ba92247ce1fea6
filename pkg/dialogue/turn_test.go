package dialogue

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTurn(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Turn
	}{
		{
			name: "body and four options",
			text: "Look at the roof.\n\nA) Curves\nB) Tiles\nC) Calm\nD) Colour",
			want: Turn{Body: "Look at the roof.", Options: [4]string{"A) Curves", "B) Tiles", "C) Calm", "D) Colour"}},
		},
		{
			name: "first duplicate wins",
			text: "Q?\nA) first\nA) second\nB) b",
			want: Turn{Body: "Q?", Options: [4]string{"A) first", "B) b", "", ""}},
		},
		{
			name: "indented options and multi-line body",
			text: "  Line one\nLine two  \n   C) calm\n",
			want: Turn{Body: "Line one\nLine two", Options: [4]string{"", "", "C) calm", ""}},
		},
		{
			name: "no options",
			text: "Just words.",
			want: Turn{Body: "Just words."},
		},
		{
			name: "lowercase prefix is body",
			text: "a) not an option",
			want: Turn{Body: "a) not an option"},
		},
		{
			name: "empty",
			text: "",
			want: Turn{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseTurn(tt.text)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want.Options != [4]string{}, got.HasOptions())
		})
	}
}

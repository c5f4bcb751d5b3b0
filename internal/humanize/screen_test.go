package humanize

import (
	"testing"

	"github.com/humyn-ai/humyn/go/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestFlagged(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"plain text", "Please review the attached proposal.", false},
		{"scam keyword", "This is a scam", true},
		{"case insensitive", "Beware of PHISHING attempts", true},
		{"violence keyword", "The plot involves violence", true},
		{"keyword inside a word is ignored", "The harmonica player was scampering", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Flagged(tt.text))
		})
	}
}

func TestFallback(t *testing.T) {
	req := &models.HumanizeRequest{
		SourceText: "We must ship this. Hi team!",
		Formality:  "Medium",
		Audience:   "general",
		Variants:   2,
	}

	result := Fallback(req)

	assert.Len(t, result.OutputVariants, 2)
	assert.Contains(t, result.OutputVariants[0].Text, "should")
	assert.Contains(t, result.OutputVariants[0].Text, "What do you think?")
	assert.Contains(t, result.OutputVariants[1].Text, "Hello")
	assert.NotContains(t, result.OutputVariants[1].Text, "!")
	assert.NotEmpty(t, result.Disclosure)
	assert.Equal(t, "general", result.StyleProfile.Audience)

	// Deterministic: same input, same output.
	assert.Equal(t, result, Fallback(req))
}

func TestFallbackSingleVariant(t *testing.T) {
	result := Fallback(&models.HumanizeRequest{SourceText: "Ship it.", Variants: 1})
	assert.Len(t, result.OutputVariants, 1)
}

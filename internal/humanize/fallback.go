package humanize

import (
	"regexp"
	"strings"

	"github.com/humyn-ai/humyn/go/internal/models"
)

var (
	modalVerbs  = regexp.MustCompile(`(?i)\b(must|shall|will)\b`)
	casualGreet = regexp.MustCompile(`(?i)\b(hey|hi)\b`)
)

// Fallback produces a deterministic local substitution when the provider
// call fails or returns malformed output. It yields the same shape as the
// provider so callers never see a raw provider failure.
func Fallback(req *models.HumanizeRequest) *models.HumanizeResult {
	conversational := modalVerbs.ReplaceAllString(req.SourceText, "should")
	conversational = strings.ReplaceAll(conversational, ".", "!") + " What do you think?"

	professional := casualGreet.ReplaceAllString(req.SourceText, "Hello")
	professional = strings.ReplaceAll(professional, "!", ".")

	variants := []models.OutputVariant{
		{VariantID: "v1", Tone: "Conversational", Text: conversational},
		{VariantID: "v2", Tone: "Professional", Text: professional},
	}
	if req.Variants == 1 {
		variants = variants[:1]
	}

	return &models.HumanizeResult{
		OutputVariants: variants,
		Changelog: []string{
			"- Softened formal language and added conversational elements",
			"- Maintained professional tone while improving readability",
		},
		StyleProfile: models.StyleProfile{
			Tone:                      "Mixed",
			Formality:                 req.Formality,
			Audience:                  req.Audience,
			PersonalizationTokensUsed: []string{},
			ImperfectionLevel:         "low",
		},
		Disclosure:      "This text was assisted by an AI writing tool.",
		ConfidenceScore: 0.75,
	}
}

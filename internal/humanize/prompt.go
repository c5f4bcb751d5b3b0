package humanize

import (
	"encoding/json"
	"fmt"

	"github.com/humyn-ai/humyn/go/internal/models"
)

const systemPrompt = `You are the "Humanize & Personalize Assistant." Transform AI-generated text into natural, human-like content while preserving meaning. Return exactly valid JSON with this structure:
{
  "output_variants": [
    {"variant_id": "v1", "tone": "Conversational", "text": "..."},
    {"variant_id": "v2", "tone": "Professional", "text": "..."}
  ],
  "changelog": [
    "- Shortened sentences and added contractions to improve flow.",
    "- Removed redundant phrases and clarified call-to-action."
  ],
  "style_profile": {
    "tone": "Conversational",
    "formality": "Medium",
    "audience": "customer",
    "personalization_tokens_used": ["name", "signoff"],
    "imperfection_level": "low"
  },
  "disclosure": "This text was assisted by an AI writing tool.",
  "confidence_score": 0.86
}`

// BuildPrompt assembles the full instruction sent to the model.
func BuildPrompt(req *models.HumanizeRequest) string {
	personalization, _ := json.Marshal(req.Personalization)

	disclosureLine := "Include a short disclosure indicating AI assistance."
	if req.OptOutDisclosure {
		disclosureLine = "User has opted out of disclosure."
	}

	userPrompt := fmt.Sprintf(`Humanize and personalize the following text while preserving meaning.
Input: %q
Tone: %s
Formality: %s
Audience: %s
Personalization tokens: %s
Variants: %d
Return exactly valid JSON with fields: output_variants[], changelog[], style_profile{}, disclosure, confidence_score.
Do not add facts not present in the input. %s`,
		req.SourceText, req.Tone, req.Formality, req.Audience, personalization, req.Variants, disclosureLine)

	return systemPrompt + "\n\n" + userPrompt
}

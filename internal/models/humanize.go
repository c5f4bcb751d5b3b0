package models

type HumanizeRequest struct {
	SourceText       string            `json:"source_text"`
	Tone             string            `json:"tone"`
	Formality        string            `json:"formality"`
	Audience         string            `json:"audience"`
	Personalization  map[string]string `json:"personalization,omitempty"`
	Variants         int               `json:"variants"`
	OptOutDisclosure bool              `json:"opt_out_disclosure"`
	OptOutReason     string            `json:"opt_out_reason"`
}

type OutputVariant struct {
	VariantID string `json:"variant_id"`
	Tone      string `json:"tone"`
	Text      string `json:"text"`
}

type StyleProfile struct {
	Tone                      string   `json:"tone"`
	Formality                 string   `json:"formality"`
	Audience                  string   `json:"audience"`
	PersonalizationTokensUsed []string `json:"personalization_tokens_used"`
	ImperfectionLevel         string   `json:"imperfection_level"`
}

type HumanizeResult struct {
	OutputVariants  []OutputVariant `json:"output_variants"`
	Changelog       []string        `json:"changelog"`
	StyleProfile    StyleProfile    `json:"style_profile"`
	Disclosure      string          `json:"disclosure"`
	ConfidenceScore float64         `json:"confidence_score"`
}

package humanize

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/humyn-ai/humyn/go/internal/models"
)

// parseResult decodes the model output into a HumanizeResult. Models wrap
// JSON in markdown fences often enough that stripping them first is cheaper
// than re-prompting.
func parseResult(content string) (*models.HumanizeResult, error) {
	var result models.HumanizeResult
	if err := json.Unmarshal([]byte(cleanJSONMarkdown(content)), &result); err != nil {
		return nil, fmt.Errorf("failed to parse model output: %w", err)
	}

	if !validResult(&result) {
		return nil, fmt.Errorf("model output missing usable variants")
	}
	return &result, nil
}

func validResult(result *models.HumanizeResult) bool {
	for _, v := range result.OutputVariants {
		if strings.TrimSpace(v.Text) != "" {
			return true
		}
	}
	return false
}

func cleanJSONMarkdown(content string) string {
	content = strings.TrimSpace(content)

	if !strings.Contains(content, "```") {
		return content
	}

	parts := strings.Split(content, "```")
	if len(parts) < 2 {
		return content
	}

	inner := parts[1]

	if strings.HasPrefix(inner, "json") {
		inner = inner[4:]
	} else if strings.HasPrefix(inner, "JSON") {
		inner = inner[4:]
	}

	return strings.TrimSpace(inner)
}

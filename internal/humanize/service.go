package humanize

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/humyn-ai/humyn/go/internal/entitlement"
	"github.com/humyn-ai/humyn/go/internal/models"
)

// MaxSourceTextLength caps the input size; longer texts are rejected before
// any external call.
const MaxSourceTextLength = 10000

const minOptOutReasonLength = 10

var (
	ErrEmptySourceText      = errors.New("source text is required")
	ErrSourceTextTooLong    = errors.New("text too long (max 10,000 characters)")
	ErrContentFlagged       = errors.New("content contains potentially harmful material")
	ErrOptOutReasonRequired = errors.New("disclosure opt-out requires detailed justification")
	ErrUsageLimitExceeded   = errors.New("usage limit exceeded")
)

const (
	defaultTone      = "Conversational"
	defaultFormality = "Medium"
	defaultAudience  = "general"
	defaultVariants  = 2
)

// Service is the request gate in front of the transform call: it validates,
// screens, checks entitlement, dispatches to the model, and meters usage.
type Service struct {
	generator TextGenerator
	ledger    *entitlement.Ledger
}

func NewService(generator TextGenerator, ledger *entitlement.Ledger) *Service {
	return &Service{
		generator: generator,
		ledger:    ledger,
	}
}

// Humanize runs one transform request. account may be nil for anonymous
// callers. Provider failures never surface: the deterministic fallback
// produces a structurally identical result.
func (s *Service) Humanize(ctx context.Context, account *models.Account, req *models.HumanizeRequest) (*models.HumanizeResult, error) {
	if strings.TrimSpace(req.SourceText) == "" {
		return nil, ErrEmptySourceText
	}
	if len(req.SourceText) > MaxSourceTextLength {
		return nil, ErrSourceTextTooLong
	}

	if Flagged(req.SourceText) {
		return nil, ErrContentFlagged
	}

	if req.OptOutDisclosure && len(strings.TrimSpace(req.OptOutReason)) < minOptOutReasonLength {
		return nil, ErrOptOutReasonRequired
	}

	if !entitlement.CanProceed(account) {
		return nil, ErrUsageLimitExceeded
	}

	applyDefaults(req)

	result := s.transform(ctx, req)

	if req.OptOutDisclosure {
		result.Disclosure = ""
	}

	// Best-effort ledger write: the transform already succeeded, so the
	// result is returned even if metering fails.
	if err := s.ledger.RecordUse(ctx, account); err != nil {
		log.Printf("Usage recording failed: %v", err)
	}

	return result, nil
}

func (s *Service) transform(ctx context.Context, req *models.HumanizeRequest) *models.HumanizeResult {
	content, err := s.generator.GenerateContent(ctx, BuildPrompt(req))
	if err != nil {
		log.Printf("Provider call failed, using fallback: %v", err)
		return Fallback(req)
	}

	result, err := parseResult(content)
	if err != nil {
		log.Printf("Provider output unusable, using fallback: %v", err)
		return Fallback(req)
	}
	return result
}

func applyDefaults(req *models.HumanizeRequest) {
	if req.Tone == "" {
		req.Tone = defaultTone
	}
	if req.Formality == "" {
		req.Formality = defaultFormality
	}
	if req.Audience == "" {
		req.Audience = defaultAudience
	}
	if req.Variants <= 0 {
		req.Variants = defaultVariants
	}
}

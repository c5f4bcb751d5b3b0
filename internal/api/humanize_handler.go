package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/humyn-ai/humyn/go/internal/audit"
	"github.com/humyn-ai/humyn/go/internal/humanize"
	"github.com/humyn-ai/humyn/go/internal/models"
	"github.com/humyn-ai/humyn/go/internal/user"
)

type HumanizeHandler struct {
	svc   *humanize.Service
	audit *audit.Logger
}

func NewHumanizeHandler(svc *humanize.Service, auditLog *audit.Logger) *HumanizeHandler {
	return &HumanizeHandler{
		svc:   svc,
		audit: auditLog,
	}
}

func (h *HumanizeHandler) Humanize(w http.ResponseWriter, r *http.Request) {
	var req models.HumanizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, map[string]any{"error": "Invalid request body"})
		return
	}

	// Anonymous if no credential resolved; the client tracks its own
	// counter in that case.
	account, _ := user.GetAccountFromContext(r.Context())

	h.audit.Record(audit.Entry{
		IP:         clientIP(r),
		UserAgent:  r.UserAgent(),
		OptOut:     req.OptOutDisclosure,
		Reason:     req.OptOutReason,
		TextLength: len(req.SourceText),
	})

	result, err := h.svc.Humanize(r.Context(), account, &req)
	if err != nil {
		h.writeHumanizeError(w, err)
		return
	}

	writeJSON(w, result)
}

func (h *HumanizeHandler) writeHumanizeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, humanize.ErrEmptySourceText):
		writeJSONError(w, http.StatusBadRequest, map[string]any{"error": "Source text is required"})
	case errors.Is(err, humanize.ErrSourceTextTooLong):
		writeJSONError(w, http.StatusBadRequest, map[string]any{"error": "Text too long (max 10,000 characters)"})
	case errors.Is(err, humanize.ErrContentFlagged):
		writeJSONError(w, http.StatusBadRequest, map[string]any{
			"error":      "Content contains potentially harmful material",
			"suggestion": "Please revise your text to remove any harmful, misleading, or inappropriate content.",
		})
	case errors.Is(err, humanize.ErrOptOutReasonRequired):
		writeJSONError(w, http.StatusBadRequest, map[string]any{
			"error": "Disclosure opt-out requires detailed justification (minimum 10 characters)",
		})
	case errors.Is(err, humanize.ErrUsageLimitExceeded):
		writeJSONError(w, http.StatusTooManyRequests, map[string]any{
			"error":           "Usage limit exceeded. Upgrade to Premium for unlimited access.",
			"upgradeRequired": true,
		})
	default:
		log.Printf("Humanize failed: %v", err)
		writeJSONError(w, http.StatusInternalServerError, map[string]any{"error": internalServerError})
	}
}

func HealthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "Humyn API",
	})
}

package api

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/humyn-ai/humyn/go/internal/analytics"
	"github.com/humyn-ai/humyn/go/internal/models"
	"github.com/humyn-ai/humyn/go/internal/reports"
)

type AdminHandler struct {
	analytics *analytics.Service
	reports   reports.Repository
}

func NewAdminHandler(analyticsService *analytics.Service, reportRepo reports.Repository) *AdminHandler {
	return &AdminHandler{
		analytics: analyticsService,
		reports:   reportRepo,
	}
}

func (h *AdminHandler) Analytics(w http.ResponseWriter, r *http.Request) {
	summary, err := h.analytics.Summary(r.Context())
	if err != nil {
		log.Printf("Analytics failed: %v", err)
		writeJSONError(w, http.StatusInternalServerError, map[string]any{"error": internalServerError})
		return
	}

	writeJSON(w, summary)
}

func (h *AdminHandler) ListReports(w http.ResponseWriter, r *http.Request) {
	list, err := h.reports.List(r.Context())
	if err != nil {
		log.Printf("Listing reports failed: %v", err)
		writeJSONError(w, http.StatusInternalServerError, map[string]any{"error": internalServerError})
		return
	}

	writeJSON(w, list)
}

type createReportRequest struct {
	Type        models.ReportType `json:"type"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Email       string            `json:"email"`
}

func (h *AdminHandler) CreateReport(w http.ResponseWriter, r *http.Request) {
	var req createReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, map[string]any{"error": "Invalid request body"})
		return
	}

	if req.Type == "" || req.Title == "" || req.Description == "" {
		writeJSONError(w, http.StatusBadRequest, map[string]any{"error": "Type, title, and description are required"})
		return
	}

	email := req.Email
	if email == "" {
		email = "anonymous"
	}

	report := &models.Report{
		Type:        req.Type,
		Title:       req.Title,
		Description: req.Description,
		Email:       email,
	}
	if err := h.reports.Create(r.Context(), report); err != nil {
		log.Printf("Creating report failed: %v", err)
		writeJSONError(w, http.StatusInternalServerError, map[string]any{"error": internalServerError})
		return
	}

	writeJSON(w, map[string]any{"success": true, "message": "Report submitted successfully"})
}

func (h *AdminHandler) DeleteReport(w http.ResponseWriter, r *http.Request) {
	reportID := mux.Vars(r)["id"]

	if err := h.reports.Delete(r.Context(), reportID); err != nil {
		log.Printf("Deleting report failed: %v", err)
		writeJSONError(w, http.StatusInternalServerError, map[string]any{"error": internalServerError})
		return
	}

	writeJSON(w, map[string]any{"success": true, "message": "Report deleted successfully"})
}

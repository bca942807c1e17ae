package httpadapter

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/sarabun-dev/sarabun-core/internal/core/domain"
	"github.com/sarabun-dev/sarabun-core/internal/core/ports"
	"github.com/sarabun-dev/sarabun-core/internal/observability/metrics"
)

const serviceName = "api"

// RegisterExporter renders the filtered register as a downloadable workbook.
type RegisterExporter interface {
	RegisterXLSX(ctx context.Context, filter domain.ListFilter) ([]byte, error)
}

type Router struct {
	ingestor  ports.DocumentIngestor
	workflow  ports.WorkflowService
	extractor ports.FieldExtractor
	exporter  RegisterExporter
	metrics   *metrics.HTTPServerMetrics

	rateLimitRPS   float64
	rateLimitBurst int
	maxInFlight    int
}

type RouterOption func(*Router)

func WithTrafficControl(rps float64, burst, maxInFlight int) RouterOption {
	return func(rt *Router) {
		rt.rateLimitRPS = rps
		rt.rateLimitBurst = burst
		rt.maxInFlight = maxInFlight
	}
}

func WithMetrics(m *metrics.HTTPServerMetrics) RouterOption {
	return func(rt *Router) {
		rt.metrics = m
	}
}

func NewRouter(
	ingestor ports.DocumentIngestor,
	workflow ports.WorkflowService,
	extractor ports.FieldExtractor,
	exporter RegisterExporter,
	opts ...RouterOption,
) *Router {
	rt := &Router{
		ingestor:  ingestor,
		workflow:  workflow,
		extractor: extractor,
		exporter:  exporter,
	}
	for _, opt := range opts {
		opt(rt)
	}
	return rt
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", rt.healthz)
	mux.HandleFunc("/v1/documents", rt.documents)
	mux.HandleFunc("/v1/documents/", rt.documentSubtree)
	mux.HandleFunc("/v1/extract", rt.extract)
	if rt.metrics != nil {
		mux.Handle("/metrics", rt.metrics.Handler())
	}

	var handler http.Handler = mux
	if rt.rateLimitRPS > 0 {
		handler = rateLimitMiddleware(handler, rt.rateLimitRPS, rt.rateLimitBurst)
	}
	if rt.maxInFlight > 0 {
		handler = backpressureMiddleware(handler, rt.maxInFlight, defaultBackpressureWait)
	}
	if rt.metrics != nil {
		handler = rt.metrics.Middleware(serviceName, handler)
	}
	return requestIDMiddleware(accessLogMiddleware(handler))
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (rt *Router) documents(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		rt.uploadDocument(w, r)
	case http.MethodGet:
		rt.listDocuments(w, r)
	default:
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
	}
}

func (rt *Router) uploadDocument(w http.ResponseWriter, r *http.Request) {
	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "multipart field 'file' is required"})
		return
	}
	defer file.Close()

	record, err := rt.ingestor.Ingest(r.Context(), ports.IngestCommand{
		FileName:  fileHeader.Filename,
		Content:   file,
		Direction: domain.Direction(r.FormValue("direction")),
		Priority:  domain.Priority(r.FormValue("priority")),
		Hints: domain.IngestHints{
			Title:          r.FormValue("title"),
			FromParty:      r.FormValue("from_party"),
			ToParty:        r.FormValue("to_party"),
			DocumentNumber: r.FormValue("document_number"),
			DocumentDate:   r.FormValue("document_date"),
			Subject:        r.FormValue("subject"),
		},
	})
	if err != nil {
		writeError(w, err)
		return
	}

	if rt.metrics != nil {
		rt.metrics.RecordIngest(serviceName, string(record.Direction))
	}
	writeJSON(w, http.StatusAccepted, record)
}

func (rt *Router) listDocuments(w http.ResponseWriter, r *http.Request) {
	records, err := rt.workflow.List(r.Context(), domain.ListFilter{
		Direction: domain.Direction(r.URL.Query().Get("direction")),
		Status:    domain.WorkflowStatus(r.URL.Query().Get("status")),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	if records == nil {
		records = []domain.DocumentRecord{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"documents": records})
}

func (rt *Router) documentSubtree(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/v1/documents/")
	if rest == "export" {
		rt.exportRegister(w, r)
		return
	}

	id, sub, _ := strings.Cut(rest, "/")
	if id == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "document id is required"})
		return
	}

	switch sub {
	case "":
		rt.documentByID(w, r, id)
	case "transitions":
		rt.transition(w, r, id)
	case "events":
		rt.events(w, r, id)
	default:
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown resource"})
	}
}

func (rt *Router) documentByID(w http.ResponseWriter, r *http.Request, id string) {
	switch r.Method {
	case http.MethodGet:
		record, err := rt.workflow.Get(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, record)
	case http.MethodPatch:
		var amendment domain.DocumentAmendment
		if err := json.NewDecoder(r.Body).Decode(&amendment); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
			return
		}
		record, err := rt.workflow.Amend(r.Context(), id, amendment)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, record)
	default:
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
	}
}

func (rt *Router) transition(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	var req struct {
		Action      string `json:"action"`
		CompletedBy string `json:"completed_by"`
		Comment     string `json:"comment"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	record, err := rt.workflow.Transition(r.Context(), id, domain.WorkflowAction(req.Action), req.CompletedBy, req.Comment)
	if rt.metrics != nil {
		rt.metrics.RecordTransition(serviceName, req.Action, err)
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (rt *Router) events(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	events, err := rt.workflow.Events(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	if events == nil {
		events = []domain.WorkflowEvent{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"events": events})
}

func (rt *Router) exportRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	workbook, err := rt.exporter.RegisterXLSX(r.Context(), domain.ListFilter{
		Direction: domain.Direction(r.URL.Query().Get("direction")),
		Status:    domain.WorkflowStatus(r.URL.Query().Get("status")),
	})
	if err != nil {
		writeError(w, err)
		return
	}

	if rt.metrics != nil {
		rt.metrics.RecordExport(serviceName)
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="register.xlsx"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(workbook)
}

// extract runs field extraction on caller-provided text without touching any
// stored document. Useful for previewing what recognition output would yield.
func (rt *Router) extract(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "text is required"})
		return
	}

	writeJSON(w, http.StatusOK, rt.extractor.Extract(req.Text))
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
}

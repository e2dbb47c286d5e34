package httpadapter

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/trinamix-ai/documantra-saas/internal/config"
	"github.com/trinamix-ai/documantra-saas/internal/core/ports"
	"github.com/trinamix-ai/documantra-saas/internal/observability/metrics"
)

const (
	serviceName       = "api"
	maxUploadBytes    = 32 << 20
	sampleQueryLimit  = 5
	backpressureWait  = 50 * time.Millisecond
	exportContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type Router struct {
	cfg      config.Config
	jobs     ports.JobSubmitter
	reader   ports.JobReader
	records  ports.RecordQuerier
	exporter ports.JobExporter
	metrics  *metrics.HTTPServerMetrics
	logger   *slog.Logger
}

// NewRouter wires the HTTP surface. records may be nil when no database is
// configured; the probe endpoints then answer 503.
func NewRouter(
	cfg config.Config,
	jobs ports.JobSubmitter,
	reader ports.JobReader,
	records ports.RecordQuerier,
	exporter ports.JobExporter,
	httpMetrics *metrics.HTTPServerMetrics,
	logger *slog.Logger,
) *Router {
	if logger == nil {
		logger = slog.Default()
	}
	return &Router{
		cfg:      cfg,
		jobs:     jobs,
		reader:   reader,
		records:  records,
		exporter: exporter,
		metrics:  httpMetrics,
		logger:   logger,
	}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", rt.health)
	mux.HandleFunc("/db-test", rt.dbTest)
	mux.HandleFunc("/db-sample-query", rt.dbSampleQuery)
	mux.HandleFunc("/v1/documents", rt.uploadDocument)
	mux.HandleFunc("/v1/documents/", rt.documentRoutes)

	var handler http.Handler = mux
	handler = backpressureMiddleware(handler, rt.cfg.APIMaxInFlight, backpressureWait, rt.onReject("backpressure"))
	handler = rateLimitMiddleware(handler, rt.cfg.APIRateLimitRPS, rt.cfg.APIRateLimitBurst, rt.onReject("rate_limited"))

	if rt.metrics != nil {
		instrumented := rt.metrics.Middleware(serviceName, handler)
		metricsHandler := rt.metrics.Handler()
		handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/metrics" {
				metricsHandler.ServeHTTP(w, r)
				return
			}
			instrumented.ServeHTTP(w, r)
		})
	}

	handler = accessLogMiddleware(handler, rt.logger)
	return requestIDMiddleware(handler)
}

func (rt *Router) onReject(reason string) func() {
	return func() {
		if rt.metrics != nil {
			rt.metrics.RecordRejected(serviceName, reason)
		}
	}
}

func (rt *Router) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (rt *Router) dbTest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}
	if rt.records == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{"success": false, "error": "database is not configured"})
		return
	}

	rows, err := rt.records.ServerTime(r.Context())
	rt.recordProbe("server_time", err)
	if err != nil {
		rt.logger.Error("db_test_failed", "request_id", requestIDFromContext(r.Context()), "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{"success": false, "error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "result": rows})
}

func (rt *Router) dbSampleQuery(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}
	if rt.records == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "database is not configured"})
		return
	}

	rows, err := rt.records.SampleDocuments(r.Context(), sampleQueryLimit)
	rt.recordProbe("sample_documents", err)
	if err != nil {
		rt.logger.Error("db_sample_query_failed", "request_id", requestIDFromContext(r.Context()), "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func (rt *Router) recordProbe(query string, err error) {
	if rt.metrics != nil {
		rt.metrics.RecordDBProbe(serviceName, query, err)
	}
}

func (rt *Router) uploadDocument(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, map[string]string{"error": "upload exceeds size limit"})
			return
		}
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "multipart field 'file' is required"})
		return
	}
	defer file.Close()

	if fileHeader.Size == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "uploaded file is empty"})
		return
	}

	job, err := rt.jobs.Submit(r.Context(), fileHeader.Filename, file)
	if rt.metrics != nil {
		rt.metrics.RecordJobSubmitted(serviceName, err)
	}
	if err != nil {
		rt.logger.Error("job_submit_failed", "request_id", requestIDFromContext(r.Context()), "file", fileHeader.Filename, "error", err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, job)
}

func (rt *Router) documentRoutes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/v1/documents/")
	switch {
	case id == "export.xlsx":
		rt.exportJobs(w, r)
	case id == "" || strings.Contains(id, "/"):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "job id is required"})
	default:
		rt.getJob(w, r, id)
	}
}

func (rt *Router) getJob(w http.ResponseWriter, r *http.Request, id string) {
	job, err := rt.reader.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, job)
}

func (rt *Router) exportJobs(w http.ResponseWriter, r *http.Request) {
	raw, err := rt.exporter.ExportXLSX(r.Context())
	if err != nil {
		rt.logger.Error("export_xlsx_failed", "request_id", requestIDFromContext(r.Context()), "error", err)
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", exportContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="classifications.xlsx"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(raw)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
